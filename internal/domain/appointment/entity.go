package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCanceled)
	ap.CanceledAt = &now
	return nil
}

// ValidateInterval garante endTime > startTime (estritamente).
func ValidateInterval(start, end time.Time) error {
	if !end.After(start) {
		return httperr.ErrBusiness(httperr.CodeInvalidInterval)
	}
	return nil
}

// Reschedule aplica um novo intervalo a um agendamento ainda ativo.
func Reschedule(ap *models.Appointment, start, end time.Time) error {
	if err := CanEdit(Status(ap.Status)); err != nil {
		return err
	}
	if err := ValidateInterval(start, end); err != nil {
		return err
	}

	ap.StartTime = start
	ap.EndTime = end
	return nil
}
