package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Overlaps compara intervalos semiabertos [aStart, aEnd) e [bStart, bEnd).
// Intervalos que apenas se tocam não se sobrepõem.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// HasConflict informa se [start, end) sobrepõe algum agendamento ativo da lista.
// Cancelados e o próprio excludeID (edição) são ignorados. A lista deve estar
// restrita a uma única agenda.
func HasConflict(existing []models.Appointment, start, end time.Time, excludeID uint) bool {
	return FindConflict(existing, start, end, excludeID) != nil
}

// FindConflict devolve o primeiro agendamento que conflita com [start, end).
func FindConflict(existing []models.Appointment, start, end time.Time, excludeID uint) *models.Appointment {
	for i := range existing {
		ap := &existing[i]

		if !Status(ap.Status).IsActive() {
			continue
		}
		if excludeID != 0 && ap.ID == excludeID {
			continue
		}

		if Overlaps(start, end, ap.StartTime, ap.EndTime) {
			return ap
		}
	}
	return nil
}
