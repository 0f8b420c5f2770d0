package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// DeleteAppointment remove o registro de vez (fluxo interno da agenda).
// Cancelamento é CancelAppointment.
type DeleteAppointment struct {
	repo  domain.Repository
	days  *DayStore
	audit audit.Sink
}

func NewDeleteAppointment(
	repo domain.Repository,
	days *DayStore,
	audit audit.Sink,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		days:  days,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	salonID uint,
	userID *uint,
	appointmentID uint,
) error {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return err
	}

	current, err := uc.repo.GetAppointment(ctx, salonID, appointmentID)
	if err != nil {
		return err
	}

	var ap *models.Appointment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = lockAppointment(ctx, tx, salonID, current)
		if err != nil {
			return err
		}
		return tx.DeleteAppointment(ctx, salonID, appointmentID)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
		Metadata: map[string]any{
			"calendar_id": ap.CalendarID,
			"start":       ap.StartTime,
			"end":         ap.EndTime,
		},
	})

	uc.days.Changed(ctx, salonID, ap.CalendarID, ap.StartTime, ap.EndTime, timezone.Location(salon.Timezone), notify.ActionDeleted, appointmentID)

	return nil
}
