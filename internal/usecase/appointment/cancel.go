package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type CancelAppointmentInput struct {
	SalonID       uint
	UserID        *uint
	AppointmentID uint

	// ClientPhone, quando informado, precisa ser o telefone do cliente do
	// agendamento (cancelamento pelo link público).
	ClientPhone string
}

// CancelAppointment é a remoção lógica: o registro continua, com status
// canceled, e deixa de contar para conflitos.
type CancelAppointment struct {
	repo  domain.Repository
	days  *DayStore
	audit audit.Sink
}

func NewCancelAppointment(
	repo domain.Repository,
	days *DayStore,
	audit audit.Sink,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		days:  days,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	current, err := uc.repo.GetAppointment(ctx, in.SalonID, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	var ap *models.Appointment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		var err error
		ap, err = lockAppointment(ctx, tx, in.SalonID, current)
		if err != nil {
			return err
		}

		if in.ClientPhone != "" &&
			validators.NormalizePhone(in.ClientPhone) != validators.NormalizePhone(ap.Client.Phone) {
			return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
		}

		if err := domain.Cancel(ap, timezone.NowIn(salon.Timezone)); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "appointment_canceled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.days.Changed(ctx, in.SalonID, ap.CalendarID, ap.StartTime, ap.EndTime, timezone.Location(salon.Timezone), notify.ActionCanceled, ap.ID)

	return ap, nil
}
