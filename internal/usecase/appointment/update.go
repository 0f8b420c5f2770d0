package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// UpdateAppointmentInput: campos zero mantêm o valor atual. Quando o serviço,
// a data ou o início mudam e EndTime está vazio, o fim é recalculado pela
// duração do serviço.
type UpdateAppointmentInput struct {
	SalonID       uint
	UserID        *uint
	AppointmentID uint

	CalendarID uint
	ClientID   uint
	ServiceID  uint

	Date      string
	StartTime string
	EndTime   string
	Notes     *string
}

type UpdateAppointment struct {
	repo   domain.Repository
	days   *DayStore
	audit  audit.Sink
	opts   Options
	logger zerolog.Logger
}

func NewUpdateAppointment(
	repo domain.Repository,
	days *DayStore,
	audit audit.Sink,
	opts Options,
	logger zerolog.Logger,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:   repo,
		days:   days,
		audit:  audit,
		opts:   opts,
		logger: logger,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(salon.Timezone)

	ap, err := uc.repo.GetAppointment(ctx, in.SalonID, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanEdit(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	prevCalendarID := ap.CalendarID
	prevStart, prevEnd := ap.StartTime, ap.EndTime

	// --------------------------------------------------
	// Agenda / serviço / cliente
	// --------------------------------------------------
	cal, err := uc.repo.GetCalendar(ctx, in.SalonID, pick(in.CalendarID, ap.CalendarID))
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, pick(in.ServiceID, ap.ServiceID))
	if err != nil {
		return nil, err
	}

	client := ap.Client
	if in.ClientID != 0 && in.ClientID != ap.ClientID {
		c, err := uc.repo.GetClient(ctx, in.SalonID, in.ClientID)
		if err != nil {
			return nil, err
		}
		client = *c
	}

	// --------------------------------------------------
	// Novo intervalo
	// --------------------------------------------------
	current := ap.StartTime.In(loc)
	date := orDefault(in.Date, domain.DateKey(current, loc))
	startHM := orDefault(in.StartTime, current.Format(domain.ClockLayout))

	timingChanged := in.Date != "" || in.StartTime != "" || in.EndTime != "" || service.ID != ap.ServiceID

	start, end := ap.StartTime, ap.EndTime
	if timingChanged {
		start, end, err = resolveInterval(salon, date, startHM, in.EndTime, service)
		if err != nil {
			return nil, err
		}
	}

	if err := checkServiceDay(uc.logger, service, start, uc.opts.EnforceServiceDays); err != nil {
		return nil, err
	}

	if err := domain.ValidateInterval(start, end); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Releitura sob lock + conflito (ignorando o próprio agendamento)
	// --------------------------------------------------
	var conflict *models.Appointment
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		fresh, err := lockAppointment(ctx, tx, in.SalonID, ap)
		if err != nil {
			return err
		}
		if !timingChanged {
			start, end = fresh.StartTime, fresh.EndTime
		}

		conflict, err = assertNoConflict(ctx, tx, in.SalonID, cal.ID, start, end, fresh.ID)
		if err != nil {
			return err
		}

		if err := domain.Reschedule(fresh, start, end); err != nil {
			return err
		}
		fresh.CalendarID = cal.ID
		fresh.ServiceID = service.ID
		fresh.ClientID = client.ID
		if in.Notes != nil {
			fresh.Notes = strings.TrimSpace(*in.Notes)
		}

		if err := tx.UpdateAppointment(ctx, fresh); err != nil {
			return err
		}
		ap = fresh
		return nil
	})
	if err != nil {
		return nil, conflictError(err, uc.audit, "update", in.SalonID, in.UserID, cal.ID, start, end, conflict)
	}

	ap.Calendar = *cal
	ap.Service = *service
	ap.Client = client

	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	if prevCalendarID != cal.ID || !sameDays(prevStart, prevEnd, start, end, loc) {
		uc.days.Changed(ctx, in.SalonID, prevCalendarID, prevStart, prevEnd, loc, notify.ActionUpdated, ap.ID)
	}
	uc.days.Changed(ctx, in.SalonID, cal.ID, start, end, loc, notify.ActionUpdated, ap.ID)

	return ap, nil
}

func sameDays(aStart, aEnd, bStart, bEnd time.Time, loc *time.Location) bool {
	a, b := SpannedDays(aStart, aEnd, loc), SpannedDays(bStart, bEnd, loc)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func pick(v, fallback uint) uint {
	if v != 0 {
		return v
	}
	return fallback
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}
