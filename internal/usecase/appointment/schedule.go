package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const defaultMinAdvanceMinutes = 120

// Options ajusta regras que variam por instalação.
type Options struct {
	SlotStep           time.Duration
	EnforceServiceDays bool
}

// resolveInterval monta [start, end) no fuso do salão. Sem endHM, o fim
// vem da duração do serviço.
func resolveInterval(
	salon *models.Salon,
	date string,
	startHM string,
	endHM string,
	service *models.Service,
) (time.Time, time.Time, error) {

	start, err := timezone.ParseDateTime(salon.Timezone, date, startHM)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	var end time.Time
	if endHM != "" {
		end, err = timezone.ParseDateTime(salon.Timezone, date, endHM)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
		}
	} else {
		if service == nil || service.DurationMinutes <= 0 {
			return time.Time{}, time.Time{}, httperr.ErrBusiness(httperr.CodeInvalidInterval)
		}
		end = domain.EndFromService(start, service.DurationMinutes)
	}

	if err := domain.ValidateInterval(start, end); err != nil {
		return time.Time{}, time.Time{}, err
	}

	return start, end, nil
}

// checkServiceDay rejeita quando enforce; caso contrário apenas registra.
func checkServiceDay(
	logger zerolog.Logger,
	service *models.Service,
	start time.Time,
	enforce bool,
) error {

	if domain.IsServiceAvailableOnDay(service, start) {
		return nil
	}
	if enforce {
		return httperr.ErrBusiness(httperr.CodeServiceUnavailable)
	}

	logger.Warn().
		Uint("service_id", service.ID).
		Str("weekday", domain.WeekdayName(start)).
		Msg("service booked outside its available days")
	return nil
}

// checkAdvance aplica a antecedência mínima do salão.
func checkAdvance(salon *models.Salon, start time.Time) error {
	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = defaultMinAdvanceMinutes
	}

	now := timezone.NowIn(salon.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return httperr.ErrBusiness(httperr.CodeTooSoon)
	}
	return nil
}

// checkCalendarOffers exige que o serviço esteja entre os da agenda.
func checkCalendarOffers(
	ctx context.Context,
	repo domain.Repository,
	salonID uint,
	calendarID uint,
	serviceID uint,
) error {

	offered, err := repo.ListServices(ctx, salonID, calendarID)
	if err != nil {
		return err
	}
	for _, s := range offered {
		if s.ID == serviceID {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeServiceNotFound)
}

func checkWorkingHours(
	ctx context.Context,
	repo domain.Repository,
	calendarID uint,
	start time.Time,
	end time.Time,
) error {

	wh, err := repo.GetWorkingHours(ctx, calendarID, int(start.Weekday()))
	if err != nil {
		return err
	}
	if !domain.WithinWorkingHours(wh, start, end) {
		return httperr.ErrBusiness(httperr.CodeOutsideWorkingHour)
	}
	return nil
}

// assertNoConflict roda dentro da transação, depois de LockCalendar. A
// busca é por sobreposição, o que alcança agendamentos vindos da véspera.
func assertNoConflict(
	ctx context.Context,
	tx domain.Repository,
	salonID uint,
	calendarID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) (*models.Appointment, error) {

	if err := tx.LockCalendar(ctx, calendarID); err != nil {
		return nil, err
	}

	existing, err := tx.ListAppointmentsForPeriod(ctx, domain.PeriodFilter{
		SalonID:    salonID,
		CalendarID: calendarID,
		Start:      start,
		End:        end,
		Overlap:    true,
	})
	if err != nil {
		return nil, err
	}

	if c := domain.FindConflict(existing, start, end, excludeID); c != nil {
		return c, httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	return nil, nil
}

// lockAppointment trava a agenda do agendamento e relê a linha dentro da
// transação, para que status e horário reflitam escritas já confirmadas.
func lockAppointment(
	ctx context.Context,
	tx domain.Repository,
	salonID uint,
	ap *models.Appointment,
) (*models.Appointment, error) {

	if err := tx.LockCalendar(ctx, ap.CalendarID); err != nil {
		return nil, err
	}

	fresh, err := tx.GetAppointment(ctx, salonID, ap.ID)
	if err != nil {
		return nil, err
	}

	if fresh.CalendarID != ap.CalendarID {
		if err := tx.LockCalendar(ctx, fresh.CalendarID); err != nil {
			return nil, err
		}
	}
	return fresh, nil
}

// conflictError normaliza a violação da constraint de exclusão e registra
// a rejeição.
func conflictError(
	err error,
	sink audit.Sink,
	operation string,
	salonID uint,
	userID *uint,
	calendarID uint,
	start time.Time,
	end time.Time,
	conflict *models.Appointment,
) error {

	if httperr.IsExclusionConflict(err) {
		err = httperr.ErrBusiness(httperr.CodeTimeConflict)
	}
	if !httperr.IsBusiness(err, httperr.CodeTimeConflict) {
		return err
	}

	metrics.IncConflict(operation)

	meta := map[string]any{
		"operation":   operation,
		"calendar_id": calendarID,
		"start":       start,
		"end":         end,
	}
	if conflict != nil {
		meta["conflict_id"] = conflict.ID
	}

	sink.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   userID,
		Action:   "appointment_conflict",
		Entity:   "calendar",
		EntityID: &calendarID,
		Metadata: meta,
	})

	return err
}
