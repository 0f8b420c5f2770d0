package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/daycache"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

// Publisher recebe a lista atualizada de um dia após cada escrita.
type Publisher interface {
	Publish(u notify.Update)
}

// DayStore lê o dia de uma agenda pelo cache (cache-aside) e, após escritas,
// invalida o cache e notifica os assinantes com a lista completa do dia.
type DayStore struct {
	repo   domain.Repository
	cache  daycache.Cache
	pub    Publisher
	logger zerolog.Logger
}

func NewDayStore(
	repo domain.Repository,
	cache daycache.Cache,
	pub Publisher,
	logger zerolog.Logger,
) *DayStore {
	if cache == nil {
		cache = daycache.Nop{}
	}
	return &DayStore{
		repo:   repo,
		cache:  cache,
		pub:    pub,
		logger: logger,
	}
}

// DayRange devolve [00:00, 00:00 do dia seguinte) de day no fuso loc.
func DayRange(day time.Time, loc *time.Location) (time.Time, time.Time) {
	d := day.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func (s *DayStore) Load(
	ctx context.Context,
	salonID uint,
	calendarID uint,
	day time.Time,
	loc *time.Location,
) ([]models.Appointment, error) {

	key := domain.DateKey(day, loc)

	aps, ok, err := s.cache.Get(ctx, calendarID, key)
	switch {
	case err != nil:
		metrics.IncDayCache("error")
		s.logger.Warn().Err(err).Uint("calendar_id", calendarID).Str("date", key).Msg("day cache read failed")
	case ok:
		metrics.IncDayCache("hit")
		return aps, nil
	default:
		metrics.IncDayCache("miss")
	}

	start, end := DayRange(day, loc)
	aps, err = s.repo.ListAppointmentsForPeriod(ctx, domain.PeriodFilter{
		SalonID:    salonID,
		CalendarID: calendarID,
		Start:      start,
		End:        end,
		Overlap:    true,
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, calendarID, key, aps); err != nil {
		s.logger.Warn().Err(err).Uint("calendar_id", calendarID).Str("date", key).Msg("day cache write failed")
	}

	return aps, nil
}

// SpannedDays devolve o início (00:00 em loc) de cada dia tocado por
// [start, end). Um agendamento que atravessa a meia-noite toca dois dias.
func SpannedDays(start, end time.Time, loc *time.Location) []time.Time {
	day, _ := DayRange(start, loc)
	days := []time.Time{day}
	for next := day.AddDate(0, 0, 1); next.Before(end); next = next.AddDate(0, 0, 1) {
		days = append(days, next)
	}
	return days
}

// Changed é chamado após uma escrita já confirmada, para cada dia que
// [start, end) toca. Falhas aqui não desfazem a escrita; são apenas
// registradas.
func (s *DayStore) Changed(
	ctx context.Context,
	salonID uint,
	calendarID uint,
	start time.Time,
	end time.Time,
	loc *time.Location,
	action string,
	appointmentID uint,
) {
	for _, day := range SpannedDays(start, end, loc) {
		s.changedDay(ctx, salonID, calendarID, day, loc, action, appointmentID)
	}
}

func (s *DayStore) changedDay(
	ctx context.Context,
	salonID uint,
	calendarID uint,
	day time.Time,
	loc *time.Location,
	action string,
	appointmentID uint,
) {

	key := domain.DateKey(day, loc)

	if err := s.cache.Invalidate(ctx, calendarID, key); err != nil {
		s.logger.Warn().Err(err).Uint("calendar_id", calendarID).Str("date", key).Msg("day cache invalidate failed")
	}

	if s.pub == nil {
		return
	}

	aps, err := s.Load(ctx, salonID, calendarID, day, loc)
	if err != nil {
		s.logger.Error().Err(err).Uint("calendar_id", calendarID).Str("date", key).Msg("reload day after write failed")
		return
	}

	s.pub.Publish(notify.Update{
		CalendarID:    calendarID,
		DateKey:       key,
		Action:        action,
		AppointmentID: appointmentID,
		Appointments:  aps,
	})
}
