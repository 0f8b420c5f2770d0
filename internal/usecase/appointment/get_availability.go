package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const defaultSlotStep = 30 * time.Minute

type GetAvailability struct {
	repo domain.Repository
	days *DayStore
	step time.Duration
}

func NewGetAvailability(repo domain.Repository, days *DayStore, opts Options) *GetAvailability {
	step := opts.SlotStep
	if step <= 0 {
		step = defaultSlotStep
	}
	return &GetAvailability{repo: repo, days: days, step: step}
}

// Execute devolve os inícios livres do dia. Dias em que o serviço não é
// oferecido retornam lista vazia.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetCalendar(ctx, in.SalonID, in.CalendarID); err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if in.Date.IsZero() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	loc := timezone.Location(salon.Timezone)
	day, _ := DayRange(in.Date, loc)

	if !domain.IsServiceAvailableOnDay(service, day) {
		return []domain.TimeSlot{}, nil
	}

	wh, err := uc.repo.GetWorkingHours(ctx, in.CalendarID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	existing, err := uc.days.Load(ctx, in.SalonID, in.CalendarID, day, loc)
	if err != nil {
		return nil, err
	}

	// Para o agendamento online, respeita a antecedência mínima.
	minAdvance := salon.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = defaultMinAdvanceMinutes
	}
	earliest := timezone.NowIn(salon.Timezone).Add(time.Duration(minAdvance) * time.Minute)

	return domain.FreeSlots(
		day,
		wh,
		time.Duration(service.DurationMinutes)*time.Minute,
		uc.step,
		existing,
		earliest,
	), nil
}
