package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// GetDayGrid monta a visão de 24h de uma agenda. serviceID, quando
// informado, define a duração dos rascunhos de clique-para-criar.
type GetDayGrid struct {
	repo domain.Repository
	days *DayStore
}

func NewGetDayGrid(repo domain.Repository, days *DayStore) *GetDayGrid {
	return &GetDayGrid{repo: repo, days: days}
}

func (uc *GetDayGrid) Execute(
	ctx context.Context,
	salonID uint,
	calendarID uint,
	date string,
	serviceID uint,
) (*domain.DayGrid, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	if _, err := uc.repo.GetCalendar(ctx, salonID, calendarID); err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(salon.Timezone, date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	duration := 0
	if serviceID != 0 {
		service, err := uc.repo.GetService(ctx, salonID, serviceID)
		if err != nil {
			return nil, err
		}
		duration = service.DurationMinutes
	}

	aps, err := uc.days.Load(ctx, salonID, calendarID, day, timezone.Location(salon.Timezone))
	if err != nil {
		return nil, err
	}

	grid := domain.BuildDayGrid(day, aps, duration)
	return &grid, nil
}
