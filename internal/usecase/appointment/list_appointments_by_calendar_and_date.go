package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ListAppointmentsByCalendarAndDate é a leitura do dia de uma agenda, a mesma
// lista usada pela checagem de conflito e pelo grid.
type ListAppointmentsByCalendarAndDate struct {
	repo domain.Repository
	days *DayStore
}

func NewListAppointmentsByCalendarAndDate(
	repo domain.Repository,
	days *DayStore,
) *ListAppointmentsByCalendarAndDate {
	return &ListAppointmentsByCalendarAndDate{
		repo: repo,
		days: days,
	}
}

func (uc *ListAppointmentsByCalendarAndDate) Execute(
	ctx context.Context,
	salonID uint,
	calendarID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

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

	loc := timezone.Location(salon.Timezone)
	aps, err := uc.days.Load(ctx, salonID, calendarID, day, loc)
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(aps, loc), nil
}
