package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListAppointmentsByMonth struct {
	repo domain.Repository
}

func NewListAppointmentsByMonth(
	repo domain.Repository,
) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{
		repo: repo,
	}
}

// Book agrupa o mês por dia no fuso do salão. calendarID 0 traz todas as
// agendas.
func (uc *ListAppointmentsByMonth) Book(
	ctx context.Context,
	salonID uint,
	calendarID uint,
	year int,
	month int,
) (*domain.MonthBook, error) {

	if month < 1 || month > 12 || year < 1970 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	if calendarID != 0 {
		if _, err := uc.repo.GetCalendar(ctx, salonID, calendarID); err != nil {
			return nil, err
		}
	}

	loc := timezone.Location(salon.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, domain.PeriodFilter{
		SalonID:    salonID,
		CalendarID: calendarID,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, err
	}

	return domain.NewMonthBook(appointments, loc), nil
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	salonID uint,
	calendarID uint,
	year int,
	month int,
) (*dto.MonthDTO, error) {

	book, err := uc.Book(ctx, salonID, calendarID, year, month)
	if err != nil {
		return nil, err
	}

	out := dto.FromMonthBook(year, month, book)
	return &out, nil
}
