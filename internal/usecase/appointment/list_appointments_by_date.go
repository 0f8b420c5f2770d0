package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ListAppointmentsByDate lista o dia de todas as agendas do salão.
type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	salonID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(salon.Timezone, date)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	loc := timezone.Location(salon.Timezone)
	start, end := DayRange(day, loc)

	appointments, err := uc.repo.ListAppointmentsForPeriod(ctx, domain.PeriodFilter{
		SalonID: salonID,
		Start:   start,
		End:     end,
	})
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(appointments, loc), nil
}
