package service

import (
	"context"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListServicesInput struct {
	SalonID uint

	// CalendarID restringe aos serviços da agenda; 0 lista todos.
	CalendarID uint

	// Date (YYYY-MM-DD), quando informada, marca Available pelo dia da semana.
	Date string
}

type ListServices struct {
	repo domain.Repository
}

func NewListServices(repo domain.Repository) *ListServices {
	return &ListServices{repo: repo}
}

func (uc *ListServices) Execute(ctx context.Context, in ListServicesInput) ([]dto.ServiceDTO, error) {
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}

	if in.CalendarID != 0 {
		if _, err := uc.repo.GetCalendar(ctx, in.SalonID, in.CalendarID); err != nil {
			return nil, err
		}
	}

	services, err := uc.repo.ListServices(ctx, in.SalonID, in.CalendarID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ServiceDTO, 0, len(services))
	for i := range services {
		s := &services[i]

		available := true
		if in.Date != "" {
			day, err := timezone.ParseDate(salon.Timezone, in.Date)
			if err != nil {
				return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
			}
			available = domain.IsServiceAvailableOnDay(s, day)
		}

		days := s.AvailableDays
		if days == nil {
			days = []string{}
		}

		out = append(out, dto.ServiceDTO{
			ID:              s.ID,
			Name:            s.Name,
			Description:     s.Description,
			Category:        s.Category,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
			AvailableDays:   days,
			Available:       available,
		})
	}

	return out, nil
}
