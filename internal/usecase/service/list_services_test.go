package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func seed(t *testing.T) (*memory.Repository, models.Salon, models.Calendar) {
	t.Helper()
	repo := memory.New()
	salon := repo.AddSalon(models.Salon{Name: "Studio", Slug: "studio", Timezone: "UTC"})
	cut := repo.AddService(models.Service{SalonID: salon.ID, Name: "Corte", DurationMinutes: 45})
	repo.AddService(models.Service{
		SalonID:         salon.ID,
		Name:            "Escova",
		DurationMinutes: 40,
		AvailableDays:   []string{"sábado", " Sexta-feira "},
	})
	cal := repo.AddCalendar(models.Calendar{SalonID: salon.ID, Name: "Ana"}, cut.ID)
	return repo, salon, cal
}

func TestListServices_AvailabilityFlag(t *testing.T) {
	repo, salon, _ := seed(t)
	uc := NewListServices(repo)

	// 2026-03-14 é sábado
	out, err := uc.Execute(context.Background(), ListServicesInput{SalonID: salon.ID, Date: "2026-03-14"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Corte", out[0].Name)
	assert.True(t, out[0].Available)
	assert.Equal(t, []string{}, out[0].AvailableDays)
	assert.True(t, out[1].Available)

	// 2026-03-09 é segunda: indisponível, mas continua na lista
	out, err = uc.Execute(context.Background(), ListServicesInput{SalonID: salon.ID, Date: "2026-03-09"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.False(t, out[1].Available)
}

func TestListServices_NoDateMeansAvailable(t *testing.T) {
	repo, salon, _ := seed(t)

	out, err := NewListServices(repo).Execute(context.Background(), ListServicesInput{SalonID: salon.ID})
	require.NoError(t, err)
	for _, s := range out {
		assert.True(t, s.Available, s.Name)
	}
}

func TestListServices_ByCalendar(t *testing.T) {
	repo, salon, cal := seed(t)
	uc := NewListServices(repo)

	out, err := uc.Execute(context.Background(), ListServicesInput{SalonID: salon.ID, CalendarID: cal.ID})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Corte", out[0].Name)

	_, err = uc.Execute(context.Background(), ListServicesInput{SalonID: salon.ID, CalendarID: 99})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeCalendarNotFound))
}

func TestListServices_InvalidDate(t *testing.T) {
	repo, salon, _ := seed(t)

	_, err := NewListServices(repo).Execute(context.Background(), ListServicesInput{SalonID: salon.ID, Date: "amanhã"})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidDateOrTime))
}
