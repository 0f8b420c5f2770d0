package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestDateKey_UsesSalonTimezone(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*3600)
	// 01:30 UTC ainda é o dia anterior em São Paulo.
	ts := time.Date(2026, 3, 10, 1, 30, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-09", DateKey(ts, saoPaulo))
	assert.Equal(t, "2026-03-10", DateKey(ts, time.UTC))
	assert.Equal(t, "2026-03-10", DateKey(ts, nil))
}

func TestGroupByDateKey_RoundTrip(t *testing.T) {
	loc := time.UTC
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, loc)

	var aps []models.Appointment
	for i := 0; i < 20; i++ {
		start := base.Add(time.Duration(i*17) * time.Hour)
		aps = append(aps, models.Appointment{
			ID:        uint(i + 1),
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Status:    string(StatusScheduled),
		})
	}

	buckets := GroupByDateKey(aps, loc)
	flat := Flatten(buckets)

	require.Len(t, flat, len(aps))
	ids := make(map[uint]int)
	for _, ap := range flat {
		ids[ap.ID]++
	}
	for _, ap := range aps {
		assert.Equal(t, 1, ids[ap.ID], "appointment %d", ap.ID)
	}
}

func TestActiveCount_IgnoresCanceled(t *testing.T) {
	aps := []models.Appointment{
		scheduled(1, "09:00", "10:00"),
		scheduled(2, "10:00", "11:00"),
	}
	aps[1].Status = string(StatusCanceled)

	assert.Equal(t, 1, ActiveCount(aps))
}

func TestMonthBook_LazyFill(t *testing.T) {
	a := scheduled(1, "09:00", "10:00")
	book := NewMonthBook([]models.Appointment{a}, time.UTC)

	key := DateKey(a.StartTime, time.UTC)
	assert.True(t, book.Has(key))
	assert.False(t, book.Has("2026-03-10"))

	later := scheduled(3, "15:00", "16:00")
	earlier := scheduled(2, "07:00", "08:00")
	updated := a
	updated.Notes = "editado"

	book.Merge(key, []models.Appointment{later, earlier, updated})

	day := book.Day(key)
	require.Len(t, day, 3)
	assert.Equal(t, []uint{2, 1, 3}, []uint{day[0].ID, day[1].ID, day[2].ID})
	assert.Equal(t, "editado", day[1].Notes)

	assert.Equal(t, []string{key}, book.Keys())
	assert.Equal(t, 3, book.ActiveCounts()[key])
}
