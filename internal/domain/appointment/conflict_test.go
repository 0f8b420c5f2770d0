package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var testDay = time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

func at(hm string) time.Time {
	t, err := AtClock(testDay, hm)
	if err != nil {
		panic(err)
	}
	return t
}

func scheduled(id uint, start, end string) models.Appointment {
	return models.Appointment{
		ID:         id,
		CalendarID: 1,
		StartTime:  at(start),
		EndTime:    at(end),
		Status:     string(StatusScheduled),
	}
}

func TestHasConflict_Scenario(t *testing.T) {
	list := []models.Appointment{scheduled(1, "09:00", "10:00")}

	cases := []struct {
		start, end string
		want       bool
	}{
		{"10:00", "11:00", false},
		{"09:30", "10:30", true},
		{"08:00", "09:00", false},
		{"08:30", "09:30", true},
		{"09:00", "10:00", true},
		{"09:15", "09:45", true},
		{"08:00", "11:00", true},
	}

	for _, tc := range cases {
		t.Run(tc.start+"-"+tc.end, func(t *testing.T) {
			assert.Equal(t, tc.want, HasConflict(list, at(tc.start), at(tc.end), 0))
		})
	}
}

func TestHasConflict_SelfExclusionOnEdit(t *testing.T) {
	list := []models.Appointment{scheduled(1, "09:00", "10:00")}

	assert.False(t, HasConflict(list, at("09:30"), at("10:30"), 1))
	assert.False(t, HasConflict(list, at("09:00"), at("10:00"), 1))
	assert.True(t, HasConflict(list, at("09:30"), at("10:30"), 2))
}

func TestHasConflict_CanceledIsTransparent(t *testing.T) {
	ap := scheduled(1, "09:00", "10:00")
	ap.Status = string(StatusCanceled)

	assert.False(t, HasConflict([]models.Appointment{ap}, at("09:00"), at("10:00"), 0))
}

func TestHasConflict_EveryPairOfScheduled(t *testing.T) {
	list := []models.Appointment{
		scheduled(1, "09:00", "10:00"),
		scheduled(2, "10:00", "10:45"),
		scheduled(3, "13:00", "14:30"),
	}

	for _, ap := range list {
		assert.True(t, HasConflict(list, ap.StartTime, ap.EndTime, 0), "exact interval of %d", ap.ID)
		assert.False(t, HasConflict([]models.Appointment{ap}, ap.EndTime, ap.EndTime.Add(time.Hour), 0))
		assert.False(t, HasConflict([]models.Appointment{ap}, ap.StartTime.Add(-time.Hour), ap.StartTime, 0))
	}
}

func TestFindConflict_ReturnsFirstOverlap(t *testing.T) {
	list := []models.Appointment{
		scheduled(1, "09:00", "10:00"),
		scheduled(2, "10:00", "11:00"),
	}

	got := FindConflict(list, at("10:30"), at("11:30"), 0)
	if assert.NotNil(t, got) {
		assert.Equal(t, uint(2), got.ID)
	}
	assert.Nil(t, FindConflict(list, at("11:00"), at("12:00"), 0))
}

func TestValidateInterval(t *testing.T) {
	assert.NoError(t, ValidateInterval(at("09:00"), at("09:01")))
	assert.Error(t, ValidateInterval(at("09:00"), at("09:00")))
	assert.Error(t, ValidateInterval(at("10:00"), at("09:00")))
}

func TestCancel(t *testing.T) {
	ap := scheduled(1, "09:00", "10:00")
	now := at("08:00")

	assert.NoError(t, Cancel(&ap, now))
	assert.Equal(t, string(StatusCanceled), ap.Status)
	if assert.NotNil(t, ap.CanceledAt) {
		assert.True(t, ap.CanceledAt.Equal(now))
	}

	assert.Error(t, Cancel(&ap, now), "canceling twice is an invalid state")
}

func TestReschedule(t *testing.T) {
	ap := scheduled(1, "09:00", "10:00")

	assert.NoError(t, Reschedule(&ap, at("09:30"), at("10:30")))
	assert.True(t, ap.StartTime.Equal(at("09:30")))

	assert.Error(t, Reschedule(&ap, at("11:00"), at("10:00")))

	ap.Status = string(StatusCanceled)
	assert.Error(t, Reschedule(&ap, at("12:00"), at("13:00")))
}
