package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func workingDay() *models.WorkingHours {
	return &models.WorkingHours{
		Weekday:    1,
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "13:00",
		LunchStart: "11:00",
		LunchEnd:   "12:00",
	}
}

func TestFreeSlots(t *testing.T) {
	existing := []models.Appointment{scheduled(1, "09:30", "10:00")}

	slots := FreeSlots(testDay, workingDay(), 30*time.Minute, 30*time.Minute, existing, time.Time{})

	assert.Equal(t, []TimeSlot{
		{Start: "09:00", End: "09:30"},
		{Start: "10:00", End: "10:30"},
		{Start: "10:30", End: "11:00"},
		{Start: "12:00", End: "12:30"},
		{Start: "12:30", End: "13:00"},
	}, slots)
}

func TestFreeSlots_SkipsPastAndInactive(t *testing.T) {
	slots := FreeSlots(testDay, workingDay(), time.Hour, time.Hour, nil, at("10:30"))
	assert.Equal(t, []TimeSlot{{Start: "12:00", End: "13:00"}}, slots)

	off := workingDay()
	off.Active = false
	assert.Empty(t, FreeSlots(testDay, off, time.Hour, time.Hour, nil, time.Time{}))
	assert.Empty(t, FreeSlots(testDay, nil, time.Hour, time.Hour, nil, time.Time{}))
}

func TestWithinWorkingHours(t *testing.T) {
	wh := workingDay()

	assert.True(t, WithinWorkingHours(wh, at("09:00"), at("11:00")))
	assert.True(t, WithinWorkingHours(wh, at("12:00"), at("13:00")))
	assert.False(t, WithinWorkingHours(wh, at("08:30"), at("09:30")))
	assert.False(t, WithinWorkingHours(wh, at("10:30"), at("11:30")))
	assert.False(t, WithinWorkingHours(wh, at("12:30"), at("13:30")))
	assert.False(t, WithinWorkingHours(nil, at("09:00"), at("10:00")))
}
