package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AvailabilityInput struct {
	SalonID    uint
	CalendarID uint
	ServiceID  uint
	Date       time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// FreeSlots percorre o expediente de wh em passos de step e devolve os
// horários onde um serviço de duration cabe sem conflito e fora do almoço.
// Horários anteriores a now são descartados.
func FreeSlots(
	date time.Time,
	wh *models.WorkingHours,
	duration time.Duration,
	step time.Duration,
	existing []models.Appointment,
	now time.Time,
) []TimeSlot {

	slots := []TimeSlot{}
	if wh == nil || !wh.Active || duration <= 0 || step <= 0 {
		return slots
	}

	dayStart, err := AtClock(date, wh.StartTime)
	if err != nil {
		return slots
	}
	dayEnd, err := AtClock(date, wh.EndTime)
	if err != nil || !dayEnd.After(dayStart) {
		return slots
	}

	lunchStart, lunchEnd, hasLunch := lunchWindow(date, wh)

	for cur := dayStart; !cur.Add(duration).After(dayEnd); cur = cur.Add(step) {
		slotEnd := cur.Add(duration)

		if cur.Before(now) {
			continue
		}
		if hasLunch && Overlaps(cur, slotEnd, lunchStart, lunchEnd) {
			continue
		}
		if HasConflict(existing, cur, slotEnd, 0) {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: cur.Format(ClockLayout),
			End:   slotEnd.Format(ClockLayout),
		})
	}

	return slots
}
