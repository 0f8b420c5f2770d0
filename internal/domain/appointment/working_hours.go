package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// WithinWorkingHours valida se [start, end) está dentro do expediente,
// incluindo a pausa de almoço (regra de domínio).
func WithinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return false
	}

	workStart, err := AtClock(start, wh.StartTime)
	if err != nil {
		return false
	}
	workEnd, err := AtClock(start, wh.EndTime)
	if err != nil {
		return false
	}

	if start.Before(workStart) || end.After(workEnd) {
		return false
	}

	if lunchStart, lunchEnd, ok := lunchWindow(start, wh); ok {
		if Overlaps(start, end, lunchStart, lunchEnd) {
			return false
		}
	}

	return true
}

func lunchWindow(date time.Time, wh *models.WorkingHours) (time.Time, time.Time, bool) {
	if wh.LunchStart == "" || wh.LunchEnd == "" {
		return time.Time{}, time.Time{}, false
	}

	ls, err := AtClock(date, wh.LunchStart)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	le, err := AtClock(date, wh.LunchEnd)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return ls, le, true
}
