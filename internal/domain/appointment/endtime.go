package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	ClockLayout   = "15:04"
	minutesPerDay = 24 * 60
)

// ParseClock converte "HH:mm" em minutos desde a meia-noite.
func ParseClock(hm string) (int, error) {
	t, err := time.Parse(ClockLayout, hm)
	if err != nil {
		return 0, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock formata minutos desde a meia-noite como "HH:mm", dando a volta
// no relógio quando passa de 24h.
func FormatClock(minutes int) string {
	m := ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// DeriveEndTime soma a duração do serviço ao horário inicial.
// Serviços que atravessam a meia-noite não recebem tratamento especial:
// o relógio simplesmente dá a volta.
func DeriveEndTime(startTime string, durationMinutes int) (string, error) {
	if durationMinutes <= 0 {
		return "", httperr.ErrBusiness(httperr.CodeInvalidInterval)
	}

	start, err := ParseClock(startTime)
	if err != nil {
		return "", err
	}

	return FormatClock(start + durationMinutes), nil
}

// EndFromService é a forma em timestamp de DeriveEndTime.
func EndFromService(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// AtClock posiciona "HH:mm" no dia de date, no fuso de date.
func AtClock(date time.Time, hm string) (time.Time, error) {
	mins, err := ParseClock(hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		mins/60, mins%60, 0, 0,
		date.Location(),
	), nil
}
