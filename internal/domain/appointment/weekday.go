package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var weekdayNames = [...]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
}

// WeekdayName devolve o nome do dia da semana de date em português.
func WeekdayName(date time.Time) string {
	return weekdayNames[date.Weekday()]
}

// IsServiceAvailableOnDay: lista vazia significa sem restrição, e não "nunca".
func IsServiceAvailableOnDay(service *models.Service, date time.Time) bool {
	if service == nil || len(service.AvailableDays) == 0 {
		return true
	}

	name := WeekdayName(date)
	for _, d := range service.AvailableDays {
		if strings.EqualFold(strings.TrimSpace(d), name) {
			return true
		}
	}
	return false
}

// IsWeekdayName reconhece os nomes aceitos em Service.AvailableDays.
func IsWeekdayName(name string) bool {
	name = strings.TrimSpace(name)
	for _, n := range weekdayNames {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}
