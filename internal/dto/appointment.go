package dto

import (
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	CalendarID   uint      `json:"calendar_id"`
	CalendarName string    `json:"calendar_name"`
	Date         string    `json:"date"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	Status       string    `json:"status"`
	ClientID     uint      `json:"client_id"`
	ClientName   string    `json:"client_name"`
	ClientPhone  string    `json:"client_phone"`
	ServiceID    uint      `json:"service_id"`
	ServiceName  string    `json:"service_name"`
	Notes        string    `json:"notes"`
}

// FromAppointment formata datas e horas no fuso loc.
func FromAppointment(ap models.Appointment, loc *time.Location) AppointmentListDTO {
	if loc == nil {
		loc = time.UTC
	}
	start := ap.StartTime.In(loc)
	end := ap.EndTime.In(loc)

	return AppointmentListDTO{
		ID:           ap.ID,
		CalendarID:   ap.CalendarID,
		CalendarName: ap.Calendar.Name,
		Date:         domain.DateKey(start, loc),
		StartTime:    start,
		EndTime:      end,
		Start:        start.Format(domain.ClockLayout),
		End:          end.Format(domain.ClockLayout),
		Status:       ap.Status,
		ClientID:     ap.ClientID,
		ClientName:   ap.Client.Name,
		ClientPhone:  ap.Client.Phone,
		ServiceID:    ap.ServiceID,
		ServiceName:  ap.Service.Name,
		Notes:        ap.Notes,
	}
}

func FromAppointments(aps []models.Appointment, loc *time.Location) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, FromAppointment(ap, loc))
	}
	return out
}

// MonthDTO é o mês agrupado por "YYYY-MM-DD".
type MonthDTO struct {
	Year        int                             `json:"year"`
	Month       int                             `json:"month"`
	Days        map[string][]AppointmentListDTO `json:"days"`
	ActiveCount map[string]int                  `json:"active_count"`
}

func FromMonthBook(year, month int, book *domain.MonthBook) MonthDTO {
	out := MonthDTO{
		Year:        year,
		Month:       month,
		Days:        map[string][]AppointmentListDTO{},
		ActiveCount: map[string]int{},
	}

	counts := book.ActiveCounts()
	for _, key := range book.Keys() {
		out.Days[key] = FromAppointments(book.Day(key), book.Location())
		out.ActiveCount[key] = counts[key]
	}
	return out
}

// ServiceDTO marca serviços indisponíveis no dia em vez de ocultá-los.
type ServiceDTO struct {
	ID              uint     `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Category        string   `json:"category"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           float64  `json:"price"`
	AvailableDays   []string `json:"available_days"`
	Available       bool     `json:"available"`
}
