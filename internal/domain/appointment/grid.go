package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Constantes do grid diário: uma hora ocupa HourHeight unidades verticais.
const (
	HoursPerDay    = 24
	HourHeight     = 80.0
	MinBlockHeight = 40.0
)

type HourSlot struct {
	Hour   int     `json:"hour"`
	Label  string  `json:"label"`
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
	Night  bool    `json:"night"`
}

// Block é a posição de um agendamento no grid de 24h.
type Block struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

// Visual aplica a altura mínima de exibição. Não afeta regras de agenda.
func (b Block) Visual() Block {
	if b.Height < MinBlockHeight {
		b.Height = MinBlockHeight
	}
	return b
}

// Draft é o pré-preenchimento do formulário ao clicar em uma hora livre.
// EndTime vazio significa fim derivado da duração do serviço, o que ocorre
// quando o rascunho passaria da meia-noite.
type Draft struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// IsNightHour marca 22:00–05:59, apenas para estilo.
func IsNightHour(hour int) bool {
	return hour >= 22 || hour <= 5
}

// BuildHourSlots devolve os 24 blocos de hora, 0..23, em ordem.
func BuildHourSlots() []HourSlot {
	slots := make([]HourSlot, 0, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		slots = append(slots, HourSlot{
			Hour:   h,
			Label:  fmt.Sprintf("%02d:00", h),
			Top:    float64(h) * HourHeight,
			Height: HourHeight,
			Night:  IsNightHour(h),
		})
	}
	return slots
}

// Position mapeia [start, end) no grid usando o relógio local de start.
func Position(start, end time.Time) Block {
	startMinutes := start.Hour()*60 + start.Minute()
	duration := end.Sub(start).Minutes()

	return Block{
		Top:    float64(startMinutes) / 60 * HourHeight,
		Height: duration / 60 * HourHeight,
	}
}

// DraftForHour pré-preenche HH:00 → (HH+1):00, ou o fim derivado da duração
// do serviço quando durationMinutes > 0. Sem fim no mesmo dia, EndTime fica
// vazio.
func DraftForHour(hour int, durationMinutes int) Draft {
	start := FormatClock(hour * 60)
	if durationMinutes <= 0 {
		durationMinutes = 60
	}
	if hour*60+durationMinutes >= minutesPerDay {
		return Draft{StartTime: start}
	}
	end, _ := DeriveEndTime(start, durationMinutes)

	return Draft{StartTime: start, EndTime: end}
}

// ===============================
// Day grid
// ===============================

type PositionedAppointment struct {
	Appointment models.Appointment `json:"appointment"`
	Block       Block              `json:"block"`
}

type GridHour struct {
	HourSlot
	Appointments []PositionedAppointment `json:"appointments"`
	Draft        *Draft                  `json:"draft,omitempty"`
}

type DayGrid struct {
	Date        string     `json:"date"`
	Hours       []GridHour `json:"hours"`
	ActiveCount int        `json:"active_count"`
}

// BuildDayGrid distribui os agendamentos do dia nas horas em que começam.
// Os que vêm da véspera ocupam a hora 0, recortados à meia-noite. Horas sem
// agendamento ativo sobreposto recebem um Draft para criação.
func BuildDayGrid(day time.Time, aps []models.Appointment, durationMinutes int) DayGrid {
	loc := day.Location()
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)

	grid := DayGrid{
		Date:        DateKey(midnight, loc),
		ActiveCount: ActiveCount(aps),
	}

	for _, slot := range BuildHourSlots() {
		gh := GridHour{HourSlot: slot, Appointments: []PositionedAppointment{}}

		hourStart := midnight.Add(time.Duration(slot.Hour) * time.Hour)
		hourEnd := hourStart.Add(time.Hour)

		for _, ap := range aps {
			start := ap.StartTime.In(loc)
			if start.Before(midnight) {
				if slot.Hour != 0 || !ap.EndTime.After(midnight) {
					continue
				}
				start = midnight
			} else if DateKey(start, loc) != grid.Date || start.Hour() != slot.Hour {
				continue
			}
			gh.Appointments = append(gh.Appointments, PositionedAppointment{
				Appointment: ap,
				Block:       Position(start, ap.EndTime.In(loc)).Visual(),
			})
		}

		if !HasConflict(aps, hourStart, hourEnd, 0) {
			d := DraftForHour(slot.Hour, durationMinutes)
			gh.Draft = &d
		}

		grid.Hours = append(grid.Hours, gh)
	}

	return grid
}
