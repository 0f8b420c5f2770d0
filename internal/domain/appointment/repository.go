package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// PeriodFilter restringe a listagem de agendamentos. CalendarID 0 significa
// todas as agendas do salão. Por padrão entram os agendamentos que começam
// em [Start, End); com Overlap, todos que cruzam a janela, inclusive os que
// vêm da véspera.
type PeriodFilter struct {
	SalonID    uint
	CalendarID uint
	Start      time.Time
	End        time.Time
	Overlap    bool
}

// Matches aplica o filtro de período a um único agendamento.
func (f PeriodFilter) Matches(ap models.Appointment) bool {
	if ap.SalonID != f.SalonID {
		return false
	}
	if f.CalendarID != 0 && ap.CalendarID != f.CalendarID {
		return false
	}
	if f.Overlap {
		return Overlaps(ap.StartTime, ap.EndTime, f.Start, f.End)
	}
	return !ap.StartTime.Before(f.Start) && ap.StartTime.Before(f.End)
}

type Repository interface {
	// -------- Salon --------
	GetSalonByID(ctx context.Context, id uint) (*models.Salon, error)
	GetSalonBySlug(ctx context.Context, slug string) (*models.Salon, error)

	// -------- Calendar --------
	GetCalendar(ctx context.Context, salonID, calendarID uint) (*models.Calendar, error)
	ListCalendars(ctx context.Context, salonID uint) ([]models.Calendar, error)

	// LockCalendar serializa escritas concorrentes na mesma agenda.
	// Só tem efeito dentro de Transaction.
	LockCalendar(ctx context.Context, calendarID uint) error

	// -------- Service --------
	GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error)
	ListServices(ctx context.Context, salonID, calendarID uint) ([]models.Service, error)

	// -------- Client --------
	GetClient(ctx context.Context, salonID, clientID uint) (*models.Client, error)
	GetOrCreateClient(ctx context.Context, salonID uint, name, phone, email string) (*models.Client, error)
	ListClients(ctx context.Context, salonID uint, query string) ([]models.Client, error)

	// -------- Appointment --------
	GetAppointment(ctx context.Context, salonID, appointmentID uint) (*models.Appointment, error)
	ListAppointmentsForPeriod(ctx context.Context, f PeriodFilter) ([]models.Appointment, error)
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
	DeleteAppointment(ctx context.Context, salonID, appointmentID uint) error

	// -------- Availability --------
	// GetWorkingHours devolve nil, nil quando a agenda não abre no dia.
	GetWorkingHours(ctx context.Context, calendarID uint, weekday int) (*models.WorkingHours, error)

	// Transaction executa fn com um Repository transacional.
	Transaction(ctx context.Context, fn func(tx Repository) error) error
}
