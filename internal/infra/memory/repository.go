// Package memory mantém um Repository em memória, usado pelos testes dos
// casos de uso e dos handlers.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository struct {
	txMu sync.Mutex
	mu   sync.RWMutex

	nextID uint

	salons           map[uint]models.Salon
	calendars        map[uint]models.Calendar
	services         map[uint]models.Service
	calendarServices map[uint][]uint
	clients          map[uint]models.Client
	appointments     map[uint]models.Appointment
	workingHours     map[uint]map[int]models.WorkingHours
	attachments      map[uint]models.Attachment
}

func New() *Repository {
	return &Repository{
		salons:           map[uint]models.Salon{},
		calendars:        map[uint]models.Calendar{},
		services:         map[uint]models.Service{},
		calendarServices: map[uint][]uint{},
		clients:          map[uint]models.Client{},
		appointments:     map[uint]models.Appointment{},
		workingHours:     map[uint]map[int]models.WorkingHours{},
		attachments:      map[uint]models.Attachment{},
	}
}

func (r *Repository) id() uint {
	r.nextID++
	return r.nextID
}

// ======================================================
// Seed
// ======================================================

func (r *Repository) AddSalon(s models.Salon) models.Salon {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.id()
	}
	r.salons[s.ID] = s
	return s
}

func (r *Repository) AddCalendar(c models.Calendar, serviceIDs ...uint) models.Calendar {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.id()
	}
	c.Active = true
	r.calendars[c.ID] = c
	r.calendarServices[c.ID] = append([]uint(nil), serviceIDs...)
	return c
}

func (r *Repository) AddService(s models.Service) models.Service {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID == 0 {
		s.ID = r.id()
	}
	s.Active = true
	r.services[s.ID] = s
	return s
}

func (r *Repository) SetWorkingHours(wh models.WorkingHours) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.workingHours[wh.CalendarID] == nil {
		r.workingHours[wh.CalendarID] = map[int]models.WorkingHours{}
	}
	r.workingHours[wh.CalendarID][wh.Weekday] = wh
}

// AddAppointment grava direto, sem checagem de conflito.
func (r *Repository) AddAppointment(ap models.Appointment) models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == 0 {
		ap.ID = r.id()
	}
	if ap.Status == "" {
		ap.Status = string(domain.StatusScheduled)
	}
	r.appointments[ap.ID] = ap
	return ap
}

func (r *Repository) AppointmentCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.appointments)
}

// ======================================================
// Salon / Calendar
// ======================================================

func (r *Repository) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.salons[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeSalonNotFound)
	}
	return &s, nil
}

func (r *Repository) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, s := range r.salons {
		if s.Slug == slug {
			return &s, nil
		}
	}
	return nil, httperr.ErrBusiness(httperr.CodeSalonNotFound)
}

func (r *Repository) GetCalendar(_ context.Context, salonID, calendarID uint) (*models.Calendar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.calendars[calendarID]
	if !ok || c.SalonID != salonID {
		return nil, httperr.ErrBusiness(httperr.CodeCalendarNotFound)
	}
	return &c, nil
}

func (r *Repository) ListCalendars(_ context.Context, salonID uint) ([]models.Calendar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Calendar{}
	for _, c := range r.calendars {
		if c.SalonID == salonID && c.Active {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *Repository) LockCalendar(_ context.Context, calendarID uint) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := r.calendars[calendarID]; !ok {
		return httperr.ErrBusiness(httperr.CodeCalendarNotFound)
	}
	return nil
}

// ======================================================
// Service / Client
// ======================================================

func (r *Repository) GetService(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.services[serviceID]
	if !ok || s.SalonID != salonID || !s.Active {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	return &s, nil
}

func (r *Repository) ListServices(_ context.Context, salonID, calendarID uint) ([]models.Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var allowed map[uint]bool
	if calendarID != 0 {
		allowed = map[uint]bool{}
		for _, id := range r.calendarServices[calendarID] {
			allowed[id] = true
		}
	}

	out := []models.Service{}
	for _, s := range r.services {
		if s.SalonID != salonID || !s.Active {
			continue
		}
		if allowed != nil && !allowed[s.ID] {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Repository) GetClient(_ context.Context, salonID, clientID uint) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[clientID]
	if !ok || c.SalonID != salonID {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return &c, nil
}

func (r *Repository) GetOrCreateClient(_ context.Context, salonID uint, name, phone, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.SalonID == salonID && c.Phone == phone {
			return &c, nil
		}
	}
	c := models.Client{ID: r.id(), SalonID: salonID, Name: name, Phone: phone, Email: email}
	r.clients[c.ID] = c
	return &c, nil
}

func (r *Repository) ListClients(_ context.Context, salonID uint, query string) ([]models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	query = strings.ToLower(strings.TrimSpace(query))

	out := []models.Client{}
	for _, c := range r.clients {
		if c.SalonID != salonID {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(c.Name), query) &&
			!strings.Contains(c.Phone, query) &&
			!strings.Contains(strings.ToLower(c.Email), query) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ======================================================
// Appointment
// ======================================================

func (r *Repository) GetAppointment(_ context.Context, salonID, appointmentID uint) (*models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.SalonID != salonID {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	ap = r.preload(ap)
	return &ap, nil
}

func (r *Repository) ListAppointmentsForPeriod(_ context.Context, f domain.PeriodFilter) ([]models.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if !f.Matches(ap) {
			continue
		}
		out = append(out, r.preload(ap))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (r *Repository) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap.ID = r.id()
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now
	r.appointments[ap.ID] = stripAssociations(*ap)
	return nil
}

func (r *Repository) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[ap.ID]; !ok {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	ap.UpdatedAt = time.Now()
	r.appointments[ap.ID] = stripAssociations(*ap)
	return nil
}

func (r *Repository) DeleteAppointment(_ context.Context, salonID, appointmentID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[appointmentID]
	if !ok || ap.SalonID != salonID {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	delete(r.appointments, appointmentID)
	return nil
}

func (r *Repository) GetWorkingHours(_ context.Context, calendarID uint, weekday int) (*models.WorkingHours, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	wh, ok := r.workingHours[calendarID][weekday]
	if !ok {
		return nil, nil
	}
	return &wh, nil
}

// Transaction serializa as transações, o que equivale ao lock de linha da
// agenda no postgres.
func (r *Repository) Transaction(_ context.Context, fn func(tx domain.Repository) error) error {
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(r)
}

func (r *Repository) preload(ap models.Appointment) models.Appointment {
	ap.Calendar = r.calendars[ap.CalendarID]
	ap.Client = r.clients[ap.ClientID]
	ap.Service = r.services[ap.ServiceID]
	return ap
}

func stripAssociations(ap models.Appointment) models.Appointment {
	ap.Calendar = models.Calendar{}
	ap.Client = models.Client{}
	ap.Service = models.Service{}
	ap.Attachments = nil
	return ap
}

var _ domain.Repository = (*Repository)(nil)
