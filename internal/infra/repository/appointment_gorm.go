package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound converte gorm.ErrRecordNotFound no código de negócio informado.
func notFound(err error, code string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness(code)
	}
	return err
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSalonByID(ctx context.Context, id uint) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, notFound(err, httperr.CodeSalonNotFound)
	}
	return &salon, nil
}

func (r *AppointmentGormRepository) GetSalonBySlug(ctx context.Context, slug string) (*models.Salon, error) {
	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(strings.TrimSpace(slug))).
		First(&salon).Error; err != nil {
		return nil, notFound(err, httperr.CodeSalonNotFound)
	}
	return &salon, nil
}

// --------------------------------------------------
// Calendar
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCalendar(ctx context.Context, salonID, calendarID uint) (*models.Calendar, error) {
	var cal models.Calendar
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", calendarID, salonID).
		First(&cal).Error; err != nil {
		return nil, notFound(err, httperr.CodeCalendarNotFound)
	}
	return &cal, nil
}

func (r *AppointmentGormRepository) ListCalendars(ctx context.Context, salonID uint) ([]models.Calendar, error) {
	var cals []models.Calendar
	if err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = true", salonID).
		Order("id ASC").
		Find(&cals).Error; err != nil {
		return nil, err
	}
	return cals, nil
}

func (r *AppointmentGormRepository) LockCalendar(ctx context.Context, calendarID uint) error {
	var cal models.Calendar
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		First(&cal, calendarID).Error
	return notFound(err, httperr.CodeCalendarNotFound)
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(ctx context.Context, salonID, serviceID uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ? AND active = true", serviceID, salonID).
		First(&svc).Error; err != nil {
		return nil, notFound(err, httperr.CodeServiceNotFound)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) ListServices(ctx context.Context, salonID, calendarID uint) ([]models.Service, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("services.salon_id = ? AND services.active = true", salonID)

	if calendarID != 0 {
		q = q.
			Joins("JOIN calendar_services cs ON cs.service_id = services.id").
			Where("cs.calendar_id = ?", calendarID)
	}

	var services []models.Service
	if err := q.Order("services.name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(ctx context.Context, salonID, clientID uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", clientID, salonID).
		First(&client).Error; err != nil {
		return nil, notFound(err, httperr.CodeClientNotFound)
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	salonID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND phone = ?", salonID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		SalonID: salonID,
		Name:    name,
		Phone:   phone,
		Email:   email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *AppointmentGormRepository) ListClients(ctx context.Context, salonID uint, query string) ([]models.Client, error) {
	q := r.db.WithContext(ctx).Where("salon_id = ?", salonID)

	if query = strings.ToLower(strings.TrimSpace(query)); query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, salonID, appointmentID uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, httperr.CodeAppointmentNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	f domain.PeriodFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Calendar").
		Where("salon_id = ?", f.SalonID)

	if f.Overlap {
		q = q.Where("start_time < ? AND end_time > ?", f.End, f.Start)
	} else {
		q = q.Where("start_time >= ? AND start_time < ?", f.Start, f.End)
	}

	if f.CalendarID != 0 {
		q = q.Where("calendar_id = ?", f.CalendarID)
	}

	var apps []models.Appointment
	if err := q.Order("start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error
}

func (r *AppointmentGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(ctx context.Context, salonID, appointmentID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", appointmentID, salonID).
		Delete(&models.Appointment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeAppointmentNotFound)
	}
	return nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) GetWorkingHours(ctx context.Context, calendarID uint, weekday int) (*models.WorkingHours, error) {
	var wh models.WorkingHours
	if err := r.db.WithContext(ctx).
		Where("calendar_id = ? AND weekday = ?", calendarID, weekday).
		First(&wh).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *AppointmentGormRepository) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
