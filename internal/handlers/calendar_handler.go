package handlers

import (
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

const streamKeepAlive = 25 * time.Second

// ======================================================
// HANDLER
// ======================================================

type CalendarHandler struct {
	db *gorm.DB
}

func NewCalendarHandler(db *gorm.DB) *CalendarHandler {
	return &CalendarHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCalendarRequest struct {
	Name             string `json:"name" binding:"required"`
	CollaboratorName string `json:"collaborator_name"`
	Color            string `json:"color"`
	ServiceIDs       []uint `json:"service_ids"`
}

type UpdateCalendarRequest struct {
	Name             *string `json:"name,omitempty"`
	CollaboratorName *string `json:"collaborator_name,omitempty"`
	Color            *string `json:"color,omitempty"`
	Active           *bool   `json:"active,omitempty"`
}

type SetCalendarServicesRequest struct {
	ServiceIDs []uint `json:"service_ids"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *CalendarHandler) find(c *gin.Context, db *gorm.DB) (*models.Calendar, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	var cal models.Calendar
	if err := db.
		Preload("Services").
		Where("id = ? AND salon_id = ?", id, middleware.SalonID(c)).
		First(&cal).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeCalendarNotFound, "Agenda não encontrada.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_calendar", "Erro ao buscar agenda.")
		return nil, false
	}
	return &cal, true
}

// salonServices carrega os serviços de ids garantindo que todos são do salão.
func salonServices(db *gorm.DB, salonID uint, ids []uint) ([]models.Service, error) {
	if len(ids) == 0 {
		return []models.Service{}, nil
	}

	var services []models.Service
	if err := db.Where("salon_id = ? AND id IN ?", salonID, ids).Find(&services).Error; err != nil {
		return nil, err
	}
	if len(services) != len(uniqueIDs(ids)) {
		return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
	}
	return services, nil
}

func uniqueIDs(ids []uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// ======================================================
// CRUD
// ======================================================

func (h *CalendarHandler) List(c *gin.Context) {
	var cals []models.Calendar
	if err := h.db.WithContext(c.Request.Context()).
		Preload("Services").
		Where("salon_id = ?", middleware.SalonID(c)).
		Order("id ASC").
		Find(&cals).Error; err != nil {

		httperr.Internal(c, "failed_to_list_calendars", "Erro ao listar agendas.")
		return
	}

	httpresp.List(c, cals)
}

func (h *CalendarHandler) Create(c *gin.Context) {
	var req CreateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	salonID := middleware.SalonID(c)
	db := h.db.WithContext(c.Request.Context())

	services, err := salonServices(db, salonID, req.ServiceIDs)
	if err != nil {
		httperr.Business(c, err, "failed_to_create_calendar", "Erro ao criar agenda.")
		return
	}

	cal := models.Calendar{
		SalonID:          salonID,
		Name:             strings.TrimSpace(req.Name),
		CollaboratorName: strings.TrimSpace(req.CollaboratorName),
		Color:            req.Color,
		Active:           true,
		Services:         services,
	}

	if err := db.Create(&cal).Error; err != nil {
		httperr.Internal(c, "failed_to_create_calendar", "Erro ao criar agenda.")
		return
	}

	httpresp.Created(c, cal)
}

func (h *CalendarHandler) Update(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	cal, ok := h.find(c, db)
	if !ok {
		return
	}

	var req UpdateCalendarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if req.Name != nil {
		cal.Name = strings.TrimSpace(*req.Name)
	}
	if req.CollaboratorName != nil {
		cal.CollaboratorName = strings.TrimSpace(*req.CollaboratorName)
	}
	if req.Color != nil {
		cal.Color = *req.Color
	}
	if req.Active != nil {
		cal.Active = *req.Active
	}

	if err := db.Omit("Services").Save(cal).Error; err != nil {
		httperr.Internal(c, "failed_to_update_calendar", "Erro ao atualizar agenda.")
		return
	}

	httpresp.OK(c, cal)
}

// PUT /me/calendars/:id/services substitui os serviços oferecidos pela agenda.
func (h *CalendarHandler) SetServices(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	cal, ok := h.find(c, db)
	if !ok {
		return
	}

	var req SetCalendarServicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	services, err := salonServices(db, cal.SalonID, req.ServiceIDs)
	if err != nil {
		httperr.Business(c, err, "failed_to_update_calendar", "Erro ao atualizar agenda.")
		return
	}

	if err := db.Model(cal).Association("Services").Replace(services); err != nil {
		httperr.Internal(c, "failed_to_update_calendar", "Erro ao atualizar agenda.")
		return
	}
	cal.Services = services

	httpresp.OK(c, cal)
}

// ======================================================
// STREAM (SSE)
// ======================================================

type StreamHandler struct {
	repo      domain.Repository
	broker    *notify.Broker
	keepAlive time.Duration
}

func NewStreamHandler(repo domain.Repository, broker *notify.Broker) *StreamHandler {
	return &StreamHandler{repo: repo, broker: broker, keepAlive: streamKeepAlive}
}

type DayEvent struct {
	CalendarID    uint                     `json:"calendar_id"`
	Date          string                   `json:"date"`
	Action        string                   `json:"action"`
	AppointmentID uint                     `json:"appointment_id"`
	Appointments  []dto.AppointmentListDTO `json:"appointments"`
}

// GET /me/calendars/:id/stream
// Cada mudança na agenda gera um evento "day" com a lista completa do dia afetado.
func (h *StreamHandler) Stream(c *gin.Context) {
	calendarID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	salonID := middleware.SalonID(c)

	salon, err := h.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		httperr.Business(c, err, "failed_to_open_stream", "Erro ao abrir o canal da agenda.")
		return
	}
	if _, err := h.repo.GetCalendar(ctx, salonID, calendarID); err != nil {
		httperr.Business(c, err, "failed_to_open_stream", "Erro ao abrir o canal da agenda.")
		return
	}

	loc := timezone.Location(salon.Timezone)

	updates, cancel := h.broker.Subscribe(calendarID)
	defer cancel()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("ready", gin.H{"calendar_id": calendarID})
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case u, ok := <-updates:
			if !ok {
				return false
			}
			c.SSEvent("day", DayEvent{
				CalendarID:    u.CalendarID,
				Date:          u.DateKey,
				Action:        u.Action,
				AppointmentID: u.AppointmentID,
				Appointments:  dto.FromAppointments(u.Appointments, loc),
			})
			return true
		}
	})
}
