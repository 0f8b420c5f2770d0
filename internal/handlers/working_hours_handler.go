package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type WorkingHoursHandler struct {
	db *gorm.DB
}

func NewWorkingHoursHandler(db *gorm.DB) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db}
}

// Weekday é ponteiro para que domingo (0) passe pelo required.
type WorkingDayConfig struct {
	Weekday    *int   `json:"weekday" binding:"required,min=0,max=6"`
	Active     bool   `json:"active"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	LunchStart string `json:"lunch_start"`
	LunchEnd   string `json:"lunch_end"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required,dive"`
}

func clockOK(v string) bool {
	_, err := time.Parse(domain.ClockLayout, v)
	return err == nil
}

// validate confere os horários de um dia ativo: início antes do fim e
// almoço, quando houver, contido no expediente.
func (d WorkingDayConfig) validate() bool {
	if !d.Active {
		return true
	}
	if !clockOK(d.StartTime) || !clockOK(d.EndTime) || d.StartTime >= d.EndTime {
		return false
	}
	if d.LunchStart == "" && d.LunchEnd == "" {
		return true
	}
	if !clockOK(d.LunchStart) || !clockOK(d.LunchEnd) || d.LunchStart >= d.LunchEnd {
		return false
	}
	return d.LunchStart >= d.StartTime && d.LunchEnd <= d.EndTime
}

func (h *WorkingHoursHandler) calendarID(c *gin.Context, db *gorm.DB) (uint, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return 0, false
	}

	var cal models.Calendar
	if err := db.
		Select("id").
		Where("id = ? AND salon_id = ?", id, middleware.SalonID(c)).
		First(&cal).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeCalendarNotFound, "Agenda não encontrada.")
			return 0, false
		}
		httperr.Internal(c, "failed_to_get_calendar", "Erro ao buscar agenda.")
		return 0, false
	}
	return cal.ID, true
}

// GET /me/calendars/:id/working-hours
func (h *WorkingHoursHandler) Get(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	calendarID, ok := h.calendarID(c, db)
	if !ok {
		return
	}

	var hours []models.WorkingHours
	if err := db.
		Where("calendar_id = ?", calendarID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar expediente.")
		return
	}

	httpresp.List(c, hours)
}

// PUT /me/calendars/:id/working-hours substitui a semana inteira.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	db := h.db.WithContext(c.Request.Context())

	calendarID, ok := h.calendarID(c, db)
	if !ok {
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	seen := make(map[int]bool, len(req.Days))
	toCreate := make([]models.WorkingHours, 0, len(req.Days))
	for _, d := range req.Days {
		if seen[*d.Weekday] || !d.validate() {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Expediente inválido.")
			return
		}
		seen[*d.Weekday] = true

		toCreate = append(toCreate, models.WorkingHours{
			CalendarID: calendarID,
			Weekday:    *d.Weekday,
			Active:     d.Active,
			StartTime:  d.StartTime,
			EndTime:    d.EndTime,
			LunchStart: d.LunchStart,
			LunchEnd:   d.LunchEnd,
		})
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("calendar_id = ?", calendarID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(toCreate) == 0 {
			return nil
		}
		return tx.Create(&toCreate).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar expediente.")
		return
	}

	httpresp.List(c, toCreate)
}
