package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucService "github.com/BruksfildServices01/salon-scheduler/internal/usecase/service"
)

type ServiceHandler struct {
	db   *gorm.DB
	list *ucService.ListServices
}

func NewServiceHandler(db *gorm.DB, list *ucService.ListServices) *ServiceHandler {
	return &ServiceHandler{db: db, list: list}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	DurationMinutes int      `json:"duration_minutes" binding:"required,min=1"`
	Price           float64  `json:"price" binding:"min=0"`
	Category        string   `json:"category"`
	AvailableDays   []string `json:"available_days"`
}

type UpdateServiceRequest struct {
	Name            *string   `json:"name,omitempty"`
	Description     *string   `json:"description,omitempty"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	Price           *float64  `json:"price,omitempty"`
	Category        *string   `json:"category,omitempty"`
	Active          *bool     `json:"active,omitempty"`
	AvailableDays   *[]string `json:"available_days,omitempty"`
}

func validDays(days []string) bool {
	for _, d := range days {
		if !domain.IsWeekdayName(d) {
			return false
		}
	}
	return true
}

// --------- Handlers ---------

// GET /me/services?calendar_id=1&date=2030-03-11
func (h *ServiceHandler) List(c *gin.Context) {
	calendarID, ok := uintQuery(c, "calendar_id")
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), ucService.ListServicesInput{
		SalonID:    middleware.SalonID(c),
		CalendarID: calendarID,
		Date:       strings.TrimSpace(c.Query("date")),
	})
	if err != nil {
		httperr.Business(c, err, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, out)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}
	if !validDays(req.AvailableDays) {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dia da semana inválido.")
		return
	}

	service := models.Service{
		SalonID:         middleware.SalonID(c),
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
		Category:        strings.ToLower(strings.TrimSpace(req.Category)),
		AvailableDays:   req.AvailableDays,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	db := h.db.WithContext(c.Request.Context())

	var service models.Service
	if err := db.
		Where("id = ? AND salon_id = ?", id, middleware.SalonID(c)).
		First(&service).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, httperr.CodeServiceNotFound, "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Erro ao buscar serviço.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	if req.Name != nil {
		service.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes < 1 {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Duração deve ser de pelo menos 1 minuto.")
			return
		}
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Category != nil {
		service.Category = strings.ToLower(strings.TrimSpace(*req.Category))
	}
	if req.Active != nil {
		service.Active = *req.Active
	}
	if req.AvailableDays != nil {
		if !validDays(*req.AvailableDays) {
			httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dia da semana inválido.")
			return
		}
		service.AvailableDays = *req.AvailableDays
	}

	if err := db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	httpresp.OK(c, service)
}
