package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	ucService "github.com/BruksfildServices01/salon-scheduler/internal/usecase/service"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

const emailLookupTimeout = 3 * time.Second

// ======================================================
// HANDLER
// ======================================================

type PublicHandler struct {
	repo         domain.Repository
	services     *ucService.ListServices
	availability *ucAppointment.GetAvailability
	create       *ucAppointment.CreateAppointment
	cancel       *ucAppointment.CancelAppointment

	// nil desliga a checagem de domínio do e-mail
	resolver validators.Resolver
}

func NewPublicHandler(
	repo domain.Repository,
	services *ucService.ListServices,
	availability *ucAppointment.GetAvailability,
	create *ucAppointment.CreateAppointment,
	cancel *ucAppointment.CancelAppointment,
	resolver validators.Resolver,
) *PublicHandler {
	return &PublicHandler{
		repo:         repo,
		services:     services,
		availability: availability,
		create:       create,
		cancel:       cancel,
		resolver:     resolver,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PublicCreateAppointmentRequest struct {
	CalendarID  uint   `json:"calendar_id" binding:"required"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	Notes       string `json:"notes" binding:"max=255"`
}

type PublicCancelAppointmentRequest struct {
	ClientPhone string `json:"client_phone" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *PublicHandler) salon(c *gin.Context) (*models.Salon, bool) {
	slug := strings.TrimSpace(c.Param("slug"))

	salon, err := h.repo.GetSalonBySlug(c.Request.Context(), slug)
	if err != nil {
		httperr.Business(c, err, "failed_to_get_salon", "Erro ao buscar o salão.")
		return nil, false
	}
	return salon, true
}

func (h *PublicHandler) emailOK(ctx context.Context, email string) bool {
	if email == "" {
		return true
	}
	if !validators.IsEmailSyntaxValid(email) {
		return false
	}
	if h.resolver == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, emailLookupTimeout)
	defer cancel()
	return validators.IsEmailDomainValid(ctx, h.resolver, email)
}

// ======================================================
// SERVICES
// ======================================================

// GET /api/public/:slug/services?calendar_id=1&date=2030-03-11
func (h *PublicHandler) ListServices(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}
	calendarID, ok := uintQuery(c, "calendar_id")
	if !ok {
		return
	}

	out, err := h.services.Execute(c.Request.Context(), ucService.ListServicesInput{
		SalonID:    salon.ID,
		CalendarID: calendarID,
		Date:       strings.TrimSpace(c.Query("date")),
	})
	if err != nil {
		httperr.Business(c, err, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// AVAILABILITY
// ======================================================

// GET /api/public/:slug/calendars/:calendarId/availability?service_id=2&date=2030-03-11
func (h *PublicHandler) Availability(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}
	calendarID, ok := uintParam(c, "calendarId")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}
	if serviceID == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Informe o serviço.")
		return
	}

	day, err := timezone.ParseDate(salon.Timezone, strings.TrimSpace(c.Query("date")))
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidDateOrTime, "Data ou hora inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		SalonID:    salon.ID,
		CalendarID: calendarID,
		ServiceID:  serviceID,
		Date:       day,
	})
	if err != nil {
		httperr.Business(c, err, "failed_to_get_availability", "Erro ao consultar horários.")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// CREATE / CANCEL
// ======================================================

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	email := strings.TrimSpace(req.ClientEmail)
	if !h.emailOK(c.Request.Context(), email) {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "E-mail inválido.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		SalonID:     salon.ID,
		CalendarID:  req.CalendarID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: email,
		ServiceID:   req.ServiceID,
		Date:        strings.TrimSpace(req.Date),
		StartTime:   strings.TrimSpace(req.StartTime),
		Notes:       req.Notes,
		Public:      true,
	})
	if err != nil {
		httperr.Business(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, ap)
}

// O telefone do cliente faz as vezes de credencial no cancelamento público.
func (h *PublicHandler) CancelAppointment(c *gin.Context) {
	salon, ok := h.salon(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req PublicCancelAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || validators.NormalizePhone(req.ClientPhone) == "" {
		invalidRequest(c)
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		SalonID:       salon.ID,
		AppointmentID: id,
		ClientPhone:   req.ClientPhone,
	})
	if err != nil {
		httperr.Business(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}
