package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create            *ucAppointment.CreateAppointment
	update            *ucAppointment.UpdateAppointment
	cancel            *ucAppointment.CancelAppointment
	remove            *ucAppointment.DeleteAppointment
	byDate            *ucAppointment.ListAppointmentsByDate
	byMonth           *ucAppointment.ListAppointmentsByMonth
	byCalendarAndDate *ucAppointment.ListAppointmentsByCalendarAndDate
	dayGrid           *ucAppointment.GetDayGrid
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	cancel *ucAppointment.CancelAppointment,
	remove *ucAppointment.DeleteAppointment,
	byDate *ucAppointment.ListAppointmentsByDate,
	byMonth *ucAppointment.ListAppointmentsByMonth,
	byCalendarAndDate *ucAppointment.ListAppointmentsByCalendarAndDate,
	dayGrid *ucAppointment.GetDayGrid,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:            create,
		update:            update,
		cancel:            cancel,
		remove:            remove,
		byDate:            byDate,
		byMonth:           byMonth,
		byCalendarAndDate: byCalendarAndDate,
		dayGrid:           dayGrid,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	CalendarID  uint   `json:"calendar_id" binding:"required"`
	ClientID    uint   `json:"client_id"`
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	ServiceID   uint   `json:"service_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time"`
	Notes       string `json:"notes" binding:"max=255"`
}

// Campos ausentes mantêm o valor atual.
type UpdateAppointmentRequest struct {
	CalendarID uint    `json:"calendar_id"`
	ClientID   uint    `json:"client_id"`
	ServiceID  uint    `json:"service_id"`
	Date       string  `json:"date"`
	StartTime  string  `json:"start_time"`
	EndTime    string  `json:"end_time"`
	Notes      *string `json:"notes" binding:"omitempty,max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		SalonID:     middleware.SalonID(c),
		UserID:      middleware.UserID(c),
		CalendarID:  req.CalendarID,
		ClientID:    req.ClientID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		ServiceID:   req.ServiceID,
		Date:        strings.TrimSpace(req.Date),
		StartTime:   strings.TrimSpace(req.StartTime),
		EndTime:     strings.TrimSpace(req.EndTime),
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Business(c, err, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		SalonID:       middleware.SalonID(c),
		UserID:        middleware.UserID(c),
		AppointmentID: id,
		CalendarID:    req.CalendarID,
		ClientID:      req.ClientID,
		ServiceID:     req.ServiceID,
		Date:          strings.TrimSpace(req.Date),
		StartTime:     strings.TrimSpace(req.StartTime),
		EndTime:       strings.TrimSpace(req.EndTime),
		Notes:         req.Notes,
	})
	if err != nil {
		httperr.Business(c, err, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// CANCEL (soft) / DELETE (hard)
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), ucAppointment.CancelAppointmentInput{
		SalonID:       middleware.SalonID(c),
		UserID:        middleware.UserID(c),
		AppointmentID: id,
	})
	if err != nil {
		httperr.Business(c, err, "failed_to_cancel_appointment", "Erro ao cancelar agendamento.")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	err := h.remove.Execute(c.Request.Context(), middleware.SalonID(c), middleware.UserID(c), id)
	if err != nil {
		httperr.Business(c, err, "failed_to_delete_appointment", "Erro ao excluir agendamento.")
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// LISTS
// ======================================================

// GET /me/appointments?date=YYYY-MM-DD
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		httperr.BadRequest(c, httperr.CodeInvalidDateOrTime, "Informe a data.")
		return
	}

	out, err := h.byDate.Execute(c.Request.Context(), middleware.SalonID(c), date)
	if err != nil {
		httperr.Business(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

// GET /me/appointments/month?year=2030&month=3&calendar_id=1
func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	now := time.Now()

	year, ok := intQuery(c, "year", now.Year())
	if !ok {
		return
	}
	month, ok := intQuery(c, "month", int(now.Month()))
	if !ok {
		return
	}
	calendarID, ok := uintQuery(c, "calendar_id")
	if !ok {
		return
	}

	out, err := h.byMonth.Execute(c.Request.Context(), middleware.SalonID(c), calendarID, year, month)
	if err != nil {
		httperr.Business(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.OK(c, out)
}

// GET /me/calendars/:id/appointments?date=YYYY-MM-DD
func (h *AppointmentHandler) ListByCalendarAndDate(c *gin.Context) {
	calendarID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	out, err := h.byCalendarAndDate.Execute(
		c.Request.Context(),
		middleware.SalonID(c),
		calendarID,
		strings.TrimSpace(c.Query("date")),
	)
	if err != nil {
		httperr.Business(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, out)
}

// GET /me/calendars/:id/grid?date=YYYY-MM-DD&service_id=2
func (h *AppointmentHandler) DayGrid(c *gin.Context) {
	calendarID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	serviceID, ok := uintQuery(c, "service_id")
	if !ok {
		return
	}

	grid, err := h.dayGrid.Execute(
		c.Request.Context(),
		middleware.SalonID(c),
		calendarID,
		strings.TrimSpace(c.Query("date")),
		serviceID,
	)
	if err != nil {
		httperr.Business(c, err, "failed_to_build_grid", "Erro ao montar a agenda do dia.")
		return
	}

	httpresp.OK(c, grid)
}
