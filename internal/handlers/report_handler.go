package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/report"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	byMonth *ucAppointment.ListAppointmentsByMonth
}

func NewReportHandler(byMonth *ucAppointment.ListAppointmentsByMonth) *ReportHandler {
	return &ReportHandler{byMonth: byMonth}
}

// GET /me/reports/appointments.xlsx?year=2030&month=3&calendar_id=1
func (h *ReportHandler) MonthlyAppointments(c *gin.Context) {
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

	book, err := h.byMonth.Book(c.Request.Context(), middleware.SalonID(c), calendarID, year, month)
	if err != nil {
		httperr.Business(c, err, "failed_to_build_report", "Erro ao gerar relatório.")
		return
	}

	// gera em memória para ainda poder responder com erro JSON
	var buf bytes.Buffer
	title := fmt.Sprintf("Agendamentos %02d/%d", month, year)
	if err := report.Write(&buf, book, title); err != nil {
		_ = c.Error(err)
		httperr.Internal(c, "failed_to_build_report", "Erro ao gerar relatório.")
		return
	}

	filename := fmt.Sprintf("agendamentos-%d-%02d.xlsx", year, month)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
