package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/attachments"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// Campo multipart do arquivo.
const attachmentField = "file"

type AttachmentHandler struct {
	service *attachments.Service
}

func NewAttachmentHandler(service *attachments.Service) *AttachmentHandler {
	return &AttachmentHandler{service: service}
}

// POST /me/appointments/:id/attachments (multipart, campo "file")
func (h *AttachmentHandler) Upload(c *gin.Context) {
	appointmentID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	// folga para os cabeçalhos do multipart
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, attachments.MaxUploadBytes+1<<20)

	fh, err := c.FormFile(attachmentField)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Arquivo não enviado.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_upload", "Erro ao ler o arquivo.")
		return
	}
	defer f.Close()

	view, err := h.service.Upload(c.Request.Context(), attachments.UploadInput{
		SalonID:       middleware.SalonID(c),
		AppointmentID: appointmentID,
		Name:          fh.Filename,
		Body:          f,
	})
	if err != nil {
		httperr.Business(c, err, "failed_to_upload_attachment", "Erro ao enviar anexo.")
		return
	}

	httpresp.Created(c, view)
}

// GET /me/appointments/:id/attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	appointmentID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	views, err := h.service.List(c.Request.Context(), middleware.SalonID(c), appointmentID)
	if err != nil {
		httperr.Business(c, err, "failed_to_list_attachments", "Erro ao listar anexos.")
		return
	}

	httpresp.List(c, views)
}

// DELETE /me/attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.SalonID(c), id); err != nil {
		httperr.Business(c, err, "failed_to_delete_attachment", "Erro ao excluir anexo.")
		return
	}

	httpresp.NoContent(c)
}
