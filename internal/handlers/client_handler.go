package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucClient "github.com/BruksfildServices01/salon-scheduler/internal/usecase/client"
)

type ClientHandler struct {
	list *ucClient.ListClients
}

func NewClientHandler(list *ucClient.ListClients) *ClientHandler {
	return &ClientHandler{list: list}
}

// ======================================================
// LIST CLIENTS
// ======================================================

// GET /me/clients?query=maria
func (h *ClientHandler) List(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))

	clients, err := h.list.Execute(c.Request.Context(), middleware.SalonID(c), query)
	if err != nil {
		httperr.Business(c, err, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	httpresp.List(c, clients)
}
