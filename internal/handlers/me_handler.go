package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

type MeHandler struct {
	repo domain.Repository
}

func NewMeHandler(repo domain.Repository) *MeHandler {
	return &MeHandler{repo: repo}
}

// GetMe devolve a identidade do token e o salão com suas agendas ativas.
func (h *MeHandler) GetMe(c *gin.Context) {
	ctx := c.Request.Context()
	salonID := middleware.SalonID(c)

	salon, err := h.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		httperr.Business(c, err, "failed_to_get_salon", "Erro ao buscar dados do salão.")
		return
	}

	calendars, err := h.repo.ListCalendars(ctx, salonID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_calendars", "Erro ao listar agendas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":       middleware.UserID(c),
			"role":     c.GetString(middleware.ContextUserRole),
			"salon_id": salonID,
		},
		"salon": gin.H{
			"id":       salon.ID,
			"name":     salon.Name,
			"slug":     salon.Slug,
			"phone":    salon.Phone,
			"address":  salon.Address,
			"timezone": salon.Timezone,
		},
		"calendars": calendars,
	})
}
