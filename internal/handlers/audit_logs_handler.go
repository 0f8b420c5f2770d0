package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

type auditPage struct {
	page   int
	limit  int
	offset int
}

func parseAuditPage(pageStr, limitStr string) auditPage {
	page, _ := strconv.Atoi(pageStr)
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return auditPage{page: page, limit: limit, offset: (page - 1) * limit}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	salonID := middleware.SalonID(c)
	db := h.db.WithContext(c.Request.Context())

	p := parseAuditPage(c.DefaultQuery("page", "1"), c.DefaultQuery("limit", "50"))

	var salon models.Salon
	if err := db.Select("id", "timezone").First(&salon, salonID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeSalonNotFound, "Salão não encontrado.")
		return
	}

	// --------------------------------------------------
	// Query base (sempre protegido por salão)
	// --------------------------------------------------

	q := db.
		Model(&models.AuditLog{}).
		Where("salon_id = ?", salonID)

	// --------------------------------------------------
	// Filtros opcionais
	// --------------------------------------------------

	if action := c.Query("action"); action != "" {
		q = q.Where("action = ?", action)
	}

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if entityID := c.Query("entity_id"); entityID != "" {
		if id, err := strconv.ParseUint(entityID, 10, 64); err == nil {
			q = q.Where("entity_id = ?", id)
		}
	}

	// datas no fuso do salão; "to" é inclusivo
	if from, err := timezone.ParseDate(salon.Timezone, c.Query("from")); err == nil {
		q = q.Where("created_at >= ?", from)
	}

	if to, err := timezone.ParseDate(salon.Timezone, c.Query("to")); err == nil {
		q = q.Where("created_at < ?", to.Add(24*time.Hour))
	}

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Erro ao contar logs.")
		return
	}

	// --------------------------------------------------
	// Listagem
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(p.limit).
		Offset(p.offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Erro ao listar logs.")
		return
	}

	// --------------------------------------------------
	// Response
	// --------------------------------------------------

	c.JSON(200, gin.H{
		"page":  p.page,
		"limit": p.limit,
		"total": total,
		"logs":  logs,
	})
}
