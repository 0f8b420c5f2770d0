package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// uintParam lê um parâmetro de rota numérico. Responde 400 quando inválido.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Identificador inválido.")
		return 0, false
	}
	return uint(v), true
}

// uintQuery lê um filtro numérico opcional; ausente vale 0.
func uintQuery(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Parâmetro inválido: "+name+".")
		return 0, false
	}
	return uint(v), true
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		httperr.BadRequest(c, httperr.CodeInvalidRequest, "Parâmetro inválido: "+name+".")
		return 0, false
	}
	return v, true
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, httperr.CodeInvalidRequest, "Dados inválidos.")
}
