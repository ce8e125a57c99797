package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escola-adm/sistema-escolar-api/internal/service"
	"github.com/escola-adm/sistema-escolar-api/pkg/response"
)

// AuditHandler exposes the append-only mutation trail.
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler creates a new handler.
func NewAuditHandler(svc *service.AuditService) *AuditHandler {
	return &AuditHandler{service: svc}
}

// List godoc
// @Summary List audit entries
// @Description Entries in insertion order, optionally filtered by exact username
// @Tags Audit
// @Produce json
// @Param usuario query string false "Filter by username"
// @Success 200 {object} response.Envelope
// @Router /logs [get]
func (h *AuditHandler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context(), c.Query("usuario"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries)
}
