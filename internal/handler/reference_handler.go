package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	"github.com/escola-adm/sistema-escolar-api/internal/service"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
	"github.com/escola-adm/sistema-escolar-api/pkg/response"
)

// ReferenceHandler wires HTTP endpoints to the reference registry.
type ReferenceHandler struct {
	service *service.ReferenceService
}

// NewReferenceHandler creates a new handler.
func NewReferenceHandler(svc *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{service: svc}
}

// Options godoc
// @Summary List selection options for a reference kind
// @Tags References
// @Produce json
// @Param kind path string true "Reference kind" Enums(turmas, cursos, materiais, valores, estoque)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /referencias/{kind} [get]
func (h *ReferenceHandler) Options(c *gin.Context) {
	kind := models.ReferenceKind(c.Param("kind"))
	options, err := h.service.Options(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, options)
}

// Rows godoc
// @Summary List full records of a reference kind
// @Tags References
// @Produce json
// @Param kind path string true "Reference kind" Enums(turmas, cursos, materiais, valores, estoque)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /referencias/{kind}/itens [get]
func (h *ReferenceHandler) Rows(c *gin.Context) {
	kind := models.ReferenceKind(c.Param("kind"))
	rows, err := h.service.Rows(c.Request.Context(), kind)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// Add godoc
// @Summary Add a record to a reference kind
// @Description Insert one record; requires the master role
// @Tags References
// @Accept json
// @Produce json
// @Param kind path string true "Reference kind" Enums(turmas, cursos, materiais, valores, estoque)
// @Param payload body map[string]string true "Column values"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /referencias/{kind} [post]
func (h *ReferenceHandler) Add(c *gin.Context) {
	kind := models.ReferenceKind(c.Param("kind"))

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reference payload"))
		return
	}

	id, err := h.service.Add(c.Request.Context(), kind, fields, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"id": id})
}
