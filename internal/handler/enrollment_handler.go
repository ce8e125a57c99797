package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	"github.com/escola-adm/sistema-escolar-api/internal/service"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
	"github.com/escola-adm/sistema-escolar-api/pkg/response"
)

// EnrollmentHandler wires HTTP endpoints to the enrollment service.
type EnrollmentHandler struct {
	service *service.EnrollmentService
	exports *service.ExportService
}

// NewEnrollmentHandler creates a new handler.
func NewEnrollmentHandler(svc *service.EnrollmentService, exports *service.ExportService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc, exports: exports}
}

// Create godoc
// @Summary Register a student
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body models.CreateEnrollmentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /matriculas [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	var req models.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid enrollment payload"))
		return
	}

	matricula, err := h.service.Create(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"matricula": matricula})
}

// List godoc
// @Summary List enrollment summaries
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /matriculas [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	summaries, err := h.service.ListSummaries(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries)
}

// Get godoc
// @Summary Fetch one enrollment
// @Tags Enrollments
// @Produce json
// @Param matricula path int true "Matricula"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /matriculas/{matricula} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	matricula, err := strconv.ParseInt(c.Param("matricula"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "matricula must be numeric"))
		return
	}

	enrollment, err := h.service.Get(c.Request.Context(), matricula)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, enrollment)
}

// Edit godoc
// @Summary Edit an enrollment
// @Description Apply a partial field update; requires the master role
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param matricula path int true "Matricula"
// @Param payload body map[string]string true "Column values"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /matriculas/{matricula} [put]
func (h *EnrollmentHandler) Edit(c *gin.Context) {
	matricula, err := strconv.ParseInt(c.Param("matricula"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "matricula must be numeric"))
		return
	}

	var fields map[string]string
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid edit payload"))
		return
	}

	if err := h.service.Edit(c.Request.Context(), matricula, fields, actorFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export godoc
// @Summary Export the roster
// @Tags Enrollments
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "Export format" Enums(csv, pdf) default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /matriculas/export [get]
func (h *EnrollmentHandler) Export(c *gin.Context) {
	result, err := h.exports.EnrollmentSummaries(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
