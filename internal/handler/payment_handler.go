package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	"github.com/escola-adm/sistema-escolar-api/internal/service"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
	"github.com/escola-adm/sistema-escolar-api/pkg/response"
)

// PaymentHandler wires HTTP endpoints to the ledger service.
type PaymentHandler struct {
	service *service.PaymentService
}

// NewPaymentHandler creates a new handler.
func NewPaymentHandler(svc *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: svc}
}

// Append godoc
// @Summary Append a ledger entry
// @Tags Payments
// @Accept json
// @Produce json
// @Param payload body models.CreatePaymentRequest true "Payment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /financeiro [post]
func (h *PaymentHandler) Append(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payment payload"))
		return
	}

	id, err := h.service.Append(c.Request.Context(), req, actorFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"id": id})
}

// List godoc
// @Summary List the full ledger
// @Tags Payments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /financeiro [get]
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// UploadAttachment godoc
// @Summary Upload a payment attachment
// @Description Stores the file and returns the reference to use as anexo
// @Tags Payments
// @Accept multipart/form-data
// @Produce json
// @Param arquivo formData file true "Attachment file"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /financeiro/anexos [post]
func (h *PaymentHandler) UploadAttachment(c *gin.Context) {
	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "attachment file required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read attachment"))
		return
	}
	defer file.Close() //nolint:errcheck

	reference, err := h.service.SaveAttachment(fileHeader.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"anexo": reference})
}

// DownloadAttachment godoc
// @Summary Download a payment attachment
// @Tags Payments
// @Produce application/octet-stream
// @Param anexo path string true "Attachment reference"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /financeiro/anexos/{anexo} [get]
func (h *PaymentHandler) DownloadAttachment(c *gin.Context) {
	reference := c.Param("anexo")

	file, err := h.service.OpenAttachment(reference)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", `attachment; filename="`+reference+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, file); err != nil {
		_ = c.Error(err)
	}
}

// Receipt godoc
// @Summary Download a payment receipt
// @Tags Payments
// @Produce application/pdf
// @Param id path int true "Payment id"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /financeiro/{id}/recibo [get]
func (h *PaymentHandler) Receipt(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "payment id must be numeric"))
		return
	}

	doc, err := h.service.Receipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="recibo_`+strconv.FormatInt(id, 10)+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
