package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escola-adm/sistema-escolar-api/pkg/cep"
	"github.com/escola-adm/sistema-escolar-api/pkg/response"
)

// CEPHandler proxies postal-code lookups for the enrollment form.
type CEPHandler struct {
	client *cep.Client
}

// NewCEPHandler creates a new handler.
func NewCEPHandler(client *cep.Client) *CEPHandler {
	return &CEPHandler{client: client}
}

// Lookup godoc
// @Summary Resolve a postal code
// @Tags CEP
// @Produce json
// @Param codigo path string true "Postal code"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /cep/{codigo} [get]
func (h *CEPHandler) Lookup(c *gin.Context) {
	address, err := h.client.Lookup(c.Request.Context(), c.Param("codigo"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, address)
}
