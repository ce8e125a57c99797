package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/escola-adm/sistema-escolar-api/internal/models"
	"github.com/escola-adm/sistema-escolar-api/internal/service"
	appErrors "github.com/escola-adm/sistema-escolar-api/pkg/errors"
	"github.com/escola-adm/sistema-escolar-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Authenticate operator
// @Description Authenticate by username and password, returns an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Recover godoc
// @Summary Recover a password
// @Description Overwrite a user's password given the master recovery code
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.RecoverRequest true "Recovery payload"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /auth/recover [post]
func (h *AuthHandler) Recover(c *gin.Context) {
	var req models.RecoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid recovery payload"))
		return
	}

	if err := h.service.Recover(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
