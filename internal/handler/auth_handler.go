package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkacademy/registration-api/internal/models"
	"github.com/dkacademy/registration-api/internal/service"
	appErrors "github.com/dkacademy/registration-api/pkg/errors"
	"github.com/dkacademy/registration-api/pkg/response"
)

// AuthHandler wires HTTP endpoints to the admin auth service.
type AuthHandler struct {
	service *service.AdminAuthService
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc *service.AdminAuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// Login godoc
// @Summary Authenticate admin
// @Description Exchange admin phone and password for an access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.AdminLoginRequest true "Login payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid login payload"))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.GetHeader("User-Agent")

	res, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res)
}

// Session godoc
// @Summary Inspect the current admin session
// @Description Return the claims behind the presented access token
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /admin/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"phone":     claims.Phone,
		"role":      claims.Role,
		"expiresAt": claims.ExpiresAt.Time,
	})
}
