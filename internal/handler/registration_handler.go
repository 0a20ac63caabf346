package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkacademy/registration-api/internal/dto"
	"github.com/dkacademy/registration-api/internal/service"
	appErrors "github.com/dkacademy/registration-api/pkg/errors"
	"github.com/dkacademy/registration-api/pkg/response"
)

// RegistrationHandler wires HTTP endpoints to the registration service.
type RegistrationHandler struct {
	registrations *service.RegistrationService
	exports       *service.ExportService
}

// NewRegistrationHandler creates a new handler.
func NewRegistrationHandler(registrations *service.RegistrationService, exports *service.ExportService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations, exports: exports}
}

// Register godoc
// @Summary Submit a registration
// @Description Persist a completed registration form and return the stored record
// @Tags Registrations
// @Accept json
// @Produce json
// @Param payload body dto.RegistrationDraft true "Registration payload"
// @Success 200 {object} models.Registration
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /register [post]
func (h *RegistrationHandler) Register(c *gin.Context) {
	var draft dto.RegistrationDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid registration payload"))
		return
	}

	record, err := h.registrations.Register(c.Request.Context(), draft)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The public form consumes the record directly, without an envelope.
	c.JSON(http.StatusOK, record)
}

// List godoc
// @Summary List registrations
// @Description Return every stored registration, newest first
// @Tags Registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Registration
// @Failure 401 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /registrations [get]
func (h *RegistrationHandler) List(c *gin.Context) {
	records, err := h.registrations.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Export godoc
// @Summary Export registrations
// @Description Download the registration roster as CSV or PDF
// @Tags Registrations
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string true "Export format" Enums(csv, pdf)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /registrations/export [get]
func (h *RegistrationHandler) Export(c *gin.Context) {
	result, err := h.exports.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+result.Filename)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
