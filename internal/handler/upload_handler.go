package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkacademy/registration-api/internal/service"
	appErrors "github.com/dkacademy/registration-api/pkg/errors"
	"github.com/dkacademy/registration-api/pkg/response"
)

// UploadHandler accepts raw file bodies and stores them as blobs.
type UploadHandler struct {
	uploads  *service.UploadService
	maxBytes int64
}

// NewUploadHandler creates a new handler. maxBytes caps the accepted
// request body size; zero disables the cap.
func NewUploadHandler(uploads *service.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploads: uploads, maxBytes: maxBytes}
}

// Upload godoc
// @Summary Upload a file
// @Description Store the raw request body as a blob and return its URL
// @Tags Uploads
// @Accept octet-stream
// @Produce json
// @Param filename query string true "Original filename"
// @Success 200 {object} dto.BlobDescriptor
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "filename query parameter is required"))
		return
	}

	// The body is never parsed, it streams straight into the store.
	body := c.Request.Body
	if h.maxBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.maxBytes)
	}

	descriptor, err := h.uploads.Store(c.Request.Context(), filename, body)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, descriptor)
}
