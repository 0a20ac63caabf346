package handler

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/dkacademy/registration-api/pkg/errors"
	"github.com/dkacademy/registration-api/pkg/response"
	"github.com/dkacademy/registration-api/pkg/storage"
)

// BlobHandler serves stored blobs back to the browser.
type BlobHandler struct {
	store *storage.LocalBlobStore
}

// NewBlobHandler creates a new handler.
func NewBlobHandler(store *storage.LocalBlobStore) *BlobHandler {
	return &BlobHandler{store: store}
}

// Serve godoc
// @Summary Fetch a stored blob
// @Description Stream a previously uploaded file. In signed mode the token query parameter is required.
// @Tags Uploads
// @Produce octet-stream
// @Param path path string true "Blob pathname"
// @Param token query string false "Signed access token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blobs/{path} [get]
func (h *BlobHandler) Serve(c *gin.Context) {
	pathname := strings.TrimPrefix(c.Param("path"), "/")
	if pathname == "" {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	if signer := h.store.Signer(); signer != nil {
		tokenPath, _, err := signer.Parse(c.Query("token"))
		if err != nil || tokenPath != pathname {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired blob token"))
			return
		}
	}

	file, err := h.store.Open(pathname)
	if err != nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.ErrNotFound)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(pathname))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, file, nil)
}
