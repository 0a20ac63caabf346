package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/dkacademy/registration-api/internal/dto"
	appErrors "github.com/dkacademy/registration-api/pkg/errors"
	"github.com/dkacademy/registration-api/pkg/storage"
)

// UploadService streams raw file bodies into the blob store. It also
// satisfies workflow.BlobUploader for in-process submissions.
type UploadService struct {
	store  storage.BlobStore
	logger *zap.Logger
}

// NewUploadService constructs UploadService.
func NewUploadService(store storage.BlobStore, logger *zap.Logger) *UploadService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadService{store: store, logger: logger}
}

// Store persists the stream under the given filename and returns the
// blob descriptor with its publicly resolvable URL.
func (s *UploadService) Store(ctx context.Context, filename string, r io.Reader) (*dto.BlobDescriptor, error) {
	if filename == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "filename is required")
	}
	info, err := s.store.Put(ctx, filename, r)
	if err != nil {
		s.logger.Error("blob upload failed", zap.String("filename", filename), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}
	return &dto.BlobDescriptor{
		URL:         info.URL,
		Pathname:    info.Pathname,
		ContentType: info.ContentType,
		Size:        info.Size,
	}, nil
}

// Upload implements workflow.BlobUploader.
func (s *UploadService) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	descriptor, err := s.Store(ctx, filename, r)
	if err != nil {
		return "", err
	}
	return descriptor.URL, nil
}
