package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dkacademy/registration-api/internal/models"
	appErrors "github.com/dkacademy/registration-api/pkg/errors"
	"github.com/dkacademy/registration-api/pkg/export"
)

type registrationLister interface {
	List(ctx context.Context) ([]models.Registration, error)
}

// ExportResult carries a rendered roster file.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportService renders the registration roster as CSV or PDF for the
// admin dashboard's download action.
type ExportService struct {
	registrations registrationLister
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	logger        *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(registrations registrationLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		registrations: registrations,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		logger:        logger,
	}
}

var exportHeaders = []string{"Name", "Type", "DOB", "Sex", "Area", "Father Contact", "Mother Contact", "Squad", "Registered"}

// Export renders the full roster in the requested format.
func (s *ExportService) Export(ctx context.Context, format string) (*ExportResult, error) {
	registrations, err := s.registrations.List(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: exportHeaders, Rows: make([]map[string]string, 0, len(registrations))}
	for _, reg := range registrations {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Name":           reg.StudentName,
			"Type":           string(reg.Type),
			"DOB":            deref(reg.DOB),
			"Sex":            deref(reg.Sex),
			"Area":           deref(reg.Area),
			"Father Contact": deref(reg.FatherContact),
			"Mother Contact": deref(reg.MotherContact),
			"Squad":          deref(reg.SquadLevel),
			"Registered":     reg.CreatedAt.Format(time.RFC3339),
		})
	}

	stamp := time.Now().Format("20060102")
	switch strings.ToLower(format) {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("registrations-%s.csv", stamp),
			ContentType: "text/csv",
			Content:     content,
		}, nil
	case "pdf":
		content, err := s.pdf.Render(dataset, "Academy Registrations")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportResult{
			Filename:    fmt.Sprintf("registrations-%s.pdf", stamp),
			ContentType: "application/pdf",
			Content:     content,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
