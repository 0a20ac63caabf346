package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkacademy/registration-api/internal/models"
	appErrors "github.com/dkacademy/registration-api/pkg/errors"
)

type listerStub struct {
	registrations []models.Registration
	err           error
}

func (s *listerStub) List(ctx context.Context) ([]models.Registration, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.registrations, nil
}

func exportFixture() *listerStub {
	area := "Adyar"
	squad := "Beginner"
	return &listerStub{registrations: []models.Registration{
		{
			ID:          1,
			Type:        models.RegistrationTypeStudent,
			StudentName: "Anika Rao",
			Area:        &area,
			SquadLevel:  &squad,
			CreatedAt:   time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			ID:          2,
			Type:        models.RegistrationTypeMember,
			StudentName: "Ravi Kumar",
			CreatedAt:   time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC),
		},
	}}
}

func TestExportCSV(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.Export(context.Background(), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.True(t, strings.HasPrefix(result.Filename, "registrations-"))
	assert.True(t, strings.HasSuffix(result.Filename, ".csv"))

	body := string(result.Content)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Type,DOB,Sex,Area,Father Contact,Mother Contact,Squad,Registered", lines[0])
	assert.Contains(t, lines[1], "Anika Rao,student")
	assert.Contains(t, lines[1], "Adyar")
	assert.Contains(t, lines[2], "Ravi Kumar,member")
}

func TestExportCSVFormatIsCaseInsensitive(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.Export(context.Background(), "CSV")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
}

func TestExportPDF(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	result, err := svc.Export(context.Background(), "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.True(t, strings.HasPrefix(string(result.Content), "%PDF"))
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(exportFixture(), nil)

	_, err := svc.Export(context.Background(), "xlsx")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportPropagatesListFailure(t *testing.T) {
	svc := NewExportService(&listerStub{err: errors.New("db down")}, nil)

	_, err := svc.Export(context.Background(), "csv")
	assert.Error(t, err)
}
