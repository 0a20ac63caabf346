package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkacademy/registration-api/internal/models"
)

func newRegistrationRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func strPtr(s string) *string { return &s }

func TestRegistrationRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	created := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO registrations").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(42), created))

	reg := &models.Registration{
		Type:        models.RegistrationTypeStudent,
		StudentName: "Anika Rao",
		Area:        strPtr("Adyar"),
	}
	require.NoError(t, repo.Insert(context.Background(), reg))
	assert.Equal(t, int64(42), reg.ID)
	assert.Equal(t, created, reg.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryInsertNoReturnedRow(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectQuery("INSERT INTO registrations").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}))

	reg := &models.Registration{Type: models.RegistrationTypeMember, StudentName: "Ravi Kumar"}
	err := repo.Insert(context.Background(), reg)
	assert.ErrorIs(t, err, ErrNoInsertedRow)
}

func TestRegistrationRepositoryInsertQueryError(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectQuery("INSERT INTO registrations").
		WillReturnError(errors.New("connection refused"))

	reg := &models.Registration{Type: models.RegistrationTypeStudent, StudentName: "Anika Rao"}
	err := repo.Insert(context.Background(), reg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert registration")
}

func TestRegistrationRepositoryListAll(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	rows := sqlmock.NewRows([]string{"id", "type", "student_name", "area", "created_at"}).
		AddRow(int64(2), "member", "Ravi Kumar", nil, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)).
		AddRow(int64(1), "student", "Anika Rao", "Adyar", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery("FROM registrations ORDER BY created_at DESC").
		WillReturnRows(rows)

	result, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, int64(2), result[0].ID)
	assert.Nil(t, result[0].Area)
	assert.Equal(t, "Anika Rao", result[1].StudentName)
	require.NotNil(t, result[1].Area)
	assert.Equal(t, "Adyar", *result[1].Area)
}

func TestRegistrationRepositoryListAllEmpty(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	mock.ExpectQuery("FROM registrations ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "student_name", "created_at"}))

	result, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestRegistrationRepositoryWithoutDatabase(t *testing.T) {
	repo := NewRegistrationRepository(nil)

	err := repo.Insert(context.Background(), &models.Registration{Type: models.RegistrationTypeStudent, StudentName: "Anika Rao"})
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, err = repo.ListAll(context.Background())
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, err = repo.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestRegistrationRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRegistrationRepoMock(t)
	defer cleanup()

	repo := NewRegistrationRepository(db)
	rows := sqlmock.NewRows([]string{"id", "type", "student_name", "created_at"}).
		AddRow(int64(5), "student", "Anika Rao", time.Now())
	mock.ExpectQuery("FROM registrations WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	reg, err := repo.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Anika Rao", reg.StudentName)
}
