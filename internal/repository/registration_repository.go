package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dkacademy/registration-api/internal/models"
)

// ErrNoInsertedRow reports an insert that returned no row, which the
// API surfaces as a persistence failure.
var ErrNoInsertedRow = fmt.Errorf("insert returned no row")

// ErrNoDatabase reports operations attempted without a configured
// database. Startup tolerates a missing database; every storage call
// then fails with this error instead of crashing.
var ErrNoDatabase = fmt.Errorf("database not configured")

// RegistrationRepository handles persistence of enrollment records.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const insertQuery = `INSERT INTO registrations (
        type, student_name, dob, age, sex, nationality, school_name, siblings_name, reg_no, occupation, area,
        father_name, father_contact, father_email, mother_name, mother_contact, mother_email,
        tshirt_size, sessions_per_month, enrollment_date, fees_per_month, squad_level,
        student_signature, declaration_date, proof_type, photo_url, proof_url)
        VALUES (:type, :student_name, :dob, :age, :sex, :nationality, :school_name, :siblings_name, :reg_no, :occupation, :area,
        :father_name, :father_contact, :father_email, :mother_name, :mother_contact, :mother_email,
        :tshirt_size, :sessions_per_month, :enrollment_date, :fees_per_month, :squad_level,
        :student_signature, :declaration_date, :proof_type, :photo_url, :proof_url)
        RETURNING id, created_at`

const selectColumns = `id, type, student_name, dob, age, sex, nationality, school_name, siblings_name, reg_no, occupation, area,
        father_name, father_contact, father_email, mother_name, mother_contact, mother_email,
        tshirt_size, sessions_per_month, enrollment_date, fees_per_month, squad_level,
        student_signature, declaration_date, proof_type, photo_url, proof_url, created_at`

// Insert persists a new registration and fills in the storage-assigned
// id and created_at timestamp.
func (r *RegistrationRepository) Insert(ctx context.Context, reg *models.Registration) error {
	if r.db == nil {
		return ErrNoDatabase
	}
	rows, err := r.db.NamedQueryContext(ctx, insertQuery, reg)
	if err != nil {
		return fmt.Errorf("insert registration: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return fmt.Errorf("insert registration: %w", err)
		}
		return ErrNoInsertedRow
	}
	if err := rows.Scan(&reg.ID, &reg.CreatedAt); err != nil {
		return fmt.Errorf("scan inserted registration: %w", err)
	}
	return nil
}

// ListAll returns every registration, newest first. The admin roster
// is expected to stay small; there is no pagination.
func (r *RegistrationRepository) ListAll(ctx context.Context) ([]models.Registration, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}
	query := fmt.Sprintf("SELECT %s FROM registrations ORDER BY created_at DESC", selectColumns)
	registrations := make([]models.Registration, 0)
	if err := r.db.SelectContext(ctx, &registrations, query); err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return registrations, nil
}

// FindByID returns a single registration by its storage-assigned id.
func (r *RegistrationRepository) FindByID(ctx context.Context, id int64) (*models.Registration, error) {
	if r.db == nil {
		return nil, ErrNoDatabase
	}
	query := fmt.Sprintf("SELECT %s FROM registrations WHERE id = $1", selectColumns)
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, query, id); err != nil {
		return nil, err
	}
	return &reg, nil
}
