package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dkacademy/registration-api/internal/dto"
	"github.com/dkacademy/registration-api/internal/models"
	"github.com/dkacademy/registration-api/internal/repository"
	appErrors "github.com/dkacademy/registration-api/pkg/errors"
)

type registrationRepository interface {
	Insert(ctx context.Context, reg *models.Registration) error
	ListAll(ctx context.Context) ([]models.Registration, error)
}

const listCacheKey = "registrations:all"

// RegistrationService orchestrates validation, sanitization and
// persistence of enrollment records. It also satisfies
// workflow.Submitter so the submission workflow can post drafts
// in-process.
type RegistrationService struct {
	repo      registrationRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistrationService constructs RegistrationService. The cache
// client may be nil; every read then goes straight to the repository.
func NewRegistrationService(repo registrationRepository, cache *redis.Client, cacheTTL time.Duration, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *RegistrationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistrationService{repo: repo, cache: cache, cacheTTL: cacheTTL, metrics: metrics, validator: validate, logger: logger}
}

// Register validates a draft, normalizes empty strings to NULL and
// inserts the record. The returned record carries the storage-assigned
// id and created_at.
func (s *RegistrationService) Register(ctx context.Context, draft dto.RegistrationDraft) (*models.Registration, error) {
	if err := s.validator.Struct(draft); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	reg := sanitize(draft)
	if err := s.repo.Insert(ctx, reg); err != nil {
		s.logger.Error("registration insert failed",
			zap.Error(err),
			zap.String("student_name", draft.StudentName),
			zap.Any("draft", draft),
		)
		if errors.Is(err, repository.ErrNoInsertedRow) {
			return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "insert returned no row")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrPersistence.Code, appErrors.ErrPersistence.Status, "failed to persist registration")
	}

	s.invalidateListCache(ctx)
	return reg, nil
}

// Submit implements workflow.Submitter.
func (s *RegistrationService) Submit(ctx context.Context, draft dto.RegistrationDraft) (*models.Registration, error) {
	return s.Register(ctx, draft)
}

// List returns every registration ordered by recency, newest first.
// Results are cached briefly; an insert invalidates the cache.
func (s *RegistrationService) List(ctx context.Context) ([]models.Registration, error) {
	if s.cache != nil {
		start := time.Now()
		cached, err := s.cache.Get(ctx, listCacheKey).Bytes()
		hit := err == nil
		s.metrics.RecordCacheOperation(hit, time.Since(start))
		if hit {
			var registrations []models.Registration
			if err := json.Unmarshal(cached, &registrations); err == nil {
				return registrations, nil
			}
			s.logger.Warn("discarding undecodable registrations cache entry")
		}
	}

	registrations, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list registrations")
	}

	if s.cache != nil {
		if payload, err := json.Marshal(registrations); err == nil {
			start := time.Now()
			if err := s.cache.Set(ctx, listCacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("failed to cache registrations", zap.Error(err))
			}
			s.metrics.ObserveCacheWrite(time.Since(start))
		}
	}
	return registrations, nil
}

func (s *RegistrationService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate registrations cache", zap.Error(err))
	}
}

// sanitize converts the wire draft into a record, mapping every empty
// string to NULL so that "never answered" and "explicitly blank" are
// indistinguishable at rest.
func sanitize(draft dto.RegistrationDraft) *models.Registration {
	return &models.Registration{
		Type:             models.RegistrationType(draft.Type),
		StudentName:      draft.StudentName,
		DOB:              nilIfEmpty(draft.DOB),
		Age:              nilIfEmpty(draft.Age),
		Sex:              nilIfEmpty(draft.Sex),
		Nationality:      nilIfEmpty(draft.Nationality),
		SchoolName:       nilIfEmpty(draft.SchoolName),
		SiblingsName:     nilIfEmpty(draft.SiblingsName),
		RegNo:            nilIfEmpty(draft.RegNo),
		Occupation:       nilIfEmpty(draft.Occupation),
		Area:             nilIfEmpty(draft.Area),
		FatherName:       nilIfEmpty(draft.FatherName),
		FatherContact:    nilIfEmpty(draft.FatherContact),
		FatherEmail:      nilIfEmpty(draft.FatherEmail),
		MotherName:       nilIfEmpty(draft.MotherName),
		MotherContact:    nilIfEmpty(draft.MotherContact),
		MotherEmail:      nilIfEmpty(draft.MotherEmail),
		TshirtSize:       nilIfEmpty(draft.TshirtSize),
		SessionsPerMonth: nilIfEmpty(draft.SessionsPerMonth),
		EnrollmentDate:   nilIfEmpty(draft.EnrollmentDate),
		FeesPerMonth:     nilIfEmpty(draft.FeesPerMonth),
		SquadLevel:       nilIfEmpty(draft.SquadLevel),
		StudentSignature: nilIfEmpty(draft.StudentSignature),
		DeclarationDate:  nilIfEmpty(draft.DeclarationDate),
		ProofType:        nilIfEmpty(draft.ProofType),
		PhotoURL:         nilIfEmpty(draft.PhotoURL),
		ProofURL:         nilIfEmpty(draft.ProofURL),
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
