// Package workflow implements the multi-step enrollment form as a
// state machine: collect field values into a draft, validate each
// section before advancing, upload attachments and submit the
// consolidated record at the end. It performs no HTTP or storage work
// itself; uploads and persistence go through the two collaborator
// interfaces.
package workflow

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dkacademy/registration-api/internal/dto"
	"github.com/dkacademy/registration-api/internal/models"
)

// Phase is the coarse lifecycle of one enrollment session.
type Phase int

// Workflow phases.
const (
	PhaseSelectingType Phase = iota
	PhaseFilling
	PhaseSubmitting
	PhaseSubmitted
)

// BlobUploader stores a named byte stream and returns its public URL.
type BlobUploader interface {
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Submitter persists a finished draft and returns the stored record.
type Submitter interface {
	Submit(ctx context.Context, draft dto.RegistrationDraft) (*models.Registration, error)
}

// FieldErrors maps a draft field to its validation message. It is the
// error type for failed transitions so callers can surface messages
// inline next to the offending inputs.
type FieldErrors map[string]string

// Error implements the error interface.
func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("invalid fields: %s", strings.Join(fields, ", "))
}

// Attachment holds a selected file in memory until submission.
// Selecting a replacement before submit discards the previous one.
type Attachment struct {
	Filename string
	Data     []byte
}

// Workflow drives a single enrollment session. It is not safe for
// concurrent use; one session belongs to one applicant.
type Workflow struct {
	phase Phase
	step  Step
	draft dto.RegistrationDraft
	photo *Attachment
	proof *Attachment

	uploader  BlobUploader
	submitter Submitter
	validate  *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// New constructs a workflow in the type-selection phase.
func New(uploader BlobUploader, submitter Submitter, validate *validator.Validate, logger *zap.Logger) *Workflow {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Workflow{
		uploader:  uploader,
		submitter: submitter,
		validate:  validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Phase returns the current lifecycle phase.
func (w *Workflow) Phase() Phase {
	return w.phase
}

// Step returns the current form step. Only meaningful while filling.
func (w *Workflow) Step() Step {
	return w.step
}

// Draft returns a copy of the in-progress draft.
func (w *Workflow) Draft() dto.RegistrationDraft {
	return w.draft
}

// ChooseType starts the form for the given registration type. The
// enrollment and declaration dates are stamped with today's date and
// stay read-only for the rest of the session.
func (w *Workflow) ChooseType(t models.RegistrationType) error {
	if w.phase != PhaseSelectingType {
		return fmt.Errorf("type already selected")
	}
	if !t.Valid() {
		return FieldErrors{"type": "must be student or member"}
	}
	today := w.now().Format("2006-01-02")
	w.draft.Type = string(t)
	w.draft.EnrollmentDate = today
	w.draft.DeclarationDate = today
	w.phase = PhaseFilling
	w.step = StepDetails
	return nil
}

// UpdateDraft applies fn to the draft. The registration type and the
// stamped dates are reasserted afterwards; the form never lets the
// applicant edit them.
func (w *Workflow) UpdateDraft(fn func(*dto.RegistrationDraft)) error {
	if w.phase != PhaseFilling {
		return fmt.Errorf("form is not being filled")
	}
	regType := w.draft.Type
	enrolled := w.draft.EnrollmentDate
	declared := w.draft.DeclarationDate
	fn(&w.draft)
	w.draft.Type = regType
	w.draft.EnrollmentDate = enrolled
	w.draft.DeclarationDate = declared
	return nil
}

// AttachPhoto keeps the passport photo in memory until submission.
func (w *Workflow) AttachPhoto(filename string, data []byte) error {
	return w.attach(&w.photo, filename, data)
}

// AttachProof keeps the identity proof document in memory until submission.
func (w *Workflow) AttachProof(filename string, data []byte) error {
	return w.attach(&w.proof, filename, data)
}

func (w *Workflow) attach(slot **Attachment, filename string, data []byte) error {
	if w.phase != PhaseFilling {
		return fmt.Errorf("form is not being filled")
	}
	if filename == "" || len(data) == 0 {
		return FieldErrors{"file": "empty file"}
	}
	*slot = &Attachment{Filename: filename, Data: data}
	return nil
}

// Next advances to the following visible step. Leaving the details
// step requires a valid student name; every other forward transition
// is unconditional. On validation failure the step does not change.
func (w *Workflow) Next() error {
	if w.phase != PhaseFilling {
		return fmt.Errorf("form is not being filled")
	}
	if w.step == StepDetails {
		if errs := w.fieldErrors("StudentName"); len(errs) > 0 {
			return errs
		}
	}
	w.step = NextVisibleStep(w.step, models.RegistrationType(w.draft.Type), Forward)
	return nil
}

// Back returns to the previous visible step, never discarding values.
func (w *Workflow) Back() error {
	if w.phase != PhaseFilling {
		return fmt.Errorf("form is not being filled")
	}
	w.step = NextVisibleStep(w.step, models.RegistrationType(w.draft.Type), Backward)
	return nil
}

// Submit validates the declaration, uploads the attachments one after
// the other and posts the consolidated draft. Any failure puts the
// workflow back on the declaration step with the draft intact so the
// applicant can retry without re-entering data.
func (w *Workflow) Submit(ctx context.Context) (*models.Registration, error) {
	if w.phase != PhaseFilling || w.step != StepDeclaration {
		return nil, fmt.Errorf("submission only allowed from the declaration step")
	}

	errs := w.fieldErrors("StudentName", "FatherEmail", "MotherEmail")
	if strings.TrimSpace(w.draft.StudentSignature) == "" {
		if errs == nil {
			errs = FieldErrors{}
		}
		errs["studentSignature"] = "signature is required"
	}
	if len(errs) > 0 {
		return nil, errs
	}

	w.phase = PhaseSubmitting
	record, err := w.submit(ctx)
	if err != nil {
		w.phase = PhaseFilling
		w.step = StepDeclaration
		return nil, err
	}
	w.phase = PhaseSubmitted
	return record, nil
}

func (w *Workflow) submit(ctx context.Context) (*models.Registration, error) {
	draft := w.draft
	if w.photo != nil {
		url, err := w.uploader.Upload(ctx, w.photo.Filename, bytes.NewReader(w.photo.Data))
		if err != nil {
			w.logger.Warn("photo upload failed", zap.Error(err))
			return nil, fmt.Errorf("upload photo: %w", err)
		}
		draft.PhotoURL = url
	}
	if w.proof != nil {
		url, err := w.uploader.Upload(ctx, w.proof.Filename, bytes.NewReader(w.proof.Data))
		if err != nil {
			w.logger.Warn("proof upload failed", zap.Error(err))
			return nil, fmt.Errorf("upload proof: %w", err)
		}
		draft.ProofURL = url
	}

	record, err := w.submitter.Submit(ctx, draft)
	if err != nil {
		w.logger.Warn("registration submit failed", zap.Error(err))
		return nil, err
	}
	w.draft = draft
	return record, nil
}

// Reset discards everything and returns to type selection.
func (w *Workflow) Reset() {
	w.draft = dto.RegistrationDraft{}
	w.photo = nil
	w.proof = nil
	w.phase = PhaseSelectingType
	w.step = StepDetails
}

func (w *Workflow) fieldErrors(fields ...string) FieldErrors {
	err := w.validate.StructPartial(w.draft, fields...)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return FieldErrors{"draft": err.Error()}
	}
	errs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		errs[jsonFieldName(fe.Field())] = messageFor(fe)
	}
	return errs
}

func jsonFieldName(goName string) string {
	if goName == "" {
		return goName
	}
	if goName == "DOB" {
		return "dob"
	}
	return strings.ToLower(goName[:1]) + goName[1:]
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "invalid email"
	case "oneof":
		return "not an allowed value"
	case "url":
		return "invalid url"
	default:
		return "invalid value"
	}
}
