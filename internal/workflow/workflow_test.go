package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkacademy/registration-api/internal/dto"
	"github.com/dkacademy/registration-api/internal/models"
)

type uploaderStub struct {
	calls []string
	err   error
}

func (u *uploaderStub) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	u.calls = append(u.calls, filename)
	if u.err != nil {
		return "", u.err
	}
	return "https://blobs.test/" + filename, nil
}

type submitterStub struct {
	drafts []dto.RegistrationDraft
	err    error
}

func (s *submitterStub) Submit(ctx context.Context, draft dto.RegistrationDraft) (*models.Registration, error) {
	s.drafts = append(s.drafts, draft)
	if s.err != nil {
		return nil, s.err
	}
	return &models.Registration{ID: 7, Type: models.RegistrationType(draft.Type), StudentName: draft.StudentName, CreatedAt: time.Now()}, nil
}

func newTestWorkflow(uploader *uploaderStub, submitter *submitterStub) *Workflow {
	w := New(uploader, submitter, nil, nil)
	w.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }
	return w
}

func fillToDeclaration(t *testing.T, w *Workflow, regType models.RegistrationType) {
	t.Helper()
	require.NoError(t, w.ChooseType(regType))
	require.NoError(t, w.UpdateDraft(func(d *dto.RegistrationDraft) {
		d.StudentName = "Anika Rao"
		d.StudentSignature = "Anika Rao"
	}))
	for w.Step() != StepDeclaration {
		require.NoError(t, w.Next())
	}
}

func TestChooseTypeStampsDates(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})

	require.NoError(t, w.ChooseType(models.RegistrationTypeStudent))

	draft := w.Draft()
	assert.Equal(t, "student", draft.Type)
	assert.Equal(t, "2024-06-01", draft.EnrollmentDate)
	assert.Equal(t, "2024-06-01", draft.DeclarationDate)
	assert.Equal(t, PhaseFilling, w.Phase())
	assert.Equal(t, StepDetails, w.Step())
}

func TestChooseTypeRejectsUnknownType(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})

	err := w.ChooseType(models.RegistrationType("coach"))

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "type")
	assert.Equal(t, PhaseSelectingType, w.Phase())
}

func TestChooseTypeOnlyOnce(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})

	require.NoError(t, w.ChooseType(models.RegistrationTypeMember))
	assert.Error(t, w.ChooseType(models.RegistrationTypeStudent))
}

func TestUpdateDraftCannotTouchTypeOrDates(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})
	require.NoError(t, w.ChooseType(models.RegistrationTypeStudent))

	require.NoError(t, w.UpdateDraft(func(d *dto.RegistrationDraft) {
		d.Type = "member"
		d.EnrollmentDate = "1999-01-01"
		d.DeclarationDate = "1999-01-01"
		d.Area = "Adyar"
	}))

	draft := w.Draft()
	assert.Equal(t, "student", draft.Type)
	assert.Equal(t, "2024-06-01", draft.EnrollmentDate)
	assert.Equal(t, "2024-06-01", draft.DeclarationDate)
	assert.Equal(t, "Adyar", draft.Area)
}

func TestNextRequiresStudentName(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})
	require.NoError(t, w.ChooseType(models.RegistrationTypeStudent))

	err := w.Next()

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "required", fieldErrs["studentName"])
	assert.Equal(t, StepDetails, w.Step())

	require.NoError(t, w.UpdateDraft(func(d *dto.RegistrationDraft) { d.StudentName = "Anika Rao" }))
	require.NoError(t, w.Next())
	assert.Equal(t, StepParents, w.Step())
}

func TestMemberNavigationSkipsParentsBothWays(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})
	require.NoError(t, w.ChooseType(models.RegistrationTypeMember))
	require.NoError(t, w.UpdateDraft(func(d *dto.RegistrationDraft) { d.StudentName = "Ravi Kumar" }))

	require.NoError(t, w.Next())
	assert.Equal(t, StepOffice, w.Step())

	require.NoError(t, w.Back())
	assert.Equal(t, StepDetails, w.Step())
}

func TestBackNeverDiscardsValues(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})
	require.NoError(t, w.ChooseType(models.RegistrationTypeStudent))
	require.NoError(t, w.UpdateDraft(func(d *dto.RegistrationDraft) {
		d.StudentName = "Anika Rao"
		d.FatherName = "Suresh Rao"
	}))
	require.NoError(t, w.Next())

	require.NoError(t, w.Back())

	assert.Equal(t, "Suresh Rao", w.Draft().FatherName)
}

func TestSubmitRejectsInvalidEmailBeforeAnyCall(t *testing.T) {
	uploader := &uploaderStub{}
	submitter := &submitterStub{}
	w := newTestWorkflow(uploader, submitter)
	fillToDeclaration(t, w, models.RegistrationTypeStudent)
	require.NoError(t, w.UpdateDraft(func(d *dto.RegistrationDraft) { d.FatherEmail = "not-an-email" }))
	require.NoError(t, w.AttachPhoto("photo.jpg", []byte("jpeg")))

	_, err := w.Submit(context.Background())

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "invalid email", fieldErrs["fatherEmail"])
	assert.Empty(t, uploader.calls, "no upload may happen before validation passes")
	assert.Empty(t, submitter.drafts)
	assert.Equal(t, PhaseFilling, w.Phase())
}

func TestSubmitRequiresSignature(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})
	fillToDeclaration(t, w, models.RegistrationTypeMember)
	require.NoError(t, w.UpdateDraft(func(d *dto.RegistrationDraft) { d.StudentSignature = "   " }))

	_, err := w.Submit(context.Background())

	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Equal(t, "signature is required", fieldErrs["studentSignature"])
}

func TestSubmitUploadsAttachmentsThenPersists(t *testing.T) {
	uploader := &uploaderStub{}
	submitter := &submitterStub{}
	w := newTestWorkflow(uploader, submitter)
	fillToDeclaration(t, w, models.RegistrationTypeStudent)
	require.NoError(t, w.AttachPhoto("photo.jpg", []byte("jpeg")))
	require.NoError(t, w.AttachProof("aadhaar.pdf", []byte("pdf")))

	record, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(7), record.ID)
	assert.Equal(t, []string{"photo.jpg", "aadhaar.pdf"}, uploader.calls)
	require.Len(t, submitter.drafts, 1)
	assert.Equal(t, "https://blobs.test/photo.jpg", submitter.drafts[0].PhotoURL)
	assert.Equal(t, "https://blobs.test/aadhaar.pdf", submitter.drafts[0].ProofURL)
	assert.Equal(t, PhaseSubmitted, w.Phase())
}

func TestSubmitWithoutAttachmentsSkipsUploads(t *testing.T) {
	uploader := &uploaderStub{}
	w := newTestWorkflow(uploader, &submitterStub{})
	fillToDeclaration(t, w, models.RegistrationTypeMember)

	_, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.Empty(t, uploader.calls)
}

func TestSubmitFailureKeepsDraftAtDeclaration(t *testing.T) {
	submitter := &submitterStub{err: errors.New("db down")}
	w := newTestWorkflow(&uploaderStub{}, submitter)
	fillToDeclaration(t, w, models.RegistrationTypeStudent)

	_, err := w.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, PhaseFilling, w.Phase())
	assert.Equal(t, StepDeclaration, w.Step())
	assert.Equal(t, "Anika Rao", w.Draft().StudentName)

	submitter.err = nil
	_, err = w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, PhaseSubmitted, w.Phase())
}

func TestSubmitUploadFailureDoesNotPersist(t *testing.T) {
	uploader := &uploaderStub{err: fmt.Errorf("blob store unreachable")}
	submitter := &submitterStub{}
	w := newTestWorkflow(uploader, submitter)
	fillToDeclaration(t, w, models.RegistrationTypeStudent)
	require.NoError(t, w.AttachPhoto("photo.jpg", []byte("jpeg")))

	_, err := w.Submit(context.Background())

	require.Error(t, err)
	assert.Empty(t, submitter.drafts)
	assert.Equal(t, StepDeclaration, w.Step())
}

func TestSubmitOnlyFromDeclaration(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})
	require.NoError(t, w.ChooseType(models.RegistrationTypeStudent))

	_, err := w.Submit(context.Background())
	assert.Error(t, err)
}

func TestAttachReplacesPreviousSelection(t *testing.T) {
	uploader := &uploaderStub{}
	submitter := &submitterStub{}
	w := newTestWorkflow(uploader, submitter)
	fillToDeclaration(t, w, models.RegistrationTypeStudent)
	require.NoError(t, w.AttachPhoto("first.jpg", []byte("a")))
	require.NoError(t, w.AttachPhoto("second.jpg", []byte("b")))

	_, err := w.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"second.jpg"}, uploader.calls)
}

func TestAttachRejectsEmptyFile(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})
	require.NoError(t, w.ChooseType(models.RegistrationTypeStudent))

	assert.Error(t, w.AttachPhoto("photo.jpg", nil))
	assert.Error(t, w.AttachProof("", []byte("pdf")))
}

func TestResetReturnsToTypeSelection(t *testing.T) {
	w := newTestWorkflow(&uploaderStub{}, &submitterStub{})
	fillToDeclaration(t, w, models.RegistrationTypeStudent)

	w.Reset()

	assert.Equal(t, PhaseSelectingType, w.Phase())
	assert.Equal(t, dto.RegistrationDraft{}, w.Draft())
}

func TestFieldErrorsMessageListsFields(t *testing.T) {
	errs := FieldErrors{"studentName": "required", "fatherEmail": "invalid email"}
	assert.Equal(t, "invalid fields: fatherEmail, studentName", errs.Error())
}
