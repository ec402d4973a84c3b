package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"hospital-portal/internal/analyzer"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type consultationFixture struct {
	usecase     ConsultationUsecase
	repo        *fakeConsultationRepo
	patientRepo *fakePatientRepo
	analyzer    *fakeAnalyzer
	audit       *fakeAudit
}

func newConsultationFixture() *consultationFixture {
	repo := newFakeConsultationRepo()
	patientRepo := newFakePatientRepo()
	fa := &fakeAnalyzer{}
	audit := &fakeAudit{}
	uc := NewConsultationUsecase(testLogger(), repo, patientRepo, fa, 5*time.Second, audit)
	return &consultationFixture{
		usecase:     uc,
		repo:        repo,
		patientRepo: patientRepo,
		analyzer:    fa,
		audit:       audit,
	}
}

func submitRequest() *dto.SubmitConsultationRequest {
	return &dto.SubmitConsultationRequest{
		PatientID: "pat_1",
		DoctorID:  "doc_1",
		ImageName: "scan.png",
		Image:     []byte("fake image bytes"),
	}
}

func TestSubmitMissingFieldsRejectedBeforeAnalyzer(t *testing.T) {
	f := newConsultationFixture()

	cases := []struct {
		name   string
		mutate func(*dto.SubmitConsultationRequest)
		field  string
	}{
		{"missing patient id", func(r *dto.SubmitConsultationRequest) { r.PatientID = "" }, "patient_id"},
		{"missing doctor id", func(r *dto.SubmitConsultationRequest) { r.DoctorID = "" }, "doctor_id"},
		{"missing image", func(r *dto.SubmitConsultationRequest) { r.Image = nil }, "file"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := submitRequest()
			tc.mutate(req)

			_, err := f.usecase.Submit(context.Background(), req)
			var missing *MissingFieldError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, tc.field, missing.Field)
		})
	}

	// The analyzer never ran and nothing was persisted
	assert.Equal(t, 0, f.analyzer.calls)
	requests, err := f.repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestSubmitProducesReport(t *testing.T) {
	f := newConsultationFixture()

	resp, err := f.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	assert.Equal(t, string(entity.ConsultationStateReported), resp.State)
	assert.Equal(t, "Normal chest X-ray", resp.ConditionDetected)
	assert.Equal(t, "92.50%", resp.Confidence)
	assert.NotEmpty(t, resp.AITreatmentPlan)
	assert.Equal(t, string(entity.DispositionPending), resp.Disposition)

	stored, err := f.repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.ConsultationStateReported, stored.State)
	assert.Contains(t, f.audit.actions, entity.AuditActionConsultationSubmit)
}

func TestSubmitUsesDefaultVitalsForUnknownPatient(t *testing.T) {
	f := newConsultationFixture()

	// "pat_1" is not a UUID, so no patient store lookup can resolve it
	_, err := f.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	require.Len(t, f.analyzer.inputs, 1)
	assert.Equal(t, analyzer.PatientContext{}, f.analyzer.inputs[0].Patient)
}

func TestSubmitFeedsPatientVitalsToAnalyzer(t *testing.T) {
	f := newConsultationFixture()

	patient := &entity.Patient{
		ID:        uuid.New(),
		Name:      "Tommy Nguyen",
		Age:       8,
		Gender:    entity.GenderMale,
		Weight:    28.0,
		Allergies: "Penicillin",
		Severity:  entity.SeverityNormal,
	}
	require.NoError(t, f.patientRepo.Create(context.Background(), patient))

	req := submitRequest()
	req.PatientID = patient.ID.String()

	_, err := f.usecase.Submit(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, f.analyzer.inputs, 1)
	got := f.analyzer.inputs[0].Patient
	assert.Equal(t, "Tommy Nguyen", got.Name)
	assert.Equal(t, 8, got.Age)
	assert.Equal(t, 28.0, got.Weight)
	assert.Equal(t, "Penicillin", got.Allergies)
}

func TestSubmitAnalyzerFailureIsTerminal(t *testing.T) {
	f := newConsultationFixture()
	f.analyzer.err = analyzer.ErrAnalysis

	_, err := f.usecase.Submit(context.Background(), submitRequest())
	require.ErrorIs(t, err, ErrAnalysisFailed)

	requests, err := f.repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	failed := requests[0]
	assert.Equal(t, entity.ConsultationStateFailed, failed.State)
	assert.NotEmpty(t, failed.FailureReason)

	// The failed request cannot be disposed
	_, err = f.usecase.Dispose(context.Background(), failed.ID, "Approve")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Resubmission creates a fresh request
	resp, err := f2Submit(f)
	require.NoError(t, err)
	assert.NotEqual(t, failed.ID, resp.ID)
}

func f2Submit(f *consultationFixture) (*dto.ConsultationResponse, error) {
	f.analyzer.err = nil
	return f.usecase.Submit(context.Background(), submitRequest())
}

func TestDisposeExactlyOnce(t *testing.T) {
	f := newConsultationFixture()

	resp, err := f.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	disposed, err := f.usecase.Dispose(context.Background(), resp.ID, "Approve")
	require.NoError(t, err)
	assert.Equal(t, string(entity.DispositionApproved), disposed.Disposition)
	require.NotNil(t, disposed.DisposedAt)

	// Later attempts and reversals are rejected
	_, err = f.usecase.Dispose(context.Background(), resp.ID, "Reject")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.usecase.Dispose(context.Background(), resp.ID, "Approve")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Report fields were not touched by the dispose
	stored, err := f.repo.FindByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ConditionDetected, stored.ConditionDetected)
	assert.Equal(t, resp.AITreatmentPlan, stored.TreatmentPlan)
	assert.Contains(t, f.audit.actions, entity.AuditActionConsultationDispose)
}

func TestDisposeReject(t *testing.T) {
	f := newConsultationFixture()

	resp, err := f.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	disposed, err := f.usecase.Dispose(context.Background(), resp.ID, "Reject")
	require.NoError(t, err)
	assert.Equal(t, string(entity.DispositionRejected), disposed.Disposition)
}

func TestDisposeUnknownConsultation(t *testing.T) {
	f := newConsultationFixture()

	_, err := f.usecase.Dispose(context.Background(), uuid.New(), "Approve")
	assert.ErrorIs(t, err, ErrConsultationNotFound)
}

func TestDisposeInvalidDecision(t *testing.T) {
	f := newConsultationFixture()

	_, err := f.usecase.Dispose(context.Background(), uuid.New(), "Maybe")
	assert.ErrorIs(t, err, ErrInvalidDecision)
}

func TestDisposeConcurrentSingleWinner(t *testing.T) {
	f := newConsultationFixture()

	resp, err := f.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		decision := "Approve"
		if i%2 == 1 {
			decision = "Reject"
		}
		go func(d string) {
			_, err := f.usecase.Dispose(context.Background(), resp.ID, d)
			results <- err
		}(decision)
	}

	winners := 0
	for i := 0; i < 10; i++ {
		err := <-results
		if err == nil {
			winners++
		} else if !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners)
}

func TestListByDoctor(t *testing.T) {
	f := newConsultationFixture()

	_, err := f.usecase.Submit(context.Background(), submitRequest())
	require.NoError(t, err)

	other := submitRequest()
	other.DoctorID = "doc_2"
	_, err = f.usecase.Submit(context.Background(), other)
	require.NoError(t, err)

	list, err := f.usecase.ListByDoctor(context.Background(), "doc_1")
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	all, err := f.usecase.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestCheckSymptoms(t *testing.T) {
	f := newConsultationFixture()

	result, err := f.usecase.CheckSymptoms(context.Background(), &dto.SymptomCheckRequest{
		Symptoms: "severe chest pain and shortness of breath",
	})
	require.NoError(t, err)
	assert.Contains(t, result.Advice, "Emergency Room")

	_, err = f.usecase.CheckSymptoms(context.Background(), &dto.SymptomCheckRequest{})
	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "symptoms", missing.Field)
}
