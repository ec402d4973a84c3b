package usecase

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"hospital-portal/internal/analyzer"
	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrConsultationNotFound = errors.New("consultation request not found")
	ErrAnalysisFailed       = errors.New("image analysis failed")
	ErrInvalidTransition    = errors.New("consultation is not awaiting disposition")
	ErrInvalidDecision      = errors.New("decision must be Approve or Reject")
)

// MissingFieldError names the submission field that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

type ConsultationUsecase interface {
	// Submit records a consultation request and runs the analyzer on
	// it. A missing patient id, doctor id or image is rejected before
	// the analyzer is ever invoked. Analyzer failure leaves the
	// request in a terminal Failed state; resubmission creates a new
	// request.
	Submit(ctx context.Context, req *dto.SubmitConsultationRequest) (*dto.ConsultationResponse, error)

	// Dispose applies the clinician decision to a Reported request.
	// Exactly one dispose can ever succeed per request.
	Dispose(ctx context.Context, id uuid.UUID, decision string) (*dto.ConsultationResponse, error)

	Get(ctx context.Context, id uuid.UUID) (*dto.ConsultationResponse, error)
	List(ctx context.Context) (*dto.ConsultationListResponse, error)
	ListByDoctor(ctx context.Context, doctorID string) (*dto.ConsultationListResponse, error)
	CheckSymptoms(ctx context.Context, req *dto.SymptomCheckRequest) (*dto.SymptomCheckResponse, error)
}

type consultationUsecase struct {
	log              *logrus.Logger
	consultationRepo repository.ConsultationRepository
	patientRepo      repository.PatientRepository
	analyzer         analyzer.Analyzer
	analyzerTimeout  time.Duration
	audit            service.AuditService
}

func NewConsultationUsecase(
	log *logrus.Logger,
	consultationRepo repository.ConsultationRepository,
	patientRepo repository.PatientRepository,
	imageAnalyzer analyzer.Analyzer,
	analyzerTimeout time.Duration,
	audit service.AuditService,
) ConsultationUsecase {
	return &consultationUsecase{
		log:              log,
		consultationRepo: consultationRepo,
		patientRepo:      patientRepo,
		analyzer:         imageAnalyzer,
		analyzerTimeout:  analyzerTimeout,
		audit:            audit,
	}
}

func (u *consultationUsecase) Submit(ctx context.Context, req *dto.SubmitConsultationRequest) (*dto.ConsultationResponse, error) {
	// Guard the submission shape before anything touches the analyzer
	switch {
	case req.PatientID == "":
		return nil, &MissingFieldError{Field: "patient_id"}
	case req.DoctorID == "":
		return nil, &MissingFieldError{Field: "doctor_id"}
	case len(req.Image) == 0:
		return nil, &MissingFieldError{Field: "file"}
	}

	checksum := md5.Sum(req.Image)
	request := &entity.ConsultationRequest{
		ID:            uuid.New(),
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		ImageName:     req.ImageName,
		ImageSize:     int64(len(req.Image)),
		ImageChecksum: hex.EncodeToString(checksum[:]),
		State:         entity.ConsultationStateSubmitted,
		Disposition:   entity.DispositionPending,
	}

	if err := u.consultationRepo.Create(ctx, request); err != nil {
		u.log.Warnf("Failed to create consultation request: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, currentUserID(ctx), entity.AuditActionConsultationSubmit, "consultation", request.ID.String(), entity.JSON{
		"patient_id": req.PatientID,
		"doctor_id":  req.DoctorID,
		"image_size": request.ImageSize,
	})

	// The declared patient id is not validated against the patient
	// store; an unknown id simply analyzes with default vitals.
	patientCtx := u.lookupPatientContext(ctx, req.PatientID)

	analyzeCtx, cancel := context.WithTimeout(ctx, u.analyzerTimeout)
	defer cancel()

	result, err := u.analyzer.Analyze(analyzeCtx, analyzer.Input{
		Image:   req.Image,
		Patient: patientCtx,
	})
	if err != nil {
		reason := err.Error()
		if analyzeCtx.Err() != nil {
			reason = fmt.Sprintf("analyzer timed out after %v", u.analyzerTimeout)
		}
		u.log.Warnf("Analysis failed for consultation %s: %s", request.ID, reason)

		if _, markErr := u.consultationRepo.MarkFailed(ctx, request.ID, reason); markErr != nil {
			u.log.Errorf("Failed to mark consultation %s as failed: %+v", request.ID, markErr)
		}
		return nil, fmt.Errorf("%w: %s", ErrAnalysisFailed, reason)
	}

	rows, err := u.consultationRepo.MarkReported(ctx, request.ID, repository.ReportFields{
		ConditionDetected: result.ConditionDetected,
		Confidence:        result.Confidence,
		TreatmentPlan:     result.TreatmentPlan,
	})
	if err != nil {
		u.log.Errorf("Failed to store report for consultation %s: %+v", request.ID, err)
		return nil, err
	}
	if rows == 0 {
		u.log.Errorf("Consultation %s left Submitted state before its report arrived", request.ID)
		return nil, ErrInvalidTransition
	}

	request.State = entity.ConsultationStateReported
	request.ConditionDetected = result.ConditionDetected
	request.Confidence = result.Confidence
	request.TreatmentPlan = result.TreatmentPlan

	u.log.Infof("Consultation reported: id=%s condition=%q confidence=%s", request.ID, result.ConditionDetected, result.Confidence)
	return converter.ConsultationToResponse(request), nil
}

func (u *consultationUsecase) Dispose(ctx context.Context, id uuid.UUID, decision string) (*dto.ConsultationResponse, error) {
	var disposition entity.Disposition
	switch decision {
	case "Approve":
		disposition = entity.DispositionApproved
	case "Reject":
		disposition = entity.DispositionRejected
	default:
		return nil, ErrInvalidDecision
	}

	request, err := u.consultationRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", id, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrConsultationNotFound
	}

	userID := currentUserID(ctx)
	rows, err := u.consultationRepo.Dispose(ctx, id, disposition, userID)
	if err != nil {
		u.log.Warnf("Failed to dispose consultation %s: %+v", id, err)
		return nil, err
	}
	if rows == 0 {
		// Not Reported, or already decided by a concurrent call.
		return nil, ErrInvalidTransition
	}

	u.audit.Record(ctx, userID, entity.AuditActionConsultationDispose, "consultation", id.String(), entity.JSON{
		"decision": string(disposition),
	})

	request.Disposition = disposition
	now := time.Now().UTC()
	request.DisposedAt = &now
	request.DisposedBy = userID

	u.log.Infof("Consultation disposed: id=%s decision=%s", id, disposition)
	return converter.ConsultationToResponse(request), nil
}

func (u *consultationUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.ConsultationResponse, error) {
	request, err := u.consultationRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find consultation %s: %+v", id, err)
		return nil, err
	}
	if request == nil {
		return nil, ErrConsultationNotFound
	}
	return converter.ConsultationToResponse(request), nil
}

func (u *consultationUsecase) List(ctx context.Context) (*dto.ConsultationListResponse, error) {
	requests, err := u.consultationRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list consultations: %+v", err)
		return nil, err
	}
	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(requests),
		Total:         len(requests),
	}, nil
}

func (u *consultationUsecase) ListByDoctor(ctx context.Context, doctorID string) (*dto.ConsultationListResponse, error) {
	requests, err := u.consultationRepo.FindByDoctorID(ctx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list consultations for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	return &dto.ConsultationListResponse{
		Consultations: converter.ConsultationsToResponses(requests),
		Total:         len(requests),
	}, nil
}

func (u *consultationUsecase) CheckSymptoms(ctx context.Context, req *dto.SymptomCheckRequest) (*dto.SymptomCheckResponse, error) {
	if req.Symptoms == "" {
		return nil, &MissingFieldError{Field: "symptoms"}
	}
	return &dto.SymptomCheckResponse{
		Advice: analyzer.CheckSymptoms(req.Symptoms),
	}, nil
}

// lookupPatientContext feeds the analyzer the declared patient's vitals
// when the id resolves, and zero values (analyzer defaults) otherwise.
func (u *consultationUsecase) lookupPatientContext(ctx context.Context, patientID string) analyzer.PatientContext {
	id, err := uuid.Parse(patientID)
	if err != nil {
		return analyzer.PatientContext{}
	}

	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil || patient == nil {
		return analyzer.PatientContext{}
	}

	return analyzer.PatientContext{
		Name:      patient.Name,
		Age:       patient.Age,
		Weight:    patient.Weight,
		Allergies: patient.Allergies,
	}
}
