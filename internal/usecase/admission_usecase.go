package usecase

import (
	"context"
	"errors"
	"fmt"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/delivery/http/middleware"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/service"
	"hospital-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrPatientNotAdmitted = errors.New("patient has no bed assignment")
	ErrBedAccountingDrift = errors.New("bed store does not match ward ledger")
)

// ValidationError carries the per-field messages of a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

type AdmissionUsecase interface {
	// RegisterPatient admits a patient, allocating a bed when the
	// severity requires one. All-or-nothing: a failed allocation
	// leaves no patient record behind.
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	// DischargePatient releases the patient's bed and clears the
	// assignment. The patient record is kept.
	DischargePatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
}

type admissionUsecase struct {
	log         *logrus.Logger
	validator   *validator.CustomValidator
	patientRepo repository.PatientRepository
	bedRepo     repository.BedRepository
	ledger      *entity.WardLedger
	bedSync     *service.BedSyncService
	audit       service.AuditService
}

func NewAdmissionUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	patientRepo repository.PatientRepository,
	bedRepo repository.BedRepository,
	ledger *entity.WardLedger,
	bedSync *service.BedSyncService,
	audit service.AuditService,
) AdmissionUsecase {
	return &admissionUsecase{
		log:         log,
		validator:   validator,
		patientRepo: patientRepo,
		bedRepo:     bedRepo,
		ledger:      ledger,
		bedSync:     bedSync,
		audit:       audit,
	}
}

// RegisterPatient admission flow:
//
// 1. Validate input. Nothing is allocated for invalid input.
// 2. Map severity to ward. Normal severity skips the ledger entirely.
// 3. Reserve a slot in the ward ledger (the atomic capacity gate).
// 4. Claim a free bed row and insert the patient.
// 5. Any failure after step 3 compensates by releasing the slot.
func (u *admissionUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.PatientResponse, error) {
	// Step 1: validate before any allocation
	if err := u.validator.Validate(req); err != nil {
		return nil, &ValidationError{Fields: u.validator.FormatValidationErrors(err)}
	}

	severity := entity.Severity(req.Severity)
	allergies := req.Allergies
	if allergies == "" {
		allergies = "None"
	}

	patient := &entity.Patient{
		ID:        uuid.New(),
		Name:      req.Name,
		Age:       req.Age,
		Gender:    req.Gender,
		Contact:   req.Contact,
		Weight:    req.Weight,
		Allergies: allergies,
		History:   req.History,
		Severity:  severity,
	}

	// Step 2: severity decides the ward
	ward, needsBed := severity.Ward()
	if !needsBed {
		if err := u.patientRepo.Create(ctx, patient); err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return nil, err
		}
		u.recordAdmission(ctx, patient, nil)
		u.bedSync.InvalidateStats(ctx)
		return converter.PatientToResponse(patient), nil
	}

	// Step 3: atomic slot reservation, the only gate on ward capacity
	if err := u.ledger.Allocate(ward); err != nil {
		if errors.Is(err, entity.ErrCapacityExhausted) {
			u.log.Infof("Admission rejected, ward %s exhausted: patient=%s severity=%s", ward, req.Name, severity)
			return nil, err
		}
		return nil, err
	}

	// Step 4: claim a durable bed row
	bed, err := u.bedRepo.Claim(ctx, ward, patient.ID)
	if err != nil || bed == nil {
		u.compensate(ctx, ward, nil)
		if err != nil {
			u.log.Errorf("Failed to claim bed in ward %s: %+v", ward, err)
			return nil, err
		}
		// The ledger had a free slot but the bed table did not.
		u.log.Errorf("CRITICAL: ward %s ledger reports free slots but no free bed row exists", ward)
		return nil, ErrBedAccountingDrift
	}

	patient.BedID = &bed.ID
	patient.Bed = bed

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		u.log.Errorf("Failed to insert patient, compensating bed allocation: %+v", err)
		u.compensate(ctx, ward, &bed.ID)
		return nil, err
	}

	u.log.Infof("Patient admitted: id=%s severity=%s ward=%s bed=%s", patient.ID, severity, ward, bed.Number)
	u.recordAdmission(ctx, patient, bed)

	if err := u.bedSync.PublishCounts(ctx); err != nil {
		// Mirror failures do not undo the admission
		u.log.Warnf("Failed to publish ward counts after admission (non-fatal): %+v", err)
	}

	return converter.PatientToResponse(patient), nil
}

func (u *admissionUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *admissionUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}

func (u *admissionUsecase) DischargePatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", id, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if !patient.HasBed() {
		return nil, ErrPatientNotAdmitted
	}

	bed, err := u.bedRepo.FindByID(ctx, *patient.BedID)
	if err != nil {
		return nil, err
	}
	if bed == nil {
		u.log.Errorf("CRITICAL: patient %s references missing bed %s", id, *patient.BedID)
		return nil, ErrBedAccountingDrift
	}

	rows, err := u.bedRepo.Release(ctx, bed.ID)
	if err != nil {
		u.log.Warnf("Failed to release bed %s: %+v", bed.ID, err)
		return nil, err
	}
	if rows == 0 {
		// A release with no matching allocation means the accounting
		// drifted; surface it loudly instead of ignoring it.
		u.log.Errorf("CRITICAL: release of bed %s changed no rows, bed accounting has drifted", bed.ID)
		return nil, entity.ErrInvalidRelease
	}

	if err := u.patientRepo.ClearBed(ctx, id); err != nil {
		u.log.Warnf("Failed to clear bed reference for patient %s: %+v", id, err)
		return nil, err
	}

	if err := u.ledger.Release(bed.Ward); err != nil {
		u.log.Errorf("CRITICAL: ledger release failed for ward %s: %+v", bed.Ward, err)
		return nil, err
	}

	userID := currentUserID(ctx)
	u.audit.Record(ctx, userID, entity.AuditActionPatientDischarge, "patient", patient.ID.String(), entity.JSON{
		"bed":  bed.Number,
		"ward": string(bed.Ward),
	})

	if err := u.bedSync.PublishCounts(ctx); err != nil {
		u.log.Warnf("Failed to publish ward counts after discharge (non-fatal): %+v", err)
	}

	patient.BedID = nil
	patient.Bed = nil
	u.log.Infof("Patient discharged: id=%s bed=%s ward=%s", patient.ID, bed.Number, bed.Ward)
	return converter.PatientToResponse(patient), nil
}

// compensate undoes a ledger reservation and, when a bed row was
// already claimed, frees it again. Compensation failures are fatal for
// accounting, so they are logged at error level.
func (u *admissionUsecase) compensate(ctx context.Context, ward entity.Ward, bedID *uuid.UUID) {
	if bedID != nil {
		if _, err := u.bedRepo.Release(ctx, *bedID); err != nil {
			u.log.Errorf("CRITICAL: failed to free bed %s during compensation: %+v", *bedID, err)
		}
	}
	if err := u.ledger.Release(ward); err != nil {
		u.log.Errorf("CRITICAL: failed to release ward %s slot during compensation: %+v", ward, err)
	}
}

func (u *admissionUsecase) recordAdmission(ctx context.Context, patient *entity.Patient, bed *entity.Bed) {
	detail := entity.JSON{"severity": string(patient.Severity)}
	if bed != nil {
		detail["bed"] = bed.Number
		detail["ward"] = string(bed.Ward)
	}
	u.audit.Record(ctx, currentUserID(ctx), entity.AuditActionPatientAdmit, "patient", patient.ID.String(), detail)
}

func currentUserID(ctx context.Context) *uuid.UUID {
	if id, ok := middleware.GetUserIDFromContext(ctx); ok {
		return &id
	}
	return nil
}
