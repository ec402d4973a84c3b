package repository

import (
	"context"

	"hospital-portal/internal/domain/entity"

	"github.com/google/uuid"
)

// ReportFields is what the analyzer produced for a Reported request.
type ReportFields struct {
	ConditionDetected string
	Confidence        string
	TreatmentPlan     string
}

type ConsultationRepository interface {
	Create(ctx context.Context, request *entity.ConsultationRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ConsultationRequest, error)
	FindAll(ctx context.Context) ([]entity.ConsultationRequest, error)
	FindByDoctorID(ctx context.Context, doctorID string) ([]entity.ConsultationRequest, error)

	// MarkReported transitions Submitted -> Reported, storing the
	// report fields. Rows changed is 0 if the request was not Submitted.
	MarkReported(ctx context.Context, id uuid.UUID, fields ReportFields) (int64, error)

	// MarkFailed transitions Submitted -> Failed with the failure reason.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) (int64, error)

	// Dispose atomically sets the disposition of a Reported request
	// whose disposition is still Pending. Rows changed is 0 when the
	// transition is illegal, which guarantees exactly one winner under
	// concurrent dispose attempts.
	Dispose(ctx context.Context, id uuid.UUID, disposition entity.Disposition, disposedBy *uuid.UUID) (int64, error)
}
