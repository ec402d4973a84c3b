package repository

import (
	"context"
	"errors"
	"time"

	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type consultationRepository struct {
	db *gorm.DB
}

func NewConsultationRepository(db *gorm.DB) domainRepo.ConsultationRepository {
	return &consultationRepository{db: db}
}

func (r *consultationRepository) Create(ctx context.Context, request *entity.ConsultationRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *consultationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ConsultationRequest, error) {
	var request entity.ConsultationRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *consultationRepository) FindAll(ctx context.Context) ([]entity.ConsultationRequest, error) {
	var requests []entity.ConsultationRequest
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *consultationRepository) FindByDoctorID(ctx context.Context, doctorID string) ([]entity.ConsultationRequest, error) {
	var requests []entity.ConsultationRequest
	err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *consultationRepository) MarkReported(ctx context.Context, id uuid.UUID, fields domainRepo.ReportFields) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.ConsultationRequest{}).
		Where("id = ? AND state = ?", id, entity.ConsultationStateSubmitted).
		Updates(map[string]interface{}{
			"state":              entity.ConsultationStateReported,
			"condition_detected": fields.ConditionDetected,
			"confidence":         fields.Confidence,
			"treatment_plan":     fields.TreatmentPlan,
		})
	return result.RowsAffected, result.Error
}

func (r *consultationRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.ConsultationRequest{}).
		Where("id = ? AND state = ?", id, entity.ConsultationStateSubmitted).
		Updates(map[string]interface{}{
			"state":          entity.ConsultationStateFailed,
			"failure_reason": reason,
		})
	return result.RowsAffected, result.Error
}

// Dispose is the single compare-and-set on request state: only a
// Reported request with a Pending disposition can be decided, so
// concurrent dispose attempts have exactly one winner.
func (r *consultationRepository) Dispose(ctx context.Context, id uuid.UUID, disposition entity.Disposition, disposedBy *uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&entity.ConsultationRequest{}).
		Where("id = ? AND state = ? AND disposition = ?", id, entity.ConsultationStateReported, entity.DispositionPending).
		Updates(map[string]interface{}{
			"disposition": disposition,
			"disposed_by": disposedBy,
			"disposed_at": now,
		})
	return result.RowsAffected, result.Error
}
