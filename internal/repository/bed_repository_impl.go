package repository

import (
	"context"
	"errors"

	"hospital-portal/internal/domain/entity"
	domainRepo "hospital-portal/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type bedRepository struct {
	db *gorm.DB
}

func NewBedRepository(db *gorm.DB) domainRepo.BedRepository {
	return &bedRepository{db: db}
}

// Claim takes the lowest-numbered free bed in the ward with a guarded
// update: the WHERE re-checks is_occupied so a concurrently claimed row
// is never taken twice. The ward ledger serializes claims per ward, so
// a zero-row outcome here means the bed table drifted from the ledger.
func (r *bedRepository) Claim(ctx context.Context, ward entity.Ward, patientID uuid.UUID) (*entity.Bed, error) {
	var bed entity.Bed
	err := r.db.WithContext(ctx).
		Where("ward = ? AND is_occupied = ?", ward, false).
		Order("number").
		First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	result := r.db.WithContext(ctx).Model(&entity.Bed{}).
		Where("id = ? AND is_occupied = ?", bed.ID, false).
		Updates(map[string]interface{}{
			"is_occupied": true,
			"patient_id":  patientID,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	bed.IsOccupied = true
	bed.PatientID = &patientID
	return &bed, nil
}

// Release frees the bed only if it is occupied. RowsAffected 0 signals a
// release without a matching allocation.
func (r *bedRepository) Release(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Bed{}).
		Where("id = ? AND is_occupied = ?", id, true).
		Updates(map[string]interface{}{
			"is_occupied": false,
			"patient_id":  nil,
		})
	return result.RowsAffected, result.Error
}

func (r *bedRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bed, error) {
	var bed entity.Bed
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bed, nil
}

func (r *bedRepository) FindAll(ctx context.Context) ([]entity.Bed, error) {
	var beds []entity.Bed
	err := r.db.WithContext(ctx).Order("number").Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *bedRepository) CountByWard(ctx context.Context, ward entity.Ward) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Bed{}).
		Where("ward = ?", ward).
		Count(&count).Error
	return count, err
}

func (r *bedRepository) CountOccupiedByWard(ctx context.Context, ward entity.Ward) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Bed{}).
		Where("ward = ? AND is_occupied = ?", ward, true).
		Count(&count).Error
	return count, err
}

func (r *bedRepository) CreateBatch(ctx context.Context, beds []entity.Bed) error {
	return r.db.WithContext(ctx).Create(&beds).Error
}

func (r *bedRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Bed{}).Count(&count).Error
	return count, err
}
