package repository

import (
	"context"

	"hospital-portal/internal/domain/entity"

	"github.com/google/uuid"
)

type MedicineRepository interface {
	Create(ctx context.Context, medicine *entity.Medicine) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Medicine, error)
	FindAll(ctx context.Context) ([]entity.Medicine, error)
	UpdateStock(ctx context.Context, id uuid.UUID, stock int) error
	Count(ctx context.Context) (int64, error)
}
