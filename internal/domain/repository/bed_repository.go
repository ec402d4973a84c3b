package repository

import (
	"context"

	"hospital-portal/internal/domain/entity"

	"github.com/google/uuid"
)

type BedRepository interface {
	// Claim marks the first free bed in the ward as occupied by the
	// patient. Returns nil when no free bed row exists.
	Claim(ctx context.Context, ward entity.Ward, patientID uuid.UUID) (*entity.Bed, error)

	// Release frees an occupied bed. Returns the number of rows
	// changed: 0 means the bed was not occupied.
	Release(ctx context.Context, id uuid.UUID) (int64, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bed, error)
	FindAll(ctx context.Context) ([]entity.Bed, error)
	CountByWard(ctx context.Context, ward entity.Ward) (int64, error)
	CountOccupiedByWard(ctx context.Context, ward entity.Ward) (int64, error)
	CreateBatch(ctx context.Context, beds []entity.Bed) error
	Count(ctx context.Context) (int64, error)
}
