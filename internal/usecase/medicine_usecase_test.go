package usecase

import (
	"context"
	"testing"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMedicineUsecase() MedicineUsecase {
	return NewMedicineUsecase(testLogger(), validator.NewValidator(), newFakeMedicineRepo(), &fakeAudit{})
}

func TestCreateMedicineAndUpdateStock(t *testing.T) {
	uc := newMedicineUsecase()

	resp, err := uc.Create(context.Background(), &dto.CreateMedicineRequest{
		Name:      "Amoxicillin 500mg",
		UnitPrice: decimal.NewFromFloat(12.50),
		Stock:     200,
	})
	require.NoError(t, err)
	assert.Equal(t, 200, resp.Stock)

	updated, err := uc.UpdateStock(context.Background(), resp.ID, &dto.UpdateStockRequest{Stock: 150})
	require.NoError(t, err)
	assert.Equal(t, 150, updated.Stock)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
}

func TestCreateMedicineValidation(t *testing.T) {
	uc := newMedicineUsecase()

	_, err := uc.Create(context.Background(), &dto.CreateMedicineRequest{Stock: -1})
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Fields)
}

func TestUpdateStockUnknownMedicine(t *testing.T) {
	uc := newMedicineUsecase()

	_, err := uc.UpdateStock(context.Background(), uuid.New(), &dto.UpdateStockRequest{Stock: 10})
	assert.ErrorIs(t, err, ErrMedicineNotFound)
}
