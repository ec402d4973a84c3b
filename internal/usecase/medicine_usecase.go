package usecase

import (
	"context"
	"errors"

	"hospital-portal/internal/converter"
	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/service"
	"hospital-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrMedicineNotFound = errors.New("medicine not found")

type MedicineUsecase interface {
	Create(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	List(ctx context.Context) (*dto.MedicineListResponse, error)
	UpdateStock(ctx context.Context, id uuid.UUID, req *dto.UpdateStockRequest) (*dto.MedicineResponse, error)
}

type medicineUsecase struct {
	log          *logrus.Logger
	validator    *validator.CustomValidator
	medicineRepo repository.MedicineRepository
	audit        service.AuditService
}

func NewMedicineUsecase(
	log *logrus.Logger,
	validator *validator.CustomValidator,
	medicineRepo repository.MedicineRepository,
	audit service.AuditService,
) MedicineUsecase {
	return &medicineUsecase{
		log:          log,
		validator:    validator,
		medicineRepo: medicineRepo,
		audit:        audit,
	}
}

func (u *medicineUsecase) Create(ctx context.Context, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, &ValidationError{Fields: u.validator.FormatValidationErrors(err)}
	}

	medicine := &entity.Medicine{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		UnitPrice:   req.UnitPrice,
		Stock:       req.Stock,
	}

	if err := u.medicineRepo.Create(ctx, medicine); err != nil {
		u.log.Warnf("Failed to create medicine: %+v", err)
		return nil, err
	}

	u.audit.Record(ctx, currentUserID(ctx), entity.AuditActionMedicineCreate, "medicine", medicine.ID.String(), entity.JSON{
		"name":  medicine.Name,
		"stock": medicine.Stock,
	})

	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	medicine, err := u.medicineRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", id, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}
	return converter.MedicineToResponse(medicine), nil
}

func (u *medicineUsecase) List(ctx context.Context) (*dto.MedicineListResponse, error) {
	medicines, err := u.medicineRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list medicines: %+v", err)
		return nil, err
	}
	return &dto.MedicineListResponse{
		Medicines: converter.MedicinesToResponses(medicines),
		Total:     len(medicines),
	}, nil
}

func (u *medicineUsecase) UpdateStock(ctx context.Context, id uuid.UUID, req *dto.UpdateStockRequest) (*dto.MedicineResponse, error) {
	if err := u.validator.Validate(req); err != nil {
		return nil, &ValidationError{Fields: u.validator.FormatValidationErrors(err)}
	}

	medicine, err := u.medicineRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", id, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	if err := u.medicineRepo.UpdateStock(ctx, id, req.Stock); err != nil {
		u.log.Warnf("Failed to update stock for medicine %s: %+v", id, err)
		return nil, err
	}

	medicine.Stock = req.Stock
	return converter.MedicineToResponse(medicine), nil
}
