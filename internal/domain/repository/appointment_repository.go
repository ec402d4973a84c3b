package repository

import (
	"context"

	"hospital-portal/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentFilter narrows appointment listings per role: doctors see
// their own appointments, patients see theirs, admins see everything.
type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Find(ctx context.Context, filter AppointmentFilter) ([]entity.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}
