package usecase

import (
	"context"
	"testing"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	usecase     AppointmentUsecase
	patientRepo *fakePatientRepo
	doctorRepo  *fakeDoctorRepo
	patientID   uuid.UUID
	doctorID    uuid.UUID
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	patientRepo := newFakePatientRepo()
	doctorRepo := newFakeDoctorRepo()

	patient := &entity.Patient{ID: uuid.New(), Name: "John Doe", Age: 30, Gender: entity.GenderMale, Weight: 75, Severity: entity.SeverityNormal}
	require.NoError(t, patientRepo.Create(context.Background(), patient))
	doctor := &entity.Doctor{ID: uuid.New(), Name: "Dr. Smith", Specialization: "General"}
	require.NoError(t, doctorRepo.Create(context.Background(), doctor))

	uc := NewAppointmentUsecase(testLogger(), validator.NewValidator(), newFakeAppointmentRepo(), patientRepo, doctorRepo, &fakeAudit{})
	return &appointmentFixture{
		usecase:     uc,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		patientID:   patient.ID,
		doctorID:    doctor.ID,
	}
}

func TestCreateAppointment(t *testing.T) {
	f := newAppointmentFixture(t)

	resp, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: f.patientID.String(),
		DoctorID:  f.doctorID.String(),
		Date:      "2026-09-15",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), resp.Status)
	assert.Equal(t, "Dr. Smith", resp.DoctorName)
	assert.Equal(t, "John Doe", resp.PatientName)
}

func TestCreateAppointmentBadDate(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: f.patientID.String(),
		DoctorID:  f.doctorID.String(),
		Date:      "15/09/2026",
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestCreateAppointmentUnknownParticipants(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: uuid.NewString(),
		DoctorID:  f.doctorID.String(),
		Date:      "2026-09-15",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: f.patientID.String(),
		DoctorID:  uuid.NewString(),
		Date:      "2026-09-15",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestAppointmentStatusChangesOnce(t *testing.T) {
	f := newAppointmentFixture(t)

	resp, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: f.patientID.String(),
		DoctorID:  f.doctorID.String(),
		Date:      "2026-09-15",
	})
	require.NoError(t, err)

	updated, err := f.usecase.UpdateStatus(context.Background(), resp.ID, entity.AppointmentStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), updated.Status)

	// Terminal states never change again
	_, err = f.usecase.UpdateStatus(context.Background(), resp.ID, entity.AppointmentStatusCancelled)
	assert.ErrorIs(t, err, ErrInvalidStatusChange)
}

func TestListAppointmentsFiltered(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.usecase.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientID: f.patientID.String(),
		DoctorID:  f.doctorID.String(),
		Date:      "2026-09-15",
	})
	require.NoError(t, err)

	list, err := f.usecase.List(context.Background(), repository.AppointmentFilter{DoctorID: &f.doctorID})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	other := uuid.New()
	list, err = f.usecase.List(context.Background(), repository.AppointmentFilter{DoctorID: &other})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}
