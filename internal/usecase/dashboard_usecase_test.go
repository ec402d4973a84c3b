package usecase

import (
	"context"
	"testing"
	"time"

	"hospital-portal/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStatsReflectsLedger(t *testing.T) {
	patientRepo := newFakePatientRepo()
	doctorRepo := newFakeDoctorRepo()
	medicineRepo := newFakeMedicineRepo()
	appointmentRepo := newFakeAppointmentRepo()
	bedRepo := newFakeBedRepo(2, 1)
	ledger := entity.NewWardLedger(map[entity.Ward]int{
		entity.WardGeneral: 2,
		entity.WardICU:     1,
	})
	require.NoError(t, ledger.Restore(entity.WardGeneral, 1))

	for _, p := range []*entity.Patient{
		{ID: uuid.New(), Name: "A", Age: 30, Gender: entity.GenderMale, Weight: 70, Severity: entity.SeverityNormal},
		{ID: uuid.New(), Name: "B", Age: 50, Gender: entity.GenderFemale, Weight: 60, Severity: entity.SeveritySerious},
		{ID: uuid.New(), Name: "C", Age: 70, Gender: entity.GenderMale, Weight: 80, Severity: entity.SeverityCritical},
	} {
		require.NoError(t, patientRepo.Create(context.Background(), p))
	}

	doctorID := uuid.New()
	require.NoError(t, doctorRepo.Create(context.Background(), &entity.Doctor{ID: doctorID, Name: "Dr. Smith", Specialization: "General"}))

	appointments := []*entity.Appointment{
		{ID: uuid.New(), PatientID: uuid.New(), DoctorID: doctorID, Date: time.Now(), Status: entity.AppointmentStatusScheduled},
		{ID: uuid.New(), PatientID: uuid.New(), DoctorID: doctorID, Date: time.Now(), Status: entity.AppointmentStatusCancelled},
	}
	for _, a := range appointments {
		require.NoError(t, appointmentRepo.Create(context.Background(), a))
	}

	uc := NewDashboardUsecase(
		testLogger(),
		patientRepo,
		doctorRepo,
		medicineRepo,
		appointmentRepo,
		ledger,
		testBedSync(bedRepo, ledger),
	)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Patients)
	assert.Equal(t, int64(1), stats.Doctors)
	assert.Equal(t, int64(0), stats.Medicines)
	assert.Equal(t, int64(1), stats.ActiveAppointments)

	assert.Equal(t, int64(1), stats.PatientStatus.Normal)
	assert.Equal(t, int64(1), stats.PatientStatus.Serious)
	assert.Equal(t, int64(1), stats.PatientStatus.Critical)

	assert.Equal(t, 3, stats.Beds.Total)
	assert.Equal(t, 1, stats.Beds.Occupied)
	assert.Equal(t, 2, stats.Beds.Free)

	general := stats.Beds.Wards[string(entity.WardGeneral)]
	assert.Equal(t, 2, general.Total)
	assert.Equal(t, 1, general.Occupied)
	assert.Equal(t, 1, general.Free)

	icu := stats.Beds.Wards[string(entity.WardICU)]
	assert.Equal(t, 1, icu.Total)
	assert.Equal(t, 0, icu.Occupied)
	assert.Equal(t, 1, icu.Free)
}
