package usecase

import (
	"context"
	"encoding/json"

	"hospital-portal/internal/delivery/dto"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/service"

	"github.com/sirupsen/logrus"
)

type DashboardUsecase interface {
	// Stats aggregates the portal counters. Bed counters come from the
	// in-process ward ledger, never from scanning bed rows, so the
	// numbers a dashboard shows are the numbers admission decides on.
	Stats(ctx context.Context) (*dto.DashboardStatsResponse, error)
}

type dashboardUsecase struct {
	log             *logrus.Logger
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	medicineRepo    repository.MedicineRepository
	appointmentRepo repository.AppointmentRepository
	ledger          *entity.WardLedger
	bedSync         *service.BedSyncService
}

func NewDashboardUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	medicineRepo repository.MedicineRepository,
	appointmentRepo repository.AppointmentRepository,
	ledger *entity.WardLedger,
	bedSync *service.BedSyncService,
) DashboardUsecase {
	return &dashboardUsecase{
		log:             log,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		medicineRepo:    medicineRepo,
		appointmentRepo: appointmentRepo,
		ledger:          ledger,
		bedSync:         bedSync,
	}
}

func (u *dashboardUsecase) Stats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	if cached, ok := u.bedSync.CachedStats(ctx); ok {
		var stats dto.DashboardStatsResponse
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
		u.log.Warn("Discarding unreadable cached dashboard stats")
	}

	patients, err := u.patientRepo.Count(ctx)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	doctors, err := u.doctorRepo.Count(ctx)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, err
	}

	medicines, err := u.medicineRepo.Count(ctx)
	if err != nil {
		u.log.Warnf("Failed to count medicines: %+v", err)
		return nil, err
	}

	activeAppointments, err := u.appointmentRepo.CountActive(ctx)
	if err != nil {
		u.log.Warnf("Failed to count active appointments: %+v", err)
		return nil, err
	}

	status := dto.PatientStatusResponse{}
	for severity, target := range map[entity.Severity]*int64{
		entity.SeverityNormal:   &status.Normal,
		entity.SeveritySerious:  &status.Serious,
		entity.SeverityCritical: &status.Critical,
	} {
		count, err := u.patientRepo.CountBySeverity(ctx, severity)
		if err != nil {
			u.log.Warnf("Failed to count %s patients: %+v", severity, err)
			return nil, err
		}
		*target = count
	}

	perWard, sum := u.ledger.Snapshot()
	beds := dto.BedsResponse{
		Total:    sum.Total,
		Occupied: sum.Occupied,
		Free:     sum.Free,
		Wards:    make(map[string]dto.WardBedsResponse, len(perWard)),
	}
	for ward, counts := range perWard {
		beds.Wards[string(ward)] = dto.WardBedsResponse{
			Total:    counts.Total,
			Occupied: counts.Occupied,
			Free:     counts.Free,
		}
	}

	stats := &dto.DashboardStatsResponse{
		Patients:           patients,
		Doctors:            doctors,
		Medicines:          medicines,
		ActiveAppointments: activeAppointments,
		Beds:               beds,
		PatientStatus:      status,
	}

	if payload, err := json.Marshal(stats); err == nil {
		u.bedSync.StoreStats(ctx, payload)
	}

	return stats, nil
}
