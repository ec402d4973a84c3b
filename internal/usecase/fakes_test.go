package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"hospital-portal/internal/analyzer"
	"hospital-portal/internal/domain/entity"
	"hospital-portal/internal/domain/repository"
	"hospital-portal/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// testBedSync builds a BedSyncService against an unreachable Redis.
// Every mirror operation fails and is tolerated, which is exactly the
// degraded mode the service is designed for.
func testBedSync(bedRepo repository.BedRepository, ledger *entity.WardLedger) *service.BedSyncService {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
	return service.NewBedSyncService(client, bedRepo, ledger, testLogger())
}

type fakeAudit struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAudit) Record(_ context.Context, _ *uuid.UUID, action string, _ string, _ string, _ entity.JSON) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
}

type fakePatientRepo struct {
	mu        sync.Mutex
	patients  map[uuid.UUID]*entity.Patient
	createErr error
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{patients: make(map[uuid.UUID]*entity.Patient)}
}

func (f *fakePatientRepo) Create(_ context.Context, patient *entity.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	copied := *patient
	f.patients[patient.ID] = &copied
	return nil
}

func (f *fakePatientRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	patient, ok := f.patients[id]
	if !ok {
		return nil, nil
	}
	copied := *patient
	return &copied, nil
}

func (f *fakePatientRepo) FindAll(_ context.Context) ([]entity.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	patients := make([]entity.Patient, 0, len(f.patients))
	for _, p := range f.patients {
		patients = append(patients, *p)
	}
	return patients, nil
}

func (f *fakePatientRepo) ClearBed(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if patient, ok := f.patients[id]; ok {
		patient.BedID = nil
		patient.Bed = nil
	}
	return nil
}

func (f *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.patients, id)
	return nil
}

func (f *fakePatientRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.patients)), nil
}

func (f *fakePatientRepo) CountBySeverity(_ context.Context, severity entity.Severity) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, p := range f.patients {
		if p.Severity == severity {
			count++
		}
	}
	return count, nil
}

type fakeBedRepo struct {
	mu       sync.Mutex
	beds     []*entity.Bed
	claimErr error
	// releaseRows overrides the rows-changed result when set
	releaseRows *int64
}

func newFakeBedRepo(general, icu int) *fakeBedRepo {
	f := &fakeBedRepo{}
	number := 1
	for i := 0; i < general; i++ {
		f.beds = append(f.beds, &entity.Bed{ID: uuid.New(), Ward: entity.WardGeneral, Number: bedNumber(number)})
		number++
	}
	for i := 0; i < icu; i++ {
		f.beds = append(f.beds, &entity.Bed{ID: uuid.New(), Ward: entity.WardICU, Number: bedNumber(number)})
		number++
	}
	return f
}

func bedNumber(n int) string {
	return fmt.Sprintf("B-%02d", n)
}

func (f *fakeBedRepo) Claim(_ context.Context, ward entity.Ward, patientID uuid.UUID) (*entity.Bed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	for _, bed := range f.beds {
		if bed.Ward == ward && !bed.IsOccupied {
			bed.IsOccupied = true
			bed.PatientID = &patientID
			copied := *bed
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBedRepo) Release(_ context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.releaseRows != nil {
		return *f.releaseRows, nil
	}
	for _, bed := range f.beds {
		if bed.ID == id && bed.IsOccupied {
			bed.IsOccupied = false
			bed.PatientID = nil
			return 1, nil
		}
	}
	return 0, nil
}

func (f *fakeBedRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Bed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, bed := range f.beds {
		if bed.ID == id {
			copied := *bed
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeBedRepo) FindAll(_ context.Context) ([]entity.Bed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	beds := make([]entity.Bed, 0, len(f.beds))
	for _, bed := range f.beds {
		beds = append(beds, *bed)
	}
	return beds, nil
}

func (f *fakeBedRepo) CountByWard(_ context.Context, ward entity.Ward) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, bed := range f.beds {
		if bed.Ward == ward {
			count++
		}
	}
	return count, nil
}

func (f *fakeBedRepo) CountOccupiedByWard(_ context.Context, ward entity.Ward) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, bed := range f.beds {
		if bed.Ward == ward && bed.IsOccupied {
			count++
		}
	}
	return count, nil
}

func (f *fakeBedRepo) CreateBatch(_ context.Context, beds []entity.Bed) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range beds {
		copied := beds[i]
		f.beds = append(f.beds, &copied)
	}
	return nil
}

func (f *fakeBedRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.beds)), nil
}

func (f *fakeBedRepo) freeInWard(ward entity.Ward) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	free := 0
	for _, bed := range f.beds {
		if bed.Ward == ward && !bed.IsOccupied {
			free++
		}
	}
	return free
}

type fakeConsultationRepo struct {
	mu        sync.Mutex
	requests  map[uuid.UUID]*entity.ConsultationRequest
	createErr error
}

func newFakeConsultationRepo() *fakeConsultationRepo {
	return &fakeConsultationRepo{requests: make(map[uuid.UUID]*entity.ConsultationRequest)}
}

func (f *fakeConsultationRepo) Create(_ context.Context, request *entity.ConsultationRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	copied := *request
	f.requests[request.ID] = &copied
	return nil
}

func (f *fakeConsultationRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ConsultationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	copied := *request
	return &copied, nil
}

func (f *fakeConsultationRepo) FindAll(_ context.Context) ([]entity.ConsultationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	requests := make([]entity.ConsultationRequest, 0, len(f.requests))
	for _, r := range f.requests {
		requests = append(requests, *r)
	}
	return requests, nil
}

func (f *fakeConsultationRepo) FindByDoctorID(_ context.Context, doctorID string) ([]entity.ConsultationRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var requests []entity.ConsultationRequest
	for _, r := range f.requests {
		if r.DoctorID == doctorID {
			requests = append(requests, *r)
		}
	}
	return requests, nil
}

func (f *fakeConsultationRepo) MarkReported(_ context.Context, id uuid.UUID, fields repository.ReportFields) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.State != entity.ConsultationStateSubmitted {
		return 0, nil
	}
	request.State = entity.ConsultationStateReported
	request.ConditionDetected = fields.ConditionDetected
	request.Confidence = fields.Confidence
	request.TreatmentPlan = fields.TreatmentPlan
	return 1, nil
}

func (f *fakeConsultationRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.State != entity.ConsultationStateSubmitted {
		return 0, nil
	}
	request.State = entity.ConsultationStateFailed
	request.FailureReason = reason
	return 1, nil
}

func (f *fakeConsultationRepo) Dispose(_ context.Context, id uuid.UUID, disposition entity.Disposition, disposedBy *uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	request, ok := f.requests[id]
	if !ok || request.State != entity.ConsultationStateReported || request.Disposition != entity.DispositionPending {
		return 0, nil
	}
	now := time.Now().UTC()
	request.Disposition = disposition
	request.DisposedBy = disposedBy
	request.DisposedAt = &now
	return 1, nil
}

type fakeDoctorRepo struct {
	mu      sync.Mutex
	doctors map[uuid.UUID]*entity.Doctor
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{doctors: make(map[uuid.UUID]*entity.Doctor)}
}

func (f *fakeDoctorRepo) Create(_ context.Context, doctor *entity.Doctor) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *doctor
	f.doctors[doctor.ID] = &copied
	return nil
}

func (f *fakeDoctorRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doctor, ok := f.doctors[id]
	if !ok {
		return nil, nil
	}
	copied := *doctor
	return &copied, nil
}

func (f *fakeDoctorRepo) FindAll(_ context.Context) ([]entity.Doctor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doctors := make([]entity.Doctor, 0, len(f.doctors))
	for _, d := range f.doctors {
		doctors = append(doctors, *d)
	}
	return doctors, nil
}

func (f *fakeDoctorRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.doctors)), nil
}

type fakeMedicineRepo struct {
	mu        sync.Mutex
	medicines map[uuid.UUID]*entity.Medicine
}

func newFakeMedicineRepo() *fakeMedicineRepo {
	return &fakeMedicineRepo{medicines: make(map[uuid.UUID]*entity.Medicine)}
}

func (f *fakeMedicineRepo) Create(_ context.Context, medicine *entity.Medicine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *medicine
	f.medicines[medicine.ID] = &copied
	return nil
}

func (f *fakeMedicineRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Medicine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	medicine, ok := f.medicines[id]
	if !ok {
		return nil, nil
	}
	copied := *medicine
	return &copied, nil
}

func (f *fakeMedicineRepo) FindAll(_ context.Context) ([]entity.Medicine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	medicines := make([]entity.Medicine, 0, len(f.medicines))
	for _, m := range f.medicines {
		medicines = append(medicines, *m)
	}
	return medicines, nil
}

func (f *fakeMedicineRepo) UpdateStock(_ context.Context, id uuid.UUID, stock int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	medicine, ok := f.medicines[id]
	if !ok {
		return errors.New("medicine not found")
	}
	medicine.Stock = stock
	return nil
}

func (f *fakeMedicineRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.medicines)), nil
}

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: make(map[uuid.UUID]*entity.Appointment)}
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) Find(_ context.Context, filter repository.AppointmentFilter) ([]entity.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var appointments []entity.Appointment
	for _, a := range f.appointments {
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		appointments = append(appointments, *a)
	}
	return appointments, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appointment, ok := f.appointments[id]
	if !ok || appointment.Status != entity.AppointmentStatusScheduled {
		return 0, nil
	}
	appointment.Status = status
	return 1, nil
}

func (f *fakeAppointmentRepo) CountActive(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, a := range f.appointments {
		if a.IsActive() {
			count++
		}
	}
	return count, nil
}

// fakeAnalyzer records inputs and returns a canned result or error.
type fakeAnalyzer struct {
	mu     sync.Mutex
	calls  int
	inputs []analyzer.Input
	result *analyzer.Result
	err    error
}

func (f *fakeAnalyzer) Analyze(_ context.Context, input analyzer.Input) (*analyzer.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		copied := *f.result
		return &copied, nil
	}
	return &analyzer.Result{
		ConditionDetected: "Normal chest X-ray",
		Confidence:        "92.50%",
		TreatmentPlan:     "### AI Medical Assistant Report\ntest plan",
	}, nil
}
