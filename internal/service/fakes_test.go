package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/domain"
	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
	"github.com/dmehra2102/clinic-api/internal/domain/cabinet"
	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
	"github.com/dmehra2102/clinic-api/internal/domain/patient"
	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
)

// fakeTransactor runs the function directly; the fakes below have no
// real transaction to join.
type fakeTransactor struct {
	calls int
}

func (t *fakeTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func newNopAudit() *AuditService {
	return NewAuditService(&fakeAuditRepo{}, nil, zap.NewNop())
}

// Each fake repository is a struct of per-method functions; a test sets
// only the ones its path touches. Unset functions return empty results.

type fakeAppointmentRepo struct {
	createFn                  func(ctx context.Context, a *appointment.Appointment) error
	getByIDFn                 func(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	updateFn                  func(ctx context.Context, a *appointment.Appointment) error
	deleteFn                  func(ctx context.Context, id uuid.UUID) error
	listFn                    func(ctx context.Context, q appointment.ListQuery) ([]*appointment.Appointment, error)
	scheduledOnDayFn          func(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*appointment.Appointment, error)
	patientBusyAtFn           func(ctx context.Context, patientID uuid.UUID, date time.Time, t appointment.TimeOfDay) (bool, error)
	dayScheduleFn             func(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*appointment.Appointment, error)
	listForPatientFn          func(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error)
	listForDoctorFn           func(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*appointment.Appointment, error)
	countScheduledForDoctorFn func(ctx context.Context, doctorID uuid.UUID) (int64, error)
	countForDoctorFn          func(ctx context.Context, doctorID uuid.UUID) (int64, error)
	countForPatientFn         func(ctx context.Context, patientID uuid.UUID) (int64, error)
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, a *appointment.Appointment) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	a.ID = uuid.New()
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, a *appointment.Appointment) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeAppointmentRepo) List(ctx context.Context, q appointment.ListQuery) ([]*appointment.Appointment, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ScheduledOnDay(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	if f.scheduledOnDayFn != nil {
		return f.scheduledOnDayFn(ctx, doctorID, date)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) PatientBusyAt(ctx context.Context, patientID uuid.UUID, date time.Time, t appointment.TimeOfDay) (bool, error) {
	if f.patientBusyAtFn != nil {
		return f.patientBusyAtFn(ctx, patientID, date, t)
	}
	return false, nil
}

func (f *fakeAppointmentRepo) DaySchedule(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]*appointment.Appointment, error) {
	if f.dayScheduleFn != nil {
		return f.dayScheduleFn(ctx, doctorID, date)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ListForPatient(ctx context.Context, patientID uuid.UUID) ([]*appointment.Appointment, error) {
	if f.listForPatientFn != nil {
		return f.listForPatientFn(ctx, patientID)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) ListForDoctor(ctx context.Context, doctorID uuid.UUID, date *time.Time) ([]*appointment.Appointment, error) {
	if f.listForDoctorFn != nil {
		return f.listForDoctorFn(ctx, doctorID, date)
	}
	return nil, nil
}

func (f *fakeAppointmentRepo) CountScheduledForDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	if f.countScheduledForDoctorFn != nil {
		return f.countScheduledForDoctorFn(ctx, doctorID)
	}
	return 0, nil
}

func (f *fakeAppointmentRepo) CountForDoctor(ctx context.Context, doctorID uuid.UUID) (int64, error) {
	if f.countForDoctorFn != nil {
		return f.countForDoctorFn(ctx, doctorID)
	}
	return 0, nil
}

func (f *fakeAppointmentRepo) CountForPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	if f.countForPatientFn != nil {
		return f.countForPatientFn(ctx, patientID)
	}
	return 0, nil
}

type fakePatientRepo struct {
	createFn                  func(ctx context.Context, p *patient.Patient) error
	getByIDFn                 func(ctx context.Context, id uuid.UUID) (*patient.Patient, error)
	updateFn                  func(ctx context.Context, id uuid.UUID, cmd *patient.UpdateCommand) (*patient.Patient, error)
	deleteFn                  func(ctx context.Context, id uuid.UUID) error
	listFn                    func(ctx context.Context, q patient.ListQuery) ([]*patient.Patient, error)
	existsByInsuranceNumberFn func(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error)
}

func (f *fakePatientRepo) Create(ctx context.Context, p *patient.Patient) error {
	if f.createFn != nil {
		return f.createFn(ctx, p)
	}
	p.ID = uuid.New()
	return nil
}

func (f *fakePatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &patient.Patient{ID: id}, nil
}

func (f *fakePatientRepo) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdateCommand) (*patient.Patient, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, cmd)
	}
	return &patient.Patient{ID: id}, nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakePatientRepo) List(ctx context.Context, q patient.ListQuery) ([]*patient.Patient, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return nil, nil
}

func (f *fakePatientRepo) ExistsByInsuranceNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error) {
	if f.existsByInsuranceNumberFn != nil {
		return f.existsByInsuranceNumberFn(ctx, number, excludeID)
	}
	return false, nil
}

type fakeDoctorRepo struct {
	createFn                func(ctx context.Context, d *doctor.Doctor) error
	getByIDFn               func(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error)
	updateFn                func(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateCommand) (*doctor.Doctor, error)
	deleteFn                func(ctx context.Context, id uuid.UUID) error
	listFn                  func(ctx context.Context, q doctor.ListQuery) ([]*doctor.Doctor, error)
	listByCabinetFn         func(ctx context.Context, cabinetID uuid.UUID) ([]*doctor.Doctor, error)
	addSpecializationFn     func(ctx context.Context, doctorID, specID uuid.UUID) error
	removeSpecializationFn  func(ctx context.Context, doctorID, specID uuid.UUID) error
	countBySpecializationFn func(ctx context.Context, specID uuid.UUID) (int64, error)
	countByCabinetFn        func(ctx context.Context, cabinetID uuid.UUID) (int64, error)
}

func (f *fakeDoctorRepo) Create(ctx context.Context, d *doctor.Doctor) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	d.ID = uuid.New()
	return nil
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &doctor.Doctor{ID: id}, nil
}

func (f *fakeDoctorRepo) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateCommand) (*doctor.Doctor, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, cmd)
	}
	return &doctor.Doctor{ID: id}, nil
}

func (f *fakeDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeDoctorRepo) List(ctx context.Context, q doctor.ListQuery) ([]*doctor.Doctor, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeDoctorRepo) ListByCabinet(ctx context.Context, cabinetID uuid.UUID) ([]*doctor.Doctor, error) {
	if f.listByCabinetFn != nil {
		return f.listByCabinetFn(ctx, cabinetID)
	}
	return nil, nil
}

func (f *fakeDoctorRepo) AddSpecialization(ctx context.Context, doctorID, specID uuid.UUID) error {
	if f.addSpecializationFn != nil {
		return f.addSpecializationFn(ctx, doctorID, specID)
	}
	return nil
}

func (f *fakeDoctorRepo) RemoveSpecialization(ctx context.Context, doctorID, specID uuid.UUID) error {
	if f.removeSpecializationFn != nil {
		return f.removeSpecializationFn(ctx, doctorID, specID)
	}
	return nil
}

func (f *fakeDoctorRepo) CountBySpecialization(ctx context.Context, specID uuid.UUID) (int64, error) {
	if f.countBySpecializationFn != nil {
		return f.countBySpecializationFn(ctx, specID)
	}
	return 0, nil
}

func (f *fakeDoctorRepo) CountByCabinet(ctx context.Context, cabinetID uuid.UUID) (int64, error) {
	if f.countByCabinetFn != nil {
		return f.countByCabinetFn(ctx, cabinetID)
	}
	return 0, nil
}

type fakeCabinetRepo struct {
	createFn         func(ctx context.Context, c *cabinet.Cabinet) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*cabinet.Cabinet, error)
	updateFn         func(ctx context.Context, id uuid.UUID, cmd *cabinet.UpdateCommand) (*cabinet.Cabinet, error)
	deleteFn         func(ctx context.Context, id uuid.UUID) error
	listFn           func(ctx context.Context, q cabinet.ListQuery) ([]*cabinet.Cabinet, error)
	existsByNumberFn func(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error)
}

func (f *fakeCabinetRepo) Create(ctx context.Context, c *cabinet.Cabinet) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	c.ID = uuid.New()
	return nil
}

func (f *fakeCabinetRepo) GetByID(ctx context.Context, id uuid.UUID) (*cabinet.Cabinet, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &cabinet.Cabinet{ID: id}, nil
}

func (f *fakeCabinetRepo) Update(ctx context.Context, id uuid.UUID, cmd *cabinet.UpdateCommand) (*cabinet.Cabinet, error) {
	if f.updateFn != nil {
		return f.updateFn(ctx, id, cmd)
	}
	return &cabinet.Cabinet{ID: id}, nil
}

func (f *fakeCabinetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeCabinetRepo) List(ctx context.Context, q cabinet.ListQuery) ([]*cabinet.Cabinet, error) {
	if f.listFn != nil {
		return f.listFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeCabinetRepo) ExistsByNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error) {
	if f.existsByNumberFn != nil {
		return f.existsByNumberFn(ctx, number, excludeID)
	}
	return false, nil
}

type fakeSpecializationRepo struct {
	createFn    func(ctx context.Context, s *specialization.Specialization) error
	getByIDFn   func(ctx context.Context, id uuid.UUID) (*specialization.Specialization, error)
	getByNameFn func(ctx context.Context, name string) (*specialization.Specialization, error)
	deleteFn    func(ctx context.Context, id uuid.UUID) error
	listFn      func(ctx context.Context) ([]*specialization.Specialization, error)
}

func (f *fakeSpecializationRepo) Create(ctx context.Context, s *specialization.Specialization) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	s.ID = uuid.New()
	return nil
}

func (f *fakeSpecializationRepo) GetByID(ctx context.Context, id uuid.UUID) (*specialization.Specialization, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return &specialization.Specialization{ID: id, Name: "Therapist"}, nil
}

func (f *fakeSpecializationRepo) GetByName(ctx context.Context, name string) (*specialization.Specialization, error) {
	if f.getByNameFn != nil {
		return f.getByNameFn(ctx, name)
	}
	return nil, specialization.ErrSpecializationNotFound
}

func (f *fakeSpecializationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeSpecializationRepo) List(ctx context.Context) ([]*specialization.Specialization, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}
