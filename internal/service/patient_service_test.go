package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/domain/patient"
)

func newPatientService(repo *fakePatientRepo, appointments *fakeAppointmentRepo, tx *fakeTransactor) *PatientService {
	return NewPatientService(repo, appointments, tx, newNopAudit(), nil, zap.NewNop())
}

func patientCmd() *patient.CreateCommand {
	return &patient.CreateCommand{
		FullName:        "Anna Petrova",
		BirthDate:       time.Date(1987, 3, 14, 0, 0, 0, 0, time.UTC),
		Phone:           "+7 900 000-00-00",
		Address:         "Lenina 1",
		InsuranceNumber: "1234567890123456",
	}
}

func TestPatientCreate_Success(t *testing.T) {
	svc := newPatientService(&fakePatientRepo{}, &fakeAppointmentRepo{}, &fakeTransactor{})

	p, err := svc.Create(context.Background(), patientCmd(), "req-1", "127.0.0.1")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Fatal("created patient has no ID")
	}
}

func TestPatientCreate_MissingFields(t *testing.T) {
	svc := newPatientService(&fakePatientRepo{}, &fakeAppointmentRepo{}, &fakeTransactor{})

	cmd := patientCmd()
	cmd.FullName = "  "
	cmd.InsuranceNumber = ""

	_, err := svc.Create(context.Background(), cmd, "req-1", "127.0.0.1")
	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if len(validErr.Fields) != 2 {
		t.Fatalf("fields = %v, want 2 entries", validErr.Fields)
	}
}

func TestPatientCreate_DuplicateInsuranceNumber(t *testing.T) {
	repo := &fakePatientRepo{
		existsByInsuranceNumberFn: func(context.Context, string, *uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	svc := newPatientService(repo, &fakeAppointmentRepo{}, &fakeTransactor{})

	_, err := svc.Create(context.Background(), patientCmd(), "req-1", "127.0.0.1")
	if !errors.Is(err, patient.ErrPatientAlreadyExists) {
		t.Fatalf("want ErrPatientAlreadyExists, got %v", err)
	}
}

// Deleting a patient always succeeds regardless of appointment status;
// the count of appointments that go with them is reported back.
func TestPatientDelete_ReportsCascade(t *testing.T) {
	deleted := false
	repo := &fakePatientRepo{
		deleteFn: func(context.Context, uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	appointments := &fakeAppointmentRepo{
		countForPatientFn: func(context.Context, uuid.UUID) (int64, error) {
			return 3, nil
		},
	}
	tx := &fakeTransactor{}
	svc := newPatientService(repo, appointments, tx)

	result, err := svc.Delete(context.Background(), uuid.New(), "req-1", "127.0.0.1")
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if result.DeletedAppointments != 3 {
		t.Fatalf("DeletedAppointments = %d, want 3", result.DeletedAppointments)
	}
	if !deleted {
		t.Fatal("repository Delete was not called")
	}
	if tx.calls != 1 {
		t.Fatalf("transactor calls = %d, want 1", tx.calls)
	}
}

func TestPatientDelete_NotFound(t *testing.T) {
	repo := &fakePatientRepo{
		getByIDFn: func(context.Context, uuid.UUID) (*patient.Patient, error) {
			return nil, patient.ErrPatientNotFound
		},
	}
	svc := newPatientService(repo, &fakeAppointmentRepo{}, &fakeTransactor{})

	_, err := svc.Delete(context.Background(), uuid.New(), "req-1", "127.0.0.1")
	if !errors.Is(err, patient.ErrPatientNotFound) {
		t.Fatalf("want ErrPatientNotFound, got %v", err)
	}
}

func TestPatientUpdate_InsuranceCollision(t *testing.T) {
	repo := &fakePatientRepo{
		existsByInsuranceNumberFn: func(_ context.Context, _ string, excludeID *uuid.UUID) (bool, error) {
			if excludeID == nil {
				t.Fatal("update uniqueness check must exclude the record itself")
			}
			return true, nil
		},
	}
	svc := newPatientService(repo, &fakeAppointmentRepo{}, &fakeTransactor{})

	number := "6543210987654321"
	_, err := svc.Update(context.Background(), uuid.New(), &patient.UpdateCommand{InsuranceNumber: &number}, "req-1", "127.0.0.1")
	if !errors.Is(err, patient.ErrPatientAlreadyExists) {
		t.Fatalf("want ErrPatientAlreadyExists, got %v", err)
	}
}
