package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/domain/cabinet"
	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
)

func TestCabinetDelete_BlockedByOccupants(t *testing.T) {
	doctors := &fakeDoctorRepo{
		countByCabinetFn: func(context.Context, uuid.UUID) (int64, error) {
			return 1, nil
		},
	}
	repo := &fakeCabinetRepo{
		deleteFn: func(context.Context, uuid.UUID) error {
			t.Fatal("Delete must not be reached while doctors occupy the cabinet")
			return nil
		},
	}
	svc := NewCabinetService(repo, doctors, newNopAudit(), zap.NewNop())

	err := svc.Delete(context.Background(), uuid.New(), "req-1", "127.0.0.1")
	if !errors.Is(err, cabinet.ErrCabinetOccupied) {
		t.Fatalf("want ErrCabinetOccupied, got %v", err)
	}
}

func TestCabinetDelete_Empty(t *testing.T) {
	svc := NewCabinetService(&fakeCabinetRepo{}, &fakeDoctorRepo{}, newNopAudit(), zap.NewNop())

	if err := svc.Delete(context.Background(), uuid.New(), "req-1", "127.0.0.1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}

func TestCabinetCreate_DuplicateNumber(t *testing.T) {
	repo := &fakeCabinetRepo{
		existsByNumberFn: func(context.Context, string, *uuid.UUID) (bool, error) {
			return true, nil
		},
	}
	svc := NewCabinetService(repo, &fakeDoctorRepo{}, newNopAudit(), zap.NewNop())

	_, err := svc.Create(context.Background(), &cabinet.CreateCommand{Number: "101", Floor: 1}, "req-1", "127.0.0.1")
	if !errors.Is(err, cabinet.ErrCabinetAlreadyExists) {
		t.Fatalf("want ErrCabinetAlreadyExists, got %v", err)
	}
}

func TestSpecializationDelete_BlockedByHolders(t *testing.T) {
	doctors := &fakeDoctorRepo{
		countBySpecializationFn: func(context.Context, uuid.UUID) (int64, error) {
			return 4, nil
		},
	}
	svc := NewSpecializationService(&fakeSpecializationRepo{}, doctors, newNopAudit(), zap.NewNop())

	err := svc.Delete(context.Background(), uuid.New(), "req-1", "127.0.0.1")
	if !errors.Is(err, specialization.ErrSpecializationInUse) {
		t.Fatalf("want ErrSpecializationInUse, got %v", err)
	}
}

func TestSpecializationCreate_BlankName(t *testing.T) {
	svc := NewSpecializationService(&fakeSpecializationRepo{}, &fakeDoctorRepo{}, newNopAudit(), zap.NewNop())

	_, err := svc.Create(context.Background(), &specialization.CreateCommand{Name: "   "}, "req-1", "127.0.0.1")
	var validErr *ValidationError
	if !errors.As(err, &validErr) {
		t.Fatalf("want ValidationError, got %v", err)
	}
}
