package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
	"github.com/dmehra2102/clinic-api/internal/domain/patient"
	"github.com/dmehra2102/clinic-api/internal/repository"
	"github.com/dmehra2102/clinic-api/pkg/metrics"
)

type PatientService struct {
	repo            patient.Repository
	appointmentRepo appointment.Repository
	tx              repository.Transactor
	auditSvc        *AuditService
	collector       *metrics.Collector
	log             *zap.Logger
}

func NewPatientService(
	repo patient.Repository,
	appointmentRepo appointment.Repository,
	tx repository.Transactor,
	auditSvc *AuditService,
	collector *metrics.Collector,
	log *zap.Logger,
) *PatientService {
	return &PatientService{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		tx:              tx,
		auditSvc:        auditSvc,
		collector:       collector,
		log:             log,
	}
}

func (s *PatientService) Create(ctx context.Context, cmd *patient.CreateCommand, requestID, ip string) (*patient.Patient, error) {
	if err := validatePatientCreate(cmd); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByInsuranceNumber(ctx, cmd.InsuranceNumber, nil)
	if err != nil {
		s.log.Error("failed to check insurance number uniqueness", zap.Error(err))
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if exists {
		return nil, patient.ErrPatientAlreadyExists
	}

	p := &patient.Patient{
		FullName:        strings.TrimSpace(cmd.FullName),
		BirthDate:       cmd.BirthDate,
		Phone:           strings.TrimSpace(cmd.Phone),
		Address:         strings.TrimSpace(cmd.Address),
		InsuranceNumber: strings.TrimSpace(cmd.InsuranceNumber),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, err
	}

	if s.collector != nil {
		s.collector.PatientsCreatedTotal.Inc()
	}
	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "patient",
		ResourceID:   p.ID.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})
	s.log.Info("patient created", zap.String("patient_id", p.ID.String()))

	return p, nil
}

func (s *PatientService) Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdateCommand, requestID, ip string) (*patient.Patient, error) {
	if cmd.InsuranceNumber != nil {
		exists, err := s.repo.ExistsByInsuranceNumber(ctx, *cmd.InsuranceNumber, &id)
		if err != nil {
			return nil, fmt.Errorf("checking uniqueness: %w", err)
		}
		if exists {
			return nil, patient.ErrPatientAlreadyExists
		}
	}

	p, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "patient",
		ResourceID:   id.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})

	return p, nil
}

func (s *PatientService) List(ctx context.Context, q patient.ListQuery) ([]*patient.Patient, error) {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return s.repo.List(ctx, q)
}

type PatientDeleteResult struct {
	DeletedAppointments int64
}

// Delete removes the patient and cascades to every appointment that
// references them, whatever the status. The cascade never blocks the
// deletion; the number of removed appointments is only reported back.
// Doctors get the opposite policy, see DoctorService.Delete.
func (s *PatientService) Delete(ctx context.Context, id uuid.UUID, requestID, ip string) (*PatientDeleteResult, error) {
	result := &PatientDeleteResult{}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}
		count, err := s.appointmentRepo.CountForPatient(ctx, id)
		if err != nil {
			return fmt.Errorf("counting appointments: %w", err)
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		result.DeletedAppointments = count
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "patient",
		ResourceID:   id.String(),
		RequestID:    requestID,
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"deleted_appointments":%d}`, result.DeletedAppointments),
	})
	s.log.Info("patient deleted",
		zap.String("patient_id", id.String()),
		zap.Int64("deleted_appointments", result.DeletedAppointments),
	)

	return result, nil
}

func validatePatientCreate(cmd *patient.CreateCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.FullName) == "" {
		errs = append(errs, "full_name is required")
	}
	if cmd.BirthDate.IsZero() {
		errs = append(errs, "birth_date is required")
	}
	if cmd.BirthDate.After(time.Now()) {
		errs = append(errs, "birth_date cannot be in the future")
	}
	if strings.TrimSpace(cmd.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	if strings.TrimSpace(cmd.InsuranceNumber) == "" {
		errs = append(errs, "insurance_number is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
