package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/domain/appointment"
	"github.com/dmehra2102/clinic-api/internal/domain/cabinet"
	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
	"github.com/dmehra2102/clinic-api/internal/repository"
)

type DoctorService struct {
	repo            doctor.Repository
	specRepo        specialization.Repository
	cabinetRepo     cabinet.Repository
	appointmentRepo appointment.Repository
	tx              repository.Transactor
	auditSvc        *AuditService
	log             *zap.Logger
}

func NewDoctorService(
	repo doctor.Repository,
	specRepo specialization.Repository,
	cabinetRepo cabinet.Repository,
	appointmentRepo appointment.Repository,
	tx repository.Transactor,
	auditSvc *AuditService,
	log *zap.Logger,
) *DoctorService {
	return &DoctorService{
		repo:            repo,
		specRepo:        specRepo,
		cabinetRepo:     cabinetRepo,
		appointmentRepo: appointmentRepo,
		tx:              tx,
		auditSvc:        auditSvc,
		log:             log,
	}
}

func (s *DoctorService) Create(ctx context.Context, cmd *doctor.CreateCommand, requestID, ip string) (*doctor.Doctor, error) {
	if err := validateDoctorCreate(cmd); err != nil {
		return nil, err
	}

	specs := make([]*specialization.Specialization, 0, len(cmd.SpecializationIDs))
	for _, specID := range cmd.SpecializationIDs {
		spec, err := s.specRepo.GetByID(ctx, specID)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	if cmd.CabinetID != nil {
		if _, err := s.cabinetRepo.GetByID(ctx, *cmd.CabinetID); err != nil {
			return nil, err
		}
	}

	d := &doctor.Doctor{
		FullName:        strings.TrimSpace(cmd.FullName),
		Phone:           strings.TrimSpace(cmd.Phone),
		ExperienceYears: cmd.ExperienceYears,
		Specializations: specs,
		CabinetID:       cmd.CabinetID,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "doctor",
		ResourceID:   d.ID.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})
	s.log.Info("doctor created", zap.String("doctor_id", d.ID.String()))

	return d, nil
}

func (s *DoctorService) Get(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateCommand, requestID, ip string) (*doctor.Doctor, error) {
	if cmd.CabinetID != nil {
		if _, err := s.cabinetRepo.GetByID(ctx, *cmd.CabinetID); err != nil {
			return nil, err
		}
	}

	d, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "doctor",
		ResourceID:   id.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})

	return d, nil
}

func (s *DoctorService) List(ctx context.Context, q doctor.ListQuery) ([]*doctor.Doctor, error) {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return s.repo.List(ctx, q)
}

type DoctorDeleteResult struct {
	AppointmentHistory int64
}

// Delete removes a doctor unless they still have scheduled visits; the
// front desk has to cancel or move those first. Completed and cancelled
// history never blocks deletion and is reported for information only.
// This is deliberately the opposite of the patient cascade.
func (s *DoctorService) Delete(ctx context.Context, id uuid.UUID, requestID, ip string) (*DoctorDeleteResult, error) {
	result := &DoctorDeleteResult{}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetByID(ctx, id); err != nil {
			return err
		}

		scheduled, err := s.appointmentRepo.CountScheduledForDoctor(ctx, id)
		if err != nil {
			return fmt.Errorf("counting scheduled visits: %w", err)
		}
		if scheduled > 0 {
			return fmt.Errorf("%w: %d scheduled", doctor.ErrHasScheduledVisits, scheduled)
		}

		history, err := s.appointmentRepo.CountForDoctor(ctx, id)
		if err != nil {
			return fmt.Errorf("counting visit history: %w", err)
		}

		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		result.AppointmentHistory = history
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "doctor",
		ResourceID:   id.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})
	s.log.Info("doctor deleted",
		zap.String("doctor_id", id.String()),
		zap.Int64("appointment_history", result.AppointmentHistory),
	)

	return result, nil
}

func (s *DoctorService) AddSpecialization(ctx context.Context, doctorID, specID uuid.UUID, requestID, ip string) (*doctor.Doctor, error) {
	d, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.specRepo.GetByID(ctx, specID); err != nil {
		return nil, err
	}
	if d.HasSpecialization(specID) {
		return nil, doctor.ErrSpecializationAssigned
	}

	if err := s.repo.AddSpecialization(ctx, doctorID, specID); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "doctor",
		ResourceID:   doctorID.String(),
		RequestID:    requestID,
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"add_specialization":%q}`, specID),
	})

	return s.repo.GetByID(ctx, doctorID)
}

// RemoveSpecialization unlinks a specialization; a doctor always keeps
// at least one.
func (s *DoctorService) RemoveSpecialization(ctx context.Context, doctorID, specID uuid.UUID, requestID, ip string) (*doctor.Doctor, error) {
	d, err := s.repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !d.HasSpecialization(specID) {
		return nil, specialization.ErrSpecializationNotFound
	}
	if len(d.Specializations) <= 1 {
		return nil, doctor.ErrLastSpecialization
	}

	if err := s.repo.RemoveSpecialization(ctx, doctorID, specID); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "doctor",
		ResourceID:   doctorID.String(),
		RequestID:    requestID,
		IPAddress:    ip,
		Changes:      fmt.Sprintf(`{"remove_specialization":%q}`, specID),
	})

	return s.repo.GetByID(ctx, doctorID)
}

func validateDoctorCreate(cmd *doctor.CreateCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.FullName) == "" {
		errs = append(errs, "full_name is required")
	}
	if strings.TrimSpace(cmd.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	if cmd.ExperienceYears < 0 {
		errs = append(errs, "experience_years cannot be negative")
	}
	if len(cmd.SpecializationIDs) == 0 {
		errs = append(errs, "at least one specialization is required")
	}

	if len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
