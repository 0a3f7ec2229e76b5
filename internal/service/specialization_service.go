package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
)

type SpecializationService struct {
	repo       specialization.Repository
	doctorRepo doctor.Repository
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewSpecializationService(repo specialization.Repository, doctorRepo doctor.Repository, auditSvc *AuditService, log *zap.Logger) *SpecializationService {
	return &SpecializationService{repo: repo, doctorRepo: doctorRepo, auditSvc: auditSvc, log: log}
}

func (s *SpecializationService) Create(ctx context.Context, cmd *specialization.CreateCommand, requestID, ip string) (*specialization.Specialization, error) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" {
		return nil, &ValidationError{Fields: []string{"name is required"}}
	}

	sp := &specialization.Specialization{Name: name}
	if err := s.repo.Create(ctx, sp); err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "specialization",
		ResourceID:   sp.ID.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})

	return sp, nil
}

func (s *SpecializationService) Get(ctx context.Context, id uuid.UUID) (*specialization.Specialization, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *SpecializationService) List(ctx context.Context) ([]*specialization.Specialization, error) {
	return s.repo.List(ctx)
}

// Delete removes a specialization unless doctors still hold it.
func (s *SpecializationService) Delete(ctx context.Context, id uuid.UUID, requestID, ip string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	holders, err := s.doctorRepo.CountBySpecialization(ctx, id)
	if err != nil {
		return fmt.Errorf("counting holders: %w", err)
	}
	if holders > 0 {
		return fmt.Errorf("%w: %d doctors", specialization.ErrSpecializationInUse, holders)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "specialization",
		ResourceID:   id.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})

	return nil
}
