package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dmehra2102/clinic-api/internal/domain/cabinet"
	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
)

type CabinetService struct {
	repo       cabinet.Repository
	doctorRepo doctor.Repository
	auditSvc   *AuditService
	log        *zap.Logger
}

func NewCabinetService(repo cabinet.Repository, doctorRepo doctor.Repository, auditSvc *AuditService, log *zap.Logger) *CabinetService {
	return &CabinetService{repo: repo, doctorRepo: doctorRepo, auditSvc: auditSvc, log: log}
}

func (s *CabinetService) Create(ctx context.Context, cmd *cabinet.CreateCommand, requestID, ip string) (*cabinet.Cabinet, error) {
	if strings.TrimSpace(cmd.Number) == "" {
		return nil, &ValidationError{Fields: []string{"number is required"}}
	}

	exists, err := s.repo.ExistsByNumber(ctx, cmd.Number, nil)
	if err != nil {
		return nil, fmt.Errorf("checking uniqueness: %w", err)
	}
	if exists {
		return nil, cabinet.ErrCabinetAlreadyExists
	}

	c := &cabinet.Cabinet{
		Number:      strings.TrimSpace(cmd.Number),
		Floor:       cmd.Floor,
		Description: cmd.Description,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.log.Error("failed to create cabinet", zap.Error(err))
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "cabinet",
		ResourceID:   c.ID.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})

	return c, nil
}

func (s *CabinetService) Get(ctx context.Context, id uuid.UUID) (*cabinet.Cabinet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CabinetService) Update(ctx context.Context, id uuid.UUID, cmd *cabinet.UpdateCommand, requestID, ip string) (*cabinet.Cabinet, error) {
	if cmd.Number != nil {
		exists, err := s.repo.ExistsByNumber(ctx, *cmd.Number, &id)
		if err != nil {
			return nil, fmt.Errorf("checking uniqueness: %w", err)
		}
		if exists {
			return nil, cabinet.ErrCabinetAlreadyExists
		}
	}

	c, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "cabinet",
		ResourceID:   id.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})

	return c, nil
}

func (s *CabinetService) List(ctx context.Context, q cabinet.ListQuery) ([]*cabinet.Cabinet, error) {
	if q.PageSize <= 0 || q.PageSize > 100 {
		q.PageSize = 20
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	return s.repo.List(ctx, q)
}

// Delete removes a cabinet unless doctors are still assigned to it.
func (s *CabinetService) Delete(ctx context.Context, id uuid.UUID, requestID, ip string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	occupants, err := s.doctorRepo.CountByCabinet(ctx, id)
	if err != nil {
		return fmt.Errorf("counting assigned doctors: %w", err)
	}
	if occupants > 0 {
		return fmt.Errorf("%w: %d assigned", cabinet.ErrCabinetOccupied, occupants)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "delete",
		ResourceType: "cabinet",
		ResourceID:   id.String(),
		RequestID:    requestID,
		IPAddress:    ip,
	})

	return nil
}

// Doctors lists the doctors assigned to a cabinet.
func (s *CabinetService) Doctors(ctx context.Context, id uuid.UUID) ([]*doctor.Doctor, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.doctorRepo.ListByCabinet(ctx, id)
}
