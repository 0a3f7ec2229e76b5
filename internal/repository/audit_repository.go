package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/dmehra2102/clinic-api/internal/domain"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	// Audit writes never join the caller's transaction; a rolled-back
	// request should still leave its audit trace.
	return r.db.WithContext(ctx).Create(entry).Error
}
