package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
)

type SpecializationRepository struct {
	db *gorm.DB
}

func NewSpecializationRepository(db *gorm.DB) *SpecializationRepository {
	return &SpecializationRepository{db: db}
}

func (r *SpecializationRepository) Create(ctx context.Context, s *specialization.Specialization) error {
	err := handle(ctx, r.db).Create(s).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return specialization.ErrSpecializationAlreadyExists
	}
	return err
}

func (r *SpecializationRepository) GetByID(ctx context.Context, id uuid.UUID) (*specialization.Specialization, error) {
	var s specialization.Specialization
	err := handle(ctx, r.db).First(&s, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, specialization.ErrSpecializationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpecializationRepository) GetByName(ctx context.Context, name string) (*specialization.Specialization, error) {
	var s specialization.Specialization
	err := handle(ctx, r.db).First(&s, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, specialization.ErrSpecializationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpecializationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := handle(ctx, r.db).Delete(&specialization.Specialization{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return specialization.ErrSpecializationNotFound
	}
	return nil
}

func (r *SpecializationRepository) List(ctx context.Context) ([]*specialization.Specialization, error) {
	var out []*specialization.Specialization
	err := handle(ctx, r.db).Order("name ASC").Find(&out).Error
	return out, err
}
