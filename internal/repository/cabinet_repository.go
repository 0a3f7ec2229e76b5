package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/clinic-api/internal/domain/cabinet"
)

type CabinetRepository struct {
	db *gorm.DB
}

func NewCabinetRepository(db *gorm.DB) *CabinetRepository {
	return &CabinetRepository{db: db}
}

func (r *CabinetRepository) Create(ctx context.Context, c *cabinet.Cabinet) error {
	err := handle(ctx, r.db).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return cabinet.ErrCabinetAlreadyExists
	}
	return err
}

func (r *CabinetRepository) GetByID(ctx context.Context, id uuid.UUID) (*cabinet.Cabinet, error) {
	var c cabinet.Cabinet
	err := handle(ctx, r.db).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, cabinet.ErrCabinetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CabinetRepository) Update(ctx context.Context, id uuid.UUID, cmd *cabinet.UpdateCommand) (*cabinet.Cabinet, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if cmd.Number != nil {
		updates["number"] = *cmd.Number
	}
	if cmd.Floor != nil {
		updates["floor"] = *cmd.Floor
	}
	if cmd.Description != nil {
		updates["description"] = *cmd.Description
	}
	if len(updates) == 0 {
		return c, nil
	}

	err = handle(ctx, r.db).Model(c).Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, cabinet.ErrCabinetAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CabinetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := handle(ctx, r.db).Delete(&cabinet.Cabinet{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return cabinet.ErrCabinetNotFound
	}
	return nil
}

func (r *CabinetRepository) List(ctx context.Context, q cabinet.ListQuery) ([]*cabinet.Cabinet, error) {
	db := handle(ctx, r.db)
	if q.Floor != nil {
		db = db.Where("floor = ?", *q.Floor)
	}
	var out []*cabinet.Cabinet
	err := db.
		Order("number ASC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&out).Error
	return out, err
}

func (r *CabinetRepository) ExistsByNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error) {
	q := handle(ctx, r.db).Model(&cabinet.Cabinet{}).Where("number = ?", number)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}
