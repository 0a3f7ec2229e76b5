package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/clinic-api/internal/domain/patient"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

func (r *PatientRepository) Create(ctx context.Context, p *patient.Patient) error {
	err := handle(ctx, r.db).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return patient.ErrPatientAlreadyExists
	}
	return err
}

func (r *PatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	err := handle(ctx, r.db).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, patient.ErrPatientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PatientRepository) Update(ctx context.Context, id uuid.UUID, cmd *patient.UpdateCommand) (*patient.Patient, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if cmd.FullName != nil {
		updates["full_name"] = *cmd.FullName
	}
	if cmd.BirthDate != nil {
		updates["birth_date"] = *cmd.BirthDate
	}
	if cmd.Phone != nil {
		updates["phone"] = *cmd.Phone
	}
	if cmd.Address != nil {
		updates["address"] = *cmd.Address
	}
	if cmd.InsuranceNumber != nil {
		updates["insurance_number"] = *cmd.InsuranceNumber
	}
	if len(updates) == 0 {
		return p, nil
	}

	err = handle(ctx, r.db).Model(p).Updates(updates).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, patient.ErrPatientAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := handle(ctx, r.db).Delete(&patient.Patient{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return patient.ErrPatientNotFound
	}
	return nil
}

func (r *PatientRepository) List(ctx context.Context, q patient.ListQuery) ([]*patient.Patient, error) {
	var out []*patient.Patient
	err := handle(ctx, r.db).
		Order("full_name ASC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&out).Error
	return out, err
}

func (r *PatientRepository) ExistsByInsuranceNumber(ctx context.Context, number string, excludeID *uuid.UUID) (bool, error) {
	q := handle(ctx, r.db).Model(&patient.Patient{}).Where("insurance_number = ?", number)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var count int64
	err := q.Count(&count).Error
	return count > 0, err
}
