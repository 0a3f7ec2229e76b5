package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dmehra2102/clinic-api/internal/domain/doctor"
	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

func (r *DoctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	return handle(ctx, r.db).Create(d).Error
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	err := handle(ctx, r.db).Preload("Specializations").First(&d, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, doctor.ErrDoctorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateCommand) (*doctor.Doctor, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if cmd.FullName != nil {
		updates["full_name"] = *cmd.FullName
	}
	if cmd.Phone != nil {
		updates["phone"] = *cmd.Phone
	}
	if cmd.ExperienceYears != nil {
		updates["experience_years"] = *cmd.ExperienceYears
	}
	if cmd.CabinetID != nil {
		updates["cabinet_id"] = *cmd.CabinetID
	}
	if len(updates) == 0 {
		return d, nil
	}

	if err := handle(ctx, r.db).Model(d).Updates(updates).Error; err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := handle(ctx, r.db)
	if err := db.Exec(
		"DELETE FROM clinic.doctor_specializations WHERE doctor_id = ?", id,
	).Error; err != nil {
		return err
	}
	res := db.Delete(&doctor.Doctor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepository) List(ctx context.Context, q doctor.ListQuery) ([]*doctor.Doctor, error) {
	db := handle(ctx, r.db).Preload("Specializations")
	if q.Specialization != "" {
		db = db.
			Joins("JOIN clinic.doctor_specializations ds ON ds.doctor_id = clinic.doctors.id").
			Joins("JOIN clinic.specializations s ON s.id = ds.specialization_id").
			Where("s.name = ?", q.Specialization)
	}
	var out []*doctor.Doctor
	err := db.
		Order("full_name ASC").
		Offset((q.Page - 1) * q.PageSize).
		Limit(q.PageSize).
		Find(&out).Error
	return out, err
}

func (r *DoctorRepository) ListByCabinet(ctx context.Context, cabinetID uuid.UUID) ([]*doctor.Doctor, error) {
	var out []*doctor.Doctor
	err := handle(ctx, r.db).Preload("Specializations").
		Where("cabinet_id = ?", cabinetID).
		Order("full_name ASC").
		Find(&out).Error
	return out, err
}

func (r *DoctorRepository) AddSpecialization(ctx context.Context, doctorID, specID uuid.UUID) error {
	return handle(ctx, r.db).
		Model(&doctor.Doctor{ID: doctorID}).
		Association("Specializations").
		Append(&specialization.Specialization{ID: specID})
}

func (r *DoctorRepository) RemoveSpecialization(ctx context.Context, doctorID, specID uuid.UUID) error {
	return handle(ctx, r.db).
		Model(&doctor.Doctor{ID: doctorID}).
		Association("Specializations").
		Delete(&specialization.Specialization{ID: specID})
}

func (r *DoctorRepository) CountBySpecialization(ctx context.Context, specID uuid.UUID) (int64, error) {
	var count int64
	err := handle(ctx, r.db).
		Table("clinic.doctor_specializations").
		Where("specialization_id = ?", specID).
		Count(&count).Error
	return count, err
}

func (r *DoctorRepository) CountByCabinet(ctx context.Context, cabinetID uuid.UUID) (int64, error) {
	var count int64
	err := handle(ctx, r.db).Model(&doctor.Doctor{}).
		Where("cabinet_id = ?", cabinetID).
		Count(&count).Error
	return count, err
}
