package doctor

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmehra2102/clinic-api/internal/domain/specialization"
)

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	FullName        string `gorm:"column:full_name;type:text;not null"`
	Phone           string `gorm:"column:phone;type:varchar(20);not null"`
	ExperienceYears int    `gorm:"column:experience_years;not null"`

	// A doctor holds at least one specialization; removal of the last one
	// is rejected by the service layer.
	Specializations []*specialization.Specialization `gorm:"many2many:clinic.doctor_specializations"`

	CabinetID *uuid.UUID `gorm:"column:cabinet_id;type:uuid;index"`
}

func (Doctor) TableName() string {
	return "clinic.doctors"
}

func (d *Doctor) HasSpecialization(id uuid.UUID) bool {
	for _, s := range d.Specializations {
		if s.ID == id {
			return true
		}
	}
	return false
}

type CreateCommand struct {
	FullName          string
	Phone             string
	ExperienceYears   int
	SpecializationIDs []uuid.UUID
	CabinetID         *uuid.UUID
}

type UpdateCommand struct {
	FullName        *string
	Phone           *string
	ExperienceYears *int
	CabinetID       *uuid.UUID
}

type ListQuery struct {
	Specialization string // filter by specialization name, empty for all
	Page           int
	PageSize       int
}
