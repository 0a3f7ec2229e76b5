package patient

import (
	"time"

	"github.com/google/uuid"
)

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	FullName        string    `gorm:"column:full_name;type:text;not null"`
	BirthDate       time.Time `gorm:"column:birth_date;type:date;not null"`
	Phone           string    `gorm:"column:phone;type:varchar(20);not null"`
	Address         string    `gorm:"column:address;type:text;not null"`
	InsuranceNumber string    `gorm:"column:insurance_number;type:varchar(16);uniqueIndex;not null"`
}

func (Patient) TableName() string {
	return "clinic.patients"
}

func (p *Patient) Age() int {
	now := time.Now()
	years := now.Year() - p.BirthDate.Year()
	if now.Month() < p.BirthDate.Month() ||
		(now.Month() == p.BirthDate.Month() && now.Day() < p.BirthDate.Day()) {
		years--
	}
	return years
}

type CreateCommand struct {
	FullName        string
	BirthDate       time.Time
	Phone           string
	Address         string
	InsuranceNumber string
}

type UpdateCommand struct {
	FullName        *string
	BirthDate       *time.Time
	Phone           *string
	Address         *string
	InsuranceNumber *string
}

type ListQuery struct {
	Page     int
	PageSize int
}
