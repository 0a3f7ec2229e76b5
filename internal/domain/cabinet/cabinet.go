package cabinet

import (
	"time"

	"github.com/google/uuid"
)

type Cabinet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Number      string `gorm:"column:number;type:varchar(10);uniqueIndex;not null"`
	Floor       int    `gorm:"column:floor;not null;index"`
	Description string `gorm:"column:description;type:text"`
}

func (Cabinet) TableName() string {
	return "clinic.cabinets"
}

type CreateCommand struct {
	Number      string
	Floor       int
	Description string
}

type UpdateCommand struct {
	Number      *string
	Floor       *int
	Description *string
}

type ListQuery struct {
	Floor    *int
	Page     int
	PageSize int
}
