package specialization

import (
	"time"

	"github.com/google/uuid"
)

type Specialization struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name string `gorm:"column:name;type:varchar(100);uniqueIndex;not null"`
}

func (Specialization) TableName() string {
	return "clinic.specializations"
}

type CreateCommand struct {
	Name string
}
