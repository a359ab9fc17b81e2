package personnel

import (
	"time"

	"gorm.io/gorm"

	"github.com/google/uuid"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

type Personnel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName  string    `gorm:"type:varchar(200);not null"`
	Email     string    `gorm:"type:varchar(200);uniqueIndex:uq_personnel_email;not null"`
	Gender    string    `gorm:"type:varchar(10);not null"`
	HireDate  time.Time `gorm:"type:date;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Personnel) TableName() string {
	return "personnel"
}
