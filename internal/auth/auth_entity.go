package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PersonnelID *uuid.UUID `gorm:"type:uuid;uniqueIndex"` // link to the personnel record, nil for pure admin accounts
	Email       string     `gorm:"type:varchar(200);uniqueIndex;not null"`
	Password    string     `gorm:"column:password_hash;type:varchar(100);not null"`
	Role        string     `gorm:"type:varchar(50);not null;default:'employee'"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
