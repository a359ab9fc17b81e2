package leavetype

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LeaveType is reference data owned by administrators. Event-based types
// carry a fixed entitlement in days and an optional gender restriction
// (e.g. paternity leave); the leave workflow reads them at request time.
type LeaveType struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(100);uniqueIndex:uq_leave_type_name;not null"`
	IsEventBased   bool      `gorm:"not null;default:false"`
	MaxDays        int       `gorm:"type:int;not null"`
	RequiredGender *string   `gorm:"type:varchar(10)"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
