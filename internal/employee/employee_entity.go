package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FullName    string     `gorm:"type:varchar(255);not null"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Role        string     `gorm:"type:varchar(20);not null;default:'EMPLOYEE'"`
	ReportingTo *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
