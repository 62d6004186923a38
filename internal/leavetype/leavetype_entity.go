package leavetype

import (
	"time"

	"github.com/google/uuid"
)

type LeaveType struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_leave_type_name" json:"name"`
	AnnualAllowance int       `gorm:"not null" json:"annual_allowance"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (LeaveType) TableName() string {
	return "leave_types"
}
