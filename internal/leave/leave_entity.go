package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type LeaveRequest struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	LeaveTypeName   string     `gorm:"type:varchar(50);not null" json:"leave_type_name"`
	StartDate       time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time  `gorm:"type:date;not null" json:"end_date"`
	TotalDays       int        `gorm:"not null" json:"total_days"`
	Reason          string     `gorm:"type:text;not null" json:"reason"`
	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	RejectionReason *string    `gorm:"type:text" json:"rejection_reason,omitempty"`
	DecidedBy       *uuid.UUID `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}
