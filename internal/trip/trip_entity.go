package trip

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
)

type TripReport struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	Destination string     `gorm:"type:varchar(255);not null" json:"destination"`
	Purpose     string     `gorm:"type:text;not null" json:"purpose"`
	StartDate   time.Time  `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time  `gorm:"type:date;not null" json:"end_date"`
	Outcome     string     `gorm:"type:text" json:"outcome"`
	Status      string     `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (TripReport) TableName() string {
	return "trip_reports"
}
