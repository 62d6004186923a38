package reimbursement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Claim struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
	Category        string          `gorm:"type:varchar(50);not null" json:"category"`
	ClaimDate       time.Time       `gorm:"type:date;not null" json:"claim_date"`
	Description     string          `gorm:"type:text;not null" json:"description"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Status          string          `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	RejectionReason *string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	ManagerComment  *string         `gorm:"type:text" json:"manager_comment,omitempty"`
	DecidedBy       *uuid.UUID      `gorm:"type:uuid" json:"decided_by,omitempty"`
	DecidedAt       *time.Time      `json:"decided_at,omitempty"`
	Items           []LineItem      `gorm:"foreignKey:ClaimID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Claim) TableName() string {
	return "reimbursement_claims"
}

type LineItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ClaimID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"claim_id"`
	Position    int             `gorm:"not null" json:"position"`
	ExpenseType string          `gorm:"type:varchar(50);not null" json:"expense_type"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	RefBillName string          `gorm:"type:varchar(255)" json:"ref_bill_name"`
	BillDate    time.Time       `gorm:"type:date;not null" json:"bill_date"`
	BillFileRef string          `gorm:"type:varchar(255)" json:"bill_file_ref"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (LineItem) TableName() string {
	return "reimbursement_line_items"
}
