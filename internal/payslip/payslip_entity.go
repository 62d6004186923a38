package payslip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Payslip struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID    uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:uq_payslip_owner_period" json:"owner_id"`
	Period     string          `gorm:"type:varchar(7);not null;uniqueIndex:uq_payslip_owner_period" json:"period"`
	BaseSalary decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"base_salary"`
	Allowance  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"allowance"`
	Deduction  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"deduction"`
	NetSalary  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"net_salary"`
	IssuedBy   uuid.UUID       `gorm:"type:uuid;not null" json:"issued_by"`
	IssuedAt   time.Time       `gorm:"not null" json:"issued_at"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (Payslip) TableName() string {
	return "payslips"
}
