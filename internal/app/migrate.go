package app

import (
	"go-portal/internal/auth"
	"go-portal/internal/employee"
	"go-portal/internal/leave"
	"go-portal/internal/leavetype"
	"go-portal/internal/notification"
	"go-portal/internal/payslip"
	"go-portal/internal/reimbursement"
	"go-portal/internal/task"
	"go-portal/internal/trip"

	"gorm.io/gorm"
)

// The outbox table is written with raw SQL, so its schema lives here rather
// than on a gorm model.
const outboxDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	error_message TEXT,
	next_retry_at TIMESTAMPTZ,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)
`

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&employee.Employee{},
		&auth.User{},
		&leavetype.LeaveType{},
		&leave.LeaveRequest{},
		&reimbursement.Claim{},
		&reimbursement.LineItem{},
		&trip.TripReport{},
		&payslip.Payslip{},
		&task.Task{},
		&notification.Notification{},
	); err != nil {
		return err
	}

	if err := gormDB.Exec(outboxDDL).Error; err != nil {
		return err
	}

	return leavetype.Seed(gormDB)
}
