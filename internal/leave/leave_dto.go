package leave

type CreateLeaveRequest struct {
	LeaveTypeName string `json:"leave_type_name" binding:"required"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
	Reason        string `json:"reason" binding:"required"`
}

type DecideLeaveRequest struct {
	Decision        string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	RejectionReason string `json:"rejection_reason"`
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	OwnerID         string  `json:"owner_id"`
	LeaveTypeName   string  `json:"leave_type_name"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	DecidedBy       *string `json:"decided_by,omitempty"`
	DecidedAt       *string `json:"decided_at,omitempty"`
}

type BalanceResponse struct {
	LeaveTypeName   string `json:"leave_type_name"`
	AnnualAllowance int    `json:"annual_allowance"`
	UsedDays        int    `json:"used_days"`
	BalanceDays     int    `json:"balance_days"`
}
