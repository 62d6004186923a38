package approval

// PendingApproval is one row in the manager's queue, regardless of whether
// the underlying request is a leave or a reimbursement claim.
type PendingApproval struct {
	RequestID     string `json:"request_id"`
	RequestKind   string `json:"request_kind"`
	RequesterID   string `json:"requester_id"`
	RequesterName string `json:"requester_name"`
	Summary       string `json:"summary"`
	SubmittedAt   string `json:"submitted_at"`
}
