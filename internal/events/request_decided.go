package events

import "time"

const RequestDecidedTopic = "portal.request.decided"

const (
	RequestKindLeave         = "leave"
	RequestKindReimbursement = "reimbursement"
)

// RequestDecidedEvent is emitted through the outbox whenever a manager
// approves or rejects a leave request or reimbursement claim.
type RequestDecidedEvent struct {
	RequestID   string    `json:"request_id"`
	RequestKind string    `json:"request_kind"`
	OwnerID     string    `json:"owner_id"`
	Decision    string    `json:"decision"`
	DecidedBy   string    `json:"decided_by"`
	DecidedAt   time.Time `json:"decided_at"`
}
