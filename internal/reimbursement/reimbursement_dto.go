package reimbursement

type LineItemRequest struct {
	ExpenseType string `json:"expense_type" binding:"required"`
	Description string `json:"description" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	RefBillName string `json:"ref_bill_name"`
	BillDate    string `json:"bill_date" binding:"required"`
	BillFileRef string `json:"bill_file_ref"`
}

type CreateClaimRequest struct {
	Category    string            `json:"category" binding:"required"`
	ClaimDate   string            `json:"claim_date" binding:"required"`
	Description string            `json:"description" binding:"required"`
	TotalAmount string            `json:"total_amount" binding:"required"`
	Items       []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

type DecideClaimRequest struct {
	Decision        string `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
	RejectionReason string `json:"rejection_reason"`
}

type CommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

type LineItemResponse struct {
	ID          string `json:"id"`
	Position    int    `json:"position"`
	ExpenseType string `json:"expense_type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	RefBillName string `json:"ref_bill_name,omitempty"`
	BillDate    string `json:"bill_date"`
	BillFileRef string `json:"bill_file_ref,omitempty"`
}

type ClaimResponse struct {
	ID              string             `json:"id"`
	OwnerID         string             `json:"owner_id"`
	Category        string             `json:"category"`
	ClaimDate       string             `json:"claim_date"`
	Description     string             `json:"description"`
	TotalAmount     string             `json:"total_amount"`
	Status          string             `json:"status"`
	RejectionReason *string            `json:"rejection_reason,omitempty"`
	ManagerComment  *string            `json:"manager_comment,omitempty"`
	DecidedBy       *string            `json:"decided_by,omitempty"`
	DecidedAt       *string            `json:"decided_at,omitempty"`
	Items           []LineItemResponse `json:"items"`
}
