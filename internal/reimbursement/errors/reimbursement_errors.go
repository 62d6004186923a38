package reimbursementerrors

import (
	"net/http"

	"go-portal/internal/shared/apperror"
)

var (
	ErrClaimNotFound = apperror.New(
		apperror.CodeNotFound,
		"reimbursement claim not found",
		http.StatusNotFound,
	)
	ErrNoLineItems = apperror.New(
		apperror.CodeInvalidInput,
		"a claim needs at least one line item",
		http.StatusBadRequest,
	)
	ErrAmountMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"line item amounts must add up to the claim amount",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amounts must be positive",
		http.StatusBadRequest,
	)
	ErrInvalidBillDate = apperror.New(
		apperror.CodeInvalidInput,
		"bill dates cannot be in the future",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"rejection reason is required",
		http.StatusBadRequest,
	)
	ErrDecisionForbidden = apperror.New(
		apperror.CodeForbidden,
		"only managers may decide reimbursement claims",
		http.StatusForbidden,
	)
	ErrCommentForbidden = apperror.New(
		apperror.CodeForbidden,
		"only managers may comment on reimbursement claims",
		http.StatusForbidden,
	)
	ErrCommentRequired = apperror.New(
		apperror.CodeInvalidInput,
		"comment cannot be blank",
		http.StatusBadRequest,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"reimbursement claim has already been decided",
		http.StatusConflict,
	)
)
