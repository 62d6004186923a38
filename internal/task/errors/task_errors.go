package taskerrors

import (
	"net/http"

	"go-portal/internal/shared/apperror"
)

var (
	ErrTaskNotFound = apperror.New(
		apperror.CodeNotFound,
		"task not found",
		http.StatusNotFound,
	)
	ErrTaskDone = apperror.New(
		apperror.CodeInvalidState,
		"a completed task cannot be reopened",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"invalid task status",
		http.StatusBadRequest,
	)
)
