package triperrors

import (
	"net/http"

	"go-portal/internal/shared/apperror"
)

var (
	ErrTripNotFound = apperror.New(
		apperror.CodeNotFound,
		"trip report not found",
		http.StatusNotFound,
	)
	ErrInvalidTripDates = apperror.New(
		apperror.CodeInvalidInput,
		"trip dates must be in the past",
		http.StatusBadRequest,
	)
	ErrFilingWindowExpired = apperror.New(
		apperror.CodeInvalidInput,
		"filing window expired",
		http.StatusBadRequest,
	)
	ErrNotDraft = apperror.New(
		apperror.CodeInvalidState,
		"only draft reports can be edited",
		http.StatusUnprocessableEntity,
	)
	ErrAlreadySubmitted = apperror.New(
		apperror.CodeInvalidState,
		"trip report has already been submitted",
		http.StatusUnprocessableEntity,
	)
)
