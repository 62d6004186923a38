package paysliperrors

import (
	"net/http"

	"go-portal/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrIssueForbidden = apperror.New(
		apperror.CodeForbidden,
		"only managers may issue payslips",
		http.StatusForbidden,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"period must look like 2026-08",
		http.StatusBadRequest,
	)
	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"a payslip for this employee and period already exists",
		http.StatusConflict,
	)
	ErrNegativeNetSalary = apperror.New(
		apperror.CodeInvalidInput,
		"deductions cannot exceed gross salary",
		http.StatusBadRequest,
	)
	ErrUnknownEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"unknown employee",
		http.StatusBadRequest,
	)
)
