package applicationerrors

import (
	"net/http"

	"topcv/internal/shared/apperror"
)

var (
	ErrApplicationNotFound = apperror.New(
		apperror.CodeNotFound,
		"application not found",
		http.StatusNotFound,
	)
	ErrDuplicateApplication = apperror.New(
		apperror.CodeDuplicateApplication,
		"an application for this job already exists",
		http.StatusConflict,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidTransition,
		"status transition is not allowed",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"unknown application status",
		http.StatusBadRequest,
	)
	ErrNotApplicationOwner = apperror.New(
		apperror.CodeForbidden,
		"you do not own this application",
		http.StatusForbidden,
	)
	ErrNotApplicationEmployer = apperror.New(
		apperror.CodeForbidden,
		"this application does not belong to your job posts",
		http.StatusForbidden,
	)
)
