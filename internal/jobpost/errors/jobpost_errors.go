package jobposterrors

import (
	"net/http"

	"topcv/internal/shared/apperror"
)

var (
	ErrJobPostNotFound = apperror.New(
		apperror.CodeNotFound,
		"job post not found",
		http.StatusNotFound,
	)
	ErrNotJobPostOwner = apperror.New(
		apperror.CodeForbidden,
		"you do not own this job post",
		http.StatusForbidden,
	)
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"unknown job post status",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidTransition,
		"job post status transition is not allowed",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidSortColumn = apperror.New(
		apperror.CodeInvalidInput,
		"sort column is not allowed",
		http.StatusBadRequest,
	)
	ErrInvalidDeadline = apperror.New(
		apperror.CodeInvalidInput,
		"deadline must be a future date in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrJobPostNotOpen = apperror.New(
		apperror.CodeInvalidTransition,
		"job post is not accepting applications",
		http.StatusUnprocessableEntity,
	)
)
