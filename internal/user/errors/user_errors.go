package usererrors

import (
	"net/http"

	"topcv/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"email is already registered",
		http.StatusConflict,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrRegistrationExpired = apperror.New(
		apperror.CodeNotFound,
		"registration token not found or expired",
		http.StatusNotFound,
	)
	ErrInvalidOtp = apperror.New(
		apperror.CodeInvalidInput,
		"invalid or expired otp",
		http.StatusBadRequest,
	)
	ErrUserInactive = apperror.New(
		apperror.CodeForbidden,
		"user account is deactivated",
		http.StatusForbidden,
	)
)
