package companyerrors

import (
	"net/http"

	"topcv/internal/shared/apperror"
)

var (
	ErrCompanyNotFound = apperror.New(
		apperror.CodeNotFound,
		"company not found",
		http.StatusNotFound,
	)
	ErrCompanyAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"user already has a company profile",
		http.StatusConflict,
	)
	ErrNotCompanyOwner = apperror.New(
		apperror.CodeForbidden,
		"you do not own this company",
		http.StatusForbidden,
	)
	ErrReviewNotFound = apperror.New(
		apperror.CodeNotFound,
		"review not found",
		http.StatusNotFound,
	)
)
