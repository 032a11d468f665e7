package resumeerrors

import (
	"net/http"

	"topcv/internal/shared/apperror"
)

var (
	ErrResumeNotFound = apperror.New(
		apperror.CodeNotFound,
		"resume not found",
		http.StatusNotFound,
	)
	ErrNotResumeOwner = apperror.New(
		apperror.CodeForbidden,
		"you do not own this resume",
		http.StatusForbidden,
	)
	ErrUnsupportedFileType = apperror.New(
		apperror.CodeInvalidInput,
		"resume file must be pdf, doc or docx",
		http.StatusBadRequest,
	)
)
