package catalogerrors

import (
	"net/http"

	"topcv/internal/shared/apperror"
)

var (
	ErrItemNotFound = apperror.New(
		apperror.CodeNotFound,
		"catalog item not found",
		http.StatusNotFound,
	)
	ErrNameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"name already exists",
		http.StatusConflict,
	)
	ErrUnknownKind = apperror.New(
		apperror.CodeInvalidInput,
		"unknown catalog kind",
		http.StatusBadRequest,
	)
)
