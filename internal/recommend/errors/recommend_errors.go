package recommenderrors

import (
	"net/http"

	"topcv/internal/shared/apperror"
)

var (
	ErrMatcherUnavailable = apperror.New(
		apperror.CodeUpstreamUnavailable,
		"recommendation service unavailable",
		http.StatusServiceUnavailable,
	)
	ErrNoActiveJobPosts = apperror.New(
		apperror.CodeNotFound,
		"no active job posts to match against",
		http.StatusNotFound,
	)
)
