package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput         = "VALIDATION_ERROR"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodeDuplicateApplication = "DUPLICATE_APPLICATION"
	CodeInvalidTransition    = "INVALID_TRANSITION"

	// Server errors (5xx)
	CodeInternalError       = "INTERNAL_ERROR"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
)
