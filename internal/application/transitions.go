package application

import "topcv/internal/user"

// forwardEdges is the employer-driven pipeline. Each status maps to the one
// status it can advance to.
var forwardEdges = map[string]string{
	StatusPending:     StatusReviewing,
	StatusReviewing:   StatusShortlisted,
	StatusShortlisted: StatusInterviewed,
	StatusInterviewed: StatusHired,
}

func isTerminal(status string) bool {
	switch status {
	case StatusHired, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

func isValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusReviewing, StatusShortlisted, StatusInterviewed,
		StatusHired, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// CanTransition reports whether actorRole may move an application from one
// status to another. Forward moves and rejection belong to the employer
// side; withdrawal belongs to the seeker and only from PENDING or REVIEWING.
func CanTransition(from, to, actorRole string) bool {
	if isTerminal(from) {
		return false
	}

	switch to {
	case StatusWithdrawn:
		return actorRole == user.RoleSeeker &&
			(from == StatusPending || from == StatusReviewing)
	case StatusRejected:
		return actorRole == user.RoleEmployer || actorRole == user.RoleAdmin
	default:
		if actorRole != user.RoleEmployer && actorRole != user.RoleAdmin {
			return false
		}
		return forwardEdges[from] == to
	}
}
