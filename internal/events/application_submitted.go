package events

import "time"

const ApplicationSubmittedTopic = "topcv.application.submitted"

type ApplicationSubmittedEvent struct {
	EventType     string    `json:"event_type"`
	RequestID     string    `json:"request_id"`
	ApplicationID string    `json:"application_id"`
	JobPostID     string    `json:"job_post_id"`
	JobTitle      string    `json:"job_title"`
	ApplicantID   string    `json:"applicant_id"`
	ApplicantName string    `json:"applicant_name"`
	EmployerID    string    `json:"employer_id"`
	EmployerEmail string    `json:"employer_email"`
	OccurredAt    time.Time `json:"occurred_at"`
}
