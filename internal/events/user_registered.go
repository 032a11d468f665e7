package events

import "time"

const UserRegisteredTopic = "topcv.user.registered"

type UserRegisteredEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	OtpCode    string    `json:"otp_code"`
	OccurredAt time.Time `json:"occurred_at"`
}
