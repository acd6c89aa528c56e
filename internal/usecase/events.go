package usecase

import "time"

const (
	SubjectAccountRegistered = "account.registered"
	SubjectAccountConfirmed  = "account.confirmed"
	SubjectTeacherUpdated    = "teacher.updated"
	SubjectTeacherReviewed   = "teacher.reviewed"
)

// AccountEvent is the payload of every account.* and teacher.* message.
type AccountEvent struct {
	AccountID  string    `json:"account_id"`
	Kind       string    `json:"kind"`
	Email      string    `json:"email,omitempty"`
	Role       string    `json:"role,omitempty"`
	ActorID    string    `json:"actor_id,omitempty"`
	Rating     int       `json:"rating,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
