package audit

import "time"

// Event is an immutable, append-only audit record.
//
// Invariants:
// - Events are never updated or deleted.
// - user_id is required; every event is scoped to one account.
// - Recording is best-effort; do not block critical flows on audit failures.
type Event struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	// Type is the business category of the record.
	Type EventType `json:"type" db:"type"`

	// Target identifiers (optional, depending on the event type).
	VerificationID string `json:"verification_id,omitempty" db:"verification_id"`
	CallID         string `json:"call_id,omitempty" db:"call_id"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeVerificationRequested EventType = "verification_requested"
	EventTypeVerificationVerified  EventType = "verification_verified"
	EventTypeVerificationFailed    EventType = "verification_failed"
	EventTypeCallScheduled         EventType = "call_scheduled"
)
