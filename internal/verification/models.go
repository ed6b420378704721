package verification

import "time"

// Verification is one phone-verification attempt row.
//
// Status is explicit: a new request supersedes older pending rows for the
// same (user, phone) transactionally, so lookups never depend on implicit
// recency ordering alone.
//
// The plaintext code is never stored; only its SHA-256 hex digest.
type Verification struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`
	CountryCode string `json:"country_code" db:"country_code"`

	CodeHash string `json:"-" db:"code_hash"`

	Status Status `json:"status" db:"status"`

	// LuronCallID links the row to the external voice call carrying the code.
	LuronCallID string `json:"luron_call_id,omitempty" db:"luron_call_id"`

	Attempts      int        `json:"attempts" db:"attempts"`
	LastAttemptAt *time.Time `json:"last_attempt_at,omitempty" db:"last_attempt_at"`

	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Status string

const (
	StatusPending    Status = "pending"
	StatusVerified   Status = "verified"
	StatusSuperseded Status = "superseded"
	StatusExpired    Status = "expired"
)

// RequestResult is returned by Request and Resend.
type RequestResult struct {
	VerificationID string `json:"verification_id"`
	CallID         string `json:"call_id"`
}
