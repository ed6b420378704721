package verification

import (
	"context"
	"time"
)

// Repository is the persistence contract for verification rows.
//
// Transactional requirements:
//   - CreatePending supersedes prior pending rows for (user, phone) and inserts
//     the new row in the same transaction.
//   - MarkVerified marks the row verified and writes the phone number and
//     country code onto the user record in the same transaction.
type Repository interface {
	CreatePending(ctx context.Context, v Verification) error

	// LatestPending returns the most recent pending row for (user, phone).
	LatestPending(ctx context.Context, userID, phoneNumber string) (Verification, bool, error)

	// Latest returns the most recent row regardless of status (resend cooldown).
	Latest(ctx context.Context, userID, phoneNumber string) (Verification, bool, error)

	// IncrementAttempts bumps the attempt counter and last-attempt time.
	IncrementAttempts(ctx context.Context, id string, at time.Time) error

	SetCallID(ctx context.Context, id, callID string) error
	MarkSuperseded(ctx context.Context, id string) error
	MarkVerified(ctx context.Context, id, userID, phoneNumber, countryCode string, at time.Time) error
}
