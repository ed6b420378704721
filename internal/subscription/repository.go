package subscription

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const subscriptionColumns = `id, user_id, tier, COALESCE(billing_cycle, 'monthly'),
	calls_limit, calls_remaining, texts_limit, texts_remaining,
	stripe_subscription_id, started_at, expires_at, auto_renew`

func getSubscription(ctx context.Context, db *sql.DB, userID string) (Subscription, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+subscriptionColumns+`
		FROM subscriptions
		WHERE user_id = $1`, userID)
	return scanSubscription(row)
}

func getStatus(ctx context.Context, db *sql.DB, userID string) (Status, error) {
	var st Status
	var expires sql.NullTime
	err := db.QueryRowContext(ctx, `
		SELECT user_id, COALESCE(email, ''), tier, COALESCE(billing_cycle, 'monthly'),
			calls_remaining, calls_limit, texts_remaining, texts_limit,
			expires_at, auto_renew
		FROM user_subscription_status
		WHERE user_id = $1`, userID).
		Scan(&st.UserID, &st.Email, &st.Tier, &st.BillingCycle,
			&st.CallsRemaining, &st.CallsLimit, &st.TextsRemaining, &st.TextsLimit,
			&expires, &st.AutoRenew)
	if err != nil {
		return Status{}, err
	}
	if expires.Valid {
		st.ExpiresAt = &expires.Time
	}
	return st, nil
}

func decrementUsage(ctx context.Context, db *sql.DB, userID, method string) error {
	_, err := db.ExecContext(ctx, `SELECT decrement_usage($1, $2)`, userID, method)
	if err != nil {
		return fmt.Errorf("decrement usage: %w", err)
	}
	return nil
}

func updateTierTx(ctx context.Context, tx *sql.Tx, userID, tier, billingCycle string,
	callsLimit, textsLimit int, stripeID *string, startedAt, expiresAt time.Time) (Subscription, error) {
	row := tx.QueryRowContext(ctx, `
		UPDATE subscriptions SET
			tier = $2,
			billing_cycle = $3,
			calls_limit = $4,
			calls_remaining = $4,
			texts_limit = $5,
			texts_remaining = $5,
			stripe_subscription_id = $6,
			started_at = $7,
			expires_at = $8,
			auto_renew = true
		WHERE user_id = $1
		RETURNING `+subscriptionColumns,
		userID, tier, billingCycle, callsLimit, textsLimit, stripeID, startedAt, expiresAt)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return Subscription{}, ErrNotFound
	}
	if err != nil {
		return Subscription{}, fmt.Errorf("update subscription tier: %w", err)
	}
	return sub, nil
}

func mirrorUserTierTx(ctx context.Context, tx *sql.Tx, userID, tier string, now time.Time) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE users SET subscription_tier = $2, updated_at = $3
		WHERE id = $1`, userID, tier, now)
	if err != nil {
		return fmt.Errorf("mirror user tier: %w", err)
	}
	return nil
}

func cancelSubscription(ctx context.Context, db *sql.DB, userID string) (Subscription, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE subscriptions SET auto_renew = false
		WHERE user_id = $1
		RETURNING `+subscriptionColumns, userID)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return Subscription{}, ErrNotFound
	}
	if err != nil {
		return Subscription{}, fmt.Errorf("cancel subscription: %w", err)
	}
	return sub, nil
}

func resetUsage(ctx context.Context, db *sql.DB, userID string) (Subscription, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE subscriptions SET
			calls_remaining = calls_limit,
			texts_remaining = texts_limit
		WHERE user_id = $1
		RETURNING `+subscriptionColumns, userID)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return Subscription{}, ErrNotFound
	}
	if err != nil {
		return Subscription{}, fmt.Errorf("reset subscription usage: %w", err)
	}
	return sub, nil
}

func addTopUp(ctx context.Context, db *sql.DB, userID string, amount int) (Subscription, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE subscriptions SET calls_remaining = calls_remaining + $2
		WHERE user_id = $1
		RETURNING `+subscriptionColumns, userID, amount)
	sub, err := scanSubscription(row)
	if err == sql.ErrNoRows {
		return Subscription{}, ErrNotFound
	}
	if err != nil {
		return Subscription{}, fmt.Errorf("add top-up: %w", err)
	}
	return sub, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubscription(r rowScanner) (Subscription, error) {
	var s Subscription
	var stripeID sql.NullString
	var started, expires sql.NullTime
	err := r.Scan(&s.ID, &s.UserID, &s.Tier, &s.BillingCycle,
		&s.CallsLimit, &s.CallsRemaining, &s.TextsLimit, &s.TextsRemaining,
		&stripeID, &started, &expires, &s.AutoRenew)
	if err != nil {
		return Subscription{}, err
	}
	if stripeID.Valid {
		s.StripeSubscriptionID = &stripeID.String
	}
	if started.Valid {
		s.StartedAt = &started.Time
	}
	if expires.Valid {
		s.ExpiresAt = &expires.Time
	}
	return s, nil
}
