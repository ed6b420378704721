package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const userColumns = `
id, COALESCE(email, ''), COALESCE(phone_number, ''), COALESCE(country_code, ''),
COALESCE(subscription_tier, 'free'), creator_mode_enabled, notifications_enabled,
COALESCE(selected_ringtone, ''), created_at, updated_at
`

func scanUser(row *sql.Row) (User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PhoneNumber,
		&u.CountryCode,
		&u.SubscriptionTier,
		&u.CreatorModeEnabled,
		&u.NotificationsEnabled,
		&u.SelectedRingtone,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func getUser(ctx context.Context, db *sql.DB, userID string) (User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(db.QueryRowContext(ctx, q, userID))
}

// updateUser writes only the changed columns and returns the updated row.
func updateUser(ctx context.Context, db *sql.DB, userID string, req UpdateRequest, now time.Time) (User, error) {
	sets := []string{"updated_at = $2"}
	args := []any{userID, now}

	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.CreatorModeEnabled != nil {
		add("creator_mode_enabled", *req.CreatorModeEnabled)
	}
	if req.NotificationsEnabled != nil {
		add("notifications_enabled", *req.NotificationsEnabled)
	}
	if req.SelectedRingtone != nil {
		add("selected_ringtone", *req.SelectedRingtone)
	}

	q := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + userColumns
	return scanUser(db.QueryRowContext(ctx, q, args...))
}
