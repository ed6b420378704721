package callerid

import (
	"context"
	"database/sql"
	"errors"
)

func listCallerIDs(ctx context.Context, db *sql.DB, userID string) ([]CallerID, error) {
	const q = `
SELECT id, user_id, name, phone_number, COALESCE(location, ''), is_default, created_at
FROM caller_ids
WHERE user_id = $1
ORDER BY created_at ASC
`
	rows, err := db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CallerID{}
	for rows.Next() {
		var c CallerID
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.PhoneNumber, &c.Location, &c.IsDefault, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func getCallerID(ctx context.Context, db *sql.DB, userID, id string) (CallerID, error) {
	const q = `
SELECT id, user_id, name, phone_number, COALESCE(location, ''), is_default, created_at
FROM caller_ids
WHERE user_id = $1 AND id = $2
`
	var c CallerID
	err := db.QueryRowContext(ctx, q, userID, id).Scan(
		&c.ID, &c.UserID, &c.Name, &c.PhoneNumber, &c.Location, &c.IsDefault, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CallerID{}, ErrNotFound
		}
		return CallerID{}, err
	}
	return c, nil
}

func insertCallerIDs(ctx context.Context, db *sql.DB, ids []CallerID) error {
	const q = `
INSERT INTO caller_ids (id, user_id, name, phone_number, location, is_default, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7)
`
	for _, c := range ids {
		if _, err := db.ExecContext(ctx, q, c.ID, c.UserID, c.Name, c.PhoneNumber, c.Location, c.IsDefault, c.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func renameCallerID(ctx context.Context, db *sql.DB, userID, id, name string) (CallerID, error) {
	const q = `
UPDATE caller_ids
SET name = $3
WHERE user_id = $1 AND id = $2
RETURNING id, user_id, name, phone_number, COALESCE(location, ''), is_default, created_at
`
	var c CallerID
	err := db.QueryRowContext(ctx, q, userID, id, name).Scan(
		&c.ID, &c.UserID, &c.Name, &c.PhoneNumber, &c.Location, &c.IsDefault, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CallerID{}, ErrNotFound
		}
		return CallerID{}, err
	}
	return c, nil
}

func deleteCallerID(ctx context.Context, db *sql.DB, userID, id string) error {
	// Seeded defaults are not deletable; the filter silently excludes them.
	const q = `DELETE FROM caller_ids WHERE user_id = $1 AND id = $2 AND is_default = false`
	res, err := db.ExecContext(ctx, q, userID, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
