package verification

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"queout/pkg/utils"
)

// PostgresRepo stores verification rows in the phone_verifications table and
// stamps verified phones onto users.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreatePending(ctx context.Context, v Verification) error {
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		const supersede = `
UPDATE phone_verifications
SET status = $1
WHERE user_id = $2 AND phone_number = $3 AND status = $4
`
		if _, err := tx.ExecContext(ctx, supersede, StatusSuperseded, v.UserID, v.PhoneNumber, StatusPending); err != nil {
			return err
		}

		const insert = `
INSERT INTO phone_verifications (
  id, user_id, phone_number, country_code, code_hash, status, luron_call_id, attempts, expires_at, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10
)
`
		_, err := tx.ExecContext(ctx, insert,
			v.ID,
			v.UserID,
			v.PhoneNumber,
			v.CountryCode,
			v.CodeHash,
			v.Status,
			v.LuronCallID,
			v.Attempts,
			v.ExpiresAt,
			v.CreatedAt,
		)
		return err
	})
}

func (r *PostgresRepo) LatestPending(ctx context.Context, userID, phoneNumber string) (Verification, bool, error) {
	const q = `
SELECT id, user_id, phone_number, country_code, code_hash, status, luron_call_id, attempts, last_attempt_at, expires_at, created_at
FROM phone_verifications
WHERE user_id = $1 AND phone_number = $2 AND status = $3
ORDER BY created_at DESC
LIMIT 1
`
	return r.scanOne(ctx, q, userID, phoneNumber, StatusPending)
}

func (r *PostgresRepo) Latest(ctx context.Context, userID, phoneNumber string) (Verification, bool, error) {
	const q = `
SELECT id, user_id, phone_number, country_code, code_hash, status, luron_call_id, attempts, last_attempt_at, expires_at, created_at
FROM phone_verifications
WHERE user_id = $1 AND phone_number = $2
ORDER BY created_at DESC
LIMIT 1
`
	return r.scanOne(ctx, q, userID, phoneNumber)
}

func (r *PostgresRepo) scanOne(ctx context.Context, q string, args ...any) (Verification, bool, error) {
	var v Verification
	var callID sql.NullString
	var lastAttempt sql.NullTime
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&v.ID,
		&v.UserID,
		&v.PhoneNumber,
		&v.CountryCode,
		&v.CodeHash,
		&v.Status,
		&callID,
		&v.Attempts,
		&lastAttempt,
		&v.ExpiresAt,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Verification{}, false, nil
		}
		return Verification{}, false, err
	}
	if callID.Valid {
		v.LuronCallID = callID.String
	}
	if lastAttempt.Valid {
		t := lastAttempt.Time
		v.LastAttemptAt = &t
	}
	return v, true, nil
}

func (r *PostgresRepo) IncrementAttempts(ctx context.Context, id string, at time.Time) error {
	const q = `
UPDATE phone_verifications
SET attempts = attempts + 1, last_attempt_at = $2
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, q, id, at)
	return err
}

func (r *PostgresRepo) SetCallID(ctx context.Context, id, callID string) error {
	const q = `UPDATE phone_verifications SET luron_call_id = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, callID)
	return err
}

func (r *PostgresRepo) MarkSuperseded(ctx context.Context, id string) error {
	const q = `UPDATE phone_verifications SET status = $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id, StatusSuperseded)
	return err
}

func (r *PostgresRepo) MarkVerified(ctx context.Context, id, userID, phoneNumber, countryCode string, at time.Time) error {
	return utils.WithTx(ctx, r.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		const markRow = `
UPDATE phone_verifications
SET status = $2
WHERE id = $1 AND status = $3
`
		res, err := tx.ExecContext(ctx, markRow, id, StatusVerified, StatusPending)
		if err != nil {
			return err
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return errors.New("verification row no longer pending")
		}

		const setPhone = `
UPDATE users
SET phone_number = $2, country_code = $3, updated_at = $4
WHERE id = $1
`
		_, err = tx.ExecContext(ctx, setPhone, userID, phoneNumber, countryCode, at)
		return err
	})
}
