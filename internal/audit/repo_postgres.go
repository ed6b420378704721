package audit

import (
	"context"
	"database/sql"
)

// PostgresRepo appends events to the audit_events table.
// The table should carry an INSERT-only policy; rows are never updated.
type PostgresRepo struct {
	db *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) Append(ctx context.Context, e Event) error {
	const q = `
INSERT INTO audit_events (
  id, user_id, type, verification_id, call_id, message, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7
)
`
	_, err := r.db.ExecContext(ctx, q,
		e.ID,
		e.UserID,
		e.Type,
		e.VerificationID,
		e.CallID,
		e.Message,
		e.CreatedAt,
	)
	return err
}
