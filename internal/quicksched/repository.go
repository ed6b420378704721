package quicksched

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

const scheduleColumns = `id, user_id, name, COALESCE(icon, ''), COALESCE(color, ''),
	persona_id, COALESCE(voice_id, ''), contact_methods, COALESCE(context_note, ''),
	COALESCE(time_preset, 'now'), COALESCE(voice_category, ''), usage_count,
	last_used_at, created_at`

func listSchedules(ctx context.Context, db *sql.DB, userID string) ([]QuickSchedule, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM quick_schedules
		WHERE user_id = $1
		ORDER BY usage_count DESC, created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list quick schedules: %w", err)
	}
	defer rows.Close()

	var out []QuickSchedule
	for rows.Next() {
		q, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func getSchedule(ctx context.Context, db *sql.DB, userID, id string) (QuickSchedule, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+scheduleColumns+`
		FROM quick_schedules
		WHERE user_id = $1 AND id = $2`, userID, id)
	q, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return QuickSchedule{}, ErrNotFound
	}
	if err != nil {
		return QuickSchedule{}, fmt.Errorf("get quick schedule: %w", err)
	}
	return q, nil
}

func insertSchedules(ctx context.Context, db *sql.DB, schedules []QuickSchedule) error {
	for _, q := range schedules {
		methods, err := json.Marshal(q.ContactMethods)
		if err != nil {
			return fmt.Errorf("encode contact methods: %w", err)
		}
		_, err = db.ExecContext(ctx, `
			INSERT INTO quick_schedules
				(id, user_id, name, icon, color, persona_id, voice_id, contact_methods,
				 context_note, time_preset, voice_category, usage_count, last_used_at, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			q.ID, q.UserID, q.Name, q.Icon, q.Color, q.PersonaID, q.VoiceID, methods,
			q.ContextNote, q.TimePreset, q.VoiceCategory, q.UsageCount, q.LastUsedAt, q.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert quick schedule: %w", err)
		}
	}
	return nil
}

func updateSchedule(ctx context.Context, db *sql.DB, userID, id string, req UpdateRequest) (QuickSchedule, error) {
	set := ""
	args := []any{userID, id}
	add := func(col string, v any) {
		args = append(args, v)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, len(args))
	}
	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Icon != nil {
		add("icon", *req.Icon)
	}
	if req.Color != nil {
		add("color", *req.Color)
	}
	if req.PersonaID != nil {
		add("persona_id", *req.PersonaID)
	}
	if req.VoiceID != nil {
		add("voice_id", *req.VoiceID)
	}
	if req.ContactMethods != nil {
		methods, err := json.Marshal(req.ContactMethods)
		if err != nil {
			return QuickSchedule{}, fmt.Errorf("encode contact methods: %w", err)
		}
		add("contact_methods", methods)
	}
	if req.ContextNote != nil {
		add("context_note", *req.ContextNote)
	}
	if req.TimePreset != nil {
		add("time_preset", *req.TimePreset)
	}
	if req.VoiceCategory != nil {
		add("voice_category", *req.VoiceCategory)
	}
	if set == "" {
		return getSchedule(ctx, db, userID, id)
	}

	row := db.QueryRowContext(ctx, `
		UPDATE quick_schedules SET `+set+`
		WHERE user_id = $1 AND id = $2
		RETURNING `+scheduleColumns, args...)
	q, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return QuickSchedule{}, ErrNotFound
	}
	if err != nil {
		return QuickSchedule{}, fmt.Errorf("update quick schedule: %w", err)
	}
	return q, nil
}

func deleteSchedule(ctx context.Context, db *sql.DB, userID, id string) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM quick_schedules
		WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete quick schedule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quick schedule: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func incrementUsage(ctx context.Context, db *sql.DB, userID, id string, now time.Time) (QuickSchedule, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE quick_schedules
		SET usage_count = usage_count + 1, last_used_at = $3
		WHERE user_id = $1 AND id = $2
		RETURNING `+scheduleColumns, userID, id, now)
	q, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return QuickSchedule{}, ErrNotFound
	}
	if err != nil {
		return QuickSchedule{}, fmt.Errorf("increment quick schedule usage: %w", err)
	}
	return q, nil
}

// promoteSchedule raises the row's counter one past the user's current
// maximum so it sorts first.
func promoteSchedule(ctx context.Context, db *sql.DB, userID, id string) (QuickSchedule, error) {
	row := db.QueryRowContext(ctx, `
		UPDATE quick_schedules
		SET usage_count = (
			SELECT COALESCE(MAX(usage_count), 0) + 1
			FROM quick_schedules
			WHERE user_id = $1
		)
		WHERE user_id = $1 AND id = $2
		RETURNING `+scheduleColumns, userID, id)
	q, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return QuickSchedule{}, ErrNotFound
	}
	if err != nil {
		return QuickSchedule{}, fmt.Errorf("promote quick schedule: %w", err)
	}
	return q, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(r rowScanner) (QuickSchedule, error) {
	var q QuickSchedule
	var lastUsed sql.NullTime
	var methods []byte
	err := r.Scan(&q.ID, &q.UserID, &q.Name, &q.Icon, &q.Color,
		&q.PersonaID, &q.VoiceID, &methods, &q.ContextNote,
		&q.TimePreset, &q.VoiceCategory, &q.UsageCount,
		&lastUsed, &q.CreatedAt)
	if err != nil {
		return QuickSchedule{}, err
	}
	if lastUsed.Valid {
		q.LastUsedAt = &lastUsed.Time
	}
	q.ContactMethods = []string{}
	if len(methods) > 0 {
		if err := json.Unmarshal(methods, &q.ContactMethods); err != nil {
			return QuickSchedule{}, fmt.Errorf("decode contact methods: %w", err)
		}
	}
	return q, nil
}
