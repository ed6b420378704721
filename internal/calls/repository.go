package calls

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

const upcomingColumns = `id, user_id, persona_id, COALESCE(voice_id, ''), caller_id,
	contact_methods, COALESCE(context_note, ''), duration_seconds, due_timestamp,
	luron_call_id, is_new, created_at`

func listUpcoming(ctx context.Context, db *sql.DB, userID string) ([]UpcomingCall, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+upcomingColumns+`
		FROM upcoming_calls
		WHERE user_id = $1
		ORDER BY due_timestamp ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list upcoming calls: %w", err)
	}
	defer rows.Close()

	var out []UpcomingCall
	for rows.Next() {
		c, err := scanUpcoming(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func listUpcomingDetailed(ctx context.Context, db *sql.DB, userID string) ([]UpcomingCallDetailed, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+upcomingColumns+`,
			COALESCE(persona_name, ''), COALESCE(persona_icon, ''),
			COALESCE(voice_name, ''), COALESCE(caller_name, ''), COALESCE(caller_number, '')
		FROM upcoming_calls_detailed
		WHERE user_id = $1
		ORDER BY due_timestamp ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list upcoming calls detailed: %w", err)
	}
	defer rows.Close()

	var out []UpcomingCallDetailed
	for rows.Next() {
		var d UpcomingCallDetailed
		var callerID, luronID sql.NullString
		var methods []byte
		if err := rows.Scan(&d.ID, &d.UserID, &d.PersonaID, &d.VoiceID, &callerID,
			&methods, &d.ContextNote, &d.DurationSeconds, &d.DueTimestamp,
			&luronID, &d.IsNew, &d.CreatedAt,
			&d.PersonaName, &d.PersonaIcon, &d.VoiceName, &d.CallerName, &d.CallerNumber); err != nil {
			return nil, fmt.Errorf("scan upcoming call detailed: %w", err)
		}
		if callerID.Valid {
			d.CallerID = &callerID.String
		}
		if luronID.Valid {
			d.LuronCallID = &luronID.String
		}
		if d.ContactMethods, err = decodeMethods(methods); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func getUpcoming(ctx context.Context, db *sql.DB, userID, id string) (UpcomingCall, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+upcomingColumns+`
		FROM upcoming_calls
		WHERE user_id = $1 AND id = $2`, userID, id)
	c, err := scanUpcoming(row)
	if err == sql.ErrNoRows {
		return UpcomingCall{}, ErrNotFound
	}
	if err != nil {
		return UpcomingCall{}, fmt.Errorf("get upcoming call: %w", err)
	}
	return c, nil
}

func insertUpcoming(ctx context.Context, db *sql.DB, c UpcomingCall) error {
	methods, err := json.Marshal(c.ContactMethods)
	if err != nil {
		return fmt.Errorf("encode contact methods: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO upcoming_calls
			(id, user_id, persona_id, voice_id, caller_id, contact_methods,
			 context_note, duration_seconds, due_timestamp, luron_call_id, is_new, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.UserID, c.PersonaID, c.VoiceID, c.CallerID, methods,
		c.ContextNote, c.DurationSeconds, c.DueTimestamp, c.LuronCallID, c.IsNew, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert upcoming call: %w", err)
	}
	return nil
}

func updateUpcoming(ctx context.Context, db *sql.DB, userID, id string, req UpdateRequest) (UpcomingCall, error) {
	set := ""
	args := []any{userID, id}
	add := func(col string, v any) {
		args = append(args, v)
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", col, len(args))
	}
	if req.PersonaID != nil {
		add("persona_id", *req.PersonaID)
	}
	if req.VoiceID != nil {
		add("voice_id", *req.VoiceID)
	}
	if req.CallerID != nil {
		add("caller_id", *req.CallerID)
	}
	if req.ContactMethods != nil {
		methods, err := json.Marshal(req.ContactMethods)
		if err != nil {
			return UpcomingCall{}, fmt.Errorf("encode contact methods: %w", err)
		}
		add("contact_methods", methods)
	}
	if req.ContextNote != nil {
		add("context_note", *req.ContextNote)
	}
	if req.DurationSeconds != nil {
		add("duration_seconds", *req.DurationSeconds)
	}
	if req.DueTimestamp != nil {
		add("due_timestamp", req.DueTimestamp.UTC())
	}
	if req.IsNew != nil {
		add("is_new", *req.IsNew)
	}
	if set == "" {
		return getUpcoming(ctx, db, userID, id)
	}

	row := db.QueryRowContext(ctx, `
		UPDATE upcoming_calls SET `+set+`
		WHERE user_id = $1 AND id = $2
		RETURNING `+upcomingColumns, args...)
	c, err := scanUpcoming(row)
	if err == sql.ErrNoRows {
		return UpcomingCall{}, ErrNotFound
	}
	if err != nil {
		return UpcomingCall{}, fmt.Errorf("update upcoming call: %w", err)
	}
	return c, nil
}

func deleteUpcoming(ctx context.Context, db *sql.DB, userID, id string) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM upcoming_calls
		WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete upcoming call: %w", err)
	}
	return requireRow(res)
}

func deleteUpcomingTx(ctx context.Context, tx *sql.Tx, userID, id string) error {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM upcoming_calls
		WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete upcoming call: %w", err)
	}
	return requireRow(res)
}

const historyColumns = `id, user_id, persona_id, COALESCE(voice_id, ''), caller_id,
	contact_methods, COALESCE(context_note, ''), status, duration_seconds,
	scheduled_time, completed_at, is_read`

func listHistory(ctx context.Context, db *sql.DB, userID string, limit int) ([]HistoryEntry, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+historyColumns+`
		FROM call_history
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list call history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		e, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func listHistoryDetailed(ctx context.Context, db *sql.DB, userID string, limit int) ([]HistoryEntryDetailed, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+historyColumns+`,
			COALESCE(persona_name, ''), COALESCE(persona_icon, ''),
			COALESCE(voice_name, ''), COALESCE(caller_name, ''), COALESCE(caller_number, '')
		FROM call_history_detailed
		WHERE user_id = $1
		ORDER BY completed_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list call history detailed: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntryDetailed
	for rows.Next() {
		var d HistoryEntryDetailed
		var callerID sql.NullString
		var scheduled sql.NullTime
		var methods []byte
		if err := rows.Scan(&d.ID, &d.UserID, &d.PersonaID, &d.VoiceID, &callerID,
			&methods, &d.ContextNote, &d.Status, &d.DurationSeconds,
			&scheduled, &d.CompletedAt, &d.IsRead,
			&d.PersonaName, &d.PersonaIcon, &d.VoiceName, &d.CallerName, &d.CallerNumber); err != nil {
			return nil, fmt.Errorf("scan call history detailed: %w", err)
		}
		if callerID.Valid {
			d.CallerID = &callerID.String
		}
		if scheduled.Valid {
			d.ScheduledTime = &scheduled.Time
		}
		if d.ContactMethods, err = decodeMethods(methods); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func insertHistory(ctx context.Context, db *sql.DB, e HistoryEntry) error {
	methods, err := json.Marshal(e.ContactMethods)
	if err != nil {
		return fmt.Errorf("encode contact methods: %w", err)
	}
	_, err = db.ExecContext(ctx, insertHistorySQL,
		e.ID, e.UserID, e.PersonaID, e.VoiceID, e.CallerID, methods,
		e.ContextNote, e.Status, e.DurationSeconds, e.ScheduledTime, e.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert call history: %w", err)
	}
	return nil
}

func insertHistoryTx(ctx context.Context, tx *sql.Tx, e HistoryEntry) error {
	methods, err := json.Marshal(e.ContactMethods)
	if err != nil {
		return fmt.Errorf("encode contact methods: %w", err)
	}
	_, err = tx.ExecContext(ctx, insertHistorySQL,
		e.ID, e.UserID, e.PersonaID, e.VoiceID, e.CallerID, methods,
		e.ContextNote, e.Status, e.DurationSeconds, e.ScheduledTime, e.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert call history: %w", err)
	}
	return nil
}

const insertHistorySQL = `
	INSERT INTO call_history
		(id, user_id, persona_id, voice_id, caller_id, contact_methods,
		 context_note, status, duration_seconds, scheduled_time, completed_at, is_read)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false)`

func unreadHistoryCount(ctx context.Context, db *sql.DB, userID string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM call_history
		WHERE user_id = $1 AND is_read = false`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread history: %w", err)
	}
	return n, nil
}

func markAllHistoryRead(ctx context.Context, db *sql.DB, userID string) error {
	_, err := db.ExecContext(ctx, `
		UPDATE call_history SET is_read = true
		WHERE user_id = $1 AND is_read = false`, userID)
	if err != nil {
		return fmt.Errorf("mark history read: %w", err)
	}
	return nil
}

func markHistoryRead(ctx context.Context, db *sql.DB, userID, id string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE call_history SET is_read = true
		WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("mark history item read: %w", err)
	}
	return requireRow(res)
}

func deleteHistory(ctx context.Context, db *sql.DB, userID, id string) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM call_history
		WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete history item: %w", err)
	}
	return requireRow(res)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUpcoming(r rowScanner) (UpcomingCall, error) {
	var c UpcomingCall
	var callerID, luronID sql.NullString
	var methods []byte
	err := r.Scan(&c.ID, &c.UserID, &c.PersonaID, &c.VoiceID, &callerID,
		&methods, &c.ContextNote, &c.DurationSeconds, &c.DueTimestamp,
		&luronID, &c.IsNew, &c.CreatedAt)
	if err != nil {
		return UpcomingCall{}, err
	}
	if callerID.Valid {
		c.CallerID = &callerID.String
	}
	if luronID.Valid {
		c.LuronCallID = &luronID.String
	}
	if c.ContactMethods, err = decodeMethods(methods); err != nil {
		return UpcomingCall{}, err
	}
	return c, nil
}

func scanHistory(r rowScanner) (HistoryEntry, error) {
	var e HistoryEntry
	var callerID sql.NullString
	var scheduled sql.NullTime
	var methods []byte
	err := r.Scan(&e.ID, &e.UserID, &e.PersonaID, &e.VoiceID, &callerID,
		&methods, &e.ContextNote, &e.Status, &e.DurationSeconds,
		&scheduled, &e.CompletedAt, &e.IsRead)
	if err != nil {
		return HistoryEntry{}, err
	}
	if callerID.Valid {
		e.CallerID = &callerID.String
	}
	if scheduled.Valid {
		e.ScheduledTime = &scheduled.Time
	}
	if e.ContactMethods, err = decodeMethods(methods); err != nil {
		return HistoryEntry{}, err
	}
	return e, nil
}

func decodeMethods(raw []byte) ([]string, error) {
	out := []string{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode contact methods: %w", err)
	}
	return out, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
