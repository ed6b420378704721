package persona

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const personaColumns = `id, user_id, name, COALESCE(icon, ''), COALESCE(color, ''), is_default, created_at`

func listPersonas(ctx context.Context, db *sql.DB, userID string) ([]Persona, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+personaColumns+`
		FROM personas
		WHERE is_default = true OR user_id = $1
		ORDER BY is_default DESC, created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	defer rows.Close()

	var out []Persona
	for rows.Next() {
		p, err := scanPersona(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func getPersona(ctx context.Context, db *sql.DB, id string) (Persona, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+personaColumns+`
		FROM personas
		WHERE id = $1`, id)
	p, err := scanPersona(row)
	if err == sql.ErrNoRows {
		return Persona{}, ErrNotFound
	}
	if err != nil {
		return Persona{}, fmt.Errorf("get persona: %w", err)
	}
	return p, nil
}

func insertPersona(ctx context.Context, db *sql.DB, p Persona) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO personas (id, user_id, name, icon, color, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, false, $6)`,
		p.ID, p.UserID, p.Name, p.Icon, p.Color, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert persona: %w", err)
	}
	return nil
}

func updatePersona(ctx context.Context, db *sql.DB, userID, id string, req UpdateRequest) (Persona, error) {
	set := ""
	args := []any{id, userID}
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

	row := db.QueryRowContext(ctx, `
		UPDATE personas SET `+set+`
		WHERE id = $1 AND user_id = $2
		RETURNING `+personaColumns, args...)
	p, err := scanPersona(row)
	if err == sql.ErrNoRows {
		return Persona{}, ErrNotFound
	}
	if err != nil {
		return Persona{}, fmt.Errorf("update persona: %w", err)
	}
	return p, nil
}

func deletePersona(ctx context.Context, db *sql.DB, userID, id string) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM personas
		WHERE id = $1 AND user_id = $2 AND is_default = false`, id, userID)
	if err != nil {
		return fmt.Errorf("delete persona: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete persona: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const configColumns = `id, persona_id, user_id, COALESCE(tone, ''), COALESCE(background, ''), duration, custom_phrases, updated_at`

// getConfig prefers the user's own row, falling back to the global default
// row (nil user_id) when no override exists.
func getConfig(ctx context.Context, db *sql.DB, userID, personaID string) (Config, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+configColumns+`
		FROM persona_configs
		WHERE persona_id = $1 AND (user_id = $2 OR user_id IS NULL)
		ORDER BY user_id NULLS LAST
		LIMIT 1`, personaID, userID)
	return scanConfig(row)
}

func listConfigs(ctx context.Context, db *sql.DB, userID string) ([]Config, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+configColumns+`
		FROM persona_configs
		WHERE user_id = $1 OR user_id IS NULL`, userID)
	if err != nil {
		return nil, fmt.Errorf("list persona configs: %w", err)
	}
	defer rows.Close()

	var out []Config
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func upsertConfig(ctx context.Context, db *sql.DB, userID, personaID string, in ConfigInput, now time.Time) (Config, error) {
	phrases, err := json.Marshal(in.CustomPhrases)
	if err != nil {
		return Config{}, fmt.Errorf("encode custom phrases: %w", err)
	}
	row := db.QueryRowContext(ctx, `
		INSERT INTO persona_configs (id, persona_id, user_id, tone, background, duration, custom_phrases, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (persona_id, user_id) DO UPDATE SET
			tone = EXCLUDED.tone,
			background = EXCLUDED.background,
			duration = EXCLUDED.duration,
			custom_phrases = EXCLUDED.custom_phrases,
			updated_at = EXCLUDED.updated_at
		RETURNING `+configColumns,
		uuid.NewString(), personaID, userID, in.Tone, in.Background, in.Duration, phrases, now)
	c, err := scanConfig(row)
	if err != nil {
		return Config{}, fmt.Errorf("upsert persona config: %w", err)
	}
	return c, nil
}

func deleteConfig(ctx context.Context, db *sql.DB, userID, personaID string) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM persona_configs
		WHERE persona_id = $1 AND user_id = $2`, personaID, userID)
	if err != nil {
		return fmt.Errorf("delete persona config: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete persona config: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPersona(r rowScanner) (Persona, error) {
	var p Persona
	var userID sql.NullString
	if err := r.Scan(&p.ID, &userID, &p.Name, &p.Icon, &p.Color, &p.IsDefault, &p.CreatedAt); err != nil {
		return Persona{}, err
	}
	if userID.Valid {
		p.UserID = &userID.String
	}
	return p, nil
}

func scanConfig(r rowScanner) (Config, error) {
	var c Config
	var userID sql.NullString
	var phrases []byte
	if err := r.Scan(&c.ID, &c.PersonaID, &userID, &c.Tone, &c.Background, &c.Duration, &phrases, &c.UpdatedAt); err != nil {
		return Config{}, err
	}
	if userID.Valid {
		c.UserID = &userID.String
	}
	c.CustomPhrases = []string{}
	if len(phrases) > 0 {
		if err := json.Unmarshal(phrases, &c.CustomPhrases); err != nil {
			return Config{}, fmt.Errorf("decode custom phrases: %w", err)
		}
	}
	return c, nil
}
