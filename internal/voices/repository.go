package voices

import (
	"context"
	"database/sql"
	"fmt"
)

const voiceColumns = `id, name, category, COALESCE(description, ''), COALESCE(preview_url, ''), is_available`

func listAvailable(ctx context.Context, db *sql.DB) ([]Voice, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+voiceColumns+`
		FROM voices
		WHERE is_available = true
		ORDER BY category ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list voices: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func listByCategory(ctx context.Context, db *sql.DB, category string) ([]Voice, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+voiceColumns+`
		FROM voices
		WHERE category = $1 AND is_available = true
		ORDER BY name ASC`, category)
	if err != nil {
		return nil, fmt.Errorf("list voices by category: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

func getVoice(ctx context.Context, db *sql.DB, id string) (Voice, error) {
	var v Voice
	err := db.QueryRowContext(ctx, `
		SELECT `+voiceColumns+`
		FROM voices
		WHERE id = $1`, id).
		Scan(&v.ID, &v.Name, &v.Category, &v.Description, &v.PreviewURL, &v.IsAvailable)
	if err == sql.ErrNoRows {
		return Voice{}, ErrNotFound
	}
	if err != nil {
		return Voice{}, fmt.Errorf("get voice: %w", err)
	}
	return v, nil
}

func collect(rows *sql.Rows) ([]Voice, error) {
	var out []Voice
	for rows.Next() {
		var v Voice
		if err := rows.Scan(&v.ID, &v.Name, &v.Category, &v.Description, &v.PreviewURL, &v.IsAvailable); err != nil {
			return nil, fmt.Errorf("scan voice: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
