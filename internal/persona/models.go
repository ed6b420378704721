package persona

import "time"

// Persona is a caller character the app can impersonate. Default personas
// are shared across all users and carry a nil UserID.
type Persona struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"user_id,omitempty"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// Config holds per-persona call behavior. A row with a nil UserID is the
// global default; a row with a UserID overrides it for that user only.
type Config struct {
	ID            string    `json:"id"`
	PersonaID     string    `json:"persona_id"`
	UserID        *string   `json:"user_id,omitempty"`
	Tone          string    `json:"tone"`
	Background    string    `json:"background"`
	Duration      int       `json:"duration"`
	CustomPhrases []string  `json:"custom_phrases"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ConfigInput is the caller-supplied portion of a Config upsert.
type ConfigInput struct {
	Tone          string   `json:"tone"`
	Background    string   `json:"background"`
	Duration      int      `json:"duration"`
	CustomPhrases []string `json:"custom_phrases"`
}

// UpdateRequest carries optional persona field changes. Nil fields keep
// their current value.
type UpdateRequest struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}
