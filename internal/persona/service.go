package persona

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("persona not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Service struct {
	db    *sql.DB
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

// List returns the shared default personas followed by the user's custom
// ones, each group oldest-first.
func (s *Service) List(ctx context.Context, userID string) ([]Persona, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	return listPersonas(ctx, s.db, userID)
}

func (s *Service) Get(ctx context.Context, id string) (Persona, error) {
	if id == "" {
		return Persona{}, ErrInvalidArgument
	}
	return getPersona(ctx, s.db, id)
}

// Create adds a custom persona owned by the user. Custom personas are never
// marked default, so they stay deletable.
func (s *Service) Create(ctx context.Context, userID, name, icon, color string) (Persona, error) {
	if userID == "" || name == "" {
		return Persona{}, ErrInvalidArgument
	}
	p := Persona{
		ID:        uuid.NewString(),
		UserID:    &userID,
		Name:      name,
		Icon:      icon,
		Color:     color,
		CreatedAt: s.clock().UTC(),
	}
	if err := insertPersona(ctx, s.db, p); err != nil {
		return Persona{}, err
	}
	return p, nil
}

// Update changes a custom persona the user owns. Shared defaults carry a
// nil user id, so the ownership filter also keeps them immutable.
func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (Persona, error) {
	if userID == "" || id == "" {
		return Persona{}, ErrInvalidArgument
	}
	if req.Name == nil && req.Icon == nil && req.Color == nil {
		return getPersona(ctx, s.db, id)
	}
	if req.Name != nil && *req.Name == "" {
		return Persona{}, ErrInvalidArgument
	}
	return updatePersona(ctx, s.db, userID, id, req)
}

// Delete removes a custom persona the user owns. Defaults and other users'
// personas are excluded by the query filter and report ErrNotFound.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrInvalidArgument
	}
	return deletePersona(ctx, s.db, userID, id)
}

// GetConfig resolves the effective config for a persona, preferring the
// user's own row over the global default. A persona with no config at all
// yields a zero Config and ok=false rather than an error.
func (s *Service) GetConfig(ctx context.Context, userID, personaID string) (Config, bool, error) {
	if userID == "" || personaID == "" {
		return Config{}, false, ErrInvalidArgument
	}
	cfg, err := getConfig(ctx, s.db, userID, personaID)
	if errors.Is(err, sql.ErrNoRows) {
		return Config{}, false, nil
	}
	if err != nil {
		return Config{}, false, err
	}
	return cfg, true, nil
}

// ListConfigs returns every config visible to the user keyed by persona id.
// When both a global and a user row exist for a persona the user row wins.
func (s *Service) ListConfigs(ctx context.Context, userID string) (map[string]Config, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	rows, err := listConfigs(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Config, len(rows))
	for _, c := range rows {
		prev, seen := out[c.PersonaID]
		if seen && prev.UserID != nil && c.UserID == nil {
			continue
		}
		out[c.PersonaID] = c
	}
	return out, nil
}

// UpsertConfig creates or replaces the user's config row for a persona.
func (s *Service) UpsertConfig(ctx context.Context, userID, personaID string, in ConfigInput) (Config, error) {
	if userID == "" || personaID == "" {
		return Config{}, ErrInvalidArgument
	}
	if in.Duration < 0 {
		return Config{}, ErrInvalidArgument
	}
	if in.CustomPhrases == nil {
		in.CustomPhrases = []string{}
	}
	return upsertConfig(ctx, s.db, userID, personaID, in, s.clock().UTC())
}

func (s *Service) DeleteConfig(ctx context.Context, userID, personaID string) error {
	if userID == "" || personaID == "" {
		return ErrInvalidArgument
	}
	return deleteConfig(ctx, s.db, userID, personaID)
}
