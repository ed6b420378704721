package voices

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotFound        = errors.New("voice not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// The voice catalog changes rarely, so list reads go through redis with a
// short TTL. Cache failures fall back to the database.
const (
	cacheKeyAll    = "voices:available"
	cacheKeyPrefix = "voices:category:"
	cacheTTL       = 5 * time.Minute
)

type Service struct {
	db  *sql.DB
	rdb *redis.Client
	log *slog.Logger
}

func NewService(db *sql.DB, rdb *redis.Client, log *slog.Logger) *Service {
	return &Service{db: db, rdb: rdb, log: log}
}

// ListAvailable returns every available voice grouped by category then name.
func (s *Service) ListAvailable(ctx context.Context) ([]Voice, error) {
	if out, ok := s.fromCache(ctx, cacheKeyAll); ok {
		return out, nil
	}
	out, err := listAvailable(ctx, s.db)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, cacheKeyAll, out)
	return out, nil
}

// ListByCategory returns available voices in one category sorted by name.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]Voice, error) {
	if category == "" {
		return nil, ErrInvalidArgument
	}
	key := cacheKeyPrefix + category
	if out, ok := s.fromCache(ctx, key); ok {
		return out, nil
	}
	out, err := listByCategory(ctx, s.db, category)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, key, out)
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Voice, error) {
	if id == "" {
		return Voice{}, ErrInvalidArgument
	}
	return getVoice(ctx, s.db, id)
}

func (s *Service) fromCache(ctx context.Context, key string) ([]Voice, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.log != nil {
			s.log.Warn("voice cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var out []Voice
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *Service) toCache(ctx context.Context, key string, voices []Voice) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(voices)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil && s.log != nil {
		s.log.Warn("voice cache write failed", "key", key, "error", err)
	}
}
