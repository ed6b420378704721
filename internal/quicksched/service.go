package quicksched

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("quick schedule not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Service struct {
	db    *sql.DB
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

// List returns the user's presets most-used first, seeding the default set
// on first use.
func (s *Service) List(ctx context.Context, userID string) ([]QuickSchedule, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	out, err := listSchedules(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		return out, nil
	}

	now := s.clock().UTC()
	seed := make([]QuickSchedule, len(defaultSet))
	for i, d := range defaultSet {
		d.ID = uuid.NewString()
		d.UserID = userID
		d.CreatedAt = now
		seed[i] = d
	}
	if err := insertSchedules(ctx, s.db, seed); err != nil {
		return nil, err
	}
	return listSchedules(ctx, s.db, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (QuickSchedule, error) {
	if userID == "" || id == "" {
		return QuickSchedule{}, ErrInvalidArgument
	}
	return getSchedule(ctx, s.db, userID, id)
}

func (s *Service) Create(ctx context.Context, userID string, q QuickSchedule) (QuickSchedule, error) {
	if userID == "" || q.Name == "" || q.PersonaID == "" {
		return QuickSchedule{}, ErrInvalidArgument
	}
	q.ID = uuid.NewString()
	q.UserID = userID
	q.UsageCount = 0
	q.LastUsedAt = nil
	q.CreatedAt = s.clock().UTC()
	if q.ContactMethods == nil {
		q.ContactMethods = []string{}
	}
	if q.TimePreset == "" {
		q.TimePreset = "now"
	}
	if err := insertSchedules(ctx, s.db, []QuickSchedule{q}); err != nil {
		return QuickSchedule{}, err
	}
	return q, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, req UpdateRequest) (QuickSchedule, error) {
	if userID == "" || id == "" {
		return QuickSchedule{}, ErrInvalidArgument
	}
	if req.Name != nil && *req.Name == "" {
		return QuickSchedule{}, ErrInvalidArgument
	}
	return updateSchedule(ctx, s.db, userID, id, req)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrInvalidArgument
	}
	return deleteSchedule(ctx, s.db, userID, id)
}

// IncrementUsage bumps the preset's use counter and stamps last_used_at,
// which floats it up the most-used ordering.
func (s *Service) IncrementUsage(ctx context.Context, userID, id string) (QuickSchedule, error) {
	if userID == "" || id == "" {
		return QuickSchedule{}, ErrInvalidArgument
	}
	return incrementUsage(ctx, s.db, userID, id, s.clock().UTC())
}

// Promote pins a preset to the top of the list by raising its counter past
// the current maximum.
func (s *Service) Promote(ctx context.Context, userID, id string) (QuickSchedule, error) {
	if userID == "" || id == "" {
		return QuickSchedule{}, ErrInvalidArgument
	}
	return promoteSchedule(ctx, s.db, userID, id)
}
