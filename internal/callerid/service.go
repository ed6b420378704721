package callerid

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("caller id not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Service struct {
	db    *sql.DB
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

// List returns the user's caller ids oldest-first, seeding the default set on
// first use so new accounts never see an empty list.
func (s *Service) List(ctx context.Context, userID string) ([]CallerID, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	out, err := listCallerIDs(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}
	if len(out) > 0 {
		return out, nil
	}

	now := s.clock().UTC()
	seed := make([]CallerID, len(defaultSet))
	for i, d := range defaultSet {
		d.ID = uuid.NewString()
		d.UserID = userID
		d.IsDefault = true
		d.CreatedAt = now
		seed[i] = d
	}
	if err := insertCallerIDs(ctx, s.db, seed); err != nil {
		return nil, err
	}
	return listCallerIDs(ctx, s.db, userID)
}

func (s *Service) Get(ctx context.Context, userID, id string) (CallerID, error) {
	if userID == "" || id == "" {
		return CallerID{}, ErrInvalidArgument
	}
	return getCallerID(ctx, s.db, userID, id)
}

func (s *Service) Create(ctx context.Context, userID, name, phoneNumber, location string) (CallerID, error) {
	if userID == "" || name == "" || phoneNumber == "" {
		return CallerID{}, ErrInvalidArgument
	}
	c := CallerID{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		PhoneNumber: phoneNumber,
		Location:    location,
		CreatedAt:   s.clock().UTC(),
	}
	if err := insertCallerIDs(ctx, s.db, []CallerID{c}); err != nil {
		return CallerID{}, err
	}
	return c, nil
}

// Rename changes only the display name and returns the updated row.
func (s *Service) Rename(ctx context.Context, userID, id, name string) (CallerID, error) {
	if userID == "" || id == "" || name == "" {
		return CallerID{}, ErrInvalidArgument
	}
	return renameCallerID(ctx, s.db, userID, id, name)
}

// Delete removes a user-created caller id. Seeded defaults are excluded by
// the query filter and report ErrNotFound.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrInvalidArgument
	}
	return deleteCallerID(ctx, s.db, userID, id)
}
