package users

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Service provides profile operations.
// All reads/writes are scoped by the caller's resolved user id.
type Service struct {
	db    *sql.DB
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

func (s *Service) Get(ctx context.Context, userID string) (User, error) {
	if userID == "" {
		return User{}, ErrInvalidArgument
	}
	return getUser(ctx, s.db, userID)
}

// Update applies only the provided fields and returns the updated row.
func (s *Service) Update(ctx context.Context, userID string, req UpdateRequest) (User, error) {
	if userID == "" {
		return User{}, ErrInvalidArgument
	}
	if req.Email == nil && req.CreatorModeEnabled == nil && req.NotificationsEnabled == nil && req.SelectedRingtone == nil {
		return User{}, ErrInvalidArgument
	}
	return updateUser(ctx, s.db, userID, req, s.clock().UTC())
}

func (s *Service) SetCreatorMode(ctx context.Context, userID string, enabled bool) (User, error) {
	return s.Update(ctx, userID, UpdateRequest{CreatorModeEnabled: &enabled})
}

func (s *Service) SetNotifications(ctx context.Context, userID string, enabled bool) (User, error) {
	return s.Update(ctx, userID, UpdateRequest{NotificationsEnabled: &enabled})
}

func (s *Service) SetRingtone(ctx context.Context, userID, ringtone string) (User, error) {
	if ringtone == "" {
		return User{}, ErrInvalidArgument
	}
	return s.Update(ctx, userID, UpdateRequest{SelectedRingtone: &ringtone})
}

// VerificationStatus reports verified state from the profile row.
// A user counts as verified once a phone number is set.
func (s *Service) VerificationStatus(ctx context.Context, userID string) (VerificationStatus, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Unknown users are reported unverified rather than erroring;
			// guests have no profile row yet.
			return VerificationStatus{}, nil
		}
		return VerificationStatus{}, err
	}
	return VerificationStatus{
		IsVerified:  u.PhoneNumber != "",
		PhoneNumber: u.PhoneNumber,
		CountryCode: u.CountryCode,
	}, nil
}
