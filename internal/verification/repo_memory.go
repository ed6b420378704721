package verification

import (
	"context"
	"errors"
	"sync"
	"time"
)

// MemoryRepo is an in-memory repository useful for tests.
// It is not intended for production use.
type MemoryRepo struct {
	mu   sync.Mutex
	rows []Verification

	// phones mirrors the users-table phone write: user id -> phone, country code.
	phones map[string][2]string
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{phones: make(map[string][2]string)}
}

func (r *MemoryRepo) CreatePending(ctx context.Context, v Verification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].UserID == v.UserID && r.rows[i].PhoneNumber == v.PhoneNumber && r.rows[i].Status == StatusPending {
			r.rows[i].Status = StatusSuperseded
		}
	}
	r.rows = append(r.rows, v)
	return nil
}

func (r *MemoryRepo) LatestPending(ctx context.Context, userID, phoneNumber string) (Verification, bool, error) {
	return r.latest(userID, phoneNumber, true)
}

func (r *MemoryRepo) Latest(ctx context.Context, userID, phoneNumber string) (Verification, bool, error) {
	return r.latest(userID, phoneNumber, false)
}

func (r *MemoryRepo) latest(userID, phoneNumber string, pendingOnly bool) (Verification, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out Verification
	found := false
	for _, v := range r.rows {
		if v.UserID != userID || v.PhoneNumber != phoneNumber {
			continue
		}
		if pendingOnly && v.Status != StatusPending {
			continue
		}
		if !found || v.CreatedAt.After(out.CreatedAt) {
			out = v
			found = true
		}
	}
	return out, found, nil
}

func (r *MemoryRepo) IncrementAttempts(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Attempts++
			t := at
			r.rows[i].LastAttemptAt = &t
			return nil
		}
	}
	return errors.New("verification not found")
}

func (r *MemoryRepo) SetCallID(ctx context.Context, id, callID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].LuronCallID = callID
			return nil
		}
	}
	return errors.New("verification not found")
}

func (r *MemoryRepo) MarkSuperseded(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Status = StatusSuperseded
			return nil
		}
	}
	return errors.New("verification not found")
}

func (r *MemoryRepo) MarkVerified(ctx context.Context, id, userID, phoneNumber, countryCode string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			if r.rows[i].Status != StatusPending {
				return errors.New("verification row no longer pending")
			}
			r.rows[i].Status = StatusVerified
			r.phones[userID] = [2]string{phoneNumber, countryCode}
			return nil
		}
	}
	return errors.New("verification not found")
}

// Rows returns a copy of all stored rows.
func (r *MemoryRepo) Rows() []Verification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Verification, len(r.rows))
	copy(out, r.rows)
	return out
}

// UserPhone returns the phone and country code written for a user, if any.
func (r *MemoryRepo) UserPhone(userID string) (string, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.phones[userID]
	return p[0], p[1], ok
}
