package calls

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"queout/pkg/utils"
)

var (
	ErrNotFound        = errors.New("call not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

const defaultHistoryLimit = 50

type Service struct {
	db    *sql.DB
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

// ListUpcoming returns the user's pending calls soonest-first.
func (s *Service) ListUpcoming(ctx context.Context, userID string) ([]UpcomingCall, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	return listUpcoming(ctx, s.db, userID)
}

// ListUpcomingDetailed reads the upcoming_calls_detailed view, which joins
// persona, voice and caller id display fields onto each row.
func (s *Service) ListUpcomingDetailed(ctx context.Context, userID string) ([]UpcomingCallDetailed, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	return listUpcomingDetailed(ctx, s.db, userID)
}

// CreateUpcoming records a scheduled call. New rows start with is_new set so
// clients can animate them on first render.
func (s *Service) CreateUpcoming(ctx context.Context, userID string, req CreateRequest) (UpcomingCall, error) {
	if userID == "" || req.PersonaID == "" || req.DueTimestamp.IsZero() {
		return UpcomingCall{}, ErrInvalidArgument
	}
	if req.ContactMethods == nil {
		req.ContactMethods = []string{}
	}
	c := UpcomingCall{
		ID:              uuid.NewString(),
		UserID:          userID,
		PersonaID:       req.PersonaID,
		VoiceID:         req.VoiceID,
		CallerID:        req.CallerID,
		ContactMethods:  req.ContactMethods,
		ContextNote:     req.ContextNote,
		DurationSeconds: req.DurationSeconds,
		DueTimestamp:    req.DueTimestamp.UTC(),
		LuronCallID:     req.LuronCallID,
		IsNew:           true,
		CreatedAt:       s.clock().UTC(),
	}
	if err := insertUpcoming(ctx, s.db, c); err != nil {
		return UpcomingCall{}, err
	}
	return c, nil
}

func (s *Service) UpdateUpcoming(ctx context.Context, userID, id string, req UpdateRequest) (UpcomingCall, error) {
	if userID == "" || id == "" {
		return UpcomingCall{}, ErrInvalidArgument
	}
	return updateUpcoming(ctx, s.db, userID, id, req)
}

func (s *Service) DeleteUpcoming(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrInvalidArgument
	}
	return deleteUpcoming(ctx, s.db, userID, id)
}

// MarkNotNew clears the first-render animation flag.
func (s *Service) MarkNotNew(ctx context.Context, userID, id string) (UpcomingCall, error) {
	isNew := false
	return s.UpdateUpcoming(ctx, userID, id, UpdateRequest{IsNew: &isNew})
}

// Complete moves an upcoming call into history atomically, stamping the
// outcome and completion time. The upcoming row is gone once this returns.
func (s *Service) Complete(ctx context.Context, userID, upcomingID, status string) (HistoryEntry, error) {
	if userID == "" || upcomingID == "" {
		return HistoryEntry{}, ErrInvalidArgument
	}
	if status == "" {
		status = StatusAnswered
	}

	up, err := getUpcoming(ctx, s.db, userID, upcomingID)
	if err != nil {
		return HistoryEntry{}, err
	}

	due := up.DueTimestamp
	entry := HistoryEntry{
		ID:              uuid.NewString(),
		UserID:          userID,
		PersonaID:       up.PersonaID,
		VoiceID:         up.VoiceID,
		CallerID:        up.CallerID,
		ContactMethods:  up.ContactMethods,
		ContextNote:     up.ContextNote,
		Status:          status,
		DurationSeconds: up.DurationSeconds,
		ScheduledTime:   &due,
		CompletedAt:     s.clock().UTC(),
	}

	err = utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if err := insertHistoryTx(ctx, tx, entry); err != nil {
			return err
		}
		return deleteUpcomingTx(ctx, tx, userID, upcomingID)
	})
	if err != nil {
		return HistoryEntry{}, err
	}
	return entry, nil
}

// ListHistory returns finished calls newest-first. A non-positive limit
// falls back to the default page size.
func (s *Service) ListHistory(ctx context.Context, userID string, limit int) ([]HistoryEntry, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return listHistory(ctx, s.db, userID, limit)
}

func (s *Service) ListHistoryDetailed(ctx context.Context, userID string, limit int) ([]HistoryEntryDetailed, error) {
	if userID == "" {
		return nil, ErrInvalidArgument
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return listHistoryDetailed(ctx, s.db, userID, limit)
}

// AddHistory records a finished call directly, for calls that never had an
// upcoming row.
func (s *Service) AddHistory(ctx context.Context, userID string, req CreateRequest, status string) (HistoryEntry, error) {
	if userID == "" || req.PersonaID == "" {
		return HistoryEntry{}, ErrInvalidArgument
	}
	if status == "" {
		status = StatusAnswered
	}
	if req.ContactMethods == nil {
		req.ContactMethods = []string{}
	}
	entry := HistoryEntry{
		ID:              uuid.NewString(),
		UserID:          userID,
		PersonaID:       req.PersonaID,
		VoiceID:         req.VoiceID,
		CallerID:        req.CallerID,
		ContactMethods:  req.ContactMethods,
		ContextNote:     req.ContextNote,
		Status:          status,
		DurationSeconds: req.DurationSeconds,
		CompletedAt:     s.clock().UTC(),
	}
	if !req.DueTimestamp.IsZero() {
		due := req.DueTimestamp.UTC()
		entry.ScheduledTime = &due
	}
	if err := insertHistory(ctx, s.db, entry); err != nil {
		return HistoryEntry{}, err
	}
	return entry, nil
}

// UnreadCount reports how many history entries the user has not opened yet.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, ErrInvalidArgument
	}
	return unreadHistoryCount(ctx, s.db, userID)
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrInvalidArgument
	}
	return markAllHistoryRead(ctx, s.db, userID)
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrInvalidArgument
	}
	return markHistoryRead(ctx, s.db, userID, id)
}

func (s *Service) DeleteHistory(ctx context.Context, userID, id string) error {
	if userID == "" || id == "" {
		return ErrInvalidArgument
	}
	return deleteHistory(ctx, s.db, userID, id)
}
