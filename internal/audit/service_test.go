package audit

import (
	"context"
	"testing"
	"time"
)

func TestRecord_FillsIDAndTimestamp(t *testing.T) {
	repo := NewMemoryRepo()
	svc := NewService(repo)
	svc.clock = func() time.Time { return time.Unix(1700000000, 0).UTC() }

	err := svc.Record(context.Background(), Event{
		UserID: "u1",
		Type:   EventTypeVerificationRequested,
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	events := repo.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !e.CreatedAt.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Fatalf("unexpected created_at: %v", e.CreatedAt)
	}
}

func TestRecord_RejectsInvalidEvents(t *testing.T) {
	svc := NewService(NewMemoryRepo())

	if err := svc.Record(context.Background(), Event{Type: EventTypeCallScheduled}); err != ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent for missing user, got %v", err)
	}
	if err := svc.Record(context.Background(), Event{UserID: "u1"}); err != ErrInvalidEvent {
		t.Fatalf("expected ErrInvalidEvent for missing type, got %v", err)
	}
}
