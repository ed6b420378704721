package quicksched

import (
	"context"
	"database/sql"
	"testing"
)

func TestService_RejectsInvalidArgs(t *testing.T) {
	svc := NewService((*sql.DB)(nil))
	ctx := context.Background()

	if _, err := svc.List(ctx, ""); err != ErrInvalidArgument {
		t.Fatalf("List: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", QuickSchedule{Name: "Boss"}); err != ErrInvalidArgument {
		t.Fatalf("Create without persona: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", QuickSchedule{PersonaID: "boss"}); err != ErrInvalidArgument {
		t.Fatalf("Create without name: expected ErrInvalidArgument, got %v", err)
	}
	empty := ""
	if _, err := svc.Update(ctx, "u1", "q1", UpdateRequest{Name: &empty}); err != ErrInvalidArgument {
		t.Fatalf("Update to empty name: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.IncrementUsage(ctx, "u1", ""); err != ErrInvalidArgument {
		t.Fatalf("IncrementUsage: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Promote(ctx, "", "q1"); err != ErrInvalidArgument {
		t.Fatalf("Promote: expected ErrInvalidArgument, got %v", err)
	}
}

func TestDefaultSet_Shape(t *testing.T) {
	if len(defaultSet) != 4 {
		t.Fatalf("expected 4 seeded presets, got %d", len(defaultSet))
	}
	for _, d := range defaultSet {
		if d.Name == "" || d.PersonaID == "" || d.VoiceID == "" {
			t.Fatalf("seed entries need name, persona and voice: %+v", d)
		}
		if d.TimePreset != "now" {
			t.Fatalf("seed presets schedule immediately, got %q", d.TimePreset)
		}
		if len(d.ContactMethods) == 0 {
			t.Fatalf("seed entries need at least one contact method: %+v", d)
		}
	}
}
