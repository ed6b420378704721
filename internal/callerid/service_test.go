package callerid

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
	if _, err := svc.Create(ctx, "u1", "", "(555) 000-0000", ""); err != ErrInvalidArgument {
		t.Fatalf("Create without name: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", "Mom", "", ""); err != ErrInvalidArgument {
		t.Fatalf("Create without number: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Rename(ctx, "u1", "c1", ""); err != ErrInvalidArgument {
		t.Fatalf("Rename empty: expected ErrInvalidArgument, got %v", err)
	}
	if err := svc.Delete(ctx, "", "c1"); err != ErrInvalidArgument {
		t.Fatalf("Delete: expected ErrInvalidArgument, got %v", err)
	}
}

func TestDefaultSet_Shape(t *testing.T) {
	if len(defaultSet) != 5 {
		t.Fatalf("expected 5 seeded caller ids, got %d", len(defaultSet))
	}
	for _, d := range defaultSet {
		if d.Name == "" || d.PhoneNumber == "" {
			t.Fatalf("seed entries need name and number: %+v", d)
		}
	}
}
