package persona

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
	if _, err := svc.Create(ctx, "u1", "", "💼", ""); err != ErrInvalidArgument {
		t.Fatalf("Create without name: expected ErrInvalidArgument, got %v", err)
	}
	empty := ""
	if _, err := svc.Update(ctx, "u1", "p1", UpdateRequest{Name: &empty}); err != ErrInvalidArgument {
		t.Fatalf("Update to empty name: expected ErrInvalidArgument, got %v", err)
	}
	name := "Boss"
	if _, err := svc.Update(ctx, "", "p1", UpdateRequest{Name: &name}); err != ErrInvalidArgument {
		t.Fatalf("Update without owner: expected ErrInvalidArgument, got %v", err)
	}
	if err := svc.Delete(ctx, "", "p1"); err != ErrInvalidArgument {
		t.Fatalf("Delete without owner: expected ErrInvalidArgument, got %v", err)
	}
	if _, _, err := svc.GetConfig(ctx, "u1", ""); err != ErrInvalidArgument {
		t.Fatalf("GetConfig: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.UpsertConfig(ctx, "u1", "p1", ConfigInput{Duration: -5}); err != ErrInvalidArgument {
		t.Fatalf("UpsertConfig negative duration: expected ErrInvalidArgument, got %v", err)
	}
	if err := svc.DeleteConfig(ctx, "", "p1"); err != ErrInvalidArgument {
		t.Fatalf("DeleteConfig: expected ErrInvalidArgument, got %v", err)
	}
}
