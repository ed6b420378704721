package users

import (
	"context"
	"database/sql"
	"testing"
)

// End-to-end behavior needs Postgres; these cover input validation only,
// which never reaches the database.

func TestService_Get_RejectsEmptyUserID(t *testing.T) {
	svc := NewService((*sql.DB)(nil))
	if _, err := svc.Get(context.Background(), ""); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestService_Update_RejectsEmptyChangeSet(t *testing.T) {
	svc := NewService((*sql.DB)(nil))
	if _, err := svc.Update(context.Background(), "u1", UpdateRequest{}); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument for no-op update, got %v", err)
	}
}

func TestService_SetRingtone_RejectsEmpty(t *testing.T) {
	svc := NewService((*sql.DB)(nil))
	if _, err := svc.SetRingtone(context.Background(), "u1", ""); err != ErrInvalidArgument {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
