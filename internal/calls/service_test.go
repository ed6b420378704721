package calls

import (
	"context"
	"database/sql"
	"testing"
)

func TestService_RejectsInvalidArgs(t *testing.T) {
	svc := NewService((*sql.DB)(nil))
	ctx := context.Background()

	if _, err := svc.ListUpcoming(ctx, ""); err != ErrInvalidArgument {
		t.Fatalf("ListUpcoming: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.CreateUpcoming(ctx, "u1", CreateRequest{}); err != ErrInvalidArgument {
		t.Fatalf("CreateUpcoming without persona: expected ErrInvalidArgument, got %v", err)
	}
	req := CreateRequest{PersonaID: "manager"}
	if _, err := svc.CreateUpcoming(ctx, "u1", req); err != ErrInvalidArgument {
		t.Fatalf("CreateUpcoming without due time: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Complete(ctx, "u1", "", StatusAnswered); err != ErrInvalidArgument {
		t.Fatalf("Complete without id: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.AddHistory(ctx, "", CreateRequest{PersonaID: "mom"}, ""); err != ErrInvalidArgument {
		t.Fatalf("AddHistory without user: expected ErrInvalidArgument, got %v", err)
	}
	if err := svc.MarkRead(ctx, "u1", ""); err != ErrInvalidArgument {
		t.Fatalf("MarkRead: expected ErrInvalidArgument, got %v", err)
	}
}

func TestDecodeMethods(t *testing.T) {
	got, err := decodeMethods([]byte(`["call","text"]`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0] != "call" || got[1] != "text" {
		t.Fatalf("unexpected methods: %v", got)
	}

	got, err = decodeMethods(nil)
	if err != nil {
		t.Fatalf("decode nil: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("nil input should yield empty non-nil slice, got %#v", got)
	}
}
