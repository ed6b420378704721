package voices

import (
	"context"
	"database/sql"
	"testing"
)

func TestService_RejectsInvalidArgs(t *testing.T) {
	svc := NewService((*sql.DB)(nil), nil, nil)
	ctx := context.Background()

	if _, err := svc.ListByCategory(ctx, ""); err != ErrInvalidArgument {
		t.Fatalf("ListByCategory: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.Get(ctx, ""); err != ErrInvalidArgument {
		t.Fatalf("Get: expected ErrInvalidArgument, got %v", err)
	}
}

func TestCache_NilClientIsSkipped(t *testing.T) {
	svc := NewService((*sql.DB)(nil), nil, nil)
	if _, ok := svc.fromCache(context.Background(), cacheKeyAll); ok {
		t.Fatal("nil redis client must miss")
	}
	// Must not panic.
	svc.toCache(context.Background(), cacheKeyAll, []Voice{{ID: "emma"}})
}
