package subscription

import (
	"context"
	"database/sql"
	"testing"
)

func TestService_RejectsInvalidArgs(t *testing.T) {
	svc := NewService((*sql.DB)(nil))
	ctx := context.Background()

	if _, _, err := svc.Get(ctx, ""); err != ErrInvalidArgument {
		t.Fatalf("Get: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.CanUse(ctx, "u1", ""); err != ErrInvalidArgument {
		t.Fatalf("CanUse without method: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.UpdateTier(ctx, "u1", "platinum", CycleMonthly, nil); err != ErrInvalidArgument {
		t.Fatalf("UpdateTier unknown tier: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.UpdateTier(ctx, "u1", TierPlus, "weekly", nil); err != ErrInvalidArgument {
		t.Fatalf("UpdateTier unknown cycle: expected ErrInvalidArgument, got %v", err)
	}
	if _, err := svc.AddTopUp(ctx, "u1", 0); err != ErrInvalidArgument {
		t.Fatalf("AddTopUp zero amount: expected ErrInvalidArgument, got %v", err)
	}
}

// Identities with no plan row schedule against the implicit free tier, so
// a fresh guest can place a call before any subscription exists.
func TestCanUse_NoRowFallsBackToFreeTier(t *testing.T) {
	sub := freeTierDefaults()
	if sub.Tier != TierFree {
		t.Fatalf("expected free tier, got %q", sub.Tier)
	}
	if !canUseMethod(sub, "call") {
		t.Fatal("free tier must allow the first call")
	}
	if canUseMethod(sub, "text") {
		t.Fatal("free tier has no text allowance")
	}
	if !canUseMethod(sub, "email") {
		t.Fatal("email is never metered")
	}
}

func TestCanUseMethod(t *testing.T) {
	plus := Subscription{Tier: TierPlus, CallsRemaining: 0, TextsRemaining: 0}
	if canUseMethod(plus, "call") {
		t.Fatal("exhausted calls must block even on plus")
	}
	if !canUseMethod(plus, "text") {
		t.Fatal("plus texts are unmetered")
	}
	free := Subscription{Tier: TierFree, CallsRemaining: 1}
	if !canUseMethod(free, "call") {
		t.Fatal("remaining calls must be usable")
	}
	if canUseMethod(free, "fax") {
		t.Fatal("unknown methods are denied")
	}
}

func TestTierLimits(t *testing.T) {
	calls, texts := tierLimits(TierPlus)
	if calls != 20 || texts != 999999 {
		t.Fatalf("plus limits: got %d calls, %d texts", calls, texts)
	}
	calls, texts = tierLimits(TierFree)
	if calls != 2 || texts != 0 {
		t.Fatalf("free limits: got %d calls, %d texts", calls, texts)
	}
}
