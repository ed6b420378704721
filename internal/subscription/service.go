package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"queout/pkg/utils"
)

var (
	ErrNotFound        = errors.New("subscription not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

type Service struct {
	db    *sql.DB
	clock func() time.Time
}

func NewService(db *sql.DB) *Service {
	return &Service{db: db, clock: time.Now}
}

// Get returns the user's plan. A user without a plan row yields ok=false
// rather than an error, matching the guest-first onboarding flow.
func (s *Service) Get(ctx context.Context, userID string) (Subscription, bool, error) {
	if userID == "" {
		return Subscription{}, false, ErrInvalidArgument
	}
	sub, err := getSubscription(ctx, s.db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Subscription{}, false, nil
	}
	if err != nil {
		return Subscription{}, false, err
	}
	return sub, true, nil
}

// Status reads the user_subscription_status view.
func (s *Service) Status(ctx context.Context, userID string) (Status, bool, error) {
	if userID == "" {
		return Status{}, false, ErrInvalidArgument
	}
	st, err := getStatus(ctx, s.db, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Status{}, false, nil
	}
	if err != nil {
		return Status{}, false, err
	}
	return st, true, nil
}

// CanUse reports whether the user has allowance left for a contact method.
// Plus accounts text without limit; email is never metered. Identities with
// no plan row yet (fresh guests) get the free-tier allowance.
func (s *Service) CanUse(ctx context.Context, userID, method string) (bool, error) {
	if userID == "" || method == "" {
		return false, ErrInvalidArgument
	}
	sub, ok, err := s.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	if !ok {
		sub = freeTierDefaults()
	}
	return canUseMethod(sub, method), nil
}

// freeTierDefaults is the implicit plan for identities without a row:
// a guest can place their free calls before any subscription exists.
func freeTierDefaults() Subscription {
	calls, texts := tierLimits(TierFree)
	return Subscription{
		Tier:           TierFree,
		CallsLimit:     calls,
		CallsRemaining: calls,
		TextsLimit:     texts,
		TextsRemaining: texts,
	}
}

func canUseMethod(sub Subscription, method string) bool {
	switch method {
	case "call":
		return sub.CallsRemaining > 0
	case "text":
		return sub.Tier == TierPlus || sub.TextsRemaining > 0
	case "email":
		return true
	}
	return false
}

// DecrementUsage burns one unit of the method's allowance via the
// decrement_usage stored procedure, which clamps at zero.
func (s *Service) DecrementUsage(ctx context.Context, userID, method string) error {
	if userID == "" || method == "" {
		return ErrInvalidArgument
	}
	return decrementUsage(ctx, s.db, userID, method)
}

// UpdateTier switches the plan, resets the allowance to the new tier's
// limits and restarts the billing window. The users table mirrors the tier
// so profile reads don't need a join; both writes share one transaction.
func (s *Service) UpdateTier(ctx context.Context, userID, tier, billingCycle string, stripeSubscriptionID *string) (Subscription, error) {
	if userID == "" {
		return Subscription{}, ErrInvalidArgument
	}
	if tier != TierFree && tier != TierPlus {
		return Subscription{}, ErrInvalidArgument
	}
	if billingCycle != CycleMonthly && billingCycle != CycleYearly {
		return Subscription{}, ErrInvalidArgument
	}

	callsLimit, textsLimit := tierLimits(tier)
	now := s.clock().UTC()
	expires := now.AddDate(0, 0, 365)
	if billingCycle == CycleMonthly {
		expires = now.AddDate(0, 0, 30)
	}

	var sub Subscription
	err := utils.WithTx(ctx, s.db, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		sub, err = updateTierTx(ctx, tx, userID, tier, billingCycle, callsLimit, textsLimit, stripeSubscriptionID, now, expires)
		if err != nil {
			return err
		}
		return mirrorUserTierTx(ctx, tx, userID, tier, now)
	})
	if err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

// Cancel turns off auto-renew. The plan stays active until expires_at.
func (s *Service) Cancel(ctx context.Context, userID string) (Subscription, error) {
	if userID == "" {
		return Subscription{}, ErrInvalidArgument
	}
	return cancelSubscription(ctx, s.db, userID)
}

// ResetMonthlyUsage restores the allowance to the plan limits. Run at the
// start of each billing period.
func (s *Service) ResetMonthlyUsage(ctx context.Context, userID string) (Subscription, error) {
	if userID == "" {
		return Subscription{}, ErrInvalidArgument
	}
	return resetUsage(ctx, s.db, userID)
}

// AddTopUp grants extra calls on top of the current allowance.
func (s *Service) AddTopUp(ctx context.Context, userID string, amount int) (Subscription, error) {
	if userID == "" || amount <= 0 {
		return Subscription{}, ErrInvalidArgument
	}
	return addTopUp(ctx, s.db, userID, amount)
}
