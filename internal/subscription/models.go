package subscription

import "time"

// Tiers. Free accounts get a small monthly call allowance and no texts;
// plus accounts get more calls and effectively unlimited texts.
const (
	TierFree = "free"
	TierPlus = "plus"
)

// Billing cycles.
const (
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// Per-tier limits.
const (
	freeCallsLimit = 2
	freeTextsLimit = 0
	plusCallsLimit = 20
	plusTextsLimit = 999999
)

// Subscription is a user's plan row.
type Subscription struct {
	ID                   string     `json:"id"`
	UserID               string     `json:"user_id"`
	Tier                 string     `json:"tier"`
	BillingCycle         string     `json:"billing_cycle"`
	CallsLimit           int        `json:"calls_limit"`
	CallsRemaining       int        `json:"calls_remaining"`
	TextsLimit           int        `json:"texts_limit"`
	TextsRemaining       int        `json:"texts_remaining"`
	StripeSubscriptionID *string    `json:"stripe_subscription_id,omitempty"`
	StartedAt            *time.Time `json:"started_at,omitempty"`
	ExpiresAt            *time.Time `json:"expires_at,omitempty"`
	AutoRenew            bool       `json:"auto_renew"`
}

// Status is the user_subscription_status view row, which folds user fields
// into the plan for a single-read client payload.
type Status struct {
	UserID         string     `json:"user_id"`
	Email          string     `json:"email"`
	Tier           string     `json:"tier"`
	BillingCycle   string     `json:"billing_cycle"`
	CallsRemaining int        `json:"calls_remaining"`
	CallsLimit     int        `json:"calls_limit"`
	TextsRemaining int        `json:"texts_remaining"`
	TextsLimit     int        `json:"texts_limit"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	AutoRenew      bool       `json:"auto_renew"`
}

func tierLimits(tier string) (calls, texts int) {
	if tier == TierPlus {
		return plusCallsLimit, plusTextsLimit
	}
	return freeCallsLimit, freeTextsLimit
}
