package users

import "time"

// User is the account profile row.
//
// PhoneNumber and CountryCode stay empty until a phone verification completes;
// internal/verification writes them transactionally when a code checks out.
type User struct {
	ID          string `json:"id" db:"id"`
	Email       string `json:"email,omitempty" db:"email"`
	PhoneNumber string `json:"phone_number,omitempty" db:"phone_number"`
	CountryCode string `json:"country_code,omitempty" db:"country_code"`

	SubscriptionTier string `json:"subscription_tier" db:"subscription_tier"`

	CreatorModeEnabled   bool   `json:"creator_mode_enabled" db:"creator_mode_enabled"`
	NotificationsEnabled bool   `json:"notifications_enabled" db:"notifications_enabled"`
	SelectedRingtone     string `json:"selected_ringtone,omitempty" db:"selected_ringtone"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UpdateRequest carries only the fields being changed; nil means "leave as is".
type UpdateRequest struct {
	Email                *string
	CreatorModeEnabled   *bool
	NotificationsEnabled *bool
	SelectedRingtone     *string
}

// VerificationStatus reports whether the user has a verified phone.
type VerificationStatus struct {
	IsVerified  bool   `json:"is_verified"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}
