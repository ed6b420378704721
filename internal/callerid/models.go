package callerid

import "time"

// CallerID is a user-owned display identity for outgoing escape calls.
// Seeded defaults are flagged so deletion can exclude them with a query filter.
type CallerID struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	Name        string `json:"name" db:"name"`
	PhoneNumber string `json:"phone_number" db:"phone_number"`
	Location    string `json:"location,omitempty" db:"location"`
	IsDefault   bool   `json:"is_default" db:"is_default"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// defaultSet seeds a first-run caller-id list for new users.
var defaultSet = []CallerID{
	{Name: "Mom", PhoneNumber: "(555) 123-4567", Location: "Mobile"},
	{Name: "Office", PhoneNumber: "(555) 987-6543", Location: "Work"},
	{Name: "Girlfriend", PhoneNumber: "(555) 246-8135", Location: "Mobile"},
	{Name: "Manager", PhoneNumber: "(555) 369-2580", Location: "Work"},
	{Name: "Doctor", PhoneNumber: "(555) 753-9514", Location: "Medical Center"},
}
