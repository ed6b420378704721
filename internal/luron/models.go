package luron

import "time"

// Request/response types for the Luron call-scheduling API.
//
// Rules:
// - No Luron HTTP details outside this package.
// - Keep request types app-level; the wire shape is private to the client.

// ContactMethod is a delivery channel for an escape call.
type ContactMethod string

const (
	ContactMethodCall  ContactMethod = "call"
	ContactMethodText  ContactMethod = "text"
	ContactMethodEmail ContactMethod = "email"
)

// TimeSelection is the user's relative scheduling choice.
type TimeSelection string

const (
	TimeNow    TimeSelection = "now"
	Time3Min   TimeSelection = "3min"
	Time5Min   TimeSelection = "5min"
	TimeCustom TimeSelection = "custom"
)

// PersonaConfig carries per-persona delivery settings.
type PersonaConfig struct {
	Tone          string   `json:"tone,omitempty"`
	Duration      int      `json:"duration,omitempty"`
	CustomPhrases []string `json:"custom_phrases,omitempty"`
}

// ScheduleRequest is a call-scheduling intent.
type ScheduleRequest struct {
	UserID         string
	ContactMethods []ContactMethod
	SelectedTime   TimeSelection
	// CustomDate is used when SelectedTime == TimeCustom.
	CustomDate *time.Time
	Persona    string
	// Note is the free-text context instruction for the AI caller.
	Note  string
	Voice string
	// CallerIDNumber is the display number to present, if any.
	CallerIDNumber string
	Config         PersonaConfig
	// RecipientPhone overrides the destination number (verification calls).
	RecipientPhone string
}

// ScheduleResult is the normalized success response.
type ScheduleResult struct {
	Success      bool      `json:"success"`
	Message      string    `json:"message"`
	CallID       string    `json:"call_id"`
	ScheduledFor time.Time `json:"scheduled_for"`
}

// HistoryFilters narrows a history listing.
type HistoryFilters struct {
	Type   string
	Status string
	Limit  int
	Offset int
}

// HistoryEntry is a single remote call record.
type HistoryEntry struct {
	CallID       string    `json:"call_id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	PersonaType  string    `json:"persona_type"`
	ScheduledFor time.Time `json:"scheduled_for"`
	CompletedAt  time.Time `json:"completed_at,omitempty"`
	Duration     int       `json:"duration,omitempty"`
}

// HistoryResult is the normalized history listing.
type HistoryResult struct {
	Success    bool           `json:"success"`
	UserID     string         `json:"user_id"`
	TotalCount int            `json:"total_count"`
	History    []HistoryEntry `json:"history"`
}

// CallDetails is the normalized single-call lookup.
type CallDetails struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}

// UserStats is the normalized stats response.
type UserStats struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}

// HealthResult is always returned (never an error) for transport failures;
// CheckHealth is a liveness probe.
type HealthResult struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	StatusHealthy     = "healthy"
	StatusUnreachable = "unreachable"
)
