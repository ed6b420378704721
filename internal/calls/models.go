package calls

import "time"

// UpcomingCall is a scheduled call that has not fired yet.
type UpcomingCall struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	PersonaID       string    `json:"persona_id"`
	VoiceID         string    `json:"voice_id"`
	CallerID        *string   `json:"caller_id,omitempty"`
	ContactMethods  []string  `json:"contact_methods"`
	ContextNote     string    `json:"context_note"`
	DurationSeconds int       `json:"duration_seconds"`
	DueTimestamp    time.Time `json:"due_timestamp"`
	LuronCallID     *string   `json:"luron_call_id,omitempty"`
	IsNew           bool      `json:"is_new"`
	CreatedAt       time.Time `json:"created_at"`
}

// UpcomingCallDetailed joins in display fields from the persona, voice and
// caller id tables via the upcoming_calls_detailed view.
type UpcomingCallDetailed struct {
	UpcomingCall
	PersonaName  string `json:"persona_name"`
	PersonaIcon  string `json:"persona_icon"`
	VoiceName    string `json:"voice_name"`
	CallerName   string `json:"caller_name"`
	CallerNumber string `json:"caller_number"`
}

// HistoryEntry is a finished call.
type HistoryEntry struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	PersonaID       string     `json:"persona_id"`
	VoiceID         string     `json:"voice_id"`
	CallerID        *string    `json:"caller_id,omitempty"`
	ContactMethods  []string   `json:"contact_methods"`
	ContextNote     string     `json:"context_note"`
	Status          string     `json:"status"`
	DurationSeconds int        `json:"duration_seconds"`
	ScheduledTime   *time.Time `json:"scheduled_time,omitempty"`
	CompletedAt     time.Time  `json:"completed_at"`
	IsRead          bool       `json:"is_read"`
}

// HistoryEntryDetailed joins in display fields via the call_history_detailed
// view.
type HistoryEntryDetailed struct {
	HistoryEntry
	PersonaName  string `json:"persona_name"`
	PersonaIcon  string `json:"persona_icon"`
	VoiceName    string `json:"voice_name"`
	CallerName   string `json:"caller_name"`
	CallerNumber string `json:"caller_number"`
}

// CreateRequest carries the fields for a new upcoming call.
type CreateRequest struct {
	PersonaID       string    `json:"persona_id"`
	VoiceID         string    `json:"voice_id"`
	CallerID        *string   `json:"caller_id,omitempty"`
	ContactMethods  []string  `json:"contact_methods"`
	ContextNote     string    `json:"context_note"`
	DurationSeconds int       `json:"duration_seconds"`
	DueTimestamp    time.Time `json:"due_timestamp"`
	LuronCallID     *string   `json:"luron_call_id,omitempty"`
}

// UpdateRequest carries optional upcoming-call changes. Nil fields keep
// their current value.
type UpdateRequest struct {
	PersonaID       *string    `json:"persona_id,omitempty"`
	VoiceID         *string    `json:"voice_id,omitempty"`
	CallerID        *string    `json:"caller_id,omitempty"`
	ContactMethods  []string   `json:"contact_methods,omitempty"`
	ContextNote     *string    `json:"context_note,omitempty"`
	DurationSeconds *int       `json:"duration_seconds,omitempty"`
	DueTimestamp    *time.Time `json:"due_timestamp,omitempty"`
	IsNew           *bool      `json:"is_new,omitempty"`
}

// StatusAnswered is the default outcome when a call is completed without an
// explicit status.
const StatusAnswered = "answered"
