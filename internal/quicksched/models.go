package quicksched

import "time"

// QuickSchedule is a one-tap scheduling preset. Most-used presets sort
// first, ties oldest-first.
type QuickSchedule struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	Name           string     `json:"name"`
	Icon           string     `json:"icon"`
	Color          string     `json:"color"`
	PersonaID      string     `json:"persona_id"`
	VoiceID        string     `json:"voice_id"`
	ContactMethods []string   `json:"contact_methods"`
	ContextNote    string     `json:"context_note"`
	TimePreset     string     `json:"time_preset"`
	VoiceCategory  string     `json:"voice_category"`
	UsageCount     int        `json:"usage_count"`
	LastUsedAt     *time.Time `json:"last_used_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// UpdateRequest carries optional preset changes. Nil fields keep their
// current value.
type UpdateRequest struct {
	Name           *string  `json:"name,omitempty"`
	Icon           *string  `json:"icon,omitempty"`
	Color          *string  `json:"color,omitempty"`
	PersonaID      *string  `json:"persona_id,omitempty"`
	VoiceID        *string  `json:"voice_id,omitempty"`
	ContactMethods []string `json:"contact_methods,omitempty"`
	ContextNote    *string  `json:"context_note,omitempty"`
	TimePreset     *string  `json:"time_preset,omitempty"`
	VoiceCategory  *string  `json:"voice_category,omitempty"`
}

// defaultSet seeds a new account's presets on first list.
var defaultSet = []QuickSchedule{
	{Name: "Manager", Icon: "💼", Color: "bg-blue-500/10 text-blue-500", PersonaID: "manager", VoiceID: "james", ContactMethods: []string{"call"}, ContextNote: "Quick call from manager", TimePreset: "now", VoiceCategory: "realistic"},
	{Name: "Friend", Icon: "💬", Color: "bg-green-500/10 text-green-500", PersonaID: "friend", VoiceID: "emma", ContactMethods: []string{"call", "text"}, ContextNote: "Quick call from friend", TimePreset: "now", VoiceCategory: "realistic"},
	{Name: "Mom", Icon: "👩", Color: "bg-pink-500/10 text-pink-500", PersonaID: "mom", VoiceID: "emma", ContactMethods: []string{"call"}, ContextNote: "Quick call from mom", TimePreset: "now", VoiceCategory: "realistic"},
	{Name: "Doctor", Icon: "⚕️", Color: "bg-red-500/10 text-red-500", PersonaID: "doctor", VoiceID: "james", ContactMethods: []string{"call"}, ContextNote: "Quick call from doctor", TimePreset: "now", VoiceCategory: "realistic"},
}
