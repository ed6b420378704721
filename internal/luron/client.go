package luron

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"queout/internal/config"
)

// Client talks to the Luron call-scheduling API.
//
// Error normalization contract:
// - 400/422        -> *ValidationError (server message, or a generic fallback)
// - other non-2xx  -> *APIError (or a specific sentinel where meaningful)
// - transport fail -> ErrConnection (the server was never reached)
type Client struct {
	baseURL string
	http    *http.Client
	// clock is injectable for deterministic tests.
	clock func() time.Time
}

func NewClient(cfg config.LuronConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		clock:   time.Now,
	}
}

// Defaults applied when a schedule request leaves fields unset.
const (
	defaultPersona  = "manager"
	defaultVoice    = "emma"
	defaultTone     = "casual"
	defaultDuration = 30
)

// wire shapes are private; app code only sees the normalized types in models.go.

type scheduleBody struct {
	UserID            string           `json:"user_id"`
	Type              string           `json:"type"`
	When              string           `json:"when"`
	PersonaType       string           `json:"persona_type"`
	CustomInstruction string           `json:"custom_instruction"`
	AdvancedSettings  advancedSettings `json:"advanced_settings"`
	RecipientPhone    string           `json:"recipient_phone,omitempty"`
}

type advancedSettings struct {
	Tone          string   `json:"tone"`
	Voice         string   `json:"voice"`
	CallerID      *string  `json:"caller_id"`
	Duration      int      `json:"duration"`
	CustomPhrases []string `json:"custom_phrases"`
}

type scheduleResponse struct {
	Message      string `json:"message"`
	CallID       string `json:"call_id"`
	ScheduledFor string `json:"scheduled_for"`
}

type errorBody struct {
	Message string `json:"message"`
}

// ResolveScheduleTime maps a relative time selection to an absolute timestamp.
// Unknown selections fall back to +3 minutes.
func ResolveScheduleTime(sel TimeSelection, custom *time.Time, now time.Time) time.Time {
	switch sel {
	case TimeNow:
		return now.Add(5 * time.Second)
	case Time3Min:
		return now.Add(3 * time.Minute)
	case Time5Min:
		return now.Add(5 * time.Minute)
	case TimeCustom:
		if custom != nil {
			return *custom
		}
		return now.Add(10 * time.Minute)
	default:
		return now.Add(3 * time.Minute)
	}
}

// PrimaryContactType collapses a contact-method set to one channel.
// Priority: call > text > email. Empty sets default to call.
func PrimaryContactType(methods []ContactMethod) ContactMethod {
	has := func(m ContactMethod) bool {
		for _, v := range methods {
			if v == m {
				return true
			}
		}
		return false
	}
	switch {
	case len(methods) == 0, has(ContactMethodCall):
		return ContactMethodCall
	case has(ContactMethodText):
		return ContactMethodText
	case has(ContactMethodEmail):
		return ContactMethodEmail
	default:
		return ContactMethodCall
	}
}

// ScheduleCall requests a new call from the Luron API.
func (c *Client) ScheduleCall(ctx context.Context, req ScheduleRequest) (ScheduleResult, error) {
	if req.UserID == "" {
		return ScheduleResult{}, &ValidationError{Status: http.StatusBadRequest, Message: "user_id is required"}
	}

	now := c.clock().UTC()
	when := ResolveScheduleTime(req.SelectedTime, req.CustomDate, now)

	body := scheduleBody{
		UserID:            req.UserID,
		Type:              string(PrimaryContactType(req.ContactMethods)),
		When:              when.UTC().Format(time.RFC3339),
		PersonaType:       orDefault(req.Persona, defaultPersona),
		CustomInstruction: req.Note,
		AdvancedSettings: advancedSettings{
			Tone:          orDefault(req.Config.Tone, defaultTone),
			Voice:         orDefault(req.Voice, defaultVoice),
			CallerID:      nullable(req.CallerIDNumber),
			Duration:      orDefaultInt(req.Config.Duration, defaultDuration),
			CustomPhrases: nonNil(req.Config.CustomPhrases),
		},
		RecipientPhone: req.RecipientPhone,
	}

	var resp scheduleResponse
	if err := c.post(ctx, "/schedule", body, &resp, map[int]string{
		http.StatusBadRequest:          "invalid request parameters, check your input",
		http.StatusUnprocessableEntity: "validation error, check all fields",
	}); err != nil {
		return ScheduleResult{}, err
	}

	scheduledFor := when
	if t, err := time.Parse(time.RFC3339, resp.ScheduledFor); err == nil {
		scheduledFor = t
	}
	return ScheduleResult{
		Success:      true,
		Message:      orDefault(resp.Message, "call scheduled successfully"),
		CallID:       resp.CallID,
		ScheduledFor: scheduledFor,
	}, nil
}

// GetHistory lists remote call history for a user.
// A 404 means "no history yet" and is returned as an empty success, not an error.
func (c *Client) GetHistory(ctx context.Context, userID string, filters HistoryFilters) (HistoryResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("limit", strconv.Itoa(filters.Limit))
	q.Set("offset", strconv.Itoa(filters.Offset))
	if filters.Type != "" {
		q.Set("type", filters.Type)
	}
	if filters.Status != "" {
		q.Set("status", filters.Status)
	}

	var resp struct {
		UserID     string         `json:"user_id"`
		TotalCount int            `json:"total_count"`
		History    []HistoryEntry `json:"history"`
	}
	status, err := c.get(ctx, "/history?"+q.Encode(), &resp)
	if err != nil {
		if status == http.StatusNotFound {
			return HistoryResult{Success: true, UserID: userID, TotalCount: 0, History: []HistoryEntry{}}, nil
		}
		return HistoryResult{}, err
	}

	out := HistoryResult{
		Success:    true,
		UserID:     resp.UserID,
		TotalCount: resp.TotalCount,
		History:    resp.History,
	}
	if out.History == nil {
		out.History = []HistoryEntry{}
	}
	return out, nil
}

// GetCallDetails fetches a single remote call record.
func (c *Client) GetCallDetails(ctx context.Context, callID string) (CallDetails, error) {
	var resp struct {
		Data map[string]any `json:"data"`
	}
	status, err := c.get(ctx, "/history/"+url.PathEscape(callID), &resp)
	if err != nil {
		if status == http.StatusNotFound {
			return CallDetails{}, ErrCallNotFound
		}
		return CallDetails{}, err
	}
	return CallDetails{Success: true, Data: resp.Data}, nil
}

// GetUserStats fetches aggregated call stats for a user.
func (c *Client) GetUserStats(ctx context.Context, userID string) (UserStats, error) {
	var resp map[string]any
	status, err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/stats", &resp)
	if err != nil {
		if status == http.StatusNotFound {
			return UserStats{}, ErrUserNotFound
		}
		return UserStats{}, err
	}
	return UserStats{Success: true, Data: resp}, nil
}

// CheckHealth probes the API. Transport failures are swallowed into a
// structured unreachable result because this is a liveness probe.
func (c *Client) CheckHealth(ctx context.Context) (HealthResult, error) {
	var resp struct {
		Status string `json:"status"`
	}
	_, err := c.get(ctx, "/health", &resp)
	if err != nil {
		if isConnectionErr(err) {
			return HealthResult{
				Success: false,
				Status:  StatusUnreachable,
				Message: "API is unreachable, check your internet connection",
			}, nil
		}
		return HealthResult{}, err
	}
	return HealthResult{Success: true, Status: orDefault(resp.Status, StatusHealthy)}, nil
}

/* ===================== HTTP PLUMBING ===================== */

func (c *Client) post(ctx context.Context, path string, body any, out any, validationMsgs map[int]string) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		if fallback, ok := validationMsgs[res.StatusCode]; ok {
			return &ValidationError{Status: res.StatusCode, Message: orDefault(eb.Message, fallback)}
		}
		return &APIError{Status: res.StatusCode, Message: orDefault(eb.Message, "failed to schedule call, try again")}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("luron: decoding response: %w", err)
		}
	}
	return nil
}

// get returns the HTTP status alongside the error so callers can apply
// operation-specific 404 semantics.
func (c *Client) get(ctx context.Context, path string, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		return res.StatusCode, &APIError{Status: res.StatusCode, Message: orDefault(eb.Message, "request failed")}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return res.StatusCode, fmt.Errorf("luron: decoding response: %w", err)
		}
	}
	return res.StatusCode, nil
}

func isConnectionErr(err error) bool {
	return errors.Is(err, ErrConnection)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

func nullable(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
