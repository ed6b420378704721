package luron

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"queout/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient(config.LuronConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	return c, srv
}

func TestResolveScheduleTime(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	if got := ResolveScheduleTime(TimeNow, nil, now); got != now.Add(5*time.Second) {
		t.Fatalf("now: got %v", got)
	}
	if got := ResolveScheduleTime(Time3Min, nil, now); got != now.Add(3*time.Minute) {
		t.Fatalf("3min: got %v", got)
	}
	if got := ResolveScheduleTime(Time5Min, nil, now); got != now.Add(5*time.Minute) {
		t.Fatalf("5min: got %v", got)
	}
	custom := now.Add(2 * time.Hour)
	if got := ResolveScheduleTime(TimeCustom, &custom, now); got != custom {
		t.Fatalf("custom: got %v", got)
	}
	if got := ResolveScheduleTime(TimeCustom, nil, now); got != now.Add(10*time.Minute) {
		t.Fatalf("custom without date: got %v", got)
	}
	if got := ResolveScheduleTime(TimeSelection("whenever"), nil, now); got != now.Add(3*time.Minute) {
		t.Fatalf("unknown selection: got %v", got)
	}
}

func TestPrimaryContactType(t *testing.T) {
	cases := []struct {
		in   []ContactMethod
		want ContactMethod
	}{
		{nil, ContactMethodCall},
		{[]ContactMethod{ContactMethodEmail, ContactMethodCall}, ContactMethodCall},
		{[]ContactMethod{ContactMethodText, ContactMethodEmail}, ContactMethodText},
		{[]ContactMethod{ContactMethodEmail}, ContactMethodEmail},
		{[]ContactMethod{"pigeon"}, ContactMethodCall},
	}
	for _, tc := range cases {
		if got := PrimaryContactType(tc.in); got != tc.want {
			t.Fatalf("%v: got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScheduleCall_SendsResolvedBody(t *testing.T) {
	var got scheduleBody
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schedule" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "ok", "call_id": "call-1"})
	})

	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	c.clock = func() time.Time { return now }

	res, err := c.ScheduleCall(context.Background(), ScheduleRequest{
		UserID:         "u1",
		ContactMethods: []ContactMethod{ContactMethodText, ContactMethodEmail},
		SelectedTime:   Time3Min,
		Persona:        "boss",
		Note:           "urgent meeting",
		Voice:          "james",
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}

	if got.Type != "text" {
		t.Fatalf("expected primary type text, got %q", got.Type)
	}
	if got.When != now.Add(3*time.Minute).Format(time.RFC3339) {
		t.Fatalf("unexpected when: %q", got.When)
	}
	if got.AdvancedSettings.Tone != "casual" || got.AdvancedSettings.Duration != 30 {
		t.Fatalf("expected defaults applied, got %+v", got.AdvancedSettings)
	}
	if !res.Success || res.CallID != "call-1" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.ScheduledFor != now.Add(3*time.Minute) {
		t.Fatalf("expected resolved schedule time, got %v", res.ScheduledFor)
	}
}

func TestScheduleCall_NowWithinWindow(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"call_id": "c"})
	})

	before := time.Now()
	res, err := c.ScheduleCall(context.Background(), ScheduleRequest{UserID: "u1", SelectedTime: TimeNow})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	after := time.Now()

	if res.ScheduledFor.Before(before) || res.ScheduledFor.After(after.Add(5*time.Second)) {
		t.Fatalf("scheduled time %v outside [now, now+5s]", res.ScheduledFor)
	}
}

func TestScheduleCall_422CarriesServerMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "bad field"})
	})

	_, err := c.ScheduleCall(context.Background(), ScheduleRequest{UserID: "u1"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message != "bad field" || ve.Status != http.StatusUnprocessableEntity {
		t.Fatalf("unexpected validation error: %+v", ve)
	}
}

func TestScheduleCall_400FallsBackToGenericMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := c.ScheduleCall(context.Background(), ScheduleRequest{UserID: "u1"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Message == "" {
		t.Fatalf("expected fallback message")
	}
}

func TestScheduleCall_NetworkFailureIsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := NewClient(config.LuronConfig{BaseURL: srv.URL, Timeout: time.Second})
	_, err := c.ScheduleCall(context.Background(), ScheduleRequest{UserID: "u1"})
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		t.Fatalf("connection failure must not look like a validation error")
	}
}

func TestGetHistory_404IsEmptySuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	res, err := c.GetHistory(context.Background(), "u1", HistoryFilters{})
	if err != nil {
		t.Fatalf("expected empty success, got %v", err)
	}
	if !res.Success || res.TotalCount != 0 || len(res.History) != 0 || res.History == nil {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGetHistory_DefaultsPagination(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("limit") != "50" || q.Get("offset") != "0" || q.Get("user_id") != "u1" {
			t.Fatalf("unexpected query: %v", q)
		}
		if q.Has("type") || q.Has("status") {
			t.Fatalf("optional filters must be omitted when empty")
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"user_id": "u1", "total_count": 1, "history": []map[string]any{{"call_id": "c1"}}})
	})

	res, err := c.GetHistory(context.Background(), "u1", HistoryFilters{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if res.TotalCount != 1 || len(res.History) != 1 || res.History[0].CallID != "c1" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestGetCallDetails_404IsNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetCallDetails(context.Background(), "nope")
	if !errors.Is(err, ErrCallNotFound) {
		t.Fatalf("expected ErrCallNotFound, got %v", err)
	}
}

func TestCheckHealth_SwallowsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(config.LuronConfig{BaseURL: srv.URL, Timeout: time.Second})
	res, err := c.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("health probe must not error on transport failure, got %v", err)
	}
	if res.Success || res.Status != StatusUnreachable {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestCheckHealth_Healthy(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	res, err := c.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if !res.Success || res.Status != StatusHealthy {
		t.Fatalf("unexpected result: %+v", res)
	}
}
