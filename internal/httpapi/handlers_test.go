package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"queout/internal/auth"
	"queout/internal/calls"
	"queout/internal/config"
	"queout/internal/luron"
	"queout/internal/verification"
)

func TestRespondErr_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"luron validation", &luron.ValidationError{Status: 422, Message: "invalid persona type"}, http.StatusBadRequest},
		{"rate limited", &verification.RateLimitedError{RetryAfterSeconds: 20}, http.StatusTooManyRequests},
		{"scheduling failure", &verification.SchedulingError{Err: luron.ErrConnection}, http.StatusBadGateway},
		{"connection failure", luron.ErrConnection, http.StatusBadGateway},
		{"persistence failure", &verification.PersistenceError{Op: "create", Err: errors.New("boom")}, http.StatusInternalServerError},
		{"expired code", verification.ErrExpired, http.StatusUnprocessableEntity},
		{"wrong code", verification.ErrInvalidCode, http.StatusUnprocessableEntity},
		{"too many attempts", verification.ErrTooManyAttempts, http.StatusUnprocessableEntity},
		{"no pending verification", verification.ErrNotFound, http.StatusNotFound},
		{"call not found", luron.ErrCallNotFound, http.StatusNotFound},
		{"upcoming call not found", calls.ErrNotFound, http.StatusNotFound},
		{"bad argument", calls.ErrInvalidArgument, http.StatusBadRequest},
		{"remote api error", &luron.APIError{Status: 500, Message: "server error"}, http.StatusBadGateway},
		{"unknown", errors.New("surprise"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondErr(c, tc.err)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, w.Code)
			}
		})
	}
}

func TestRespondErr_RateLimitedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondErr(c, &verification.RateLimitedError{RetryAfterSeconds: 17})

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json body: %v", err)
	}
	if got, ok := body["retry_after"].(float64); !ok || int(got) != 17 {
		t.Fatalf("expected retry_after 17, got %v", body["retry_after"])
	}
	if got := w.Header().Get("Retry-After"); got != "17" {
		t.Fatalf("Retry-After header must match the cooldown, got %q", got)
	}
}

func TestGuestSession_MintsGuestIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mgr, err := auth.NewManager(config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	h := Handlers{Auth: mgr}

	r := gin.New()
	r.POST("/v1/auth/guest", h.GuestSession)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/guest", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		UserID       string `json:"user_id"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json body: %v", err)
	}
	if !strings.HasPrefix(body.UserID, "guest_") {
		t.Fatalf("guest ids carry the guest_ prefix, got %q", body.UserID)
	}
	if body.AccessToken == "" || body.RefreshToken == "" {
		t.Fatal("expected both tokens in the response")
	}

	claims, err := mgr.Verify(body.AccessToken, auth.TokenTypeAccess, time.Now())
	if err != nil {
		t.Fatalf("verify access token: %v", err)
	}
	if claims.Role != auth.RoleGuest {
		t.Fatalf("expected guest role, got %q", claims.Role)
	}
	if claims.UserID != body.UserID {
		t.Fatalf("token user id %q does not match response %q", claims.UserID, body.UserID)
	}
}
