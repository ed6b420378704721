package auth

import (
	"strings"
	"testing"
	"time"

	"queout/internal/config"
)

func TestIssueAndVerifyAccessToken(t *testing.T) {
	m, err := NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		JWTIssuer:       "issuer",
		JWTAudience:     "aud",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	now := time.Unix(1700000000, 0).UTC()
	pair, err := m.IssuePair(now, "user-1", RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("expected token strings")
	}

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess, now.Add(1*time.Minute))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

// Verify must judge expiry against the supplied time, not the wall clock:
// tokens minted at a fixed past epoch stay valid at that epoch and expire
// relative to it.
func TestVerifyHonorsInjectedClock(t *testing.T) {
	m, err := NewManager(config.AuthConfig{
		JWTSecret:       "secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
	})
	if err != nil {
		t.Fatalf("manager: %v", err)
	}

	issued := time.Unix(1600000000, 0).UTC()
	pair, err := m.IssuePair(issued, "user-1", RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := m.Verify(pair.AccessToken, TokenTypeAccess, issued.Add(14*time.Minute)); err != nil {
		t.Fatalf("token should be valid at issue time + 14m: %v", err)
	}
	// 30s of leeway applies past the TTL.
	if _, err := m.Verify(pair.AccessToken, TokenTypeAccess, issued.Add(15*time.Minute+time.Minute)); err == nil {
		t.Fatal("token should be expired one minute past its TTL")
	}
}

func TestVerifyRejectsWrongTokenType(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})
	p, err := m.IssuePair(time.Now(), "u", RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(p.RefreshToken, TokenTypeAccess, time.Now()); err == nil {
		t.Fatalf("expected token_type mismatch")
	}
}

func TestIssueGuest(t *testing.T) {
	m, _ := NewManager(config.AuthConfig{JWTSecret: "secret", AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour})

	now := time.Unix(1700000000, 0).UTC()
	guestID, pair, err := m.IssueGuest(now)
	if err != nil {
		t.Fatalf("issue guest: %v", err)
	}
	if !strings.HasPrefix(guestID, "guest_") {
		t.Fatalf("expected guest_ prefix, got %q", guestID)
	}

	claims, err := m.Verify(pair.AccessToken, TokenTypeAccess, now)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != guestID || claims.Role != RoleGuest {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}
