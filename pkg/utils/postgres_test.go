package utils

import (
	"testing"
	"time"
)

func TestPostgresPoolConfigNormalized_ZeroValuePicksDefaults(t *testing.T) {
	got := PostgresPoolConfig{}.normalized()

	if got.MaxOpenConns != 25 {
		t.Errorf("MaxOpenConns = %d, want 25", got.MaxOpenConns)
	}
	if got.MaxIdleConns != got.MaxOpenConns {
		t.Errorf("MaxIdleConns = %d, want same as MaxOpenConns %d", got.MaxIdleConns, got.MaxOpenConns)
	}
	if got.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("ConnMaxLifetime = %v, want 30m", got.ConnMaxLifetime)
	}
	if got.ConnMaxIdleTime != 5*time.Minute {
		t.Errorf("ConnMaxIdleTime = %v, want 5m", got.ConnMaxIdleTime)
	}
	if got.PingTimeout != 5*time.Second {
		t.Errorf("PingTimeout = %v, want 5s", got.PingTimeout)
	}
}

func TestPostgresPoolConfigNormalized_ExplicitValuesKept(t *testing.T) {
	in := PostgresPoolConfig{
		MaxOpenConns:    4,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		ConnMaxIdleTime: 10 * time.Second,
		PingTimeout:     time.Second,
	}
	if got := in.normalized(); got != in {
		t.Errorf("normalized() = %+v, want unchanged %+v", got, in)
	}
}

func TestPostgresPoolConfigNormalized_IdleDefaultsFollowOpen(t *testing.T) {
	got := PostgresPoolConfig{MaxOpenConns: 8}.normalized()
	if got.MaxIdleConns != 8 {
		t.Errorf("MaxIdleConns = %d, want 8", got.MaxIdleConns)
	}
}
