package verification

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"queout/internal/luron"
)

type fakeScheduler struct {
	requests []luron.ScheduleRequest
	err      error
	callID   string
}

func (f *fakeScheduler) ScheduleCall(ctx context.Context, req luron.ScheduleRequest) (luron.ScheduleResult, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return luron.ScheduleResult{}, f.err
	}
	return luron.ScheduleResult{Success: true, CallID: f.callID}, nil
}

func newTestService(repo *MemoryRepo, sched *fakeScheduler, code string) (*Service, *time.Time) {
	svc := NewService(repo, sched, nil)
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	cur := &now
	svc.clock = func() time.Time { return *cur }
	svc.generateCode = func() (string, error) { return code, nil }
	return svc, cur
}

func TestRequest_StoresHashNeverPlaintext(t *testing.T) {
	repo := NewMemoryRepo()
	sched := &fakeScheduler{callID: "luron-1"}
	svc, now := newTestService(repo, sched, "123456")

	res, err := svc.Request(context.Background(), "u1", "5551234567", "+1")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.VerificationID == "" || res.CallID != "luron-1" {
		t.Fatalf("unexpected result: %+v", res)
	}

	rows := repo.Rows()
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	v := rows[0]
	if v.Status != StatusPending {
		t.Fatalf("expected pending row, got %q", v.Status)
	}
	if v.CodeHash != hashCode("123456") {
		t.Fatalf("stored hash does not match code hash")
	}
	if v.CodeHash == "123456" || strings.Contains(v.CodeHash, "123456") {
		t.Fatalf("plaintext code must never be stored")
	}
	if !v.ExpiresAt.Equal(now.Add(10 * time.Minute)) {
		t.Fatalf("expected 10 minute expiry, got %v", v.ExpiresAt)
	}
	if v.LuronCallID != "luron-1" {
		t.Fatalf("expected call id recorded, got %q", v.LuronCallID)
	}

	if len(sched.requests) != 1 {
		t.Fatalf("expected one scheduled call")
	}
	req := sched.requests[0]
	if req.RecipientPhone != "+15551234567" {
		t.Fatalf("unexpected recipient: %q", req.RecipientPhone)
	}
	if req.SelectedTime != luron.TimeNow {
		t.Fatalf("verification call must be immediate, got %q", req.SelectedTime)
	}
	if req.Persona != "customer_support" {
		t.Fatalf("unexpected persona: %q", req.Persona)
	}
	if !strings.Contains(req.Note, "1-2-3-4-5-6") {
		t.Fatalf("note should carry the speech-formatted code: %q", req.Note)
	}
}

func TestRequest_SchedulingFailureSupersedesRow(t *testing.T) {
	repo := NewMemoryRepo()
	sched := &fakeScheduler{err: luron.ErrConnection}
	svc, _ := newTestService(repo, sched, "123456")

	_, err := svc.Request(context.Background(), "u1", "5551234567", "+1")
	var se *SchedulingError
	if !errors.As(err, &se) {
		t.Fatalf("expected SchedulingError, got %v", err)
	}
	if !errors.Is(err, luron.ErrConnection) {
		t.Fatalf("expected wrapped cause")
	}

	rows := repo.Rows()
	if len(rows) != 1 || rows[0].Status != StatusSuperseded {
		t.Fatalf("failed request must not leave a pending row: %+v", rows)
	}
}

func TestRequest_SupersedesPriorPending(t *testing.T) {
	repo := NewMemoryRepo()
	sched := &fakeScheduler{callID: "c"}
	svc, cur := newTestService(repo, sched, "123456")

	if _, err := svc.Request(context.Background(), "u1", "5551234567", "+1"); err != nil {
		t.Fatalf("first request: %v", err)
	}
	*cur = cur.Add(time.Minute)
	if _, err := svc.Request(context.Background(), "u1", "5551234567", "+1"); err != nil {
		t.Fatalf("second request: %v", err)
	}

	pending := 0
	for _, v := range repo.Rows() {
		if v.Status == StatusPending {
			pending++
		}
	}
	if pending != 1 {
		t.Fatalf("expected exactly one pending row, got %d", pending)
	}
}

func TestVerify_EndToEnd(t *testing.T) {
	repo := NewMemoryRepo()
	sched := &fakeScheduler{callID: "luron-1"}
	svc, _ := newTestService(repo, sched, "123456")

	res, err := svc.Request(context.Background(), "u1", "5551234567", "+1")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.VerificationID == "" || res.CallID == "" {
		t.Fatalf("unexpected result: %+v", res)
	}

	// Wrong code first: counted attempt, InvalidCode.
	if err := svc.Verify(context.Background(), "u1", "5551234567", "000000"); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if rows := repo.Rows(); rows[0].Attempts != 1 {
		t.Fatalf("expected 1 attempt, got %d", rows[0].Attempts)
	}

	// Correct code: verified, phone stamped onto user.
	if err := svc.Verify(context.Background(), "u1", "5551234567", "123456"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if rows := repo.Rows(); rows[0].Status != StatusVerified {
		t.Fatalf("expected verified row, got %q", rows[0].Status)
	}
	phone, cc, ok := repo.UserPhone("u1")
	if !ok || phone != "5551234567" || cc != "+1" {
		t.Fatalf("expected user phone written, got %q %q %v", phone, cc, ok)
	}

	// The row is terminal: a second verify finds nothing pending.
	if err := svc.Verify(context.Background(), "u1", "5551234567", "123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after success, got %v", err)
	}
}

func TestVerify_NoPendingRow(t *testing.T) {
	svc, _ := newTestService(NewMemoryRepo(), &fakeScheduler{}, "123456")
	if err := svc.Verify(context.Background(), "u1", "5551234567", "123456"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	repo := NewMemoryRepo()
	svc, cur := newTestService(repo, &fakeScheduler{}, "123456")

	if _, err := svc.Request(context.Background(), "u1", "5551234567", "+1"); err != nil {
		t.Fatalf("request: %v", err)
	}

	*cur = cur.Add(10*time.Minute + time.Second)
	if err := svc.Verify(context.Background(), "u1", "5551234567", "123456"); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired even with correct code, got %v", err)
	}
	if rows := repo.Rows(); rows[0].Attempts != 0 {
		t.Fatalf("expired checks must not consume attempts, got %d", rows[0].Attempts)
	}
}

func TestVerify_TooManyAttempts(t *testing.T) {
	repo := NewMemoryRepo()
	svc, _ := newTestService(repo, &fakeScheduler{}, "123456")

	if _, err := svc.Request(context.Background(), "u1", "5551234567", "+1"); err != nil {
		t.Fatalf("request: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := svc.Verify(context.Background(), "u1", "5551234567", "999999"); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("attempt %d: expected ErrInvalidCode, got %v", i+1, err)
		}
	}
	// Sixth attempt is rejected before the code is even compared.
	if err := svc.Verify(context.Background(), "u1", "5551234567", "123456"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestResend_RateLimited(t *testing.T) {
	repo := NewMemoryRepo()
	sched := &fakeScheduler{callID: "c"}
	svc, cur := newTestService(repo, sched, "123456")

	if _, err := svc.Request(context.Background(), "u1", "5551234567", "+1"); err != nil {
		t.Fatalf("request: %v", err)
	}

	*cur = cur.Add(10 * time.Second)
	_, err := svc.Resend(context.Background(), "u1", "5551234567", "+1")
	var rl *RateLimitedError
	if !errors.As(err, &rl) {
		t.Fatalf("expected RateLimitedError, got %v", err)
	}
	if rl.RetryAfterSeconds <= 0 || rl.RetryAfterSeconds > 30 {
		t.Fatalf("retry window out of range: %d", rl.RetryAfterSeconds)
	}
	if rl.RetryAfterSeconds != 20 {
		t.Fatalf("expected 20s remaining, got %d", rl.RetryAfterSeconds)
	}

	*cur = cur.Add(21 * time.Second)
	if _, err := svc.Resend(context.Background(), "u1", "5551234567", "+1"); err != nil {
		t.Fatalf("resend after cooldown: %v", err)
	}
}

func TestResend_CooldownCountsVerifiedRowsToo(t *testing.T) {
	repo := NewMemoryRepo()
	svc, cur := newTestService(repo, &fakeScheduler{callID: "c"}, "123456")

	if _, err := svc.Request(context.Background(), "u1", "5551234567", "+1"); err != nil {
		t.Fatalf("request: %v", err)
	}
	if err := svc.Verify(context.Background(), "u1", "5551234567", "123456"); err != nil {
		t.Fatalf("verify: %v", err)
	}

	*cur = cur.Add(5 * time.Second)
	var rl *RateLimitedError
	if _, err := svc.Resend(context.Background(), "u1", "5551234567", "+1"); !errors.As(err, &rl) {
		t.Fatalf("cooldown applies regardless of row status, got %v", err)
	}
}

func TestRandomCode_Shape(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := randomCode()
		if err != nil {
			t.Fatalf("random code: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("expected 6 digits, got %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("non-numeric code %q", code)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("code out of range: %d", n)
		}
	}
}

func TestFormatCodeForSpeech(t *testing.T) {
	if got := formatCodeForSpeech("123456"); got != "1-2-3-4-5-6" {
		t.Fatalf("got %q", got)
	}
}
