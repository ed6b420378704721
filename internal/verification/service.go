package verification

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"time"

	"queout/internal/audit"
	"queout/internal/luron"
	"queout/pkg/logger"

	"github.com/google/uuid"
)

const (
	codeDigits     = 6
	codeMin        = 100000
	codeSpan       = 900000
	codeTTL        = 10 * time.Minute
	maxAttempts    = 5
	resendCooldown = 30 * time.Second
)

// Fixed delivery settings for verification calls. The call exists only to
// speak the code; the customer-support persona reads the scripted phrase
// and hangs up.
const (
	verificationPersona = "customer_support"
	verificationVoice   = "emma"
	verificationTone    = "friendly"
)

// CallScheduler is the slice of the Luron client this workflow needs.
type CallScheduler interface {
	ScheduleCall(ctx context.Context, req luron.ScheduleRequest) (luron.ScheduleResult, error)
}

// Service drives the phone-verification workflow: request a spoken one-time
// code, check attempts against the stored hash, and stamp the verified phone
// onto the user.
type Service struct {
	repo      Repository
	scheduler CallScheduler
	audit     *audit.Service

	// clock and generateCode are injectable for deterministic tests.
	clock        func() time.Time
	generateCode func() (string, error)
}

func NewService(repo Repository, scheduler CallScheduler, auditSvc *audit.Service) *Service {
	return &Service{
		repo:         repo,
		scheduler:    scheduler,
		audit:        auditSvc,
		clock:        time.Now,
		generateCode: randomCode,
	}
}

// Request places an immediate voice call speaking a fresh 6-digit code and
// records the pending verification.
//
// Ordering guarantee: the pending row (with the code hash) is written before
// the external call is requested, so a crash between the two leaves a useless
// pending row rather than a live call with no record. A scheduling failure
// marks the row superseded.
func (s *Service) Request(ctx context.Context, userID, phoneNumber, countryCode string) (RequestResult, error) {
	if userID == "" || phoneNumber == "" {
		return RequestResult{}, ErrInvalidArgument
	}
	if countryCode == "" {
		countryCode = "+1"
	}

	code, err := s.generateCode()
	if err != nil {
		return RequestResult{}, fmt.Errorf("generating code: %w", err)
	}

	now := s.clock().UTC()
	v := Verification{
		ID:          uuid.NewString(),
		UserID:      userID,
		PhoneNumber: phoneNumber,
		CountryCode: countryCode,
		CodeHash:    hashCode(code),
		Status:      StatusPending,
		ExpiresAt:   now.Add(codeTTL),
		CreatedAt:   now,
	}
	if err := s.repo.CreatePending(ctx, v); err != nil {
		return RequestResult{}, &PersistenceError{Op: "insert", Err: err}
	}

	speech := formatCodeForSpeech(code)
	res, err := s.scheduler.ScheduleCall(ctx, luron.ScheduleRequest{
		UserID:         userID,
		ContactMethods: []luron.ContactMethod{luron.ContactMethodCall},
		SelectedTime:   luron.TimeNow,
		Persona:        verificationPersona,
		Note:           verificationScript(speech),
		Voice:          verificationVoice,
		RecipientPhone: countryCode + phoneNumber,
		Config: luron.PersonaConfig{
			Tone:          verificationTone,
			Duration:      30,
			CustomPhrases: []string{fmt.Sprintf("Your QueOut verification code is %s. Again, your code is %s.", speech, speech)},
		},
	})
	if err != nil {
		if serr := s.repo.MarkSuperseded(ctx, v.ID); serr != nil {
			logger.From(ctx).Error("superseding failed verification row", "verification_id", v.ID, "err", serr)
		}
		return RequestResult{}, &SchedulingError{Err: err}
	}

	// The code remains verifiable without the call id; tolerate this write failing.
	if err := s.repo.SetCallID(ctx, v.ID, res.CallID); err != nil {
		logger.From(ctx).Error("recording luron call id", "verification_id", v.ID, "err", err)
	}

	s.auditEvent(ctx, userID, audit.EventTypeVerificationRequested, v.ID, res.CallID)
	return RequestResult{VerificationID: v.ID, CallID: res.CallID}, nil
}

// Verify checks a submitted code against the latest pending row.
//
// The attempt counter is persisted before the hash comparison, so a crash
// mid-check still consumes an attempt.
func (s *Service) Verify(ctx context.Context, userID, phoneNumber, code string) error {
	if userID == "" || phoneNumber == "" || code == "" {
		return ErrInvalidArgument
	}

	v, ok, err := s.repo.LatestPending(ctx, userID, phoneNumber)
	if err != nil {
		return &PersistenceError{Op: "lookup", Err: err}
	}
	if !ok {
		return ErrNotFound
	}

	now := s.clock().UTC()
	if now.After(v.ExpiresAt) {
		return ErrExpired
	}
	if v.Attempts >= maxAttempts {
		return ErrTooManyAttempts
	}

	if err := s.repo.IncrementAttempts(ctx, v.ID, now); err != nil {
		return &PersistenceError{Op: "attempt update", Err: err}
	}

	supplied := hashCode(code)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(v.CodeHash)) != 1 {
		s.auditEvent(ctx, userID, audit.EventTypeVerificationFailed, v.ID, v.LuronCallID)
		return ErrInvalidCode
	}

	// Row verified and user phone set in one transaction; no half-applied state.
	if err := s.repo.MarkVerified(ctx, v.ID, userID, phoneNumber, v.CountryCode, now); err != nil {
		return &PersistenceError{Op: "verified update", Err: err}
	}

	s.auditEvent(ctx, userID, audit.EventTypeVerificationVerified, v.ID, v.LuronCallID)
	return nil
}

// Resend requests a fresh code, enforcing a cooldown against the most recent
// row for (user, phone) regardless of its status.
func (s *Service) Resend(ctx context.Context, userID, phoneNumber, countryCode string) (RequestResult, error) {
	if userID == "" || phoneNumber == "" {
		return RequestResult{}, ErrInvalidArgument
	}

	last, ok, err := s.repo.Latest(ctx, userID, phoneNumber)
	if err != nil {
		return RequestResult{}, &PersistenceError{Op: "lookup", Err: err}
	}
	if ok {
		elapsed := s.clock().UTC().Sub(last.CreatedAt)
		if elapsed < resendCooldown {
			remaining := resendCooldown - elapsed
			secs := int((remaining + time.Second - 1) / time.Second)
			return RequestResult{}, &RateLimitedError{RetryAfterSeconds: secs}
		}
	}

	return s.Request(ctx, userID, phoneNumber, countryCode)
}

func (s *Service) auditEvent(ctx context.Context, userID string, typ audit.EventType, verificationID, callID string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, audit.Event{
		UserID:         userID,
		Type:           typ,
		VerificationID: verificationID,
		CallID:         callID,
	}); err != nil {
		logger.From(ctx).Warn("audit record failed", "type", typ, "err", err)
	}
}

/* ===================== CODE HELPERS ===================== */

// randomCode draws a uniform 6-digit code in [100000, 999999].
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()+codeMin), nil
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// formatCodeForSpeech separates digits for clear pronunciation:
// "123456" -> "1-2-3-4-5-6".
func formatCodeForSpeech(code string) string {
	return strings.Join(strings.Split(code, ""), "-")
}

func verificationScript(speech string) string {
	return fmt.Sprintf(
		`You must immediately say the following verification code to the person who answers. Do not ask questions. Just say: "Your QueOut verification code is %s. Again, your code is %s. Goodbye." Then end the call.`,
		speech, speech,
	)
}
