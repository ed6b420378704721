package httpapi

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"queout/internal/audit"
	"queout/internal/auth"
	"queout/internal/callerid"
	"queout/internal/calls"
	"queout/internal/luron"
	"queout/internal/persona"
	"queout/internal/quicksched"
	"queout/internal/subscription"
	"queout/internal/users"
	"queout/internal/verification"
	"queout/internal/voices"
	"queout/pkg/utils"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth *auth.Manager

	Users          *users.Service
	Verification   *verification.Service
	Luron          *luron.Client
	CallerIDs      *callerid.Service
	Personas       *persona.Service
	Calls          *calls.Service
	QuickSchedules *quicksched.Service
	Subscriptions  *subscription.Service
	Voices         *voices.Service
	Audit          *audit.Service

	DB  *sql.DB
	RDB *redis.Client
	Log *slog.Logger
}

// --- Auth ---

type loginRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Login issues a JWT token pair for a known account.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// GuestSession mints an anonymous identity. The app calls this on first
// launch; everything before phone verification runs under the guest id.
func (h Handlers) GuestSession(c *gin.Context) {
	guestID, pair, err := h.Auth.IssueGuest(time.Now())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":       guestID,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// --- Health ---

// Healthz reports process liveness plus database reachability.
func (h Handlers) Healthz(c *gin.Context) {
	if h.DB != nil {
		if err := utils.HealthCheck(c.Request.Context(), h.DB, 2*time.Second); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "database unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// identity pulls the authenticated user id, aborting with 401 when absent.
func identity(c *gin.Context) (string, bool) {
	userID, err := auth.UserID(c.Request.Context())
	if err != nil || userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return "", false
	}
	return userID, true
}

// respondErr maps service errors onto HTTP statuses. Sentinels from every
// domain package funnel through here so handlers stay free of status logic.
func respondErr(c *gin.Context, err error) {
	var (
		validationErr *luron.ValidationError
		apiErr        *luron.APIError
		rateLimited   *verification.RateLimitedError
		scheduling    *verification.SchedulingError
		persistence   *verification.PersistenceError
	)

	switch {
	case errors.As(err, &validationErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &rateLimited):
		c.Header("Retry-After", strconv.Itoa(rateLimited.RetryAfterSeconds))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       rateLimited.Error(),
			"retry_after": rateLimited.RetryAfterSeconds,
		})
	case errors.As(err, &scheduling), errors.Is(err, luron.ErrConnection):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.As(err, &persistence):
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	case errors.Is(err, verification.ErrExpired),
		errors.Is(err, verification.ErrTooManyAttempts),
		errors.Is(err, verification.ErrInvalidCode):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case isNotFound(err):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isInvalidArgument(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &apiErr):
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": apiErr.Message})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, users.ErrNotFound) ||
		errors.Is(err, verification.ErrNotFound) ||
		errors.Is(err, callerid.ErrNotFound) ||
		errors.Is(err, persona.ErrNotFound) ||
		errors.Is(err, calls.ErrNotFound) ||
		errors.Is(err, quicksched.ErrNotFound) ||
		errors.Is(err, subscription.ErrNotFound) ||
		errors.Is(err, voices.ErrNotFound) ||
		errors.Is(err, luron.ErrCallNotFound) ||
		errors.Is(err, luron.ErrUserNotFound)
}

func isInvalidArgument(err error) bool {
	return errors.Is(err, users.ErrInvalidArgument) ||
		errors.Is(err, verification.ErrInvalidArgument) ||
		errors.Is(err, callerid.ErrInvalidArgument) ||
		errors.Is(err, persona.ErrInvalidArgument) ||
		errors.Is(err, calls.ErrInvalidArgument) ||
		errors.Is(err, quicksched.ErrInvalidArgument) ||
		errors.Is(err, subscription.ErrInvalidArgument) ||
		errors.Is(err, voices.ErrInvalidArgument)
}
