package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"queout/internal/audit"
	"queout/internal/calls"
	"queout/internal/luron"
	"queout/pkg/utils"
)

const (
	scheduleGuardTTL   = 30 * time.Second
	scheduleGuardLimit = 1
)

type scheduleRequest struct {
	ContactMethods []string `json:"contact_methods"`
	SelectedTime   string   `json:"selected_time"`
	CustomDate     *string  `json:"custom_date,omitempty"`
	PersonaID      string   `json:"persona_id"`
	Note           string   `json:"note"`
	VoiceID        string   `json:"voice_id"`
	CallerIDNumber string   `json:"caller_id_number,omitempty"`
	CallerID       *string  `json:"caller_id,omitempty"`

	Tone          string   `json:"tone,omitempty"`
	Duration      int      `json:"duration,omitempty"`
	CustomPhrases []string `json:"custom_phrases,omitempty"`
}

// ScheduleCall places a call request with the Luron API, burns one unit of
// the caller's allowance and records the upcoming call.
//
// A per-user guard in redis suppresses double-submitted requests while one
// is in flight; redis being down degrades to unguarded scheduling.
func (h Handlers) ScheduleCall(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if len(req.ContactMethods) == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "contact_methods required"})
		return
	}

	var customDate *time.Time
	if req.CustomDate != nil {
		t, err := time.Parse(time.RFC3339, *req.CustomDate)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "custom_date must be RFC 3339"})
			return
		}
		customDate = &t
	}

	methods := make([]luron.ContactMethod, len(req.ContactMethods))
	for i, m := range req.ContactMethods {
		methods[i] = luron.ContactMethod(m)
	}
	primary := luron.PrimaryContactType(methods)

	allowed, err := h.Subscriptions.CanUse(c.Request.Context(), userID, string(primary))
	if err != nil {
		respondErr(c, err)
		return
	}
	if !allowed {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "no " + string(primary) + "s remaining on current plan"})
		return
	}

	if h.RDB != nil {
		guardKey := "schedule:" + userID
		acquired, err := utils.AcquireMutationGuard(c.Request.Context(), h.RDB, guardKey, scheduleGuardLimit, scheduleGuardTTL)
		if err != nil {
			h.Log.Warn("schedule guard unavailable", "error", err)
		} else if !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "a schedule request is already in progress"})
			return
		} else {
			defer func() {
				if err := utils.ReleaseMutationGuard(c.Request.Context(), h.RDB, guardKey); err != nil {
					h.Log.Warn("schedule guard release failed", "error", err)
				}
			}()
		}
	}

	res, err := h.Luron.ScheduleCall(c.Request.Context(), luron.ScheduleRequest{
		UserID:         userID,
		ContactMethods: methods,
		SelectedTime:   luron.TimeSelection(req.SelectedTime),
		CustomDate:     customDate,
		Persona:        req.PersonaID,
		Note:           req.Note,
		Voice:          req.VoiceID,
		CallerIDNumber: req.CallerIDNumber,
		Config: luron.PersonaConfig{
			Tone:          req.Tone,
			Duration:      req.Duration,
			CustomPhrases: req.CustomPhrases,
		},
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	// Post-schedule bookkeeping is best-effort: the remote call is already
	// placed, so failures here are logged rather than surfaced.
	if err := h.Subscriptions.DecrementUsage(c.Request.Context(), userID, string(primary)); err != nil {
		h.Log.Error("usage decrement failed after schedule", "user_id", userID, "error", err)
	}

	upcoming, err := h.Calls.CreateUpcoming(c.Request.Context(), userID, calls.CreateRequest{
		PersonaID:       orFallback(req.PersonaID, "manager"),
		VoiceID:         req.VoiceID,
		CallerID:        req.CallerID,
		ContactMethods:  req.ContactMethods,
		ContextNote:     req.Note,
		DurationSeconds: req.Duration,
		DueTimestamp:    res.ScheduledFor,
		LuronCallID:     &res.CallID,
	})
	if err != nil {
		h.Log.Error("upcoming call record failed after schedule", "user_id", userID, "call_id", res.CallID, "error", err)
	}

	if err := h.Audit.Record(c.Request.Context(), audit.Event{
		UserID:  userID,
		Type:    audit.EventTypeCallScheduled,
		CallID:  res.CallID,
		Message: "scheduled via " + string(primary),
	}); err != nil {
		h.Log.Warn("audit record failed", "user_id", userID, "error", err)
	}

	out := gin.H{
		"success":       true,
		"message":       res.Message,
		"call_id":       res.CallID,
		"scheduled_for": res.ScheduledFor,
	}
	if upcoming.ID != "" {
		out["upcoming_call_id"] = upcoming.ID
	}
	c.JSON(http.StatusOK, out)
}

// LuronHistory proxies the remote call history for the caller.
func (h Handlers) LuronHistory(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.Luron.GetHistory(c.Request.Context(), userID, luron.HistoryFilters{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) LuronCallDetails(c *gin.Context) {
	if _, ok := identity(c); !ok {
		return
	}
	res, err := h.Luron.GetCallDetails(c.Request.Context(), c.Param("call_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h Handlers) LuronStats(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	res, err := h.Luron.GetUserStats(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// LuronHealth never fails: transport errors surface as an unreachable status.
func (h Handlers) LuronHealth(c *gin.Context) {
	res, err := h.Luron.CheckHealth(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func orFallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
