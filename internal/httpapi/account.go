package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"queout/internal/users"
)

// Me returns the caller's profile.
func (h Handlers) Me(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	u, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type updateMeRequest struct {
	Email                *string `json:"email,omitempty"`
	CreatorModeEnabled   *bool   `json:"creator_mode_enabled,omitempty"`
	NotificationsEnabled *bool   `json:"notifications_enabled,omitempty"`
	SelectedRingtone     *string `json:"selected_ringtone,omitempty"`
}

// UpdateMe patches profile fields. Absent fields are untouched.
func (h Handlers) UpdateMe(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req updateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := h.Users.Update(c.Request.Context(), userID, users.UpdateRequest{
		Email:                req.Email,
		CreatorModeEnabled:   req.CreatorModeEnabled,
		NotificationsEnabled: req.NotificationsEnabled,
		SelectedRingtone:     req.SelectedRingtone,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

func (h Handlers) SetCreatorMode(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := h.Users.SetCreatorMode(c.Request.Context(), userID, req.Enabled)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h Handlers) SetNotifications(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := h.Users.SetNotifications(c.Request.Context(), userID, req.Enabled)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type ringtoneRequest struct {
	Ringtone string `json:"ringtone"`
}

func (h Handlers) SetRingtone(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req ringtoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	u, err := h.Users.SetRingtone(c.Request.Context(), userID, req.Ringtone)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// --- Subscription ---

func (h Handlers) GetSubscription(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	sub, found, err := h.Subscriptions.Get(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"subscription": nil})
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h Handlers) SubscriptionStatus(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	st, found, err := h.Subscriptions.Status(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"status": nil})
		return
	}
	c.JSON(http.StatusOK, st)
}

type updateTierRequest struct {
	Tier                 string  `json:"tier"`
	BillingCycle         string  `json:"billing_cycle"`
	StripeSubscriptionID *string `json:"stripe_subscription_id,omitempty"`
}

func (h Handlers) UpdateTier(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req updateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sub, err := h.Subscriptions.UpdateTier(c.Request.Context(), userID, req.Tier, req.BillingCycle, req.StripeSubscriptionID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h Handlers) CancelSubscription(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	sub, err := h.Subscriptions.Cancel(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ResetMonthlyUsage restores the caller's allowance to the plan limits.
// Intended for the billing-period rollover job.
func (h Handlers) ResetMonthlyUsage(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	sub, err := h.Subscriptions.ResetMonthlyUsage(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

type topUpRequest struct {
	Amount int `json:"amount"`
}

func (h Handlers) AddTopUp(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req topUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	sub, err := h.Subscriptions.AddTopUp(c.Request.Context(), userID, req.Amount)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
