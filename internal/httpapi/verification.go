package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type verificationRequest struct {
	PhoneNumber string `json:"phone_number"`
	CountryCode string `json:"country_code"`
}

type verifyCodeRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

// RequestVerification starts a phone verification: a voice call speaks a
// fresh code to the given number.
func (h Handlers) RequestVerification(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req verificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res, err := h.Verification.Request(c.Request.Context(), userID, req.PhoneNumber, req.CountryCode)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"verification_id": res.VerificationID,
		"call_id":         res.CallID,
	})
}

// VerifyCode checks a submitted code against the latest pending verification.
func (h Handlers) VerifyCode(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Verification.Verify(c.Request.Context(), userID, req.PhoneNumber, req.Code); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// ResendVerification issues a new code, subject to the resend cooldown.
func (h Handlers) ResendVerification(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req verificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	res, err := h.Verification.Resend(c.Request.Context(), userID, req.PhoneNumber, req.CountryCode)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"verification_id": res.VerificationID,
		"call_id":         res.CallID,
	})
}

// VerificationStatus reports whether the caller has a verified phone.
func (h Handlers) VerificationStatus(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	st, err := h.Users.VerificationStatus(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
