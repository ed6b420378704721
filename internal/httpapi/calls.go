package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"queout/internal/calls"
)

// --- Upcoming calls ---

// ListUpcomingCalls returns pending calls soonest-first. ?detailed=true
// reads the joined view with persona and caller display fields.
func (h Handlers) ListUpcomingCalls(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	if c.Query("detailed") == "true" {
		out, err := h.Calls.ListUpcomingDetailed(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"upcoming_calls": out})
		return
	}
	out, err := h.Calls.ListUpcoming(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcoming_calls": out})
}

func (h Handlers) CreateUpcomingCall(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req calls.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.Calls.CreateUpcoming(c.Request.Context(), userID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) UpdateUpcomingCall(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req calls.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.Calls.UpdateUpcoming(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeleteUpcomingCall(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Calls.DeleteUpcoming(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkCallSeen clears the new-call animation flag.
func (h Handlers) MarkCallSeen(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.Calls.MarkNotNew(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type completeCallRequest struct {
	Status string `json:"status"`
}

// CompleteCall moves an upcoming call into history.
func (h Handlers) CompleteCall(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	// Body is optional; an absent status defaults to answered.
	var req completeCallRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.Calls.Complete(c.Request.Context(), userID, c.Param("id"), req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- Call history ---

func (h Handlers) ListCallHistory(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	if c.Query("detailed") == "true" {
		out, err := h.Calls.ListHistoryDetailed(c.Request.Context(), userID, limit)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"history": out})
		return
	}
	out, err := h.Calls.ListHistory(c.Request.Context(), userID, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"history": out})
}

type addHistoryRequest struct {
	calls.CreateRequest
	Status string `json:"status"`
}

// AddHistoryEntry records a finished call that never had an upcoming row,
// e.g. an immediate call the client reports after the fact.
func (h Handlers) AddHistoryEntry(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req addHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.Calls.AddHistory(c.Request.Context(), userID, req.CreateRequest, req.Status)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) UnreadHistoryCount(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	n, err := h.Calls.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (h Handlers) MarkAllHistoryRead(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Calls.MarkAllRead(c.Request.Context(), userID); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) MarkHistoryItemRead(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Calls.MarkRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) DeleteHistoryItem(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Calls.DeleteHistory(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
