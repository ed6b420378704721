package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"queout/internal/persona"
	"queout/internal/quicksched"
)

// Handlers for the scheduling "library": caller ids, personas and their
// configs, quick-schedule presets, and the voice catalog.

// --- Caller IDs ---

func (h Handlers) ListCallerIDs(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.CallerIDs.List(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"caller_ids": out})
}

func (h Handlers) GetCallerID(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.CallerIDs.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type createCallerIDRequest struct {
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Location    string `json:"location"`
}

func (h Handlers) CreateCallerID(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req createCallerIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.CallerIDs.Create(c.Request.Context(), userID, req.Name, req.PhoneNumber, req.Location)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

type renameCallerIDRequest struct {
	Name string `json:"name"`
}

func (h Handlers) RenameCallerID(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req renameCallerIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.CallerIDs.Rename(c.Request.Context(), userID, c.Param("id"), req.Name)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeleteCallerID(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.CallerIDs.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Personas ---

func (h Handlers) ListPersonas(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.Personas.List(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"personas": out})
}

func (h Handlers) GetPersona(c *gin.Context) {
	if _, ok := identity(c); !ok {
		return
	}
	out, err := h.Personas.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type createPersonaRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func (h Handlers) CreatePersona(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req createPersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.Personas.Create(c.Request.Context(), userID, req.Name, req.Icon, req.Color)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) UpdatePersona(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req persona.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.Personas.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeletePersona(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Personas.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) GetPersonaConfig(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	cfg, found, err := h.Personas.GetConfig(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, gin.H{"config": nil})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h Handlers) ListPersonaConfigs(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.Personas.ListConfigs(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"configs": out})
}

func (h Handlers) UpsertPersonaConfig(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req persona.ConfigInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cfg, err := h.Personas.UpsertConfig(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (h Handlers) DeletePersonaConfig(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Personas.DeleteConfig(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Quick schedules ---

func (h Handlers) ListQuickSchedules(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.QuickSchedules.List(c.Request.Context(), userID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"quick_schedules": out})
}

func (h Handlers) GetQuickSchedule(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.QuickSchedules.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) CreateQuickSchedule(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req quicksched.QuickSchedule
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.QuickSchedules.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) UpdateQuickSchedule(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	var req quicksched.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.QuickSchedules.Update(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeleteQuickSchedule(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.QuickSchedules.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h Handlers) UseQuickSchedule(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.QuickSchedules.IncrementUsage(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) PromoteQuickSchedule(c *gin.Context) {
	userID, ok := identity(c)
	if !ok {
		return
	}
	out, err := h.QuickSchedules.Promote(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// --- Voices ---

func (h Handlers) ListVoices(c *gin.Context) {
	if _, ok := identity(c); !ok {
		return
	}
	if category := c.Query("category"); category != "" {
		out, err := h.Voices.ListByCategory(c.Request.Context(), category)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"voices": out})
		return
	}
	out, err := h.Voices.ListAvailable(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"voices": out})
}

func (h Handlers) GetVoice(c *gin.Context) {
	if _, ok := identity(c); !ok {
		return
	}
	out, err := h.Voices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
