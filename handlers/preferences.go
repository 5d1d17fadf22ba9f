package handlers

import (
	"net/http"
	"time"

	"vcarpool/models"
	"vcarpool/services/preference"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PreferenceHandler serves the parent's weekly preference screen.
type PreferenceHandler struct {
	Preferences preference.Service
	Activity    ActivityLog
	Now         func() time.Time
}

func NewPreferenceHandler(prefs preference.Service, activity ActivityLog) *PreferenceHandler {
	return &PreferenceHandler{Preferences: prefs, Activity: activity, Now: time.Now}
}

// preferenceWeek reads week_start_date from the query or body, defaulting to next Monday.
func (h *PreferenceHandler) preferenceWeek(raw string) (string, error) {
	return utils.ResolveWeek(raw, h.Now(), utils.NextMonday)
}

// GetPreferences handles GET /api/preferences. Each page load starts a fresh draft.
func (h *PreferenceHandler) GetPreferences(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	week, err := h.preferenceWeek(c.Query("week_start_date"))
	if err != nil {
		respondError(c, err, "Invalid week")
		return
	}

	view, err := h.Preferences.Load(c.Request.Context(), sess, week)
	if err != nil {
		respondError(c, err, "Failed to load preferences")
		return
	}
	c.JSON(http.StatusOK, view)
}

type toggleRequest struct {
	models.PreferenceToggleInput
	WeekStartDate string `json:"week_start_date"`
}

// TogglePreference handles POST /api/preferences/toggle. A full category answers 409 with the
// unchanged draft.
func (h *PreferenceHandler) TogglePreference(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	week, err := h.preferenceWeek(req.WeekStartDate)
	if err != nil {
		respondError(c, err, "Invalid week")
		return
	}

	view, err := h.Preferences.Toggle(c.Request.Context(), sess, week, req.SlotID, req.Level)
	if capErr, isCap := preference.IsCapExceeded(err); isCap {
		c.JSON(http.StatusConflict, gin.H{"message": capErr.Error(), "draft": view})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to update preference")
		return
	}
	c.JSON(http.StatusOK, view)
}

type weekRequest struct {
	WeekStartDate string `json:"week_start_date" form:"week_start_date"`
}

// SubmitPreferences handles POST /api/preferences/submit.
func (h *PreferenceHandler) SubmitPreferences(c *gin.Context) {
	logger := getLogger(c)
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var req weekRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}
	week, err := h.preferenceWeek(req.WeekStartDate)
	if err != nil {
		respondError(c, err, "Invalid week")
		return
	}

	saved, err := h.Preferences.Submit(c.Request.Context(), sess, week)
	if err != nil {
		logger.Warn("Preference submission failed", zap.String("week", week), zap.Error(err))
		respondError(c, err, "Failed to submit preferences")
		return
	}
	recordActivity(c, h.Activity, sess, models.ActionPreferencesSubmit, week, "")
	c.JSON(http.StatusOK, gin.H{
		"message":         "Preferences submitted successfully!",
		"week_start_date": week,
		"preferences":     saved,
	})
}

// DiscardPreferences handles DELETE /api/preferences.
func (h *PreferenceHandler) DiscardPreferences(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	week, err := h.preferenceWeek(c.Query("week_start_date"))
	if err != nil {
		respondError(c, err, "Invalid week")
		return
	}
	if err := h.Preferences.Discard(c.Request.Context(), sess, week); err != nil {
		respondError(c, err, "Failed to discard preferences")
		return
	}
	c.Status(http.StatusNoContent)
}
