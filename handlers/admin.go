package handlers

import (
	"net/http"
	"strconv"

	"vcarpool/models"
	"vcarpool/services/statistics"
	"vcarpool/services/upstream"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates admin-only screens that are not about schedules.
type AdminHandler struct {
	API        upstream.CarpoolAPI
	Activity   ActivityLog
	Statistics statistics.Service
}

func NewAdminHandler(api upstream.CarpoolAPI, activity ActivityLog, stats statistics.Service) *AdminHandler {
	return &AdminHandler{API: api, Activity: activity, Statistics: stats}
}

// CreateUser handles POST /api/admin/users.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	logger := getLogger(c)
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var input models.UserCreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	created, err := h.API.CreateUser(c.Request.Context(), sess.Token, input.ToUserCreate())
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	logger.Info("User created", zap.String("user", created.ID), zap.String("role", string(created.Role)))
	recordActivity(c, h.Activity, sess, models.ActionUserCreate, created.ID, string(created.Role))
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully!", "user": created})
}

// ListActivity handles GET /api/admin/activity?limit=&actor=.
func (h *AdminHandler) ListActivity(c *gin.Context) {
	if _, ok := requireSession(c); !ok {
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			utils.JSONError(c, http.StatusBadRequest, "Invalid limit", "limit must be a positive integer")
			return
		}
		limit = n
	}
	if h.Activity == nil {
		c.JSON(http.StatusOK, []models.ActivityRecord{})
		return
	}

	var records []models.ActivityRecord
	var err error
	if actor := c.Query("actor"); actor != "" {
		records, err = h.Activity.ByActor(c.Request.Context(), actor, limit)
	} else {
		records, err = h.Activity.Recent(c.Request.Context(), limit)
	}
	if err != nil {
		respondError(c, err, "Failed to load activity")
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetStatistics handles GET /api/admin/statistics?timeframe=, defaulting to the month.
func (h *AdminHandler) GetStatistics(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	tf := models.Timeframe(c.DefaultQuery("timeframe", string(models.TimeframeMonth)))
	if !tf.Valid() {
		utils.JSONError(c, http.StatusBadRequest, "Invalid timeframe", "timeframe must be week, month, quarter or year")
		return
	}

	stats, err := h.Statistics.Get(c.Request.Context(), sess.Token, tf)
	if err != nil {
		respondError(c, err, "Failed to load statistics")
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeframe": tf, "statistics": stats})
}
