package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"vcarpool/metrics"
	"vcarpool/models"
	"vcarpool/services/tasks"
	"vcarpool/services/upstream"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StatsInvalidator drops cached statistics once a schedule changes.
type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ScheduleHandler serves the admin schedule screen. Queue may be nil, in which case only
// synchronous generation is offered.
type ScheduleHandler struct {
	API      upstream.CarpoolAPI
	Queue    tasks.ScheduleQueue
	Stats    StatsInvalidator
	Activity ActivityLog
	Now      func() time.Time
}

func NewScheduleHandler(api upstream.CarpoolAPI, queue tasks.ScheduleQueue, stats StatsInvalidator, activity ActivityLog) *ScheduleHandler {
	return &ScheduleHandler{API: api, Queue: queue, Stats: stats, Activity: activity, Now: time.Now}
}

var errAsyncUnavailable = errors.New("background generation is not configured")

// GetSchedule handles GET /api/admin/schedule. A week with no schedule yet is empty, not an error.
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	week, err := utils.ResolveWeek(c.Query("week_start_date"), h.Now(), utils.NextMonday)
	if err != nil {
		respondError(c, err, "Invalid week")
		return
	}

	assignments, err := h.API.Schedule(c.Request.Context(), sess.Token, week)
	if upstream.IsNotFound(err) {
		assignments, err = []models.RideAssignment{}, nil
	}
	if err != nil {
		respondError(c, err, "Failed to load schedule")
		return
	}
	if assignments == nil {
		assignments = []models.RideAssignment{}
	}
	c.JSON(http.StatusOK, gin.H{"week_start_date": week, "assignments": assignments})
}

// GenerateSchedule handles POST /api/admin/schedule/generate, inline by default or through the
// job queue when async is set.
func (h *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	logger := getLogger(c)
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	var input models.ScheduleGenerateInput
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		bindError(c, err)
		return
	}
	week, err := utils.ResolveWeek(input.WeekStartDate, h.Now(), utils.NextMonday)
	if err != nil {
		respondError(c, err, "Invalid week")
		return
	}

	if input.Async {
		if h.Queue == nil {
			metrics.RecordScheduleGeneration("async", "error")
			utils.JSONError(c, http.StatusServiceUnavailable, "Failed to queue schedule generation", errAsyncUnavailable.Error())
			return
		}
		job, err := h.Queue.EnqueueScheduleGeneration(c.Request.Context(), tasks.ScheduleGeneratePayload{
			WeekStartDate: week,
			Token:         sess.Token,
			RequestedBy:   sess.User.ID,
		})
		if err != nil {
			metrics.RecordScheduleGeneration("async", "error")
			respondError(c, err, "Failed to queue schedule generation")
			return
		}
		metrics.RecordScheduleGeneration("async", "queued")
		logger.Info("Schedule generation queued", zap.String("job", job.ID), zap.String("week", week))
		recordActivity(c, h.Activity, sess, models.ActionScheduleGenerate, week, "job "+job.ID)
		c.JSON(http.StatusAccepted, gin.H{"message": "Schedule generation started", "job": job})
		return
	}

	assignments, err := h.API.GenerateSchedule(c.Request.Context(), sess.Token, week)
	if err != nil {
		metrics.RecordScheduleGeneration("sync", "error")
		respondError(c, err, "Failed to generate schedule")
		return
	}
	metrics.RecordScheduleGeneration("sync", "ok")
	if h.Stats != nil {
		if err := h.Stats.Invalidate(c.Request.Context()); err != nil {
			logger.Warn("Failed to invalidate statistics cache", zap.Error(err))
		}
	}
	if assignments == nil {
		assignments = []models.RideAssignment{}
	}
	recordActivity(c, h.Activity, sess, models.ActionScheduleGenerate, week, fmt.Sprintf("%d assignments", len(assignments)))
	c.JSON(http.StatusOK, gin.H{
		"message":         fmt.Sprintf("Schedule generated: %d assignments", len(assignments)),
		"week_start_date": week,
		"assignments":     assignments,
	})
}

// ScheduleJob handles GET /api/admin/schedule/jobs/:id.
func (h *ScheduleHandler) ScheduleJob(c *gin.Context) {
	if _, ok := requireSession(c); !ok {
		return
	}
	if h.Queue == nil {
		respondError(c, tasks.ErrJobNotFound, "Schedule job not found")
		return
	}
	job, err := h.Queue.JobStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load schedule job")
		return
	}
	c.JSON(http.StatusOK, job)
}
