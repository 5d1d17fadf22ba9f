package handlers

import (
	"context"

	"vcarpool/models"
	"vcarpool/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ActivityLog is where dashboard actions are recorded.
type ActivityLog interface {
	Record(ctx context.Context, record models.ActivityRecord) (string, error)
	Recent(ctx context.Context, limit int) ([]models.ActivityRecord, error)
	ByActor(ctx context.Context, actorID string, limit int) ([]models.ActivityRecord, error)
}

// recordActivity appends to the activity log. Failures are logged and never reach the user.
func recordActivity(c *gin.Context, log ActivityLog, sess *session.Context, action, target, details string) {
	if log == nil || sess == nil {
		return
	}
	_, err := log.Record(c.Request.Context(), models.ActivityRecord{
		ActorID:   sess.User.ID,
		ActorRole: sess.User.Role,
		Action:    action,
		Target:    target,
		Details:   details,
	})
	if err != nil {
		getLogger(c).Warn("Failed to record activity", zap.String("action", action), zap.Error(err))
	}
}
