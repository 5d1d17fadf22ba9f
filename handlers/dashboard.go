package handlers

import (
	"net/http"
	"time"

	"vcarpool/models"
	"vcarpool/services/navigation"
	"vcarpool/services/session"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
)

type dashboardView struct {
	User            session.UserInfo `json:"user"`
	Navigation      []models.NavLink `json:"navigation"`
	CurrentWeek     string           `json:"current_week"`
	NextWeek        string           `json:"next_week"`
	SessionExpireAt time.Time        `json:"session_expires_at"`
}

// DashboardHandler handles GET /api/dashboard: the signed-in user and their navigation.
func DashboardHandler(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	now := time.Now()
	c.JSON(http.StatusOK, dashboardView{
		User:            sess.User,
		Navigation:      navigation.LinksFor(sess.User.Role),
		CurrentWeek:     utils.CurrentMonday(now).Format(utils.DateLayout),
		NextWeek:        utils.NextMonday(now).Format(utils.DateLayout),
		SessionExpireAt: sess.ExpiresAt,
	})
}
