package handlers

import (
	"net/http"

	"vcarpool/models"
	"vcarpool/services/session"
	"vcarpool/services/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	API      upstream.CarpoolAPI
	Sessions session.Store
	Activity ActivityLog
}

func NewProfileHandler(api upstream.CarpoolAPI, sessions session.Store, activity ActivityLog) *ProfileHandler {
	return &ProfileHandler{API: api, Sessions: sessions, Activity: activity}
}

// GetProfile handles GET /api/profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}
	me, err := h.API.Me(c.Request.Context(), sess.Token)
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, me)
}

// UpdateProfile handles PUT /api/profile. The driver flag only applies to parents.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	logger := getLogger(c)
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		bindError(c, err)
		return
	}
	if sess.User.Role != models.RoleParent {
		update.IsActiveDriver = nil
	}

	me, err := h.API.UpdateMe(c.Request.Context(), sess.Token, update)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}

	sess.ApplyUser(me)
	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		logger.Warn("Failed to refresh session after profile update", zap.Error(err))
	}
	recordActivity(c, h.Activity, sess, models.ActionProfileUpdate, sess.User.ID, "")
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully!", "user": me})
}

// ChangePassword handles PUT /api/profile/password.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var input models.PasswordChangeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	change := models.PasswordChange{CurrentPassword: input.CurrentPassword, NewPassword: input.NewPassword}
	if err := h.API.ChangePassword(c.Request.Context(), sess.Token, change); err != nil {
		respondError(c, err, "Failed to change password")
		return
	}
	recordActivity(c, h.Activity, sess, models.ActionPasswordChange, sess.User.ID, "")
	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully!"})
}
