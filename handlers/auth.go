package handlers

import (
	"net/http"
	"time"

	"vcarpool/middleware"
	"vcarpool/models"
	"vcarpool/services/navigation"
	"vcarpool/services/session"
	"vcarpool/services/upstream"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler signs users in against the upstream and owns the browser session lifecycle.
type AuthHandler struct {
	API        upstream.CarpoolAPI
	Sessions   session.Store
	Activity   ActivityLog
	Cookie     middleware.SessionOptions
	SessionTTL time.Duration
}

func NewAuthHandler(api upstream.CarpoolAPI, sessions session.Store, activity ActivityLog, cookie middleware.SessionOptions, ttl time.Duration) *AuthHandler {
	return &AuthHandler{API: api, Sessions: sessions, Activity: activity, Cookie: cookie, SessionTTL: ttl}
}

type loginResponse struct {
	User       session.UserInfo `json:"user"`
	Navigation []models.NavLink `json:"navigation"`
	ExpiresAt  time.Time        `json:"expires_at"`
	Redirect   string           `json:"redirect"`
}

// Login handles POST /api/auth/login with either a form or a JSON body.
func (h *AuthHandler) Login(c *gin.Context) {
	logger := getLogger(c)

	var input models.LoginInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}

	auth, err := h.API.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		logger.Info("Login rejected", zap.String("username", input.Username), zap.Error(err))
		respondError(c, err, "Login failed")
		return
	}

	now := time.Now()
	sess := session.New(auth, now, h.SessionTTL)
	if sess.Expired(now) {
		logger.Warn("Upstream issued an expired token", zap.String("username", input.Username))
		utils.JSONError(c, http.StatusUnauthorized, "Login failed", "The sign-in token has already expired. Please try again.")
		return
	}

	me, err := h.API.Me(c.Request.Context(), auth.AccessToken)
	switch {
	case err == nil:
		sess.ApplyUser(me)
	case sess.User.Role.Valid() && sess.User.ID != "":
		logger.Warn("Could not load profile after login, using token response", zap.Error(err))
		if sess.User.Email == "" {
			if sub, subErr := utils.TokenSubject(auth.AccessToken); subErr == nil {
				sess.User.Email = sub
			}
		}
	default:
		respondError(c, err, "Login failed")
		return
	}

	if err := h.Sessions.Save(c.Request.Context(), sess); err != nil {
		logger.Error("Failed to save session", zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable, "Could not start a session", "Please try again shortly.")
		return
	}
	middleware.SetSessionCookie(c, h.Cookie, sess)
	recordActivity(c, h.Activity, sess, models.ActionLogin, sess.User.Email, "")

	logger.Info("User logged in", zap.String("user", sess.User.ID), zap.String("role", string(sess.User.Role)))
	c.JSON(http.StatusOK, loginResponse{
		User:       sess.User,
		Navigation: navigation.LinksFor(sess.User.Role),
		ExpiresAt:  sess.ExpiresAt,
		Redirect:   "/dashboard",
	})
}

// Logout handles POST /api/auth/logout. It succeeds even without a live session.
func (h *AuthHandler) Logout(c *gin.Context) {
	logger := getLogger(c)

	if id, err := c.Cookie(h.Cookie.CookieName); err == nil && id != "" {
		if sess, err := h.Sessions.Load(c.Request.Context(), id); err == nil {
			recordActivity(c, h.Activity, sess, models.ActionLogout, "", "")
		}
		if err := h.Sessions.Delete(c.Request.Context(), id); err != nil {
			logger.Warn("Failed to delete session on logout", zap.Error(err))
		}
	}
	middleware.ClearSessionCookie(c, h.Cookie)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": "/login"})
}
