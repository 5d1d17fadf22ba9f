package middleware

import (
	"errors"
	"net/http"
	"time"

	"vcarpool/services/session"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionCtxKey        = "session"
	sessionOptionsCtxKey = "sessionOptions"
	sessionRevokedCtxKey = "sessionRevoked"
)

// SessionOptions describes the browser cookie carrying the session id.
type SessionOptions struct {
	CookieName string
	Secure     bool
}

// SessionAuthMiddleware loads the session named by the cookie and makes it available through
// CurrentSession. A session revoked during the request is deleted once the handler returns.
func SessionAuthMiddleware(store session.Store, opts SessionOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionOptionsCtxKey, opts)

		id, err := c.Cookie(opts.CookieName)
		if err != nil || id == "" {
			utils.JSONRedirectError(c, http.StatusUnauthorized, "Authentication required", "Please log in.", "/login")
			return
		}

		sess, err := store.Load(c.Request.Context(), id)
		if errors.Is(err, session.ErrNotFound) || errors.Is(err, session.ErrExpired) {
			ClearSessionCookie(c, opts)
			utils.JSONRedirectError(c, http.StatusUnauthorized, "Session expired", "Please log in again.", "/login")
			return
		}
		if err != nil {
			utils.GetLogger().Error("Failed to load session", zap.Error(err))
			utils.JSONError(c, http.StatusServiceUnavailable, "Session store unavailable", "")
			return
		}

		c.Set(sessionCtxKey, sess)
		c.Next()

		if c.GetBool(sessionRevokedCtxKey) {
			if err := store.Delete(c.Request.Context(), sess.ID); err != nil {
				utils.GetLogger().Warn("Failed to delete revoked session", zap.String("session", sess.ID), zap.Error(err))
			}
		}
	}
}

// CurrentSession returns the session loaded for this request.
func CurrentSession(c *gin.Context) (*session.Context, bool) {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*session.Context)
	return sess, ok && sess != nil
}

// RevokeSession ends the browser session: the cookie is cleared now and the stored session is
// deleted after the handler finishes.
func RevokeSession(c *gin.Context) {
	c.Set(sessionRevokedCtxKey, true)
	if v, ok := c.Get(sessionOptionsCtxKey); ok {
		ClearSessionCookie(c, v.(SessionOptions))
	}
}

func SetSessionCookie(c *gin.Context, opts SessionOptions, sess *session.Context) {
	maxAge := int(time.Until(sess.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.CookieName, sess.ID, maxAge, "/", "", opts.Secure, true)
}

func ClearSessionCookie(c *gin.Context, opts SessionOptions) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(opts.CookieName, "", -1, "/", "", opts.Secure, true)
}
