package middleware

import (
	"net/http"
	"strings"

	"vcarpool/models"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only sessions holding one of roles. It must run after SessionAuthMiddleware.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	allowed := strings.Join(names, " or ")

	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			utils.JSONRedirectError(c, http.StatusUnauthorized, "Authentication required", "Please log in.", "/login")
			return
		}
		if !sess.HasRole(roles...) {
			utils.JSONRedirectError(c, http.StatusForbidden, "Access denied", "This page requires the "+allowed+" role.", "/dashboard")
			return
		}
		c.Next()
	}
}
