package session

import (
	"errors"
	"time"

	"vcarpool/models"
	"vcarpool/utils"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("session not found")
	ErrExpired  = errors.New("session expired")
)

// UserInfo is the part of the signed-in user every view needs.
type UserInfo struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	FullName string          `json:"full_name,omitempty"`
	Role     models.UserRole `json:"role"`
}

// Context is the explicit per-browser session passed to every view. It replaces any
// process-global "current user" state.
type Context struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	User      UserInfo  `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New builds a session for a fresh upstream login. Its lifetime follows the token's exp claim,
// or fallback when the token has none.
func New(auth *models.AuthResponse, now time.Time, fallback time.Duration) *Context {
	return &Context{
		ID:    uuid.New().String(),
		Token: auth.AccessToken,
		User: UserInfo{
			ID:    auth.UserID,
			Email: auth.Email,
			Role:  auth.Role,
		},
		CreatedAt: now,
		ExpiresAt: utils.SessionLifetime(auth.AccessToken, now, fallback),
	}
}

// ApplyUser refreshes the cached identity from a full upstream user record.
func (c *Context) ApplyUser(u *models.User) {
	if u == nil {
		return
	}
	c.User = UserInfo{ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role}
}

// HasRole reports whether the user holds any of roles.
func (c *Context) HasRole(roles ...models.UserRole) bool {
	for _, r := range roles {
		if c.User.Role == r {
			return true
		}
	}
	return false
}

// Expired reports whether the session is past its expiry at now.
func (c *Context) Expired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

// TTL is the remaining lifetime at now, never negative.
func (c *Context) TTL(now time.Time) time.Duration {
	if d := c.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
