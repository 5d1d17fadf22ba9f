package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"vcarpool/models"
	"vcarpool/services/session"
	"vcarpool/services/upstream"
	"vcarpool/utils"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStartsSession(t *testing.T) {
	h := newHarness(t)
	h.api.LoginFn = func(username, password string) (*models.AuthResponse, error) {
		assert.Equal(t, "ann@example.com", username)
		assert.Equal(t, "s3cret-pass", password)
		return &models.AuthResponse{AccessToken: "opaque", TokenType: "bearer"}, nil
	}
	h.api.MeFn = func(token string) (*models.User, error) {
		assert.Equal(t, "opaque", token)
		return &models.User{ID: "p1", Email: "ann@example.com", FullName: "Ann", Role: models.RoleParent}, nil
	}

	form := url.Values{"username": {"ann@example.com"}, "password": {"s3cret-pass"}}
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[loginResponse](t, w)
	assert.Equal(t, models.RoleParent, body.User.Role)
	assert.Equal(t, "/dashboard", body.Redirect)
	assert.NotEmpty(t, body.Navigation)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	sess, err := h.store.Load(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, "opaque", sess.Token)
	assert.Equal(t, "Ann", sess.User.FullName)
	assert.Equal(t, []string{models.ActionLogin}, h.activity.actions())
}

func upstreamToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": sub, "exp": exp.Unix()}).
		SignedString([]byte("upstream-secret"))
	require.NoError(t, err)
	return tok
}

func TestLoginRejectsExpiredToken(t *testing.T) {
	h := newHarness(t)
	h.api.LoginFn = func(string, string) (*models.AuthResponse, error) {
		return &models.AuthResponse{
			AccessToken: upstreamToken(t, "ann@example.com", time.Now().Add(-time.Minute)),
			UserID:      "p1", Email: "ann@example.com", Role: models.RoleParent,
		}, nil
	}

	w := h.do(http.MethodPost, "/api/auth/login", "", models.LoginInput{Username: "ann@example.com", Password: "s3cret-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, decode[utils.ErrorResponse](t, w).Details, "expired")
	assert.Empty(t, w.Result().Cookies())
	assert.Empty(t, h.activity.actions())
}

func TestLoginFallsBackToTokenSubject(t *testing.T) {
	h := newHarness(t)
	h.api.LoginFn = func(string, string) (*models.AuthResponse, error) {
		return &models.AuthResponse{
			AccessToken: upstreamToken(t, "ann@example.com", time.Now().Add(time.Hour)),
			UserID:      "p1", Role: models.RoleParent,
		}, nil
	}
	h.api.MeFn = func(string) (*models.User, error) {
		return nil, &upstream.APIError{Op: "me", StatusCode: http.StatusServiceUnavailable}
	}

	w := h.do(http.MethodPost, "/api/auth/login", "", models.LoginInput{Username: "ann@example.com", Password: "s3cret-pass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode[loginResponse](t, w)
	assert.Equal(t, "ann@example.com", body.User.Email)
	assert.Equal(t, "p1", body.User.ID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	h := newHarness(t)
	h.api.LoginFn = func(string, string) (*models.AuthResponse, error) {
		return nil, upstream.ErrInvalidCredentials
	}

	w := h.do(http.MethodPost, "/api/auth/login", "", models.LoginInput{Username: "ann@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decode[utils.ErrorResponse](t, w).Message)
	assert.Empty(t, w.Result().Cookies())
}

func TestLoginRequiresBothFields(t *testing.T) {
	h := newHarness(t)
	w := h.do(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "ann@example.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout(t *testing.T) {
	h := newHarness(t)

	w := h.do(http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	cookie := h.signIn("p1", models.RoleParent)
	w = h.do(http.MethodPost, "/api/auth/logout", cookie, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")

	_, err := h.store.Load(context.Background(), cookie)
	assert.ErrorIs(t, err, session.ErrNotFound)
	assert.Equal(t, []string{models.ActionLogout}, h.activity.actions())
}

func TestUpstreamUnauthorizedEndsSession(t *testing.T) {
	h := newHarness(t)
	cookie := h.signIn("p1", models.RoleParent)
	h.api.MeFn = func(string) (*models.User, error) { return nil, upstream.ErrUnauthorized }

	w := h.do(http.MethodGet, "/api/profile", cookie, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/login", decode[utils.ErrorResponse](t, w).Redirect)

	_, err := h.store.Load(context.Background(), cookie)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestDashboardShowsRoleNavigation(t *testing.T) {
	h := newHarness(t)
	cookie := h.signIn("s1", models.RoleStudent)

	w := h.do(http.MethodGet, "/api/dashboard", cookie, nil)
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[dashboardView](t, w)
	assert.Equal(t, models.RoleStudent, view.User.Role)
	assert.Equal(t, "/dashboard/student/rides", view.Navigation[len(view.Navigation)-1].Href)
}

func TestUpdateProfileDropsDriverFlagForNonParents(t *testing.T) {
	h := newHarness(t)
	cookie := h.signIn("a1", models.RoleAdmin)
	h.api.UpdateMeFn = func(_ string, u models.ProfileUpdate) (*models.User, error) {
		assert.Nil(t, u.IsActiveDriver)
		return &models.User{ID: "a1", FullName: u.FullName, Role: models.RoleAdmin}, nil
	}

	yes := true
	w := h.do(http.MethodPut, "/api/profile", cookie, models.ProfileUpdate{FullName: "Ada", IsActiveDriver: &yes})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	sess, err := h.store.Load(context.Background(), cookie)
	require.NoError(t, err)
	assert.Equal(t, "Ada", sess.User.FullName)
}

func TestChangePasswordValidatesConfirmation(t *testing.T) {
	h := newHarness(t)
	cookie := h.signIn("p1", models.RoleParent)
	called := false
	h.api.ChangePasswordFn = func(string, models.PasswordChange) error {
		called = true
		return nil
	}

	w := h.do(http.MethodPut, "/api/profile/password", cookie, models.PasswordChangeInput{
		CurrentPassword: "old-password", NewPassword: "new-password", ConfirmPassword: "different",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)

	w = h.do(http.MethodPut, "/api/profile/password", cookie, models.PasswordChangeInput{
		CurrentPassword: "old-password", NewPassword: "new-password", ConfirmPassword: "new-password",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}
