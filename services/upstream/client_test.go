package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vcarpool/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL+"/api/v1", 5*time.Second, nil)
	require.NoError(t, err)
	return client
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	_, err := NewClient("/api/v1", time.Second, nil)
	assert.Error(t, err)
}

func TestLoginPostsForm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "parent@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "hunter22", r.PostForm.Get("password"))

		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			AccessToken: "tok", TokenType: "bearer", UserID: "u1", Email: "parent@example.com", Role: models.RoleParent,
		})
	})

	auth, err := client.Login(context.Background(), "parent@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok", auth.AccessToken)
	assert.Equal(t, models.RoleParent, auth.Role)
}

func TestLoginInvalidCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect email or password"}`)
	})

	_, err := client.Login(context.Background(), "x@example.com", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBearerTokenAndUnauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer expired", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := client.Me(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestSubmitWeeklyPreferences(t *testing.T) {
	var got []models.PreferenceSubmission
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/parent/weekly-preferences", r.URL.Path)
		assert.Equal(t, "2026-10-19", r.URL.Query().Get("week_start_date"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, `[{"id":"p1","template_slot_id":"a","preference_level":"PREFERRED"}]`)
	})

	submission := []models.PreferenceSubmission{
		{TemplateSlotID: "a", PreferenceLevel: models.PreferencePreferred},
		{TemplateSlotID: "b", PreferenceLevel: models.PreferenceUnavailable},
	}
	saved, err := client.SubmitWeeklyPreferences(context.Background(), "tok", "2026-10-19", submission)
	require.NoError(t, err)

	if diff := cmp.Diff(submission, got); diff != "" {
		t.Errorf("submitted body mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, saved, 1)
	assert.Equal(t, "p1", saved[0].ID)
}

func TestSubmitEmptyPreferencesSendsArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `[]`, string(body))
		_, _ = io.WriteString(w, `[]`)
	})

	_, err := client.SubmitWeeklyPreferences(context.Background(), "tok", "2026-10-19", nil)
	require.NoError(t, err)
}

func TestAPIErrorDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"detail":"Only parents can submit preferences"}`)
	})

	_, err := client.WeeklyPreferences(context.Background(), "tok", "2026-10-19")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "Only parents can submit preferences", apiErr.Detail)
}

func TestAPIErrorValidationList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"detail":[{"loc":["query","week_start_date"],"msg":"field required"}]}`)
	})

	_, err := client.Schedule(context.Background(), "tok", "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "field required", apiErr.Detail)
}

func TestDeleteTemplateNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/schedule-templates/t%201", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteScheduleTemplate(context.Background(), "tok", "t 1"))
}

func TestSwapDecisionPath(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/swap-requests/s1/reject", r.URL.Path)
		_, _ = io.WriteString(w, `{"id":"s1","status":"REJECTED"}`)
	})

	swap, err := client.RejectSwapRequest(context.Background(), "tok", "s1")
	require.NoError(t, err)
	assert.Equal(t, models.SwapStatusRejected, swap.Status)
}

func TestNotFoundHelper(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.ScheduleTemplate(context.Background(), "tok", "missing")
	assert.True(t, IsNotFound(err))
}

func TestPing(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/", r.URL.Path)
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	})
	assert.NoError(t, client.Ping(context.Background()))
}
