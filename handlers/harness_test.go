package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vcarpool/middleware"
	"vcarpool/models"
	"vcarpool/services/preference"
	"vcarpool/services/session"
	"vcarpool/services/statistics"
	"vcarpool/services/tasks"
	"vcarpool/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Thursday; next Monday is 2026-10-19 and the current week began 2026-10-12.
var fixedNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

var testCookie = middleware.SessionOptions{CookieName: "vcarpool_session"}

func init() {
	gin.SetMode(gin.TestMode)
	utils.Logger = zap.NewNop()
}

type fakeQueue struct {
	enqueued []tasks.ScheduleGeneratePayload
	jobs     map[string]*models.ScheduleJob
}

func (q *fakeQueue) EnqueueScheduleGeneration(_ context.Context, p tasks.ScheduleGeneratePayload) (*models.ScheduleJob, error) {
	q.enqueued = append(q.enqueued, p)
	return &models.ScheduleJob{ID: "job-1", WeekStartDate: p.WeekStartDate, State: "pending"}, nil
}

func (q *fakeQueue) JobStatus(_ context.Context, id string) (*models.ScheduleJob, error) {
	if job, ok := q.jobs[id]; ok {
		return job, nil
	}
	return nil, tasks.ErrJobNotFound
}

func (q *fakeQueue) Close() error { return nil }

type harness struct {
	t        *testing.T
	api      *fakeAPI
	store    *session.RedisStore
	activity *memoryActivity
	queue    *fakeQueue
	schedule *ScheduleHandler
	mr       *miniredis.Miniredis
	router   *gin.Engine
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	h := &harness{
		t:        t,
		api:      &fakeAPI{},
		store:    session.NewRedisStore(client),
		activity: &memoryActivity{},
		queue:    &fakeQueue{jobs: map[string]*models.ScheduleJob{}},
		mr:       mr,
	}

	auth := NewAuthHandler(h.api, h.store, h.activity, testCookie, time.Hour)
	profile := NewProfileHandler(h.api, h.store, h.activity)
	prefs := NewPreferenceHandler(preference.NewService(h.api, preference.NewRedisDraftStore(client, 30*time.Minute), nil), h.activity)
	prefs.Now = func() time.Time { return fixedNow }
	rides := NewRideHandler(h.api)
	rides.Now = func() time.Time { return fixedNow }
	swaps := NewSwapHandler(h.api, h.activity)
	stats := statistics.NewCachedService(h.api, client, time.Minute, nil)
	admin := NewAdminHandler(h.api, h.activity, stats)
	templates := NewTemplateHandler(h.api, h.activity)
	h.schedule = NewScheduleHandler(h.api, h.queue, stats, h.activity)
	h.schedule.Now = func() time.Time { return fixedNow }

	r := gin.New()
	r.Use(middleware.RequestLogger(zap.NewNop()))
	r.POST("/api/auth/login", auth.Login)
	r.POST("/api/auth/logout", auth.Logout)

	api := r.Group("/api", middleware.SessionAuthMiddleware(h.store, testCookie))
	api.GET("/dashboard", DashboardHandler)
	api.GET("/profile", profile.GetProfile)
	api.PUT("/profile", profile.UpdateProfile)
	api.PUT("/profile/password", profile.ChangePassword)
	api.GET("/preferences", prefs.GetPreferences)
	api.POST("/preferences/toggle", prefs.TogglePreference)
	api.POST("/preferences/submit", prefs.SubmitPreferences)
	api.DELETE("/preferences", prefs.DiscardPreferences)
	api.GET("/rides", rides.ParentRides)
	api.GET("/student/rides", rides.StudentRides)
	api.GET("/swap-requests", swaps.ListSwapRequests)
	api.POST("/swap-requests", swaps.CreateSwapRequest)
	api.PUT("/swap-requests/:id/accept", swaps.AcceptSwapRequest)
	api.PUT("/swap-requests/:id/reject", swaps.RejectSwapRequest)
	api.POST("/admin/users", admin.CreateUser)
	api.GET("/admin/activity", admin.ListActivity)
	api.GET("/admin/statistics", admin.GetStatistics)
	api.GET("/admin/templates", templates.ListTemplates)
	api.POST("/admin/templates", templates.CreateTemplate)
	api.GET("/admin/templates/:id", templates.GetTemplate)
	api.PUT("/admin/templates/:id", templates.UpdateTemplate)
	api.DELETE("/admin/templates/:id", templates.DeleteTemplate)
	api.GET("/admin/schedule", h.schedule.GetSchedule)
	api.POST("/admin/schedule/generate", h.schedule.GenerateSchedule)
	api.GET("/admin/schedule/jobs/:id", h.schedule.ScheduleJob)

	h.router = r
	return h
}

// signIn stores a session directly and returns its cookie value.
func (h *harness) signIn(id string, role models.UserRole) string {
	h.t.Helper()
	sess := &session.Context{
		ID:        "sess-" + id,
		Token:     "token-" + id,
		User:      session.UserInfo{ID: id, Email: id + "@example.com", Role: role},
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(h.t, h.store.Save(context.Background(), sess))
	return sess.ID
}

func (h *harness) do(method, path, cookie string, body any) *httptest.ResponseRecorder {
	h.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookie.CookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
