package handlers

import (
	"context"
	"errors"

	"vcarpool/models"
	"vcarpool/services/upstream"
)

var errNotStubbed = errors.New("not stubbed")

// fakeAPI implements upstream.CarpoolAPI; each test stubs only what it needs.
type fakeAPI struct {
	LoginFn             func(username, password string) (*models.AuthResponse, error)
	MeFn                func(token string) (*models.User, error)
	UpdateMeFn          func(token string, update models.ProfileUpdate) (*models.User, error)
	ChangePasswordFn    func(token string, change models.PasswordChange) error
	CreateUserFn        func(token string, user models.UserCreate) (*models.User, error)
	TemplatesFn         func(token string) ([]models.ScheduleTemplateSlot, error)
	TemplateFn          func(token, id string) (*models.ScheduleTemplateSlot, error)
	CreateTemplateFn    func(token string, t models.ScheduleTemplateSlot) (*models.ScheduleTemplateSlot, error)
	UpdateTemplateFn    func(token, id string, t models.ScheduleTemplateSlot) (*models.ScheduleTemplateSlot, error)
	DeleteTemplateFn    func(token, id string) error
	WeeklyPrefsFn       func(token, week string) ([]models.DriverWeeklyPreference, error)
	SubmitPrefsFn       func(token, week string, prefs []models.PreferenceSubmission) ([]models.DriverWeeklyPreference, error)
	ScheduleFn          func(token, week string) ([]models.RideAssignment, error)
	GenerateScheduleFn  func(token, week string) ([]models.RideAssignment, error)
	StudentRidesFn      func(token, week string) ([]models.StudentRide, error)
	StatisticsFn        func(token string, tf models.Timeframe) (*models.CarpoolStatistics, error)
	SwapRequestsFn      func(token, status string) ([]models.SwapRequest, error)
	CreateSwapFn        func(token string, in models.SwapRequestInput) (*models.SwapRequest, error)
	AcceptSwapFn        func(token, id string) (*models.SwapRequest, error)
	RejectSwapFn        func(token, id string) (*models.SwapRequest, error)
}

var _ upstream.CarpoolAPI = (*fakeAPI)(nil)

func (f *fakeAPI) Login(_ context.Context, username, password string) (*models.AuthResponse, error) {
	if f.LoginFn == nil {
		return nil, errNotStubbed
	}
	return f.LoginFn(username, password)
}

func (f *fakeAPI) Me(_ context.Context, token string) (*models.User, error) {
	if f.MeFn == nil {
		return nil, errNotStubbed
	}
	return f.MeFn(token)
}

func (f *fakeAPI) UpdateMe(_ context.Context, token string, update models.ProfileUpdate) (*models.User, error) {
	if f.UpdateMeFn == nil {
		return nil, errNotStubbed
	}
	return f.UpdateMeFn(token, update)
}

func (f *fakeAPI) ChangePassword(_ context.Context, token string, change models.PasswordChange) error {
	if f.ChangePasswordFn == nil {
		return errNotStubbed
	}
	return f.ChangePasswordFn(token, change)
}

func (f *fakeAPI) CreateUser(_ context.Context, token string, user models.UserCreate) (*models.User, error) {
	if f.CreateUserFn == nil {
		return nil, errNotStubbed
	}
	return f.CreateUserFn(token, user)
}

func (f *fakeAPI) ScheduleTemplates(_ context.Context, token string) ([]models.ScheduleTemplateSlot, error) {
	if f.TemplatesFn == nil {
		return nil, errNotStubbed
	}
	return f.TemplatesFn(token)
}

func (f *fakeAPI) ScheduleTemplate(_ context.Context, token, id string) (*models.ScheduleTemplateSlot, error) {
	if f.TemplateFn == nil {
		return nil, errNotStubbed
	}
	return f.TemplateFn(token, id)
}

func (f *fakeAPI) CreateScheduleTemplate(_ context.Context, token string, t models.ScheduleTemplateSlot) (*models.ScheduleTemplateSlot, error) {
	if f.CreateTemplateFn == nil {
		return nil, errNotStubbed
	}
	return f.CreateTemplateFn(token, t)
}

func (f *fakeAPI) UpdateScheduleTemplate(_ context.Context, token, id string, t models.ScheduleTemplateSlot) (*models.ScheduleTemplateSlot, error) {
	if f.UpdateTemplateFn == nil {
		return nil, errNotStubbed
	}
	return f.UpdateTemplateFn(token, id, t)
}

func (f *fakeAPI) DeleteScheduleTemplate(_ context.Context, token, id string) error {
	if f.DeleteTemplateFn == nil {
		return errNotStubbed
	}
	return f.DeleteTemplateFn(token, id)
}

func (f *fakeAPI) WeeklyPreferences(_ context.Context, token, week string) ([]models.DriverWeeklyPreference, error) {
	if f.WeeklyPrefsFn == nil {
		return nil, nil
	}
	return f.WeeklyPrefsFn(token, week)
}

func (f *fakeAPI) SubmitWeeklyPreferences(_ context.Context, token, week string, prefs []models.PreferenceSubmission) ([]models.DriverWeeklyPreference, error) {
	if f.SubmitPrefsFn == nil {
		return nil, errNotStubbed
	}
	return f.SubmitPrefsFn(token, week, prefs)
}

func (f *fakeAPI) Schedule(_ context.Context, token, week string) ([]models.RideAssignment, error) {
	if f.ScheduleFn == nil {
		return nil, errNotStubbed
	}
	return f.ScheduleFn(token, week)
}

func (f *fakeAPI) GenerateSchedule(_ context.Context, token, week string) ([]models.RideAssignment, error) {
	if f.GenerateScheduleFn == nil {
		return nil, errNotStubbed
	}
	return f.GenerateScheduleFn(token, week)
}

func (f *fakeAPI) StudentRides(_ context.Context, token, week string) ([]models.StudentRide, error) {
	if f.StudentRidesFn == nil {
		return nil, errNotStubbed
	}
	return f.StudentRidesFn(token, week)
}

func (f *fakeAPI) CarpoolStatistics(_ context.Context, token string, tf models.Timeframe) (*models.CarpoolStatistics, error) {
	if f.StatisticsFn == nil {
		return nil, errNotStubbed
	}
	return f.StatisticsFn(token, tf)
}

func (f *fakeAPI) SwapRequests(_ context.Context, token, status string) ([]models.SwapRequest, error) {
	if f.SwapRequestsFn == nil {
		return nil, errNotStubbed
	}
	return f.SwapRequestsFn(token, status)
}

func (f *fakeAPI) CreateSwapRequest(_ context.Context, token string, in models.SwapRequestInput) (*models.SwapRequest, error) {
	if f.CreateSwapFn == nil {
		return nil, errNotStubbed
	}
	return f.CreateSwapFn(token, in)
}

func (f *fakeAPI) AcceptSwapRequest(_ context.Context, token, id string) (*models.SwapRequest, error) {
	if f.AcceptSwapFn == nil {
		return nil, errNotStubbed
	}
	return f.AcceptSwapFn(token, id)
}

func (f *fakeAPI) RejectSwapRequest(_ context.Context, token, id string) (*models.SwapRequest, error) {
	if f.RejectSwapFn == nil {
		return nil, errNotStubbed
	}
	return f.RejectSwapFn(token, id)
}

func (f *fakeAPI) Ping(context.Context) error { return nil }

// memoryActivity is an in-memory ActivityLog.
type memoryActivity struct {
	records []models.ActivityRecord
}

func (m *memoryActivity) Record(_ context.Context, r models.ActivityRecord) (string, error) {
	m.records = append(m.records, r)
	return "rec", nil
}

func (m *memoryActivity) Recent(_ context.Context, limit int) ([]models.ActivityRecord, error) {
	if limit <= 0 || limit > len(m.records) {
		limit = len(m.records)
	}
	return m.records[:limit], nil
}

func (m *memoryActivity) ByActor(_ context.Context, actorID string, limit int) ([]models.ActivityRecord, error) {
	out := []models.ActivityRecord{}
	for _, r := range m.records {
		if r.ActorID == actorID && (limit <= 0 || len(out) < limit) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryActivity) actions() []string {
	out := make([]string, len(m.records))
	for i, r := range m.records {
		out[i] = r.Action
	}
	return out
}
