package upstream

import (
	"context"

	"vcarpool/models"
)

// CarpoolAPI is the remote carpool service as the dashboard sees it. Every method that takes a
// token calls the API on behalf of that session's user.
type CarpoolAPI interface {
	Login(ctx context.Context, username, password string) (*models.AuthResponse, error)

	Me(ctx context.Context, token string) (*models.User, error)
	UpdateMe(ctx context.Context, token string, update models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, token string, change models.PasswordChange) error
	CreateUser(ctx context.Context, token string, user models.UserCreate) (*models.User, error)

	ScheduleTemplates(ctx context.Context, token string) ([]models.ScheduleTemplateSlot, error)
	ScheduleTemplate(ctx context.Context, token, id string) (*models.ScheduleTemplateSlot, error)
	CreateScheduleTemplate(ctx context.Context, token string, tmpl models.ScheduleTemplateSlot) (*models.ScheduleTemplateSlot, error)
	UpdateScheduleTemplate(ctx context.Context, token, id string, tmpl models.ScheduleTemplateSlot) (*models.ScheduleTemplateSlot, error)
	DeleteScheduleTemplate(ctx context.Context, token, id string) error

	WeeklyPreferences(ctx context.Context, token, week string) ([]models.DriverWeeklyPreference, error)
	SubmitWeeklyPreferences(ctx context.Context, token, week string, prefs []models.PreferenceSubmission) ([]models.DriverWeeklyPreference, error)

	Schedule(ctx context.Context, token, week string) ([]models.RideAssignment, error)
	GenerateSchedule(ctx context.Context, token, week string) ([]models.RideAssignment, error)
	StudentRides(ctx context.Context, token, week string) ([]models.StudentRide, error)
	CarpoolStatistics(ctx context.Context, token string, timeframe models.Timeframe) (*models.CarpoolStatistics, error)

	SwapRequests(ctx context.Context, token, status string) ([]models.SwapRequest, error)
	CreateSwapRequest(ctx context.Context, token string, in models.SwapRequestInput) (*models.SwapRequest, error)
	AcceptSwapRequest(ctx context.Context, token, id string) (*models.SwapRequest, error)
	RejectSwapRequest(ctx context.Context, token, id string) (*models.SwapRequest, error)

	Ping(ctx context.Context) error
}

var _ CarpoolAPI = (*Client)(nil)
