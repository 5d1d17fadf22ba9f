package handlers

import (
	"vcarpool/middleware"
	"vcarpool/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups every dashboard endpoint handler into one struct.
type HandlerBundle struct {
	Sessions session.Store
	Cookie   middleware.SessionOptions

	// Auth endpoints
	LoginHandler  gin.HandlerFunc
	LogoutHandler gin.HandlerFunc

	// Screens available to every role
	DashboardHandler      gin.HandlerFunc
	GetProfileHandler     gin.HandlerFunc
	UpdateProfileHandler  gin.HandlerFunc
	ChangePasswordHandler gin.HandlerFunc

	// Parent endpoints
	GetPreferencesHandler     gin.HandlerFunc
	TogglePreferenceHandler   gin.HandlerFunc
	SubmitPreferencesHandler  gin.HandlerFunc
	DiscardPreferencesHandler gin.HandlerFunc
	ParentRidesHandler        gin.HandlerFunc
	ListSwapRequestsHandler   gin.HandlerFunc
	CreateSwapRequestHandler  gin.HandlerFunc
	AcceptSwapRequestHandler  gin.HandlerFunc
	RejectSwapRequestHandler  gin.HandlerFunc

	// Student endpoints
	StudentRidesHandler gin.HandlerFunc

	// Admin endpoints
	CreateUserHandler       gin.HandlerFunc
	ListActivityHandler     gin.HandlerFunc
	ListTemplatesHandler    gin.HandlerFunc
	GetTemplateHandler      gin.HandlerFunc
	CreateTemplateHandler   gin.HandlerFunc
	UpdateTemplateHandler   gin.HandlerFunc
	DeleteTemplateHandler   gin.HandlerFunc
	GetScheduleHandler      gin.HandlerFunc
	GenerateScheduleHandler gin.HandlerFunc
	ScheduleJobHandler      gin.HandlerFunc
	StatisticsHandler       gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}
