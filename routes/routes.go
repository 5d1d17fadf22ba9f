package routes

import (
	"time"

	"vcarpool/handlers"
	"vcarpool/metrics"
	"vcarpool/middleware"
	"vcarpool/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers login and logout. Neither needs a live session.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", hb.LogoutHandler)
	}
}

// RegisterCommonRoutes registers screens every signed-in role can open.
func RegisterCommonRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/dashboard", hb.DashboardHandler)
	api.GET("/profile", hb.GetProfileHandler)
	api.PUT("/profile", hb.UpdateProfileHandler)
	api.PUT("/profile/password", hb.ChangePasswordHandler)
}

// RegisterParentRoutes registers the driver screens.
func RegisterParentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	parent := api.Group("")
	parent.Use(middleware.RequireRole(models.RoleParent))
	{
		parent.GET("/preferences", hb.GetPreferencesHandler)
		parent.POST("/preferences/toggle", hb.TogglePreferenceHandler)
		parent.POST("/preferences/submit", hb.SubmitPreferencesHandler)
		parent.DELETE("/preferences", hb.DiscardPreferencesHandler)

		parent.GET("/rides", hb.ParentRidesHandler)

		parent.GET("/swap-requests", hb.ListSwapRequestsHandler)
		parent.POST("/swap-requests", hb.CreateSwapRequestHandler)
		parent.PUT("/swap-requests/:id/accept", hb.AcceptSwapRequestHandler)
		parent.PUT("/swap-requests/:id/reject", hb.RejectSwapRequestHandler)
	}
}

// RegisterStudentRoutes registers the student screens.
func RegisterStudentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	student := api.Group("/student")
	student.Use(middleware.RequireRole(models.RoleStudent))
	{
		student.GET("/rides", hb.StudentRidesHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.POST("/users", hb.CreateUserHandler)
		admin.GET("/activity", hb.ListActivityHandler)

		admin.GET("/templates", hb.ListTemplatesHandler)
		admin.POST("/templates", hb.CreateTemplateHandler)
		admin.GET("/templates/:id", hb.GetTemplateHandler)
		admin.PUT("/templates/:id", hb.UpdateTemplateHandler)
		admin.DELETE("/templates/:id", hb.DeleteTemplateHandler)

		admin.GET("/schedule", hb.GetScheduleHandler)
		admin.POST("/schedule/generate", hb.GenerateScheduleHandler)
		admin.GET("/schedule/jobs/:id", hb.ScheduleJobHandler)

		admin.GET("/statistics", hb.StatisticsHandler)
	}
}

// RegisterHealthRoutes registers the health check and the Prometheus scrape endpoint.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.HealthHandler)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoutes(r, hb)
	RegisterAuthRoutes(r, hb)

	api := r.Group("/api")
	api.Use(middleware.SessionAuthMiddleware(hb.Sessions, hb.Cookie))
	RegisterCommonRoutes(api, hb)
	RegisterParentRoutes(api, hb)
	RegisterStudentRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
}
