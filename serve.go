package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vcarpool/config"
	"vcarpool/database"
	activityRepo "vcarpool/database/repository/activity"
	"vcarpool/handlers"
	"vcarpool/middleware"
	"vcarpool/routes"
	"vcarpool/services/preference"
	"vcarpool/services/session"
	"vcarpool/services/statistics"
	"vcarpool/services/tasks"
	"vcarpool/services/upstream"
	"vcarpool/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx)
		},
	}
}

func runServer(ctx context.Context) error {
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	defer database.CloseDB(context.Background())
	utils.InitRedis()
	defer utils.CloseRedis()

	api, err := upstream.NewClient(cfg.UpstreamAPIURL, cfg.UpstreamTimeout, logger)
	if err != nil {
		return err
	}

	// repositories.
	activity := activityRepo.NewMongoActivityRepo()
	if err := activity.EnsureIndexes(ctx); err != nil {
		logger.Warn("Failed to ensure activity indexes", zap.Error(err))
	}
	sessions := session.NewRedisStore(utils.GetSessionClient())

	// services.
	prefService := preference.NewService(api, preference.NewRedisDraftStore(utils.GetCacheClient(), cfg.DraftTTL), logger)
	statsService := statistics.NewCachedService(api, utils.GetCacheClient(), cfg.StatsCacheTTL, logger)
	queue := tasks.NewAsynqQueue(tasks.RedisConnOpt())
	defer func() { _ = queue.Close() }()

	cookie := middleware.SessionOptions{CookieName: cfg.SessionCookieName, Secure: cfg.CookieSecure}

	authHandler := handlers.NewAuthHandler(api, sessions, activity, cookie, cfg.SessionTTL)
	profileHandler := handlers.NewProfileHandler(api, sessions, activity)
	preferenceHandler := handlers.NewPreferenceHandler(prefService, activity)
	rideHandler := handlers.NewRideHandler(api)
	swapHandler := handlers.NewSwapHandler(api, activity)
	adminHandler := handlers.NewAdminHandler(api, activity, statsService)
	templateHandler := handlers.NewTemplateHandler(api, activity)
	scheduleHandler := handlers.NewScheduleHandler(api, queue, statsService, activity)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessions,
		Cookie:   cookie,

		LoginHandler:  authHandler.Login,
		LogoutHandler: authHandler.Logout,

		DashboardHandler:      handlers.DashboardHandler,
		GetProfileHandler:     profileHandler.GetProfile,
		UpdateProfileHandler:  profileHandler.UpdateProfile,
		ChangePasswordHandler: profileHandler.ChangePassword,

		GetPreferencesHandler:     preferenceHandler.GetPreferences,
		TogglePreferenceHandler:   preferenceHandler.TogglePreference,
		SubmitPreferencesHandler:  preferenceHandler.SubmitPreferences,
		DiscardPreferencesHandler: preferenceHandler.DiscardPreferences,
		ParentRidesHandler:        rideHandler.ParentRides,
		ListSwapRequestsHandler:   swapHandler.ListSwapRequests,
		CreateSwapRequestHandler:  swapHandler.CreateSwapRequest,
		AcceptSwapRequestHandler:  swapHandler.AcceptSwapRequest,
		RejectSwapRequestHandler:  swapHandler.RejectSwapRequest,

		StudentRidesHandler: rideHandler.StudentRides,

		CreateUserHandler:       adminHandler.CreateUser,
		ListActivityHandler:     adminHandler.ListActivity,
		StatisticsHandler:       adminHandler.GetStatistics,
		ListTemplatesHandler:    templateHandler.ListTemplates,
		GetTemplateHandler:      templateHandler.GetTemplate,
		CreateTemplateHandler:   templateHandler.CreateTemplate,
		UpdateTemplateHandler:   templateHandler.UpdateTemplate,
		DeleteTemplateHandler:   templateHandler.DeleteTemplate,
		GetScheduleHandler:      scheduleHandler.GetSchedule,
		GenerateScheduleHandler: scheduleHandler.GenerateSchedule,
		ScheduleJobHandler:      scheduleHandler.ScheduleJob,

		HealthHandler: handlers.HealthHandler,
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return err
	}
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, cfg.CORSAllowedOrigins)

	utils.StartHealthMonitor(ctx, 30*time.Second,
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionClient()}, database.MongoClient, api)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("upstream", cfg.UpstreamAPIURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}
	logger.Info("Server stopped gracefully")
	return nil
}
