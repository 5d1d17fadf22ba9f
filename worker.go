package main

import (
	"context"
	"os/signal"
	"syscall"

	"vcarpool/config"
	"vcarpool/cron"
	"vcarpool/database"
	activityRepo "vcarpool/database/repository/activity"
	"vcarpool/services/statistics"
	"vcarpool/services/tasks"
	"vcarpool/services/upstream"
	"vcarpool/utils"

	"github.com/spf13/cobra"
)

func newWorkerCommand() *cobra.Command {
	var concurrency int
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Run the background schedule generation worker",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg := config.AppConfig
			if concurrency > 0 {
				cfg.WorkerConcurrency = concurrency
			}
			logger := utils.GetLogger()
			defer func() { _ = logger.Sync() }()

			database.InitDB()
			defer database.CloseDB(context.Background())
			utils.InitRedis()
			defer utils.CloseRedis()

			api, err := upstream.NewClient(cfg.UpstreamAPIURL, cfg.UpstreamTimeout, logger)
			if err != nil {
				return err
			}
			stats := statistics.NewCachedService(api, utils.GetCacheClient(), cfg.StatsCacheTTL, logger)

			return cron.RunWorker(ctx, tasks.RedisConnOpt(), cron.WorkerDeps{
				API:         api,
				Activity:    activityRepo.NewMongoActivityRepo(),
				Stats:       stats,
				Logger:      logger.Named("worker"),
				Concurrency: cfg.WorkerConcurrency,
			})
		},
	}
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Override WORKER_CONCURRENCY")
	return cmd
}
