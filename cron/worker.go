package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vcarpool/models"
	"vcarpool/services/tasks"
	"vcarpool/services/upstream"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// ScheduleAPI is the upstream call the worker performs.
type ScheduleAPI interface {
	GenerateSchedule(ctx context.Context, token, week string) ([]models.RideAssignment, error)
}

type ActivityRecorder interface {
	Record(ctx context.Context, record models.ActivityRecord) (string, error)
}

type StatsInvalidator interface {
	Invalidate(ctx context.Context) error
}

// WorkerDeps are the collaborators of the schedule worker. Activity and Stats may be nil.
type WorkerDeps struct {
	API         ScheduleAPI
	Activity    ActivityRecorder
	Stats       StatsInvalidator
	Logger      *zap.Logger
	Concurrency int
}

// RunWorker processes schedule jobs until ctx is cancelled, then shuts the server down.
func RunWorker(ctx context.Context, opt asynq.RedisClientOpt, deps WorkerDeps) error {
	if deps.Concurrency <= 0 {
		deps.Concurrency = 4
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: deps.Concurrency,
		Queues: map[string]int{
			tasks.QueueSchedule: 1,
		},
		Logger: logger.Sugar(),
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Schedule task failed", zap.String("type", task.Type()), zap.Error(err))
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeScheduleGenerate, HandleScheduleGenerate(deps))

	go monitorRedisConnection(ctx, opt, logger)

	logger.Info("Starting schedule worker", zap.Int("concurrency", deps.Concurrency))
	if err := srv.Start(mux); err != nil {
		return fmt.Errorf("start worker: %w", err)
	}
	<-ctx.Done()
	logger.Info("Stopping schedule worker")
	srv.Shutdown()
	return nil
}

// HandleScheduleGenerate asks the upstream to generate the week and stores the assignments as
// the task result. An expired token is not retried.
func HandleScheduleGenerate(deps WorkerDeps) asynq.HandlerFunc {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task *asynq.Task) error {
		var p tasks.ScheduleGeneratePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid payload: %v: %w", err, asynq.SkipRetry)
		}
		log := logger.With(zap.String("week", p.WeekStartDate), zap.String("requested_by", p.RequestedBy))

		assignments, err := deps.API.GenerateSchedule(ctx, p.Token, p.WeekStartDate)
		if errors.Is(err, upstream.ErrUnauthorized) {
			log.Warn("Schedule generation token rejected")
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if err != nil {
			log.Error("Schedule generation failed", zap.Error(err))
			return err
		}

		if rw := task.ResultWriter(); rw != nil {
			data, err := json.Marshal(assignments)
			if err != nil {
				return err
			}
			if _, err := rw.Write(data); err != nil {
				log.Warn("Failed to store schedule job result", zap.Error(err))
			}
		}

		if deps.Stats != nil {
			if err := deps.Stats.Invalidate(ctx); err != nil {
				log.Warn("Failed to invalidate statistics cache", zap.Error(err))
			}
		}
		if deps.Activity != nil {
			_, err := deps.Activity.Record(ctx, models.ActivityRecord{
				ActorID:   p.RequestedBy,
				ActorRole: models.RoleAdmin,
				Action:    models.ActionScheduleJobFinish,
				Target:    p.WeekStartDate,
				Details:   fmt.Sprintf("%d assignments", len(assignments)),
			})
			if err != nil {
				log.Warn("Failed to record activity", zap.Error(err))
			}
		}

		log.Info("Schedule generated", zap.Int("assignments", len(assignments)))
		return nil
	}
}

// monitorRedisConnection pings the queue DB periodically to detect failures at runtime.
func monitorRedisConnection(ctx context.Context, opt asynq.RedisClientOpt, logger *zap.Logger) {
	client := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})
	defer client.Close()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := client.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				logger.Warn("Queue Redis connection lost", zap.Error(err))
			}
		}
	}
}
