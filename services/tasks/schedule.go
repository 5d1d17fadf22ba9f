package tasks

import (
	"encoding/json"
	"time"

	"vcarpool/config"

	"github.com/hibiken/asynq"
)

const (
	TypeScheduleGenerate = "schedule:generate"
	QueueSchedule        = "schedule"
)

const (
	scheduleMaxRetry  = 3
	scheduleTimeout   = 2 * time.Minute
	scheduleRetention = 24 * time.Hour
)

// ScheduleGeneratePayload carries the requesting admin's upstream token: generation runs on
// their behalf and the worker holds no credentials of its own.
type ScheduleGeneratePayload struct {
	WeekStartDate string `json:"week_start_date"`
	Token         string `json:"token"`
	RequestedBy   string `json:"requested_by"`
}

// NewScheduleGenerateTask builds the task and its enqueue options. Completed tasks are retained
// so their result stays readable through the inspector.
func NewScheduleGenerateTask(payload ScheduleGeneratePayload, taskID string) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeScheduleGenerate, b)
	opts := []asynq.Option{
		asynq.Queue(QueueSchedule),
		asynq.MaxRetry(scheduleMaxRetry),
		asynq.Timeout(scheduleTimeout),
		asynq.Retention(scheduleRetention),
	}
	if taskID != "" {
		opts = append(opts, asynq.TaskID(taskID))
	}
	return task, opts, nil
}

// RedisConnOpt points asynq at the configured queue DB.
func RedisConnOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}
