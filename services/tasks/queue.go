package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"vcarpool/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

var ErrJobNotFound = errors.New("schedule job not found")

// ScheduleQueue hands schedule generation to the worker process and reports on it.
type ScheduleQueue interface {
	EnqueueScheduleGeneration(ctx context.Context, payload ScheduleGeneratePayload) (*models.ScheduleJob, error)
	JobStatus(ctx context.Context, id string) (*models.ScheduleJob, error)
	Close() error
}

type AsynqQueue struct {
	client    *asynq.Client
	inspector *asynq.Inspector
}

func NewAsynqQueue(opt asynq.RedisConnOpt) *AsynqQueue {
	return &AsynqQueue{client: asynq.NewClient(opt), inspector: asynq.NewInspector(opt)}
}

func (q *AsynqQueue) EnqueueScheduleGeneration(ctx context.Context, payload ScheduleGeneratePayload) (*models.ScheduleJob, error) {
	task, opts, err := NewScheduleGenerateTask(payload, uuid.New().String())
	if err != nil {
		return nil, err
	}
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return nil, fmt.Errorf("enqueue schedule generation: %w", err)
	}
	return JobFromTaskInfo(info)
}

func (q *AsynqQueue) JobStatus(_ context.Context, id string) (*models.ScheduleJob, error) {
	info, err := q.inspector.GetTaskInfo(QueueSchedule, id)
	if errors.Is(err, asynq.ErrTaskNotFound) || errors.Is(err, asynq.ErrQueueNotFound) {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return JobFromTaskInfo(info)
}

func (q *AsynqQueue) Close() error {
	errClient := q.client.Close()
	errInspector := q.inspector.Close()
	return errors.Join(errClient, errInspector)
}

// JobFromTaskInfo converts asynq task state into the job view. The token in the payload is never
// copied out.
func JobFromTaskInfo(info *asynq.TaskInfo) (*models.ScheduleJob, error) {
	if info.Type != TypeScheduleGenerate {
		return nil, ErrJobNotFound
	}
	var payload ScheduleGeneratePayload
	if err := json.Unmarshal(info.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode schedule job payload: %w", err)
	}

	job := &models.ScheduleJob{
		ID:            info.ID,
		WeekStartDate: payload.WeekStartDate,
		State:         info.State.String(),
		LastError:     info.LastErr,
	}
	if len(info.Result) > 0 {
		if err := json.Unmarshal(info.Result, &job.Assignments); err != nil {
			return nil, fmt.Errorf("decode schedule job result: %w", err)
		}
	}
	return job, nil
}

var _ ScheduleQueue = (*AsynqQueue)(nil)
