package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/hibiken/asynq"
	"github.com/huangang/feedbacksentry/internal/config"
	"github.com/huangang/feedbacksentry/pkg/logger"
)

const TaskTypeStageRun = "pipeline:run_stage"

// StageTask asks for one out-of-schedule run of a pipeline stage.
type StageTask struct {
	Stage       string `json:"stage"` // ingestion, classification, response
	TriggeredBy string `json:"triggered_by,omitempty"`
}

// TaskQueue accepts manual stage-run triggers. The scheduled tickers
// never go through the queue; this path exists so ops triggers return
// immediately instead of holding the HTTP request open.
type TaskQueue interface {
	Enqueue(task *StageTask) error
	IsAsync() bool
	Close() error
}

var (
	globalTaskQueue TaskQueue
	taskQueueOnce   sync.Once
)

// InitTaskQueue initializes the global task queue based on config:
// asynq-backed when Redis is enabled and reachable, sync fallback
// otherwise.
func InitTaskQueue(cfg *config.Config) TaskQueue {
	taskQueueOnce.Do(func() {
		if cfg.Redis.Enabled {
			queue, err := NewAsyncQueue(&cfg.Redis)
			if err != nil {
				logger.Warn().Err(err).Msg("redis unavailable, falling back to sync trigger queue")
				globalTaskQueue = NewSyncQueue()
			} else {
				logger.Info().Str("addr", cfg.Redis.Addr).Msg("async trigger queue initialized")
				globalTaskQueue = queue
			}
		} else {
			logger.Info().Msg("sync trigger queue initialized (redis disabled)")
			globalTaskQueue = NewSyncQueue()
		}
	})
	return globalTaskQueue
}

// GetTaskQueue returns the global task queue instance.
func GetTaskQueue() TaskQueue {
	return globalTaskQueue
}

// AsyncQueue implements TaskQueue using asynq (Redis-based).
type AsyncQueue struct {
	client *asynq.Client
}

func NewAsyncQueue(cfg *config.RedisConfig) (*AsyncQueue, error) {
	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	client := asynq.NewClient(redisOpt)

	// Verify the connection before committing to async mode
	inspector := asynq.NewInspector(redisOpt)
	defer inspector.Close()
	if _, err := inspector.Queues(); err != nil {
		client.Close()
		return nil, err
	}

	return &AsyncQueue{client: client}, nil
}

func (q *AsyncQueue) Enqueue(task *StageTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	info, err := q.client.Enqueue(
		asynq.NewTask(TaskTypeStageRun, payload),
		asynq.Queue("default"),
		asynq.MaxRetry(3),
	)
	if err != nil {
		return err
	}

	logger.Info().Str("task_id", info.ID).Str("stage", task.Stage).Msg("stage run enqueued")
	return nil
}

func (q *AsyncQueue) IsAsync() bool { return true }

func (q *AsyncQueue) Close() error { return q.client.Close() }

// SyncQueue implements TaskQueue without Redis: the stage run happens in
// a background goroutine in-process.
type SyncQueue struct {
	processor func(context.Context, *StageTask) error
}

func NewSyncQueue() *SyncQueue {
	return &SyncQueue{}
}

// SetProcessor sets the function invoked for each enqueued task.
func (q *SyncQueue) SetProcessor(processor func(context.Context, *StageTask) error) {
	q.processor = processor
}

func (q *SyncQueue) Enqueue(task *StageTask) error {
	if q.processor == nil {
		logger.Warn().Str("stage", task.Stage).Msg("no processor set, trigger dropped")
		return nil
	}

	// Run detached so the caller is not held up by the stage run
	go func() {
		if err := q.processor(context.Background(), task); err != nil {
			logger.Error().Err(err).Str("stage", task.Stage).Msg("triggered stage run failed")
		}
	}()
	return nil
}

func (q *SyncQueue) IsAsync() bool { return false }

func (q *SyncQueue) Close() error { return nil }
