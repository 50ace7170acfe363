package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/huangang/feedbacksentry/pkg/logger"
)

// Stage is one runnable pipeline phase. Each implementation isolates
// per-item failures internally; RunOnce never panics the scheduler.
type Stage interface {
	RunOnce(ctx context.Context) RunSummary
}

// StageStatus is the per-stage view served by the status endpoint.
type StageStatus struct {
	Name      string      `json:"name"`
	Active    bool        `json:"active"`
	Interval  string      `json:"interval"`
	LastRunAt *time.Time  `json:"last_run_at"`
	LastRun   *RunSummary `json:"last_run"`
}

type stageRunner struct {
	name     string
	interval time.Duration
	stage    Stage

	mu        sync.Mutex
	lastRun   *RunSummary
	lastRunAt *time.Time
}

// Scheduler drives each pipeline stage on its own fixed interval. Stage
// runs are independent: a slow or failing tick of one stage never blocks
// another, and cross-stage coupling happens only through the store.
type Scheduler struct {
	runners map[string]*stageRunner
	order   []string

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{runners: make(map[string]*stageRunner)}
}

// Register adds a stage with its tick interval. Must be called before Start.
func (s *Scheduler) Register(name string, interval time.Duration, stage Stage) {
	s.runners[name] = &stageRunner{name: name, interval: interval, stage: stage}
	s.order = append(s.order, name)
}

// Start launches one ticker goroutine per registered stage.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.started = true

	for _, name := range s.order {
		runner := s.runners[name]
		s.wg.Add(1)
		go func(r *stageRunner) {
			defer s.wg.Done()
			ticker := time.NewTicker(r.interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					s.runStage(ctx, r)
				}
			}
		}(runner)

		logger.Info().
			Str("stage", runner.name).
			Dur("interval", runner.interval).
			Msg("stage scheduler started")
	}
}

// Stop cancels all stage tickers and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	logger.Info().Msg("stage schedulers stopped")
}

// RunStage executes one stage immediately, outside its schedule. Used by
// the manual trigger endpoints.
func (s *Scheduler) RunStage(ctx context.Context, name string) (*RunSummary, error) {
	runner, ok := s.runners[name]
	if !ok {
		return nil, fmt.Errorf("unknown stage: %s", name)
	}
	summary := s.runStage(ctx, runner)
	return &summary, nil
}

func (s *Scheduler) runStage(ctx context.Context, r *stageRunner) RunSummary {
	runID := uuid.NewString()[:8]
	logger.Debug().Str("stage", r.name).Str("run_id", runID).Msg("stage run starting")

	summary := r.stage.RunOnce(ctx)

	now := time.Now()
	r.mu.Lock()
	r.lastRun = &summary
	r.lastRunAt = &now
	r.mu.Unlock()

	event := logger.Info()
	if summary.Errors > 0 {
		event = logger.Warn()
	}
	event.
		Str("stage", r.name).
		Str("run_id", runID).
		Int("processed", summary.Processed).
		Int("errors", summary.Errors).
		Dur("duration", summary.Duration).
		Msg("stage run completed")

	return summary
}

// Status reports every registered stage in registration order.
func (s *Scheduler) Status() []StageStatus {
	s.mu.Lock()
	active := s.started
	s.mu.Unlock()

	statuses := make([]StageStatus, 0, len(s.order))
	for _, name := range s.order {
		runner := s.runners[name]
		runner.mu.Lock()
		statuses = append(statuses, StageStatus{
			Name:      runner.name,
			Active:    active,
			Interval:  runner.interval.String(),
			LastRunAt: runner.lastRunAt,
			LastRun:   runner.lastRun,
		})
		runner.mu.Unlock()
	}
	return statuses
}
