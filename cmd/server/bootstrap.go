package main

import (
	"context"
	"math/rand"
	"time"

	"github.com/huangang/feedbacksentry/internal/config"
	"github.com/huangang/feedbacksentry/internal/connectors"
	"github.com/huangang/feedbacksentry/internal/handlers"
	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/services"
	"github.com/huangang/feedbacksentry/internal/store"
	"github.com/huangang/feedbacksentry/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	scheduler       *services.Scheduler
	reportService   *services.ReportService
	taskQueue       services.TaskQueue
	worker          *services.Worker
	feedbackHandler *handlers.FeedbackHandler
	pipelineHandler *handlers.PipelineHandler
	healthHandler   *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, pipeline
// stages, schedulers, trigger queue.
func bootstrap(cfg *config.Config) *appServices {
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()
	feedbackStore := store.NewFeedbackStore(db)

	sourceConnectors := []connectors.Connector{
		connectors.NewTwitterConnector(),
		connectors.NewYelpConnector(),
		connectors.NewGoogleReviewsConnector(),
	}

	ingestion := services.NewIngestionService(feedbackStore, sourceConnectors)
	classification := services.NewClassificationService(feedbackStore)
	generator := services.NewResponseGenerator(rand.New(rand.NewSource(time.Now().UnixNano())))
	responder := services.NewResponseService(feedbackStore, generator)

	scheduler := services.NewScheduler()
	scheduler.Register(services.StageIngestion, cfg.Pipeline.IngestInterval.Std(), ingestion)
	scheduler.Register(services.StageClassification, cfg.Pipeline.ClassifyInterval.Std(), classification)
	scheduler.Register(services.StageResponse, cfg.Pipeline.RespondInterval.Std(), responder)
	scheduler.Start()

	reportService := services.NewReportService(feedbackStore)
	if err := reportService.StartScheduler(cfg.Pipeline.SnapshotCron, cfg.Pipeline.DailyReportCron); err != nil {
		logger.Fatalf("Failed to start report scheduler: %v", err)
	}

	// Manual triggers run stages through the queue (asynq when Redis is
	// enabled, sync fallback otherwise)
	runStage := func(ctx context.Context, task *services.StageTask) error {
		_, err := scheduler.RunStage(ctx, task.Stage)
		return err
	}

	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(runStage)
	}

	var worker *services.Worker
	if cfg.Redis.Enabled && taskQueue.IsAsync() {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(runStage)
			worker.Start()
		}
	}

	return &appServices{
		scheduler:       scheduler,
		reportService:   reportService,
		taskQueue:       taskQueue,
		worker:          worker,
		feedbackHandler: handlers.NewFeedbackHandler(db),
		pipelineHandler: handlers.NewPipelineHandler(scheduler, taskQueue),
		healthHandler:   handlers.NewHealthHandler(),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	s.scheduler.Stop()
	s.reportService.StopScheduler()
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("all schedulers stopped")
}
