package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/feedbacksentry/internal/services"
	"github.com/huangang/feedbacksentry/pkg/response"
)

// PipelineHandler exposes the ops surface: manual stage triggers and the
// scheduler status. Triggers go through the task queue so the HTTP
// request returns without waiting for the stage run.
type PipelineHandler struct {
	scheduler *services.Scheduler
	queue     services.TaskQueue
}

func NewPipelineHandler(scheduler *services.Scheduler, queue services.TaskQueue) *PipelineHandler {
	return &PipelineHandler{scheduler: scheduler, queue: queue}
}

// TriggerIngestion forces an ingestion run
// POST /api/v1/pipeline/ingest
func (h *PipelineHandler) TriggerIngestion(c *gin.Context) {
	h.trigger(c, services.StageIngestion)
}

// TriggerClassification forces a classification run
// POST /api/v1/pipeline/classify
func (h *PipelineHandler) TriggerClassification(c *gin.Context) {
	h.trigger(c, services.StageClassification)
}

// TriggerResponse forces a response generation run
// POST /api/v1/pipeline/respond
func (h *PipelineHandler) TriggerResponse(c *gin.Context) {
	h.trigger(c, services.StageResponse)
}

func (h *PipelineHandler) trigger(c *gin.Context, stage string) {
	task := &services.StageTask{Stage: stage, TriggeredBy: c.ClientIP()}
	if err := h.queue.Enqueue(task); err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, gin.H{"stage": stage, "status": "triggered"})
}

// Status reports each stage's schedule state and last run summary
// GET /api/v1/pipeline/status
func (h *PipelineHandler) Status(c *gin.Context) {
	response.Success(c, gin.H{
		"queue_mode": queueMode(h.queue),
		"stages":     h.scheduler.Status(),
	})
}

func queueMode(q services.TaskQueue) string {
	if q != nil && q.IsAsync() {
		return "async"
	}
	return "sync"
}
