package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangang/feedbacksentry/internal/services"
)

type recordingQueue struct {
	tasks []*services.StageTask
	fail  bool
}

func (q *recordingQueue) Enqueue(task *services.StageTask) error {
	if q.fail {
		return errors.New("queue unavailable")
	}
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *recordingQueue) IsAsync() bool { return false }

func (q *recordingQueue) Close() error { return nil }

func newPipelineRouter(queue services.TaskQueue) (*gin.Engine, *services.Scheduler) {
	gin.SetMode(gin.TestMode)

	scheduler := services.NewScheduler()
	h := NewPipelineHandler(scheduler, queue)

	r := gin.New()
	pipeline := r.Group("/api/v1/pipeline")
	{
		pipeline.GET("/status", h.Status)
		pipeline.POST("/ingest", h.TriggerIngestion)
		pipeline.POST("/classify", h.TriggerClassification)
		pipeline.POST("/respond", h.TriggerResponse)
	}
	return r, scheduler
}

func TestPipelineAPI_Triggers(t *testing.T) {
	queue := &recordingQueue{}
	r, _ := newPipelineRouter(queue)

	cases := map[string]string{
		"/api/v1/pipeline/ingest":   services.StageIngestion,
		"/api/v1/pipeline/classify": services.StageClassification,
		"/api/v1/pipeline/respond":  services.StageResponse,
	}
	for path, stage := range cases {
		w := doRequest(r, http.MethodPost, path, "")
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, w.Code)
		}
		envelope := decodeEnvelope(t, w)
		if envelope.Code != 0 {
			t.Errorf("%s: envelope code = %d", path, envelope.Code)
		}
		found := false
		for _, task := range queue.tasks {
			if task.Stage == stage {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: no %s task enqueued", path, stage)
		}
	}
	if len(queue.tasks) != 3 {
		t.Errorf("tasks = %d, expected 3", len(queue.tasks))
	}
}

func TestPipelineAPI_TriggerQueueFailure(t *testing.T) {
	r, _ := newPipelineRouter(&recordingQueue{fail: true})

	w := doRequest(r, http.MethodPost, "/api/v1/pipeline/ingest", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected 500", w.Code)
	}
}

func TestPipelineAPI_Status(t *testing.T) {
	r, scheduler := newPipelineRouter(&recordingQueue{})
	scheduler.Register(services.StageIngestion, 5*time.Minute, nil)

	w := doRequest(r, http.MethodGet, "/api/v1/pipeline/status", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var envelope struct {
		Data struct {
			QueueMode string                 `json:"queue_mode"`
			Stages    []services.StageStatus `json:"stages"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data.QueueMode != "sync" {
		t.Errorf("queue_mode = %s, expected sync", envelope.Data.QueueMode)
	}
	if len(envelope.Data.Stages) != 1 || envelope.Data.Stages[0].Name != services.StageIngestion {
		t.Errorf("stages = %+v", envelope.Data.Stages)
	}
}
