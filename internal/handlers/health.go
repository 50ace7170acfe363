package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/services"
)

// HealthHandler reports subsystem health for probes and ops.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// CheckHealth returns the health status of all subsystems.
// GET /health
func (h *HealthHandler) CheckHealth(c *gin.Context) {
	overall := "healthy"

	dbStatus := "ok"
	sqlDB, err := models.GetDB().DB()
	if err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "error: " + err.Error()
		overall = "unhealthy"
	}

	queueMode := "sync"
	if q := services.GetTaskQueue(); q != nil && q.IsAsync() {
		queueMode = "async (Redis)"
	}

	var unresponded int64
	models.GetDB().Model(&models.Feedback{}).
		Where("auto_response IS NULL").
		Count(&unresponded)

	c.JSON(200, gin.H{
		"status":  overall,
		"service": "feedbacksentry",
		"components": gin.H{
			"database":    dbStatus,
			"queue_mode":  queueMode,
			"unresponded": unresponded,
		},
	})
}
