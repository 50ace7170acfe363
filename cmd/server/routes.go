package main

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/feedbacksentry/internal/middleware"
	"github.com/huangang/feedbacksentry/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for mutation and trigger routes
	writeLimiter := middleware.NewRateLimiter(10, 20)

	r.GET("/health", svc.healthHandler.CheckHealth)

	api := r.Group("/api/v1")
	{
		feedback := api.Group("/feedback")
		{
			feedback.GET("", svc.feedbackHandler.List)
			feedback.GET("/stats", svc.feedbackHandler.Stats)
			feedback.GET("/unreviewed", svc.feedbackHandler.Unreviewed)
			feedback.GET("/recent", svc.feedbackHandler.Recent)
			feedback.GET("/sentiment/:sentiment", svc.feedbackHandler.BySentiment)
			feedback.GET("/source/:source", svc.feedbackHandler.BySource)
			feedback.GET("/:id", svc.feedbackHandler.GetByID)

			write := feedback.Group("", writeLimiter.Middleware())
			{
				write.POST("/:id/human-review", svc.feedbackHandler.MarkReviewed)
				write.POST("/:id/override-response", svc.feedbackHandler.OverrideResponse)
			}
		}

		api.GET("/events", svc.feedbackHandler.Events)

		pipeline := api.Group("/pipeline")
		{
			pipeline.GET("/status", svc.pipelineHandler.Status)

			trigger := pipeline.Group("", writeLimiter.Middleware())
			{
				trigger.POST("/ingest", svc.pipelineHandler.TriggerIngestion)
				trigger.POST("/classify", svc.pipelineHandler.TriggerClassification)
				trigger.POST("/respond", svc.pipelineHandler.TriggerResponse)
			}
		}
	}
}
