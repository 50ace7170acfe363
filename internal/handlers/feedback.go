package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/huangang/feedbacksentry/internal/models"
	"github.com/huangang/feedbacksentry/internal/services"
	"github.com/huangang/feedbacksentry/internal/store"
	"github.com/huangang/feedbacksentry/pkg/response"
	"gorm.io/gorm"
)

// FeedbackHandler serves the dashboard read surface plus the two human
// review mutations.
type FeedbackHandler struct {
	store         *store.FeedbackStore
	reviewService *services.ReviewService
	statsService  *services.StatsService
	eventService  *services.EventLogService
}

func NewFeedbackHandler(db *gorm.DB) *FeedbackHandler {
	st := store.NewFeedbackStore(db)
	events := services.NewEventLogService(db)
	return &FeedbackHandler{
		store:         st,
		reviewService: services.NewReviewService(st, events),
		statsService:  services.NewStatsService(st),
		eventService:  events,
	}
}

// List returns all feedback records
// GET /api/v1/feedback
func (h *FeedbackHandler) List(c *gin.Context) {
	records, err := h.store.All()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, records)
}

// GetByID returns one feedback record
// GET /api/v1/feedback/:id
func (h *FeedbackHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	record, err := h.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.NotFound(c, "feedback not found")
			return
		}
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, record)
}

// BySentiment filters by sentiment label
// GET /api/v1/feedback/sentiment/:sentiment
func (h *FeedbackHandler) BySentiment(c *gin.Context) {
	sentiment, ok := models.ParseSentiment(c.Param("sentiment"))
	if !ok {
		response.BadRequest(c, "unknown sentiment: "+c.Param("sentiment"))
		return
	}

	records, err := h.store.BySentiment(sentiment)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, records)
}

// BySource filters by origin
// GET /api/v1/feedback/source/:source
func (h *FeedbackHandler) BySource(c *gin.Context) {
	records, err := h.store.BySource(c.Param("source"))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, records)
}

// Unreviewed returns records not yet human reviewed
// GET /api/v1/feedback/unreviewed
func (h *FeedbackHandler) Unreviewed(c *gin.Context) {
	records, err := h.store.Unreviewed()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, records)
}

// Recent returns records scraped within the last N hours (default 24)
// GET /api/v1/feedback/recent?hours=N
func (h *FeedbackHandler) Recent(c *gin.Context) {
	hours := 24
	if raw := c.Query("hours"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.BadRequest(c, "hours must be a positive integer")
			return
		}
		hours = n
	}

	records, err := h.store.ScrapedSince(time.Now().Add(-time.Duration(hours) * time.Hour))
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, records)
}

// Stats returns aggregate sentiment statistics
// GET /api/v1/feedback/stats
func (h *FeedbackHandler) Stats(c *gin.Context) {
	stats, err := h.statsService.GetStats()
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, stats)
}

type humanReviewRequest struct {
	Response string `json:"response" binding:"required"`
}

// MarkReviewed flags a record as human reviewed
// POST /api/v1/feedback/:id/human-review
func (h *FeedbackHandler) MarkReviewed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req humanReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.reviewService.MarkReviewed(id, req.Response)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, record)
}

type overrideRequest struct {
	NewResponse string `json:"newResponse" binding:"required"`
}

// OverrideResponse replaces the automated response
// POST /api/v1/feedback/:id/override-response
func (h *FeedbackHandler) OverrideResponse(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req overrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.reviewService.OverrideResponse(id, req.NewResponse)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, record)
}

// Events returns recent feedback events
// GET /api/v1/events?limit=N
func (h *FeedbackHandler) Events(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	events, err := h.eventService.Recent(limit)
	if err != nil {
		response.ServerError(c, err.Error())
		return
	}
	response.Success(c, events)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid feedback id")
		return 0, false
	}
	return uint(id), true
}
