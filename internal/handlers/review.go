package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type ReviewHandler struct {
	reviewService services.ReviewScheduleService
}

func NewReviewHandler(reviewService services.ReviewScheduleService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

func (rh *ReviewHandler) Due(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	schedules, err := rh.reviewService.DueForReview(c.Request.Context(), userID, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"due": schedules, "count": len(schedules)})
}

func (rh *ReviewHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	var active *bool
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_query", apperr.Validationf("active must be a boolean"))
			return
		}
		active = &parsed
	}

	schedules, total, err := rh.reviewService.ListSchedules(c.Request.Context(), userID, page, limit, active)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"schedules": schedules,
		"total":     total,
		"page":      page,
		"limit":     limit,
	})
}

func (rh *ReviewHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperr.Validationf("invalid schedule id"))
		return
	}

	var req struct {
		ReviewInterval *int  `json:"review_interval"`
		IsActive       *bool `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", apperr.Validationf("invalid request body"))
		return
	}

	schedule, err := rh.reviewService.UpdateSettings(c.Request.Context(), userID, scheduleID, req.ReviewInterval, req.IsActive)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, schedule)
}

func (rh *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	scheduleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperr.Validationf("invalid schedule id"))
		return
	}

	if err := rh.reviewService.Delete(c.Request.Context(), userID, scheduleID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "schedule deleted"})
}

func (rh *ReviewHandler) Statistics(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	stats, err := rh.reviewService.Statistics(c.Request.Context(), userID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, stats)
}
