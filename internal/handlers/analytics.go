package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

func (ah *AnalyticsHandler) Contributions(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "365"))
	endDate := time.Now().UTC()
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_query", apperr.Validationf("end_date must be YYYY-MM-DD"))
			return
		}
		endDate = parsed
	}

	graph, err := ah.analyticsService.ContributionGraph(c.Request.Context(), userID, endDate, days)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"days": graph})
}

func (ah *AnalyticsHandler) Streaks(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := ah.analyticsService.Streaks(c.Request.Context(), userID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, result)
}

func (ah *AnalyticsHandler) YearSummary(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2200 {
		RespondError(c, http.StatusBadRequest, "invalid_year", apperr.Validationf("invalid year"))
		return
	}

	summary, err := ah.analyticsService.YearSummary(c.Request.Context(), userID, year)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, summary)
}
