package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type SubmissionHandler struct {
	submissionService services.SubmissionService
}

func NewSubmissionHandler(submissionService services.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

func (sh *SubmissionHandler) Submit(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.SubmitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", apperr.Validationf("invalid request body"))
		return
	}

	out, err := sh.submissionService.Submit(c.Request.Context(), userID, req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (sh *SubmissionHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	attempts, total, err := sh.submissionService.ListByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"submissions": attempts,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}

func (sh *SubmissionHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperr.Validationf("invalid submission id"))
		return
	}

	attempt, err := sh.submissionService.GetByID(c.Request.Context(), userID, attemptID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, attempt)
}

func (sh *SubmissionHandler) QuizStats(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperr.Validationf("invalid quiz id"))
		return
	}

	stats, err := sh.submissionService.QuizStats(c.Request.Context(), userID, quizID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, stats)
}
