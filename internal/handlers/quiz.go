package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/services"
)

type QuizHandler struct {
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req services.CreateQuizInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", apperr.Validationf("invalid request body"))
		return
	}

	quiz, err := qh.quizService.Create(c.Request.Context(), userID, req)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (qh *QuizHandler) Get(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperr.Validationf("invalid quiz id"))
		return
	}

	quiz, err := qh.quizService.GetByID(c.Request.Context(), userID, quizID)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, quiz)
}

func (qh *QuizHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	page, limit := pagination(c)

	quizzes, total, err := qh.quizService.ListMine(c.Request.Context(), userID, page, limit)
	if err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"quizzes": quizzes,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

func (qh *QuizHandler) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	quizID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", apperr.Validationf("invalid quiz id"))
		return
	}

	if err := qh.quizService.Delete(c.Request.Context(), userID, quizID); err != nil {
		RespondAppError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "quiz deleted"})
}

func pagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
