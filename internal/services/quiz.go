package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// CreateQuizInput creates a quiz either from an explicit question list
// or, when Questions is empty, by generating one from SourceText.
type CreateQuizInput struct {
	Title              string               `json:"title"`
	SourceText         string               `json:"source_text"`
	Questions          []types.QuizQuestion `json:"questions,omitempty"`
	QuestionCount      int                  `json:"question_count,omitempty"`
	ChoicesPerQuestion int                  `json:"choices_per_question,omitempty"`
}

type QuizService interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateQuizInput) (*types.Quiz, error)
	GetByID(ctx context.Context, userID, quizID uuid.UUID) (*types.Quiz, error)
	ListMine(ctx context.Context, userID uuid.UUID, page, limit int) ([]*types.Quiz, int64, error)
	Delete(ctx context.Context, userID, quizID uuid.UUID) error
}

type quizService struct {
	db        *gorm.DB
	log       *logger.Logger
	quizRepo  repos.QuizRepo
	generator QuizGeneratorClient
}

// NewQuizService builds the quiz service. generator may be nil, in
// which case quizzes can only be created with explicit questions.
func NewQuizService(db *gorm.DB, baseLog *logger.Logger, quizRepo repos.QuizRepo, generator QuizGeneratorClient) QuizService {
	return &quizService{
		db:        db,
		log:       baseLog.With("service", "QuizService"),
		quizRepo:  quizRepo,
		generator: generator,
	}
}

func (s *quizService) Create(ctx context.Context, userID uuid.UUID, in CreateQuizInput) (*types.Quiz, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperr.Validationf("title must not be empty")
	}

	questions := in.Questions
	model := ""
	if len(questions) == 0 {
		if s.generator == nil {
			return nil, apperr.Validationf("no questions provided and quiz generation is not configured")
		}
		if len(strings.TrimSpace(in.SourceText)) < 10 {
			return nil, apperr.Validationf("source_text too short to generate a quiz from")
		}
		generated, err := s.generator.GenerateQuiz(ctx, in.SourceText, in.QuestionCount, in.ChoicesPerQuestion)
		if err != nil {
			return nil, fmt.Errorf("quiz generation failed: %w", err)
		}
		questions = generated.Questions
		model = generated.Model
	}

	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	quiz := &types.Quiz{
		ID:         uuid.New(),
		Title:      title,
		SourceText: in.SourceText,
		Model:      model,
		CreatedBy:  userID,
	}
	if err := quiz.SetQuestions(questions); err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}
	if _, err := s.quizRepo.Create(ctx, nil, quiz); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	s.log.Info("quiz created", "quiz_id", quiz.ID, "user_id", userID, "questions", len(questions))
	return quiz, nil
}

// validateQuestions enforces the shape the scoring engine assumes: a
// non-empty question list with exactly one correct choice each.
func validateQuestions(questions []types.QuizQuestion) error {
	if len(questions) == 0 {
		return apperr.Validationf("quiz must have at least one question")
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return apperr.Validationf("question %d has an empty prompt", i)
		}
		if len(q.Choices) < 2 {
			return apperr.Validationf("question %d must have at least 2 choices", i)
		}
		correct := 0
		for _, choice := range q.Choices {
			if choice.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return apperr.Validationf("question %d must have exactly one correct choice", i)
		}
	}
	return nil
}

func (s *quizService) GetByID(ctx context.Context, userID, quizID uuid.UUID) (*types.Quiz, error) {
	quiz, err := s.quizRepo.GetByID(ctx, nil, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("quiz %s", quizID)
		}
		return nil, err
	}
	if quiz.CreatedBy != userID {
		return nil, apperr.ErrForbidden
	}
	return quiz, nil
}

func (s *quizService) ListMine(ctx context.Context, userID uuid.UUID, page, limit int) ([]*types.Quiz, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.quizRepo.ListByCreator(ctx, nil, userID, (page-1)*limit, limit)
}

func (s *quizService) Delete(ctx context.Context, userID, quizID uuid.UUID) error {
	quiz, err := s.GetByID(ctx, userID, quizID)
	if err != nil {
		return err
	}
	return s.quizRepo.SoftDeleteByID(ctx, nil, quiz.ID)
}
