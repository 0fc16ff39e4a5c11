package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
	"github.com/quizforge/quizforge-backend/internal/scoring"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// SubmitInput is one quiz submission from the request layer. Answers
// are ungraded; grading happens here.
type SubmitInput struct {
	QuizID           uuid.UUID       `json:"quiz_id"`
	Answers          []scoring.Answer `json:"answers"`
	TimeSpentSeconds *int            `json:"time_spent_seconds,omitempty"`
}

// SubmitOutput is what the submitter gets back on success.
type SubmitOutput struct {
	Attempt  *types.QuizAttempt    `json:"attempt"`
	Schedule *types.ReviewSchedule `json:"schedule,omitempty"`
}

type SubmissionService interface {
	// Submit scores and records one attempt. Scoring or attempt
	// persistence failures abort the whole call; schedule and
	// user-stats updates afterwards are best-effort and never fail the
	// submission.
	Submit(ctx context.Context, userID uuid.UUID, in SubmitInput) (*SubmitOutput, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*types.QuizAttempt, int64, error)
	GetByID(ctx context.Context, userID, attemptID uuid.UUID) (*types.QuizAttempt, error)
	QuizStats(ctx context.Context, userID, quizID uuid.UUID) (*repos.QuizAggregate, error)
}

type submissionService struct {
	db          *gorm.DB
	log         *logger.Logger
	quizRepo    repos.QuizRepo
	attemptRepo repos.QuizAttemptRepo
	userRepo    repos.UserRepo
	reviewSvc   ReviewScheduleService
	now         func() time.Time
}

func NewSubmissionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	quizRepo repos.QuizRepo,
	attemptRepo repos.QuizAttemptRepo,
	userRepo repos.UserRepo,
	reviewSvc ReviewScheduleService,
) SubmissionService {
	return &submissionService{
		db:          db,
		log:         baseLog.With("service", "SubmissionService"),
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		reviewSvc:   reviewSvc,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *submissionService) Submit(ctx context.Context, userID uuid.UUID, in SubmitInput) (*SubmitOutput, error) {
	if userID == uuid.Nil {
		return nil, apperr.ErrUnauthorized
	}
	if len(in.Answers) == 0 {
		return nil, apperr.Validationf("submission has no answers")
	}

	quiz, err := s.quizRepo.GetByID(ctx, nil, in.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("quiz %s", in.QuizID)
		}
		return nil, fmt.Errorf("failed to load quiz: %w", err)
	}
	questions, err := quiz.DecodeQuestions()
	if err != nil {
		return nil, fmt.Errorf("failed to decode quiz questions: %w", err)
	}

	// Phase 1: grade. Any error here aborts before anything is written.
	result, err := scoring.Grade(questions, in.Answers)
	if err != nil {
		return nil, err
	}

	// Phase 2: persist the attempt; this is the source of truth and a
	// failure here is surfaced to the caller.
	attempt := &types.QuizAttempt{
		ID:               uuid.New(),
		UserID:           userID,
		QuizID:           quiz.ID,
		Score:            result.Score,
		CorrectCount:     result.CorrectCount,
		TotalQuestions:   result.TotalQuestions,
		TimeSpentSeconds: in.TimeSpentSeconds,
		SubmittedAt:      s.now(),
	}
	if err := attempt.SetAnswers(result.Answers); err != nil {
		return nil, fmt.Errorf("failed to encode answers: %w", err)
	}
	if _, err := s.attemptRepo.Create(ctx, nil, attempt); err != nil {
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	// Phase 3: best-effort schedule update. A fault here is logged and
	// swallowed — the attempt is already recorded and the schedule just
	// stays stale until the next successful attempt.
	schedule, schedErr := s.reviewSvc.CreateOrUpdateFromAttempt(ctx, userID, quiz.ID, result.Score)
	if schedErr != nil {
		s.log.Error("review scheduling failed, submission unaffected",
			"user_id", userID,
			"quiz_id", quiz.ID,
			"score", result.Score,
			"error", schedErr,
		)
		schedule = nil
	}

	// Phase 4: best-effort longitudinal user stats, same policy.
	if err := s.updateUserStats(ctx, userID, result.Score); err != nil {
		s.log.Error("user stats update failed, submission unaffected",
			"user_id", userID,
			"quiz_id", quiz.ID,
			"score", result.Score,
			"error", err,
		)
	}

	return &SubmitOutput{Attempt: attempt, Schedule: schedule}, nil
}

// updateUserStats folds the new score into the user's cumulative mean
// and bumps the completed counter.
func (s *submissionService) updateUserStats(ctx context.Context, userID uuid.UUID, score int) error {
	user, err := s.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return &apperr.SchedulingFault{Op: "load user stats", Err: err}
	}

	completed := user.TotalQuizzesCompleted + 1
	average := (user.AverageScore*float64(user.TotalQuizzesCompleted) + float64(score)) / float64(completed)
	if err := s.userRepo.UpdateStats(ctx, nil, userID, completed, average); err != nil {
		return &apperr.SchedulingFault{Op: "save user stats", Err: err}
	}
	return nil
}

func (s *submissionService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*types.QuizAttempt, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.attemptRepo.ListByUser(ctx, nil, userID, (page-1)*limit, limit)
}

func (s *submissionService) GetByID(ctx context.Context, userID, attemptID uuid.UUID) (*types.QuizAttempt, error) {
	attempt, err := s.attemptRepo.GetByID(ctx, nil, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("submission %s", attemptID)
		}
		return nil, err
	}
	if attempt.UserID != userID {
		return nil, apperr.NotFoundf("submission %s", attemptID)
	}
	return attempt, nil
}

func (s *submissionService) QuizStats(ctx context.Context, userID, quizID uuid.UUID) (*repos.QuizAggregate, error) {
	if _, err := s.quizRepo.GetByID(ctx, nil, quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("quiz %s", quizID)
		}
		return nil, err
	}
	return s.attemptRepo.AggregateByQuiz(ctx, nil, quizID)
}
