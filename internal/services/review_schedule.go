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
	"github.com/quizforge/quizforge-backend/internal/review"
	"github.com/quizforge/quizforge-backend/internal/types"
)

const (
	defaultDueLimit = 10
	maxDueLimit     = 50
)

// ReviewStatistics is the per-user rollup returned by Statistics.
type ReviewStatistics struct {
	TotalSchedules  int64                   `json:"total_schedules"`
	ActiveSchedules int64                   `json:"active_schedules"`
	NeedsReview     int64                   `json:"needs_review"`
	AverageScore    int                     `json:"average_score"`
	TotalReviews    int64                   `json:"total_reviews"`
	RecentReviews   []*types.ReviewSchedule `json:"recent_reviews"`
}

type ReviewScheduleService interface {
	// CreateOrUpdateFromAttempt applies the adaptive policy for one
	// graded attempt. A missing schedule seeds the default 3-day
	// cadence instead of erroring. Every failure comes back wrapped as
	// a SchedulingFault so the orchestrator can absorb it.
	CreateOrUpdateFromAttempt(ctx context.Context, userID, quizID uuid.UUID, score int) (*types.ReviewSchedule, error)
	DueForReview(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ReviewSchedule, error)
	ListSchedules(ctx context.Context, userID uuid.UUID, page, limit int, active *bool) ([]*types.ReviewSchedule, int64, error)
	UpdateSettings(ctx context.Context, userID, scheduleID uuid.UUID, interval *int, isActive *bool) (*types.ReviewSchedule, error)
	Delete(ctx context.Context, userID, scheduleID uuid.UUID) error
	Statistics(ctx context.Context, userID uuid.UUID) (*ReviewStatistics, error)
}

type reviewScheduleService struct {
	db           *gorm.DB
	log          *logger.Logger
	scheduleRepo repos.ReviewScheduleRepo
	now          func() time.Time
}

func NewReviewScheduleService(db *gorm.DB, baseLog *logger.Logger, scheduleRepo repos.ReviewScheduleRepo) ReviewScheduleService {
	return &reviewScheduleService{
		db:           db,
		log:          baseLog.With("service", "ReviewScheduleService"),
		scheduleRepo: scheduleRepo,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *reviewScheduleService) CreateOrUpdateFromAttempt(ctx context.Context, userID, quizID uuid.UUID, score int) (*types.ReviewSchedule, error) {
	now := s.now()

	schedule, err := s.scheduleRepo.GetByUserAndQuiz(ctx, nil, userID, quizID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.SchedulingFault{Op: "load schedule", Err: err}
		}

		seeded := review.Seed(userID, quizID, score, now)
		seeded.ID = uuid.New()
		if _, err := s.scheduleRepo.Create(ctx, nil, seeded); err != nil {
			return nil, &apperr.SchedulingFault{Op: "create schedule", Err: err}
		}
		s.log.Info("review schedule created",
			"user_id", userID,
			"quiz_id", quizID,
			"score", score,
			"interval_days", seeded.ReviewInterval,
			"next_review_at", seeded.NextReviewAt,
		)
		return seeded, nil
	}

	transition := review.Apply(schedule, score, now)
	if err := s.scheduleRepo.Save(ctx, nil, schedule); err != nil {
		return nil, &apperr.SchedulingFault{Op: "save schedule", Err: err}
	}

	if transition.NewInterval == review.Immediate {
		s.log.Warn("immediate retry triggered",
			"user_id", userID,
			"quiz_id", quizID,
			"score", score,
			"retry_at", schedule.NextReviewAt,
		)
	} else {
		s.log.Info("review schedule updated",
			"user_id", userID,
			"quiz_id", quizID,
			"score", score,
			"previous_interval_days", transition.PreviousInterval.Days(),
			"new_interval_days", transition.NewInterval.Days(),
			"direction", string(transition.Direction),
			"next_review_at", schedule.NextReviewAt,
		)
	}
	return schedule, nil
}

func (s *reviewScheduleService) DueForReview(ctx context.Context, userID uuid.UUID, limit int) ([]*types.ReviewSchedule, error) {
	if limit <= 0 {
		limit = defaultDueLimit
	}
	if limit > maxDueLimit {
		limit = maxDueLimit
	}

	due, err := s.scheduleRepo.Due(ctx, nil, userID, s.now(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load due schedules: %w", err)
	}
	s.log.Debug("due schedules loaded", "user_id", userID, "count", len(due))
	return due, nil
}

func (s *reviewScheduleService) ListSchedules(ctx context.Context, userID uuid.UUID, page, limit int, active *bool) ([]*types.ReviewSchedule, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.scheduleRepo.List(ctx, nil, userID, active, (page-1)*limit, limit)
}

func (s *reviewScheduleService) UpdateSettings(ctx context.Context, userID, scheduleID uuid.UUID, interval *int, isActive *bool) (*types.ReviewSchedule, error) {
	schedule, err := s.getOwned(ctx, userID, scheduleID)
	if err != nil {
		return nil, err
	}

	if interval != nil {
		iv := review.Interval(*interval)
		if !iv.Valid() || iv == review.Immediate {
			return nil, apperr.Validationf("review interval %d is not one of the allowed values", *interval)
		}
		schedule.ReviewInterval = iv.Days()
		schedule.NextReviewAt = schedule.LastReviewedAt.AddDate(0, 0, iv.Days())
	}
	if isActive != nil {
		schedule.IsActive = *isActive
	}

	if err := s.scheduleRepo.Save(ctx, nil, schedule); err != nil {
		return nil, fmt.Errorf("failed to save schedule settings: %w", err)
	}
	return schedule, nil
}

func (s *reviewScheduleService) Delete(ctx context.Context, userID, scheduleID uuid.UUID) error {
	schedule, err := s.getOwned(ctx, userID, scheduleID)
	if err != nil {
		return err
	}
	return s.scheduleRepo.FullDeleteByID(ctx, nil, schedule.ID)
}

func (s *reviewScheduleService) Statistics(ctx context.Context, userID uuid.UUID) (*ReviewStatistics, error) {
	agg, err := s.scheduleRepo.Aggregate(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate schedules: %w", err)
	}
	dueCount, err := s.scheduleRepo.DueCount(ctx, nil, userID, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to count due schedules: %w", err)
	}
	recent, err := s.scheduleRepo.RecentlyReviewed(ctx, nil, userID, 30)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent reviews: %w", err)
	}

	stats := &ReviewStatistics{
		TotalSchedules:  agg.TotalSchedules,
		ActiveSchedules: agg.ActiveSchedules,
		NeedsReview:     dueCount,
		TotalReviews:    agg.TotalReviews,
		RecentReviews:   recent,
	}
	if agg.AverageScore != nil {
		stats.AverageScore = int(*agg.AverageScore + 0.5)
	}
	return stats, nil
}

func (s *reviewScheduleService) getOwned(ctx context.Context, userID, scheduleID uuid.UUID) (*types.ReviewSchedule, error) {
	schedule, err := s.scheduleRepo.GetByID(ctx, nil, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("review schedule %s", scheduleID)
		}
		return nil, err
	}
	if schedule.UserID != userID {
		return nil, apperr.NotFoundf("review schedule %s", scheduleID)
	}
	return schedule, nil
}
