package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/analytics"
	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/repos"
)

// streakLookback bounds how much history the streak walker scans. A
// streak older than this is beyond what the product surfaces; this is a
// cost bound, not a correctness rule.
const streakLookback = 2 * 365 * 24 * time.Hour

type AnalyticsService interface {
	ContributionGraph(ctx context.Context, userID uuid.UUID, endDate time.Time, days int) ([]analytics.ContributionDay, error)
	Streaks(ctx context.Context, userID uuid.UUID) (analytics.StreakResult, error)
	YearSummary(ctx context.Context, userID uuid.UUID, year int) (analytics.YearSummary, error)
}

type analyticsService struct {
	db          *gorm.DB
	log         *logger.Logger
	attemptRepo repos.QuizAttemptRepo
	now         func() time.Time
}

func NewAnalyticsService(db *gorm.DB, baseLog *logger.Logger, attemptRepo repos.QuizAttemptRepo) AnalyticsService {
	return &analyticsService{
		db:          db,
		log:         baseLog.With("service", "AnalyticsService"),
		attemptRepo: attemptRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *analyticsService) ContributionGraph(ctx context.Context, userID uuid.UUID, endDate time.Time, days int) ([]analytics.ContributionDay, error) {
	if days <= 0 || days > 366 {
		days = 365
	}
	if endDate.IsZero() {
		endDate = s.now()
	}

	end := endDate.UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	from := end.AddDate(0, 0, -days)
	attempts, err := s.attemptRepo.ListByUserBetween(ctx, nil, userID, from, end)
	if err != nil {
		return nil, &apperr.AnalyticsFault{View: "contribution graph", Err: err}
	}
	return analytics.ContributionGraph(attempts, endDate, days), nil
}

func (s *analyticsService) Streaks(ctx context.Context, userID uuid.UUID) (analytics.StreakResult, error) {
	now := s.now()
	attempts, err := s.attemptRepo.ListByUserBetween(ctx, nil, userID, now.Add(-streakLookback), now.AddDate(0, 0, 1))
	if err != nil {
		return analytics.StreakResult{}, &apperr.AnalyticsFault{View: "streaks", Err: err}
	}
	return analytics.Streaks(attempts, now), nil
}

func (s *analyticsService) YearSummary(ctx context.Context, userID uuid.UUID, year int) (analytics.YearSummary, error) {
	if year <= 0 {
		year = s.now().Year()
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	attempts, err := s.attemptRepo.ListByUserBetween(ctx, nil, userID, from, to)
	if err != nil {
		return analytics.YearSummary{}, &apperr.AnalyticsFault{View: "year summary", Err: err}
	}
	return analytics.SummarizeYear(attempts, year), nil
}
