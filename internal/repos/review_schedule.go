package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// ScheduleAggregate is the per-user schedule rollup used by the review
// statistics endpoint.
type ScheduleAggregate struct {
	TotalSchedules  int64    `json:"total_schedules"`
	ActiveSchedules int64    `json:"active_schedules"`
	AverageScore    *float64 `json:"average_score"`
	TotalReviews    int64    `json:"total_reviews"`
}

type ReviewScheduleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.ReviewSchedule) (*types.ReviewSchedule, error)
	Save(ctx context.Context, tx *gorm.DB, row *types.ReviewSchedule) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ReviewSchedule, error)
	GetByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) (*types.ReviewSchedule, error)
	// Due returns active schedules with next_review_at <= now,
	// earliest first, capped at limit.
	Due(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*types.ReviewSchedule, error)
	DueCount(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (int64, error)
	List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, active *bool, offset, limit int) ([]*types.ReviewSchedule, int64, error)
	RecentlyReviewed(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ReviewSchedule, error)
	Aggregate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*ScheduleAggregate, error)
	FullDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type reviewScheduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewScheduleRepo(db *gorm.DB, baseLog *logger.Logger) ReviewScheduleRepo {
	return &reviewScheduleRepo{db: db, log: baseLog.With("repo", "ReviewScheduleRepo")}
}

func (r *reviewScheduleRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ReviewSchedule) (*types.ReviewSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *reviewScheduleRepo) Save(ctx context.Context, tx *gorm.DB, row *types.ReviewSchedule) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	return transaction.WithContext(ctx).Save(row).Error
}

func (r *reviewScheduleRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.ReviewSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.ReviewSchedule
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *reviewScheduleRepo) GetByUserAndQuiz(ctx context.Context, tx *gorm.DB, userID, quizID uuid.UUID) (*types.ReviewSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.ReviewSchedule
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *reviewScheduleRepo) Due(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time, limit int) ([]*types.ReviewSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ReviewSchedule
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_active = ? AND next_review_at <= ?", userID, true, now).
		Order("next_review_at ASC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewScheduleRepo) DueCount(ctx context.Context, tx *gorm.DB, userID uuid.UUID, now time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ReviewSchedule{}).
		Where("user_id = ? AND is_active = ? AND next_review_at <= ?", userID, true, now).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *reviewScheduleRepo) List(ctx context.Context, tx *gorm.DB, userID uuid.UUID, active *bool, offset, limit int) ([]*types.ReviewSchedule, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ReviewSchedule
	var total int64

	query := transaction.WithContext(ctx).
		Model(&types.ReviewSchedule{}).
		Where("user_id = ?", userID)
	if active != nil {
		query = query.Where("is_active = ?", *active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("next_review_at ASC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *reviewScheduleRepo) RecentlyReviewed(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.ReviewSchedule, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ReviewSchedule
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_reviewed_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewScheduleRepo) Aggregate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*ScheduleAggregate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result ScheduleAggregate
	if err := transaction.WithContext(ctx).
		Model(&types.ReviewSchedule{}).
		Select("COUNT(*) AS total_schedules, SUM(CASE WHEN is_active THEN 1 ELSE 0 END) AS active_schedules, AVG(average_score) AS average_score, COALESCE(SUM(review_count), 0) AS total_reviews").
		Where("user_id = ?", userID).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *reviewScheduleRepo) FullDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Unscoped().
		Where("id = ?", id).
		Delete(&types.ReviewSchedule{}).Error
}
