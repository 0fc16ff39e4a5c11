package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// QuizAggregate is the per-quiz submission rollup used by the stats
// endpoint.
type QuizAggregate struct {
	TotalSubmissions int64    `json:"total_submissions"`
	AverageScore     *float64 `json:"average_score"`
	MaxScore         *int     `json:"max_score"`
	MinScore         *int     `json:"min_score"`
	AverageTime      *float64 `json:"average_time"`
}

type QuizAttemptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.QuizAttempt) (*types.QuizAttempt, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QuizAttempt, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]*types.QuizAttempt, int64, error)
	// ListByUserBetween returns the user's attempts with
	// from <= submitted_at < to, oldest first. Analytics buckets these
	// by UTC calendar day in memory.
	ListByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.QuizAttempt, error)
	AggregateByQuiz(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*QuizAggregate, error)
}

type quizAttemptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizAttemptRepo(db *gorm.DB, baseLog *logger.Logger) QuizAttemptRepo {
	return &quizAttemptRepo{db: db, log: baseLog.With("repo", "QuizAttemptRepo")}
}

func (r *quizAttemptRepo) Create(ctx context.Context, tx *gorm.DB, row *types.QuizAttempt) (*types.QuizAttempt, error) {
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

func (r *quizAttemptRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.QuizAttempt
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *quizAttemptRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, offset, limit int) ([]*types.QuizAttempt, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	var total int64

	query := transaction.WithContext(ctx).
		Model(&types.QuizAttempt{}).
		Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("submitted_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (r *quizAttemptRepo) ListByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.QuizAttempt, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.QuizAttempt
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND submitted_at >= ? AND submitted_at < ?", userID, from, to).
		Order("submitted_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *quizAttemptRepo) AggregateByQuiz(ctx context.Context, tx *gorm.DB, quizID uuid.UUID) (*QuizAggregate, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result QuizAggregate
	if err := transaction.WithContext(ctx).
		Model(&types.QuizAttempt{}).
		Select("COUNT(*) AS total_submissions, AVG(score) AS average_score, MAX(score) AS max_score, MIN(score) AS min_score, AVG(time_spent_seconds) AS average_time").
		Where("quiz_id = ?", quizID).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}
