package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewSchedule is the adaptive spaced-repetition state for one
// (user, quiz) pair. At most one row exists per pair; only the review
// policy mutates the interval fields.
type ReviewSchedule struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_schedule_user_quiz,unique;index:idx_schedule_user_due" json:"user_id"`
	User           *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuizID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_schedule_user_quiz,unique" json:"quiz_id"`
	Quiz           *Quiz          `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	LastReviewedAt time.Time      `gorm:"column:last_reviewed_at;not null" json:"last_reviewed_at"`
	NextReviewAt   time.Time      `gorm:"column:next_review_at;not null;index:idx_schedule_user_due" json:"next_review_at"`
	ReviewInterval int            `gorm:"column:review_interval;not null;default:3" json:"review_interval"`
	ReviewCount    int            `gorm:"column:review_count;not null;default:0" json:"review_count"`
	LastScore      int            `gorm:"column:last_score;not null;default:0" json:"last_score"`
	AverageScore   int            `gorm:"column:average_score;not null;default:0" json:"average_score"`
	IsActive       bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ReviewSchedule) TableName() string { return "review_schedule" }

// NeedsReview reports whether the schedule is due at the given time.
func (s *ReviewSchedule) NeedsReview(now time.Time) bool {
	return s.IsActive && !s.NextReviewAt.After(now)
}
