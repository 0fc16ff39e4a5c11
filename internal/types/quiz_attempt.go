package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AttemptAnswer is one graded answer record inside an attempt.
type AttemptAnswer struct {
	QuestionIndex       int  `json:"question_index"`
	SelectedChoiceIndex int  `json:"selected_choice_index"`
	IsCorrect           bool `json:"is_correct"`
}

// QuizAttempt is one scored submission. Rows are append-only: nothing
// mutates an attempt after creation.
type QuizAttempt struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index:idx_attempt_user_submitted" json:"user_id"`
	User             *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	QuizID           uuid.UUID      `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Quiz             *Quiz          `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID" json:"quiz,omitempty"`
	Answers          datatypes.JSON `gorm:"type:jsonb;column:answers;not null" json:"answers"`
	Score            int            `gorm:"column:score;not null" json:"score"`
	CorrectCount     int            `gorm:"column:correct_count;not null" json:"correct_count"`
	TotalQuestions   int            `gorm:"column:total_questions;not null" json:"total_questions"`
	TimeSpentSeconds *int           `gorm:"column:time_spent_seconds" json:"time_spent_seconds,omitempty"`
	SubmittedAt      time.Time      `gorm:"column:submitted_at;not null;index:idx_attempt_user_submitted" json:"submitted_at"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (QuizAttempt) TableName() string { return "quiz_attempt" }

func (a *QuizAttempt) DecodeAnswers() ([]AttemptAnswer, error) {
	var answers []AttemptAnswer
	if err := json.Unmarshal(a.Answers, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (a *QuizAttempt) SetAnswers(answers []AttemptAnswer) error {
	raw, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	a.Answers = datatypes.JSON(raw)
	return nil
}
