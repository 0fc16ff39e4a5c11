package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizChoice is one option of a question. Exactly one choice per
// question carries IsCorrect.
type QuizChoice struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizQuestion struct {
	Prompt      string       `json:"prompt"`
	Choices     []QuizChoice `json:"choices"`
	Explanation string       `json:"explanation,omitempty"`
}

type Quiz struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title      string         `gorm:"column:title;not null" json:"title"`
	SourceText string         `gorm:"column:source_text;type:text" json:"source_text,omitempty"`
	Model      string         `gorm:"column:model" json:"model,omitempty"`
	Questions  datatypes.JSON `gorm:"type:jsonb;column:questions;not null" json:"questions"`
	CreatedBy  uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by"`
	Creator    *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:CreatedBy;references:ID" json:"creator,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Quiz) TableName() string { return "quiz" }

func (q *Quiz) DecodeQuestions() ([]QuizQuestion, error) {
	var questions []QuizQuestion
	if err := json.Unmarshal(q.Questions, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (q *Quiz) SetQuestions(questions []QuizQuestion) error {
	raw, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	q.Questions = datatypes.JSON(raw)
	return nil
}
