package scoring

import (
	"errors"
	"testing"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/types"
)

func threeQuestions() []types.QuizQuestion {
	return []types.QuizQuestion{
		{Prompt: "q0", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Prompt: "q1", Choices: []types.QuizChoice{{Text: "a"}, {Text: "b", IsCorrect: true}}},
		{Prompt: "q2", Choices: []types.QuizChoice{{Text: "a"}, {Text: "b"}, {Text: "c", IsCorrect: true}}},
	}
}

func TestGrade_ScoresAndMarksAnswers(t *testing.T) {
	answers := []Answer{
		{QuestionIndex: 0, SelectedChoiceIndex: 0},
		{QuestionIndex: 1, SelectedChoiceIndex: 0},
		{QuestionIndex: 2, SelectedChoiceIndex: 2},
	}

	result, err := Grade(threeQuestions(), answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CorrectCount != 2 || result.TotalQuestions != 3 {
		t.Fatalf("expected 2/3 correct, got %d/%d", result.CorrectCount, result.TotalQuestions)
	}
	if result.Score != 67 {
		t.Fatalf("expected score 67, got %d", result.Score)
	}
	if !result.Answers[0].IsCorrect || result.Answers[1].IsCorrect || !result.Answers[2].IsCorrect {
		t.Fatalf("unexpected per-answer correctness: %+v", result.Answers)
	}
}

func TestGrade_RoundsHalfUp(t *testing.T) {
	questions := []types.QuizQuestion{
		{Prompt: "q0", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Prompt: "q1", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Prompt: "q2", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Prompt: "q3", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Prompt: "q4", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Prompt: "q5", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Prompt: "q6", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		{Prompt: "q7", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
	}
	answers := make([]Answer, len(questions))
	for i := range answers {
		answers[i] = Answer{QuestionIndex: i, SelectedChoiceIndex: 0}
	}
	// 1 of 8 wrong: 7/8 = 87.5 rounds to 88
	answers[7].SelectedChoiceIndex = 1

	result, err := Grade(questions, answers)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Score != 88 {
		t.Fatalf("expected score 88, got %d", result.Score)
	}
}

func TestGrade_RejectsCountMismatch(t *testing.T) {
	_, err := Grade(threeQuestions(), []Answer{{QuestionIndex: 0, SelectedChoiceIndex: 0}})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGrade_RejectsQuestionIndexOutOfRange(t *testing.T) {
	answers := []Answer{
		{QuestionIndex: 0, SelectedChoiceIndex: 0},
		{QuestionIndex: 1, SelectedChoiceIndex: 0},
		{QuestionIndex: 3, SelectedChoiceIndex: 0},
	}
	_, err := Grade(threeQuestions(), answers)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGrade_RejectsChoiceIndexOutOfRange(t *testing.T) {
	answers := []Answer{
		{QuestionIndex: 0, SelectedChoiceIndex: 2},
		{QuestionIndex: 1, SelectedChoiceIndex: 0},
		{QuestionIndex: 2, SelectedChoiceIndex: 0},
	}
	_, err := Grade(threeQuestions(), answers)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGrade_NegativeIndexRejected(t *testing.T) {
	answers := []Answer{
		{QuestionIndex: -1, SelectedChoiceIndex: 0},
		{QuestionIndex: 1, SelectedChoiceIndex: 0},
		{QuestionIndex: 2, SelectedChoiceIndex: 0},
	}
	if _, err := Grade(threeQuestions(), answers); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
