package scoring

import (
	"math"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// Answer is one submitted answer, not yet graded.
type Answer struct {
	QuestionIndex       int `json:"question_index"`
	SelectedChoiceIndex int `json:"selected_choice_index"`
}

// Result is the outcome of grading a full submission.
type Result struct {
	Score          int
	CorrectCount   int
	TotalQuestions int
	Answers        []types.AttemptAnswer
}

// Grade scores a submission against a quiz's question list. It is pure:
// identical inputs always produce identical results and nothing is
// persisted. The whole submission is graded atomically — any invalid
// answer rejects the submission without a partial score.
//
// The caller guarantees the quiz has at least one question; empty
// quizzes are rejected at creation time.
func Grade(questions []types.QuizQuestion, answers []Answer) (Result, error) {
	if len(answers) != len(questions) {
		return Result{}, apperr.Validationf("answer count (%d) does not match question count (%d)", len(answers), len(questions))
	}

	graded := make([]types.AttemptAnswer, 0, len(answers))
	correct := 0
	for _, ans := range answers {
		if ans.QuestionIndex < 0 || ans.QuestionIndex >= len(questions) {
			return Result{}, apperr.NotFoundf("no question at index %d", ans.QuestionIndex)
		}
		question := questions[ans.QuestionIndex]
		if ans.SelectedChoiceIndex < 0 || ans.SelectedChoiceIndex >= len(question.Choices) {
			return Result{}, apperr.NotFoundf("no choice at index %d for question %d", ans.SelectedChoiceIndex, ans.QuestionIndex)
		}

		isCorrect := question.Choices[ans.SelectedChoiceIndex].IsCorrect
		if isCorrect {
			correct++
		}
		graded = append(graded, types.AttemptAnswer{
			QuestionIndex:       ans.QuestionIndex,
			SelectedChoiceIndex: ans.SelectedChoiceIndex,
			IsCorrect:           isCorrect,
		})
	}

	score := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return Result{
		Score:          score,
		CorrectCount:   correct,
		TotalQuestions: len(questions),
		Answers:        graded,
	}, nil
}
