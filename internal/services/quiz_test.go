package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

type fakeGenerator struct {
	out   *GeneratedQuiz
	err   error
	calls int
}

func (f *fakeGenerator) GenerateQuiz(_ context.Context, _ string, _, _ int) (*GeneratedQuiz, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func newQuizFixture(t *testing.T, generator QuizGeneratorClient) (*quizService, *fakeQuizRepo) {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	repo := &fakeQuizRepo{quizzes: map[uuid.UUID]*types.Quiz{}}
	return NewQuizService(nil, log, repo, generator).(*quizService), repo
}

func validQuestions() []types.QuizQuestion {
	return []types.QuizQuestion{
		{Prompt: "q0", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
	}
}

func TestCreateQuiz_WithExplicitQuestions(t *testing.T) {
	gen := &fakeGenerator{}
	svc, repo := newQuizFixture(t, gen)
	userID := uuid.New()

	quiz, err := svc.Create(context.Background(), userID, CreateQuizInput{
		Title:     "Go basics",
		Questions: validQuestions(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quiz.CreatedBy != userID {
		t.Fatalf("expected creator %s, got %s", userID, quiz.CreatedBy)
	}
	if gen.calls != 0 {
		t.Fatalf("expected no generation call with explicit questions")
	}
	if len(repo.quizzes) != 1 {
		t.Fatalf("expected quiz persisted")
	}

	decoded, err := quiz.DecodeQuestions()
	if err != nil || len(decoded) != 1 {
		t.Fatalf("expected 1 persisted question, got %d (err=%v)", len(decoded), err)
	}
}

func TestCreateQuiz_GeneratesWhenNoQuestions(t *testing.T) {
	gen := &fakeGenerator{out: &GeneratedQuiz{Model: "gemini-2.0-flash", Questions: validQuestions()}}
	svc, _ := newQuizFixture(t, gen)

	quiz, err := svc.Create(context.Background(), uuid.New(), CreateQuizInput{
		Title:      "Generated",
		SourceText: "Go is a statically typed language designed at Google.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gen.calls != 1 {
		t.Fatalf("expected 1 generation call, got %d", gen.calls)
	}
	if quiz.Model != "gemini-2.0-flash" {
		t.Fatalf("expected model recorded, got %q", quiz.Model)
	}
}

func TestCreateQuiz_Validation(t *testing.T) {
	svc, _ := newQuizFixture(t, nil)
	ctx := context.Background()
	userID := uuid.New()

	cases := []struct {
		name string
		in   CreateQuizInput
	}{
		{"empty title", CreateQuizInput{Questions: validQuestions()}},
		{"no questions and no generator", CreateQuizInput{Title: "t", SourceText: "enough source text here"}},
		{"question with no correct choice", CreateQuizInput{Title: "t", Questions: []types.QuizQuestion{
			{Prompt: "q", Choices: []types.QuizChoice{{Text: "a"}, {Text: "b"}}},
		}}},
		{"question with two correct choices", CreateQuizInput{Title: "t", Questions: []types.QuizQuestion{
			{Prompt: "q", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}}},
		}}},
		{"question with one choice", CreateQuizInput{Title: "t", Questions: []types.QuizQuestion{
			{Prompt: "q", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}}},
		}}},
		{"question with empty prompt", CreateQuizInput{Title: "t", Questions: []types.QuizQuestion{
			{Prompt: "  ", Choices: []types.QuizChoice{{Text: "a", IsCorrect: true}, {Text: "b"}}},
		}}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(ctx, userID, tc.in); !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestQuizAccess_OwnerOnly(t *testing.T) {
	svc, repo := newQuizFixture(t, nil)
	owner := uuid.New()

	quiz, err := svc.Create(context.Background(), owner, CreateQuizInput{
		Title:     "t",
		Questions: validQuestions(),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.GetByID(context.Background(), owner, quiz.ID); err != nil {
		t.Fatalf("owner lookup failed: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), uuid.New(), quiz.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden for non-owner, got %v", err)
	}
	if err := svc.Delete(context.Background(), uuid.New(), quiz.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Fatalf("expected forbidden delete for non-owner, got %v", err)
	}

	if err := svc.Delete(context.Background(), owner, quiz.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(repo.quizzes) != 0 {
		t.Fatalf("expected quiz removed")
	}
}
