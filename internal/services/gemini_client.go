package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/types"
)

// GeneratedQuiz is the question set produced by the generation model.
type GeneratedQuiz struct {
	Model     string
	Questions []types.QuizQuestion
}

// QuizGeneratorClient turns source text into a multiple-choice question
// list. It is the quiz-content collaborator: the engine treats its
// output as immutable quiz content.
type QuizGeneratorClient interface {
	GenerateQuiz(ctx context.Context, sourceText string, questionCount, choicesPerQuestion int) (*GeneratedQuiz, error)
}

type geminiClient struct {
	log        *logger.Logger
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	maxRetries int
}

func NewGeminiClient(log *logger.Logger) (QuizGeneratorClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}

	baseURL := os.Getenv("GEMINI_BASE_URL")
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.0-flash"
	}

	timeoutSec := 60
	if v := os.Getenv("GEMINI_TIMEOUT_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed > 0 {
			timeoutSec = parsed
		}
	}

	maxRetries := 3
	if v := os.Getenv("GEMINI_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && parsed >= 0 {
			maxRetries = parsed
		}
	}

	return &geminiClient{
		log:        log.With("service", "GeminiClient"),
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
		maxRetries: maxRetries,
	}, nil
}

type geminiHTTPError struct {
	StatusCode int
	Body       string
}

func (e *geminiHTTPError) Error() string {
	return fmt.Sprintf("gemini http %d: %s", e.StatusCode, e.Body)
}

func retryableStatus(code int) bool {
	return code == 408 || code == 429 || (code >= 500 && code <= 599)
}

func (c *geminiClient) GenerateQuiz(ctx context.Context, sourceText string, questionCount, choicesPerQuestion int) (*GeneratedQuiz, error) {
	if questionCount < 1 {
		questionCount = 4
	}
	if choicesPerQuestion < 2 {
		choicesPerQuestion = 4
	}

	prompt := fmt.Sprintf(`You are a quiz author. From the source text below, write exactly %d multiple-choice questions. Each question has exactly %d choices and exactly one correct choice.

Respond with STRICT JSON only, no extra text, in this shape:
{"questions":[{"prompt":"...","choices":[{"text":"...","is_correct":true}],"explanation":"..."}]}

SOURCE TEXT:
%s`, questionCount, choicesPerQuestion, sourceText)

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 2 * time.Second):
			}
		}

		raw, err := c.call(ctx, prompt)
		if err != nil {
			lastErr = err
			var httpErr *geminiHTTPError
			if errors.As(err, &httpErr) && !retryableStatus(httpErr.StatusCode) {
				return nil, err
			}
			c.log.Warn("gemini call failed, retrying", "attempt", attempt, "error", err)
			continue
		}

		questions, err := parseGeneratedQuestions(raw)
		if err != nil {
			lastErr = err
			c.log.Warn("gemini returned unparsable quiz, retrying", "attempt", attempt, "error", err)
			continue
		}
		return &GeneratedQuiz{Model: c.model, Questions: questions}, nil
	}
	return nil, fmt.Errorf("quiz generation failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

func (c *geminiClient) call(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]any{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"responseMimeType": "application/json",
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", &geminiHTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response has no candidates")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// parseGeneratedQuestions decodes the model output and enforces the
// structural rules the scoring engine depends on: at least one
// question, and exactly one correct choice per question.
func parseGeneratedQuestions(raw string) ([]types.QuizQuestion, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var out struct {
		Questions []types.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("invalid quiz JSON: %w", err)
	}
	if len(out.Questions) == 0 {
		return nil, fmt.Errorf("generated quiz has no questions")
	}
	for i, q := range out.Questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, fmt.Errorf("question %d has an empty prompt", i)
		}
		correct := 0
		for _, choice := range q.Choices {
			if choice.IsCorrect {
				correct++
			}
		}
		if len(q.Choices) < 2 || correct != 1 {
			return nil, fmt.Errorf("question %d must have at least 2 choices and exactly 1 correct", i)
		}
	}
	return out.Questions, nil
}
