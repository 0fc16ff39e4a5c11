package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/apperr"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/requestdata"
	"github.com/quizforge/quizforge-backend/internal/types"
)

func newAuthFixture(t *testing.T) *authService {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*types.User{}}
	return &authService{
		log:          log,
		userRepo:     userRepo,
		jwtSecretKey: "test-secret",
		accessTTL:    time.Hour,
		refreshTTL:   24 * time.Hour,
	}
}

func TestAccessToken_RoundTrip(t *testing.T) {
	svc := newAuthFixture(t)
	user := &types.User{ID: uuid.New(), Role: "user"}

	token, err := svc.generateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	ctx, err := svc.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatalf("expected request data in context")
	}
	if rd.UserID != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, rd.UserID)
	}
	if rd.Role != "user" {
		t.Fatalf("expected role user, got %q", rd.Role)
	}
}

func TestSetContextFromToken_RejectsGarbage(t *testing.T) {
	svc := newAuthFixture(t)
	if _, err := svc.SetContextFromToken(context.Background(), "not-a-jwt"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSetContextFromToken_RejectsWrongKey(t *testing.T) {
	svc := newAuthFixture(t)
	user := &types.User{ID: uuid.New(), Role: "user"}
	token, err := svc.generateAccessToken(user)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	other := newAuthFixture(t)
	other.jwtSecretKey = "different-secret"
	if _, err := other.SetContextFromToken(context.Background(), token); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("expected unauthorized with wrong key, got %v", err)
	}
}

func TestRegisterUser_Validation(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		userName string
	}{
		{"bad email", "not-an-email", "secret123", "A"},
		{"short password", "a@b.com", "123", "A"},
		{"empty name", "a@b.com", "secret123", "  "},
	}
	for _, tc := range cases {
		if _, err := svc.RegisterUser(ctx, tc.email, tc.password, tc.userName); !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestRegisterUser_NormalizesEmailAndHashesPassword(t *testing.T) {
	svc := newAuthFixture(t)

	user, err := svc.RegisterUser(context.Background(), "  Alice@Example.COM ", "secret123", "Alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Password == "secret123" || user.Password == "" {
		t.Fatalf("expected hashed password")
	}
	if !user.IsActive || user.Role != "user" {
		t.Fatalf("unexpected defaults: %+v", user)
	}
}

func TestRegisterUser_RejectsDuplicateEmail(t *testing.T) {
	svc := newAuthFixture(t)

	if _, err := svc.RegisterUser(context.Background(), "a@b.com", "secret123", "A"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if _, err := svc.RegisterUser(context.Background(), "a@b.com", "other1234", "B"); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error on duplicate, got %v", err)
	}
}
