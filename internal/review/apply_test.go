package review

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestSeed_AlwaysStartsAtDefaultInterval(t *testing.T) {
	for _, score := range []int{0, 49, 75, 100} {
		s := Seed(uuid.New(), uuid.New(), score, testNow)
		if s.ReviewInterval != DefaultInterval.Days() {
			t.Fatalf("score %d: expected interval %d, got %d", score, DefaultInterval.Days(), s.ReviewInterval)
		}
		if s.ReviewCount != 1 {
			t.Fatalf("expected review count 1, got %d", s.ReviewCount)
		}
		if s.LastScore != score || s.AverageScore != score {
			t.Fatalf("expected last/average %d, got %d/%d", score, s.LastScore, s.AverageScore)
		}
		if !s.NextReviewAt.Equal(testNow.AddDate(0, 0, 3)) {
			t.Fatalf("expected next review 3 days out, got %v", s.NextReviewAt)
		}
		if !s.IsActive {
			t.Fatalf("expected new schedule active")
		}
	}
}

func TestApply_WeightedAverage(t *testing.T) {
	s := Seed(uuid.New(), uuid.New(), 80, testNow)

	Apply(s, 60, testNow.AddDate(0, 0, 3))
	// 80*0.7 + 60*0.3 = 74
	if s.AverageScore != 74 {
		t.Fatalf("expected average 74, got %d", s.AverageScore)
	}
	if s.LastScore != 60 {
		t.Fatalf("expected last score 60, got %d", s.LastScore)
	}
	if s.ReviewCount != 2 {
		t.Fatalf("expected review count 2, got %d", s.ReviewCount)
	}

	Apply(s, 90, testNow.AddDate(0, 0, 6))
	// 74*0.7 + 90*0.3 = 78.8 rounds to 79
	if s.AverageScore != 79 {
		t.Fatalf("expected average 79, got %d", s.AverageScore)
	}
}

func TestApply_StepUpMovesDueDate(t *testing.T) {
	s := Seed(uuid.New(), uuid.New(), 70, testNow)
	at := testNow.AddDate(0, 0, 3)

	tr := Apply(s, 95, at)
	if tr.Direction != DirectionUp {
		t.Fatalf("expected direction up, got %q", tr.Direction)
	}
	if tr.PreviousInterval != ThreeDays || tr.NewInterval != FiveDays {
		t.Fatalf("expected 3 -> 5, got %d -> %d", tr.PreviousInterval, tr.NewInterval)
	}
	if s.ReviewInterval != 5 {
		t.Fatalf("expected interval 5, got %d", s.ReviewInterval)
	}
	if !s.NextReviewAt.Equal(at.AddDate(0, 0, 5)) {
		t.Fatalf("expected next review 5 days after attempt, got %v", s.NextReviewAt)
	}
}

func TestApply_FailureSchedulesRetryWithinHour(t *testing.T) {
	s := Seed(uuid.New(), uuid.New(), 70, testNow)
	at := testNow.AddDate(0, 0, 3)

	tr := Apply(s, 30, at)
	if tr.Direction != DirectionImmediate {
		t.Fatalf("expected direction immediate, got %q", tr.Direction)
	}
	if s.ReviewInterval != 0 {
		t.Fatalf("expected stored interval 0, got %d", s.ReviewInterval)
	}
	if !s.NextReviewAt.Equal(at.Add(time.Hour)) {
		t.Fatalf("expected retry one hour out, got %v", s.NextReviewAt)
	}
}

func TestApply_MiddleBandKeepsInterval(t *testing.T) {
	s := Seed(uuid.New(), uuid.New(), 70, testNow)
	at := testNow.AddDate(0, 0, 3)

	tr := Apply(s, 65, at)
	if tr.Direction != DirectionSame {
		t.Fatalf("expected direction same, got %q", tr.Direction)
	}
	if s.ReviewInterval != 3 {
		t.Fatalf("expected interval unchanged at 3, got %d", s.ReviewInterval)
	}
	if !s.NextReviewAt.Equal(at.AddDate(0, 0, 3)) {
		t.Fatalf("expected next review 3 days after attempt, got %v", s.NextReviewAt)
	}
}

func TestApply_ClampsAtLadderEnds(t *testing.T) {
	s := Seed(uuid.New(), uuid.New(), 70, testNow)
	s.ReviewInterval = ThirtyDays.Days()
	Apply(s, 100, testNow)
	if s.ReviewInterval != 30 {
		t.Fatalf("expected clamp at 30, got %d", s.ReviewInterval)
	}

	s.ReviewInterval = OneDay.Days()
	Apply(s, 55, testNow)
	if s.ReviewInterval != 1 {
		t.Fatalf("expected clamp at 1, got %d", s.ReviewInterval)
	}
}
