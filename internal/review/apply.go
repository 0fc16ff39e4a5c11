package review

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/quizforge/quizforge-backend/internal/types"
)

// Direction of an interval change, for telemetry.
type Direction string

const (
	DirectionUp        Direction = "up"
	DirectionDown      Direction = "down"
	DirectionSame      Direction = "same"
	DirectionImmediate Direction = "immediate"
)

// Transition records what one policy application did to a schedule.
type Transition struct {
	PreviousInterval Interval
	NewInterval      Interval
	Direction        Direction
	Created          bool
}

// Seed builds the first schedule for a (user, quiz) pair. The first
// attempt never triggers the adaptive branches: it always seeds the
// default 3-day cadence, whatever the score.
func Seed(userID, quizID uuid.UUID, score int, now time.Time) *types.ReviewSchedule {
	return &types.ReviewSchedule{
		UserID:         userID,
		QuizID:         quizID,
		LastReviewedAt: now,
		NextReviewAt:   now.AddDate(0, 0, DefaultInterval.Days()),
		ReviewInterval: DefaultInterval.Days(),
		ReviewCount:    1,
		LastScore:      score,
		AverageScore:   score,
		IsActive:       true,
	}
}

// Apply mutates an existing schedule for one graded attempt: bumps the
// review count, records the score, folds it into the weighted average
// (70% old, 30% new), moves the interval per NextInterval, and derives
// the next due date — now+1h for an immediate retry, now+interval days
// otherwise.
func Apply(s *types.ReviewSchedule, score int, now time.Time) Transition {
	previous := Interval(s.ReviewInterval)

	s.LastReviewedAt = now
	s.ReviewCount++
	s.LastScore = score
	if s.ReviewCount == 1 {
		s.AverageScore = score
	} else {
		s.AverageScore = int(math.Round(float64(s.AverageScore)*0.7 + float64(score)*0.3))
	}

	next := NextInterval(previous, score)
	s.ReviewInterval = next.Days()
	if next == Immediate {
		s.NextReviewAt = now.Add(time.Hour)
	} else {
		s.NextReviewAt = now.AddDate(0, 0, next.Days())
	}

	return Transition{
		PreviousInterval: previous,
		NewInterval:      next,
		Direction:        direction(previous, next),
	}
}

func direction(previous, next Interval) Direction {
	switch {
	case next == Immediate:
		return DirectionImmediate
	case next > previous:
		return DirectionUp
	case next < previous:
		return DirectionDown
	default:
		return DirectionSame
	}
}
