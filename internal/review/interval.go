// Package review implements the adaptive spaced-repetition policy: a
// closed ordered set of day intervals and the score-driven transition
// between them.
package review

// Interval is a review gap in days. The set is closed: only the values
// below are ever stored, and stepping past either end clamps.
type Interval int

const (
	// Immediate forces a retry within the hour instead of a day gap.
	Immediate   Interval = 0
	OneDay      Interval = 1
	ThreeDays   Interval = 3
	FiveDays    Interval = 5
	SevenDays   Interval = 7
	FifteenDays Interval = 15
	ThirtyDays  Interval = 30
)

// DefaultInterval seeds every newly created schedule, regardless of the
// first score.
const DefaultInterval = ThreeDays

// ladder is the ordered non-immediate interval set.
var ladder = []Interval{OneDay, ThreeDays, FiveDays, SevenDays, FifteenDays, ThirtyDays}

// Score thresholds for the adaptive policy. The immediate-retry check
// fires first, so the step-down branch only ever sees [50,60).
const (
	immediateBelow = 50
	stepDownBelow  = 60
	stepUpFrom     = 80
)

func (i Interval) Valid() bool {
	if i == Immediate {
		return true
	}
	return i.position() >= 0
}

func (i Interval) Days() int { return int(i) }

func (i Interval) position() int {
	for idx, v := range ladder {
		if v == i {
			return idx
		}
	}
	return -1
}

// StepUp moves one position up the ladder, holding at ThirtyDays.
// Immediate steps up to the bottom of the ladder.
func (i Interval) StepUp() Interval {
	if i == Immediate {
		return OneDay
	}
	pos := i.position()
	if pos < 0 || pos == len(ladder)-1 {
		if pos < 0 {
			return DefaultInterval
		}
		return ThirtyDays
	}
	return ladder[pos+1]
}

// StepDown moves one position down the ladder, holding at OneDay.
// Immediate is treated as OneDay.
func (i Interval) StepDown() Interval {
	if i == Immediate {
		return OneDay
	}
	pos := i.position()
	if pos <= 0 {
		return OneDay
	}
	return ladder[pos-1]
}

// NextInterval applies the adaptive policy for one graded attempt:
//
//	score < 50          → Immediate (overrides everything else)
//	score >= 80         → step up, clamped at 30 days
//	50 <= score < 60    → step down, clamped at 1 day
//	60 <= score < 80    → unchanged
func NextInterval(current Interval, score int) Interval {
	switch {
	case score < immediateBelow:
		return Immediate
	case score >= stepUpFrom:
		return current.StepUp()
	case score < stepDownBelow:
		return current.StepDown()
	default:
		return current
	}
}
