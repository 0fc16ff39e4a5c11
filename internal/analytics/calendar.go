// Package analytics derives calendar-shaped engagement views from raw
// attempt history: contribution graph, streak counters, and period
// summaries.
//
// Every view buckets attempts by UTC calendar day. The policy is
// deliberately uniform — the streak walker and the contribution graph
// must never disagree about which day an attempt landed on.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/quizforge/quizforge-backend/internal/types"
)

const dayKeyLayout = "2006-01-02"

// DayBucket aggregates one user's attempts for one UTC calendar day.
type DayBucket struct {
	Date             time.Time `json:"date"`
	Count            int       `json:"count"`
	AverageScore     int       `json:"average_score"`
	BestScore        int       `json:"best_score"`
	TotalTimeSeconds int       `json:"total_time_seconds"`

	scoreSum int
}

// dayKey truncates to UTC midnight.
func dayKey(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// BucketByDay rolls attempts up into per-day aggregates keyed by UTC
// midnight.
func BucketByDay(attempts []*types.QuizAttempt) map[time.Time]*DayBucket {
	buckets := make(map[time.Time]*DayBucket)
	for _, a := range attempts {
		day := dayKey(a.SubmittedAt)
		b, ok := buckets[day]
		if !ok {
			b = &DayBucket{Date: day}
			buckets[day] = b
		}
		b.Count++
		b.scoreSum += a.Score
		if a.Score > b.BestScore {
			b.BestScore = a.Score
		}
		if a.TimeSpentSeconds != nil {
			b.TotalTimeSeconds += *a.TimeSpentSeconds
		}
	}
	for _, b := range buckets {
		b.AverageScore = int(math.Round(float64(b.scoreSum) / float64(b.Count)))
	}
	return buckets
}

// ContributionDay is one cell of the contribution graph. Weekday and
// Week position the cell in a Sunday-first calendar grid.
type ContributionDay struct {
	Date             string `json:"date"`
	Count            int    `json:"count"`
	AverageScore     int    `json:"average_score"`
	BestScore        int    `json:"best_score"`
	TotalTimeSeconds int    `json:"total_time_seconds"`
	Intensity        int    `json:"intensity"`
	Weekday          int    `json:"weekday"`
	Week             int    `json:"week"`
}

// Intensity maps a day's attempt count to a heatmap tier.
func Intensity(count int) int {
	switch {
	case count == 0:
		return 0
	case count <= 2:
		return 1
	case count <= 4:
		return 2
	case count <= 8:
		return 3
	default:
		return 4
	}
}

// ContributionGraph builds the day-per-cell heatmap for the `days` days
// ending at endDate inclusive. Every day in the range is present,
// zero-filled when idle, in chronological order.
func ContributionGraph(attempts []*types.QuizAttempt, endDate time.Time, days int) []ContributionDay {
	if days <= 0 {
		days = 365
	}
	end := dayKey(endDate)
	start := end.AddDate(0, 0, -(days - 1))
	buckets := BucketByDay(attempts)

	startWeekday := int(start.Weekday())
	out := make([]ContributionDay, 0, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		cell := ContributionDay{
			Date:    day.Format(dayKeyLayout),
			Weekday: int(day.Weekday()),
			Week:    (i + startWeekday) / 7,
		}
		if b, ok := buckets[day]; ok {
			cell.Count = b.Count
			cell.AverageScore = b.AverageScore
			cell.BestScore = b.BestScore
			cell.TotalTimeSeconds = b.TotalTimeSeconds
		}
		cell.Intensity = Intensity(cell.Count)
		out = append(out, cell)
	}
	return out
}

// StreakResult holds both streak counters.
type StreakResult struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// Streaks computes the current and longest runs of consecutive active
// days. The current streak walks backward from today (UTC); a quiet
// today does not break a streak that ran through yesterday. Callers
// bound the attempt history they pass in (the service uses a 2-year
// lookback) — that is a cost bound, not a correctness requirement.
func Streaks(attempts []*types.QuizAttempt, now time.Time) StreakResult {
	buckets := BucketByDay(attempts)
	if len(buckets) == 0 {
		return StreakResult{}
	}

	today := dayKey(now)

	// Current: anchor on today if active, else yesterday.
	anchor := today
	if _, ok := buckets[anchor]; !ok {
		anchor = today.AddDate(0, 0, -1)
	}
	current := 0
	for d := anchor; ; d = d.AddDate(0, 0, -1) {
		if _, ok := buckets[d]; !ok {
			break
		}
		current++
	}

	// Longest: forward scan over sorted active days, resetting whenever
	// the gap is not exactly one day.
	days := make([]time.Time, 0, len(buckets))
	for d := range buckets {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 0, 0
	for i, d := range days {
		if i == 0 || days[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	return StreakResult{CurrentStreak: current, LongestStreak: longest}
}
