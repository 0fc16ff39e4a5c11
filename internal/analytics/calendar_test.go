package analytics

import (
	"testing"
	"time"

	"github.com/quizforge/quizforge-backend/internal/types"
)

func attemptAt(t time.Time, score int) *types.QuizAttempt {
	return &types.QuizAttempt{Score: score, SubmittedAt: t}
}

func attemptWithTime(t time.Time, score, seconds int) *types.QuizAttempt {
	return &types.QuizAttempt{Score: score, SubmittedAt: t, TimeSpentSeconds: &seconds}
}

func TestBucketByDay_GroupsByUTCDay(t *testing.T) {
	// 23:30 UTC and 01:00 UTC the next day belong to different buckets
	// even though they are 90 minutes apart.
	late := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)
	early := time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)

	buckets := BucketByDay([]*types.QuizAttempt{
		attemptAt(late, 80),
		attemptAt(early, 60),
		attemptAt(late.Add(-time.Hour), 90),
	})

	if len(buckets) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(buckets))
	}
	day1 := buckets[time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)]
	if day1 == nil || day1.Count != 2 {
		t.Fatalf("expected 2 attempts on Mar 10, got %+v", day1)
	}
	if day1.AverageScore != 85 || day1.BestScore != 90 {
		t.Fatalf("expected avg 85 best 90, got avg %d best %d", day1.AverageScore, day1.BestScore)
	}
}

func TestBucketByDay_NonUTCInputNormalized(t *testing.T) {
	zone := time.FixedZone("UTC+5", 5*3600)
	// 02:00 local on Mar 11 is 21:00 UTC on Mar 10.
	local := time.Date(2025, 3, 11, 2, 0, 0, 0, zone)

	buckets := BucketByDay([]*types.QuizAttempt{attemptAt(local, 70)})
	if _, ok := buckets[time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)]; !ok {
		t.Fatalf("expected attempt bucketed to Mar 10 UTC, got %v", buckets)
	}
}

func TestIntensity_Tiers(t *testing.T) {
	cases := []struct {
		count int
		want  int
	}{
		{0, 0}, {1, 1}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {50, 4},
	}
	for _, tc := range cases {
		if got := Intensity(tc.count); got != tc.want {
			t.Fatalf("count %d: expected intensity %d, got %d", tc.count, tc.want, got)
		}
	}
}

func TestContributionGraph_ZeroFillsAndOrders(t *testing.T) {
	end := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)
	attempts := []*types.QuizAttempt{
		attemptWithTime(time.Date(2025, 3, 8, 9, 0, 0, 0, time.UTC), 90, 120),
	}

	graph := ContributionGraph(attempts, end, 7)
	if len(graph) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(graph))
	}
	if graph[0].Date != "2025-03-04" || graph[6].Date != "2025-03-10" {
		t.Fatalf("unexpected range: %s .. %s", graph[0].Date, graph[6].Date)
	}
	for i, cell := range graph {
		if cell.Date == "2025-03-08" {
			if cell.Count != 1 || cell.Intensity != 1 || cell.TotalTimeSeconds != 120 {
				t.Fatalf("unexpected active cell: %+v", cell)
			}
			continue
		}
		if cell.Count != 0 || cell.Intensity != 0 {
			t.Fatalf("cell %d not zero-filled: %+v", i, cell)
		}
	}
}

func TestContributionGraph_GridPlacement(t *testing.T) {
	// March 10 2025 is a Monday. A 7-day window then starts Tuesday
	// March 4, so the first cell sits mid-week in week 0 and the window
	// spills into week 1 at the Sunday boundary.
	end := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	graph := ContributionGraph(nil, end, 7)

	first := graph[0]
	if first.Weekday != 2 || first.Week != 0 {
		t.Fatalf("expected first cell Tue week 0, got weekday %d week %d", first.Weekday, first.Week)
	}
	last := graph[6]
	if last.Weekday != 1 || last.Week != 1 {
		t.Fatalf("expected last cell Mon week 1, got weekday %d week %d", last.Weekday, last.Week)
	}
	// Sunday March 9 opens the second week row.
	if graph[5].Weekday != 0 || graph[5].Week != 1 {
		t.Fatalf("expected Sunday to start week 1, got %+v", graph[5])
	}
}

func TestStreaks_CurrentCountsThroughToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	attempts := []*types.QuizAttempt{
		attemptAt(time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC), 70),
		attemptAt(time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC), 70),
		attemptAt(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), 70),
	}

	result := Streaks(attempts, now)
	if result.CurrentStreak != 3 {
		t.Fatalf("expected current streak 3, got %d", result.CurrentStreak)
	}
	if result.LongestStreak != 3 {
		t.Fatalf("expected longest streak 3, got %d", result.LongestStreak)
	}
}

func TestStreaks_QuietTodayAnchorsOnYesterday(t *testing.T) {
	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	attempts := []*types.QuizAttempt{
		attemptAt(time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC), 70),
		attemptAt(time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC), 70),
	}

	result := Streaks(attempts, now)
	if result.CurrentStreak != 2 {
		t.Fatalf("expected current streak 2 with quiet today, got %d", result.CurrentStreak)
	}
}

func TestStreaks_GapBreaksCurrentButNotLongest(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	attempts := []*types.QuizAttempt{
		// old 4-day run
		attemptAt(time.Date(2025, 2, 1, 10, 0, 0, 0, time.UTC), 70),
		attemptAt(time.Date(2025, 2, 2, 10, 0, 0, 0, time.UTC), 70),
		attemptAt(time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC), 70),
		attemptAt(time.Date(2025, 2, 4, 10, 0, 0, 0, time.UTC), 70),
		// current 1-day run
		attemptAt(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), 70),
	}

	result := Streaks(attempts, now)
	if result.CurrentStreak != 1 {
		t.Fatalf("expected current streak 1, got %d", result.CurrentStreak)
	}
	if result.LongestStreak != 4 {
		t.Fatalf("expected longest streak 4, got %d", result.LongestStreak)
	}
}

func TestStreaks_TwoDayGapZeroesCurrent(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	attempts := []*types.QuizAttempt{
		attemptAt(time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC), 70),
	}

	result := Streaks(attempts, now)
	if result.CurrentStreak != 0 {
		t.Fatalf("expected current streak 0, got %d", result.CurrentStreak)
	}
	if result.LongestStreak != 1 {
		t.Fatalf("expected longest streak 1, got %d", result.LongestStreak)
	}
}

func TestStreaks_MultipleAttemptsOneDayCountOnce(t *testing.T) {
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	attempts := []*types.QuizAttempt{
		attemptAt(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), 70),
		attemptAt(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC), 70),
		attemptAt(time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC), 70),
	}

	result := Streaks(attempts, now)
	if result.CurrentStreak != 1 || result.LongestStreak != 1 {
		t.Fatalf("expected both streaks 1, got %+v", result)
	}
}

func TestStreaks_Empty(t *testing.T) {
	result := Streaks(nil, time.Now())
	if result.CurrentStreak != 0 || result.LongestStreak != 0 {
		t.Fatalf("expected zero streaks, got %+v", result)
	}
}
