package review

import "testing"

func TestNextInterval_LowScoreForcesImmediate(t *testing.T) {
	for _, current := range []Interval{Immediate, OneDay, ThreeDays, ThirtyDays} {
		if got := NextInterval(current, 49); got != Immediate {
			t.Fatalf("score 49 from %d: expected Immediate, got %d", current, got)
		}
	}
}

func TestNextInterval_HighScoreStepsUp(t *testing.T) {
	cases := []struct {
		current Interval
		want    Interval
	}{
		{OneDay, ThreeDays},
		{ThreeDays, FiveDays},
		{FiveDays, SevenDays},
		{SevenDays, FifteenDays},
		{FifteenDays, ThirtyDays},
		{ThirtyDays, ThirtyDays},
	}
	for _, tc := range cases {
		if got := NextInterval(tc.current, 80); got != tc.want {
			t.Fatalf("score 80 from %d: expected %d, got %d", tc.current, tc.want, got)
		}
		if got := NextInterval(tc.current, 100); got != tc.want {
			t.Fatalf("score 100 from %d: expected %d, got %d", tc.current, tc.want, got)
		}
	}
}

func TestNextInterval_BorderlineScoreStepsDown(t *testing.T) {
	cases := []struct {
		current Interval
		want    Interval
	}{
		{OneDay, OneDay},
		{ThreeDays, OneDay},
		{FiveDays, ThreeDays},
		{SevenDays, FiveDays},
		{FifteenDays, SevenDays},
		{ThirtyDays, FifteenDays},
	}
	for _, tc := range cases {
		for _, score := range []int{50, 59} {
			if got := NextInterval(tc.current, score); got != tc.want {
				t.Fatalf("score %d from %d: expected %d, got %d", score, tc.current, tc.want, got)
			}
		}
	}
}

func TestNextInterval_MiddleBandHolds(t *testing.T) {
	for _, current := range []Interval{OneDay, ThreeDays, FiveDays, SevenDays, FifteenDays, ThirtyDays} {
		for _, score := range []int{60, 70, 79} {
			if got := NextInterval(current, score); got != current {
				t.Fatalf("score %d from %d: expected unchanged, got %d", score, current, got)
			}
		}
	}
}

func TestNextInterval_ImmediateRecovers(t *testing.T) {
	if got := NextInterval(Immediate, 80); got != OneDay {
		t.Fatalf("score 80 from Immediate: expected OneDay, got %d", got)
	}
	if got := NextInterval(Immediate, 55); got != OneDay {
		t.Fatalf("score 55 from Immediate: expected OneDay, got %d", got)
	}
	if got := NextInterval(Immediate, 70); got != Immediate {
		t.Fatalf("score 70 from Immediate: expected unchanged, got %d", got)
	}
}

func TestInterval_Valid(t *testing.T) {
	for _, v := range []Interval{Immediate, OneDay, ThreeDays, FiveDays, SevenDays, FifteenDays, ThirtyDays} {
		if !v.Valid() {
			t.Fatalf("expected %d valid", v)
		}
	}
	for _, v := range []Interval{Interval(2), Interval(10), Interval(60), Interval(-1)} {
		if v.Valid() {
			t.Fatalf("expected %d invalid", v)
		}
	}
}
