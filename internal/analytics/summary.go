package analytics

import (
	"math"
	"time"

	"github.com/quizforge/quizforge-backend/internal/types"
)

// MonthStat is one month's slice of a year summary. Month is 1-based.
type MonthStat struct {
	Month        int `json:"month"`
	Count        int `json:"count"`
	AverageScore int `json:"average_score"`

	scoreSum int
}

// WeekdayStat aggregates all attempts landing on one weekday of the
// year, independent of week. Weekday follows time.Weekday (Sunday = 0).
type WeekdayStat struct {
	Weekday      int `json:"weekday"`
	Count        int `json:"count"`
	AverageScore int `json:"average_score"`

	scoreSum int
}

// YearSummary is the engagement rollup for one calendar year.
type YearSummary struct {
	Year             int           `json:"year"`
	TotalAttempts    int           `json:"total_attempts"`
	AverageScore     int           `json:"average_score"`
	BestScore        int           `json:"best_score"`
	TotalTimeSeconds int           `json:"total_time_seconds"`
	ActiveDays       int           `json:"active_days"`
	Months           []MonthStat   `json:"months"`
	Weekdays         []WeekdayStat `json:"weekdays"`
	// Derived picks; -1 (or 0 for the 1-based month) when the year is
	// empty. Ties break toward the lowest index.
	MostActiveMonth  int `json:"most_active_month"`
	BestAverageMonth int `json:"best_average_month"`
	MostActiveWeekday int `json:"most_active_weekday"`
}

// SummarizeYear aggregates one calendar year (UTC) of attempts. Callers
// pass the attempts of that year; rows outside it are ignored.
func SummarizeYear(attempts []*types.QuizAttempt, year int) YearSummary {
	summary := YearSummary{
		Year:              year,
		Months:            make([]MonthStat, 12),
		Weekdays:          make([]WeekdayStat, 7),
		MostActiveMonth:   0,
		BestAverageMonth:  0,
		MostActiveWeekday: -1,
	}
	for i := range summary.Months {
		summary.Months[i].Month = i + 1
	}
	for i := range summary.Weekdays {
		summary.Weekdays[i].Weekday = i
	}

	activeDays := make(map[time.Time]struct{})
	scoreSum := 0
	for _, a := range attempts {
		day := dayKey(a.SubmittedAt)
		if day.Year() != year {
			continue
		}

		summary.TotalAttempts++
		scoreSum += a.Score
		if a.Score > summary.BestScore {
			summary.BestScore = a.Score
		}
		if a.TimeSpentSeconds != nil {
			summary.TotalTimeSeconds += *a.TimeSpentSeconds
		}
		activeDays[day] = struct{}{}

		m := &summary.Months[int(day.Month())-1]
		m.Count++
		m.scoreSum += a.Score

		w := &summary.Weekdays[int(day.Weekday())]
		w.Count++
		w.scoreSum += a.Score
	}

	if summary.TotalAttempts == 0 {
		return summary
	}

	summary.AverageScore = int(math.Round(float64(scoreSum) / float64(summary.TotalAttempts)))
	summary.ActiveDays = len(activeDays)

	for i := range summary.Months {
		if summary.Months[i].Count > 0 {
			summary.Months[i].AverageScore = int(math.Round(float64(summary.Months[i].scoreSum) / float64(summary.Months[i].Count)))
		}
	}
	for i := range summary.Weekdays {
		if summary.Weekdays[i].Count > 0 {
			summary.Weekdays[i].AverageScore = int(math.Round(float64(summary.Weekdays[i].scoreSum) / float64(summary.Weekdays[i].Count)))
		}
	}

	for i := range summary.Months {
		if summary.Months[i].Count == 0 {
			continue
		}
		if summary.MostActiveMonth == 0 || summary.Months[i].Count > summary.Months[summary.MostActiveMonth-1].Count {
			summary.MostActiveMonth = i + 1
		}
		if summary.BestAverageMonth == 0 || summary.Months[i].AverageScore > summary.Months[summary.BestAverageMonth-1].AverageScore {
			summary.BestAverageMonth = i + 1
		}
	}
	for i := range summary.Weekdays {
		if summary.Weekdays[i].Count == 0 {
			continue
		}
		if summary.MostActiveWeekday < 0 || summary.Weekdays[i].Count > summary.Weekdays[summary.MostActiveWeekday].Count {
			summary.MostActiveWeekday = i
		}
	}

	return summary
}
