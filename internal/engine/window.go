package engine

import (
	"math"
	"time"
)

// mustDate parses an already-validated date string.
func mustDate(s string) time.Time {
	t, _ := time.Parse(DateLayout, s)
	return t
}

// WeekOf returns the seven dates of the calendar week containing day,
// Sunday through Saturday.
func WeekOf(day string) ([]string, error) {
	if err := ValidateDate(day); err != nil {
		return nil, err
	}
	t := mustDate(day)
	start := t.AddDate(0, 0, -int(t.Weekday()))

	dates := make([]string, 7)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(DateLayout)
	}
	return dates, nil
}

// TrailingDays returns the n dates ending at day inclusive, in
// chronological order.
func TrailingDays(day string, n int) ([]string, error) {
	if err := ValidateDate(day); err != nil {
		return nil, err
	}
	t := mustDate(day)
	dates := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		dates = append(dates, t.AddDate(0, 0, -i).Format(DateLayout))
	}
	return dates, nil
}

// MonthDays returns every date of the calendar month containing day.
func MonthDays(day string) ([]string, error) {
	if err := ValidateDate(day); err != nil {
		return nil, err
	}
	t := mustDate(day)
	first := t.AddDate(0, 0, 1-t.Day())

	var dates []string
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// MonthSoFar returns the dates from the first of day's month through day
// inclusive. This is the streak-evaluation window.
func MonthSoFar(day string) ([]string, error) {
	if err := ValidateDate(day); err != nil {
		return nil, err
	}
	t := mustDate(day)
	dates := make([]string, 0, t.Day())
	for d := t.AddDate(0, 0, 1-t.Day()); !d.After(t); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(DateLayout))
	}
	return dates, nil
}

// SumRange adds up one usage figure per date: each day's summary Total,
// which already carries the total-row-else-per-app-sum accounting, so a day
// is never counted twice. Dates after today are skipped even when they fall
// inside the nominal window; dates with no summary contribute nothing.
func SumRange(dates []string, summaries map[string]DaySummary, today string) int {
	used := 0
	for _, d := range dates {
		if d > today {
			continue
		}
		if s, ok := summaries[d]; ok {
			used += s.Total
		}
	}
	return used
}

// Progress derives the goal-comparison view for a used-minutes figure.
// Returns nil when no goal is configured, which callers must keep distinct
// from zero progress.
func Progress(used int, goal *Goal) *GoalProgress {
	if goal == nil || goal.TargetMinutes <= 0 {
		return nil
	}
	p := &GoalProgress{Used: used, Target: goal.TargetMinutes}
	ratio := float64(used) / float64(goal.TargetMinutes)
	if used > goal.TargetMinutes {
		p.Exceeded = true
		p.Percent = int(math.Round((ratio - 1) * 100))
		return p
	}
	p.Percent = int(math.Round(math.Min(100, ratio*100)))
	return p
}
