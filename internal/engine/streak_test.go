package engine

import "testing"

func totals(date string, values ...int) []DaySummary {
	// Builds a chronological run of summaries starting at date; the date
	// strings themselves do not matter to the evaluator, only the order.
	days := make([]DaySummary, 0, len(values))
	d := mustDate(date)
	for i, v := range values {
		days = append(days, DaySummary{
			Date:  d.AddDate(0, 0, i).Format(DateLayout),
			Total: v,
		})
	}
	return days
}

func TestStreakNoGoalNotApplicable(t *testing.T) {
	st := EvaluateStreak(totals("2025-01-01", 30, 30, 30), nil)
	if st.CurrentRun != 0 || st.LongestRun != 0 {
		t.Fatalf("no goal must yield zero state, got %+v", st)
	}
}

func TestStreakAllQualifying(t *testing.T) {
	goal := &Goal{Scope: ScopeDaily, TargetMinutes: 60}
	st := EvaluateStreak(totals("2025-01-01", 30, 45, 60), goal)
	if st.CurrentRun != 3 || st.LongestRun != 3 {
		t.Fatalf("got %+v, want current=3 longest=3", st)
	}
}

func TestStreakZeroDayBreaksRun(t *testing.T) {
	// Absence of logging is not meeting the goal, however generous the goal.
	goal := &Goal{Scope: ScopeDaily, TargetMinutes: 10000}
	st := EvaluateStreak(totals("2025-01-01", 30, 0, 30, 30), goal)
	if st.LongestRun != 2 {
		t.Fatalf("longest: got %d, want 2", st.LongestRun)
	}
	if st.CurrentRun != 2 {
		t.Fatalf("current: got %d, want 2", st.CurrentRun)
	}
}

func TestStreakOverGoalBreaksRun(t *testing.T) {
	goal := &Goal{Scope: ScopeDaily, TargetMinutes: 60}
	st := EvaluateStreak(totals("2025-01-01", 30, 90, 30), goal)
	if st.LongestRun != 1 || st.CurrentRun != 1 {
		t.Fatalf("got %+v", st)
	}
}

func TestStreakEndsOnLastDayCaptured(t *testing.T) {
	goal := &Goal{Scope: ScopeDaily, TargetMinutes: 60}
	st := EvaluateStreak(totals("2025-01-01", 90, 30, 30, 30), goal)
	if st.LongestRun != 3 {
		t.Fatalf("trailing streak must be captured, got %+v", st)
	}
}

func TestStreakBrokenOnLastDayZeroesCurrent(t *testing.T) {
	goal := &Goal{Scope: ScopeDaily, TargetMinutes: 60}
	st := EvaluateStreak(totals("2025-01-01", 30, 30, 90), goal)
	if st.CurrentRun != 0 {
		t.Fatalf("current must be 0 after a breaking last day, got %d", st.CurrentRun)
	}
	if st.LongestRun != 2 {
		t.Fatalf("longest: got %d, want 2", st.LongestRun)
	}
}

func TestStreakIdempotent(t *testing.T) {
	goal := &Goal{Scope: ScopeDaily, TargetMinutes: 60}
	days := totals("2025-01-01", 30, 0, 45, 45, 90, 20)
	first := EvaluateStreak(days, goal)
	second := EvaluateStreak(days, goal)
	if first != second {
		t.Fatalf("evaluation must be idempotent: %+v vs %+v", first, second)
	}
}

func TestStreakEmptyWindow(t *testing.T) {
	goal := &Goal{Scope: ScopeDaily, TargetMinutes: 60}
	st := EvaluateStreak(nil, goal)
	if st.CurrentRun != 0 || st.LongestRun != 0 {
		t.Fatalf("empty window: got %+v", st)
	}
}
