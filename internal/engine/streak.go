package engine

// EvaluateStreak walks one window's days in chronological order and counts
// consecutive qualifying runs. A day qualifies only when it has a nonzero
// total at or under the daily goal; a day with nothing logged breaks the run
// rather than counting as a free pass, so callers must include absent days
// as zero-total summaries.
//
// With no daily goal configured the answer is "not applicable", reported as
// an all-zero state without evaluating anything.
func EvaluateStreak(days []DaySummary, dailyGoal *Goal) StreakState {
	if dailyGoal == nil || dailyGoal.TargetMinutes <= 0 {
		return StreakState{}
	}

	goal := dailyGoal.TargetMinutes
	var st StreakState
	run := 0
	for _, d := range days {
		if d.Total > 0 && d.Total <= goal {
			run++
			continue
		}
		if run > st.LongestRun {
			st.LongestRun = run
		}
		run = 0
	}
	// A streak ending on the last day is still the longest candidate.
	if run > st.LongestRun {
		st.LongestRun = run
	}
	st.CurrentRun = run
	return st
}
