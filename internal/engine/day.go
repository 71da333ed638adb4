package engine

import "fmt"

// SummarizeDay collapses all log rows for one user on one date into a
// DaySummary. A Total row fixes the day total (last one wins if duplicates
// slipped past the store's upsert); per-app rows are summed defensively even
// when the same app appears twice. Without a Total row the day total is the
// per-app sum and the remainder is zero.
//
// A day with no entries yields an all-zero summary; whether that means
// "nothing logged" or "no data at all" is the caller's call, tracked via the
// original entry list.
func SummarizeDay(date string, entries []LogEntry) (DaySummary, error) {
	if err := ValidateDate(date); err != nil {
		return DaySummary{}, err
	}

	s := DaySummary{Date: date, PerApp: make(map[AppLabel]int)}
	total := 0
	haveTotal := false

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return DaySummary{}, err
		}
		if e.Date != date {
			return DaySummary{}, fmt.Errorf("entry dated %s in day %s: %w", e.Date, date, ErrInvalidInput)
		}
		if e.App == TotalLabel {
			total = e.Minutes
			haveTotal = true
			continue
		}
		s.PerApp[e.App] += e.Minutes
	}

	assigned := 0
	for _, m := range s.PerApp {
		assigned += m
	}

	if !haveTotal {
		s.Total = assigned
		return s, nil
	}

	s.Total = total
	// Over-logged apps can push the per-app sum past the day total; the
	// remainder floors at zero rather than going negative.
	if total > assigned {
		s.Remainder = total - assigned
	}
	return s, nil
}
