package engine

// StatusOn derives a challenge's lifecycle phase from its date bounds.
// A precomputed Status on the challenge wins outright. Date comparison is
// lexicographic on the ISO strings. A challenge missing either bound never
// waits and never finishes.
func StatusOn(c Challenge, today string) Status {
	if c.Status != "" {
		return c.Status
	}
	if c.StartDate == "" || c.EndDate == "" {
		return StatusActive
	}
	switch {
	case today < c.StartDate:
		return StatusUpcoming
	case today > c.EndDate:
		return StatusCompleted
	default:
		return StatusActive
	}
}

// EvaluateToday returns the advisory verdict for one participant's usage
// against the challenge target. Pass nil when today's summary could not be
// fetched; the verdict degrades to no-data instead of surfacing the failure.
//
// A zero-minute target with nothing logged counts as success: not using the
// app at all and not logging it are indistinguishable, and both meet a zero
// target. Verdicts are recomputed on every read and mutate nothing.
func EvaluateToday(c Challenge, today *DaySummary) Verdict {
	minutes, ok := usageFor(c.TargetApp, today)
	if !ok {
		if c.TargetMinutes == 0 {
			return VerdictSuccess
		}
		return VerdictNoData
	}
	if minutes <= c.TargetMinutes {
		return VerdictSuccess
	}
	return VerdictFailed
}

// usageFor looks up the minutes relevant to app in a day summary. The second
// return reports whether any entry backs the figure: an all-zero summary has
// no entry behind its total.
func usageFor(app AppLabel, s *DaySummary) (int, bool) {
	if s == nil {
		return 0, false
	}
	if app == TotalLabel {
		if s.Total == 0 && len(s.PerApp) == 0 {
			return 0, false
		}
		return s.Total, true
	}
	m, ok := s.PerApp[app]
	return m, ok
}
