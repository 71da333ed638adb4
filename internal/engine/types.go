// Package engine holds the pure screen-time computations: day aggregation,
// range sums, goal progress, streaks, challenge verdicts and chart
// projection. Nothing in here performs I/O or keeps state between calls.
package engine

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used everywhere in the engine.
// Dates stay as strings so that range and lifecycle checks are plain
// lexicographic comparisons with no timezone parsing involved.
const DateLayout = "2006-01-02"

// ErrInvalidInput is returned for malformed dates and negative minutes.
// Invalid rows are rejected outright, never clamped.
var ErrInvalidInput = errors.New("invalid input")

// AppLabel names an application, or the whole day when it is TotalLabel.
type AppLabel string

// TotalLabel is the reserved label meaning "aggregate screen time for the
// day, not attributable to a single app".
const TotalLabel AppLabel = "Total"

// NormalizeApp maps the wire representation of an app name (empty or the
// literal "Total" means the day total) onto an AppLabel.
func NormalizeApp(name string) AppLabel {
	if name == "" || name == string(TotalLabel) {
		return TotalLabel
	}
	return AppLabel(name)
}

// LogEntry is one raw usage row: minutes spent in one app on one date.
type LogEntry struct {
	Date    string
	App     AppLabel
	Minutes int
}

// Validate rejects malformed dates and negative minutes.
func (e LogEntry) Validate() error {
	if err := ValidateDate(e.Date); err != nil {
		return err
	}
	if e.Minutes < 0 {
		return fmt.Errorf("negative minutes %d for %q: %w", e.Minutes, e.App, ErrInvalidInput)
	}
	return nil
}

// ValidateDate checks that s is a real calendar date in DateLayout form.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("date %q: %w", s, ErrInvalidInput)
	}
	return nil
}

// DaySummary is the collapsed view of one day's entries. If the day carried
// a Total entry, Total is its value and Remainder is whatever part of it no
// per-app row accounts for; otherwise Total is just the per-app sum.
// PerApp never contains TotalLabel.
type DaySummary struct {
	Date      string
	Total     int
	PerApp    map[AppLabel]int
	Remainder int
}

// GoalScope selects which window a goal is compared against.
type GoalScope string

const (
	ScopeDaily  GoalScope = "daily"
	ScopeWeekly GoalScope = "weekly"
)

// Goal is a user's screen-time target. A nil *Goal means "not configured",
// which is distinct from a zero target.
type Goal struct {
	Scope         GoalScope
	TargetMinutes int
}

// GoalProgress is the derived goal-comparison view. Percent is capped at 100
// while under the target and switches to the over-limit percentage once the
// target is exceeded.
type GoalProgress struct {
	Used     int
	Target   int
	Exceeded bool
	Percent  int
}

// Status is a challenge's lifecycle phase, always derived from its date
// bounds unless a precomputed value was supplied.
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Verdict is today's advisory pass/fail result for one challenge.
type Verdict string

const (
	VerdictSuccess Verdict = "success"
	VerdictFailed  Verdict = "failed"
	VerdictNoData  Verdict = "no_data"
)

// Challenge is a time-boxed daily target on one app (or on the day total).
// Empty StartDate/EndDate means the challenge is unbounded on that side.
// Status, when non-empty, is an authoritative precomputed value that takes
// precedence over date derivation.
type Challenge struct {
	ID            string
	OwnerID       string
	Name          string
	TargetApp     AppLabel
	TargetMinutes int
	StartDate     string
	EndDate       string
	Participants  []string
	Status        Status
}

// StreakState reports consecutive qualifying-day runs within one window.
type StreakState struct {
	CurrentRun int
	LongestRun int
}
