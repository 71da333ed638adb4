package tui

import (
	"fmt"
	"strings"

	"github.com/sadopc/screentime/internal/engine"
	"github.com/sadopc/screentime/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewLog
	viewChart
	viewChallenges
	viewSettings
)

var viewNames = []string{"Dashboard", "Log", "Chart", "Challenges", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type logSavedMsg struct {
	log store.ScreenLog
}

type logDeletedMsg struct{}

type goalSavedMsg struct{}

type challengeSavedMsg struct {
	name string
}

type challengeRemovedMsg struct {
	left bool // left vs deleted
}

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// formatMinutes renders minutes as "3h 25m" (or "45m" under an hour).
func formatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h := minutes / 60
	m := minutes % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %02dm", h, m)
}

// progressBar renders a fixed-width usage bar for a goal comparison. An
// exceeded goal fills the bar entirely in the error color and appends the
// over-limit percentage.
func progressBar(p *engine.GoalProgress, width int) string {
	if p == nil {
		return mutedStyle.Render("no goal set")
	}
	if width < 10 {
		width = 10
	}

	if p.Exceeded {
		bar := strings.Repeat("█", width)
		return errorStyle.Render(bar) + errorStyle.Render(fmt.Sprintf(" +%d%% over", p.Percent))
	}

	filled := width * p.Percent / 100
	if filled > width {
		filled = width
	}
	bar := successStyle.Render(strings.Repeat("█", filled)) +
		mutedStyle.Render(strings.Repeat("░", width-filled))
	return bar + mutedStyle.Render(fmt.Sprintf(" %d%%", p.Percent))
}

// verdictBadge renders a challenge verdict with its color.
func verdictBadge(v engine.Verdict) string {
	switch v {
	case engine.VerdictSuccess:
		return successStyle.Render("✓ on track")
	case engine.VerdictFailed:
		return errorStyle.Render("✗ over target")
	default:
		return mutedStyle.Render("– no data")
	}
}

// statusBadge renders a challenge lifecycle status with its color.
func statusBadge(s engine.Status) string {
	switch s {
	case engine.StatusUpcoming:
		return warningStyle.Render("upcoming")
	case engine.StatusCompleted:
		return mutedStyle.Render("completed")
	default:
		return successStyle.Render("active")
	}
}
