package store

import (
	"time"

	"github.com/sadopc/screentime/internal/engine"
)

// ScreenLog is one persisted usage row. The store keeps at most one row per
// (user, date, app); Upsert replaces rather than appends.
type ScreenLog struct {
	UserID    string
	Date      string
	App       engine.AppLabel
	Minutes   int
	UpdatedAt time.Time
}

// Entry converts a stored row into the engine's input shape.
func (l ScreenLog) Entry() engine.LogEntry {
	return engine.LogEntry{Date: l.Date, App: l.App, Minutes: l.Minutes}
}

// GoalRow is one persisted goal, at most one per (user, scope).
type GoalRow struct {
	UserID    string
	Scope     engine.GoalScope
	Target    int
	UpdatedAt time.Time
}

// ChallengeRow is one persisted challenge plus its participant list.
type ChallengeRow struct {
	ID            string
	OwnerID       string
	Name          string
	TargetApp     engine.AppLabel
	TargetMinutes int
	StartDate     string
	EndDate       string
	Participants  []string
	CreatedAt     time.Time
}

// Challenge converts a stored row into the engine's shape.
func (c ChallengeRow) Challenge() engine.Challenge {
	return engine.Challenge{
		ID:            c.ID,
		OwnerID:       c.OwnerID,
		Name:          c.Name,
		TargetApp:     c.TargetApp,
		TargetMinutes: c.TargetMinutes,
		StartDate:     c.StartDate,
		EndDate:       c.EndDate,
		Participants:  c.Participants,
	}
}

type Setting struct {
	Key   string
	Value string
}

// LogFilter narrows log queries. From/To are inclusive date bounds.
type LogFilter struct {
	From string
	To   string
}
