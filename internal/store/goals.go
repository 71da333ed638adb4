package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/screentime/internal/engine"
)

// SetGoal writes a user's goal for one scope, replacing any earlier target.
func (s *Store) SetGoal(userID string, scope engine.GoalScope, targetMinutes int) error {
	if targetMinutes <= 0 {
		return fmt.Errorf("goal target %d: %w", targetMinutes, engine.ErrInvalidInput)
	}
	if scope != engine.ScopeDaily && scope != engine.ScopeWeekly {
		return fmt.Errorf("goal scope %q: %w", scope, engine.ErrInvalidInput)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO goals (user_id, scope, target_minutes, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, scope) DO UPDATE SET target_minutes = excluded.target_minutes, updated_at = excluded.updated_at`,
		userID, string(scope), targetMinutes, now,
	)
	if err != nil {
		return fmt.Errorf("set goal: %w", err)
	}
	return nil
}

// GetGoal returns the user's goal for one scope, or nil when none is
// configured. An unset goal is not an error.
func (s *Store) GetGoal(userID string, scope engine.GoalScope) (*engine.Goal, error) {
	var target int
	err := s.db.QueryRow(
		`SELECT target_minutes FROM goals WHERE user_id = ? AND scope = ?`,
		userID, string(scope),
	).Scan(&target)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &engine.Goal{Scope: scope, TargetMinutes: target}, nil
}

// DeleteGoal removes the user's goal for one scope, if any.
func (s *Store) DeleteGoal(userID string, scope engine.GoalScope) error {
	_, err := s.db.Exec(
		`DELETE FROM goals WHERE user_id = ? AND scope = ?`,
		userID, string(scope),
	)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}
