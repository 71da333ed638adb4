package store

import (
	"fmt"
	"time"

	"github.com/sadopc/screentime/internal/engine"
)

// UpsertLog writes one usage row, replacing any earlier row for the same
// (user, date, app) key. Rejects negative minutes and malformed dates before
// touching the database.
func (s *Store) UpsertLog(userID string, log ScreenLog) error {
	if userID == "" {
		return fmt.Errorf("empty user id: %w", engine.ErrInvalidInput)
	}
	if err := log.Entry().Validate(); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO screen_logs (user_id, date, app, minutes, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date, app) DO UPDATE SET minutes = excluded.minutes, updated_at = excluded.updated_at`,
		userID, log.Date, string(log.App), log.Minutes, now,
	)
	if err != nil {
		return fmt.Errorf("upsert log: %w", err)
	}
	return nil
}

// DeleteLog removes one (date, app) row for a user. Returns whether a row
// existed.
func (s *Store) DeleteLog(userID, date string, app engine.AppLabel) (bool, error) {
	res, err := s.db.Exec(
		`DELETE FROM screen_logs WHERE user_id = ? AND date = ? AND app = ?`,
		userID, date, string(app),
	)
	if err != nil {
		return false, fmt.Errorf("delete log: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListLogs returns a user's rows inside the filter's date bounds, ordered by
// date then app.
func (s *Store) ListLogs(userID string, f LogFilter) ([]ScreenLog, error) {
	query := `SELECT user_id, date, app, minutes, updated_at FROM screen_logs WHERE user_id = ?`
	args := []any{userID}

	if f.From != "" {
		query += ` AND date >= ?`
		args = append(args, f.From)
	}
	if f.To != "" {
		query += ` AND date <= ?`
		args = append(args, f.To)
	}
	query += ` ORDER BY date, app`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()

	var logs []ScreenLog
	for rows.Next() {
		var l ScreenLog
		var app, updatedAt string
		if err := rows.Scan(&l.UserID, &l.Date, &app, &l.Minutes, &updatedAt); err != nil {
			return nil, err
		}
		l.App = engine.AppLabel(app)
		l.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// LogsForDay returns all of a user's rows for one date.
func (s *Store) LogsForDay(userID, date string) ([]ScreenLog, error) {
	return s.ListLogs(userID, LogFilter{From: date, To: date})
}

// DistinctApps returns every app name a user has ever logged, excluding the
// day-total sentinel, in name order. Used for stable chart color assignment.
func (s *Store) DistinctApps(userID string) ([]engine.AppLabel, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT app FROM screen_logs WHERE user_id = ? AND app != ? ORDER BY app`,
		userID, string(engine.TotalLabel),
	)
	if err != nil {
		return nil, fmt.Errorf("distinct apps: %w", err)
	}
	defer rows.Close()

	var apps []engine.AppLabel
	for rows.Next() {
		var app string
		if err := rows.Scan(&app); err != nil {
			return nil, err
		}
		apps = append(apps, engine.AppLabel(app))
	}
	return apps, rows.Err()
}
