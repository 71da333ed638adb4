package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/screentime/internal/engine"
)

// ErrNotOwner is returned when a participant attempts an owner-only change.
var ErrNotOwner = errors.New("not the challenge owner")

// ErrNotFound is returned for lookups of challenges that do not exist.
var ErrNotFound = errors.New("challenge not found")

// CreateChallenge persists a new challenge owned by ownerID, who joins as
// the first participant. Date bounds may be empty (unbounded) but must be
// well-formed when present, and start must not follow end.
func (s *Store) CreateChallenge(ownerID, name string, targetApp engine.AppLabel, targetMinutes int, startDate, endDate string) (*ChallengeRow, error) {
	if name == "" {
		return nil, fmt.Errorf("empty challenge name: %w", engine.ErrInvalidInput)
	}
	if targetMinutes < 0 {
		return nil, fmt.Errorf("challenge target %d: %w", targetMinutes, engine.ErrInvalidInput)
	}
	for _, d := range []string{startDate, endDate} {
		if d == "" {
			continue
		}
		if err := engine.ValidateDate(d); err != nil {
			return nil, err
		}
	}
	if startDate != "" && endDate != "" && startDate > endDate {
		return nil, fmt.Errorf("start %s after end %s: %w", startDate, endDate, engine.ErrInvalidInput)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO challenges (id, owner_id, name, target_app, target_minutes, start_date, end_date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, ownerID, name, string(targetApp), targetMinutes, startDate, endDate, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create challenge: %w", err)
	}
	_, err = tx.Exec(
		`INSERT INTO challenge_participants (challenge_id, user_id, joined_at) VALUES (?, ?, ?)`,
		id, ownerID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("add owner participant: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetChallenge(id)
}

// GetChallenge loads one challenge with its participants.
func (s *Store) GetChallenge(id string) (*ChallengeRow, error) {
	c := &ChallengeRow{}
	var targetApp, createdAt string
	err := s.db.QueryRow(
		`SELECT id, owner_id, name, target_app, target_minutes, start_date, end_date, created_at
		 FROM challenges WHERE id = ?`, id,
	).Scan(&c.ID, &c.OwnerID, &c.Name, &targetApp, &c.TargetMinutes, &c.StartDate, &c.EndDate, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get challenge %s: %w", id, err)
	}
	c.TargetApp = engine.AppLabel(targetApp)
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

	rows, err := s.db.Query(
		`SELECT user_id FROM challenge_participants WHERE challenge_id = ? ORDER BY joined_at, user_id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get participants: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		c.Participants = append(c.Participants, u)
	}
	return c, rows.Err()
}

// ListChallenges returns every challenge the user participates in, newest
// first.
func (s *Store) ListChallenges(userID string) ([]ChallengeRow, error) {
	rows, err := s.db.Query(
		`SELECT c.id FROM challenges c
		 JOIN challenge_participants p ON p.challenge_id = c.id
		 WHERE p.user_id = ?
		 ORDER BY c.created_at DESC, c.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	challenges := make([]ChallengeRow, 0, len(ids))
	for _, id := range ids {
		c, err := s.GetChallenge(id)
		if err != nil {
			return nil, err
		}
		challenges = append(challenges, *c)
	}
	return challenges, nil
}

// RenameChallenge changes a challenge's name. Owner only.
func (s *Store) RenameChallenge(id, userID, name string) error {
	if name == "" {
		return fmt.Errorf("empty challenge name: %w", engine.ErrInvalidInput)
	}
	c, err := s.GetChallenge(id)
	if err != nil {
		return err
	}
	if c.OwnerID != userID {
		return ErrNotOwner
	}
	_, err = s.db.Exec(`UPDATE challenges SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return fmt.Errorf("rename challenge: %w", err)
	}
	return nil
}

// InviteParticipant adds a user to a challenge. Owner only; inviting an
// existing participant is a no-op.
func (s *Store) InviteParticipant(id, ownerID, userID string) error {
	c, err := s.GetChallenge(id)
	if err != nil {
		return err
	}
	if c.OwnerID != ownerID {
		return ErrNotOwner
	}
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT OR IGNORE INTO challenge_participants (challenge_id, user_id, joined_at) VALUES (?, ?, ?)`,
		id, userID, now,
	)
	if err != nil {
		return fmt.Errorf("invite participant: %w", err)
	}
	return nil
}

// LeaveChallenge removes a non-owner participant. The owner cannot leave
// their own challenge; they delete it instead.
func (s *Store) LeaveChallenge(id, userID string) error {
	c, err := s.GetChallenge(id)
	if err != nil {
		return err
	}
	if c.OwnerID == userID {
		return fmt.Errorf("owner cannot leave own challenge: %w", engine.ErrInvalidInput)
	}
	_, err = s.db.Exec(
		`DELETE FROM challenge_participants WHERE challenge_id = ? AND user_id = ?`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("leave challenge: %w", err)
	}
	return nil
}

// DeleteChallenge removes a challenge and its participants. Owner only.
func (s *Store) DeleteChallenge(id, userID string) error {
	c, err := s.GetChallenge(id)
	if err != nil {
		return err
	}
	if c.OwnerID != userID {
		return ErrNotOwner
	}
	_, err = s.db.Exec(`DELETE FROM challenges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete challenge: %w", err)
	}
	return nil
}
