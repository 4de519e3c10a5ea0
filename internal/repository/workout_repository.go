package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"workoutjournal/backend/internal/model"
)

type WorkoutRepository struct {
	db *sql.DB
}

func NewWorkoutRepository(db *sql.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

func (r *WorkoutRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *WorkoutRepository) InsertSessionTx(ctx context.Context, tx *sql.Tx, session *model.Session) error {
	var completedAt interface{}
	if session.CompletedAt != nil {
		completedAt = formatTime(*session.CompletedAt)
	}

	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO workout_sessions (id, user_id, date, daytype, created_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		session.Date,
		session.Daytype,
		formatTime(session.CreatedAt),
		completedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// LatestSessionTx finds the most recently created session for the
// (user, date, daytype) tuple. Recovery path for when an insert did not hand
// back an id; best effort, callers must tolerate ErrNotFound.
func (r *WorkoutRepository) LatestSessionTx(ctx context.Context, tx *sql.Tx, userID, date, daytype string) (*model.Session, error) {
	row := tx.QueryRowContext(
		ctx,
		`SELECT id, user_id, date, daytype, created_at, completed_at
		 FROM workout_sessions
		 WHERE user_id = ? AND date = ? AND daytype = ?
		 ORDER BY created_at DESC
		 LIMIT 1`,
		userID,
		date,
		daytype,
	)
	return scanSession(row)
}

// GetUserSession fetches a session by id scoped to its owner, mirroring the
// row-level security the tabular store would apply.
func (r *WorkoutRepository) GetUserSession(ctx context.Context, userID, sessionID string) (*model.Session, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, date, daytype, created_at, completed_at
		 FROM workout_sessions
		 WHERE id = ? AND user_id = ?`,
		sessionID,
		userID,
	)
	return scanSession(row)
}

// CompleteSessionTx stamps completed_at and reports how many rows changed.
// The guard on completed_at keeps the finish action one-shot.
func (r *WorkoutRepository) CompleteSessionTx(ctx context.Context, tx *sql.Tx, sessionID string, completedAt time.Time) (int64, error) {
	result, err := tx.ExecContext(
		ctx,
		`UPDATE workout_sessions SET completed_at = ? WHERE id = ? AND completed_at IS NULL`,
		formatTime(completedAt),
		sessionID,
	)
	if err != nil {
		return 0, fmt.Errorf("complete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("complete session rows: %w", err)
	}
	return affected, nil
}

func (r *WorkoutRepository) GetCompletedAtTx(ctx context.Context, tx *sql.Tx, sessionID string) (*time.Time, error) {
	var completedAt sql.NullString
	err := tx.QueryRowContext(
		ctx,
		`SELECT completed_at FROM workout_sessions WHERE id = ?`,
		sessionID,
	).Scan(&completedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session completed_at: %w", err)
	}
	if !completedAt.Valid {
		return nil, nil
	}
	parsed, err := parseTime(completedAt.String)
	if err != nil {
		return nil, fmt.Errorf("parse session completed_at: %w", err)
	}
	return &parsed, nil
}

func (r *WorkoutRepository) InsertEntryTx(ctx context.Context, tx *sql.Tx, entry *model.Entry) error {
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO workout_entries (id, session_id, exercise_name, weight, rep, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.SessionID,
		entry.ExerciseName,
		entry.Weight,
		entry.Rep,
		formatTime(entry.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (r *WorkoutRepository) ListEntries(ctx context.Context, sessionID string) ([]model.Entry, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, session_id, exercise_name, weight, rep, created_at
		 FROM workout_entries
		 WHERE session_id = ?
		 ORDER BY created_at ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.Entry, 0)
	for rows.Next() {
		var entry model.Entry
		var createdAt string
		if err := rows.Scan(&entry.ID, &entry.SessionID, &entry.ExerciseName, &entry.Weight, &entry.Rep, &createdAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		parsedCreatedAt, parseErr := parseTime(createdAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parse entry created_at: %w", parseErr)
		}
		entry.CreatedAt = parsedCreatedAt
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// ListSessions returns a user's sessions with optional inclusive date bounds.
// Completion filtering is the aggregator's job, not the store's.
func (r *WorkoutRepository) ListSessions(ctx context.Context, userID, fromDate, toDate string) ([]model.Session, error) {
	query := `SELECT id, user_id, date, daytype, created_at, completed_at
	          FROM workout_sessions
	          WHERE user_id = ?`
	args := []interface{}{userID}
	if fromDate != "" {
		query += ` AND date >= ?`
		args = append(args, fromDate)
	}
	if toDate != "" {
		query += ` AND date <= ?`
		args = append(args, toDate)
	}
	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := make([]model.Session, 0)
	for rows.Next() {
		session, scanErr := scanSession(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, *session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	return sessions, nil
}

// CountSessionsTx counts session rows for a (user, date, daytype) tuple.
func (r *WorkoutRepository) CountSessionsTx(ctx context.Context, tx *sql.Tx, userID, date, daytype string) (int, error) {
	var count int
	err := tx.QueryRowContext(
		ctx,
		`SELECT COUNT(1) FROM workout_sessions WHERE user_id = ? AND date = ? AND daytype = ?`,
		userID,
		date,
		daytype,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSession(s scanner) (*model.Session, error) {
	session := model.Session{}
	var createdAt string
	var completedAt sql.NullString
	err := s.Scan(
		&session.ID,
		&session.UserID,
		&session.Date,
		&session.Daytype,
		&createdAt,
		&completedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse session created_at: %w", err)
	}
	session.CreatedAt = parsedCreatedAt

	if completedAt.Valid {
		parsedCompletedAt, parseErr := parseTime(completedAt.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse session completed_at: %w", parseErr)
		}
		session.CompletedAt = &parsedCompletedAt
	}

	return &session, nil
}
