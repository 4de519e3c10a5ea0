package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"workoutjournal/backend/internal/model"
)

// WorkflowRepository persists the per-user workflow state row, the durable
// counterpart of the engine's in-memory projection. The buffered display rows
// are serialized as JSON so the whole state survives process restarts.
type WorkflowRepository struct {
	db *sql.DB
}

func NewWorkflowRepository(db *sql.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

func (r *WorkflowRepository) CreateInitialState(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO workflow_states (user_id, completed, buffered_rows, updated_at)
		 VALUES (?, 0, '[]', ?)`,
		userID,
		formatTime(time.Now().UTC()),
	)
	if err != nil {
		return fmt.Errorf("create initial workflow state: %w", err)
	}
	return nil
}

func (r *WorkflowRepository) GetState(ctx context.Context, userID string) (*model.WorkflowState, error) {
	row := r.db.QueryRowContext(ctx, stateSelect+` WHERE user_id = ?`, userID)
	return scanWorkflowState(row)
}

func (r *WorkflowRepository) GetStateTx(ctx context.Context, tx *sql.Tx, userID string) (*model.WorkflowState, error) {
	row := tx.QueryRowContext(ctx, stateSelect+` WHERE user_id = ?`, userID)
	return scanWorkflowState(row)
}

func (r *WorkflowRepository) UpdateStateTx(ctx context.Context, tx *sql.Tx, state *model.WorkflowState) error {
	buffered, err := json.Marshal(state.BufferedRows)
	if err != nil {
		return fmt.Errorf("marshal buffered rows: %w", err)
	}

	completed := 0
	if state.Completed {
		completed = 1
	}

	_, err = tx.ExecContext(
		ctx,
		`UPDATE workflow_states
		 SET active_daytype = ?,
		     active_date = ?,
		     active_session_id = ?,
		     completed = ?,
		     last_session_id = ?,
		     buffered_rows = ?,
		     updated_at = ?
		 WHERE user_id = ?`,
		nullable(state.ActiveDaytype),
		nullable(state.ActiveDate),
		nullable(state.ActiveSessionID),
		completed,
		nullable(state.LastSessionID),
		string(buffered),
		formatTime(state.UpdatedAt),
		state.UserID,
	)
	if err != nil {
		return fmt.Errorf("update workflow state: %w", err)
	}
	return nil
}

const stateSelect = `SELECT user_id, active_daytype, active_date, active_session_id,
       completed, last_session_id, buffered_rows, updated_at
  FROM workflow_states`

func scanWorkflowState(s scanner) (*model.WorkflowState, error) {
	state := model.WorkflowState{}
	var activeDaytype sql.NullString
	var activeDate sql.NullString
	var activeSessionID sql.NullString
	var completed int
	var lastSessionID sql.NullString
	var buffered string
	var updatedAt string
	err := s.Scan(
		&state.UserID,
		&activeDaytype,
		&activeDate,
		&activeSessionID,
		&completed,
		&lastSessionID,
		&buffered,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan workflow state: %w", err)
	}

	state.ActiveDaytype = optional(activeDaytype)
	state.ActiveDate = optional(activeDate)
	state.ActiveSessionID = optional(activeSessionID)
	state.Completed = completed != 0
	state.LastSessionID = optional(lastSessionID)

	if err := json.Unmarshal([]byte(buffered), &state.BufferedRows); err != nil {
		return nil, fmt.Errorf("unmarshal buffered rows: %w", err)
	}
	if state.BufferedRows == nil {
		state.BufferedRows = []model.EntryRow{}
	}

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse workflow state updated_at: %w", err)
	}
	state.UpdatedAt = parsedUpdatedAt

	return &state, nil
}

func nullable(value *string) interface{} {
	if value == nil {
		return nil
	}
	return *value
}

func optional(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}
