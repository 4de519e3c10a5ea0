package repository

import (
	"context"
	"database/sql"
	"fmt"

	"workoutjournal/backend/internal/model"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListDaytypes(ctx context.Context, userID string) ([]model.Daytype, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, daytype_name, daytype_key, created_at
		 FROM user_daytypes
		 WHERE user_id = ?
		 ORDER BY daytype_name ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list daytypes: %w", err)
	}
	defer rows.Close()

	daytypes := make([]model.Daytype, 0)
	for rows.Next() {
		var d model.Daytype
		var createdAt string
		if err := rows.Scan(&d.ID, &d.UserID, &d.Name, &d.Key, &createdAt); err != nil {
			return nil, fmt.Errorf("scan daytype: %w", err)
		}
		parsedCreatedAt, parseErr := parseTime(createdAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parse daytype created_at: %w", parseErr)
		}
		d.CreatedAt = parsedCreatedAt
		daytypes = append(daytypes, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daytypes: %w", err)
	}

	return daytypes, nil
}

func (r *CatalogRepository) GetDaytype(ctx context.Context, userID, key string) (*model.Daytype, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, daytype_name, daytype_key, created_at
		 FROM user_daytypes
		 WHERE user_id = ? AND daytype_key = ?`,
		userID,
		key,
	)

	var d model.Daytype
	var createdAt string
	if err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Key, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get daytype: %w", err)
	}
	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse daytype created_at: %w", err)
	}
	d.CreatedAt = parsedCreatedAt
	return &d, nil
}

func (r *CatalogRepository) CreateDaytype(ctx context.Context, daytype *model.Daytype) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO user_daytypes (id, user_id, daytype_name, daytype_key, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		daytype.ID,
		daytype.UserID,
		daytype.Name,
		daytype.Key,
		formatTime(daytype.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create daytype: %w", err)
	}
	return nil
}

func (r *CatalogRepository) ListExercises(ctx context.Context, userID, daytypeKey string) ([]model.Exercise, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, daytype_key, exercise_name, exercise_key, created_at
		 FROM user_exercises
		 WHERE user_id = ? AND daytype_key = ?
		 ORDER BY exercise_name ASC`,
		userID,
		daytypeKey,
	)
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer rows.Close()

	exercises := make([]model.Exercise, 0)
	for rows.Next() {
		var e model.Exercise
		var createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.DaytypeKey, &e.Name, &e.Key, &createdAt); err != nil {
			return nil, fmt.Errorf("scan exercise: %w", err)
		}
		parsedCreatedAt, parseErr := parseTime(createdAt)
		if parseErr != nil {
			return nil, fmt.Errorf("parse exercise created_at: %w", parseErr)
		}
		e.CreatedAt = parsedCreatedAt
		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exercises: %w", err)
	}

	return exercises, nil
}

func (r *CatalogRepository) GetExercise(ctx context.Context, userID, daytypeKey, exerciseKey string) (*model.Exercise, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, daytype_key, exercise_name, exercise_key, created_at
		 FROM user_exercises
		 WHERE user_id = ? AND daytype_key = ? AND exercise_key = ?`,
		userID,
		daytypeKey,
		exerciseKey,
	)

	var e model.Exercise
	var createdAt string
	if err := row.Scan(&e.ID, &e.UserID, &e.DaytypeKey, &e.Name, &e.Key, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse exercise created_at: %w", err)
	}
	e.CreatedAt = parsedCreatedAt
	return &e, nil
}

func (r *CatalogRepository) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO user_exercises (id, user_id, daytype_key, exercise_name, exercise_key, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		exercise.ID,
		exercise.UserID,
		exercise.DaytypeKey,
		exercise.Name,
		exercise.Key,
		formatTime(exercise.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create exercise: %w", err)
	}
	return nil
}
