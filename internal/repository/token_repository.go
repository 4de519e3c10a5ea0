package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"workoutjournal/backend/internal/model"
)

type TokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

func (r *TokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		token.ID,
		token.UserID,
		token.TokenHash,
		formatTime(token.ExpiresAt),
		formatTime(token.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepository) GetByHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, token_hash, expires_at, created_at, revoked_at
		 FROM refresh_tokens
		 WHERE token_hash = ?`,
		tokenHash,
	)

	var token model.RefreshToken
	var expiresAt string
	var createdAt string
	var revokedAt sql.NullString
	if err := row.Scan(&token.ID, &token.UserID, &token.TokenHash, &expiresAt, &createdAt, &revokedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}

	parsedExpiresAt, err := parseTime(expiresAt)
	if err != nil {
		return nil, fmt.Errorf("parse token expires_at: %w", err)
	}
	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse token created_at: %w", err)
	}
	token.ExpiresAt = parsedExpiresAt
	token.CreatedAt = parsedCreatedAt

	if revokedAt.Valid {
		parsedRevokedAt, parseErr := parseTime(revokedAt.String)
		if parseErr != nil {
			return nil, fmt.Errorf("parse token revoked_at: %w", parseErr)
		}
		token.RevokedAt = &parsedRevokedAt
	}

	return &token, nil
}

func (r *TokenRepository) Revoke(ctx context.Context, tokenHash string, now time.Time) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE refresh_tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL`,
		formatTime(now),
		tokenHash,
	)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}
