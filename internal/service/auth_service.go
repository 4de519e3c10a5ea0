package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "workoutjournal/backend/internal/errors"
	"workoutjournal/backend/internal/model"
	"workoutjournal/backend/internal/repository"
)

// AuthService is the identity collaborator: it issues and validates the
// access/refresh token pair for an email/password account.
type AuthService struct {
	userRepo        *repository.UserRepository
	tokenRepo       *repository.TokenRepository
	workflowRepo    *repository.WorkflowRepository
	jwtSecret       []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

func NewAuthService(
	userRepo *repository.UserRepository,
	tokenRepo *repository.TokenRepository,
	workflowRepo *repository.WorkflowRepository,
	jwtSecret string,
	accessTokenTTL time.Duration,
	refreshTokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		tokenRepo:       tokenRepo,
		workflowRepo:    workflowRepo,
		jwtSecret:       []byte(jwtSecret),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// TokenPair is the session payload handed to clients. Field names follow the
// wire format the UI stores under its access_token/refresh_token keys.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type AuthResult struct {
	User    model.User `json:"user"`
	Session TokenPair  `json:"session"`
}

func (s *AuthService) Signup(ctx context.Context, email, password, name string) (*AuthResult, *apperrors.APIError) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" || !strings.Contains(normalizedEmail, "@") {
		return nil, apperrors.Validation("a valid email address is required")
	}
	if len(password) < 6 {
		return nil, apperrors.Validation("password must be at least 6 characters")
	}

	_, err := s.userRepo.GetByEmail(ctx, normalizedEmail)
	if err == nil {
		return nil, apperrors.Validation("email already registered")
	}
	if err != nil && err != repository.ErrNotFound {
		return nil, apperrors.Upstream("failed to query user")
	}

	passwordHashBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to secure password")
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        normalizedEmail,
		Name:         strings.TrimSpace(name),
		PasswordHash: string(passwordHashBytes),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, &user); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, apperrors.Validation("email already registered")
		}
		return nil, apperrors.Upstream("failed to create user")
	}

	if err := s.workflowRepo.CreateInitialState(ctx, user.ID); err != nil {
		return nil, apperrors.Upstream("failed to initialize workout state")
	}

	pair, apiErr := s.issueTokenPair(ctx, user.ID, now)
	if apiErr != nil {
		return nil, apiErr
	}

	user.PasswordHash = ""
	return &AuthResult{User: user, Session: *pair}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, *apperrors.APIError) {
	normalizedEmail := strings.ToLower(strings.TrimSpace(email))
	if normalizedEmail == "" || password == "" {
		return nil, apperrors.Validation("email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizedEmail)
	if err == repository.ErrNotFound {
		return nil, apperrors.Auth("invalid email or password")
	}
	if err != nil {
		return nil, apperrors.Upstream("failed to query user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Auth("invalid email or password")
	}

	pair, apiErr := s.issueTokenPair(ctx, user.ID, time.Now().UTC())
	if apiErr != nil {
		return nil, apiErr
	}

	user.PasswordHash = ""
	return &AuthResult{User: *user, Session: *pair}, nil
}

// Logout revokes the presented refresh token. A missing or unknown token is
// not an error; the client side clears its stored pair either way.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) *apperrors.APIError {
	if refreshToken == "" {
		return nil
	}
	if err := s.tokenRepo.Revoke(ctx, hashToken(refreshToken), time.Now().UTC()); err != nil {
		return apperrors.Upstream("failed to revoke session")
	}
	return nil
}

// Refresh rotates a valid refresh token into a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, *apperrors.APIError) {
	if refreshToken == "" {
		return nil, apperrors.Validation("refresh_token is required")
	}

	now := time.Now().UTC()
	stored, err := s.tokenRepo.GetByHash(ctx, hashToken(refreshToken))
	if err == repository.ErrNotFound {
		return nil, apperrors.Auth("invalid refresh token")
	}
	if err != nil {
		return nil, apperrors.Upstream("failed to query refresh token")
	}
	if stored.RevokedAt != nil || now.After(stored.ExpiresAt) {
		return nil, apperrors.Auth("refresh token expired")
	}

	if err := s.tokenRepo.Revoke(ctx, stored.TokenHash, now); err != nil {
		return nil, apperrors.Upstream("failed to rotate refresh token")
	}

	return s.issueTokenPair(ctx, stored.UserID, now)
}

// ParseToken validates an access token and returns the subject user id.
func (s *AuthService) ParseToken(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Auth("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", apperrors.Auth("invalid token")
	}

	if claims.Subject == "" {
		return "", apperrors.Auth("invalid token subject")
	}

	return claims.Subject, nil
}

// GetUser resolves a normalized user record by id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*model.User, *apperrors.APIError) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.Auth("unknown user")
	}
	if err != nil {
		return nil, apperrors.Upstream("failed to query user")
	}
	user.PasswordHash = ""
	return user, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, userID string, now time.Time) (*TokenPair, *apperrors.APIError) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, apperrors.Internal("failed to sign token")
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return nil, apperrors.Internal("failed to generate refresh token")
	}

	record := model.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: now.Add(s.refreshTokenTTL),
		CreatedAt: now,
	}
	if err := s.tokenRepo.Create(ctx, &record); err != nil {
		return nil, apperrors.Upstream("failed to store refresh token")
	}

	return &TokenPair{
		AccessToken:  signed,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.accessTokenTTL.Seconds()),
	}, nil
}

func newRefreshToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
