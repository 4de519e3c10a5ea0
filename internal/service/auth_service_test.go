package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workoutjournal/backend/internal/model"
)

func newAuthService(env *testEnv) *AuthService {
	return NewAuthService(env.userRepo, env.tokenRepo, env.workflowRepo, "test-secret", time.Hour, 24*time.Hour)
}

func TestSignupCreatesUserAndInitialState(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	result, apiErr := svc.Signup(ctx, "  New@Example.COM ", "123456", " Alex ")
	require.Nil(t, apiErr)
	assert.Equal(t, "new@example.com", result.User.Email)
	assert.Equal(t, "Alex", result.User.Name)
	assert.Empty(t, result.User.PasswordHash)
	assert.NotEmpty(t, result.Session.AccessToken)
	assert.NotEmpty(t, result.Session.RefreshToken)
	assert.Equal(t, "bearer", result.Session.TokenType)

	// The workflow state row exists and starts idle.
	state, err := env.workflowRepo.GetState(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusIdle, state.Status())

	// Duplicate email, regardless of case, is rejected.
	_, apiErr = svc.Signup(ctx, "NEW@example.com", "123456", "")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)
}

func TestSignupValidation(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	_, apiErr := svc.Signup(ctx, "not-an-email", "123456", "")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)

	_, apiErr = svc.Signup(ctx, "short@example.com", "12345", "")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)
}

func TestLoginAndTokenParsing(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	signedUp, apiErr := svc.Signup(ctx, "login@example.com", "123456", "")
	require.Nil(t, apiErr)

	result, apiErr := svc.Login(ctx, "login@example.com", "123456")
	require.Nil(t, apiErr)
	assert.Equal(t, signedUp.User.ID, result.User.ID)

	userID, apiErr := svc.ParseToken(result.Session.AccessToken)
	require.Nil(t, apiErr)
	assert.Equal(t, signedUp.User.ID, userID)

	_, apiErr = svc.Login(ctx, "login@example.com", "wrong-pass")
	require.NotNil(t, apiErr)
	assert.Equal(t, "auth_error", apiErr.Code)

	_, apiErr = svc.Login(ctx, "ghost@example.com", "123456")
	require.NotNil(t, apiErr)
	assert.Equal(t, "auth_error", apiErr.Code)

	_, apiErr = svc.ParseToken("not-a-jwt")
	require.NotNil(t, apiErr)
	assert.Equal(t, "auth_error", apiErr.Code)
}

func TestRefreshRotatesTokens(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	signedUp, apiErr := svc.Signup(ctx, "rotate@example.com", "123456", "")
	require.Nil(t, apiErr)

	pair, apiErr := svc.Refresh(ctx, signedUp.Session.RefreshToken)
	require.Nil(t, apiErr)
	assert.NotEqual(t, signedUp.Session.RefreshToken, pair.RefreshToken)

	// The consumed token cannot be replayed.
	_, apiErr = svc.Refresh(ctx, signedUp.Session.RefreshToken)
	require.NotNil(t, apiErr)
	assert.Equal(t, "auth_error", apiErr.Code)

	// The rotated token keeps working.
	_, apiErr = svc.Refresh(ctx, pair.RefreshToken)
	require.Nil(t, apiErr)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	env := setupTestEnv(t)
	svc := newAuthService(env)
	ctx := context.Background()

	signedUp, apiErr := svc.Signup(ctx, "logout@example.com", "123456", "")
	require.Nil(t, apiErr)

	require.Nil(t, svc.Logout(ctx, signedUp.Session.RefreshToken))
	_, apiErr = svc.Refresh(ctx, signedUp.Session.RefreshToken)
	require.NotNil(t, apiErr)
	assert.Equal(t, "auth_error", apiErr.Code)

	// Logging out with no token is a no-op.
	require.Nil(t, svc.Logout(ctx, ""))
}
