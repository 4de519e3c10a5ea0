package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListDaytypesMergesBuiltinsFirst(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewCatalogService(env.catalogRepo)
	ctx := context.Background()
	userID := env.newUser(t)

	daytypes, apiErr := svc.ListDaytypes(ctx, userID)
	require.Nil(t, apiErr)
	assert.Equal(t, []string{"push", "pull", "leg", "arm"}, daytypes)

	_, apiErr = svc.CreateDaytype(ctx, userID, "Cardio")
	require.Nil(t, apiErr)

	daytypes, apiErr = svc.ListDaytypes(ctx, userID)
	require.Nil(t, apiErr)
	assert.Equal(t, []string{"push", "pull", "leg", "arm", "Cardio"}, daytypes)
}

func TestCreateDaytypeRules(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewCatalogService(env.catalogRepo)
	ctx := context.Background()
	userID := env.newUser(t)

	_, apiErr := svc.CreateDaytype(ctx, userID, "   ")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)

	// Built-in keys cannot be shadowed, case-insensitively.
	_, apiErr = svc.CreateDaytype(ctx, userID, "  PUSH ")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)

	created, apiErr := svc.CreateDaytype(ctx, userID, "Cardio")
	require.Nil(t, apiErr)
	assert.True(t, created.Created)

	// Re-creating the same key returns the original row.
	repeat, apiErr := svc.CreateDaytype(ctx, userID, "cardio")
	require.Nil(t, apiErr)
	assert.False(t, repeat.Created)
	assert.Equal(t, "Cardio", repeat.Name)
}

func TestListExercisesMergesAndDedupes(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewCatalogService(env.catalogRepo)
	ctx := context.Background()
	userID := env.newUser(t)

	exercises, apiErr := svc.ListExercises(ctx, userID, "push")
	require.Nil(t, apiErr)
	require.NotEmpty(t, exercises)
	assert.Equal(t, "tricep overhead press", exercises[0])
	assert.Contains(t, exercises, "chest press")

	created, apiErr := svc.CreateExercise(ctx, userID, "push", "incline press")
	require.Nil(t, apiErr)
	assert.True(t, created.Created)

	exercises, apiErr = svc.ListExercises(ctx, userID, "Push")
	require.Nil(t, apiErr)
	assert.Contains(t, exercises, "incline press")
}

func TestCreateExerciseRules(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewCatalogService(env.catalogRepo)
	ctx := context.Background()
	userID := env.newUser(t)

	// Unknown day type is rejected.
	_, apiErr := svc.CreateExercise(ctx, userID, "cardio", "rowing")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)

	// After registering the day type the same create succeeds.
	_, apiErr = svc.CreateDaytype(ctx, userID, "cardio")
	require.Nil(t, apiErr)
	created, apiErr := svc.CreateExercise(ctx, userID, "cardio", "rowing")
	require.Nil(t, apiErr)
	assert.True(t, created.Created)

	// Built-in exercise collision, case-insensitively.
	_, apiErr = svc.CreateExercise(ctx, userID, "push", "Chest Press")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)

	// Idempotent re-create of the user's own exercise.
	repeat, apiErr := svc.CreateExercise(ctx, userID, "cardio", "Rowing")
	require.Nil(t, apiErr)
	assert.False(t, repeat.Created)
	assert.Equal(t, "rowing", repeat.Name)
}
