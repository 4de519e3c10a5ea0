package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workoutjournal/backend/internal/model"
)

func (env *testEnv) addSession(t *testing.T, userID, date, daytype string, completed bool) {
	t.Helper()
	ctx := context.Background()
	tx, err := env.workoutRepo.BeginTx(ctx)
	require.NoError(t, err)

	now := time.Now().UTC()
	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      date,
		Daytype:   daytype,
		CreatedAt: now,
	}
	if completed {
		session.CompletedAt = &now
	}
	require.NoError(t, env.workoutRepo.InsertSessionTx(ctx, tx, &session))
	require.NoError(t, tx.Commit())
}

func fixedClock(date string) func() time.Time {
	parsed, _ := time.Parse("2006-01-02", date)
	return func() time.Time { return parsed }
}

func TestAggregateWeekWindow(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewHistoryService(env.workoutRepo)
	svc.now = fixedClock("2025-03-15")
	userID := env.newUser(t)

	env.addSession(t, userID, "2025-03-15", "push", true)
	env.addSession(t, userID, "2025-03-15", "pull", true)
	env.addSession(t, userID, "2025-03-08", "leg", true)
	env.addSession(t, userID, "2025-03-07", "arm", true)
	env.addSession(t, userID, "2025-03-14", "push", false)

	view, apiErr := svc.Aggregate(context.Background(), userID, "week", "", "")
	require.Nil(t, apiErr)
	assert.Equal(t, 3, view.TotalSessions)
	assert.Equal(t, 2, view.TotalDays)
	require.Len(t, view.SessionsByDay, 2)
	assert.Equal(t, DayCount{Date: "2025-03-08", Count: 1}, view.SessionsByDay[0])
	assert.Equal(t, DayCount{Date: "2025-03-15", Count: 2}, view.SessionsByDay[1])
}

func TestAggregateMonthAndYearWindows(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewHistoryService(env.workoutRepo)
	svc.now = fixedClock("2025-02-10")
	userID := env.newUser(t)

	env.addSession(t, userID, "2025-02-01", "push", true)
	env.addSession(t, userID, "2025-02-28", "pull", true)
	env.addSession(t, userID, "2025-01-31", "leg", true)
	env.addSession(t, userID, "2024-12-31", "arm", true)

	month, apiErr := svc.Aggregate(context.Background(), userID, "month", "", "")
	require.Nil(t, apiErr)
	assert.Equal(t, 2, month.TotalSessions)

	year, apiErr := svc.Aggregate(context.Background(), userID, "year", "", "")
	require.Nil(t, apiErr)
	assert.Equal(t, 3, year.TotalSessions)
}

func TestAggregateExplicitBounds(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewHistoryService(env.workoutRepo)
	userID := env.newUser(t)

	env.addSession(t, userID, "2025-05-01", "push", true)
	env.addSession(t, userID, "2025-05-10", "pull", true)
	env.addSession(t, userID, "2025-05-20", "leg", true)

	view, apiErr := svc.Aggregate(context.Background(), userID, "", "2025-05-05", "2025-05-15")
	require.Nil(t, apiErr)
	assert.Equal(t, 1, view.TotalSessions)
	require.Len(t, view.SessionsByDay, 1)
	assert.Equal(t, "2025-05-10", view.SessionsByDay[0].Date)
}

func TestAggregateValidation(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewHistoryService(env.workoutRepo)
	userID := env.newUser(t)

	_, apiErr := svc.Aggregate(context.Background(), userID, "decade", "", "")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)

	_, apiErr = svc.Aggregate(context.Background(), userID, "week", "2025-01-01", "")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)

	_, apiErr = svc.Aggregate(context.Background(), userID, "", "01-01-2025", "")
	require.NotNil(t, apiErr)
	assert.Equal(t, "validation_error", apiErr.Code)
}

func TestAggregateEmptyHistory(t *testing.T) {
	env := setupTestEnv(t)
	svc := NewHistoryService(env.workoutRepo)
	userID := env.newUser(t)

	view, apiErr := svc.Aggregate(context.Background(), userID, "week", "", "")
	require.Nil(t, apiErr)
	assert.Equal(t, 0, view.TotalSessions)
	assert.Equal(t, 0, view.TotalDays)
	assert.Empty(t, view.SessionsByDay)
}
