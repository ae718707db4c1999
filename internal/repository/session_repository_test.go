// internal/repository/session_repository_test.go
package repository

import (
	"context"
	"testing"
	"time"

	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(userID, groupID uuid.UUID, day time.Time) *model.DailyLearningSession {
	return &model.DailyLearningSession{
		ID:             uuid.New(),
		UserID:         userID,
		GroupID:        groupID,
		UserProgressID: uuid.New(),
		SessionDate:    day,
		LastLearningAt: day,
	}
}

func Test_gormSessionRepository_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSessionRepository()

	userID, groupID := uuid.New(), uuid.New()
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, jst)
	tomorrow := today.AddDate(0, 0, 1)

	first, err := repo.GetOrCreate(ctx, db, newSession(userID, groupID, today), tomorrow)
	require.NoError(t, err)

	second, err := repo.GetOrCreate(ctx, db, newSession(userID, groupID, today), tomorrow)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	// 翌日は別のセッション
	next, err := repo.GetOrCreate(ctx, db, newSession(userID, groupID, tomorrow), tomorrow.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, next.ID)

	sessions, err := repo.ListForDay(ctx, db, userID, today, tomorrow)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, first.ID, sessions[0].ID)
}

func Test_gormSessionRepository_Increment(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormSessionRepository()

	userID, groupID := uuid.New(), uuid.New()
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, jst)
	tomorrow := today.AddDate(0, 0, 1)

	session, err := repo.GetOrCreate(ctx, db, newSession(userID, groupID, today), tomorrow)
	require.NoError(t, err)

	at := today.Add(9 * time.Hour)
	require.NoError(t, repo.Increment(ctx, db, session.ID, model.SessionIncrement{Steps: 1}, at))
	require.NoError(t, repo.Increment(ctx, db, session.ID, model.SessionIncrement{Contents: 1, Steps: 1}, at))
	require.NoError(t, repo.Increment(ctx, db, session.ID, model.SessionIncrement{Topics: 1, Steps: 1}, at.Add(time.Minute)))

	got, err := repo.FindForDay(ctx, db, userID, groupID, today, tomorrow)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StepsCompleted)
	assert.Equal(t, 1, got.ContentsCompleted)
	assert.Equal(t, 1, got.TopicsCompleted)
	assert.True(t, at.Add(time.Minute).Equal(got.LastLearningAt))

	err = repo.Increment(ctx, db, uuid.New(), model.SessionIncrement{Steps: 1}, at)
	assert.ErrorIs(t, err, model.ErrNotFound)
}
