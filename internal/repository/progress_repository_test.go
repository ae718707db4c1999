// internal/repository/progress_repository_test.go
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

func Test_gormProgressRepository_FindOrCreate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormProgressRepository()

	userID := uuid.New()
	groupID := uuid.New()
	stepID := uuid.New()

	first, created, err := repo.FindOrCreate(ctx, db, &model.UserLearningProgress{
		ID: uuid.New(), UserID: userID, GroupID: groupID, CurrentStepID: &stepID,
	})
	require.NoError(t, err)
	assert.True(t, created)

	// 2回目は既存の行を返す
	second, created, err := repo.FindOrCreate(ctx, db, &model.UserLearningProgress{
		ID: uuid.New(), UserID: userID, GroupID: groupID,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.CurrentStepID)
	assert.Equal(t, stepID, *second.CurrentStepID)

	var n int64
	require.NoError(t, db.Model(&model.UserLearningProgress{}).Where("user_id = ?", userID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindByUserAndGroup(ctx, db, userID, uuid.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func Test_gormProgressRepository_AdvanceFrom(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormProgressRepository()

	userID := uuid.New()
	groupID := uuid.New()
	topicID, contentID, stepID := uuid.New(), uuid.New(), uuid.New()
	progress, _, err := repo.FindOrCreate(ctx, db, &model.UserLearningProgress{
		ID: uuid.New(), UserID: userID, GroupID: groupID,
		CurrentTopicID: &topicID, CurrentContentID: &contentID, CurrentStepID: &stepID,
	})
	require.NoError(t, err)

	nextStepID := uuid.New()

	t.Run("異常系: 現在位置が一致しない更新は ErrInvalidState", func(t *testing.T) {
		err := repo.AdvanceFrom(ctx, db, progress.ID, uuid.New(), model.ProgressAdvance{
			TopicID: &topicID, ContentID: &contentID, StepID: &nextStepID,
		})
		assert.ErrorIs(t, err, model.ErrInvalidState)
	})

	t.Run("正常系: 次の Step へ進む", func(t *testing.T) {
		err := repo.AdvanceFrom(ctx, db, progress.ID, stepID, model.ProgressAdvance{
			TopicID: &topicID, ContentID: &contentID, StepID: &nextStepID,
		})
		require.NoError(t, err)

		got, err := repo.FindByUserAndGroup(ctx, db, userID, groupID)
		require.NoError(t, err)
		assert.True(t, got.IsCurrentStep(nextStepID))
		assert.False(t, got.IsCompleted)
	})

	t.Run("異常系: 同じ Step からの2回目の更新は失敗する", func(t *testing.T) {
		err := repo.AdvanceFrom(ctx, db, progress.ID, stepID, model.ProgressAdvance{
			TopicID: &topicID, ContentID: &contentID, StepID: &nextStepID,
		})
		assert.ErrorIs(t, err, model.ErrInvalidState)
	})

	t.Run("正常系: 完了するとポインタが消える", func(t *testing.T) {
		at := time.Date(2025, 1, 2, 10, 0, 0, 0, jst)
		err := repo.AdvanceFrom(ctx, db, progress.ID, nextStepID, model.ProgressAdvance{Completed: true, CompletedAt: &at})
		require.NoError(t, err)

		got, err := repo.FindByUserAndGroup(ctx, db, userID, groupID)
		require.NoError(t, err)
		assert.True(t, got.IsCompleted)
		assert.False(t, got.HasPointer())
		require.NotNil(t, got.CompletedAt)
		assert.True(t, at.Equal(*got.CompletedAt))
	})
}

func Test_gormProgressRepository_SeedStart(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewGormProgressRepository()

	userID, groupID := uuid.New(), uuid.New()
	progress, _, err := repo.FindOrCreate(ctx, db, &model.UserLearningProgress{
		ID: uuid.New(), UserID: userID, GroupID: groupID,
	})
	require.NoError(t, err)

	topicID, contentID, stepID := uuid.New(), uuid.New(), uuid.New()
	start := model.ProgressAdvance{TopicID: &topicID, ContentID: &contentID, StepID: &stepID}

	t.Run("正常系: 現在位置の無い行に開始位置を設定する", func(t *testing.T) {
		seeded, err := repo.SeedStart(ctx, db, progress.ID, start)
		require.NoError(t, err)
		assert.True(t, seeded)

		got, err := repo.FindByUserAndGroup(ctx, db, userID, groupID)
		require.NoError(t, err)
		assert.True(t, got.HasPointer())
		assert.True(t, got.IsCurrentStep(stepID))
	})

	t.Run("正常系: 設定済みの行は上書きしない", func(t *testing.T) {
		otherStepID := uuid.New()
		seeded, err := repo.SeedStart(ctx, db, progress.ID, model.ProgressAdvance{
			TopicID: &topicID, ContentID: &contentID, StepID: &otherStepID,
		})
		require.NoError(t, err)
		assert.False(t, seeded)

		got, err := repo.FindByUserAndGroup(ctx, db, userID, groupID)
		require.NoError(t, err)
		assert.True(t, got.IsCurrentStep(stepID))
	})

	t.Run("正常系: 完了済みの行は対象外", func(t *testing.T) {
		require.NoError(t, repo.AdvanceFrom(ctx, db, progress.ID, stepID, model.ProgressAdvance{Completed: true}))

		seeded, err := repo.SeedStart(ctx, db, progress.ID, start)
		require.NoError(t, err)
		assert.False(t, seeded)

		got, err := repo.FindByUserAndGroup(ctx, db, userID, groupID)
		require.NoError(t, err)
		assert.True(t, got.IsCompleted)
		assert.Nil(t, got.CurrentStepID)
	})
}
