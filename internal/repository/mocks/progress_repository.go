// internal/repository/mocks/progress_repository.go
package mocks

import (
	"context"

	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// ProgressRepository は repository.ProgressRepository のモック
type ProgressRepository struct {
	mock.Mock
}

func (_m *ProgressRepository) FindByUserAndGroup(ctx context.Context, db *gorm.DB, userID, groupID uuid.UUID) (*model.UserLearningProgress, error) {
	ret := _m.Called(ctx, db, userID, groupID)
	return result[*model.UserLearningProgress](ret, 0), ret.Error(1)
}

func (_m *ProgressRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserLearningProgress, error) {
	ret := _m.Called(ctx, db, userID)
	return result[[]*model.UserLearningProgress](ret, 0), ret.Error(1)
}

func (_m *ProgressRepository) FindOrCreate(ctx context.Context, db *gorm.DB, progress *model.UserLearningProgress) (*model.UserLearningProgress, bool, error) {
	ret := _m.Called(ctx, db, progress)
	return result[*model.UserLearningProgress](ret, 0), ret.Bool(1), ret.Error(2)
}

func (_m *ProgressRepository) AdvanceFrom(ctx context.Context, tx *gorm.DB, progressID, expectedStepID uuid.UUID, advance model.ProgressAdvance) error {
	ret := _m.Called(ctx, tx, progressID, expectedStepID, advance)
	return ret.Error(0)
}

func (_m *ProgressRepository) SeedStart(ctx context.Context, db *gorm.DB, progressID uuid.UUID, start model.ProgressAdvance) (bool, error) {
	ret := _m.Called(ctx, db, progressID, start)
	return ret.Bool(0), ret.Error(1)
}

func NewProgressRepository(t testingT) *ProgressRepository {
	m := &ProgressRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
