// internal/repository/mocks/content_repository.go
package mocks

import (
	"context"

	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// ContentRepository は repository.ContentRepository のモック
type ContentRepository struct {
	mock.Mock
}

func (_m *ContentRepository) FindGroupByID(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.LearningContentGroup, error) {
	ret := _m.Called(ctx, db, groupID)
	return result[*model.LearningContentGroup](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) ListGroups(ctx context.Context, db *gorm.DB) ([]*model.LearningContentGroup, error) {
	ret := _m.Called(ctx, db)
	return result[[]*model.LearningContentGroup](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) FindTopicByID(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (*model.Topic, error) {
	ret := _m.Called(ctx, db, topicID)
	return result[*model.Topic](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) FindContentByID(ctx context.Context, db *gorm.DB, contentID uuid.UUID) (*model.Content, error) {
	ret := _m.Called(ctx, db, contentID)
	return result[*model.Content](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) FindStepByID(ctx context.Context, db *gorm.DB, stepID uuid.UUID) (*model.Step, error) {
	ret := _m.Called(ctx, db, stepID)
	return result[*model.Step](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) FindStepWithItems(ctx context.Context, db *gorm.DB, stepID uuid.UUID) (*model.Step, error) {
	ret := _m.Called(ctx, db, stepID)
	return result[*model.Step](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) FirstTopic(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.Topic, error) {
	ret := _m.Called(ctx, db, groupID)
	return result[*model.Topic](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) NextTopic(ctx context.Context, db *gorm.DB, current *model.Topic) (*model.Topic, error) {
	ret := _m.Called(ctx, db, current)
	return result[*model.Topic](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) FirstContent(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (*model.Content, error) {
	ret := _m.Called(ctx, db, topicID)
	return result[*model.Content](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) NextContent(ctx context.Context, db *gorm.DB, current *model.Content) (*model.Content, error) {
	ret := _m.Called(ctx, db, current)
	return result[*model.Content](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) FirstStep(ctx context.Context, db *gorm.DB, contentID uuid.UUID) (*model.Step, error) {
	ret := _m.Called(ctx, db, contentID)
	return result[*model.Step](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) NextStep(ctx context.Context, db *gorm.DB, current *model.Step) (*model.Step, error) {
	ret := _m.Called(ctx, db, current)
	return result[*model.Step](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) CountTopics(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, db, groupID)
	return result[int64](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) CountContents(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, db, groupID)
	return result[int64](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) CountSteps(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (int64, error) {
	ret := _m.Called(ctx, db, groupID)
	return result[int64](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) CountBefore(ctx context.Context, db *gorm.DB, groupID uuid.UUID, pos model.TreePosition) (*model.TreeCounts, error) {
	ret := _m.Called(ctx, db, groupID, pos)
	return result[*model.TreeCounts](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) FindStoredPosition(ctx context.Context, db *gorm.DB, topicID, contentID, stepID uuid.UUID) (*model.TreePosition, error) {
	ret := _m.Called(ctx, db, topicID, contentID, stepID)
	return result[*model.TreePosition](ret, 0), ret.Error(1)
}

func (_m *ContentRepository) LoadTree(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.ContentTree, error) {
	ret := _m.Called(ctx, db, groupID)
	return result[*model.ContentTree](ret, 0), ret.Error(1)
}

func NewContentRepository(t testingT) *ContentRepository {
	m := &ContentRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
