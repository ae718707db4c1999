// internal/service/mocks/content_service.go
package mocks

import (
	"context"

	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ContentService は service.ContentService のモック
type ContentService struct {
	mock.Mock
}

func (_m *ContentService) ListGroups(ctx context.Context) ([]*model.LearningContentGroup, error) {
	ret := _m.Called(ctx)
	return result[[]*model.LearningContentGroup](ret, 0), ret.Error(1)
}

func (_m *ContentService) GetGroup(ctx context.Context, groupID uuid.UUID) (*model.LearningContentGroup, error) {
	ret := _m.Called(ctx, groupID)
	return result[*model.LearningContentGroup](ret, 0), ret.Error(1)
}

func (_m *ContentService) GetGroupTree(ctx context.Context, groupID uuid.UUID) (*model.GroupTreeResponse, error) {
	ret := _m.Called(ctx, groupID)
	return result[*model.GroupTreeResponse](ret, 0), ret.Error(1)
}

func NewContentService(t testingT) *ContentService {
	m := &ContentService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
