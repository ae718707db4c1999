// internal/service/mocks/daily_learning_service.go
package mocks

import (
	"context"

	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// DailyLearningService は service.DailyLearningService のモック
type DailyLearningService struct {
	mock.Mock
}

func (_m *DailyLearningService) SelectGroup(ctx context.Context, userID, groupID uuid.UUID) (*model.UserLearningProgress, error) {
	ret := _m.Called(ctx, userID, groupID)
	return result[*model.UserLearningProgress](ret, 0), ret.Error(1)
}

func (_m *DailyLearningService) CompleteStep(ctx context.Context, userID, stepID uuid.UUID) (*model.UserLearningProgress, error) {
	ret := _m.Called(ctx, userID, stepID)
	return result[*model.UserLearningProgress](ret, 0), ret.Error(1)
}

func (_m *DailyLearningService) GetProgress(ctx context.Context, userID, groupID uuid.UUID) (*model.UserLearningProgress, error) {
	ret := _m.Called(ctx, userID, groupID)
	return result[*model.UserLearningProgress](ret, 0), ret.Error(1)
}

func (_m *DailyLearningService) ListProgress(ctx context.Context, userID uuid.UUID) ([]*model.UserLearningProgress, error) {
	ret := _m.Called(ctx, userID)
	return result[[]*model.UserLearningProgress](ret, 0), ret.Error(1)
}

func (_m *DailyLearningService) GetTodaySession(ctx context.Context, userID, groupID uuid.UUID) (*model.DailyLearningSession, error) {
	ret := _m.Called(ctx, userID, groupID)
	return result[*model.DailyLearningSession](ret, 0), ret.Error(1)
}

func (_m *DailyLearningService) ListTodaySessions(ctx context.Context, userID uuid.UUID) ([]*model.DailyLearningSession, error) {
	ret := _m.Called(ctx, userID)
	return result[[]*model.DailyLearningSession](ret, 0), ret.Error(1)
}

func (_m *DailyLearningService) GetCurrentLearningContent(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) (*model.CurrentLearningContentResponse, error) {
	ret := _m.Called(ctx, userID, groupID)
	return result[*model.CurrentLearningContentResponse](ret, 0), ret.Error(1)
}

func (_m *DailyLearningService) GetDailyLearningSummary(ctx context.Context, userID uuid.UUID) (*model.DailyLearningSummaryResponse, error) {
	ret := _m.Called(ctx, userID)
	return result[*model.DailyLearningSummaryResponse](ret, 0), ret.Error(1)
}

// NewDailyLearningService はモックを作成し、テスト終了時に期待値を検証します。
func NewDailyLearningService(t testingT) *DailyLearningService {
	m := &DailyLearningService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
