// internal/service/mocks/interest_group_service.go
package mocks

import (
	"context"

	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// InterestGroupService は service.InterestGroupService のモック
type InterestGroupService struct {
	mock.Mock
}

func (_m *InterestGroupService) Get(ctx context.Context, userID uuid.UUID) (*model.UserInterestGroup, error) {
	ret := _m.Called(ctx, userID)
	return result[*model.UserInterestGroup](ret, 0), ret.Error(1)
}

func (_m *InterestGroupService) Set(ctx context.Context, userID, groupID uuid.UUID) (*model.UserInterestGroup, error) {
	ret := _m.Called(ctx, userID, groupID)
	return result[*model.UserInterestGroup](ret, 0), ret.Error(1)
}

func (_m *InterestGroupService) Clear(ctx context.Context, userID uuid.UUID) error {
	ret := _m.Called(ctx, userID)
	return ret.Error(0)
}

func NewInterestGroupService(t testingT) *InterestGroupService {
	m := &InterestGroupService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
