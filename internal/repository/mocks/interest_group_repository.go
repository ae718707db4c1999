// internal/repository/mocks/interest_group_repository.go
package mocks

import (
	"context"

	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// InterestGroupRepository は repository.InterestGroupRepository のモック
type InterestGroupRepository struct {
	mock.Mock
}

func (_m *InterestGroupRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserInterestGroup, error) {
	ret := _m.Called(ctx, db, userID)
	return result[*model.UserInterestGroup](ret, 0), ret.Error(1)
}

func (_m *InterestGroupRepository) Upsert(ctx context.Context, db *gorm.DB, interest *model.UserInterestGroup) error {
	ret := _m.Called(ctx, db, interest)
	return ret.Error(0)
}

func (_m *InterestGroupRepository) DeleteByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	ret := _m.Called(ctx, db, userID)
	return ret.Error(0)
}

func NewInterestGroupRepository(t testingT) *InterestGroupRepository {
	m := &InterestGroupRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
