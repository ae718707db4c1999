// internal/repository/mocks/session_repository.go
package mocks

import (
	"context"
	"time"

	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// SessionRepository は repository.SessionRepository のモック
type SessionRepository struct {
	mock.Mock
}

func (_m *SessionRepository) FindForDay(ctx context.Context, db *gorm.DB, userID, groupID uuid.UUID, start, end time.Time) (*model.DailyLearningSession, error) {
	ret := _m.Called(ctx, db, userID, groupID, start, end)
	return result[*model.DailyLearningSession](ret, 0), ret.Error(1)
}

func (_m *SessionRepository) ListForDay(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*model.DailyLearningSession, error) {
	ret := _m.Called(ctx, db, userID, start, end)
	return result[[]*model.DailyLearningSession](ret, 0), ret.Error(1)
}

func (_m *SessionRepository) GetOrCreate(ctx context.Context, db *gorm.DB, session *model.DailyLearningSession, end time.Time) (*model.DailyLearningSession, error) {
	ret := _m.Called(ctx, db, session, end)
	return result[*model.DailyLearningSession](ret, 0), ret.Error(1)
}

func (_m *SessionRepository) Increment(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, inc model.SessionIncrement, at time.Time) error {
	ret := _m.Called(ctx, tx, sessionID, inc, at)
	return ret.Error(0)
}

func NewSessionRepository(t testingT) *SessionRepository {
	m := &SessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
