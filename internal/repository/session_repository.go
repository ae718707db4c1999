//go:generate mockery --name SessionRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/session_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SessionRepository は日次学習セッションの永続化を担います。
// 「日」は呼び出し側が [start, end) で渡す。
type SessionRepository interface {
	FindForDay(ctx context.Context, db *gorm.DB, userID, groupID uuid.UUID, start, end time.Time) (*model.DailyLearningSession, error)
	ListForDay(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*model.DailyLearningSession, error)
	// GetOrCreate は session.SessionDate から end までの範囲で既存行を探し、無ければ作成する。
	GetOrCreate(ctx context.Context, db *gorm.DB, session *model.DailyLearningSession, end time.Time) (*model.DailyLearningSession, error)
	Increment(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, inc model.SessionIncrement, at time.Time) error
}

type gormSessionRepository struct{}

func NewGormSessionRepository() SessionRepository {
	return &gormSessionRepository{}
}

func (r *gormSessionRepository) FindForDay(ctx context.Context, db *gorm.DB, userID, groupID uuid.UUID, start, end time.Time) (*model.DailyLearningSession, error) {
	var session model.DailyLearningSession
	result := db.WithContext(ctx).
		Where("user_id = ? AND group_id = ? AND session_date >= ? AND session_date < ?", userID, groupID, start, end).
		Take(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding daily learning session in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"group_id", groupID.String(),
		)
		return nil, fmt.Errorf("gormSessionRepository.FindForDay: %w", result.Error)
	}
	return &session, nil
}

func (r *gormSessionRepository) ListForDay(ctx context.Context, db *gorm.DB, userID uuid.UUID, start, end time.Time) ([]*model.DailyLearningSession, error) {
	var sessions []*model.DailyLearningSession
	result := db.WithContext(ctx).
		Where("user_id = ? AND session_date >= ? AND session_date < ?", userID, start, end).
		Order("last_learning_at DESC").
		Find(&sessions)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error listing daily learning sessions in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormSessionRepository.ListForDay: %w", result.Error)
	}
	return sessions, nil
}

func (r *gormSessionRepository) GetOrCreate(ctx context.Context, db *gorm.DB, session *model.DailyLearningSession, end time.Time) (*model.DailyLearningSession, error) {
	existing, err := r.FindForDay(ctx, db, session.UserID, session.GroupID, session.SessionDate, end)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "group_id"}, {Name: "session_date"}},
			DoNothing: true,
		}).
		Create(session)
	if result.Error != nil && !isUniqueViolation(result.Error) {
		middleware.GetLogger(ctx).Error("Error creating daily learning session in DB",
			"error", result.Error,
			"user_id", session.UserID.String(),
			"group_id", session.GroupID.String(),
		)
		return nil, fmt.Errorf("gormSessionRepository.GetOrCreate: %w", result.Error)
	}
	if result.Error == nil && result.RowsAffected == 1 {
		return session, nil
	}

	middleware.GetLogger(ctx).Info("Daily learning session created concurrently, re-reading",
		"user_id", session.UserID.String(), "group_id", session.GroupID.String())
	return r.FindForDay(ctx, db, session.UserID, session.GroupID, session.SessionDate, end)
}

func (r *gormSessionRepository) Increment(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, inc model.SessionIncrement, at time.Time) error {
	result := tx.WithContext(ctx).
		Model(&model.DailyLearningSession{}).
		Where("id = ?", sessionID).
		Updates(map[string]interface{}{
			"topics_completed":   gorm.Expr("topics_completed + ?", inc.Topics),
			"contents_completed": gorm.Expr("contents_completed + ?", inc.Contents),
			"steps_completed":    gorm.Expr("steps_completed + ?", inc.Steps),
			"last_learning_at":   at,
		})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error incrementing daily learning session in DB",
			"error", result.Error,
			"session_id", sessionID.String(),
		)
		return fmt.Errorf("gormSessionRepository.Increment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
