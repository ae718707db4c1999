//go:generate mockery --name ProgressRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/progress_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	FindByUserAndGroup(ctx context.Context, db *gorm.DB, userID, groupID uuid.UUID) (*model.UserLearningProgress, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserLearningProgress, error)
	// FindOrCreate は (user, group) の行を返す。無ければ progress を挿入する。
	// 同時挿入の競合は ON CONFLICT DO NOTHING + 再取得で解決する。
	FindOrCreate(ctx context.Context, db *gorm.DB, progress *model.UserLearningProgress) (*model.UserLearningProgress, bool, error)
	// AdvanceFrom は current_step_id が expectedStepID の場合に限り現在位置を更新する。
	// 更新行が無ければ model.ErrInvalidState。
	AdvanceFrom(ctx context.Context, tx *gorm.DB, progressID, expectedStepID uuid.UUID, advance model.ProgressAdvance) error
	// SeedStart は現在位置が未設定かつ未完了の行に限り start を設定する。
	// 更新したかどうかを返す。
	SeedStart(ctx context.Context, db *gorm.DB, progressID uuid.UUID, start model.ProgressAdvance) (bool, error)
}

type gormProgressRepository struct{}

func NewGormProgressRepository() ProgressRepository {
	return &gormProgressRepository{}
}

func (r *gormProgressRepository) FindByUserAndGroup(ctx context.Context, db *gorm.DB, userID, groupID uuid.UUID) (*model.UserLearningProgress, error) {
	var progress model.UserLearningProgress
	result := db.WithContext(ctx).Where("user_id = ? AND group_id = ?", userID, groupID).Take(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding learning progress in DB",
			"error", result.Error,
			"user_id", userID.String(),
			"group_id", groupID.String(),
		)
		return nil, fmt.Errorf("gormProgressRepository.FindByUserAndGroup: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormProgressRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.UserLearningProgress, error) {
	var progresses []*model.UserLearningProgress
	result := db.WithContext(ctx).Where("user_id = ?", userID).Order("updated_at DESC").Find(&progresses)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error listing learning progress in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormProgressRepository.ListByUser: %w", result.Error)
	}
	return progresses, nil
}

func (r *gormProgressRepository) FindOrCreate(ctx context.Context, db *gorm.DB, progress *model.UserLearningProgress) (*model.UserLearningProgress, bool, error) {
	existing, err := r.FindByUserAndGroup(ctx, db, progress.UserID, progress.GroupID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, false, err
	}

	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "group_id"}},
			DoNothing: true,
		}).
		Create(progress)
	if result.Error != nil && !isUniqueViolation(result.Error) {
		middleware.GetLogger(ctx).Error("Error creating learning progress in DB",
			"error", result.Error,
			"user_id", progress.UserID.String(),
			"group_id", progress.GroupID.String(),
		)
		return nil, false, fmt.Errorf("gormProgressRepository.FindOrCreate: %w", result.Error)
	}
	if result.Error == nil && result.RowsAffected == 1 {
		return progress, true, nil
	}

	// 他のリクエストが先に作成した
	middleware.GetLogger(ctx).Info("Learning progress created concurrently, re-reading",
		"user_id", progress.UserID.String(), "group_id", progress.GroupID.String())
	existing, err = r.FindByUserAndGroup(ctx, db, progress.UserID, progress.GroupID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *gormProgressRepository) AdvanceFrom(ctx context.Context, tx *gorm.DB, progressID, expectedStepID uuid.UUID, advance model.ProgressAdvance) error {
	updates := map[string]interface{}{
		"current_topic_id":   advance.TopicID,
		"current_content_id": advance.ContentID,
		"current_step_id":    advance.StepID,
		"is_completed":       advance.Completed,
		"completed_at":       advance.CompletedAt,
	}
	result := tx.WithContext(ctx).
		Model(&model.UserLearningProgress{}).
		Where("id = ? AND current_step_id = ?", progressID, expectedStepID).
		Updates(updates)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error advancing learning progress in DB",
			"error", result.Error,
			"progress_id", progressID.String(),
		)
		return fmt.Errorf("gormProgressRepository.AdvanceFrom: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrInvalidState
	}
	return nil
}

func (r *gormProgressRepository) SeedStart(ctx context.Context, db *gorm.DB, progressID uuid.UUID, start model.ProgressAdvance) (bool, error) {
	result := db.WithContext(ctx).
		Model(&model.UserLearningProgress{}).
		Where("id = ? AND current_step_id IS NULL AND is_completed = ?", progressID, false).
		Updates(map[string]interface{}{
			"current_topic_id":   start.TopicID,
			"current_content_id": start.ContentID,
			"current_step_id":    start.StepID,
		})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error seeding learning progress start in DB",
			"error", result.Error,
			"progress_id", progressID.String(),
		)
		return false, fmt.Errorf("gormProgressRepository.SeedStart: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
