//go:generate mockery --name InterestGroupRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/interest_group_repository.go
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

// InterestGroupRepository はユーザーごとに1件の「関心グループ」を管理します。
type InterestGroupRepository interface {
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserInterestGroup, error)
	Upsert(ctx context.Context, db *gorm.DB, interest *model.UserInterestGroup) error
	DeleteByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
}

type gormInterestGroupRepository struct{}

func NewGormInterestGroupRepository() InterestGroupRepository {
	return &gormInterestGroupRepository{}
}

func (r *gormInterestGroupRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.UserInterestGroup, error) {
	var interest model.UserInterestGroup
	result := db.WithContext(ctx).Where("user_id = ?", userID).Take(&interest)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding interest group in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormInterestGroupRepository.FindByUser: %w", result.Error)
	}
	return &interest, nil
}

func (r *gormInterestGroupRepository) Upsert(ctx context.Context, db *gorm.DB, interest *model.UserInterestGroup) error {
	result := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"group_id", "updated_at"}),
		}).
		Create(interest)
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error upserting interest group in DB",
			"error", result.Error,
			"user_id", interest.UserID.String(),
			"group_id", interest.GroupID.String(),
		)
		return fmt.Errorf("gormInterestGroupRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormInterestGroupRepository) DeleteByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	result := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.UserInterestGroup{})
	if result.Error != nil {
		middleware.GetLogger(ctx).Error("Error deleting interest group in DB", "error", result.Error, "user_id", userID.String())
		return fmt.Errorf("gormInterestGroupRepository.DeleteByUser: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}
