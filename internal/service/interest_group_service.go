//go:generate mockery --name InterestGroupService --output ./mocks --outpkg mocks --case=underscore
// internal/service/interest_group_service.go
package service

import (
	"context"
	"errors"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"
	"go_health_learning/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterestGroupService はユーザーが既定で学習するグループを管理します。
type InterestGroupService interface {
	Get(ctx context.Context, userID uuid.UUID) (*model.UserInterestGroup, error)
	Set(ctx context.Context, userID, groupID uuid.UUID) (*model.UserInterestGroup, error)
	Clear(ctx context.Context, userID uuid.UUID) error
}

type interestGroupService struct {
	db           *gorm.DB
	contentRepo  repository.ContentRepository
	interestRepo repository.InterestGroupRepository
}

func NewInterestGroupService(db *gorm.DB, contentRepo repository.ContentRepository, interestRepo repository.InterestGroupRepository) InterestGroupService {
	return &interestGroupService{db: db, contentRepo: contentRepo, interestRepo: interestRepo}
}

func (s *interestGroupService) Get(ctx context.Context, userID uuid.UUID) (*model.UserInterestGroup, error) {
	interest, err := s.interestRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, interestGroupNotSelected()
		}
		return nil, internalError("関心グループの取得に失敗しました。", err)
	}
	return interest, nil
}

// Set は関心グループを登録または変更します。グループの進捗には触れない。
func (s *interestGroupService) Set(ctx context.Context, userID, groupID uuid.UUID) (*model.UserInterestGroup, error) {
	logger := middleware.GetLogger(ctx).With("group_id", groupID)

	var interest *model.UserInterestGroup
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.contentRepo.FindGroupByID(ctx, tx, groupID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return groupNotFound()
			}
			return internalError("学習コンテンツグループの取得に失敗しました。", err)
		}
		if err := s.interestRepo.Upsert(ctx, tx, &model.UserInterestGroup{UserID: userID, GroupID: groupID}); err != nil {
			logger.Error("Failed to upsert interest group", "error", err)
			return internalError("関心グループの保存に失敗しました。", err)
		}
		var err error
		if interest, err = s.interestRepo.FindByUser(ctx, tx, userID); err != nil {
			return internalError("関心グループの取得に失敗しました。", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Interest group set")
	return interest, nil
}

func (s *interestGroupService) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.interestRepo.DeleteByUser(ctx, s.db, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return interestGroupNotSelected()
		}
		return internalError("関心グループの削除に失敗しました。", err)
	}
	middleware.GetLogger(ctx).Info("Interest group cleared")
	return nil
}
