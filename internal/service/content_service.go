//go:generate mockery --name ContentService --output ./mocks --outpkg mocks --case=underscore
// internal/service/content_service.go
package service

import (
	"context"
	"errors"

	"go_health_learning/internal/model"
	"go_health_learning/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentService は学習コンテンツの読み取り専用カタログです。
type ContentService interface {
	ListGroups(ctx context.Context) ([]*model.LearningContentGroup, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (*model.LearningContentGroup, error)
	GetGroupTree(ctx context.Context, groupID uuid.UUID) (*model.GroupTreeResponse, error)
}

type contentService struct {
	db          *gorm.DB
	contentRepo repository.ContentRepository
}

func NewContentService(db *gorm.DB, contentRepo repository.ContentRepository) ContentService {
	return &contentService{db: db, contentRepo: contentRepo}
}

func (s *contentService) ListGroups(ctx context.Context) ([]*model.LearningContentGroup, error) {
	groups, err := s.contentRepo.ListGroups(ctx, s.db)
	if err != nil {
		return nil, internalError("学習コンテンツグループの取得に失敗しました。", err)
	}
	return groups, nil
}

func (s *contentService) GetGroup(ctx context.Context, groupID uuid.UUID) (*model.LearningContentGroup, error) {
	group, err := s.contentRepo.FindGroupByID(ctx, s.db, groupID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, groupNotFound()
		}
		return nil, internalError("学習コンテンツグループの取得に失敗しました。", err)
	}
	return group, nil
}

// GetGroupTree はグループ配下のツリーを入れ子にして返します。
func (s *contentService) GetGroupTree(ctx context.Context, groupID uuid.UUID) (*model.GroupTreeResponse, error) {
	tree, err := s.contentRepo.LoadTree(ctx, s.db, groupID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, groupNotFound()
		}
		return nil, internalError("学習コンテンツの取得に失敗しました。", err)
	}

	resp := &model.GroupTreeResponse{
		LearningContentGroup: tree.Group,
		Topics:               make([]*model.TopicTreeNode, 0, len(tree.Topics)),
	}
	topics := make(map[uuid.UUID]*model.TopicTreeNode, len(tree.Topics))
	for _, t := range tree.Topics {
		node := &model.TopicTreeNode{Topic: t, Contents: []*model.ContentTreeNode{}}
		topics[t.ID] = node
		resp.Topics = append(resp.Topics, node)
	}
	contents := make(map[uuid.UUID]*model.ContentTreeNode, len(tree.Contents))
	for _, c := range tree.Contents {
		parent, ok := topics[c.TopicID]
		if !ok {
			continue
		}
		node := &model.ContentTreeNode{Content: c, Steps: []*model.StepResponse{}}
		contents[c.ID] = node
		parent.Contents = append(parent.Contents, node)
	}
	for i := range tree.Steps {
		parent, ok := contents[tree.Steps[i].ContentID]
		if !ok {
			continue
		}
		step, err := model.NewStepResponse(&tree.Steps[i])
		if err != nil {
			return nil, internalError("学習ステップの内容が不正です。", err)
		}
		parent.Steps = append(parent.Steps, step)
	}
	return resp, nil
}
