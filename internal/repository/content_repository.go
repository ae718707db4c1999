//go:generate mockery --name ContentRepository --output ./mocks --outpkg mocks --case=underscore
// internal/repository/content_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentRepository は学習コンテンツツリー (Group → Topic → Content → Step → Item) の読み取り専用ストアです。
// 論理削除されたノードは探索・集計の対象外。
// First*/Next* は該当ノードが無い場合 (nil, nil) を返す。
type ContentRepository interface {
	FindGroupByID(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.LearningContentGroup, error)
	ListGroups(ctx context.Context, db *gorm.DB) ([]*model.LearningContentGroup, error)
	FindTopicByID(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (*model.Topic, error)
	FindContentByID(ctx context.Context, db *gorm.DB, contentID uuid.UUID) (*model.Content, error)
	FindStepByID(ctx context.Context, db *gorm.DB, stepID uuid.UUID) (*model.Step, error)
	FindStepWithItems(ctx context.Context, db *gorm.DB, stepID uuid.UUID) (*model.Step, error)

	FirstTopic(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.Topic, error)
	NextTopic(ctx context.Context, db *gorm.DB, current *model.Topic) (*model.Topic, error)
	FirstContent(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (*model.Content, error)
	NextContent(ctx context.Context, db *gorm.DB, current *model.Content) (*model.Content, error)
	FirstStep(ctx context.Context, db *gorm.DB, contentID uuid.UUID) (*model.Step, error)
	NextStep(ctx context.Context, db *gorm.DB, current *model.Step) (*model.Step, error)

	CountTopics(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (int64, error)
	CountContents(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (int64, error)
	CountSteps(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (int64, error)
	CountBefore(ctx context.Context, db *gorm.DB, groupID uuid.UUID, pos model.TreePosition) (*model.TreeCounts, error)
	// FindStoredPosition は論理削除済みを含めて3ノードの並び順を取得する。
	FindStoredPosition(ctx context.Context, db *gorm.DB, topicID, contentID, stepID uuid.UUID) (*model.TreePosition, error)

	LoadTree(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.ContentTree, error)
}

// siblingNode は (親ID, sort_order) で並ぶツリーの階層
type siblingNode interface {
	model.Topic | model.Content | model.Step
}

// orderedLevel は1階層分の兄弟ナビゲーター。
// Topic/Content/Step で同じ「最初の子」「次の兄弟」ロジックを共有する。
type orderedLevel[T siblingNode] struct {
	name         string
	parentColumn string
}

func (l orderedLevel[T]) first(ctx context.Context, db *gorm.DB, parentID uuid.UUID) (*T, error) {
	return l.take(ctx, db.WithContext(ctx).Where(l.parentColumn+" = ?", parentID))
}

func (l orderedLevel[T]) next(ctx context.Context, db *gorm.DB, parentID uuid.UUID, order int) (*T, error) {
	return l.take(ctx, db.WithContext(ctx).Where(l.parentColumn+" = ? AND sort_order > ?", parentID, order))
}

func (l orderedLevel[T]) take(ctx context.Context, query *gorm.DB) (*T, error) {
	var rows []T
	if err := query.Order("sort_order ASC").Limit(1).Find(&rows).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error navigating content tree", "level", l.name, "error", err)
		return nil, fmt.Errorf("orderedLevel[%s]: %w", l.name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

var (
	topicLevel   = orderedLevel[model.Topic]{name: "topic", parentColumn: "group_id"}
	contentLevel = orderedLevel[model.Content]{name: "content", parentColumn: "topic_id"}
	stepLevel    = orderedLevel[model.Step]{name: "step", parentColumn: "content_id"}
)

// 祖先が論理削除されていないことを保証する JOIN
const (
	joinLiveContents = "JOIN contents ON contents.id = steps.content_id AND contents.deleted_at IS NULL"
	joinLiveTopics   = "JOIN topics ON topics.id = contents.topic_id AND topics.deleted_at IS NULL"
)

type gormContentRepository struct{}

func NewGormContentRepository() ContentRepository {
	return &gormContentRepository{}
}

// findByID は主キーで1件取得する。未存在・論理削除済みは model.ErrNotFound。
func findByID[T any](ctx context.Context, db *gorm.DB, op string, id uuid.UUID) (*T, error) {
	var row T
	result := db.WithContext(ctx).Where("id = ?", id).Take(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		middleware.GetLogger(ctx).Error("Error finding content node by ID in DB", "op", op, "id", id.String(), "error", result.Error)
		return nil, fmt.Errorf("gormContentRepository.%s: %w", op, result.Error)
	}
	return &row, nil
}

func (r *gormContentRepository) FindGroupByID(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.LearningContentGroup, error) {
	return findByID[model.LearningContentGroup](ctx, db, "FindGroupByID", groupID)
}

func (r *gormContentRepository) ListGroups(ctx context.Context, db *gorm.DB) ([]*model.LearningContentGroup, error) {
	var groups []*model.LearningContentGroup
	if err := db.WithContext(ctx).Order("created_at ASC, name ASC").Find(&groups).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error listing learning content groups", "error", err)
		return nil, fmt.Errorf("gormContentRepository.ListGroups: %w", err)
	}
	return groups, nil
}

func (r *gormContentRepository) FindTopicByID(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (*model.Topic, error) {
	return findByID[model.Topic](ctx, db, "FindTopicByID", topicID)
}

func (r *gormContentRepository) FindContentByID(ctx context.Context, db *gorm.DB, contentID uuid.UUID) (*model.Content, error) {
	return findByID[model.Content](ctx, db, "FindContentByID", contentID)
}

func (r *gormContentRepository) FindStepByID(ctx context.Context, db *gorm.DB, stepID uuid.UUID) (*model.Step, error) {
	return findByID[model.Step](ctx, db, "FindStepByID", stepID)
}

// FindStepWithItems は Step と論理削除されていない ContentItem を sort_order 昇順で取得します。
func (r *gormContentRepository) FindStepWithItems(ctx context.Context, db *gorm.DB, stepID uuid.UUID) (*model.Step, error) {
	return findByID[model.Step](ctx, db.Preload("Items", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("sort_order ASC")
	}), "FindStepWithItems", stepID)
}

func (r *gormContentRepository) FirstTopic(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.Topic, error) {
	return topicLevel.first(ctx, db, groupID)
}

func (r *gormContentRepository) NextTopic(ctx context.Context, db *gorm.DB, current *model.Topic) (*model.Topic, error) {
	return topicLevel.next(ctx, db, current.GroupID, current.SortOrder)
}

func (r *gormContentRepository) FirstContent(ctx context.Context, db *gorm.DB, topicID uuid.UUID) (*model.Content, error) {
	return contentLevel.first(ctx, db, topicID)
}

func (r *gormContentRepository) NextContent(ctx context.Context, db *gorm.DB, current *model.Content) (*model.Content, error) {
	return contentLevel.next(ctx, db, current.TopicID, current.SortOrder)
}

func (r *gormContentRepository) FirstStep(ctx context.Context, db *gorm.DB, contentID uuid.UUID) (*model.Step, error) {
	return stepLevel.first(ctx, db, contentID)
}

func (r *gormContentRepository) NextStep(ctx context.Context, db *gorm.DB, current *model.Step) (*model.Step, error) {
	return stepLevel.next(ctx, db, current.ContentID, current.SortOrder)
}

func (r *gormContentRepository) CountTopics(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (int64, error) {
	return count(ctx, "CountTopics", topicsInGroup(db.WithContext(ctx), groupID))
}

func (r *gormContentRepository) CountContents(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (int64, error) {
	return count(ctx, "CountContents", contentsInGroup(db.WithContext(ctx), groupID))
}

func (r *gormContentRepository) CountSteps(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (int64, error) {
	return count(ctx, "CountSteps", stepsInGroup(db.WithContext(ctx), groupID))
}

// CountBefore はグループ全体で pos より前に位置するノード数を数えます。
// 前のトピック → 同じトピック内の前のコンテンツ → 同じコンテンツ内の前のステップ の順で判定する。
func (r *gormContentRepository) CountBefore(ctx context.Context, db *gorm.DB, groupID uuid.UUID, pos model.TreePosition) (*model.TreeCounts, error) {
	var counts model.TreeCounts
	var err error

	counts.Topics, err = count(ctx, "CountBefore.topics",
		topicsInGroup(db.WithContext(ctx), groupID).Where("topics.sort_order < ?", pos.TopicOrder))
	if err != nil {
		return nil, err
	}

	counts.Contents, err = count(ctx, "CountBefore.contents",
		contentsInGroup(db.WithContext(ctx), groupID).
			Where("(topics.sort_order < ? OR (topics.id = ? AND contents.sort_order < ?))",
				pos.TopicOrder, pos.TopicID, pos.ContentOrder))
	if err != nil {
		return nil, err
	}

	counts.Steps, err = count(ctx, "CountBefore.steps",
		stepsInGroup(db.WithContext(ctx), groupID).
			Where("(topics.sort_order < ? OR (topics.id = ? AND (contents.sort_order < ? OR (contents.id = ? AND steps.sort_order < ?))))",
				pos.TopicOrder, pos.TopicID, pos.ContentOrder, pos.ContentID, pos.StepOrder))
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *gormContentRepository) FindStoredPosition(ctx context.Context, db *gorm.DB, topicID, contentID, stepID uuid.UUID) (*model.TreePosition, error) {
	unscoped := db.Unscoped()
	topic, err := findByID[model.Topic](ctx, unscoped, "FindStoredPosition.topic", topicID)
	if err != nil {
		return nil, err
	}
	content, err := findByID[model.Content](ctx, unscoped, "FindStoredPosition.content", contentID)
	if err != nil {
		return nil, err
	}
	step, err := findByID[model.Step](ctx, unscoped, "FindStoredPosition.step", stepID)
	if err != nil {
		return nil, err
	}
	return &model.TreePosition{
		TopicID:      topic.ID,
		TopicOrder:   topic.SortOrder,
		ContentID:    content.ID,
		ContentOrder: content.SortOrder,
		StepOrder:    step.SortOrder,
	}, nil
}

// LoadTree はグループ配下の論理削除されていないツリーを階層ごとに取得します。
// Step には ContentItem を sort_order 昇順で Preload する。
func (r *gormContentRepository) LoadTree(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.ContentTree, error) {
	group, err := r.FindGroupByID(ctx, db, groupID)
	if err != nil {
		return nil, err
	}
	tree := &model.ContentTree{Group: *group}

	if err := topicsInGroup(db.WithContext(ctx), groupID).
		Order("topics.sort_order ASC").Find(&tree.Topics).Error; err != nil {
		return nil, fmt.Errorf("gormContentRepository.LoadTree topics: %w", err)
	}
	if err := contentsInGroup(db.WithContext(ctx), groupID).
		Order("topics.sort_order ASC, contents.sort_order ASC").Find(&tree.Contents).Error; err != nil {
		return nil, fmt.Errorf("gormContentRepository.LoadTree contents: %w", err)
	}
	if err := stepsInGroup(db.WithContext(ctx), groupID).
		Preload("Items", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order ASC") }).
		Order("topics.sort_order ASC, contents.sort_order ASC, steps.sort_order ASC").
		Find(&tree.Steps).Error; err != nil {
		return nil, fmt.Errorf("gormContentRepository.LoadTree steps: %w", err)
	}
	return tree, nil
}

func topicsInGroup(db *gorm.DB, groupID uuid.UUID) *gorm.DB {
	return db.Model(&model.Topic{}).Where("topics.group_id = ?", groupID)
}

func contentsInGroup(db *gorm.DB, groupID uuid.UUID) *gorm.DB {
	return db.Model(&model.Content{}).
		Joins(joinLiveTopics).
		Where("topics.group_id = ?", groupID)
}

func stepsInGroup(db *gorm.DB, groupID uuid.UUID) *gorm.DB {
	return db.Model(&model.Step{}).
		Joins(joinLiveContents).
		Joins(joinLiveTopics).
		Where("topics.group_id = ?", groupID)
}

func count(ctx context.Context, op string, query *gorm.DB) (int64, error) {
	var n int64
	if err := query.Count(&n).Error; err != nil {
		middleware.GetLogger(ctx).Error("Error counting content tree nodes", "op", op, "error", err)
		return 0, fmt.Errorf("gormContentRepository.%s: %w", op, err)
	}
	return n, nil
}
