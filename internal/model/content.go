// internal/model/content.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LearningContentGroup は学習カリキュラムの最上位 (例: 高血圧管理)
type LearningContentGroup struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (LearningContentGroup) TableName() string {
	return "learning_content_groups"
}

// Topic はグループ直下の単元
type Topic struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_topics_group_order" json:"learningContentGroupId"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	SortOrder   int            `gorm:"column:sort_order;not null;index:idx_topics_group_order" json:"order"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Topic) TableName() string {
	return "topics"
}

// Content はトピック配下のコンテンツ
type Content struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TopicID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_contents_topic_order" json:"topicId"`
	Title     string         `gorm:"not null" json:"title"`
	SortOrder int            `gorm:"column:sort_order;not null;index:idx_contents_topic_order" json:"order"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Content) TableName() string {
	return "contents"
}

// Step は1ページ分の学習単位。ユーザーはStep単位で進む。
type Step struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ContentID uuid.UUID      `gorm:"type:uuid;not null;index:idx_steps_content_order" json:"contentId"`
	PageTitle string         `gorm:"not null" json:"pageTitle"`
	SortOrder int            `gorm:"column:sort_order;not null;index:idx_steps_content_order" json:"order"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Items []ContentItem `gorm:"foreignKey:StepID" json:"-"`
}

func (Step) TableName() string {
	return "steps"
}

// ContentItem はStep内で描画される要素。Data の形は Type によって決まる。
type ContentItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	StepID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type      ContentItemType `gorm:"type:varchar(32);not null"`
	SortOrder int             `gorm:"column:sort_order;not null"`
	Data      datatypes.JSON  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (ContentItem) TableName() string {
	return "step_content_items"
}

// TreeCounts は各階層のノード数
type TreeCounts struct {
	Topics   int64
	Contents int64
	Steps    int64
}

// TreePosition はグループ内の現在位置 (CountBefore 用)
type TreePosition struct {
	TopicID      uuid.UUID
	TopicOrder   int
	ContentID    uuid.UUID
	ContentOrder int
	StepOrder    int
}

// ContentTree はグループ配下の論理削除されていないノードを階層ごとにまとめたもの
// 各スライスは親ID・sort_order の昇順。
type ContentTree struct {
	Group    LearningContentGroup
	Topics   []Topic
	Contents []Content
	Steps    []Step
}
