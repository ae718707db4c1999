// internal/model/progress.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserLearningProgress はユーザーのグループ内の現在位置を表します
// (user_id, group_id) につき1行。グループを切り替えても削除しない。
type UserLearningProgress struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_progress_user_group"`
	GroupID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uq_progress_user_group"`
	CurrentTopicID   *uuid.UUID `gorm:"type:uuid"`
	CurrentContentID *uuid.UUID `gorm:"type:uuid"`
	CurrentStepID    *uuid.UUID `gorm:"type:uuid"`
	IsCompleted      bool       `gorm:"not null;default:false"`
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (UserLearningProgress) TableName() string {
	return "user_learning_progress"
}

// HasPointer は現在位置が設定されているか
func (p *UserLearningProgress) HasPointer() bool {
	return p.CurrentStepID != nil && p.CurrentContentID != nil && p.CurrentTopicID != nil
}

// IsCurrentStep は stepID が現在のStepと一致するか
func (p *UserLearningProgress) IsCurrentStep(stepID uuid.UUID) bool {
	return p.CurrentStepID != nil && *p.CurrentStepID == stepID
}

// DailyLearningSession は (user, group, 日付) ごとの当日の学習カウンタ
type DailyLearningSession struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_session_user_group_date;index"`
	GroupID           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_session_user_group_date"`
	UserProgressID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SessionDate       time.Time `gorm:"not null;uniqueIndex:uq_session_user_group_date"` // 0時に切り捨てた日付
	TopicsCompleted   int       `gorm:"not null;default:0"`
	ContentsCompleted int       `gorm:"not null;default:0"`
	StepsCompleted    int       `gorm:"not null;default:0"`
	LastLearningAt    time.Time `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (DailyLearningSession) TableName() string {
	return "daily_learning_sessions"
}

// SessionIncrement は completeStep 1回分のカウンタ加算
type SessionIncrement struct {
	Topics   int
	Contents int
	Steps    int
}

// UserInterestGroup はユーザーが選択中の学習グループ (ユーザーにつき1件)
type UserInterestGroup struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	GroupID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserInterestGroup) TableName() string {
	return "user_interest_groups"
}

// ProgressAdvance は completeStep による現在位置の更新内容
// Completed の場合ポインタはすべて nil。
type ProgressAdvance struct {
	TopicID     *uuid.UUID
	ContentID   *uuid.UUID
	StepID      *uuid.UUID
	Completed   bool
	CompletedAt *time.Time
}
