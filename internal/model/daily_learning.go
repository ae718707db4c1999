// internal/model/daily_learning.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// --- リクエストDTO ---

type SelectGroupRequest struct {
	LearningContentGroupID string `json:"learningContentGroupId" validate:"required,uuid"`
}

type CompleteStepRequest struct {
	StepID string `json:"stepId" validate:"required,uuid"`
}

type SetInterestGroupRequest struct {
	LearningContentGroupID string `json:"learningContentGroupId" validate:"required,uuid"`
}

// --- レスポンスDTO ---

type ProgressResponse struct {
	ID                     uuid.UUID  `json:"id"`
	UserID                 uuid.UUID  `json:"userId"`
	LearningContentGroupID uuid.UUID  `json:"learningContentGroupId"`
	CurrentTopicID         *uuid.UUID `json:"currentTopicId"`
	CurrentContentID       *uuid.UUID `json:"currentContentId"`
	CurrentStepID          *uuid.UUID `json:"currentStepId"`
	IsCompleted            bool       `json:"isCompleted"`
	CompletedAt            *time.Time `json:"completedAt"`
	CreatedAt              time.Time  `json:"createdAt"`
	UpdatedAt              time.Time  `json:"updatedAt"`
}

func NewProgressResponse(p *UserLearningProgress) *ProgressResponse {
	return &ProgressResponse{
		ID:                     p.ID,
		UserID:                 p.UserID,
		LearningContentGroupID: p.GroupID,
		CurrentTopicID:         p.CurrentTopicID,
		CurrentContentID:       p.CurrentContentID,
		CurrentStepID:          p.CurrentStepID,
		IsCompleted:            p.IsCompleted,
		CompletedAt:            p.CompletedAt,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

type SessionResponse struct {
	ID                     uuid.UUID `json:"id"`
	UserID                 uuid.UUID `json:"userId"`
	LearningContentGroupID uuid.UUID `json:"learningContentGroupId"`
	SessionDate            time.Time `json:"sessionDate"`
	TopicsCompleted        int       `json:"topicsCompleted"`
	ContentsCompleted      int       `json:"contentsCompleted"`
	StepsCompleted         int       `json:"stepsCompleted"`
	LastLearningAt         time.Time `json:"lastLearningAt"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func NewSessionResponse(s *DailyLearningSession) *SessionResponse {
	return &SessionResponse{
		ID:                     s.ID,
		UserID:                 s.UserID,
		LearningContentGroupID: s.GroupID,
		SessionDate:            s.SessionDate,
		TopicsCompleted:        s.TopicsCompleted,
		ContentsCompleted:      s.ContentsCompleted,
		StepsCompleted:         s.StepsCompleted,
		LastLearningAt:         s.LastLearningAt,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
}

type ContentItemResponse struct {
	ID     uuid.UUID       `json:"id"`
	StepID uuid.UUID       `json:"stepId"`
	Type   ContentItemType `json:"type"`
	Order  int             `json:"order"`
	Data   ContentItemData `json:"data"`
}

type StepResponse struct {
	ID           uuid.UUID             `json:"id"`
	ContentID    uuid.UUID             `json:"contentId"`
	PageTitle    string                `json:"pageTitle"`
	Order        int                   `json:"order"`
	ContentItems []ContentItemResponse `json:"contentItems"`
}

// NewStepResponse は Step と Preload 済みの Items からレスポンスを作ります。
func NewStepResponse(s *Step) (*StepResponse, error) {
	items := make([]ContentItemResponse, 0, len(s.Items))
	for i := range s.Items {
		item := &s.Items[i]
		data, err := item.Payload()
		if err != nil {
			return nil, err
		}
		items = append(items, ContentItemResponse{
			ID:     item.ID,
			StepID: item.StepID,
			Type:   item.Type,
			Order:  item.SortOrder,
			Data:   data,
		})
	}
	return &StepResponse{
		ID:           s.ID,
		ContentID:    s.ContentID,
		PageTitle:    s.PageTitle,
		Order:        s.SortOrder,
		ContentItems: items,
	}, nil
}

type CurrentLearningContentResponse struct {
	Progress                *ProgressResponse `json:"progress"`
	CurrentSession          *SessionResponse  `json:"currentSession"`
	CurrentTopic            *Topic            `json:"currentTopic"`
	CurrentContent          *Content          `json:"currentContent"`
	CurrentStep             *StepResponse     `json:"currentStep"`
	NextStep                *StepResponse     `json:"nextStep"`
	ProgressPercentage      float64           `json:"progressPercentage"`
	TodayProgressPercentage float64           `json:"todayProgressPercentage"`
}

type DailyLearningSummaryResponse struct {
	SelectedGroup             *LearningContentGroup `json:"selectedGroup"`
	CurrentProgress           *ProgressResponse     `json:"currentProgress"`
	TodaySession              *SessionResponse      `json:"todaySession"`
	TotalTopics               int64                 `json:"totalTopics"`
	TotalContents             int64                 `json:"totalContents"`
	TotalSteps                int64                 `json:"totalSteps"`
	TopicsCompleted           int64                 `json:"topicsCompleted"`
	ContentsCompleted         int64                 `json:"contentsCompleted"`
	StepsCompleted            int64                 `json:"stepsCompleted"`
	TodayTopicsCompleted      int                   `json:"todayTopicsCompleted"`
	TodayContentsCompleted    int                   `json:"todayContentsCompleted"`
	TodayStepsCompleted       int                   `json:"todayStepsCompleted"`
	OverallProgressPercentage float64               `json:"overallProgressPercentage"`
	TodayProgressPercentage   float64               `json:"todayProgressPercentage"`
}

type InterestGroupResponse struct {
	UserID                 uuid.UUID `json:"userId"`
	LearningContentGroupID uuid.UUID `json:"learningContentGroupId"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func NewInterestGroupResponse(g *UserInterestGroup) *InterestGroupResponse {
	return &InterestGroupResponse{
		UserID:                 g.UserID,
		LearningContentGroupID: g.GroupID,
		CreatedAt:              g.CreatedAt,
		UpdatedAt:              g.UpdatedAt,
	}
}

// --- カタログ (ツリー表示) ---

type ContentTreeNode struct {
	Content
	Steps []*StepResponse `json:"steps"`
}

type TopicTreeNode struct {
	Topic
	Contents []*ContentTreeNode `json:"contents"`
}

type GroupTreeResponse struct {
	LearningContentGroup
	Topics []*TopicTreeNode `json:"topics"`
}
