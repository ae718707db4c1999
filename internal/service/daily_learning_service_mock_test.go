// internal/service/daily_learning_service_mock_test.go
package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go_health_learning/internal/model"
	"go_health_learning/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type repoMocks struct {
	content  *mocks.ContentRepository
	progress *mocks.ProgressRepository
	session  *mocks.SessionRepository
	interest *mocks.InterestGroupRepository
}

func newMockedService(t *testing.T, clock time.Time) (DailyLearningService, *repoMocks) {
	m := &repoMocks{
		content:  mocks.NewContentRepository(t),
		progress: mocks.NewProgressRepository(t),
		session:  mocks.NewSessionRepository(t),
		interest: mocks.NewInterestGroupRepository(t),
	}
	calendar := NewSessionCalendar(jst, func() time.Time { return clock })
	return NewDailyLearningService(setupTestDB(t), m.content, m.progress, m.session, m.interest, calendar), m
}

var errDB = errors.New("database is locked")

func Test_dailyLearningService_GetProgress(t *testing.T) {
	ctx := context.Background()
	userID, groupID := uuid.New(), uuid.New()

	tests := []struct {
		name      string
		setupMock func(m *repoMocks)
		wantCode  string
		wantErr   error
	}{
		{
			name: "正常系: 進捗を返す",
			setupMock: func(m *repoMocks) {
				m.progress.On("FindByUserAndGroup", ctx, mock.AnythingOfType("*gorm.DB"), userID, groupID).
					Return(&model.UserLearningProgress{ID: uuid.New(), UserID: userID, GroupID: groupID}, nil).Once()
			},
		},
		{
			name: "異常系: 進捗が無い",
			setupMock: func(m *repoMocks) {
				m.progress.On("FindByUserAndGroup", ctx, mock.AnythingOfType("*gorm.DB"), userID, groupID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantCode: model.CodeProgressNotFound,
			wantErr:  model.ErrNotFound,
		},
		{
			name: "異常系: DBエラーは 404 にならない",
			setupMock: func(m *repoMocks) {
				m.progress.On("FindByUserAndGroup", ctx, mock.AnythingOfType("*gorm.DB"), userID, groupID).
					Return(nil, errDB).Once()
			},
			wantCode: model.CodeInternal,
			wantErr:  model.ErrInternalServer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newMockedService(t, time.Now())
			tt.setupMock(m)

			got, err := svc.GetProgress(ctx, userID, groupID)
			if tt.wantErr != nil {
				requireAppError(t, err, tt.wantCode, tt.wantErr)
				assert.NotErrorIs(t, err, errDB)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, groupID, got.GroupID)
		})
	}
}

func Test_dailyLearningService_ListTodaySessions(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	svc, m := newMockedService(t, time.Date(2025, 3, 10, 23, 30, 0, 0, jst))

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, jst)
	end := time.Date(2025, 3, 11, 0, 0, 0, 0, jst)
	sessions := []*model.DailyLearningSession{{ID: uuid.New(), UserID: userID}}
	m.session.On("ListForDay", ctx, mock.AnythingOfType("*gorm.DB"), userID,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(start) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(end) }),
	).Return(sessions, nil).Once()

	got, err := svc.ListTodaySessions(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, sessions, got)
}

func Test_dailyLearningService_SelectGroup_RepositoryErrors(t *testing.T) {
	ctx := context.Background()
	userID, groupID := uuid.New(), uuid.New()
	group := &model.LearningContentGroup{ID: groupID, Name: "g"}

	tests := []struct {
		name      string
		setupMock func(m *repoMocks)
	}{
		{
			name: "異常系: グループ取得のDBエラー",
			setupMock: func(m *repoMocks) {
				m.content.On("FindGroupByID", ctx, mock.AnythingOfType("*gorm.DB"), groupID).Return(nil, errDB).Once()
			},
		},
		{
			name: "異常系: 最初のトピック取得のDBエラー",
			setupMock: func(m *repoMocks) {
				m.content.On("FindGroupByID", ctx, mock.AnythingOfType("*gorm.DB"), groupID).Return(group, nil).Once()
				m.progress.On("FindByUserAndGroup", ctx, mock.AnythingOfType("*gorm.DB"), userID, groupID).Return(nil, model.ErrNotFound).Once()
				m.content.On("FirstTopic", ctx, mock.AnythingOfType("*gorm.DB"), groupID).Return(nil, errDB).Once()
			},
		},
		{
			name: "異常系: 進捗作成のDBエラー",
			setupMock: func(m *repoMocks) {
				topic := &model.Topic{ID: uuid.New(), GroupID: groupID, SortOrder: 1}
				content := &model.Content{ID: uuid.New(), TopicID: topic.ID, SortOrder: 1}
				step := &model.Step{ID: uuid.New(), ContentID: content.ID, SortOrder: 1}
				m.content.On("FindGroupByID", ctx, mock.AnythingOfType("*gorm.DB"), groupID).Return(group, nil).Once()
				m.progress.On("FindByUserAndGroup", ctx, mock.AnythingOfType("*gorm.DB"), userID, groupID).Return(nil, model.ErrNotFound).Once()
				m.content.On("FirstTopic", ctx, mock.AnythingOfType("*gorm.DB"), groupID).Return(topic, nil).Once()
				m.content.On("FirstContent", ctx, mock.AnythingOfType("*gorm.DB"), topic.ID).Return(content, nil).Once()
				m.content.On("FirstStep", ctx, mock.AnythingOfType("*gorm.DB"), content.ID).Return(step, nil).Once()
				m.progress.On("FindOrCreate", ctx, mock.AnythingOfType("*gorm.DB"), mock.MatchedBy(func(p *model.UserLearningProgress) bool {
					return p.IsCurrentStep(step.ID) && p.UserID == userID && p.GroupID == groupID
				})).Return(nil, false, errDB).Once()
			},
		},
		{
			name: "異常系: 現在位置の無い既存進捗への開始位置設定のDBエラー",
			setupMock: func(m *repoMocks) {
				topic := &model.Topic{ID: uuid.New(), GroupID: groupID, SortOrder: 1}
				content := &model.Content{ID: uuid.New(), TopicID: topic.ID, SortOrder: 1}
				step := &model.Step{ID: uuid.New(), ContentID: content.ID, SortOrder: 1}
				progress := &model.UserLearningProgress{ID: uuid.New(), UserID: userID, GroupID: groupID}
				m.content.On("FindGroupByID", ctx, mock.AnythingOfType("*gorm.DB"), groupID).Return(group, nil).Once()
				m.progress.On("FindByUserAndGroup", ctx, mock.AnythingOfType("*gorm.DB"), userID, groupID).Return(progress, nil).Once()
				m.content.On("FirstTopic", ctx, mock.AnythingOfType("*gorm.DB"), groupID).Return(topic, nil).Once()
				m.content.On("FirstContent", ctx, mock.AnythingOfType("*gorm.DB"), topic.ID).Return(content, nil).Once()
				m.content.On("FirstStep", ctx, mock.AnythingOfType("*gorm.DB"), content.ID).Return(step, nil).Once()
				m.progress.On("SeedStart", ctx, mock.AnythingOfType("*gorm.DB"), progress.ID, mock.MatchedBy(func(a model.ProgressAdvance) bool {
					return a.StepID != nil && *a.StepID == step.ID && !a.Completed
				})).Return(false, errDB).Once()
			},
		},
		{
			name: "異常系: セッション作成のDBエラー",
			setupMock: func(m *repoMocks) {
				topicID, contentID, stepID := uuid.New(), uuid.New(), uuid.New()
				progress := &model.UserLearningProgress{ID: uuid.New(), UserID: userID, GroupID: groupID,
					CurrentTopicID: &topicID, CurrentContentID: &contentID, CurrentStepID: &stepID}
				m.content.On("FindGroupByID", ctx, mock.AnythingOfType("*gorm.DB"), groupID).Return(group, nil).Once()
				m.progress.On("FindByUserAndGroup", ctx, mock.AnythingOfType("*gorm.DB"), userID, groupID).Return(progress, nil).Once()
				m.session.On("GetOrCreate", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.DailyLearningSession"), mock.AnythingOfType("time.Time")).
					Return(nil, errDB).Once()
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newMockedService(t, time.Now())
			tt.setupMock(m)

			_, err := svc.SelectGroup(ctx, userID, groupID)
			requireAppError(t, err, model.CodeInternal, model.ErrInternalServer)
			assert.NotErrorIs(t, err, model.ErrNotFound)
		})
	}
}

func Test_overallPercentage(t *testing.T) {
	tests := []struct {
		name      string
		before    int64
		total     int64
		completed bool
		want      float64
	}{
		{name: "Step が無いグループ", before: 0, total: 0, completed: false, want: 0},
		{name: "Step が無いグループは完了でも 0", before: 0, total: 0, completed: true, want: 0},
		{name: "開始直後", before: 0, total: 8, want: 0},
		{name: "途中", before: 3, total: 8, want: 37.5},
		{name: "完了", before: 0, total: 8, completed: true, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, overallPercentage(tt.before, tt.total, tt.completed), 1e-9)
		})
	}
}

func Test_todayPercentage(t *testing.T) {
	assert.InDelta(t, 0.0, todayPercentage(3, 0), 1e-9)
	assert.InDelta(t, 50.0, todayPercentage(2, 4), 1e-9)
}
