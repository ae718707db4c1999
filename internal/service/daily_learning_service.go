//go:generate mockery --name DailyLearningService --output ./mocks --outpkg mocks --case=underscore
// internal/service/daily_learning_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"
	"go_health_learning/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// errNextStepUnresolved は空のコンテナを飛ばしても次の Step が見つからない場合
var errNextStepUnresolved = errors.New("next step could not be resolved")

// DailyLearningService は日次学習の進捗・セッション・集計ビューを扱います。
type DailyLearningService interface {
	SelectGroup(ctx context.Context, userID, groupID uuid.UUID) (*model.UserLearningProgress, error)
	CompleteStep(ctx context.Context, userID, stepID uuid.UUID) (*model.UserLearningProgress, error)
	GetProgress(ctx context.Context, userID, groupID uuid.UUID) (*model.UserLearningProgress, error)
	ListProgress(ctx context.Context, userID uuid.UUID) ([]*model.UserLearningProgress, error)
	GetTodaySession(ctx context.Context, userID, groupID uuid.UUID) (*model.DailyLearningSession, error)
	ListTodaySessions(ctx context.Context, userID uuid.UUID) ([]*model.DailyLearningSession, error)
	GetCurrentLearningContent(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) (*model.CurrentLearningContentResponse, error)
	GetDailyLearningSummary(ctx context.Context, userID uuid.UUID) (*model.DailyLearningSummaryResponse, error)
}

type dailyLearningService struct {
	db           *gorm.DB
	contentRepo  repository.ContentRepository
	progressRepo repository.ProgressRepository
	sessionRepo  repository.SessionRepository
	interestRepo repository.InterestGroupRepository
	calendar     *SessionCalendar
}

func NewDailyLearningService(
	db *gorm.DB,
	contentRepo repository.ContentRepository,
	progressRepo repository.ProgressRepository,
	sessionRepo repository.SessionRepository,
	interestRepo repository.InterestGroupRepository,
	calendar *SessionCalendar,
) DailyLearningService {
	return &dailyLearningService{
		db:           db,
		contentRepo:  contentRepo,
		progressRepo: progressRepo,
		sessionRepo:  sessionRepo,
		interestRepo: interestRepo,
		calendar:     calendar,
	}
}

// SelectGroup はグループの学習を開始 (または再開) します。
// 既存の進捗はそのまま返し、今日のセッションを用意する。
func (s *dailyLearningService) SelectGroup(ctx context.Context, userID, groupID uuid.UUID) (*model.UserLearningProgress, error) {
	logger := middleware.GetLogger(ctx).With("group_id", groupID)

	if _, err := s.findGroup(ctx, s.db, groupID); err != nil {
		return nil, err
	}

	progress, err := s.progressRepo.FindByUserAndGroup(ctx, s.db, userID, groupID)
	switch {
	case err == nil:
		logger.Info("Resuming existing learning progress", "progress_id", progress.ID)
		if progress, err = s.seedMissingStart(ctx, progress); err != nil {
			logger.Error("Failed to seed start position", "error", err)
			return nil, internalError("学習進捗の更新に失敗しました。", err)
		}
		if !progress.IsCompleted && !progress.HasPointer() {
			logger.Warn("Group has no learnable content")
			return nil, noLearnableContent()
		}
	case errors.Is(err, model.ErrNotFound):
		first, err := s.firstPointer(ctx, s.db, groupID)
		if err != nil {
			logger.Error("Failed to resolve first step of group", "error", err)
			return nil, internalError("学習コンテンツの取得に失敗しました。", err)
		}
		if first == nil {
			logger.Warn("Group has no learnable content")
			return nil, noLearnableContent()
		}
		var created bool
		progress, created, err = s.progressRepo.FindOrCreate(ctx, s.db, newProgress(userID, groupID, first))
		if err != nil {
			logger.Error("Failed to create learning progress", "error", err)
			return nil, internalError("学習進捗の作成に失敗しました。", err)
		}
		logger.Info("Learning progress prepared", "progress_id", progress.ID, "created", created)
	default:
		logger.Error("Failed to find learning progress", "error", err)
		return nil, internalError("学習進捗の取得に失敗しました。", err)
	}

	if _, err := s.ensureTodaySession(ctx, s.db, progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// CompleteStep は現在の Step を完了し、次の位置へ進めます。
// 祖先の解決・次位置の決定・進捗とセッションの更新は1トランザクションで行う。
func (s *dailyLearningService) CompleteStep(ctx context.Context, userID, stepID uuid.UUID) (*model.UserLearningProgress, error) {
	logger := middleware.GetLogger(ctx).With("step_id", stepID)

	var updated *model.UserLearningProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.resolveAncestry(ctx, tx, stepID)
		if err != nil {
			return err
		}
		groupID := current.topic.GroupID
		if _, err := s.findGroup(ctx, tx, groupID); err != nil {
			return err
		}

		progress, err := s.progressRepo.FindByUserAndGroup(ctx, tx, userID, groupID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return progressNotFound()
			}
			logger.Error("Failed to find learning progress in transaction", "error", err)
			return internalError("学習進捗の取得に失敗しました。", err)
		}
		if !progress.IsCurrentStep(stepID) {
			logger.Warn("Attempted to complete a step that is not current", "current_step_id", progress.CurrentStepID)
			return notCurrentStep()
		}

		session, err := s.ensureTodaySession(ctx, tx, progress)
		if err != nil {
			return err
		}

		transition, err := s.resolveTransition(ctx, tx, current)
		if err != nil {
			if errors.Is(err, errNextStepUnresolved) {
				logger.Warn("Next step could not be resolved past empty containers", "group_id", groupID)
				return model.NewAppError(model.CodeNextStepUnresolved, "次の学習ステップが見つかりません。管理者にお問い合わせください。", "", model.ErrInvalidState)
			}
			logger.Error("Failed to resolve next step", "error", err)
			return internalError("次の学習ステップの取得に失敗しました。", err)
		}

		now := s.calendar.Now()
		if err := s.progressRepo.AdvanceFrom(ctx, tx, progress.ID, stepID, transition.advance(now)); err != nil {
			if errors.Is(err, model.ErrInvalidState) {
				// 同時リクエストが先に進めた
				logger.Warn("Learning progress advanced concurrently")
				return notCurrentStep()
			}
			logger.Error("Failed to update learning progress", "error", err)
			return internalError("学習進捗の更新に失敗しました。", err)
		}
		if err := s.sessionRepo.Increment(ctx, tx, session.ID, transition.increment, now); err != nil {
			logger.Error("Failed to update daily learning session", "error", err, "session_id", session.ID)
			return internalError("学習セッションの更新に失敗しました。", err)
		}

		updated, err = s.progressRepo.FindByUserAndGroup(ctx, tx, userID, groupID)
		if err != nil {
			return internalError("学習進捗の取得に失敗しました。", err)
		}
		logger.Info("Step completed",
			"group_id", groupID,
			"next_step_id", updated.CurrentStepID,
			"is_completed", updated.IsCompleted,
			"contents_increment", transition.increment.Contents,
			"topics_increment", transition.increment.Topics,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *dailyLearningService) GetProgress(ctx context.Context, userID, groupID uuid.UUID) (*model.UserLearningProgress, error) {
	progress, err := s.progressRepo.FindByUserAndGroup(ctx, s.db, userID, groupID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, progressNotFound()
		}
		return nil, internalError("学習進捗の取得に失敗しました。", err)
	}
	return progress, nil
}

func (s *dailyLearningService) ListProgress(ctx context.Context, userID uuid.UUID) ([]*model.UserLearningProgress, error) {
	progresses, err := s.progressRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, internalError("学習進捗の取得に失敗しました。", err)
	}
	return progresses, nil
}

// GetTodaySession は今日のセッションを返します。進捗が無いグループは 404。
func (s *dailyLearningService) GetTodaySession(ctx context.Context, userID, groupID uuid.UUID) (*model.DailyLearningSession, error) {
	progress, err := s.GetProgress(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	return s.ensureTodaySession(ctx, s.db, progress)
}

func (s *dailyLearningService) ListTodaySessions(ctx context.Context, userID uuid.UUID) ([]*model.DailyLearningSession, error) {
	start, end := s.calendar.Today()
	sessions, err := s.sessionRepo.ListForDay(ctx, s.db, userID, start, end)
	if err != nil {
		return nil, internalError("学習セッションの取得に失敗しました。", err)
	}
	return sessions, nil
}

// ensureTodaySession は今日のセッションを取得し、無ければ作成します。
func (s *dailyLearningService) ensureTodaySession(ctx context.Context, db *gorm.DB, progress *model.UserLearningProgress) (*model.DailyLearningSession, error) {
	start, end := s.calendar.Today()
	session, err := s.sessionRepo.GetOrCreate(ctx, db, &model.DailyLearningSession{
		ID:             uuid.New(),
		UserID:         progress.UserID,
		GroupID:        progress.GroupID,
		UserProgressID: progress.ID,
		SessionDate:    start,
		LastLearningAt: s.calendar.Now(),
	}, end)
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to prepare today's session", "error", err, "group_id", progress.GroupID)
		return nil, internalError("学習セッションの作成に失敗しました。", err)
	}
	return session, nil
}

// resolveAncestry は Step から Content → Topic を辿ります。
// 祖先が論理削除されている Step は存在しないものとして扱う。
func (s *dailyLearningService) resolveAncestry(ctx context.Context, db *gorm.DB, stepID uuid.UUID) (*treePointer, error) {
	step, err := s.contentRepo.FindStepByID(ctx, db, stepID)
	if err != nil {
		return nil, stepLookupError(err)
	}
	content, err := s.contentRepo.FindContentByID(ctx, db, step.ContentID)
	if err != nil {
		return nil, stepLookupError(err)
	}
	topic, err := s.contentRepo.FindTopicByID(ctx, db, content.TopicID)
	if err != nil {
		return nil, stepLookupError(err)
	}
	return &treePointer{topic: topic, content: content, step: step}, nil
}

func (s *dailyLearningService) findGroup(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*model.LearningContentGroup, error) {
	group, err := s.contentRepo.FindGroupByID(ctx, db, groupID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, groupNotFound()
		}
		return nil, internalError("学習コンテンツグループの取得に失敗しました。", err)
	}
	return group, nil
}

func newProgress(userID, groupID uuid.UUID, first *treePointer) *model.UserLearningProgress {
	progress := &model.UserLearningProgress{
		ID:      uuid.New(),
		UserID:  userID,
		GroupID: groupID,
	}
	if first != nil {
		progress.CurrentTopicID = &first.topic.ID
		progress.CurrentContentID = &first.content.ID
		progress.CurrentStepID = &first.step.ID
	}
	return progress
}

func stepLookupError(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return model.NewAppError(model.CodeStepNotFound, "学習ステップが見つかりません。", "stepId", err)
	}
	return internalError("学習ステップの取得に失敗しました。", err)
}

func groupNotFound() error {
	return model.NewAppError(model.CodeGroupNotFound, "学習コンテンツグループが見つかりません。", "learningContentGroupId", model.ErrNotFound)
}

func noLearnableContent() error {
	return model.NewAppError(model.CodeNoLearnableContent, "このグループには学習できるコンテンツがありません。", "", model.ErrInvalidState)
}

func progressNotFound() error {
	return model.NewAppError(model.CodeProgressNotFound, "学習進捗が見つかりません。", "", model.ErrNotFound)
}

func notCurrentStep() error {
	return model.NewAppError(model.CodeNotCurrentStep, "現在学習中のステップではありません。順番に学習してください。", "stepId", model.ErrInvalidState)
}

func internalError(message string, err error) error {
	// 原因のセンチネルで 404 等に化けないよう ErrInternalServer のみをラップする
	return model.NewAppError(model.CodeInternal, message, "", fmt.Errorf("%w: %v", model.ErrInternalServer, err))
}
