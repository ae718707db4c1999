// internal/service/learning_query.go
package service

import (
	"context"
	"errors"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// learningView は現在ビュー・サマリーが共通で使う組み立て結果
type learningView struct {
	group    *model.LearningContentGroup
	progress *model.UserLearningProgress
	session  *model.DailyLearningSession
	pointer  *treePointer // 完了済み・ツリーが空・ノード削除済みなら nil
	totals   model.TreeCounts
	before   model.TreeCounts
}

// GetCurrentLearningContent は現在学習中の Step と進捗率を返します。
// groupID が nil の場合はユーザーの関心グループを使う。
func (s *dailyLearningService) GetCurrentLearningContent(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) (*model.CurrentLearningContentResponse, error) {
	logger := middleware.GetLogger(ctx)

	targetGroupID, err := s.resolveTargetGroup(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	view, err := s.buildView(ctx, userID, targetGroupID)
	if err != nil {
		return nil, err
	}

	resp := &model.CurrentLearningContentResponse{
		Progress:                model.NewProgressResponse(view.progress),
		CurrentSession:          model.NewSessionResponse(view.session),
		ProgressPercentage:      overallPercentage(view.before.Steps, view.totals.Steps, view.progress.IsCompleted),
		TodayProgressPercentage: todayPercentage(view.session.StepsCompleted, view.totals.Steps),
	}
	if view.pointer == nil {
		return resp, nil
	}

	resp.CurrentTopic = view.pointer.topic
	resp.CurrentContent = view.pointer.content

	currentStep, err := s.stepResponse(ctx, view.pointer.step.ID)
	if err != nil {
		return nil, err
	}
	resp.CurrentStep = currentStep

	// プレビューは同じ Content 内の次の Step のみ
	next, err := s.contentRepo.NextStep(ctx, s.db, view.pointer.step)
	if err != nil {
		logger.Error("Failed to find next step for preview", "error", err)
		return nil, internalError("次の学習ステップの取得に失敗しました。", err)
	}
	if next != nil {
		if resp.NextStep, err = s.stepResponse(ctx, next.ID); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// GetDailyLearningSummary は関心グループについて全体と今日の学習状況をまとめます。
func (s *dailyLearningService) GetDailyLearningSummary(ctx context.Context, userID uuid.UUID) (*model.DailyLearningSummaryResponse, error) {
	groupID, err := s.resolveTargetGroup(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	view, err := s.buildView(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}

	completed := view.before
	if view.progress.IsCompleted {
		completed = view.totals
	}

	return &model.DailyLearningSummaryResponse{
		SelectedGroup:             view.group,
		CurrentProgress:           model.NewProgressResponse(view.progress),
		TodaySession:              model.NewSessionResponse(view.session),
		TotalTopics:               view.totals.Topics,
		TotalContents:             view.totals.Contents,
		TotalSteps:                view.totals.Steps,
		TopicsCompleted:           completed.Topics,
		ContentsCompleted:         completed.Contents,
		StepsCompleted:            completed.Steps,
		TodayTopicsCompleted:      view.session.TopicsCompleted,
		TodayContentsCompleted:    view.session.ContentsCompleted,
		TodayStepsCompleted:       view.session.StepsCompleted,
		OverallProgressPercentage: overallPercentage(completed.Steps, view.totals.Steps, view.progress.IsCompleted),
		TodayProgressPercentage:   todayPercentage(view.session.StepsCompleted, view.totals.Steps),
	}, nil
}

func (s *dailyLearningService) resolveTargetGroup(ctx context.Context, userID uuid.UUID, groupID *uuid.UUID) (uuid.UUID, error) {
	if groupID != nil {
		return *groupID, nil
	}
	interest, err := s.interestRepo.FindByUser(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return uuid.Nil, interestGroupNotSelected()
		}
		return uuid.Nil, internalError("関心グループの取得に失敗しました。", err)
	}
	return interest.GroupID, nil
}

// buildView は進捗とセッションを用意し (無ければ作成)、ツリーの件数を集計します。
func (s *dailyLearningService) buildView(ctx context.Context, userID, groupID uuid.UUID) (*learningView, error) {
	logger := middleware.GetLogger(ctx).With("group_id", groupID)

	group, err := s.findGroup(ctx, s.db, groupID)
	if err != nil {
		return nil, err
	}
	progress, err := s.ensureProgress(ctx, userID, groupID)
	if err != nil {
		return nil, err
	}
	session, err := s.ensureTodaySession(ctx, s.db, progress)
	if err != nil {
		return nil, err
	}

	view := &learningView{group: group, progress: progress, session: session}
	var pos *model.TreePosition
	if !progress.IsCompleted && progress.HasPointer() {
		if view.pointer, err = s.loadPointer(ctx, progress); err != nil {
			logger.Error("Failed to load current position", "error", err)
			return nil, internalError("現在の学習位置の取得に失敗しました。", err)
		}
		if view.pointer != nil {
			p := view.pointer.position()
			pos = &p
		} else {
			// 現在のノードが論理削除されていても、保存時の並び順で前方のノード数を数える
			pos, err = s.contentRepo.FindStoredPosition(ctx, s.db, *progress.CurrentTopicID, *progress.CurrentContentID, *progress.CurrentStepID)
			if err = ignoreNotFound(err); err != nil {
				logger.Error("Failed to load stored position", "error", err)
				return nil, internalError("現在の学習位置の取得に失敗しました。", err)
			}
		}
	}

	// 件数は互いに独立しているので並行に数える
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.totals.Topics, err = s.contentRepo.CountTopics(gctx, s.db, groupID)
		return err
	})
	g.Go(func() (err error) {
		view.totals.Contents, err = s.contentRepo.CountContents(gctx, s.db, groupID)
		return err
	})
	g.Go(func() (err error) {
		view.totals.Steps, err = s.contentRepo.CountSteps(gctx, s.db, groupID)
		return err
	})
	if pos != nil {
		g.Go(func() error {
			before, err := s.contentRepo.CountBefore(gctx, s.db, groupID, *pos)
			if err != nil {
				return err
			}
			view.before = *before
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Error("Failed to count content tree", "error", err)
		return nil, internalError("学習コンテンツの集計に失敗しました。", err)
	}
	return view, nil
}

// ensureProgress は進捗を取得し、無ければグループの最初の Step で作成します。
// ツリーが空でも現在位置なしで作成し、後からコンテンツが追加されたら開始位置を設定する。
func (s *dailyLearningService) ensureProgress(ctx context.Context, userID, groupID uuid.UUID) (*model.UserLearningProgress, error) {
	progress, err := s.progressRepo.FindByUserAndGroup(ctx, s.db, userID, groupID)
	if err == nil {
		if progress, err = s.seedMissingStart(ctx, progress); err != nil {
			return nil, internalError("学習進捗の更新に失敗しました。", err)
		}
		return progress, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return nil, internalError("学習進捗の取得に失敗しました。", err)
	}

	first, err := s.firstPointer(ctx, s.db, groupID)
	if err != nil {
		return nil, internalError("学習コンテンツの取得に失敗しました。", err)
	}
	progress, _, err = s.progressRepo.FindOrCreate(ctx, s.db, newProgress(userID, groupID, first))
	if err != nil {
		return nil, internalError("学習進捗の作成に失敗しました。", err)
	}
	return progress, nil
}

// loadPointer は進捗の現在位置を読み込みます。ノードが論理削除されていれば nil。
func (s *dailyLearningService) loadPointer(ctx context.Context, progress *model.UserLearningProgress) (*treePointer, error) {
	topic, err := s.contentRepo.FindTopicByID(ctx, s.db, *progress.CurrentTopicID)
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	content, err := s.contentRepo.FindContentByID(ctx, s.db, *progress.CurrentContentID)
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	step, err := s.contentRepo.FindStepByID(ctx, s.db, *progress.CurrentStepID)
	if err != nil {
		return nil, ignoreNotFound(err)
	}
	return &treePointer{topic: topic, content: content, step: step}, nil
}

func (s *dailyLearningService) stepResponse(ctx context.Context, stepID uuid.UUID) (*model.StepResponse, error) {
	step, err := s.contentRepo.FindStepWithItems(ctx, s.db, stepID)
	if err != nil {
		return nil, internalError("学習ステップの取得に失敗しました。", err)
	}
	resp, err := model.NewStepResponse(step)
	if err != nil {
		middleware.GetLogger(ctx).Error("Stored content item payload is invalid", "step_id", stepID, "error", err)
		return nil, internalError("学習ステップの内容が不正です。", err)
	}
	return resp, nil
}

// overallPercentage は全体の進捗率。Step が無いグループは 0、完了済みは 100。
func overallPercentage(before, total int64, completed bool) float64 {
	switch {
	case total == 0:
		return 0
	case completed:
		return 100
	default:
		return float64(before) / float64(total) * 100
	}
}

// todayPercentage は今日完了した Step 数のグループ全体に対する割合。
func todayPercentage(stepsToday int, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(stepsToday) / float64(total) * 100
}

func ignoreNotFound(err error) error {
	if errors.Is(err, model.ErrNotFound) {
		return nil
	}
	return err
}

func interestGroupNotSelected() error {
	return model.NewAppError(model.CodeInterestGroupNotSelected, "学習グループが選択されていません。先にグループを選択してください。", "", model.ErrNotFound)
}
