// internal/service/progression.go
package service

import (
	"context"
	"time"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// treePointer はツリー上の1つの Step とその祖先
type treePointer struct {
	topic   *model.Topic
	content *model.Content
	step    *model.Step
}

func (p *treePointer) position() model.TreePosition {
	return model.TreePosition{
		TopicID:      p.topic.ID,
		TopicOrder:   p.topic.SortOrder,
		ContentID:    p.content.ID,
		ContentOrder: p.content.SortOrder,
		StepOrder:    p.step.SortOrder,
	}
}

// stepTransition は completeStep 1回分の遷移結果。next が nil なら学習完了。
type stepTransition struct {
	next      *treePointer
	increment model.SessionIncrement
}

func (t *stepTransition) completed() bool {
	return t.next == nil
}

func (t *stepTransition) advance(at time.Time) model.ProgressAdvance {
	if t.completed() {
		return model.ProgressAdvance{Completed: true, CompletedAt: &at}
	}
	return model.ProgressAdvance{
		TopicID:   &t.next.topic.ID,
		ContentID: &t.next.content.ID,
		StepID:    &t.next.step.ID,
	}
}

// firstPointer はグループの最初の Topic → Content → Step を返します。どこかが空なら nil。
func (s *dailyLearningService) firstPointer(ctx context.Context, db *gorm.DB, groupID uuid.UUID) (*treePointer, error) {
	topic, err := s.contentRepo.FirstTopic(ctx, db, groupID)
	if err != nil || topic == nil {
		return nil, err
	}
	return s.firstPointerInTopic(ctx, db, topic)
}

// seedMissingStart は現在位置が無い未完了の進捗に、グループの最初の Step を設定します。
// グループがまだ空なら progress をそのまま返す。
func (s *dailyLearningService) seedMissingStart(ctx context.Context, progress *model.UserLearningProgress) (*model.UserLearningProgress, error) {
	if progress.IsCompleted || progress.HasPointer() {
		return progress, nil
	}
	first, err := s.firstPointer(ctx, s.db, progress.GroupID)
	if err != nil || first == nil {
		return progress, err
	}
	start := (&stepTransition{next: first}).advance(time.Time{})
	seeded, err := s.progressRepo.SeedStart(ctx, s.db, progress.ID, start)
	if err != nil {
		return nil, err
	}
	middleware.GetLogger(ctx).Info("Seeded start position of learning progress",
		"progress_id", progress.ID, "step_id", first.step.ID, "seeded", seeded)
	// 同時リクエストが先に設定した場合も含めて読み直す
	return s.progressRepo.FindByUserAndGroup(ctx, s.db, progress.UserID, progress.GroupID)
}

// firstPointerInTopic は topic の最初の Content の最初の Step を返します。
// 最初の Content が空の場合は後ろの Content を探さない。
func (s *dailyLearningService) firstPointerInTopic(ctx context.Context, db *gorm.DB, topic *model.Topic) (*treePointer, error) {
	content, err := s.contentRepo.FirstContent(ctx, db, topic.ID)
	if err != nil || content == nil {
		return nil, err
	}
	step, err := s.contentRepo.FirstStep(ctx, db, content.ID)
	if err != nil || step == nil {
		return nil, err
	}
	return &treePointer{topic: topic, content: content, step: step}, nil
}

// resolveTransition は current を完了した後の位置を決めます。
//
//  1. 同じ Content の次の Step
//  2. 同じ Topic の次の Content の最初の Step (空の Content は1つだけ飛ばす)
//  3. 次の Topic の最初の Step (空の Topic は1つだけ飛ばす)
//  4. どれも無ければ学習完了
//
// 飛ばした先も空だった場合は errNextStepUnresolved。
func (s *dailyLearningService) resolveTransition(ctx context.Context, tx *gorm.DB, current *treePointer) (*stepTransition, error) {
	nextStep, err := s.contentRepo.NextStep(ctx, tx, current.step)
	if err != nil {
		return nil, err
	}
	if nextStep != nil {
		return &stepTransition{
			next:      &treePointer{topic: current.topic, content: current.content, step: nextStep},
			increment: model.SessionIncrement{Steps: 1},
		}, nil
	}

	nextContent, err := s.contentRepo.NextContent(ctx, tx, current.content)
	if err != nil {
		return nil, err
	}
	if nextContent != nil {
		candidate := nextContent
		for skipped := 0; candidate != nil && skipped <= 1; skipped++ {
			step, err := s.contentRepo.FirstStep(ctx, tx, candidate.ID)
			if err != nil {
				return nil, err
			}
			if step != nil {
				return &stepTransition{
					next:      &treePointer{topic: current.topic, content: candidate, step: step},
					increment: model.SessionIncrement{Contents: 1, Steps: 1},
				}, nil
			}
			if skipped == 1 {
				return nil, errNextStepUnresolved
			}
			if candidate, err = s.contentRepo.NextContent(ctx, tx, candidate); err != nil {
				return nil, err
			}
		}
		// 空の Content がトピックの最後だった場合はトピック単位の遷移へ
	}

	nextTopic, err := s.contentRepo.NextTopic(ctx, tx, current.topic)
	if err != nil {
		return nil, err
	}
	for skipped := 0; nextTopic != nil; skipped++ {
		pointer, err := s.firstPointerInTopic(ctx, tx, nextTopic)
		if err != nil {
			return nil, err
		}
		if pointer != nil {
			return &stepTransition{next: pointer, increment: model.SessionIncrement{Topics: 1, Steps: 1}}, nil
		}
		if skipped == 1 {
			return nil, errNextStepUnresolved
		}
		if nextTopic, err = s.contentRepo.NextTopic(ctx, tx, nextTopic); err != nil {
			return nil, err
		}
	}

	// 残りのトピックが無い (または空のトピックしか無い) ので学習完了
	return &stepTransition{increment: model.SessionIncrement{Topics: 1, Steps: 1}}, nil
}
