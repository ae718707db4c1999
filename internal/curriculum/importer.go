// internal/curriculum/importer.go
package curriculum

import (
	"context"
	"fmt"

	"go_health_learning/internal/middleware"
	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Import はカリキュラムを1トランザクションで登録し、作成したグループIDを返します。
// 既存のグループは変更しない (毎回新しいグループとして追加する)。
func Import(ctx context.Context, db *gorm.DB, f *File) ([]uuid.UUID, error) {
	logger := middleware.GetLogger(ctx)
	groupIDs := make([]uuid.UUID, 0, len(f.Groups))

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, g := range f.Groups {
			group := model.LearningContentGroup{ID: uuid.New(), Name: g.Name, Description: g.Description}
			if err := tx.Create(&group).Error; err != nil {
				return fmt.Errorf("create group %q: %w", g.Name, err)
			}
			for _, t := range g.Topics {
				topic := model.Topic{ID: uuid.New(), GroupID: group.ID, Title: t.Title, Description: t.Description, SortOrder: t.Order}
				if err := tx.Create(&topic).Error; err != nil {
					return fmt.Errorf("create topic %q: %w", t.Title, err)
				}
				for _, c := range t.Contents {
					content := model.Content{ID: uuid.New(), TopicID: topic.ID, Title: c.Title, SortOrder: c.Order}
					if err := tx.Create(&content).Error; err != nil {
						return fmt.Errorf("create content %q: %w", c.Title, err)
					}
					for _, s := range c.Steps {
						if err := createStep(tx, content.ID, s); err != nil {
							return err
						}
					}
				}
			}
			groupIDs = append(groupIDs, group.ID)
			logger.Info("Curriculum group imported", "group_id", group.ID, "name", group.Name, "topics", len(g.Topics))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("curriculum: import: %w", err)
	}
	return groupIDs, nil
}

func createStep(tx *gorm.DB, contentID uuid.UUID, s Step) error {
	step := model.Step{ID: uuid.New(), ContentID: contentID, PageTitle: s.PageTitle, SortOrder: s.Order}
	if err := tx.Create(&step).Error; err != nil {
		return fmt.Errorf("create step %q: %w", s.PageTitle, err)
	}
	if len(s.Items) == 0 {
		return nil
	}
	items := make([]model.ContentItem, 0, len(s.Items))
	for _, item := range s.Items {
		payload, err := item.Payload()
		if err != nil {
			return fmt.Errorf("step %q: %w", s.PageTitle, err)
		}
		items = append(items, model.ContentItem{
			ID:        uuid.New(),
			StepID:    step.ID,
			Type:      item.Type,
			SortOrder: item.Order,
			Data:      datatypes.JSON(payload),
		})
	}
	if err := tx.Create(&items).Error; err != nil {
		return fmt.Errorf("create items for step %q: %w", s.PageTitle, err)
	}
	return nil
}
