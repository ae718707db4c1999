// internal/service/helpers_test.go
package service

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"go_health_learning/internal/config"
	"go_health_learning/internal/model"
	"go_health_learning/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	jst        = time.FixedZone("JST", 9*60*60)
)

// setupTestDB はテストごとに独立したインメモリ SQLite を用意します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, testLogger)
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// testTree は buildTree で作ったツリー。steps[t][c][s] のようにインデックスで引く。
type testTree struct {
	group    *model.LearningContentGroup
	topics   []*model.Topic
	contents [][]*model.Content
	steps    [][][]*model.Step
}

func (tr *testTree) step(t, c, s int) *model.Step {
	return tr.steps[t][c][s]
}

// buildTree は shape[topic][content] = Step 数 のツリーを作成します。
// 各 Step には TEXT アイテムを1つ付ける。
func buildTree(t *testing.T, db *gorm.DB, name string, shape [][]int) *testTree {
	t.Helper()
	tr := &testTree{group: &model.LearningContentGroup{ID: uuid.New(), Name: name}}
	require.NoError(t, db.Create(tr.group).Error)

	for ti, contents := range shape {
		topic := &model.Topic{ID: uuid.New(), GroupID: tr.group.ID, Title: fmt.Sprintf("T%d", ti+1), SortOrder: ti + 1}
		require.NoError(t, db.Create(topic).Error)
		tr.topics = append(tr.topics, topic)
		tr.contents = append(tr.contents, nil)
		tr.steps = append(tr.steps, nil)

		for ci, stepCount := range contents {
			content := &model.Content{ID: uuid.New(), TopicID: topic.ID, Title: fmt.Sprintf("T%dC%d", ti+1, ci+1), SortOrder: ci + 1}
			require.NoError(t, db.Create(content).Error)
			tr.contents[ti] = append(tr.contents[ti], content)
			tr.steps[ti] = append(tr.steps[ti], nil)

			for si := 0; si < stepCount; si++ {
				step := &model.Step{ID: uuid.New(), ContentID: content.ID, PageTitle: fmt.Sprintf("T%dC%dS%d", ti+1, ci+1, si+1), SortOrder: si + 1}
				require.NoError(t, db.Create(step).Error)
				item := &model.ContentItem{
					ID:        uuid.New(),
					StepID:    step.ID,
					Type:      model.ContentItemText,
					SortOrder: 1,
					Data:      datatypes.JSON(fmt.Sprintf(`{"text":%q}`, step.PageTitle)),
				}
				require.NoError(t, db.Create(item).Error)
				tr.steps[ti][ci] = append(tr.steps[ti][ci], step)
			}
		}
	}
	return tr
}

// requireAppError はエラーコードとセンチネルを検証します。
func requireAppError(t *testing.T, err error, code string, sentinel error) {
	t.Helper()
	var appErr *model.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Detail.Code)
	require.ErrorIs(t, err, sentinel)
}
