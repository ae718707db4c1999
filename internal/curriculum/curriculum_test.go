// internal/curriculum/curriculum_test.go
package curriculum

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"go_health_learning/internal/config"
	"go_health_learning/internal/model"
	"go_health_learning/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
groups:
  - name: 減塩
    topics:
      - title: 塩分
        order: 1
        contents:
          - title: 1日の目安
            order: 1
            steps:
              - pageTitle: 目標
                order: 1
                items:
                  - type: TEXT
                    order: 1
                    data:
                      text: 6g未満
`

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
	}{
		{name: "正常系", yaml: minimalYAML},
		{name: "異常系: グループが無い", yaml: "groups: []\n", wantErr: true},
		{name: "異常系: 未知のキー", yaml: strings.Replace(minimalYAML, "    topics:", "    color: red\n    topics:", 1), wantErr: true},
		{name: "異常系: order の重複", yaml: strings.Replace(minimalYAML, "      - title: 塩分\n        order: 1\n", "      - title: 塩分\n        order: 1\n        contents: []\n      - title: 重複\n        order: 1\n", 1), wantErr: true},
		{name: "異常系: アイテムのペイロードが型と合わない", yaml: strings.Replace(minimalYAML, "text: 6g未満", "imageUrl: https://example.com/a.png", 1), wantErr: true},
		{name: "異常系: 不正なURL", yaml: strings.Replace(strings.Replace(minimalYAML, "type: TEXT", "type: IMAGE", 1), "text: 6g未満", "imageUrl: not-a-url", 1), wantErr: true},
		{name: "異常系: 未知のアイテムタイプ", yaml: strings.Replace(minimalYAML, "type: TEXT", "type: VIDEO", 1), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(tt.yaml))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, f.Groups, 1)
			assert.Equal(t, "減塩", f.Groups[0].Name)
		})
	}
}

func TestImport_SampleCurriculum(t *testing.T) {
	ctx := context.Background()
	db, err := repository.NewDB(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	file, err := os.Open("../../configs/curriculum.sample.yaml")
	require.NoError(t, err)
	defer file.Close()

	f, err := Parse(file)
	require.NoError(t, err)

	groupIDs, err := Import(ctx, db, f)
	require.NoError(t, err)
	require.Len(t, groupIDs, len(f.Groups))

	repo := repository.NewGormContentRepository()
	for i, groupID := range groupIDs {
		var wantSteps int64
		for _, topic := range f.Groups[i].Topics {
			for _, content := range topic.Contents {
				wantSteps += int64(len(content.Steps))
			}
		}
		steps, err := repo.CountSteps(ctx, db, groupID)
		require.NoError(t, err)
		assert.Equal(t, wantSteps, steps)

		topics, err := repo.CountTopics(ctx, db, groupID)
		require.NoError(t, err)
		assert.Equal(t, int64(len(f.Groups[i].Topics)), topics)
	}

	// 保存されたアイテムはタイプ付きで読み戻せる
	first, err := repo.FirstTopic(ctx, db, groupIDs[0])
	require.NoError(t, err)
	content, err := repo.FirstContent(ctx, db, first.ID)
	require.NoError(t, err)
	step, err := repo.FirstStep(ctx, db, content.ID)
	require.NoError(t, err)
	withItems, err := repo.FindStepWithItems(ctx, db, step.ID)
	require.NoError(t, err)
	resp, err := model.NewStepResponse(withItems)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ContentItems)
}
