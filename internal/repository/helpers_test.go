// internal/repository/helpers_test.go
package repository

import (
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"go_health_learning/internal/config"
	"go_health_learning/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// setupTestDB はテストごとに独立したインメモリ SQLite を用意します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}, testLogger)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func createGroup(t *testing.T, db *gorm.DB, name string) *model.LearningContentGroup {
	t.Helper()
	g := &model.LearningContentGroup{ID: uuid.New(), Name: name}
	require.NoError(t, db.Create(g).Error)
	return g
}

func createTopic(t *testing.T, db *gorm.DB, groupID uuid.UUID, order int) *model.Topic {
	t.Helper()
	topic := &model.Topic{ID: uuid.New(), GroupID: groupID, Title: fmt.Sprintf("topic-%d", order), SortOrder: order}
	require.NoError(t, db.Create(topic).Error)
	return topic
}

func createContent(t *testing.T, db *gorm.DB, topicID uuid.UUID, order int) *model.Content {
	t.Helper()
	content := &model.Content{ID: uuid.New(), TopicID: topicID, Title: fmt.Sprintf("content-%d", order), SortOrder: order}
	require.NoError(t, db.Create(content).Error)
	return content
}

func createStep(t *testing.T, db *gorm.DB, contentID uuid.UUID, order int) *model.Step {
	t.Helper()
	step := &model.Step{ID: uuid.New(), ContentID: contentID, PageTitle: fmt.Sprintf("step-%d", order), SortOrder: order}
	require.NoError(t, db.Create(step).Error)
	return step
}

var jst = time.FixedZone("JST", 9*60*60)
