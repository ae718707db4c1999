// internal/repository/db.go
package repository

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"go_health_learning/internal/config"
	"go_health_learning/internal/model"

	slogGorm "github.com/orandin/slog-gorm" // slogGormはエイリアス
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB は設定されたドライバで GORM の接続を作成します。
func NewDB(cfg config.DatabaseConfig, appLogger *slog.Logger) (*gorm.DB, error) {
	// === slog を利用する GORM Logger の設定 ===
	gormLogLevel := gormlogger.Warn
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		gormLogLevel = gormlogger.Info
	}

	slogGormLogger := slogGorm.New(
		slogGorm.WithHandler(appLogger.Handler()),
		slogGorm.WithTraceAll(),
		slogGorm.WithSlowThreshold(500*time.Millisecond),
	)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.URL)
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: slogGormLogger.LogMode(gormLogLevel),
		// ユニーク制約違反を gorm.ErrDuplicatedKey に変換させる
		TranslateError: true,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database with GORM", slog.Any("error", err))
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		appLogger.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		return nil, err
	}

	if err = sqlDB.Ping(); err != nil {
		appLogger.Error("Error pinging database", slog.Any("error", err))
		sqlDB.Close()
		return nil, err
	}

	if cfg.Driver == config.DriverSQLite {
		// SQLite は書き込みが直列なので接続を1本にする
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	appLogger.Info("Database connection established with GORM", slog.String("driver", cfg.Driver))
	return db, nil
}

// AutoMigrate はアプリケーションが使う全テーブルを作成・更新します。
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.LearningContentGroup{},
		&model.Topic{},
		&model.Content{},
		&model.Step{},
		&model.ContentItem{},
		&model.UserLearningProgress{},
		&model.DailyLearningSession{},
		&model.UserInterestGroup{},
	)
}
