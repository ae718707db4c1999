// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"go_health_learning/internal/config"
	"go_health_learning/internal/handlers"
	"go_health_learning/internal/repository"
	"go_health_learning/internal/service"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	configDir := os.Getenv("APP_CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(config.Cfg.Log.Level, os.Getenv("APP_ENV"))
	slog.SetDefault(logger)
	slog.Info("Application starting...", slog.String("app", config.AppName), slog.String("version", config.AppVersion))

	db, err := repository.NewDB(config.Cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	if config.Cfg.Database.AutoMigrate {
		if err := repository.AutoMigrate(db); err != nil {
			slog.Error("Error running auto migration", slog.Any("error", err))
			os.Exit(1)
		}
		slog.Info("Database schema migrated")
	}

	loc, err := config.Cfg.Location()
	if err != nil {
		slog.Error("Invalid learning timezone", slog.Any("error", err))
		os.Exit(1)
	}

	// Dependency Injection
	contentRepo := repository.NewGormContentRepository()
	progressRepo := repository.NewGormProgressRepository()
	sessionRepo := repository.NewGormSessionRepository()
	interestRepo := repository.NewGormInterestGroupRepository()

	calendar := service.NewSessionCalendar(loc, nil)
	dailyLearningService := service.NewDailyLearningService(db, contentRepo, progressRepo, sessionRepo, interestRepo, calendar)
	interestGroupService := service.NewInterestGroupService(db, contentRepo, interestRepo)
	contentService := service.NewContentService(db, contentRepo)

	router := handlers.NewRouter(handlers.RouterDeps{
		Config:        &config.Cfg,
		Logger:        logger,
		DB:            db,
		DailyLearning: handlers.NewDailyLearningHandler(dailyLearningService),
		InterestGroup: handlers.NewInterestGroupHandler(interestGroupService),
		Content:       handlers.NewContentHandler(contentService),
	})

	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 65 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}

// newLogger は log.level と APP_ENV に応じて slog ロガーを作ります。
// dev では tint、それ以外は JSON。
func newLogger(level, appEnv string) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
	}
	return slog.New(handler)
}
