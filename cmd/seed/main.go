// cmd/seed/main.go
// カリキュラム YAML を読み込み、学習コンテンツツリーとして登録します。
//
//	go run ./cmd/seed -file configs/curriculum.sample.yaml
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"go_health_learning/internal/config"
	"go_health_learning/internal/curriculum"
	"go_health_learning/internal/repository"

	"github.com/lmittmann/tint"
)

func main() {
	file := flag.String("file", "configs/curriculum.sample.yaml", "curriculum YAML file")
	configDir := flag.String("config", "configs", "config directory")
	dryRun := flag.Bool("dry-run", false, "validate only")
	flag.Parse()

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo, TimeFormat: time.RFC3339}))
	slog.SetDefault(logger)

	f, err := os.Open(*file)
	if err != nil {
		logger.Error("Failed to open curriculum file", slog.String("file", *file), slog.Any("error", err))
		os.Exit(1)
	}
	defer f.Close()

	cur, err := curriculum.Parse(f)
	if err != nil {
		logger.Error("Invalid curriculum file", slog.String("file", *file), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("Curriculum validated", slog.Int("groups", len(cur.Groups)))
	if *dryRun {
		return
	}

	if err := config.LoadConfig(*configDir); err != nil {
		logger.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}
	db, err := repository.NewDB(config.Cfg.Database, logger)
	if err != nil {
		logger.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := repository.AutoMigrate(db); err != nil {
		logger.Error("Error running auto migration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	ids, err := curriculum.Import(ctx, db, cur)
	if err != nil {
		logger.Error("Failed to import curriculum", slog.Any("error", err))
		os.Exit(1)
	}
	for _, id := range ids {
		logger.Info("Imported group", slog.String("group_id", id.String()))
	}
}
