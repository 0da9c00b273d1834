// Command seed provisions the database schema and the fixed category list.
// Running it repeatedly is harmless; existing rows are left untouched.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"focusflow/config"
	"focusflow/internal/domain/entity"
	logs "focusflow/internal/infra/log"
	"focusflow/internal/infra/persistence/model"
	"focusflow/internal/infra/persistence/postgres"

	pgLib "github.com/slighter12/go-lib/database/postgres"
)

const seedTimeout = 30 * time.Second

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("Failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		slog.Error("Failed to create logger", slog.Any("error", err))
		os.Exit(1)
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		logger.Error("Failed to connect to PostgreSQL", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	if err := db.WithContext(ctx).AutoMigrate(
		&model.UserModel{},
		&model.SessionModel{},
		&model.CategoryModel{},
		&model.TaskModel{},
	); err != nil {
		logger.Error("Failed to migrate schema", slog.Any("error", err))
		os.Exit(1)
	}

	if err := postgres.NewCategoryRepository(db).Seed(ctx, entity.DefaultCategoryNames); err != nil {
		logger.Error("Failed to seed categories", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("Seed complete", slog.Int("categories", len(entity.DefaultCategoryNames)))
}
