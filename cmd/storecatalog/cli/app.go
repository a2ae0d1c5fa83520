package cli

import (
	"context"
	"fmt"

	"github.com/suteetoe/storecatalog/internal/model"
	"github.com/suteetoe/storecatalog/pkg/config"
	"github.com/suteetoe/storecatalog/pkg/database"
	"github.com/suteetoe/storecatalog/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app holds what every subcommand needs
type app struct {
	cfg *config.Config
	log *zap.Logger
	db  *gorm.DB
}

// bootstrap loads configuration, builds the logger and opens the migrated database
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(&logger.LogConfig{
		Level:       cfg.Log.Level,
		Environment: cfg.Server.Env,
		ServiceName: cfg.ServiceName,
		File:        cfg.Log.File,
		MaxSizeMB:   cfg.Log.MaxSizeMB,
		MaxBackups:  cfg.Log.MaxBackups,
		MaxAgeDays:  cfg.Log.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded", cfg.LogConfig()...)

	db, err := database.Open(&cfg.DB)
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	if err := database.MigrateModels(ctx, db, model.All()...); err != nil {
		_ = database.Close(db)
		_ = log.Sync()
		return nil, err
	}
	log.Info("Database ready", zap.String("driver", cfg.DB.Driver))

	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if err := database.Close(a.db); err != nil {
		a.log.Warn("Failed to close database", zap.Error(err))
	}
	_ = a.log.Sync()
}
