package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Lari-oliv/olive-beauty/config"
	"github.com/Lari-oliv/olive-beauty/database"
	"github.com/Lari-oliv/olive-beauty/logger"
)

// loadEnvironment reads config, sets up the global logger and connects to
// Postgres. Callers close the returned database.
func loadEnvironment(ctx context.Context) (*config.Config, *database.Postgres, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	env := cfg.Env
	if verbose {
		env = "development"
	}
	logger.Initialize(env)

	db, err := database.ConnectPostgres(ctx, cfg, logger.Log)
	if err != nil {
		logger.Log.Error("Database connection failed", zap.Error(err))
		return nil, nil, err
	}
	return cfg, db, nil
}
