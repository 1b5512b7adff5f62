package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"notecal/internal/caldate"
	"notecal/internal/config"
	"notecal/internal/index"
	"notecal/internal/indexer"
	"notecal/internal/storage"
	"notecal/internal/vault"
)

// configureLogging installs the default slog logger per the loaded config.
func configureLogging(cfg *config.Config) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// buildPipeline wires the storage, vault, and indexing layers from config.
// The caller owns closing the returned database handle.
func buildPipeline(ctx context.Context, cfg *config.Config) (*indexer.Pipeline, *index.Store, *sql.DB, error) {
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := storage.Migrate(db); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	vaultManager, err := vault.NewManager(ctx, storage.NewVaultRepo(db), cfg.VaultPath)
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("failed to initialize vault manager: %w", err)
	}
	slog.Info("Vault manager initialized", "path", cfg.VaultPath)

	store := index.NewStore()
	pipeline := indexer.NewPipeline(
		vaultManager,
		storage.NewDocumentRepo(db),
		store,
		cfg.ExtractConfig(),
		cfg.AnniversaryFields,
		caldate.SystemClock{},
	)

	return pipeline, store, db, nil
}
