package cmd

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"notecal/internal/config"
	"notecal/internal/http"
	"notecal/internal/service"
	"notecal/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Index the vault and serve the calendar API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	configureLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, store, db, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	calendarService := service.NewCalendarService(store, pipeline, cfg.WeekStart)

	deps := &http.Deps{
		CalendarService: calendarService,
		DB:              db,
		Store:           store,
	}
	router := http.NewRouter(deps)

	watcher, err := watch.NewWatcher(cfg.VaultPath)
	if err != nil {
		return err
	}

	// Initial scan in background so the API comes up immediately. The
	// watcher starts only once the scan is done so every change lands on
	// an index that already holds the full vault.
	go func() {
		slog.Info("Starting background indexing of vault")
		if _, err := pipeline.IndexAll(ctx); err != nil {
			slog.Error("Indexing completed with errors", "error", err)
		} else {
			slog.Info("Indexing completed successfully")
		}
		if ctx.Err() != nil {
			return
		}
		if err := watcher.Start(); err != nil {
			slog.Error("Failed to start vault watcher", "error", err)
			return
		}
		go func() {
			<-ctx.Done()
			watcher.Stop()
		}()
		applyChanges(ctx, pipeline, watcher)
	}()

	server := &nethttp.Server{Addr: ":" + cfg.APIPort, Handler: router}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("Starting API server", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != nethttp.ErrServerClosed {
		return err
	}
	return nil
}

// applyChanges feeds watcher events into the indexing pipeline.
func applyChanges(ctx context.Context, pipeline documentIndexer, watcher *watch.Watcher) {
	for change := range watcher.Changes {
		var err error
		switch change.Kind {
		case watch.ChangeRemoved:
			err = pipeline.RemoveDocument(ctx, change.RelPath)
		default:
			err = pipeline.IndexDocument(ctx, change.RelPath)
		}
		if err != nil {
			slog.Error("Failed to apply vault change", "rel_path", change.RelPath, "error", err)
		}
	}
}

// documentIndexer is the slice of the indexing pipeline the watcher loop needs.
type documentIndexer interface {
	IndexDocument(ctx context.Context, relPath string) error
	RemoveDocument(ctx context.Context, relPath string) error
}
