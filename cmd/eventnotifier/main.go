package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"event-notifier/internal/config"
	"event-notifier/internal/dataset"
	"event-notifier/internal/logging"
	"event-notifier/internal/notify"
	"event-notifier/internal/repository"
	"event-notifier/internal/service"
	"event-notifier/internal/web"
)

func main() {
	// A missing .env file is not an error; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"database", cfg.Database.Path,
		"data_dir", cfg.Import.DataDir,
		"digest_enabled", cfg.Digest.Enabled(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	categoryRepo := repository.NewCategoryRepository(db)
	eventRepo := repository.NewEventRepository(db)
	metaRepo := repository.NewMetaRepository(db)

	importSvc := service.NewImportService(db)
	bootstrapSvc := service.NewBootstrapService(db, categoryRepo, metaRepo, importSvc, dataset.Catalog(), cfg.Import.DataDir)
	categorySvc := service.NewCategoryService(categoryRepo)
	eventSvc := service.NewEventService(eventRepo, categoryRepo)

	// The store must be seeded and imported before the first request.
	if err := bootstrapSvc.Run(ctx); err != nil {
		slog.Error("bootstrap failed", "error", err)
		os.Exit(1)
	}

	server, err := web.NewServer(cfg.Server, eventSvc, categorySvc)
	if err != nil {
		slog.Error("failed to build server", "error", err)
		os.Exit(1)
	}

	if cfg.Digest.Enabled() {
		var sender service.Sender
		if cfg.Telegram.Enabled() {
			notifier, err := notify.NewTelegram(cfg.Telegram.Token, cfg.Telegram.ChatID)
			if err != nil {
				slog.Error("failed to create telegram notifier", "error", err)
				os.Exit(1)
			}
			sender = notifier
		} else {
			slog.Info("telegram not configured, digests will be written to the log")
			sender = notify.NewLog()
		}
		digestSvc := service.NewDigestService(eventRepo, categoryRepo, sender, cfg.Digest.WindowDays)

		scheduler := service.NewSchedulerService(time.Local)
		if err := scheduler.ScheduleDaily(cfg.Digest.Time, func() {
			jobCtx, cancel := context.WithTimeout(context.Background(), cfg.Digest.Timeout)
			defer cancel()
			if err := digestSvc.Deliver(jobCtx, time.Now()); err != nil && !errors.Is(err, context.Canceled) {
				slog.Error("digest delivery failed", "error", err)
			}
		}); err != nil {
			slog.Error("failed to schedule digest", "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
		slog.Info("daily digest scheduled",
			"time", cfg.Digest.Time,
			"next_run", scheduler.NextRun().Format(time.RFC3339),
			"window_days", cfg.Digest.WindowDays,
		)
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		slog.Info("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}

	slog.Info("shutdown complete")
}
