package main

import (
	"ConferenceAPI/internal/auth"
	"ConferenceAPI/internal/cache"
	"ConferenceAPI/internal/config"
	"ConferenceAPI/internal/db"
	"ConferenceAPI/internal/filter"
	"ConferenceAPI/internal/handler"
	"ConferenceAPI/internal/logger"
	"ConferenceAPI/internal/router"
	"ConferenceAPI/internal/service"
	"ConferenceAPI/internal/store"
	"ConferenceAPI/internal/tasks"
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const memoryCacheMaxBytes = 8 << 20

func main() {
	debugFlag := flag.Bool("d", false, "enable debug logging")
	flag.Parse()

	cfg := config.LoadConfig()
	if err := logger.Init(cfg.LogDir, cfg.LogStderr); err != nil {
		fmt.Fprintf(os.Stderr, "log init failed: %v\n", err)
		os.Exit(1)
	}
	logger.SetDebug(*debugFlag)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// PostgreSQL
	if err := db.Migrate(cfg.PostgresDSN, cfg.MigrationsDir); err != nil {
		logger.Error("migrate_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	pool, err := db.InitPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Error("postgres_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("postgres_connected", nil)

	// Redis is optional; announcements fall back to process memory.
	var kv cache.Cache
	if rdb, err := db.InitRedis(ctx, cfg.Redis); err != nil {
		logger.Warn("redis_unavailable", map[string]any{"error": err.Error()})
		kv = cache.NewMemory(memoryCacheMaxBytes)
	} else {
		defer rdb.Close()
		kv = cache.NewRedis(rdb, "conference:")
		logger.Info("redis_connected", map[string]any{"addr": cfg.Redis.Addr})
	}

	regs := filter.Defaults()
	if cfg.FiltersFile != "" {
		if regs, err = filter.LoadFile(cfg.FiltersFile, regs); err != nil {
			logger.Error("filters_load_failed", map[string]any{
				"file":  cfg.FiltersFile,
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}
	for entity, r := range regs {
		logger.Info("filter_registry", map[string]any{"entity": entity, "fields": r.Tokens()})
	}

	timeout := time.Duration(cfg.Tasks.TimeoutSec) * time.Second
	dispatcher, err := tasks.NewDispatcher(cfg.Tasks.Workers, timeout)
	if err != nil {
		logger.Error("tasks_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	svc := service.New(store.New(pool, regs), kv, dispatcher, tasks.LogMailer{From: "noreply@conference.local"}, regs)

	if err := svc.RefreshAnnouncement(ctx); err != nil {
		logger.Warn("announcement_init_failed", map[string]any{"error": err.Error()})
	}
	scheduler := tasks.NewScheduler(timeout)
	if err := scheduler.Add(cfg.Tasks.AnnouncementCron, "cache_announcement", svc.RefreshAnnouncement); err != nil {
		logger.Error("scheduler_init_failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	scheduler.Start()

	validator, err := auth.NewJWTValidator(cfg.Auth.JWT)
	if err != nil {
		logger.Warn("auth_disabled", map[string]any{"error": err.Error()})
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.New(cfg, handler.New(svc), validator),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server_start", map[string]any{"port": cfg.Port})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_error", map[string]any{"error": err.Error()})
		}
	case <-ctx.Done():
		logger.Info("shutdown_signal", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", map[string]any{"error": err.Error()})
	}
	scheduler.Stop(shutdownCtx)
	if err := dispatcher.Close(10 * time.Second); err != nil {
		logger.Warn("tasks_close_timeout", map[string]any{"error": err.Error()})
	}
	logger.Info("server_stopped", nil)
}
