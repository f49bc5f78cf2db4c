package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rcfm/internal/api"
	"rcfm/internal/clipboard"
	"rcfm/internal/config"
	"rcfm/internal/localfs"
	"rcfm/internal/monitor"
	"rcfm/internal/notifications"
	"rcfm/internal/rclone"
	"rcfm/internal/repository"
	"rcfm/internal/services"
	"rcfm/internal/transfers"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg, configPath, err := loadConfig()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded", "config_path", configPath)

	if err := setupLogging(cfg.GetLogging()); err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	repo, err := repository.New(cfg.GetDatabase().Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer repo.Close()

	slog.Info("database initialized", "path", cfg.GetDatabase().Path)

	client := newClient(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize notifications
	notifier := notifications.NewPushoverNotifier(cfg)
	if notifier.IsEnabled() {
		slog.Info("pushover notifications enabled", "notify_completed", cfg.GetNotifications().Pushover.NotifyCompleted)
	}

	registry := transfers.NewRegistry(client, transfers.WithHistory(repo), transfers.WithNotifier(notifier))
	registry.StartPolling(ctx, cfg.GetTransfers().PollInterval)
	defer registry.StopPolling()

	localConfig := cfg.GetLocal()
	local := localfs.New(localConfig.IncludeHidden)
	files := services.NewFileService(client, local, localConfig.Root)

	daemonMonitor := monitor.New(client, local, files.LocalRoot(), cfg.GetRClone().HealthInterval)
	daemonMonitor.Start(ctx)
	defer daemonMonitor.Stop()

	clip := clipboard.New(registry, local, clipboard.WithClearAfterPaste(cfg.GetClipboard().ClearAfterPaste))

	// Setup HTTP server
	router := mux.NewRouter()

	handlers := api.NewHandlers(api.Services{
		Registry:  registry,
		Clipboard: clip,
		Files:     files,
		History:   repo,
		Daemon:    client,
		Disk:      local,
		Monitor:   daemonMonitor,
	}, cfg)
	handlers.RegisterRoutes(router)

	serverConfig := cfg.GetServer()
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", serverConfig.Host, serverConfig.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Watch for configuration changes
	if configPath != "" {
		if err := cfg.Watch(ctx, configPath); err != nil {
			slog.Warn("config hot reload disabled", "error", err)
		}
	}
	reloadDone := reloadOnChange(ctx, cfg.WatchForChanges(), func() {
		applyConfig(ctx, cfg, registry, clip, client)
	})

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		slog.Info("shutdown signal received, initiating graceful shutdown")
	case err := <-serverErr:
		return fmt.Errorf("HTTP server error: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverConfig.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// no reload may restart the poller once it is stopped
	cancel()
	<-reloadDone

	registry.StopPolling()
	daemonMonitor.Stop()
	registry.WaitNotifications()

	summary := registry.Summary()
	if summary.InProgress > 0 {
		// the daemon keeps running them
		slog.Warn("transfers still running on the daemon", "in_progress", summary.InProgress)
	}

	slog.Info("shutdown completed")
	return nil
}

// applyConfig pushes hot-reloadable settings into running components
// reloadOnChange calls apply for every change until ctx ends. The returned channel
// is closed once the loop has exited, after any apply in progress has returned.
func reloadOnChange(ctx context.Context, changes <-chan struct{}, apply func()) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-changes:
				apply()
			}
		}
	}()
	return done
}

func applyConfig(ctx context.Context, cfg *config.Config, registry *transfers.Registry, clip *clipboard.Clipboard, client *rclone.Client) {
	logConfig := cfg.GetLogging()
	logLevel.Set(parseLevel(logConfig.Level))

	client.SetTimeouts(clientTimeouts(cfg.GetRClone().Timeouts))
	clip.SetClearAfterPaste(cfg.GetClipboard().ClearAfterPaste)

	// restart the poller so a new interval takes effect
	registry.StopPolling()
	registry.StartPolling(ctx, cfg.GetTransfers().PollInterval)

	slog.Info("configuration applied",
		"log_level", logConfig.Level,
		"poll_interval", cfg.GetTransfers().PollInterval,
		"clear_after_paste", cfg.GetClipboard().ClearAfterPaste)
}
