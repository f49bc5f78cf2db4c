package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"rcfm/internal/api"
	"rcfm/internal/config"
	"rcfm/internal/rclone"

	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	daemonAddr string

	logLevel = new(slog.LevelVar)
	logFile  *os.File
)

func main() {
	// Setup logging
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rcfm",
		Short:         "File manager and transfer tracker for an rclone daemon",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default $"+config.EnvConfigPath+" or ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&daemonAddr, "daemon", "", "rclone RC address as host:port, overrides the config file")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newTransferCmd())
	rootCmd.AddCommand(newRemotesCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "rcfm", api.Version)
		},
	}
}

// loadConfig reads the config file. Without an explicit path a missing file falls back to defaults.
func loadConfig() (*config.Config, string, error) {
	configPath := config.ResolvePath(cfgFile)

	cfg, err := config.Load(configPath)
	if err != nil {
		if cfgFile == "" && os.Getenv(config.EnvConfigPath) == "" && errors.Is(err, fs.ErrNotExist) {
			slog.Warn("no configuration file found, using defaults", "config_path", configPath)
			return config.Default(), "", nil
		}
		return nil, "", fmt.Errorf("failed to load configuration: %w", err)
	}

	if daemonAddr != "" {
		cfg.Rclone.DaemonAddr = daemonAddr
	}

	return cfg, configPath, nil
}

func clientTimeouts(t config.TimeoutsConfig) rclone.Timeouts {
	return rclone.Timeouts{
		Size:   t.Size,
		Start:  t.Start,
		Poll:   t.Poll,
		Stop:   t.Stop,
		List:   t.List,
		Mkdir:  t.Mkdir,
		Delete: t.Delete,
		Config: t.Config,
	}
}

func newClient(cfg *config.Config) *rclone.Client {
	rcloneConfig := cfg.GetRClone()
	slog.Info("initializing rclone client", "daemon_addr", rcloneConfig.DaemonAddr)
	return rclone.NewClient(rcloneConfig.DaemonURL(), clientTimeouts(rcloneConfig.Timeouts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupLogging installs the handler described by logConfig. The level stays adjustable through logLevel.
func setupLogging(logConfig config.LoggingConfig) error {
	logLevel.Set(parseLevel(logConfig.Level))

	var out io.Writer = os.Stderr
	if logConfig.File != "" {
		f, err := os.OpenFile(logConfig.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = f
		out = io.MultiWriter(os.Stderr, f)
	}

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if logConfig.Format == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
