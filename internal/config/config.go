package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
)

// EnvConfigPath names the environment variable that points at the config file
const EnvConfigPath = "RCFM_CONFIG"

// DefaultPaths are tried in order when no config path is given
var DefaultPaths = []string{"config.yaml", "/config/config.yaml"}

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Rclone        RcloneConfig        `yaml:"rclone"`
	Transfers     TransfersConfig     `yaml:"transfers"`
	Clipboard     ClipboardConfig     `yaml:"clipboard"`
	Local         LocalConfig         `yaml:"local"`
	Database      DatabaseConfig      `yaml:"database"`
	Logging       LoggingConfig       `yaml:"logging"`
	Notifications NotificationsConfig `yaml:"notifications"`

	mu       sync.RWMutex
	watchers []chan<- struct{}
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	Host            string        `yaml:"host"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type RcloneConfig struct {
	DaemonAddr     string         `yaml:"daemon_addr"`
	HealthInterval time.Duration  `yaml:"health_interval"`
	Timeouts       TimeoutsConfig `yaml:"timeouts"`
}

type TimeoutsConfig struct {
	Size   time.Duration `yaml:"size"`
	Start  time.Duration `yaml:"start"`
	Poll   time.Duration `yaml:"poll"`
	Stop   time.Duration `yaml:"stop"`
	List   time.Duration `yaml:"list"`
	Mkdir  time.Duration `yaml:"mkdir"`
	Delete time.Duration `yaml:"delete"`
	Config time.Duration `yaml:"config"`
}

type TransfersConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
}

type ClipboardConfig struct {
	ClearAfterPaste bool `yaml:"clear_after_paste"`
}

type LocalConfig struct {
	Root          string `yaml:"root"`
	IncludeHidden bool   `yaml:"include_hidden"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type NotificationsConfig struct {
	Pushover PushoverConfig `yaml:"pushover"`
}

type PushoverConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Token           string `yaml:"token"`
	User            string `yaml:"user"`
	Priority        int    `yaml:"priority"`
	NotifyCompleted bool   `yaml:"notify_completed"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// ResolvePath picks the config file: the explicit path, then $RCFM_CONFIG, then the first default that exists
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return DefaultPaths[0]
}

// Default returns the configuration used when a key is absent from the file
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads configuration from file with environment variable expansion
func Load(configPath string) (*Config, error) {
	return loadConfig(configPath)
}

func loadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	content := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := config.ensureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 30 * time.Second
	}

	if c.Rclone.DaemonAddr == "" {
		c.Rclone.DaemonAddr = "[::1]:48725"
	}
	setDefault(&c.Rclone.HealthInterval, 30*time.Second)
	t := &c.Rclone.Timeouts
	setDefault(&t.Size, 5*time.Second)
	setDefault(&t.Start, 5*time.Second)
	setDefault(&t.Poll, time.Second)
	setDefault(&t.Stop, time.Second)
	setDefault(&t.List, 15*time.Second)
	setDefault(&t.Mkdir, 5*time.Second)
	setDefault(&t.Delete, 30*time.Second)
	setDefault(&t.Config, 30*time.Second)

	setDefault(&c.Transfers.PollInterval, time.Second)

	if c.Database.Path == "" {
		c.Database.Path = "data/rcfm.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func setDefault(d *time.Duration, v time.Duration) {
	if *d == 0 {
		*d = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if strings.Contains(c.Rclone.DaemonAddr, "://") {
		return fmt.Errorf("daemon_addr must be host:port without a scheme: %s", c.Rclone.DaemonAddr)
	}

	timeouts := map[string]time.Duration{
		"size": c.Rclone.Timeouts.Size, "start": c.Rclone.Timeouts.Start,
		"poll": c.Rclone.Timeouts.Poll, "stop": c.Rclone.Timeouts.Stop,
		"list": c.Rclone.Timeouts.List, "mkdir": c.Rclone.Timeouts.Mkdir,
		"delete": c.Rclone.Timeouts.Delete, "config": c.Rclone.Timeouts.Config,
	}
	for name, d := range timeouts {
		if d < 0 {
			return fmt.Errorf("rclone timeout %s cannot be negative", name)
		}
	}

	if c.Rclone.HealthInterval < time.Second {
		return fmt.Errorf("health_interval must be at least 1s, got %s", c.Rclone.HealthInterval)
	}

	if c.Transfers.PollInterval < 100*time.Millisecond {
		return fmt.Errorf("poll_interval must be at least 100ms, got %s", c.Transfers.PollInterval)
	}

	if p := c.Notifications.Pushover; p.Enabled {
		if p.Token == "" || p.User == "" {
			return fmt.Errorf("pushover token and user are required when pushover is enabled")
		}
		if p.Priority < -2 || p.Priority > 1 {
			return fmt.Errorf("pushover priority must be between -2 and 1, got %d", p.Priority)
		}
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}

func (c *Config) ensureDirectories() error {
	var dirs []string
	if c.Database.Path != ":memory:" {
		dirs = append(dirs, filepath.Dir(c.Database.Path))
	}

	if c.Logging.File != "" {
		dirs = append(dirs, filepath.Dir(c.Logging.File))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// WatchForChanges registers a channel to receive notifications when config changes
func (c *Config) WatchForChanges() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan struct{}, 1)
	c.watchers = append(c.watchers, ch)
	return ch
}

// Watch reloads the configuration whenever configPath changes, until ctx is done
func (c *Config) Watch(ctx context.Context, configPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := watcher.Add(configDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}

	go c.watchLoop(ctx, watcher, configPath)
	return nil
}

func (c *Config) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, configPath string) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) == filepath.Base(configPath) &&
				(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				slog.Info("config file changed, reloading", "file", configPath)

				// Small delay to ensure file write is complete
				time.Sleep(100 * time.Millisecond)

				if err := c.reload(configPath); err != nil {
					slog.Error("failed to reload config", "error", err)
				} else {
					c.notifyWatchers()
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "error", err)
		}
	}
}

func (c *Config) reload(configPath string) error {
	newConfig, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Server, daemon address, local root and database only take effect on restart
	c.Rclone.Timeouts = newConfig.Rclone.Timeouts
	c.Transfers = newConfig.Transfers
	c.Clipboard = newConfig.Clipboard
	c.Notifications = newConfig.Notifications
	c.Logging.Level = newConfig.Logging.Level

	slog.Info("configuration reloaded successfully")
	return nil
}

func (c *Config) notifyWatchers() {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, watcher := range c.watchers {
		select {
		case watcher <- struct{}{}:
		default:
			// Non-blocking send - if buffer is full, skip
		}
	}
}

// GetServer returns a copy of the server configuration
func (c *Config) GetServer() ServerConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Server
}

// GetRClone returns a copy of the rclone configuration
func (c *Config) GetRClone() RcloneConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Rclone
}

func (c *Config) GetTransfers() TransfersConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Transfers
}

func (c *Config) GetClipboard() ClipboardConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Clipboard
}

func (c *Config) GetLocal() LocalConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Local
}

// GetDatabase returns a copy of the database configuration
func (c *Config) GetDatabase() DatabaseConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Database
}

// GetLogging returns a copy of the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Logging
}

// GetNotifications returns a copy of the notifications configuration
func (c *Config) GetNotifications() NotificationsConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Notifications
}

// DaemonURL returns the base URL of the rclone daemon
func (r RcloneConfig) DaemonURL() string {
	return "http://" + r.DaemonAddr
}
