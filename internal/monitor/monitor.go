package monitor

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rcfm/internal/localfs"
)

// Pinger checks that the rclone daemon answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// DiskReporter reports the capacity of a local filesystem
type DiskReporter interface {
	DiskUsage(p string) (*localfs.DiskUsage, error)
}

// Status is the last observed health of the daemon and of the local disk
type Status struct {
	DaemonAvailable     bool               `json:"daemon_available"`
	LastCheck           time.Time          `json:"last_check"`
	LastSuccess         time.Time          `json:"last_success,omitempty"`
	LastError           string             `json:"last_error,omitempty"`
	ConsecutiveFailures int                `json:"consecutive_failures"`
	Disk                *localfs.DiskUsage `json:"disk,omitempty"`
}

type Monitor struct {
	pinger   Pinger
	disk     DiskReporter
	diskPath string
	interval time.Duration

	mu     sync.RWMutex
	status Status

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a monitor. disk may be nil to skip disk sampling.
func New(pinger Pinger, disk DiskReporter, diskPath string, interval time.Duration) *Monitor {
	return &Monitor{
		pinger:   pinger,
		disk:     disk,
		diskPath: diskPath,
		interval: interval,
	}
}

// Start runs a first check immediately and then one every interval until Stop or ctx ends
func (m *Monitor) Start(ctx context.Context) {
	ctx, m.cancel = context.WithCancel(ctx)

	m.wg.Add(1)
	go m.monitorLoop(ctx)
	slog.Info("daemon monitor started", "interval", m.interval)
}

func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	m.cancel = nil
	m.wg.Wait()
	slog.Info("daemon monitor stopped")
}

// Status returns a copy of the last observed health
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status := m.status
	if status.Disk != nil {
		disk := *status.Disk
		status.Disk = &disk
	}
	return status
}

func (m *Monitor) monitorLoop(ctx context.Context) {
	defer m.wg.Done()

	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check pings the daemon and samples the disk once, logging availability changes
func (m *Monitor) Check(ctx context.Context) {
	now := time.Now()
	pingErr := m.pinger.Ping(ctx)

	var usage *localfs.DiskUsage
	if m.disk != nil {
		var err error
		if usage, err = m.disk.DiskUsage(m.diskPath); err != nil {
			slog.Debug("failed to check disk space", "path", m.diskPath, "error", err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	wasAvailable := m.status.DaemonAvailable
	hadCheck := !m.status.LastCheck.IsZero()

	m.status.LastCheck = now
	if usage != nil {
		m.status.Disk = usage
	}

	if pingErr != nil {
		m.status.DaemonAvailable = false
		m.status.LastError = pingErr.Error()
		m.status.ConsecutiveFailures++
		if wasAvailable || !hadCheck {
			slog.Warn("rclone daemon is unreachable", "error", pingErr)
		}
		return
	}

	m.status.DaemonAvailable = true
	m.status.LastSuccess = now
	m.status.LastError = ""
	if !wasAvailable && hadCheck {
		slog.Info("rclone daemon is reachable again", "failed_checks", m.status.ConsecutiveFailures)
	}
	m.status.ConsecutiveFailures = 0
}
