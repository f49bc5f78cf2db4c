package transfers

import (
	"context"
	"log/slog"
	"time"
)

// DefaultPollInterval matches the refresh rate of the transfer screen
const DefaultPollInterval = time.Second

// StartPolling refreshes in-progress jobs every interval until StopPolling is called or ctx ends.
// Calling it while polling is already running does nothing.
func (r *Registry) StartPolling(ctx context.Context, interval time.Duration) {
	r.pollMu.Lock()
	defer r.pollMu.Unlock()

	if r.cancel != nil {
		slog.Warn("transfer polling already started")
		return
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	var pollCtx context.Context
	pollCtx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.pollLoop(pollCtx, interval)

	slog.Info("transfer polling started", "interval", interval)
}

// StopPolling stops the poll loop and waits for an in-flight refresh to finish
func (r *Registry) StopPolling() {
	r.pollMu.Lock()
	if r.cancel == nil {
		r.pollMu.Unlock()
		return
	}

	r.cancel()
	r.cancel = nil
	r.pollMu.Unlock()

	r.wg.Wait()
	slog.Info("transfer polling stopped")
}

// Polling reports whether the poll loop is running
func (r *Registry) Polling() bool {
	r.pollMu.Lock()
	defer r.pollMu.Unlock()
	return r.cancel != nil
}

func (r *Registry) pollLoop(ctx context.Context, interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.RefreshAll(ctx)
		}
	}
}
