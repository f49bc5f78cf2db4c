package api

import (
	"net/http"
	"time"
)

var startTime = time.Now()

// Version is overridden at build time
var Version = "dev"

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(startTime).String(),
		"version":   Version,
	}

	if h.daemon != nil {
		if err := h.daemon.Ping(r.Context()); err != nil {
			health["status"] = "degraded"
			health["daemon"] = err.Error()
			h.writeSuccess(w, http.StatusServiceUnavailable, health, "rclone daemon is not responding")
			return
		}
		health["daemon"] = "ok"
	}

	h.writeSuccess(w, http.StatusOK, health, "Service is healthy")
}

func (h *Handlers) GetStatus(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"service":   "rcfm",
		"version":   Version,
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(startTime).String(),
	}

	if h.registry != nil {
		status["transfers"] = h.registry.Summary()
		status["polling"] = h.registry.Polling()
	}

	if h.history != nil {
		if summary, err := h.history.GetHistorySummary(); err == nil {
			status["history"] = summary
		}
	}

	if h.clipboard != nil {
		status["clipboard_files"] = len(h.clipboard.Contents().Files)
	}

	if h.monitor != nil {
		status["daemon"] = h.monitor.Status()
	}

	if h.disk != nil && h.files != nil {
		if usage, err := h.disk.DiskUsage(h.files.LocalRoot()); err == nil {
			status["disk"] = usage
		}
	}

	h.writeSuccess(w, http.StatusOK, status, "")
}
