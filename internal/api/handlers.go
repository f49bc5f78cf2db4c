package api

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"

	"rcfm/internal/clipboard"
	"rcfm/internal/config"
	"rcfm/internal/interfaces"
	"rcfm/internal/localfs"
	"rcfm/internal/monitor"
	"rcfm/internal/rclone"
	"rcfm/internal/repository"
	"rcfm/internal/services"
	"rcfm/internal/transfers"

	"github.com/gorilla/mux"
)

// DaemonPinger checks that the rclone daemon answers
type DaemonPinger interface {
	Ping(ctx context.Context) error
}

// DiskReporter reports the capacity of the local filesystem
type DiskReporter interface {
	DiskUsage(p string) (*localfs.DiskUsage, error)
}

// Services bundles everything the handlers serve
type Services struct {
	Registry  *transfers.Registry
	Clipboard *clipboard.Clipboard
	Files     *services.FileService
	History   interfaces.HistoryRepository
	Daemon    DaemonPinger
	Disk      DiskReporter
	Monitor   *monitor.Monitor
}

type Handlers struct {
	registry  *transfers.Registry
	clipboard *clipboard.Clipboard
	files     *services.FileService
	history   interfaces.HistoryRepository
	daemon    DaemonPinger
	disk      DiskReporter
	monitor   *monitor.Monitor
	config    *config.Config
}

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func NewHandlers(svc Services, cfg *config.Config) *Handlers {
	return &Handlers{
		registry:  svc.Registry,
		clipboard: svc.Clipboard,
		files:     svc.Files,
		history:   svc.History,
		daemon:    svc.Daemon,
		disk:      svc.Disk,
		monitor:   svc.Monitor,
		config:    cfg,
	}
}

func (h *Handlers) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api/v1").Subrouter()

	// Transfer endpoints
	api.HandleFunc("/transfers", h.CreateTransfer).Methods("POST")
	api.HandleFunc("/transfers", h.GetTransfers).Methods("GET")
	api.HandleFunc("/transfers/summary", h.GetTransferSummary).Methods("GET")
	api.HandleFunc("/transfers/{id:[0-9]+}", h.GetTransfer).Methods("GET")
	api.HandleFunc("/transfers/{id:[0-9]+}", h.DeleteTransfer).Methods("DELETE")

	// Clipboard endpoints
	api.HandleFunc("/clipboard", h.GetClipboard).Methods("GET")
	api.HandleFunc("/clipboard/copy", h.CopyToClipboard).Methods("POST")
	api.HandleFunc("/clipboard/cut", h.CutToClipboard).Methods("POST")
	api.HandleFunc("/clipboard/paste", h.Paste).Methods("POST")

	// File endpoints
	api.HandleFunc("/files", h.ListFiles).Methods("GET")
	api.HandleFunc("/files/mkdir", h.Mkdir).Methods("POST")
	api.HandleFunc("/files/delete", h.DeleteFiles).Methods("POST")
	api.HandleFunc("/files/rename", h.RenameFile).Methods("POST")

	// Remote endpoints
	api.HandleFunc("/remotes", h.GetRemotes).Methods("GET")
	api.HandleFunc("/remotes/{name}", h.DeleteRemote).Methods("DELETE")

	// History endpoints
	api.HandleFunc("/history", h.GetHistory).Methods("GET")

	// System endpoints
	api.HandleFunc("/health", h.HealthCheck).Methods("GET")
	api.HandleFunc("/status", h.GetStatus).Methods("GET")

	// CORS preflight, answered by corsMiddleware
	api.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	api.Use(corsMiddleware)
	api.Use(loggingMiddleware)
	api.Use(jsonContentTypeMiddleware)
}

func (h *Handlers) writeSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, statusCode int, message string, err error) {
	w.WriteHeader(statusCode)
	response := APIResponse{
		Success: false,
		Error:   message,
	}
	if err != nil {
		response.Message = err.Error()
	}

	if err != nil {
		slog.Error("API error", "message", message, "error", err)
	} else {
		slog.Warn("API error", "message", message)
	}

	if jsonErr := json.NewEncoder(w).Encode(response); jsonErr != nil {
		slog.Error("failed to encode error response", "error", jsonErr)
	}
}

// statusForError maps domain errors onto HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, transfers.ErrJobNotFound),
		errors.Is(err, repository.ErrRecordNotFound),
		errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrOutsideRoot),
		errors.Is(err, localfs.ErrInsideSource):
		return http.StatusBadRequest
	case errors.Is(err, localfs.ErrExists):
		return http.StatusConflict
	case rclone.IsTransportError(err):
		return http.StatusServiceUnavailable
	case rclone.IsDaemonError(err), rclone.IsDecodeError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
