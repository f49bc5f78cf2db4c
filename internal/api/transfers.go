package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"rcfm/internal/models"
	"rcfm/internal/transfers"

	"github.com/gorilla/mux"
)

// CreateTransferRequest starts a transfer of one item.
// Source and Destination use rclone path syntax: "remote:dir/file" or a local path.
type CreateTransferRequest struct {
	Source      string           `json:"source"`
	Destination string           `json:"destination"`
	IsDir       bool             `json:"is_dir,omitempty"`
	Size        *int64           `json:"size,omitempty"`
	Operation   models.Operation `json:"operation,omitempty"`
}

// ToCreateRequest resolves the request into a registry request
func (req CreateTransferRequest) ToCreateRequest() (transfers.CreateRequest, error) {
	if req.Source == "" {
		return transfers.CreateRequest{}, fmt.Errorf("source is required")
	}
	if req.Destination == "" {
		return transfers.CreateRequest{}, fmt.Errorf("destination is required")
	}

	srcLoc, srcPath := models.ParseLocation(req.Source)
	srcPath = strings.TrimSuffix(srcPath, "/")
	name := path.Base(strings.ReplaceAll(srcPath, "\\", "/"))
	if srcPath == "" || name == "." || name == "/" {
		return transfers.CreateRequest{}, fmt.Errorf("source must name a file or directory: %q", req.Source)
	}

	size := models.UnknownSize
	if req.Size != nil && !req.IsDir {
		size = *req.Size
	}

	dstLoc, dstPath := models.ParseLocation(req.Destination)

	return transfers.CreateRequest{
		Source: models.File{
			Location: srcLoc,
			Path:     srcPath,
			Name:     name,
			Size:     size,
			IsDir:    req.IsDir,
		},
		Dest:      dstLoc,
		DestPath:  strings.TrimSuffix(dstPath, "/"),
		Operation: req.Operation,
	}, nil
}

func (h *Handlers) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}

	if req.Operation != "" && !req.Operation.Valid() {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("operation must be copy or move, got %q", req.Operation), nil)
		return
	}

	createReq, err := req.ToCreateRequest()
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	job, err := h.registry.Create(r.Context(), createReq)
	if err != nil {
		h.writeError(w, statusForError(err), "Failed to start transfer", err)
		return
	}

	h.writeSuccess(w, http.StatusCreated, job.View(), "Transfer started successfully")
}

func (h *Handlers) GetTransfers(w http.ResponseWriter, r *http.Request) {
	jobs := h.registry.Jobs()

	if stateStr := r.URL.Query().Get("state"); stateStr != "" {
		state, ok := models.ParseTransferState(stateStr)
		if !ok {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown state %q", stateStr), nil)
			return
		}
		jobs = h.registry.ByState(state)
	}

	views := make([]transfers.View, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, job.View())
	}

	h.writeSuccess(w, http.StatusOK, views, "")
}

func (h *Handlers) GetTransfer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid transfer ID", err)
		return
	}

	job, err := h.registry.Get(id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "Transfer not found", err)
		return
	}

	h.writeSuccess(w, http.StatusOK, job.View(), "")
}

func (h *Handlers) DeleteTransfer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid transfer ID", err)
		return
	}

	if err := h.registry.Remove(r.Context(), id); err != nil {
		h.writeError(w, statusForError(err), "Failed to remove transfer", err)
		return
	}

	h.writeSuccess(w, http.StatusOK, nil, "Transfer removed successfully")
}

func (h *Handlers) GetTransferSummary(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, http.StatusOK, h.registry.Summary(), "")
}
