package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"rcfm/internal/models"
	"rcfm/internal/transfers"
)

// ClipboardRequest selects files for copy or cut. Source is a remote name, empty for local.
type ClipboardRequest struct {
	Source string        `json:"source"`
	Files  []models.File `json:"files"`
}

// PasteRequest names the directory to paste into, in rclone path syntax
type PasteRequest struct {
	Destination string `json:"destination"`
}

// PasteResponse reports the outcome of a paste
type PasteResponse struct {
	Jobs   []transfers.View `json:"jobs"`
	Local  int              `json:"local"`
	Errors []string         `json:"errors,omitempty"`
}

func (h *Handlers) GetClipboard(w http.ResponseWriter, r *http.Request) {
	h.writeSuccess(w, http.StatusOK, h.clipboard.Contents(), "")
}

func (h *Handlers) CopyToClipboard(w http.ResponseWriter, r *http.Request) {
	h.setClipboard(w, r, false)
}

func (h *Handlers) CutToClipboard(w http.ResponseWriter, r *http.Request) {
	h.setClipboard(w, r, true)
}

func (h *Handlers) setClipboard(w http.ResponseWriter, r *http.Request, move bool) {
	var req ClipboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if len(req.Files) == 0 {
		h.writeError(w, http.StatusBadRequest, "at least one file is required", nil)
		return
	}

	source := models.Local()
	if req.Source != "" {
		source = models.Remote(req.Source)
	}

	for i := range req.Files {
		if req.Files[i].Name == "" {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("file %d has no name", i), nil)
			return
		}
		if req.Files[i].IsDir {
			req.Files[i].Size = models.UnknownSize
		}
		if source.IsLocal() && h.files != nil {
			resolved, err := h.files.ResolveLocal(req.Files[i].Path)
			if err != nil {
				h.writeError(w, statusForError(err), "Invalid file path", err)
				return
			}
			req.Files[i].Path = resolved
		}
	}

	if move {
		h.clipboard.Cut(req.Files, source)
	} else {
		h.clipboard.Copy(req.Files, source)
	}

	h.writeSuccess(w, http.StatusOK, h.clipboard.Contents(), fmt.Sprintf("%d files on clipboard", len(req.Files)))
}

func (h *Handlers) Paste(w http.ResponseWriter, r *http.Request) {
	var req PasteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if req.Destination == "" {
		h.writeError(w, http.StatusBadRequest, "destination is required", nil)
		return
	}
	if h.clipboard.Contents().Empty() {
		h.writeError(w, http.StatusConflict, "clipboard is empty", nil)
		return
	}

	dest, destPath := models.ParseLocation(req.Destination)
	if dest.IsLocal() && h.files != nil {
		resolved, err := h.files.ResolveLocal(destPath)
		if err != nil {
			h.writeError(w, statusForError(err), "Invalid destination", err)
			return
		}
		destPath = resolved
	}

	result := h.clipboard.Paste(r.Context(), destPath, dest)

	resp := PasteResponse{
		Jobs:   make([]transfers.View, 0, len(result.Jobs)),
		Local:  result.Local,
		Errors: errorStrings(result.Errors),
	}
	for _, job := range result.Jobs {
		resp.Jobs = append(resp.Jobs, job.View())
	}

	if len(result.Errors) > 0 {
		if len(result.Jobs) == 0 && result.Local == 0 {
			h.writeError(w, statusForError(result.Errors[0]), "Paste failed", result.Errors[0])
			return
		}
		h.writeSuccess(w, http.StatusOK, resp, fmt.Sprintf("paste finished with %d errors", len(result.Errors)))
		return
	}

	h.writeSuccess(w, http.StatusOK, resp, "Paste started successfully")
}
