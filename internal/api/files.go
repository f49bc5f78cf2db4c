package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"

	"rcfm/internal/models"

	"github.com/gorilla/mux"
)

// FileRef points at a file in rclone path syntax
type FileRef struct {
	Path  string `json:"path"`
	IsDir bool   `json:"is_dir,omitempty"`
}

func (f FileRef) File() models.File {
	loc, p := models.ParseLocation(f.Path)
	p = strings.TrimSuffix(p, "/")
	return models.File{
		Location: loc,
		Path:     p,
		Name:     path.Base(strings.ReplaceAll(p, "\\", "/")),
		Size:     models.UnknownSize,
		IsDir:    f.IsDir,
	}
}

type MkdirRequest struct {
	Path string `json:"path"`
}

type DeleteFilesRequest struct {
	Files []FileRef `json:"files"`
}

type RenameRequest struct {
	FileRef
	NewName string `json:"new_name"`
}

func (h *Handlers) ListFiles(w http.ResponseWriter, r *http.Request) {
	loc, dir := models.ParseLocation(r.URL.Query().Get("path"))

	files, err := h.files.List(r.Context(), loc, dir)
	if err != nil {
		h.writeError(w, statusForError(err), "Failed to list files", err)
		return
	}

	h.writeSuccess(w, http.StatusOK, files, "")
}

func (h *Handlers) Mkdir(w http.ResponseWriter, r *http.Request) {
	var req MkdirRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if req.Path == "" {
		h.writeError(w, http.StatusBadRequest, "path is required", nil)
		return
	}

	loc, dir := models.ParseLocation(req.Path)
	if err := h.files.Mkdir(r.Context(), loc, dir); err != nil {
		h.writeError(w, statusForError(err), "Failed to create directory", err)
		return
	}

	h.writeSuccess(w, http.StatusCreated, nil, "Directory created successfully")
}

func (h *Handlers) DeleteFiles(w http.ResponseWriter, r *http.Request) {
	var req DeleteFilesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if len(req.Files) == 0 {
		h.writeError(w, http.StatusBadRequest, "at least one file is required", nil)
		return
	}

	files := make([]models.File, 0, len(req.Files))
	for _, ref := range req.Files {
		files = append(files, ref.File())
	}

	errs := h.files.DeleteAll(r.Context(), files)
	if len(errs) == len(files) {
		h.writeError(w, statusForError(errs[0]), "Failed to delete files", errs[0])
		return
	}
	if len(errs) > 0 {
		h.writeSuccess(w, http.StatusOK, map[string]interface{}{
			"deleted": len(files) - len(errs),
			"errors":  errorStrings(errs),
		}, fmt.Sprintf("%d of %d files could not be deleted", len(errs), len(files)))
		return
	}

	h.writeSuccess(w, http.StatusOK, map[string]interface{}{"deleted": len(files)}, "Files deleted successfully")
}

func (h *Handlers) RenameFile(w http.ResponseWriter, r *http.Request) {
	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid JSON payload", err)
		return
	}
	if req.Path == "" {
		h.writeError(w, http.StatusBadRequest, "path is required", nil)
		return
	}

	if err := h.files.Rename(r.Context(), req.File(), req.NewName); err != nil {
		h.writeError(w, statusForError(err), "Failed to rename file", err)
		return
	}

	h.writeSuccess(w, http.StatusOK, nil, "File renamed successfully")
}

func (h *Handlers) GetRemotes(w http.ResponseWriter, r *http.Request) {
	remotes, err := h.files.Remotes(r.Context())
	if err != nil {
		h.writeError(w, statusForError(err), "Failed to list remotes", err)
		return
	}

	h.writeSuccess(w, http.StatusOK, remotes, "")
}

func (h *Handlers) DeleteRemote(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	if err := h.files.DeleteRemote(r.Context(), name); err != nil {
		h.writeError(w, statusForError(err), "Failed to delete remote", err)
		return
	}

	h.writeSuccess(w, http.StatusOK, nil, "Remote deleted successfully")
}
