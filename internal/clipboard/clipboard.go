package clipboard

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"rcfm/internal/interfaces"
	"rcfm/internal/models"
	"rcfm/internal/transfers"
)

// JobCreator starts transfers on the daemon
type JobCreator interface {
	Create(ctx context.Context, req transfers.CreateRequest) (*transfers.Job, error)
}

// Snapshot is the content of the clipboard slot
type Snapshot struct {
	Files  []models.File   `json:"files"`
	Move   bool            `json:"move"`
	Source models.Location `json:"source"`
}

// Empty reports whether nothing has been copied or cut
func (s Snapshot) Empty() bool {
	return len(s.Files) == 0
}

// Operation is the transfer a paste of this snapshot performs
func (s Snapshot) Operation() models.Operation {
	if s.Move {
		return models.OperationMove
	}
	return models.OperationCopy
}

// PasteResult reports what a paste did. Errors holds one entry per file that could not be pasted.
type PasteResult struct {
	Jobs   []*transfers.Job `json:"-"`
	Local  int              `json:"local"`
	Errors []error          `json:"-"`
}

// Clipboard holds the files selected for copy or cut until they are pasted
type Clipboard struct {
	jobs            JobCreator
	fs              interfaces.LocalFS
	clearAfterPaste bool

	mu       sync.RWMutex
	snapshot Snapshot
}

// Option configures a Clipboard
type Option func(*Clipboard)

// WithClearAfterPaste empties the clipboard after every paste
func WithClearAfterPaste(enabled bool) Option {
	return func(c *Clipboard) {
		c.clearAfterPaste = enabled
	}
}

// New creates an empty clipboard
func New(jobs JobCreator, fs interfaces.LocalFS, opts ...Option) *Clipboard {
	c := &Clipboard{jobs: jobs, fs: fs}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetClearAfterPaste changes whether the clipboard is emptied after a paste
func (c *Clipboard) SetClearAfterPaste(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearAfterPaste = enabled
}

// Copy replaces the clipboard with files to be copied from source
func (c *Clipboard) Copy(files []models.File, source models.Location) {
	c.set(files, source, false)
}

// Cut replaces the clipboard with files to be moved from source
func (c *Clipboard) Cut(files []models.File, source models.Location) {
	c.set(files, source, true)
}

func (c *Clipboard) set(files []models.File, source models.Location, move bool) {
	stamped := make([]models.File, len(files))
	for i, f := range files {
		f.Location = source
		stamped[i] = f
	}

	c.mu.Lock()
	c.snapshot = Snapshot{Files: stamped, Move: move, Source: source}
	c.mu.Unlock()

	slog.Debug("clipboard updated", "files", len(stamped), "move", move, "source", source.String())
}

// Contents returns a copy of the clipboard slot
func (c *Clipboard) Contents() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := c.snapshot
	snapshot.Files = append([]models.File(nil), c.snapshot.Files...)
	return snapshot
}

// Clear empties the clipboard
func (c *Clipboard) Clear() {
	c.mu.Lock()
	c.snapshot = Snapshot{}
	c.mu.Unlock()
}

// Paste transfers every file on the clipboard into destPath on dest.
// Local to local items are copied or moved directly, everything else becomes a daemon job.
// A failing item does not stop the remaining ones.
func (c *Clipboard) Paste(ctx context.Context, destPath string, dest models.Location) *PasteResult {
	snapshot := c.Contents()
	result := &PasteResult{}

	for _, f := range snapshot.Files {
		if err := ctx.Err(); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("%s: %w", f.Name, err))
			continue
		}

		if f.IsLocal() && dest.IsLocal() {
			if err := c.pasteLocal(f, destPath, snapshot.Move); err != nil {
				slog.Error("local paste failed", "name", f.Name, "error", err)
				result.Errors = append(result.Errors, fmt.Errorf("%s: %w", f.Name, err))
				continue
			}
			result.Local++
			continue
		}

		job, err := c.jobs.Create(ctx, transfers.CreateRequest{
			Source:    f,
			Dest:      dest,
			DestPath:  destPath,
			Operation: snapshot.Operation(),
		})
		if err != nil {
			slog.Error("failed to start transfer", "name", f.Name, "error", err)
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Jobs = append(result.Jobs, job)
	}

	c.mu.Lock()
	if c.clearAfterPaste {
		c.snapshot = Snapshot{}
	}
	c.mu.Unlock()

	slog.Info("paste finished",
		"destination", dest.Join(destPath),
		"jobs", len(result.Jobs),
		"local", result.Local,
		"errors", len(result.Errors))

	return result
}

func (c *Clipboard) pasteLocal(f models.File, destPath string, move bool) error {
	target := filepath.Join(destPath, f.Name)
	if move {
		return c.fs.Move(f.Path, target)
	}
	return c.fs.Copy(f.Path, target)
}
