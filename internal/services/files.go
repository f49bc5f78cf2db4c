package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"rcfm/internal/interfaces"
	"rcfm/internal/models"
	"rcfm/internal/sanitizer"
)

// ErrInvalidName is returned for names that cannot be used inside a directory
var ErrInvalidName = sanitizer.ErrInvalidName

// ErrOutsideRoot is returned for local paths that resolve outside the configured root
var ErrOutsideRoot = errors.New("path is outside the local root")

// FileService browses and manages files on the local filesystem and on remotes
type FileService struct {
	remote interfaces.FileClient
	local  interfaces.LocalFS
	root   string
}

// NewFileService creates a file service. Local paths are confined to root;
// an empty root leaves the whole local filesystem reachable.
func NewFileService(remote interfaces.FileClient, local interfaces.LocalFS, root string) *FileService {
	if root != "" {
		root = filepath.Clean(root)
	}
	return &FileService{
		remote: remote,
		local:  local,
		root:   root,
	}
}

// LocalRoot returns the directory local paths are resolved against
func (s *FileService) LocalRoot() string {
	if s.root == "" {
		return "."
	}
	return s.root
}

// ResolveLocal turns a local path from a client into a filesystem path.
// Relative paths are joined to the root and absolute ones must already lie below it.
func (s *FileService) ResolveLocal(p string) (string, error) {
	if s.root == "" {
		if p == "" {
			return ".", nil
		}
		return filepath.Clean(p), nil
	}

	resolved := s.root
	switch {
	case p == "":
	case filepath.IsAbs(p):
		resolved = filepath.Clean(p)
	default:
		resolved = filepath.Join(s.root, p)
	}

	rel, err := filepath.Rel(s.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
	}
	return resolved, nil
}

// List returns the content of dir on loc, directories first
func (s *FileService) List(ctx context.Context, loc models.Location, dir string) ([]models.File, error) {
	if loc.IsLocal() {
		p, err := s.ResolveLocal(dir)
		if err != nil {
			return nil, err
		}
		return s.local.List(p)
	}

	entries, err := s.remote.List(ctx, loc.Fs(), dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", loc.Join(dir), err)
	}

	files := make([]models.File, 0, len(entries))
	for _, entry := range entries {
		f := entry.File(loc)
		if f.IsDir {
			f.Size = models.UnknownSize
		}
		files = append(files, f)
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].IsDir != files[j].IsDir {
			return files[i].IsDir
		}
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})

	return files, nil
}

// Mkdir creates dir on loc
func (s *FileService) Mkdir(ctx context.Context, loc models.Location, dir string) error {
	if loc.IsLocal() {
		p, err := s.ResolveLocal(dir)
		if err != nil {
			return err
		}
		return s.local.Mkdir(p)
	}

	if err := s.remote.Mkdir(ctx, loc.Fs(), dir); err != nil {
		return fmt.Errorf("failed to create %s: %w", loc.Join(dir), err)
	}
	slog.Info("created remote directory", "remote", loc.String(), "path", dir)
	return nil
}

// Delete removes a file, or a directory with everything below it
func (s *FileService) Delete(ctx context.Context, f models.File) error {
	if f.IsLocal() {
		p, err := s.ResolveLocal(f.Path)
		if err != nil {
			return err
		}
		if s.root != "" && p == s.root {
			return fmt.Errorf("%w: refusing to delete the root itself", ErrOutsideRoot)
		}
		return s.local.Delete(p)
	}

	var err error
	if f.IsDir {
		err = s.remote.Purge(ctx, f.Location.Fs(), f.Path)
	} else {
		err = s.remote.DeleteFile(ctx, f.Location.Fs(), f.Path)
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", f.FsPath(), err)
	}

	slog.Info("deleted remote file", "remote", f.Location.String(), "path", f.Path, "is_dir", f.IsDir)
	return nil
}

// DeleteAll deletes every file and returns the failures, one per file
func (s *FileService) DeleteAll(ctx context.Context, files []models.File) []error {
	var errs []error
	for _, f := range files {
		if err := s.Delete(ctx, f); err != nil {
			slog.Error("delete failed", "path", f.FsPath(), "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

// Rename gives f a new name inside its current directory
func (s *FileService) Rename(ctx context.Context, f models.File, newName string) error {
	newName, err := sanitizer.Name(newName)
	if err != nil {
		return err
	}

	if f.IsLocal() {
		oldPath, err := s.ResolveLocal(f.Path)
		if err != nil {
			return err
		}
		if s.root != "" && oldPath == s.root {
			return fmt.Errorf("%w: refusing to rename the root itself", ErrOutsideRoot)
		}
		return s.local.Rename(oldPath, filepath.Join(filepath.Dir(oldPath), newName))
	}

	dir := path.Dir(f.Path)
	newPath := newName
	if dir != "." && dir != "/" {
		newPath = dir + "/" + newName
	}

	fs := f.Location.Fs()
	if err := s.remote.MoveFile(ctx, fs, f.Path, fs, newPath); err != nil {
		return fmt.Errorf("failed to rename %s: %w", f.FsPath(), err)
	}
	return nil
}

// Remotes returns the remotes configured on the daemon
func (s *FileService) Remotes(ctx context.Context) ([]models.RemoteConfig, error) {
	remotes, err := s.remote.ListRemotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return remotes, nil
}

// DeleteRemote removes a remote from the daemon configuration
func (s *FileService) DeleteRemote(ctx context.Context, name string) error {
	name = strings.TrimSuffix(name, ":")
	if name == "" {
		return fmt.Errorf("%w: empty remote name", ErrInvalidName)
	}
	if err := s.remote.DeleteRemote(ctx, name); err != nil {
		return fmt.Errorf("failed to delete remote %s: %w", name, err)
	}
	slog.Info("deleted remote", "remote", name)
	return nil
}
