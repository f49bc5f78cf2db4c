package localfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sys/unix"

	"rcfm/internal/models"
)

// ErrExists is returned when a copy or move target is already present
var ErrExists = errors.New("destination already exists")

// ErrInsideSource is returned when a directory would be copied or moved into itself
var ErrInsideSource = errors.New("destination is inside the source")

// FS performs file operations on the local filesystem
type FS struct {
	IncludeHidden bool
}

// New creates a local filesystem accessor
func New(includeHidden bool) *FS {
	return &FS{IncludeHidden: includeHidden}
}

// DiskUsage is the capacity of the filesystem holding a path
type DiskUsage struct {
	Path       string `json:"path"`
	TotalBytes int64  `json:"total_bytes"`
	FreeBytes  int64  `json:"free_bytes"`
	UsedBytes  int64  `json:"used_bytes"`
}

// List returns the entries of dir, directories first and then by name
func (f *FS) List(dir string) ([]models.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	files := make([]models.File, 0, len(entries))
	for _, entry := range entries {
		if !f.IncludeHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			// removed between ReadDir and Info
			slog.Debug("skipping unreadable entry", "path", filepath.Join(dir, entry.Name()), "error", err)
			continue
		}

		file := models.NewLocalFile(filepath.Join(dir, entry.Name()), info.Size(), info.IsDir())
		file.ModTime = info.ModTime()
		files = append(files, file)
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].IsDir != files[j].IsDir {
			return files[i].IsDir
		}
		return strings.ToLower(files[i].Name) < strings.ToLower(files[j].Name)
	})

	return files, nil
}

// Mkdir creates dir and any missing parents
func (f *FS) Mkdir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// Delete removes a file or a directory tree
func (f *FS) Delete(p string) error {
	if _, err := os.Lstat(p); err != nil {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	if err := os.RemoveAll(p); err != nil {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

// Rename renames oldPath to newPath, refusing to overwrite
func (f *FS) Rename(oldPath, newPath string) error {
	if exists(newPath) {
		return fmt.Errorf("%w: %s", ErrExists, newPath)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}
	return nil
}

// Copy copies a file or directory tree to dst, which must not exist yet.
// A directory copy that fails part way removes what it created.
func (f *FS) Copy(src, dst string) error {
	if exists(dst) {
		return fmt.Errorf("%w: %s", ErrExists, dst)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}

	if !info.IsDir() {
		return copyFile(src, dst, info.Mode())
	}

	if err := checkNotInside(src, dst); err != nil {
		return err
	}

	if err := copyTree(src, dst); err != nil {
		if rmErr := os.RemoveAll(dst); rmErr != nil {
			slog.Warn("failed to clean up partial copy", "path", dst, "error", rmErr)
		}
		return fmt.Errorf("failed to copy directory: %w", err)
	}
	return nil
}

// checkNotInside rejects a dst that is src itself or lies below it
func checkNotInside(src, dst string) error {
	absSrc, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return err
	}

	rel, err := filepath.Rel(absSrc, absDst)
	if err != nil {
		return err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInsideSource, dst)
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return err
		}

		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm())
		case info.Mode().IsRegular():
			return copyFile(p, target, info.Mode())
		default:
			slog.Debug("skipping special file", "path", p)
			return nil
		}
	})
}

// Move moves src to dst, falling back to copy and delete across filesystems
func (f *FS) Move(src, dst string) error {
	if exists(dst) {
		return fmt.Errorf("%w: %s", ErrExists, dst)
	}
	if err := checkNotInside(src, dst); err != nil {
		return err
	}

	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, unix.EXDEV) {
		return fmt.Errorf("failed to move: %w", err)
	}

	slog.Debug("cross device move, copying instead", "src", src, "dst", dst)
	if err := f.Copy(src, dst); err != nil {
		return fmt.Errorf("failed to copy across devices: %w", err)
	}
	if err := os.RemoveAll(src); err != nil {
		return fmt.Errorf("failed to remove source after copy: %w", err)
	}
	return nil
}

// DiskUsage reports the capacity of the filesystem holding p
func (f *FS) DiskUsage(p string) (*DiskUsage, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(p, &stat); err != nil {
		return nil, fmt.Errorf("failed to stat filesystem: %w", err)
	}

	total := int64(stat.Blocks * uint64(stat.Bsize))
	free := int64(stat.Bavail * uint64(stat.Bsize))
	return &DiskUsage{
		Path:       p,
		TotalBytes: total,
		FreeBytes:  free,
		UsedBytes:  total - int64(stat.Bfree*uint64(stat.Bsize)),
	}, nil
}

func exists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

func copyFile(src, dst string, mode fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode.Perm())
	if err != nil {
		return fmt.Errorf("failed to create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy data: %w", err)
	}
	return out.Close()
}
