package models

import (
	"path/filepath"
	"strings"
)

// Location identifies where a file lives. The zero value is the local filesystem;
// a non-empty Remote names an rclone remote from the daemon's configuration.
type Location struct {
	Remote string `json:"remote,omitempty"`
}

// Local returns the local filesystem location
func Local() Location {
	return Location{}
}

// Remote returns the location of a configured rclone remote
func Remote(name string) Location {
	return Location{Remote: strings.TrimSuffix(name, ":")}
}

// IsLocal reports whether the location is the local filesystem
func (l Location) IsLocal() bool {
	return l.Remote == ""
}

// Fs returns the value used for standalone fs parameters such as srcFs/dstFs.
// The local filesystem is addressed by its root so the parameter is never empty.
func (l Location) Fs() string {
	if l.IsLocal() {
		return "/"
	}
	return l.Remote + ":"
}

// Prefix returns the string prepended to a path to build an fs string.
func (l Location) Prefix() string {
	if l.IsLocal() {
		return ""
	}
	return l.Remote + ":"
}

// Join builds the full fs string for a path inside this location
func (l Location) Join(path string) string {
	return l.Prefix() + path
}

func (l Location) String() string {
	if l.IsLocal() {
		return "local"
	}
	return l.Remote
}

// ParseLocation splits an rclone style path ("remote:dir/file") into its location and path.
// Anything without a remote prefix, including absolute paths and Windows drive letters, is local.
func ParseLocation(s string) (Location, string) {
	if filepath.IsAbs(s) || strings.HasPrefix(s, ".") {
		return Local(), s
	}

	idx := strings.Index(s, ":")
	if idx <= 0 {
		return Local(), s
	}

	name := s[:idx]
	if strings.ContainsAny(name, `/\`) {
		return Local(), s
	}
	// single letter followed by ":\" or ":/" is a drive letter
	if len(name) == 1 && len(s) > idx+1 && (s[idx+1] == '\\' || s[idx+1] == '/') {
		return Local(), s
	}

	return Remote(name), s[idx+1:]
}
