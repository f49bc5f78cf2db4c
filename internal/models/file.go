package models

import (
	"path"
	"strings"
	"time"
)

// UnknownSize marks a size that has not been determined
const UnknownSize int64 = -1

type FileKind string

const (
	FileKindDirectory FileKind = "directory"
	FileKindImage     FileKind = "image"
	FileKindVideo     FileKind = "video"
	FileKindAudio     FileKind = "audio"
	FileKindDocument  FileKind = "document"
	FileKindOther     FileKind = "other"
)

var kindsByExtension = map[string]FileKind{
	"gif": FileKindImage, "jpg": FileKindImage, "png": FileKindImage,
	"mp4": FileKindVideo, "mkv": FileKindVideo, "mov": FileKindVideo,
	"avi": FileKindVideo, "webm": FileKindVideo, "flv": FileKindVideo,
	"mp3": FileKindAudio, "wav": FileKindAudio, "aac": FileKindAudio, "flac": FileKindAudio,
	"pdf": FileKindDocument, "doc": FileKindDocument, "docx": FileKindDocument,
	"xls": FileKindDocument, "xlsx": FileKindDocument, "rtf": FileKindDocument,
	"ppt": FileKindDocument, "pptx": FileKindDocument, "key": FileKindDocument,
	"pages": FileKindDocument, "numbers": FileKindDocument,
}

// File is a reference to a local or remote item, tagged by its Location
type File struct {
	Location Location  `json:"location"`
	Path     string    `json:"path"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	IsDir    bool      `json:"is_dir"`
	MimeType string    `json:"mime_type,omitempty"`
	ModTime  time.Time `json:"mod_time,omitempty"`
}

// NewLocalFile builds a local file reference, deriving the name from the path
func NewLocalFile(p string, size int64, isDir bool) File {
	if isDir {
		size = UnknownSize
	}
	return File{
		Location: Local(),
		Path:     p,
		Name:     path.Base(strings.ReplaceAll(p, "\\", "/")),
		Size:     size,
		IsDir:    isDir,
	}
}

// Kind classifies the file by its extension
func (f File) Kind() FileKind {
	if f.IsDir {
		return FileKindDirectory
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(f.Path), "."))
	if kind, ok := kindsByExtension[ext]; ok {
		return kind
	}
	return FileKindOther
}

// IsLocal reports whether the file lives on the local filesystem
func (f File) IsLocal() bool {
	return f.Location.IsLocal()
}

// FsPath returns the fs string addressing the file itself
func (f File) FsPath() string {
	return f.Location.Join(f.Path)
}

// RemoteEntry is a single item returned by operations/list
type RemoteEntry struct {
	Path     string `json:"Path"`
	Name     string `json:"Name"`
	Size     int64  `json:"Size"`
	MimeType string `json:"MimeType"`
	ModTime  string `json:"ModTime"`
	IsDir    bool   `json:"IsDir"`
}

// File converts the listing entry into a file reference on the given remote
func (e RemoteEntry) File(loc Location) File {
	f := File{
		Location: loc,
		Path:     e.Path,
		Name:     e.Name,
		Size:     e.Size,
		IsDir:    e.IsDir,
		MimeType: e.MimeType,
	}
	if t, err := time.Parse(time.RFC3339Nano, e.ModTime); err == nil {
		f.ModTime = t
	}
	return f
}
