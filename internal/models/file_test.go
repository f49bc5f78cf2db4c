package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFile_Kind(t *testing.T) {
	tests := []struct {
		path  string
		isDir bool
		want  FileKind
	}{
		{"movies", true, FileKindDirectory},
		{"photo.JPG", false, FileKindImage},
		{"clip.mkv", false, FileKindVideo},
		{"song.flac", false, FileKindAudio},
		{"report.pdf", false, FileKindDocument},
		{"archive.tar.gz", false, FileKindOther},
		{"Makefile", false, FileKindOther},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f := File{Path: tt.path, IsDir: tt.isDir}
			assert.Equal(t, tt.want, f.Kind())
		})
	}
}

func TestNewLocalFile(t *testing.T) {
	f := NewLocalFile("/data/docs/report.pdf", 2048, false)
	assert.True(t, f.IsLocal())
	assert.Equal(t, "report.pdf", f.Name)
	assert.Equal(t, int64(2048), f.Size)
	assert.Equal(t, "/data/docs/report.pdf", f.FsPath())

	dir := NewLocalFile("/data/docs", 4096, true)
	assert.Equal(t, "docs", dir.Name)
	assert.Equal(t, UnknownSize, dir.Size)
}

func TestRemoteEntry_File(t *testing.T) {
	entry := RemoteEntry{
		Path:     "music/song.mp3",
		Name:     "song.mp3",
		Size:     1234,
		MimeType: "audio/mpeg",
		ModTime:  "2024-03-01T10:00:00.000000000Z",
	}

	f := entry.File(Remote("box"))

	assert.Equal(t, Remote("box"), f.Location)
	assert.Equal(t, "box:music/song.mp3", f.FsPath())
	assert.Equal(t, int64(1234), f.Size)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), f.ModTime.UTC())
	assert.Equal(t, FileKindAudio, f.Kind())
}
