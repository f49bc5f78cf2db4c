package rclone

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"rcfm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("http://[::1]:48725/", DefaultTimeouts())
	assert.NotNil(t, client)
	assert.Equal(t, "http://[::1]:48725", client.BaseURL())
	assert.NotNil(t, client.httpClient)
	assert.Zero(t, client.httpClient.Timeout)
	assert.Equal(t, time.Second, client.limits().Poll)

	client.SetTimeouts(Timeouts{Poll: 3 * time.Second})
	assert.Equal(t, 3*time.Second, client.limits().Poll)
}

func TestClient_Size(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/operations/size", r.URL.Path)
		assert.Equal(t, "gdrive:docs/report.pdf", r.URL.Query().Get("fs"))

		json.NewEncoder(w).Encode(models.RCloneSize{Bytes: 2048, Count: 1})
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	size, err := client.Size(context.Background(), "gdrive:docs/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(2048), size.Bytes)
	assert.Equal(t, 1, size.Count)
}

func TestClient_StartFileTransfer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/operations/movefile", r.URL.Path)
		assert.Empty(t, r.Header.Get("Content-Type"))

		q := r.URL.Query()
		assert.Equal(t, "/", q.Get("srcFs"))
		assert.Equal(t, "/data/report.pdf", q.Get("srcRemote"))
		assert.Equal(t, "gdrive:", q.Get("dstFs"))
		assert.Equal(t, "backup/report.pdf", q.Get("dstRemote"))
		assert.Equal(t, "true", q.Get("_async"))

		json.NewEncoder(w).Encode(models.RCloneJobStarted{JobID: 12345})
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	jobID, err := client.StartFileTransfer(context.Background(), models.OperationMove,
		"/", "/data/report.pdf", "gdrive:", "backup/report.pdf")
	require.NoError(t, err)
	assert.Equal(t, int64(12345), jobID)
}

func TestClient_StartDirSync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sync/copy", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "gdrive:photos", q.Get("srcFs"))
		assert.Equal(t, "/data/photos", q.Get("dstFs"))
		assert.Equal(t, "true", q.Get("_async"))

		json.NewEncoder(w).Encode(models.RCloneJobStarted{JobID: 7})
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	jobID, err := client.StartDirSync(context.Background(), models.OperationCopy, "gdrive:photos", "/data/photos")
	require.NoError(t, err)
	assert.Equal(t, int64(7), jobID)
}

func TestClient_JobStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/job/status", r.URL.Path)
		assert.Equal(t, "12345", r.URL.Query().Get("jobid"))

		w.Write([]byte(`{"finished":true,"error":"disk full","success":false,"id":12345}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	status, err := client.JobStatus(context.Background(), 12345)
	require.NoError(t, err)
	assert.True(t, status.Finished)
	assert.False(t, status.Success)
	assert.Equal(t, "disk full", status.Error)
}

func TestClient_JobStats(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/core/stats", r.URL.Path)
		assert.Equal(t, "job/42", r.URL.Query().Get("group"))

		w.Write([]byte(`{"speed":1024.5,"bytes":500,"transferring":[{"name":"a.bin","size":1000}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	stats, err := client.JobStats(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(500), stats.Bytes)
	assert.Equal(t, 1024.5, stats.Speed)
	require.Len(t, stats.Transferring, 1)
	assert.Equal(t, int64(1000), stats.Transferring[0].Size)
}

func TestClient_StopJob(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/job/stop", r.URL.Path)
		assert.Equal(t, "12345", r.URL.Query().Get("jobid"))

		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	err := client.StopJob(context.Background(), 12345)
	require.NoError(t, err)
}

func TestClient_Ping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/core/pid", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]int{"pid": 1234})
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	err := client.Ping(context.Background())
	require.NoError(t, err)
}

func TestClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/operations/list", r.URL.Path)
		assert.Equal(t, "box:", r.URL.Query().Get("fs"))
		assert.Equal(t, "music", r.URL.Query().Get("remote"))

		w.Write([]byte(`{"list":[{"Path":"music/a.mp3","Name":"a.mp3","Size":10,"MimeType":"audio/mpeg","ModTime":"2024-01-01T00:00:00Z","IsDir":false}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	entries, err := client.List(context.Background(), "box:", "music")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.mp3", entries[0].Name)
	assert.Equal(t, int64(10), entries[0].Size)
}

func TestClient_MoveFile_SendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/operations/movefile", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.URL.RawQuery)

		var req MoveFileRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "box:", req.SrcFs)
		assert.Equal(t, "docs/old.txt", req.SrcRemote)
		assert.Equal(t, "box:", req.DstFs)
		assert.Equal(t, "docs/new.txt", req.DstRemote)

		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	err := client.MoveFile(context.Background(), "box:", "docs/old.txt", "box:", "docs/new.txt")
	require.NoError(t, err)
}

func TestClient_ListRemotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/config/dump", r.URL.Path)
		w.Write([]byte(`{"s3":{"type":"s3","provider":"AWS"},"box":{"type":"box"},"broken":"nope"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	remotes, err := client.ListRemotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.RemoteConfig{
		{Name: "box", Type: "box"},
		{Name: "s3", Type: "s3"},
	}, remotes)
}

func TestClient_DaemonErrors(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		body        string
		wantMessage string
		wantNoData  bool
	}{
		{"error envelope", http.StatusInternalServerError, `{"error":"directory not found","status":500}`, "directory not found", false},
		{"plain text body", http.StatusBadRequest, "invalid request", "", false},
		{"empty body", http.StatusNotFound, "", "", true},
		{"envelope without message", http.StatusInternalServerError, `{"status":500}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewClient(server.URL, DefaultTimeouts())
			_, err := client.StartDirSync(context.Background(), models.OperationCopy, "src", "dst")
			require.Error(t, err)

			var daemonErr *DaemonError
			require.True(t, errors.As(err, &daemonErr))
			assert.Equal(t, tt.statusCode, daemonErr.StatusCode)
			assert.Equal(t, tt.wantMessage, daemonErr.Message)
			assert.Equal(t, tt.wantNoData, errors.Is(err, ErrNoData))
			assert.True(t, IsDaemonError(err))
			assert.False(t, IsDecodeError(err))

			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, err.Error())
			}
			if tt.body == "invalid request" {
				assert.Contains(t, err.Error(), "invalid request")
			}
		})
	}
}

func TestClient_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("not valid json"))
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	_, err := client.JobStatus(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
	assert.False(t, IsDaemonError(err))
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestClient_EmptyBodyWhenDataExpected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	_, err := client.Size(context.Background(), "/data")
	require.Error(t, err)
	assert.True(t, IsDecodeError(err))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, DefaultTimeouts())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.JobStatus(ctx, 1)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_PerCallTimeout(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"finished":false}`))
	}))
	defer server.Close()

	timeouts := DefaultTimeouts()
	timeouts.Poll = 20 * time.Millisecond
	client := NewClient(server.URL, timeouts)

	_, err := client.JobStatus(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load(), "failed calls are not retried")
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(url, DefaultTimeouts())
	err := client.Ping(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransportError(err))
}

func TestJobGroup(t *testing.T) {
	assert.Equal(t, "job/497670", JobGroup(497670))
}
