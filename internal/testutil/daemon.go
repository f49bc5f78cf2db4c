package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"

	"rcfm/internal/models"
	"rcfm/internal/rclone"
)

// DaemonCall is one request received by a FakeDaemon
type DaemonCall struct {
	Path  string
	Query url.Values
	Body  string
}

// FakeDaemon is an in-process stand-in for the rclone RC server.
// Jobs it starts stay unfinished until FinishJob is called.
type FakeDaemon struct {
	Server *httptest.Server

	mu        sync.Mutex
	calls     []DaemonCall
	nextJobID int64
	jobs      map[int64]*models.JobStatus
	stats     map[int64]*models.JobStats
	sizes     map[string]models.RCloneSize
	listings  map[string][]models.RemoteEntry
	remotes   map[string]string
	failures  map[string]string
}

// NewFakeDaemon starts a fake daemon that is shut down when the test ends
func NewFakeDaemon(t *testing.T) *FakeDaemon {
	t.Helper()

	d := &FakeDaemon{
		nextJobID: 1,
		jobs:      make(map[int64]*models.JobStatus),
		stats:     make(map[int64]*models.JobStats),
		sizes:     make(map[string]models.RCloneSize),
		listings:  make(map[string][]models.RemoteEntry),
		remotes:   make(map[string]string),
		failures:  make(map[string]string),
	}
	d.Server = httptest.NewServer(http.HandlerFunc(d.serve))
	t.Cleanup(d.Server.Close)

	return d
}

// Client returns an RC client pointed at the fake daemon
func (d *FakeDaemon) Client() *rclone.Client {
	return rclone.NewClient(d.Server.URL, rclone.DefaultTimeouts())
}

// SetSize sets the operations/size answer for fs
func (d *FakeDaemon) SetSize(fs string, bytes int64, count int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sizes[fs] = models.RCloneSize{Bytes: bytes, Count: count}
}

// SetListing sets the operations/list answer for fs and remote
func (d *FakeDaemon) SetListing(fs, remote string, entries []models.RemoteEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listings[fs+remote] = entries
}

// AddRemote adds a remote to the config/dump answer
func (d *FakeDaemon) AddRemote(name, typ string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.remotes[name] = typ
}

// Fail makes every request to path answer 500 with message in the error envelope
func (d *FakeDaemon) Fail(path, message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[path] = message
}

// SetProgress sets the bytes reported by core/stats for a job
func (d *FakeDaemon) SetProgress(jobID, bytes int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats[jobID] = &models.JobStats{Bytes: bytes, Speed: 1024}
}

// FinishJob marks a job finished. An empty errMsg means success.
func (d *FakeDaemon) FinishJob(jobID int64, errMsg string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jobs[jobID] = &models.JobStatus{Finished: true, Success: errMsg == "", Error: errMsg}
}

// Calls returns the requests received so far
func (d *FakeDaemon) Calls() []DaemonCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]DaemonCall(nil), d.calls...)
}

// CallsTo returns the requests received for path
func (d *FakeDaemon) CallsTo(path string) []DaemonCall {
	var out []DaemonCall
	for _, c := range d.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

func (d *FakeDaemon) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/")
	q := r.URL.Query()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, DaemonCall{Path: path, Query: q, Body: string(body)})

	if msg, ok := d.failures[path]; ok {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": msg, "status": 500, "path": path})
		return
	}

	switch path {
	case "core/pid":
		writeJSON(w, http.StatusOK, map[string]int{"pid": 4242})

	case "operations/size":
		size, ok := d.sizes[q.Get("fs")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "directory not found"})
			return
		}
		writeJSON(w, http.StatusOK, size)

	case "operations/copyfile", "operations/movefile", "sync/copy", "sync/move":
		if q.Get("_async") != "true" {
			// synchronous movefile used for renames
			writeJSON(w, http.StatusOK, map[string]string{})
			return
		}
		id := d.nextJobID
		d.nextJobID++
		d.jobs[id] = &models.JobStatus{}
		writeJSON(w, http.StatusOK, models.RCloneJobStarted{JobID: id})

	case "job/status":
		id, _ := strconv.ParseInt(q.Get("jobid"), 10, 64)
		status, ok := d.jobs[id]
		if !ok {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "job not found"})
			return
		}
		writeJSON(w, http.StatusOK, status)

	case "core/stats":
		id, _ := strconv.ParseInt(strings.TrimPrefix(q.Get("group"), "job/"), 10, 64)
		stats, ok := d.stats[id]
		if !ok {
			stats = &models.JobStats{}
		}
		writeJSON(w, http.StatusOK, stats)

	case "job/stop":
		id, _ := strconv.ParseInt(q.Get("jobid"), 10, 64)
		if _, ok := d.jobs[id]; !ok {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "job not found"})
			return
		}
		d.jobs[id] = &models.JobStatus{Finished: true, Error: "context canceled"}
		writeJSON(w, http.StatusOK, map[string]string{})

	case "operations/list":
		entries := d.listings[q.Get("fs")+q.Get("remote")]
		if entries == nil {
			entries = []models.RemoteEntry{}
		}
		writeJSON(w, http.StatusOK, models.RCloneListResponse{List: entries})

	case "operations/mkdir", "operations/deletefile", "operations/purge":
		writeJSON(w, http.StatusOK, map[string]string{})

	case "config/dump":
		dump := make(map[string]map[string]string, len(d.remotes))
		for name, typ := range d.remotes {
			dump[name] = map[string]string{"type": typ}
		}
		writeJSON(w, http.StatusOK, dump)

	case "config/delete":
		delete(d.remotes, q.Get("name"))
		writeJSON(w, http.StatusOK, map[string]string{})

	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "couldn't find method \"" + path + "\""})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
