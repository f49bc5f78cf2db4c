package transfers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"rcfm/internal/interfaces"
	"rcfm/internal/models"
)

const notifyTimeout = 30 * time.Second

// ErrJobNotFound is returned when no job with the given id is registered
var ErrJobNotFound = errors.New("job not found")

// CreateRequest describes a transfer of one file or directory into a destination directory
type CreateRequest struct {
	Source    models.File      `json:"source"`
	Dest      models.Location  `json:"dest"`
	DestPath  string           `json:"dest_path"`
	Operation models.Operation `json:"operation"`
}

// Registry is the ordered set of transfer jobs known to this session
type Registry struct {
	client   interfaces.TransferClient
	history  interfaces.HistoryRepository
	notifier interfaces.Notifier

	mu   sync.RWMutex
	jobs []*Job

	pollMu sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	notifyWG sync.WaitGroup
}

// Option configures a Registry
type Option func(*Registry)

// WithHistory records every job into repo once it finishes
func WithHistory(repo interfaces.HistoryRepository) Option {
	return func(r *Registry) {
		r.history = repo
	}
}

// WithNotifier sends every finished job to n
func WithNotifier(n interfaces.Notifier) Option {
	return func(r *Registry) {
		r.notifier = n
	}
}

// NewRegistry creates an empty registry talking to the daemon through client
func NewRegistry(client interfaces.TransferClient, opts ...Option) *Registry {
	r := &Registry{client: client}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create starts a transfer on the daemon and registers the resulting job
func (r *Registry) Create(ctx context.Context, req CreateRequest) (*Job, error) {
	if req.Operation == "" {
		req.Operation = models.OperationCopy
	}
	if !req.Operation.Valid() {
		return nil, fmt.Errorf("invalid operation %q", req.Operation)
	}

	src := req.Source
	dst := req.Dest
	destRemote := req.DestPath + "/" + src.Name

	totalSize := src.Size
	var numTransfers *int

	size, err := r.client.Size(ctx, src.Location.Prefix()+src.Path)
	if err != nil {
		slog.Debug("size query failed, using known size", "source", src.FsPath(), "error", err)
	} else {
		totalSize = size.Bytes
		count := size.Count
		numTransfers = &count
	}

	var jobID int64
	if src.IsDir {
		jobID, err = r.client.StartDirSync(ctx, req.Operation, src.Location.Prefix()+src.Path, dst.Prefix()+destRemote)
	} else {
		jobID, err = r.client.StartFileTransfer(ctx, req.Operation, src.Location.Fs(), src.Path, dst.Fs(), destRemote)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to start %s of %s: %w", req.Operation, src.Name, err)
	}

	job := NewJob(r.client, jobID, src.Name, totalSize)
	job.NumTransfers = numTransfers
	job.Operation = req.Operation
	job.Source = src.FsPath()
	job.Destination = dst.Join(destRemote)

	r.add(job)

	slog.Info("transfer started",
		"job_id", job.ID,
		"name", job.Name,
		"operation", job.Operation,
		"source", job.Source,
		"destination", job.Destination,
		"total_size", job.TotalSize)

	return job, nil
}

// add appends a job, replacing a stale entry that carries the same daemon id
func (r *Registry) add(job *Job) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.jobs {
		if existing.ID == job.ID {
			slog.Warn("replacing job with reused id", "job_id", job.ID)
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			break
		}
	}
	r.jobs = append(r.jobs, job)
}

// Remove drops a job from the registry. A job still in progress is stopped first;
// Remove waits for the stop request to be answered (or ctx to end) before dropping it,
// whether or not the daemon accepted it.
func (r *Registry) Remove(ctx context.Context, id int64) error {
	job, err := r.Get(id)
	if err != nil {
		return err
	}

	if job.State() == models.TransferStateInProgress {
		select {
		case <-job.Stop(ctx):
		case <-ctx.Done():
		}
	}

	r.mu.Lock()
	for i, existing := range r.jobs {
		if existing == job {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			break
		}
	}
	r.mu.Unlock()

	slog.Info("transfer removed", "job_id", id)
	return nil
}

// RefreshAll polls every job that is in progress when the call starts
func (r *Registry) RefreshAll(ctx context.Context) {
	active := r.InProgress()
	if len(active) == 0 {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, job := range active {
		job := job
		g.Go(func() error {
			job.Refresh(gctx)
			return nil
		})
	}
	// Refresh never fails
	_ = g.Wait()

	for _, job := range active {
		if job.Finished() {
			r.recordFinished(job)
		}
	}
}

func (r *Registry) recordFinished(job *Job) {
	if job.markRecorded() {
		return
	}

	state := job.State()
	slog.Info("transfer finished", "job_id", job.ID, "name", job.Name, "state", state)

	if r.history == nil && r.notifier == nil {
		return
	}
	record := job.Record()

	if r.history != nil {
		if err := r.history.CreateTransferRecord(record); err != nil {
			slog.Error("failed to record transfer history", "job_id", job.ID, "error", err)
		}
	}

	if r.notifier != nil {
		r.notifyWG.Add(1)
		go func() {
			defer r.notifyWG.Done()
			ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
			defer cancel()
			if err := r.notifier.TransferFinished(ctx, record); err != nil {
				slog.Warn("failed to send transfer notification", "job_id", record.JobID, "error", err)
			}
		}()
	}
}

// WaitNotifications blocks until every notification sent so far has been delivered or failed
func (r *Registry) WaitNotifications() {
	r.notifyWG.Wait()
}

// Jobs returns every registered job in insertion order
func (r *Registry) Jobs() []*Job {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Job(nil), r.jobs...)
}

// Get returns the job with the given id
func (r *Registry) Get(id int64) (*Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, job := range r.jobs {
		if job.ID == id {
			return job, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrJobNotFound, id)
}

// InProgress returns the jobs without a finished status
func (r *Registry) InProgress() []*Job {
	return r.filter(models.TransferStateInProgress)
}

// Completed returns the jobs that finished successfully
func (r *Registry) Completed() []*Job {
	return r.filter(models.TransferStateCompleted)
}

// Failed returns the jobs that finished with an error
func (r *Registry) Failed() []*Job {
	return r.filter(models.TransferStateFailed)
}

// ByState returns the jobs currently classified as state
func (r *Registry) ByState(state models.TransferState) []*Job {
	return r.filter(state)
}

func (r *Registry) filter(state models.TransferState) []*Job {
	jobs := r.Jobs()
	filtered := make([]*Job, 0, len(jobs))
	for _, job := range jobs {
		if job.State() == state {
			filtered = append(filtered, job)
		}
	}
	return filtered
}

// Summary counts the jobs per state
func (r *Registry) Summary() *models.TransferSummary {
	summary := &models.TransferSummary{}
	for _, job := range r.Jobs() {
		summary.Total++
		switch job.State() {
		case models.TransferStateInProgress:
			summary.InProgress++
		case models.TransferStateCompleted:
			summary.Completed++
		case models.TransferStateFailed:
			summary.Failed++
		}
	}
	return summary
}
