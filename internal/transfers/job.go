package transfers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"rcfm/internal/interfaces"
	"rcfm/internal/models"
)

// Job is a single transfer running on the rclone daemon
type Job struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	TotalSize    int64            `json:"total_size"`
	NumTransfers *int             `json:"num_transfers,omitempty"`
	Operation    models.Operation `json:"operation"`
	Source       string           `json:"source"`
	Destination  string           `json:"destination"`
	CreatedAt    time.Time        `json:"created_at"`

	client interfaces.TransferClient

	mu       sync.RWMutex
	status   *models.JobStatus
	stats    *models.JobStats
	recorded bool
}

// NewJob creates a job for an already started daemon job id
func NewJob(client interfaces.TransferClient, id int64, name string, totalSize int64) *Job {
	return &Job{
		ID:        id,
		Name:      name,
		TotalSize: totalSize,
		CreatedAt: time.Now(),
		client:    client,
	}
}

// Refresh polls the daemon for the job status and stats.
// Both polls run concurrently and each one only overwrites its own field on success.
// Failures are logged and leave the previous value in place.
func (j *Job) Refresh(ctx context.Context) {
	if j.Finished() {
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		status, err := j.client.JobStatus(ctx, j.ID)
		if err != nil {
			slog.Debug("failed to poll job status", "job_id", j.ID, "error", err)
			return
		}
		j.mu.Lock()
		j.status = status
		j.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		stats, err := j.client.JobStats(ctx, j.ID)
		if err != nil {
			slog.Debug("failed to poll job stats", "job_id", j.ID, "error", err)
			return
		}
		j.mu.Lock()
		j.stats = stats
		j.mu.Unlock()
	}()

	wg.Wait()
}

// Stop asks the daemon to stop the job without waiting for the answer.
// The returned channel is closed once the request has completed.
func (j *Job) Stop(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	ctx = context.WithoutCancel(ctx)

	go func() {
		defer close(done)
		if err := j.client.StopJob(ctx, j.ID); err != nil {
			slog.Warn("failed to stop job", "job_id", j.ID, "error", err)
			return
		}
		slog.Info("job stopped", "job_id", j.ID)
	}()

	return done
}

// Status returns a copy of the last polled status, nil before the first successful poll
func (j *Job) Status() *models.JobStatus {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.status == nil {
		return nil
	}
	status := *j.status
	return &status
}

// Stats returns a copy of the last polled stats, nil before the first successful poll
func (j *Job) Stats() *models.JobStats {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.stats == nil {
		return nil
	}
	stats := *j.stats
	stats.Transferring = append([]models.FileTransfer(nil), j.stats.Transferring...)
	return &stats
}

// Finished reports whether the daemon has reported the job as done
func (j *Job) Finished() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.status != nil && j.status.Finished
}

// State classifies the job
func (j *Job) State() models.TransferState {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return models.StateOf(j.status)
}

// PercentDone returns the transferred fraction in [0,1].
// ok is false until stats have been fetched or when the total size is unknown.
func (j *Job) PercentDone() (fraction float64, ok bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.stats == nil || j.TotalSize <= 0 {
		return 0, false
	}

	fraction = float64(j.stats.Bytes) / float64(j.TotalSize)
	switch {
	case fraction < 0:
		fraction = 0
	case fraction > 1:
		fraction = 1
	}
	return fraction, true
}

// markRecorded flips the recorded flag and reports whether it was already set
func (j *Job) markRecorded() bool {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.recorded {
		return true
	}
	j.recorded = true
	return false
}

// Record builds the history row for a finished job
func (j *Job) Record() *models.TransferRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()

	record := &models.TransferRecord{
		JobID:       j.ID,
		Name:        j.Name,
		Operation:   j.Operation,
		Source:      j.Source,
		Destination: j.Destination,
		TotalSize:   j.TotalSize,
		StartedAt:   j.CreatedAt,
		FinishedAt:  time.Now(),
	}
	if j.status != nil {
		record.Success = j.status.Success
		record.ErrorMessage = j.status.Error
	}
	if j.stats != nil {
		record.BytesTransferred = j.stats.Bytes
	}
	return record
}

// View is the JSON shape of a job as returned by the API
type View struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	TotalSize    int64                `json:"total_size"`
	NumTransfers *int                 `json:"num_transfers,omitempty"`
	Operation    models.Operation     `json:"operation"`
	Source       string               `json:"source"`
	Destination  string               `json:"destination"`
	CreatedAt    time.Time            `json:"created_at"`
	State        models.TransferState `json:"state"`
	Error        string               `json:"error,omitempty"`
	Bytes        int64                `json:"bytes"`
	Speed        float64              `json:"speed"`
	PercentDone  *float64             `json:"percent_done,omitempty"`
}

// View returns a consistent snapshot of the job
func (j *Job) View() View {
	v := View{
		ID:           j.ID,
		Name:         j.Name,
		TotalSize:    j.TotalSize,
		NumTransfers: j.NumTransfers,
		Operation:    j.Operation,
		Source:       j.Source,
		Destination:  j.Destination,
		CreatedAt:    j.CreatedAt,
	}

	status := j.Status()
	v.State = models.StateOf(status)
	if status != nil {
		v.Error = status.Error
	}
	if stats := j.Stats(); stats != nil {
		v.Bytes = stats.Bytes
		v.Speed = stats.Speed
	}
	if pct, ok := j.PercentDone(); ok {
		v.PercentDone = &pct
	}
	return v
}
