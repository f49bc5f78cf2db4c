package transfers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"rcfm/internal/mocks"
	"rcfm/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func localReport() models.File {
	return models.NewLocalFile("/data/report.pdf", 2048, false)
}

func TestRegistry_Create_LocalFileToRemote(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	registry := NewRegistry(client)

	client.EXPECT().Size(mock.Anything, "/data/report.pdf").
		Return(&models.RCloneSize{Bytes: 2048, Count: 1}, nil).Once()
	client.EXPECT().StartFileTransfer(mock.Anything, models.OperationCopy,
		"/", "/data/report.pdf", "gdrive:", "backup/report.pdf").
		Return(int64(100), nil).Once()

	job, err := registry.Create(context.Background(), CreateRequest{
		Source:    localReport(),
		Dest:      models.Remote("gdrive"),
		DestPath:  "backup",
		Operation: models.OperationCopy,
	})
	require.NoError(t, err)

	jobs := registry.Jobs()
	require.Len(t, jobs, 1)
	assert.Same(t, job, jobs[0])
	assert.Equal(t, int64(100), job.ID)
	assert.Equal(t, "report.pdf", job.Name)
	assert.Equal(t, int64(2048), job.TotalSize)
	require.NotNil(t, job.NumTransfers)
	assert.Equal(t, 1, *job.NumTransfers)
	assert.Nil(t, job.Status())
	assert.Equal(t, "/data/report.pdf", job.Source)
	assert.Equal(t, "gdrive:backup/report.pdf", job.Destination)
	assert.Equal(t, []*Job{job}, registry.InProgress())
}

func TestRegistry_Create_RemoteDirectoryToLocal(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	registry := NewRegistry(client)

	src := models.File{Location: models.Remote("box"), Path: "photos/2024", Name: "2024", Size: models.UnknownSize, IsDir: true}

	client.EXPECT().Size(mock.Anything, "box:photos/2024").
		Return(&models.RCloneSize{Bytes: 9000, Count: 12}, nil).Once()
	client.EXPECT().StartDirSync(mock.Anything, models.OperationMove, "box:photos/2024", "/sdcard/Pictures/2024").
		Return(int64(5), nil).Once()

	job, err := registry.Create(context.Background(), CreateRequest{
		Source:    src,
		Dest:      models.Local(),
		DestPath:  "/sdcard/Pictures",
		Operation: models.OperationMove,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9000), job.TotalSize)
	assert.Equal(t, 12, *job.NumTransfers)
	assert.Equal(t, models.OperationMove, job.Operation)
}

func TestRegistry_Create_SizeFailureFallsBackToKnownSize(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	registry := NewRegistry(client)

	client.EXPECT().Size(mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()
	client.EXPECT().StartFileTransfer(mock.Anything, models.OperationCopy, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(1), nil).Once()

	job, err := registry.Create(context.Background(), CreateRequest{
		Source:   localReport(),
		Dest:     models.Remote("gdrive"),
		DestPath: "backup",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2048), job.TotalSize)
	assert.Nil(t, job.NumTransfers)
	assert.Equal(t, models.OperationCopy, job.Operation)
}

func TestRegistry_Create_StartFailureRegistersNothing(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	registry := NewRegistry(client)

	client.EXPECT().Size(mock.Anything, mock.Anything).Return(&models.RCloneSize{Bytes: 1}, nil).Once()
	client.EXPECT().StartFileTransfer(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("directory not found")).Once()

	job, err := registry.Create(context.Background(), CreateRequest{
		Source:   localReport(),
		Dest:     models.Remote("gdrive"),
		DestPath: "missing",
	})
	require.Error(t, err)
	assert.Nil(t, job)
	assert.Contains(t, err.Error(), "directory not found")
	assert.Empty(t, registry.Jobs())
}

func TestRegistry_Create_InvalidOperation(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	registry := NewRegistry(client)

	_, err := registry.Create(context.Background(), CreateRequest{
		Source:    localReport(),
		Operation: models.Operation("sync"),
	})
	require.Error(t, err)
	assert.Empty(t, registry.Jobs())
}

func TestRegistry_Create_ReusedIDReplacesStaleJob(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	registry := NewRegistry(client)

	client.EXPECT().Size(mock.Anything, mock.Anything).Return(&models.RCloneSize{Bytes: 1}, nil)
	client.EXPECT().StartFileTransfer(mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(int64(1), nil)

	req := CreateRequest{Source: localReport(), Dest: models.Remote("gdrive"), DestPath: "a"}
	first, err := registry.Create(context.Background(), req)
	require.NoError(t, err)
	second, err := registry.Create(context.Background(), req)
	require.NoError(t, err)

	jobs := registry.Jobs()
	require.Len(t, jobs, 1)
	assert.Same(t, second, jobs[0])
	assert.NotSame(t, first, jobs[0])
}

func newTestRegistry(client *mocks.MockTransferClient, jobs ...*Job) *Registry {
	registry := NewRegistry(client)
	for _, job := range jobs {
		job.client = client
		registry.add(job)
	}
	return registry
}

func TestRegistry_RefreshAll_ClassifiesCompletedAndFailed(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	ok := NewJob(nil, 1, "ok.bin", 100)
	bad := NewJob(nil, 2, "bad.bin", 100)
	registry := newTestRegistry(client, ok, bad)

	client.EXPECT().JobStatus(mock.Anything, int64(1)).Return(&models.JobStatus{Finished: true, Success: true}, nil).Once()
	client.EXPECT().JobStats(mock.Anything, int64(1)).Return(&models.JobStats{Bytes: 100}, nil).Once()
	client.EXPECT().JobStatus(mock.Anything, int64(2)).Return(&models.JobStatus{Finished: true, Error: "disk full"}, nil).Once()
	client.EXPECT().JobStats(mock.Anything, int64(2)).Return(&models.JobStats{Bytes: 10}, nil).Once()

	registry.RefreshAll(context.Background())

	assert.Equal(t, []*Job{ok}, registry.Completed())
	assert.Equal(t, []*Job{bad}, registry.Failed())
	assert.Empty(t, registry.InProgress())
	assert.Equal(t, "disk full", bad.Status().Error)

	// finished jobs are never polled again; the mock fails on unexpected calls
	registry.RefreshAll(context.Background())
}

func TestRegistry_RefreshAll_NoCallsWhenAllFinished(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	done := NewJob(nil, 1, "done.bin", 10)
	done.status = &models.JobStatus{Finished: true, Success: true}
	failed := NewJob(nil, 2, "failed.bin", 10)
	failed.status = &models.JobStatus{Finished: true}
	registry := newTestRegistry(client, done, failed)

	registry.RefreshAll(context.Background())

	client.AssertNotCalled(t, "JobStatus", mock.Anything, mock.Anything)
	client.AssertNotCalled(t, "JobStats", mock.Anything, mock.Anything)
}

func TestRegistry_RefreshAll_RecordsHistoryOnce(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	history := mocks.NewMockHistoryRepository(t)

	job := NewJob(client, 4, "movie.mkv", 4000)
	job.Operation = models.OperationMove
	job.Source = "/data/movie.mkv"
	job.Destination = "box:movies/movie.mkv"

	registry := NewRegistry(client, WithHistory(history))
	registry.add(job)

	client.EXPECT().JobStatus(mock.Anything, int64(4)).Return(&models.JobStatus{Finished: true, Success: true}, nil).Once()
	client.EXPECT().JobStats(mock.Anything, int64(4)).Return(&models.JobStats{Bytes: 4000}, nil).Once()
	history.EXPECT().CreateTransferRecord(mock.MatchedBy(func(r *models.TransferRecord) bool {
		return r.JobID == 4 && r.Success && r.BytesTransferred == 4000 &&
			r.Operation == models.OperationMove && r.Destination == "box:movies/movie.mkv"
	})).Return(nil).Once()

	registry.RefreshAll(context.Background())
	registry.RefreshAll(context.Background())
	registry.recordFinished(job)
}

func TestRegistry_RefreshAll_NotifiesFinishedJobs(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	notifier := mocks.NewMockNotifier(t)

	job := NewJob(client, 9, "backup.tar", 500)
	registry := NewRegistry(client, WithNotifier(notifier))
	registry.add(job)

	client.EXPECT().JobStatus(mock.Anything, int64(9)).Return(&models.JobStatus{Finished: true, Error: "quota exceeded"}, nil).Once()
	client.EXPECT().JobStats(mock.Anything, int64(9)).Return(&models.JobStats{Bytes: 120}, nil).Once()
	notifier.EXPECT().TransferFinished(mock.Anything, mock.MatchedBy(func(r *models.TransferRecord) bool {
		return r.JobID == 9 && !r.Success && r.ErrorMessage == "quota exceeded"
	})).Return(errors.New("pushover unavailable")).Once()

	registry.RefreshAll(context.Background())
	registry.RefreshAll(context.Background())
	registry.WaitNotifications()
}

func TestRegistry_Remove_StopsInProgressJob(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	job := NewJob(nil, 8, "a.bin", 10)
	registry := newTestRegistry(client, job)

	var registeredDuringStop atomic.Bool
	client.EXPECT().StopJob(mock.Anything, int64(8)).
		RunAndReturn(func(ctx context.Context, id int64) error {
			_, err := registry.Get(8)
			registeredDuringStop.Store(err == nil)
			return nil
		}).Once()

	err := registry.Remove(context.Background(), 8)
	require.NoError(t, err)

	assert.True(t, registeredDuringStop.Load(), "job must still be registered when the stop is sent")
	assert.Empty(t, registry.Jobs())
}

func TestRegistry_Remove_ContextEndsBeforeStopAnswers(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	job := NewJob(nil, 8, "a.bin", 10)
	registry := newTestRegistry(client, job)

	release := make(chan struct{})
	var returned atomic.Bool
	client.EXPECT().StopJob(mock.Anything, int64(8)).
		RunAndReturn(func(ctx context.Context, id int64) error {
			<-release
			returned.Store(true)
			return nil
		}).Once()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	require.NoError(t, registry.Remove(ctx, 8))
	assert.Empty(t, registry.Jobs())

	close(release)
	assert.Eventually(t, returned.Load, time.Second, 10*time.Millisecond)
}

func TestRegistry_Remove_StopFailureStillRemoves(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	job := NewJob(nil, 8, "a.bin", 10)
	registry := newTestRegistry(client, job)

	var called atomic.Bool
	client.EXPECT().StopJob(mock.Anything, int64(8)).
		RunAndReturn(func(ctx context.Context, id int64) error {
			called.Store(true)
			return errors.New("connection refused")
		}).Once()

	require.NoError(t, registry.Remove(context.Background(), 8))
	assert.Empty(t, registry.Jobs())
	assert.Eventually(t, called.Load, time.Second, 10*time.Millisecond)
}

func TestRegistry_Remove_FinishedJobSkipsStop(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	job := NewJob(nil, 8, "a.bin", 10)
	job.status = &models.JobStatus{Finished: true, Success: true}
	registry := newTestRegistry(client, job)

	require.NoError(t, registry.Remove(context.Background(), 8))
	assert.Empty(t, registry.Jobs())
	client.AssertNotCalled(t, "StopJob", mock.Anything, mock.Anything)
}

func TestRegistry_Remove_UnknownJob(t *testing.T) {
	registry := NewRegistry(mocks.NewMockTransferClient(t))

	err := registry.Remove(context.Background(), 99)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRegistry_Get(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	job := NewJob(nil, 8, "a.bin", 10)
	registry := newTestRegistry(client, job)

	got, err := registry.Get(8)
	require.NoError(t, err)
	assert.Same(t, job, got)

	_, err = registry.Get(9)
	assert.ErrorIs(t, err, ErrJobNotFound)
}

func TestRegistry_ClassificationPartitionsJobs(t *testing.T) {
	statuses := []*models.JobStatus{
		nil,
		{Finished: false},
		{Finished: false, Success: true},
		{Finished: true, Success: true},
		{Finished: true, Success: false, Error: "quota exceeded"},
		{Finished: true, Success: false},
	}

	client := mocks.NewMockTransferClient(t)
	var jobs []*Job
	for i, status := range statuses {
		job := NewJob(nil, int64(i+1), "f", 10)
		job.status = status
		jobs = append(jobs, job)
	}
	registry := newTestRegistry(client, jobs...)

	inProgress := registry.InProgress()
	completed := registry.Completed()
	failed := registry.Failed()

	assert.Len(t, inProgress, 3)
	assert.Len(t, completed, 1)
	assert.Len(t, failed, 2)
	assert.Equal(t, len(registry.Jobs()), len(inProgress)+len(completed)+len(failed))

	seen := make(map[int64]int)
	for _, list := range [][]*Job{inProgress, completed, failed} {
		for _, job := range list {
			seen[job.ID]++
		}
	}
	for _, job := range registry.Jobs() {
		assert.Equal(t, 1, seen[job.ID], "job %d", job.ID)
	}

	summary := registry.Summary()
	assert.Equal(t, &models.TransferSummary{Total: 6, InProgress: 3, Completed: 1, Failed: 2}, summary)
	assert.Equal(t, completed, registry.ByState(models.TransferStateCompleted))
}

func TestRegistry_JobsKeepsInsertionOrder(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	a := NewJob(nil, 30, "a", 1)
	b := NewJob(nil, 10, "b", 1)
	c := NewJob(nil, 20, "c", 1)
	registry := newTestRegistry(client, a, b, c)

	assert.Equal(t, []*Job{a, b, c}, registry.Jobs())
}

func TestRegistry_Polling(t *testing.T) {
	client := mocks.NewMockTransferClient(t)
	job := NewJob(nil, 1, "a.bin", 100)
	registry := newTestRegistry(client, job)

	client.EXPECT().JobStatus(mock.Anything, int64(1)).Return(&models.JobStatus{Finished: true, Success: true}, nil).Once()
	client.EXPECT().JobStats(mock.Anything, int64(1)).Return(&models.JobStats{Bytes: 100}, nil).Once()

	registry.StartPolling(context.Background(), 10*time.Millisecond)
	registry.StartPolling(context.Background(), 10*time.Millisecond)
	assert.True(t, registry.Polling())

	assert.Eventually(t, func() bool {
		return len(registry.Completed()) == 1
	}, time.Second, 10*time.Millisecond)

	registry.StopPolling()
	registry.StopPolling()
	assert.False(t, registry.Polling())
}
