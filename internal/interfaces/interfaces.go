package interfaces

import (
	"context"

	"rcfm/internal/models"
)

// TransferClient is the subset of the rclone RC API used to start and track transfer jobs
type TransferClient interface {
	Size(ctx context.Context, fs string) (*models.RCloneSize, error)
	StartFileTransfer(ctx context.Context, op models.Operation, srcFs, srcRemote, dstFs, dstRemote string) (int64, error)
	StartDirSync(ctx context.Context, op models.Operation, srcFs, dstFs string) (int64, error)
	JobStatus(ctx context.Context, jobID int64) (*models.JobStatus, error)
	JobStats(ctx context.Context, jobID int64) (*models.JobStats, error)
	StopJob(ctx context.Context, jobID int64) error
}

// FileClient is the subset of the rclone RC API used to browse and manage remote files
type FileClient interface {
	List(ctx context.Context, fs, remote string) ([]models.RemoteEntry, error)
	Mkdir(ctx context.Context, fs, remote string) error
	DeleteFile(ctx context.Context, fs, remote string) error
	Purge(ctx context.Context, fs, remote string) error
	MoveFile(ctx context.Context, srcFs, srcRemote, dstFs, dstRemote string) error
	ListRemotes(ctx context.Context) ([]models.RemoteConfig, error)
	DeleteRemote(ctx context.Context, name string) error
}

// RCloneClient is everything the server needs from the daemon
type RCloneClient interface {
	TransferClient
	FileClient
	Ping(ctx context.Context) error
}

// HistoryRepository stores finished transfers
type HistoryRepository interface {
	CreateTransferRecord(record *models.TransferRecord) error
	GetTransferRecord(id int64) (*models.TransferRecord, error)
	GetTransferRecords(filter models.HistoryFilter) ([]*models.TransferRecord, error)
	DeleteTransferRecord(id int64) error
	GetHistorySummary() (*models.TransferSummary, error)
}

// LocalFS performs file operations on the device's own storage
type LocalFS interface {
	List(dir string) ([]models.File, error)
	Mkdir(dir string) error
	Delete(p string) error
	Rename(oldPath, newPath string) error
	Copy(src, dst string) error
	Move(src, dst string) error
}

// Notifier is told about every transfer that finishes
type Notifier interface {
	TransferFinished(ctx context.Context, record *models.TransferRecord) error
}
