package models

import "time"

// TransferState classifies a job by its last known status
type TransferState string

const (
	TransferStateInProgress TransferState = "in_progress"
	TransferStateCompleted  TransferState = "completed"
	TransferStateFailed     TransferState = "failed"
)

// StateOf classifies a status. A missing status counts as still running.
func StateOf(status *JobStatus) TransferState {
	switch {
	case status == nil || !status.Finished:
		return TransferStateInProgress
	case status.Success:
		return TransferStateCompleted
	default:
		return TransferStateFailed
	}
}

// ParseTransferState accepts the API spelling of a state
func ParseTransferState(s string) (TransferState, bool) {
	switch TransferState(s) {
	case TransferStateInProgress, TransferStateCompleted, TransferStateFailed:
		return TransferState(s), true
	}
	return "", false
}

// TransferSummary represents aggregated transfer counts
type TransferSummary struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Failed     int `json:"failed"`
}

// TransferRecord is a finished transfer as kept in the history database
type TransferRecord struct {
	ID               int64     `json:"id" db:"id"`
	JobID            int64     `json:"job_id" db:"job_id"`
	Name             string    `json:"name" db:"name"`
	Operation        Operation `json:"operation" db:"operation"`
	Source           string    `json:"source" db:"source"`
	Destination      string    `json:"destination" db:"destination"`
	TotalSize        int64     `json:"total_size" db:"total_size"`
	BytesTransferred int64     `json:"bytes_transferred" db:"bytes_transferred"`
	Success          bool      `json:"success" db:"success"`
	ErrorMessage     string    `json:"error_message,omitempty" db:"error_message"`
	StartedAt        time.Time `json:"started_at" db:"started_at"`
	FinishedAt       time.Time `json:"finished_at" db:"finished_at"`
}

// HistoryFilter represents filtering options for history queries
type HistoryFilter struct {
	Success *bool `json:"success,omitempty"`
	Limit   int   `json:"limit,omitempty"`
	Offset  int   `json:"offset,omitempty"`
}
