package models

import "sort"

// Operation is the kind of transfer requested from the daemon
type Operation string

const (
	OperationCopy Operation = "copy"
	OperationMove Operation = "move"
)

func (o Operation) Valid() bool {
	return o == OperationCopy || o == OperationMove
}

// RCloneSize is the response from operations/size
type RCloneSize struct {
	Bytes int64 `json:"bytes"`
	Count int   `json:"count"`
}

// RCloneJobStarted is the response from any request made with _async=true
type RCloneJobStarted struct {
	JobID int64 `json:"jobid"`
}

// JobStatus is the response from job/status. Success is only meaningful once Finished is set.
type JobStatus struct {
	Finished bool   `json:"finished"`
	Error    string `json:"error"`
	Success  bool   `json:"success"`
}

// Succeeded reports whether the job finished successfully
func (s JobStatus) Succeeded() bool {
	return s.Finished && s.Success
}

// FileTransfer is one entry of the transferring list in core/stats
type FileTransfer struct {
	Name string `json:"name,omitempty"`
	Size int64  `json:"size"`
}

// JobStats is the response from core/stats for a single job group
type JobStats struct {
	Speed        float64        `json:"speed"`
	Bytes        int64          `json:"bytes"`
	Transferring []FileTransfer `json:"transferring,omitempty"`
}

// RCloneErrorResponse is the envelope returned with non-200 responses
type RCloneErrorResponse struct {
	Error string `json:"error"`
}

// RCloneListResponse is the response from operations/list
type RCloneListResponse struct {
	List []RemoteEntry `json:"list"`
}

// RemoteConfig is a configured remote as reported by config/dump
type RemoteConfig struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// SortRemotes orders remotes by name, in place
func SortRemotes(remotes []RemoteConfig) {
	sort.Slice(remotes, func(i, j int) bool {
		return remotes[i].Name < remotes[j].Name
	})
}
