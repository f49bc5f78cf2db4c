package rclone

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"rcfm/internal/models"
)

// DefaultDaemonAddr is where the embedded daemon listens for RC requests
const DefaultDaemonAddr = "[::1]:48725"

// Timeouts holds the per call timeouts used by the endpoint wrappers
type Timeouts struct {
	Size   time.Duration
	Start  time.Duration
	Poll   time.Duration
	Stop   time.Duration
	List   time.Duration
	Mkdir  time.Duration
	Delete time.Duration
	Config time.Duration
}

// DefaultTimeouts returns the timeouts used when none are configured
func DefaultTimeouts() Timeouts {
	return Timeouts{
		Size:   5 * time.Second,
		Start:  5 * time.Second,
		Poll:   1 * time.Second,
		Stop:   1 * time.Second,
		List:   15 * time.Second,
		Mkdir:  5 * time.Second,
		Delete: 30 * time.Second,
		Config: 30 * time.Second,
	}
}

// Client represents an HTTP client for the rclone daemon
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeouts   atomic.Pointer[Timeouts]
}

// NewClient creates a new rclone HTTP client
func NewClient(baseURL string, timeouts Timeouts) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		// No client-wide timeout, every call carries its own
		httpClient: &http.Client{},
	}
	c.timeouts.Store(&timeouts)
	return c
}

// SetTimeouts replaces the per call timeouts used by later requests
func (c *Client) SetTimeouts(timeouts Timeouts) {
	c.timeouts.Store(&timeouts)
}

func (c *Client) limits() Timeouts {
	return *c.timeouts.Load()
}

// BaseURL returns the daemon URL requests are made against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Size queries the total size and object count below fs
func (c *Client) Size(ctx context.Context, fs string) (*models.RCloneSize, error) {
	var resp models.RCloneSize
	query := url.Values{"fs": {fs}}
	if err := c.Request(ctx, "operations/size", query, nil, c.limits().Size, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartFileTransfer starts an async copy or move of a single file and returns the job id
func (c *Client) StartFileTransfer(ctx context.Context, op models.Operation, srcFs, srcRemote, dstFs, dstRemote string) (int64, error) {
	query := url.Values{
		"srcFs":     {srcFs},
		"srcRemote": {srcRemote},
		"dstFs":     {dstFs},
		"dstRemote": {dstRemote},
		"_async":    {"true"},
	}

	var resp models.RCloneJobStarted
	if err := c.Request(ctx, "operations/"+string(op)+"file", query, nil, c.limits().Start, &resp); err != nil {
		return 0, err
	}
	return resp.JobID, nil
}

// StartDirSync starts an async copy or move of a whole directory and returns the job id
func (c *Client) StartDirSync(ctx context.Context, op models.Operation, srcFs, dstFs string) (int64, error) {
	query := url.Values{
		"srcFs":  {srcFs},
		"dstFs":  {dstFs},
		"_async": {"true"},
	}

	var resp models.RCloneJobStarted
	if err := c.Request(ctx, "sync/"+string(op), query, nil, c.limits().Start, &resp); err != nil {
		return 0, err
	}
	return resp.JobID, nil
}

// JobStatus gets the status of a specific job
func (c *Client) JobStatus(ctx context.Context, jobID int64) (*models.JobStatus, error) {
	var status models.JobStatus
	query := url.Values{"jobid": {strconv.FormatInt(jobID, 10)}}
	if err := c.Request(ctx, "job/status", query, nil, c.limits().Poll, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// JobStats gets the transfer statistics of the stats group belonging to a job
func (c *Client) JobStats(ctx context.Context, jobID int64) (*models.JobStats, error) {
	var stats models.JobStats
	query := url.Values{"group": {JobGroup(jobID)}}
	if err := c.Request(ctx, "core/stats", query, nil, c.limits().Poll, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// StopJob stops a running job
func (c *Client) StopJob(ctx context.Context, jobID int64) error {
	query := url.Values{"jobid": {strconv.FormatInt(jobID, 10)}}
	return c.Request(ctx, "job/stop", query, nil, c.limits().Stop, nil)
}

// Ping checks if the rclone daemon is responsive
func (c *Client) Ping(ctx context.Context) error {
	return c.Request(ctx, "core/pid", nil, nil, c.limits().Poll, nil)
}

// List lists the directory remote inside fs
func (c *Client) List(ctx context.Context, fs, remote string) ([]models.RemoteEntry, error) {
	var resp models.RCloneListResponse
	query := url.Values{"fs": {fs}, "remote": {remote}}
	if err := c.Request(ctx, "operations/list", query, nil, c.limits().List, &resp); err != nil {
		return nil, err
	}
	return resp.List, nil
}

// Mkdir creates the directory remote inside fs
func (c *Client) Mkdir(ctx context.Context, fs, remote string) error {
	query := url.Values{"fs": {fs}, "remote": {remote}}
	return c.Request(ctx, "operations/mkdir", query, nil, c.limits().Mkdir, nil)
}

// DeleteFile removes a single file
func (c *Client) DeleteFile(ctx context.Context, fs, remote string) error {
	query := url.Values{"fs": {fs}, "remote": {remote}}
	return c.Request(ctx, "operations/deletefile", query, nil, c.limits().Delete, nil)
}

// Purge removes a directory and all of its contents
func (c *Client) Purge(ctx context.Context, fs, remote string) error {
	query := url.Values{"fs": {fs}, "remote": {remote}}
	return c.Request(ctx, "operations/purge", query, nil, c.limits().Delete, nil)
}

// MoveFileRequest is the body of a synchronous operations/movefile call
type MoveFileRequest struct {
	SrcFs     string `json:"srcFs"`
	SrcRemote string `json:"srcRemote"`
	DstFs     string `json:"dstFs"`
	DstRemote string `json:"dstRemote"`
}

// MoveFile moves a single file and waits for it, used for renames
func (c *Client) MoveFile(ctx context.Context, srcFs, srcRemote, dstFs, dstRemote string) error {
	req := MoveFileRequest{
		SrcFs:     srcFs,
		SrcRemote: srcRemote,
		DstFs:     dstFs,
		DstRemote: dstRemote,
	}
	return c.Request(ctx, "operations/movefile", nil, req, c.limits().Delete, nil)
}

// ListRemotes returns the configured remotes sorted by name
func (c *Client) ListRemotes(ctx context.Context) ([]models.RemoteConfig, error) {
	var dump map[string]json.RawMessage
	if err := c.Request(ctx, "config/dump", nil, nil, c.limits().Config, &dump); err != nil {
		return nil, err
	}

	remotes := make([]models.RemoteConfig, 0, len(dump))
	for name, raw := range dump {
		var remote models.RemoteConfig
		// entries without a decodable type are skipped
		if err := json.Unmarshal(raw, &remote); err != nil {
			continue
		}
		remote.Name = name
		remotes = append(remotes, remote)
	}
	models.SortRemotes(remotes)

	return remotes, nil
}

// DeleteRemote removes a remote from the daemon's configuration
func (c *Client) DeleteRemote(ctx context.Context, name string) error {
	query := url.Values{"name": {name}}
	return c.Request(ctx, "config/delete", query, nil, c.limits().Config, nil)
}

// JobGroup returns the stats group name the daemon assigns to a job
func JobGroup(jobID int64) string {
	return fmt.Sprintf("job/%d", jobID)
}

// Request POSTs to an RC path and decodes a 200 answer into response.
// A nil response skips decoding; a zero timeout leaves the deadline to ctx.
func (c *Client) Request(ctx context.Context, path string, query url.Values, request interface{}, timeout time.Duration, response interface{}) error {
	path = strings.TrimPrefix(path, "/")

	endpoint := c.baseURL + "/" + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if request != nil {
		jsonData, err := json.Marshal(request)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return &TransportError{Path: path, Err: err}
	}

	if request != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Path: path, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return daemonError(path, resp.StatusCode, data)
	}

	if response == nil {
		return nil
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return &DecodeError{Path: path, Err: ErrNoData}
	}

	if err := json.Unmarshal(data, response); err != nil {
		return &DecodeError{Path: path, Err: err}
	}

	return nil
}

func daemonError(path string, statusCode int, data []byte) error {
	daemonErr := &DaemonError{Path: path, StatusCode: statusCode}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		daemonErr.Err = ErrNoData
		return daemonErr
	}

	var envelope models.RCloneErrorResponse
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		daemonErr.Err = errors.New(string(trimmed))
		return daemonErr
	}
	if envelope.Error == "" {
		daemonErr.Err = ErrNoData
		return daemonErr
	}

	daemonErr.Message = envelope.Error
	return daemonErr
}
