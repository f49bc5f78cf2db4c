package notifications

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"rcfm/internal/config"
	"rcfm/internal/models"
)

type PushoverNotifier struct {
	config     *config.Config
	httpClient *http.Client
	apiURL     string
}

type pushoverRequest struct {
	Token     string `json:"token"`
	User      string `json:"user"`
	Message   string `json:"message"`
	Title     string `json:"title,omitempty"`
	Priority  int    `json:"priority,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
	Sound     string `json:"sound,omitempty"`
}

type pushoverResponse struct {
	Status  int      `json:"status"`
	Request string   `json:"request"`
	Errors  []string `json:"errors,omitempty"`
}

const pushoverAPIURL = "https://api.pushover.net/1/messages.json"

func NewPushoverNotifier(cfg *config.Config) *PushoverNotifier {
	return &PushoverNotifier{
		config: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiURL: pushoverAPIURL,
	}
}

// IsEnabled follows the live configuration so a reload can turn notifications on or off
func (p *PushoverNotifier) IsEnabled() bool {
	return p.config.GetNotifications().Pushover.Enabled
}

// TransferFinished sends a notification for a failed transfer, and for a completed one when notify_completed is set
func (p *PushoverNotifier) TransferFinished(ctx context.Context, record *models.TransferRecord) error {
	cfg := p.config.GetNotifications().Pushover
	if !cfg.Enabled {
		return nil
	}

	req := pushoverRequest{
		Token:     cfg.Token,
		User:      cfg.User,
		Priority:  cfg.Priority,
		Timestamp: record.FinishedAt.Unix(),
	}

	if record.Success {
		if !cfg.NotifyCompleted {
			return nil
		}
		req.Title = fmt.Sprintf("Transfer complete: %s", record.Name)
		req.Message = buildCompletedMessage(record)
		req.Priority = -1 // Low priority for completions
		req.Sound = "none"
	} else {
		req.Title = fmt.Sprintf("Transfer failed: %s", record.Name)
		req.Message = buildFailedMessage(record)
		req.Sound = "falling"
	}

	return p.sendNotification(ctx, req)
}

func (p *PushoverNotifier) sendNotification(ctx context.Context, req pushoverRequest) error {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal pushover request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", "rcfm/1.0")

	slog.Debug("sending pushover notification",
		"title", req.Title,
		"priority", req.Priority)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send pushover notification: %w", err)
	}
	defer resp.Body.Close()

	var pushoverResp pushoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&pushoverResp); err != nil {
		return fmt.Errorf("failed to decode pushover response: %w", err)
	}

	if pushoverResp.Status != 1 {
		return fmt.Errorf("pushover API error: %s", strings.Join(pushoverResp.Errors, ", "))
	}

	slog.Info("pushover notification sent", "request_id", pushoverResp.Request)
	return nil
}

func buildFailedMessage(record *models.TransferRecord) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("%s: %s -> %s\n", record.Operation, record.Source, record.Destination))
	if record.ErrorMessage != "" {
		msg.WriteString(fmt.Sprintf("Error: %s\n", record.ErrorMessage))
	}
	if record.TotalSize > 0 {
		msg.WriteString(fmt.Sprintf("Progress: %s of %s\n", formatBytes(record.BytesTransferred), formatBytes(record.TotalSize)))
	}
	msg.WriteString(fmt.Sprintf("Job ID: %d", record.JobID))

	return msg.String()
}

func buildCompletedMessage(record *models.TransferRecord) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("%s: %s -> %s\n", record.Operation, record.Source, record.Destination))
	if !record.StartedAt.IsZero() && record.FinishedAt.After(record.StartedAt) {
		msg.WriteString(fmt.Sprintf("Duration: %s\n", record.FinishedAt.Sub(record.StartedAt).Round(time.Second)))
	}
	if record.BytesTransferred > 0 {
		msg.WriteString(fmt.Sprintf("Size: %s\n", formatBytes(record.BytesTransferred)))
	}
	msg.WriteString(fmt.Sprintf("Job ID: %d", record.JobID))

	return msg.String()
}

func formatBytes(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
