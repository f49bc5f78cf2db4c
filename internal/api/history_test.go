package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"rcfm/internal/config"
	"rcfm/internal/models"
	"rcfm/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T, env *testEnv) {
	t.Helper()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []*models.TransferRecord{
		{JobID: 1, Name: "a.txt", Operation: models.OperationCopy, Source: "gdrive:a.txt", Destination: "/tmp/a.txt", Success: true, FinishedAt: base},
		{JobID: 2, Name: "b.txt", Operation: models.OperationMove, Source: "gdrive:b.txt", Destination: "/tmp/b.txt", ErrorMessage: "denied", FinishedAt: base.Add(time.Minute)},
		{JobID: 3, Name: "c.txt", Operation: models.OperationCopy, Source: "gdrive:c.txt", Destination: "/tmp/c.txt", Success: true, FinishedAt: base.Add(2 * time.Minute)},
	}
	testutil.SeedHistory(t, env.history, records...)
}

func TestGetHistory(t *testing.T) {
	env := setupTestEnv(t)
	seedHistory(t, env)

	tests := []struct {
		name  string
		query string
		want  []int64
	}{
		{"all newest first", "", []int64{3, 2, 1}},
		{"successful only", "?success=true", []int64{3, 1}},
		{"failed only", "?success=false", []int64{2}},
		{"limit", "?limit=1", []int64{3}},
		{"offset", "?offset=1", []int64{2, 1}},
		{"invalid limit ignored", "?limit=abc", []int64{3, 2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, response := env.do(t, "GET", "/api/v1/history"+tt.query, nil)
			require.Equal(t, http.StatusOK, rec.Code)

			var records []models.TransferRecord
			decodeData(t, response, &records)

			jobIDs := make([]int64, 0, len(records))
			for _, r := range records {
				jobIDs = append(jobIDs, r.JobID)
			}
			assert.Equal(t, tt.want, jobIDs)
		})
	}
}

func TestGetHistory_InvalidSuccessFilter(t *testing.T) {
	env := setupTestEnv(t)

	rec, response := env.do(t, "GET", "/api/v1/history?success=maybe", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid success filter", response.Error)
}

func TestGetHistory_Empty(t *testing.T) {
	env := setupTestEnv(t)

	rec, response := env.do(t, "GET", "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []models.TransferRecord
	decodeData(t, response, &records)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestGetHistory_Disabled(t *testing.T) {
	h := NewHandlers(Services{}, &config.Config{})

	rec := doHandler(t, h.GetHistory, "GET", "/api/v1/history")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetHistory_RecordsFinishedTransfers(t *testing.T) {
	env := setupTestEnv(t)
	env.daemon.SetSize("gdrive:clip.mp4", 4096, 1)

	rec, _ := env.do(t, "POST", "/api/v1/transfers", CreateTransferRequest{
		Source:      "gdrive:clip.mp4",
		Destination: "/media",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	env.daemon.SetProgress(1, 4096)
	env.daemon.FinishJob(1, "")
	env.registry.RefreshAll(context.Background())
	env.registry.RefreshAll(context.Background())

	rec, response := env.do(t, "GET", "/api/v1/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []models.TransferRecord
	decodeData(t, response, &records)
	require.Len(t, records, 1)
	assert.Equal(t, int64(1), records[0].JobID)
	assert.Equal(t, "clip.mp4", records[0].Name)
	assert.True(t, records[0].Success)
	assert.Equal(t, int64(4096), records[0].TotalSize)
	assert.Equal(t, "/media/clip.mp4", records[0].Destination)
}
