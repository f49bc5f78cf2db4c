package testutil

import (
	"testing"

	"rcfm/internal/models"
	"rcfm/internal/repository"

	"github.com/stretchr/testify/require"
)

// NewHistory opens an in-memory transfer history that is closed when the test ends
func NewHistory(t *testing.T) *repository.Repository {
	t.Helper()

	history, err := repository.New(":memory:")
	require.NoError(t, err, "open transfer history")
	require.NoError(t, history.Ping())
	t.Cleanup(func() { _ = history.Close() })

	return history
}

// SeedHistory stores records in order, filling in their IDs
func SeedHistory(t *testing.T, history *repository.Repository, records ...*models.TransferRecord) {
	t.Helper()

	for _, record := range records {
		require.NoError(t, history.CreateTransferRecord(record), "seed record for job %d", record.JobID)
	}
}
