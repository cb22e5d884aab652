package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/powercity/simulator/telemetry"
)

func newTestRepository(test *testing.T) *Repository {
	repo, err := New(filepath.Join(test.TempDir(), "test.sqlite"))
	require.NoError(test, err)
	return repo
}

func newTickRecord(t time.Time) telemetry.TickRecord {
	return telemetry.TickRecord{
		ID:          uuid.New(),
		Time:        t,
		EnergyUsage: 1000,
	}
}

func TestRecordsSince(test *testing.T) {
	repo := newTestRepository(test)
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	// insert out of order, expect chronological reads
	require.NoError(test, repo.AddTickRecord(newTickRecord(base.Add(2*time.Hour))))
	require.NoError(test, repo.AddTickRecord(newTickRecord(base)))
	require.NoError(test, repo.AddTickRecord(newTickRecord(base.Add(time.Hour))))

	records, err := repo.RecordsSince(base.Add(time.Hour))
	require.NoError(test, err)
	require.Len(test, records, 2)
	require.True(test, records[0].Time.Equal(base.Add(time.Hour)))
	require.True(test, records[1].Time.Equal(base.Add(2*time.Hour)))

	all, err := repo.RecordsSince(base.Add(-time.Hour))
	require.NoError(test, err)
	require.Len(test, all, 3)
}

func TestPendingRecordsAndMarkUploaded(test *testing.T) {
	repo := newTestRepository(test)
	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	require.NoError(test, repo.AddTickRecord(newTickRecord(base)))
	require.NoError(test, repo.AddTickRecord(newTickRecord(base.Add(time.Hour))))

	fresh, err := repo.PendingRecords(10, true)
	require.NoError(test, err)
	require.Len(test, fresh, 2)

	// nothing has failed yet, so there are no retries
	retries, err := repo.PendingRecords(10, false)
	require.NoError(test, err)
	require.Empty(test, retries)

	// a failed attempt moves the record from the fresh set to the retry set
	require.NoError(test, repo.IncrementUploadAttemptCount(fresh[:1]))
	fresh, err = repo.PendingRecords(10, true)
	require.NoError(test, err)
	require.Len(test, fresh, 1)
	retries, err = repo.PendingRecords(10, false)
	require.NoError(test, err)
	require.Len(test, retries, 1)
	require.Equal(test, uint(1), retries[0].UploadAttemptCount)

	// uploaded records leave both pending sets but stay queryable for reports
	require.NoError(test, repo.MarkUploaded(retries))
	retries, err = repo.PendingRecords(10, false)
	require.NoError(test, err)
	require.Empty(test, retries)

	all, err := repo.RecordsSince(base.Add(-time.Hour))
	require.NoError(test, err)
	require.Len(test, all, 2)
}
