// Package dataplatform handles the streaming of tick records to the data
// platform. Records are persisted to a local SQLite buffer as they arrive
// and periodically uploaded to Supabase. When no Supabase client is
// configured the records are still persisted locally, which is what backs
// the periodic reports.
package dataplatform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/powercity/simulator/repository"
	"github.com/powercity/simulator/supabase"
	"github.com/powercity/simulator/telemetry"
)

// uploadChunkLimit defines how many records we upload in one supabase HTTP request
const uploadChunkLimit = 100

// DataPlatform consumes tick records from the `Records` channel, buffers
// them on disk, and uploads them upstream when a supabase client is set.
type DataPlatform struct {
	Records chan telemetry.TickRecord

	repository     *repository.Repository
	supaClient     *supabase.Client // nil disables uploads
	uploadInterval time.Duration
}

func New(repo *repository.Repository, supaClient *supabase.Client, uploadInterval time.Duration) *DataPlatform {
	if uploadInterval <= 0 {
		uploadInterval = 5 * time.Second
	}
	return &DataPlatform{
		Records:        make(chan telemetry.TickRecord, 25), // a small buffer to allow SQLite to catch up in case the disk is slow
		repository:     repo,
		supaClient:     supaClient,
		uploadInterval: uploadInterval,
	}
}

// Run loops forever persisting tick records as they arrive and periodically
// attempting uploads.
func (d *DataPlatform) Run(ctx context.Context) {

	uploadTicker := time.NewTicker(d.uploadInterval)
	defer uploadTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case record := <-d.Records:
			err := d.repository.AddTickRecord(record)
			if err != nil {
				slog.Error("failed to persist tick record", "error", err)
			}
			slog.Debug("Stored tick record", "time", record.Time)

		case <-uploadTicker.C:
			if d.supaClient == nil {
				continue
			}
			d.attemptUpload()
		}
	}
}

// attemptUpload attempts to upload pending tick records from the repository to Supabase.
func (d *DataPlatform) attemptUpload() {

	// first attempt to upload any new records that have not been seen before
	freshRecords, err := d.repository.PendingRecords(uploadChunkLimit, true)
	if err != nil {
		slog.Error("failed to query fresh tick records", "error", err)
	} else if len(freshRecords) > 0 {
		err = d.handleRecords(freshRecords)
		if err != nil {
			slog.Error("failed to handle fresh tick records", "error", err)
		}
	}

	// then attempt to upload any old records that have already failed an upload at least once
	oldRecords, err := d.repository.PendingRecords(uploadChunkLimit, false)
	if err != nil {
		slog.Error("failed to query retried tick records", "error", err)
	} else if len(oldRecords) > 0 {
		err = d.handleRecords(oldRecords)
		if err != nil {
			slog.Error("failed to handle retried tick records", "error", err)
		}
	}
}

// handleRecords attempts to upload the given records. If successful, the
// records are marked as uploaded; if unsuccessful, the 'upload attempt
// count' column is incremented and the records are left for another time.
func (d *DataPlatform) handleRecords(records []repository.StoredTickRecord) error {

	uploadErr := d.supaClient.UploadTickRecords(records)
	if uploadErr != nil {
		errInc := d.repository.IncrementUploadAttemptCount(records)
		if errInc != nil {
			return fmt.Errorf("upload failed: %w: increment upload attempt count: %w", uploadErr, errInc)
		}
		return fmt.Errorf("upload failed: %w", uploadErr)
	}

	err := d.repository.MarkUploaded(records)
	if err != nil {
		return fmt.Errorf("mark records uploaded: %w", err)
	}

	slog.Info("Uploaded tick records", "db_records", len(records))

	return nil
}
