package repository

import "github.com/powercity/simulator/telemetry"

// StoredTickRecord represents a tick record that is persisted to the SQLite database, and includes upload bookkeeping.
type StoredTickRecord struct {
	telemetry.TickRecord
	UploadAttemptCount uint
	Uploaded           bool
}

func newStoredTickRecord(record telemetry.TickRecord) StoredTickRecord {
	return StoredTickRecord{
		TickRecord:         record,
		UploadAttemptCount: 0,
	}
}
