package repository

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/powercity/simulator/telemetry"
	"gorm.io/gorm"
)

// Repository stores the full tick history to the local file system (sqlite).
// It serves two purposes: the unbounded log backing periodic reports, and
// the upload buffer for the data platform. Records are marked as uploaded
// rather than deleted, so reports always see the complete history.
type Repository struct {
	db *gorm.DB
}

func New(path string) (*Repository, error) {

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Migrate the schema
	err = db.AutoMigrate(&StoredTickRecord{})
	if err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

func (r *Repository) AddTickRecord(record telemetry.TickRecord) error {
	stored := newStoredTickRecord(record)
	result := r.db.Create(&stored)
	return result.Error
}

// RecordsSince returns all tick records at or after `since`, oldest first.
func (r *Repository) RecordsSince(since time.Time) ([]telemetry.TickRecord, error) {
	var stored []StoredTickRecord

	result := r.db.Where("time >= ?", since).Order("time asc").Find(&stored)
	if result.Error != nil {
		return nil, result.Error
	}

	records := make([]telemetry.TickRecord, 0, len(stored))
	for _, s := range stored {
		records = append(records, s.TickRecord)
	}
	return records, nil
}

// PendingRecords returns records that still need uploading. With fresh set,
// only records that have never failed an upload are returned; otherwise only
// records with at least one failed attempt.
func (r *Repository) PendingRecords(limit int, fresh bool) ([]StoredTickRecord, error) {
	var records []StoredTickRecord

	query := r.db.Limit(limit).Order("upload_attempt_count asc, time desc").Where("uploaded = ?", false)
	if fresh {
		query = query.Where("upload_attempt_count = ?", 0)
	} else {
		query = query.Where("upload_attempt_count > ?", 0)
	}
	result := query.Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}
	return records, nil
}

// MarkUploaded flags the given records so they are never uploaded again.
func (r *Repository) MarkUploaded(records []StoredTickRecord) error {
	result := r.db.Model(&records).UpdateColumn("uploaded", true)
	return result.Error
}

func (r *Repository) IncrementUploadAttemptCount(records []StoredTickRecord) error {
	result := r.db.Model(&records).UpdateColumn("upload_attempt_count", gorm.Expr("upload_attempt_count + ?", 1))
	return result.Error
}
