// Package history keeps the bounded rolling buffer of recent tick records
// that feeds the live display.
package history

import (
	"sync"

	"github.com/powercity/simulator/telemetry"
)

// DefaultSize is the number of records the live view retains.
const DefaultSize = 100

// Ring is a FIFO-bounded buffer of tick records. Appends evict the oldest
// record once the bound is reached. Reads return copies, so consumers never
// observe a record mid-append.
type Ring struct {
	mu      sync.Mutex
	records []telemetry.TickRecord
	max     int
}

// NewRing returns a Ring bounded to max records. A non-positive max falls
// back to DefaultSize.
func NewRing(max int) *Ring {
	if max <= 0 {
		max = DefaultSize
	}
	return &Ring{max: max}
}

// Append adds a record, evicting the oldest if the ring is full.
func (r *Ring) Append(record telemetry.TickRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, record)
	if len(r.records) > r.max {
		r.records = r.records[1:]
	}
}

// Snapshot returns a copy of the buffered records in chronological order.
func (r *Ring) Snapshot() []telemetry.TickRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make([]telemetry.TickRecord, len(r.records))
	copy(snapshot, r.records)
	return snapshot
}

// Len returns the number of buffered records.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}
