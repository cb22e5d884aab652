package timeutils

import "time"

// Period represents an absolute period between two instances in time, e.g. "2023/10/19 16:00:00 to 2023/10/19 18:00:00".
type Period struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether `t` falls within the period. The start is
// inclusive and the end is exclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// LastingUntil returns the period covering the given duration up to `end`.
func LastingUntil(end time.Time, d time.Duration) Period {
	return Period{Start: end.Add(-d), End: end}
}
