package timeutils

import "time"

// FloorHour returns the given `t` rounded down to the start of its hour
func FloorHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// FloorDay returns the given `t` rounded down to the start of its day
func FloorDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FloorMonth returns the given `t` rounded down to the start of its month
func FloorMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
