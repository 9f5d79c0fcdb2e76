// Package messages, range window. The trailing date range confines every
// retrieval query to recent records so that table scans stay bounded.
package messages

import "time"

// Window is the inclusive [Start, End] date range applied to a retrieval query.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow computes the range for a query issued at now: End is now (UTC),
// Start is midnight UTC of the day rangeDays before now. The window is
// recomputed from the clock on every request, never stored.
func NewWindow(now time.Time, rangeDays int) Window {
	end := now.UTC()
	start := end.AddDate(0, 0, -rangeDays)
	start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return Window{Start: start, End: end}
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}
