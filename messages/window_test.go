package messages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewWindowBounds(t *testing.T) {
	req := require.New(t)

	now := time.Date(2022, 1, 13, 4, 33, 12, 500000000, time.UTC)
	win := NewWindow(now, 30)

	req.Equal(now, win.End)
	// Start is midnight UTC of the day 30 days before now.
	req.Equal(time.Date(2021, 12, 14, 0, 0, 0, 0, time.UTC), win.Start)
}

func TestNewWindowNormalizesToUTC(t *testing.T) {
	req := require.New(t)

	loc := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2022, 1, 13, 2, 0, 0, 0, loc) // 2022-01-12 21:00 UTC
	win := NewWindow(now, 1)

	req.Equal(time.UTC, win.End.Location())
	req.Equal(time.Date(2022, 1, 11, 0, 0, 0, 0, time.UTC), win.Start)
}

func TestWindowContains(t *testing.T) {
	req := require.New(t)

	now := time.Date(2022, 1, 31, 12, 0, 0, 0, time.UTC)
	win := NewWindow(now, 30)

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"Now itself", now, true},
		{"Exactly at window start", win.Start, true},
		{"Just inside the oldest day", win.Start.Add(time.Second), true},
		{"One second before window start", win.Start.Add(-time.Second), false},
		{"Older than the range", now.AddDate(0, 0, -31), false},
		{"In the future", now.Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.want, win.Contains(tt.t))
		})
	}
}

func TestWindowIsRecomputedPerCall(t *testing.T) {
	req := require.New(t)

	first := NewWindow(time.Date(2022, 1, 13, 0, 0, 0, 0, time.UTC), 30)
	second := NewWindow(time.Date(2022, 2, 13, 0, 0, 0, 0, time.UTC), 30)

	req.True(second.Start.After(first.Start))
	req.True(second.End.After(first.End))
}
