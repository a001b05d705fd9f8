package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func at(hour, min, sec int) time.Time {
	return time.Date(2026, time.March, 10, hour, min, sec, 0, time.Local)
}

func TestWindowContains(t *testing.T) {
	window := Window{Start: "09:30", End: "09:45"}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"inside", at(9, 40, 0), true},
		{"start boundary inclusive", at(9, 30, 0), true},
		{"end boundary inclusive", at(9, 45, 0), true},
		{"just before start", at(9, 29, 59), false},
		{"seconds past the end minute", at(9, 45, 30), false},
		{"well after", at(9, 50, 0), false},
		{"well before", at(8, 0, 0), false},
		{"other side of midday", at(22, 10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, window.Contains(tt.now))
		})
	}
}

func TestWindowContainsUsesNowsDay(t *testing.T) {
	window := Window{Start: "22:00", End: "22:30"}

	// Same wall-clock window matched on two different days
	require.True(t, window.Contains(time.Date(2026, time.March, 10, 22, 15, 0, 0, time.Local)))
	require.True(t, window.Contains(time.Date(2026, time.March, 11, 22, 15, 0, 0, time.Local)))
	require.False(t, window.Contains(time.Date(2026, time.March, 11, 21, 59, 59, 0, time.Local)))
}

func TestWindowContainsBadBounds(t *testing.T) {
	require.False(t, Window{Start: "not-a-time", End: "09:45"}.Contains(at(9, 40, 0)))
	require.False(t, Window{Start: "09:30", End: ""}.Contains(at(9, 40, 0)))
}
