package shiftclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDayKey(t *testing.T) {
	loc := time.FixedZone("AST", 3*3600)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{
			name: "just after midnight belongs to previous day",
			ts:   time.Date(2025, 3, 10, 0, 0, 1, 0, loc),
			want: "2025-03-09",
		},
		{
			name: "one second before cutoff belongs to previous day",
			ts:   time.Date(2025, 3, 10, 4, 59, 59, 0, loc),
			want: "2025-03-09",
		},
		{
			name: "exactly at cutoff belongs to current day",
			ts:   time.Date(2025, 3, 10, 5, 0, 0, 0, loc),
			want: "2025-03-10",
		},
		{
			name: "evening rush belongs to current day",
			ts:   time.Date(2025, 3, 10, 21, 30, 0, 0, loc),
			want: "2025-03-10",
		},
		{
			name: "crossing a month boundary",
			ts:   time.Date(2025, 3, 1, 1, 15, 0, 0, loc),
			want: "2025-02-28",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DayKey(tc.ts))
		})
	}
}

func TestDayKeyMillis(t *testing.T) {
	loc := time.FixedZone("AST", 3*3600)
	ts := time.Date(2025, 3, 10, 2, 0, 0, 0, loc)
	assert.Equal(t, "2025-03-09", DayKeyMillis(ts.UnixMilli(), loc))
}

func TestWeekKey(t *testing.T) {
	loc := time.UTC
	assert.Equal(t, "2025-W11", WeekKey(time.Date(2025, 3, 12, 12, 0, 0, 0, loc)))
	// Jan 1st 2027 falls in the last ISO week of 2026.
	assert.Equal(t, "2026-W53", WeekKey(time.Date(2027, 1, 1, 12, 0, 0, 0, loc)))
}
