// Package shiftclock owns the stall's notion of "which day does this
// belong to". The stall trades from late afternoon past midnight, so
// anything before 05:00 local time still counts as the previous calendar
// day. Every day-bucketing decision in the system (reports, loyalty,
// expense "today" filters, shift boundaries) goes through DayKey so the
// cutoff rule cannot drift between call sites.
package shiftclock

import (
	"fmt"
	"time"
)

// CutoffHour is the local hour before which a timestamp is attributed to
// the previous calendar date.
const CutoffHour = 5

// DayKey returns the logical day of t as "YYYY-MM-DD".
func DayKey(t time.Time) string {
	if t.Hour() < CutoffHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format("2006-01-02")
}

// DayKeyMillis is DayKey for an epoch-milliseconds timestamp interpreted
// in loc.
func DayKeyMillis(ms int64, loc *time.Location) string {
	return DayKey(time.UnixMilli(ms).In(loc))
}

// WeekKey returns the ISO-8601 week of t as "YYYY-Www", used to scope
// per-plate notes so stale notes age out on their own.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
