// Package timewindow derives the calendar-day boundaries every dashboard
// aggregate is scoped by. All calendar math happens under a fixed KST
// offset: the shop operates in a single market and the legacy data was
// written against wall-clock Seoul time, so a constant shift is the correct
// model, not a full tz database lookup.
package timewindow

import (
	"fmt"
	"time"
)

// OffsetHours is the fixed shift from UTC for all calendar-day math.
const OffsetHours = 9

// DateKeyLayout is the format of every calendar-day key in a Window.
const DateKeyLayout = "2006-01-02"

// MonthKeyLayout is the format of settlement month keys.
const MonthKeyLayout = "2006-01"

var kst = time.FixedZone("KST", OffsetHours*3600)

// Location returns the fixed-offset location used for all day bucketing.
func Location() *time.Location {
	return kst
}

// Window is a fixed-length span of consecutive local calendar days.
// Start is the instant of local midnight of the first day, End the instant
// of local midnight after the last day, so [Start, End) covers exactly
// Days*24h of wall-clock time and store queries can use half-open ranges.
type Window struct {
	Days  int
	Start time.Time
	End   time.Time
	Dates []string
}

// DayBoundary returns the instant of local midnight for the given calendar day.
func DayBoundary(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, kst)
}

// Trailing returns the days-long window whose last day is the local
// calendar day containing end. Date keys are listed ascending. Day steps
// use whole-day AddDate arithmetic so boundaries never drift by partial
// hours through the offset conversion.
func Trailing(end time.Time, days int) Window {
	local := end.In(kst)
	last := DayBoundary(local.Year(), local.Month(), local.Day())
	first := last.AddDate(0, 0, -(days - 1))

	dates := make([]string, days)
	for i := range dates {
		dates[i] = first.AddDate(0, 0, i).Format(DateKeyLayout)
	}
	return Window{
		Days:  days,
		Start: first,
		End:   last.AddDate(0, 0, 1),
		Dates: dates,
	}
}

// MonthStart returns the instant of local midnight on the 1st of the local
// month containing t.
func MonthStart(t time.Time) time.Time {
	local := t.In(kst)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, kst)
}

// MonthKey returns the settlement key of the local month containing t.
func MonthKey(t time.Time) string {
	return t.In(kst).Format(MonthKeyLayout)
}

// ShiftMonthKey moves a month key by delta months, wrapping years.
func ShiftMonthKey(key string, delta int) (string, error) {
	t, err := time.ParseInLocation(MonthKeyLayout, key, kst)
	if err != nil {
		return "", fmt.Errorf("parse month key %q: %w", key, err)
	}
	return t.AddDate(0, delta, 0).Format(MonthKeyLayout), nil
}
