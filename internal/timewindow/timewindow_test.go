package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingWindowShape(t *testing.T) {
	// 2026-03-10 01:30 KST is still 2026-03-09 in UTC; the local day must win.
	end := time.Date(2026, 3, 9, 16, 30, 0, 0, time.UTC)

	w := Trailing(end, 14)
	require.Len(t, w.Dates, 14)
	assert.Equal(t, "2026-02-25", w.Dates[0])
	assert.Equal(t, "2026-03-10", w.Dates[13])

	// strictly increasing, no gaps
	for i := 1; i < len(w.Dates); i++ {
		prev, err := time.ParseInLocation(DateKeyLayout, w.Dates[i-1], Location())
		require.NoError(t, err)
		cur, err := time.ParseInLocation(DateKeyLayout, w.Dates[i], Location())
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur)
	}

	assert.Equal(t, DayBoundary(2026, 2, 25), w.Start)
	assert.Equal(t, DayBoundary(2026, 3, 11), w.End)
	assert.Equal(t, 14*24*time.Hour, w.End.Sub(w.Start))
}

func TestTrailingWindowSingleDay(t *testing.T) {
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, Location())
	w := Trailing(end, 1)
	require.Len(t, w.Dates, 1)
	assert.Equal(t, "2026-01-01", w.Dates[0])
	assert.Equal(t, 24*time.Hour, w.End.Sub(w.Start))
}

func TestDayBoundaryOffset(t *testing.T) {
	b := DayBoundary(2026, 9, 1)
	// local midnight is 15:00 UTC of the previous day under the +9 shift
	assert.Equal(t, time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC), b.UTC())
}

func TestMonthStart(t *testing.T) {
	// 2026-01-31 23:59 KST
	in := time.Date(2026, 1, 31, 14, 59, 0, 0, time.UTC)
	assert.Equal(t, DayBoundary(2026, 1, 1), MonthStart(in))

	// 2026-02-01 00:00 KST exactly
	in = time.Date(2026, 1, 31, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, DayBoundary(2026, 2, 1), MonthStart(in))
}

func TestShiftMonthKey(t *testing.T) {
	tests := []struct {
		key   string
		delta int
		want  string
	}{
		{"2026-01", -1, "2025-12"},
		{"2025-12", 1, "2026-01"},
		{"2026-06", 0, "2026-06"},
		{"2026-03", -15, "2024-12"},
		{"2026-11", 26, "2029-01"},
	}
	for _, tt := range tests {
		got, err := ShiftMonthKey(tt.key, tt.delta)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s %+d", tt.key, tt.delta)
	}

	_, err := ShiftMonthKey("garbage", 1)
	assert.Error(t, err)
}

func TestMonthKeyUsesLocalMonth(t *testing.T) {
	// 2026-08-31 20:00 UTC is already September in KST
	in := time.Date(2026, 8, 31, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-09", MonthKey(in))
}
