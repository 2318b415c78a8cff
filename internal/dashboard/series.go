package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/timewindow"
)

// Fill expands a sparse per-day partial onto the window's date keys,
// zero-filling days with no activity. Points outside the window are
// dropped; duplicate dates sum.
func Fill(win timewindow.Window, points []entity.SeriesPoint) []entity.SeriesPoint {
	byDate := make(map[string]decimal.Decimal, len(points))
	for _, p := range points {
		byDate[p.Date] = byDate[p.Date].Add(p.Value)
	}
	out := make([]entity.SeriesPoint, len(win.Dates))
	for i, d := range win.Dates {
		out[i] = entity.SeriesPoint{Date: d, Value: byDate[d]}
	}
	return out
}

// Merge combines per-source partial series into one calendar-complete
// total per date, and returns the zero-filled per-source breakdown. The
// total on every date equals the exact decimal sum of the sources; the
// dashboard renders both the stacked and the combined view from one call.
func Merge(win timewindow.Window, sources map[string][]entity.SeriesPoint) ([]entity.SeriesPoint, map[string][]entity.SeriesPoint) {
	bySource := make(map[string][]entity.SeriesPoint, len(sources))
	for name, partial := range sources {
		bySource[name] = Fill(win, partial)
	}

	total := make([]entity.SeriesPoint, len(win.Dates))
	for i, d := range win.Dates {
		sum := decimal.Zero
		for _, filled := range bySource {
			sum = sum.Add(filled[i].Value)
		}
		total[i] = entity.SeriesPoint{Date: d, Value: sum}
	}
	return total, bySource
}
