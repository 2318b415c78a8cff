package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/dependency"
	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/timewindow"
)

// dayExpr buckets an instant column on the shop's local calendar day.
// Timestamps are stored in UTC; the fixed offset shift keeps day boundaries
// aligned with the same calendar the time window layer produces.
func dayExpr(col string) string {
	return fmt.Sprintf("DATE_FORMAT(DATE_ADD(%s, INTERVAL %d HOUR), '%%Y-%%m-%%d')", col, timewindow.OffsetHours)
}

type seriesRow struct {
	D     string          `db:"d"`
	Value decimal.Decimal `db:"value"`
}

// querySeries runs a day-bucketed query and returns the sparse per-day
// partial series. Zero-filling onto the full window happens downstream.
func querySeries(ctx context.Context, conn dependency.DB, query string, params map[string]any) ([]entity.SeriesPoint, error) {
	rows, err := QueryListNamed[seriesRow](ctx, conn, query, params)
	if err != nil {
		return nil, err
	}
	out := make([]entity.SeriesPoint, len(rows))
	for i, r := range rows {
		out[i] = entity.SeriesPoint{Date: r.D, Value: r.Value}
	}
	return out, nil
}

type statusCountRow struct {
	Status string `db:"status"`
	Count  int    `db:"cnt"`
}

func toStatusCounts(rows []statusCountRow) []entity.StatusCount {
	out := make([]entity.StatusCount, len(rows))
	for i, r := range rows {
		out[i] = entity.StatusCount{Status: r.Status, Count: r.Count}
	}
	return out
}
