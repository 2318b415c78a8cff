package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/dependency"
	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/status"
)

type packageOrdersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) PackageOrders() dependency.PackageOrders {
	return &packageOrdersStore{MYSQLStore: ms}
}

func (ps *packageOrdersStore) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM package_order WHERE created_at >= :from AND created_at < :to`
	return QueryCountNamed(ctx, ps.DB(), query, map[string]any{"from": from, "to": to})
}

func (ps *packageOrdersStore) PaidTotals(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	type row struct {
		Count   int             `db:"cnt"`
		Revenue decimal.Decimal `db:"revenue"`
	}
	query := `
		SELECT COUNT(*) AS cnt, COALESCE(SUM(total_price), 0) AS revenue
		FROM package_order
		WHERE created_at >= :from AND created_at < :to
		AND payment_status IN (:paid)
	`
	r, err := QueryNamedOne[row](ctx, ps.DB(), query, map[string]any{
		"from": from, "to": to,
		"paid": status.PaymentLabels(status.PaymentPaid),
	})
	if err != nil {
		return 0, decimal.Zero, err
	}
	return r.Count, r.Revenue, nil
}

func (ps *packageOrdersStore) RevenueByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error) {
	d := dayExpr("created_at")
	query := fmt.Sprintf(`
		SELECT %s AS d, COALESCE(SUM(total_price), 0) AS value
		FROM package_order
		WHERE created_at >= :from AND created_at < :to
		AND payment_status IN (:paid)
		GROUP BY %s
		ORDER BY d
	`, d, d)
	return querySeries(ctx, ps.DB(), query, map[string]any{
		"from": from, "to": to,
		"paid": status.PaymentLabels(status.PaymentPaid),
	})
}
