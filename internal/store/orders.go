package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/dependency"
	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/status"
)

// displayNameFallback replaces missing customer/display names in detail
// lists; legacy rows frequently lack them.
const displayNameFallback = "unknown"

type ordersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Orders() dependency.Orders {
	return &ordersStore{MYSQLStore: ms}
}

func (os *ordersStore) CountTotal(ctx context.Context) (int, error) {
	return QueryCountNamed(ctx, os.DB(), `SELECT COUNT(*) FROM shop_order`, map[string]any{})
}

func (os *ordersStore) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM shop_order WHERE created_at >= :from AND created_at < :to`
	return QueryCountNamed(ctx, os.DB(), query, map[string]any{"from": from, "to": to})
}

func (os *ordersStore) PaidTotals(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	type row struct {
		Count   int             `db:"cnt"`
		Revenue decimal.Decimal `db:"revenue"`
	}
	query := `
		SELECT COUNT(*) AS cnt, COALESCE(SUM(total_price), 0) AS revenue
		FROM shop_order
		WHERE created_at >= :from AND created_at < :to
		AND payment_status IN (:paid)
	`
	r, err := QueryNamedOne[row](ctx, os.DB(), query, map[string]any{
		"from": from, "to": to,
		"paid": status.PaymentLabels(status.PaymentPaid),
	})
	if err != nil {
		return 0, decimal.Zero, err
	}
	return r.Count, r.Revenue, nil
}

func (os *ordersStore) RevenueByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error) {
	d := dayExpr("created_at")
	query := fmt.Sprintf(`
		SELECT %s AS d, COALESCE(SUM(total_price), 0) AS value
		FROM shop_order
		WHERE created_at >= :from AND created_at < :to
		AND payment_status IN (:paid)
		GROUP BY %s
		ORDER BY d
	`, d, d)
	return querySeries(ctx, os.DB(), query, map[string]any{
		"from": from, "to": to,
		"paid": status.PaymentLabels(status.PaymentPaid),
	})
}

func (os *ordersStore) CountByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error) {
	d := dayExpr("created_at")
	query := fmt.Sprintf(`
		SELECT %s AS d, COUNT(*) AS value
		FROM shop_order
		WHERE created_at >= :from AND created_at < :to
		GROUP BY %s
		ORDER BY d
	`, d, d)
	return querySeries(ctx, os.DB(), query, map[string]any{"from": from, "to": to})
}

func (os *ordersStore) StatusDistribution(ctx context.Context, from time.Time) ([]entity.StatusCount, error) {
	query := `
		SELECT COALESCE(order_status, '') AS status, COUNT(*) AS cnt
		FROM shop_order
		WHERE created_at >= :from
		GROUP BY order_status
		ORDER BY cnt DESC
	`
	rows, err := QueryListNamed[statusCountRow](ctx, os.DB(), query, map[string]any{"from": from})
	if err != nil {
		return nil, err
	}
	return toStatusCounts(rows), nil
}

func (os *ordersStore) PaymentDistribution(ctx context.Context, from time.Time) ([]entity.StatusCount, error) {
	query := `
		SELECT COALESCE(payment_status, '') AS status, COUNT(*) AS cnt
		FROM shop_order
		WHERE created_at >= :from
		GROUP BY payment_status
		ORDER BY cnt DESC
	`
	rows, err := QueryListNamed[statusCountRow](ctx, os.DB(), query, map[string]any{"from": from})
	if err != nil {
		return nil, err
	}
	return toStatusCounts(rows), nil
}

type orderCandidateRow struct {
	ID        int                 `db:"id"`
	UUID      string              `db:"uuid"`
	Orderer   sql.NullString      `db:"orderer_name"`
	Total     decimal.NullDecimal `db:"total_price"`
	Payment   sql.NullString      `db:"payment_status"`
	Status    sql.NullString      `db:"order_status"`
	Cancel    sql.NullString      `db:"cancel_status"`
	Method    sql.NullString      `db:"shipping_method"`
	Tracking  sql.NullString      `db:"tracking_number"`
	CreatedAt entity.LenientTime  `db:"created_at"`
}

func (r orderCandidateRow) toCandidate() entity.QueueCandidate {
	name := r.Orderer.String
	if name == "" {
		name = displayNameFallback
	}
	amount := decimal.Zero
	if r.Total.Valid {
		amount = r.Total.Decimal
	}
	return entity.QueueCandidate{
		Kind:               "order",
		ID:                 r.ID,
		PublicID:           r.UUID,
		CreatedAt:          r.CreatedAt.Time,
		DisplayName:        name,
		Amount:             amount,
		RawPaymentStatus:   r.Payment.String,
		RawLifecycleStatus: r.Status.String,
		RawCancelStatus:    r.Cancel.String,
		HasTracking:        r.Tracking.String != "",
		ShippingMethod:     r.Method.String,
	}
}

const orderCandidateColumns = `
	id, uuid, orderer_name, total_price, payment_status,
	order_status, cancel_status, shipping_method, tracking_number, created_at`

func (os *ordersStore) PaymentPendingCandidates(ctx context.Context, cutoff time.Time) ([]entity.QueueCandidate, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM shop_order
		WHERE payment_status IN (:pending)
		AND created_at <= :cutoff
		ORDER BY created_at ASC
	`, orderCandidateColumns)
	rows, err := QueryListNamed[orderCandidateRow](ctx, os.DB(), query, map[string]any{
		"pending": status.PaymentLabels(status.PaymentPending),
		"cutoff":  cutoff,
	})
	if err != nil {
		return nil, err
	}
	return orderCandidates(rows), nil
}

func (os *ordersStore) CancelRequestedCandidates(ctx context.Context) ([]entity.QueueCandidate, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM shop_order
		WHERE cancel_status IN (:requested)
		ORDER BY created_at ASC
	`, orderCandidateColumns)
	rows, err := QueryListNamed[orderCandidateRow](ctx, os.DB(), query, map[string]any{
		"requested": status.CancelLabels(status.CancelRequested),
	})
	if err != nil {
		return nil, err
	}
	return orderCandidates(rows), nil
}

// ShippingPendingCandidates fetches paid, untracked orders; terminal-state
// and pickup-method exclusions are evaluated by the queue predicate, which
// understands the raw lifecycle vocabulary.
func (os *ordersStore) ShippingPendingCandidates(ctx context.Context) ([]entity.QueueCandidate, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM shop_order
		WHERE payment_status IN (:paid)
		AND (tracking_number IS NULL OR tracking_number = '')
		ORDER BY created_at ASC
	`, orderCandidateColumns)
	rows, err := QueryListNamed[orderCandidateRow](ctx, os.DB(), query, map[string]any{
		"paid": status.PaymentLabels(status.PaymentPaid),
	})
	if err != nil {
		return nil, err
	}
	return orderCandidates(rows), nil
}

func orderCandidates(rows []orderCandidateRow) []entity.QueueCandidate {
	out := make([]entity.QueueCandidate, len(rows))
	for i, r := range rows {
		out[i] = r.toCandidate()
	}
	return out
}

type rankedRow struct {
	Name     string          `db:"name"`
	Brand    string          `db:"brand"`
	Revenue  decimal.Decimal `db:"revenue"`
	Quantity int             `db:"quantity"`
}

func (os *ordersStore) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]entity.RankedItem, error) {
	query := `
		SELECT oi.product_name AS name,
			COALESCE(MAX(oi.brand), '') AS brand,
			COALESCE(SUM(oi.unit_price * oi.quantity), 0) AS revenue,
			COALESCE(SUM(oi.quantity), 0) AS quantity
		FROM order_item oi
		JOIN shop_order so ON so.id = oi.order_id
		WHERE so.created_at >= :from AND so.created_at < :to
		AND so.payment_status IN (:paid)
		GROUP BY oi.product_name
		ORDER BY revenue DESC, quantity DESC
		LIMIT :limit
	`
	return os.ranked(ctx, query, from, to, limit)
}

func (os *ordersStore) TopBrands(ctx context.Context, from, to time.Time, limit int) ([]entity.RankedItem, error) {
	query := `
		SELECT COALESCE(oi.brand, '') AS name,
			COALESCE(oi.brand, '') AS brand,
			COALESCE(SUM(oi.unit_price * oi.quantity), 0) AS revenue,
			COALESCE(SUM(oi.quantity), 0) AS quantity
		FROM order_item oi
		JOIN shop_order so ON so.id = oi.order_id
		WHERE so.created_at >= :from AND so.created_at < :to
		AND so.payment_status IN (:paid)
		GROUP BY oi.brand
		ORDER BY revenue DESC, quantity DESC
		LIMIT :limit
	`
	return os.ranked(ctx, query, from, to, limit)
}

func (os *ordersStore) ranked(ctx context.Context, query string, from, to time.Time, limit int) ([]entity.RankedItem, error) {
	rows, err := QueryListNamed[rankedRow](ctx, os.DB(), query, map[string]any{
		"from": from, "to": to, "limit": limit,
		"paid": status.PaymentLabels(status.PaymentPaid),
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.RankedItem, len(rows))
	for i, r := range rows {
		out[i] = entity.RankedItem{Name: r.Name, Brand: r.Brand, Revenue: r.Revenue, Quantity: r.Quantity}
	}
	return out, nil
}

func (os *ordersStore) Recent(ctx context.Context, limit int) ([]entity.RecentItem, error) {
	type row struct {
		UUID      string              `db:"uuid"`
		Orderer   sql.NullString      `db:"orderer_name"`
		Status    sql.NullString      `db:"order_status"`
		Total     decimal.NullDecimal `db:"total_price"`
		CreatedAt entity.LenientTime  `db:"created_at"`
	}
	query := `
		SELECT uuid, orderer_name, order_status, total_price, created_at
		FROM shop_order
		ORDER BY created_at DESC
		LIMIT :limit
	`
	rows, err := QueryListNamed[row](ctx, os.DB(), query, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	out := make([]entity.RecentItem, len(rows))
	for i, r := range rows {
		title := r.Orderer.String
		if title == "" {
			title = displayNameFallback
		}
		amount := decimal.Zero
		if r.Total.Valid {
			amount = r.Total.Decimal
		}
		out[i] = entity.RecentItem{
			ID:        r.UUID,
			Title:     title,
			Status:    r.Status.String,
			Amount:    amount,
			CreatedAt: r.CreatedAt.Time,
		}
	}
	return out, nil
}
