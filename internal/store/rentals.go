package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/dependency"
	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/status"
)

type rentalsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Rentals() dependency.Rentals {
	return &rentalsStore{MYSQLStore: ms}
}

func (rs *rentalsStore) ActiveCount(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM racquet_rental WHERE status IN (:checkedOut)`
	return QueryCountNamed(ctx, rs.DB(), query, map[string]any{
		"checkedOut": status.CheckedOutLabels(),
	})
}

func (rs *rentalsStore) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM racquet_rental WHERE created_at >= :from AND created_at < :to`
	return QueryCountNamed(ctx, rs.DB(), query, map[string]any{"from": from, "to": to})
}

// PaidRevenue sums the earned components of paid rentals in the window.
// The decomposition of a rental charge into revenue lives on
// entity.RentalChargeRow.
func (rs *rentalsStore) PaidRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT rental_fee, string_price, stringing_fee, deposit_amount
		FROM racquet_rental
		WHERE created_at >= :from AND created_at < :to
		AND payment_status IN (:paid)
	`
	rows, err := QueryListNamed[entity.RentalChargeRow](ctx, rs.DB(), query, map[string]any{
		"from": from, "to": to,
		"paid": status.PaymentLabels(status.PaymentPaid),
	})
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Revenue())
	}
	return total, nil
}

func (rs *rentalsStore) DueCandidates(ctx context.Context, horizon time.Time) ([]entity.QueueCandidate, error) {
	type row struct {
		ID        int                 `db:"id"`
		Renter    sql.NullString      `db:"renter_name"`
		Racquet   sql.NullString      `db:"racquet_name"`
		Fee       decimal.NullDecimal `db:"rental_fee"`
		Status    sql.NullString      `db:"status"`
		DueAt     entity.LenientTime  `db:"due_at"`
		CreatedAt entity.LenientTime  `db:"created_at"`
	}
	query := `
		SELECT id, renter_name, racquet_name, rental_fee, status, due_at, created_at
		FROM racquet_rental
		WHERE status IN (:checkedOut)
		AND due_at IS NOT NULL AND due_at <= :horizon
		ORDER BY due_at ASC
	`
	rows, err := QueryListNamed[row](ctx, rs.DB(), query, map[string]any{
		"checkedOut": status.CheckedOutLabels(),
		"horizon":    horizon,
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.QueueCandidate, len(rows))
	for i, r := range rows {
		name := r.Renter.String
		if name == "" {
			name = displayNameFallback
		}
		if r.Racquet.String != "" {
			name = name + " · " + r.Racquet.String
		}
		fee := decimal.Zero
		if r.Fee.Valid {
			fee = r.Fee.Decimal
		}
		out[i] = entity.QueueCandidate{
			Kind:               "rental",
			ID:                 r.ID,
			CreatedAt:          r.CreatedAt.Time,
			DisplayName:        name,
			Amount:             fee,
			RawLifecycleStatus: r.Status.String,
			DueAt:              r.DueAt.Time,
		}
	}
	return out, nil
}
