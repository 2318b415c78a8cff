package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/dependency"
)

type pointsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Points() dependency.Points {
	return &pointsStore{MYSQLStore: ms}
}

type amountRow struct {
	Amount decimal.Decimal `db:"amount"`
}

func (ps *pointsStore) IssuedBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0) AS amount
		FROM point_transaction
		WHERE amount > 0
		AND created_at >= :from AND created_at < :to
	`
	r, err := QueryNamedOne[amountRow](ctx, ps.DB(), query, map[string]any{"from": from, "to": to})
	if err != nil {
		return decimal.Zero, err
	}
	return r.Amount, nil
}

func (ps *pointsStore) SpentBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(-SUM(amount), 0) AS amount
		FROM point_transaction
		WHERE amount < 0
		AND created_at >= :from AND created_at < :to
	`
	r, err := QueryNamedOne[amountRow](ctx, ps.DB(), query, map[string]any{"from": from, "to": to})
	if err != nil {
		return decimal.Zero, err
	}
	return r.Amount, nil
}

func (ps *pointsStore) OutstandingBalance(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) AS amount FROM point_transaction`
	r, err := QueryNamedOne[amountRow](ctx, ps.DB(), query, map[string]any{})
	if err != nil {
		return decimal.Zero, err
	}
	return r.Amount, nil
}
