package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smashlab/racquet-manager/internal/dependency"
	"github.com/smashlab/racquet-manager/internal/entity"
)

type usersStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Users() dependency.Users {
	return &usersStore{MYSQLStore: ms}
}

func (us *usersStore) CountTotal(ctx context.Context) (int, error) {
	return QueryCountNamed(ctx, us.DB(), `SELECT COUNT(*) FROM account`, map[string]any{})
}

func (us *usersStore) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM account WHERE created_at >= :from AND created_at < :to`
	return QueryCountNamed(ctx, us.DB(), query, map[string]any{"from": from, "to": to})
}

func (us *usersStore) SignupsByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error) {
	d := dayExpr("created_at")
	query := fmt.Sprintf(`
		SELECT %s AS d, COUNT(*) AS value
		FROM account
		WHERE created_at >= :from AND created_at < :to
		GROUP BY %s
		ORDER BY d
	`, d, d)
	return querySeries(ctx, us.DB(), query, map[string]any{"from": from, "to": to})
}

func (us *usersStore) Recent(ctx context.Context, limit int) ([]entity.RecentItem, error) {
	type row struct {
		ID        int                `db:"id"`
		Email     string             `db:"email"`
		Name      sql.NullString     `db:"display_name"`
		Status    string             `db:"status"`
		CreatedAt entity.LenientTime `db:"created_at"`
	}
	query := `
		SELECT id, email, display_name, status, created_at
		FROM account
		ORDER BY created_at DESC
		LIMIT :limit
	`
	rows, err := QueryListNamed[row](ctx, us.DB(), query, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	out := make([]entity.RecentItem, len(rows))
	for i, r := range rows {
		title := r.Name.String
		if title == "" {
			title = r.Email
		}
		out[i] = entity.RecentItem{
			ID:        strconv.Itoa(r.ID),
			Title:     title,
			Status:    r.Status,
			Amount:    decimal.Zero,
			CreatedAt: r.CreatedAt.Time,
		}
	}
	return out, nil
}
