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

type reviewsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Reviews() dependency.Reviews {
	return &reviewsStore{MYSQLStore: ms}
}

func (rs *reviewsStore) CountTotal(ctx context.Context) (int, error) {
	return QueryCountNamed(ctx, rs.DB(), `SELECT COUNT(*) FROM product_review`, map[string]any{})
}

func (rs *reviewsStore) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM product_review WHERE created_at >= :from AND created_at < :to`
	return QueryCountNamed(ctx, rs.DB(), query, map[string]any{"from": from, "to": to})
}

func (rs *reviewsStore) CountByDay(ctx context.Context, from, to time.Time) ([]entity.SeriesPoint, error) {
	d := dayExpr("created_at")
	query := fmt.Sprintf(`
		SELECT %s AS d, COUNT(*) AS value
		FROM product_review
		WHERE created_at >= :from AND created_at < :to
		GROUP BY %s
		ORDER BY d
	`, d, d)
	return querySeries(ctx, rs.DB(), query, map[string]any{"from": from, "to": to})
}

func (rs *reviewsStore) Recent(ctx context.Context, limit int) ([]entity.RecentItem, error) {
	type row struct {
		ID        int                `db:"id"`
		Product   sql.NullString     `db:"product_name"`
		Author    sql.NullString     `db:"author_name"`
		Rating    sql.NullInt64      `db:"rating"`
		CreatedAt entity.LenientTime `db:"created_at"`
	}
	query := `
		SELECT id, product_name, author_name, rating, created_at
		FROM product_review
		ORDER BY created_at DESC
		LIMIT :limit
	`
	rows, err := QueryListNamed[row](ctx, rs.DB(), query, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	out := make([]entity.RecentItem, len(rows))
	for i, r := range rows {
		title := r.Product.String
		if title == "" {
			title = displayNameFallback
		}
		if r.Author.String != "" {
			title = title + " · " + r.Author.String
		}
		out[i] = entity.RecentItem{
			ID:        strconv.Itoa(r.ID),
			Title:     title,
			Status:    fmt.Sprintf("%d/5", r.Rating.Int64),
			Amount:    decimal.Zero,
			CreatedAt: r.CreatedAt.Time,
		}
	}
	return out, nil
}
