package store

import (
	"context"
	"database/sql"

	"github.com/smashlab/racquet-manager/internal/dependency"
	"github.com/smashlab/racquet-manager/internal/entity"
)

type inventoryStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Inventory() dependency.Inventory {
	return &inventoryStore{MYSQLStore: ms}
}

func (is *inventoryStore) CountItems(ctx context.Context) (int, error) {
	return QueryCountNamed(ctx, is.DB(), `SELECT COUNT(*) FROM inventory_item`, map[string]any{})
}

func (is *inventoryStore) LowStockCount(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM inventory_item WHERE stock <= safety_stock`
	return QueryCountNamed(ctx, is.DB(), query, map[string]any{})
}

func (is *inventoryStore) LowStockList(ctx context.Context, limit int) ([]entity.LowStock, error) {
	type row struct {
		ID          int            `db:"id"`
		Name        string         `db:"name"`
		Brand       sql.NullString `db:"brand"`
		Stock       int            `db:"stock"`
		SafetyStock int            `db:"safety_stock"`
	}
	query := `
		SELECT id, name, brand, stock, safety_stock
		FROM inventory_item
		WHERE stock <= safety_stock
		ORDER BY stock ASC, id ASC
		LIMIT :limit
	`
	rows, err := QueryListNamed[row](ctx, is.DB(), query, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	out := make([]entity.LowStock, len(rows))
	for i, r := range rows {
		out[i] = entity.LowStock{
			ID:          r.ID,
			Name:        r.Name,
			Brand:       r.Brand.String,
			Stock:       r.Stock,
			SafetyStock: r.SafetyStock,
		}
	}
	return out, nil
}
