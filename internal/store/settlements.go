package store

import (
	"context"

	"github.com/smashlab/racquet-manager/internal/dependency"
)

type settlementsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Settlements() dependency.Settlements {
	return &settlementsStore{MYSQLStore: ms}
}

// Exists reports whether the monthly settlement artifact has been
// generated for the month. The artifact is produced by a separate batch
// job; the dashboard only surfaces presence.
func (ss *settlementsStore) Exists(ctx context.Context, monthKey string) (bool, error) {
	query := `SELECT COUNT(*) FROM monthly_settlement WHERE month_key = :key`
	n, err := QueryCountNamed(ctx, ss.DB(), query, map[string]any{"key": monthKey})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
