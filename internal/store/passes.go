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

type passesStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Passes() dependency.Passes {
	return &passesStore{MYSQLStore: ms}
}

func (ps *passesStore) ActiveCount(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM stringing_pass WHERE status IN (:active)`
	return QueryCountNamed(ctx, ps.DB(), query, map[string]any{
		"active": status.ActivePassLabels(),
	})
}

func (ps *passesStore) ExpiringCandidates(ctx context.Context, from, until time.Time) ([]entity.QueueCandidate, error) {
	type row struct {
		ID        int                `db:"id"`
		Holder    sql.NullString     `db:"holder_name"`
		Status    string             `db:"status"`
		Remaining int                `db:"remaining_count"`
		ExpiresAt entity.LenientTime `db:"expires_at"`
		CreatedAt entity.LenientTime `db:"created_at"`
	}
	query := `
		SELECT id, holder_name, status, remaining_count, expires_at, created_at
		FROM stringing_pass
		WHERE status IN (:active)
		AND expires_at >= :from AND expires_at <= :until
		ORDER BY expires_at ASC
	`
	rows, err := QueryListNamed[row](ctx, ps.DB(), query, map[string]any{
		"active": status.ActivePassLabels(),
		"from":   from,
		"until":  until,
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.QueueCandidate, len(rows))
	for i, r := range rows {
		name := r.Holder.String
		if name == "" {
			name = displayNameFallback
		}
		out[i] = entity.QueueCandidate{
			Kind:               "pass",
			ID:                 r.ID,
			CreatedAt:          r.CreatedAt.Time,
			DisplayName:        name,
			Amount:             decimal.NewFromInt(int64(r.Remaining)),
			RawLifecycleStatus: r.Status,
			DueAt:              r.ExpiresAt.Time,
		}
	}
	return out, nil
}
