package store

import (
	"context"
	"strconv"

	"github.com/smashlab/racquet-manager/internal/dependency"
	"github.com/smashlab/racquet-manager/internal/entity"
	"github.com/smashlab/racquet-manager/internal/status"
)

type applicationsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Applications() dependency.Applications {
	return &applicationsStore{MYSQLStore: ms}
}

func (as *applicationsStore) CountTotal(ctx context.Context) (int, error) {
	return QueryCountNamed(ctx, as.DB(), `SELECT COUNT(*) FROM stringing_application`, map[string]any{})
}

// CreatedSince fetches rows whose created_at string sorts at or after the
// given date key. Both the legacy ISO strings and the newer
// "YYYY-MM-DD HH:MM:SS" values start with the date, so the lexicographic
// comparison is a correct coarse filter; precise windowing happens after
// lenient parsing on the caller's side.
func (as *applicationsStore) CreatedSince(ctx context.Context, fromKey string) ([]entity.ApplicationRow, error) {
	query := `
		SELECT id, customer_name, racquet_model, string_name,
			total_amount, payment_status, status, created_at
		FROM stringing_application
		WHERE created_at >= :fromKey
		ORDER BY created_at ASC
	`
	return QueryListNamed[entity.ApplicationRow](ctx, as.DB(), query, map[string]any{"fromKey": fromKey})
}

func (as *applicationsStore) UnresolvedCandidates(ctx context.Context) ([]entity.QueueCandidate, error) {
	query := `
		SELECT id, customer_name, racquet_model, string_name,
			total_amount, payment_status, status, created_at
		FROM stringing_application
		WHERE status IN (:unresolved)
		ORDER BY created_at ASC
	`
	rows, err := QueryListNamed[entity.ApplicationRow](ctx, as.DB(), query, map[string]any{
		"unresolved": status.UnresolvedApplicationLabels(),
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.QueueCandidate, len(rows))
	for i, r := range rows {
		out[i] = applicationCandidate(r)
	}
	return out, nil
}

func applicationCandidate(r entity.ApplicationRow) entity.QueueCandidate {
	name := r.CustomerName
	if name == "" {
		name = displayNameFallback
	}
	return entity.QueueCandidate{
		Kind:               "application",
		ID:                 r.ID,
		CreatedAt:          r.CreatedAt.Time,
		DisplayName:        name,
		Amount:             r.Amount(),
		RawPaymentStatus:   r.RawPaymentStatus,
		RawLifecycleStatus: r.RawLifecycleStatus,
	}
}

func (as *applicationsStore) Recent(ctx context.Context, limit int) ([]entity.RecentItem, error) {
	query := `
		SELECT id, customer_name, racquet_model, string_name,
			total_amount, payment_status, status, created_at
		FROM stringing_application
		ORDER BY created_at DESC
		LIMIT :limit
	`
	rows, err := QueryListNamed[entity.ApplicationRow](ctx, as.DB(), query, map[string]any{"limit": limit})
	if err != nil {
		return nil, err
	}
	out := make([]entity.RecentItem, len(rows))
	for i, r := range rows {
		title := r.CustomerName
		if title == "" {
			title = displayNameFallback
		}
		if r.RacquetModel != "" {
			title = title + " · " + r.RacquetModel
		}
		out[i] = entity.RecentItem{
			ID:        strconv.Itoa(r.ID),
			Title:     title,
			Status:    r.RawLifecycleStatus,
			Amount:    r.Amount(),
			CreatedAt: r.CreatedAt.Time,
		}
	}
	return out, nil
}
