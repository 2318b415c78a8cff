package store

import (
	"context"

	"github.com/smashlab/racquet-manager/internal/dependency"
)

type notificationsStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Notifications() dependency.Notifications {
	return &notificationsStore{MYSQLStore: ms}
}

func (ns *notificationsStore) PendingCount(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM notification_outbox WHERE status = 'pending'`
	return QueryCountNamed(ctx, ns.DB(), query, map[string]any{})
}

func (ns *notificationsStore) FailedCount(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM notification_outbox WHERE status = 'failed'`
	return QueryCountNamed(ctx, ns.DB(), query, map[string]any{})
}
