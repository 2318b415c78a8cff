package store

import (
	"context"
	"time"

	"github.com/smashlab/racquet-manager/internal/dependency"
)

type communityStore struct {
	*MYSQLStore
}

func (ms *MYSQLStore) Community() dependency.Community {
	return &communityStore{MYSQLStore: ms}
}

func (cs *communityStore) PostCount(ctx context.Context) (int, error) {
	return QueryCountNamed(ctx, cs.DB(), `SELECT COUNT(*) FROM board_post`, map[string]any{})
}

func (cs *communityStore) PostsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM board_post WHERE created_at >= :from AND created_at < :to`
	return QueryCountNamed(ctx, cs.DB(), query, map[string]any{"from": from, "to": to})
}

func (cs *communityStore) PendingReportCount(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM post_report WHERE status = 'pending'`
	return QueryCountNamed(ctx, cs.DB(), query, map[string]any{})
}
