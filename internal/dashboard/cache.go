package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/smashlab/racquet-manager/internal/entity"
)

// Cache fronts a Service with the snapshot's own recommended freshness
// window. Concurrent callers during a rebuild wait for the single
// in-flight build instead of stampeding the database.
type Cache struct {
	svc *Service

	mu      sync.Mutex
	snap    *entity.Snapshot
	staleAt time.Time
}

func NewCache(svc *Service) *Cache {
	return &Cache{svc: svc}
}

// Snapshot returns the cached snapshot while it is fresh, rebuilding
// otherwise. A failed rebuild keeps no state; the next caller retries.
func (c *Cache) Snapshot(ctx context.Context) (*entity.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && time.Now().Before(c.staleAt) {
		return c.snap, nil
	}

	snap, err := c.svc.Build(ctx)
	if err != nil {
		return nil, err
	}
	c.snap = snap
	c.staleAt = time.Now().Add(time.Duration(snap.CacheMaxAge) * time.Second)
	return snap, nil
}

// Invalidate drops the cached snapshot so the next read rebuilds.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}
