package cache

import (
	"context"
	"sync"
	"time"

	"boatfeed/internal/domain/model"
	"boatfeed/internal/domain/port"
)

var _ port.DatasetCachePort = (*MemoryAdapter)(nil)

// MemoryAdapter is the default dataset cache: a single mutex-guarded cell.
// Expired datasets stay in the cell so a failed rebuild can still serve the
// previous dataset marked stale.
type MemoryAdapter struct {
	mu  sync.RWMutex
	ds  *model.BaseDataset
	ttl time.Duration
	now func() time.Time
}

func NewMemoryAdapter(ttl time.Duration) *MemoryAdapter {
	return &MemoryAdapter{
		ttl: ttl,
		now: time.Now,
	}
}

func (a *MemoryAdapter) Load(_ context.Context) (*model.BaseDataset, bool, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.ds == nil {
		return nil, false, nil
	}
	fresh := a.ds.Age(a.now()) <= a.ttl
	return a.ds, fresh, nil
}

func (a *MemoryAdapter) Store(_ context.Context, ds *model.BaseDataset) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ds = ds
	return nil
}

func (a *MemoryAdapter) Ping(_ context.Context) error { return nil }

func (a *MemoryAdapter) Close() error { return nil }
