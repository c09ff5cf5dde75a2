package profile

import (
	"context"
	"sync"
)

// Cache keeps per-employee profile snapshots warm between edits. Save
// handlers feed it the sub-object they are about to return; reads load
// through on a miss. The employee row stays the source of truth, the cache
// only skips reassembling the view on repeat reads.
type Cache struct {
	mu    sync.RWMutex
	coord *Coordinator
	data  map[string]Snapshot
}

func NewCache(coord *Coordinator) *Cache {
	if coord == nil {
		coord = NewCoordinator(nil)
	}
	return &Cache{coord: coord, data: map[string]Snapshot{}}
}

// Get returns the snapshot for one employee, calling load on a miss. The
// returned snapshot is a copy; mutating it does not touch the cache.
func (c *Cache) Get(ctx context.Context, employeeID string, load RefetchFunc) (Snapshot, error) {
	c.mu.RLock()
	snap, ok := c.data[employeeID]
	c.mu.RUnlock()
	if ok {
		return clone(snap), nil
	}

	fresh, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	c.data[employeeID] = fresh
	c.mu.Unlock()
	return clone(fresh), nil
}

// ApplySave folds a save response into the cached snapshot through the
// coordinator: the returned sub-object is merged in place, a response without
// it falls back to refetch. An employee that was never read stays uncached;
// the next Get loads the saved state anyway.
func (c *Cache) ApplySave(ctx context.Context, employeeID string, response Snapshot, key string, refetch RefetchFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	local, ok := c.data[employeeID]
	if !ok {
		return
	}
	c.data[employeeID] = c.coord.Apply(ctx, response, key, local, refetch)
}

func clone(s Snapshot) Snapshot {
	out := make(Snapshot, len(s))
	for key, value := range s {
		out[key] = value
	}
	return out
}
