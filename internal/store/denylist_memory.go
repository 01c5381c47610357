package store

import (
	"context"
	"sync"
	"time"
)

// MemoryDenylist is an in process TokenDenylist for tests and single
// node development runs without Redis. Expired entries are dropped
// lazily on lookup.
type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Add(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[jti] = time.Now().Add(ttl)

	return nil
}

func (d *MemoryDenylist) Contains(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	expiry, ok := d.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(d.entries, jti)
		return false, nil
	}

	return true, nil
}
