package service

import (
	"sync"
	"time"

	"github.com/medkit-lab/labauth/models"
)

// permissionCache holds the per-role permission sets with a TTL. Reads
// vastly outnumber writes, so a RWMutex over a small map is sufficient;
// an external cache would only add a network hop for five roles worth of
// data.
type permissionCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[models.Role]permissionCacheEntry
}

type permissionCacheEntry struct {
	codes     map[models.PermissionCode]struct{}
	ordered   []models.PermissionCode
	expiresAt time.Time
}

func newPermissionCache(ttl time.Duration) *permissionCache {
	return &permissionCache{
		ttl:     ttl,
		entries: make(map[models.Role]permissionCacheEntry),
	}
}

func (c *permissionCache) get(role models.Role) (permissionCacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[role]
	if !ok || time.Now().After(entry.expiresAt) {
		return permissionCacheEntry{}, false
	}

	return entry, true
}

func (c *permissionCache) put(role models.Role, codes []models.PermissionCode) permissionCacheEntry {
	set := make(map[models.PermissionCode]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}

	entry := permissionCacheEntry{
		codes:     set,
		ordered:   codes,
		expiresAt: time.Now().Add(c.ttl),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[role] = entry

	return entry
}

func (c *permissionCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[models.Role]permissionCacheEntry)
}
