package criticality

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// ErrTierNotFound is returned when the priority catalog lacks a required tier.
var ErrTierNotFound = errors.New("priority tier not found")

// Catalog resolves a catalog key (rank number or tier name) to a tier identifier.
type Catalog interface {
	LookupTier(ctx context.Context, key string) (uint, error)
}

// TierSet is the typed binding of engine tiers to catalog identifiers.
// It is built once per run and is complete by construction.
type TierSet struct {
	ids map[Tier]uint
}

// ID returns the catalog identifier bound to the tier.
func (s TierSet) ID(t Tier) uint {
	return s.ids[t]
}

// NewTierSet builds a TierSet from explicit identifiers. Every tier must be present.
func NewTierSet(ids map[Tier]uint) (TierSet, error) {
	for _, t := range Tiers {
		if _, ok := ids[t]; !ok {
			return TierSet{}, fmt.Errorf("%s: %w", t, ErrTierNotFound)
		}
	}
	bound := make(map[Tier]uint, len(ids))
	for t, id := range ids {
		bound[t] = id
	}
	return TierSet{ids: bound}, nil
}

// BindTiers resolves every tier through the catalog. Any missing tier fails the whole binding.
func BindTiers(ctx context.Context, catalog Catalog, keys map[Tier]string) (TierSet, error) {
	ids := make(map[Tier]uint, len(Tiers))
	for _, t := range Tiers {
		key, ok := keys[t]
		if !ok || key == "" {
			return TierSet{}, fmt.Errorf("no catalog key configured for %s: %w", t, ErrTierNotFound)
		}
		id, err := catalog.LookupTier(ctx, key)
		if err != nil {
			return TierSet{}, fmt.Errorf("failed to bind tier %s (catalog key %q): %w", t, key, err)
		}
		ids[t] = id
	}
	return NewTierSet(ids)
}

type catalogEntry struct {
	id    uint
	built time.Time
}

// CachedCatalog caches catalog lookups for a TTL.
// Concurrent misses for the same key share one lookup.
type CachedCatalog struct {
	next Catalog
	ttl  time.Duration
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]catalogEntry
	sf      singleflight.Group
}

// NewCachedCatalog wraps a catalog with a TTL cache. A zero TTL disables caching.
func NewCachedCatalog(next Catalog, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		next:    next,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]catalogEntry),
	}
}

// LookupTier implements Catalog.
func (c *CachedCatalog) LookupTier(ctx context.Context, key string) (uint, error) {
	if c.ttl == 0 {
		return c.next.LookupTier(ctx, key)
	}

	if id, ok := c.fresh(key); ok {
		return id, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Another caller may have filled the entry while we waited
		if id, ok := c.fresh(key); ok {
			return id, nil
		}
		id, err := c.next.LookupTier(ctx, key)
		if err != nil {
			return uint(0), err
		}
		c.mu.Lock()
		c.entries[key] = catalogEntry{id: id, built: c.now()}
		c.mu.Unlock()
		return id, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(uint), nil
}

// Invalidate drops every cached entry.
func (c *CachedCatalog) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]catalogEntry)
	c.mu.Unlock()
}

func (c *CachedCatalog) fresh(key string) (uint, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(entry.built) > c.ttl {
		return 0, false
	}
	return entry.id, true
}
