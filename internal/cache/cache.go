// Package cache provides the process-wide read cache shared by the
// list-producing usecases. Entries are stored under operation keys, tagged
// with the topics that could be invalidated by a mutation, and expire after
// a long safety-net TTL. The cache is an explicit dependency injected into
// the usecases; there is no hidden global.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// DefaultTTL is the safety-net freshness window. Invalidation by tag is the
// primary staleness mechanism; the TTL only bounds the damage of a missed
// invalidation.
const DefaultTTL = 24 * time.Hour

// tagIndex tracks which keys carry which tags so that a mutation can drop
// every entry that could contain a view of the affected entity.
type tagIndex struct {
	mu    sync.Mutex
	byTag map[string]map[string]struct{} // tag -> keys
	byKey map[string][]string            // key -> tags
}

func newTagIndex() *tagIndex {
	return &tagIndex{
		byTag: make(map[string]map[string]struct{}),
		byKey: make(map[string][]string),
	}
}

func (ix *tagIndex) add(key string, tags []string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(key)
	ix.byKey[key] = tags
	for _, tag := range tags {
		keys, ok := ix.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			ix.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

func (ix *tagIndex) remove(key string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.removeLocked(key)
}

func (ix *tagIndex) removeLocked(key string) {
	for _, tag := range ix.byKey[key] {
		delete(ix.byTag[tag], key)
		if len(ix.byTag[tag]) == 0 {
			delete(ix.byTag, tag)
		}
	}
	delete(ix.byKey, key)
}

func (ix *tagIndex) keysFor(tag string) []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	keys := make([]string, 0, len(ix.byTag[tag]))
	for k := range ix.byTag[tag] {
		keys = append(keys, k)
	}
	return keys
}

// Tagged is a TTL cache whose entries can be invalidated in groups by
// topic tag. It is safe for concurrent use.
type Tagged struct {
	store *ttlcache.Cache[string, any]
	tags  *tagIndex
}

// New creates a tagged cache and starts its expiry janitor. Call Stop on
// process shutdown.
func New() *Tagged {
	store := ttlcache.New[string, any](
		ttlcache.WithTTL[string, any](DefaultTTL),
		// Reads must not extend the freshness window.
		ttlcache.WithDisableTouchOnHit[string, any](),
	)

	c := &Tagged{store: store, tags: newTagIndex()}
	store.OnEviction(func(_ context.Context, _ ttlcache.EvictionReason, item *ttlcache.Item[string, any]) {
		c.tags.remove(item.Key())
	})

	go store.Start()
	return c
}

// Get returns the cached value for key, if present and unexpired.
func (c *Tagged) Get(key string) (any, bool) {
	item := c.store.Get(key)
	if item == nil {
		recordMiss()
		return nil, false
	}
	recordHit()
	return item.Value(), true
}

// Put stores value under key with the given invalidation tags. A zero ttl
// uses DefaultTTL.
func (c *Tagged) Put(key string, value any, tags []string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = ttlcache.DefaultTTL
	}
	c.store.Set(key, value, ttl)
	c.tags.add(key, tags)
}

// Invalidate drops every entry carrying any of the given tags.
// Over-invalidation is acceptable; under-invalidation is a bug.
func (c *Tagged) Invalidate(tags ...string) {
	for _, tag := range tags {
		for _, key := range c.tags.keysFor(tag) {
			c.store.Delete(key)
			recordInvalidation()
		}
	}
}

// Len returns the number of live entries.
func (c *Tagged) Len() int {
	return c.store.Len()
}

// Stop halts the expiry janitor. The cache remains usable afterwards but
// expired entries are only dropped lazily.
func (c *Tagged) Stop() {
	c.store.Stop()
}
