// Package cache owns the materialized portion of the tree: children keyed by
// parent path, fetched lazily from a directory-listing service and kept for
// the lifetime of a session.
package cache

import (
	"context"
	"sync"

	"github.com/docscope/docscope"
	"golang.org/x/sync/singleflight"
)

// Ensure Cache implements docscope.ChildReader at compile time.
var _ docscope.ChildReader = (*Cache)(nil)

// Cache is a lazily-populated children map with request coalescing: at most
// one listing fetch is in flight per parent path, and concurrent callers for
// the same path attach to it rather than issuing duplicate calls. Failures
// are surfaced to all waiters and nothing is cached, so a retry issues a
// fresh fetch. The map grows monotonically until Reset.
//
// Cache is safe for concurrent use.
type Cache struct {
	lister docscope.Lister
	group  singleflight.Group

	mu       sync.RWMutex
	children map[string][]docscope.Node
}

// New creates a Cache backed by the given lister.
func New(lister docscope.Lister) *Cache {
	return &Cache{
		lister:   lister,
		children: make(map[string][]docscope.Node),
	}
}

// Children returns the children of rel, fetching them on first access.
// Callers must treat the returned slice as read-only.
func (c *Cache) Children(ctx context.Context, rel string) ([]docscope.Node, error) {
	rel = docscope.Normalize(rel)

	if nodes, ok := c.Cached(rel); ok {
		return nodes, nil
	}

	v, err, _ := c.group.Do(rel, func() (any, error) {
		// A fetch that completed while we were queueing wins.
		if nodes, ok := c.Cached(rel); ok {
			return nodes, nil
		}
		nodes, err := c.lister.ListChildren(ctx, rel)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.children[rel] = nodes
		c.mu.Unlock()
		return nodes, nil
	})
	if err != nil {
		return nil, err
	}
	nodes, _ := v.([]docscope.Node)
	return nodes, nil
}

// Cached returns the children of rel if they have been fetched.
func (c *Cache) Cached(rel string) ([]docscope.Node, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nodes, ok := c.children[docscope.Normalize(rel)]
	return nodes, ok
}

// Reset drops all materialized children. Used on full reload.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.children = make(map[string][]docscope.Node)
}
