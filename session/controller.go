// Package session coordinates a scoping session against the server: initial
// load of saved state plus root listing, and save/reconcile of edits.
package session

import (
	"context"
	"fmt"

	"github.com/docscope/docscope"
	"github.com/docscope/docscope/cache"
	"golang.org/x/sync/errgroup"
)

// Controller owns the client-side state of one scoping session. It is the
// only component that talks to the state service; tree listings go through
// the cache.
type Controller struct {
	states docscope.StateService
	cache  *cache.Cache
	engine *docscope.Engine
}

// NewController creates a Controller over the given services.
func NewController(states docscope.StateService, c *cache.Cache) *Controller {
	return &Controller{
		states: states,
		cache:  c,
		engine: docscope.NewEngine(docscope.NewPathSet(), c),
	}
}

// Engine returns the selection engine for the session.
func (c *Controller) Engine() *docscope.Engine {
	return c.engine
}

// Cache returns the session's tree cache.
func (c *Controller) Cache() *cache.Cache {
	return c.cache
}

// Load fetches the saved selection and the root listing in parallel. Either
// failure aborts initialization: the cache is cleared, the engine keeps its
// previous set, and a single error is returned for the user.
func (c *Controller) Load(ctx context.Context) error {
	var set *docscope.PathSet

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		loaded, err := c.states.LoadState(gctx)
		if err != nil {
			return fmt.Errorf("loading saved selection: %w", err)
		}
		set = loaded
		return nil
	})
	g.Go(func() error {
		if _, err := c.cache.Children(gctx, ""); err != nil {
			return fmt.Errorf("listing tree root: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		c.cache.Reset()
		return err
	}

	c.engine.Replace(set)
	return nil
}

// Roots returns the materialized root nodes. Empty before a successful Load.
func (c *Controller) Roots() []docscope.Node {
	nodes, _ := c.cache.Cached("")
	return nodes
}

// Save posts the current selection and adopts the canonical form the server
// returns, which may collapse directory entries to concrete file paths. On
// failure local state is left exactly as it was.
func (c *Controller) Save(ctx context.Context) error {
	canonical, err := c.states.SaveState(ctx, c.engine.Set())
	if err != nil {
		return fmt.Errorf("saving selection: %w", err)
	}
	c.engine.Replace(canonical)
	return nil
}
