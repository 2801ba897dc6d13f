// Package search debounces search input into at most one request per quiet
// period and drops responses that are no longer current.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"Pokedex/internal/model"
)

// DefaultWait is the quiet period after the last change.
const DefaultWait = 300 * time.Millisecond

// SearchFunc performs the remote search.
type SearchFunc func(ctx context.Context, query string) ([]model.Item, error)

// Sink receives search outcomes. It is resolved when a response arrives, so
// it always acts on live state.
type Sink interface {
	ApplySearchResults(query string, results []model.Item)
	ClearSearch()
}

// Controller is a timer-reset debouncer with generation tokens.
type Controller struct {
	ctx    context.Context
	wait   time.Duration
	search SearchFunc
	sink   Sink
	logger *zap.SugaredLogger

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
	wg      sync.WaitGroup
}

// New creates a controller bound to ctx. A non-positive wait means DefaultWait.
func New(ctx context.Context, search SearchFunc, sink Sink, wait time.Duration, logger *zap.SugaredLogger) *Controller {
	if wait <= 0 {
		wait = DefaultWait
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Controller{ctx: ctx, wait: wait, search: search, sink: sink, logger: logger}
}

// Change records a new query. Blank queries clear the search immediately;
// anything else (re)starts the quiet period.
func (c *Controller) Change(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.gen++
	c.cancelTimer()
	if strings.TrimSpace(query) == "" {
		c.sink.ClearSearch()
		return
	}
	gen := c.gen
	c.wg.Add(1)
	c.timer = time.AfterFunc(c.wait, func() {
		defer c.wg.Done()
		c.fire(gen, query)
	})
}

// Submit is an explicit search request. It follows the same debounce as
// Change.
func (c *Controller) Submit(query string) { c.Change(query) }

// Clear drops any pending or running search and restores the base view.
func (c *Controller) Clear() { c.Change("") }

// Stop cancels pending work; responses that arrive later are ignored.
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopped = true
	c.gen++
	c.cancelTimer()
}

// Wait blocks until pending and running searches have settled.
func (c *Controller) Wait() { c.wg.Wait() }

func (c *Controller) cancelTimer() {
	if c.timer != nil && c.timer.Stop() {
		c.wg.Done()
	}
	c.timer = nil
}

func (c *Controller) fire(gen uint64, query string) {
	c.mu.Lock()
	current := !c.stopped && gen == c.gen
	c.mu.Unlock()
	if !current {
		return
	}

	results, err := c.search(c.ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || gen != c.gen || c.ctx.Err() != nil {
		c.logger.Debugw("stale search response dropped", "query", query)
		return
	}
	if err != nil {
		c.logger.Warnw("search failed", "query", query, "error", err)
		results = nil
	}
	c.sink.ApplySearchResults(query, results)
}
