// Package scroll decides when the next catalog page may be requested.
package scroll

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FetchFunc loads the page at offset and reports whether more pages follow.
type FetchFunc func(ctx context.Context, offset, limit int) (hasMore bool, err error)

// Cursor is the pagination position. Offset advances only after a successful
// fetch.
type Cursor struct {
	Offset  int
	HasMore bool
}

// Trigger observes the sentinel (the last rendered entry) and requests the
// next page when it becomes visible. At most one fetch is in flight.
type Trigger struct {
	ctx    context.Context
	fetch  FetchFunc
	limit  int
	logger *zap.SugaredLogger

	mu       sync.Mutex
	cursor   Cursor
	inFlight bool
	query    string
	sentinel string
	stopped  bool
	wg       sync.WaitGroup
}

// New creates a trigger bound to ctx; fetches started by it use ctx.
func New(ctx context.Context, fetch FetchFunc, limit int, logger *zap.SugaredLogger) *Trigger {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Trigger{
		ctx:    ctx,
		fetch:  fetch,
		limit:  limit,
		logger: logger,
		cursor: Cursor{HasMore: true},
	}
}

// Reset sets the cursor, e.g. after the initial page was loaded.
func (t *Trigger) Reset(c Cursor) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cursor = c
}

// Arm detaches from the previous sentinel and observes name instead.
func (t *Trigger) Arm(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.sentinel = name
}

// SetQuery records the active search query; pagination is suspended while it
// is non-blank.
func (t *Trigger) SetQuery(q string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.query = q
}

// Visible reports that the entry called name entered the viewport. It
// returns true when this started a fetch.
func (t *Trigger) Visible(name string) bool {
	t.mu.Lock()
	if t.stopped || name == "" || name != t.sentinel ||
		!t.cursor.HasMore || t.inFlight || strings.TrimSpace(t.query) != "" {
		t.mu.Unlock()
		return false
	}
	t.inFlight = true
	offset := t.cursor.Offset
	t.wg.Add(1)
	t.mu.Unlock()

	go t.run(offset)
	return true
}

func (t *Trigger) run(offset int) {
	defer t.wg.Done()
	more, err := t.fetch(t.ctx, offset, t.limit)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight = false
	if err != nil {
		t.logger.Warnw("page fetch failed", "offset", offset, "error", err)
		return
	}
	if t.cursor.Offset == offset {
		t.cursor = Cursor{Offset: offset + t.limit, HasMore: more}
	}
}

// Cursor returns the current cursor.
func (t *Trigger) Cursor() Cursor {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursor
}

// InFlight reports whether a fetch is running.
func (t *Trigger) InFlight() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inFlight
}

// Wait blocks until the running fetch, if any, has settled.
func (t *Trigger) Wait() { t.wg.Wait() }

// Stop detaches the trigger for good.
func (t *Trigger) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.sentinel = ""
}
