// Package session ties the gateway to the list reconciler, the scroll trigger
// and the search controller for one interactive screen.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"Pokedex/internal/cli/api"
	"Pokedex/internal/cli/errs"
	"Pokedex/internal/cli/model/view"
	"Pokedex/internal/cli/reconcile"
	"Pokedex/internal/cli/scroll"
	"Pokedex/internal/cli/search"
	"Pokedex/internal/cli/service"
	"Pokedex/internal/model"
)

// DefaultPageSize is the catalog page length.
const DefaultPageSize = 20

// Mode selects what the session lets the user do with entries.
type Mode int

const (
	// ModeBrowse: просмотр каталога и избранное, без выбора.
	ModeBrowse Mode = iota
	// ModeGroup: сбор группы: выбор покемонов и создание группы.
	ModeGroup
)

func (m Mode) String() string {
	if m == ModeGroup {
		return "group"
	}
	return "browse"
}

// Gateway is the catalog part of the remote gateway.
type Gateway interface {
	ListPage(ctx context.Context, offset, limit int) (api.Page, error)
	Search(ctx context.Context, query string) ([]model.Item, error)
}

var _ Gateway = (*api.Client)(nil)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session closed")

// Session: состояние одного экрана. Все мутации reconciler идут под mu
// в порядке поступления событий.
type Session struct {
	mode   Mode
	gw     Gateway
	favs   service.FavoriteService
	groups service.GroupService
	logger *zap.SugaredLogger

	limit    int
	debounce time.Duration
	strict   bool

	ctx    context.Context
	cancel context.CancelFunc

	trigger  *scroll.Trigger
	searcher *search.Controller

	mu       sync.Mutex
	rec      *reconcile.Reconciler
	marks    map[string]bool
	query    string
	closed   bool
	onChange func()
}

// Option configures a Session.
type Option func(*Session)

// WithPageSize sets the page length.
func WithPageSize(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithDebounce sets the search quiet period.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// WithStrictPages rejects pages that repeat an already listed name.
func WithStrictPages(strict bool) Option {
	return func(s *Session) { s.strict = strict }
}

// WithFavorites enables favorite marks and ToggleFavorite.
func WithFavorites(f service.FavoriteService) Option {
	return func(s *Session) { s.favs = f }
}

// WithGroups enables CreateGroup.
func WithGroups(g service.GroupService) Option {
	return func(s *Session) { s.groups = g }
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a session bound to parent. Nothing is loaded until Open.
func New(parent context.Context, gw Gateway, mode Mode, opts ...Option) *Session {
	s := &Session{
		mode:   mode,
		gw:     gw,
		logger: zap.NewNop().Sugar(),
		limit:  DefaultPageSize,
		marks:  map[string]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(parent)
	s.rec = reconcile.New(
		reconcile.WithSelection(mode == ModeGroup),
		reconcile.WithStrictPages(s.strict),
	)
	s.trigger = scroll.New(s.ctx, s.fetchPage, s.limit, s.logger)
	s.searcher = search.New(s.ctx, s.gw.Search, sink{s}, s.debounce, s.logger)
	return s
}

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// Open loads the first page together with favorite marks and arms the
// scroll trigger on the last entry.
func (s *Session) Open(ctx context.Context) error {
	// Close должен прерывать и первую загрузку
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	var (
		page    api.Page
		listErr error
		marks   map[string]bool
	)
	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		page, listErr = s.gw.ListPage(ctx, 0, s.limit)
		return listErr
	})
	if s.favs != nil {
		p.Go(func(ctx context.Context) error {
			m, err := s.favs.Marks(ctx)
			if err != nil {
				// без отметок список всё равно показываем
				s.logger.Warnw("load favorite marks failed", "error", err)
				return nil
			}
			marks = m
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		s.logger.Errorw("initial page load failed", "error", err)
		return errors.Wrap(listErr, "load first page")
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if marks != nil {
		s.marks = marks
	}
	if err := s.rec.ApplyPage(s.withMarks(page.Items), true); err != nil {
		s.mu.Unlock()
		return err
	}
	sentinel := s.rec.Sentinel()
	s.mu.Unlock()

	s.trigger.Reset(scroll.Cursor{Offset: s.limit, HasMore: page.HasMore})
	s.trigger.Arm(sentinel)
	s.logger.Infow("session opened", "mode", s.mode, "items", len(page.Items), "has_more", page.HasMore)
	s.notify()
	return nil
}

// fetchPage is the trigger's fetch: it runs without the trigger lock held.
func (s *Session) fetchPage(ctx context.Context, offset, limit int) (bool, error) {
	page, err := s.gw.ListPage(ctx, offset, limit)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	if s.closed || s.ctx.Err() != nil {
		s.mu.Unlock()
		s.logger.Debugw("late page dropped", "offset", offset)
		return false, ErrClosed
	}
	if err := s.rec.ApplyPage(s.withMarks(page.Items), false); err != nil {
		s.mu.Unlock()
		return false, err
	}
	sentinel := s.rec.Sentinel()
	s.mu.Unlock()

	s.trigger.Arm(sentinel)
	s.notify()
	return page.HasMore, nil
}

// Visible reports that the entry called name was rendered on screen. It
// returns true when this started a page fetch.
func (s *Session) Visible(name string) bool {
	return s.trigger.Visible(name)
}

// LoadMore behaves as if the current last entry became visible.
func (s *Session) LoadMore() bool {
	s.mu.Lock()
	sentinel := s.rec.Sentinel()
	s.mu.Unlock()
	return s.trigger.Visible(sentinel)
}

// Search records a query change; results arrive after the quiet period.
func (s *Session) Search(q string) {
	if !s.setQuery(q) {
		return
	}
	s.searcher.Change(q)
}

// SubmitSearch is an explicit search request.
func (s *Session) SubmitSearch(q string) {
	if !s.setQuery(q) {
		return
	}
	s.searcher.Submit(q)
}

// ClearSearch drops the query and restores the base list at once.
func (s *Session) ClearSearch() {
	if !s.setQuery("") {
		return
	}
	s.searcher.Clear()
}

func (s *Session) setQuery(q string) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	s.query = q
	s.mu.Unlock()
	s.trigger.SetQuery(q)
	return true
}

// Toggle selects or deselects the entry called name (group mode only).
func (s *Session) Toggle(name string, selected bool) error {
	if s.mode != ModeGroup {
		return errs.Validation("selection is not available in browse mode", "use build-group")
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	e, ok := s.rec.Find(name)
	if !ok {
		s.mu.Unlock()
		return errors.Mark(errors.Newf("%q is not listed", name), errs.ErrNotFound)
	}
	s.rec.ToggleSelection(e.Item, selected)
	sentinel := s.rec.Sentinel()
	s.mu.Unlock()

	s.trigger.Arm(sentinel)
	s.notify()
	return nil
}

// ToggleFavorite flips the favorite state of name and returns the confirmed
// mark. The local mark changes only after the server confirmed it.
func (s *Session) ToggleFavorite(ctx context.Context, name string) (bool, error) {
	if s.favs == nil {
		return false, errors.New("favorites are not available in this session")
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	e, ok := s.rec.Find(name)
	s.mu.Unlock()
	if !ok {
		return false, errors.Mark(errors.Newf("%q is not listed", name), errs.ErrNotFound)
	}

	mark, err := s.favs.Toggle(ctx, e.Item)
	if err != nil {
		s.logger.Warnw("toggle favorite failed", "name", e.Name, "error", err)
		return e.Mark, err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return mark, nil
	}
	s.marks[e.Key()] = mark
	s.rec.SetMark(e.Name, mark)
	s.mu.Unlock()
	s.notify()
	return mark, nil
}

// CreateGroup creates a group from the current selection and clears the
// selection on success. Invalid input fails before any network call.
func (s *Session) CreateGroup(ctx context.Context, name string) (model.Group, error) {
	if s.groups == nil || s.mode != ModeGroup {
		return model.Group{}, errs.Validation("group creation is not available in this session", "use build-group")
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return model.Group{}, ErrClosed
	}
	selection := s.rec.Selection()
	s.mu.Unlock()

	g, err := s.groups.Create(ctx, name, selection)
	if err != nil {
		return model.Group{}, err
	}

	s.mu.Lock()
	if !s.closed {
		s.rec.ClearSelection()
	}
	sentinel := s.rec.Sentinel()
	s.mu.Unlock()
	s.trigger.Arm(sentinel)
	s.notify()
	return g, nil
}

// View returns a snapshot of the view model.
func (s *Session) View() []view.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.View()
}

// Selection returns a snapshot of the selection set.
func (s *Session) Selection() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Selection()
}

// Query returns the last query typed.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Cursor returns the pagination cursor.
func (s *Session) Cursor() scroll.Cursor { return s.trigger.Cursor() }

// OnChange registers fn to run after every view rebuild. fn must not call
// Search, SubmitSearch or ClearSearch.
func (s *Session) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Wait blocks until pending page fetches and searches have settled.
func (s *Session) Wait() {
	s.searcher.Wait()
	s.trigger.Wait()
}

// Close cancels every request the session started. Responses that arrive
// afterwards are discarded. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	s.trigger.Stop()
	s.searcher.Stop()
	s.Wait()
	s.logger.Debugw("session closed", "mode", s.mode)
}

func (s *Session) notify() {
	s.mu.Lock()
	fn := s.onChange
	closed := s.closed
	s.mu.Unlock()
	if fn != nil && !closed {
		fn()
	}
}

// withMarks проецирует известные отметки избранного на элементы страницы.
func (s *Session) withMarks(items []model.Item) []model.Item {
	out := make([]model.Item, len(items))
	for i, it := range items {
		if m, ok := s.marks[it.Key()]; ok {
			it.Mark = m
		}
		out[i] = it
	}
	return out
}

// sink принимает результаты поиска от контроллера.
type sink struct{ s *Session }

func (k sink) ApplySearchResults(query string, results []model.Item) {
	s := k.s
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.rec.ApplySearchResults(s.withMarks(results))
	sentinel := s.rec.Sentinel()
	s.mu.Unlock()
	s.logger.Debugw("search applied", "query", query, "results", len(results))
	s.trigger.Arm(sentinel)
	s.notify()
}

func (k sink) ClearSearch() {
	s := k.s
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.rec.ClearSearch()
	sentinel := s.rec.Sentinel()
	s.mu.Unlock()
	s.trigger.Arm(sentinel)
	s.notify()
}
