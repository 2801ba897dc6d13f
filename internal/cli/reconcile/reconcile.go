// Package reconcile merges catalog pages, search results and the user's
// selection into one ordered, duplicate-free view model.
//
// A Reconciler is not safe for concurrent use; the owning session serializes
// calls.
package reconcile

import (
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"Pokedex/internal/cli/errs"
	"Pokedex/internal/cli/model/view"
	"Pokedex/internal/model"
)

// Reconciler holds the base list (everything paged in so far), the current
// view and the selection set.
type Reconciler struct {
	base      []view.Entry
	view      []view.Entry
	selection []model.Item

	// paged: имена, пришедшие со страниц каталога.
	paged map[string]struct{}
	// pinned: имена, попавшие в view только потому, что их выбрали.
	pinned map[string]struct{}

	selectable bool
	strict     bool
}

// Option customises a Reconciler.
type Option func(*Reconciler)

// WithSelection enables or disables selection handling. Browse views run
// without selection; toggles are ignored there.
func WithSelection(enabled bool) Option {
	return func(r *Reconciler) { r.selectable = enabled }
}

// WithStrictPages makes ApplyPage reject a page that repeats an already
// paged name instead of dropping the repeat.
func WithStrictPages(strict bool) Option {
	return func(r *Reconciler) { r.strict = strict }
}

// New returns an empty reconciler with selection enabled.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		paged:      map[string]struct{}{},
		pinned:     map[string]struct{}{},
		selectable: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ApplyPage adds a page of catalog items. An initial page replaces the base
// list and the view; later pages are appended to both without reordering.
// Items whose name is already listed are dropped (first one wins), or, in
// strict mode, the whole page is rejected with ErrDuplicateItem.
func (r *Reconciler) ApplyPage(items []model.Item, initial bool) error {
	listed := map[string]struct{}{}
	if !initial {
		listed = keys(r.base)
	}
	fresh := make([]view.Entry, 0, len(items))
	inPage := map[string]struct{}{}
	for _, it := range items {
		k := it.Key()
		_, dupPage := inPage[k]
		_, dupList := listed[k]
		if dupPage || dupList {
			_, wasPaged := r.paged[k]
			if r.strict && (dupPage || (wasPaged && !initial)) {
				return errors.Mark(errors.Newf("page repeats %q", it.Name), errs.ErrDuplicateItem)
			}
			continue
		}
		inPage[k] = struct{}{}
		fresh = append(fresh, r.entry(it))
	}

	if initial {
		r.paged = map[string]struct{}{}
		r.pinned = map[string]struct{}{}
		r.base = fresh
		r.view = slices.Clone(fresh)
	} else {
		r.base = append(r.base, fresh...)
		inView := keys(r.view)
		for _, e := range fresh {
			if _, ok := inView[e.Key()]; !ok {
				r.view = append(r.view, e)
			}
		}
	}
	for _, it := range items {
		r.paged[it.Key()] = struct{}{}
		delete(r.pinned, it.Key())
	}
	return nil
}

// ApplySearchResults replaces the view with the results plus every selected
// item the results do not contain, selected entries first.
func (r *Reconciler) ApplySearchResults(results []model.Item) {
	merged := lo.UniqBy(append(slices.Clone(results), r.selection...), model.Item.Key)
	r.view = partition(lo.Map(merged, func(it model.Item, _ int) view.Entry {
		return r.entry(it)
	}))
	// выбранные, которых нет в результатах, видны только из-за выбора
	found := map[string]struct{}{}
	for _, it := range results {
		found[it.Key()] = struct{}{}
	}
	r.pinned = map[string]struct{}{}
	for _, it := range r.selection {
		if _, ok := found[it.Key()]; !ok {
			r.pinned[it.Key()] = struct{}{}
		}
	}
}

// ClearSearch restores the view to the base list, selected entries first.
func (r *Reconciler) ClearSearch() {
	r.view = partition(slices.Clone(r.base))
	r.pinned = map[string]struct{}{}
	for _, it := range r.selection {
		if _, ok := r.paged[it.Key()]; !ok {
			r.pinned[it.Key()] = struct{}{}
		}
	}
}

// ToggleSelection adds item to or removes it from the selection set and
// updates the base list and the view.
func (r *Reconciler) ToggleSelection(item model.Item, selected bool) {
	if !r.selectable {
		return
	}
	k := item.Key()
	if selected {
		if !r.Selected(k) {
			r.selection = append(r.selection, item)
		}
	} else {
		r.selection = lo.Reject(r.selection, func(s model.Item, _ int) bool { return s.Key() == k })
	}

	// Выбранный покемон из поиска должен остаться в базовом списке и после
	// сброса поиска.
	_, wasPaged := r.paged[k]
	if i := indexOf(r.base, k); i >= 0 && !selected && !wasPaged {
		// в базовый список элемент попал только из-за выбора
		r.base = slices.Delete(r.base, i, i+1)
	} else if i >= 0 {
		r.base[i].Selected = selected
	} else if selected {
		r.base = append(r.base, view.Entry{Item: item, Selected: true})
	}
	r.base = partition(r.base)

	if i := indexOf(r.view, k); i >= 0 {
		if _, ok := r.pinned[k]; ok && !selected {
			r.view = slices.Delete(r.view, i, i+1)
			delete(r.pinned, k)
		} else {
			r.view[i].Selected = selected
		}
	} else if selected {
		r.view = append(r.view, view.Entry{Item: item, Selected: true})
		r.pinned[k] = struct{}{}
	}
	r.view = partition(r.view)
}

// ClearSelection empties the selection set, e.g. after a group was created.
func (r *Reconciler) ClearSelection() {
	r.selection = nil
	r.base = lo.Filter(r.base, func(e view.Entry, _ int) bool {
		_, ok := r.paged[e.Key()]
		return ok
	})
	for i := range r.base {
		r.base[i].Selected = false
	}
	r.view = lo.Reject(r.view, func(e view.Entry, _ int) bool {
		_, ok := r.pinned[e.Key()]
		return ok
	})
	for i := range r.view {
		r.view[i].Selected = false
	}
	r.pinned = map[string]struct{}{}
}

// SetMark projects a confirmed favorite state onto every copy of the item.
func (r *Reconciler) SetMark(name string, mark bool) {
	k := model.NormalizeName(name)
	for _, list := range [][]view.Entry{r.base, r.view} {
		if i := indexOf(list, k); i >= 0 {
			list[i].Mark = mark
		}
	}
	for i := range r.selection {
		if r.selection[i].Key() == k {
			r.selection[i].Mark = mark
		}
	}
}

// Selected reports whether name is in the selection set.
func (r *Reconciler) Selected(name string) bool {
	k := model.NormalizeName(name)
	return lo.ContainsBy(r.selection, func(it model.Item) bool { return it.Key() == k })
}

// Find returns the entry with the given name from the view, falling back to
// the base list.
func (r *Reconciler) Find(name string) (view.Entry, bool) {
	k := model.NormalizeName(name)
	if i := indexOf(r.view, k); i >= 0 {
		return r.view[i], true
	}
	if i := indexOf(r.base, k); i >= 0 {
		return r.base[i], true
	}
	return view.Entry{}, false
}

// View returns a copy of the current view model.
func (r *Reconciler) View() []view.Entry { return slices.Clone(r.view) }

// Base returns a copy of the base list.
func (r *Reconciler) Base() []view.Entry { return slices.Clone(r.base) }

// Selection returns a copy of the selection set in selection order.
func (r *Reconciler) Selection() []model.Item { return slices.Clone(r.selection) }

// Sentinel returns the name of the last view entry, or "" for an empty view.
func (r *Reconciler) Sentinel() string {
	if len(r.view) == 0 {
		return ""
	}
	return r.view[len(r.view)-1].Name
}

func (r *Reconciler) entry(it model.Item) view.Entry {
	return view.Entry{Item: it, Selected: r.Selected(it.Name)}
}

// partition is a stable selected-first partition.
func partition(entries []view.Entry) []view.Entry {
	selected := lo.Filter(entries, func(e view.Entry, _ int) bool { return e.Selected })
	rest := lo.Reject(entries, func(e view.Entry, _ int) bool { return e.Selected })
	return append(selected, rest...)
}

func indexOf(entries []view.Entry, key string) int {
	return slices.IndexFunc(entries, func(e view.Entry) bool { return e.Key() == key })
}

func keys(entries []view.Entry) map[string]struct{} {
	out := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		out[e.Key()] = struct{}{}
	}
	return out
}
