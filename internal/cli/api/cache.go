package api

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"Pokedex/internal/model"
)

const (
	// DefaultCacheTTL is how long a detail response is reused.
	DefaultCacheTTL = 30 * time.Minute
	// DefaultCleanupInterval is how often expired entries are purged.
	DefaultCleanupInterval = 1 * time.Hour
)

// DetailCache: кэш карточек покемонов по имени и по id, принадлежит
// конкретному клиенту. Записи живут не дольше TTL.
type DetailCache struct {
	c *gocache.Cache
}

// NewDetailCache creates a cache; ttl <= 0 selects DefaultCacheTTL.
func NewDetailCache(ttl time.Duration) *DetailCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	cleanup := DefaultCleanupInterval
	if ttl*2 < cleanup {
		cleanup = ttl * 2
	}
	return &DetailCache{c: gocache.New(ttl, cleanup)}
}

func nameKey(name string) string { return "name:" + model.NormalizeName(name) }

func idKey(id int) string { return "id:" + strconv.Itoa(id) }

// ByName returns the cached item for name.
func (d *DetailCache) ByName(name string) (model.Item, bool) {
	return d.get(nameKey(name))
}

// ByID returns the cached item for id.
func (d *DetailCache) ByID(id int) (model.Item, bool) {
	return d.get(idKey(id))
}

// Put stores it under its name and, when known, its id.
func (d *DetailCache) Put(it model.Item) {
	if it.Name != "" {
		d.c.SetDefault(nameKey(it.Name), it)
	}
	if it.ID != 0 {
		d.c.SetDefault(idKey(it.ID), it)
	}
}

// Len returns the number of live cache keys.
func (d *DetailCache) Len() int { return d.c.ItemCount() }

func (d *DetailCache) get(key string) (model.Item, bool) {
	v, ok := d.c.Get(key)
	if !ok {
		return model.Item{}, false
	}
	it, ok := v.(model.Item)
	return it, ok
}
