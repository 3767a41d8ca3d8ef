package router

import (
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
)

// Cache keeps built surfaces of persistent routes so a revisited route shows
// the same content, scroll position and selection included. Entries are
// destroyed when removed or when the whole cache is torn down.
type Cache[C any] struct {
	surfaces map[route.Route]C
	order    []route.Route // insertion order, used for deterministic teardown
}

func NewCache[C any]() *Cache[C] {
	return &Cache[C]{
		surfaces: make(map[route.Route]C),
		order:    make([]route.Route, 0),
	}
}

func (c *Cache[C]) Get(key route.Route) (C, bool) {
	surface, exists := c.surfaces[key]
	return surface, exists
}

// Set stores surface under key. A surface already stored under key is
// replaced and destroyed.
func (c *Cache[C]) Set(key route.Route, surface C) {
	if old, exists := c.surfaces[key]; exists {
		overlay.Destroy(old)
		c.surfaces[key] = surface
		return
	}

	c.surfaces[key] = surface
	c.order = append(c.order, key)
}

func (c *Cache[C]) Len() int {
	return len(c.surfaces)
}

// Keys returns the cached routes in insertion order.
func (c *Cache[C]) Keys() []route.Route {
	out := make([]route.Route, len(c.order))
	copy(out, c.order)
	return out
}

// Destroy evicts every entry, destroying surfaces oldest first.
func (c *Cache[C]) Destroy() {
	for _, key := range c.order {
		overlay.Destroy(c.surfaces[key])
	}
	c.surfaces = make(map[route.Route]C)
	c.order = c.order[:0]
}
