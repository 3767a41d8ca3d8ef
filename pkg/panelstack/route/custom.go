package route

import "github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"

// Custom carries content built at the call site together with its
// presentation config. It bypasses the factory and the surface cache and is
// always rebuilt, so two Custom routes are equal only when they are the same
// pointer.
type Custom[C any] struct {
	Content C
	Config  overlay.Config
}

// NewCustom wraps already built content in a route.
func NewCustom[C any](content C, cfg overlay.Config) *Custom[C] {
	return &Custom[C]{Content: content, Config: cfg}
}

// Kind implements Route.
func (c *Custom[C]) Kind() Kind { return KindCustom }

func (c *Custom[C]) customContent() any { return c.Content }
func (c *Custom[C]) customConfig() overlay.Config { return c.Config }

type custom interface {
	customContent() any
	customConfig() overlay.Config
}

// IsCustom reports whether r is a Custom route of any content type.
func IsCustom(r Route) bool {
	_, ok := r.(custom)
	return ok
}

// CustomParts returns the content and config carried by a Custom route of
// any content type. The caller asserts content to the type it renders, so
// NewCustom(x, cfg) works whether or not C was spelled out.
func CustomParts(r Route) (content any, cfg overlay.Config, ok bool) {
	c, ok := r.(custom)
	if !ok {
		return nil, overlay.Config{}, false
	}
	return c.customContent(), c.customConfig(), true
}
