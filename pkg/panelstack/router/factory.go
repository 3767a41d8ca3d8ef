package router

import "github.com/BrandonKowalski/panelstack/pkg/panelstack/route"

// Factory builds the content surface for a route. Returning false means the
// route cannot be shown yet (a resource is still downloading, say); the
// reconciler then takes the route back off the store.
//
// Build must not mutate the store synchronously. Content may wire callbacks
// that mutate it later in response to user interaction.
type Factory[C any] interface {
	Build(r route.Route) (C, bool)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc[C any] func(r route.Route) (C, bool)

// Build implements Factory.
func (f FactoryFunc[C]) Build(r route.Route) (C, bool) {
	return f(r)
}
