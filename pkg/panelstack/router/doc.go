// Package router keeps a stack of on-screen overlay surfaces in sync with a
// declarative stack of routes.
//
// Producers (button handlers, network callbacks, timers) never present or
// dismiss surfaces themselves. They mutate a Store, which emits the desired
// stack, and a Reconciler diffs each emission against what is actually on
// screen and issues the present and dismiss calls needed to converge.
//
// # Basic Usage
//
//	// Define route variants as comparable values
//	type Settings struct{}
//	func (Settings) Kind() route.Kind { return "settings" }
//
//	type Countdown struct{ Seconds int }
//	func (Countdown) Kind() route.Kind { return "countdown" }
//
//	// Classify them: countdowns are rebuilt every time, settings are kept
//	table := route.NewTable().
//	    Set("settings", route.Persistent, overlay.DefaultConfig()).
//	    Set("countdown", route.Ephemeral, overlay.Config{Position: overlay.PositionCenter})
//
//	rc := router.NewContext(router.Options[*Panel]{
//	    Factory:   router.FactoryFunc[*Panel](buildPanel),
//	    Presenter: presenter,
//	    Table:     table,
//	    OnExit:    closeScreen,
//	})
//	rc.Start(ctx)
//	defer rc.Close()
//
//	rc.Store.Present(Settings{})
//	rc.Store.Present(Countdown{Seconds: 3})
//	rc.Store.Dismiss(func() { log.Println("countdown closed") })
//	rc.Store.DismissAll() // tears everything down and calls closeScreen
//
// # Reconciliation
//
// Each emission is handled in one cycle, in order:
//
//   - An empty stack tears down every live surface, clears the cache and
//     calls OnExit. Pending dismiss callbacks are dropped.
//   - A stack exactly one route longer than the live one is a push.
//   - Anything else pops live surfaces until they form a prefix of the desired
//     stack, waiting for each dismiss animation, then pushes what is missing.
//
// A route the factory cannot build yet is taken back off the store, so the
// net effect is as if it had never been presented.
//
// # Surface Reuse
//
// Persistent routes keep their built surface in a cache across visits, so
// scroll position and selection survive. Ephemeral routes and Custom routes
// are destroyed when popped and rebuilt on the next visit.
package router
