package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/internal"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
	"go.uber.org/atomic"
)

// Presented is the reconciler's record of one live surface.
type Presented[C any] struct {
	Route   route.Route
	Content C
	Handle  overlay.Handle
	Cached  bool // Content is owned by the cache and survives the pop
}

// Options configures a Reconciler.
type Options[C any] struct {
	Factory   Factory[C]
	Presenter overlay.Presenter[C]
	// Table classifies routes and supplies their presentation config.
	// Nil uses route.NewTable().
	Table *route.Table
	// OnExit runs after the stack empties and every surface is gone. The
	// hosting screen pops or closes itself here.
	OnExit func()
	Logger *slog.Logger
}

// Stats counts reconciler activity since creation.
type Stats struct {
	Cycles      int64
	Builds      int64
	CacheHits   int64
	Presents    int64
	Dismisses   int64
	Retractions int64
	Exits       int64
}

// Reconciler keeps the presenter's stack of surfaces in line with a store's
// desired route stack. Cycles run one at a time on the goroutine calling Run,
// in the order the store emitted them.
type Reconciler[C any] struct {
	store     *Store
	factory   Factory[C]
	presenter overlay.Presenter[C]
	table     *route.Table
	onExit    func()
	logger    *slog.Logger

	mu     sync.RWMutex // guards shadow and cache for readers outside Run
	shadow *Stack[Presented[C]]
	cache  *Cache[C]

	cycles      atomic.Int64
	builds      atomic.Int64
	cacheHits   atomic.Int64
	presents    atomic.Int64
	dismisses   atomic.Int64
	retractions atomic.Int64
	exits       atomic.Int64

	running atomic.Bool

	progressMu sync.Mutex
	processed  uint64
	started    bool // at least one snapshot reconciled
	progress   chan struct{}
}

// NewReconciler creates a reconciler for store. Call Run to start it.
func NewReconciler[C any](store *Store, opts Options[C]) *Reconciler[C] {
	table := opts.Table
	if table == nil {
		table = route.NewTable()
	}
	logger := opts.Logger
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	return &Reconciler[C]{
		store:     store,
		factory:   opts.Factory,
		presenter: opts.Presenter,
		table:     table,
		onExit:    opts.OnExit,
		logger:    logger,
		shadow:    NewStack[Presented[C]](),
		cache:     NewCache[C](),
		progress:  make(chan struct{}),
	}
}

// Run reconciles every store emission until ctx is done or the store closes.
// A dismiss animation still in flight when ctx ends is abandoned.
func (r *Reconciler[C]) Run(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("router: reconciler already running")
	}
	defer r.running.Store(false)

	sub := r.store.Subscribe()
	defer sub.Close()

	for {
		snap, err := sub.Next(ctx)
		if err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}
		r.reconcile(ctx, snap)
		r.markProcessed(snap.Seq)
	}
}

func (r *Reconciler[C]) reconcile(ctx context.Context, snap Snapshot) {
	r.cycles.Inc()
	desired := snap.Stack
	r.logger.Debug("reconcile: cycle",
		"seq", snap.Seq,
		"desired", route.Kinds(desired),
		"presented", r.shadow.Len())

	if len(desired) == 0 {
		if r.shadow.IsEmpty() {
			r.drop(snap.OnDismissed)
			return
		}
		r.exit(ctx, snap.OnDismissed)
		return
	}

	if len(desired) == r.shadow.Len()+1 && r.shadowIsPrefixOf(desired) {
		r.push(desired, len(desired)-1)
		r.settle(snap.OnDismissed)
		return
	}

	cb := snap.OnDismissed
	for !r.shadowIsPrefixOf(desired) {
		if !r.pop(ctx, true) {
			return
		}
		if cb != nil {
			r.settle(cb)
			cb = nil
		}
	}
	r.settle(cb)

	for i := r.shadow.Len(); i < len(desired); i++ {
		if !r.push(desired, i) {
			break
		}
	}
}

func (r *Reconciler[C]) shadowIsPrefixOf(desired []route.Route) bool {
	if r.shadow.Len() > len(desired) {
		return false
	}
	for i := 0; i < r.shadow.Len(); i++ {
		if r.shadow.At(i).Route != desired[i] {
			return false
		}
	}
	return true
}

// push presents desired[index] above the current top. It reports false when
// the route could not be built and was retracted from the store.
func (r *Reconciler[C]) push(desired []route.Route, index int) bool {
	rt := desired[index]
	content, cached, ok := r.resolve(rt)
	if !ok {
		r.retractions.Inc()
		r.logger.Warn("reconcile: route not ready, retracting", "route", rt.Kind(), "index", index)
		r.store.retract(index, rt)
		return false
	}

	cfg := r.configFor(rt)
	handle := r.presenter.Present(content, cfg, r.backdropTap(cfg, index, rt))
	r.presents.Inc()

	r.mu.Lock()
	r.shadow.Push(Presented[C]{Route: rt, Content: content, Handle: handle, Cached: cached})
	r.mu.Unlock()

	r.logger.Debug("reconcile: presented", "route", rt.Kind(), "index", index, "cached", cached)
	return true
}

// resolve returns content for rt from the route itself, the cache, or the
// factory. cached reports whether the cache owns the returned content.
func (r *Reconciler[C]) resolve(rt route.Route) (content C, cached bool, ok bool) {
	if raw, _, isCustom := route.CustomParts(rt); isCustom {
		if content, ok = raw.(C); !ok {
			r.logger.Error("reconcile: custom route carries wrong content type", "type", fmt.Sprintf("%T", raw))
			return content, false, false
		}
		return content, false, true
	}

	// A persistent route that is already live deeper in the stack gets a
	// private surface; the cached one is on screen.
	reusable := r.table.Policy(rt) == route.Persistent && !r.isLive(rt)
	if reusable {
		if content, ok = r.cache.Get(rt); ok {
			r.cacheHits.Inc()
			return content, true, true
		}
	}

	r.builds.Inc()
	content, ok = r.factory.Build(rt)
	if !ok {
		return content, false, false
	}
	if reusable {
		r.mu.Lock()
		r.cache.Set(rt, content)
		r.mu.Unlock()
		return content, true, true
	}
	return content, false, true
}

func (r *Reconciler[C]) isLive(rt route.Route) bool {
	for i := 0; i < r.shadow.Len(); i++ {
		if r.shadow.At(i).Route == rt {
			return true
		}
	}
	return false
}

func (r *Reconciler[C]) configFor(rt route.Route) overlay.Config {
	if _, cfg, ok := route.CustomParts(rt); ok {
		return cfg
	}
	return r.table.Config(rt)
}

func (r *Reconciler[C]) backdropTap(cfg overlay.Config, depth int, rt route.Route) func() {
	if !cfg.DismissOnBackdropTap {
		return nil
	}
	return func() {
		r.store.dismissIfTop(depth, rt)
	}
}

// pop dismisses the top surface and waits for it to leave the screen.
// It reports false if ctx ended first.
func (r *Reconciler[C]) pop(ctx context.Context, animated bool) bool {
	rec, _ := r.shadow.Peek()
	done := r.presenter.Dismiss(rec.Handle, animated)
	r.dismisses.Inc()

	select {
	case <-done:
	case <-ctx.Done():
		return false
	}

	r.mu.Lock()
	r.shadow.Pop()
	r.mu.Unlock()

	if !rec.Cached {
		overlay.Destroy(rec.Content)
	}

	r.logger.Debug("reconcile: dismissed", "route", rec.Route.Kind(), "cached", rec.Cached)
	return true
}

// exit tears everything down, topmost first, without running the pending
// dismiss callback, then hands control back to the hosting screen.
func (r *Reconciler[C]) exit(ctx context.Context, cb *DismissCallback) {
	r.drop(cb)

	for animated := true; !r.shadow.IsEmpty(); animated = false {
		if !r.pop(ctx, animated) {
			return
		}
	}
	r.mu.Lock()
	r.cache.Destroy()
	r.mu.Unlock()
	r.exits.Inc()

	r.logger.Debug("reconcile: exit")
	if r.onExit != nil {
		r.onExit()
	}
}

// drop discards cb without running it. An empty stack ends every per-route
// callback.
func (r *Reconciler[C]) drop(cb *DismissCallback) {
	if cb == nil {
		return
	}
	cb.discard()
	r.store.consume(cb)
}

// settle runs cb once its surface is gone and clears it from the store.
func (r *Reconciler[C]) settle(cb *DismissCallback) {
	if cb == nil {
		return
	}
	cb.fire()
	r.store.consume(cb)
}

func (r *Reconciler[C]) markProcessed(seq uint64) {
	r.progressMu.Lock()
	r.processed = seq
	r.started = true
	close(r.progress)
	r.progress = make(chan struct{})
	r.progressMu.Unlock()
}

// waitProcessed blocks until the snapshot with the given seq was reconciled.
func (r *Reconciler[C]) waitProcessed(ctx context.Context, seq uint64, stopped <-chan struct{}) error {
	for {
		r.progressMu.Lock()
		if r.started && r.processed >= seq {
			r.progressMu.Unlock()
			return nil
		}
		ch := r.progress
		r.progressMu.Unlock()

		select {
		case <-ch:
		case <-stopped:
			return ErrClosed
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Presented returns the live surfaces, bottom first.
func (r *Reconciler[C]) Presented() []Presented[C] {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.shadow.Entries()
}

// Routes returns the routes of the live surfaces, bottom first.
func (r *Reconciler[C]) Routes() []route.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]route.Route, r.shadow.Len())
	for i := range out {
		out[i] = r.shadow.At(i).Route
	}
	return out
}

// CachedRoutes returns the routes whose surfaces are cached, oldest first.
func (r *Reconciler[C]) CachedRoutes() []route.Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cache.Keys()
}

// Stats returns activity counters.
func (r *Reconciler[C]) Stats() Stats {
	return Stats{
		Cycles:      r.cycles.Load(),
		Builds:      r.builds.Load(),
		CacheHits:   r.cacheHits.Load(),
		Presents:    r.presents.Load(),
		Dismisses:   r.dismisses.Load(),
		Retractions: r.retractions.Load(),
		Exits:       r.exits.Load(),
	}
}
