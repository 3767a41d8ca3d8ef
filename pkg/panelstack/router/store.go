package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/internal"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
	events "github.com/docker/go-events"
)

// ErrClosed is returned when waiting on a store or subscription that has
// been shut down.
var ErrClosed = errors.New("router: store closed")

// Snapshot is one emission of the desired route stack.
type Snapshot struct {
	// Seq increases by one for every emitted change.
	Seq uint64
	// Stack is the desired stack, oldest first. It must not be modified.
	Stack []route.Route
	// OnDismissed is the callback registered by the Dismiss call that
	// produced this snapshot, nil otherwise.
	OnDismissed *DismissCallback
}

// Top returns the focal route, or nil for an empty stack.
func (s Snapshot) Top() route.Route {
	if len(s.Stack) == 0 {
		return nil
	}
	return s.Stack[len(s.Stack)-1]
}

// Store is the canonical source of the desired route stack for one feature
// screen. Every mutation runs on the store's own goroutine, so producers on
// any goroutine can call it without locking and no update is lost. Mutating
// calls return once the change has been applied and emitted.
type Store struct {
	ops       chan func()
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	logger    *slog.Logger

	// Owned by the loop goroutine.
	stack   *Stack[route.Route]
	pending *DismissCallback
	last    []route.Route
	seq     uint64
	subs    map[uint64]*Subscription
	nextSub uint64
}

// NewStore creates a store with an empty stack and starts its goroutine.
// A nil logger uses the framework's internal logger.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = internal.GetInternalLogger()
	}
	s := &Store{
		ops:     make(chan func()),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		logger:  logger,
		stack:   NewStack[route.Route](),
		subs:    make(map[uint64]*Subscription),
	}
	go s.loop()
	return s
}

func (s *Store) loop() {
	defer close(s.stopped)
	for {
		select {
		case op := <-s.ops:
			op()
		case <-s.quit:
			for id, sub := range s.subs {
				delete(s.subs, id)
				sub.shutdown()
			}
			return
		}
	}
}

// do runs fn on the store goroutine and waits for it.
// Returns false if the store is closed.
func (s *Store) do(fn func()) bool {
	done := make(chan struct{})
	select {
	case s.ops <- func() { fn(); close(done) }:
	case <-s.quit:
		return false
	}
	<-done
	return true
}

// emit publishes the current stack unless it equals the last emission.
func (s *Store) emit(cb *DismissCallback) {
	stack := s.stack.Entries()
	if route.Equal(stack, s.last) {
		return
	}
	s.last = stack
	s.seq++

	snap := Snapshot{Seq: s.seq, Stack: stack, OnDismissed: cb}
	for _, sub := range s.subs {
		if err := sub.queue.Write(snap); err != nil {
			s.logger.Debug("store: dropped snapshot for closed subscriber", "seq", snap.Seq, "error", err)
		}
	}
	s.logger.Debug("store: emitted", "seq", snap.Seq, "stack", route.Kinds(stack))
}

func (s *Store) accept(op string, r route.Route) bool {
	if route.Comparable(r) {
		return true
	}
	s.logger.Error(fmt.Sprintf("store: %s rejected route that cannot be compared", op), "route", fmt.Sprintf("%T", r))
	return false
}

// Present appends r on top of the stack. Equal routes may appear more than
// once; each occurrence is a separate entry.
func (s *Store) Present(r route.Route) {
	if !s.accept("present", r) {
		return
	}
	s.do(func() {
		s.stack.Push(r)
		s.emit(nil)
	})
}

// Dismiss removes the top route. onDismissed, if not nil, runs once after the
// removed surface has finished animating out. A callback still waiting from
// an earlier Dismiss is discarded. On an empty stack Dismiss does nothing.
func (s *Store) Dismiss(onDismissed func()) {
	s.do(func() {
		if s.stack.IsEmpty() {
			return
		}
		s.pending.discard()
		s.pending = newDismissCallback(onDismissed)
		s.stack.Pop()
		s.emit(s.pending)
	})
}

// dismissIfTop dismisses only while r is still the top entry at depth.
// Backdrop taps go through here so a tap on a surface that is already being
// replaced cannot pop the route that replaced it.
func (s *Store) dismissIfTop(depth int, r route.Route) {
	s.do(func() {
		if s.stack.Len() != depth+1 || s.stack.At(depth) != r {
			return
		}
		s.pending.discard()
		s.pending = nil
		s.stack.Pop()
		s.emit(nil)
	})
}

// DismissAll empties the stack in one step, handing control back to the
// hosting screen. Any pending dismiss callback is discarded.
func (s *Store) DismissAll() {
	s.do(func() {
		s.pending.discard()
		s.pending = nil
		s.stack.Clear()
		s.emit(nil)
	})
}

// ReplaceTop swaps the top route for r in a single emission. On an empty
// stack it behaves like Present.
func (s *Store) ReplaceTop(r route.Route) {
	if !s.accept("replace", r) {
		return
	}
	s.do(func() {
		s.stack.Pop()
		s.stack.Push(r)
		s.emit(nil)
	})
}

// ReplaceTopIf swaps the top route for r only when match accepts the current
// top. It reports whether the swap happened. match runs on the store
// goroutine and must not call the store.
func (s *Store) ReplaceTopIf(match func(route.Route) bool, r route.Route) bool {
	if !s.accept("replace", r) {
		return false
	}
	replaced := false
	s.do(func() {
		top, ok := s.stack.Peek()
		if !ok || !match(top) {
			return
		}
		s.stack.Pop()
		s.stack.Push(r)
		replaced = true
		s.emit(nil)
	})
	return replaced
}

// DismissIf is Dismiss guarded by match on the current top. It reports
// whether a route was dismissed; when it was not, onDismissed is dropped.
func (s *Store) DismissIf(match func(route.Route) bool, onDismissed func()) bool {
	dismissed := false
	s.do(func() {
		top, ok := s.stack.Peek()
		if !ok || !match(top) {
			return
		}
		s.pending.discard()
		s.pending = newDismissCallback(onDismissed)
		s.stack.Pop()
		dismissed = true
		s.emit(s.pending)
	})
	return dismissed
}

// OfKind matches routes of kind. Use it with ReplaceTopIf and DismissIf.
func OfKind(kind route.Kind) func(route.Route) bool {
	return func(r route.Route) bool { return r.Kind() == kind }
}

// retract removes the entry at index if it still holds r. Used by the
// reconciler to take back a route it could not build.
func (s *Store) retract(index int, r route.Route) bool {
	removed := false
	s.do(func() {
		if index >= s.stack.Len() || s.stack.At(index) != r {
			return
		}
		s.stack.RemoveAt(index)
		removed = true
		s.emit(nil)
	})
	return removed
}

// consume clears cb if it is still the pending callback.
func (s *Store) consume(cb *DismissCallback) {
	if cb == nil {
		return
	}
	s.do(func() {
		if s.pending == cb {
			s.pending = nil
		}
	})
}

// Stack returns a copy of the desired stack.
func (s *Store) Stack() []route.Route {
	var out []route.Route
	s.do(func() { out = s.stack.Entries() })
	return out
}

// Seq returns the sequence number of the last emission.
func (s *Store) Seq() uint64 {
	var seq uint64
	s.do(func() { seq = s.seq })
	return seq
}

// HasPendingCallback reports whether a dismiss callback is waiting to run.
func (s *Store) HasPendingCallback() bool {
	var pending bool
	s.do(func() { pending = s.pending != nil && !s.pending.Consumed() })
	return pending
}

// Subscribe starts a change stream. The first value is the current stack;
// after that every change is delivered in order. Delivery is buffered without
// bound so a slow subscriber never blocks producers.
func (s *Store) Subscribe() *Subscription {
	ch := events.NewChannel(0)
	sub := &Subscription{store: s, ch: ch, queue: events.NewQueue(ch)}

	ok := s.do(func() {
		s.nextSub++
		sub.id = s.nextSub
		s.subs[sub.id] = sub
		_ = sub.queue.Write(Snapshot{Seq: s.seq, Stack: s.stack.Entries()})
	})
	if !ok {
		sub.shutdown()
	}
	return sub
}

// Close stops the store goroutine and ends every subscription. Mutations
// after Close are ignored.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
	<-s.stopped
}

// Subscription is one consumer's view of a store's change stream.
type Subscription struct {
	store     *Store
	id        uint64
	ch        *events.Channel
	queue     *events.Queue
	closeOnce sync.Once
}

// Next blocks until the next snapshot, the subscription ends, or ctx is done.
func (sub *Subscription) Next(ctx context.Context) (Snapshot, error) {
	select {
	case <-sub.ch.Done():
		return Snapshot{}, ErrClosed
	default:
	}

	select {
	case ev := <-sub.ch.C:
		snap, ok := ev.(Snapshot)
		if !ok {
			return Snapshot{}, fmt.Errorf("router: unexpected event %T", ev)
		}
		return snap, nil
	case <-sub.ch.Done():
		return Snapshot{}, ErrClosed
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// Close unsubscribes. Snapshots not yet read are dropped.
func (sub *Subscription) Close() {
	sub.store.do(func() {
		delete(sub.store.subs, sub.id)
	})
	sub.shutdown()
}

func (sub *Subscription) shutdown() {
	sub.closeOnce.Do(func() {
		// Close the channel first so the queue drains instead of blocking.
		_ = sub.ch.Close()
		_ = sub.queue.Close()
	})
}
