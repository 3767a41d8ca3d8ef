package router

import (
	"context"
	"errors"
	"sync"
)

// Context is the per-screen pairing of a Store and its Reconciler. Create
// one when a feature screen opens, hand its Store to every producer, and
// Close it when the screen goes away.
type Context[C any] struct {
	Store      *Store
	Reconciler *Reconciler[C]

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped chan struct{}
	err     error
}

// NewContext creates a store and a reconciler wired to it. Call Start to
// begin reconciling.
func NewContext[C any](opts Options[C]) *Context[C] {
	store := NewStore(opts.Logger)
	return &Context[C]{
		Store:      store,
		Reconciler: NewReconciler(store, opts),
		stopped:    make(chan struct{}),
	}
}

// Start runs the reconciler on its own goroutine. It may be called once.
func (c *Context[C]) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		return
	}

	ctx, c.cancel = context.WithCancel(ctx)
	go func() {
		defer close(c.stopped)
		err := c.Reconciler.Run(ctx)
		c.mu.Lock()
		c.err = err
		c.mu.Unlock()
	}()
}

// Flush blocks until every change emitted so far, including changes caused
// by reconciliation itself (retractions, callbacks that present), has been
// reconciled. Dismiss callbacks must not call Flush.
func (c *Context[C]) Flush(ctx context.Context) error {
	for {
		seq := c.Store.Seq()
		if err := c.Reconciler.waitProcessed(ctx, seq, c.stopped); err != nil {
			return err
		}
		if c.Store.Seq() == seq {
			return nil
		}
	}
}

// Close stops the reconciler, then the store. In-flight dismiss animations
// are abandoned. Returns the error Run ended with, if any.
func (c *Context[C]) Close() error {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-c.stopped
	}
	c.Store.Close()

	c.mu.Lock()
	defer c.mu.Unlock()
	if errors.Is(c.err, context.Canceled) {
		return nil
	}
	return c.err
}
