package router

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
	"go.uber.org/atomic"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/poll"
)

const (
	kindPanel  route.Kind = "panel"
	kindPicker route.Kind = "picker"
)

type testRoute struct {
	kind route.Kind
	id   string
}

func (r testRoute) Kind() route.Kind { return r.kind }

func panel(id string) testRoute  { return testRoute{kind: kindPanel, id: id} }
func picker(id string) testRoute { return testRoute{kind: kindPicker, id: id} }

type surface struct {
	name      string
	build     int
	destroyed atomic.Int64
}

func (s *surface) Destroy() { s.destroyed.Inc() }

func testTable() *route.Table {
	return route.NewTable().
		Set(kindPanel, route.Persistent, overlay.DefaultConfig()).
		Set(kindPicker, route.Ephemeral, overlay.Config{Position: overlay.PositionCenter, Animation: overlay.AnimationFade})
}

// fakeFactory builds surfaces and counts calls per route.
type fakeFactory struct {
	mu       sync.Mutex
	builds   map[route.Route]int
	total    int
	notReady map[route.Route]bool
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		builds:   make(map[route.Route]int),
		notReady: make(map[route.Route]bool),
	}
}

func (f *fakeFactory) Build(r route.Route) (*surface, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total++
	if f.notReady[r] {
		return nil, false
	}
	f.builds[r]++
	name := fmt.Sprint(r)
	if tr, ok := r.(testRoute); ok {
		name = tr.id
	}
	return &surface{name: name, build: f.builds[r]}, true
}

func (f *fakeFactory) setReady(r route.Route, ready bool) {
	f.mu.Lock()
	f.notReady[r] = !ready
	f.mu.Unlock()
}

func (f *fakeFactory) count(r route.Route) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.builds[r]
}

func (f *fakeFactory) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.total
}

type presenterCall struct {
	op       string
	name     string
	handle   overlay.Handle
	animated bool
}

// fakePresenter records calls. In manual mode dismissals complete only when
// the test calls completeDismiss.
type fakePresenter struct {
	mu      sync.Mutex
	manual  bool
	next    overlay.Handle
	calls   []presenterCall
	log     *[]string
	live    map[overlay.Handle]*surface
	taps    map[overlay.Handle]func()
	pending []chan struct{}
}

func newFakePresenter(log *[]string) *fakePresenter {
	return &fakePresenter{
		log:  log,
		live: make(map[overlay.Handle]*surface),
		taps: make(map[overlay.Handle]func()),
	}
}

func (p *fakePresenter) Present(content *surface, _ overlay.Config, onBackdropTap func()) overlay.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next++
	h := p.next
	p.live[h] = content
	p.taps[h] = onBackdropTap
	p.calls = append(p.calls, presenterCall{op: "present", name: content.name, handle: h})
	if p.log != nil {
		*p.log = append(*p.log, "present "+content.name)
	}
	return h
}

func (p *fakePresenter) Dismiss(h overlay.Handle, animated bool) <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	content, ok := p.live[h]
	if !ok {
		return overlay.Closed()
	}
	delete(p.live, h)
	delete(p.taps, h)
	p.calls = append(p.calls, presenterCall{op: "dismiss", name: content.name, handle: h, animated: animated})
	if p.log != nil {
		*p.log = append(*p.log, "dismiss "+content.name)
	}
	if !p.manual {
		return overlay.Closed()
	}
	done := make(chan struct{})
	p.pending = append(p.pending, done)
	return done
}

func (p *fakePresenter) pendingDismissals() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

func (p *fakePresenter) completeDismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, done := range p.pending {
		close(done)
	}
	p.pending = nil
}

func (p *fakePresenter) tap(h overlay.Handle) {
	p.mu.Lock()
	fn := p.taps[h]
	p.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (p *fakePresenter) callsSince(n int) []presenterCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]presenterCall, len(p.calls)-n)
	copy(out, p.calls[n:])
	return out
}

func (p *fakePresenter) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func (p *fakePresenter) appendLog(entry string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	*p.log = append(*p.log, entry)
}

func (p *fakePresenter) logged() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(*p.log))
	copy(out, *p.log)
	return out
}

type harness struct {
	t         testing.TB
	rc        *Context[*surface]
	presenter *fakePresenter
	factory   *fakeFactory
	exits     atomic.Int64
}

func newHarness(t testing.TB, manual bool) *harness {
	var log []string
	h := &harness{
		t:         t,
		presenter: newFakePresenter(&log),
		factory:   newFakeFactory(),
	}
	h.presenter.manual = manual
	h.rc = NewContext(Options[*surface]{
		Factory:   h.factory,
		Presenter: h.presenter,
		Table:     testTable(),
		OnExit: func() {
			h.exits.Inc()
			h.presenter.appendLog("exit")
		},
	})
	h.rc.Start(context.Background())
	t.Cleanup(func() { _ = h.rc.Close() })
	return h
}

func (h *harness) flush() {
	h.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NilError(h.t, h.rc.Flush(ctx))
}

func (h *harness) shadow() []route.Route {
	return h.rc.Reconciler.Routes()
}

// waitPending waits until n dismissals are parked in a manual presenter.
func (h *harness) waitPending(n int) {
	h.t.Helper()
	poll.WaitOn(h.t, func(poll.LogT) poll.Result {
		if got := h.presenter.pendingDismissals(); got != n {
			return poll.Continue("%d pending dismissals, want %d", got, n)
		}
		return poll.Success()
	}, poll.WithTimeout(5*time.Second), poll.WithDelay(time.Millisecond))
}

func routes(rs ...route.Route) []route.Route { return rs }
