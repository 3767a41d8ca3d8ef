package sdlui

import (
	"sync"
	"testing"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/veandco/go-sdl2/sdl"
	"gotest.tools/v3/assert"
)

type box struct{ w, h int32 }

func (b box) Size() (int32, int32)                  { return b.w, b.h }
func (box) Render(*sdl.Renderer, sdl.Rect, uint8) {}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

var screen = overlay.Rect{W: 1000, H: 800}

func newTestPresenter() (*Presenter, *clock) {
	c := &clock{now: time.Unix(1_700_000_000, 0)}
	p := NewPresenter(c.Now)
	p.SetScreen(screen)
	return p, c
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestPresenterHandlesAreUnique(t *testing.T) {
	p, _ := newTestPresenter()
	a := p.Present(box{100, 100}, overlay.DefaultConfig(), nil)
	b := p.Present(box{100, 100}, overlay.DefaultConfig(), nil)
	assert.Assert(t, a != b)
	assert.Equal(t, p.Live(), 2)
}

func TestPresenterAnimatesInAndOut(t *testing.T) {
	p, c := newTestPresenter()
	cfg := overlay.DefaultConfig()
	h := p.Present(box{200, 300}, cfg, nil)

	c.Advance(cfg.Duration / 2)
	visible := p.advance(c.Now())
	assert.Equal(t, len(visible), 1)
	assert.Assert(t, visible[0].progress > 0 && visible[0].progress < 1)

	c.Advance(cfg.Duration)
	visible = p.advance(c.Now())
	assert.Equal(t, visible[0].progress, 1.0)
	assert.Equal(t, visible[0].phase, phaseShown)

	done := p.Dismiss(h, true)
	assert.Assert(t, !isClosed(done))
	assert.Assert(t, p.Dismiss(h, true) == done, "second dismiss waits on the same animation")

	c.Advance(cfg.Duration / 2)
	p.advance(c.Now())
	assert.Assert(t, !isClosed(done))

	c.Advance(cfg.Duration)
	visible = p.advance(c.Now())
	assert.Assert(t, isClosed(done))
	assert.Equal(t, len(visible), 0)
}

func TestPresenterDismissWithoutAnimation(t *testing.T) {
	p, c := newTestPresenter()
	h := p.Present(box{200, 300}, overlay.DefaultConfig(), nil)
	c.Advance(time.Second)
	p.advance(c.Now())

	done := p.Dismiss(h, false)
	assert.Assert(t, isClosed(done))
	assert.Equal(t, p.Live(), 0)

	assert.Assert(t, isClosed(p.Dismiss(h, true)), "unknown handle")
}

func TestPresenterAnimationNone(t *testing.T) {
	p, _ := newTestPresenter()
	cfg := overlay.DefaultConfig()
	cfg.Animation = overlay.AnimationNone

	h := p.Present(box{200, 300}, cfg, nil)
	visible := p.advance(time.Unix(0, 0))
	assert.Equal(t, visible[0].progress, 1.0)
	assert.Assert(t, isClosed(p.Dismiss(h, true)))
}

func TestPresenterDismissWhileEntering(t *testing.T) {
	p, c := newTestPresenter()
	cfg := overlay.DefaultConfig()
	h := p.Present(box{200, 300}, cfg, nil)

	c.Advance(cfg.Duration / 4)
	done := p.Dismiss(h, true)
	assert.Assert(t, !isClosed(done))

	c.Advance(cfg.Duration / 4)
	p.advance(c.Now())
	assert.Assert(t, isClosed(done), "leaving starts from the progress reached")
}

func TestPresenterTapRoutesToTopBackdrop(t *testing.T) {
	p, c := newTestPresenter()
	var lowerTaps, upperTaps int

	p.Present(box{200, 300}, overlay.DefaultConfig(), func() { lowerTaps++ })
	upper := p.Present(box{200, 200}, overlay.DefaultConfig(), func() { upperTaps++ })
	c.Advance(time.Second)
	p.advance(c.Now())

	// bottom sheet of height 200 spans y 600..800
	assert.Assert(t, !p.Tap(500, 700), "tap on the surface itself")
	assert.Assert(t, p.Tap(500, 100))
	assert.Equal(t, upperTaps, 1)
	assert.Equal(t, lowerTaps, 0)

	// a leaving surface no longer receives taps
	p.Dismiss(upper, true)
	assert.Assert(t, !p.Tap(500, 550), "inside the lower surface")
	assert.Assert(t, p.Tap(500, 100))
	assert.Equal(t, lowerTaps, 1)
}

func TestPresenterTapWithoutCallback(t *testing.T) {
	p, _ := newTestPresenter()
	assert.Assert(t, !p.Tap(1, 1), "nothing presented")

	p.Present(box{10, 10}, overlay.Config{Position: overlay.PositionCenter}, nil)
	assert.Assert(t, !p.Tap(1, 1))
}

func TestPresenterCloseCompletesPending(t *testing.T) {
	p, _ := newTestPresenter()
	h := p.Present(box{10, 10}, overlay.DefaultConfig(), nil)
	p.advance(time.Now())
	done := p.Dismiss(h, true)

	p.Close()
	assert.Assert(t, isClosed(done))
	assert.Equal(t, p.Live(), 0)
}

func TestJanitorSweep(t *testing.T) {
	var j Janitor
	var ran []int
	j.Defer(func() { ran = append(ran, 1) })
	j.Defer(func() { ran = append(ran, 2) })

	assert.Equal(t, j.Sweep(), 2)
	assert.DeepEqual(t, ran, []int{1, 2})
	assert.Equal(t, j.Sweep(), 0)
}

func TestTextPanelSizeWithoutFont(t *testing.T) {
	p := NewTextPanel(nil, nil, "Settings", "")
	w, h := p.Size()
	assert.Equal(t, w, panelMinWidth)
	assert.Assert(t, h > panelBarHeight+2*panelPadding)
	p.Destroy()
}
