package sdlui

import (
	"sync"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/internal"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/atomic"
)

type phase int

const (
	phaseEntering phase = iota
	phaseShown
	phaseLeaving
)

type surface struct {
	handle  overlay.Handle
	content Content
	cfg     overlay.Config
	onTap   func()
	done    chan struct{}

	phase    phase
	start    time.Time
	from     float64 // progress when the current phase started
	progress float64

	mask       *sdl.Texture // render thread only
	maskW      int32
	maskH      int32
	maskRadius float64
}

// Presenter implements overlay.Presenter for SDL. Present and Dismiss may be
// called from any goroutine; Render and Tap belong to the render thread.
// Animations advance on every Render, so a dismiss completes only while the
// render loop is running.
type Presenter struct {
	nextHandle atomic.Uint64
	now        func() time.Time
	janitor    *Janitor

	mu       sync.Mutex
	surfaces []*surface // bottom first, leaving ones included
	removed  []*surface // finished, waiting for texture release
	screen   overlay.Rect
}

// NewPresenter creates a presenter. A nil clock uses time.Now.
func NewPresenter(now func() time.Time) *Presenter {
	if now == nil {
		now = time.Now
	}
	return &Presenter{now: now, janitor: &Janitor{}}
}

// Janitor returns the queue content uses to free textures on the render thread.
func (p *Presenter) Janitor() *Janitor { return p.janitor }

// Present implements overlay.Presenter.
func (p *Presenter) Present(content Content, cfg overlay.Config, onBackdropTap func()) overlay.Handle {
	h := overlay.Handle(p.nextHandle.Inc())

	s := &surface{
		handle:  h,
		content: content,
		cfg:     cfg,
		onTap:   onBackdropTap,
		done:    make(chan struct{}),
		phase:   phaseEntering,
		start:   p.now(),
	}
	if cfg.AnimationDuration() == 0 {
		s.phase, s.progress = phaseShown, 1
	}

	p.mu.Lock()
	p.surfaces = append(p.surfaces, s)
	p.mu.Unlock()
	return h
}

// Dismiss implements overlay.Presenter.
func (p *Presenter) Dismiss(h overlay.Handle, animated bool) <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := p.index(h)
	if i < 0 {
		return overlay.Closed()
	}
	s := p.surfaces[i]
	if s.phase == phaseLeaving {
		return s.done
	}

	now := p.now()
	p.step(s, now)
	if !animated || s.cfg.AnimationDuration() == 0 || s.progress == 0 {
		p.remove(i)
		return s.done
	}
	s.phase, s.start, s.from = phaseLeaving, now, s.progress
	return s.done
}

func (p *Presenter) index(h overlay.Handle) int {
	for i, s := range p.surfaces {
		if s.handle == h {
			return i
		}
	}
	return -1
}

func (p *Presenter) remove(i int) {
	s := p.surfaces[i]
	p.surfaces = append(p.surfaces[:i], p.surfaces[i+1:]...)
	p.removed = append(p.removed, s)
	close(s.done)
}

// step advances s to now. Caller holds mu.
func (p *Presenter) step(s *surface, now time.Time) {
	d := s.cfg.AnimationDuration()
	if d == 0 {
		return
	}
	elapsed := float64(now.Sub(s.start)) / float64(d)

	switch s.phase {
	case phaseEntering:
		s.progress = min(1, s.from+elapsed)
		if s.progress >= 1 {
			s.phase = phaseShown
		}
	case phaseLeaving:
		s.progress = max(0, s.from-elapsed)
	}
}

// advance moves every animation to now, completes finished dismissals and
// returns what should be drawn.
func (p *Presenter) advance(now time.Time) []surface {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < len(p.surfaces); {
		s := p.surfaces[i]
		p.step(s, now)
		if s.phase == phaseLeaving && s.progress <= 0 {
			p.remove(i)
			continue
		}
		i++
	}

	out := make([]surface, len(p.surfaces))
	for i, s := range p.surfaces {
		out[i] = *s
	}
	return out
}

// Live returns the number of surfaces on screen, leaving ones included.
func (p *Presenter) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.surfaces)
}

// frame is the resting frame of s on the last rendered screen.
func (p *Presenter) frame(s *surface) overlay.Rect {
	w, h := s.content.Size()
	return overlay.Layout(s.cfg, p.screen, w, h)
}

// SetScreen sets the area surfaces are laid out in. Render updates it too.
func (p *Presenter) SetScreen(screen overlay.Rect) {
	p.mu.Lock()
	p.screen = screen
	p.mu.Unlock()
}

// Tap routes a pointer press. A press outside the top surface runs its
// backdrop callback. Reports whether a callback ran.
func (p *Presenter) Tap(x, y int32) bool {
	p.mu.Lock()
	var onTap func()
	for i := len(p.surfaces) - 1; i >= 0; i-- {
		s := p.surfaces[i]
		if s.phase == phaseLeaving {
			continue
		}
		if !p.frame(s).Contains(x, y) {
			onTap = s.onTap
		}
		break
	}
	p.mu.Unlock()

	if onTap == nil {
		return false
	}
	onTap()
	return true
}

// Render draws the backdrop and every surface, then frees released
// textures. Call it once per frame on the render thread.
func (p *Presenter) Render(r *sdl.Renderer, screen overlay.Rect) {
	p.SetScreen(screen)
	visible := p.advance(p.now())
	p.sweep()

	if len(visible) == 0 {
		return
	}

	theme := internal.GetTheme()
	var dim float64
	for _, s := range visible {
		dim = max(dim, s.progress)
	}
	r.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	r.SetDrawColor(theme.BackdropColor.R, theme.BackdropColor.G, theme.BackdropColor.B,
		uint8(float64(theme.BackdropColor.A)*overlay.Ease(dim)))
	r.FillRect(&sdl.Rect{X: screen.X, Y: screen.Y, W: screen.W, H: screen.H})

	for i := range visible {
		p.draw(r, &visible[i], screen, theme)
	}
}

func (p *Presenter) draw(r *sdl.Renderer, snap *surface, screen overlay.Rect, theme internal.Theme) {
	w, h := snap.content.Size()
	rest := overlay.Layout(snap.cfg, screen, w, h)
	frame, alpha := overlay.Animate(snap.cfg, rest, screen, snap.progress)
	if frame.W <= 0 || frame.H <= 0 || alpha == 0 {
		return
	}
	dst := sdl.Rect{X: frame.X, Y: frame.Y, W: frame.W, H: frame.H}

	bg := snap.cfg.Background.Resolve(theme.PanelColor)
	if mask := p.maskFor(r, snap.handle, frame, snap.cfg.CornerRadius); mask != nil {
		mask.SetColorMod(bg.R, bg.G, bg.B)
		mask.SetAlphaMod(scale(bg.A, alpha))
		r.Copy(mask, nil, &dst)
	} else {
		r.SetDrawColor(bg.R, bg.G, bg.B, scale(bg.A, alpha))
		r.FillRect(&dst)
	}

	r.SetClipRect(&dst)
	snap.content.Render(r, dst, alpha)
	r.SetClipRect(nil)
}

// maskFor returns the rounded corner mask of the live surface h sized for
// frame, rebuilding it when the size changes.
func (p *Presenter) maskFor(r *sdl.Renderer, h overlay.Handle, frame overlay.Rect, radius float64) *sdl.Texture {
	if radius <= 0 {
		return nil
	}

	p.mu.Lock()
	i := p.index(h)
	var s *surface
	if i >= 0 {
		s = p.surfaces[i]
	}
	p.mu.Unlock()
	if s == nil {
		return nil
	}

	if s.mask != nil && s.maskW == frame.W && s.maskH == frame.H && s.maskRadius == radius {
		return s.mask
	}
	if s.mask != nil {
		s.mask.Destroy()
		s.mask = nil
	}

	tex, err := maskTexture(r, frame.W, frame.H, radius)
	if err != nil {
		internal.GetInternalLogger().Warn("sdlui: corner mask", "error", err)
		return nil
	}
	s.mask, s.maskW, s.maskH, s.maskRadius = tex, frame.W, frame.H, radius
	return tex
}

func maskTexture(r *sdl.Renderer, w, h int32, radius float64) (*sdl.Texture, error) {
	img, err := internal.RoundedMask(int(w), int(h), radius)
	if err != nil {
		return nil, err
	}

	surf, err := sdl.CreateRGBSurfaceWithFormat(0, w, h, 32, uint32(sdl.PIXELFORMAT_RGBA32))
	if err != nil {
		return nil, err
	}
	defer surf.Free()

	if err := surf.Lock(); err != nil {
		return nil, err
	}
	pixels := surf.Pixels()
	rowBytes := int(w) * 4
	for y := 0; y < int(h); y++ {
		copy(pixels[y*int(surf.Pitch):y*int(surf.Pitch)+rowBytes], img.Pix[y*img.Stride:y*img.Stride+rowBytes])
	}
	surf.Unlock()

	tex, err := r.CreateTextureFromSurface(surf)
	if err != nil {
		return nil, err
	}
	tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	return tex, nil
}

// sweep releases textures of finished surfaces and anything content queued.
func (p *Presenter) sweep() {
	p.mu.Lock()
	removed := p.removed
	p.removed = nil
	p.mu.Unlock()

	for _, s := range removed {
		if s.mask != nil {
			s.mask.Destroy()
			s.mask = nil
		}
	}
	p.janitor.Sweep()
}

// Close completes every pending dismissal and frees all textures. Call it on
// the render thread after the reconciler has stopped.
func (p *Presenter) Close() {
	p.mu.Lock()
	for len(p.surfaces) > 0 {
		p.remove(len(p.surfaces) - 1)
	}
	p.mu.Unlock()
	p.sweep()
}
