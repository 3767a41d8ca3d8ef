package sdlui

import (
	"sync"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/internal"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// Content is something a Presenter can draw inside a surface.
type Content interface {
	// Size is the intrinsic size in pixels.
	Size() (w, h int32)
	// Render draws into dst with the given opacity. Called on the render
	// thread only.
	Render(r *sdl.Renderer, dst sdl.Rect, alpha uint8)
}

// Janitor defers SDL resource releases to the render thread. Content is
// destroyed on the reconciler goroutine, but textures may only be freed where
// they were created.
type Janitor struct {
	mu  sync.Mutex
	fns []func()
}

// Defer queues fn for the next Sweep.
func (j *Janitor) Defer(fn func()) {
	j.mu.Lock()
	j.fns = append(j.fns, fn)
	j.mu.Unlock()
}

// Sweep runs every queued release. Call it on the render thread.
func (j *Janitor) Sweep() int {
	j.mu.Lock()
	fns := j.fns
	j.fns = nil
	j.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return len(fns)
}

const (
	panelPadding   int32 = 24
	panelBarHeight int32 = 6
	panelMinWidth  int32 = 360
)

// TextPanel is a title and body drawn with a TTF font, under an accent bar.
// Without a font it draws placeholder bars in the text color.
type TextPanel struct {
	Title string
	Body  string

	font    *ttf.Font
	janitor *Janitor
	w, h    int32
	titleH  int32

	title *sdl.Texture // created on first render
	body  *sdl.Texture
}

// NewTextPanel measures the text with font, which may be nil.
func NewTextPanel(font *ttf.Font, janitor *Janitor, title, body string) *TextPanel {
	p := &TextPanel{Title: title, Body: body, font: font, janitor: janitor}

	tw, th := int32(len(title))*12, int32(28)
	bw, bh := int32(len(body))*9, int32(22)
	if font != nil {
		tw, th = measure(font, title)
		bw, bh = measure(font, body)
	}

	p.titleH = th
	p.w = max(panelMinWidth, tw+2*panelPadding, bw+2*panelPadding)
	p.h = panelBarHeight + panelPadding + th + panelPadding/2 + bh + panelPadding
	return p
}

func measure(font *ttf.Font, text string) (int32, int32) {
	if text == "" {
		return 0, int32(font.Height())
	}
	w, h, err := font.SizeUTF8(text)
	if err != nil {
		internal.GetInternalLogger().Warn("sdlui: measure text", "error", err)
		return 0, int32(font.Height())
	}
	return int32(w), int32(h)
}

func (p *TextPanel) Size() (int32, int32) { return p.w, p.h }

func (p *TextPanel) Render(r *sdl.Renderer, dst sdl.Rect, alpha uint8) {
	theme := internal.GetTheme()

	r.SetDrawBlendMode(sdl.BLENDMODE_BLEND)
	r.SetDrawColor(theme.AccentColor.R, theme.AccentColor.G, theme.AccentColor.B, scale(theme.AccentColor.A, alpha))
	r.FillRect(&sdl.Rect{X: dst.X, Y: dst.Y, W: dst.W, H: panelBarHeight})

	x := dst.X + panelPadding
	y := dst.Y + panelBarHeight + panelPadding
	text := sdl.Color{R: theme.TextColor.R, G: theme.TextColor.G, B: theme.TextColor.B, A: 255}

	if p.font == nil {
		r.SetDrawColor(text.R, text.G, text.B, scale(160, alpha))
		r.FillRect(&sdl.Rect{X: x, Y: y, W: min(dst.W-2*panelPadding, int32(len(p.Title))*12), H: p.titleH / 2})
		r.SetDrawColor(text.R, text.G, text.B, scale(90, alpha))
		r.FillRect(&sdl.Rect{X: x, Y: y + p.titleH + panelPadding/2, W: min(dst.W-2*panelPadding, int32(len(p.Body))*9), H: 10})
		return
	}

	if p.title == nil && p.Title != "" {
		p.title = p.texture(r, p.Title, text)
	}
	if p.body == nil && p.Body != "" {
		p.body = p.texture(r, p.Body, text)
	}

	y = drawText(r, p.title, x, y, alpha) + panelPadding/2
	drawText(r, p.body, x, y, alpha)
}

func (p *TextPanel) texture(r *sdl.Renderer, text string, c sdl.Color) *sdl.Texture {
	surface, err := p.font.RenderUTF8Blended(text, c)
	if err != nil {
		internal.GetInternalLogger().Warn("sdlui: render text", "error", err)
		return nil
	}
	defer surface.Free()

	tex, err := r.CreateTextureFromSurface(surface)
	if err != nil {
		internal.GetInternalLogger().Warn("sdlui: text texture", "error", err)
		return nil
	}
	return tex
}

func drawText(r *sdl.Renderer, tex *sdl.Texture, x, y int32, alpha uint8) int32 {
	if tex == nil {
		return y
	}
	_, _, w, h, err := tex.Query()
	if err != nil {
		return y
	}
	tex.SetAlphaMod(alpha)
	r.Copy(tex, nil, &sdl.Rect{X: x, Y: y, W: w, H: h})
	return y + h
}

// Destroy releases the text textures on the next janitor sweep.
func (p *TextPanel) Destroy() {
	if p.janitor == nil {
		return
	}
	p.janitor.Defer(func() {
		for _, tex := range []*sdl.Texture{p.title, p.body} {
			if tex != nil {
				tex.Destroy()
			}
		}
		p.title, p.body = nil, nil
	})
}

func scale(a, by uint8) uint8 {
	return uint8(uint16(a) * uint16(by) / 255)
}
