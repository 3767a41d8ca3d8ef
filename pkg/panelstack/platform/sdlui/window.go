// Package sdlui draws panelstack overlays with SDL2: a window, a thread-safe
// Presenter the reconciler drives from its own goroutine, and a simple text
// panel content type.
package sdlui

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/constants"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/internal"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// WindowOptions configures the SDL window. Zero Width or Height uses the
// current display mode, or 1024x768 in development mode.
type WindowOptions struct {
	Width, Height int32
	Borderless    bool
	Resizable     bool
	Fullscreen    bool
	AlwaysOnTop   bool
	Hidden        bool
}

func (wo WindowOptions) sdlFlags() uint32 {
	var flags uint32

	if !wo.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}
	if wo.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if wo.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN
	}
	if wo.AlwaysOnTop {
		flags |= sdl.WINDOW_ALWAYS_ON_TOP
	}

	return flags
}

// Window wraps the SDL window and renderer overlays are drawn with.
type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer
	Title    string

	hasVSync        bool
	lastPresentTime uint64
}

// OpenWindow initializes SDL video and TTF and creates the window.
func OpenWindow(title string, opts WindowOptions) (*Window, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("ttf init: %w", err)
	}

	x, y := int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED)
	width, height := opts.Width, opts.Height

	if constants.IsDevMode() {
		opts.Borderless = false
		x, y = 50, 50
		width = envSize(constants.WindowWidthEnvVar, width, constants.DefaultWindowWidth)
		height = envSize(constants.WindowHeightEnvVar, height, constants.DefaultWindowHeight)
	} else if width == 0 || height == 0 {
		mode, err := sdl.GetCurrentDisplayMode(0)
		if err != nil {
			internal.GetInternalLogger().Error("Failed to get display mode", "error", err)
			mode.W, mode.H = constants.DefaultWindowWidth, constants.DefaultWindowHeight
		}
		width, height = mode.W, mode.H
	}

	internal.GetInternalLogger().Debug("Initializing SDL Window", "width", width, "height", height)

	window, err := sdl.CreateWindow(title, x, y, width, height, opts.sdlFlags())
	if err != nil {
		ttf.Quit()
		sdl.Quit()
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		ttf.Quit()
		sdl.Quit()
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	renderer.SetLogicalSize(width, height)

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	return &Window{
		Window:   window,
		Renderer: renderer,
		Title:    title,
		hasVSync: vsync,
	}, nil
}

func envSize(name string, given, fallback int32) int32 {
	v := os.Getenv(name)
	if v == "" {
		if given > 0 {
			return given
		}
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		internal.GetInternalLogger().Warn("Invalid window size; using default", "env", name, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

// Bounds returns the drawable area in logical pixels.
func (w *Window) Bounds() overlay.Rect {
	width, height := w.Renderer.GetLogicalSize()
	if width == 0 || height == 0 {
		width, height = w.Window.GetSize()
	}
	return overlay.Rect{W: width, H: height}
}

// Clear fills the screen with c.
func (w *Window) Clear(c sdl.Color) {
	w.Renderer.SetDrawColor(c.R, c.G, c.B, c.A)
	w.Renderer.Clear()
}

// Present swaps the render buffer and enforces ~60fps frame timing
// when VSync is not available. Use this instead of renderer.Present().
func (w *Window) Present() {
	w.Renderer.Present()
	if !w.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
}

// Close destroys the renderer and window and shuts SDL down.
func (w *Window) Close() {
	w.Renderer.Destroy()
	w.Window.Destroy()
	ttf.Quit()
	sdl.Quit()
}
