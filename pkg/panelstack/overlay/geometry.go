package overlay

import "math"

// Rect is an integer rectangle in screen pixels.
type Rect struct {
	X, Y, W, H int32
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Center returns the midpoint of r.
func (r Rect) Center() (int32, int32) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Ease is a cubic ease-out curve. Input is clamped to [0, 1].
func Ease(t float64) float64 {
	t = clamp01(t)
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Layout computes the resting frame of a surface on screen.
//
// Top and bottom surfaces span the width inside the margins; centered
// surfaces keep their intrinsic width. Sizing applies to the height.
// The frame never exceeds the area inside the margins.
func Layout(cfg Config, screen Rect, contentW, contentH int32) Rect {
	avail := Rect{
		X: screen.X + cfg.Margins.Left,
		Y: screen.Y + cfg.Margins.Top,
		W: screen.W - cfg.Margins.Left - cfg.Margins.Right,
		H: screen.H - cfg.Margins.Top - cfg.Margins.Bottom,
	}
	if avail.W < 0 {
		avail.W = 0
	}
	if avail.H < 0 {
		avail.H = 0
	}

	h := contentH
	if !cfg.Sizing.IsIntrinsic() {
		h = int32(math.Round(float64(avail.H) * cfg.Sizing.Ratio))
	}
	h = clampInt(h, 0, avail.H)

	w := avail.W
	if cfg.Position == PositionCenter {
		w = clampInt(contentW, 0, avail.W)
	}

	frame := Rect{X: avail.X + (avail.W-w)/2, W: w, H: h}
	switch cfg.Position {
	case PositionTop:
		frame.Y = avail.Y
	case PositionCenter:
		frame.Y = avail.Y + (avail.H-h)/2
	default:
		frame.Y = avail.Y + avail.H - h
	}
	return frame
}

// Animate returns the frame and opacity of a surface whose resting frame is
// rest, at progress 0 (hidden) through 1 (fully presented). Dismissal runs
// the same curve backwards.
func Animate(cfg Config, rest Rect, screen Rect, progress float64) (Rect, uint8) {
	progress = clamp01(progress)
	if progress == 0 {
		return rest, 0
	}
	p := Ease(progress)

	switch cfg.Animation {
	case AnimationSlide:
		var from int32
		if cfg.Position == PositionTop {
			from = screen.Y - rest.H
		} else {
			from = screen.Y + screen.H
		}
		frame := rest
		frame.Y = from + int32(math.Round(float64(rest.Y-from)*p))
		return frame, 255
	case AnimationFade:
		return rest, alpha(p)
	case AnimationScale:
		cx, cy := rest.Center()
		w := int32(math.Round(float64(rest.W) * p))
		h := int32(math.Round(float64(rest.H) * p))
		return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}, alpha(p)
	default:
		return rest, 255
	}
}

func alpha(p float64) uint8 {
	return uint8(math.Round(255 * clamp01(p)))
}

func clamp01(t float64) float64 {
	switch {
	case t < 0 || math.IsNaN(t):
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}

func clampInt(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
