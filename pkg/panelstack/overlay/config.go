// Package overlay describes the animated modal surface that panelstack draws
// routes on: the presentation config attached to every route, the Presenter
// contract a platform implements, and the pure geometry used to lay surfaces
// out and animate them.
package overlay

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"
)

// Position anchors a surface on the screen.
type Position int

const (
	PositionBottom Position = iota // Slides up from the bottom edge (default)
	PositionCenter                 // Centered dialog
	PositionTop                    // Drops down from the top edge
)

func (p Position) String() string {
	switch p {
	case PositionTop:
		return "top"
	case PositionCenter:
		return "center"
	case PositionBottom:
		return "bottom"
	default:
		return fmt.Sprintf("Position(%d)", int(p))
	}
}

// ParsePosition parses "bottom", "center" or "top".
func ParsePosition(raw string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "bottom":
		return PositionBottom, nil
	case "center":
		return PositionCenter, nil
	case "top":
		return PositionTop, nil
	default:
		return PositionBottom, fmt.Errorf("overlay: unknown position %q", raw)
	}
}

// Animation selects how a surface enters and leaves the screen.
type Animation int

const (
	AnimationSlide Animation = iota // Slide from the edge matching Position
	AnimationFade
	AnimationScale
	AnimationNone
)

func (a Animation) String() string {
	switch a {
	case AnimationSlide:
		return "slide"
	case AnimationFade:
		return "fade"
	case AnimationScale:
		return "scale"
	case AnimationNone:
		return "none"
	default:
		return fmt.Sprintf("Animation(%d)", int(a))
	}
}

// ParseAnimation parses "slide", "fade", "scale" or "none".
func ParseAnimation(raw string) (Animation, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "slide":
		return AnimationSlide, nil
	case "fade":
		return AnimationFade, nil
	case "scale":
		return AnimationScale, nil
	case "none":
		return AnimationNone, nil
	default:
		return AnimationSlide, fmt.Errorf("overlay: unknown animation %q", raw)
	}
}

// Sizing controls the size of the surface along the axis it slides on.
// A zero Ratio means the content's intrinsic size is used.
type Sizing struct {
	Ratio float64
}

// Intrinsic sizes the surface to its content.
func Intrinsic() Sizing { return Sizing{} }

// Ratio sizes the surface to a fraction of the screen, clamped to (0, 1].
func Ratio(r float64) Sizing {
	if math.IsNaN(r) || r <= 0 {
		return Sizing{}
	}
	if r > 1 {
		r = 1
	}
	return Sizing{Ratio: r}
}

// IsIntrinsic reports whether the content decides the size.
func (s Sizing) IsIntrinsic() bool { return !(s.Ratio > 0) }

// Background is either the theme's panel color or a caller supplied one.
type Background struct {
	Custom bool
	Color  color.RGBA
}

// ThemeBackground uses the active theme's panel color.
func ThemeBackground() Background { return Background{} }

// CustomBackground overrides the theme with c.
func CustomBackground(c color.RGBA) Background {
	return Background{Custom: true, Color: c}
}

// Resolve returns the color to paint, falling back to theme.
func (b Background) Resolve(theme color.RGBA) color.RGBA {
	if b.Custom {
		return b.Color
	}
	return theme
}

// Insets is spacing kept between a surface and the screen edges.
type Insets struct {
	Top    int32
	Right  int32
	Bottom int32
	Left   int32
}

// UniformInsets creates Insets with the same value on all sides.
func UniformInsets(value int32) Insets {
	return Insets{Top: value, Right: value, Bottom: value, Left: value}
}

// DefaultDuration is used when a Config leaves Duration unset.
const DefaultDuration = 250 * time.Millisecond

// Config is the presentation configuration of one route.
type Config struct {
	Position             Position
	Sizing               Sizing
	Animation            Animation
	Background           Background
	Margins              Insets
	CornerRadius         float64
	DismissOnBackdropTap bool
	Duration             time.Duration
}

// DefaultConfig is a bottom sheet that slides in and closes on backdrop tap.
func DefaultConfig() Config {
	return Config{
		Position:             PositionBottom,
		Animation:            AnimationSlide,
		CornerRadius:         16,
		DismissOnBackdropTap: true,
		Duration:             DefaultDuration,
	}
}

// AnimationDuration returns the effective duration, zero for AnimationNone.
func (c Config) AnimationDuration() time.Duration {
	if c.Animation == AnimationNone {
		return 0
	}
	if c.Duration <= 0 {
		return DefaultDuration
	}
	return c.Duration
}
