package internal

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"
)

// Theme defines the colors overlays are painted with.
type Theme struct {
	BackdropColor color.RGBA // Dim layer drawn behind the top surface
	PanelColor    color.RGBA // Surface background when a route uses the theme default
	AccentColor   color.RGBA // Header bars and highlights inside panels
	TextColor     color.RGBA
	ScreenColor   color.RGBA // Hosting screen clear color
}

var (
	themeMu      sync.RWMutex
	currentTheme = Theme{
		BackdropColor: color.RGBA{A: 140},
		PanelColor:    HexToColor(0x1E1E1E),
		AccentColor:   HexToColor(0x008080),
		TextColor:     HexToColor(0xFFFFFF),
		ScreenColor:   HexToColor(0x000000),
	}
)

// SetTheme sets the active theme.
func SetTheme(theme Theme) {
	themeMu.Lock()
	currentTheme = theme
	themeMu.Unlock()
}

// GetTheme returns the currently active theme.
func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// HexToColor converts 0xRRGGBB into an opaque color.
func HexToColor(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 255,
	}
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA".
func ParseHexColor(raw string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", raw)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", raw, err)
	}
	if len(s) == 6 {
		return HexToColor(uint32(v)), nil
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
