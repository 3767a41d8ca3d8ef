// Package cannoli provides theming support for the Cannoli custom firmware.
// Cannoli is a community-developed CFW for retro handheld gaming devices.
package cannoli

import (
	"image/color"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/internal"
)

// InitCannoliTheme creates a theme with Cannoli's default colors. accentHex
// overrides the accent when not zero.
func InitCannoliTheme(accentHex uint32) internal.Theme {
	accent := internal.HexToColor(0x008080)
	if accentHex != 0 {
		accent = internal.HexToColor(accentHex)
	}
	return internal.Theme{
		BackdropColor: color.RGBA{A: 160},
		PanelColor:    internal.HexToColor(0xFFFFFF),
		AccentColor:   accent,
		TextColor:     internal.HexToColor(0x000000),
		ScreenColor:   internal.HexToColor(0x000000),
	}
}
