// Package panelstack keeps stacks of animated overlay panels in sync with a
// declarative route stack on embedded Linux devices.
//
// Features describe what should be on screen by pushing route values into a
// router.Store; a router.Reconciler presents and dismisses surfaces to match.
// This package wires the SDL platform, theming and logging together.
package panelstack

import (
	"log/slog"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/constants"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/internal"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/platform/cannoli"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/platform/sdlui"
)

// Options configures panelstack initialization.
type Options struct {
	WindowTitle          string              // Window title displayed in windowed mode
	WindowOptions        sdlui.WindowOptions // SDL window flags and size
	PrimaryThemeColorHex uint32              // Custom accent color
	IsCannoli            bool                // Use the Cannoli CFW theme
	LogPath              string              // Full path for log file including filename (creates parent directories)
	LogLevel             string              // Application log level, "error" when empty
	Debug                bool                // Log every store emission and reconcile cycle
}

// Init sets up logging and theming, then opens the SDL window.
// Must be called on the main thread before any rendering.
func Init(options Options) (*sdlui.Window, error) {
	if options.LogPath != "" {
		internal.SetLogPath(options.LogPath)
	}

	level := options.LogLevel
	if level == "" {
		level = constants.DefaultLogLevel
	}
	internal.SetRawLogLevel(level)

	if options.Debug || constants.IsDevMode() {
		internal.SetInternalLogLevel(slog.LevelDebug)
	} else {
		internal.SetInternalLogLevel(slog.LevelError)
	}

	if options.IsCannoli {
		internal.SetTheme(cannoli.InitCannoliTheme(options.PrimaryThemeColorHex))
	} else if options.PrimaryThemeColorHex != 0 {
		theme := internal.GetTheme()
		theme.AccentColor = internal.HexToColor(options.PrimaryThemeColorHex)
		internal.SetTheme(theme)
	}

	winOpts := options.WindowOptions
	if winOpts == (sdlui.WindowOptions{}) && !constants.IsDevMode() {
		winOpts = sdlui.WindowOptions{Borderless: true}
	}

	window, err := sdlui.OpenWindow(options.WindowTitle, winOpts)
	if err != nil {
		return nil, NewInfrastructureError("open_window", err)
	}
	return window, nil
}

// Close releases the window and flushes the log file.
func Close(window *sdlui.Window) {
	if window != nil {
		window.Close()
	}
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before Init() to take effect during initialization.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// GetInternalLogger returns the logger stores and reconcilers use by default.
func GetInternalLogger() *slog.Logger {
	return internal.GetInternalLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetTheme replaces the colors overlays are drawn with.
func SetTheme(theme internal.Theme) {
	internal.SetTheme(theme)
}

// GetTheme returns the active theme.
func GetTheme() internal.Theme {
	return internal.GetTheme()
}
