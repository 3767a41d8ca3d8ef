// Package constants defines shared environment variable names and default
// values used throughout the panelstack framework.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variable names read by the config package and the demo.
const (
	EnvironmentEnvVar     = "ENVIRONMENT"
	EnvPrefix             = "PANELSTACK_"
	RoutesFileEnvVar      = EnvPrefix + "ROUTES_FILE"
	LogLevelEnvVar        = EnvPrefix + "LOG_LEVEL"
	LogPathEnvVar         = EnvPrefix + "LOG_PATH"
	LocaleEnvVar          = EnvPrefix + "LOCALE"
	DismissDurationEnvVar = EnvPrefix + "DISMISS_DURATION"
	BackDeviceEnvVar      = EnvPrefix + "BACK_DEVICE"
	WindowWidthEnvVar     = "WINDOW_WIDTH"
	WindowHeightEnvVar    = "WINDOW_HEIGHT"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Default timing and sizing constants.
const (
	DefaultLongPress    = 800 * time.Millisecond // Back button hold that dismisses everything
	DefaultBackCoolDown = 150 * time.Millisecond // Presses closer than this are ignored
	DefaultLocale       = "en"
	DefaultLogLevel     = "error"
	DefaultWindowWidth  = 1024
	DefaultWindowHeight = 768
	DefaultBackDevice   = "/dev/input/event1"
)
