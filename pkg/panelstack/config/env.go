// Package config loads panelstack settings from the environment and from an
// optional TOML routes file that overrides a feature's route table.
package config

import (
	"fmt"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/constants"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
	"github.com/caarlos0/env/v11"
)

// Env is the process level configuration. Every variable is prefixed with
// PANELSTACK_.
type Env struct {
	RoutesFile      string        `env:"ROUTES_FILE"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"error"`
	LogPath         string        `env:"LOG_PATH"`
	Locale          string        `env:"LOCALE"           envDefault:"en"`
	DismissDuration time.Duration `env:"DISMISS_DURATION"`
	BackDevice      string        `env:"BACK_DEVICE"      envDefault:"/dev/input/event1"`
}

// ParseEnv loads Env from the process environment.
func ParseEnv() (Env, error) {
	return parseEnv(env.Options{Prefix: constants.EnvPrefix})
}

func parseEnv(opts env.Options) (Env, error) {
	var cfg Env
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DismissDuration < 0 {
		return Env{}, fmt.Errorf("parse env: %s must not be negative", constants.DismissDurationEnvVar)
	}
	return cfg, nil
}

// Load reads the environment, then applies the routes file (if any) and the
// dismiss duration override to a copy of base.
func Load(base *route.Table) (Env, *route.Table, error) {
	cfg, err := ParseEnv()
	if err != nil {
		return Env{}, nil, err
	}

	table := base.Clone()
	if cfg.RoutesFile != "" {
		if table, err = LoadRoutesFile(cfg.RoutesFile, table); err != nil {
			return Env{}, nil, err
		}
	}
	if cfg.DismissDuration > 0 {
		WithDuration(table, cfg.DismissDuration)
	}
	return cfg, table, nil
}

// WithDuration sets the animation duration of the default config and of every
// entry in t.
func WithDuration(t *route.Table, d time.Duration) {
	t.Default.Duration = d
	for kind, e := range t.Entries {
		e.Config.Duration = d
		t.Entries[kind] = e
	}
}
