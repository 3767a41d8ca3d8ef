package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/internal"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
	"github.com/BurntSushi/toml"
)

// entryFile is one [default] or [routes.<kind>] table.
type entryFile struct {
	Policy               string  `toml:"policy"`
	Position             string  `toml:"position"`
	Sizing               string  `toml:"sizing"`
	Ratio                float64 `toml:"ratio"`
	Animation            string  `toml:"animation"`
	Background           string  `toml:"background"`
	Margin               int32   `toml:"margin"`
	CornerRadius         float64 `toml:"corner_radius"`
	DismissOnBackdropTap bool    `toml:"dismiss_on_backdrop_tap"`
	Duration             string  `toml:"duration"`
}

type routesFile struct {
	Default entryFile            `toml:"default"`
	Routes  map[string]entryFile `toml:"routes"`
}

// LoadRoutesFile reads a TOML routes file and applies it to a copy of base.
//
// Example file:
//
//	[default]
//	animation = "fade"
//
//	[routes.settings]
//	policy = "ephemeral"
//	position = "center"
//	background = "#202020E0"
func LoadRoutesFile(path string, base *route.Table) (*route.Table, error) {
	var raw routesFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, fmt.Errorf("load routes file: %w", err)
	}
	return applyRoutes(meta, raw, base)
}

// ParseRoutes is LoadRoutesFile for in-memory data.
func ParseRoutes(data string, base *route.Table) (*route.Table, error) {
	var raw routesFile
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("parse routes: %w", err)
	}
	return applyRoutes(meta, raw, base)
}

func applyRoutes(meta toml.MetaData, raw routesFile, base *route.Table) (*route.Table, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("routes: unknown key %q", undecoded[0].String())
	}
	table := base.Clone()

	if meta.IsDefined("default", "policy") {
		return nil, fmt.Errorf("routes: default.policy is not supported, set policy per route")
	}
	if err := raw.Default.apply(meta, []string{"default"}, &table.Default); err != nil {
		return nil, err
	}

	for kind, entry := range raw.Routes {
		keys := []string{"routes", kind}
		current, ok := table.Entries[route.Kind(kind)]
		if !ok {
			current = route.Entry{Policy: route.Persistent, Config: table.Default}
		}

		if meta.IsDefined(key(keys, "policy")...) {
			policy, err := route.ParsePolicy(entry.Policy)
			if err != nil {
				return nil, fmt.Errorf("routes.%s.policy: %w", kind, err)
			}
			current.Policy = policy
		}
		if err := entry.apply(meta, keys, &current.Config); err != nil {
			return nil, err
		}
		table.Entries[route.Kind(kind)] = current
	}

	return table, nil
}

func key(prefix []string, name string) []string {
	out := make([]string, 0, len(prefix)+1)
	out = append(out, prefix...)
	return append(out, name)
}

// apply copies every key present in the file onto cfg.
func (e entryFile) apply(meta toml.MetaData, prefix []string, cfg *overlay.Config) error {
	defined := func(name string) bool { return meta.IsDefined(key(prefix, name)...) }
	where := func(name string) string { return strings.Join(key(prefix, name), ".") }

	if defined("position") {
		p, err := overlay.ParsePosition(e.Position)
		if err != nil {
			return fmt.Errorf("%s: %w", where("position"), err)
		}
		cfg.Position = p
	}

	if defined("sizing") {
		switch strings.ToLower(strings.TrimSpace(e.Sizing)) {
		case "intrinsic":
			cfg.Sizing = overlay.Intrinsic()
		case "ratio":
			if !defined("ratio") {
				return fmt.Errorf("%s: ratio sizing needs a ratio", where("sizing"))
			}
		default:
			return fmt.Errorf("%s: unknown sizing %q", where("sizing"), e.Sizing)
		}
	}

	if defined("ratio") {
		if math.IsNaN(e.Ratio) || e.Ratio <= 0 || e.Ratio > 1 {
			return fmt.Errorf("%s: %g is outside (0, 1]", where("ratio"), e.Ratio)
		}
		cfg.Sizing = overlay.Ratio(e.Ratio)
	}

	if defined("animation") {
		a, err := overlay.ParseAnimation(e.Animation)
		if err != nil {
			return fmt.Errorf("%s: %w", where("animation"), err)
		}
		cfg.Animation = a
	}

	if defined("background") {
		if strings.EqualFold(strings.TrimSpace(e.Background), "theme") {
			cfg.Background = overlay.ThemeBackground()
		} else {
			c, err := internal.ParseHexColor(e.Background)
			if err != nil {
				return fmt.Errorf("%s: %w", where("background"), err)
			}
			cfg.Background = overlay.CustomBackground(c)
		}
	}

	if defined("margin") {
		if e.Margin < 0 {
			return fmt.Errorf("%s: must not be negative", where("margin"))
		}
		cfg.Margins = overlay.UniformInsets(e.Margin)
	}

	if defined("corner_radius") {
		if e.CornerRadius < 0 {
			return fmt.Errorf("%s: must not be negative", where("corner_radius"))
		}
		cfg.CornerRadius = e.CornerRadius
	}

	if defined("dismiss_on_backdrop_tap") {
		cfg.DismissOnBackdropTap = e.DismissOnBackdropTap
	}

	if defined("duration") {
		d, err := time.ParseDuration(strings.TrimSpace(e.Duration))
		if err != nil {
			return fmt.Errorf("%s: %w", where("duration"), err)
		}
		cfg.Duration = d
	}

	return nil
}
