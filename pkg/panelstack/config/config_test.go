package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
	"github.com/caarlos0/env/v11"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func baseTable() *route.Table {
	return route.NewTable().
		Set("settings", route.Persistent, overlay.DefaultConfig()).
		Set("alert", route.Ephemeral, overlay.Config{Position: overlay.PositionCenter, Animation: overlay.AnimationFade})
}

func TestParseEnvDefaults(t *testing.T) {
	cfg, err := parseEnv(env.Options{Prefix: "PANELSTACK_", Environment: map[string]string{}})
	assert.NilError(t, err)
	assert.Equal(t, cfg.LogLevel, "error")
	assert.Equal(t, cfg.Locale, "en")
	assert.Equal(t, cfg.BackDevice, "/dev/input/event1")
	assert.Equal(t, cfg.RoutesFile, "")
	assert.Equal(t, cfg.DismissDuration, time.Duration(0))
}

func TestParseEnvValues(t *testing.T) {
	cfg, err := parseEnv(env.Options{Prefix: "PANELSTACK_", Environment: map[string]string{
		"PANELSTACK_LOCALE":           "es",
		"PANELSTACK_DISMISS_DURATION": "400ms",
		"PANELSTACK_LOG_LEVEL":        "debug",
	}})
	assert.NilError(t, err)
	assert.Equal(t, cfg.Locale, "es")
	assert.Equal(t, cfg.DismissDuration, 400*time.Millisecond)
	assert.Equal(t, cfg.LogLevel, "debug")
}

func TestParseEnvErrors(t *testing.T) {
	_, err := parseEnv(env.Options{Prefix: "PANELSTACK_", Environment: map[string]string{
		"PANELSTACK_DISMISS_DURATION": "soon",
	}})
	assert.Check(t, is.ErrorContains(err, "parse env:"))

	_, err = parseEnv(env.Options{Prefix: "PANELSTACK_", Environment: map[string]string{
		"PANELSTACK_DISMISS_DURATION": "-1s",
	}})
	assert.Check(t, is.ErrorContains(err, "must not be negative"))
}

func TestParseRoutesOverridesOnlyDefinedKeys(t *testing.T) {
	base := baseTable()
	table, err := ParseRoutes(`
[default]
animation = "scale"

[routes.settings]
policy = "ephemeral"
ratio = 0.5
background = "#10203080"
dismiss_on_backdrop_tap = false

[routes.alert]
duration = "100ms"
`, base)
	assert.NilError(t, err)

	assert.Equal(t, table.Default.Animation, overlay.AnimationScale)

	settings := table.Entries["settings"]
	assert.Equal(t, settings.Policy, route.Ephemeral)
	assert.Equal(t, settings.Config.Sizing.Ratio, 0.5)
	assert.Equal(t, settings.Config.Background, overlay.CustomBackground(color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x80}))
	assert.Assert(t, !settings.Config.DismissOnBackdropTap)
	assert.Equal(t, settings.Config.Position, overlay.PositionBottom, "position was not in the file")
	assert.Equal(t, settings.Config.CornerRadius, 16.0)

	alert := table.Entries["alert"]
	assert.Equal(t, alert.Policy, route.Ephemeral)
	assert.Equal(t, alert.Config.Position, overlay.PositionCenter)
	assert.Equal(t, alert.Config.Duration, 100*time.Millisecond)

	// base is untouched
	assert.Equal(t, base.Entries["settings"].Policy, route.Persistent)
	assert.Equal(t, base.Default.Animation, overlay.AnimationSlide)
}

func TestParseRoutesNewKindInheritsDefault(t *testing.T) {
	table, err := ParseRoutes(`
[default]
position = "top"
margin = 12

[routes.banner]
corner_radius = 0.0
`, baseTable())
	assert.NilError(t, err)

	banner := table.Entries["banner"]
	assert.Equal(t, banner.Policy, route.Persistent)
	assert.Equal(t, banner.Config.Position, overlay.PositionTop)
	assert.Equal(t, banner.Config.Margins, overlay.UniformInsets(12))
	assert.Equal(t, banner.Config.CornerRadius, 0.0)
}

func TestParseRoutesErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{name: "unknown key", doc: "[routes.settings]\ncolour = \"red\"\n", want: `unknown key "routes.settings.colour"`},
		{name: "bad policy", doc: "[routes.settings]\npolicy = \"sometimes\"\n", want: "routes.settings.policy"},
		{name: "default policy", doc: "[default]\npolicy = \"ephemeral\"\n", want: "default.policy"},
		{name: "bad position", doc: "[routes.alert]\nposition = \"left\"\n", want: "routes.alert.position"},
		{name: "bad ratio", doc: "[routes.alert]\nratio = 1.5\n", want: "outside (0, 1]"},
		{name: "nan ratio", doc: "[routes.alert]\nratio = nan\n", want: "outside (0, 1]"},
		{name: "ratio sizing without ratio", doc: "[routes.alert]\nsizing = \"ratio\"\n", want: "needs a ratio"},
		{name: "bad background", doc: "[default]\nbackground = \"blue\"\n", want: "default.background"},
		{name: "bad duration", doc: "[default]\nduration = \"fast\"\n", want: "default.duration"},
		{name: "negative margin", doc: "[default]\nmargin = -1\n", want: "must not be negative"},
		{name: "syntax", doc: "[default\n", want: "parse routes"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseRoutes(tc.doc, baseTable())
			assert.Check(t, is.ErrorContains(err, tc.want))
		})
	}
}

func TestLoadRoutesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.toml")
	assert.NilError(t, os.WriteFile(path, []byte("[routes.alert]\nbackground = \"theme\"\nsizing = \"intrinsic\"\n"), 0o644))

	table, err := LoadRoutesFile(path, baseTable())
	assert.NilError(t, err)
	assert.Equal(t, table.Entries["alert"].Config.Background, overlay.ThemeBackground())

	_, err = LoadRoutesFile(filepath.Join(t.TempDir(), "missing.toml"), baseTable())
	assert.Check(t, is.ErrorContains(err, "load routes file"))
}

func TestLoadAppliesFileAndDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.toml")
	assert.NilError(t, os.WriteFile(path, []byte("[routes.settings]\nposition = \"center\"\n"), 0o644))
	t.Setenv("PANELSTACK_ROUTES_FILE", path)
	t.Setenv("PANELSTACK_DISMISS_DURATION", "75ms")

	cfg, table, err := Load(baseTable())
	assert.NilError(t, err)
	assert.Equal(t, cfg.RoutesFile, path)
	assert.Equal(t, table.Entries["settings"].Config.Position, overlay.PositionCenter)
	assert.Equal(t, table.Entries["settings"].Config.Duration, 75*time.Millisecond)
	assert.Equal(t, table.Entries["alert"].Config.Duration, 75*time.Millisecond)
	assert.Equal(t, table.Default.Duration, 75*time.Millisecond)
}
