// panelstack-demo opens a voice room screen and lets you drive its control
// center panels from the keyboard, the mouse and a hardware back button.
//
//	S settings      A audio effects   G gifts (ready after a few seconds)
//	1-9 seat panel  U user panel      L alert    C countdown   X custom toast
//	Esc / Backspace back, hold to close everything     Q quit
//
// Closing the last panel leaves the room screen and ends the demo.
package main

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/config"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/constants"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/features/voiceroom"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/input"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/platform/sdlui"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/router"
	"github.com/spf13/pflag"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
	"go.uber.org/atomic"
)

func init() {
	// SDL calls must stay on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type flags struct {
	routesFile string
	locale     string
	logLevel   string
	logPath    string
	fontPath   string
	fontSize   int
	backDevice string
	noEvdev    bool
	cannoli    bool
	accent     uint32
	giftDelay  time.Duration
	debug      bool
}

func parseFlags(env config.Env) (flags, error) {
	f := flags{
		locale:     env.Locale,
		logLevel:   env.LogLevel,
		logPath:    env.LogPath,
		backDevice: env.BackDevice,
	}

	flagSet := pflag.NewFlagSet("panelstack-demo", pflag.ContinueOnError)
	flagSet.StringVar(&f.routesFile, "routes", "", "TOML file applied on top of "+constants.RoutesFileEnvVar)
	flagSet.StringVar(&f.locale, "locale", f.locale, "panel language, e.g. en or es (env "+constants.LocaleEnvVar+")")
	flagSet.StringVar(&f.logLevel, "log-level", f.logLevel, "application log level (env "+constants.LogLevelEnvVar+")")
	flagSet.StringVar(&f.logPath, "log-path", f.logPath, "also write JSON logs to this file (env "+constants.LogPathEnvVar+")")
	flagSet.StringVar(&f.fontPath, "font", "", "TTF font for panel text (placeholder bars when empty)")
	flagSet.IntVar(&f.fontSize, "font-size", 28, "font size in points")
	flagSet.StringVar(&f.backDevice, "back-device", f.backDevice, "evdev device of the hardware back button (env "+constants.BackDeviceEnvVar+")")
	flagSet.BoolVar(&f.noEvdev, "no-evdev", constants.IsDevMode(), "do not read the hardware back button")
	flagSet.BoolVar(&f.cannoli, "cannoli", false, "use the Cannoli theme")
	flagSet.Uint32Var(&f.accent, "accent", 0, "accent color as 0xRRGGBB")
	flagSet.DurationVar(&f.giftDelay, "gift-delay", 3*time.Second, "simulated gift catalog download time")
	flagSet.BoolVar(&f.debug, "debug", false, "log every store emission and reconcile cycle")

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		return flags{}, err
	}
	return f, nil
}

// roomPanel is a voice room panel drawn as SDL text.
type roomPanel struct {
	*sdlui.TextPanel
	panel *voiceroom.Panel
}

func (p *roomPanel) Destroy() {
	p.panel.Destroy()
	p.TextPanel.Destroy()
}

func run() error {
	env, table, err := config.Load(voiceroom.Routes())
	if err != nil {
		return err
	}
	f, err := parseFlags(env)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if f.routesFile != "" {
		if table, err = config.LoadRoutesFile(f.routesFile, table); err != nil {
			return err
		}
		if env.DismissDuration > 0 {
			config.WithDuration(table, env.DismissDuration)
		}
	}

	window, err := panelstack.Init(panelstack.Options{
		WindowTitle:          "panelstack demo",
		PrimaryThemeColorHex: f.accent,
		IsCannoli:            f.cannoli,
		LogPath:              f.logPath,
		LogLevel:             f.logLevel,
		Debug:                f.debug,
	})
	if err != nil {
		return err
	}
	defer panelstack.Close(window)
	logger := panelstack.GetLogger()

	var font *ttf.Font
	if f.fontPath != "" {
		if font, err = ttf.OpenFont(f.fontPath, f.fontSize); err != nil {
			return panelstack.NewInfrastructureError("load_font", err)
		}
		defer font.Close()
	}

	bundle, err := voiceroom.NewBundle()
	if err != nil {
		return err
	}
	resources := voiceroom.NewResourceSet()
	resources.Loading(voiceroom.KindGiftPanel)
	panels := voiceroom.NewFactory(voiceroom.NewLocalizer(bundle, f.locale), resources, logger)

	presenter := sdlui.NewPresenter(nil)
	var quit atomic.Bool

	rc := router.NewContext(router.Options[sdlui.Content]{
		Factory: router.FactoryFunc[sdlui.Content](func(r route.Route) (sdlui.Content, bool) {
			p, ok := panels.Build(r)
			if !ok {
				return nil, false
			}
			return &roomPanel{TextPanel: sdlui.NewTextPanel(font, presenter.Janitor(), p.Title, p.Body), panel: p}, true
		}),
		Presenter: presenter,
		Table:     table,
		OnExit: func() {
			logger.Info("control center closed, leaving room")
			quit.Store(true)
		},
		Logger: panelstack.GetInternalLogger(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rc.Start(ctx)

	control := voiceroom.NewControlCenter(rc.Store)
	control.OpenSettings()

	go func() {
		select {
		case <-time.After(f.giftDelay):
			resources.Loaded(voiceroom.KindGiftPanel)
			logger.Info("gift catalog ready")
		case <-ctx.Done():
		}
	}()

	if !f.noEvdev && f.backDevice != "" {
		bb := input.NewBackButton(input.BackButtonConfig{
			DevicePath: f.backDevice,
			LongPress:  constants.DefaultLongPress,
			CoolDown:   constants.DefaultBackCoolDown,
		}, rc.Store)
		go func() {
			if err := bb.Run(ctx); err != nil {
				logger.Warn("back button unavailable", "error", panelstack.NewInfrastructureError("back_button", err))
			}
		}()
	}

	keys := &keyboard{
		control:   control,
		store:     rc.Store,
		presenter: presenter,
		font:      font,
		ctx:       ctx,
		logger:    logger,
		back: input.PressClassifier{
			LongPress: constants.DefaultLongPress,
			CoolDown:  constants.DefaultBackCoolDown,
		},
	}

	for !quit.Load() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if !keys.handle(event) {
				quit.Store(true)
			}
		}

		theme := panelstack.GetTheme()
		window.Clear(sdl.Color{R: theme.ScreenColor.R, G: theme.ScreenColor.G, B: theme.ScreenColor.B, A: 255})
		presenter.Render(window.Renderer, window.Bounds())
		window.Present()
	}

	cancel()
	if err := rc.Close(); err != nil {
		logger.Error("reconciler stopped", "error", err)
	}
	presenter.Close()

	stats := rc.Reconciler.Stats()
	logger.Info("bye",
		"cycles", stats.Cycles,
		"builds", stats.Builds,
		"cache_hits", stats.CacheHits,
		"retractions", stats.Retractions)
	return nil
}

type keyboard struct {
	control   *voiceroom.ControlCenter
	store     *router.Store
	presenter *sdlui.Presenter
	font      *ttf.Font
	ctx       context.Context
	logger    *slog.Logger
	back      input.PressClassifier
	users     int
}

// handle applies one SDL event. It returns false when the demo should quit.
func (k *keyboard) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return false

	case *sdl.MouseButtonEvent:
		if e.Type == sdl.MOUSEBUTTONDOWN {
			k.presenter.Tap(e.X, e.Y)
		}

	case *sdl.KeyboardEvent:
		switch e.Keysym.Sym {
		case sdl.K_ESCAPE, sdl.K_BACKSPACE:
			k.backKey(e)
			return true
		}
		if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
			return true
		}
		return k.command(e.Keysym.Sym)
	}
	return true
}

func (k *keyboard) backKey(e *sdl.KeyboardEvent) {
	value := input.KeyDown
	switch {
	case e.Type == sdl.KEYUP:
		value = input.KeyUp
	case e.Repeat != 0:
		value = input.KeyRepeat
	}

	switch k.back.Event(value, time.Now()) {
	case input.ActionBack:
		k.control.Back(func() { k.logger.Debug("panel dismissed") })
	case input.ActionClose:
		k.control.Close()
	}
}

func (k *keyboard) command(key sdl.Keycode) bool {
	switch {
	case key == sdl.K_q:
		return false
	case key == sdl.K_s:
		k.control.OpenSettings()
	case key == sdl.K_a:
		k.control.OpenAudioEffects()
	case key == sdl.K_g:
		k.control.OpenGifts()
	case key >= sdl.K_1 && key <= sdl.K_9:
		k.control.ManageSeat(int(key-sdl.K_1) + 1)
	case key == sdl.K_u:
		k.users++
		k.control.ManageUser(fmt.Sprintf("u%d", k.users), fmt.Sprintf("Guest %d", k.users))
	case key == sdl.K_l:
		k.control.Alert("", "Your microphone is muted")
	case key == sdl.K_c:
		go func() {
			if err := k.control.Countdown(k.ctx, 5, time.Second, func() { k.logger.Info("room is live") }); err != nil {
				k.logger.Debug("countdown stopped", "error", err)
			}
		}()
	case key == sdl.K_x:
		toast := sdlui.NewTextPanel(k.font, k.presenter.Janitor(), "Gift sent", "Thanks for supporting the host")
		k.store.Present(route.NewCustom(toast, overlay.Config{
			Position:             overlay.PositionTop,
			Animation:            overlay.AnimationSlide,
			Background:           overlay.CustomBackground(color.RGBA{R: 0x2E, G: 0x7D, B: 0x32, A: 0xF0}),
			Margins:              overlay.UniformInsets(16),
			CornerRadius:         10,
			DismissOnBackdropTap: true,
		}))
	}
	return true
}
