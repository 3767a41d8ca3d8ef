package input

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/constants"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/internal"
	"github.com/holoplot/go-evdev"
)

// Dismisser is the part of a route store the back button drives.
type Dismisser interface {
	Dismiss(onDismissed func())
	DismissAll()
}

// BackButtonConfig describes the device and timing of a back button.
type BackButtonConfig struct {
	DevicePath string
	Codes      []evdev.EvCode // key codes treated as back, KEY_BACK, KEY_ESC and BTN_EAST when empty
	LongPress  time.Duration
	CoolDown   time.Duration
}

// DefaultBackButtonConfig listens on the default device.
func DefaultBackButtonConfig() BackButtonConfig {
	return BackButtonConfig{
		DevicePath: constants.DefaultBackDevice,
		LongPress:  constants.DefaultLongPress,
		CoolDown:   constants.DefaultBackCoolDown,
	}
}

// BackButton reads a kernel input device and dismisses panels on back presses.
type BackButton struct {
	config     BackButtonConfig
	target     Dismisser
	classifier PressClassifier
	logger     *slog.Logger
}

func NewBackButton(config BackButtonConfig, target Dismisser) *BackButton {
	if len(config.Codes) == 0 {
		config.Codes = []evdev.EvCode{
			evdev.EvCode(evdev.KEY_BACK),
			evdev.EvCode(evdev.KEY_ESC),
			evdev.EvCode(evdev.BTN_EAST),
		}
	}
	return &BackButton{
		config: config,
		target: target,
		classifier: PressClassifier{
			LongPress: config.LongPress,
			CoolDown:  config.CoolDown,
		},
		logger: internal.GetInternalLogger(),
	}
}

// Run reads events until ctx is done. It returns an error if the device
// cannot be opened or fails while ctx is still live.
func (b *BackButton) Run(ctx context.Context) error {
	dev, err := evdev.Open(b.config.DevicePath)
	if err != nil {
		return fmt.Errorf("input: open %s: %w", b.config.DevicePath, err)
	}

	name, _ := dev.Name()
	b.logger.Debug("input: back button listening", "device", b.config.DevicePath, "name", name)

	stop := context.AfterFunc(ctx, func() { _ = dev.Close() })
	defer func() {
		if stop() {
			_ = dev.Close()
		}
	}()

	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("input: read %s: %w", b.config.DevicePath, err)
		}
		b.handle(ev)
	}
}

func (b *BackButton) handle(ev *evdev.InputEvent) Action {
	if ev.Type != evdev.EvType(evdev.EV_KEY) || !slices.Contains(b.config.Codes, ev.Code) {
		return ActionNone
	}

	now := time.Unix(int64(ev.Time.Sec), int64(ev.Time.Usec)*int64(time.Microsecond))
	action := b.classifier.Event(ev.Value, now)
	switch action {
	case ActionBack:
		b.logger.Debug("input: back")
		b.target.Dismiss(nil)
	case ActionClose:
		b.logger.Debug("input: close all")
		b.target.DismissAll()
	}
	return action
}
