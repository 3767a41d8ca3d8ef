// Package voiceroom is the control center of a voice chat room: the panels a
// host or listener can open over the room screen, their presentation, and the
// intents that producers (buttons, seat events, timers) call to change what
// is shown.
package voiceroom

import (
	"image/color"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/overlay"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
)

const (
	KindAlert          route.Kind = "alert"
	KindSettings       route.Kind = "settings"
	KindAudioEffects   route.Kind = "audio_effects"
	KindSeatManagement route.Kind = "seat_management"
	KindUserManagement route.Kind = "user_management"
	KindCountdown      route.Kind = "countdown"
	KindGiftPanel      route.Kind = "gift_panel"
)

// Alert is a short message dialog. An empty Title uses the localized default.
type Alert struct {
	Title   string
	Message string
}

func (Alert) Kind() route.Kind { return KindAlert }

// Settings is the room settings root panel.
type Settings struct{}

func (Settings) Kind() route.Kind { return KindSettings }

type AudioEffects struct{}

func (AudioEffects) Kind() route.Kind { return KindAudioEffects }

// SeatManagement acts on one mic seat, numbered from 1.
type SeatManagement struct {
	Seat int
}

func (SeatManagement) Kind() route.Kind { return KindSeatManagement }

// UserManagement acts on one room member.
type UserManagement struct {
	UserID string
	Name   string
}

func (UserManagement) Kind() route.Kind { return KindUserManagement }

// Countdown shows the seconds left before the room goes live.
type Countdown struct {
	Seconds int
}

func (Countdown) Kind() route.Kind { return KindCountdown }

// GiftPanel needs the downloaded gift catalog before it can be built.
type GiftPanel struct{}

func (GiftPanel) Kind() route.Kind { return KindGiftPanel }

// Routes returns the room's route table. Panels whose content goes stale
// (alerts, per-seat and per-user panels, countdowns) are ephemeral; the
// settings, audio effects and gift panels keep their state between visits.
func Routes() *route.Table {
	sheet := func(ratio float64) overlay.Config {
		cfg := overlay.DefaultConfig()
		cfg.Sizing = overlay.Ratio(ratio)
		return cfg
	}

	dialog := overlay.Config{
		Position:     overlay.PositionCenter,
		Animation:    overlay.AnimationFade,
		Margins:      overlay.UniformInsets(48),
		CornerRadius: 12,
		Duration:     180 * time.Millisecond,
	}

	countdown := dialog
	countdown.Animation = overlay.AnimationScale
	countdown.Background = overlay.CustomBackground(color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xD0})

	return route.NewTable().
		Set(KindAlert, route.Ephemeral, dialog).
		Set(KindSettings, route.Persistent, sheet(0.6)).
		Set(KindAudioEffects, route.Persistent, sheet(0.5)).
		Set(KindSeatManagement, route.Ephemeral, overlay.DefaultConfig()).
		Set(KindUserManagement, route.Ephemeral, overlay.DefaultConfig()).
		Set(KindCountdown, route.Ephemeral, countdown).
		Set(KindGiftPanel, route.Persistent, sheet(0.45))
}
