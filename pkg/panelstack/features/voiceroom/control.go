package voiceroom

import (
	"context"
	"time"

	"github.com/BrandonKowalski/panelstack/pkg/panelstack/route"
	"github.com/BrandonKowalski/panelstack/pkg/panelstack/router"
)

// ControlCenter turns room events into route stack changes. It only talks to
// the store; what ends up on screen is the reconciler's business.
type ControlCenter struct {
	store *router.Store
}

func NewControlCenter(store *router.Store) *ControlCenter {
	return &ControlCenter{store: store}
}

// OpenSettings shows the settings root panel.
func (c *ControlCenter) OpenSettings() { c.store.Present(Settings{}) }

// OpenAudioEffects shows the audio effects panel above whatever is open.
func (c *ControlCenter) OpenAudioEffects() { c.store.Present(AudioEffects{}) }

func (c *ControlCenter) OpenGifts() { c.store.Present(GiftPanel{}) }

// ManageSeat opens the panel for seat. A seat panel already on top is
// replaced so taps on different seats do not pile up.
func (c *ControlCenter) ManageSeat(seat int) {
	c.presentOrReplace(SeatManagement{Seat: seat}, KindSeatManagement)
}

// ManageUser opens the member panel, replacing one already on top.
func (c *ControlCenter) ManageUser(userID, name string) {
	c.presentOrReplace(UserManagement{UserID: userID, Name: name}, KindUserManagement)
}

// Alert raises a message dialog above everything else.
func (c *ControlCenter) Alert(title, message string) {
	c.store.Present(Alert{Title: title, Message: message})
}

// Back dismisses the top panel, running onDismissed once it is gone.
func (c *ControlCenter) Back(onDismissed func()) { c.store.Dismiss(onDismissed) }

// Close dismisses every panel and returns to the room screen.
func (c *ControlCenter) Close() { c.store.DismissAll() }

func (c *ControlCenter) presentOrReplace(r route.Route, kind route.Kind) {
	if !c.store.ReplaceTopIf(router.OfKind(kind), r) {
		c.store.Present(r)
	}
}

// Countdown shows a countdown from seconds, replacing it every tick, and
// dismisses it when it reaches zero. onDone runs after the countdown has left
// the screen. Countdown returns once it has dismissed the countdown, or when
// ctx is done, in which case the countdown stays up and onDone never runs. If
// something else covers or closes the countdown, it stops quietly.
func (c *ControlCenter) Countdown(ctx context.Context, seconds int, tick time.Duration, onDone func()) error {
	if seconds <= 0 {
		if onDone != nil {
			onDone()
		}
		return nil
	}

	c.store.Present(Countdown{Seconds: seconds})

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for remaining := seconds - 1; ; remaining-- {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if remaining == 0 {
			c.store.DismissIf(router.OfKind(KindCountdown), onDone)
			return nil
		}
		if !c.store.ReplaceTopIf(router.OfKind(KindCountdown), Countdown{Seconds: remaining}) {
			return nil
		}
	}
}
