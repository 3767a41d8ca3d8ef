// Package input turns hardware button presses into route stack changes.
package input

import "time"

// Action is what a completed press asks for.
type Action int

const (
	ActionNone  Action = iota
	ActionBack         // dismiss the top panel
	ActionClose        // dismiss every panel
)

func (a Action) String() string {
	switch a {
	case ActionBack:
		return "back"
	case ActionClose:
		return "close"
	default:
		return "none"
	}
}

// Key event values as reported by the kernel.
const (
	KeyUp     int32 = 0
	KeyDown   int32 = 1
	KeyRepeat int32 = 2
)

// PressClassifier turns a button's down, repeat and up events into actions.
// A press shorter than LongPress is a back; holding it for LongPress closes
// everything as soon as the hold is noticed. A press starting within CoolDown
// of the previous action is ignored.
//
// PressClassifier is not safe for concurrent use.
type PressClassifier struct {
	LongPress time.Duration
	CoolDown  time.Duration

	pressed    bool
	fired      bool
	downAt     time.Time
	lastAction time.Time
}

// Event feeds one key event taken at now.
func (c *PressClassifier) Event(value int32, now time.Time) Action {
	switch value {
	case KeyDown:
		if !c.lastAction.IsZero() && now.Sub(c.lastAction) < c.CoolDown {
			return ActionNone
		}
		c.pressed = true
		c.fired = false
		c.downAt = now
		return ActionNone

	case KeyRepeat:
		if c.pressed && !c.fired && now.Sub(c.downAt) >= c.LongPress {
			c.fired = true
			c.lastAction = now
			return ActionClose
		}
		return ActionNone

	case KeyUp:
		if !c.pressed {
			return ActionNone
		}
		c.pressed = false
		if c.fired {
			return ActionNone
		}
		c.lastAction = now
		if now.Sub(c.downAt) >= c.LongPress {
			return ActionClose
		}
		return ActionBack
	}
	return ActionNone
}
