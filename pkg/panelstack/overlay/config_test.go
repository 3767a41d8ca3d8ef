package overlay

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestParsePosition(t *testing.T) {
	for _, p := range []Position{PositionBottom, PositionCenter, PositionTop} {
		got, err := ParsePosition(p.String())
		assert.NilError(t, err)
		assert.Equal(t, got, p)
	}
	_, err := ParsePosition("left")
	assert.Check(t, is.ErrorContains(err, `unknown position "left"`))
}

func TestParseAnimation(t *testing.T) {
	for _, a := range []Animation{AnimationSlide, AnimationFade, AnimationScale, AnimationNone} {
		got, err := ParseAnimation(" " + a.String())
		assert.NilError(t, err)
		assert.Equal(t, got, a)
	}
	_, err := ParseAnimation("spin")
	assert.Check(t, is.ErrorContains(err, "unknown animation"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, cfg.Position, PositionBottom)
	assert.Assert(t, cfg.DismissOnBackdropTap)
	assert.Assert(t, cfg.Sizing.IsIntrinsic())
	assert.Equal(t, cfg.AnimationDuration(), DefaultDuration)
}
