package internal

import (
	"image/color"
	"log/slog"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func TestRoundedMaskCorners(t *testing.T) {
	img, err := RoundedMask(64, 32, 12)
	assert.NilError(t, err)
	assert.Equal(t, img.Bounds().Dx(), 64)

	assert.Equal(t, img.RGBAAt(0, 0).A, uint8(0), "corner should be masked")
	assert.Equal(t, img.RGBAAt(63, 31).A, uint8(0), "corner should be masked")
	assert.Equal(t, img.RGBAAt(32, 16).A, uint8(255), "center should be opaque")
}

func TestRoundedMaskRejectsEmpty(t *testing.T) {
	_, err := RoundedMask(0, 10, 4)
	assert.Check(t, is.ErrorContains(err, "invalid size"))
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#008080")
	assert.NilError(t, err)
	assert.Equal(t, c, color.RGBA{G: 0x80, B: 0x80, A: 255})

	c, err = ParseHexColor("11223344")
	assert.NilError(t, err)
	assert.Equal(t, c, color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x44})

	_, err = ParseHexColor("#12")
	assert.Check(t, is.ErrorContains(err, "invalid color"))
	_, err = ParseHexColor("#zzzzzz")
	assert.Check(t, is.ErrorContains(err, "invalid color"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, ParseLevel("DEBUG"), slog.LevelDebug)
	assert.Equal(t, ParseLevel("warning"), slog.LevelWarn)
	assert.Equal(t, ParseLevel("bogus"), slog.LevelInfo)
}
