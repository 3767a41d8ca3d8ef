package internal

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// RoundedMask rasterizes a white rounded rectangle of w x h pixels with the
// given corner radius. Outside the corners the mask is fully transparent.
// Platforms tint the result with a surface's background color.
func RoundedMask(w, h int, radius float64) (*image.RGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("mask: invalid size %dx%d", w, h)
	}
	radius = math.Max(0, math.Min(radius, float64(min(w, h))/2))

	svg := fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect x="0" y="0" width="%d" height="%d" rx="%g" ry="%g" fill="#ffffff"/></svg>`,
		w, h, w, h, w, h, radius, radius)

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("mask: parse: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}
