package render

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Faces are built at 72 DPI, so one point is one pixel. This matches how the
// templates were designed: font sizes are given in pixels.
const fontDPI = 72

// toFixed converts a pixel length to 26.6 fixed point, rounding to the nearest 1/64.
func toFixed(px float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(px * 64))
}

// toPixels rounds a 26.6 fixed-point length up to whole pixels.
func toPixels(v fixed.Int26_6) int {
	return v.Ceil()
}
