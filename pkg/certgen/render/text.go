package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// TextBox is the ink extent of a string rendered with a face.
type TextBox struct {
	Width  int
	Height int
}

// Measure returns the ink bounding box size of text.
// Trailing spaces have no ink and do not widen the box.
func Measure(face font.Face, text string) TextBox {
	bounds, _ := font.BoundString(face, text)
	return TextBox{
		Width:  toPixels(bounds.Max.X - bounds.Min.X),
		Height: toPixels(bounds.Max.Y - bounds.Min.Y),
	}
}

// drawText draws text with its ascender line at y and its origin at x.
func drawText(img *image.RGBA, face font.Face, c color.Color, text string, x, y float64) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: toFixed(x),
			Y: toFixed(y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(text)
}
