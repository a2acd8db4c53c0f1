package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/suretrust/certgen-go/pkg/certgen/models"
	"golang.org/x/image/font"
)

// NameLayout holds the constants of the name fitting search.
type NameLayout struct {
	// StartSize is decremented once before the first measurement.
	StartSize int
	Step      int
	// MinSize is the smallest size tried before giving up.
	MinSize int
	// BaseY is the top of the name before the per-step downward drift.
	BaseY int
	// MinLeftMargin is the left edge the centred name must clear.
	MinLeftMargin float64
	Color         color.Color
}

// DefaultNameLayout returns the layout the certificate templates are designed for.
func DefaultNameLayout() NameLayout {
	return NameLayout{
		StartSize:     90,
		Step:          10,
		MinSize:       10,
		BaseY:         362,
		MinLeftMargin: 120,
		Color:         color.Black,
	}
}

// NameFit reports where and how large a name was placed.
type NameFit struct {
	Size   int
	Steps  int
	X      float64
	Y      int
	Width  int
	Height int
}

// FitName draws text centred horizontally on img at the largest size whose
// left edge clears layout.MinLeftMargin, and returns img.
func FitName(img *image.RGBA, f *Font, text string, layout NameLayout) (*image.RGBA, NameFit, error) {
	fit, face, err := FindNameFit(img.Bounds().Dx(), f, text, layout)
	if err != nil {
		return img, fit, err
	}

	drawText(img, face, layout.Color, text, float64(img.Bounds().Min.X)+fit.X, float64(img.Bounds().Min.Y+fit.Y))
	return img, fit, nil
}

// FindNameFit runs the size search for an image of the given width without drawing.
// Sizes go StartSize-Step, StartSize-2*Step, ... and the vertical position
// drifts down by Step/2 per step. The search fails with models.ErrLayoutFailed
// once the next size would drop below MinSize.
func FindNameFit(width int, f *Font, text string, layout NameLayout) (NameFit, font.Face, error) {
	if strings.TrimSpace(text) == "" {
		return NameFit{}, nil, fmt.Errorf("%w: empty name", models.ErrMalformedRecord)
	}
	if layout.Step <= 0 {
		return NameFit{}, nil, fmt.Errorf("invalid name step %d", layout.Step)
	}

	var fit NameFit
	for steps := 1; ; steps++ {
		offset := steps * layout.Step
		size := layout.StartSize - offset
		if size < layout.MinSize || size <= 0 {
			return fit, nil, fmt.Errorf("%w: name %q does not clear a %.0fpx margin on a %dpx template at any size down to %dpx",
				models.ErrLayoutFailed, text, layout.MinLeftMargin, width, layout.MinSize)
		}

		face, err := f.Face(size)
		if err != nil {
			return fit, nil, err
		}
		box := Measure(face, text)
		fit = NameFit{
			Size:   size,
			Steps:  steps,
			X:      float64(width-box.Width) / 2,
			Y:      layout.BaseY + offset/2,
			Width:  box.Width,
			Height: box.Height,
		}
		if fit.X > layout.MinLeftMargin {
			return fit, face, nil
		}
	}
}
