package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/font"
)

const paragraphTemplate = `For successful completion of four months training in "%s" from %s to %s securing %s GPA, attending the mandatory "Life Skills Training" sessions, and completing the services to community launched by SURE Trust`

// ParagraphLayout holds the constants of the paragraph block.
type ParagraphLayout struct {
	Size int
	// X and Y are the left edge and the top of the first line.
	X, Y int
	// RightPadding is kept free between the text and the right image edge.
	RightPadding int
	// LineGap is added below each line's measured height.
	LineGap int
	Color   color.Color
}

// DefaultParagraphLayout returns the layout the certificate templates are designed for.
func DefaultParagraphLayout() ParagraphLayout {
	return ParagraphLayout{
		Size:         30,
		X:            181,
		Y:            497,
		RightPadding: 100,
		LineGap:      11,
		Color:        color.Black,
	}
}

// Budget returns the maximum line width for an image of the given width.
func (l ParagraphLayout) Budget(imageWidth int) int {
	return imageWidth - l.X - l.RightPadding
}

// Line is one drawn line of the paragraph.
type Line struct {
	Text   string
	Width  int
	Height int
	// Y is the top of the line on the image.
	Y int
}

// ComposeParagraph fills the certificate sentence. Double quotes are
// stripped from the dates; the other fields are used verbatim.
func ComposeParagraph(course, from, to, gpa string) string {
	return fmt.Sprintf(paragraphTemplate,
		course,
		strings.ReplaceAll(from, `"`, ""),
		strings.ReplaceAll(to, `"`, ""),
		gpa,
	)
}

// WrapWords greedily breaks text, split on single spaces, into lines
// narrower than budget. A word that alone exceeds budget gets its own line.
// Empty lines are never returned. When the first word is already too wide
// no blank line precedes it, so the paragraph sits one LineGap (11px by
// default) higher than it would below an emitted blank line.
func WrapWords(face font.Face, text string, budget int) []string {
	var lines []string
	current := ""
	for _, word := range strings.Split(text, " ") {
		if Measure(face, current+word).Width < budget {
			current += word + " "
			continue
		}
		if line := strings.TrimSpace(current); line != "" {
			lines = append(lines, line)
		}
		current = word + " "
	}
	if line := strings.TrimSpace(current); line != "" {
		lines = append(lines, line)
	}
	return lines
}

// LayoutParagraph composes the certificate sentence, wraps it to the image
// width and draws it top to bottom from (layout.X, layout.Y). Each line
// advances y by its own ink height plus layout.LineGap. It returns img.
func LayoutParagraph(img *image.RGBA, f *Font, course, from, to, gpa string, layout ParagraphLayout) (*image.RGBA, []Line, error) {
	face, err := f.Face(layout.Size)
	if err != nil {
		return img, nil, err
	}

	text := ComposeParagraph(course, from, to, gpa)
	wrapped := WrapWords(face, text, layout.Budget(img.Bounds().Dx()))

	origin := img.Bounds().Min
	lines := make([]Line, 0, len(wrapped))
	y := layout.Y
	for _, s := range wrapped {
		box := Measure(face, s)
		drawText(img, face, layout.Color, s, float64(origin.X+layout.X), float64(origin.Y+y))
		lines = append(lines, Line{Text: s, Width: box.Width, Height: box.Height, Y: y})
		y += box.Height + layout.LineGap
	}
	return img, lines, nil
}
