// Package certgen generates certificate images from a spreadsheet of recipients.
package certgen

import (
	"time"

	"github.com/google/uuid"
	"github.com/suretrust/certgen-go/pkg/certgen/render"
	"go.uber.org/zap"
)

// Layout groups the placement constants for the name and the paragraph.
type Layout struct {
	Name      render.NameLayout
	Paragraph render.ParagraphLayout
}

// DefaultLayout returns the layout the certificate templates are designed for.
func DefaultLayout() Layout {
	return Layout{
		Name:      render.DefaultNameLayout(),
		Paragraph: render.DefaultParagraphLayout(),
	}
}

// Options configures generation behavior.
type Options struct {
	// KeepGoing skips records that fail instead of aborting the batch.
	KeepGoing bool
	// DryRun lays out every certificate but writes nothing.
	DryRun bool
	// WriteManifest specifies whether to write manifest.json.
	// If nil, defaults to true unless DryRun is set.
	WriteManifest *bool
	// PrettyManifest indents the manifest JSON.
	PrettyManifest bool
	// Layout overrides the default layout when non-nil.
	Layout *Layout
	// Logger receives progress and failure logs. Nil means no logging.
	Logger *zap.Logger
	// Now and NewID are used for reference numbers and timestamps.
	// Nil means time.Now and a random UUID.
	Now   func() time.Time
	NewID func() string
}

// DefaultOptions returns default generation options.
func DefaultOptions() Options {
	return Options{PrettyManifest: true}
}

// ShouldWriteManifest returns whether to write the manifest.
func (o Options) ShouldWriteManifest() bool {
	if o.WriteManifest != nil {
		return *o.WriteManifest && !o.DryRun
	}
	return !o.DryRun
}

func (o Options) layout() Layout {
	if o.Layout != nil {
		return *o.Layout
	}
	return DefaultLayout()
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) newID() string {
	if o.NewID != nil {
		return o.NewID()
	}
	return uuid.NewString()
}
