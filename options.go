package canvas

import (
	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/raster"
	"github.com/gogpu/canvas/text"
)

// Option configures a Canvas during creation.
//
// Example:
//
//	// Opaque Display-P3 canvas
//	c, err := canvas.New(800, 600, canvas.WithAlpha(false), canvas.WithColorSpace(color.PredefinedDisplayP3))
type Option func(*options)

// options holds optional configuration for Canvas creation.
type options struct {
	alpha   bool
	space   color.PredefinedSpace
	backend raster.Backend
	fonts   *text.FontFaceSet
	shaper  text.Shaper

	parallelFilters bool
}

// defaultOptions returns the default canvas options.
func defaultOptions() options {
	return options{
		alpha: true,
		space: color.PredefinedSRGB,
	}
}

// WithAlpha selects whether the canvas buffer may hold transparency. An
// opaque canvas starts black and forces every written pixel to full alpha.
func WithAlpha(alpha bool) Option {
	return func(o *options) {
		o.alpha = alpha
	}
}

// WithColorSpace sets the color space the buffer is encoded in.
func WithColorSpace(space color.PredefinedSpace) Option {
	return func(o *options) {
		o.space = space
	}
}

// WithBackend sets the rasterizer. The default is the software scanline
// backend.
func WithBackend(b raster.Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithFontFaceSet sets the fonts text is drawn with. Canvases share the
// set; adding faces later is visible to all of them.
func WithFontFaceSet(set *text.FontFaceSet) Option {
	return func(o *options) {
		o.fonts = set
	}
}

// WithShaper sets the shaping engine used by font faces created through
// Canvas.AddFontFace.
func WithShaper(s text.Shaper) Option {
	return func(o *options) {
		o.shaper = s
	}
}

// WithParallelFilters lets blur and shadow passes over large layers run on
// a shared worker pool. Each draw call still returns only after its
// pixels are written. The default runs every pass on the caller.
func WithParallelFilters(enabled bool) Option {
	return func(o *options) {
		o.parallelFilters = enabled
	}
}
