// Package raster defines the contract between the canvas state machine and
// the scanline rasterizer/compositor that turns paths and paint sources into
// pixels.
//
// The canvas never touches pixels directly while filling: it resolves
// geometry, paint and blend mode and hands them to a Backend. The module
// ships a software Backend in internal/raster.
package raster

import (
	"image"

	"github.com/gogpu/canvas/geom"
)

// FillRule selects the winding rule used to decide path interiors.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

func (r FillRule) String() string {
	if r == EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

// BlendMode is a compositing primitive of the rasterizer.
type BlendMode uint8

const (
	Clear BlendMode = iota
	Src
	Dst
	SrcOver
	DstOver
	SrcIn
	DstIn
	SrcOut
	DstOut
	SrcAtop
	DstAtop
	Xor
	Plus
	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion
	Hue
	Saturation
	Color
	Luminosity
)

// NumBlendModes is the number of BlendMode values.
const NumBlendModes = int(Luminosity) + 1

// Target is a premultiplied ARGB32 pixel buffer. Pixel (x, y) lives at
// Pix[y*Stride+x].
type Target struct {
	Pix           []uint32
	Width, Height int
	Stride        int
	// Opaque forces every written pixel to full alpha.
	Opaque bool
	// Clips is the clip mask stack maintained by Backend.PushClip and
	// Backend.PopClip. The last mask is the effective clip.
	Clips []*Mask
}

// NewTarget allocates a transparent target.
func NewTarget(width, height int) *Target {
	return &Target{Pix: make([]uint32, width*height), Width: width, Height: height, Stride: width}
}

// Bounds returns the target rectangle.
func (t *Target) Bounds() image.Rectangle { return image.Rect(0, 0, t.Width, t.Height) }

// Row returns the pixels of row y.
func (t *Target) Row(y int) []uint32 { return t.Pix[y*t.Stride : y*t.Stride+t.Width] }

// Mask is an 8-bit coverage mask covering a whole target.
type Mask struct {
	Coverage      []uint8
	Width, Height int
}

// Clip returns the effective clip mask or nil when unclipped.
func (t *Target) Clip() *Mask {
	if len(t.Clips) == 0 {
		return nil
	}
	return t.Clips[len(t.Clips)-1]
}

// LineCap is the shape of open stroke ends.
type LineCap uint8

const (
	ButtCap LineCap = iota
	RoundCap
	SquareCap
)

// LineJoin is the shape of stroke corners.
type LineJoin uint8

const (
	MiterJoin LineJoin = iota
	RoundJoin
	BevelJoin
)

// StrokeStyle describes a stroke in the path's own coordinate space.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
	// Tolerance is the curve flattening tolerance in path units.
	Tolerance float64
}

// SpanFunc rewrites a row of source pixels before it is composited.
type SpanFunc func(y int, span []uint32)

// Backend fills paths and composites surfaces onto targets.
type Backend interface {
	// Fill paints the device-space path with paint, honoring the target's
	// clip. alpha scales the paint coverage.
	Fill(dst *Target, path *geom.Path, rule FillRule, paint Paint, mode BlendMode, alpha float32)
	// Stroke expands path into a nonzero fill path outlining the stroke.
	Stroke(path *geom.Path, style StrokeStyle) *geom.Path
	// PushClip intersects the current clip of dst with the device-space path.
	PushClip(dst *Target, path *geom.Path, rule FillRule)
	// PopClip removes the most recent clip of dst.
	PopClip(dst *Target)
	// Composite blends srcRect of src onto dst with its top-left corner at
	// dstOrigin. span, when non-nil, rewrites each source row first.
	Composite(dst, src *Target, srcRect image.Rectangle, dstOrigin image.Point, mode BlendMode, alpha float32, span SpanFunc)
}
