package raster

import "github.com/gogpu/canvas/geom"

// Paint is a paint source: Solid, LinearGradient, RadialGradient,
// SweepGradient or ImagePattern.
type Paint interface {
	isPaint()
}

// Spread selects how gradients extend beyond their stops.
type Spread uint8

const (
	Pad Spread = iota
	Repeat
	Reflect
)

// Stop is a gradient color stop. Color is premultiplied RGBA in [0,1].
type Stop struct {
	Offset float32
	Color  [4]float32
}

// Solid paints a single premultiplied ARGB32 color.
type Solid struct {
	Color uint32
}

// LinearGradient interpolates along P0→P1. Transform maps gradient space
// to device space.
type LinearGradient struct {
	P0, P1    geom.Point
	Stops     []Stop
	Spread    Spread
	Transform geom.Matrix
}

// RadialGradient is the two-circle gradient between (C0, R0) and (C1, R1).
type RadialGradient struct {
	C0        geom.Point
	R0        float64
	C1        geom.Point
	R1        float64
	Stops     []Stop
	Spread    Spread
	Transform geom.Matrix
}

// SweepGradient sweeps clockwise around Center starting at StartAngle.
// Offsets map to fractions of a full turn.
type SweepGradient struct {
	Center     geom.Point
	StartAngle float64
	Stops      []Stop
	Spread     Spread
	Transform  geom.Matrix
}

// Filter selects image sampling.
type Filter uint8

const (
	Nearest Filter = iota
	Bilinear
)

// ImagePattern tiles a premultiplied image. Transform maps image space to
// device space.
type ImagePattern struct {
	Pix              []uint32
	Width, Height    int
	Transform        geom.Matrix
	RepeatX, RepeatY bool
	Filter           Filter
}

func (Solid) isPaint()          {}
func (LinearGradient) isPaint() {}
func (RadialGradient) isPaint() {}
func (SweepGradient) isPaint()  {}
func (ImagePattern) isPaint()   {}
