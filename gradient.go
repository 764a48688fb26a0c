package canvas

import (
	"math"
	"slices"
	"sort"

	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
)

// GradientKind distinguishes the three canvas gradients.
type GradientKind uint8

const (
	LinearGradient GradientKind = iota
	RadialGradient
	ConicGradient
)

// ColorStop is a color at an offset in [0, 1] along a gradient.
type ColorStop struct {
	Offset float64
	Color  color.AbsoluteColor
}

// Gradient is a CanvasGradient. Its geometry is fixed at creation; only
// color stops can be added.
type Gradient struct {
	kind   GradientKind
	p0, p1 geom.Point
	r0, r1 float64
	angle  float64
	stops  []ColorStop
}

// NewLinearGradient returns a gradient along the line (x0, y0)–(x1, y1).
func NewLinearGradient(x0, y0, x1, y1 float64) (*Gradient, error) {
	if !finite(x0, y0, x1, y1) {
		return nil, rangeErrorf("createLinearGradient", "non-finite argument")
	}
	return &Gradient{kind: LinearGradient, p0: geom.Pt(x0, y0), p1: geom.Pt(x1, y1)}, nil
}

// NewRadialGradient returns the two-circle gradient from (x0, y0, r0) to
// (x1, y1, r1). Negative radii are a RangeError.
func NewRadialGradient(x0, y0, r0, x1, y1, r1 float64) (*Gradient, error) {
	if !finite(x0, y0, r0, x1, y1, r1) {
		return nil, rangeErrorf("createRadialGradient", "non-finite argument")
	}
	if r0 < 0 || r1 < 0 {
		return nil, rangeErrorf("createRadialGradient", "negative radius")
	}
	return &Gradient{kind: RadialGradient, p0: geom.Pt(x0, y0), r0: r0, p1: geom.Pt(x1, y1), r1: r1}, nil
}

// NewConicGradient returns a gradient sweeping clockwise around (x, y),
// starting at angle radians from the positive x axis.
func NewConicGradient(angle, x, y float64) (*Gradient, error) {
	if !finite(angle, x, y) {
		return nil, rangeErrorf("createConicGradient", "non-finite argument")
	}
	return &Gradient{kind: ConicGradient, angle: angle, p0: geom.Pt(x, y)}, nil
}

func (*Gradient) style() {}

// Kind returns the gradient kind.
func (g *Gradient) Kind() GradientKind { return g.kind }

// Stops returns the color stops in ascending offset order. The slice must
// not be modified.
func (g *Gradient) Stops() []ColorStop { return g.stops }

// AddColorStop inserts a stop after every existing stop with an offset not
// greater than offset. An offset outside [0, 1] is a RangeError and an
// unparsable color a SyntaxError.
func (g *Gradient) AddColorStop(offset float64, css string) error {
	if !(offset >= 0 && offset <= 1) {
		return rangeErrorf("addColorStop", "offset %v outside [0, 1]", offset)
	}
	c, err := color.Parse(css)
	if err != nil {
		return err
	}
	g.AddStop(ColorStop{Offset: offset, Color: color.Resolve(c)})
	return nil
}

// AddStop inserts an already resolved stop. The offset is clamped to
// [0, 1].
func (g *Gradient) AddStop(s ColorStop) {
	s.Offset = min(max(s.Offset, 0), 1)
	i := sort.Search(len(g.stops), func(i int) bool { return g.stops[i].Offset > s.Offset })
	g.stops = slices.Insert(g.stops, i, s)
}

func (g *Gradient) degenerate() bool {
	switch g.kind {
	case LinearGradient:
		return g.p0 == g.p1
	case RadialGradient:
		return g.p0 == g.p1 && g.r0 == g.r1
	}
	return false
}

// paint resolves the gradient under the transform m. Gradients without
// stops or with degenerate geometry paint nothing.
func (g *Gradient) paint(m geom.Matrix, space color.PredefinedSpace) raster.Paint {
	if len(g.stops) == 0 || g.degenerate() {
		return nil
	}
	stops := make([]raster.Stop, len(g.stops))
	for i, s := range g.stops {
		r, gr, b, a := s.Color.ToPremultiplied(space)
		stops[i] = raster.Stop{Offset: float32(s.Offset), Color: [4]float32{r, gr, b, a}}
	}
	switch g.kind {
	case LinearGradient:
		return raster.LinearGradient{P0: g.p0, P1: g.p1, Stops: stops, Spread: raster.Pad, Transform: m}
	case RadialGradient:
		return raster.RadialGradient{C0: g.p0, R0: g.r0, C1: g.p1, R1: g.r1, Stops: stops, Spread: raster.Pad, Transform: m}
	}
	// The sweep shader measures angles clockwise from the positive x axis
	// in y-down space, as canvas does, so the start angle only needs
	// wrapping into one turn. Conic gradients always repeat.
	start := math.Mod(g.angle, 2*math.Pi)
	return raster.SweepGradient{Center: g.p0, StartAngle: start, Stops: stops, Spread: raster.Repeat, Transform: m}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
