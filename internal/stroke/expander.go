package stroke

import (
	"math"

	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
)

// maxArcSteps bounds the polygon resolution of round caps and joins.
const maxArcSteps = 512

// Expander converts stroked paths to fill paths.
type Expander struct {
	style raster.StrokeStyle
	hw    float64
	tol   float64
	out   *geom.Path
	// scratch holds the polygon being emitted.
	scratch []geom.Point
}

// NewExpander creates an expander for style. A zero tolerance selects
// geom.DefaultTolerance.
func NewExpander(style raster.StrokeStyle) *Expander {
	tol := style.Tolerance
	if tol <= 0 || math.IsNaN(tol) {
		tol = geom.DefaultTolerance
	}
	return &Expander{style: style, hw: style.Width / 2, tol: tol}
}

// Expand strokes path with style.
func Expand(path *geom.Path, style raster.StrokeStyle) *geom.Path {
	return NewExpander(style).Expand(path)
}

// Expand returns the fill path covering the stroke of path. The result
// must be filled with the nonzero rule.
func (e *Expander) Expand(path *geom.Path) *geom.Path {
	e.out = geom.NewPath()
	if !(e.hw > 0) || math.IsInf(e.hw, 0) {
		return e.out
	}
	lines := path.Flatten(e.tol)
	if dashes, ok := normalizeDash(e.style.Dash); ok {
		lines = applyDash(lines, dashes, e.style.DashOffset)
	}
	for _, line := range lines {
		e.expandLine(line)
	}
	return e.out
}

func (e *Expander) expandLine(line geom.Polyline) {
	pts := dedupe(line.Pts, line.Closed)
	if len(pts) == 1 {
		// A drawn subpath of zero length still gets its caps.
		if !line.Closed && len(line.Pts) >= 2 {
			dir := geom.Pt(1, 0)
			e.cap(pts[0], dir.Mul(-1))
			e.cap(pts[0], dir)
		}
		return
	}
	closed := line.Closed && len(pts) > 2
	n := len(pts)
	for i := 0; i+1 < n; i++ {
		e.segment(pts[i], pts[i+1])
	}
	if closed {
		e.segment(pts[n-1], pts[0])
		for i := range pts {
			e.join(pts[(i+n-1)%n], pts[i], pts[(i+1)%n])
		}
		return
	}
	for i := 1; i+1 < n; i++ {
		e.join(pts[i-1], pts[i], pts[i+1])
	}
	e.cap(pts[0], pts[0].Sub(pts[1]).Normalize())
	e.cap(pts[n-1], pts[n-1].Sub(pts[n-2]).Normalize())
}

// dedupe drops consecutive coincident points, and for closed lines a final
// point equal to the first.
func dedupe(pts []geom.Point, closed bool) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && nearlyEqual(out[len(out)-1], p) {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && nearlyEqual(out[0], out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out
}

func nearlyEqual(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

// perp returns the left normal of the unit direction d scaled by the half
// width.
func (e *Expander) perp(d geom.Point) geom.Point {
	return geom.Pt(-d.Y*e.hw, d.X*e.hw)
}

func (e *Expander) segment(p0, p1 geom.Point) {
	n := e.perp(p1.Sub(p0).Normalize())
	e.polygon(p0.Add(n), p1.Add(n), p1.Sub(n), p0.Sub(n))
}

func (e *Expander) join(prev, p, next geom.Point) {
	d0 := p.Sub(prev).Normalize()
	d1 := next.Sub(p).Normalize()
	cross := d0.Cross(d1)
	dot := d0.Dot(d1)
	if dot > 0 && math.Abs(cross) < 1e-9 {
		return
	}
	if e.style.Join == raster.RoundJoin {
		e.circle(p)
		return
	}
	// The outer side is opposite the direction of the turn.
	s := 1.0
	if cross > 0 {
		s = -1
	}
	n0 := e.perp(d0).Mul(s)
	n1 := e.perp(d1).Mul(s)
	a, b := p.Add(n0), p.Add(n1)
	if e.style.Join == raster.MiterJoin && math.Abs(cross) > 1e-9 {
		limit := e.style.MiterLimit
		if 2 <= (1+dot)*limit*limit {
			tip := p.Add(n0.Add(n1).Mul(1 / (1 + dot)))
			e.polygon(p, a, tip, b)
			return
		}
	}
	e.polygon(p, a, b)
}

// cap draws the cap at end, where dir is the unit direction pointing out of
// the stroke.
func (e *Expander) cap(end, dir geom.Point) {
	n := e.perp(dir)
	switch e.style.Cap {
	case raster.SquareCap:
		ext := dir.Mul(e.hw)
		e.polygon(end.Add(n), end.Add(n).Add(ext), end.Sub(n).Add(ext), end.Sub(n))
	case raster.RoundCap:
		start := math.Atan2(n.Y, n.X)
		steps := e.arcSteps(math.Pi)
		e.scratch = e.scratch[:0]
		for i := 0; i <= steps; i++ {
			a := start - math.Pi*float64(i)/float64(steps)
			e.scratch = append(e.scratch, geom.Pt(end.X+e.hw*math.Cos(a), end.Y+e.hw*math.Sin(a)))
		}
		e.emit(e.scratch)
	}
}

func (e *Expander) circle(c geom.Point) {
	steps := e.arcSteps(2 * math.Pi)
	e.scratch = e.scratch[:0]
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		e.scratch = append(e.scratch, geom.Pt(c.X+e.hw*math.Cos(a), c.Y+e.hw*math.Sin(a)))
	}
	e.emit(e.scratch)
}

// arcSteps returns the number of chords approximating an arc of the half
// width radius within tolerance.
func (e *Expander) arcSteps(angle float64) int {
	steps := 4
	if e.hw > e.tol {
		theta := 2 * math.Acos(1-e.tol/e.hw)
		steps = int(math.Ceil(angle / theta))
	}
	return max(4, min(steps, maxArcSteps))
}

func (e *Expander) polygon(pts ...geom.Point) {
	e.scratch = append(e.scratch[:0], pts...)
	e.emit(e.scratch)
}

// emit appends pts as a closed polygon with positive signed area.
func (e *Expander) emit(pts []geom.Point) {
	var area float64
	for i := range pts {
		area += pts[i].Cross(pts[(i+1)%len(pts)])
	}
	if area == 0 {
		return
	}
	if area < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	e.out.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		e.out.LineTo(p.X, p.Y)
	}
	e.out.Close()
}
