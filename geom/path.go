package geom

import (
	"errors"
	"math"
)

// Verb is the kind of a path operation.
type Verb uint8

const (
	MoveTo Verb = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

func (v Verb) String() string {
	switch v {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case QuadTo:
		return "QuadTo"
	case CubicTo:
		return "CubicTo"
	case Close:
		return "Close"
	}
	return "Verb(?)"
}

// NumPoints is the number of points the verb carries.
func (v Verb) NumPoints() int {
	switch v {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	}
	return 0
}

// PathOp is one path operation. Only the first Verb.NumPoints() entries of
// Pts are meaningful; the last of them is the end point.
type PathOp struct {
	Verb Verb
	Pts  [3]Point
}

// End returns the operation's end point.
func (op PathOp) End() Point {
	if n := op.Verb.NumPoints(); n > 0 {
		return op.Pts[n-1]
	}
	return Point{}
}

var (
	// ErrNegativeRadius is returned by arc constructions given a negative radius.
	ErrNegativeRadius = errors.New("geom: negative radius")
	// ErrRadiiCount is returned by RoundRect when given other than 1 to 4 radii.
	ErrRadiiCount = errors.New("geom: roundRect needs 1 to 4 radii")
)

// Path is an ordered sequence of path operations. The zero value is an
// empty path ready to use.
type Path struct {
	ops []PathOp
	// start is the first point of the current subpath.
	start Point
	// open reports whether a subpath is in progress. After Close the
	// subpath is no longer open, but start is kept so the next drawing
	// operation reopens a subpath there.
	open   bool
	closed bool
}

// NewPath returns an empty path.
func NewPath() *Path { return &Path{} }

// Ops returns the operations. The slice must not be modified.
func (p *Path) Ops() []PathOp { return p.ops }

// Len returns the number of operations.
func (p *Path) Len() int { return len(p.ops) }

// IsEmpty reports whether the path has no operations.
func (p *Path) IsEmpty() bool { return len(p.ops) == 0 }

// Reset removes every operation.
func (p *Path) Reset() { *p = Path{ops: p.ops[:0]} }

// Clone returns an independent copy.
func (p *Path) Clone() *Path {
	q := *p
	q.ops = append([]PathOp(nil), p.ops...)
	return &q
}

// CurrentPoint returns the end point of the last operation, if any.
func (p *Path) CurrentPoint() (Point, bool) {
	if len(p.ops) == 0 {
		return Point{}, false
	}
	if p.closed {
		return p.start, true
	}
	return p.ops[len(p.ops)-1].End(), true
}

func (p *Path) push(op PathOp) {
	p.ops = append(p.ops, op)
}

// ensureSubpath opens a subpath at pt when none is in progress and reports
// whether it did so. After a Close the new subpath starts at the previous
// subpath's start point instead.
func (p *Path) ensureSubpath(pt Point) bool {
	if p.open {
		return false
	}
	if p.closed {
		p.MoveTo(p.start.X, p.start.Y)
		return false
	}
	p.MoveTo(pt.X, pt.Y)
	return true
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	pt := Point{x, y}
	p.push(PathOp{Verb: MoveTo, Pts: [3]Point{pt}})
	p.start = pt
	p.open = true
	p.closed = false
}

// LineTo adds a straight line, opening a subpath at (x, y) if needed.
func (p *Path) LineTo(x, y float64) {
	if !finite(x, y) {
		return
	}
	pt := Point{x, y}
	if p.ensureSubpath(pt) {
		return
	}
	p.push(PathOp{Verb: LineTo, Pts: [3]Point{pt}})
}

// QuadTo adds a quadratic Bézier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !finite(cx, cy, x, y) {
		return
	}
	p.ensureSubpath(Point{cx, cy})
	p.push(PathOp{Verb: QuadTo, Pts: [3]Point{{cx, cy}, {x, y}}})
}

// CubicTo adds a cubic Bézier curve (bezierCurveTo).
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !finite(c1x, c1y, c2x, c2y, x, y) {
		return
	}
	p.ensureSubpath(Point{c1x, c1y})
	p.push(PathOp{Verb: CubicTo, Pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

// Close closes the current subpath. It is a no-op without an open subpath.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.push(PathOp{Verb: Close})
	p.open = false
	p.closed = true
}

// Rect adds a closed rectangle as a new subpath.
func (p *Path) Rect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Extend appends other's operations transformed by m. other is not modified.
func (p *Path) Extend(other *Path, m Matrix) {
	if !m.IsFinite() {
		return
	}
	p.appendOps(other.ops, m)
}

// Continue appends other's operations after its leading MoveTo, transformed
// by m, so that they extend the current subpath of p instead of starting a
// new one.
func (p *Path) Continue(other *Path, m Matrix) {
	if !m.IsFinite() {
		return
	}
	ops := other.ops
	if len(ops) > 0 && ops[0].Verb == MoveTo {
		ops = ops[1:]
	}
	if len(ops) > 0 && ops[0].Verb != MoveTo && !p.open {
		start := m.Apply(other.ops[0].Pts[0])
		p.ensureSubpath(start)
	}
	p.appendOps(ops, m)
}

func (p *Path) appendOps(ops []PathOp, m Matrix) {
	for _, op := range ops {
		n := op.Verb.NumPoints()
		for i := 0; i < n; i++ {
			op.Pts[i] = m.Apply(op.Pts[i])
		}
		p.ops = append(p.ops, op)
		switch op.Verb {
		case MoveTo:
			p.start = op.Pts[0]
			p.open = true
			p.closed = false
		case Close:
			p.open = false
			p.closed = true
		}
	}
}

// Transform returns a copy of the path with every point transformed by m.
func (p *Path) Transform(m Matrix) *Path {
	q := &Path{}
	q.Extend(p, m)
	return q
}

// Bounds returns the bounding box of all points, including control points.
func (p *Path) Bounds() Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, op := range p.ops {
		for i := 0; i < op.Verb.NumPoints(); i++ {
			pt := op.Pts[i]
			minX, minY = math.Min(minX, pt.X), math.Min(minY, pt.Y)
			maxX, maxY = math.Max(maxX, pt.X), math.Max(maxY, pt.Y)
		}
	}
	if minX > maxX {
		return Rect{}
	}
	return Rect{Min: Point{minX, minY}, Max: Point{maxX, maxY}}
}
