package geom

import "math"

// DefaultTolerance is the flattening tolerance in device pixels.
const DefaultTolerance = 0.1

const maxFlattenDepth = 16

// Polyline is one flattened subpath.
type Polyline struct {
	Pts    []Point
	Closed bool
}

// Flatten converts the path into polylines whose distance from the curves
// stays within tolerance. Subpaths consisting of a single point are kept so
// strokes can draw caps for them.
func (p *Path) Flatten(tolerance float64) []Polyline {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	var out []Polyline
	var cur *Polyline
	var last Point
	for _, op := range p.ops {
		switch op.Verb {
		case MoveTo:
			out = append(out, Polyline{Pts: []Point{op.Pts[0]}})
			cur = &out[len(out)-1]
			last = op.Pts[0]
			continue
		case Close:
			if cur != nil {
				cur.Closed = true
				last = cur.Pts[0]
				cur = nil
			}
			continue
		}
		if cur == nil {
			out = append(out, Polyline{Pts: []Point{last}})
			cur = &out[len(out)-1]
		}
		switch op.Verb {
		case LineTo:
			cur.Pts = append(cur.Pts, op.Pts[0])
		case QuadTo:
			cur.Pts = flattenQuad(cur.Pts, last, op.Pts[0], op.Pts[1], tolerance, 0)
		case CubicTo:
			cur.Pts = flattenCubic(cur.Pts, last, op.Pts[0], op.Pts[1], op.Pts[2], tolerance, 0)
		}
		last = op.End()
	}
	return out
}

func flattenQuad(pts []Point, p0, p1, p2 Point, tol float64, depth int) []Point {
	if depth >= maxFlattenDepth || distanceToSegment(p1, p0, p2) < tol {
		return append(pts, p2)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)
	pts = flattenQuad(pts, p0, q0, q2, tol, depth+1)
	return flattenQuad(pts, q2, q1, p2, tol, depth+1)
}

func flattenCubic(pts []Point, p0, p1, p2, p3 Point, tol float64, depth int) []Point {
	d := math.Max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3))
	if depth >= maxFlattenDepth || d < tol {
		return append(pts, p3)
	}
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)
	pts = flattenCubic(pts, p0, q0, r0, s, tol, depth+1)
	return flattenCubic(pts, s, r1, q2, p3, tol, depth+1)
}

// distanceToSegment returns the distance from p to the segment ab.
func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-20 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

// Winding returns the winding number of the flattened path around pt.
// Every subpath is treated as closed.
func (p *Path) Winding(pt Point, tolerance float64) int {
	w := 0
	for _, line := range p.Flatten(tolerance) {
		n := len(line.Pts)
		for i := 0; i < n; i++ {
			a, b := line.Pts[i], line.Pts[(i+1)%n]
			switch {
			case a.Y <= pt.Y && b.Y > pt.Y:
				if b.Sub(a).Cross(pt.Sub(a)) > 0 {
					w++
				}
			case a.Y > pt.Y && b.Y <= pt.Y:
				if b.Sub(a).Cross(pt.Sub(a)) < 0 {
					w--
				}
			}
		}
	}
	return w
}
