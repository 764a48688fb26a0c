package geom

import "math"

// maxArcSegment bounds the angle one quadratic Bézier approximates.
const maxArcSegment = math.Pi / 4

// ellipsePoint returns the point at angle t on an ellipse centered on c
// with radii rx, ry rotated by rot.
func ellipsePoint(c Point, rx, ry, sinRot, cosRot, t float64) Point {
	s, co := math.Sincos(t)
	x, y := rx*co, ry*s
	return Point{c.X + x*cosRot - y*sinRot, c.Y + x*sinRot + y*cosRot}
}

// appendArc connects the current subpath to the arc start and emits the
// arc as quadratic Béziers, each covering at most maxArcSegment. An empty
// path is opened with a MoveTo at the arc start instead.
func (p *Path) appendArc(c Point, rx, ry, rot, start, sweep float64) {
	sinRot, cosRot := math.Sincos(rot)
	p0 := ellipsePoint(c, rx, ry, sinRot, cosRot, start)
	if len(p.ops) == 0 {
		p.MoveTo(p0.X, p0.Y)
	} else {
		p.LineTo(p0.X, p0.Y)
	}
	if sweep == 0 || rx == 0 || ry == 0 {
		if end := ellipsePoint(c, rx, ry, sinRot, cosRot, start+sweep); end != p0 {
			p.LineTo(end.X, end.Y)
		}
		return
	}
	n := int(math.Ceil(math.Abs(sweep)/maxArcSegment - 1e-9))
	if n < 1 {
		n = 1
	}
	step := sweep / float64(n)
	// The control point is the intersection of the tangents at both ends of
	// a circular segment, mapped onto the ellipse.
	k := 1 / math.Cos(step/2)
	t := start
	for i := 0; i < n; i++ {
		mid := t + step/2
		s, co := math.Sincos(mid)
		x, y := rx*co*k, ry*s*k
		ctrl := Point{c.X + x*cosRot - y*sinRot, c.Y + x*sinRot + y*cosRot}
		t += step
		end := ellipsePoint(c, rx, ry, sinRot, cosRot, t)
		p.push(PathOp{Verb: QuadTo, Pts: [3]Point{ctrl, end}})
	}
}

// normalizeSweep returns the signed sweep from start to end: in [0, 2π]
// for clockwise arcs and in [-2π, 0] for counter-clockwise ones.
func normalizeSweep(start, end float64, ccw bool) float64 {
	dir := 1.0
	if ccw {
		dir = -1
	}
	sweep := (end - start) * dir
	if sweep >= 2*math.Pi {
		return 2 * math.Pi * dir
	}
	sweep = math.Mod(sweep, 2*math.Pi)
	if sweep < 0 {
		sweep += 2 * math.Pi
	}
	return sweep * dir
}

// Arc adds a circular arc (arc). Angles are in radians.
func (p *Path) Arc(x, y, r, start, end float64, ccw bool) error {
	return p.Ellipse(x, y, r, r, 0, start, end, ccw)
}

// Ellipse adds an elliptical arc (ellipse).
func (p *Path) Ellipse(x, y, rx, ry, rot, start, end float64, ccw bool) error {
	if !finite(x, y, rx, ry, rot, start, end) {
		return nil
	}
	if rx < 0 || ry < 0 {
		return ErrNegativeRadius
	}
	p.appendArc(Point{x, y}, rx, ry, rot, start, normalizeSweep(start, end, ccw))
	return nil
}

// ArcTo adds an arc of radius r tangent to the line from the current point
// to (x1, y1) and to the line from (x1, y1) to (x2, y2).
func (p *Path) ArcTo(x1, y1, x2, y2, r float64) error {
	if !finite(x1, y1, x2, y2, r) {
		return nil
	}
	if r < 0 {
		return ErrNegativeRadius
	}
	p1, p2 := Point{x1, y1}, Point{x2, y2}
	p0, ok := p.CurrentPoint()
	if !ok {
		p.MoveTo(x1, y1)
		p0 = p1
	}
	if p0 == p1 || p1 == p2 || r == 0 {
		p.LineTo(x1, y1)
		return nil
	}
	a := p1.Sub(p0).Normalize()
	b := p2.Sub(p1).Normalize()
	cross := a.Cross(b)
	if cross == 0 {
		p.LineTo(x1, y1)
		return nil
	}
	cos := a.Dot(b)
	center := p1.Add(b.Sub(a).Mul(r / math.Sqrt(1-cos*cos)))
	// Tangent points are the feet of the center on both lines.
	t0 := p1.Add(a.Mul(center.Sub(p1).Dot(a)))
	t1 := p1.Add(b.Mul(center.Sub(p1).Dot(b)))
	start := math.Atan2(t0.Y-center.Y, t0.X-center.X)
	end := math.Atan2(t1.Y-center.Y, t1.X-center.X)
	sweep := end - start
	if cross > 0 {
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
	} else {
		for sweep > 0 {
			sweep -= 2 * math.Pi
		}
	}
	p.appendArc(center, r, r, 0, start, sweep)
	return nil
}

// Radius is a corner radius of a rounded rectangle.
type Radius struct {
	X, Y float64
}

// Uniform returns a circular corner radius.
func Uniform(r float64) Radius { return Radius{r, r} }

// RoundRect adds a rounded rectangle. radii holds 1 to 4 corner radii in
// the CSS shorthand order (top-left, top-right, bottom-right, bottom-left).
// After closing the rectangle a new subpath is opened at (x, y).
func (p *Path) RoundRect(x, y, w, h float64, radii []Radius) error {
	if !finite(x, y, w, h) {
		return nil
	}
	if len(radii) < 1 || len(radii) > 4 {
		return ErrRadiiCount
	}
	for _, r := range radii {
		if !finite(r.X, r.Y) {
			return nil
		}
		if r.X < 0 || r.Y < 0 {
			return ErrNegativeRadius
		}
	}
	var tl, tr, br, bl Radius
	switch len(radii) {
	case 1:
		tl, tr, br, bl = radii[0], radii[0], radii[0], radii[0]
	case 2:
		tl, tr, br, bl = radii[0], radii[1], radii[0], radii[1]
	case 3:
		tl, tr, br, bl = radii[0], radii[1], radii[2], radii[1]
	default:
		tl, tr, br, bl = radii[0], radii[1], radii[2], radii[3]
	}
	ox, oy := x, y
	if w < 0 {
		x, w = x+w, -w
		tl, tr = tr, tl
		bl, br = br, bl
	}
	if h < 0 {
		y, h = y+h, -h
		tl, bl = bl, tl
		tr, br = br, tr
	}
	scale := 1.0
	for _, f := range []float64{
		w / (tl.X + tr.X), h / (tr.Y + br.Y),
		w / (br.X + bl.X), h / (tl.Y + bl.Y),
	} {
		if !math.IsNaN(f) && f < scale {
			scale = f
		}
	}
	if scale < 1 {
		for _, r := range []*Radius{&tl, &tr, &br, &bl} {
			r.X *= scale
			r.Y *= scale
		}
	}

	p.MoveTo(x+tl.X, y)
	p.appendArc(Point{x + w - tr.X, y + tr.Y}, tr.X, tr.Y, 0, -math.Pi/2, math.Pi/2)
	p.appendArc(Point{x + w - br.X, y + h - br.Y}, br.X, br.Y, 0, 0, math.Pi/2)
	p.appendArc(Point{x + bl.X, y + h - bl.Y}, bl.X, bl.Y, 0, math.Pi/2, math.Pi/2)
	p.appendArc(Point{x + tl.X, y + tl.Y}, tl.X, tl.Y, 0, math.Pi, math.Pi/2)
	p.Close()
	p.MoveTo(ox, oy)
	return nil
}
