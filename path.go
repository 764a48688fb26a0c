package canvas

import (
	"errors"

	"github.com/gogpu/canvas/geom"
)

// The current default path is kept in device space: every call maps its
// points through the transform in effect at the time of the call.

// BeginPath empties the current path.
func (c *Canvas) BeginPath() { c.path.Reset() }

// Path returns a copy of the current path in device space.
func (c *Canvas) Path() *geom.Path { return c.path.Clone() }

// ClosePath closes the current subpath.
func (c *Canvas) ClosePath() { c.path.Close() }

func (c *Canvas) pt(x, y float64) (float64, float64) {
	p := c.state.transform.Apply(geom.Pt(x, y))
	return p.X, p.Y
}

// MoveTo starts a new subpath at (x, y).
func (c *Canvas) MoveTo(x, y float64) {
	if finite(x, y) {
		c.path.MoveTo(c.pt(x, y))
	}
}

// LineTo adds a line to (x, y).
func (c *Canvas) LineTo(x, y float64) {
	if finite(x, y) {
		c.path.LineTo(c.pt(x, y))
	}
}

// QuadraticCurveTo adds a quadratic Bézier curve.
func (c *Canvas) QuadraticCurveTo(cx, cy, x, y float64) {
	if !finite(cx, cy, x, y) {
		return
	}
	m := c.state.transform
	p1, p2 := m.Apply(geom.Pt(cx, cy)), m.Apply(geom.Pt(x, y))
	c.path.QuadTo(p1.X, p1.Y, p2.X, p2.Y)
}

// BezierCurveTo adds a cubic Bézier curve.
func (c *Canvas) BezierCurveTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !finite(c1x, c1y, c2x, c2y, x, y) {
		return
	}
	m := c.state.transform
	p1, p2, p3 := m.Apply(geom.Pt(c1x, c1y)), m.Apply(geom.Pt(c2x, c2y)), m.Apply(geom.Pt(x, y))
	c.path.CubicTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
}

// pathError converts geometry errors into RangeErrors.
func pathError(op string, err error) error {
	if errors.Is(err, geom.ErrNegativeRadius) || errors.Is(err, geom.ErrRadiiCount) {
		return &RangeError{Op: op, Reason: err.Error()}
	}
	return err
}

// continueUser builds geometry in user space, seeded with the current
// point, and appends it to the current subpath.
func (c *Canvas) continueUser(op string, build func(*geom.Path) error) error {
	m := c.state.transform
	scratch := geom.NewPath()
	if cur, ok := c.path.CurrentPoint(); ok {
		inv, ok := m.Invert()
		if !ok {
			return nil
		}
		u := inv.Apply(cur)
		scratch.MoveTo(u.X, u.Y)
	}
	if err := build(scratch); err != nil {
		return pathError(op, err)
	}
	c.path.Continue(scratch, m)
	return nil
}

// extendUser builds closed shapes in user space and appends them as new
// subpaths.
func (c *Canvas) extendUser(op string, build func(*geom.Path) error) error {
	scratch := geom.NewPath()
	if err := build(scratch); err != nil {
		return pathError(op, err)
	}
	c.path.Extend(scratch, c.state.transform)
	return nil
}

// Arc adds a circular arc around (x, y). A negative radius is a
// RangeError.
func (c *Canvas) Arc(x, y, r, start, end float64, ccw bool) error {
	return c.continueUser("arc", func(p *geom.Path) error {
		return p.Arc(x, y, r, start, end, ccw)
	})
}

// Ellipse adds an elliptical arc. Negative radii are a RangeError.
func (c *Canvas) Ellipse(x, y, rx, ry, rotation, start, end float64, ccw bool) error {
	return c.continueUser("ellipse", func(p *geom.Path) error {
		return p.Ellipse(x, y, rx, ry, rotation, start, end, ccw)
	})
}

// ArcTo adds an arc of radius r tangent to the lines through the current
// point, (x1, y1) and (x2, y2).
func (c *Canvas) ArcTo(x1, y1, x2, y2, r float64) error {
	return c.continueUser("arcTo", func(p *geom.Path) error {
		return p.ArcTo(x1, y1, x2, y2, r)
	})
}

// Rect adds a closed rectangle.
func (c *Canvas) Rect(x, y, w, h float64) {
	_ = c.extendUser("rect", func(p *geom.Path) error {
		p.Rect(x, y, w, h)
		return nil
	})
}

// RoundRect adds a rounded rectangle with 1 to 4 corner radii. No radii
// means square corners.
func (c *Canvas) RoundRect(x, y, w, h float64, radii ...geom.Radius) error {
	if len(radii) == 0 {
		radii = []geom.Radius{{}}
	}
	return c.extendUser("roundRect", func(p *geom.Path) error {
		return p.RoundRect(x, y, w, h, radii)
	})
}
