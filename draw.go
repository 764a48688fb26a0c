package canvas

import (
	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
)

func (c *Canvas) rectPath(x, y, w, h float64) *geom.Path {
	p := geom.NewPath()
	p.Rect(x, y, w, h)
	return p.Transform(c.state.transform)
}

// FillRect paints a rectangle with the fill style. The current path is
// left alone.
func (c *Canvas) FillRect(x, y, w, h float64) {
	if !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	c.paint(c.rectPath(x, y, w, h), raster.NonZero, c.resolve(c.state.fill))
}

// StrokeRect outlines a rectangle with the stroke style.
func (c *Canvas) StrokeRect(x, y, w, h float64) {
	if !finite(x, y, w, h) {
		return
	}
	p := geom.NewPath()
	p.Rect(x, y, w, h)
	c.strokeUser(p)
}

// ClearRect erases a rectangle to transparent black, or to opaque black on
// a canvas without alpha. Only the transform and the clip apply.
func (c *Canvas) ClearRect(x, y, w, h float64) {
	if !finite(x, y, w, h) || w == 0 || h == 0 {
		return
	}
	c.backend.Fill(c.target, c.rectPath(x, y, w, h), raster.NonZero, eraser, raster.DstOut, 1)
}

// Fill paints the current path with the fill style.
func (c *Canvas) Fill(rule raster.FillRule) {
	c.paint(c.path, rule, c.resolve(c.state.fill))
}

// FillPath paints p, given in user space, with the fill style.
func (c *Canvas) FillPath(p *geom.Path, rule raster.FillRule) {
	c.paint(p.Transform(c.state.transform), rule, c.resolve(c.state.fill))
}

// Stroke outlines the current path with the stroke style.
func (c *Canvas) Stroke() {
	inv, ok := c.state.transform.Invert()
	if !ok {
		return
	}
	c.strokeUser(c.path.Transform(inv))
}

// StrokePath outlines p, given in user space, with the stroke style.
func (c *Canvas) StrokePath(p *geom.Path) {
	c.strokeUser(p)
}

// strokeOutline expands a user-space path into the device-space fill path
// of its stroke.
func (c *Canvas) strokeOutline(user *geom.Path) *geom.Path {
	st := c.state.strokeStyle()
	if !(st.Width > 0) || user.IsEmpty() {
		return nil
	}
	st.Tolerance = c.tolerance()
	return c.backend.Stroke(user, st).Transform(c.state.transform)
}

func (c *Canvas) strokeUser(user *geom.Path) {
	if outline := c.strokeOutline(user); outline != nil {
		c.paint(outline, raster.NonZero, c.resolve(c.state.stroke))
	}
}

// Clip intersects the clip region with the current path.
func (c *Canvas) Clip(rule raster.FillRule) {
	c.pushClip(c.path, rule)
}

// ClipPath intersects the clip region with p, given in user space.
func (c *Canvas) ClipPath(p *geom.Path, rule raster.FillRule) {
	c.pushClip(p.Transform(c.state.transform), rule)
}

func (c *Canvas) pushClip(device *geom.Path, rule raster.FillRule) {
	c.backend.PushClip(c.target, device, rule)
	c.state.clipDepth++
}

func contains(device *geom.Path, x, y float64, rule raster.FillRule) bool {
	if !finite(x, y) {
		return false
	}
	w := device.Winding(geom.Pt(x, y), geom.DefaultTolerance)
	if rule == raster.EvenOdd {
		return w%2 != 0
	}
	return w != 0
}

// IsPointInPath reports whether the canvas point (x, y) is inside the
// current path. The transform does not apply to the point.
func (c *Canvas) IsPointInPath(x, y float64, rule raster.FillRule) bool {
	return contains(c.path, x, y, rule)
}

// IsPointInPathOf is IsPointInPath for p, given in user space.
func (c *Canvas) IsPointInPathOf(p *geom.Path, x, y float64, rule raster.FillRule) bool {
	return contains(p.Transform(c.state.transform), x, y, rule)
}

// IsPointInStroke reports whether the canvas point (x, y) is inside the
// stroke of the current path with the current line style.
func (c *Canvas) IsPointInStroke(x, y float64) bool {
	inv, ok := c.state.transform.Invert()
	if !ok {
		return false
	}
	return c.IsPointInStrokeOf(c.path.Transform(inv), x, y)
}

// IsPointInStrokeOf is IsPointInStroke for p, given in user space.
func (c *Canvas) IsPointInStrokeOf(p *geom.Path, x, y float64) bool {
	outline := c.strokeOutline(p)
	return outline != nil && contains(outline, x, y, raster.NonZero)
}
