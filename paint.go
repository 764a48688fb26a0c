package canvas

import (
	"image"
	"math"

	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/internal/filter"
	"github.com/gogpu/canvas/raster"
)

// eraser removes destination coverage when drawn with DstOut.
var eraser = raster.Solid{Color: 0xffffffff}

// resolve turns a style into a rasterizer paint under the current
// transform. It returns nil for styles that paint nothing.
func (c *Canvas) resolve(s Style) raster.Paint {
	switch s := s.(type) {
	case SolidStyle:
		return raster.Solid{Color: s.Color.ToPixel(c.space)}
	case *Gradient:
		return s.paint(c.state.transform, c.space)
	case *Pattern:
		return s.paint(c.state.transform, c.space, c.state.smoothing)
	}
	return nil
}

// transformPaint returns p with m applied after its own transform.
func transformPaint(p raster.Paint, m geom.Matrix) raster.Paint {
	switch p := p.(type) {
	case raster.LinearGradient:
		p.Transform = m.Mul(p.Transform)
		return p
	case raster.RadialGradient:
		p.Transform = m.Mul(p.Transform)
		return p
	case raster.SweepGradient:
		p.Transform = m.Mul(p.Transform)
		return p
	case raster.ImagePattern:
		p.Transform = m.Mul(p.Transform)
		return p
	}
	return p
}

// paint draws device-space geometry filled with p through the filter,
// shadow and compositing stages of the current state.
func (c *Canvas) paint(path *geom.Path, rule raster.FillRule, p raster.Paint) {
	st := &c.state
	if st.composite == Clear {
		c.clearAll()
		return
	}
	mode := st.composite.BlendMode(c.alpha)
	f := filter.Compile(st.filters, float32(st.globalAlpha), c.space)
	f.Parallel = c.parallel
	if f.IsPaintOnly() {
		alpha := f.Alpha()
		if st.hasShadow() {
			c.drawShadow(path, rule, p, mode, alpha)
		}
		c.backend.Fill(c.target, path, rule, p, mode, alpha)
		return
	}

	ov := f.Overflow()
	r := c.layerRect(path.Bounds(), image.Rect(0, 0, c.width, c.height).Inset(-ov), ov)
	Logger().Debug("canvas: filtered paint", "instructions", len(f.Instructions), "overflow", ov, "layer", r)
	layer := raster.NewTarget(r.Dx(), r.Dy())
	shift := geom.Translate(float64(-r.Min.X), float64(-r.Min.Y))
	c.backend.Fill(layer, path.Transform(shift), rule, transformPaint(p, shift), raster.SrcOver, 1)
	f.Apply(layer)
	if st.hasShadow() {
		c.castShadow(layer, r.Min, mode, 1)
	}
	c.backend.Composite(c.target, layer, layer.Bounds(), r.Min, mode, 1, nil)
}

// layerRect returns the pixel rectangle covering b grown by pad, limited
// to lim.
func (c *Canvas) layerRect(b geom.Rect, lim image.Rectangle, pad int) image.Rectangle {
	if b.Empty() || !b.Min.IsFinite() || !b.Max.IsFinite() {
		return image.Rectangle{}
	}
	clampX := func(v float64) int { return int(min(max(v, float64(lim.Min.X)), float64(lim.Max.X))) }
	clampY := func(v float64) int { return int(min(max(v, float64(lim.Min.Y)), float64(lim.Max.Y))) }
	r := image.Rect(
		clampX(math.Floor(b.Min.X)), clampY(math.Floor(b.Min.Y)),
		clampX(math.Ceil(b.Max.X)), clampY(math.Ceil(b.Max.Y)),
	)
	return r.Inset(-pad).Intersect(lim)
}

func (c *Canvas) shadowParams() (sigma float64, pad, dx, dy int) {
	st := &c.state
	sigma = st.shadowBlur / 2
	return sigma, filter.KernelRadius(sigma), int(math.Round(st.shadowOffsetX)), int(math.Round(st.shadowOffsetY))
}

// drawShadow renders the shadow of unfiltered geometry.
func (c *Canvas) drawShadow(path *geom.Path, rule raster.FillRule, p raster.Paint, mode raster.BlendMode, alpha float32) {
	if p == nil {
		return
	}
	_, pad, dx, dy := c.shadowParams()
	// Only geometry whose shadow can land on the canvas matters.
	lim := image.Rect(0, 0, c.width, c.height).Sub(image.Pt(dx, dy)).Inset(-pad)
	r := c.layerRect(path.Bounds(), lim, 0)
	if r.Empty() {
		return
	}
	layer := raster.NewTarget(r.Dx(), r.Dy())
	shift := geom.Translate(float64(-r.Min.X), float64(-r.Min.Y))
	c.backend.Fill(layer, path.Transform(shift), rule, transformPaint(p, shift), raster.SrcOver, 1)
	c.castShadow(layer, r.Min, mode, alpha)
}

// castShadow composites the shadow of src, whose top-left pixel sits at
// origin on the canvas.
func (c *Canvas) castShadow(src *raster.Target, origin image.Point, mode raster.BlendMode, alpha float32) {
	sigma, pad, dx, dy := c.shadowParams()
	sh := raster.NewTarget(src.Width+2*pad, src.Height+2*pad)
	for y := range src.Height {
		copy(sh.Pix[(y+pad)*sh.Stride+pad:], src.Row(y))
	}
	f := filter.ShadowFilter(c.state.shadowColor.ToPixel(c.space), sigma)
	f.Parallel = c.parallel
	f.Apply(sh)
	at := origin.Add(image.Pt(dx-pad, dy-pad))
	c.backend.Composite(c.target, sh, sh.Bounds(), at, mode, alpha, nil)
}

// clearAll clears every pixel inside the clip. Opaque canvases become
// black.
func (c *Canvas) clearAll() {
	full := geom.NewPath()
	full.Rect(0, 0, float64(c.width), float64(c.height))
	c.backend.Fill(c.target, full, raster.NonZero, eraser, raster.DstOut, 1)
}
