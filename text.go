package canvas

import (
	"math"

	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
	"github.com/gogpu/canvas/text"
)

// textPath shapes s with the current text state and returns its outline in
// user space with the anchor moved to (x, y).
func (c *Canvas) textPath(s string, x, y, maxWidth float64) *geom.Path {
	if !finite(x, y) || math.IsNaN(maxWidth) {
		return nil
	}
	p, _ := text.PrepareText(c.fonts, c.state.textStyle(), s, maxWidth)
	if p.IsEmpty() {
		return nil
	}
	return p.Transform(geom.Translate(x, y))
}

// FillText paints s with its anchor at (x, y) using the fill style.
func (c *Canvas) FillText(s string, x, y float64) {
	c.FillTextWidth(s, x, y, math.Inf(1))
}

// FillTextWidth is FillText with the rendered width limited to maxWidth.
// Wider text is compressed to fit.
func (c *Canvas) FillTextWidth(s string, x, y, maxWidth float64) {
	if p := c.textPath(s, x, y, maxWidth); p != nil {
		c.paint(p.Transform(c.state.transform), raster.NonZero, c.resolve(c.state.fill))
	}
}

// StrokeText outlines s with its anchor at (x, y) using the stroke style.
func (c *Canvas) StrokeText(s string, x, y float64) {
	c.StrokeTextWidth(s, x, y, math.Inf(1))
}

// StrokeTextWidth is StrokeText with the rendered width limited to
// maxWidth.
func (c *Canvas) StrokeTextWidth(s string, x, y, maxWidth float64) {
	if p := c.textPath(s, x, y, maxWidth); p != nil {
		c.strokeUser(p)
	}
}

// MeasureText returns the metrics s would have if drawn with the current
// text state. The transform does not apply.
func (c *Canvas) MeasureText(s string) text.Metrics {
	return text.MeasureText(c.fonts, c.state.textStyle(), s)
}
