package canvas

import (
	"slices"
	"strings"

	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/internal/css"
	"github.com/gogpu/canvas/internal/filter"
	"github.com/gogpu/canvas/raster"
	"github.com/gogpu/canvas/text"
)

func ignored(attr string, err error) error {
	Logger().Warn("canvas: ignoring invalid value", "attribute", attr, "err", err)
	return err
}

// SetFillStyle sets the fill paint. nil is ignored.
func (c *Canvas) SetFillStyle(s Style) {
	if s != nil {
		c.state.fill = s
	}
}

// SetFillStyleString parses a CSS color and makes it the fill paint. On
// error the fill style is unchanged.
func (c *Canvas) SetFillStyleString(src string) error {
	col, err := color.Parse(src)
	if err != nil {
		return ignored("fillStyle", err)
	}
	c.state.fill = SolidStyle{color.Resolve(col)}
	return nil
}

// FillStyle returns the fill paint.
func (c *Canvas) FillStyle() Style { return c.state.fill }

// SetStrokeStyle sets the stroke paint. nil is ignored.
func (c *Canvas) SetStrokeStyle(s Style) {
	if s != nil {
		c.state.stroke = s
	}
}

// SetStrokeStyleString parses a CSS color and makes it the stroke paint.
func (c *Canvas) SetStrokeStyleString(src string) error {
	col, err := color.Parse(src)
	if err != nil {
		return ignored("strokeStyle", err)
	}
	c.state.stroke = SolidStyle{color.Resolve(col)}
	return nil
}

// StrokeStyle returns the stroke paint.
func (c *Canvas) StrokeStyle() Style { return c.state.stroke }

// SetLineWidth sets the stroke width. Zero, negative and non-finite
// widths are ignored.
func (c *Canvas) SetLineWidth(w float64) {
	if finite(w) && w > 0 {
		c.state.lineWidth = w
	}
}

func (c *Canvas) LineWidth() float64 { return c.state.lineWidth }

func (c *Canvas) SetLineCap(v raster.LineCap) { c.state.lineCap = v }

func (c *Canvas) LineCap() raster.LineCap { return c.state.lineCap }

func (c *Canvas) SetLineJoin(v raster.LineJoin) { c.state.lineJoin = v }

func (c *Canvas) LineJoin() raster.LineJoin { return c.state.lineJoin }

// SetMiterLimit sets the miter limit. Values that are not positive and
// finite are ignored.
func (c *Canvas) SetMiterLimit(v float64) {
	if finite(v) && v > 0 {
		c.state.miterLimit = v
	}
}

func (c *Canvas) MiterLimit() float64 { return c.state.miterLimit }

// SetLineDash sets the dash pattern. Lists with a negative or non-finite
// entry are ignored; odd-length lists are repeated to even length.
func (c *Canvas) SetLineDash(segments []float64) {
	for _, v := range segments {
		if !finite(v) || v < 0 {
			return
		}
	}
	d := slices.Clone(segments)
	if len(d)%2 == 1 {
		d = append(d, d...)
	}
	c.state.dash = d
}

// LineDash returns a copy of the dash pattern.
func (c *Canvas) LineDash() []float64 { return slices.Clone(c.state.dash) }

func (c *Canvas) SetLineDashOffset(v float64) {
	if finite(v) {
		c.state.dashOffset = v
	}
}

func (c *Canvas) LineDashOffset() float64 { return c.state.dashOffset }

// SetGlobalAlpha sets the alpha applied to every drawing. Values outside
// [0, 1] are ignored.
func (c *Canvas) SetGlobalAlpha(a float64) {
	if a >= 0 && a <= 1 {
		c.state.globalAlpha = a
	}
}

func (c *Canvas) GlobalAlpha() float64 { return c.state.globalAlpha }

// SetGlobalCompositeOperation sets how drawings combine with the canvas.
func (c *Canvas) SetGlobalCompositeOperation(op CompositeOperation) {
	if int(op) < NumCompositeOperations {
		c.state.composite = op
	}
}

func (c *Canvas) GlobalCompositeOperation() CompositeOperation { return c.state.composite }

func (c *Canvas) SetImageSmoothingEnabled(v bool) { c.state.smoothing = v }

func (c *Canvas) ImageSmoothingEnabled() bool { return c.state.smoothing }

// SetImageSmoothingQuality selects the scaler used while smoothing is
// enabled. Pixelated is not a smoothing quality and is ignored.
func (c *Canvas) SetImageSmoothingQuality(q bitmap.Quality) {
	if q >= bitmap.Low && q <= bitmap.High {
		c.state.quality = q
	}
}

func (c *Canvas) ImageSmoothingQuality() bitmap.Quality { return c.state.quality }

// SetShadowColor parses a CSS color for shadows. currentcolor is black.
func (c *Canvas) SetShadowColor(src string) error {
	col, err := color.Parse(src)
	if err != nil {
		return ignored("shadowColor", err)
	}
	c.state.shadowColor = color.Resolve(col)
	return nil
}

// ShadowColor returns the serialized shadow color.
func (c *Canvas) ShadowColor() string { return c.state.shadowColor.String() }

func (c *Canvas) SetShadowOffsetX(v float64) {
	if finite(v) {
		c.state.shadowOffsetX = v
	}
}

func (c *Canvas) ShadowOffsetX() float64 { return c.state.shadowOffsetX }

func (c *Canvas) SetShadowOffsetY(v float64) {
	if finite(v) {
		c.state.shadowOffsetY = v
	}
}

func (c *Canvas) ShadowOffsetY() float64 { return c.state.shadowOffsetY }

// SetShadowBlur sets the shadow blur radius. Negative and non-finite
// values are ignored.
func (c *Canvas) SetShadowBlur(v float64) {
	if finite(v) && v >= 0 {
		c.state.shadowBlur = v
	}
}

func (c *Canvas) ShadowBlur() float64 { return c.state.shadowBlur }

// SetFilter parses a CSS filter list such as "blur(2px) sepia(50%)".
func (c *Canvas) SetFilter(src string) error {
	funcs, err := filter.Parse(src)
	if err != nil {
		return ignored("filter", err)
	}
	c.state.filters = funcs
	c.state.filterText = filter.Format(funcs)
	return nil
}

// Filter returns the serialized filter list, "none" when empty.
func (c *Canvas) Filter() string { return c.state.filterText }

// SetFont parses a CSS font shorthand such as "bold 16px serif".
func (c *Canvas) SetFont(src string) error {
	f, err := text.ParseFont(src)
	if err != nil {
		return ignored("font", err)
	}
	c.state.font = f
	return nil
}

// Font returns the serialized font shorthand.
func (c *Canvas) Font() string { return c.state.font.String() }

func (c *Canvas) SetTextAlign(a text.TextAlign) { c.state.textAlign = a }

func (c *Canvas) TextAlign() text.TextAlign { return c.state.textAlign }

func (c *Canvas) SetTextBaseline(b text.TextBaseline) { c.state.textBaseline = b }

func (c *Canvas) TextBaseline() text.TextBaseline { return c.state.textBaseline }

func (c *Canvas) SetDirection(d text.Direction) { c.state.direction = d }

func (c *Canvas) Direction() text.Direction { return c.state.direction }

func (c *Canvas) SetFontKerning(k text.Kerning) { c.state.kerning = k }

func (c *Canvas) FontKerning() text.Kerning { return c.state.kerning }

// parseSpacing parses a letter-spacing or word-spacing length. em is
// relative to the current font size.
func (c *Canvas) parseSpacing(src string) (spacing, error) {
	cur := css.NewCursor(src, css.KindLength)
	var px float64
	if v, unit, ok := cur.Peek().Numeric(); ok && strings.EqualFold(unit, "em") {
		cur.Next()
		px = v * c.state.font.Size
	} else {
		var err error
		if px, err = cur.Length(); err != nil {
			return spacing{}, err
		}
	}
	if err := cur.ExpectDone(); err != nil {
		return spacing{}, err
	}
	return spacing{px: px, text: strings.TrimSpace(src)}, nil
}

// SetLetterSpacing parses a CSS length added between characters.
func (c *Canvas) SetLetterSpacing(src string) error {
	s, err := c.parseSpacing(src)
	if err != nil {
		return ignored("letterSpacing", err)
	}
	c.state.letterSpacing = s
	return nil
}

func (c *Canvas) LetterSpacing() string { return c.state.letterSpacing.text }

// SetWordSpacing parses a CSS length added to every space.
func (c *Canvas) SetWordSpacing(src string) error {
	s, err := c.parseSpacing(src)
	if err != nil {
		return ignored("wordSpacing", err)
	}
	c.state.wordSpacing = s
	return nil
}

func (c *Canvas) WordSpacing() string { return c.state.wordSpacing.text }
