package text

import "github.com/gogpu/canvas/geom"

// GlyphID identifies a glyph within a font.
type GlyphID uint32

// Shaper decodes font data into fonts that can shape text.
type Shaper interface {
	Parse(data []byte) (ShapingFont, error)
}

// ShapingFont is a decoded font. All lengths it reports are in font units
// with y growing upwards, as stored in the font.
type ShapingFont interface {
	// UnitsPerEm returns the size of the em square in font units.
	UnitsPerEm() float64
	// HasGlyph reports whether the font maps r to a real glyph.
	HasGlyph(r rune) bool
	// Metrics returns the font-wide vertical metrics.
	Metrics() FontMetrics
	// Shape shapes in.Text[in.Start:in.End] and returns the glyphs in
	// visual order.
	Shape(in ShapeInput) []Glyph
	// Outline replays the outline of gid into pen.
	Outline(gid GlyphID, pen Pen)
	// Extents returns the ink box of gid, false when it has no ink.
	Extents(gid GlyphID) (geom.Rect, bool)
}

// Feature toggles an OpenType feature for a whole run.
type Feature struct {
	Tag   string
	Value uint32
}

// ShapeInput is one run handed to ShapingFont.Shape.
type ShapeInput struct {
	// Text is the full paragraph; only Text[Start:End] is shaped, the rest
	// is context.
	Text       []rune
	Start, End int
	RTL        bool
	Features   []Feature
	// Letter and word spacing in font units.
	LetterSpacing float64
	WordSpacing   float64
}

// Glyph is a shaped glyph in font units.
type Glyph struct {
	ID GlyphID
	// Cluster is the index in ShapeInput.Text of the first rune the glyph
	// was shaped from.
	Cluster          int
	Advance          float64
	XOffset, YOffset float64
}

// FontMetrics are the font-wide metrics in font units. Descent is a
// positive distance below the baseline. The Has fields report which
// values the font actually provides.
type FontMetrics struct {
	Ascent, Descent float64
	HasExtents      bool

	TypoAscent, TypoDescent float64
	HasTypo                 bool

	Hanging, Ideographic       float64
	HasHanging, HasIdeographic bool
}

// Pen receives glyph outlines, one call per outline segment.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadTo(cx, cy, x, y float64)
	CubicTo(c1x, c1y, c2x, c2y, x, y float64)
	Close()
}

// pathPen maps font-unit outlines into a path: it scales by scale, flips y
// and translates the origin to (x, y).
type pathPen struct {
	path  *geom.Path
	scale float64
	x, y  float64
	open  bool
}

func (p *pathPen) pt(x, y float64) (float64, float64) {
	return p.x + x*p.scale, p.y - y*p.scale
}

func (p *pathPen) MoveTo(x, y float64) {
	if p.open {
		p.path.Close()
	}
	p.path.MoveTo(p.pt(x, y))
	p.open = true
}

func (p *pathPen) LineTo(x, y float64) { p.path.LineTo(p.pt(x, y)) }

func (p *pathPen) QuadTo(cx, cy, x, y float64) {
	qx, qy := p.pt(cx, cy)
	ex, ey := p.pt(x, y)
	p.path.QuadTo(qx, qy, ex, ey)
}

func (p *pathPen) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	ax, ay := p.pt(c1x, c1y)
	bx, by := p.pt(c2x, c2y)
	ex, ey := p.pt(x, y)
	p.path.CubicTo(ax, ay, bx, by, ex, ey)
}

func (p *pathPen) Close() {
	if p.open {
		p.path.Close()
		p.open = false
	}
}
