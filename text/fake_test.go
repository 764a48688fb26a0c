package text

import (
	"errors"
	"slices"

	"github.com/gogpu/canvas/geom"
)

// fakeFont is a 1000-unit font where every supported rune is a 500-unit
// wide glyph whose ink is the box (0,0)-(400,700). Spaces have no ink.
type fakeFont struct {
	runes   string
	metrics FontMetrics
	shaped  []ShapeInput
}

func newFakeFont(runes string) *fakeFont {
	return &fakeFont{
		runes:   runes,
		metrics: FontMetrics{Ascent: 800, Descent: 200, HasExtents: true},
	}
}

func (f *fakeFont) UnitsPerEm() float64  { return 1000 }
func (f *fakeFont) HasGlyph(r rune) bool { return slices.Contains([]rune(f.runes), r) }
func (f *fakeFont) Metrics() FontMetrics { return f.metrics }

func (f *fakeFont) Shape(in ShapeInput) []Glyph {
	f.shaped = append(f.shaped, in)
	var out []Glyph
	for i := in.Start; i < in.End; i++ {
		g := Glyph{ID: GlyphID(in.Text[i]), Cluster: i, Advance: 500 + in.LetterSpacing}
		if in.Text[i] == ' ' {
			g.Advance += in.WordSpacing
		}
		out = append(out, g)
	}
	if in.RTL {
		slices.Reverse(out)
	}
	return out
}

func (f *fakeFont) Outline(gid GlyphID, pen Pen) {
	if gid == ' ' {
		return
	}
	pen.MoveTo(0, 0)
	pen.LineTo(400, 0)
	pen.LineTo(400, 700)
	pen.LineTo(0, 700)
	pen.Close()
}

func (f *fakeFont) Extents(gid GlyphID) (geom.Rect, bool) {
	if gid == ' ' {
		return geom.Rect{}, false
	}
	return geom.Rect{Max: geom.Pt(400, 700)}, true
}

// fakeShaper decodes font data as the list of runes the font supports.
type fakeShaper struct{}

var errBadFont = errors.New("bad font")

func (fakeShaper) Parse(data []byte) (ShapingFont, error) {
	if string(data) == "garbage" {
		return nil, errBadFont
	}
	return newFakeFont(string(data)), nil
}

func fakeFace(family, runes string, opts ...FaceOption) *FontFace {
	return NewFontFace(family, []byte(runes), append([]FaceOption{WithFaceShaper(fakeShaper{})}, opts...)...)
}

const latin = " abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
