package text

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/canvas/geom"
)

// GoTextShaper shapes with go-text/typesetting's HarfBuzz port.
//
// GoTextShaper is safe for concurrent use. Parsed font.Font values are
// read-only and shared; a font.Face is created per Shape call because
// font.Face is not safe for concurrent use. HarfbuzzShaper instances are
// pooled since they carry mutable buffers.
type GoTextShaper struct {
	shaperPool sync.Pool
}

// NewGoTextShaper creates a GoTextShaper.
func NewGoTextShaper() *GoTextShaper {
	return &GoTextShaper{
		shaperPool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

var (
	defaultShaperOnce sync.Once
	defaultShaper     *GoTextShaper
)

// DefaultShaper returns the process-wide GoTextShaper used by faces that
// were not given a Shaper.
func DefaultShaper() Shaper {
	defaultShaperOnce.Do(func() { defaultShaper = NewGoTextShaper() })
	return defaultShaper
}

// Parse implements Shaper.
func (s *GoTextShaper) Parse(data []byte) (ShapingFont, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	ld, err := ot.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	f, err := font.NewFont(ld)
	if err != nil {
		return nil, err
	}
	gf := &goTextFont{shaper: s, font: f}
	gf.metrics = gf.loadMetrics(ld)
	return gf, nil
}

type goTextFont struct {
	shaper  *GoTextShaper
	font    *font.Font
	metrics FontMetrics

	// face serves the read-only queries: extents and outlines.
	mu   sync.Mutex
	face *font.Face
}

func (f *goTextFont) loadMetrics(ld *ot.Loader) FontMetrics {
	var m FontMetrics
	face := font.NewFace(f.font)
	if ext, ok := face.FontHExtents(); ok {
		m.Ascent, m.Descent, m.HasExtents = float64(ext.Ascender), -float64(ext.Descender), true
	}
	if raw, err := ld.RawTable(ot.MustNewTag("OS/2")); err == nil {
		if os2, _, err := tables.ParseOs2(raw); err == nil && os2.STypoAscender != os2.STypoDescender {
			m.TypoAscent = float64(os2.STypoAscender)
			m.TypoDescent = -float64(os2.STypoDescender)
			m.HasTypo = true
		}
	}
	f.face = face
	return m
}

func (f *goTextFont) UnitsPerEm() float64 { return float64(f.font.Upem()) }

func (f *goTextFont) HasGlyph(r rune) bool {
	gid, ok := f.font.NominalGlyph(r)
	return ok && gid != 0
}

func (f *goTextFont) Metrics() FontMetrics { return f.metrics }

// Shape implements ShapingFont. The run is shaped at a size of one em in
// font units so that advances and offsets come out in font units.
func (f *goTextFont) Shape(in ShapeInput) []Glyph {
	if in.Start >= in.End {
		return nil
	}
	dir := di.DirectionLTR
	if in.RTL {
		dir = di.DirectionRTL
	}
	input := shaping.Input{
		Text:      in.Text,
		RunStart:  in.Start,
		RunEnd:    in.End,
		Direction: dir,
		Face:      font.NewFace(f.font),
		Size:      floatToFixed(f.UnitsPerEm()),
		Script:    detectScript(in.Text[in.Start:in.End]),
		Language:  language.NewLanguage("en"),
	}
	for _, ft := range in.Features {
		if len(ft.Tag) != 4 {
			continue
		}
		input.FontFeatures = append(input.FontFeatures, shaping.FontFeature{Tag: ot.MustNewTag(ft.Tag), Value: ft.Value})
	}

	hb := f.shaper.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	f.shaper.shaperPool.Put(hb)

	if in.LetterSpacing != 0 {
		out.AddLetterSpacing(floatToFixed(in.LetterSpacing), false, false)
	}
	if in.WordSpacing != 0 {
		out.AddWordSpacing(in.Text, floatToFixed(in.WordSpacing))
	}
	return convertGlyphs(out.Glyphs)
}

func (f *goTextFont) Outline(gid GlyphID, pen Pen) {
	f.mu.Lock()
	outline, ok := f.face.GlyphDataOutline(tables.GlyphID(gid))
	f.mu.Unlock()
	if !ok {
		return
	}
	for _, seg := range outline.Segments {
		a := seg.Args
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			pen.MoveTo(float64(a[0].X), float64(a[0].Y))
		case ot.SegmentOpLineTo:
			pen.LineTo(float64(a[0].X), float64(a[0].Y))
		case ot.SegmentOpQuadTo:
			pen.QuadTo(float64(a[0].X), float64(a[0].Y), float64(a[1].X), float64(a[1].Y))
		case ot.SegmentOpCubeTo:
			pen.CubicTo(float64(a[0].X), float64(a[0].Y), float64(a[1].X), float64(a[1].Y), float64(a[2].X), float64(a[2].Y))
		}
	}
	pen.Close()
}

func (f *goTextFont) Extents(gid GlyphID) (geom.Rect, bool) {
	f.mu.Lock()
	ext, ok := f.face.GlyphExtents(font.GID(gid))
	f.mu.Unlock()
	if !ok || ext.Width == 0 || ext.Height == 0 {
		return geom.Rect{}, false
	}
	// Height is negative: the box grows down from YBearing.
	return geom.Rect{
		Min: geom.Pt(float64(ext.XBearing), float64(ext.YBearing+ext.Height)),
		Max: geom.Pt(float64(ext.XBearing+ext.Width), float64(ext.YBearing)),
	}, true
}

// detectScript returns the script of the first rune that has one.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		s := language.LookupScript(r)
		if s != language.Common && s != language.Inherited && s != language.Unknown {
			return s
		}
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(v * 64) }

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func convertGlyphs(glyphs []shaping.Glyph) []Glyph {
	if len(glyphs) == 0 {
		return nil
	}
	out := make([]Glyph, len(glyphs))
	for i, g := range glyphs {
		out[i] = Glyph{
			ID:      GlyphID(g.GlyphID),
			Cluster: g.TextIndex(),
			Advance: fixedToFloat(g.Advance),
			XOffset: fixedToFloat(g.XOffset),
			YOffset: fixedToFloat(g.YOffset),
		}
	}
	return out
}
