package text

import (
	"math"
	"slices"
	"strings"

	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/internal/cache"
	"github.com/gogpu/canvas/internal/logging"
)

// Metrics is the canvas TextMetrics of a prepared text. Vertical distances
// are measured from the anchor selected by the text baseline, positive
// upwards; horizontal ones from the anchor selected by the alignment.
type Metrics struct {
	Width float64

	ActualBoundingBoxLeft    float64
	ActualBoundingBoxRight   float64
	ActualBoundingBoxAscent  float64
	ActualBoundingBoxDescent float64

	FontBoundingBoxAscent  float64
	FontBoundingBoxDescent float64

	EmHeightAscent  float64
	EmHeightDescent float64

	HangingBaseline     float64
	AlphabeticBaseline  float64
	IdeographicBaseline float64
}

// outlines caches glyph outlines in font units with y pointing down,
// keyed by face id and glyph.
var outlines = cache.New[outlineKey, *geom.Path](4096)

type outlineKey struct {
	face uint64
	gid  GlyphID
}

func glyphOutline(face *FontFace, font ShapingFont, gid GlyphID) *geom.Path {
	return outlines.GetOrCreate(outlineKey{face.ID(), gid}, func() *geom.Path {
		p := geom.NewPath()
		pen := &pathPen{path: p, scale: 1}
		font.Outline(gid, pen)
		return p
	})
}

// lineMetrics are font-wide metrics in pixels, as distances above the
// alphabetic baseline except for the two descents.
type lineMetrics struct {
	ascent, descent     float64
	emAscent, emDescent float64
	hanging             float64
	ideographic         float64
}

// resolveMetrics scales the metrics of f to size pixels, filling in what
// the font omits: ascent 0.8em, descent 0.2em, a hanging baseline at 0.8 of
// the ascent and an ideographic baseline at the descent. The em box is the
// typographic ascent and descent rescaled to span exactly one em.
func resolveMetrics(f ShapingFont, size float64) lineMetrics {
	upem, m := f.UnitsPerEm(), f.Metrics()
	ascent, descent := 0.8*upem, 0.2*upem
	if m.HasExtents {
		ascent, descent = m.Ascent, m.Descent
	}
	ea, ed := ascent, descent
	if m.HasTypo {
		ea, ed = m.TypoAscent, m.TypoDescent
	}
	emAscent, emDescent := 0.8*upem, 0.2*upem
	if total := ea + ed; total > 0 {
		emAscent, emDescent = ea/total*upem, ed/total*upem
	}
	hanging := 0.8 * ascent
	if m.HasHanging {
		hanging = m.Hanging
	}
	ideographic := -descent
	if m.HasIdeographic {
		ideographic = m.Ideographic
	}
	s := size / upem
	return lineMetrics{
		ascent:      ascent * s,
		descent:     descent * s,
		emAscent:    emAscent * s,
		emDescent:   emDescent * s,
		hanging:     hanging * s,
		ideographic: ideographic * s,
	}
}

// baselineOffset returns the y position, in y-down space with the
// alphabetic baseline at 0, of the line selected by b.
func (lm lineMetrics) baselineOffset(b TextBaseline) float64 {
	switch b {
	case BaselineTop:
		return -lm.emAscent
	case BaselineHanging:
		return -lm.hanging
	case BaselineMiddle:
		return (lm.emDescent - lm.emAscent) / 2
	case BaselineIdeographic:
		return -lm.ideographic
	case BaselineBottom:
		return lm.emDescent
	}
	return 0
}

// fontRun is a visual sub-run rendered with a single face.
type fontRun struct {
	run
	face *FontFace
}

// splitByFace splits r into maximal sub-runs that match the same face and
// returns them in visual order. Runes no face can render use primary;
// with no primary they are dropped.
func splitByFace(set *FontFaceSet, families []string, text []rune, r run, primary *FontFace) []fontRun {
	var out []fontRun
	for i := r.start; i < r.end; i++ {
		var face *FontFace
		if set != nil {
			face = set.Match(families, text[i])
		}
		if face == nil {
			face = primary
		}
		if face == nil {
			continue
		}
		if n := len(out); n > 0 && out[n-1].face == face && out[n-1].end == i {
			out[n-1].end = i + 1
			continue
		}
		out = append(out, fontRun{run{i, i + 1, r.rtl}, face})
	}
	if r.rtl {
		slices.Reverse(out)
	}
	return out
}

// normalizeSpace replaces ASCII whitespace control characters by spaces.
var normalizeSpace = strings.NewReplacer("\t", " ", "\n", " ", "\f", " ", "\r", " ")

// PrepareText lays out text with style and returns its outline together
// with its metrics. The path has the anchor point at the origin. When the
// natural width exceeds maxWidth the path and metrics are scaled down to
// fit. A maxWidth that is not positive, or a set with no loadable face for
// the font, yields an empty path and zero metrics; pass math.Inf(1) for no
// limit.
func PrepareText(set *FontFaceSet, style Style, text string, maxWidth float64) (*geom.Path, Metrics) {
	path := geom.NewPath()
	if !(maxWidth > 0) {
		return path, Metrics{}
	}
	runes := []rune(normalizeSpace.Replace(text))
	size := style.Font.Size
	families := style.Font.Families

	var primary *FontFace
	if set != nil {
		primary = set.primary(families)
	}
	if primary == nil {
		return path, Metrics{}
	}
	primaryFont := primary.Font()
	features := style.features()

	var (
		penX      float64
		ink       geom.Rect
		fallbacks int
	)
	for _, vr := range visualRuns(runes, style.Direction) {
		for _, fr := range splitByFace(set, families, runes, vr, primary) {
			font := fr.face.Font()
			if font == nil {
				continue
			}
			if fr.face == primary && !usable(primary, runes[fr.start]) {
				fallbacks++
			}
			scale := size / font.UnitsPerEm()
			glyphs := font.Shape(ShapeInput{
				Text:          runes,
				Start:         fr.start,
				End:           fr.end,
				RTL:           fr.rtl,
				Features:      features,
				LetterSpacing: style.LetterSpacing / scale,
				WordSpacing:   style.WordSpacing / scale,
			})
			for _, g := range glyphs {
				ox, oy := penX+g.XOffset*scale, -g.YOffset*scale
				path.Extend(glyphOutline(fr.face, font, g.ID), geom.Matrix{A: scale, D: scale, E: ox, F: oy})
				if e, ok := font.Extents(g.ID); ok {
					ink = ink.Union(geom.Rect{
						Min: geom.Pt(ox+e.Min.X*scale, oy-e.Max.Y*scale),
						Max: geom.Pt(ox+e.Max.X*scale, oy-e.Min.Y*scale),
					})
				}
				penX += g.Advance * scale
			}
		}
	}
	if fallbacks > 0 {
		logging.Logger().Debug("text: runes without a matching face drawn with the primary face",
			"runs", fallbacks, "families", families)
	}

	width := penX
	compression := 1.0
	if width > maxWidth {
		compression = maxWidth / width
	}

	lm := resolveMetrics(primaryFont, size)
	var ax float64
	switch style.Align.Physical(style.Direction) {
	case AlignRight:
		ax = width
	case AlignCenter:
		ax = width / 2
	}
	ay := lm.baselineOffset(style.Baseline)

	m := Metrics{
		Width:                  width,
		FontBoundingBoxAscent:  lm.ascent + ay,
		FontBoundingBoxDescent: lm.descent - ay,
		EmHeightAscent:         lm.emAscent + ay,
		EmHeightDescent:        lm.emDescent - ay,
		HangingBaseline:        lm.hanging + ay,
		AlphabeticBaseline:     ay,
		IdeographicBaseline:    lm.ideographic + ay,
	}
	if !ink.Empty() {
		m.ActualBoundingBoxLeft = ax - ink.Min.X
		m.ActualBoundingBoxRight = ink.Max.X - ax
		m.ActualBoundingBoxAscent = ay - ink.Min.Y
		m.ActualBoundingBoxDescent = ink.Max.Y - ay
	}
	m.scale(compression)

	out := path.Transform(geom.Scale(compression, compression).Mul(geom.Translate(-ax, -ay)))
	return out, m
}

// MeasureText returns the metrics of text without a width limit.
func MeasureText(set *FontFaceSet, style Style, text string) Metrics {
	_, m := PrepareText(set, style, text, math.Inf(1))
	return m
}

func (m *Metrics) scale(s float64) {
	if s == 1 {
		return
	}
	for _, v := range []*float64{
		&m.Width,
		&m.ActualBoundingBoxLeft, &m.ActualBoundingBoxRight,
		&m.ActualBoundingBoxAscent, &m.ActualBoundingBoxDescent,
		&m.FontBoundingBoxAscent, &m.FontBoundingBoxDescent,
		&m.EmHeightAscent, &m.EmHeightDescent,
		&m.HangingBaseline, &m.AlphabeticBaseline, &m.IdeographicBaseline,
	} {
		*v *= s
	}
}
