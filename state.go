package canvas

import (
	"slices"

	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/internal/filter"
	"github.com/gogpu/canvas/raster"
	"github.com/gogpu/canvas/text"
)

// Style is a fill or stroke paint: a SolidStyle, a *Gradient or a
// *Pattern.
type Style interface {
	style()
}

// SolidStyle paints a single color.
type SolidStyle struct {
	Color color.AbsoluteColor
}

func (SolidStyle) style() {}

// String serializes the color the way the fillStyle getter does.
func (s SolidStyle) String() string { return s.Color.String() }

// DrawingState is everything save pushes and restore pops.
type DrawingState struct {
	lineWidth  float64
	lineCap    raster.LineCap
	lineJoin   raster.LineJoin
	miterLimit float64
	dash       []float64
	dashOffset float64

	font          text.Font
	textAlign     text.TextAlign
	textBaseline  text.TextBaseline
	direction     text.Direction
	kerning       text.Kerning
	letterSpacing spacing
	wordSpacing   spacing

	transform geom.Matrix
	fill      Style
	stroke    Style
	// clipDepth is the number of clips pushed onto the target while this
	// state was current.
	clipDepth int

	globalAlpha float64
	composite   CompositeOperation
	smoothing   bool
	quality     bitmap.Quality

	shadowColor   color.AbsoluteColor
	shadowOffsetX float64
	shadowOffsetY float64
	shadowBlur    float64

	filters    []filter.Function
	filterText string
}

// spacing is a letter-spacing or word-spacing value together with the
// text it was parsed from.
type spacing struct {
	px   float64
	text string
}

func defaultState() DrawingState {
	return DrawingState{
		lineWidth:     1,
		miterLimit:    10,
		font:          text.DefaultFont(),
		letterSpacing: spacing{text: "0px"},
		wordSpacing:   spacing{text: "0px"},
		transform:     geom.Identity(),
		fill:          SolidStyle{color.Black},
		stroke:        SolidStyle{color.Black},
		globalAlpha:   1,
		smoothing:     true,
		quality:       bitmap.Low,
		shadowColor:   color.Transparent,
		filterText:    "none",
	}
}

func (s *DrawingState) clone() DrawingState {
	c := *s
	c.dash = slices.Clone(s.dash)
	c.filters = slices.Clone(s.filters)
	c.font.Families = slices.Clone(s.font.Families)
	return c
}

func (s *DrawingState) textStyle() text.Style {
	return text.Style{
		Font:          s.font,
		Align:         s.textAlign,
		Baseline:      s.textBaseline,
		Direction:     s.direction,
		Kerning:       s.kerning,
		LetterSpacing: s.letterSpacing.px,
		WordSpacing:   s.wordSpacing.px,
	}
}

func (s *DrawingState) strokeStyle() raster.StrokeStyle {
	return raster.StrokeStyle{
		Width:      s.lineWidth,
		Cap:        s.lineCap,
		Join:       s.lineJoin,
		MiterLimit: s.miterLimit,
		Dash:       s.dash,
		DashOffset: s.dashOffset,
	}
}

// hasShadow reports whether drawing casts a visible shadow.
func (s *DrawingState) hasShadow() bool {
	return !s.shadowColor.IsTransparent() &&
		(s.shadowBlur > 0 || s.shadowOffsetX != 0 || s.shadowOffsetY != 0)
}
