package canvas

import (
	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/internal/css"
	"github.com/gogpu/canvas/raster"
)

// Repetition selects the axes a pattern tiles along.
type Repetition uint8

const (
	Repeat Repetition = iota
	RepeatX
	RepeatY
	NoRepeat
)

var repetitionNames = [...]string{"repeat", "repeat-x", "repeat-y", "no-repeat"}

func (r Repetition) String() string { return repetitionNames[r] }

// ParseRepetition parses a createPattern repetition keyword. The empty
// string means repeat.
func ParseRepetition(s string) (Repetition, error) {
	if s == "" {
		return Repeat, nil
	}
	for i, n := range repetitionNames {
		if n == s {
			return Repetition(i), nil
		}
	}
	return 0, &SyntaxError{Source: s, Kind: css.KindRepetition, Line: 1, Column: 1, Expected: `"repeat", "repeat-x", "repeat-y" or "no-repeat"`}
}

// Pattern is a CanvasPattern: a snapshot of an image tiled under its own
// transform.
type Pattern struct {
	image      *bitmap.Bitmap
	repetition Repetition
	transform  geom.Matrix
}

// NewPattern snapshots img. Later writes to img do not affect the pattern.
func NewPattern(img *bitmap.Bitmap, repetition Repetition) *Pattern {
	return &Pattern{image: img.Clone(), repetition: repetition, transform: geom.Identity()}
}

func (*Pattern) style() {}

// Repetition returns the tiling mode.
func (p *Pattern) Repetition() Repetition { return p.repetition }

// SetTransform sets the pattern transform. Non-finite matrices are
// ignored.
func (p *Pattern) SetTransform(m geom.Matrix) {
	if !m.IsFinite() {
		return
	}
	p.transform = m
}

// Transform returns the pattern transform.
func (p *Pattern) Transform() geom.Matrix { return p.transform }

// paint resolves the pattern under ctm. It returns nil when the combined
// transform cannot be inverted or the image is transparent.
func (p *Pattern) paint(ctm geom.Matrix, space color.PredefinedSpace, smooth bool) raster.Paint {
	m := ctm.Mul(p.transform)
	if !m.IsInvertible() || p.image.Empty() || p.image.Data() == nil {
		return nil
	}
	img := p.image.ConvertTo(space)
	f := raster.Nearest
	if smooth {
		f = raster.Bilinear
	}
	return raster.ImagePattern{
		Pix:       img.Pix(),
		Width:     img.Width,
		Height:    img.Height,
		Transform: m,
		RepeatX:   p.repetition == Repeat || p.repetition == RepeatX,
		RepeatY:   p.repetition == Repeat || p.repetition == RepeatY,
		Filter:    f,
	}
}
