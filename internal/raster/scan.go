package raster

import (
	"cmp"
	"image"
	"slices"

	"github.com/gogpu/canvas/raster"
)

// SupersampleShift controls vertical supersampling: 2 means 4 sub-scanlines
// per pixel row. Horizontal coverage is computed exactly.
const SupersampleShift = 2

// SupersampleScale is the number of sub-scanlines per pixel row.
const SupersampleScale = 1 << SupersampleShift

type crossing struct {
	x   float64
	dir int
}

// scanner computes antialiased coverage rows for a set of edges.
type scanner struct {
	edges  []edge
	rule   raster.FillRule
	area   image.Rectangle
	active []*edge
	next   int
	xs     []crossing
	acc    []float32
	cov    []uint8
}

func newScanner(edges []edge, rule raster.FillRule, area image.Rectangle) *scanner {
	slices.SortFunc(edges, func(a, b edge) int { return cmp.Compare(a.y0, b.y0) })
	return &scanner{
		edges: edges,
		rule:  rule,
		area:  area,
		acc:   make([]float32, area.Dx()),
		cov:   make([]uint8, area.Dx()),
	}
}

func (s *scanner) inside(w int) bool {
	if s.rule == raster.EvenOdd {
		return w&1 != 0
	}
	return w != 0
}

// scan calls fn for every row of the area in order. cov[i] is the coverage
// of pixel area.Min.X+i and is only valid during the call. empty reports
// that the row has no coverage at all.
func (s *scanner) scan(fn func(y int, cov []uint8, empty bool)) {
	for y := s.area.Min.Y; y < s.area.Max.Y; y++ {
		fn(y, s.cov, !s.row(y))
	}
}

// row fills s.cov for pixel row y and reports whether any pixel is covered.
func (s *scanner) row(y int) bool {
	fy := float64(y)
	for s.next < len(s.edges) && s.edges[s.next].y0 < fy+1 {
		s.active = append(s.active, &s.edges[s.next])
		s.next++
	}
	s.active = slices.DeleteFunc(s.active, func(e *edge) bool { return e.y1 <= fy })
	if len(s.active) == 0 {
		clear(s.cov)
		return false
	}
	clear(s.acc)
	const w = 1.0 / SupersampleScale
	touched := false
	for k := range SupersampleScale {
		sy := fy + (float64(k)+0.5)*w
		s.xs = s.xs[:0]
		for _, e := range s.active {
			if e.y0 <= sy && sy < e.y1 {
				s.xs = append(s.xs, crossing{x: e.xAt(sy), dir: e.dir})
			}
		}
		slices.SortFunc(s.xs, func(a, b crossing) int { return cmp.Compare(a.x, b.x) })
		winding := 0
		var start float64
		for _, c := range s.xs {
			was := s.inside(winding)
			winding += c.dir
			now := s.inside(winding)
			switch {
			case !was && now:
				start = c.x
			case was && !now:
				if s.addSpan(start, c.x, w) {
					touched = true
				}
			}
		}
	}
	for i, a := range s.acc {
		v := a*255 + 0.5
		switch {
		case v <= 0:
			s.cov[i] = 0
		case v >= 255:
			s.cov[i] = 255
		default:
			s.cov[i] = uint8(v)
		}
	}
	return touched
}

// addSpan accumulates coverage weight w over [xa, xb) clipped to the area.
func (s *scanner) addSpan(xa, xb float64, w float32) bool {
	lo, hi := float64(s.area.Min.X), float64(s.area.Max.X)
	xa, xb = max(xa, lo)-lo, min(xb, hi)-lo
	if xb <= xa {
		return false
	}
	ia, ib := int(xa), int(xb)
	if ia == ib {
		s.acc[ia] += float32(xb-xa) * w
		return true
	}
	s.acc[ia] += float32(float64(ia+1)-xa) * w
	for i := ia + 1; i < ib; i++ {
		s.acc[i] += w
	}
	if ib < len(s.acc) {
		s.acc[ib] += float32(xb-float64(ib)) * w
	}
	return true
}
