package raster

import (
	"math"

	"github.com/gogpu/canvas/geom"
)

// edge is a non-horizontal line segment with y0 < y1.
type edge struct {
	x0, y0 float64
	y1     float64
	dxdy   float64
	// dir is +1 for downward edges and -1 for upward ones.
	dir int
}

func newEdge(p0, p1 geom.Point) (edge, bool) {
	if p0.Y == p1.Y || !p0.IsFinite() || !p1.IsFinite() {
		return edge{}, false
	}
	dir := 1
	if p0.Y > p1.Y {
		dir = -1
		p0, p1 = p1, p0
	}
	return edge{
		x0:   p0.X,
		y0:   p0.Y,
		y1:   p1.Y,
		dxdy: (p1.X - p0.X) / (p1.Y - p0.Y),
		dir:  dir,
	}, true
}

// xAt returns the x coordinate of the edge at y.
func (e *edge) xAt(y float64) float64 {
	return e.x0 + (y-e.y0)*e.dxdy
}

// buildEdges closes every polyline and returns its edges together with
// their bounding box.
func buildEdges(lines []geom.Polyline) ([]edge, geom.Rect) {
	var edges []edge
	bounds := geom.Rect{
		Min: geom.Pt(math.Inf(1), math.Inf(1)),
		Max: geom.Pt(math.Inf(-1), math.Inf(-1)),
	}
	for _, line := range lines {
		pts := line.Pts
		if len(pts) < 2 {
			continue
		}
		for i := range pts {
			p0, p1 := pts[i], pts[(i+1)%len(pts)]
			e, ok := newEdge(p0, p1)
			if !ok {
				continue
			}
			edges = append(edges, e)
			bounds.Min.X = min(bounds.Min.X, p0.X, p1.X)
			bounds.Max.X = max(bounds.Max.X, p0.X, p1.X)
			bounds.Min.Y = min(bounds.Min.Y, e.y0)
			bounds.Max.Y = max(bounds.Max.Y, e.y1)
		}
	}
	return edges, bounds
}
