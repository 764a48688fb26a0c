package stroke

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
)

// winding returns the nonzero winding number of path around pt.
func winding(path *geom.Path, pt geom.Point) int {
	w := 0
	for _, line := range path.Flatten(0.01) {
		pts := line.Pts
		for i := range pts {
			a, b := pts[i], pts[(i+1)%len(pts)]
			if a.Y <= pt.Y && b.Y > pt.Y {
				if b.Sub(a).Cross(pt.Sub(a)) > 0 {
					w++
				}
			} else if a.Y > pt.Y && b.Y <= pt.Y {
				if b.Sub(a).Cross(pt.Sub(a)) < 0 {
					w--
				}
			}
		}
	}
	return w
}

func line(pts ...geom.Point) *geom.Path {
	p := geom.NewPath()
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, q := range pts[1:] {
		p.LineTo(q.X, q.Y)
	}
	return p
}

func style(width float64, c raster.LineCap, j raster.LineJoin) raster.StrokeStyle {
	return raster.StrokeStyle{Width: width, Cap: c, Join: j, MiterLimit: 10}
}

func checkInside(t *testing.T, name string, path *geom.Path, inside, outside []geom.Point) {
	t.Helper()
	for _, p := range inside {
		if winding(path, p) == 0 {
			t.Errorf("%s: %v should be inside the stroke", name, p)
		}
	}
	for _, p := range outside {
		if winding(path, p) != 0 {
			t.Errorf("%s: %v should be outside the stroke", name, p)
		}
	}
}

func TestExpandCaps(t *testing.T) {
	src := line(geom.Pt(0, 0), geom.Pt(10, 0))
	tests := []struct {
		name            string
		cap             raster.LineCap
		bounds          geom.Rect
		inside, outside []geom.Point
	}{
		{
			name:    "butt",
			cap:     raster.ButtCap,
			bounds:  geom.Rect{Min: geom.Pt(0, -1), Max: geom.Pt(10, 1)},
			inside:  []geom.Point{{X: 5, Y: 0.5}, {X: 0.1, Y: -0.9}},
			outside: []geom.Point{{X: -0.5, Y: 0}, {X: 10.5, Y: 0}, {X: 5, Y: 1.5}},
		},
		{
			name:    "square",
			cap:     raster.SquareCap,
			bounds:  geom.Rect{Min: geom.Pt(-1, -1), Max: geom.Pt(11, 1)},
			inside:  []geom.Point{{X: -0.9, Y: 0.9}, {X: 10.9, Y: -0.9}},
			outside: []geom.Point{{X: 11.1, Y: 0}},
		},
		{
			name:    "round",
			cap:     raster.RoundCap,
			bounds:  geom.Rect{Min: geom.Pt(-1, -1), Max: geom.Pt(11, 1)},
			inside:  []geom.Point{{X: 10.9, Y: 0}, {X: -0.9, Y: 0}},
			outside: []geom.Point{{X: 10.9, Y: 0.9}, {X: -0.9, Y: -0.9}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Expand(src, style(2, tt.cap, raster.MiterJoin))
			b := out.Bounds()
			if diff := cmp.Diff(tt.bounds, b, cmp.Comparer(func(x, y float64) bool {
				return x-y < 1e-6 && y-x < 1e-6
			})); diff != "" {
				t.Errorf("bounds mismatch (-want +got):\n%s", diff)
			}
			checkInside(t, tt.name, out, tt.inside, tt.outside)
		})
	}
}

func TestExpandJoins(t *testing.T) {
	src := line(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(10, 10))
	corner := geom.Pt(10.9, -0.9)

	miter := Expand(src, style(2, raster.ButtCap, raster.MiterJoin))
	checkInside(t, "miter", miter, []geom.Point{corner, {X: 5, Y: 0}, {X: 10, Y: 5}}, []geom.Point{{X: 5, Y: 5}})

	bevel := Expand(src, style(2, raster.ButtCap, raster.BevelJoin))
	checkInside(t, "bevel", bevel, []geom.Point{{X: 10.4, Y: -0.4}}, []geom.Point{corner})

	round := Expand(src, style(2, raster.ButtCap, raster.RoundJoin))
	checkInside(t, "round", round, []geom.Point{{X: 10.6, Y: -0.6}}, []geom.Point{corner})
}

func TestMiterLimit(t *testing.T) {
	// A very sharp turn exceeds a miter limit of 1 and falls back to bevel.
	src := line(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(0, 1))
	st := style(2, raster.ButtCap, raster.MiterJoin)
	st.MiterLimit = 1
	out := Expand(src, st)
	if b := out.Bounds(); b.Max.X > 11.5 {
		t.Errorf("bounds.Max.X = %v, want miter clipped to bevel", b.Max.X)
	}
	st.MiterLimit = 100
	if b := Expand(src, st).Bounds(); b.Max.X < 15 {
		t.Errorf("bounds.Max.X = %v, want long miter", b.Max.X)
	}
}

func TestClosedStroke(t *testing.T) {
	src := geom.NewPath()
	src.Rect(0, 0, 10, 10)
	out := Expand(src, style(2, raster.ButtCap, raster.MiterJoin))
	checkInside(t, "rect",
		out,
		[]geom.Point{{X: 0, Y: 5}, {X: 10.5, Y: 5}, {X: -0.9, Y: -0.9}, {X: 10.9, Y: 10.9}},
		[]geom.Point{{X: 5, Y: 5}, {X: 1.5, Y: 1.5}, {X: -1.5, Y: 5}},
	)
}

func TestDash(t *testing.T) {
	src := line(geom.Pt(0, 0), geom.Pt(10, 0))
	tests := []struct {
		name            string
		dash            []float64
		offset          float64
		inside, outside []geom.Point
	}{
		{"even", []float64{2, 2}, 0, []geom.Point{{X: 1, Y: 0}, {X: 5, Y: 0}, {X: 9, Y: 0}}, []geom.Point{{X: 3, Y: 0}, {X: 7, Y: 0}}},
		{"offset", []float64{2, 2}, 1, []geom.Point{{X: 0.5, Y: 0}, {X: 4, Y: 0}}, []geom.Point{{X: 2, Y: 0}, {X: 6, Y: 0}}},
		{"negative offset", []float64{2, 2}, -1, []geom.Point{{X: 2, Y: 0}}, []geom.Point{{X: 0.5, Y: 0}, {X: 4, Y: 0}}},
		{"odd", []float64{1}, 0, []geom.Point{{X: 0.5, Y: 0}, {X: 2.5, Y: 0}}, []geom.Point{{X: 1.5, Y: 0}, {X: 3.5, Y: 0}}},
		{"all zero is solid", []float64{0, 0}, 0, []geom.Point{{X: 3, Y: 0}, {X: 7, Y: 0}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := style(1, raster.ButtCap, raster.MiterJoin)
			st.Dash = tt.dash
			st.DashOffset = tt.offset
			checkInside(t, tt.name, Expand(src, st), tt.inside, tt.outside)
		})
	}
}

func TestNormalizeDash(t *testing.T) {
	got, ok := normalizeDash([]float64{1, 2, 3})
	if !ok {
		t.Fatal("normalizeDash rejected a valid list")
	}
	if diff := cmp.Diff([]float64{1, 2, 3, 1, 2, 3}, got); diff != "" {
		t.Errorf("normalizeDash mismatch (-want +got):\n%s", diff)
	}
	for _, bad := range [][]float64{nil, {0}, {-1, 2}} {
		if _, ok := normalizeDash(bad); ok {
			t.Errorf("normalizeDash(%v) accepted", bad)
		}
	}
}

func TestZeroLengthSubpath(t *testing.T) {
	src := line(geom.Pt(5, 5), geom.Pt(5, 5))
	if out := Expand(src, style(4, raster.ButtCap, raster.MiterJoin)); !out.IsEmpty() {
		t.Errorf("butt cap on zero-length subpath produced %d ops", out.Len())
	}
	round := Expand(src, style(4, raster.RoundCap, raster.MiterJoin))
	checkInside(t, "round dot", round, []geom.Point{{X: 5, Y: 6.5}, {X: 3.5, Y: 5}}, []geom.Point{{X: 6.6, Y: 6.6}})

	bare := geom.NewPath()
	bare.MoveTo(5, 5)
	if out := Expand(bare, style(4, raster.RoundCap, raster.MiterJoin)); !out.IsEmpty() {
		t.Error("a lone moveTo must not draw")
	}
}

func TestZeroWidth(t *testing.T) {
	src := line(geom.Pt(0, 0), geom.Pt(10, 0))
	if out := Expand(src, style(0, raster.RoundCap, raster.RoundJoin)); !out.IsEmpty() {
		t.Errorf("zero width produced %d ops", out.Len())
	}
}
