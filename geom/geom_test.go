package geom

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func verbs(p *Path) []Verb {
	v := make([]Verb, 0, p.Len())
	for _, op := range p.Ops() {
		v = append(v, op.Verb)
	}
	return v
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestRect(t *testing.T) {
	var p Path
	p.Rect(10, 20, 30, 40)
	want := []PathOp{
		{Verb: MoveTo, Pts: [3]Point{{10, 20}}},
		{Verb: LineTo, Pts: [3]Point{{40, 20}}},
		{Verb: LineTo, Pts: [3]Point{{40, 60}}},
		{Verb: LineTo, Pts: [3]Point{{10, 60}}},
		{Verb: Close},
	}
	if diff := cmp.Diff(want, p.Ops()); diff != "" {
		t.Errorf("Rect ops mismatch (-want +got):\n%s", diff)
	}
}

func TestLineToOpensSubpath(t *testing.T) {
	var p Path
	p.LineTo(5, 5)
	p.LineTo(6, 6)
	if diff := cmp.Diff([]Verb{MoveTo, LineTo}, verbs(&p)); diff != "" {
		t.Errorf("verbs mismatch (-want +got):\n%s", diff)
	}
}

func TestCloseReopensAtStart(t *testing.T) {
	var p Path
	p.MoveTo(1, 2)
	p.LineTo(3, 4)
	p.Close()
	p.LineTo(7, 8)
	ops := p.Ops()
	if len(ops) != 5 || ops[3].Verb != MoveTo || ops[3].Pts[0] != (Point{1, 2}) {
		t.Fatalf("ops = %v, want MoveTo(1,2) after Close", ops)
	}
}

func TestNonFiniteIgnored(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(math.NaN(), 1)
	p.QuadTo(1, math.Inf(1), 2, 2)
	p.CubicTo(1, 1, 2, 2, math.Inf(-1), 0)
	p.Rect(0, 0, math.NaN(), 1)
	if err := p.Arc(0, 0, math.NaN(), 0, 1, false); err != nil {
		t.Errorf("Arc(NaN) error = %v", err)
	}
	if err := p.ArcTo(1, 1, 2, math.Inf(1), 1); err != nil {
		t.Errorf("ArcTo(Inf) error = %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestNegativeRadius(t *testing.T) {
	var p Path
	if err := p.Arc(0, 0, -1, 0, 1, false); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("Arc error = %v", err)
	}
	if err := p.Ellipse(0, 0, 1, -1, 0, 0, 1, false); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("Ellipse error = %v", err)
	}
	if err := p.ArcTo(0, 0, 1, 1, -2); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("ArcTo error = %v", err)
	}
	if err := p.RoundRect(0, 0, 1, 1, []Radius{{-1, 0}}); !errors.Is(err, ErrNegativeRadius) {
		t.Errorf("RoundRect error = %v", err)
	}
	if err := p.RoundRect(0, 0, 1, 1, nil); !errors.Is(err, ErrRadiiCount) {
		t.Errorf("RoundRect(nil) error = %v", err)
	}
	if !p.IsEmpty() {
		t.Errorf("failed calls modified the path: %v", p.Ops())
	}
}

func TestNormalizeSweep(t *testing.T) {
	tests := []struct {
		start, end float64
		ccw        bool
		want       float64
	}{
		{0, 2 * math.Pi, false, 2 * math.Pi},
		{0, 5 * math.Pi, false, 2 * math.Pi},
		{0, math.Pi / 2, false, math.Pi / 2},
		{0, -math.Pi / 2, false, 3 * math.Pi / 2},
		{0, -math.Pi / 2, true, -math.Pi / 2},
		{0, 2 * math.Pi, true, 0},
		{2 * math.Pi, 0, true, -2 * math.Pi},
	}
	for _, tt := range tests {
		got := normalizeSweep(tt.start, tt.end, tt.ccw)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("normalizeSweep(%v, %v, %v) = %v, want %v", tt.start, tt.end, tt.ccw, got, tt.want)
		}
	}
}

func TestEllipseFullCircle(t *testing.T) {
	var p Path
	if err := p.Ellipse(50, 50, 10, 10, 0, 0, 2*math.Pi, false); err != nil {
		t.Fatal(err)
	}
	ops := p.Ops()
	if ops[0].Verb != MoveTo || !near(ops[0].Pts[0], Point{60, 50}) {
		t.Fatalf("first op = %v, want MoveTo(60,50)", ops[0])
	}
	if len(ops) != 9 {
		t.Fatalf("len(ops) = %d, want MoveTo + 8 quadratics", len(ops))
	}
	if !near(ops[8].End(), Point{60, 50}) {
		t.Errorf("circle ends at %v, want start point", ops[8].End())
	}
	// Every on-curve point lies on the circle.
	for _, op := range ops[1:] {
		if d := op.End().Distance(Point{50, 50}); math.Abs(d-10) > 1e-9 {
			t.Errorf("end point %v at distance %v", op.End(), d)
		}
	}
}

func TestEllipseLineToStart(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	if err := p.Arc(10, 0, 5, math.Pi, 3*math.Pi/2, false); err != nil {
		t.Fatal(err)
	}
	ops := p.Ops()
	if ops[1].Verb != LineTo || !near(ops[1].Pts[0], Point{5, 0}) {
		t.Errorf("ops[1] = %v, want LineTo(5,0)", ops[1])
	}
	if !near(ops[len(ops)-1].End(), Point{10, -5}) {
		t.Errorf("arc ends at %v, want (10,-5)", ops[len(ops)-1].End())
	}
}

func TestArcTo(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	if err := p.ArcTo(10, 0, 10, 10, 5); err != nil {
		t.Fatal(err)
	}
	ops := p.Ops()
	if ops[1].Verb != LineTo || !near(ops[1].Pts[0], Point{5, 0}) {
		t.Fatalf("ops[1] = %v, want LineTo(5,0)", ops[1])
	}
	end := ops[len(ops)-1].End()
	if !near(end, Point{10, 5}) {
		t.Errorf("arc ends at %v, want (10,5)", end)
	}
	for _, op := range ops[2:] {
		if op.Verb != QuadTo {
			t.Fatalf("op %v, want QuadTo", op)
		}
		if d := op.End().Distance(Point{5, 5}); math.Abs(d-5) > 1e-9 {
			t.Errorf("arc point %v off circle by %v", op.End(), d-5)
		}
	}
}

func TestArcToDegenerate(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	if err := p.ArcTo(10, 0, 20, 0, 5); err != nil {
		t.Fatal(err)
	}
	if err := p.ArcTo(30, 0, 40, 10, 0); err != nil {
		t.Fatal(err)
	}
	want := []Verb{MoveTo, LineTo, LineTo}
	if diff := cmp.Diff(want, verbs(&p)); diff != "" {
		t.Errorf("verbs mismatch (-want +got):\n%s", diff)
	}
}

// RoundRect keeps the trailing MoveTo to the rectangle origin after Close.
func TestRoundRectTrailingMoveTo(t *testing.T) {
	var p Path
	if err := p.RoundRect(10, 10, 100, 50, []Radius{Uniform(5)}); err != nil {
		t.Fatal(err)
	}
	ops := p.Ops()
	last := ops[len(ops)-1]
	if last.Verb != MoveTo || last.Pts[0] != (Point{10, 10}) {
		t.Errorf("last op = %v, want MoveTo(10,10)", last)
	}
	if ops[len(ops)-2].Verb != Close {
		t.Errorf("second to last op = %v, want Close", ops[len(ops)-2])
	}
	if ops[0].Verb != MoveTo || ops[0].Pts[0] != (Point{15, 10}) {
		t.Errorf("first op = %v, want MoveTo(15,10)", ops[0])
	}
	quads := 0
	for _, op := range ops {
		if op.Verb == QuadTo {
			quads++
		}
	}
	if quads != 8 {
		t.Errorf("quadratic count = %d, want 2 per corner", quads)
	}
}

func TestRoundRectScalesRadii(t *testing.T) {
	var p Path
	if err := p.RoundRect(0, 0, 10, 10, []Radius{Uniform(10)}); err != nil {
		t.Fatal(err)
	}
	// Radii are halved so opposite corners meet at the edge midpoints.
	if got := p.Ops()[0].Pts[0]; !near(got, Point{5, 0}) {
		t.Errorf("start = %v, want (5,0)", got)
	}
	b := p.Bounds()
	if b.Min.X < -1e-9 || b.Max.X > 10+1e-9 {
		t.Errorf("bounds %v escape the rectangle", b)
	}
}

func TestRoundRectZeroRadii(t *testing.T) {
	var p Path
	if err := p.RoundRect(0, 0, 4, 2, []Radius{{}, {}}); err != nil {
		t.Fatal(err)
	}
	want := []Verb{MoveTo, LineTo, LineTo, LineTo, LineTo, Close, MoveTo}
	if diff := cmp.Diff(want, verbs(&p)); diff != "" {
		t.Errorf("verbs mismatch (-want +got):\n%s", diff)
	}
}

func TestExtend(t *testing.T) {
	src := NewPath()
	src.Rect(0, 0, 1, 1)
	dst := NewPath()
	dst.Extend(src, Translate(5, 5).Mul(Scale(2, 2)))
	if got := dst.Ops()[2].Pts[0]; got != (Point{7, 7}) {
		t.Errorf("transformed corner = %v, want (7,7)", got)
	}
	if got := src.Ops()[2].Pts[0]; got != (Point{1, 1}) {
		t.Errorf("source modified: %v", got)
	}
}

func TestMatrix(t *testing.T) {
	m := Translate(10, 20).Mul(Rotate(math.Pi / 2)).Mul(Scale(2, 3))
	p := m.Apply(Point{1, 1})
	if !near(p, Point{7, 22}) {
		t.Errorf("Apply = %v, want (7,22)", p)
	}
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert failed")
	}
	if back := inv.Apply(p); !near(back, Point{1, 1}) {
		t.Errorf("inverse Apply = %v, want (1,1)", back)
	}
	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("singular matrix inverted")
	}
	if got := Identity().Mul(m); got != m {
		t.Errorf("Identity.Mul = %v, want %v", got, m)
	}
}

func TestFlatten(t *testing.T) {
	var p Path
	if err := p.Arc(0, 0, 100, 0, 2*math.Pi, false); err != nil {
		t.Fatal(err)
	}
	p.Close()
	lines := p.Flatten(0.1)
	if len(lines) != 1 || !lines[0].Closed {
		t.Fatalf("Flatten = %d polylines", len(lines))
	}
	for _, pt := range lines[0].Pts {
		if d := pt.Length(); math.Abs(d-100) > 0.5 {
			t.Errorf("flattened point %v at radius %v", pt, d)
		}
	}
	if n := len(lines[0].Pts); n < 32 {
		t.Errorf("len(Pts) = %d, want a finer approximation", n)
	}
}

func TestBounds(t *testing.T) {
	var p Path
	p.MoveTo(1, 5)
	p.CubicTo(-3, 0, 4, 9, 2, 2)
	want := Rect{Min: Point{-3, 0}, Max: Point{4, 9}}
	if diff := cmp.Diff(want, p.Bounds(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Bounds mismatch (-want +got):\n%s", diff)
	}
}

func TestContinue(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	var arc Path
	arc.MoveTo(0, 0)
	arc.LineTo(1, 0)
	arc.LineTo(1, 1)
	p.Continue(&arc, Translate(10, 0))
	if diff := cmp.Diff([]Verb{MoveTo, LineTo, LineTo}, verbs(&p)); diff != "" {
		t.Errorf("verbs mismatch (-want +got):\n%s", diff)
	}
	if got, _ := p.CurrentPoint(); got != (Point{11, 1}) {
		t.Errorf("CurrentPoint() = %v, want (11, 1)", got)
	}

	// Without an open subpath the leading point starts one.
	var q Path
	q.Continue(&arc, Identity())
	if diff := cmp.Diff([]Verb{MoveTo, LineTo, LineTo}, verbs(&q)); diff != "" {
		t.Errorf("verbs mismatch (-want +got):\n%s", diff)
	}
	if q.Ops()[0].Pts[0] != (Point{0, 0}) {
		t.Errorf("subpath start = %v, want origin", q.Ops()[0].Pts[0])
	}
}

func TestWinding(t *testing.T) {
	var p Path
	p.Rect(0, 0, 10, 10)
	// Inner square wound the same way: winding 2 inside it.
	p.Rect(2, 2, 6, 6)
	var ccw Path
	ccw.MoveTo(0, 0)
	ccw.LineTo(0, 10)
	ccw.LineTo(10, 10)
	ccw.LineTo(10, 0)

	tests := []struct {
		name string
		path *Path
		pt   Point
		want int
	}{
		{"outer ring", &p, Point{1, 1}, 1},
		{"inner square", &p, Point{5, 5}, 2},
		{"outside", &p, Point{11, 5}, 0},
		{"reversed, implicitly closed", &ccw, Point{5, 5}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.path.Winding(tt.pt, DefaultTolerance)
			if got != tt.want && got != -tt.want {
				t.Errorf("Winding(%v) = %d, want ±%d", tt.pt, got, tt.want)
			}
			if tt.want != 0 && got == 0 {
				t.Errorf("Winding(%v) = 0, want nonzero", tt.pt)
			}
		})
	}
	if a, b := p.Winding(Point{1, 1}, DefaultTolerance), ccw.Winding(Point{5, 5}, DefaultTolerance); a != -b {
		t.Errorf("opposite windings = %d and %d, want negatives of each other", a, b)
	}
}
