package canvas

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
)

func TestAddColorStopOrder(t *testing.T) {
	g, err := NewLinearGradient(0, 0, 10, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []struct {
		off float64
		css string
	}{{0.5, "red"}, {0.2, "blue"}, {0.5, "lime"}} {
		if err := g.AddColorStop(s.off, s.css); err != nil {
			t.Fatalf("AddColorStop(%v, %q) error = %v", s.off, s.css, err)
		}
	}
	var got []string
	for _, s := range g.Stops() {
		got = append(got, s.Color.String())
	}
	want := []string{"#0000ff", "#ff0000", "#00ff00"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stops mismatch (-want +got):\n%s", diff)
	}
}

func TestAddColorStopErrors(t *testing.T) {
	g, _ := NewLinearGradient(0, 0, 1, 0)
	for _, off := range []float64{-0.1, 1.5, math.NaN()} {
		if err := g.AddColorStop(off, "red"); !errors.Is(err, ErrIndexSize) {
			t.Errorf("AddColorStop(%v) error = %v, want ErrIndexSize", off, err)
		}
	}
	var se *SyntaxError
	if err := g.AddColorStop(0.5, "nope"); !errors.As(err, &se) {
		t.Errorf("AddColorStop(0.5, nope) error = %v, want SyntaxError", err)
	}
	if len(g.Stops()) != 0 {
		t.Errorf("Stops() = %v, want none", g.Stops())
	}
}

func TestGradientConstructors(t *testing.T) {
	if _, err := NewRadialGradient(0, 0, -1, 0, 0, 1); !errors.Is(err, ErrIndexSize) {
		t.Errorf("NewRadialGradient(negative radius) error = %v", err)
	}
	if _, err := NewLinearGradient(0, math.Inf(1), 0, 0); !errors.Is(err, ErrIndexSize) {
		t.Errorf("NewLinearGradient(inf) error = %v", err)
	}
	g, err := NewConicGradient(3*math.Pi, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	_ = g.AddColorStop(0, "red")
	p, ok := g.paint(geom.Identity(), color.PredefinedSRGB).(raster.SweepGradient)
	if !ok {
		t.Fatalf("paint() = %T, want SweepGradient", p)
	}
	if math.Abs(p.StartAngle-math.Pi) > 1e-12 || p.Spread != raster.Repeat {
		t.Errorf("sweep start %v spread %v, want pi repeat", p.StartAngle, p.Spread)
	}
}

func TestDegenerateGradientPaintsNothing(t *testing.T) {
	c := newCanvas(t, 4, 4)
	g, _ := c.CreateLinearGradient(1, 1, 1, 1)
	_ = g.AddColorStop(0, "red")
	c.SetFillStyle(g)
	c.FillRect(0, 0, 4, 4)
	if got := pixel(c, 2, 2); got != 0 {
		t.Errorf("pixel = %#08x, want 0", got)
	}
}

func TestLinearGradientFill(t *testing.T) {
	c := newCanvas(t, 10, 1)
	g, _ := c.CreateLinearGradient(0, 0, 10, 0)
	_ = g.AddColorStop(0, "red")
	_ = g.AddColorStop(1, "blue")
	c.SetFillStyle(g)
	c.FillRect(0, 0, 10, 1)

	left, right := pixel(c, 0, 0), pixel(c, 9, 0)
	if left>>16&0xff < 200 || left&0xff > 55 {
		t.Errorf("left pixel = %#08x, want mostly red", left)
	}
	if right&0xff < 200 || right>>16&0xff > 55 {
		t.Errorf("right pixel = %#08x, want mostly blue", right)
	}
}

func TestPatternFill(t *testing.T) {
	img, err := bitmap.FromPixels(2, 1, color.PredefinedSRGB, []uint32{red, blue})
	if err != nil {
		t.Fatal(err)
	}
	c := newCanvas(t, 4, 1)
	c.SetImageSmoothingEnabled(false)
	p, err := c.CreatePattern(img, "repeat-x")
	if err != nil {
		t.Fatal(err)
	}
	// The pattern keeps its own copy.
	img.Mutable()[0] = 0
	c.SetFillStyle(p)
	c.FillRect(0, 0, 4, 1)
	want := []uint32{red, blue, red, blue}
	if diff := cmp.Diff(want, c.target.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}

	if _, err := c.CreatePattern(img, "diagonal"); err == nil {
		t.Error("CreatePattern(diagonal) error = nil")
	}
}

func TestParseRepetition(t *testing.T) {
	tests := []struct {
		in   string
		want Repetition
	}{
		{"", Repeat},
		{"repeat", Repeat},
		{"repeat-x", RepeatX},
		{"repeat-y", RepeatY},
		{"no-repeat", NoRepeat},
	}
	for _, tt := range tests {
		got, err := ParseRepetition(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseRepetition(%q) = %v, %v, want %v", tt.in, got, err, tt.want)
		}
	}
	var se *SyntaxError
	if _, err := ParseRepetition("Repeat"); !errors.As(err, &se) {
		t.Errorf("ParseRepetition(Repeat) error = %v, want *SyntaxError", err)
	}
}
