package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/internal/css"
	"github.com/gogpu/canvas/raster"
)

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want []Function
	}{
		{"none", nil},
		{"blur(2px)", []Function{{Kind: Blur, Amount: 2}}},
		{"blur()", []Function{{Kind: Blur}}},
		{"brightness(150%) contrast(2)", []Function{{Kind: Brightness, Amount: 1.5}, {Kind: Contrast, Amount: 2}}},
		{"grayscale(200%)", []Function{{Kind: Grayscale, Amount: 1}}},
		{"hue-rotate(-0.25turn)", []Function{{Kind: HueRotate, Amount: -90}}},
		{"hue-rotate(0)", []Function{{Kind: HueRotate}}},
		{"invert()", []Function{{Kind: Invert, Amount: 1}}},
		{"SEPIA(0.5)", []Function{{Kind: Sepia, Amount: 0.5}}},
	}
	for _, tt := range tests {
		got, err := Parse(tt.src)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.src, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestParseDropShadow(t *testing.T) {
	tests := []struct {
		src        string
		dx, dy, bl float64
		current    bool
	}{
		{"drop-shadow(1px 2px)", 1, 2, 0, true},
		{"drop-shadow(red 1px 2px 4px)", 1, 2, 4, false},
		{"drop-shadow(1px -2px 3px rgb(0 0 0 / 50%))", 1, -2, 3, false},
	}
	for _, tt := range tests {
		fs, err := Parse(tt.src)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.src, err)
			continue
		}
		f := fs[0]
		if f.Kind != DropShadow || f.DX != tt.dx || f.DY != tt.dy || f.Blur != tt.bl || f.Color.Current != tt.current {
			t.Errorf("Parse(%q) = %+v", tt.src, f)
		}
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"",
		"blur(-1px)",
		"blur(2)",
		"brightness(-1)",
		"opacity(1, 2)",
		"foo(1)",
		"blur(1px",
		"drop-shadow(1px)",
		"drop-shadow(1px 2px -3px)",
		"none blur(1px)",
	} {
		_, err := Parse(src)
		var se *css.SyntaxError
		if !errors.As(err, &se) {
			t.Errorf("Parse(%q) error = %v, want *css.SyntaxError", src, err)
			continue
		}
		if se.Kind != css.KindFilter {
			t.Errorf("Parse(%q) error kind = %v, want filter", src, se.Kind)
		}
	}
}

func TestFormat(t *testing.T) {
	fs, err := Parse("blur(2px) hue-rotate(90deg) saturate(50%)")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := Format(fs), "blur(2px) hue-rotate(90deg) saturate(0.5)"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
	if got := Format(nil); got != "none" {
		t.Errorf("Format(nil) = %q, want none", got)
	}
}

func compile(t *testing.T, src string, alpha float32) Filter {
	t.Helper()
	fs, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return Compile(fs, alpha, color.PredefinedSRGB)
}

func ops(f Filter) []Op {
	var out []Op
	for _, in := range f.Instructions {
		out = append(out, in.Op)
	}
	return out
}

func TestCompileDropsZeroBlur(t *testing.T) {
	f := compile(t, "blur(0px) brightness(150%)", 1)
	if diff := cmp.Diff([]Op{OpColorMatrix}, ops(f)); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}
	m := f.Instructions[0].Matrix
	if m[0] != 1.5 || m[6] != 1.5 || m[12] != 1.5 || m[18] != 1 {
		t.Errorf("matrix = %v, want brightness 1.5", m)
	}
}

func TestCompileBoundaries(t *testing.T) {
	tests := []struct {
		src  string
		want []Op
	}{
		{"grayscale(1) sepia(1)", []Op{OpColorMatrix}},
		{"brightness(2) contrast(0.5)", []Op{OpColorMatrix, OpNoOp, OpColorMatrix}},
		{"brightness(0.5) blur(1px) invert(1)", []Op{OpColorMatrix, OpBlur, OpColorMatrix}},
		{"drop-shadow(1px 1px) opacity(0.5)", []Op{OpDropShadow, OpColorMatrix}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ops(compile(t, tt.src, 1))); diff != "" {
			t.Errorf("Compile(%q) ops mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

// runMatrices applies the color matrix instructions of f in order.
func runMatrices(f Filter, c [4]float64) [4]float64 {
	for _, in := range f.Instructions {
		if in.Op == OpColorMatrix {
			c = in.Matrix.Apply(c)
		}
	}
	return c
}

func TestCompositionMatchesSequential(t *testing.T) {
	funcs := []string{
		"brightness(1.7)", "contrast(0.3)", "contrast(1.8)", "grayscale(0.6)", "hue-rotate(130deg)",
		"invert(0.8)", "opacity(0.4)", "saturate(2.5)", "sepia(0.7)",
	}
	colors := [][4]float64{
		{0.9, 0.2, 0.1, 1},
		{0.1, 0.5, 0.95, 0.6},
		{0.5, 0.5, 0.5, 0.3},
		{1, 1, 0, 1},
	}
	for _, a := range funcs {
		for _, b := range funcs {
			compiled := compile(t, a+" "+b, 1)
			first, second := compile(t, a, 1), compile(t, b, 1)
			for _, c := range colors {
				got := runMatrices(compiled, c)
				want := runMatrices(second, runMatrices(first, c))
				for k := range got {
					if math.Abs(got[k]-want[k]) > 1e-9 {
						t.Errorf("%s %s on %v: composed = %v, sequential = %v", a, b, c, got, want)
						break
					}
				}
			}
		}
	}
}

func TestPaintOnly(t *testing.T) {
	tests := []struct {
		src   string
		alpha float32
		paint bool
		want  float32
	}{
		{"none", 1, true, 1},
		{"none", 0.5, true, 0.5},
		{"opacity(50%)", 0.5, true, 0.25},
		{"brightness(1)", 1, true, 1},
		{"blur(2px)", 1, false, 0},
		{"sepia(1)", 1, false, 0},
	}
	for _, tt := range tests {
		f := compile(t, tt.src, tt.alpha)
		if got := f.IsPaintOnly(); got != tt.paint {
			t.Errorf("%q IsPaintOnly = %v, want %v", tt.src, got, tt.paint)
			continue
		}
		if tt.paint {
			if got := f.Alpha(); math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("%q Alpha = %v, want %v", tt.src, got, tt.want)
			}
		}
	}
}

func TestOverflow(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"none", 0},
		{"blur(2px)", 6},
		{"blur(0.5px)", 2},
		{"drop-shadow(3px -4px 2px)", 7},
		{"blur(1px) drop-shadow(1px 1px)", 4},
	}
	for _, tt := range tests {
		if got := compile(t, tt.src, 1).Overflow(); got != tt.want {
			t.Errorf("%q Overflow = %d, want %d", tt.src, got, tt.want)
		}
	}
}

func TestGaussianKernel(t *testing.T) {
	for _, sigma := range []float64{0.5, 1, 2.5, 10} {
		k := GaussianKernel(sigma)
		if want := 2*int(math.Ceil(3*sigma)) + 1; len(k) != want {
			t.Errorf("len(GaussianKernel(%v)) = %d, want %d", sigma, len(k), want)
		}
		var sum float64
		for _, v := range k {
			sum += float64(v)
		}
		if math.Abs(sum-1) > 1e-5 {
			t.Errorf("GaussianKernel(%v) sums to %v", sigma, sum)
		}
		if k[0] != k[len(k)-1] {
			t.Errorf("GaussianKernel(%v) is not symmetric", sigma)
		}
	}
	if k := GaussianKernel(0); len(k) != 1 || k[0] != 1 {
		t.Errorf("GaussianKernel(0) = %v, want [1]", k)
	}
}

func TestCachedGaussianKernelRadius(t *testing.T) {
	// 1.0 and 1.005 share a 1/100 bucket but need radii 3 and 4.
	for _, sigma := range []float64{1, 1.005, 1, 0.999} {
		k := CachedGaussianKernel(sigma)
		if want := 2*KernelRadius(sigma) + 1; len(k) != want {
			t.Errorf("len(CachedGaussianKernel(%v)) = %d, want %d", sigma, len(k), want)
		}
		if diff := cmp.Diff(GaussianKernel(sigma), k); diff != "" {
			t.Errorf("CachedGaussianKernel(%v) mismatch (-want +got):\n%s", sigma, diff)
		}
	}
}

func layer(w, h int) *raster.Target { return raster.NewTarget(w, h) }

func TestBlurZeroIsCopy(t *testing.T) {
	l := layer(3, 3)
	for i := range l.Pix {
		l.Pix[i] = uint32(i) * 0x01010101
	}
	want := append([]uint32(nil), l.Pix...)
	GaussianBlur(l, 0)
	if diff := cmp.Diff(want, l.Pix); diff != "" {
		t.Errorf("blur(0) changed pixels (-want +got):\n%s", diff)
	}
}

func TestBlurSpreads(t *testing.T) {
	l := layer(21, 21)
	l.Pix[10*21+10] = 0xffffffff
	GaussianBlur(l, 2)
	center := l.Pix[10*21+10] >> 24
	if center == 0 || center == 255 {
		t.Errorf("center alpha = %d, want partially spread", center)
	}
	if l.Pix[10*21+12] != l.Pix[10*21+8] || l.Pix[12*21+10] != l.Pix[8*21+10] {
		t.Error("blur is not symmetric")
	}
	if l.Pix[0] != 0 {
		t.Errorf("corner beyond the radius = %#08x, want 0", l.Pix[0])
	}
	for _, p := range l.Pix {
		if a := p >> 24; p>>16&0xff > a || p&0xff > a {
			t.Fatalf("pixel %#08x is not premultiplied", p)
		}
	}
}

func TestMakeShadow(t *testing.T) {
	l := layer(2, 1)
	l.Pix[0] = 0xff00ff00
	l.Pix[1] = 0x80808080
	MakeShadow(l, 0xffff0000, 0)
	if l.Pix[0] != 0xffff0000 {
		t.Errorf("opaque pixel shadow = %#08x, want red", l.Pix[0])
	}
	if l.Pix[1] != 0x80800000 {
		t.Errorf("half alpha shadow = %#08x, want 0x80800000", l.Pix[1])
	}
}

func TestDropShadow(t *testing.T) {
	l := layer(6, 3)
	l.Pix[1*6+1] = 0xff0000ff
	f := compile(t, "drop-shadow(2px 0 red)", 1)
	f.Apply(l)
	if got := l.Pix[1*6+1]; got != 0xff0000ff {
		t.Errorf("original = %#08x, want blue kept on top", got)
	}
	if got := l.Pix[1*6+3]; got != 0xffff0000 {
		t.Errorf("shadow = %#08x, want red", got)
	}
	if got := l.Pix[1*6+2]; got != 0 {
		t.Errorf("between = %#08x, want transparent", got)
	}
}

func TestApplyMatrix(t *testing.T) {
	l := layer(2, 1)
	l.Pix[0] = 0xffffffff
	l.Pix[1] = 0
	m := InvertMatrix(1)
	ApplyMatrix(l, &m)
	if l.Pix[0] != 0xff000000 {
		t.Errorf("invert(white) = %#08x, want black", l.Pix[0])
	}
	if l.Pix[1] != 0 {
		t.Errorf("invert(transparent) = %#08x, want transparent", l.Pix[1])
	}
}

func TestApplyGlobalAlpha(t *testing.T) {
	l := layer(1, 1)
	l.Pix[0] = 0xffff0000
	compile(t, "none", 0.5).Apply(l)
	if got := l.Pix[0]; got != 0x80800000 {
		t.Errorf("alpha 0.5 = %#08x, want 0x80800000", got)
	}
}

func TestParallelBlurMatchesSerial(t *testing.T) {
	const n = 256
	serial := layer(n, n)
	for y := range n {
		for x := range n {
			if (x/16+y/16)%2 == 0 {
				serial.Pix[y*n+x] = 0xff2060c0
			}
		}
	}
	par := layer(n, n)
	copy(par.Pix, serial.Pix)

	f := compile(t, "blur(3px) drop-shadow(4px 4px 2px black)", 1)
	f.Apply(serial)
	f.Parallel = true
	f.Apply(par)
	if diff := cmp.Diff(serial.Pix, par.Pix); diff != "" {
		t.Errorf("parallel blur differs from serial (-serial +parallel):\n%s", diff)
	}
}
