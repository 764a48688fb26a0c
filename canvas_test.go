package canvas

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
)

const (
	red   = 0xffff0000
	blue  = 0xff0000ff
	black = 0xff000000
)

func newCanvas(t *testing.T, w, h int, opts ...Option) *Canvas {
	t.Helper()
	c, err := New(w, h, opts...)
	if err != nil {
		t.Fatalf("New(%d, %d) error = %v", w, h, err)
	}
	return c
}

func pixel(c *Canvas, x, y int) uint32 { return c.target.Pix[y*c.target.Stride+x] }

func TestNewSize(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		wantErr bool
	}{
		{"empty", 0, 0, false},
		{"small", 3, 5, false},
		{"negative", -1, 4, true},
		{"over 2^31-1 pixels", 65536, 32768, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.w, tt.h)
			if tt.wantErr {
				var re *RangeError
				if !errors.As(err, &re) || !errors.Is(err, ErrIndexSize) {
					t.Fatalf("New(%d, %d) error = %v, want RangeError", tt.w, tt.h, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%d, %d) error = %v", tt.w, tt.h, err)
			}
			if c.Width() != tt.w || c.Height() != tt.h {
				t.Errorf("size = %dx%d, want %dx%d", c.Width(), c.Height(), tt.w, tt.h)
			}
		})
	}
}

func TestNewOpaqueStartsBlack(t *testing.T) {
	c := newCanvas(t, 2, 2, WithAlpha(false))
	if got := pixel(c, 1, 1); got != black {
		t.Errorf("pixel = %#08x, want %#08x", got, black)
	}
}

func TestSaveRestore(t *testing.T) {
	c := newCanvas(t, 4, 4)
	c.SetLineWidth(5)
	_ = c.SetFillStyleString("red")
	c.SetLineDash([]float64{1, 2, 3})
	c.Translate(3, 4)
	c.Save()

	c.SetLineWidth(9)
	_ = c.SetFillStyleString("blue")
	c.SetLineDash(nil)
	c.SetGlobalAlpha(0.25)
	c.SetGlobalCompositeOperation(Xor)
	_ = c.SetFont("bold 20px serif")
	_ = c.SetFilter("blur(2px)")
	c.ResetTransform()
	c.Restore()

	if got := c.LineWidth(); got != 5 {
		t.Errorf("LineWidth() = %v, want 5", got)
	}
	if got := c.FillStyle().(SolidStyle).String(); got != "#ff0000" {
		t.Errorf("FillStyle() = %v, want #ff0000", got)
	}
	if diff := cmp.Diff([]float64{1, 2, 3, 1, 2, 3}, c.LineDash()); diff != "" {
		t.Errorf("LineDash() mismatch (-want +got):\n%s", diff)
	}
	if got := c.GlobalAlpha(); got != 1 {
		t.Errorf("GlobalAlpha() = %v, want 1", got)
	}
	if got := c.GlobalCompositeOperation(); got != SourceOver {
		t.Errorf("GlobalCompositeOperation() = %v, want source-over", got)
	}
	if got := c.Font(); got != "10px sans-serif" {
		t.Errorf("Font() = %q, want 10px sans-serif", got)
	}
	if got := c.Filter(); got != "none" {
		t.Errorf("Filter() = %q, want none", got)
	}
	if got, want := c.GetTransform(), geom.Translate(3, 4); got != want {
		t.Errorf("GetTransform() = %v, want %v", got, want)
	}
	if c.SaveDepth() != 0 {
		t.Errorf("SaveDepth() = %d, want 0", c.SaveDepth())
	}

	// Unbalanced restores are ignored.
	c.Restore()
	if got := c.LineWidth(); got != 5 {
		t.Errorf("LineWidth() after extra Restore = %v, want 5", got)
	}
}

func TestRestorePopsClips(t *testing.T) {
	c := newCanvas(t, 4, 4)
	c.Save()
	c.Rect(0, 0, 2, 2)
	c.Clip(raster.NonZero)
	c.Clip(raster.NonZero)
	if c.ClipDepth() != 2 {
		t.Fatalf("ClipDepth() = %d, want 2", c.ClipDepth())
	}
	c.Restore()
	if c.ClipDepth() != 0 {
		t.Errorf("ClipDepth() after Restore = %d, want 0", c.ClipDepth())
	}
	if c.target.Clip() != nil {
		t.Error("target still clipped after Restore")
	}
	_ = c.SetFillStyleString("red")
	c.FillRect(0, 0, 4, 4)
	if got := pixel(c, 3, 3); got != red {
		t.Errorf("pixel(3, 3) = %#08x, want %#08x", got, red)
	}
}

func TestTransformIgnoresNonFinite(t *testing.T) {
	c := newCanvas(t, 1, 1)
	c.Translate(math.NaN(), 0)
	c.Scale(math.Inf(1), 1)
	c.Transform(1, 0, 0, 1, math.Inf(-1), 0)
	if got := c.GetTransform(); got != geom.Identity() {
		t.Errorf("GetTransform() = %v, want identity", got)
	}
}

func TestResetClearsEverything(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_ = c.SetFillStyleString("red")
	c.FillRect(0, 0, 2, 2)
	c.Save()
	c.Rect(0, 0, 1, 1)
	c.Clip(raster.NonZero)
	c.MoveTo(0, 0)
	c.Reset()

	if got := pixel(c, 0, 0); got != 0 {
		t.Errorf("pixel = %#08x, want 0", got)
	}
	if c.SaveDepth() != 0 || c.ClipDepth() != 0 || !c.Path().IsEmpty() {
		t.Errorf("after Reset: SaveDepth %d, ClipDepth %d, path empty %v", c.SaveDepth(), c.ClipDepth(), c.Path().IsEmpty())
	}
	if got := c.FillStyle().(SolidStyle).String(); got != "#000000" {
		t.Errorf("FillStyle() = %v, want #000000", got)
	}
}

func TestResize(t *testing.T) {
	c := newCanvas(t, 2, 2)
	c.SetLineWidth(3)
	if err := c.Resize(5, 1); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if c.Width() != 5 || c.Height() != 1 || len(c.target.Pix) != 5 {
		t.Errorf("size = %dx%d (%d pixels), want 5x1", c.Width(), c.Height(), len(c.target.Pix))
	}
	if c.LineWidth() != 1 {
		t.Errorf("LineWidth() = %v, want 1", c.LineWidth())
	}
	if err := c.Resize(-1, 1); !errors.Is(err, ErrIndexSize) {
		t.Errorf("Resize(-1, 1) error = %v, want ErrIndexSize", err)
	}
}
