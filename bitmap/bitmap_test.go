package bitmap

import (
	"errors"
	"image"
	imgcolor "image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/canvas/color"
)

func TestPixelsCopyOnWrite(t *testing.T) {
	a := PixelsOf([]uint32{1, 2, 3})
	b := a.Clone()
	if !a.Shared() || !b.Shared() {
		t.Fatal("clones should share storage")
	}
	if &a.Pix()[0] != &b.Pix()[0] {
		t.Fatal("Clone copied pixels")
	}
	w := b.MakeUnique()
	w[0] = 9
	if a.Pix()[0] != 1 {
		t.Errorf("original pixel = %d, want 1", a.Pix()[0])
	}
	if a.Shared() || b.Shared() {
		t.Error("storage still shared after MakeUnique")
	}
	before := &a.Pix()[0]
	a.MakeUnique()[1] = 7
	if &a.Pix()[0] != before {
		t.Error("MakeUnique copied unshared storage")
	}
}

func TestPixelsRelease(t *testing.T) {
	a := NewPixels(4)
	b := a.Clone()
	b.Release()
	if a.Shared() {
		t.Error("released clone still counted")
	}
}

func TestCheckSize(t *testing.T) {
	tests := []struct {
		w, h int
		ok   bool
	}{
		{0, 0, true},
		{100, 100, true},
		{-1, 1, false},
		{1 << 16, 1 << 15, false},
		{1 << 16, 1<<15 - 1, true},
	}
	for _, tt := range tests {
		err := CheckSize(tt.w, tt.h)
		if (err == nil) != tt.ok {
			t.Errorf("CheckSize(%d, %d) = %v, want ok=%v", tt.w, tt.h, err, tt.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("CheckSize error %v is not ErrInvalidDimensions", err)
		}
	}
}

func grid(t *testing.T, w, h int) *Bitmap {
	t.Helper()
	pix := make([]uint32, w*h)
	for i := range pix {
		pix[i] = 0xff000000 | uint32(i)
	}
	b, err := FromPixels(w, h, color.PredefinedSRGB, pix)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestCrop(t *testing.T) {
	b := grid(t, 4, 3)

	c, err := b.Crop(1, 1, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{0xff000005, 0xff000006, 0xff000009, 0xff00000a}
	if diff := cmp.Diff(want, c.Pix()); diff != "" {
		t.Errorf("Crop mismatch (-want +got):\n%s", diff)
	}

	neg, _ := b.Crop(3, 3, -2, -2)
	if diff := cmp.Diff(c.Pix(), neg.Pix()); diff != "" {
		t.Errorf("negative crop mismatch (-want +got):\n%s", diff)
	}

	partial, _ := b.Crop(3, 2, 2, 2)
	if got := partial.Pix(); got[0] != 0xff00000b || got[1] != 0 || got[2] != 0 || got[3] != 0 {
		t.Errorf("partial crop = %x", got)
	}

	outside, _ := b.Crop(10, 10, 5, 5)
	if outside.Data() != nil {
		t.Error("non-overlapping crop allocated pixels")
	}
	if outside.Width != 5 || outside.Height != 5 {
		t.Errorf("size = %dx%d, want 5x5", outside.Width, outside.Height)
	}
	if outside.At(0, 0) != 0 {
		t.Error("transparent bitmap has visible pixels")
	}

	full, _ := b.Crop(0, 0, 4, 3)
	if !full.Data().Shared() {
		t.Error("full crop should share storage")
	}
}

func TestFromRGBA8RoundTrip(t *testing.T) {
	rgba := []byte{255, 0, 0, 255, 10, 20, 30, 128, 0, 0, 0, 0, 200, 100, 50, 1}
	b, err := FromRGBA8(2, 2, color.PredefinedSRGB, rgba)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.At(0, 0); got != 0xffff0000 {
		t.Errorf("At(0,0) = %#x, want 0xffff0000", got)
	}
	out := b.ToRGBA8()
	for i := range rgba {
		if math.Abs(float64(out[i])-float64(rgba[i])) > 1 && rgba[i/4*4+3] > 1 {
			t.Errorf("byte %d = %d, want %d±1", i, out[i], rgba[i])
		}
	}
	if _, err := FromRGBA8(2, 2, color.PredefinedSRGB, rgba[:8]); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("short buffer error = %v", err)
	}
}

func TestFromImage(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, imgcolor.NRGBA{R: 255, A: 128})
	src.Set(6, 5, imgcolor.NRGBA{G: 255, A: 255})
	b, err := FromImage(src, color.PredefinedDisplayP3)
	if err != nil {
		t.Fatal(err)
	}
	if b.Width != 2 || b.Height != 1 || b.Space != color.PredefinedDisplayP3 {
		t.Fatalf("got %dx%d in %v", b.Width, b.Height, b.Space)
	}
	if got := b.At(0, 0); got != 0x80800000 {
		t.Errorf("At(0,0) = %#x, want 0x80800000", got)
	}
	if got := b.At(1, 0); got != 0xff00ff00 {
		t.Errorf("At(1,0) = %#x, want 0xff00ff00", got)
	}
}

func TestResize(t *testing.T) {
	b, _ := FromPixels(2, 1, color.PredefinedSRGB, []uint32{0xffff0000, 0xff0000ff})
	r, err := b.Resize(4, 2, Pixelated)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint32{
		0xffff0000, 0xffff0000, 0xff0000ff, 0xff0000ff,
		0xffff0000, 0xffff0000, 0xff0000ff, 0xff0000ff,
	}
	if diff := cmp.Diff(want, r.Pix()); diff != "" {
		t.Errorf("nearest resize mismatch (-want +got):\n%s", diff)
	}

	smooth, _ := b.Resize(4, 1, High)
	if smooth.At(0, 0)>>24 != 0xff {
		t.Errorf("smooth resize lost opacity: %#x", smooth.At(0, 0))
	}

	empty, _ := New(3, 3, color.PredefinedSRGB)
	if r, _ := empty.Resize(6, 6, Medium); r.Data() != nil {
		t.Error("resizing a transparent bitmap allocated")
	}
}

func TestConvertTo(t *testing.T) {
	b, _ := FromPixels(1, 1, color.PredefinedSRGB, []uint32{0xffff0000})
	p3 := b.ConvertTo(color.PredefinedDisplayP3)
	if b.At(0, 0) != 0xffff0000 {
		t.Error("ConvertTo modified the source")
	}
	r, g, _, a := color.Unpack(p3.At(0, 0))
	if a != 0xff || r >= 0xff || g == 0 {
		t.Errorf("sRGB red in Display-P3 = %#x", p3.At(0, 0))
	}
	same := b.ConvertTo(color.PredefinedSRGB)
	if !same.Data().Shared() {
		t.Error("same-space conversion copied pixels")
	}
}

func TestQualityInterpolator(t *testing.T) {
	for q := Pixelated; q <= High; q++ {
		if q.Interpolator() == nil {
			t.Errorf("%v has no interpolator", q)
		}
	}
	if got := Medium.String(); got != "medium" {
		t.Errorf("Medium.String() = %q", got)
	}
}
