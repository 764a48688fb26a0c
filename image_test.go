package canvas

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/codec"
	"github.com/gogpu/canvas/color"
)

func solidBitmap(t *testing.T, w, h int, px uint32) *bitmap.Bitmap {
	t.Helper()
	pix := make([]uint32, w*h)
	for i := range pix {
		pix[i] = px
	}
	b, err := bitmap.FromPixels(w, h, color.PredefinedSRGB, pix)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestDrawImage(t *testing.T) {
	c := newCanvas(t, 4, 4)
	c.SetImageSmoothingEnabled(false)
	if err := c.DrawImage(solidBitmap(t, 2, 2, red), 1, 1); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		x, y int
		want uint32
	}{
		{0, 0, 0},
		{1, 1, red},
		{2, 2, red},
		{3, 3, 0},
	}
	for _, tt := range tests {
		if got := pixel(c, tt.x, tt.y); got != tt.want {
			t.Errorf("pixel(%d, %d) = %#08x, want %#08x", tt.x, tt.y, got, tt.want)
		}
	}
	if err := c.DrawImage(nil, 0, 0); err == nil {
		t.Error("DrawImage(nil) error = nil")
	}
}

func TestDrawImageSourceClipping(t *testing.T) {
	c := newCanvas(t, 4, 1)
	c.SetImageSmoothingEnabled(false)
	img, _ := bitmap.FromPixels(2, 1, color.PredefinedSRGB, []uint32{red, blue})
	// The source rectangle hangs off the right edge: only the blue column
	// is drawn and the destination shrinks to match.
	if err := c.DrawImageRect(img, 1, 0, 2, 1, 0, 0, 4, 1); err != nil {
		t.Fatal(err)
	}
	want := []uint32{blue, blue, 0, 0}
	if diff := cmp.Diff(want, c.target.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawImageFlipped(t *testing.T) {
	c := newCanvas(t, 2, 1)
	c.SetImageSmoothingEnabled(false)
	img, _ := bitmap.FromPixels(2, 1, color.PredefinedSRGB, []uint32{red, blue})
	if err := c.DrawImageScaled(img, 2, 0, -2, 1); err != nil {
		t.Fatal(err)
	}
	// A negative width only moves the rectangle origin; pixels keep their order.
	want := []uint32{red, blue}
	if diff := cmp.Diff(want, c.target.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestDrawImageResampled(t *testing.T) {
	c := newCanvas(t, 8, 8)
	c.SetImageSmoothingQuality(bitmap.High)
	if err := c.DrawImageScaled(solidBitmap(t, 2, 2, red), 0, 0, 8, 8); err != nil {
		t.Fatal(err)
	}
	for _, pt := range [][2]int{{0, 0}, {4, 4}, {7, 7}} {
		if got := pixel(c, pt[0], pt[1]); got != red {
			t.Errorf("pixel%v = %#08x, want %#08x", pt, got, red)
		}
	}
}

func TestImageDataRoundTrip(t *testing.T) {
	c := newCanvas(t, 3, 3)
	img, err := c.CreateImageData(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	copy(img.Data, []byte{255, 0, 0, 255, 0, 0, 255, 128})
	if err := c.PutImageData(img, 1, 1); err != nil {
		t.Fatal(err)
	}
	got, err := c.GetImageData(1, 1, 2, 1, color.PredefinedSRGB)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{255, 0, 0, 255, 0, 0, 255, 128}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestPutImageDataIgnoresState(t *testing.T) {
	c := newCanvas(t, 2, 1)
	c.SetGlobalAlpha(0.1)
	c.Translate(1, 0)
	img, _ := c.CreateImageData(1, 1)
	copy(img.Data, []byte{0, 0, 255, 255})
	_ = c.PutImageData(img, 0, 0)
	if got := pixel(c, 0, 0); got != blue {
		t.Errorf("pixel = %#08x, want %#08x", got, blue)
	}
}

func TestPutImageDataDirty(t *testing.T) {
	c := newCanvas(t, 2, 2, WithAlpha(false))
	img, _ := NewImageData(2, 2, color.PredefinedSRGB)
	for i := range 4 {
		copy(img.Data[i*4:], []byte{255, 0, 0, 0})
	}
	_ = c.PutImageDataDirty(img, 0, 0, 1, 1, -1, -1)
	// Opaque canvases force full alpha over the premultiplied color.
	want := []uint32{black, black, black, black}
	if diff := cmp.Diff(want, c.target.Pix); diff != "" {
		t.Errorf("pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestGetImageDataOutside(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_ = c.SetFillStyleString("red")
	c.FillRect(0, 0, 2, 2)
	got, err := c.GetImageData(-1, -1, 2, 2, color.PredefinedSRGB)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 255, 0, 0, 255}
	if diff := cmp.Diff(want, got.Data); diff != "" {
		t.Errorf("data mismatch (-want +got):\n%s", diff)
	}
}

func TestImageDataSizeErrors(t *testing.T) {
	c := newCanvas(t, 2, 2)
	if _, err := c.CreateImageData(0, 4); !errors.Is(err, ErrIndexSize) {
		t.Errorf("CreateImageData(0, 4) error = %v, want ErrIndexSize", err)
	}
	if _, err := c.GetImageData(0, 0, 2, 0, color.PredefinedSRGB); !errors.Is(err, ErrIndexSize) {
		t.Errorf("GetImageData(0 height) error = %v, want ErrIndexSize", err)
	}
	img, err := c.CreateImageData(-2, 3)
	if err != nil || img.Width != 2 || img.Height != 3 {
		t.Errorf("CreateImageData(-2, 3) = %+v, %v", img, err)
	}
}

func TestEncodePNG(t *testing.T) {
	c := newCanvas(t, 3, 2, WithColorSpace(color.PredefinedDisplayP3))
	_ = c.SetFillStyleString("color(display-p3 1 0 0)")
	c.FillRect(0, 0, 3, 2)

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	if space, ok := codec.ColorSpace(buf.Bytes()); !ok || space != color.PredefinedDisplayP3 {
		t.Errorf("ColorSpace() = %v, %v, want display-p3", space, ok)
	}
	img, err := DecodeImage(buf.Bytes(), "")
	if err != nil {
		t.Fatalf("DecodeImage() error = %v", err)
	}
	if img.Space != color.PredefinedDisplayP3 || img.Width != 3 || img.Height != 2 {
		t.Errorf("decoded %dx%d in %v", img.Width, img.Height, img.Space)
	}
	if got := img.At(2, 1); got != red {
		t.Errorf("decoded pixel = %#08x, want %#08x", got, red)
	}
}

func TestEncodeErrors(t *testing.T) {
	c := newCanvas(t, 1, 1)
	var buf bytes.Buffer
	err := c.Encode(&buf, "image/x-unknown", 0)
	var fe *FormatError
	if !errors.As(err, &fe) || !errors.Is(err, ErrUnsupportedMIME) {
		t.Errorf("Encode(unknown) error = %v, want FormatError wrapping ErrUnsupportedMIME", err)
	}

	empty := newCanvas(t, 0, 5)
	if err := empty.EncodePNG(&buf); !errors.Is(err, ErrNoPixels) {
		t.Errorf("EncodePNG(empty) error = %v, want ErrNoPixels", err)
	}
	if _, err := DecodeImage([]byte("not an image"), ""); !errors.Is(err, ErrUnsupportedMIME) {
		t.Errorf("DecodeImage(garbage) error = %v, want ErrUnsupportedMIME", err)
	}
}

func TestSnapshotAndTransfer(t *testing.T) {
	c := newCanvas(t, 2, 2)
	_ = c.SetFillStyleString("red")
	c.FillRect(0, 0, 2, 2)

	snap := c.Snapshot()
	c.ClearRect(0, 0, 1, 1)
	if got := snap.At(0, 0); got != red {
		t.Errorf("snapshot pixel = %#08x, want %#08x", got, red)
	}

	bm := c.TransferToImageBitmap()
	if got := bm.At(1, 1); got != red {
		t.Errorf("transferred pixel = %#08x, want %#08x", got, red)
	}
	if got := pixel(c, 1, 1); got != 0 {
		t.Errorf("canvas pixel after transfer = %#08x, want 0", got)
	}
	if got := c.FillStyle().(SolidStyle).String(); got != "#ff0000" {
		t.Errorf("FillStyle() after transfer = %q, want #ff0000", got)
	}
}
