// Package bitmap implements ImageBitmap: an immutable-looking premultiplied
// image with copy-on-write pixel storage and a color space tag.
//
// A Bitmap without pixel data is fully transparent. Crops that do not
// overlap the source produce such bitmaps without allocating.
package bitmap

import (
	"errors"
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/canvas/color"
)

// ErrInvalidDimensions is returned for negative sizes or sizes whose pixel
// count does not fit in a signed 32-bit integer.
var ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

// MaxPixels is the largest pixel count a bitmap may hold.
const MaxPixels = math.MaxInt32

// Quality selects the resampling kernel used when scaling.
type Quality uint8

const (
	// Pixelated disables smoothing.
	Pixelated Quality = iota
	Low
	Medium
	High
)

var qualityNames = [...]string{"pixelated", "low", "medium", "high"}

func (q Quality) String() string {
	if int(q) < len(qualityNames) {
		return qualityNames[q]
	}
	return fmt.Sprintf("Quality(%d)", q)
}

// Interpolator returns the x/image/draw scaler for q.
func (q Quality) Interpolator() draw.Interpolator {
	switch q {
	case Low:
		return draw.ApproxBiLinear
	case Medium:
		return draw.BiLinear
	case High:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Bitmap is a premultiplied ARGB32 image.
type Bitmap struct {
	Width, Height int
	Space         color.PredefinedSpace
	data          *Pixels
}

// CheckSize validates a width and height pair.
func CheckSize(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width != 0 && height > MaxPixels/width {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimensions, width, height, MaxPixels)
	}
	return nil
}

// New returns a transparent bitmap. No storage is allocated until pixels
// are written.
func New(width, height int, space color.PredefinedSpace) (*Bitmap, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}
	return &Bitmap{Width: width, Height: height, Space: space}, nil
}

// FromPixels wraps pix, which must hold width*height pixels. The bitmap
// takes ownership of pix.
func FromPixels(width, height int, space color.PredefinedSpace, pix []uint32) (*Bitmap, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidDimensions, len(pix), width, height)
	}
	return &Bitmap{Width: width, Height: height, Space: space, data: PixelsOf(pix)}, nil
}

// FromShared creates a bitmap that shares data with its other owners.
func FromShared(width, height int, space color.PredefinedSpace, data *Pixels) *Bitmap {
	return &Bitmap{Width: width, Height: height, Space: space, data: data.Clone()}
}

// FromRGBA8 premultiplies straight-alpha RGBA bytes.
func FromRGBA8(width, height int, space color.PredefinedSpace, rgba []byte) (*Bitmap, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, err
	}
	if len(rgba) != width*height*4 {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidDimensions, len(rgba), width, height)
	}
	pix := make([]uint32, width*height)
	for i := range pix {
		s := rgba[i*4 : i*4+4 : i*4+4]
		pix[i] = color.PackStraight(s[0], s[1], s[2], s[3])
	}
	return &Bitmap{Width: width, Height: height, Space: space, data: PixelsOf(pix)}, nil
}

// FromImage converts any image, tagging the result with space.
func FromImage(img image.Image, space color.PredefinedSpace) (*Bitmap, error) {
	b := img.Bounds()
	if err := CheckSize(b.Dx(), b.Dy()); err != nil {
		return nil, err
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	}
	return &Bitmap{Width: b.Dx(), Height: b.Dy(), Space: space, data: PixelsOf(fromRGBA(rgba))}, nil
}

// Data returns the pixel storage, or nil for a transparent bitmap.
func (b *Bitmap) Data() *Pixels { return b.data }

// Pix returns the pixels for reading, or nil for a transparent bitmap.
func (b *Bitmap) Pix() []uint32 {
	if b.data == nil {
		return nil
	}
	return b.data.Pix()
}

// Empty reports whether the bitmap has no area.
func (b *Bitmap) Empty() bool { return b.Width == 0 || b.Height == 0 }

// Clone returns a bitmap sharing b's storage.
func (b *Bitmap) Clone() *Bitmap {
	c := *b
	if b.data != nil {
		c.data = b.data.Clone()
	}
	return &c
}

// Mutable returns writable pixels, allocating transparent storage when the
// bitmap has none and detaching shared storage.
func (b *Bitmap) Mutable() []uint32 {
	if b.data == nil {
		b.data = NewPixels(b.Width * b.Height)
	}
	return b.data.MakeUnique()
}

// At returns the premultiplied pixel at (x, y), transparent outside.
func (b *Bitmap) At(x, y int) uint32 {
	if b.data == nil || x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.data.Pix()[y*b.Width+x]
}

// Crop returns the sw×sh region at (sx, sy). Negative sizes extend left or
// up from the origin. Pixels outside b are transparent, and a region that
// does not overlap b has no data.
func (b *Bitmap) Crop(sx, sy, sw, sh int) (*Bitmap, error) {
	if sw < 0 {
		sx, sw = sx+sw, -sw
	}
	if sh < 0 {
		sy, sh = sy+sh, -sh
	}
	out, err := New(sw, sh, b.Space)
	if err != nil {
		return nil, err
	}
	region := image.Rect(sx, sy, sx+sw, sy+sh)
	overlap := region.Intersect(image.Rect(0, 0, b.Width, b.Height))
	if overlap.Empty() || b.data == nil {
		return out, nil
	}
	if region == image.Rect(0, 0, b.Width, b.Height) {
		return b.Clone(), nil
	}
	src := b.data.Pix()
	dst := out.Mutable()
	for y := overlap.Min.Y; y < overlap.Max.Y; y++ {
		copy(dst[(y-sy)*sw+overlap.Min.X-sx:], src[y*b.Width+overlap.Min.X:y*b.Width+overlap.Max.X])
	}
	return out, nil
}

// Resize scales b to width×height with the kernel selected by q.
func (b *Bitmap) Resize(width, height int, q Quality) (*Bitmap, error) {
	out, err := New(width, height, b.Space)
	if err != nil {
		return nil, err
	}
	if b.data == nil || out.Empty() || b.Empty() {
		return out, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	q.Interpolator().Scale(dst, dst.Rect, b.RGBA(), image.Rect(0, 0, b.Width, b.Height), draw.Src, nil)
	out.data = PixelsOf(fromRGBA(dst))
	return out, nil
}

// ConvertTo returns b re-encoded in space. The result shares nothing with
// b when a conversion happens.
func (b *Bitmap) ConvertTo(space color.PredefinedSpace) *Bitmap {
	c := b.Clone()
	if space == b.Space {
		return c
	}
	c.Space = space
	if c.data != nil {
		color.TransformBuffer(c.data.MakeUnique(), b.Space, space)
	}
	return c
}

// ToRGBA8 returns straight-alpha RGBA bytes.
func (b *Bitmap) ToRGBA8() []byte {
	out := make([]byte, b.Width*b.Height*4)
	if b.data == nil {
		return out
	}
	for i, p := range b.data.Pix() {
		r, g, bl, a := color.UnpackStraight(p)
		out[i*4], out[i*4+1], out[i*4+2], out[i*4+3] = r, g, bl, a
	}
	return out
}

// RGBA returns a copy of b as a premultiplied image.RGBA.
func (b *Bitmap) RGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	if b.data == nil {
		return img
	}
	for i, p := range b.data.Pix() {
		r, g, bl, a := color.Unpack(p)
		img.Pix[i*4], img.Pix[i*4+1], img.Pix[i*4+2], img.Pix[i*4+3] = r, g, bl, a
	}
	return img
}

func fromRGBA(img *image.RGBA) []uint32 {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	pix := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			pix[y*w+x] = color.Pack(row[x*4], row[x*4+1], row[x*4+2], row[x*4+3])
		}
	}
	return pix
}
