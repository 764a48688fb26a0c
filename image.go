package canvas

import (
	"errors"
	"image"
	"math"

	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/codec"
	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
)

var errNilImage = errors.New("image is nil")

// DrawImage draws img at (dx, dy) at its natural size.
func (c *Canvas) DrawImage(img *bitmap.Bitmap, dx, dy float64) error {
	if img == nil {
		return &StateError{Op: "drawImage", Err: errNilImage}
	}
	w, h := float64(img.Width), float64(img.Height)
	return c.DrawImageRect(img, 0, 0, w, h, dx, dy, w, h)
}

// DrawImageScaled draws img scaled into the rectangle (dx, dy, dw, dh).
func (c *Canvas) DrawImageScaled(img *bitmap.Bitmap, dx, dy, dw, dh float64) error {
	if img == nil {
		return &StateError{Op: "drawImage", Err: errNilImage}
	}
	return c.DrawImageRect(img, 0, 0, float64(img.Width), float64(img.Height), dx, dy, dw, dh)
}

// DrawImageRect draws the source rectangle (sx, sy, sw, sh) of img into the
// destination rectangle (dx, dy, dw, dh). Negative sizes flip the
// rectangle around its origin. Source areas outside img are dropped and
// the destination shrinks with them.
func (c *Canvas) DrawImageRect(img *bitmap.Bitmap, sx, sy, sw, sh, dx, dy, dw, dh float64) error {
	if img == nil {
		return &StateError{Op: "drawImage", Err: errNilImage}
	}
	if !finite(sx, sy, sw, sh, dx, dy, dw, dh) || img.Empty() {
		return nil
	}
	sx, sw = normalizeSpan(sx, sw)
	sy, sh = normalizeSpan(sy, sh)
	dx, dw = normalizeSpan(dx, dw)
	dy, dh = normalizeSpan(dy, dh)
	if sw == 0 || sh == 0 || dw == 0 || dh == 0 {
		return nil
	}

	kx, ky := dw/sw, dh/sh
	x0, x1 := max(sx, 0), min(sx+sw, float64(img.Width))
	y0, y1 := max(sy, 0), min(sy+sh, float64(img.Height))
	if x0 >= x1 || y0 >= y1 {
		return nil
	}
	dx, dy = dx+(x0-sx)*kx, dy+(y0-sy)*ky
	dw, dh = (x1-x0)*kx, (y1-y0)*ky
	sx, sy, sw, sh = x0, y0, x1-x0, y1-y0

	src := img.ConvertTo(c.space)
	if src.Data() == nil {
		src.Mutable()
	}
	if p, ok := c.resampled(src, sx, sy, sw, sh, dx, dy, dw, dh); ok {
		c.paint(c.rectPath(dx, dy, dw, dh), raster.NonZero, p)
		return nil
	}

	m := c.state.transform.
		Mul(geom.Translate(dx, dy)).
		Mul(geom.Scale(kx, ky)).
		Mul(geom.Translate(-sx, -sy))
	f := raster.Nearest
	if c.state.smoothing {
		f = raster.Bilinear
	}
	c.paint(c.rectPath(dx, dy, dw, dh), raster.NonZero, raster.ImagePattern{
		Pix:       src.Pix(),
		Width:     src.Width,
		Height:    src.Height,
		Transform: m,
		Filter:    f,
	})
	return nil
}

// resampled scales the source region to its device size with the kernel
// of the smoothing quality. It applies to pixel-aligned sources under a
// positive axis-aligned scale with medium or high quality; other draws
// sample the source directly.
func (c *Canvas) resampled(src *bitmap.Bitmap, sx, sy, sw, sh, dx, dy, dw, dh float64) (raster.Paint, bool) {
	m := c.state.transform
	if !c.state.smoothing || c.state.quality < bitmap.Medium || m.B != 0 || m.C != 0 || m.A <= 0 || m.D <= 0 {
		return nil, false
	}
	if !whole(sx, sy, sw, sh) {
		return nil, false
	}
	w, h := int(math.Round(dw*m.A)), int(math.Round(dh*m.D))
	if w <= 0 || h <= 0 || (w == int(sw) && h == int(sh)) {
		return nil, false
	}
	region, err := src.Crop(int(sx), int(sy), int(sw), int(sh))
	if err != nil {
		return nil, false
	}
	scaled, err := region.Resize(w, h, c.state.quality)
	if err != nil || scaled.Data() == nil {
		return nil, false
	}
	origin := m.Apply(geom.Pt(dx, dy))
	Logger().Debug("canvas: resampled image", "from", image.Pt(int(sw), int(sh)), "to", image.Pt(w, h), "quality", c.state.quality)
	return raster.ImagePattern{
		Pix:    scaled.Pix(),
		Width:  w,
		Height: h,
		Transform: geom.Translate(origin.X, origin.Y).
			Mul(geom.Scale(dw*m.A/float64(w), dh*m.D/float64(h))),
		Filter: raster.Bilinear,
	}, true
}

func normalizeSpan(x, w float64) (float64, float64) {
	if w < 0 {
		return x + w, -w
	}
	return x, w
}

func whole(vs ...float64) bool {
	for _, v := range vs {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}

// CreatePattern returns a pattern tiling a snapshot of img. repetition is
// one of "repeat", "repeat-x", "repeat-y", "no-repeat" or "" for repeat.
func (c *Canvas) CreatePattern(img *bitmap.Bitmap, repetition string) (*Pattern, error) {
	rep, err := ParseRepetition(repetition)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, &StateError{Op: "createPattern", Err: errNilImage}
	}
	return NewPattern(img, rep), nil
}

// CreateLinearGradient is NewLinearGradient.
func (c *Canvas) CreateLinearGradient(x0, y0, x1, y1 float64) (*Gradient, error) {
	return NewLinearGradient(x0, y0, x1, y1)
}

// CreateRadialGradient is NewRadialGradient.
func (c *Canvas) CreateRadialGradient(x0, y0, r0, x1, y1, r1 float64) (*Gradient, error) {
	return NewRadialGradient(x0, y0, r0, x1, y1, r1)
}

// CreateConicGradient is NewConicGradient.
func (c *Canvas) CreateConicGradient(angle, x, y float64) (*Gradient, error) {
	return NewConicGradient(angle, x, y)
}

// DecodeImage decodes an encoded image into a bitmap. An empty mime sniffs
// the type. PNG images tagged with a Display P3 cICP chunk are tagged
// DisplayP3; everything else is sRGB.
func DecodeImage(data []byte, mime string) (*bitmap.Bitmap, error) {
	img, err := codec.Decode(data, mime)
	if err != nil {
		return nil, &FormatError{Op: "decode", MIME: mime, Err: err}
	}
	space, ok := codec.ColorSpace(data)
	if !ok {
		space = color.PredefinedSRGB
	}
	b, err := bitmap.FromImage(img, space)
	if err != nil {
		return nil, &FormatError{Op: "decode", MIME: mime, Err: err}
	}
	return b, nil
}

// ImageData is straight-alpha RGBA8 pixel data, four bytes per pixel in
// row-major order.
type ImageData struct {
	Width, Height int
	Space         color.PredefinedSpace
	Data          []byte
}

// NewImageData returns transparent black image data. Zero sizes are a
// RangeError; negative sizes count by magnitude.
func NewImageData(width, height int, space color.PredefinedSpace) (*ImageData, error) {
	width, height = abs(width), abs(height)
	if width == 0 || height == 0 {
		return nil, rangeErrorf("createImageData", "zero size %dx%d", width, height)
	}
	if err := bitmap.CheckSize(width, height); err != nil {
		return nil, &RangeError{Op: "createImageData", Reason: err.Error()}
	}
	return &ImageData{Width: width, Height: height, Space: space, Data: make([]byte, width*height*4)}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// CreateImageData returns transparent image data in the canvas color space.
func (c *Canvas) CreateImageData(width, height int) (*ImageData, error) {
	return NewImageData(width, height, c.space)
}

// view wraps the canvas pixels without copying. The result must not
// outlive the next drawing call.
func (c *Canvas) view() *bitmap.Bitmap {
	return bitmap.FromShared(c.width, c.height, c.space, bitmap.PixelsOf(c.target.Pix))
}

// GetImageData reads the rectangle (sx, sy, sw, sh) converted to space.
// Pixels outside the canvas read as transparent black. Zero sizes are a
// RangeError.
func (c *Canvas) GetImageData(sx, sy, sw, sh int, space color.PredefinedSpace) (*ImageData, error) {
	if sw == 0 || sh == 0 {
		return nil, rangeErrorf("getImageData", "zero size %dx%d", sw, sh)
	}
	region, err := c.view().Crop(sx, sy, sw, sh)
	if err != nil {
		return nil, &RangeError{Op: "getImageData", Reason: err.Error()}
	}
	out := region.ConvertTo(space)
	return &ImageData{Width: out.Width, Height: out.Height, Space: space, Data: out.ToRGBA8()}, nil
}

// PutImageData writes img with its top-left corner at (dx, dy). The
// transform, clip, alpha, shadow and compositing state do not apply.
func (c *Canvas) PutImageData(img *ImageData, dx, dy int) error {
	if img == nil {
		return &StateError{Op: "putImageData", Err: errNilImage}
	}
	return c.PutImageDataDirty(img, dx, dy, 0, 0, img.Width, img.Height)
}

// PutImageDataDirty is PutImageData limited to the dirty rectangle
// (x, y, w, h) of img.
func (c *Canvas) PutImageDataDirty(img *ImageData, dx, dy, x, y, w, h int) error {
	if img == nil {
		return &StateError{Op: "putImageData", Err: errNilImage}
	}
	if len(img.Data) != img.Width*img.Height*4 {
		return rangeErrorf("putImageData", "%d bytes for %dx%d", len(img.Data), img.Width, img.Height)
	}
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	dirty := image.Rect(x, y, x+w, y+h).
		Intersect(image.Rect(0, 0, img.Width, img.Height)).
		Intersect(c.target.Bounds().Sub(image.Pt(dx, dy)))
	if dirty.Empty() {
		return nil
	}
	src, err := bitmap.FromRGBA8(img.Width, img.Height, img.Space, img.Data)
	if err != nil {
		return &RangeError{Op: "putImageData", Reason: err.Error()}
	}
	pix := src.ConvertTo(c.space).Pix()
	force := uint32(0)
	if !c.alpha {
		force = 0xff000000
	}
	for sy := dirty.Min.Y; sy < dirty.Max.Y; sy++ {
		row := c.target.Row(sy + dy)
		for sx := dirty.Min.X; sx < dirty.Max.X; sx++ {
			row[sx+dx] = pix[sy*img.Width+sx] | force
		}
	}
	return nil
}
