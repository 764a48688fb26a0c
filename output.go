package canvas

import (
	"image"
	"io"
	"slices"

	"github.com/gogpu/canvas/bitmap"
	"github.com/gogpu/canvas/codec"
	"github.com/gogpu/canvas/color"
)

// Snapshot returns a bitmap holding a copy of the canvas pixels.
func (c *Canvas) Snapshot() *bitmap.Bitmap {
	b, _ := bitmap.FromPixels(c.width, c.height, c.space, slices.Clone(c.target.Pix))
	return b
}

// TransferToImageBitmap hands the canvas pixels to a new bitmap and leaves
// the canvas blank. The drawing state is kept.
func (c *Canvas) TransferToImageBitmap() *bitmap.Bitmap {
	b, _ := bitmap.FromPixels(c.width, c.height, c.space, c.target.Pix)
	c.target.Pix = make([]uint32, c.width*c.height)
	c.clearBuffer()
	return b
}

// ToImage returns the canvas as a straight-alpha image in the canvas
// color space.
func (c *Canvas) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for y := range c.height {
		row := c.target.Row(y)
		out := img.Pix[y*img.Stride:]
		for x, p := range row {
			r, g, b, a := color.UnpackStraight(p)
			out[x*4], out[x*4+1], out[x*4+2], out[x*4+3] = r, g, b, a
		}
	}
	return img
}

// EncodePNG writes the canvas as a PNG tagged with its color space.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.Encode(w, codec.PNG, 0)
}

// Encode writes the canvas as mime, "" meaning PNG. quality applies to
// JPEG. A canvas with no area returns ErrNoPixels.
func (c *Canvas) Encode(w io.Writer, mime string, quality int) error {
	if mime == "" {
		mime = codec.PNG
	}
	if c.width == 0 || c.height == 0 {
		return &FormatError{Op: "encode", MIME: mime, Err: ErrNoPixels}
	}
	if err := codec.Encode(w, c.ToImage(), mime, quality, c.space); err != nil {
		return &FormatError{Op: "encode", MIME: mime, Err: err}
	}
	return nil
}
