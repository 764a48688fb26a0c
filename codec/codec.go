// Package codec decodes encoded images into straight-alpha RGBA rasters
// and encodes canvas pixels, tagging PNG output with its color space.
package codec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/gogpu/canvas/color"
)

// Codec errors.
var (
	// ErrUnsupportedMIME is returned for MIME types no decoder or encoder
	// handles, including data that could not be sniffed.
	ErrUnsupportedMIME = errors.New("codec: unsupported MIME type")

	// ErrEmptyData is returned when decoding zero bytes.
	ErrEmptyData = errors.New("codec: empty data")
)

// MIME types understood by Decode and Encode.
const (
	PNG  = "image/png"
	JPEG = "image/jpeg"
	GIF  = "image/gif"
	BMP  = "image/bmp"
	TIFF = "image/tiff"
	WebP = "image/webp"
)

type signature struct {
	mime  string
	magic string
}

// '?' matches any byte.
var signatures = []signature{
	{PNG, "\x89PNG\r\n\x1a\n"},
	{JPEG, "\xff\xd8\xff"},
	{GIF, "GIF87a"},
	{GIF, "GIF89a"},
	{BMP, "BM"},
	{TIFF, "II*\x00"},
	{TIFF, "MM\x00*"},
	{WebP, "RIFF????WEBPVP8"},
}

func matchMagic(data []byte, magic string) bool {
	if len(data) < len(magic) {
		return false
	}
	for i := 0; i < len(magic); i++ {
		if magic[i] != '?' && magic[i] != data[i] {
			return false
		}
	}
	return true
}

// Sniff returns the MIME type identified by data's signature, or "".
func Sniff(data []byte) string {
	for _, s := range signatures {
		if matchMagic(data, s.magic) {
			return s.mime
		}
	}
	return ""
}

func decoder(mime string) func(io.Reader) (image.Image, error) {
	switch mime {
	case PNG:
		return png.Decode
	case JPEG:
		return jpeg.Decode
	case GIF:
		return gif.Decode
	case BMP:
		return bmp.Decode
	case TIFF:
		return tiff.Decode
	case WebP:
		return webp.Decode
	}
	return nil
}

// Decode decodes data as mime. An empty mime sniffs the type from data.
func Decode(data []byte, mime string) (*image.NRGBA, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	if mime == "" {
		mime = Sniff(data)
	}
	dec := decoder(mime)
	if dec == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMIME, mime)
	}
	img, err := dec(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("codec: decode %s: %w", mime, err)
	}
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n, nil
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out, nil
}

// ColorSpace reports the canvas color space declared by a PNG cICP chunk.
// ok is false when data is not a PNG or carries no recognized chunk.
func ColorSpace(data []byte) (space color.PredefinedSpace, ok bool) {
	if !matchMagic(data, signatures[0].magic) {
		return 0, false
	}
	for _, c := range chunks(data) {
		if c.typ != "cICP" || len(c.data) != 4 {
			continue
		}
		for s, v := range cicpValues {
			if bytes.Equal(c.data, v[:]) {
				return s, true
			}
		}
	}
	return 0, false
}

// Encode writes an image of the given MIME type. quality applies to JPEG
// and is clamped to [1, 100]; other formats ignore it.
func Encode(w io.Writer, img *image.NRGBA, mime string, quality int, space color.PredefinedSpace) error {
	var err error
	switch mime {
	case PNG:
		err = EncodePNG(w, img, space)
	case JPEG:
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: max(1, min(quality, 100))})
	case BMP:
		err = bmp.Encode(w, img)
	case TIFF:
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMIME, mime)
	}
	if err != nil {
		return fmt.Errorf("codec: encode %s: %w", mime, err)
	}
	return nil
}
