package filter

import (
	"math"

	"github.com/gogpu/canvas/color"
	"github.com/gogpu/canvas/internal/blend"
	"github.com/gogpu/canvas/internal/parallel"
	"github.com/gogpu/canvas/raster"
)

// rowSplitter runs fn over bands of rows covering [0, height).
type rowSplitter func(width, height int, fn func(y0, y1 int))

func serialRows(_, height int, fn func(y0, y1 int)) {
	if height > 0 {
		fn(0, height)
	}
}

// Apply runs the program over layer in place. The layer should already be
// padded by Overflow pixels on every side.
func (f Filter) Apply(layer *raster.Target) {
	rows := rowSplitter(serialRows)
	if f.Parallel {
		rows = parallel.Rows
	}
	for i := range f.Instructions {
		in := &f.Instructions[i]
		switch in.Op {
		case OpColorMatrix:
			ApplyMatrix(layer, &in.Matrix)
		case OpBlur:
			gaussianBlur(layer, in.Sigma, rows)
		case OpMakeShadow:
			makeShadow(layer, in.Color, in.Sigma, rows)
		case OpDropShadow:
			applyDropShadow(layer, in, rows)
		}
	}
}

// ApplyMatrix transforms every pixel of t by m.
func ApplyMatrix(t *raster.Target, m *ColorMatrix) {
	for y := range t.Height {
		row := t.Row(y)
		for x, p := range row {
			r, g, b, a := color.Unpack(p)
			var c [4]float64
			if a != 0 {
				c = [4]float64{
					float64(color.Unpremultiply(r, a)) / 255,
					float64(color.Unpremultiply(g, a)) / 255,
					float64(color.Unpremultiply(b, a)) / 255,
					float64(a) / 255,
				}
			}
			c = m.Apply(c)
			row[x] = pack(c)
		}
	}
}

func pack(c [4]float64) uint32 {
	a := uint8(math.Round(c[3] * 255))
	r := color.Premultiply(uint8(math.Round(c[0]*255)), a)
	g := color.Premultiply(uint8(math.Round(c[1]*255)), a)
	b := color.Premultiply(uint8(math.Round(c[2]*255)), a)
	return color.Pack(r, g, b, a)
}

// GaussianBlur blurs t in place with standard deviation sigma. Pixels
// outside t are transparent. A sigma whose radius is zero leaves t
// untouched.
func GaussianBlur(t *raster.Target, sigma float64) {
	gaussianBlur(t, sigma, serialRows)
}

func gaussianBlur(t *raster.Target, sigma float64, rows rowSplitter) {
	kernel := CachedGaussianKernel(sigma)
	half := len(kernel) / 2
	if half == 0 || t.Width == 0 || t.Height == 0 {
		return
	}
	w, h := t.Width, t.Height
	temp := make([]float32, w*h*4)

	// Horizontal pass: t -> temp.
	rows(w, h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := t.Row(y)
			for x := range w {
				var acc [4]float32
				for k, wt := range kernel {
					sx := x + k - half
					if sx < 0 || sx >= w {
						continue
					}
					p := row[sx]
					acc[0] += float32(p>>24) * wt
					acc[1] += float32(p>>16&0xff) * wt
					acc[2] += float32(p>>8&0xff) * wt
					acc[3] += float32(p&0xff) * wt
				}
				copy(temp[(y*w+x)*4:], acc[:])
			}
		}
	})
	// Vertical pass: temp -> t.
	rows(w, h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := t.Row(y)
			for x := range w {
				var acc [4]float32
				for k, wt := range kernel {
					sy := y + k - half
					if sy < 0 || sy >= h {
						continue
					}
					i := (sy*w + x) * 4
					acc[0] += temp[i] * wt
					acc[1] += temp[i+1] * wt
					acc[2] += temp[i+2] * wt
					acc[3] += temp[i+3] * wt
				}
				a := clamp8(acc[0])
				row[x] = a<<24 | min(clamp8(acc[1]), a)<<16 | min(clamp8(acc[2]), a)<<8 | min(clamp8(acc[3]), a)
			}
		}
	})
}

func clamp8(v float32) uint32 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint32(v + 0.5)
}

// MakeShadow replaces every pixel of t by the premultiplied color c scaled
// by the pixel's alpha, then blurs the result.
func MakeShadow(t *raster.Target, c uint32, sigma float64) {
	makeShadow(t, c, sigma, serialRows)
}

func makeShadow(t *raster.Target, c uint32, sigma float64, rows rowSplitter) {
	for y := range t.Height {
		row := t.Row(y)
		for x, p := range row {
			row[x] = blend.Scale(c, uint8(p>>24))
		}
	}
	gaussianBlur(t, sigma, rows)
}

// applyDropShadow draws the offset shadow of layer behind it.
func applyDropShadow(layer *raster.Target, in *Instruction, rows rowSplitter) {
	shadow := &raster.Target{
		Pix:    make([]uint32, layer.Width*layer.Height),
		Width:  layer.Width,
		Height: layer.Height,
		Stride: layer.Width,
	}
	for y := range layer.Height {
		copy(shadow.Row(y), layer.Row(y))
	}
	makeShadow(shadow, in.Color, in.Sigma, rows)
	dx, dy := int(math.Round(in.DX)), int(math.Round(in.DY))
	for y := range layer.Height {
		sy := y - dy
		row := layer.Row(y)
		for x := range row {
			sx := x - dx
			if sx < 0 || sx >= layer.Width || sy < 0 || sy >= layer.Height {
				continue
			}
			row[x] = blend.SrcOver(row[x], shadow.Pix[sy*shadow.Stride+sx])
		}
	}
}
