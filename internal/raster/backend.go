// Package raster is the software implementation of the raster.Backend
// contract: a supersampled scanline rasterizer that fills flattened paths
// with nonzero or even-odd coverage, samples paint sources per span and
// composites through internal/blend, with a stack of 8-bit clip masks.
package raster

import (
	"image"
	"math"

	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/internal/blend"
	"github.com/gogpu/canvas/internal/logging"
	"github.com/gogpu/canvas/internal/stroke"
	"github.com/gogpu/canvas/raster"
)

// Software rasterizes on the CPU. The zero value is ready to use.
type Software struct {
	// Tolerance is the device-space flattening tolerance. Zero selects
	// geom.DefaultTolerance.
	Tolerance float64
}

var _ raster.Backend = (*Software)(nil)

// New returns a software backend with the default tolerance.
func New() *Software { return &Software{} }

func (b *Software) tolerance() float64 {
	if b.Tolerance > 0 {
		return b.Tolerance
	}
	return geom.DefaultTolerance
}

func alpha8(a float32) uint8 {
	switch {
	case !(a > 0):
		return 0
	case a >= 1:
		return 255
	}
	return uint8(a*255 + 0.5)
}

// Fill implements raster.Backend.
func (b *Software) Fill(dst *raster.Target, path *geom.Path, rule raster.FillRule, paint raster.Paint, mode raster.BlendMode, alpha float32) {
	unbounded := blend.Affects(mode)
	a8 := alpha8(alpha)
	sh := newShader(paint)
	if (a8 == 0 || sh == nil) && !unbounded {
		return
	}
	edges, bounds := buildEdges(path.Flatten(b.tolerance()))
	area := dst.Bounds()
	if !unbounded {
		area = pixelBounds(bounds).Intersect(area)
	}
	if area.Empty() {
		return
	}
	fn := blend.For(mode)
	clip := dst.Clip()
	src := make([]uint32, area.Dx())
	sc := newScanner(edges, rule, area)
	sc.scan(func(y int, cov []uint8, empty bool) {
		if empty && !unbounded {
			return
		}
		if sh != nil && !empty {
			sh.shade(area.Min.X, y, src)
		} else {
			clear(src)
		}
		row := dst.Row(y)
		for i, c := range cov {
			x := area.Min.X + i
			s := blend.Scale(blend.Scale(src[i], c), a8)
			if s == 0 && !unbounded {
				continue
			}
			d := row[x]
			r := fn(s, d)
			if clip != nil {
				r = blend.Lerp(d, r, clip.Coverage[y*clip.Width+x])
			}
			if dst.Opaque {
				r |= 0xff000000
			}
			row[x] = r
		}
	})
}

// pixelBounds returns the smallest pixel rectangle containing r.
func pixelBounds(r geom.Rect) image.Rectangle {
	if r.Empty() || !r.Min.IsFinite() || !r.Max.IsFinite() {
		return image.Rectangle{}
	}
	const limit = 1 << 30
	clamp := func(v float64) int { return int(min(max(v, -limit), limit)) }
	return image.Rect(
		clamp(math.Floor(r.Min.X)), clamp(math.Floor(r.Min.Y)),
		clamp(math.Ceil(r.Max.X)), clamp(math.Ceil(r.Max.Y)),
	)
}

// Stroke implements raster.Backend.
func (b *Software) Stroke(path *geom.Path, style raster.StrokeStyle) *geom.Path {
	return stroke.Expand(path, style)
}

// Coverage rasterizes path into a width×height mask without touching any
// target. PushClip builds its masks with it.
func (b *Software) Coverage(width, height int, path *geom.Path, rule raster.FillRule) *raster.Mask {
	m := &raster.Mask{Coverage: make([]uint8, width*height), Width: width, Height: height}
	edges, bounds := buildEdges(path.Flatten(b.tolerance()))
	area := pixelBounds(bounds).Intersect(image.Rect(0, 0, width, height))
	if area.Empty() {
		return m
	}
	newScanner(edges, rule, area).scan(func(y int, cov []uint8, empty bool) {
		if !empty {
			copy(m.Coverage[y*width+area.Min.X:], cov)
		}
	})
	return m
}

// PushClip implements raster.Backend.
func (b *Software) PushClip(dst *raster.Target, path *geom.Path, rule raster.FillRule) {
	m := b.Coverage(dst.Width, dst.Height, path, rule)
	if prev := dst.Clip(); prev != nil {
		for i, c := range m.Coverage {
			m.Coverage[i] = uint8((uint32(c)*uint32(prev.Coverage[i]) + 127) / 255)
		}
	}
	dst.Clips = append(dst.Clips, m)
	logging.Logger().Debug("raster: clip pushed", "depth", len(dst.Clips), "rule", rule.String())
}

// PopClip implements raster.Backend.
func (b *Software) PopClip(dst *raster.Target) {
	if n := len(dst.Clips); n > 0 {
		dst.Clips[n-1] = nil
		dst.Clips = dst.Clips[:n-1]
	}
}

// Composite implements raster.Backend. span receives destination row
// numbers.
func (b *Software) Composite(dst, src *raster.Target, srcRect image.Rectangle, dstOrigin image.Point, mode raster.BlendMode, alpha float32, span raster.SpanFunc) {
	srcRect = srcRect.Intersect(src.Bounds())
	placed := srcRect.Sub(srcRect.Min).Add(dstOrigin)
	inner := placed.Intersect(dst.Bounds())
	// Shift srcRect by the part clipped away on the destination.
	srcMin := srcRect.Min.Add(inner.Min.Sub(placed.Min))

	unbounded := blend.Affects(mode)
	a8 := alpha8(alpha)
	if (inner.Empty() || a8 == 0) && !unbounded {
		return
	}
	area := inner
	if unbounded {
		area = dst.Bounds()
	}
	fn := blend.For(mode)
	clip := dst.Clip()
	buf := make([]uint32, inner.Dx())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		rowIn := y >= inner.Min.Y && y < inner.Max.Y && !inner.Empty()
		if rowIn {
			sy := srcMin.Y + y - inner.Min.Y
			copy(buf, src.Pix[sy*src.Stride+srcMin.X:])
			if span != nil {
				span(y, buf)
			}
		}
		row := dst.Row(y)
		for x := area.Min.X; x < area.Max.X; x++ {
			var s uint32
			if rowIn && x >= inner.Min.X && x < inner.Max.X {
				s = blend.Scale(buf[x-inner.Min.X], a8)
			}
			if s == 0 && !unbounded {
				continue
			}
			d := row[x]
			r := fn(s, d)
			if clip != nil {
				r = blend.Lerp(d, r, clip.Coverage[y*clip.Width+x])
			}
			if dst.Opaque {
				r |= 0xff000000
			}
			row[x] = r
		}
	}
}
