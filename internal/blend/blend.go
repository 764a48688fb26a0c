// Package blend composites premultiplied ARGB32 pixels with the Porter-Duff
// operators and the W3C Compositing and Blending Level 1 blend modes.
//
// Porter-Duff operators use exact integer arithmetic. Separable and
// non-separable blend modes unpremultiply into float32, apply the blend
// function B(Cb, Cs) and recombine with
//
//	co = cs*(1-ab) + cb*(1-as) + as*ab*B(Cb, Cs)
//	ao = as + ab*(1-as)
package blend

import "github.com/gogpu/canvas/raster"

// Func blends a source pixel onto a destination pixel.
type Func func(src, dst uint32) uint32

var funcs [raster.NumBlendModes]Func

func init() {
	funcs = [raster.NumBlendModes]Func{
		raster.Clear:      clearFn,
		raster.Src:        srcFn,
		raster.Dst:        dstFn,
		raster.SrcOver:    SrcOver,
		raster.DstOver:    dstOverFn,
		raster.SrcIn:      srcInFn,
		raster.DstIn:      dstInFn,
		raster.SrcOut:     srcOutFn,
		raster.DstOut:     dstOutFn,
		raster.SrcAtop:    srcAtopFn,
		raster.DstAtop:    dstAtopFn,
		raster.Xor:        xorFn,
		raster.Plus:       plusFn,
		raster.Multiply:   separable(multiply),
		raster.Screen:     separable(screen),
		raster.Overlay:    separable(overlay),
		raster.Darken:     separable(darken),
		raster.Lighten:    separable(lighten),
		raster.ColorDodge: separable(colorDodge),
		raster.ColorBurn:  separable(colorBurn),
		raster.HardLight:  separable(hardLight),
		raster.SoftLight:  separable(softLight),
		raster.Difference: separable(difference),
		raster.Exclusion:  separable(exclusion),
		raster.Hue:        nonSeparable(hue),
		raster.Saturation: nonSeparable(saturation),
		raster.Color:      nonSeparable(colorMode),
		raster.Luminosity: nonSeparable(luminosity),
	}
}

// For returns the blend function for mode.
func For(mode raster.BlendMode) Func {
	if int(mode) >= len(funcs) {
		return SrcOver
	}
	return funcs[mode]
}

// Affects reports whether mode can change destination pixels outside the
// painted shape, which happens for the operators whose result is transparent
// where the source is.
func Affects(mode raster.BlendMode) bool {
	switch mode {
	case raster.Clear, raster.Src, raster.SrcIn, raster.DstIn, raster.SrcOut, raster.DstAtop:
		return true
	}
	return false
}

// Lerp mixes the blended result toward the original destination by
// coverage, as done for antialiased edges and clip masks.
func Lerp(dst, blended uint32, coverage uint8) uint32 {
	switch coverage {
	case 0:
		return dst
	case 255:
		return blended
	}
	c := uint32(coverage)
	ic := 255 - c
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		d := (dst >> shift) & 0xff
		b := (blended >> shift) & 0xff
		out |= div255(d*ic+b*c) << shift
	}
	return out
}

// Span blends src onto dst pixel by pixel. coverage may be nil for full
// coverage.
func Span(mode raster.BlendMode, dst, src []uint32, coverage []uint8) {
	fn := For(mode)
	for i := range dst {
		r := fn(src[i], dst[i])
		if coverage != nil {
			r = Lerp(dst[i], r, coverage[i])
		}
		dst[i] = r
	}
}

// Scale multiplies every channel of a premultiplied pixel by a/255.
func Scale(p uint32, a uint8) uint32 {
	switch a {
	case 0:
		return 0
	case 255:
		return p
	}
	m := uint32(a)
	return div255((p>>24)*m)<<24 | div255((p>>16&0xff)*m)<<16 | div255((p>>8&0xff)*m)<<8 | div255((p&0xff)*m)
}

// div255 divides x in [0, 255*255] by 255 with rounding.
func div255(x uint32) uint32 {
	x += 128
	return (x + x>>8) >> 8
}

func split(p uint32) (r, g, b, a uint32) {
	return p >> 16 & 0xff, p >> 8 & 0xff, p & 0xff, p >> 24
}

func join(r, g, b, a uint32) uint32 {
	return a<<24 | r<<16 | g<<8 | b
}
