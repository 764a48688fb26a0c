package color

import "math"

// Pixels are packed as premultiplied ARGB32 in host order: alpha in the top
// byte, then red, green and blue.

// Premultiply scales an 8-bit channel by an 8-bit alpha with exact rounding,
// computing round(c*a/255).
func Premultiply(c, a uint8) uint8 {
	return uint8(((uint32(c)*uint32(a) + 128) * 257) >> 16)
}

// unpremultiplyTable[a][c] = round(c*255/a), saturated at 255.
var unpremultiplyTable [256][256]uint8

// sRGB transfer lookup tables shared by buffer conversions.
var (
	decodeLUT [256]float32
	encodeLUT [4096]uint8
)

func init() {
	for a := 1; a < 256; a++ {
		for c := 0; c < 256; c++ {
			v := (c*255 + a/2) / a
			if v > 255 {
				v = 255
			}
			unpremultiplyTable[a][c] = uint8(v)
		}
	}
	for i := range decodeLUT {
		decodeLUT[i] = float32(SRGBToLinear(float64(i) / 255))
	}
	for i := range encodeLUT {
		s := LinearToSRGB(float64(i) / 4095)
		encodeLUT[i] = uint8(math.Round(clamp01(s) * 255))
	}
}

// Unpremultiply reverses Premultiply for one channel. A zero alpha yields 0.
func Unpremultiply(c, a uint8) uint8 {
	return unpremultiplyTable[a][c]
}

// Pack assembles already-premultiplied channels.
func Pack(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Unpack splits a packed pixel into its premultiplied channels.
func Unpack(p uint32) (r, g, b, a uint8) {
	return uint8(p >> 16), uint8(p >> 8), uint8(p), uint8(p >> 24)
}

// PackStraight premultiplies straight-alpha channels and packs them.
func PackStraight(r, g, b, a uint8) uint32 {
	return Pack(Premultiply(r, a), Premultiply(g, a), Premultiply(b, a), a)
}

// UnpackStraight unpacks a pixel and removes the alpha premultiplication.
func UnpackStraight(p uint32) (r, g, b, a uint8) {
	pr, pg, pb, pa := Unpack(p)
	return Unpremultiply(pr, pa), Unpremultiply(pg, pa), Unpremultiply(pb, pa), pa
}

func encodeLinear(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return encodeLUT[int(v*4095+0.5)]
}

var (
	srgbToP3Linear = xyzToLinearP3.mul(&linearSRGBToXYZ)
	p3ToSRGBLinear = xyzToLinearSRGB.mul(&linearP3ToXYZ)
)

// TransformBuffer converts premultiplied pixels in place between the two
// canvas color spaces. Both spaces share the sRGB transfer function, so the
// conversion is unpremultiply, decode, 3x3 matrix, encode, premultiply.
func TransformBuffer(buf []uint32, from, to PredefinedSpace) {
	if from == to {
		return
	}
	m := &srgbToP3Linear
	if from == PredefinedDisplayP3 {
		m = &p3ToSRGBLinear
	}
	for i, p := range buf {
		r, g, b, a := UnpackStraight(p)
		if a == 0 {
			buf[i] = 0
			continue
		}
		lin := m.apply([3]float64{float64(decodeLUT[r]), float64(decodeLUT[g]), float64(decodeLUT[b])})
		buf[i] = PackStraight(encodeLinear(float32(lin[0])), encodeLinear(float32(lin[1])), encodeLinear(float32(lin[2])), a)
	}
}

// TransformRGBA8 converts straight-alpha RGBA8 bytes in place between the
// two canvas color spaces.
func TransformRGBA8(pix []byte, from, to PredefinedSpace) {
	if from == to {
		return
	}
	m := &srgbToP3Linear
	if from == PredefinedDisplayP3 {
		m = &p3ToSRGBLinear
	}
	for i := 0; i+3 < len(pix); i += 4 {
		lin := m.apply([3]float64{float64(decodeLUT[pix[i]]), float64(decodeLUT[pix[i+1]]), float64(decodeLUT[pix[i+2]])})
		pix[i] = encodeLinear(float32(lin[0]))
		pix[i+1] = encodeLinear(float32(lin[1]))
		pix[i+2] = encodeLinear(float32(lin[2]))
	}
}
