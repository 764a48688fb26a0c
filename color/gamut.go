package color

import "math"

const (
	// jndSquared is the squared just-noticeable difference in Oklab.
	jndSquared = 0.02 * 0.02
	// chromaEpsilon ends the chroma bisection.
	chromaEpsilon = 1e-4
	gamutEpsilon  = 1e-6
)

// ToOklch returns the color's Oklch components.
func (c AbsoluteColor) ToOklch() [3]float64 {
	if c.Space == Oklch {
		return c.components()
	}
	return rectToPolar(xyzToOklab(c.ToXYZD65()))
}

func destEncode(dest PredefinedSpace, xyz [3]float64) [3]float64 {
	if dest == PredefinedDisplayP3 {
		return mapEach(xyzToLinearP3.apply(xyz), LinearToSRGB)
	}
	return mapEach(xyzToLinearSRGB.apply(xyz), LinearToSRGB)
}

func destDecode(dest PredefinedSpace, rgb [3]float64) [3]float64 {
	if dest == PredefinedDisplayP3 {
		return linearP3ToXYZ.apply(mapEach(rgb, SRGBToLinear))
	}
	return linearSRGBToXYZ.apply(mapEach(rgb, SRGBToLinear))
}

func oklchToDest(lch [3]float64, dest PredefinedSpace) [3]float64 {
	return destEncode(dest, oklabToXYZ(polarToRect(lch)))
}

func inGamut(rgb [3]float64) bool {
	for _, v := range rgb {
		if v < -gamutEpsilon || v > 1+gamutEpsilon || math.IsNaN(v) {
			return false
		}
	}
	return true
}

func clip(rgb [3]float64) [3]float64 {
	return mapEach(rgb, clamp01)
}

// deltaEOKSquared is the squared Euclidean distance of two destination
// colors in Oklab.
func deltaEOKSquared(dest PredefinedSpace, a, b [3]float64) float64 {
	la := xyzToOklab(destDecode(dest, a))
	lb := xyzToOklab(destDecode(dest, b))
	d0, d1, d2 := la[0]-lb[0], la[1]-lb[1], la[2]-lb[2]
	return d0*d0 + d1*d1 + d2*d2
}

// GamutMap maps an Oklch color into the destination space following the CSS
// Color 4 algorithm and returns gamma-encoded destination channels in [0,1].
func GamutMap(lch [3]float64, dest PredefinedSpace) [3]float64 {
	l, c, h := lch[0], lch[1], lch[2]
	if l >= 1 {
		return [3]float64{1, 1, 1}
	}
	if l <= 0 {
		return [3]float64{0, 0, 0}
	}
	origin := oklchToDest(lch, dest)
	if inGamut(origin) {
		return clip(origin)
	}
	clipped := clip(origin)
	if deltaEOKSquared(dest, origin, clipped) < jndSquared {
		return clipped
	}

	lo, hi := 0.0, c
	best := clip(oklchToDest([3]float64{l, 0, h}, dest))
	for hi-lo >= chromaEpsilon {
		mid := (lo + hi) / 2
		current := oklchToDest([3]float64{l, mid, h}, dest)
		if inGamut(current) {
			best = clip(current)
			lo = mid
			continue
		}
		candidate := clip(current)
		if deltaEOKSquared(dest, current, candidate) < jndSquared {
			best = candidate
			lo = mid
		} else {
			hi = mid
		}
	}
	return best
}

// ToDestination returns straight-alpha, gamma-encoded channels of c in the
// destination space, each in [0,1]. Legacy colors and colors already in
// the destination space are converted directly; every other space goes
// through Oklch gamut mapping.
func (c AbsoluteColor) ToDestination(dest PredefinedSpace) (r, g, b, a float64) {
	a = clamp01(float64(c.Alpha))
	var rgb [3]float64
	switch {
	case c.Space == LegacyRGB && dest == PredefinedSRGB:
		rgb = [3]float64{float64(c.C0) / 255, float64(c.C1) / 255, float64(c.C2) / 255}
	case c.Space == LegacyRGB:
		rgb = destEncode(dest, c.ToXYZD65())
	case c.Space == dest.Space():
		rgb = c.components()
	default:
		rgb = GamutMap(c.ToOklch(), dest)
	}
	rgb = clip(rgb)
	return rgb[0], rgb[1], rgb[2], a
}

// ToPremultiplied returns destination-encoded channels premultiplied by alpha.
func (c AbsoluteColor) ToPremultiplied(dest PredefinedSpace) (r, g, b, a float32) {
	fr, fg, fb, fa := c.ToDestination(dest)
	return float32(fr * fa), float32(fg * fa), float32(fb * fa), float32(fa)
}

// ToPixel resolves c into a packed premultiplied ARGB32 pixel.
func (c AbsoluteColor) ToPixel(dest PredefinedSpace) uint32 {
	r, g, b, a := c.ToDestination(dest)
	return PackStraight(to8(r), to8(g), to8(b), to8(a))
}

func to8(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
