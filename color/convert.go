package color

import "math"

type mat3 [3][3]float64

func (m *mat3) apply(v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

func (m *mat3) mul(n *mat3) mat3 {
	var r mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return r
}

var (
	linearSRGBToXYZ = mat3{
		{0.41239079926595934, 0.357584339383878, 0.1804807884018343},
		{0.21263900587151027, 0.715168678767756, 0.07219231536073371},
		{0.01933081871559182, 0.11919477979462598, 0.9505321522496607},
	}
	xyzToLinearSRGB = mat3{
		{3.2409699419045226, -1.537383177570094, -0.4986107602930034},
		{-0.9692436362808796, 1.8759675015077202, 0.04155505740717559},
		{0.05563007969699366, -0.20397695888897652, 1.0569715142428786},
	}
	linearP3ToXYZ = mat3{
		{0.4865709486482162, 0.26566769316909306, 0.1982172852343625},
		{0.2289745640697488, 0.6917385218365064, 0.079286914093745},
		{0.0, 0.04511338185890264, 1.043944368900976},
	}
	xyzToLinearP3 = mat3{
		{2.493496911941425, -0.9313836179191239, -0.40271078445071684},
		{-0.8294889695615747, 1.7626640603183463, 0.023624685841943577},
		{0.03584583024378447, -0.07617238926804182, 0.9568845240076872},
	}
	linearA98ToXYZ = mat3{
		{0.5766690429101305, 0.1855582379065463, 0.1882286462349947},
		{0.29734497525053605, 0.6273635662554661, 0.07529145849399788},
		{0.02703136138641234, 0.07068885253582723, 0.9913375368376388},
	}
	xyzToLinearA98 = mat3{
		{2.0415879038107465, -0.5650069742788596, -0.34473135077832956},
		{-0.9692436362808795, 1.8759675015077202, 0.04155505740717557},
		{0.013444280632031142, -0.11836239223101838, 1.0151749943912054},
	}
	linearProPhotoToXYZD50 = mat3{
		{0.7977666449006423, 0.13518129740053308, 0.0313477341283922},
		{0.2880748288194013, 0.711835234241873, 0.00008993693872564},
		{0.0, 0.0, 0.8251046025104602},
	}
	xyzD50ToLinearProPhoto = mat3{
		{1.3457868816471583, -0.25557208737979464, -0.05110186497554526},
		{-0.5446307051249019, 1.5082477428451468, 0.02052744743642139},
		{0.0, 0.0, 1.2119675456389452},
	}
	linearRec2020ToXYZ = mat3{
		{0.6369580483012914, 0.14461690358620832, 0.1688809751641721},
		{0.2627002120112671, 0.6779980715188708, 0.05930171646986196},
		{0.0, 0.028072693049087428, 1.060985057710791},
	}
	xyzToLinearRec2020 = mat3{
		{1.716651187971268, -0.355670783776392, -0.253366281373660},
		{-0.666684351832489, 1.616481236634939, 0.0157685458139111},
		{0.017639857445311, -0.042770613257809, 0.942103121235474},
	}
	// Bradford chromatic adaptation.
	d50ToD65 = mat3{
		{0.955473421488075, -0.02309845494876471, 0.06325924320057072},
		{-0.0283697093338637, 1.0099953980813041, 0.021041441191917323},
		{0.012314014864481998, -0.020507649298898964, 1.330365926242124},
	}
	d65ToD50 = mat3{
		{1.0479297925449969, 0.022946870601609652, -0.05019226628920524},
		{0.02962780877005599, 0.9904344267538799, -0.017073799063418826},
		{-0.009243040646204504, 0.015055191490298152, 0.7518742814281371},
	}
	xyzToLMS = mat3{
		{0.8190224379967030, 0.3619062600528904, -0.1288737815209879},
		{0.0329836539323885, 0.9292868615863434, 0.0361446663506424},
		{0.0481771893596242, 0.2642395317527308, 0.6335478284694309},
	}
	lmsToOklab = mat3{
		{0.2104542683093140, 0.7936177747023054, -0.0040720430116193},
		{1.9779985324311684, -2.4285922420485799, 0.4505937096174110},
		{0.0259040424085665, 0.7827717124575296, -0.8086757548660961},
	}
	oklabToLMS = mat3{
		{1.0, 0.3963377773761749, 0.2158037573099136},
		{1.0, -0.1055613458156586, -0.0638541728258133},
		{1.0, -0.0894841775298119, -1.2914855480194092},
	}
	lmsToXYZ = mat3{
		{1.2268798758459243, -0.5578149944602171, 0.2813910456659647},
		{-0.0405757452148008, 1.1122868032803170, -0.0717110580655164},
		{-0.0763729366746601, -0.4214933324022432, 1.5869240198367816},
	}
)

var d50White = [3]float64{0.3457 / 0.3585, 1.0, (1.0 - 0.3457 - 0.3585) / 0.3585}

const (
	labKappa   = 24389.0 / 27.0
	labEpsilon = 216.0 / 24389.0
)

// SRGBToLinear converts a gamma-encoded sRGB (or Display-P3) component to
// linear light. Negative values are mirrored.
func SRGBToLinear(v float64) float64 {
	a := math.Abs(v)
	if a <= 0.04045 {
		return v / 12.92
	}
	return math.Copysign(math.Pow((a+0.055)/1.055, 2.4), v)
}

// LinearToSRGB is the inverse of SRGBToLinear.
func LinearToSRGB(v float64) float64 {
	a := math.Abs(v)
	if a <= 0.0031308 {
		return v * 12.92
	}
	return math.Copysign(1.055*math.Pow(a, 1/2.4)-0.055, v)
}

func a98ToLinear(v float64) float64 { return math.Copysign(math.Pow(math.Abs(v), 563.0/256.0), v) }
func linearToA98(v float64) float64 { return math.Copysign(math.Pow(math.Abs(v), 256.0/563.0), v) }

func proPhotoToLinear(v float64) float64 {
	const et2 = 16.0 / 512.0
	a := math.Abs(v)
	if a <= et2 {
		return v / 16
	}
	return math.Copysign(math.Pow(a, 1.8), v)
}

func linearToProPhoto(v float64) float64 {
	const et = 1.0 / 512.0
	a := math.Abs(v)
	if a >= et {
		return math.Copysign(math.Pow(a, 1/1.8), v)
	}
	return 16 * v
}

const (
	rec2020Alpha = 1.09929682680944
	rec2020Beta  = 0.018053968510807
)

func rec2020ToLinear(v float64) float64 {
	a := math.Abs(v)
	if a < rec2020Beta*4.5 {
		return v / 4.5
	}
	return math.Copysign(math.Pow((a+rec2020Alpha-1)/rec2020Alpha, 1/0.45), v)
}

func linearToRec2020(v float64) float64 {
	a := math.Abs(v)
	if a > rec2020Beta {
		return math.Copysign(rec2020Alpha*math.Pow(a, 0.45)-(rec2020Alpha-1), v)
	}
	return 4.5 * v
}

func mapEach(v [3]float64, f func(float64) float64) [3]float64 {
	return [3]float64{f(v[0]), f(v[1]), f(v[2])}
}

func labToXYZD50(lab [3]float64) [3]float64 {
	l, a, b := lab[0], lab[1], lab[2]
	f1 := (l + 16) / 116
	f0 := a/500 + f1
	f2 := f1 - b/200
	var x, y, z float64
	if c := f0 * f0 * f0; c > labEpsilon {
		x = c
	} else {
		x = (116*f0 - 16) / labKappa
	}
	if l > labKappa*labEpsilon {
		y = f1 * f1 * f1
	} else {
		y = l / labKappa
	}
	if c := f2 * f2 * f2; c > labEpsilon {
		z = c
	} else {
		z = (116*f2 - 16) / labKappa
	}
	return [3]float64{x * d50White[0], y * d50White[1], z * d50White[2]}
}

func xyzD50ToLab(xyz [3]float64) [3]float64 {
	var f [3]float64
	for i := range f {
		v := xyz[i] / d50White[i]
		if v > labEpsilon {
			f[i] = math.Cbrt(v)
		} else {
			f[i] = (labKappa*v + 16) / 116
		}
	}
	return [3]float64{116*f[1] - 16, 500 * (f[0] - f[1]), 200 * (f[1] - f[2])}
}

func polarToRect(lch [3]float64) [3]float64 {
	h := lch[2] * math.Pi / 180
	return [3]float64{lch[0], lch[1] * math.Cos(h), lch[1] * math.Sin(h)}
}

// rectToPolar returns (L, C, h) with h in [0,360). Achromatic colors get a
// hue of zero.
func rectToPolar(lab [3]float64) [3]float64 {
	c := math.Hypot(lab[1], lab[2])
	h := 0.0
	if c > 1e-9 {
		h = math.Atan2(lab[2], lab[1]) * 180 / math.Pi
		if h < 0 {
			h += 360
		}
	}
	return [3]float64{lab[0], c, h}
}

func oklabToXYZ(lab [3]float64) [3]float64 {
	lms := oklabToLMS.apply(lab)
	lms = mapEach(lms, func(v float64) float64 { return v * v * v })
	return lmsToXYZ.apply(lms)
}

func xyzToOklab(xyz [3]float64) [3]float64 {
	lms := xyzToLMS.apply(xyz)
	return lmsToOklab.apply(mapEach(lms, math.Cbrt))
}

// ToXYZD65 converts the color's components to CIE XYZ relative to D65.
// Legacy RGB channels are scaled from [0,255].
func (c AbsoluteColor) ToXYZD65() [3]float64 {
	v := c.components()
	switch c.Space {
	case LegacyRGB:
		v = [3]float64{v[0] / 255, v[1] / 255, v[2] / 255}
		return linearSRGBToXYZ.apply(mapEach(v, SRGBToLinear))
	case SRGB:
		return linearSRGBToXYZ.apply(mapEach(v, SRGBToLinear))
	case SRGBLinear:
		return linearSRGBToXYZ.apply(v)
	case DisplayP3:
		return linearP3ToXYZ.apply(mapEach(v, SRGBToLinear))
	case A98RGB:
		return linearA98ToXYZ.apply(mapEach(v, a98ToLinear))
	case ProPhotoRGB:
		d50 := linearProPhotoToXYZD50.apply(mapEach(v, proPhotoToLinear))
		return d50ToD65.apply(d50)
	case Rec2020:
		return linearRec2020ToXYZ.apply(mapEach(v, rec2020ToLinear))
	case XYZD50:
		return d50ToD65.apply(v)
	case XYZD65:
		return v
	case Lab:
		return d50ToD65.apply(labToXYZD50(v))
	case LCH:
		return d50ToD65.apply(labToXYZD50(polarToRect(v)))
	case Oklab:
		return oklabToXYZ(v)
	case Oklch:
		return oklabToXYZ(polarToRect(v))
	}
	panic("color: unknown space " + c.Space.String())
}

// FromXYZD65 builds a color in space s from D65-relative XYZ values. No
// clamping or gamut mapping is performed.
func FromXYZD65(s Space, xyz [3]float64, alpha float32) AbsoluteColor {
	var v [3]float64
	switch s {
	case LegacyRGB:
		v = mapEach(xyzToLinearSRGB.apply(xyz), LinearToSRGB)
		v = [3]float64{v[0] * 255, v[1] * 255, v[2] * 255}
	case SRGB:
		v = mapEach(xyzToLinearSRGB.apply(xyz), LinearToSRGB)
	case SRGBLinear:
		v = xyzToLinearSRGB.apply(xyz)
	case DisplayP3:
		v = mapEach(xyzToLinearP3.apply(xyz), LinearToSRGB)
	case A98RGB:
		v = mapEach(xyzToLinearA98.apply(xyz), linearToA98)
	case ProPhotoRGB:
		v = mapEach(xyzD50ToLinearProPhoto.apply(d65ToD50.apply(xyz)), linearToProPhoto)
	case Rec2020:
		v = mapEach(xyzToLinearRec2020.apply(xyz), linearToRec2020)
	case XYZD50:
		v = d65ToD50.apply(xyz)
	case XYZD65:
		v = xyz
	case Lab:
		v = xyzD50ToLab(d65ToD50.apply(xyz))
	case LCH:
		v = rectToPolar(xyzD50ToLab(d65ToD50.apply(xyz)))
	case Oklab:
		v = xyzToOklab(xyz)
	case Oklch:
		v = rectToPolar(xyzToOklab(xyz))
	default:
		panic("color: unknown space " + s.String())
	}
	return fromComponents(s, v, alpha)
}

// Convert returns c expressed in space s.
func (c AbsoluteColor) Convert(s Space) AbsoluteColor {
	if c.Space == s {
		return c
	}
	return FromXYZD65(s, c.ToXYZD65(), c.Alpha)
}
