package filter

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ColorMatrix is a 4x5 row-major matrix applied to unpremultiplied
// [R G B A 1] with channels in [0,1]:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
type ColorMatrix [20]float64

// IdentityMatrix leaves colors unchanged.
var IdentityMatrix = ColorMatrix{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// BrightnessMatrix scales the color channels by a.
func BrightnessMatrix(a float64) ColorMatrix {
	return ColorMatrix{
		a, 0, 0, 0, 0,
		0, a, 0, 0, 0,
		0, 0, a, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ContrastMatrix scales the color channels by a around 0.5.
func ContrastMatrix(a float64) ColorMatrix {
	o := 0.5 - 0.5*a
	return ColorMatrix{
		a, 0, 0, 0, o,
		0, a, 0, 0, o,
		0, 0, a, 0, o,
		0, 0, 0, 1, 0,
	}
}

// GrayscaleMatrix converts a fraction a of the color to luminance.
func GrayscaleMatrix(a float64) ColorMatrix {
	i := 1 - min(max(a, 0), 1)
	return ColorMatrix{
		0.2126 + 0.7874*i, 0.7152 - 0.7152*i, 0.0722 - 0.0722*i, 0, 0,
		0.2126 - 0.2126*i, 0.7152 + 0.2848*i, 0.0722 - 0.0722*i, 0, 0,
		0.2126 - 0.2126*i, 0.7152 - 0.7152*i, 0.0722 + 0.9278*i, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// SepiaMatrix converts a fraction a of the color to sepia.
func SepiaMatrix(a float64) ColorMatrix {
	i := 1 - min(max(a, 0), 1)
	return ColorMatrix{
		0.393 + 0.607*i, 0.769 - 0.769*i, 0.189 - 0.189*i, 0, 0,
		0.349 - 0.349*i, 0.686 + 0.314*i, 0.168 - 0.168*i, 0, 0,
		0.272 - 0.272*i, 0.534 - 0.534*i, 0.131 + 0.869*i, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// SaturateMatrix scales saturation by s.
func SaturateMatrix(s float64) ColorMatrix {
	return ColorMatrix{
		0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
		0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// HueRotateMatrix rotates hue by deg degrees.
func HueRotateMatrix(deg float64) ColorMatrix {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return ColorMatrix{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928, 0, 0,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283, 0, 0,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// InvertMatrix inverts a fraction a of the color.
func InvertMatrix(a float64) ColorMatrix {
	a = min(max(a, 0), 1)
	d := 1 - 2*a
	return ColorMatrix{
		d, 0, 0, 0, a,
		0, d, 0, 0, a,
		0, 0, d, 0, a,
		0, 0, 0, 1, 0,
	}
}

// OpacityMatrix scales alpha by a.
func OpacityMatrix(a float64) ColorMatrix {
	a = min(max(a, 0), 1)
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, a, 0,
	}
}

// dense returns m as a homogeneous 5x5 matrix.
func (m ColorMatrix) dense() *mat.Dense {
	d := mat.NewDense(5, 5, nil)
	for r := range 4 {
		for c := range 5 {
			d.Set(r, c, m[r*5+c])
		}
	}
	d.Set(4, 4, 1)
	return d
}

// Then returns the matrix applying m first and n second.
func (m ColorMatrix) Then(n ColorMatrix) ColorMatrix {
	var p mat.Dense
	p.Mul(n.dense(), m.dense())
	var out ColorMatrix
	for r := range 4 {
		for c := range 5 {
			out[r*5+c] = p.At(r, c)
		}
	}
	return out
}

// Range returns, for each output channel, the smallest and largest value
// the matrix produces for inputs in [0,1].
func (m ColorMatrix) Range() (lo, hi [4]float64) {
	for r := range 4 {
		lo[r], hi[r] = m[r*5+4], m[r*5+4]
		for c := range 4 {
			v := m[r*5+c]
			if v < 0 {
				lo[r] += v
			} else {
				hi[r] += v
			}
		}
	}
	return lo, hi
}

// NeedsClamp reports whether the output of m can leave [0,1].
func (m ColorMatrix) NeedsClamp() bool {
	const eps = 1e-9
	lo, hi := m.Range()
	for r := range 4 {
		if lo[r] < -eps || hi[r] > 1+eps {
			return true
		}
	}
	return false
}

// AlphaOnly reports whether m only scales alpha, returning the factor.
func (m ColorMatrix) AlphaOnly() (float64, bool) {
	const eps = 1e-9
	for i, v := range m {
		if i == 18 {
			continue
		}
		if math.Abs(v-IdentityMatrix[i]) > eps {
			return 0, false
		}
	}
	return m[18], true
}

// Apply transforms the unpremultiplied channels and clamps to [0,1].
func (m *ColorMatrix) Apply(c [4]float64) [4]float64 {
	var out [4]float64
	for r := range 4 {
		v := m[r*5+4]
		for k := range 4 {
			v += m[r*5+k] * c[k]
		}
		out[r] = min(max(v, 0), 1)
	}
	return out
}

// matrixFor returns the color matrix of a color filter function.
func matrixFor(f Function) (ColorMatrix, bool) {
	switch f.Kind {
	case Brightness:
		return BrightnessMatrix(f.Amount), true
	case Contrast:
		return ContrastMatrix(f.Amount), true
	case Grayscale:
		return GrayscaleMatrix(f.Amount), true
	case HueRotate:
		return HueRotateMatrix(f.Amount), true
	case Invert:
		return InvertMatrix(f.Amount), true
	case Opacity:
		return OpacityMatrix(f.Amount), true
	case Saturate:
		return SaturateMatrix(f.Amount), true
	case Sepia:
		return SepiaMatrix(f.Amount), true
	}
	return ColorMatrix{}, false
}
