package geom

import "math"

// Matrix is a 2D affine transform in canvas order:
//
//	| A  C  E |
//	| B  D  F |
//	| 0  0  1 |
//
// so that x' = A*x + C*y + E and y' = B*x + D*y + F.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix { return Matrix{A: 1, D: 1} }

// Translate returns a translation.
func Translate(x, y float64) Matrix { return Matrix{A: 1, D: 1, E: x, F: y} }

// Scale returns a scale.
func Scale(sx, sy float64) Matrix { return Matrix{A: sx, D: sy} }

// Rotate returns a rotation by angle radians, clockwise in y-down space.
func Rotate(angle float64) Matrix {
	s, c := math.Sincos(angle)
	return Matrix{A: c, B: s, C: -s, D: c}
}

// Mul returns m·n: the transform that applies n first and then m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms a point.
func (m Matrix) Apply(p Point) Point {
	return Point{m.A*p.X + m.C*p.Y + m.E, m.B*p.X + m.D*p.Y + m.F}
}

// ApplyVector transforms a vector, ignoring translation.
func (m Matrix) ApplyVector(p Point) Point {
	return Point{m.A*p.X + m.C*p.Y, m.B*p.X + m.D*p.Y}
}

// Determinant returns A*D - B*C.
func (m Matrix) Determinant() float64 { return m.A*m.D - m.B*m.C }

// Invert returns the inverse transform. The second result is false when m
// is singular or not finite.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if det == 0 || !finite(det) || !m.IsFinite() {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		A: m.D * inv,
		B: -m.B * inv,
		C: -m.C * inv,
		D: m.A * inv,
		E: (m.C*m.F - m.D*m.E) * inv,
		F: (m.B*m.E - m.A*m.F) * inv,
	}, true
}

// IsInvertible reports whether Invert would succeed.
func (m Matrix) IsInvertible() bool {
	_, ok := m.Invert()
	return ok
}

// IsIdentity reports whether m is exactly the identity.
func (m Matrix) IsIdentity() bool { return m == Identity() }

// IsFinite reports whether every coefficient is finite.
func (m Matrix) IsFinite() bool { return finite(m.A, m.B, m.C, m.D, m.E, m.F) }

// ScaleFactor returns the geometric mean of the axis scale factors, used to
// pick flattening tolerances in device space.
func (m Matrix) ScaleFactor() float64 {
	return math.Sqrt(math.Abs(m.Determinant()))
}

// Float32 narrows the coefficients for the raster boundary.
func (m Matrix) Float32() [6]float32 {
	return [6]float32{float32(m.A), float32(m.B), float32(m.C), float32(m.D), float32(m.E), float32(m.F)}
}
