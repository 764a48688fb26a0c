package raster

import (
	"math"

	"github.com/gogpu/canvas/geom"
	"github.com/gogpu/canvas/raster"
)

// shader produces premultiplied source pixels for the pixel centers
// (x+i+0.5, y+0.5).
type shader interface {
	shade(x, y int, out []uint32)
}

// newShader returns nil for paints that draw nothing: degenerate
// gradients, gradients without stops, empty images and non-invertible
// transforms.
func newShader(p raster.Paint) shader {
	switch p := p.(type) {
	case raster.Solid:
		return solidShader(p.Color)
	case *raster.Solid:
		return solidShader(p.Color)
	case raster.LinearGradient:
		return newLinear(p)
	case *raster.LinearGradient:
		return newLinear(*p)
	case raster.RadialGradient:
		return newRadial(p)
	case *raster.RadialGradient:
		return newRadial(*p)
	case raster.SweepGradient:
		return newSweep(p)
	case *raster.SweepGradient:
		return newSweep(*p)
	case raster.ImagePattern:
		return newImage(p)
	case *raster.ImagePattern:
		return newImage(*p)
	}
	return nil
}

type solidShader uint32

func (s solidShader) shade(_, _ int, out []uint32) {
	for i := range out {
		out[i] = uint32(s)
	}
}

// gradientShader evaluates a parametric gradient through a color lookup
// table.
type gradientShader struct {
	lut    [256]uint32
	spread raster.Spread
	inv    geom.Matrix
	// param maps a gradient-space point to the gradient parameter. It
	// reports false where the gradient is not painted.
	param func(p geom.Point) (float64, bool)
}

func newGradient(stops []raster.Stop, spread raster.Spread, m geom.Matrix, param func(geom.Point) (float64, bool)) *gradientShader {
	if len(stops) == 0 {
		return nil
	}
	inv, ok := m.Invert()
	if !ok {
		return nil
	}
	g := &gradientShader{spread: spread, inv: inv, param: param}
	for i := range g.lut {
		g.lut[i] = stopColor(stops, float32(i)/255)
	}
	return g
}

// stopColor interpolates the stops at t. For coincident offsets the later
// stop wins, which produces hard transitions.
func stopColor(stops []raster.Stop, t float32) uint32 {
	if t <= stops[0].Offset {
		return packStop(stops[0].Color)
	}
	last := stops[len(stops)-1]
	if t >= last.Offset {
		return packStop(last.Color)
	}
	i := 0
	for i+1 < len(stops) && stops[i+1].Offset <= t {
		i++
	}
	a, b := stops[i], stops[i+1]
	f := (t - a.Offset) / (b.Offset - a.Offset)
	var c [4]float32
	for k := range c {
		c[k] = a.Color[k] + (b.Color[k]-a.Color[k])*f
	}
	return packStop(c)
}

func unit8(v float32) uint32 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint32(v*255 + 0.5)
}

// packStop packs premultiplied RGBA floats, keeping color channels within
// alpha.
func packStop(c [4]float32) uint32 {
	a := unit8(c[3])
	r, g, b := min(unit8(c[0]), a), min(unit8(c[1]), a), min(unit8(c[2]), a)
	return a<<24 | r<<16 | g<<8 | b
}

func applySpread(t float64, s raster.Spread) float64 {
	switch s {
	case raster.Repeat:
		return t - math.Floor(t)
	case raster.Reflect:
		m := math.Mod(t, 2)
		if m < 0 {
			m += 2
		}
		if m > 1 {
			m = 2 - m
		}
		return m
	}
	return min(max(t, 0), 1)
}

func (g *gradientShader) shade(x, y int, out []uint32) {
	for i := range out {
		p := g.inv.Apply(geom.Pt(float64(x+i)+0.5, float64(y)+0.5))
		t, ok := g.param(p)
		if !ok || math.IsNaN(t) {
			out[i] = 0
			continue
		}
		t = applySpread(t, g.spread)
		out[i] = g.lut[int(t*255+0.5)]
	}
}

func newLinear(l raster.LinearGradient) shader {
	d := l.P1.Sub(l.P0)
	den := d.Dot(d)
	if den == 0 {
		return nil
	}
	g := newGradient(l.Stops, l.Spread, l.Transform, func(p geom.Point) (float64, bool) {
		return p.Sub(l.P0).Dot(d) / den, true
	})
	if g == nil {
		return nil
	}
	return g
}

// newRadial implements the two-circle gradient: for each point the largest
// ω with r(ω) ≥ 0 whose circle passes through the point.
func newRadial(r raster.RadialGradient) shader {
	if r.C0 == r.C1 && r.R0 == r.R1 {
		return nil
	}
	cd := r.C1.Sub(r.C0)
	dr := r.R1 - r.R0
	a := cd.Dot(cd) - dr*dr
	g := newGradient(r.Stops, r.Spread, r.Transform, func(p geom.Point) (float64, bool) {
		pd := p.Sub(r.C0)
		b := pd.Dot(cd) + r.R0*dr
		c := pd.Dot(pd) - r.R0*r.R0
		valid := func(w float64) bool { return r.R0+w*dr >= 0 }
		if math.Abs(a) < 1e-12 {
			if b == 0 {
				return 0, false
			}
			w := c / (2 * b)
			return w, valid(w)
		}
		disc := b*b - a*c
		if disc < 0 {
			return 0, false
		}
		sq := math.Sqrt(disc)
		w1, w2 := (b+sq)/a, (b-sq)/a
		if w1 < w2 {
			w1, w2 = w2, w1
		}
		if valid(w1) {
			return w1, true
		}
		return w2, valid(w2)
	})
	if g == nil {
		return nil
	}
	return g
}

func newSweep(s raster.SweepGradient) shader {
	g := newGradient(s.Stops, s.Spread, s.Transform, func(p geom.Point) (float64, bool) {
		d := p.Sub(s.Center)
		a := math.Mod(math.Atan2(d.Y, d.X)-s.StartAngle, 2*math.Pi)
		if a < 0 {
			a += 2 * math.Pi
		}
		return a / (2 * math.Pi), true
	})
	if g == nil {
		return nil
	}
	return g
}

type imageShader struct {
	pat raster.ImagePattern
	inv geom.Matrix
}

func newImage(p raster.ImagePattern) shader {
	if p.Width <= 0 || p.Height <= 0 || len(p.Pix) < p.Width*p.Height {
		return nil
	}
	inv, ok := p.Transform.Invert()
	if !ok {
		return nil
	}
	return &imageShader{pat: p, inv: inv}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// texel returns the pixel at (x, y), tiling along repeated axes and
// transparent outside the image otherwise.
func (s *imageShader) texel(x, y int) uint32 {
	p := &s.pat
	if p.RepeatX {
		x = wrap(x, p.Width)
	} else if x < 0 || x >= p.Width {
		return 0
	}
	if p.RepeatY {
		y = wrap(y, p.Height)
	} else if y < 0 || y >= p.Height {
		return 0
	}
	return p.Pix[y*p.Width+x]
}

func (s *imageShader) shade(x, y int, out []uint32) {
	for i := range out {
		q := s.inv.Apply(geom.Pt(float64(x+i)+0.5, float64(y)+0.5))
		if !q.IsFinite() {
			out[i] = 0
			continue
		}
		if s.pat.Filter == raster.Nearest {
			out[i] = s.texel(int(math.Floor(q.X)), int(math.Floor(q.Y)))
			continue
		}
		u, v := q.X-0.5, q.Y-0.5
		x0, y0 := math.Floor(u), math.Floor(v)
		fx, fy := u-x0, v-y0
		ix, iy := int(x0), int(y0)
		out[i] = bilerp(
			s.texel(ix, iy), s.texel(ix+1, iy),
			s.texel(ix, iy+1), s.texel(ix+1, iy+1),
			fx, fy,
		)
	}
}

func bilerp(p00, p10, p01, p11 uint32, fx, fy float64) uint32 {
	w00 := (1 - fx) * (1 - fy)
	w10 := fx * (1 - fy)
	w01 := (1 - fx) * fy
	w11 := fx * fy
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		v := float64(p00>>shift&0xff)*w00 + float64(p10>>shift&0xff)*w10 +
			float64(p01>>shift&0xff)*w01 + float64(p11>>shift&0xff)*w11
		out |= uint32(min(v+0.5, 255)) << shift
	}
	return out
}
