package blend

// rgbFunc is a non-separable blend function B(Cb, Cs) on straight colors.
type rgbFunc func(b, s [3]float32) [3]float32

func nonSeparable(fn rgbFunc) Func {
	return func(s, d uint32) uint32 {
		if s>>24 == 0 {
			return d
		}
		if d>>24 == 0 {
			return s
		}
		sr, sg, sb, _ := unpremul(s)
		dr, dg, db, _ := unpremul(d)
		out := fn([3]float32{dr, dg, db}, [3]float32{sr, sg, sb})
		return composite(s, d, out[0], out[1], out[2])
	}
}

func lum(c [3]float32) float32 { return 0.3*c[0] + 0.59*c[1] + 0.11*c[2] }

func clipColor(c [3]float32) [3]float32 {
	l := lum(c)
	n := min(c[0], c[1], c[2])
	x := max(c[0], c[1], c[2])
	if n < 0 {
		for i := range c {
			c[i] = l + (c[i]-l)*l/(l-n)
		}
	}
	if x > 1 {
		for i := range c {
			c[i] = l + (c[i]-l)*(1-l)/(x-l)
		}
	}
	return c
}

func setLum(c [3]float32, l float32) [3]float32 {
	d := l - lum(c)
	return clipColor([3]float32{c[0] + d, c[1] + d, c[2] + d})
}

func sat(c [3]float32) float32 { return max(c[0], c[1], c[2]) - min(c[0], c[1], c[2]) }

func setSat(c [3]float32, s float32) [3]float32 {
	// Order the channel indices by value.
	lo, mid, hi := 0, 1, 2
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	if c[mid] > c[hi] {
		mid, hi = hi, mid
	}
	if c[lo] > c[mid] {
		lo, mid = mid, lo
	}
	var out [3]float32
	if c[hi] > c[lo] {
		out[mid] = (c[mid] - c[lo]) * s / (c[hi] - c[lo])
		out[hi] = s
	}
	return out
}

func hue(b, s [3]float32) [3]float32        { return setLum(setSat(s, sat(b)), lum(b)) }
func saturation(b, s [3]float32) [3]float32 { return setLum(setSat(b, sat(s)), lum(b)) }
func colorMode(b, s [3]float32) [3]float32  { return setLum(s, lum(b)) }
func luminosity(b, s [3]float32) [3]float32 { return setLum(b, lum(s)) }
