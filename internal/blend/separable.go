package blend

import "math"

// channelFunc is a separable blend function B(cb, cs) on straight values.
type channelFunc func(cb, cs float32) float32

func unpremul(p uint32) (r, g, b, a float32) {
	pr, pg, pb, pa := split(p)
	if pa == 0 {
		return 0, 0, 0, 0
	}
	fa := float32(pa)
	return float32(pr) / fa, float32(pg) / fa, float32(pb) / fa, fa / 255
}

func to8(v float32) uint32 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint32(v*255 + 0.5)
}

// composite applies the general blend-mode compositing formula.
func composite(s, d uint32, br, bg, bb float32) uint32 {
	sr, sg, sb, sa := split(s)
	dr, dg, db, da := split(d)
	as, ab := float32(sa)/255, float32(da)/255
	mix := func(cs, cb uint32, b float32) uint32 {
		return to8(float32(cs)/255*(1-ab) + float32(cb)/255*(1-as) + as*ab*b)
	}
	return join(mix(sr, dr, br), mix(sg, dg, bg), mix(sb, db, bb), to8(as+ab*(1-as)))
}

func separable(fn channelFunc) Func {
	return func(s, d uint32) uint32 {
		if s>>24 == 0 {
			return d
		}
		if d>>24 == 0 {
			return s
		}
		sr, sg, sb, _ := unpremul(s)
		dr, dg, db, _ := unpremul(d)
		return composite(s, d, fn(dr, sr), fn(dg, sg), fn(db, sb))
	}
}

func multiply(cb, cs float32) float32 { return cb * cs }
func screen(cb, cs float32) float32   { return cb + cs - cb*cs }
func overlay(cb, cs float32) float32  { return hardLight(cs, cb) }
func darken(cb, cs float32) float32   { return min(cb, cs) }
func lighten(cb, cs float32) float32  { return max(cb, cs) }

func colorDodge(cb, cs float32) float32 {
	switch {
	case cb == 0:
		return 0
	case cs >= 1:
		return 1
	}
	return min(1, cb/(1-cs))
}

func colorBurn(cb, cs float32) float32 {
	switch {
	case cb >= 1:
		return 1
	case cs <= 0:
		return 0
	}
	return 1 - min(1, (1-cb)/cs)
}

func hardLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return multiply(cb, 2*cs)
	}
	return screen(cb, 2*cs-1)
}

func softLight(cb, cs float32) float32 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var dx float32
	if cb <= 0.25 {
		dx = ((16*cb-12)*cb + 4) * cb
	} else {
		dx = float32(math.Sqrt(float64(cb)))
	}
	return cb + (2*cs-1)*(dx-cb)
}

func difference(cb, cs float32) float32 {
	if cb > cs {
		return cb - cs
	}
	return cs - cb
}

func exclusion(cb, cs float32) float32 { return cb + cs - 2*cb*cs }
