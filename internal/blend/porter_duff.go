package blend

// Porter-Duff operators: co = Fa*cs + Fb*cb with per-operator factors.

func clearFn(_, _ uint32) uint32 { return 0 }
func srcFn(s, _ uint32) uint32   { return s }
func dstFn(_, d uint32) uint32   { return d }

// porterDuff evaluates an operator given its factors in [0,255].
func porterDuff(s, d uint32, fa, fb uint32) uint32 {
	sr, sg, sb, sa := split(s)
	dr, dg, db, da := split(d)
	mix := func(cs, cb uint32) uint32 {
		v := div255(cs*fa) + div255(cb*fb)
		if v > 255 {
			v = 255
		}
		return v
	}
	return join(mix(sr, dr), mix(sg, dg), mix(sb, db), mix(sa, da))
}

// SrcOver is the default source-over operator.
func SrcOver(s, d uint32) uint32 {
	sa := s >> 24
	if sa == 255 {
		return s
	}
	if sa == 0 {
		return d
	}
	return porterDuff(s, d, 255, 255-sa)
}

func dstOverFn(s, d uint32) uint32 { return porterDuff(s, d, 255-d>>24, 255) }
func srcInFn(s, d uint32) uint32   { return porterDuff(s, d, d>>24, 0) }
func dstInFn(s, d uint32) uint32   { return porterDuff(s, d, 0, s>>24) }
func srcOutFn(s, d uint32) uint32  { return porterDuff(s, d, 255-d>>24, 0) }
func dstOutFn(s, d uint32) uint32  { return porterDuff(s, d, 0, 255-s>>24) }
func srcAtopFn(s, d uint32) uint32 { return porterDuff(s, d, d>>24, 255-s>>24) }
func dstAtopFn(s, d uint32) uint32 { return porterDuff(s, d, 255-d>>24, s>>24) }
func xorFn(s, d uint32) uint32     { return porterDuff(s, d, 255-d>>24, 255-s>>24) }
func plusFn(s, d uint32) uint32    { return porterDuff(s, d, 255, 255) }
