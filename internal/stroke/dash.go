package stroke

import (
	"math"

	"github.com/gogpu/canvas/geom"
)

// normalizeDash returns the effective dash array, doubling odd-length
// lists. It reports false when the pattern draws a solid line.
func normalizeDash(dash []float64) ([]float64, bool) {
	if len(dash) == 0 {
		return nil, false
	}
	var sum float64
	for _, d := range dash {
		if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
			return nil, false
		}
		sum += d
	}
	if sum == 0 {
		return nil, false
	}
	if len(dash)%2 == 1 {
		dash = append(append(make([]float64, 0, 2*len(dash)), dash...), dash...)
	}
	return dash, true
}

// dashState walks a dash pattern.
type dashState struct {
	dash   []float64
	index  int
	remain float64
	on     bool
}

func newDashState(dash []float64, offset float64) dashState {
	var total float64
	for _, d := range dash {
		total += d
	}
	offset = math.Mod(offset, total)
	if offset < 0 {
		offset += total
	}
	if offset >= total {
		offset = 0
	}
	s := dashState{dash: dash, on: true}
	for offset > 0 && offset >= dash[s.index] {
		offset -= dash[s.index]
		s.advance()
	}
	s.remain = dash[s.index] - offset
	return s
}

func (s *dashState) advance() {
	s.index = (s.index + 1) % len(s.dash)
	s.on = !s.on
	s.remain = s.dash[s.index]
}

// applyDash splits polylines into the open polylines of the dashes.
func applyDash(lines []geom.Polyline, dash []float64, offset float64) []geom.Polyline {
	var out []geom.Polyline
	for _, line := range lines {
		pts := line.Pts
		if line.Closed && len(pts) > 1 {
			pts = append(append([]geom.Point(nil), pts...), pts[0])
		}
		st := newDashState(dash, offset)
		var cur []geom.Point
		if st.on {
			cur = []geom.Point{pts[0]}
		}
		for i := 0; i+1 < len(pts); i++ {
			p0, p1 := pts[i], pts[i+1]
			segLen := p0.Distance(p1)
			t := 0.0
			for {
				step := min(st.remain, segLen-t)
				t += step
				st.remain -= step
				if st.on && step > 0 {
					cur = append(cur, p0.Lerp(p1, t/segLen))
				}
				if st.remain > 1e-12 {
					break
				}
				wasOn := st.on
				st.advance()
				pt := p0
				if segLen > 0 {
					pt = p0.Lerp(p1, t/segLen)
				}
				if wasOn {
					if len(cur) == 1 {
						cur = append(cur, pt)
					}
					out = append(out, geom.Polyline{Pts: cur})
					cur = nil
				} else {
					cur = []geom.Point{pt}
				}
			}
		}
		if len(cur) > 1 {
			out = append(out, geom.Polyline{Pts: cur})
		}
	}
	return out
}
