package fieldstrength

import "math"

// Point is one (breakpoint, value) entry of a lookup table. Breakpoints
// are frequencies in MHz for the frequency-keyed tables.
type Point struct {
	Key   float64
	Value float64
}

// interpLinear looks up q in a table sorted by ascending key. Queries at
// or beyond either end clamp to the end value; a query exactly on a
// breakpoint returns the table value; anything in between is linearly
// interpolated. Used for quantities that interpolate in their native
// domain (probabilities, noise margins).
func interpLinear(points []Point, q float64) float64 {
	lo, hi, done := bracket(points, q)
	if done {
		return lo.Value
	}
	t := (q - lo.Key) / (hi.Key - lo.Key)
	return lo.Value + t*(hi.Value-lo.Value)
}

// interpLogFreq looks up q with the GE06 Annex 2 (A.2.1.6) log-frequency
// rule: v = v_inf + (v_sup-v_inf) * log(f/f_inf) / log(f_sup/f_inf).
// Clamping at the table edges follows the same policy as interpLinear;
// the authoritative ITU text extrapolates with the edge segment, clamping
// here is a deliberate totality choice.
func interpLogFreq(points []Point, q float64) float64 {
	lo, hi, done := bracket(points, q)
	if done {
		return lo.Value
	}
	t := math.Log10(q/lo.Key) / math.Log10(hi.Key/lo.Key)
	return lo.Value + t*(hi.Value-lo.Value)
}

// bracket locates the pair of points surrounding q. When q clamps to an
// end or hits a breakpoint exactly, done is true and lo carries the
// answer.
func bracket(points []Point, q float64) (lo, hi Point, done bool) {
	if q <= points[0].Key {
		return points[0], Point{}, true
	}
	last := points[len(points)-1]
	if q >= last.Key {
		return last, Point{}, true
	}
	for i := 1; i < len(points); i++ {
		if q == points[i].Key {
			return points[i], Point{}, true
		}
		if q < points[i].Key {
			return points[i-1], points[i], false
		}
	}
	// Unreachable: q < last.Key guarantees a bracketing pair above.
	return last, Point{}, true
}
