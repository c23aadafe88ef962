// Package physics provides the geometry the ball and paddles need.
package physics

import "math"

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Fold reflects v back into [lo, hi] off both bounds until it lands inside,
// the way a ball bounces between two walls any number of times.
func Fold(v, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	if math.IsInf(v, 0) {
		return Clamp(v, lo, hi)
	}
	for v < lo || v > hi {
		if v < lo {
			v = 2*lo - v
		} else {
			v = 2*hi - v
		}
	}
	return v
}

// Speed returns the magnitude of a velocity.
func Speed(vx, vy float64) float64 {
	return math.Hypot(vx, vy)
}

// Heading returns the velocity of the given speed at angle radians off the
// horizontal. The x component always takes the sign of dir.
func Heading(speed, angle, dir float64) (vx, vy float64) {
	vx = math.Abs(speed * math.Cos(angle))
	if dir < 0 {
		vx = -vx
	}
	return vx, speed * math.Sin(angle)
}

// Scale shrinks (vx, vy) so its magnitude does not exceed limit.
func Scale(vx, vy, limit float64) (float64, float64) {
	s := Speed(vx, vy)
	if s <= limit || s == 0 {
		return vx, vy
	}
	k := limit / s
	return vx * k, vy * k
}

// InSpan reports whether v lies in [start, start+length).
func InSpan(v, start, length float64) bool {
	return v >= start && v < start+length
}

// DistanceSquared calculates the squared distance between two points.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}
