package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
)

func vec(p Point) r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// SegmentDistance returns the distance from p to the segment ab
func SegmentDistance(p, a, b Point) float64 {
	pv, av, bv := vec(p), vec(a), vec(b)
	ab := r2.Sub(bv, av)
	l2 := r2.Dot(ab, ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(pv, av))
	}
	t := r2.Dot(r2.Sub(pv, av), ab) / l2
	switch {
	case t < 0:
		t = 0
	case t > 1:
		t = 1
	}
	return r2.Norm(r2.Sub(pv, r2.Add(av, r2.Scale(t, ab))))
}

// SegmentIntersectsRect reports whether any part of the segment ab lies
// inside r (edges included). Uses Liang-Barsky clipping.
func SegmentIntersectsRect(a, b Point, r Rectangle) bool {
	dx := b.X - a.X
	dy := b.Y - a.Y
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}

	return clip(-dx, a.X-r.X) &&
		clip(dx, r.Right()-a.X) &&
		clip(-dy, a.Y-r.Y) &&
		clip(dy, r.Bottom()-a.Y) &&
		t0 <= t1
}

// PointInPolygon tests if a point is inside a polygon using ray casting
// (even-odd rule).
func PointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	n := len(polygon)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pi, pj := polygon[i], polygon[j]
		if ((pi.Y > p.Y) != (pj.Y > p.Y)) &&
			(p.X < (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y)+pi.X) {
			inside = !inside
		}
	}
	return inside
}

// DistanceToPolygon returns 0 when p is inside the closed polygon, else the
// distance to its nearest edge.
func DistanceToPolygon(p Point, polygon []Point) float64 {
	if len(polygon) == 0 {
		return 0
	}
	if PointInPolygon(p, polygon) {
		return 0
	}
	best := p.Distance(polygon[0])
	for i := range polygon {
		d := SegmentDistance(p, polygon[i], polygon[(i+1)%len(polygon)])
		if d < best {
			best = d
		}
	}
	return best
}
