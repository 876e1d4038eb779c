package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestRectangleIntersects(t *testing.T) {
	base := NewRectangle(0, 0, 10, 10)

	tests := []struct {
		name  string
		other Rectangle
		want  bool
	}{
		{"overlap", NewRectangle(5, 5, 10, 10), true},
		{"inside", NewRectangle(2, 2, 1, 1), true},
		{"touching edge", NewRectangle(10, 0, 5, 5), false},
		{"disjoint", NewRectangle(20, 20, 5, 5), false},
		{"zero size inside", NewRectangle(5, 5, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base))
		})
	}
}

func TestRectangleDistanceTo(t *testing.T) {
	r := NewRectangle(0, 0, 10, 10)

	assert.InDelta(t, 0, r.DistanceTo(5, 5), eps)
	assert.InDelta(t, 5, r.DistanceTo(15, 5), eps)
	assert.InDelta(t, 5, r.DistanceTo(13, 14), eps)
	assert.InDelta(t, 2, r.DistanceTo(5, -2), eps)
}

func TestRangeRectangle(t *testing.T) {
	var rg Range
	assert.True(t, rg.Empty())
	assert.Equal(t, Rectangle{}, rg.Rectangle())

	rg.AddPoint(3, 4)
	rg.AddPoint(-1, 10)
	rg.AddPoint(2, 0)

	assert.Equal(t, NewRectangle(-1, 0, 4, 10), rg.Rectangle())
}

func TestMatrixInvert(t *testing.T) {
	m := Scale(2, 3).Multiply(Rotate(0.7)).Multiply(Translate(5, -4))
	inv, ok := m.Invert()
	require.True(t, ok)

	x, y := m.Transform(1.5, -2.5)
	bx, by := inv.Transform(x, y)
	assert.InDelta(t, 1.5, bx, eps)
	assert.InDelta(t, -2.5, by, eps)

	_, ok = Scale(0, 1).Invert()
	assert.False(t, ok)
}

func TestRotateAbout(t *testing.T) {
	m := RotateAbout(10, 10, math.Pi/2)

	x, y := m.Transform(10, 10)
	assert.InDelta(t, 10, x, eps)
	assert.InDelta(t, 10, y, eps)

	x, y = m.Transform(20, 10)
	assert.InDelta(t, 10, x, eps)
	assert.InDelta(t, 20, y, eps)
}

func TestScaleAboutIdentity(t *testing.T) {
	m := ScaleAbout(3, 7, 1, 1, 0)
	for _, v := range []float64{m.A - 1, m.B, m.C, m.D - 1, m.E, m.F} {
		assert.InDelta(t, 0, v, eps)
	}
}

func TestScaleAboutRotatedAxes(t *testing.T) {
	// Scaling by 2 along axes rotated by 90 degrees is scaling y by 2.
	m := ScaleAbout(0, 0, 2, 1, math.Pi/2)
	x, y := m.Transform(1, 1)
	assert.InDelta(t, 1, x, eps)
	assert.InDelta(t, 2, y, eps)
}

func TestSegmentDistance(t *testing.T) {
	a, b := Point{0, 0}, Point{10, 0}

	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Point{5, 3}, 3},
		{"beyond end", Point{13, 4}, 5},
		{"before start", Point{-3, 0}, 3},
		{"on segment", Point{7, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SegmentDistance(tt.p, a, b), eps)
		})
	}

	assert.InDelta(t, 5, SegmentDistance(Point{3, 4}, Point{0, 0}, Point{0, 0}), eps)
}

func TestSegmentIntersectsRect(t *testing.T) {
	r := NewRectangle(0, 0, 10, 10)

	assert.True(t, SegmentIntersectsRect(Point{-5, 5}, Point{15, 5}, r))
	assert.True(t, SegmentIntersectsRect(Point{2, 2}, Point{3, 3}, r))
	assert.False(t, SegmentIntersectsRect(Point{-5, -5}, Point{-1, 20}, r))
	assert.False(t, SegmentIntersectsRect(Point{11, -5}, Point{25, 5}, r))
	assert.True(t, SegmentIntersectsRect(Point{-1, 5}, Point{5, -1}, r))
}

func TestPointInPolygon(t *testing.T) {
	triangle := []Point{{0, 0}, {10, 0}, {0, 10}}

	assert.True(t, PointInPolygon(Point{2, 2}, triangle))
	assert.False(t, PointInPolygon(Point{8, 8}, triangle))
	assert.False(t, PointInPolygon(Point{1, 1}, triangle[:2]))
	assert.InDelta(t, 0, DistanceToPolygon(Point{2, 2}, triangle), eps)
	assert.InDelta(t, 1, DistanceToPolygon(Point{5, -1}, triangle), eps)
}
