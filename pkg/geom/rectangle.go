package geom

import "math"

// Rectangle is an axis-aligned rectangle given by its top-left corner and
// its dimensions.
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewRectangle creates a rectangle from its top-left corner and size
func NewRectangle(x, y, width, height float64) Rectangle {
	return Rectangle{X: x, Y: y, Width: width, Height: height}
}

// RectangleFromPoints creates the smallest rectangle containing both points
func RectangleFromPoints(p1, p2 Point) Rectangle {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  math.Abs(p2.X - p1.X),
		Height: math.Abs(p2.Y - p1.Y),
	}
}

// Right returns the right edge X coordinate
func (r Rectangle) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the bottom edge Y coordinate
func (r Rectangle) Bottom() float64 {
	return r.Y + r.Height
}

// Center returns the center point
func (r Rectangle) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Corners returns the four corners in the order top-left, top-right,
// bottom-right, bottom-left.
func (r Rectangle) Corners() [4]Point {
	return [4]Point{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: r.Bottom()},
		{X: r.X, Y: r.Bottom()},
	}
}

// Contains checks if a point is inside the rectangle (edges included)
func (r Rectangle) Contains(x, y float64) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Intersects reports whether the two rectangles share an area larger than
// zero. Rectangles that only touch along an edge do not intersect.
func (r Rectangle) Intersects(other Rectangle) bool {
	w := math.Min(r.Right(), other.Right()) - math.Max(r.X, other.X)
	h := math.Min(r.Bottom(), other.Bottom()) - math.Max(r.Y, other.Y)
	return w > 0 && h > 0
}

// Intersection returns the overlapping part of two rectangles, or the zero
// rectangle when they do not intersect.
func (r Rectangle) Intersection(other Rectangle) Rectangle {
	if !r.Intersects(other) {
		return Rectangle{}
	}
	x := math.Max(r.X, other.X)
	y := math.Max(r.Y, other.Y)
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  math.Min(r.Right(), other.Right()) - x,
		Height: math.Min(r.Bottom(), other.Bottom()) - y,
	}
}

// Union returns the smallest rectangle containing both rectangles
func (r Rectangle) Union(other Rectangle) Rectangle {
	x := math.Min(r.X, other.X)
	y := math.Min(r.Y, other.Y)
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  math.Max(r.Right(), other.Right()) - x,
		Height: math.Max(r.Bottom(), other.Bottom()) - y,
	}
}

// Translated returns the rectangle moved by (dx, dy)
func (r Rectangle) Translated(dx, dy float64) Rectangle {
	return Rectangle{X: r.X + dx, Y: r.Y + dy, Width: r.Width, Height: r.Height}
}

// Expanded grows the rectangle by a margin on all sides
func (r Rectangle) Expanded(margin float64) Rectangle {
	return Rectangle{
		X:      r.X - margin,
		Y:      r.Y - margin,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// DistanceTo returns the distance from (x, y) to the rectangle, 0 when the
// point lies inside.
func (r Rectangle) DistanceTo(x, y float64) float64 {
	dx := math.Max(0, math.Max(r.X-x, x-r.Right()))
	dy := math.Max(0, math.Max(r.Y-y, y-r.Bottom()))
	return math.Hypot(dx, dy)
}

// IsEmpty returns true if the rectangle has no area
func (r Rectangle) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Range accumulates the extent of a set of points.
//
// The zero value is an empty range.
type Range struct {
	MinX, MinY float64
	MaxX, MaxY float64
	valid      bool
}

// AddPoint grows the range to include (x, y)
func (r *Range) AddPoint(x, y float64) {
	if !r.valid {
		r.MinX, r.MaxX = x, x
		r.MinY, r.MaxY = y, y
		r.valid = true
		return
	}
	r.MinX = math.Min(r.MinX, x)
	r.MaxX = math.Max(r.MaxX, x)
	r.MinY = math.Min(r.MinY, y)
	r.MaxY = math.Max(r.MaxY, y)
}

// Empty reports whether no point was added yet
func (r *Range) Empty() bool {
	return !r.valid
}

// Rectangle converts the range to a rectangle
func (r *Range) Rectangle() Rectangle {
	if !r.valid {
		return Rectangle{}
	}
	return Rectangle{X: r.MinX, Y: r.MinY, Width: r.MaxX - r.MinX, Height: r.MaxY - r.MinY}
}
