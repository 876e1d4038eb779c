package geom

import "math"

// Matrix represents a 2D affine transformation matrix
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity returns an identity matrix
func Identity() Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: 0, F: 0}
}

// Translate creates a translation matrix
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, B: 0, C: 0, D: 1, E: tx, F: ty}
}

// Scale creates a scaling matrix
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, B: 0, C: 0, D: sy, E: 0, F: 0}
}

// Rotate creates a rotation matrix (angle in radians)
func Rotate(theta float64) Matrix {
	sin, cos := math.Sincos(theta)
	return Matrix{A: cos, B: sin, C: -sin, D: cos, E: 0, F: 0}
}

// Multiply returns the matrix that applies m first and other second
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.C,
		B: m.A*other.B + m.B*other.D,
		C: m.C*other.A + m.D*other.C,
		D: m.C*other.B + m.D*other.D,
		E: m.E*other.A + m.F*other.C + other.E,
		F: m.E*other.B + m.F*other.D + other.F,
	}
}

// Transform applies the matrix transformation to a point
func (m Matrix) Transform(x, y float64) (float64, float64) {
	return m.A*x + m.C*y + m.E, m.B*x + m.D*y + m.F
}

// TransformPoint is Transform for a Point
func (m Matrix) TransformPoint(p Point) Point {
	x, y := m.Transform(p.X, p.Y)
	return Point{X: x, Y: y}
}

// Determinant returns a*d - b*c
func (m Matrix) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse matrix. ok is false for singular matrices.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.Determinant()
	if det == 0 || !IsFinite(det) {
		return Matrix{}, false
	}
	inv = Matrix{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
	}
	inv.E = -(m.E*inv.A + m.F*inv.C)
	inv.F = -(m.E*inv.B + m.F*inv.D)
	return inv, true
}

// IsIdentity returns true if the matrix is an identity matrix
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// AroundPivot conjugates m with a translation so that (x0, y0) is its fixed
// point.
func AroundPivot(x0, y0 float64, m Matrix) Matrix {
	return Translate(-x0, -y0).Multiply(m).Multiply(Translate(x0, y0))
}

// ScaleAbout scales by (fx, fy) along axes rotated by rotation radians,
// keeping (x0, y0) fixed.
func ScaleAbout(x0, y0, fx, fy, rotation float64) Matrix {
	m := Rotate(-rotation).Multiply(Scale(fx, fy)).Multiply(Rotate(rotation))
	return AroundPivot(x0, y0, m)
}

// RotateAbout rotates by theta radians around (x0, y0)
func RotateAbout(x0, y0, theta float64) Matrix {
	return AroundPivot(x0, y0, Rotate(theta))
}

// BoundsOf returns the axis-aligned bounds of r mapped through m
func (m Matrix) BoundsOf(r Rectangle) Rectangle {
	var rg Range
	for _, c := range r.Corners() {
		rg.AddPoint(m.Transform(c.X, c.Y))
	}
	return rg.Rectangle()
}
