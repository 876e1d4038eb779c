package element

import "github.com/pyhub-apps/inkdoc-golang/pkg/geom"

// ShapeContainer is a selection area that can answer point containment
type ShapeContainer interface {
	Contains(x, y float64) bool
}

// RectContainer is a rectangle selection. Its edges count as inside.
type RectContainer geom.Rectangle

// Contains reports whether (x, y) lies inside the rectangle
func (r RectContainer) Contains(x, y float64) bool {
	return geom.Rectangle(r).Contains(x, y)
}

// PolygonContainer is a lasso selection: a closed polygon tested with the
// even-odd rule
type PolygonContainer []geom.Point

// Contains reports whether (x, y) lies inside the polygon
func (p PolygonContainer) Contains(x, y float64) bool {
	return geom.PointInPolygon(geom.Point{X: x, Y: y}, p)
}

var (
	_ ShapeContainer = RectContainer{}
	_ ShapeContainer = PolygonContainer(nil)
)
