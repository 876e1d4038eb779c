package element

import (
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

// Element is a drawable object placed on a page layer
type Element interface {
	serial.Serializable

	// Type returns the concrete kind. It never changes after construction.
	Type() Type

	X() float64
	Y() float64
	SetX(x float64)
	SetY(y float64)

	// Move translates the element. Its size is unchanged.
	Move(dx, dy float64)

	// Scale scales the element about (x0, y0) along axes rotated by
	// rotation radians. When restoreLineWidth is set, strokes keep their
	// line width.
	Scale(x0, y0, fx, fy, rotation float64, restoreLineWidth bool)

	// Rotate turns the element by theta radians about (x0, y0)
	Rotate(x0, y0, theta float64)

	Color() Color
	SetColor(c Color)

	ElementWidth() float64
	ElementHeight() float64

	// SnappedBounds is the rectangle used for snapping. It may be tighter
	// than BoundingRect (strokes exclude their line width).
	SnappedBounds() geom.Rectangle

	// BoundingRect returns x, y, width and height as a rectangle
	BoundingRect() geom.Rectangle

	IntersectsArea(r geom.Rectangle) bool
	IntersectsXYWH(x, y, width, height float64) bool

	// DistanceTo returns the distance from (x, y) to the element, 0 when
	// the point is on it
	DistanceTo(x, y float64) float64

	IsInSelection(c ShapeContainer) bool

	RescaleOnlyAspectRatio() bool
	RescaleWithMirror() bool

	// Clone returns a deep copy that shares no mutable state with the
	// receiver
	Clone() Element
}

// sizer is implemented by every variant to fill the geometry cache
type sizer interface {
	calcSize()
}

// base holds the state shared by all variants. Variants embed it and bind
// their calcSize hook with newBase.
type base struct {
	kind  Type
	x, y  float64
	color Color

	width, height  float64
	snappedBounds  geom.Rectangle
	sizeCalculated bool

	self sizer
}

func newBase(kind Type, self sizer) base {
	return base{kind: kind, color: Black, self: self}
}

func (b *base) Type() Type { return b.kind }

func (b *base) ensureSize() {
	if !b.sizeCalculated {
		b.sizeCalculated = true
		b.self.calcSize()
	}
}

// invalidate marks the geometry cache stale
func (b *base) invalidate() {
	b.sizeCalculated = false
}

func (b *base) X() float64 {
	b.ensureSize()
	return b.x
}

func (b *base) Y() float64 {
	b.ensureSize()
	return b.y
}

func (b *base) SetX(x float64) {
	b.shift(x-b.x, 0)
}

func (b *base) SetY(y float64) {
	b.shift(0, y-b.y)
}

func (b *base) Move(dx, dy float64) {
	b.shift(dx, dy)
}

// shift moves the anchor and keeps a valid cache valid
func (b *base) shift(dx, dy float64) {
	b.x += dx
	b.y += dy
	if b.sizeCalculated {
		b.snappedBounds = b.snappedBounds.Translated(dx, dy)
	}
}

func (b *base) Color() Color { return b.color }

func (b *base) SetColor(c Color) { b.color = c }

func (b *base) ElementWidth() float64 {
	b.ensureSize()
	return b.width
}

func (b *base) ElementHeight() float64 {
	b.ensureSize()
	return b.height
}

func (b *base) SnappedBounds() geom.Rectangle {
	b.ensureSize()
	return b.snappedBounds
}

func (b *base) BoundingRect() geom.Rectangle {
	b.ensureSize()
	return geom.NewRectangle(b.x, b.y, b.width, b.height)
}

func (b *base) IntersectsArea(r geom.Rectangle) bool {
	return b.BoundingRect().Intersects(r)
}

func (b *base) IntersectsXYWH(x, y, width, height float64) bool {
	return b.BoundingRect().Intersects(geom.NewRectangle(x, y, width, height))
}

func (b *base) DistanceTo(x, y float64) float64 {
	return b.BoundingRect().DistanceTo(x, y)
}

func (b *base) IsInSelection(c ShapeContainer) bool {
	for _, p := range b.BoundingRect().Corners() {
		if !c.Contains(p.X, p.Y) {
			return false
		}
	}
	return true
}

func (b *base) RescaleOnlyAspectRatio() bool { return false }

func (b *base) RescaleWithMirror() bool { return false }

// cloneBase copies the shared state and binds it to a new variant
func (b *base) cloneBase(self sizer) base {
	c := *b
	c.self = self
	return c
}

// baseFields is the decoded "Element" object before it is committed
type baseFields struct {
	x, y  float64
	color Color
}

func (b *base) writeBase(out *serial.ObjectOutputStream) {
	b.ensureSize()
	out.WriteObject("Element")
	out.WriteDouble(b.x)
	out.WriteDouble(b.y)
	out.WriteUInt(uint32(b.color))
	out.EndObject()
}

func readBase(in *serial.ObjectInputStream) (baseFields, error) {
	var f baseFields
	if err := in.ReadObject("Element"); err != nil {
		return f, err
	}
	var err error
	if f.x, err = in.ReadDouble(); err != nil {
		return f, err
	}
	if f.y, err = in.ReadDouble(); err != nil {
		return f, err
	}
	c, err := in.ReadUInt()
	if err != nil {
		return f, err
	}
	f.color = Color(c)
	if !geom.IsFinite(f.x) || !geom.IsFinite(f.y) {
		return f, serial.InvalidValuef("element position (%g, %g) is not finite", f.x, f.y)
	}
	return f, in.EndObject()
}

// commitBase applies decoded base fields and marks the cache stale
func (b *base) commitBase(f baseFields) {
	b.x = f.x
	b.y = f.y
	b.color = f.color
	b.invalidate()
}
