package element

import (
	"bytes"
	"image"
	_ "image/jpeg" // decoders for embedded images
	_ "image/png"

	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

var unitSquare = geom.NewRectangle(0, 0, 1, 1)

// placedImage is the shared state of Image and TexImage: encoded image
// bytes plus a matrix mapping the unit square onto the page
type placedImage struct {
	base

	data      []byte
	placement geom.Matrix
}

func (p *placedImage) calcSize() {
	bounds := p.placement.BoundsOf(unitSquare)
	p.x, p.y = bounds.X, bounds.Y
	p.width, p.height = bounds.Width, bounds.Height
	p.snappedBounds = bounds
}

// Data returns the encoded image bytes. The slice must not be modified.
func (p *placedImage) Data() []byte {
	return p.data
}

// SetData replaces the encoded image bytes
func (p *placedImage) SetData(data []byte) {
	p.data = bytes.Clone(data)
}

// DecodeConfig returns the pixel size and format of the encoded image
func (p *placedImage) DecodeConfig() (image.Config, string, error) {
	return image.DecodeConfig(bytes.NewReader(p.data))
}

// Decode decodes the encoded image
func (p *placedImage) Decode() (image.Image, string, error) {
	return image.Decode(bytes.NewReader(p.data))
}

// Placement returns the matrix mapping the unit square onto the page
func (p *placedImage) Placement() geom.Matrix {
	return p.placement
}

func (p *placedImage) SetPlacement(m geom.Matrix) {
	p.placement = m
	p.invalidate()
}

// SetSize places the image axis-aligned at its current position
func (p *placedImage) SetSize(width, height float64) {
	p.ensureSize()
	p.placement = geom.Scale(width, height).Multiply(geom.Translate(p.x, p.y))
	p.invalidate()
}

// Corners returns the placed unit square in page coordinates
func (p *placedImage) Corners() []geom.Point {
	corners := unitSquare.Corners()
	out := make([]geom.Point, len(corners))
	for i, c := range corners {
		out[i] = p.placement.TransformPoint(c)
	}
	return out
}

func (p *placedImage) SetX(x float64) {
	p.ensureSize()
	p.Move(x-p.x, 0)
}

func (p *placedImage) SetY(y float64) {
	p.ensureSize()
	p.Move(0, y-p.y)
}

func (p *placedImage) Move(dx, dy float64) {
	p.placement.E += dx
	p.placement.F += dy
	p.shift(dx, dy)
}

func (p *placedImage) Scale(x0, y0, fx, fy, rotation float64, _ bool) {
	p.placement = p.placement.Multiply(geom.ScaleAbout(x0, y0, fx, fy, rotation))
	p.invalidate()
}

func (p *placedImage) Rotate(x0, y0, theta float64) {
	p.placement = p.placement.Multiply(geom.RotateAbout(x0, y0, theta))
	p.invalidate()
}

// DistanceTo measures against the placed parallelogram, not its bounding box
func (p *placedImage) DistanceTo(x, y float64) float64 {
	return geom.DistanceToPolygon(geom.Point{X: x, Y: y}, p.Corners())
}

func (p *placedImage) RescaleOnlyAspectRatio() bool { return true }

func (p *placedImage) clonePlaced(self sizer) placedImage {
	return placedImage{
		base:      p.cloneBase(self),
		data:      bytes.Clone(p.data),
		placement: p.placement,
	}
}

func (p *placedImage) writePlacement(out *serial.ObjectOutputStream) {
	m := p.placement
	for _, v := range [6]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		out.WriteDouble(v)
	}
	out.WriteImage(p.data)
}

func readPlacement(in *serial.ObjectInputStream) (geom.Matrix, []byte, error) {
	var v [6]float64
	for i := range v {
		d, err := in.ReadDouble()
		if err != nil {
			return geom.Matrix{}, nil, err
		}
		if !geom.IsFinite(d) {
			return geom.Matrix{}, nil, serial.InvalidValuef("image placement value %g", d)
		}
		v[i] = d
	}
	data, err := in.ReadImage()
	if err != nil {
		return geom.Matrix{}, nil, err
	}
	return geom.Matrix{A: v[0], B: v[1], C: v[2], D: v[3], E: v[4], F: v[5]}, data, nil
}

// commitPlacement applies decoded fields. The position is derived from the
// placement, the stored one only seeds the cache.
func (p *placedImage) commitPlacement(bf baseFields, m geom.Matrix, data []byte) {
	p.commitBase(bf)
	p.placement = m
	p.data = data
}
