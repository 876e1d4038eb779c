package element

import (
	"math"
	"slices"

	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

// NoPressure marks a point without its own width
const NoPressure = -1.0

// NoFill disables the fill of a closed stroke
const NoFill int32 = -1

// Point is a stroke sample. Z is the line width at the point, or NoPressure.
type Point struct {
	X, Y, Z float64
}

// NewPoint returns a point without pressure
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y, Z: NoPressure}
}

func (p Point) xy() geom.Point {
	return geom.Point{X: p.X, Y: p.Y}
}

// ToolType is the tool a stroke was drawn with
type ToolType int32

const (
	ToolPen ToolType = iota
	ToolEraser
	ToolHighlighter
)

func (t ToolType) String() string {
	switch t {
	case ToolPen:
		return "pen"
	case ToolEraser:
		return "eraser"
	case ToolHighlighter:
		return "highlighter"
	default:
		return "unknown"
	}
}

// CapStyle is the line cap used at stroke ends
type CapStyle int32

const (
	CapRound CapStyle = iota
	CapButt
	CapSquare
)

func (c CapStyle) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapButt:
		return "butt"
	case CapSquare:
		return "square"
	default:
		return "unknown"
	}
}

// Stroke is a freehand polyline.
//
// Its position and size are derived from the points: X and Y are the top
// left corner of the point box padded by half the line width.
type Stroke struct {
	base
	AudioRef

	points    []Point
	lineWidth float64
	tool      ToolType
	fill      int32
	capStyle  CapStyle
	dashes    []float64
}

// NewStroke returns an empty black pen stroke of the given line width
func NewStroke(lineWidth float64) *Stroke {
	s := &Stroke{lineWidth: lineWidth, fill: NoFill}
	s.base = newBase(TypeStroke, s)
	return s
}

func (s *Stroke) calcSize() {
	if len(s.points) == 0 {
		s.x, s.y = 0, 0
		s.width, s.height = 0, 0
		s.snappedBounds = geom.Rectangle{}
		return
	}
	var rg geom.Range
	thickness := s.lineWidth
	for _, p := range s.points {
		rg.AddPoint(p.X, p.Y)
		if p.Z != NoPressure && p.Z > thickness {
			thickness = p.Z
		}
	}
	box := rg.Rectangle()
	s.snappedBounds = box
	pad := thickness / 2
	if s.capStyle == CapSquare {
		// a square cap corner sits half a width past the end on both axes
		pad *= math.Sqrt2
	}
	bounds := box.Expanded(pad)
	s.x, s.y = bounds.X, bounds.Y
	s.width, s.height = bounds.Width, bounds.Height
}

// Points returns a copy of the samples
func (s *Stroke) Points() []Point {
	return slices.Clone(s.points)
}

func (s *Stroke) PointCount() int {
	return len(s.points)
}

// Point returns the i-th sample
func (s *Stroke) Point(i int) Point {
	return s.points[i]
}

// AddPoint appends a sample
func (s *Stroke) AddPoint(p Point) {
	s.points = append(s.points, p)
	s.invalidate()
}

// SetPoints replaces all samples
func (s *Stroke) SetPoints(points []Point) {
	s.points = slices.Clone(points)
	s.invalidate()
}

// SetPoint replaces the i-th sample
func (s *Stroke) SetPoint(i int, p Point) {
	s.points[i] = p
	s.invalidate()
}

// HasPressure reports whether the samples carry their own widths
func (s *Stroke) HasPressure() bool {
	return len(s.points) > 0 && s.points[0].Z != NoPressure
}

// SetPointPressure assigns per-point widths. Extra values are ignored and
// points beyond len(widths) keep their current width.
func (s *Stroke) SetPointPressure(widths []float64) {
	for i := range min(len(widths), len(s.points)) {
		s.points[i].Z = widths[i]
	}
	s.invalidate()
}

// ClearPressure drops the per-point widths
func (s *Stroke) ClearPressure() {
	for i := range s.points {
		s.points[i].Z = NoPressure
	}
	s.invalidate()
}

// LineWidth returns the nominal line width
func (s *Stroke) LineWidth() float64 {
	return s.lineWidth
}

func (s *Stroke) SetLineWidth(w float64) {
	s.lineWidth = w
	s.invalidate()
}

func (s *Stroke) ToolType() ToolType { return s.tool }

func (s *Stroke) SetToolType(t ToolType) { s.tool = t }

// Fill returns the fill alpha (1..255) or NoFill
func (s *Stroke) Fill() int32 { return s.fill }

func (s *Stroke) SetFill(fill int32) { s.fill = fill }

func (s *Stroke) CapStyle() CapStyle { return s.capStyle }

func (s *Stroke) SetCapStyle(c CapStyle) {
	s.capStyle = c
	s.invalidate()
}

// Dashes returns the dash pattern, empty for a solid line
func (s *Stroke) Dashes() []float64 {
	return slices.Clone(s.dashes)
}

// SetDashes sets the dash pattern. Negative and non-finite lengths are
// dropped.
func (s *Stroke) SetDashes(dashes []float64) {
	s.dashes = slices.DeleteFunc(slices.Clone(dashes), func(d float64) bool {
		return !geom.IsFinite(d) || d < 0
	})
}

// halfWidthAt returns half the width of the segment starting at point i
func (s *Stroke) halfWidthAt(i int) float64 {
	if z := s.points[i].Z; z != NoPressure {
		return z / 2
	}
	return s.lineWidth / 2
}

// segment returns segment i lengthened by the square caps painted at its
// ends. Every dash gets its own caps, so a dashed stroke extends all
// segments.
func (s *Stroke) segment(i int) (geom.Point, geom.Point) {
	a, b := s.points[i].xy(), s.points[i+1].xy()
	if s.capStyle != CapSquare {
		return a, b
	}
	l := a.Distance(b)
	if l == 0 {
		return a, b
	}
	hw := s.halfWidthAt(i)
	dashed := len(s.dashes) > 0
	u := b.Sub(a).Scale(1 / l)
	if i == 0 || dashed {
		a = a.Sub(u.Scale(hw))
	}
	if i == len(s.points)-2 || dashed {
		b = b.Add(u.Scale(hw))
	}
	return a, b
}

// filled reports whether the area enclosed by the points is painted
func (s *Stroke) filled() bool {
	return s.fill != NoFill && len(s.points) > 2
}

func (s *Stroke) polygon() []geom.Point {
	poly := make([]geom.Point, len(s.points))
	for i, p := range s.points {
		poly[i] = p.xy()
	}
	return poly
}

// fillIntersects reports whether r overlaps the filled area
func (s *Stroke) fillIntersects(r geom.Rectangle) bool {
	poly := s.polygon()
	for _, c := range r.Corners() {
		if geom.PointInPolygon(c, poly) {
			return true
		}
	}
	for _, p := range poly {
		if r.Contains(p.X, p.Y) {
			return true
		}
	}
	// the closing edge is part of the fill outline but not of the line
	return geom.SegmentIntersectsRect(poly[len(poly)-1], poly[0], r)
}

func (s *Stroke) SetX(x float64) {
	s.ensureSize()
	s.Move(x-s.x, 0)
}

func (s *Stroke) SetY(y float64) {
	s.ensureSize()
	s.Move(0, y-s.y)
}

// Move shifts every point. The cached size stays valid.
func (s *Stroke) Move(dx, dy float64) {
	for i := range s.points {
		s.points[i].X += dx
		s.points[i].Y += dy
	}
	s.shift(dx, dy)
}

func (s *Stroke) Scale(x0, y0, fx, fy, rotation float64, restoreLineWidth bool) {
	m := geom.ScaleAbout(x0, y0, fx, fy, rotation)
	fz := 1.0
	if !restoreLineWidth {
		fz = math.Sqrt(math.Abs(fx * fy))
	}
	for i := range s.points {
		p := &s.points[i]
		p.X, p.Y = m.Transform(p.X, p.Y)
		if p.Z != NoPressure {
			p.Z *= fz
		}
	}
	s.lineWidth *= fz
	s.invalidate()
}

func (s *Stroke) Rotate(x0, y0, theta float64) {
	m := geom.RotateAbout(x0, y0, theta)
	for i := range s.points {
		p := &s.points[i]
		p.X, p.Y = m.Transform(p.X, p.Y)
	}
	s.invalidate()
}

// IntersectsArea reports whether any segment passes within half the line
// width of r, or r overlaps the filled area
func (s *Stroke) IntersectsArea(r geom.Rectangle) bool {
	if len(s.points) == 0 || !s.BoundingRect().Intersects(r) {
		return false
	}
	if len(s.points) == 1 {
		p := s.points[0].xy()
		return geom.SegmentIntersectsRect(p, p, r.Expanded(s.halfWidthAt(0)))
	}
	for i := 0; i+1 < len(s.points); i++ {
		a, b := s.segment(i)
		if geom.SegmentIntersectsRect(a, b, r.Expanded(s.halfWidthAt(i))) {
			return true
		}
	}
	return s.filled() && s.fillIntersects(r)
}

func (s *Stroke) IntersectsXYWH(x, y, width, height float64) bool {
	return s.IntersectsArea(geom.NewRectangle(x, y, width, height))
}

// DistanceTo returns the distance to the painted line, 0 on the line.
// An empty stroke is infinitely far away.
func (s *Stroke) DistanceTo(x, y float64) float64 {
	if len(s.points) == 0 {
		return math.Inf(1)
	}
	p := geom.Point{X: x, Y: y}
	if len(s.points) == 1 {
		c, hw := s.points[0].xy(), s.halfWidthAt(0)
		if s.capStyle == CapRound {
			return math.Max(0, p.Distance(c)-hw)
		}
		return geom.NewRectangle(c.X-hw, c.Y-hw, 2*hw, 2*hw).DistanceTo(x, y)
	}
	if s.filled() && geom.PointInPolygon(p, s.polygon()) {
		return 0
	}
	best := math.Inf(1)
	for i := 0; i+1 < len(s.points); i++ {
		a, b := s.segment(i)
		if d := geom.SegmentDistance(p, a, b) - s.halfWidthAt(i); d < best {
			best = d
		}
	}
	if s.filled() {
		last := s.points[len(s.points)-1].xy()
		if d := geom.SegmentDistance(p, last, s.points[0].xy()); d < best {
			best = d
		}
	}
	return math.Max(0, best)
}

// IsInSelection reports whether every point lies inside c. An empty stroke
// is never selected.
func (s *Stroke) IsInSelection(c ShapeContainer) bool {
	if len(s.points) == 0 {
		return false
	}
	for _, p := range s.points {
		if !c.Contains(p.X, p.Y) {
			return false
		}
	}
	return true
}

func (s *Stroke) RescaleWithMirror() bool { return true }

func (s *Stroke) Clone() Element {
	c := &Stroke{
		AudioRef:  s.AudioRef,
		points:    slices.Clone(s.points),
		lineWidth: s.lineWidth,
		tool:      s.tool,
		fill:      s.fill,
		capStyle:  s.capStyle,
		dashes:    slices.Clone(s.dashes),
	}
	c.base = s.cloneBase(c)
	return c
}

func (s *Stroke) Serialize(out *serial.ObjectOutputStream) {
	out.WriteObject("Stroke")
	s.writeAudio(out)
	s.writeBase(out)
	out.WriteDouble(s.lineWidth)
	out.WriteInt(int32(s.tool))
	out.WriteInt(s.fill)
	out.WriteInt(int32(s.capStyle))
	out.WriteDoubleArray(s.dashes, 1)

	coords := make([]float64, 0, 3*len(s.points))
	for _, p := range s.points {
		coords = append(coords, p.X, p.Y, p.Z)
	}
	out.WriteDoubleArray(coords, 3)
	out.EndObject()
}

func (s *Stroke) ReadSerialized(in *serial.ObjectInputStream) error {
	if err := in.ReadObject("Stroke"); err != nil {
		return err
	}
	audio, err := readAudio(in)
	if err != nil {
		return err
	}
	bf, err := readBase(in)
	if err != nil {
		return err
	}
	lineWidth, err := in.ReadDouble()
	if err != nil {
		return err
	}
	tool, err := in.ReadInt()
	if err != nil {
		return err
	}
	fill, err := in.ReadInt()
	if err != nil {
		return err
	}
	capStyle, err := in.ReadInt()
	if err != nil {
		return err
	}
	dashes, err := in.ReadDoubleArray(1)
	if err != nil {
		return err
	}
	coords, err := in.ReadDoubleArray(3)
	if err != nil {
		return err
	}
	if err := in.EndObject(); err != nil {
		return err
	}

	switch {
	case !geom.IsFinite(lineWidth) || lineWidth < 0:
		return serial.InvalidValuef("stroke width %g", lineWidth)
	case tool < int32(ToolPen) || tool > int32(ToolHighlighter):
		return serial.InvalidValuef("stroke tool %d", tool)
	case fill != NoFill && (fill < 0 || fill > 255):
		return serial.InvalidValuef("stroke fill %d", fill)
	case capStyle < int32(CapRound) || capStyle > int32(CapSquare):
		return serial.InvalidValuef("stroke cap style %d", capStyle)
	}
	for _, d := range dashes {
		if !geom.IsFinite(d) || d < 0 {
			return serial.InvalidValuef("dash length %g", d)
		}
	}
	points := make([]Point, 0, len(coords)/3)
	for i := 0; i+2 < len(coords); i += 3 {
		p := Point{X: coords[i], Y: coords[i+1], Z: coords[i+2]}
		if !geom.IsFinite(p.X) || !geom.IsFinite(p.Y) {
			return serial.InvalidValuef("stroke point (%g, %g) is not finite", p.X, p.Y)
		}
		if p.Z != NoPressure && (!geom.IsFinite(p.Z) || p.Z < 0) {
			return serial.InvalidValuef("stroke point width %g", p.Z)
		}
		points = append(points, p)
	}

	s.AudioRef = audio
	s.commitBase(bf)
	s.points = points
	s.lineWidth = lineWidth
	s.tool = ToolType(tool)
	s.fill = fill
	s.capStyle = CapStyle(capStyle)
	if len(dashes) == 0 {
		dashes = nil
	}
	s.dashes = dashes
	return nil
}
