//go:build !noraster

package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/fonts"
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
)

func init() {
	register(BackendRaster, func() renderer { return rasterRenderer{} })
}

// circleSegments is the polygon resolution of round caps and dots
const circleSegments = 16

// rasterRenderer renders each page to a PNG and lets pdfcpu import the
// images as full-page content
type rasterRenderer struct{}

func (rasterRenderer) render(s *session, w io.Writer) error {
	dpi := s.opts.rasterDPI
	images := make([]io.Reader, 0, len(s.pages))
	for _, op := range s.pages {
		if err := s.beginPage(); err != nil {
			return err
		}
		img, err := rasterizePage(op, s.opts.background, dpi/72)
		if err != nil {
			return &PageError{Page: op.source, Err: err}
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return &PageError{Page: op.source, Err: fmt.Errorf("failed to encode page: %w", err)}
		}
		images = append(images, &buf)
		s.endPage(op)
	}

	imp := pdfcpu.DefaultImportConfig()
	imp.Pos = types.Full
	imp.DPI = int(math.Round(dpi))
	if err := api.ImportImages(nil, w, images, imp, s.opts.config()); err != nil {
		return fmt.Errorf("failed to import page images: %w", err)
	}
	return nil
}

// canvas maps page coordinates to the pixels of a page image
type canvas struct {
	dst   *image.RGBA
	scale float64
	rast  *vector.Rasterizer
}

func newCanvas(width, height, scale float64) *canvas {
	w := max(1, int(math.Ceil(width*scale)))
	h := max(1, int(math.Ceil(height*scale)))
	return &canvas{
		dst:   image.NewRGBA(image.Rect(0, 0, w, h)),
		scale: scale,
		rast:  vector.NewRasterizer(w, h),
	}
}

// fill paints the union of the polygons. All polygons must have the same
// orientation so overlaps do not cancel out.
func (c *canvas) fill(col color.Color, polys [][]geom.Point) {
	if len(polys) == 0 {
		return
	}
	b := c.dst.Bounds()
	c.rast.Reset(b.Dx(), b.Dy())
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		c.rast.MoveTo(c.px(poly[0]))
		for _, p := range poly[1:] {
			c.rast.LineTo(c.px(p))
		}
		c.rast.ClosePath()
	}
	c.rast.Draw(c.dst, b, image.NewUniform(col), image.Point{})
}

func (c *canvas) px(p geom.Point) (float32, float32) {
	return float32(p.X * c.scale), float32(p.Y * c.scale)
}

func rasterizePage(op outputPage, mode ExportBackground, scale float64) (*image.RGBA, error) {
	p := op.page
	c := newCanvas(p.Width, p.Height, scale)

	r := pageRuling(p, mode)
	if r.fill {
		draw.Draw(c.dst, c.dst.Bounds(), image.NewUniform(r.paper), image.Point{}, draw.Src)
	}
	byColor := map[element.Color][][]geom.Point{}
	var order []element.Color
	for _, l := range r.lines {
		if _, ok := byColor[l.color]; !ok {
			order = append(order, l.color)
		}
		byColor[l.color] = append(byColor[l.color], segmentQuad(l.from, l.to, rulingLineWidth/2))
	}
	for _, col := range order {
		c.fill(col, byColor[col])
	}
	dots := make([][]geom.Point, len(r.dots))
	for i, d := range r.dots {
		dots[i] = circle(d, rulingDotRadius)
	}
	c.fill(rulingDotColor, dots)

	for _, el := range op.elements() {
		var err error
		switch el := el.(type) {
		case *element.Stroke:
			c.stroke(el)
		case *element.Text:
			err = c.text(el)
		case placed:
			err = c.image(el)
		}
		if err != nil {
			return nil, err
		}
	}
	return c.dst, nil
}

func (c *canvas) stroke(s *element.Stroke) {
	pts := s.Points()
	if len(pts) == 0 {
		return
	}
	if s.Fill() != element.NoFill && len(pts) > 2 {
		area := make([]geom.Point, len(pts))
		for i, p := range pts {
			area[i] = geom.Point{X: p.X, Y: p.Y}
		}
		c.fill(s.Color().WithAlpha(uint8(s.Fill())), [][]geom.Point{orient(area)})
	}
	c.fill(s.Color(), strokeOutline(s))
}

// strokeOutline returns polygons covering the stroke: a quad per segment
// plus joins and caps
func strokeOutline(s *element.Stroke) [][]geom.Point {
	pts := s.Points()
	capStyle := s.CapStyle()

	if len(pts) == 1 {
		p := runPoint{pts[0]}.pt()
		hw := runPoint{pts[0]}.hw(s)
		if capStyle == element.CapRound {
			return [][]geom.Point{circle(p, hw)}
		}
		return [][]geom.Point{orient([]geom.Point{
			{X: p.X - hw, Y: p.Y - hw}, {X: p.X + hw, Y: p.Y - hw},
			{X: p.X + hw, Y: p.Y + hw}, {X: p.X - hw, Y: p.Y + hw},
		})}
	}

	var polys [][]geom.Point
	for _, run := range dashRuns(pts, s.Dashes()) {
		last := len(run) - 1
		for i := 0; i < last; i++ {
			hw := run[i].hw(s)
			var extendFrom, extendTo float64
			if capStyle == element.CapSquare {
				if i == 0 {
					extendFrom = hw
				}
				if i == last-1 {
					extendTo = hw
				}
			}
			polys = append(polys, extendedQuad(run[i].pt(), run[i+1].pt(), hw, extendFrom, extendTo))
		}
		// round joins, and round caps at the run ends
		for i := range run {
			if (i == 0 || i == last) && capStyle != element.CapRound {
				continue
			}
			polys = append(polys, circle(run[i].pt(), run[i].hw(s)))
		}
	}
	return polys
}

// runPoint is a stroke sample on a dash run
type runPoint struct {
	element.Point
}

func (r runPoint) pt() geom.Point {
	return geom.Point{X: r.X, Y: r.Y}
}

func (r runPoint) hw(s *element.Stroke) float64 {
	return pressureWidth(s, r.Point) / 2
}

// dashRuns splits a polyline into the visible runs of a dash pattern. A
// solid line is one run.
func dashRuns(pts []element.Point, dashes []float64) [][]runPoint {
	total := 0.0
	for _, d := range dashes {
		total += d
	}
	if len(dashes) == 0 || total <= 0 {
		run := make([]runPoint, len(pts))
		for i, p := range pts {
			run[i] = runPoint{p}
		}
		return [][]runPoint{run}
	}

	var runs [][]runPoint
	var cur []runPoint
	idx, left := 0, dashes[0]
	on := true
	for i := 0; i+1 < len(pts); i++ {
		a, b := pts[i], pts[i+1]
		segLen := math.Hypot(b.X-a.X, b.Y-a.Y)
		pos := 0.0
		for pos < segLen {
			step := math.Min(left, segLen-pos)
			if on {
				from := lerpPoint(a, b, pos/segLen)
				to := lerpPoint(a, b, (pos+step)/segLen)
				if len(cur) == 0 {
					cur = append(cur, runPoint{from})
				}
				cur = append(cur, runPoint{to})
			}
			pos += step
			left -= step
			if left <= 0 {
				if on && len(cur) > 1 {
					runs = append(runs, cur)
				}
				cur = nil
				on = !on
				idx = (idx + 1) % len(dashes)
				left = dashes[idx]
			}
		}
	}
	if len(cur) > 1 {
		runs = append(runs, cur)
	}
	return runs
}

func lerpPoint(a, b element.Point, t float64) element.Point {
	return element.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t, Z: a.Z}
}

// segmentQuad returns the rectangle of half-width hw around ab
func segmentQuad(a, b geom.Point, hw float64) []geom.Point {
	return extendedQuad(a, b, hw, 0, 0)
}

// extendedQuad is segmentQuad with the ends pushed outwards along the
// segment
func extendedQuad(a, b geom.Point, hw, extendFrom, extendTo float64) []geom.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	ux, uy := dx/l, dy/l
	a = geom.Point{X: a.X - ux*extendFrom, Y: a.Y - uy*extendFrom}
	b = geom.Point{X: b.X + ux*extendTo, Y: b.Y + uy*extendTo}
	nx, ny := -uy*hw, ux*hw
	return orient([]geom.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	})
}

// circle returns a polygon approximating a circle, positively oriented
func circle(center geom.Point, r float64) []geom.Point {
	if r <= 0 {
		return nil
	}
	poly := make([]geom.Point, circleSegments)
	for i := range poly {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / circleSegments)
		poly[i] = geom.Point{X: center.X + r*cos, Y: center.Y + r*sin}
	}
	return poly
}

// orient returns poly with a positive signed area
func orient(poly []geom.Point) []geom.Point {
	area := 0.0
	for i, p := range poly {
		q := poly[(i+1)%len(poly)]
		area += p.X*q.Y - q.X*p.Y
	}
	if area < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
	return poly
}

func (c *canvas) text(t *element.Text) error {
	str, f := t.Text(), t.Font()
	if str == "" || f.Size <= 0 {
		return nil
	}
	ext, err := fonts.Measure(str, f.Size)
	if err != nil {
		return err
	}
	face, err := fonts.NewFace(f.Size * c.scale)
	if err != nil {
		return err
	}
	defer face.Close()

	d := &font.Drawer{Dst: c.dst, Src: image.NewUniform(t.Color()), Face: face}
	for i, line := range strings.Split(str, "\n") {
		baseline := t.Y() + ext.Ascent + float64(i)*ext.LineHeight
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(math.Round(t.X() * c.scale * 64)),
			Y: fixed.Int26_6(math.Round(baseline * c.scale * 64)),
		}
		d.DrawString(line)
	}
	return nil
}

func (c *canvas) image(el placed) error {
	src, format, err := el.Decode()
	if err != nil {
		return fmt.Errorf("failed to decode %s image: %w", el.Type(), err)
	}
	sr := src.Bounds()
	if sr.Empty() {
		return fmt.Errorf("empty %s image", format)
	}
	m := geom.Translate(-float64(sr.Min.X), -float64(sr.Min.Y)).
		Multiply(geom.Scale(1/float64(sr.Dx()), 1/float64(sr.Dy()))).
		Multiply(el.Placement()).
		Multiply(geom.Scale(c.scale, c.scale))
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
	draw.BiLinear.Transform(c.dst, s2d, src, sr, draw.Over, nil)
	return nil
}
