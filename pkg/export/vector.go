package export

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/filter"

	"github.com/pyhub-apps/inkdoc-golang/pkg/content"
	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/fonts"
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
)

func init() {
	register(BackendVector, func() renderer { return vectorRenderer{} })
}

// placed is an element drawn from encoded image bytes
type placed interface {
	element.Element
	Data() []byte
	Decode() (image.Image, string, error)
	Placement() geom.Matrix
}

// vectorRenderer writes strokes as paths and text with an embedded font,
// then lets pdfcpu optimize the assembled file
type vectorRenderer struct{}

func (vectorRenderer) render(s *session, w io.Writer) error {
	b := newPDFBuilder()
	for _, op := range s.pages {
		if err := s.beginPage(); err != nil {
			return err
		}
		if err := b.addPage(op, s.opts.background); err != nil {
			return &PageError{Page: op.source, Err: err}
		}
		s.endPage(op)
	}

	var raw bytes.Buffer
	if err := b.finish(&raw, s.title); err != nil {
		return fmt.Errorf("failed to assemble PDF: %w", err)
	}
	if err := api.Optimize(bytes.NewReader(raw.Bytes()), w, s.opts.config()); err != nil {
		return fmt.Errorf("failed to optimize PDF: %w", err)
	}
	return nil
}

// flate compresses data with pdfcpu's FlateDecode filter
func flate(data []byte) ([]byte, error) {
	f, err := filter.NewFilter(filter.Flate, nil)
	if err != nil {
		return nil, err
	}
	r, err := f.Encode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

type pdfBuilder struct {
	file     *content.File
	pagesRef int
	kids     []int
	fontRef  int
	images   map[[sha256.Size]byte]int
}

func newPDFBuilder() *pdfBuilder {
	f := content.NewFile()
	return &pdfBuilder{
		file:     f,
		pagesRef: f.Reserve(),
		images:   make(map[[sha256.Size]byte]int),
	}
}

// gsKey identifies an ExtGState resource
type gsKey struct {
	strokeAlpha, fillAlpha float64
	multiply               bool
}

// resources collects the named resources of one page
type resources struct {
	fonts    []namedRef
	xobjects []namedRef
	gstates  []gsKey
}

type namedRef struct {
	name string
	ref  int
}

func (r *resources) font(ref int) string {
	for _, f := range r.fonts {
		if f.ref == ref {
			return f.name
		}
	}
	name := "F" + strconv.Itoa(len(r.fonts)+1)
	r.fonts = append(r.fonts, namedRef{name, ref})
	return name
}

func (r *resources) xobject(ref int) string {
	for _, x := range r.xobjects {
		if x.ref == ref {
			return x.name
		}
	}
	name := "Im" + strconv.Itoa(len(r.xobjects)+1)
	r.xobjects = append(r.xobjects, namedRef{name, ref})
	return name
}

// gstate returns the resource name for the given alpha values, or "" when
// they are the PDF defaults
func (r *resources) gstate(k gsKey) string {
	if k.strokeAlpha >= 1 && k.fillAlpha >= 1 && !k.multiply {
		return ""
	}
	for i, g := range r.gstates {
		if g == k {
			return "GS" + strconv.Itoa(i+1)
		}
	}
	r.gstates = append(r.gstates, k)
	return "GS" + strconv.Itoa(len(r.gstates))
}

func (r *resources) String() string {
	var sb strings.Builder
	sb.WriteString("<<")
	writeRefs := func(key string, refs []namedRef) {
		if len(refs) == 0 {
			return
		}
		fmt.Fprintf(&sb, " /%s <<", key)
		for _, n := range refs {
			fmt.Fprintf(&sb, " /%s %s", n.name, content.Ref(n.ref))
		}
		sb.WriteString(" >>")
	}
	writeRefs("Font", r.fonts)
	writeRefs("XObject", r.xobjects)
	if len(r.gstates) > 0 {
		sb.WriteString(" /ExtGState <<")
		for i, g := range r.gstates {
			fmt.Fprintf(&sb, " /GS%d << /Type /ExtGState /CA %s /ca %s", i+1,
				content.FormatNumber(g.strokeAlpha), content.FormatNumber(g.fillAlpha))
			if g.multiply {
				sb.WriteString(" /BM /Multiply")
			}
			sb.WriteString(" >>")
		}
		sb.WriteString(" >>")
	}
	sb.WriteString(" >>")
	return sb.String()
}

func (b *pdfBuilder) addPage(op outputPage, mode ExportBackground) error {
	p := op.page
	res := &resources{}
	cw := content.NewWriter()

	// page coordinates grow downwards
	cw.ConcatMatrix(geom.Matrix{A: 1, D: -1, F: p.Height})
	drawVectorRuling(cw, pageRuling(p, mode), p.Width, p.Height)

	for _, el := range op.elements() {
		var err error
		switch el := el.(type) {
		case *element.Stroke:
			drawVectorStroke(cw, res, el)
		case *element.Text:
			err = b.drawText(cw, res, el)
		case placed:
			err = b.drawImage(cw, res, el)
		}
		if err != nil {
			return err
		}
	}

	stream, err := flate(cw.Bytes())
	if err != nil {
		return fmt.Errorf("failed to compress content: %w", err)
	}
	contents := b.file.AddStream("/Filter /FlateDecode", stream)
	page := b.file.Add(fmt.Sprintf("<< /Type /Page /Parent %s /MediaBox [0 0 %s %s] /Contents %s /Resources %s >>",
		content.Ref(b.pagesRef),
		content.FormatNumber(p.Width), content.FormatNumber(p.Height),
		content.Ref(contents), res))
	b.kids = append(b.kids, page)
	return nil
}

func (b *pdfBuilder) finish(w io.Writer, title string) error {
	kids := make([]string, len(b.kids))
	for i, k := range b.kids {
		kids[i] = content.Ref(k)
	}
	b.file.Set(b.pagesRef, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(b.kids)))
	b.file.SetRoot(b.file.Add(fmt.Sprintf("<< /Type /Catalog /Pages %s >>", content.Ref(b.pagesRef))))

	info := "<< /Creator (inkdoc)"
	if title != "" {
		info += " /Title " + content.EscapeString(fonts.EncodeWinAnsi(title))
	}
	b.file.SetInfo(b.file.Add(info + " >>"))

	_, err := b.file.WriteTo(w)
	return err
}

func drawVectorRuling(cw *content.Writer, r ruling, width, height float64) {
	if r.fill {
		cw.SetFillRGB(r.paper.Float())
		cw.Rectangle(0, 0, width, height)
		cw.Fill()
	}
	if len(r.lines) > 0 {
		cw.SetLineWidth(rulingLineWidth)
		cw.SetLineCap(content.CapButt)
		for _, l := range r.lines {
			cw.SetStrokeRGB(l.color.Float())
			cw.MoveTo(l.from.X, l.from.Y)
			cw.LineTo(l.to.X, l.to.Y)
			cw.Stroke()
		}
	}
	if len(r.dots) > 0 {
		cw.SetFillRGB(rulingDotColor.Float())
		for _, d := range r.dots {
			circlePath(cw, d.X, d.Y, rulingDotRadius)
		}
		cw.Fill()
	}
}

// circlePath appends a closed circle made of four Bezier curves
func circlePath(cw *content.Writer, cx, cy, r float64) {
	k := r * 4 * (math.Sqrt2 - 1) / 3
	cw.MoveTo(cx+r, cy)
	cw.CurveTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	cw.CurveTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	cw.CurveTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	cw.CurveTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	cw.ClosePath()
}

func pdfCap(c element.CapStyle) int {
	switch c {
	case element.CapButt:
		return content.CapButt
	case element.CapSquare:
		return content.CapSquare
	default:
		return content.CapRound
	}
}

func drawVectorStroke(cw *content.Writer, res *resources, s *element.Stroke) {
	pts := s.Points()
	if len(pts) == 0 {
		return
	}
	c := s.Color()
	key := gsKey{
		strokeAlpha: c.Opacity(),
		fillAlpha:   c.Opacity(),
		multiply:    s.ToolType() == element.ToolHighlighter,
	}
	filled := s.Fill() != element.NoFill && len(pts) > 2
	if filled {
		key.fillAlpha = float64(s.Fill()) / 255
	}

	cw.SaveState()
	defer cw.RestoreState()
	if name := res.gstate(key); name != "" {
		cw.SetExtGState(name)
	}
	cw.SetStrokeRGB(c.Float())
	cw.SetLineCap(pdfCap(s.CapStyle()))
	cw.SetLineJoin(content.JoinRound)
	cw.SetDash(s.Dashes(), 0)

	if filled {
		cw.SetFillRGB(c.Float())
		polyline(cw, pts)
		cw.ClosePath()
		cw.Fill()
	}

	if !s.HasPressure() {
		cw.SetLineWidth(s.LineWidth())
		polyline(cw, pts)
		cw.Stroke()
		return
	}

	// one segment per sample so each can carry its own width
	if len(pts) == 1 {
		cw.SetLineWidth(pressureWidth(s, pts[0]))
		polyline(cw, pts)
		cw.Stroke()
		return
	}
	dashes := s.Dashes()
	travelled := 0.0
	for i := 0; i+1 < len(pts); i++ {
		// continue the pattern where the previous segment left it
		cw.SetDash(dashes, dashPhase(dashes, travelled))
		cw.SetLineWidth(pressureWidth(s, pts[i]))
		cw.MoveTo(pts[i].X, pts[i].Y)
		cw.LineTo(pts[i+1].X, pts[i+1].Y)
		cw.Stroke()
		travelled += math.Hypot(pts[i+1].X-pts[i].X, pts[i+1].Y-pts[i].Y)
	}
}

// dashPhase returns the offset into the dash pattern after length units of
// path
func dashPhase(dashes []float64, length float64) float64 {
	total := 0.0
	for _, d := range dashes {
		total += d
	}
	if total <= 0 {
		return 0
	}
	return math.Mod(length, total)
}

// polyline appends the stroke path. A single sample becomes a zero-length
// segment so that round and square caps still paint a dot.
func polyline(cw *content.Writer, pts []element.Point) {
	cw.MoveTo(pts[0].X, pts[0].Y)
	if len(pts) == 1 {
		cw.LineTo(pts[0].X, pts[0].Y)
		return
	}
	for _, p := range pts[1:] {
		cw.LineTo(p.X, p.Y)
	}
}

func pressureWidth(s *element.Stroke, p element.Point) float64 {
	if p.Z == element.NoPressure {
		return s.LineWidth()
	}
	return p.Z
}

func (b *pdfBuilder) drawText(cw *content.Writer, res *resources, t *element.Text) error {
	str, f := t.Text(), t.Font()
	if str == "" || f.Size <= 0 {
		return nil
	}
	ext, err := fonts.Measure(str, f.Size)
	if err != nil {
		return err
	}
	ref, err := b.font()
	if err != nil {
		return err
	}
	name := res.font(ref)

	c := t.Color()
	cw.SaveState()
	defer cw.RestoreState()
	if gs := res.gstate(gsKey{strokeAlpha: 1, fillAlpha: c.Opacity()}); gs != "" {
		cw.SetExtGState(gs)
	}
	cw.SetFillRGB(c.Float())
	cw.BeginText()
	cw.SetFont(name, f.Size)
	for i, line := range strings.Split(str, "\n") {
		baseline := t.Y() + ext.Ascent + float64(i)*ext.LineHeight
		// flip glyphs back upright inside the y-down page space
		cw.SetTextMatrix(geom.Matrix{A: 1, D: -1, E: t.X(), F: baseline})
		cw.ShowText(fonts.EncodeWinAnsi(line))
	}
	cw.EndText()
	return nil
}

// font embeds the TrueType program on first use and returns the font
// dictionary
func (b *pdfBuilder) font() (int, error) {
	if b.fontRef != 0 {
		return b.fontRef, nil
	}
	d, err := fonts.PDFDescriptor()
	if err != nil {
		return 0, err
	}
	ttf := fonts.TTF()
	program, err := flate(ttf)
	if err != nil {
		return 0, fmt.Errorf("failed to compress font: %w", err)
	}
	fileRef := b.file.AddStream(fmt.Sprintf("/Filter /FlateDecode /Length1 %d", len(ttf)), program)
	descRef := b.file.Add(fmt.Sprintf(
		"<< /Type /FontDescriptor /FontName /%s /Flags 32 /FontBBox [%d %d %d %d] /ItalicAngle 0 /Ascent %d /Descent %d /CapHeight %d /StemV 80 /FontFile2 %s >>",
		fonts.EmbeddedName, d.BBox[0], d.BBox[1], d.BBox[2], d.BBox[3],
		d.Ascent, d.Descent, d.CapHeight, content.Ref(fileRef)))

	widths := make([]string, len(d.Widths))
	for i, w := range d.Widths {
		widths[i] = strconv.Itoa(w)
	}
	b.fontRef = b.file.Add(fmt.Sprintf(
		"<< /Type /Font /Subtype /TrueType /BaseFont /%s /FirstChar %d /LastChar %d /Widths [%s] /Encoding /WinAnsiEncoding /FontDescriptor %s >>",
		fonts.EmbeddedName, fonts.FirstChar, fonts.LastChar, strings.Join(widths, " "), content.Ref(descRef)))
	return b.fontRef, nil
}

func (b *pdfBuilder) drawImage(cw *content.Writer, res *resources, el placed) error {
	ref, err := b.image(el)
	if err != nil {
		return err
	}
	name := res.xobject(ref)

	cw.SaveState()
	defer cw.RestoreState()
	// image space has its first row at the top of the unit square
	cw.ConcatMatrix(geom.Matrix{A: 1, D: -1, F: 1}.Multiply(el.Placement()))
	cw.DrawXObject(name)
	return nil
}

// image writes an image XObject, reusing it for identical bytes
func (b *pdfBuilder) image(el placed) (int, error) {
	sum := sha256.Sum256(el.Data())
	if ref, ok := b.images[sum]; ok {
		return ref, nil
	}

	img, format, err := el.Decode()
	if err != nil {
		return 0, fmt.Errorf("failed to decode %s image: %w", el.Type(), err)
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return 0, fmt.Errorf("empty %s image", format)
	}

	rgb := make([]byte, 0, w*h*3)
	alpha := make([]byte, 0, w*h)
	opaque := true
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rgb = append(rgb, c.R, c.G, c.B)
			alpha = append(alpha, c.A)
			if c.A != 0xff {
				opaque = false
			}
		}
	}

	dict := fmt.Sprintf("/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceRGB /BitsPerComponent 8 /Filter /FlateDecode", w, h)
	if !opaque {
		mask, err := flate(alpha)
		if err != nil {
			return 0, err
		}
		maskRef := b.file.AddStream(fmt.Sprintf(
			"/Type /XObject /Subtype /Image /Width %d /Height %d /ColorSpace /DeviceGray /BitsPerComponent 8 /Filter /FlateDecode", w, h), mask)
		dict += " /SMask " + content.Ref(maskRef)
	}
	data, err := flate(rgb)
	if err != nil {
		return 0, err
	}
	ref := b.file.AddStream(dict, data)
	b.images[sum] = ref
	return ref, nil
}
