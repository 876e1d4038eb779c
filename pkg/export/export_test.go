package export_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/inkdoc-golang/pkg/document"
	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/export"
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/pdf"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(60 * x), G: uint8(80 * y), B: 200, A: 255})
		}
	}
	img.Set(3, 2, color.NRGBA{R: 255, A: 100})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func line(width float64, pts ...float64) *element.Stroke {
	s := element.NewStroke(width)
	for i := 0; i+1 < len(pts); i += 2 {
		s.AddPoint(element.NewPoint(pts[i], pts[i+1]))
	}
	return s
}

// sampleDocument has two pages: an A4 lined page with every element type
// and two layers, and a dotted letter page with pressure and dashed strokes
func sampleDocument(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New()
	doc.Title = "Lecture notes"

	p1 := document.NewPage(document.A4Width, document.A4Height,
		document.Background{Kind: document.BackgroundLined, Color: element.White, PDFPage: document.NoPDFPage})
	s := line(2, 72, 100, 200, 140, 300, 100)
	s.SetColor(element.RGB(0x20, 0x40, 0xc0))
	p1.Layer(0).Add(s)

	hl := line(12, 80, 200, 400, 200)
	hl.SetToolType(element.ToolHighlighter)
	hl.SetColor(element.RGBA(0xff, 0xff, 0, 0x80))
	hl.SetCapStyle(element.CapButt)
	p1.Layer(0).Add(hl)

	txt := element.NewText("Hello\nWorld é", 72, 300)
	txt.SetFont(element.Font{Name: "GoRegular", Size: 18})
	p1.Layer(0).Add(txt)

	top := p1.AddLayer("images")
	top.Add(element.NewImage(testPNG(t), geom.NewRectangle(300, 400, 120, 90)))
	top.Add(element.NewTexImage(`\frac{a}{b}`, testPNG(t), geom.NewRectangle(100, 500, 40, 30)))
	doc.AddPage(p1)

	p2 := document.NewPage(document.LetterWidth, document.LetterHeight,
		document.Background{Kind: document.BackgroundDotted, Color: element.RGB(250, 250, 235), PDFPage: document.NoPDFPage})
	pressure := line(1, 50, 50, 100, 80, 150, 60, 200, 90)
	pressure.SetPointPressure([]float64{1, 2.5, 4, 1.5})
	p2.Layer(0).Add(pressure)

	dashed := line(1.5, 50, 300, 500, 300)
	dashed.SetDashes([]float64{6, 3})
	dashed.SetCapStyle(element.CapSquare)
	p2.Layer(0).Add(dashed)

	filled := line(1, 300, 400, 400, 400, 350, 480)
	filled.SetFill(128)
	p2.Layer(0).Add(filled)

	p2.Layer(0).Add(line(3, 450, 450))
	doc.AddPage(p2)
	return doc
}

// recorder records progress calls
type recorder struct {
	max    int
	states []int
	onStep func(state int)
}

func (r *recorder) SetMaximumState(max int) { r.max = max }

func (r *recorder) SetCurrentState(state int) {
	r.states = append(r.states, state)
	if r.onStep != nil {
		r.onStep(state)
	}
}

func TestCreateExportErrors(t *testing.T) {
	_, err := export.CreateExport(nil, nil, export.BackendDefault)
	assert.ErrorIs(t, err, export.ErrNilDocument)

	_, err = export.CreateExport(document.New(), nil, export.Backend(42))
	require.ErrorIs(t, err, export.ErrBackendUnavailable)
	var be *export.BackendError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, export.Backend(42), be.Backend)
	assert.False(t, export.Available(export.Backend(42)))
}

func TestDefaultBackendIsVector(t *testing.T) {
	exp, err := export.CreateExport(document.New(), nil, export.BackendDefault)
	require.NoError(t, err)
	assert.Equal(t, export.BackendVector, exp.Backend())
	assert.True(t, export.Available(export.BackendDefault))
}

func TestVectorExport(t *testing.T) {
	doc := sampleDocument(t)
	exp, err := export.CreateExport(doc, nil, export.BackendVector)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, exp.CreatePDF(path))
	require.NoError(t, export.Verify(path, 2))

	out, err := pdf.Open(path)
	require.NoError(t, err)
	defer out.Close()
	first, err := out.GetPage(0)
	require.NoError(t, err)
	assert.InDelta(t, document.A4Width, first.GetWidth(), 0.01)
	assert.InDelta(t, document.A4Height, first.GetHeight(), 0.01)
	second, err := out.GetPage(1)
	require.NoError(t, err)
	assert.InDelta(t, document.LetterWidth, second.GetWidth(), 0.01)
}

func TestInspectVectorExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	exp, err := export.CreateExport(sampleDocument(t), nil, export.BackendVector)
	require.NoError(t, err)
	require.NoError(t, exp.CreatePDF(path))

	pages, err := export.Inspect(path)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	first := pages[0].Operators
	assert.Equal(t, 2, first["Tj"], "one Tj per text line")
	assert.Equal(t, 2, first["Do"], "image and tex image")
	assert.Equal(t, 1, first["gs"], "highlighter alpha")
	assert.Greater(t, first["S"], 10, "ruling and strokes")

	second := pages[1].Operators
	assert.Zero(t, second["Tj"])
	assert.Equal(t, 4, second["w"], "two pressure widths, the dashed line and the dot")
	assert.Equal(t, 1, second["d"])
}

func TestBackgroundModes(t *testing.T) {
	doc := sampleDocument(t)
	sizes := map[export.ExportBackground]int{}
	for _, mode := range []export.ExportBackground{export.BackgroundNone, export.BackgroundUnruled, export.BackgroundAll} {
		exp, err := export.CreateExport(doc, nil, export.BackendVector, export.WithExportBackground(mode))
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, exp.WritePDF(&buf, nil), mode.String())
		assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
		sizes[mode] = buf.Len()
	}
	// ruling adds content on top of the paper fill
	assert.Greater(t, sizes[export.BackgroundAll], sizes[export.BackgroundUnruled])
}

func TestProgressiveMode(t *testing.T) {
	doc := document.New()
	p := document.NewPage(200, 200, document.PlainBackground(element.White))
	p.Layer(0).Add(line(1, 10, 10, 50, 50))
	p.AddLayer("second").Add(line(1, 60, 10, 90, 50))
	p.AddLayer("third").Add(line(1, 10, 100, 50, 150))
	hidden := p.AddLayer("hidden")
	hidden.Visible = false
	doc.AddPage(p)

	n, err := export.OutputPageCount(doc, nil, true)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = export.OutputPageCount(doc, nil, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	exp, err := export.CreateExport(doc, nil, export.BackendDefault)
	require.NoError(t, err)
	exp.SetProgressiveMode(true)
	path := filepath.Join(t.TempDir(), "progressive.pdf")
	require.NoError(t, exp.CreatePDF(path))
	assert.NoError(t, export.Verify(path, 3))
}

func TestExportRange(t *testing.T) {
	doc := sampleDocument(t)
	exp, err := export.CreateExport(doc, nil, export.BackendVector)
	require.NoError(t, err)

	r, err := export.ParsePageRange("2")
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "page2.pdf")
	require.NoError(t, exp.CreatePDFRange(path, r))
	require.NoError(t, export.Verify(path, 1))

	out, err := pdf.Open(path)
	require.NoError(t, err)
	defer out.Close()
	page, err := out.GetPage(0)
	require.NoError(t, err)
	assert.InDelta(t, document.LetterHeight, page.GetHeight(), 0.01)

	bad := filepath.Join(t.TempDir(), "bad.pdf")
	err = exp.CreatePDFRange(bad, export.PageRange{{First: 1, Last: 5}})
	assert.ErrorIs(t, err, export.ErrPageRange)
	assert.NoFileExists(t, bad)
}

func TestEmptyDocument(t *testing.T) {
	exp, err := export.CreateExport(document.New(), nil, export.BackendVector)
	require.NoError(t, err)
	var buf bytes.Buffer
	assert.ErrorIs(t, exp.WritePDF(&buf, nil), export.ErrPageRange)
	assert.Zero(t, buf.Len())
}

func TestProgress(t *testing.T) {
	rec := &recorder{}
	exp, err := export.CreateExport(sampleDocument(t), rec, export.BackendVector)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, exp.WritePDF(&buf, nil))
	assert.Equal(t, 2, rec.max)
	assert.Equal(t, []int{1, 2}, rec.states)
}

func TestProgressFunc(t *testing.T) {
	var got []float64
	listener := export.ProgressFunc(func(f float64) { got = append(got, f) }).Listener()
	exp, err := export.CreateExport(sampleDocument(t), listener, export.BackendVector)
	require.NoError(t, err)
	require.NoError(t, exp.WritePDF(&bytes.Buffer{}, nil))
	assert.Equal(t, []float64{0, 0.5, 1}, got)
}

func TestCancel(t *testing.T) {
	rec := &recorder{}
	exp, err := export.CreateExport(sampleDocument(t), rec, export.BackendVector)
	require.NoError(t, err)
	rec.onStep = func(int) { exp.(export.Canceler).Cancel() }

	path := filepath.Join(t.TempDir(), "canceled.pdf")
	err = exp.CreatePDF(path)
	require.ErrorIs(t, err, export.ErrCanceled)
	assert.Equal(t, []int{1}, rec.states)
	assert.NoFileExists(t, path)

	// a new export starts uncanceled
	rec.onStep = nil
	rec.states = nil
	require.NoError(t, exp.CreatePDF(path))
	assert.Equal(t, []int{1, 2}, rec.states)
}

func TestExportInProgress(t *testing.T) {
	doc := sampleDocument(t)
	exp, err := export.CreateExport(doc, nil, export.BackendVector)
	require.NoError(t, err)

	require.True(t, doc.TryLockExport())
	var buf bytes.Buffer
	assert.ErrorIs(t, exp.WritePDF(&buf, nil), export.ErrExportInProgress)
	doc.UnlockExport()

	assert.NoError(t, exp.WritePDF(&buf, nil))
}

func TestUndecodableImage(t *testing.T) {
	doc := document.New()
	p := document.NewPage(100, 100, document.PlainBackground(element.White))
	p.Layer(0).Add(element.NewImage([]byte("not an image"), geom.NewRectangle(0, 0, 10, 10)))
	doc.AddPage(p)

	exp, err := export.CreateExport(doc, nil, export.BackendVector)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "broken.pdf")
	err = exp.CreatePDF(path)
	require.Error(t, err)
	var pe *export.PageError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 0, pe.Page)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestVerifyMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.pdf")
	doc := document.New()
	doc.AddPage(document.NewPage(100, 100, document.PlainBackground(element.White)))
	exp, err := export.CreateExport(doc, nil, export.BackendVector)
	require.NoError(t, err)
	require.NoError(t, exp.CreatePDF(path))

	assert.ErrorIs(t, export.Verify(path, 2), export.ErrVerify)
	assert.ErrorIs(t, export.Verify(filepath.Join(t.TempDir(), "missing.pdf"), 1), export.ErrVerify)
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		name    string
		want    export.Backend
		wantErr bool
	}{
		{"", export.BackendDefault, false},
		{"default", export.BackendDefault, false},
		{"Vector", export.BackendVector, false},
		{"raster", export.BackendRaster, false},
		{"cairo", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := export.ParseBackend(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "vector", export.BackendVector.String())
	assert.Equal(t, "backend(9)", export.Backend(9).String())
}

func TestParseExportBackground(t *testing.T) {
	got, err := export.ParseExportBackground("unruled")
	require.NoError(t, err)
	assert.Equal(t, export.BackgroundUnruled, got)

	got, err = export.ParseExportBackground("")
	require.NoError(t, err)
	assert.Equal(t, export.BackgroundAll, got)

	_, err = export.ParseExportBackground("some")
	assert.Error(t, err)
}

func TestParsePageRange(t *testing.T) {
	r, err := export.ParsePageRange(" 1-3, 5 ,7-")
	require.NoError(t, err)
	assert.Equal(t, export.PageRange{{First: 0, Last: 2}, {First: 4, Last: 4}, {First: 6, Last: -1}}, r)
	assert.Equal(t, "1-3,5,7-", r.String())

	pages, err := r.Pages(9)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 4, 6, 7, 8}, pages)

	_, err = r.Pages(5)
	assert.ErrorIs(t, err, export.ErrPageRange)

	all, err := export.ParsePageRange("")
	require.NoError(t, err)
	assert.Nil(t, all)
	pages, err = all.Pages(3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, pages)

	for _, bad := range []string{"0", "3-1", "a", "1,,2", "-4"} {
		_, err := export.ParsePageRange(bad)
		assert.ErrorIs(t, err, export.ErrPageRange, bad)
	}
}
