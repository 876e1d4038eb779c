package document

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/pdf"
	"github.com/pyhub-apps/inkdoc-golang/pkg/pdf/pdftest"
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

func newStroke(x, y float64) *element.Stroke {
	s := element.NewStroke(1)
	s.AddPoint(element.NewPoint(x, y))
	s.AddPoint(element.NewPoint(x+10, y+10))
	return s
}

func sampleDocument() *Document {
	doc := New()
	doc.Title = "Notes"

	p1 := NewPage(A4Width, A4Height, Background{Kind: BackgroundLined, Color: element.White, PDFPage: NoPDFPage})
	p1.Layer(0).Add(newStroke(10, 10))
	p1.Layer(0).Add(element.NewText("hello", 50, 60))
	top := p1.AddLayer("top")
	top.Add(newStroke(100, 100))
	doc.AddPage(p1)

	p2 := NewPage(LetterWidth, LetterHeight, PlainBackground(element.RGB(250, 250, 210)))
	hidden := p2.AddLayer("hidden")
	hidden.Visible = false
	hidden.Add(newStroke(0, 0))
	doc.AddPage(p2)
	return doc
}

func TestLayerOwnership(t *testing.T) {
	l := NewLayer("ink")
	a, b, c := newStroke(0, 0), newStroke(5, 5), newStroke(9, 9)
	l.Add(a)
	l.Add(c)
	l.Insert(b, 1)
	assert.Equal(t, []element.Element{a, b, c}, l.Elements())
	assert.Equal(t, 1, l.IndexOf(b))

	got, ok := l.Remove(b)
	require.True(t, ok)
	assert.Same(t, b, got)
	assert.Equal(t, -1, l.IndexOf(b))
	assert.Equal(t, 2, l.Len())

	_, ok = l.Remove(b)
	assert.False(t, ok)

	// views do not alias the layer storage
	view := l.Elements()
	view[0] = nil
	assert.Same(t, a, l.Elements()[0])

	l.Insert(b, 99)
	assert.Equal(t, 2, l.IndexOf(b))
	l.Insert(newStroke(1, 1), -5)
	assert.Equal(t, 3, l.IndexOf(b))

	l.Clear()
	assert.Zero(t, l.Len())
}

func TestPageElementsSkipHiddenLayers(t *testing.T) {
	doc := sampleDocument()
	p1, err := doc.Page(0)
	require.NoError(t, err)
	assert.Len(t, p1.Elements(), 3)
	assert.Len(t, p1.VisibleLayers(), 2)

	p2, err := doc.Page(1)
	require.NoError(t, err)
	assert.Empty(t, p2.Elements())
	assert.Len(t, p2.Layers(), 2)

	_, err = doc.Page(2)
	assert.Error(t, err)
}

func TestSaveLoad(t *testing.T) {
	doc := sampleDocument()
	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))

	got, err := Load(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Notes", got.Title)
	require.Equal(t, 2, got.PageCount())

	for i, want := range doc.Pages() {
		p := got.Pages()[i]
		assert.Equal(t, want.Width, p.Width)
		assert.Equal(t, want.Height, p.Height)
		assert.Equal(t, want.Background, p.Background)
		require.Len(t, p.Layers(), len(want.Layers()))
		for j, wl := range want.Layers() {
			gl := p.Layer(j)
			assert.Equal(t, wl.Name, gl.Name)
			assert.Equal(t, wl.Visible, gl.Visible)
			require.Equal(t, wl.Len(), gl.Len())
			for k, we := range wl.Elements() {
				ge := gl.Elements()[k]
				assert.Equal(t, we.Type(), ge.Type())
				assert.Equal(t, we.BoundingRect(), ge.BoundingRect())
			}
		}
	}

	var again bytes.Buffer
	require.NoError(t, got.Save(&again))
	assert.Equal(t, buf.Bytes(), again.Bytes())
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.xoj")
	require.NoError(t, sampleDocument().SaveFile(path))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, got.PageCount())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.xoj"))
	assert.Error(t, err)
}

func TestLoadRejectsBadPage(t *testing.T) {
	doc := New()
	doc.AddPage(NewPage(0, 100, PlainBackground(element.White)))
	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))

	_, err := Load(buf.Bytes())
	assert.ErrorIs(t, err, serial.ErrInvalidValue)
}

func TestLoadTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleDocument().Save(&buf))
	data := buf.Bytes()
	for _, cut := range []int{5, len(data) / 3, len(data) / 2, len(data) - 1} {
		_, err := Load(data[:cut])
		assert.Error(t, err, "cut at %d", cut)
	}
}

func TestNewFromPDF(t *testing.T) {
	path := pdftest.Write(t, "Handout",
		pdftest.PageSize{Width: 300, Height: 400},
		pdftest.PageSize{Width: 500, Height: 200})

	doc, err := NewFromPDF(path, pdf.ReaderPdfcpu)
	require.NoError(t, err)
	assert.Equal(t, path, doc.PDFPath)
	require.Equal(t, 2, doc.PageCount())

	p := doc.Pages()[1]
	assert.InDelta(t, 500, p.Width, 0.01)
	assert.InDelta(t, 200, p.Height, 0.01)
	assert.Equal(t, BackgroundPDF, p.Background.Kind)
	assert.Equal(t, 1, p.Background.PDFPage)
	assert.Len(t, p.Layers(), 1)

	_, err = NewFromPDF(filepath.Join(t.TempDir(), "missing.pdf"), pdf.ReaderLedongthuc)
	assert.Error(t, err)
}

func TestExportLock(t *testing.T) {
	doc := New()
	require.True(t, doc.TryLockExport())
	assert.False(t, doc.TryLockExport())
	doc.UnlockExport()
	assert.True(t, doc.TryLockExport())
	doc.UnlockExport()
}

func TestBackgroundKind(t *testing.T) {
	k, err := ParseBackgroundKind("Graph")
	require.NoError(t, err)
	assert.Equal(t, BackgroundGraph, k)
	assert.True(t, Background{Kind: k}.IsRuled())
	assert.False(t, PlainBackground(element.White).IsRuled())

	_, err = ParseBackgroundKind("isometric")
	assert.Error(t, err)
}

func TestSelectionAcrossLayer(t *testing.T) {
	l := NewLayer("ink")
	l.Add(newStroke(0, 0))
	l.Add(newStroke(50, 50))
	sel := element.RectContainer(geom.NewRectangle(-1, -1, 20, 20))

	var picked []element.Element
	for _, e := range l.Elements() {
		if e.IsInSelection(sel) {
			if got, ok := l.Remove(e); ok {
				picked = append(picked, got)
			}
		}
	}
	assert.Len(t, picked, 1)
	assert.Equal(t, 1, l.Len())
}
