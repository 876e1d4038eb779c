package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyhub-apps/inkdoc-golang/pkg/content"
	"github.com/pyhub-apps/inkdoc-golang/pkg/document"
	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
)

func TestVectorStroke(t *testing.T) {
	s := element.NewStroke(3)
	s.AddPoint(element.NewPoint(0, 0))
	s.AddPoint(element.NewPoint(10, 5))
	s.SetColor(element.RGBA(255, 0, 0, 128))
	s.SetToolType(element.ToolHighlighter)
	s.SetDashes([]float64{2, 1})
	s.SetCapStyle(element.CapButt)

	cw := content.NewWriter()
	res := &resources{}
	drawVectorStroke(cw, res, s)

	want := "q\n/GS1 gs\n1 0 0 RG\n1 j\n[2 1] 0 d\n3 w\n0 0 m\n10 5 l\nS\nQ\n"
	assert.Equal(t, want, cw.String())
	assert.Contains(t, res.String(), "/GS1 << /Type /ExtGState /CA 0.502 /ca 0.502 /BM /Multiply >>")
}

func TestVectorPressureStroke(t *testing.T) {
	s := element.NewStroke(1)
	s.AddPoint(element.NewPoint(0, 0))
	s.AddPoint(element.NewPoint(1, 0))
	s.AddPoint(element.NewPoint(2, 0))
	s.SetPointPressure([]float64{2, 4, 6})

	cw := content.NewWriter()
	res := &resources{}
	drawVectorStroke(cw, res, s)

	out := cw.String()
	assert.Contains(t, out, "2 w\n0 0 m\n1 0 l\nS\n")
	assert.Contains(t, out, "4 w\n1 0 m\n2 0 l\nS\n")
	assert.NotContains(t, out, "gs")
	assert.Empty(t, res.gstates)
}

func TestVectorPressureStrokeKeepsDashPhase(t *testing.T) {
	s := element.NewStroke(1)
	s.AddPoint(element.NewPoint(0, 0))
	s.AddPoint(element.NewPoint(4, 0))
	s.AddPoint(element.NewPoint(8, 0))
	s.AddPoint(element.NewPoint(9, 0))
	s.SetPointPressure([]float64{2, 2, 2, 2})
	s.SetDashes([]float64{2, 1})

	cw := content.NewWriter()
	drawVectorStroke(cw, &resources{}, s)

	out := cw.String()
	assert.Contains(t, out, "[2 1] 0 d\n2 w\n0 0 m\n4 0 l\nS\n")
	assert.Contains(t, out, "[2 1] 1 d\n4 0 m\n8 0 l\nS\n")
	assert.Contains(t, out, "[2 1] 2 d\n8 0 m\n9 0 l\nS\n")
}

func TestDashPhase(t *testing.T) {
	assert.Equal(t, 0.0, dashPhase(nil, 12))
	assert.Equal(t, 0.0, dashPhase([]float64{0, 0}, 12))
	assert.InDelta(t, 1.5, dashPhase([]float64{2, 1}, 4.5), 1e-9)
}

func TestVectorRuling(t *testing.T) {
	p := document.NewPage(100, 200, document.Background{Kind: document.BackgroundLined, Color: element.White, PDFPage: document.NoPDFPage})
	r := pageRuling(p, BackgroundAll)
	// lines from the header down plus the margin
	assert.Len(t, r.lines, 6)
	assert.Equal(t, document.MarginColor, r.lines[len(r.lines)-1].color)

	cw := content.NewWriter()
	drawVectorRuling(cw, r, p.Width, p.Height)
	assert.True(t, strings.HasPrefix(cw.String(), "1 1 1 rg\n0 0 100 200 re\nf\n"))

	assert.Empty(t, pageRuling(p, BackgroundUnruled).lines)
	assert.False(t, pageRuling(p, BackgroundNone).fill)
}
