package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{-2.5, "-2.5"},
		{0.123456, "0.1235"},
		{-0.00001, "0"},
		{100, "100"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatNumber(tt.in))
		})
	}
}

func TestWriterPath(t *testing.T) {
	w := NewWriter()
	w.SetStrokeRGB(0, 0, 1)
	w.SetLineWidth(2)
	w.SetLineCap(CapRound)
	w.MoveTo(10, 10)
	w.LineTo(100, 10.5)
	w.Stroke()

	assert.Equal(t, "0 0 1 RG\n2 w\n1 J\n10 10 m\n100 10.5 l\nS\n", w.String())
}

func TestWriterSkipsRedundantState(t *testing.T) {
	w := NewWriter()
	w.SetLineWidth(1) // PDF default
	w.SetFillRGB(0, 0, 0)
	w.SetDash(nil, 0)
	assert.Zero(t, w.Len())

	w.SetLineWidth(3)
	w.SetLineWidth(3)
	assert.Equal(t, "3 w\n", w.String())
}

func TestWriterSaveRestore(t *testing.T) {
	w := NewWriter()
	w.SaveState()
	w.SetLineWidth(4)
	w.ConcatMatrix(geom.Translate(5, 6))
	assert.Equal(t, geom.Translate(5, 6), w.State().CTM)
	w.RestoreState()

	assert.Equal(t, 1.0, w.State().LineWidth)
	assert.True(t, w.State().CTM.IsIdentity())

	// unbalanced restore is dropped
	w.RestoreState()
	assert.Equal(t, "q\n4 w\n1 0 0 1 5 6 cm\nQ\n", w.String())

	w.SaveState()
	w.SaveState()
	w.RestoreAll()
	assert.Zero(t, w.stack.Depth())
}

func TestWriterText(t *testing.T) {
	w := NewWriter()
	w.BeginText()
	w.SetFont("F1", 12)
	w.SetTextMatrix(geom.Translate(10, 20))
	w.ShowText([]byte(`a(b)\`))
	w.EndText()

	assert.Equal(t, "BT\n/F1 12 Tf\n1 0 0 1 10 20 Tm\n(a\\(b\\)\\\\) Tj\nET\n", w.String())
}

func TestWriterDash(t *testing.T) {
	w := NewWriter()
	w.SetDash([]float64{3, 1.5}, 0)
	w.SetExtGState("GS1")
	w.DrawXObject("Im1")
	assert.Equal(t, "[3 1.5] 0 d\n/GS1 gs\n/Im1 Do\n", w.String())
}
