// Package content builds PDF page content streams.
//
// The Writer emits operators in PDF syntax and tracks the graphics state
// so that redundant state changes are dropped:
//
//	w := content.NewWriter()
//	w.SetStrokeRGB(0, 0, 1)
//	w.SetLineWidth(2)
//	w.MoveTo(10, 10)
//	w.LineTo(100, 10)
//	w.Stroke()
//	stream := w.Bytes()
package content

import (
	"bytes"
	"slices"
	"strconv"
	"strings"

	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
)

// Line cap styles (PDF 1.7, table 54)
const (
	CapButt   = 0
	CapRound  = 1
	CapSquare = 2
)

// Line join styles
const (
	JoinMiter = 0
	JoinRound = 1
	JoinBevel = 2
)

// Writer accumulates a content stream
type Writer struct {
	buf   bytes.Buffer
	stack *StateStack
}

// NewWriter returns an empty content stream writer
func NewWriter() *Writer {
	return &Writer{stack: NewStateStack()}
}

// Bytes returns the accumulated content stream
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

// String returns the content stream as text
func (w *Writer) String() string {
	return w.buf.String()
}

// Len returns the length of the accumulated content
func (w *Writer) Len() int {
	return w.buf.Len()
}

// State returns the graphics state in effect
func (w *Writer) State() *GraphicsState {
	return w.stack.Current()
}

// writeOp writes operands followed by the operator
func (w *Writer) writeOp(operator string, operands ...float64) {
	for _, v := range operands {
		w.buf.WriteString(FormatNumber(v))
		w.buf.WriteByte(' ')
	}
	w.buf.WriteString(operator)
	w.buf.WriteByte('\n')
}

// FormatNumber formats v the way PDF numbers are written: fixed point with
// at most four decimals and no trailing zeros
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', 4, 64)
	s = trimZeros(s)
	if s == "-0" {
		return "0"
	}
	return s
}

func trimZeros(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}
	for s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	if s[len(s)-1] == '.' {
		s = s[:len(s)-1]
	}
	return s
}

// SaveState writes q and pushes the tracked state
func (w *Writer) SaveState() {
	w.stack.Save()
	w.writeOp("q")
}

// RestoreState writes Q and pops the tracked state. Unbalanced restores
// are dropped.
func (w *Writer) RestoreState() {
	if w.stack.Restore() {
		w.writeOp("Q")
	}
}

// RestoreAll closes every open SaveState
func (w *Writer) RestoreAll() {
	for w.stack.Depth() > 0 {
		w.RestoreState()
	}
}

// ConcatMatrix writes cm and updates the tracked CTM
func (w *Writer) ConcatMatrix(m geom.Matrix) {
	if m.IsIdentity() {
		return
	}
	gs := w.State()
	gs.CTM = m.Multiply(gs.CTM)
	w.writeOp("cm", m.A, m.B, m.C, m.D, m.E, m.F)
}

// SetLineWidth writes w
func (w *Writer) SetLineWidth(width float64) {
	gs := w.State()
	if gs.LineWidth == width {
		return
	}
	gs.LineWidth = width
	w.writeOp("w", width)
}

// SetLineCap writes J
func (w *Writer) SetLineCap(style int) {
	gs := w.State()
	if gs.LineCap == style {
		return
	}
	gs.LineCap = style
	w.writeOp("J", float64(style))
}

// SetLineJoin writes j
func (w *Writer) SetLineJoin(style int) {
	gs := w.State()
	if gs.LineJoin == style {
		return
	}
	gs.LineJoin = style
	w.writeOp("j", float64(style))
}

// SetDash writes d. An empty pattern selects a solid line.
func (w *Writer) SetDash(pattern []float64, phase float64) {
	gs := w.State()
	if slices.Equal(gs.DashPattern, pattern) && gs.DashPhase == phase {
		return
	}
	gs.DashPattern = slices.Clone(pattern)
	gs.DashPhase = phase

	w.buf.WriteByte('[')
	for i, v := range pattern {
		if i > 0 {
			w.buf.WriteByte(' ')
		}
		w.buf.WriteString(FormatNumber(v))
	}
	w.buf.WriteString("] ")
	w.writeOp("d", phase)
}

// SetStrokeRGB writes RG with components in 0..1
func (w *Writer) SetStrokeRGB(r, g, b float64) {
	gs := w.State()
	c := [3]float64{r, g, b}
	if gs.StrokeColor == c {
		return
	}
	gs.StrokeColor = c
	w.writeOp("RG", r, g, b)
}

// SetFillRGB writes rg with components in 0..1
func (w *Writer) SetFillRGB(r, g, b float64) {
	gs := w.State()
	c := [3]float64{r, g, b}
	if gs.FillColor == c {
		return
	}
	gs.FillColor = c
	w.writeOp("rg", r, g, b)
}

// SetExtGState selects a named graphics state resource (gs)
func (w *Writer) SetExtGState(name string) {
	gs := w.State()
	if gs.ExtGState == name {
		return
	}
	gs.ExtGState = name
	w.buf.WriteString("/" + name + " ")
	w.writeOp("gs")
}

// MoveTo writes m
func (w *Writer) MoveTo(x, y float64) {
	w.writeOp("m", x, y)
}

// LineTo writes l
func (w *Writer) LineTo(x, y float64) {
	w.writeOp("l", x, y)
}

// CurveTo writes c
func (w *Writer) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	w.writeOp("c", x1, y1, x2, y2, x3, y3)
}

// Rectangle writes re
func (w *Writer) Rectangle(x, y, width, height float64) {
	w.writeOp("re", x, y, width, height)
}

// ClosePath writes h
func (w *Writer) ClosePath() {
	w.writeOp("h")
}

// Stroke writes S
func (w *Writer) Stroke() {
	w.writeOp("S")
}

// Fill writes f (nonzero winding)
func (w *Writer) Fill() {
	w.writeOp("f")
}

// FillAndStroke writes B
func (w *Writer) FillAndStroke() {
	w.writeOp("B")
}

// BeginText writes BT
func (w *Writer) BeginText() {
	w.writeOp("BT")
}

// EndText writes ET
func (w *Writer) EndText() {
	w.writeOp("ET")
}

// SetFont writes Tf. The font is a resource name without the slash.
func (w *Writer) SetFont(name string, size float64) {
	gs := w.State()
	if gs.FontName == name && gs.FontSize == size {
		return
	}
	gs.FontName, gs.FontSize = name, size
	w.buf.WriteString("/" + name + " ")
	w.writeOp("Tf", size)
}

// SetTextMatrix writes Tm
func (w *Writer) SetTextMatrix(m geom.Matrix) {
	w.writeOp("Tm", m.A, m.B, m.C, m.D, m.E, m.F)
}

// ShowText writes encoded bytes as a literal string followed by Tj
func (w *Writer) ShowText(encoded []byte) {
	w.buf.WriteString(EscapeString(encoded))
	w.buf.WriteByte(' ')
	w.writeOp("Tj")
}

// DrawXObject paints a named XObject resource (Do)
func (w *Writer) DrawXObject(name string) {
	w.buf.WriteString("/" + name + " ")
	w.writeOp("Do")
}

// EscapeString returns b as a PDF literal string including the parentheses
func EscapeString(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) + 2)
	sb.WriteByte('(')
	for _, c := range b {
		switch c {
		case '(', ')', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte(')')
	return sb.String()
}
