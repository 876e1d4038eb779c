// Package fonts wraps the embedded Go Regular TrueType font.
//
// Text elements are measured with it and the vector export backend embeds
// it, so the extent computed for a text element matches what ends up on
// the PDF page.
package fonts

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"
)

// EmbeddedName is the PostScript name under which the font is embedded
const EmbeddedName = "GoRegular"

// LineSpacing is the line height as a multiple of the font size
const LineSpacing = 1.2

var (
	parseOnce sync.Once
	parsed    *opentype.Font
	parseErr  error
)

// Regular returns the parsed Go Regular font
func Regular() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
		if parseErr != nil {
			parseErr = fmt.Errorf("failed to parse embedded font: %w", parseErr)
		}
	})
	return parsed, parseErr
}

// TTF returns the raw font program
func TTF() []byte {
	return goregular.TTF
}

// NewFace returns a face at the given size in points (72 DPI). Faces are
// not safe for concurrent use; create one per goroutine.
func NewFace(size float64) (font.Face, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Extent is the measured size of a block of text
type Extent struct {
	Width      float64
	Height     float64
	Ascent     float64
	LineHeight float64
	Lines      int
}

// Measure returns the extent of text set at size points. Lines are
// separated by '\n'.
func Measure(text string, size float64) (Extent, error) {
	if size <= 0 || text == "" {
		return Extent{}, nil
	}
	face, err := NewFace(size)
	if err != nil {
		return Extent{}, err
	}
	defer face.Close()

	lines := strings.Split(text, "\n")
	ext := Extent{
		Ascent:     toFloat(face.Metrics().Ascent),
		LineHeight: size * LineSpacing,
		Lines:      len(lines),
	}
	for _, line := range lines {
		w := toFloat(font.MeasureString(face, line))
		if w > ext.Width {
			ext.Width = w
		}
	}
	ext.Height = ext.LineHeight * float64(len(lines))
	return ext, nil
}

// EncodeWinAnsi converts s to WinAnsiEncoding bytes. Runes outside the code
// page become '?'.
func EncodeWinAnsi(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return out
}

func toFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
