package fonts

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/encoding/charmap"
)

// FirstChar and LastChar delimit the WinAnsi codes described by Widths
const (
	FirstChar = 32
	LastChar  = 255
)

// Descriptor holds the values needed for a PDF FontDescriptor, in glyph
// space units (1/1000 em).
type Descriptor struct {
	Ascent    int
	Descent   int
	CapHeight int
	BBox      [4]int
	Widths    []int // LastChar-FirstChar+1 entries
}

const unitsPerEm = 1000

// PDFDescriptor computes metrics and the WinAnsi width table of the
// embedded font.
func PDFDescriptor() (*Descriptor, error) {
	f, err := Regular()
	if err != nil {
		return nil, err
	}

	var buf sfnt.Buffer
	ppem := fixed.I(unitsPerEm)

	m, err := f.Metrics(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("failed to read font metrics: %w", err)
	}
	bounds, err := f.Bounds(&buf, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("failed to read font bounds: %w", err)
	}

	d := &Descriptor{
		Ascent:    m.Ascent.Round(),
		Descent:   -m.Descent.Round(),
		CapHeight: m.CapHeight.Round(),
		// sfnt bounds are y-down
		BBox: [4]int{
			bounds.Min.X.Round(),
			-bounds.Max.Y.Round(),
			bounds.Max.X.Round(),
			-bounds.Min.Y.Round(),
		},
		Widths: make([]int, 0, LastChar-FirstChar+1),
	}
	if d.CapHeight == 0 {
		d.CapHeight = d.Ascent
	}

	for code := FirstChar; code <= LastChar; code++ {
		r := charmap.Windows1252.DecodeByte(byte(code))
		idx, err := f.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			d.Widths = append(d.Widths, 0)
			continue
		}
		adv, err := f.GlyphAdvance(&buf, idx, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("failed to read advance of %q: %w", r, err)
		}
		d.Widths = append(d.Widths, adv.Round())
	}
	return d, nil
}
