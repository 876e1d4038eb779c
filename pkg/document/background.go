package document

import (
	"fmt"
	"strings"

	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
)

// BackgroundKind selects how the page background is painted
type BackgroundKind int

const (
	BackgroundPlain BackgroundKind = iota
	BackgroundLined
	BackgroundGraph
	BackgroundDotted
	BackgroundPDF
)

func (k BackgroundKind) String() string {
	switch k {
	case BackgroundPlain:
		return "plain"
	case BackgroundLined:
		return "lined"
	case BackgroundGraph:
		return "graph"
	case BackgroundDotted:
		return "dotted"
	case BackgroundPDF:
		return "pdf"
	default:
		return fmt.Sprintf("background(%d)", int(k))
	}
}

// ParseBackgroundKind maps a name to a BackgroundKind
func ParseBackgroundKind(name string) (BackgroundKind, error) {
	for k := BackgroundPlain; k <= BackgroundPDF; k++ {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown background %q", name)
}

// Ruling geometry in points
const (
	LineSpacing  = 24.0
	GraphSpacing = 14.17
	DotSpacing   = 14.17
	MarginLeft   = 72.0
	HeaderHeight = 80.0
	RulingWidth  = 0.5
	DotRadius    = 0.75
)

// Ruling colors
const (
	RulingColor element.Color = 0xff40a0ff
	MarginColor element.Color = 0xffff0080
)

// NoPDFPage marks a background that does not come from a PDF
const NoPDFPage = -1

// Paper sizes in points
const (
	A4Width      = 595.28
	A4Height     = 841.89
	LetterWidth  = 612.0
	LetterHeight = 792.0
)

// Background describes what is painted below the layers
type Background struct {
	Kind  BackgroundKind
	Color element.Color

	// PDFPage is the 0-based page of the document's background PDF, or
	// NoPDFPage
	PDFPage int
}

// PlainBackground returns a plain paper background
func PlainBackground(c element.Color) Background {
	return Background{Kind: BackgroundPlain, Color: c, PDFPage: NoPDFPage}
}

// IsRuled reports whether the background has ruling on top of the paper
// color
func (b Background) IsRuled() bool {
	switch b.Kind {
	case BackgroundLined, BackgroundGraph, BackgroundDotted:
		return true
	default:
		return false
	}
}
