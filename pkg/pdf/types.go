package pdf

import (
	"fmt"
	"strings"
)

// BoundingBox represents a rectangular area with coordinates
type BoundingBox struct {
	X0 float64 // Left
	Y0 float64 // Top
	X1 float64 // Right
	Y1 float64 // Bottom
}

// Width returns the width of the bounding box
func (b BoundingBox) Width() float64 {
	return b.X1 - b.X0
}

// Height returns the height of the bounding box
func (b BoundingBox) Height() float64 {
	return b.Y1 - b.Y0
}

// Contains checks if a point is within the bounding box
func (b BoundingBox) Contains(x, y float64) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Metadata represents PDF document metadata
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// Reader selects the library used to parse a PDF file
type Reader int

const (
	// ReaderPdfcpu parses with pdfcpu and validates the file
	ReaderPdfcpu Reader = iota
	// ReaderLedongthuc parses with ledongthuc/pdf (text extraction)
	ReaderLedongthuc
	// ReaderDslipak parses with dslipak/pdf (text extraction)
	ReaderDslipak
)

func (r Reader) String() string {
	switch r {
	case ReaderPdfcpu:
		return "pdfcpu"
	case ReaderLedongthuc:
		return "ledongthuc"
	case ReaderDslipak:
		return "dslipak"
	default:
		return fmt.Sprintf("reader(%d)", int(r))
	}
}

// ParseReader maps a reader name to a Reader
func ParseReader(name string) (Reader, error) {
	switch strings.ToLower(name) {
	case "", "pdfcpu":
		return ReaderPdfcpu, nil
	case "ledongthuc":
		return ReaderLedongthuc, nil
	case "dslipak":
		return ReaderDslipak, nil
	default:
		return 0, fmt.Errorf("unknown PDF reader %q", name)
	}
}

// mediaBoxSize converts MediaBox coordinates to a page size. A missing or
// malformed box yields US Letter.
func mediaBoxSize(box []float64) (width, height float64) {
	if len(box) != 4 {
		return 612, 792
	}
	width = box[2] - box[0]
	height = box[3] - box[1]
	if width < 0 {
		width = -width
	}
	if height < 0 {
		height = -height
	}
	return width, height
}
