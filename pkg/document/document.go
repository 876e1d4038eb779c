// Package document holds the page/layer container for elements.
//
// A Document is a list of pages; each page has a background and a stack of
// layers; each layer owns its elements. Documents can start from a PDF
// file, in which case every page shows one page of that file as its
// background.
package document

import (
	"fmt"
	"sync"

	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/logging"
	"github.com/pyhub-apps/inkdoc-golang/pkg/pdf"
)

// Page is one sheet of a document
type Page struct {
	Width      float64
	Height     float64
	Background Background

	layers []*Layer
}

// NewPage returns a page with one empty layer
func NewPage(width, height float64, bg Background) *Page {
	return &Page{
		Width:      width,
		Height:     height,
		Background: bg,
		layers:     []*Layer{NewLayer("Layer 1")},
	}
}

// Layers returns the layers bottom to top
func (p *Page) Layers() []*Layer {
	return p.layers
}

// Layer returns the i-th layer
func (p *Page) Layer(i int) *Layer {
	return p.layers[i]
}

// AddLayer appends a new empty layer on top and returns it
func (p *Page) AddLayer(name string) *Layer {
	l := NewLayer(name)
	p.layers = append(p.layers, l)
	return l
}

// VisibleLayers returns the visible layers bottom to top
func (p *Page) VisibleLayers() []*Layer {
	var out []*Layer
	for _, l := range p.layers {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// Elements returns the elements of all visible layers in paint order
func (p *Page) Elements() []element.Element {
	var out []element.Element
	for _, l := range p.VisibleLayers() {
		out = append(out, l.elements...)
	}
	return out
}

// Document is an ordered list of pages
type Document struct {
	Title string

	// PDFPath is the file backing BackgroundPDF pages, empty when none
	PDFPath string

	pages []*Page

	exportMu sync.Mutex
}

// New returns an empty document
func New() *Document {
	return &Document{}
}

// NewFromPDF returns a document with one page per page of the PDF file at
// path, each sized from the source MediaBox and using it as background
func NewFromPDF(path string, reader pdf.Reader) (*Document, error) {
	src, err := pdf.OpenWith(path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open background PDF: %w", err)
	}
	defer src.Close()

	doc := &Document{
		Title:   src.GetMetadata().Title,
		PDFPath: path,
	}
	for i, sp := range src.GetPages() {
		bg := Background{Kind: BackgroundPDF, Color: element.White, PDFPage: i}
		doc.AddPage(NewPage(sp.GetWidth(), sp.GetHeight(), bg))
	}
	logging.Logger().Info("imported background PDF",
		"path", path,
		"reader", reader,
		"pages", doc.PageCount())
	return doc, nil
}

// AddPage appends p
func (d *Document) AddPage(p *Page) {
	d.pages = append(d.pages, p)
}

// Pages returns the pages in order
func (d *Document) Pages() []*Page {
	return d.pages
}

// Page returns the i-th page (0-based)
func (d *Document) Page(i int) (*Page, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", i, len(d.pages))
	}
	return d.pages[i], nil
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.pages)
}

// TryLockExport claims the document for an export. It returns false while
// another export runs.
func (d *Document) TryLockExport() bool {
	return d.exportMu.TryLock()
}

// UnlockExport releases a claim taken by TryLockExport
func (d *Document) UnlockExport() {
	d.exportMu.Unlock()
}
