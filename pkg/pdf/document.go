package pdf

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pyhub-apps/inkdoc-golang/pkg/logging"
)

// PDFDocument implements the Document interface using pdfcpu
type PDFDocument struct {
	ctx      *model.Context
	filepath string
	pages    []Page
	metadata Metadata
}

// Open opens a PDF file with pdfcpu
func Open(filepath string) (Document, error) {
	return OpenWithPassword(filepath, "")
}

// OpenWith opens a PDF file with the requested reader. There is no
// fallback: if the reader fails, the error is returned.
func OpenWith(filepath string, reader Reader) (Document, error) {
	logging.Logger().Debug("opening PDF", "path", filepath, "reader", reader)
	switch reader {
	case ReaderPdfcpu:
		return Open(filepath)
	case ReaderLedongthuc:
		return OpenWithLedongthuc(filepath)
	case ReaderDslipak:
		return OpenWithDslipak(filepath)
	default:
		return nil, fmt.Errorf("unknown PDF reader %v", reader)
	}
}

// OpenWithPassword opens a password-protected PDF file
func OpenWithPassword(filepath string, password string) (Document, error) {
	f, err := os.Open(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	if password != "" {
		conf.UserPW = password
		conf.OwnerPW = password
	}

	ctx, err := api.ReadContext(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF context: %w", err)
	}

	if err := api.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("invalid PDF: %w", err)
	}

	doc := &PDFDocument{
		ctx:      ctx,
		filepath: filepath,
	}

	doc.extractMetadata()

	if err := doc.initializePages(); err != nil {
		return nil, fmt.Errorf("failed to initialize pages: %w", err)
	}

	return doc, nil
}

// extractMetadata copies the info dictionary fields parsed during validation
func (d *PDFDocument) extractMetadata() {
	d.metadata = Metadata{
		Title:    d.ctx.Title,
		Author:   d.ctx.Author,
		Subject:  d.ctx.Subject,
		Keywords: d.ctx.Keywords,
		Creator:  d.ctx.Creator,
		Producer: d.ctx.Producer,
	}
}

// initializePages initializes all pages in the document
func (d *PDFDocument) initializePages() error {
	pageCount := d.ctx.PageCount
	d.pages = make([]Page, pageCount)

	for i := 1; i <= pageCount; i++ {
		page, err := NewPDFCPUPage(d.ctx, i)
		if err != nil {
			return fmt.Errorf("failed to create page %d: %w", i, err)
		}
		d.pages[i-1] = page
	}

	return nil
}

// GetMetadata returns the PDF metadata
func (d *PDFDocument) GetMetadata() Metadata {
	return d.metadata
}

// GetPages returns all pages in the document
func (d *PDFDocument) GetPages() []Page {
	return d.pages
}

// GetPage returns a specific page by index (0-based)
func (d *PDFDocument) GetPage(index int) (Page, error) {
	if index < 0 || index >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0, %d)", index, len(d.pages))
	}
	return d.pages[index], nil
}

// PageCount returns the total number of pages
func (d *PDFDocument) PageCount() int {
	return len(d.pages)
}

// Close releases resources associated with the document
func (d *PDFDocument) Close() error {
	d.ctx = nil
	d.pages = nil
	return nil
}
