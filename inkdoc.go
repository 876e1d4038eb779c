// Package inkdoc models the page content of a freehand note editor and
// exports it to PDF.
//
// The root package re-exports the types most callers need. The building
// blocks live under pkg/: element (strokes, images, text), document
// (pages and layers), serial (the binary stream format) and export (PDF
// backends).
package inkdoc

import (
	"fmt"

	"github.com/pyhub-apps/inkdoc-golang/pkg/document"
	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/export"
	"github.com/pyhub-apps/inkdoc-golang/pkg/pdf"
)

// Re-export types for the public API
type (
	Document         = document.Document
	Page             = document.Page
	Layer            = document.Layer
	Background       = document.Background
	Element          = element.Element
	Stroke           = element.Stroke
	Image            = element.Image
	TexImage         = element.TexImage
	Text             = element.Text
	Color            = element.Color
	Exporter         = export.Exporter
	Backend          = export.Backend
	ExportBackground = export.ExportBackground
	ProgressListener = export.ProgressListener
	PageRange        = export.PageRange
)

// Re-export constructors and options
var (
	NewDocument  = document.New
	NewPage      = document.NewPage
	NewStroke    = element.NewStroke
	NewImage     = element.NewImage
	NewTexImage  = element.NewTexImage
	NewText      = element.NewText
	LoadDocument = document.LoadFile
	CreateExport = export.CreateExport

	WithRasterDPI        = export.WithRasterDPI
	WithExportBackground = export.WithExportBackground
	WithProgressiveMode  = export.WithProgressiveMode
	WithTitle            = export.WithTitle
)

// Export backends
const (
	BackendDefault = export.BackendDefault
	BackendVector  = export.BackendVector
	BackendRaster  = export.BackendRaster
)

// OpenPDF creates a document with one page per page of the PDF at path,
// ready to be annotated
func OpenPDF(path string) (*Document, error) {
	return document.NewFromPDF(path, pdf.ReaderPdfcpu)
}

// ExportPDF writes doc to path with the given backend
func ExportPDF(doc *Document, path string, backend Backend, opts ...export.Option) error {
	exp, err := export.CreateExport(doc, nil, backend, opts...)
	if err != nil {
		return err
	}
	if err := exp.CreatePDF(path); err != nil {
		return fmt.Errorf("failed to export %s: %w", path, err)
	}
	return nil
}
