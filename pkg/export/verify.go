package export

import (
	"fmt"

	"github.com/pyhub-apps/inkdoc-golang/pkg/content"
	"github.com/pyhub-apps/inkdoc-golang/pkg/pdf"
)

// Verify reopens a written PDF with pdfcpu and checks its page count
func Verify(path string, expectedPages int) error {
	return VerifyWith(path, expectedPages, pdf.ReaderPdfcpu)
}

// VerifyWith is Verify using the given reader
func VerifyWith(path string, expectedPages int, reader pdf.Reader) error {
	doc, err := pdf.OpenWith(path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrVerify, err)
	}
	defer doc.Close()

	if n := doc.PageCount(); n != expectedPages {
		return fmt.Errorf("%w: %s has %d pages, want %d", ErrVerify, path, n, expectedPages)
	}
	return nil
}

// PageSummary describes one page of a written PDF
type PageSummary struct {
	Number    int
	Width     float64
	Height    float64
	Operators map[string]int
}

// Inspect reopens a written PDF with pdfcpu and counts the content stream
// operators of every page
func Inspect(path string) ([]PageSummary, error) {
	doc, err := pdf.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	pages := doc.GetPages()
	out := make([]PageSummary, 0, len(pages))
	for _, p := range pages {
		s := PageSummary{
			Number: p.GetPageNumber(),
			Width:  p.GetWidth(),
			Height: p.GetHeight(),
		}
		if cp, ok := p.(pdf.ContentPage); ok {
			ops, err := content.ParseBytes(cp.Content())
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", s.Number, err)
			}
			s.Operators = content.CountOperators(ops)
		}
		out = append(out, s)
	}
	return out, nil
}
