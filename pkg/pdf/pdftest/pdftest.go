// Package pdftest writes small PDF fixtures for tests.
package pdftest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pyhub-apps/inkdoc-golang/pkg/content"
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
)

// PageSize is a page size in points
type PageSize struct {
	Width, Height float64
}

// Write creates a PDF with one page per size. Every page shows "Page N" in
// Helvetica. The document title is set to title.
func Write(t testing.TB, title string, sizes ...PageSize) string {
	t.Helper()

	f := content.NewFile()
	pagesRef := f.Reserve()
	font := f.Add("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	kids := make([]string, 0, len(sizes))
	for i, size := range sizes {
		w := content.NewWriter()
		w.BeginText()
		w.SetFont("F1", 12)
		w.SetTextMatrix(geom.Translate(36, size.Height-48))
		w.ShowText([]byte(fmt.Sprintf("Page %d", i+1)))
		w.EndText()
		stream := f.AddStream("", w.Bytes())

		page := f.Add(fmt.Sprintf(
			"<< /Type /Page /Parent %s /MediaBox [0 0 %s %s] /Contents %s /Resources << /Font << /F1 %s >> >> >>",
			content.Ref(pagesRef),
			content.FormatNumber(size.Width), content.FormatNumber(size.Height),
			content.Ref(stream), content.Ref(font)))
		kids = append(kids, content.Ref(page))
	}
	f.Set(pagesRef, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids)))
	f.SetRoot(f.Add("<< /Type /Catalog /Pages " + content.Ref(pagesRef) + " >>"))
	f.SetInfo(f.Add("<< /Title " + content.EscapeString([]byte(title)) + " >>"))

	path := filepath.Join(t.TempDir(), "fixture.pdf")
	out, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture: %v", err)
	}
	defer out.Close()
	if _, err := f.WriteTo(out); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}
