package pdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyhub-apps/inkdoc-golang/pkg/pdf"
	"github.com/pyhub-apps/inkdoc-golang/pkg/pdf/pdftest"
)

func TestOpenWithEveryReader(t *testing.T) {
	path := pdftest.Write(t, "Fixture",
		pdftest.PageSize{Width: 595.28, Height: 841.89},
		pdftest.PageSize{Width: 612, Height: 792})

	for _, reader := range []pdf.Reader{pdf.ReaderPdfcpu, pdf.ReaderLedongthuc, pdf.ReaderDslipak} {
		t.Run(reader.String(), func(t *testing.T) {
			doc, err := pdf.OpenWith(path, reader)
			require.NoError(t, err)
			defer doc.Close()

			require.Equal(t, 2, doc.PageCount())
			require.Len(t, doc.GetPages(), 2)

			p, err := doc.GetPage(1)
			require.NoError(t, err)
			assert.Equal(t, 2, p.GetPageNumber())
			assert.InDelta(t, 612, p.GetWidth(), 0.01)
			assert.InDelta(t, 792, p.GetHeight(), 0.01)
			assert.Equal(t, 0, p.GetRotation())
			assert.InDelta(t, 612, p.GetBBox().Width(), 0.01)

			_, err = doc.GetPage(2)
			assert.Error(t, err)
		})
	}
}

func TestTextExtraction(t *testing.T) {
	path := pdftest.Write(t, "Fixture", pdftest.PageSize{Width: 300, Height: 300})

	doc, err := pdf.OpenWithLedongthuc(path)
	require.NoError(t, err)
	defer doc.Close()

	p, err := doc.GetPage(0)
	require.NoError(t, err)
	tp, ok := p.(pdf.TextPage)
	require.True(t, ok)
	assert.Contains(t, tp.ExtractText(), "Page 1")
	assert.Equal(t, "Fixture", doc.GetMetadata().Title)
}

func TestPdfcpuContent(t *testing.T) {
	path := pdftest.Write(t, "Fixture", pdftest.PageSize{Width: 300, Height: 300})

	doc, err := pdf.Open(path)
	require.NoError(t, err)
	defer doc.Close()

	p, err := doc.GetPage(0)
	require.NoError(t, err)
	cp, ok := p.(pdf.ContentPage)
	require.True(t, ok)
	assert.Contains(t, string(cp.Content()), "(Page 1) Tj")
}

func TestOpenMissingFile(t *testing.T) {
	for _, reader := range []pdf.Reader{pdf.ReaderPdfcpu, pdf.ReaderLedongthuc, pdf.ReaderDslipak} {
		_, err := pdf.OpenWith("does-not-exist.pdf", reader)
		assert.Error(t, err, reader.String())
	}
	_, err := pdf.OpenWith("x.pdf", pdf.Reader(42))
	assert.Error(t, err)
}

func TestParseReader(t *testing.T) {
	r, err := pdf.ParseReader("Ledongthuc")
	require.NoError(t, err)
	assert.Equal(t, pdf.ReaderLedongthuc, r)

	r, err = pdf.ParseReader("")
	require.NoError(t, err)
	assert.Equal(t, pdf.ReaderPdfcpu, r)

	_, err = pdf.ParseReader("poppler")
	assert.Error(t, err)
}
