// Package main provides the inkexport CLI: it exports note documents and
// annotated PDFs to PDF.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/pyhub-apps/inkdoc-golang/pkg/document"
	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/export"
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/logging"
	"github.com/pyhub-apps/inkdoc-golang/pkg/pdf"
)

// CLI defines the command-line interface using Kong
var CLI struct {
	LogLevel string `name:"log-level" default:"warn" env:"INKDOC_LOG_LEVEL" help:"Log level: debug, info, warn, error"`

	Export  ExportCmd  `cmd:"" help:"Export a document or an annotated PDF to PDF"`
	Inspect InspectCmd `cmd:"" help:"Print page sizes and content operators of a PDF"`
	Info    InfoCmd    `cmd:"" help:"Print the pages, layers and elements of a document"`
	Sample  SampleCmd  `cmd:"" help:"Write a sample document"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// ExportCmd exports a document
type ExportCmd struct {
	Input       string  `arg:"" type:"existingfile" help:"Document file, or a PDF to use as background"`
	Output      string  `name:"output" short:"o" required:"" type:"path" help:"Output PDF"`
	Backend     string  `name:"backend" short:"b" default:"default" env:"INKDOC_BACKEND" enum:"default,vector,raster" help:"Export backend: default, vector, raster"`
	Background  string  `name:"background" default:"all" env:"INKDOC_BACKGROUND" enum:"none,unruled,all" help:"Background to export: none, unruled, all"`
	Pages       string  `name:"pages" short:"p" help:"Pages to export, e.g. 1-3,5"`
	Progressive bool    `name:"progressive" help:"Emit one page per visible layer"`
	DPI         float64 `name:"dpi" default:"150" env:"INKDOC_DPI" help:"Raster backend resolution"`
	Title       string  `name:"title" help:"Title written to the PDF"`
	Reader      string  `name:"reader" default:"pdfcpu" env:"INKDOC_PDF_READER" enum:"pdfcpu,ledongthuc,dslipak" help:"Reader for background PDFs"`
	Verify      bool    `name:"verify" help:"Reopen the output and check its page count"`
	Quiet       bool    `name:"quiet" short:"q" help:"Do not print progress"`
}

func (c *ExportCmd) Run() error {
	doc, err := loadInput(c.Input, c.Reader)
	if err != nil {
		return err
	}
	backend, err := export.ParseBackend(c.Backend)
	if err != nil {
		return err
	}
	bg, err := export.ParseExportBackground(c.Background)
	if err != nil {
		return err
	}
	pages, err := export.ParsePageRange(c.Pages)
	if err != nil {
		return err
	}

	var listener export.ProgressListener
	if !c.Quiet {
		listener = export.ProgressFunc(func(f float64) {
			fmt.Fprintf(os.Stderr, "\rexporting %3.0f%%", f*100)
		}).Listener()
	}
	exp, err := export.CreateExport(doc, listener, backend,
		export.WithRasterDPI(c.DPI),
		export.WithExportBackground(bg),
		export.WithProgressiveMode(c.Progressive),
		export.WithTitle(c.Title),
	)
	if err != nil {
		return err
	}

	err = exp.CreatePDFRange(c.Output, pages)
	if !c.Quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	n, err := export.OutputPageCount(doc, pages, c.Progressive)
	if err != nil {
		return err
	}
	if c.Verify {
		if err := export.Verify(c.Output, n); err != nil {
			return err
		}
	}
	fmt.Printf("Wrote %s (%d pages, %s backend)\n", c.Output, n, exp.Backend())
	return nil
}

// loadInput opens a serialized document, or imports a PDF as background
func loadInput(path, readerName string) (*document.Document, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		reader, err := pdf.ParseReader(readerName)
		if err != nil {
			return nil, err
		}
		return document.NewFromPDF(path, reader)
	}
	return document.LoadFile(path)
}

// InspectCmd prints a summary of a PDF
type InspectCmd struct {
	Input string `arg:"" type:"existingfile" help:"PDF file"`
}

func (c *InspectCmd) Run() error {
	pages, err := export.Inspect(c.Input)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d pages\n", c.Input, len(pages))
	for _, p := range pages {
		fmt.Printf("  page %d  %.2f x %.2f pt  paths=%d text=%d images=%d\n",
			p.Number, p.Width, p.Height,
			p.Operators["S"]+p.Operators["f"]+p.Operators["B"],
			p.Operators["Tj"]+p.Operators["TJ"],
			p.Operators["Do"])
	}
	return nil
}

// InfoCmd prints the structure of a document
type InfoCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Document file, or a PDF to use as background"`
	Reader string `name:"reader" default:"pdfcpu" enum:"pdfcpu,ledongthuc,dslipak" help:"Reader for background PDFs"`
}

func (c *InfoCmd) Run() error {
	doc, err := loadInput(c.Input, c.Reader)
	if err != nil {
		return err
	}
	fmt.Printf("Title: %s\n", doc.Title)
	if doc.PDFPath != "" {
		fmt.Printf("Background PDF: %s\n", doc.PDFPath)
	}
	for i, p := range doc.Pages() {
		fmt.Printf("Page %d: %.2f x %.2f, %s background\n", i+1, p.Width, p.Height, p.Background.Kind)
		for _, l := range p.Layers() {
			state := "visible"
			if !l.Visible {
				state = "hidden"
			}
			fmt.Printf("  layer %q (%s): %d elements\n", l.Name, state, l.Len())
			for _, e := range l.Elements() {
				r := e.BoundingRect()
				fmt.Printf("    %-8s at (%.1f, %.1f) %.1f x %.1f %s\n", e.Type(), r.X, r.Y, r.Width, r.Height, e.Color())
			}
		}
	}
	return nil
}

// SampleCmd writes a small sample document
type SampleCmd struct {
	Output string `name:"output" short:"o" required:"" type:"path" help:"Document file to write"`
}

func (c *SampleCmd) Run() error {
	doc := document.New()
	doc.Title = "Sample notes"

	p := document.NewPage(document.A4Width, document.A4Height,
		document.Background{Kind: document.BackgroundLined, Color: element.White, PDFPage: document.NoPDFPage})
	heading := element.NewText("Sample notes", document.MarginLeft+8, 40)
	heading.SetFont(element.Font{Name: element.DefaultFont().Name, Size: 24})
	p.Layer(0).Add(heading)

	wave := element.NewStroke(1.5)
	for i := 0; i <= 40; i++ {
		x := document.MarginLeft + 10 + float64(i)*10
		y := 200.0
		if i%2 == 1 {
			y = 180
		}
		wave.AddPoint(element.NewPoint(x, y))
	}
	wave.SetColor(element.RGB(0x1f, 0x4e, 0xb4))
	p.Layer(0).Add(wave)

	marker := element.NewStroke(14)
	marker.AddPoint(element.NewPoint(document.MarginLeft+8, 46))
	marker.AddPoint(element.NewPoint(document.MarginLeft+180, 46))
	marker.SetToolType(element.ToolHighlighter)
	marker.SetColor(element.RGBA(0xff, 0xe0, 0x00, 0x80))
	marker.SetCapStyle(element.CapButt)
	p.AddLayer("highlights").Add(marker)

	box := element.NewStroke(1)
	for _, corner := range geom.NewRectangle(100, 300, 200, 120).Corners() {
		box.AddPoint(element.NewPoint(corner.X, corner.Y))
	}
	box.AddPoint(box.Point(0))
	box.SetDashes([]float64{4, 2})
	p.Layer(0).Add(box)
	doc.AddPage(p)

	if err := doc.SaveFile(c.Output); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", c.Output)
	return nil
}

// VersionCmd prints version information
type VersionCmd struct{}

func (v *VersionCmd) Run() error {
	fmt.Println("inkexport v0.1.0")
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("inkexport"),
		kong.Description("Export handwritten notes and annotated PDFs to PDF"),
		kong.UsageOnError(),
	)

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logging.ParseLevel(CLI.LogLevel)})
	logging.SetLogger(slog.New(handler))

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
