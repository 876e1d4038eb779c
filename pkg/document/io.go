package document

import (
	"fmt"
	"io"
	"os"

	"github.com/pyhub-apps/inkdoc-golang/pkg/element"
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

// Serialize writes the whole document as a "Document" object
func (d *Document) Serialize(out *serial.ObjectOutputStream) {
	out.WriteObject("Document")
	out.WriteString(d.Title)
	out.WriteString(d.PDFPath)
	out.WriteSizeT(uint64(len(d.pages)))
	for _, p := range d.pages {
		p.serialize(out)
	}
	out.EndObject()
}

func (p *Page) serialize(out *serial.ObjectOutputStream) {
	out.WriteObject("Page")
	out.WriteDouble(p.Width)
	out.WriteDouble(p.Height)

	out.WriteObject("Background")
	out.WriteInt(int32(p.Background.Kind))
	out.WriteUInt(uint32(p.Background.Color))
	out.WriteInt(int32(p.Background.PDFPage))
	out.EndObject()

	out.WriteSizeT(uint64(len(p.layers)))
	for _, l := range p.layers {
		out.WriteObject("Layer")
		out.WriteString(l.Name)
		visible := int32(0)
		if l.Visible {
			visible = 1
		}
		out.WriteInt(visible)
		element.WriteElements(out, l.elements)
		out.EndObject()
	}
	out.EndObject()
}

// ReadDocument decodes a "Document" object
func ReadDocument(in *serial.ObjectInputStream) (*Document, error) {
	if err := in.ReadObject("Document"); err != nil {
		return nil, err
	}
	title, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	pdfPath, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	n, err := readCount(in)
	if err != nil {
		return nil, err
	}
	doc := &Document{Title: title, PDFPath: pdfPath}
	for i := range n {
		p, err := readPage(in)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		doc.AddPage(p)
	}
	if err := in.EndObject(); err != nil {
		return nil, err
	}
	return doc, nil
}

func readCount(in *serial.ObjectInputStream) (int, error) {
	n, err := in.ReadSizeT()
	if err != nil {
		return 0, err
	}
	if n > uint64(in.Remaining()) {
		return 0, serial.InvalidValuef("count %d exceeds stream size", n)
	}
	return int(n), nil
}

func readPage(in *serial.ObjectInputStream) (*Page, error) {
	if err := in.ReadObject("Page"); err != nil {
		return nil, err
	}
	width, err := in.ReadDouble()
	if err != nil {
		return nil, err
	}
	height, err := in.ReadDouble()
	if err != nil {
		return nil, err
	}
	if !geom.IsFinite(width) || !geom.IsFinite(height) || width <= 0 || height <= 0 {
		return nil, serial.InvalidValuef("page size %gx%g", width, height)
	}

	bg, err := readBackground(in)
	if err != nil {
		return nil, err
	}

	n, err := readCount(in)
	if err != nil {
		return nil, err
	}
	p := &Page{Width: width, Height: height, Background: bg}
	for range n {
		l, err := readLayer(in)
		if err != nil {
			return nil, err
		}
		p.layers = append(p.layers, l)
	}
	if err := in.EndObject(); err != nil {
		return nil, err
	}
	return p, nil
}

func readBackground(in *serial.ObjectInputStream) (Background, error) {
	var bg Background
	if err := in.ReadObject("Background"); err != nil {
		return bg, err
	}
	kind, err := in.ReadInt()
	if err != nil {
		return bg, err
	}
	c, err := in.ReadUInt()
	if err != nil {
		return bg, err
	}
	pdfPage, err := in.ReadInt()
	if err != nil {
		return bg, err
	}
	if err := in.EndObject(); err != nil {
		return bg, err
	}
	if kind < int32(BackgroundPlain) || kind > int32(BackgroundPDF) {
		return bg, serial.InvalidValuef("background kind %d", kind)
	}
	if pdfPage < NoPDFPage {
		return bg, serial.InvalidValuef("background PDF page %d", pdfPage)
	}
	return Background{Kind: BackgroundKind(kind), Color: element.Color(c), PDFPage: int(pdfPage)}, nil
}

func readLayer(in *serial.ObjectInputStream) (*Layer, error) {
	if err := in.ReadObject("Layer"); err != nil {
		return nil, err
	}
	name, err := in.ReadString()
	if err != nil {
		return nil, err
	}
	visible, err := in.ReadInt()
	if err != nil {
		return nil, err
	}
	elems, err := element.ReadElements(in)
	if err != nil {
		return nil, err
	}
	if err := in.EndObject(); err != nil {
		return nil, err
	}
	return &Layer{Name: name, Visible: visible != 0, elements: elems}, nil
}

// Save writes the document as a complete stream to w
func (d *Document) Save(w io.Writer) error {
	out := serial.NewObjectOutputStream()
	d.Serialize(out)
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// Load decodes a stream written by Save
func Load(data []byte) (*Document, error) {
	in, err := serial.NewObjectInputStream(data)
	if err != nil {
		return nil, err
	}
	return ReadDocument(in)
}

// SaveFile writes the document to path
func (d *Document) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := d.Save(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile reads a document written by SaveFile
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return Load(data)
}
