package element

import (
	"bytes"

	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

// TexImage is a rendered LaTeX formula. It keeps the source so the formula
// can be edited and rendered again.
type TexImage struct {
	placedImage

	source string
}

// NewTexImage places the rendered PNG of source in the rectangle r
func NewTexImage(source string, png []byte, r geom.Rectangle) *TexImage {
	t := &TexImage{source: source}
	t.placedImage = placedImage{
		data:      bytes.Clone(png),
		placement: rectPlacement(r),
	}
	t.base = newBase(TypeTexImage, &t.placedImage)
	return t
}

// Source returns the LaTeX source text
func (t *TexImage) Source() string { return t.source }

func (t *TexImage) SetSource(source string) { t.source = source }

func (t *TexImage) Clone() Element {
	c := &TexImage{source: t.source}
	c.placedImage = t.clonePlaced(&c.placedImage)
	return c
}

func (t *TexImage) Serialize(out *serial.ObjectOutputStream) {
	out.WriteObject("TexImage")
	t.writeBase(out)
	out.WriteString(t.source)
	t.writePlacement(out)
	out.EndObject()
}

func (t *TexImage) ReadSerialized(in *serial.ObjectInputStream) error {
	if err := in.ReadObject("TexImage"); err != nil {
		return err
	}
	bf, err := readBase(in)
	if err != nil {
		return err
	}
	source, err := in.ReadString()
	if err != nil {
		return err
	}
	m, data, err := readPlacement(in)
	if err != nil {
		return err
	}
	if err := in.EndObject(); err != nil {
		return err
	}
	t.commitPlacement(bf, m, data)
	t.source = source
	return nil
}
