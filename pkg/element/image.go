package element

import (
	"bytes"

	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

// Image is an embedded raster image (PNG or JPEG)
type Image struct {
	placedImage
}

// NewImage places the encoded image data in the rectangle r
func NewImage(data []byte, r geom.Rectangle) *Image {
	img := &Image{}
	img.placedImage = placedImage{
		data:      bytes.Clone(data),
		placement: rectPlacement(r),
	}
	img.base = newBase(TypeImage, &img.placedImage)
	return img
}

// rectPlacement maps the unit square onto r
func rectPlacement(r geom.Rectangle) geom.Matrix {
	return geom.Scale(r.Width, r.Height).Multiply(geom.Translate(r.X, r.Y))
}

func (img *Image) Clone() Element {
	c := &Image{}
	c.placedImage = img.clonePlaced(&c.placedImage)
	return c
}

func (img *Image) Serialize(out *serial.ObjectOutputStream) {
	out.WriteObject("Image")
	img.writeBase(out)
	img.writePlacement(out)
	out.EndObject()
}

func (img *Image) ReadSerialized(in *serial.ObjectInputStream) error {
	if err := in.ReadObject("Image"); err != nil {
		return err
	}
	bf, err := readBase(in)
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
	img.commitPlacement(bf, m, data)
	return nil
}
