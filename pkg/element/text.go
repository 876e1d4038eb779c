package element

import (
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/pyhub-apps/inkdoc-golang/pkg/fonts"
	"github.com/pyhub-apps/inkdoc-golang/pkg/geom"
	"github.com/pyhub-apps/inkdoc-golang/pkg/logging"
	"github.com/pyhub-apps/inkdoc-golang/pkg/serial"
)

// DefaultFontSize is the size of new text elements in points
const DefaultFontSize = 12.0

// Font names the face and size of a text element. The name is kept for
// round trips; text is always measured with the embedded font.
type Font struct {
	Name string
	Size float64
}

// DefaultFont returns the font used by NewText
func DefaultFont() Font {
	return Font{Name: fonts.EmbeddedName, Size: DefaultFontSize}
}

func (f Font) write(out *serial.ObjectOutputStream) {
	out.WriteObject("Font")
	out.WriteString(f.Name)
	out.WriteDouble(f.Size)
	out.EndObject()
}

func readFont(in *serial.ObjectInputStream) (Font, error) {
	var f Font
	if err := in.ReadObject("Font"); err != nil {
		return f, err
	}
	name, err := in.ReadString()
	if err != nil {
		return f, err
	}
	size, err := in.ReadDouble()
	if err != nil {
		return f, err
	}
	if err := in.EndObject(); err != nil {
		return f, err
	}
	if !geom.IsFinite(size) || size < 0 {
		return f, serial.InvalidValuef("font size %g", size)
	}
	f.Name, f.Size = name, size
	return f, nil
}

// Text is a block of text anchored at its top left corner
type Text struct {
	base
	AudioRef

	text      string
	font      Font
	inEditing bool
}

// NewText returns a text element at (x, y) using the default font
func NewText(text string, x, y float64) *Text {
	t := &Text{text: norm.NFC.String(text), font: DefaultFont()}
	t.base = newBase(TypeText, t)
	t.x, t.y = x, y
	return t
}

func (t *Text) calcSize() {
	ext, err := fonts.Measure(t.text, t.font.Size)
	if err != nil {
		logging.Logger().Error("failed to measure text", "error", err)
	}
	t.width, t.height = ext.Width, ext.Height
	t.snappedBounds = geom.NewRectangle(t.x, t.y, t.width, t.height)
}

// Text returns the NFC-normalized content
func (t *Text) Text() string { return t.text }

// SetText replaces the content. It is stored in NFC form.
func (t *Text) SetText(text string) {
	t.text = norm.NFC.String(text)
	t.invalidate()
}

func (t *Text) Font() Font { return t.font }

func (t *Text) SetFont(f Font) {
	t.font = f
	t.invalidate()
}

// IsInEditing reports whether the text is open in an editor. The flag is
// not serialized.
func (t *Text) IsInEditing() bool { return t.inEditing }

func (t *Text) SetInEditing(editing bool) { t.inEditing = editing }

// Scale moves the anchor and scales the font by fx. Text cannot be
// stretched, so fy only affects the anchor.
func (t *Text) Scale(x0, y0, fx, fy, rotation float64, _ bool) {
	if fx != fy {
		logging.Logger().Warn("text does not support non-uniform scaling",
			"fx", fx, "fy", fy)
	}
	t.x, t.y = geom.ScaleAbout(x0, y0, fx, fy, rotation).Transform(t.x, t.y)
	t.font.Size *= math.Abs(fx)
	t.invalidate()
}

// Rotate turns the center of the text box about (x0, y0). Glyphs stay
// upright.
func (t *Text) Rotate(x0, y0, theta float64) {
	t.ensureSize()
	c := geom.NewRectangle(t.x, t.y, t.width, t.height).Center()
	nx, ny := geom.RotateAbout(x0, y0, theta).Transform(c.X, c.Y)
	t.x += nx - c.X
	t.y += ny - c.Y
	t.invalidate()
}

func (t *Text) RescaleOnlyAspectRatio() bool { return true }

func (t *Text) Clone() Element {
	c := &Text{
		AudioRef: t.AudioRef,
		text:     t.text,
		font:     t.font,
	}
	c.base = t.cloneBase(c)
	return c
}

func (t *Text) Serialize(out *serial.ObjectOutputStream) {
	out.WriteObject("Text")
	t.writeAudio(out)
	t.writeBase(out)
	out.WriteString(t.text)
	t.font.write(out)
	out.EndObject()
}

func (t *Text) ReadSerialized(in *serial.ObjectInputStream) error {
	if err := in.ReadObject("Text"); err != nil {
		return err
	}
	audio, err := readAudio(in)
	if err != nil {
		return err
	}
	bf, err := readBase(in)
	if err != nil {
		return err
	}
	text, err := in.ReadString()
	if err != nil {
		return err
	}
	f, err := readFont(in)
	if err != nil {
		return err
	}
	if err := in.EndObject(); err != nil {
		return err
	}
	t.AudioRef = audio
	t.commitBase(bf)
	t.text = norm.NFC.String(text)
	t.font = f
	return nil
}
