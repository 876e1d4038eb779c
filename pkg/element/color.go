package element

import "fmt"

// Color is a packed 0xAARRGGBB value. The alpha byte is the opacity:
// 0xff is fully opaque.
type Color uint32

// Common colors
const (
	Black Color = 0xff000000
	White Color = 0xffffffff
)

// RGB returns an opaque color
func RGB(r, g, b uint8) Color {
	return RGBA(r, g, b, 0xff)
}

// RGBA returns a color with the given opacity
func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }
func (c Color) A() uint8 { return uint8(c >> 24) }

// WithAlpha returns the same color with a different opacity
func (c Color) WithAlpha(a uint8) Color {
	return RGBA(c.R(), c.G(), c.B(), a)
}

// Float returns the color components in the range 0..1
func (c Color) Float() (r, g, b float64) {
	return float64(c.R()) / 255, float64(c.G()) / 255, float64(c.B()) / 255
}

// Opacity returns the alpha byte in the range 0..1
func (c Color) Opacity() float64 {
	return float64(c.A()) / 255
}

// RGBA implements color.Color (alpha-premultiplied, 16 bits per channel)
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A())
	r = uint32(c.R()) * a / 0xff
	g = uint32(c.G()) * a / 0xff
	b = uint32(c.B()) * a / 0xff
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R(), c.G(), c.B(), c.A())
}
