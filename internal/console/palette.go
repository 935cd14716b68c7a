package console

import "image/color"

// PaletteSize is the number of addressable palette slots.
const PaletteSize = 64

var levels = [4]uint8{0, 85, 170, 255}

// DefaultPalette maps slot i to red level i%4, green level (i/4)%4 and
// blue level i/16, each level out of {0, 85, 170, 255}.
type DefaultPalette struct{}

// ColorIndex resolves a slot to a handle. Out of range slots resolve to slot 0.
func (DefaultPalette) ColorIndex(slot int) Color {
	if slot < 0 || slot >= PaletteSize {
		return 0
	}
	return Color(slot)
}

// RGBA returns the opaque colour for a handle.
func RGBA(c Color) color.RGBA {
	if c < 0 || c >= PaletteSize {
		c = 0
	}
	i := int(c)
	return color.RGBA{R: levels[i%4], G: levels[(i/4)%4], B: levels[i/16], A: 0xff}
}

// Xterm256 returns the closest entry of the xterm 6x6x6 colour cube.
func Xterm256(c Color) uint8 {
	rgba := RGBA(c)
	cube := func(v uint8) int {
		return (int(v)*5 + 127) / 255
	}
	return uint8(16 + 36*cube(rgba.R) + 6*cube(rgba.G) + cube(rgba.B))
}
