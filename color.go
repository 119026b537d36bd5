package drawbatch

import "image/color"

// RGBA represents a color with red, green, blue, and alpha components.
// Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Common colors.
var (
	White       = RGBA{R: 1, G: 1, B: 1, A: 1}
	Black       = RGBA{R: 0, G: 0, B: 0, A: 1}
	Transparent = RGBA{}
)

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// Hex creates a color from a hex string, with or without a leading
// '#'. Supports "RGB", "RGBA", "RRGGBB", and "RRGGBBAA"; malformed
// input yields opaque black.
func Hex(hex string) RGBA {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint32
	a := uint32(255)
	switch len(hex) {
	case 3:
		r, g, b = hexNibble(hex[0])*17, hexNibble(hex[1])*17, hexNibble(hex[2])*17
	case 4:
		r, g, b = hexNibble(hex[0])*17, hexNibble(hex[1])*17, hexNibble(hex[2])*17
		a = hexNibble(hex[3]) * 17
	case 6:
		r = hexNibble(hex[0])*16 + hexNibble(hex[1])
		g = hexNibble(hex[2])*16 + hexNibble(hex[3])
		b = hexNibble(hex[4])*16 + hexNibble(hex[5])
	case 8:
		r = hexNibble(hex[0])*16 + hexNibble(hex[1])
		g = hexNibble(hex[2])*16 + hexNibble(hex[3])
		b = hexNibble(hex[4])*16 + hexNibble(hex[5])
		a = hexNibble(hex[6])*16 + hexNibble(hex[7])
	default:
		return Black
	}

	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}
}

func hexNibble(c byte) uint32 {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0')
	case 'a' <= c && c <= 'f':
		return uint32(c-'a') + 10
	case 'A' <= c && c <= 'F':
		return uint32(c-'A') + 10
	}
	return 0
}

// FromColor converts a standard color.Color to RGBA.
func FromColor(c color.Color) RGBA {
	r, g, b, a := c.RGBA()
	return RGBA{
		R: float64(r) / 65535,
		G: float64(g) / 65535,
		B: float64(b) / 65535,
		A: float64(a) / 65535,
	}
}

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// Scale returns the color with every component multiplied by s,
// clamped to [0, 1].
func (c RGBA) Scale(s float64) RGBA {
	return RGBA{
		R: clamp01(c.R * s),
		G: clamp01(c.G * s),
		B: clamp01(c.B * s),
		A: clamp01(c.A * s),
	}
}

// Modulate returns the component-wise product of two colors.
func (c RGBA) Modulate(o RGBA) RGBA {
	return RGBA{R: c.R * o.R, G: c.G * o.G, B: c.B * o.B, A: c.A * o.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
