// Package color implements an immutable 24-bit RGB color value with
// perceptual manipulation (lighten/darken/blend/contrast/palette) and
// capability-aware downsampling to 256-color, 16-color, and greyscale
// terminal targets.
//
// Perceptual operations run in CIE Lab/HSL space via go-colorful rather
// than raw channel scaling. All operations are total: out-of-range inputs
// clamp, nothing errors in normal use.
package color

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color carrying an SGR role flag.
// The role selects the foreground (38;*) or background (48;*) sequence
// family at encode time; it never affects the numeric channel values.
type Color struct {
	R, G, B    uint8
	Background bool
}

// Well-known values. DefaultFg/DefaultBg are the resolved stand-ins for
// the terminal's own default colors; an untouched cell carries them.
var (
	Black = Color{0, 0, 0, false}
	White = Color{255, 255, 255, false}

	DefaultFg = Color{0xDE, 0xDE, 0xDE, false}
	DefaultBg = Color{0x14, 0x14, 0x14, true}
)

// RGB returns a foreground-role color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// BG returns a background-role color.
func BG(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, Background: true}
}

// FromHex parses "#rrggbb" (leading '#' optional) into a foreground-role
// color.
func FromHex(s string) (Color, error) {
	if len(s) > 0 && s[0] != '#' {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse hex color %q: %w", s, err)
	}
	return fromColorful(c, false), nil
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// AsBackground returns the same RGB value with the given role.
func (c Color) AsBackground(background bool) Color {
	c.Background = background
	return c
}

// Equal reports whether the RGB values match. Role is ignored: the role is
// routing information, not part of the color.
func (c Color) Equal(other Color) bool {
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// Luminance returns the W3C relative luminance in [0,1], computed over
// linearized sRGB channels.
func (c Color) Luminance() float64 {
	lr, lg, lb := c.colorful().LinearRgb()
	return 0.2126*lr + 0.7152*lg + 0.0722*lb
}

// Lightness returns the perceived lightness (CIE L*) in [0,1].
// Monotonic: a color that looks lighter has a strictly larger value.
func (c Color) Lightness() float64 {
	l, _, _ := c.colorful().Lab()
	return clamp01(l)
}

// Lighten moves the color toward the white point by amount (0..1) in Lab
// space. Lighten(1) is pure white, Lighten(0) is the color itself.
func (c Color) Lighten(amount float64) Color {
	amount = clamp01(amount)
	l, a, b := c.colorful().Lab()
	l += (1 - l) * amount
	a *= 1 - amount
	b *= 1 - amount
	return fromColorful(colorful.Lab(l, a, b), c.Background)
}

// Darken moves the color toward black by amount (0..1) in Lab space.
func (c Color) Darken(amount float64) Color {
	amount = clamp01(amount)
	l, a, b := c.colorful().Lab()
	l *= 1 - amount
	a *= 1 - amount
	b *= 1 - amount
	return fromColorful(colorful.Lab(l, a, b), c.Background)
}

// Blend linearly interpolates per channel toward other. ratio 0 returns
// the receiver, ratio 1 returns other. The receiver's role is kept.
func (c Color) Blend(other Color, ratio float64) Color {
	ratio = clamp01(ratio)
	return Color{
		R:          lerpChannel(c.R, other.R, ratio),
		G:          lerpChannel(c.G, other.G, ratio),
		B:          lerpChannel(c.B, other.B, ratio),
		Background: c.Background,
	}
}

// BlendComplement blends the color toward its complement.
func (c Color) BlendComplement(ratio float64) Color {
	return c.Blend(c.Complement(), ratio)
}

// Contrast returns pure black or pure white, whichever stays legible when
// painted on top of the receiver. The boundary is the WCAG relative
// luminance threshold 0.179: at or above it the color counts as light and
// black is returned.
func (c Color) Contrast() Color {
	if c.Luminance() >= 0.179 {
		return Black.AsBackground(c.Background)
	}
	return White.AsBackground(c.Background)
}

// Complement returns the color rotated half a turn around the hue circle.
// Hueless (grey) colors have no meaningful complement; they flip to the
// opposite end of the lightness axis instead.
func (c Color) Complement() Color {
	_, s, l := c.colorful().Hsl()
	if s == 0 {
		if l < 0.5 {
			return White.AsBackground(c.Background)
		}
		return Black.AsBackground(c.Background)
	}
	return c.HueShift(0.5)
}

// HueShift rotates the hue by amount turns (0..1), preserving saturation
// and lightness.
func (c Color) HueShift(amount float64) Color {
	h, s, l := c.colorful().Hsl()
	h = math.Mod(h+amount*360, 360)
	if h < 0 {
		h += 360
	}
	return fromColorful(colorful.Hsl(h, s, l), c.Background)
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// fromColorful converts back to 8-bit channels, clamping out-of-gamut
// results from Lab/HSL round trips.
func fromColorful(c colorful.Color, background bool) Color {
	c = c.Clamped()
	return Color{
		R:          uint8(math.Round(clamp01(c.R) * 255)),
		G:          uint8(math.Round(clamp01(c.G) * 255)),
		B:          uint8(math.Round(clamp01(c.B) * 255)),
		Background: background,
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	return uint8(math.Round(clampf(v, 0, 255)))
}

func clamp01(v float64) float64 {
	return clampf(v, 0, 1)
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
