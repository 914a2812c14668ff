package color

import (
	"math"
)

// Capability is the color fidelity a target terminal supports. Detection
// happens outside this package (see terminal.Detect); here the value only
// drives downsampling.
type Capability uint8

const (
	// NoColor drops color entirely: downsampling yields the role default.
	NoColor Capability = iota
	// Greyscale renders every color as its perceived-lightness grey,
	// used when an accessibility/no-color directive is active but the
	// terminal still distinguishes shades.
	Greyscale
	// Ansi16 supports only the 16 standard colors.
	Ansi16
	// Ansi256 supports the xterm 256-color palette.
	Ansi256
	// TrueColor supports full 24-bit RGB.
	TrueColor
)

// AtLeast reports whether c offers at least the fidelity of other.
func (c Capability) AtLeast(other Capability) bool {
	return c >= other
}

func (c Capability) String() string {
	switch c {
	case NoColor:
		return "no-color"
	case Greyscale:
		return "greyscale"
	case Ansi16:
		return "ansi16"
	case Ansi256:
		return "ansi256"
	case TrueColor:
		return "truecolor"
	}
	return "unknown"
}

// ToCapability downsamples the color to the nearest value the given
// capability can represent. TrueColor is the identity. Palette targets
// pick the entry minimizing CIE Lab distance. Greyscale maps to the grey
// whose level equals the color's perceived lightness, which keeps the
// lighter-stays-lighter ordering. NoColor collapses to the role default.
func (c Color) ToCapability(target Capability) Color {
	switch target {
	case TrueColor:
		return c
	case Ansi256:
		return from256(c.Index256()).AsBackground(c.Background)
	case Ansi16:
		p := ansi16[c.Index16()]
		return p.AsBackground(c.Background)
	case Greyscale:
		g := c.GreyLevel()
		return Color{R: g, G: g, B: g, Background: c.Background}
	default: // NoColor
		if c.Background {
			return DefaultBg
		}
		return DefaultFg
	}
}

// GreyLevel returns the perceived-lightness grey channel value in 0..255.
func (c Color) GreyLevel() uint8 {
	return uint8(math.Round(c.Lightness() * 255))
}

// cubeValues are the channel levels of the xterm 6x6x6 color cube
// (indices 16-231).
var cubeValues = [6]uint8{0, 95, 135, 175, 215, 255}

// cubeIndex maps a channel value to the nearest cube level, precomputed
// once at init.
var cubeIndex [256]uint8

func init() {
	for i := 0; i < 256; i++ {
		best := 0
		bestDist := absInt(i - int(cubeValues[0]))
		for j := 1; j < 6; j++ {
			if d := absInt(i - int(cubeValues[j])); d < bestDist {
				bestDist = d
				best = j
			}
		}
		cubeIndex[i] = uint8(best)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Index256 returns the nearest xterm 256-palette index. The cube and the
// grey ramp each propose a candidate from channel quantization; the winner
// is the one perceptually closer (Lab distance) to the original.
func (c Color) Index256() uint8 {
	cube := Cube256(cubeIndex[c.R], cubeIndex[c.G], cubeIndex[c.B])

	// Ramp candidate from the channel mean: the grey-axis projection.
	grey := (int(c.R) + int(c.G) + int(c.B)) / 3
	step := (grey - 8 + 5) / 10
	if step < 0 {
		step = 0
	}
	if step > 23 {
		step = 23
	}
	ramp := Gray256(uint8(step))

	want := c.colorful()
	if want.DistanceLab(from256(ramp).colorful()) < want.DistanceLab(from256(cube).colorful()) {
		return ramp
	}
	return cube
}

// GreyIndex256 returns the grey-ramp palette index (232-255) matching the
// color's perceived lightness. Used for accessibility-mode rendering.
func (c Color) GreyIndex256() uint8 {
	step := math.Round(c.Lightness() * 23)
	return Gray256(uint8(step))
}

// ansi16 is the xterm default rendition of the 16 standard colors.
var ansi16 = [16]Color{
	{0, 0, 0, false},       // black
	{205, 0, 0, false},     // red
	{0, 205, 0, false},     // green
	{205, 205, 0, false},   // yellow
	{0, 0, 238, false},     // blue
	{205, 0, 205, false},   // magenta
	{0, 205, 205, false},   // cyan
	{229, 229, 229, false}, // white
	{127, 127, 127, false}, // bright black
	{255, 0, 0, false},     // bright red
	{0, 255, 0, false},     // bright green
	{255, 255, 0, false},   // bright yellow
	{92, 92, 255, false},   // bright blue
	{255, 0, 255, false},   // bright magenta
	{0, 255, 255, false},   // bright cyan
	{255, 255, 255, false}, // bright white
}

// Index16 returns the nearest standard-palette index (0-15) by Lab
// distance.
func (c Color) Index16() int {
	want := c.colorful()
	best := 0
	bestDist := math.Inf(1)
	for i, p := range ansi16 {
		if d := want.DistanceLab(p.colorful()); d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Cube256 returns the palette index for a color cube coordinate.
// r, g, b outside [0,5] are clamped.
func Cube256(r, g, b uint8) uint8 {
	if r > 5 {
		r = 5
	}
	if g > 5 {
		g = 5
	}
	if b > 5 {
		b = 5
	}
	return 16 + 36*r + 6*g + b
}

// CubeRGB256 returns the cube coordinates for a color cube index.
// Indices outside [16,231] return (0,0,0).
func CubeRGB256(index uint8) (r, g, b uint8) {
	if index < 16 || index > 231 {
		return 0, 0, 0
	}
	n := index - 16
	return n / 36, (n % 36) / 6, n % 6
}

// Gray256 returns the palette index for a grey-ramp step in [0,23].
// Out-of-range steps clamp.
func Gray256(step uint8) uint8 {
	if step > 23 {
		step = 23
	}
	return 232 + step
}

// from256 resolves a 256-palette index to its RGB value.
func from256(index uint8) Color {
	switch {
	case index >= 232:
		level := 8 + 10*uint8(index-232)
		return Color{R: level, G: level, B: level}
	case index >= 16:
		r, g, b := CubeRGB256(index)
		return Color{R: cubeValues[r], G: cubeValues[g], B: cubeValues[b]}
	default:
		return ansi16[index]
	}
}
