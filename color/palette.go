package color

// Strategy selects how Palette derives related colors from a base.
type Strategy uint8

const (
	// Monochrome keeps the hue and walks the lightness axis.
	Monochrome Strategy = iota
	// Analogous spreads hues in 1/12-turn steps around the base.
	Analogous
	// Complementary blends between the base and its complement.
	Complementary
	// Triadic cycles through the three 1/3-turn rotations, nudging
	// lightness on each full cycle.
	Triadic
)

func (s Strategy) String() string {
	switch s {
	case Analogous:
		return "analogous"
	case Complementary:
		return "complementary"
	case Triadic:
		return "triadic"
	default:
		return "monochrome"
	}
}

// Palette generates count related colors around the base, base included.
// count below 1 yields an empty slice. Every result is clamped to valid
// channel ranges; the base's role is preserved throughout.
func (c Color) Palette(strategy Strategy, count int) []Color {
	if count < 1 {
		return nil
	}

	out := make([]Color, 0, count)

	switch strategy {
	case Analogous:
		// Center the fan on the base hue.
		for i := 0; i < count; i++ {
			offset := float64(i-(count-1)/2) / 12
			out = append(out, c.HueShift(offset))
		}

	case Complementary:
		if count == 1 {
			return []Color{c}
		}
		for i := 0; i < count; i++ {
			out = append(out, c.BlendComplement(float64(i)/float64(count-1)))
		}

	case Triadic:
		for i := 0; i < count; i++ {
			shifted := c.HueShift(float64(i%3) / 3)
			if cycle := i / 3; cycle > 0 {
				shifted = shifted.Lighten(0.12 * float64(cycle))
			}
			out = append(out, shifted)
		}

	default: // Monochrome
		base := c.Lightness()
		span := 0.7 // total lightness range covered by the ladder
		for i := 0; i < count; i++ {
			target := base
			if count > 1 {
				target = base + span*(float64(i)/float64(count-1)-0.5)
			}
			out = append(out, c.withLightness(clamp01(target)))
		}
	}

	return out
}

// withLightness returns the color with its L* replaced.
func (c Color) withLightness(l float64) Color {
	cur := c.Lightness()
	switch {
	case l > cur:
		if cur >= 1 {
			return c
		}
		return c.Lighten((l - cur) / (1 - cur))
	case l < cur:
		if cur <= 0 {
			return c
		}
		return c.Darken((cur - l) / cur)
	default:
		return c
	}
}
