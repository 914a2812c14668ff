package color

import (
	"testing"
)

func TestPaletteCount(t *testing.T) {
	base := RGB(60, 120, 200)
	for _, s := range []Strategy{Monochrome, Analogous, Complementary, Triadic} {
		for _, n := range []int{1, 3, 7} {
			if got := len(base.Palette(s, n)); got != n {
				t.Errorf("strategy %d count %d produced %d colors", s, n, got)
			}
		}
		if got := base.Palette(s, 0); got != nil {
			t.Errorf("strategy %d count 0 produced %v", s, got)
		}
	}
}

func TestPaletteMonochromeLadder(t *testing.T) {
	out := RGB(150, 60, 60).Palette(Monochrome, 5)
	for i := 1; i < len(out); i++ {
		if out[i].Lightness() < out[i-1].Lightness() {
			t.Errorf("monochrome ladder not ascending at %d: %f < %f",
				i, out[i].Lightness(), out[i-1].Lightness())
		}
	}
}

func TestPaletteComplementaryEndpoints(t *testing.T) {
	base := RGB(255, 0, 0)
	out := base.Palette(Complementary, 4)
	if !out[0].Equal(base) {
		t.Errorf("complementary[0] = %v, want base", out[0])
	}
	if !out[3].Equal(base.Complement()) {
		t.Errorf("complementary[last] = %v, want complement %v", out[3], base.Complement())
	}
}

func TestPaletteTriadicDistinct(t *testing.T) {
	out := RGB(255, 0, 0).Palette(Triadic, 3)
	if out[0].Equal(out[1]) || out[1].Equal(out[2]) || out[0].Equal(out[2]) {
		t.Errorf("triadic rotations not distinct: %v", out)
	}
}

func TestPaletteKeepsRole(t *testing.T) {
	for _, c := range BG(90, 90, 200).Palette(Analogous, 5) {
		if !c.Background {
			t.Errorf("palette dropped background role on %v", c)
		}
	}
}
