package color

import (
	"testing"
)

func TestContrastThreshold(t *testing.T) {
	if got := Black.Contrast(); !got.Equal(White) {
		t.Errorf("contrast of black = %v, want white", got)
	}
	if got := White.Contrast(); !got.Equal(Black) {
		t.Errorf("contrast of white = %v, want black", got)
	}

	// Mid greys straddle the 0.179 luminance boundary.
	dark := RGB(100, 100, 100) // luminance ~0.127
	if dark.Luminance() >= 0.179 {
		t.Fatalf("test premise broken: luminance(100,100,100) = %f", dark.Luminance())
	}
	if got := dark.Contrast(); !got.Equal(White) {
		t.Errorf("contrast below threshold = %v, want white", got)
	}

	light := RGB(130, 130, 130) // luminance ~0.223
	if light.Luminance() < 0.179 {
		t.Fatalf("test premise broken: luminance(130,130,130) = %f", light.Luminance())
	}
	if got := light.Contrast(); !got.Equal(Black) {
		t.Errorf("contrast at/above threshold = %v, want black", got)
	}
}

func TestContrastKeepsRole(t *testing.T) {
	c := BG(10, 10, 10).Contrast()
	if !c.Background {
		t.Error("contrast dropped the background role")
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGB(10, 20, 30)
	b := RGB(210, 120, 90)

	if got := a.Blend(b, 0); !got.Equal(a) {
		t.Errorf("blend ratio 0 = %v, want %v", got, a)
	}
	if got := a.Blend(b, 1); !got.Equal(b) {
		t.Errorf("blend ratio 1 = %v, want %v", got, b)
	}
	mid := a.Blend(b, 0.5)
	if mid.R != 110 || mid.G != 70 || mid.B != 60 {
		t.Errorf("blend ratio 0.5 = %v, want {110 70 60}", mid)
	}
}

func TestBlendClampsRatio(t *testing.T) {
	a := RGB(0, 0, 0)
	b := RGB(255, 255, 255)
	if got := a.Blend(b, 2.5); !got.Equal(b) {
		t.Errorf("blend ratio 2.5 = %v, want clamp to %v", got, b)
	}
	if got := a.Blend(b, -1); !got.Equal(a) {
		t.Errorf("blend ratio -1 = %v, want clamp to %v", got, a)
	}
}

func TestLightenDarken(t *testing.T) {
	base := RGB(120, 40, 40)

	lighter := base.Lighten(0.3)
	if lighter.Lightness() <= base.Lightness() {
		t.Errorf("lighten did not raise lightness: %f -> %f",
			base.Lightness(), lighter.Lightness())
	}

	darker := base.Darken(0.3)
	if darker.Lightness() >= base.Lightness() {
		t.Errorf("darken did not lower lightness: %f -> %f",
			base.Lightness(), darker.Lightness())
	}

	if got := base.Lighten(1); !got.Equal(White) {
		t.Errorf("lighten(1) = %v, want white", got)
	}
	if got := base.Darken(1); !got.Equal(Black) {
		t.Errorf("darken(1) = %v, want black", got)
	}

	// Total over the input domain: out-of-range amounts clamp.
	if got := base.Lighten(5); !got.Equal(White) {
		t.Errorf("lighten(5) = %v, want white", got)
	}
	if got := base.Darken(-2); !got.Equal(base) {
		t.Errorf("darken(-2) = %v, want base", got)
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := RGB(0xAB, 0x12, 0xF0)
	parsed, err := FromHex(c.Hex())
	if err != nil {
		t.Fatalf("FromHex(%q): %v", c.Hex(), err)
	}
	if !parsed.Equal(c) {
		t.Errorf("round trip %q = %v, want %v", c.Hex(), parsed, c)
	}

	if _, err := FromHex("nope"); err == nil {
		t.Error("FromHex accepted garbage")
	}

	noHash, err := FromHex("20FF00")
	if err != nil {
		t.Fatalf("FromHex without hash: %v", err)
	}
	if !noHash.Equal(RGB(0x20, 0xFF, 0x00)) {
		t.Errorf("FromHex without hash = %v", noHash)
	}
}

func TestComplement(t *testing.T) {
	red := RGB(255, 0, 0)
	comp := red.Complement()
	if comp.R != 0 || comp.G < 200 || comp.B < 200 {
		t.Errorf("complement of red = %v, want cyan-ish", comp)
	}

	// Hueless colors flip along the lightness axis.
	if got := RGB(30, 30, 30).Complement(); !got.Equal(White) {
		t.Errorf("complement of dark grey = %v, want white", got)
	}
	if got := RGB(220, 220, 220).Complement(); !got.Equal(Black) {
		t.Errorf("complement of light grey = %v, want black", got)
	}
}

func TestHueShiftFullTurn(t *testing.T) {
	c := RGB(200, 80, 40)
	turned := c.HueShift(1)
	// A full rotation lands back on the same color, modulo rounding.
	if absInt(int(turned.R)-int(c.R)) > 1 ||
		absInt(int(turned.G)-int(c.G)) > 1 ||
		absInt(int(turned.B)-int(c.B)) > 1 {
		t.Errorf("full hue turn moved %v to %v", c, turned)
	}
}

func TestAsBackground(t *testing.T) {
	c := RGB(1, 2, 3).AsBackground(true)
	if !c.Background {
		t.Error("AsBackground(true) did not set role")
	}
	if !c.AsBackground(false).Equal(c) {
		t.Error("role change altered channel values")
	}
}
