package trueview

import (
	"image/color"
	"testing"
)

func TestParseBackgroundSixDigitHex(t *testing.T) {
	c, err := parseBackground("#112233")
	if err != nil {
		t.Fatalf("parseBackground: %v", err)
	}
	want := color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 255}
	if c != want {
		t.Errorf("parseBackground = %+v, want %+v", c, want)
	}
}

func TestParseBackgroundEightDigitHexWithAlpha(t *testing.T) {
	c, err := parseBackground("#80112233")
	if err != nil {
		t.Fatalf("parseBackground: %v", err)
	}
	want := color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0x80}
	if c != want {
		t.Errorf("parseBackground = %+v, want %+v", c, want)
	}
}

func TestParseBackgroundEmptyIsTransparent(t *testing.T) {
	c, err := parseBackground("")
	if err != nil {
		t.Fatalf("parseBackground: %v", err)
	}
	if c != (color.RGBA{}) {
		t.Errorf("parseBackground(\"\") = %+v, want zero value", c)
	}
}

func TestParseBackgroundInvalidLength(t *testing.T) {
	if _, err := parseBackground("#FFF"); err == nil {
		t.Fatal("expected error for 3-digit hex")
	}
}
