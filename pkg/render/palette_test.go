package render

import (
	"errors"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/decker502/prizewheel/pkg/config"
)

func TestParsePalette(t *testing.T) {
	p, err := ParsePalette([]string{"#ffdc32", "#ff8c00", "#ff3c00"})
	if err != nil {
		t.Fatalf("ParsePalette: %v", err)
	}
	if len(p) != 3 {
		t.Fatalf("len = %d, want 3", len(p))
	}
	if got := p.At(1).Hex(); got != "#ff8c00" {
		t.Errorf("At(1) = %s, want #ff8c00", got)
	}
	if got := p.At(4).Hex(); got != "#ff8c00" {
		t.Errorf("At(4) should wrap to class 1, got %s", got)
	}

	if _, err := ParsePalette([]string{"#ffdc32", "orange"}); !errors.Is(err, config.ErrInvalidConfiguration) {
		t.Errorf("bad hex: got %v, want ErrInvalidConfiguration", err)
	}
	if got := Palette(nil).At(2).Hex(); got != "#ffffff" {
		t.Errorf("empty palette should be white, got %s", got)
	}
}

// TestShift 对照十六进制颜色的百分比混合结果
func TestShift(t *testing.T) {
	red, _ := colorful.Hex("#c62828")
	tests := []struct {
		name    string
		percent float64
		want    string
	}{
		{"identity", 0, "#c62828"},
		{"lighten 22", 22, "#d35757"},
		{"darken 18", -18, "#a22121"},
		{"full white", 100, "#ffffff"},
		{"full black", -150, "#000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Shift(red, tt.percent).Hex(); got != tt.want {
				t.Errorf("Shift(%v) = %s, want %s", tt.percent, got, tt.want)
			}
		})
	}
}

func TestNRGBA(t *testing.T) {
	c, _ := colorful.Hex("#1b8f3a")
	got := NRGBA(c, 0.5)
	if got.R != 0x1b || got.G != 0x8f || got.B != 0x3a {
		t.Errorf("rgb = %02x%02x%02x, want 1b8f3a", got.R, got.G, got.B)
	}
	if got.A != 128 {
		t.Errorf("alpha = %d, want 128", got.A)
	}
	if NRGBA(c, 2).A != 255 || NRGBA(c, -1).A != 0 {
		t.Error("alpha should clamp to [0, 1]")
	}
}

func TestSectorShades(t *testing.T) {
	shades, err := SectorShades(config.DefaultSectors)
	if err != nil {
		t.Fatal(err)
	}
	if len(shades) != len(config.DefaultSectors) {
		t.Fatalf("got %d shades", len(shades))
	}
	if got := shades[0].Base.Hex(); got != "#1b8f3a" {
		t.Errorf("jackpot base = %s, want green", got)
	}
	if got := shades[1].Base.Hex(); got != "#c62828" {
		t.Errorf("sector 1 base = %s, want red", got)
	}
	if got := shades[2].Base.Hex(); got != "#111111" {
		t.Errorf("sector 2 base = %s, want black", got)
	}
	for i, s := range shades {
		_, _, innerL := s.Inner.Hsl()
		_, _, outerL := s.Outer.Hsl()
		if innerL <= outerL {
			t.Errorf("sector %d: inner should be lighter than outer", i)
		}
	}
}
