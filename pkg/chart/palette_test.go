package chart

import (
	"testing"
)

func TestColors_Length(t *testing.T) {
	for _, n := range []int{0, 1, 5, len(palette), len(palette) + 1, 3 * len(palette)} {
		if got := len(Colors(n)); got != n {
			t.Errorf("len(Colors(%d)) = %d, want %d", n, got, n)
		}
	}
}

func TestColors_CyclesDeterministically(t *testing.T) {
	n := 2*len(palette) + 3
	got := Colors(n)
	for i := range got {
		if want := palette[i%len(palette)]; got[i] != want {
			t.Errorf("Colors(%d)[%d] = %q, want %q", n, i, got[i], want)
		}
	}

	// Identical n across runs yields identical output.
	again := Colors(n)
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("Colors is not deterministic at index %d", i)
		}
	}
}

func TestPalette_SizeAndCopy(t *testing.T) {
	p := Palette()
	if len(p) < 8 {
		t.Fatalf("palette has %d colors, want at least 8", len(p))
	}

	p[0] = "#000000"
	if Palette()[0] == "#000000" {
		t.Error("Palette() must return a copy")
	}
}

func TestWithAlpha(t *testing.T) {
	tests := []struct {
		name  string
		color string
		alpha float64
		want  string
	}{
		{"Basic", "#4477AA", 0.25, "rgba(68, 119, 170, 0.25)"},
		{"Opaque", "#FFAABB", 1, "rgba(255, 170, 187, 1)"},
		{"Transparent", "#228833", 0, "rgba(34, 136, 51, 0)"},
		{"ClampHigh", "#228833", 1.5, "rgba(34, 136, 51, 1)"},
		{"ClampLow", "#228833", -0.5, "rgba(34, 136, 51, 0)"},
		{"EmptyUnchanged", "", 0.5, ""},
		{"NonHexUnchanged", "rebeccapurple", 0.5, "rebeccapurple"},
		{"ShortHexUnchanged", "#fff", 0.5, "#fff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithAlpha(tt.color, tt.alpha); got != tt.want {
				t.Errorf("WithAlpha(%q, %v) = %q, want %q", tt.color, tt.alpha, got, tt.want)
			}
		})
	}
}
