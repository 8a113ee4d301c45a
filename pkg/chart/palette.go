package chart

import (
	"fmt"
	"strconv"
)

// palette is Paul Tol's qualitative color palette, designed for colorblind
// accessibility. See: https://personal.sron.nl/~pault/
var palette = []string{
	"#4477AA", // Blue
	"#EE6677", // Rose
	"#228833", // Green
	"#CCBB44", // Olive/Yellow
	"#66CCEE", // Cyan
	"#AA3377", // Purple
	"#BBBBBB", // Grey
	"#EE8866", // Orange
	"#44BB99", // Teal
	"#FFAABB", // Pink
}

// Palette returns a copy of the series color palette in order.
func Palette() []string {
	out := make([]string, len(palette))
	copy(out, palette)
	return out
}

// Colors returns n series colors drawn from the palette in order, cycling
// from the start when n exceeds the palette size. Output is deterministic:
// Colors(n)[i] == Palette()[i % len(Palette())].
func Colors(n int) []string {
	if n <= 0 {
		return []string{}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}

// WithAlpha applies a transparency fraction in [0, 1] to a "#RRGGBB" hex
// color, returning an "rgba(r, g, b, a)" string. An empty color is returned
// unchanged, as is any color that is not a parseable hex triplet; WithAlpha
// never fails. Alpha values outside [0, 1] are clamped.
func WithAlpha(color string, alpha float64) string {
	if color == "" {
		return ""
	}

	r, g, b, ok := parseHex(color)
	if !ok {
		return color
	}

	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}

	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b,
		strconv.FormatFloat(alpha, 'g', -1, 64))
}

// parseHex parses a "#RRGGBB" color into its channel values.
func parseHex(color string) (r, g, b uint8, ok bool) {
	if len(color) != 7 || color[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(color[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
