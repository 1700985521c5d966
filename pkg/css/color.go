package css

import (
	"fmt"
	"image/color"
	"strconv"
)

// Transparent is the background-color value that suppresses the fill.
const Transparent = "transparent"

// ParseHexColor converts a computed #rrggbb value into an RGBA color.
func ParseHexColor(value string) (color.RGBA, error) {
	if len(value) != 7 || value[0] != '#' {
		return color.RGBA{}, fmt.Errorf("not a hex color: %q", value)
	}
	n, err := strconv.ParseUint(value[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("not a hex color: %q", value)
	}
	return color.RGBA{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 0xff,
	}, nil
}
