package scene

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// parseColor reads a "#rrggbb" or "#rgb" color into bytes.
func parseColor(s string) ([3]uint8, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return [3]uint8{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return [3]uint8{r, g, b}, nil
}

// formatColor writes bytes as "#rrggbb".
func formatColor(c [3]uint8) string {
	return colorful.Color{
		R: float64(c[0]) / 255,
		G: float64(c[1]) / 255,
		B: float64(c[2]) / 255,
	}.Hex()
}
