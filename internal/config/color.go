package config

import (
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses "#rrggbb" or "#rgb" into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.RGBA{}, fmt.Errorf("color is empty")
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// FormatColor renders c as "#rrggbb".
func FormatColor(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

type colorEntry struct {
	key   string
	value string
}

// entries lists the colors in declaration order, keyed by their YAML name.
func (c ColorsConfig) entries() []colorEntry {
	return []colorEntry{
		{"window_tab", c.WindowTab},
		{"window_text", c.WindowText},
		{"window_border", c.WindowBorder},
		{"inactive_tab", c.InactiveTab},
		{"inactive_text", c.InactiveText},
		{"inactive_border", c.InactiveBorder},
	}
}
