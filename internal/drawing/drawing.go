// Package drawing defines the measuring side of the drawing-engine
// collaborator used by decorators. Actual rasterization lives elsewhere;
// layout code only ever asks how wide a string is and how tall a font is.
package drawing

import (
	"math"
	"unicode/utf8"
)

// Font selects a face for measuring.
type Font struct {
	Family string  `yaml:"family"`
	Size   float64 `yaml:"size"`
	Bold   bool    `yaml:"bold,omitempty"`
	// Rotation in degrees. Vertical tab strips use 90.
	Rotation float64 `yaml:"-"`
}

// Metrics holds the vertical extent of a font in pixels.
type Metrics struct {
	Ascent  float64
	Descent float64
}

// Height returns ascent plus descent.
func (m Metrics) Height() float64 {
	return m.Ascent + m.Descent
}

// Engine measures text. Implementations are owned by the rendering context
// and only borrowed by decorators.
type Engine interface {
	StringWidth(s string, f Font) float64
	Metrics(f Font) Metrics
}

// TruncateMode selects where an overlong string is shortened.
type TruncateMode int

const (
	TruncateEnd TruncateMode = iota
	TruncateMiddle
)

func (m TruncateMode) String() string {
	switch m {
	case TruncateEnd:
		return "end"
	case TruncateMiddle:
		return "middle"
	default:
		return "?"
	}
}

// Ellipsis is inserted where a string was shortened.
const Ellipsis = "…"

// Truncate shortens s so it measures at most width pixels in f, replacing
// removed runes with an ellipsis. It returns s unchanged when it already fits
// and "" when not even the ellipsis fits.
func Truncate(e Engine, s string, mode TruncateMode, width float64, f Font) string {
	if e == nil || e.StringWidth(s, f) <= width {
		return s
	}
	if e.StringWidth(Ellipsis, f) > width {
		return ""
	}

	runes := []rune(s)
	build := func(keep int) string {
		switch mode {
		case TruncateMiddle:
			head := (keep + 1) / 2
			tail := keep / 2
			return string(runes[:head]) + Ellipsis + string(runes[len(runes)-tail:])
		default:
			return string(runes[:keep]) + Ellipsis
		}
	}

	// Largest number of kept runes that still fits.
	lo, hi := 0, len(runes)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if e.StringWidth(build(mid), f) <= width {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return build(lo)
}

// Nop measures every string as zero width and derives metrics from the font
// size alone. Decorators fall back to it when no engine is attached.
type Nop struct{}

func (Nop) StringWidth(string, Font) float64 { return 0 }

func (Nop) Metrics(f Font) Metrics {
	return Metrics{
		Ascent:  math.Ceil(f.Size * 0.8),
		Descent: math.Ceil(f.Size * 0.2),
	}
}

// Fixed is a monospace engine: every rune advances CharWidth pixels.
// Ascent and Descent are returned as-is regardless of the font.
type Fixed struct {
	CharWidth float64
	Ascent    float64
	Descent   float64
}

func (e Fixed) StringWidth(s string, _ Font) float64 {
	return float64(utf8.RuneCountInString(s)) * e.CharWidth
}

func (e Fixed) Metrics(Font) Metrics {
	return Metrics{Ascent: e.Ascent, Descent: e.Descent}
}
