package geom

import (
	"fmt"
	"math"
)

// Point is a position in screen coordinates.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect is an edge-based rectangle. Both edges are inclusive, so a rect with
// Left == Right covers a single pixel column and Width() reports 0.
// A rect whose right edge is left of its left edge (or bottom above top)
// is invalid: it is neither drawn nor hit-testable.
type Rect struct {
	Left   float64 `json:"left" yaml:"left"`
	Top    float64 `json:"top" yaml:"top"`
	Right  float64 `json:"right" yaml:"right"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
}

// Invalid is the canonical empty rect.
var Invalid = Rect{Left: 0, Top: 0, Right: -1, Bottom: -1}

// R is shorthand for Rect{left, top, right, bottom}.
func R(left, top, right, bottom float64) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// FromXYWH builds a rect covering width x height pixels at x,y.
func FromXYWH(x, y, width, height int) Rect {
	return Rect{
		Left:   float64(x),
		Top:    float64(y),
		Right:  float64(x + width - 1),
		Bottom: float64(y + height - 1),
	}
}

// XYWH returns the pixel position and pixel extent covered by r.
// Invalid rects report a zero size.
func (r Rect) XYWH() (x, y, width, height int) {
	if !r.IsValid() {
		return 0, 0, 0, 0
	}
	x = int(math.Floor(r.Left))
	y = int(math.Floor(r.Top))
	width = int(math.Floor(r.Right)) - x + 1
	height = int(math.Floor(r.Bottom)) - y + 1
	return x, y, width, height
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// IsValid reports whether r covers at least one pixel.
func (r Rect) IsValid() bool {
	return r.Left <= r.Right && r.Top <= r.Bottom
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return r.IsValid() &&
		p.X >= r.Left && p.X <= r.Right &&
		p.Y >= r.Top && p.Y <= r.Bottom
}

// ContainsRect reports whether o lies completely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.IsValid() && o.IsValid() &&
		o.Left >= r.Left && o.Right <= r.Right &&
		o.Top >= r.Top && o.Bottom <= r.Bottom
}

// Intersects reports whether r and o share at least one pixel.
func (r Rect) Intersects(o Rect) bool {
	if !r.IsValid() || !o.IsValid() {
		return false
	}
	return r.Left <= o.Right && o.Left <= r.Right &&
		r.Top <= o.Bottom && o.Top <= r.Bottom
}

// Union returns the smallest rect containing r and o. An invalid operand
// is ignored.
func (r Rect) Union(o Rect) Rect {
	if !r.IsValid() {
		return o
	}
	if !o.IsValid() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, o.Left),
		Top:    math.Min(r.Top, o.Top),
		Right:  math.Max(r.Right, o.Right),
		Bottom: math.Max(r.Bottom, o.Bottom),
	}
}

// Intersect returns the overlap of r and o, or Invalid.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, o.Left),
		Top:    math.Max(r.Top, o.Top),
		Right:  math.Min(r.Right, o.Right),
		Bottom: math.Min(r.Bottom, o.Bottom),
	}
	if !out.IsValid() {
		return Invalid
	}
	return out
}

// OffsetBy translates r.
func (r Rect) OffsetBy(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// InsetBy shrinks r by dx on the left and right and dy on the top and bottom.
// Negative values grow it.
func (r Rect) InsetBy(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right - dx,
		Bottom: r.Bottom - dy,
	}
}

func (r Rect) LeftTop() Point     { return Point{X: r.Left, Y: r.Top} }
func (r Rect) RightBottom() Point { return Point{X: r.Right, Y: r.Bottom} }

func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g,%g,%g)", r.Left, r.Top, r.Right, r.Bottom)
}
