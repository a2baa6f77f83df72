package geom

// Region is a union of rectangles. The zero value is an empty region.
//
// Rects already covered by the region are not added again, and rects
// swallowed by a newly included one are dropped, so the stored list stays
// small for the typical border/tab-strip footprint.
type Region struct {
	rects []Rect
}

// NewRegion returns a region covering the given rects.
func NewRegion(rects ...Rect) Region {
	var r Region
	for _, rect := range rects {
		r.Include(rect)
	}
	return r
}

// Include adds rect to the region. Invalid rects are ignored.
func (g *Region) Include(rect Rect) {
	if g == nil || !rect.IsValid() {
		return
	}
	for _, existing := range g.rects {
		if existing.ContainsRect(rect) {
			return
		}
	}
	kept := g.rects[:0]
	for _, existing := range g.rects {
		if !rect.ContainsRect(existing) {
			kept = append(kept, existing)
		}
	}
	g.rects = append(kept, rect)
}

// IncludeRegion adds every rect of o.
func (g *Region) IncludeRegion(o Region) {
	if g == nil {
		return
	}
	for _, rect := range o.rects {
		g.Include(rect)
	}
}

// MakeEmpty removes all rects.
func (g *Region) MakeEmpty() {
	g.rects = nil
}

// IsEmpty reports whether the region covers nothing.
func (g Region) IsEmpty() bool {
	return len(g.rects) == 0
}

// Contains reports whether p lies inside any rect of the region.
func (g Region) Contains(p Point) bool {
	for _, rect := range g.rects {
		if rect.Contains(p) {
			return true
		}
	}
	return false
}

// Intersects reports whether any rect of the region overlaps rect.
func (g Region) Intersects(rect Rect) bool {
	for _, r := range g.rects {
		if r.Intersects(rect) {
			return true
		}
	}
	return false
}

// Frame returns the bounding rect of the region, or Invalid when empty.
func (g Region) Frame() Rect {
	frame := Invalid
	for _, rect := range g.rects {
		frame = frame.Union(rect)
	}
	return frame
}

// OffsetBy translates every rect of the region.
func (g *Region) OffsetBy(dx, dy float64) {
	for i := range g.rects {
		g.rects[i] = g.rects[i].OffsetBy(dx, dy)
	}
}

// Rects returns a copy of the rects making up the region.
func (g Region) Rects() []Rect {
	out := make([]Rect, len(g.rects))
	copy(out, g.rects)
	return out
}

// Clone returns an independent copy of the region.
func (g Region) Clone() Region {
	return Region{rects: g.Rects()}
}

// Equal reports whether both regions hold the same rects in the same order.
func (g Region) Equal(o Region) bool {
	if len(g.rects) != len(o.rects) {
		return false
	}
	for i := range g.rects {
		if g.rects[i] != o.rects[i] {
			return false
		}
	}
	return true
}
