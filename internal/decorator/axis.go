package decorator

import "github.com/1broseidon/tabframe/internal/geom"

// The tab strip runs along x for top-titled looks and along y for the
// left-titled look. These helpers read and write a rect along that axis.

func stripStart(r geom.Rect, vertical bool) float64 {
	if vertical {
		return r.Top
	}
	return r.Left
}

func stripEnd(r geom.Rect, vertical bool) float64 {
	if vertical {
		return r.Bottom
	}
	return r.Right
}

func stripLength(r geom.Rect, vertical bool) float64 {
	if vertical {
		return r.Height()
	}
	return r.Width()
}

func setStripEnd(r geom.Rect, end float64, vertical bool) geom.Rect {
	if vertical {
		r.Bottom = end
	} else {
		r.Right = end
	}
	return r
}

func setStripLength(r geom.Rect, length float64, vertical bool) geom.Rect {
	return setStripEnd(r, stripStart(r, vertical)+length, vertical)
}

func shiftAlong(r geom.Rect, delta float64, vertical bool) geom.Rect {
	if vertical {
		return r.OffsetBy(0, delta)
	}
	return r.OffsetBy(delta, 0)
}

// thickness is the extent of a strip rect across the axis.
func thickness(r geom.Rect, vertical bool) float64 {
	if vertical {
		return r.Width()
	}
	return r.Height()
}

// growTowardClient extends a tab rect by the one pixel row (or column) it
// shares with the border below it.
func growTowardClient(r geom.Rect, vertical bool) geom.Rect {
	if vertical {
		r.Right++
	} else {
		r.Bottom++
	}
	return r
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
