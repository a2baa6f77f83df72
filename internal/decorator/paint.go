package decorator

import (
	"github.com/1broseidon/tabframe/internal/drawing"
	"github.com/1broseidon/tabframe/internal/geom"
)

// DrawOp is one component a drawing backend has to render. Ops are ordered
// back to front.
type DrawOp struct {
	Component Component
	// Tab is the tab index for tab and button ops, -1 for frame parts.
	Tab       int
	Rect      geom.Rect
	Colors    ComponentColors
	Highlight uint8

	// Tab ops only.
	Title      string
	TextOffset float64
	Font       drawing.Font

	// Button ops only.
	Pressed bool
}

func (s *tabStyle) paint(invalid geom.Rect) []DrawOp {
	d := s.d
	if d.topLook() == LookNoBorder {
		return nil
	}

	var ops []DrawOp
	top := d.top()
	frameParts := []struct {
		component Component
		region    Region
		rect      geom.Rect
	}{
		{ComponentLeftBorder, RegionLeftBorder, s.leftBorder},
		{ComponentTopBorder, RegionTopBorder, s.topBorder},
		{ComponentRightBorder, RegionRightBorder, s.rightBorder},
		{ComponentBottomBorder, RegionBottomBorder, s.bottomBorder},
	}
	for _, part := range frameParts {
		if !part.rect.Intersects(invalid) {
			continue
		}
		highlight := d.RegionHighlight(part.region)
		ops = append(ops, DrawOp{
			Component: part.component,
			Tab:       -1,
			Rect:      part.rect,
			Colors:    s.componentColors(part.component, highlight, top),
			Highlight: highlight,
		})
	}

	if top.look == LookDocument && !top.flags.Has(NotResizable) && d.resizeRect.Intersects(invalid) {
		highlight := d.RegionHighlight(RegionRightBottomCorner)
		ops = append(ops, DrawOp{
			Component: ComponentResizeCorner,
			Tab:       -1,
			Rect:      d.resizeRect,
			Colors:    s.componentColors(ComponentResizeCorner, highlight, top),
			Highlight: highlight,
		})
	}

	for i, tab := range d.tabs {
		if !tab.tabRect.Intersects(invalid) {
			continue
		}
		var highlight uint8
		if tab.highlighted {
			highlight = d.RegionHighlight(RegionTab)
		}
		ops = append(ops, DrawOp{
			Component:  ComponentTab,
			Tab:        i,
			Rect:       tab.tabRect,
			Colors:     s.componentColors(ComponentTab, highlight, tab),
			Highlight:  highlight,
			Title:      tab.truncatedTitle,
			TextOffset: tab.textOffset,
			Font:       s.font,
		})

		buttons := []struct {
			component Component
			region    Region
		}{
			{ComponentCloseButton, RegionCloseButton},
			{ComponentZoomButton, RegionZoomButton},
		}
		for _, b := range buttons {
			rect := tab.buttonRect(b.region)
			if !buttonEnabled(b.region, tab.flags) || !rect.Intersects(invalid) {
				continue
			}
			var highlight uint8
			if tab.highlighted {
				highlight = d.RegionHighlight(b.region)
			}
			ops = append(ops, DrawOp{
				Component: b.component,
				Tab:       i,
				Rect:      rect,
				Colors:    s.componentColors(b.component, highlight, tab),
				Highlight: highlight,
				Pressed:   tab.Pressed(b.region),
			})
		}
	}
	return ops
}
