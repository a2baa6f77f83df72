package decorator

import (
	"math"
	"unicode/utf8"

	"github.com/1broseidon/tabframe/internal/drawing"
	"github.com/1broseidon/tabframe/internal/geom"
)

const (
	// borderResizeLength is how far the resize-sensitive corner reaches
	// along the right and bottom borders.
	borderResizeLength = 22.0
	// resizeKnobSize is the edge of the document-look resize knob.
	resizeKnobSize = 18.0

	minTextOffset    = 5.0
	smallTextOffset  = 10.0
	normalTextOffset = 18.0

	// Stacked tabs narrower than this lose the end of their title rather
	// than the middle.
	endTruncateBelow = 100.0
)

// tabStyle lays out a frame with a tab strip on top (or on the left for the
// left-titled look) and beveled borders around the client area.
type tabStyle struct {
	d *Decorator

	bw float64

	leftBorder   geom.Rect
	rightBorder  geom.Rect
	topBorder    geom.Rect
	bottomBorder geom.Rect

	tabsRegion geom.Region

	// oldMovingTab is the slot the dragged tab would snap back to; it is
	// invalid while no drag is in progress.
	oldMovingTab geom.Rect

	font drawing.Font

	focusColors    palette
	nonFocusColors palette

	free []*Tab
}

func newTabStyle(d *Decorator) *tabStyle {
	s := &tabStyle{
		d:            d,
		leftBorder:   geom.Invalid,
		rightBorder:  geom.Invalid,
		topBorder:    geom.Invalid,
		bottomBorder: geom.Invalid,
		oldMovingTab: geom.Invalid,
	}
	s.updateColors()
	s.updateFont()
	s.layout()
	return s
}

func (s *tabStyle) allocateTab() *Tab {
	if len(s.d.tabs) >= s.d.maxTabs {
		return nil
	}
	if n := len(s.free); n > 0 {
		tab := s.free[n-1]
		s.free = s.free[:n-1]
		*tab = *newTab()
		return tab
	}
	return newTab()
}

func (s *tabStyle) releaseTab(t *Tab) {
	s.free = append(s.free, t)
}

func (s *tabStyle) updateColors() {
	c := s.d.appearance.Colors
	s.focusColors = newPalette(c.WindowBorder, c.WindowTab, c.WindowText)
	s.nonFocusColors = newPalette(c.InactiveBorder, c.InactiveTab, c.InactiveText)
}

// updateFont picks the title font for the active look.
func (s *tabStyle) updateFont() {
	a := s.d.appearance
	switch s.d.topLook() {
	case LookFloating:
		s.font = a.PlainFont
	case LookLeftTitled:
		s.font = a.PlainFont
		s.font.Rotation = 90
	default:
		s.font = a.BoldFont
	}
}

func (s *tabStyle) vertical() bool {
	return s.d.topLook() == LookLeftTitled
}

func (s *tabStyle) smallTabs() bool {
	look := s.d.topLook()
	return look == LookFloating || look == LookLeftTitled
}

// stripOrigin is where the first tab starts: the outer edge of the left (or
// top) border.
func (s *tabStyle) stripOrigin() float64 {
	if s.vertical() {
		return s.d.frame.Top - s.bw
	}
	return s.d.frame.Left - s.bw
}

// stripSpan is the room the tabs share, border to border.
func (s *tabStyle) stripSpan() float64 {
	if s.vertical() {
		return math.Max(s.d.frame.Height()+2*s.bw, 0)
	}
	return math.Max(s.d.frame.Width()+2*s.bw, 0)
}

func (s *tabStyle) defaultTextOffset() float64 {
	if s.smallTabs() {
		return smallTextOffset
	}
	return normalTextOffset
}

func (s *tabStyle) layout() {
	d := s.d
	frame := d.frame

	hasTab := false
	switch d.topLook() {
	case LookModal:
		s.bw = 5
	case LookTitled, LookDocument:
		hasTab = true
		s.bw = 5
	case LookFloating, LookLeftTitled:
		hasTab = true
		s.bw = 3
	case LookBordered:
		s.bw = 1
	default:
		s.bw = 0
	}

	if bw := s.bw; bw > 0 {
		s.leftBorder = geom.R(frame.Left-bw, frame.Top, frame.Left-1, frame.Bottom)
		s.rightBorder = geom.R(frame.Right+1, frame.Top, frame.Right+bw, frame.Bottom)
		s.topBorder = geom.R(frame.Left-bw, frame.Top-bw, frame.Right+bw, frame.Top-1)
		s.bottomBorder = geom.R(frame.Left-bw, frame.Bottom+1, frame.Right+bw, frame.Bottom+bw)
		d.borderRect = geom.R(s.topBorder.Left, s.topBorder.Top, s.bottomBorder.Right, s.bottomBorder.Bottom)
	} else {
		s.leftBorder = geom.Invalid
		s.rightBorder = geom.Invalid
		s.topBorder = geom.Invalid
		s.bottomBorder = geom.Invalid
		d.borderRect = frame
	}

	if s.bw > 1 {
		d.resizeRect = geom.R(
			s.bottomBorder.Right-resizeKnobSize, s.bottomBorder.Bottom-resizeKnobSize,
			s.bottomBorder.Right, s.bottomBorder.Bottom)
	} else {
		d.resizeRect = geom.Invalid
	}

	if hasTab {
		s.layoutTabs()
		return
	}

	for _, tab := range d.tabs {
		tab.tabRect = geom.Invalid
		tab.closeRect = geom.Invalid
		tab.zoomRect = geom.Invalid
		tab.minimizeRect = geom.Invalid
		tab.truncatedTitle = ""
		tab.truncatedTitleLength = 0
	}
	s.tabsRegion.MakeEmpty()
	d.titleBar = geom.Invalid
}

// baseTabRect is a tab rect spanning the whole strip, before its length is
// fitted to the title.
func (s *tabStyle) baseTabRect(tab *Tab, m drawing.Metrics) geom.Rect {
	frame := s.d.frame
	bw := s.bw
	var r geom.Rect
	if s.vertical() {
		r = geom.R(frame.Left-bw-math.Ceil(m.Height()+5), frame.Top-bw, frame.Left-bw, frame.Bottom+bw)
	} else {
		r = geom.R(frame.Left-bw, frame.Top-bw-math.Ceil(m.Height()+7), frame.Right+bw, frame.Top-bw)
	}
	if tab.look == LookFloating {
		r = r.InsetBy(0, 2).OffsetBy(0, 2)
	}
	return r
}

// buttonGeometry returns the distance of a button from the tab edges, the
// button edge length and the text inset for a tab of the given rect.
func (s *tabStyle) buttonGeometry(tabRect geom.Rect) (offset, size, inset float64) {
	fontSize := s.font.Size
	if s.smallTabs() {
		offset = math.Floor(fontSize / 2.6)
		inset = math.Floor(fontSize / 5)
	} else {
		offset = math.Floor(fontSize / 2.3)
		inset = math.Floor(fontSize / 6)
	}
	size = thickness(tabRect, s.vertical()) - 2*offset + inset
	return offset, size, inset
}

// layoutTabs sizes and places every tab, then squeezes them if they do not
// fit side by side.
func (s *tabStyle) layoutTabs() {
	d := s.d
	vertical := s.vertical()
	metrics := d.engine.Metrics(s.font)
	textOffset := s.defaultTextOffset()
	span := s.stripSpan()

	var offset, sum float64
	for _, tab := range d.tabs {
		tab.textOffset = textOffset
		rect := s.baseTabRect(tab, metrics)
		s.updateTabSizes(tab, rect)

		size := clamp(span, tab.minTabSize, tab.maxTabSize)
		rect = setStripLength(rect, size, vertical)

		if len(d.tabs) == 1 {
			offset = s.singleTabOffset(tab)
			if tab.tabLocation != 0 {
				if limit := math.Max(span-size, 0); offset > limit {
					offset = math.Floor(limit)
				}
			}
		}
		tab.tabOffset = math.Floor(offset)
		rect = shiftAlong(rect, tab.tabOffset, vertical)
		tab.tabRect = rect

		offset += size
		sum += size
	}

	if len(d.tabs) > 1 && sum > span {
		s.distributeTabSize(sum - span)
	}

	d.titleBar = geom.Invalid
	for _, tab := range d.tabs {
		d.titleBar = d.titleBar.Union(tab.tabRect)
		s.layoutTabItems(tab)
	}
	s.calculateTabsRegion()
	trace.Printf("layout %d tabs, title bar %v", len(d.tabs), d.titleBar)
}

// updateTabSizes computes the smallest and the preferred length of a tab.
func (s *tabStyle) updateTabSizes(tab *Tab, rect geom.Rect) {
	offset, size, inset := s.buttonGeometry(rect)

	tab.minTabSize = inset*2 + tab.textOffset
	if !tab.flags.Has(NotClosable) {
		tab.minTabSize += offset + size
	}
	if !tab.flags.Has(NotZoomable) {
		tab.minTabSize += offset + size
	}

	titleWidth := math.Ceil(s.d.engine.StringWidth(tab.title, s.font))
	tab.maxTabSize = titleWidth
	if titleWidth > 0 {
		tab.maxTabSize += tab.textOffset
	}
	tab.maxTabSize += tab.minTabSize
}

// singleTabOffset converts the normalized location of a lone tab into a
// pixel offset along the strip.
func (s *tabStyle) singleTabOffset(tab *Tab) float64 {
	free := math.Max(s.stripSpan()-tab.maxTabSize, 0)
	// locations are stored as offset/free, so undo the division error
	// before flooring
	return math.Floor(tab.tabLocation*free + 1e-9)
}

// layoutTabItems places the buttons of a tab and fits its title between
// them.
func (s *tabStyle) layoutTabItems(tab *Tab) {
	d := s.d
	rect := tab.tabRect
	tab.minimizeRect = geom.Invalid
	if !rect.IsValid() {
		tab.closeRect = geom.Invalid
		tab.zoomRect = geom.Invalid
		tab.truncatedTitle = ""
		tab.truncatedTitleLength = 0
		return
	}

	vertical := s.vertical()
	offset, size, inset := s.buttonGeometry(rect)
	tab.textOffset = s.defaultTextOffset()

	var close, zoom geom.Rect
	var room float64
	if vertical {
		close = geom.R(rect.Left+offset, rect.Top+offset, rect.Left+offset+size, rect.Top+offset+size)
		zoom = geom.R(rect.Left+offset, rect.Bottom-offset-size, rect.Left+offset+size, rect.Bottom-offset)
		if tab.flags.Has(NotClosable) {
			close.Bottom = close.Top - offset
		}
		if tab.flags.Has(NotZoomable) {
			zoom.Top = zoom.Bottom + offset
		}
		room = zoom.Top - close.Bottom - tab.textOffset*2 + inset
	} else {
		close = geom.R(rect.Left+offset, rect.Top+offset, rect.Left+offset+size, rect.Top+offset+size)
		zoom = geom.R(rect.Right-offset-size, rect.Top+offset, rect.Right-offset, rect.Top+offset+size)
		if tab.flags.Has(NotClosable) {
			close.Right = close.Left - offset
		}
		if tab.flags.Has(NotZoomable) {
			zoom.Left = zoom.Right + offset
		}
		room = zoom.Left - close.Right - tab.textOffset*2 + inset
	}

	stacked := len(d.tabs) > 1
	mode := drawing.TruncateMiddle
	if stacked {
		if !tab.focused {
			zoom = geom.Invalid
			room = stripEnd(rect, vertical) - stripEnd(close, vertical) - tab.textOffset*2 + inset
		}
		if stripLength(rect, vertical) < endTruncateBelow {
			mode = drawing.TruncateEnd
		}
		// stacked titles give up padding before characters
		if titleWidth := d.engine.StringWidth(tab.title, s.font); room < titleWidth {
			old := tab.textOffset
			tab.textOffset = math.Max(tab.textOffset-(titleWidth-room)/2, minTextOffset)
			room += (old - tab.textOffset) * 2
		}
	}
	tab.closeRect = close
	tab.zoomRect = zoom

	tab.truncatedTitle = drawing.Truncate(d.engine, tab.title, mode, room, s.font)
	tab.truncatedTitleLength = utf8.RuneCountInString(tab.truncatedTitle)
}

func (s *tabStyle) calculateTabsRegion() {
	s.tabsRegion.MakeEmpty()
	for _, tab := range s.d.tabs {
		s.tabsRegion.Include(tab.tabRect)
	}
}

func (s *tabStyle) refreshButtonFocus(tab *Tab) {
	tab.buttonFocus = tab.focused ||
		((tab.look == LookFloating || tab.look == LookLeftTitled) && tab.flags.Has(AvoidFocus))
}

func (s *tabStyle) addTab(index int, dirty *geom.Region) bool {
	s.refreshButtonFocus(s.d.tabs[index])
	old := s.d.titleBar
	s.updateFont()
	s.layout()
	if dirty != nil {
		dirty.Include(old)
		dirty.Include(s.d.titleBar)
	}
	return true
}

func (s *tabStyle) removeTab(index int, dirty *geom.Region) bool {
	old := s.d.titleBar
	s.oldMovingTab = geom.Invalid
	s.updateFont()
	s.layout()
	if dirty != nil {
		dirty.Include(old)
		dirty.Include(s.d.titleBar)
	}
	return true
}

func (s *tabStyle) setTitle(tab *Tab, dirty *geom.Region) {
	oldBar := s.d.titleBar
	s.layout()
	if dirty != nil {
		dirty.Include(growTowardClient(oldBar.Union(s.d.titleBar), s.vertical()))
	}
}

func (s *tabStyle) setFocus(tab *Tab) {
	s.refreshButtonFocus(tab)
	if len(s.d.tabs) > 1 {
		s.layoutTabItems(tab)
	}
}

// relayoutWhole recomputes everything and reports the footprint before and
// after as dirty.
func (s *tabStyle) relayoutWhole(dirty *geom.Region, change func()) {
	if dirty != nil {
		dirty.IncludeRegion(s.d.Footprint())
	}
	change()
	s.updateFont()
	s.layout()
	s.d.invalidateFootprint()
	if dirty != nil {
		dirty.IncludeRegion(s.d.Footprint())
	}
}

func (s *tabStyle) topLookChanged() {
	s.oldMovingTab = geom.Invalid
	s.updateFont()
	s.layout()
}

func (s *tabStyle) setLook(tab *Tab, look Look, dirty *geom.Region) {
	s.relayoutWhole(dirty, func() {
		tab.look = look
		s.refreshButtonFocus(tab)
	})
}

func (s *tabStyle) setFlags(tab *Tab, flags Flags, dirty *geom.Region) {
	s.relayoutWhole(dirty, func() {
		tab.flags = flags
		s.refreshButtonFocus(tab)
	})
}

func (s *tabStyle) fontsChanged(a Appearance, dirty *geom.Region) {
	s.relayoutWhole(dirty, func() {
		s.d.appearance = a
		s.updateColors()
	})
}

func (s *tabStyle) moveBy(dx, dy float64) {
	d := s.d
	d.frame = d.frame.OffsetBy(dx, dy)
	d.titleBar = d.titleBar.OffsetBy(dx, dy)
	d.resizeRect = d.resizeRect.OffsetBy(dx, dy)
	d.borderRect = d.borderRect.OffsetBy(dx, dy)

	s.leftBorder = s.leftBorder.OffsetBy(dx, dy)
	s.rightBorder = s.rightBorder.OffsetBy(dx, dy)
	s.topBorder = s.topBorder.OffsetBy(dx, dy)
	s.bottomBorder = s.bottomBorder.OffsetBy(dx, dy)
	s.oldMovingTab = s.oldMovingTab.OffsetBy(dx, dy)

	for _, tab := range d.tabs {
		tab.tabRect = tab.tabRect.OffsetBy(dx, dy)
		tab.closeRect = tab.closeRect.OffsetBy(dx, dy)
		tab.zoomRect = tab.zoomRect.OffsetBy(dx, dy)
		tab.minimizeRect = tab.minimizeRect.OffsetBy(dx, dy)
	}
	s.tabsRegion.OffsetBy(dx, dy)
}

func (s *tabStyle) resizeBy(dx, dy float64, dirty *geom.Region) {
	d := s.d
	d.frame.Right += dx
	d.frame.Bottom += dy

	if top := d.top(); dirty != nil && top != nil && !top.flags.Has(NotResizable) {
		switch top.look {
		case LookDocument:
			dirty.Include(d.resizeRect)
			dirty.Include(d.resizeRect.OffsetBy(dx, dy))
		case LookTitled, LookFloating, LookModal, LookLeftTitled:
			for _, line := range s.resizeLines() {
				dirty.Include(line)
				dirty.Include(line.OffsetBy(dx, dy))
			}
		}
	}

	d.resizeRect = d.resizeRect.OffsetBy(dx, dy)
	d.borderRect.Right += dx
	d.borderRect.Bottom += dy

	if s.bw > 0 {
		old := [4]geom.Rect{s.leftBorder, s.topBorder, s.rightBorder, s.bottomBorder}
		s.leftBorder.Bottom += dy
		s.topBorder.Right += dx
		s.rightBorder = s.rightBorder.OffsetBy(dx, 0)
		s.rightBorder.Bottom += dy
		s.bottomBorder = s.bottomBorder.OffsetBy(0, dy)
		s.bottomBorder.Right += dx
		if dirty != nil {
			s.includeExposedBorders(old, dirty)
		}
	}

	if !d.titleBar.IsValid() {
		return
	}

	if len(d.tabs) > 1 {
		old := d.titleBar
		s.layoutTabs()
		if dirty != nil {
			dirty.Include(old)
			dirty.Include(d.titleBar)
		}
		return
	}

	vertical := s.vertical()
	tab := d.tabs[0]
	old := tab.tabRect

	offset := s.singleTabOffset(tab)
	delta := offset - tab.tabOffset
	tab.tabOffset = offset

	rect := shiftAlong(old, delta, vertical)
	size := clamp(s.stripSpan(), tab.minTabSize, tab.maxTabSize)
	if size != stripLength(rect, vertical) {
		rect = setStripLength(rect, size, vertical)
	}
	tab.tabRect = rect

	if rect != old {
		s.layoutTabItems(tab)
		if dirty != nil {
			redraw := rect
			if delta != 0 {
				redraw = growTowardClient(redraw.Union(old), vertical)
			}
			dirty.Include(redraw)
		}
	}

	d.titleBar = rect
	s.tabsRegion = geom.NewRegion(rect)
}

// resizeLines are the short lines marking the resize corner on the bottom
// and right borders.
func (s *tabStyle) resizeLines() [2]geom.Rect {
	return [2]geom.Rect{
		geom.R(
			s.rightBorder.Right-borderResizeLength, s.bottomBorder.Top,
			s.rightBorder.Right-borderResizeLength, s.bottomBorder.Bottom-1),
		geom.R(
			s.rightBorder.Left, s.bottomBorder.Bottom-borderResizeLength,
			s.rightBorder.Right-1, s.bottomBorder.Bottom-borderResizeLength),
	}
}

// includeExposedBorders reports the border area a resize moved over:
// the right and bottom borders at both positions and the stretched or
// shortened tails of the other two.
func (s *tabStyle) includeExposedBorders(old [4]geom.Rect, dirty *geom.Region) {
	left, top, right, bottom := old[0], old[1], old[2], old[3]
	bw := s.bw

	if right != s.rightBorder {
		dirty.Include(right)
		dirty.Include(s.rightBorder)
		dirty.Include(geom.R(
			math.Min(top.Right, s.topBorder.Right)-bw, s.topBorder.Top,
			math.Max(top.Right, s.topBorder.Right), s.topBorder.Bottom))
	}
	if bottom != s.bottomBorder {
		dirty.Include(bottom)
		dirty.Include(s.bottomBorder)
		dirty.Include(geom.R(
			s.leftBorder.Left, math.Min(left.Bottom, s.leftBorder.Bottom)-bw,
			s.leftBorder.Right, math.Max(left.Bottom, s.leftBorder.Bottom)))
	}
}

func (s *tabStyle) setTabLocation(tab *Tab, location float64, shifting bool, dirty *geom.Region) bool {
	d := s.d
	vertical := s.vertical()

	if len(d.tabs) > 1 {
		if !shifting {
			old := d.titleBar
			s.layoutTabs()
			s.oldMovingTab = geom.Invalid
			if dirty != nil {
				dirty.Include(old)
				dirty.Include(d.titleBar)
			}
			return true
		}
		if !s.oldMovingTab.IsValid() {
			s.oldMovingTab = tab.tabRect
		}
	}

	rect := tab.tabRect
	if !rect.IsValid() {
		return false
	}

	maxLocation := s.stripSpan() - stripLength(rect, vertical)
	if len(d.tabs) > 1 {
		maxLocation = stripEnd(d.titleBar, vertical) - s.stripOrigin() - stripLength(rect, vertical)
	}
	location = clamp(location, 0, math.Max(maxLocation, 0))

	delta := math.Floor(location - tab.tabOffset)
	if delta == 0 {
		return false
	}

	if dirty != nil {
		dirty.Include(growTowardClient(rect, vertical))
	}
	rect = shiftAlong(rect, delta, vertical)
	tab.tabRect = rect
	tab.tabOffset = math.Floor(location)
	s.layoutTabItems(tab)

	if maxLocation > 0 {
		tab.tabLocation = tab.tabOffset / maxLocation
	} else {
		tab.tabLocation = 0
	}

	if len(d.tabs) == 1 {
		d.titleBar = rect
	}
	s.calculateTabsRegion()
	if dirty != nil {
		dirty.Include(growTowardClient(rect, vertical))
	}
	return true
}

func (s *tabStyle) tabLocation(tab *Tab) float64 {
	return tab.tabOffset
}

func (s *tabStyle) moveTab(from, to int, interactive bool, dirty *geom.Region) bool {
	d := s.d
	if !interactive {
		old := d.titleBar
		s.layoutTabs()
		s.oldMovingTab = geom.Invalid
		if dirty != nil {
			dirty.Include(old)
			dirty.Include(d.titleBar)
		}
		return true
	}

	vertical := s.vertical()
	moving := d.tabs[to]
	dragging := s.oldMovingTab.IsValid()
	if !dragging {
		s.oldMovingTab = moving.tabRect
	}
	movingLength := stripLength(s.oldMovingTab, vertical)

	// the tabs the moving one passed over now sit in front of or behind it
	var passed []*Tab
	if from < to {
		passed = d.tabs[from:to]
	} else {
		passed = d.tabs[to+1 : from+1]
	}
	for _, tab := range passed {
		length := stripLength(tab.tabRect, vertical)
		if from < to {
			s.oldMovingTab = shiftAlong(s.oldMovingTab, length, vertical)
			tab.tabRect = shiftAlong(tab.tabRect, -movingLength, vertical)
		} else {
			s.oldMovingTab = shiftAlong(s.oldMovingTab, -length, vertical)
			tab.tabRect = shiftAlong(tab.tabRect, movingLength, vertical)
		}
		tab.tabOffset = math.Floor(stripStart(tab.tabRect, vertical) - s.stripOrigin())
		s.layoutTabItems(tab)
	}

	if !dragging {
		moving.tabRect = s.oldMovingTab
		moving.tabOffset = math.Floor(stripStart(moving.tabRect, vertical) - s.stripOrigin())
		s.layoutTabItems(moving)
	}

	s.calculateTabsRegion()
	if dirty != nil {
		dirty.Include(growTowardClient(d.titleBar, vertical))
	}
	return true
}

func (s *tabStyle) regionAt(p geom.Point) (Region, int) {
	d := s.d
	if r, i := d.tabRegionAt(p); r != RegionNone {
		return r, i
	}

	top := d.top()
	if top == nil {
		return RegionNone, -1
	}
	if top.look == LookDocument && d.resizeRect.Contains(p) {
		return RegionRightBottomCorner, -1
	}
	if s.leftBorder.Contains(p) {
		return RegionLeftBorder, -1
	}
	if s.topBorder.Contains(p) {
		return RegionTopBorder, -1
	}

	region := RegionNone
	switch {
	case s.rightBorder.Contains(p):
		region = RegionRightBorder
	case s.bottomBorder.Contains(p):
		region = RegionBottomBorder
	default:
		return RegionNone, -1
	}

	switch top.look {
	case LookTitled, LookFloating, LookModal, LookLeftTitled:
		if top.flags.Has(NotResizable) {
			break
		}
		corner := geom.R(
			s.bottomBorder.Right-borderResizeLength, s.bottomBorder.Bottom-borderResizeLength,
			s.bottomBorder.Right, s.bottomBorder.Bottom)
		if corner.Contains(p) {
			return RegionRightBottomCorner, -1
		}
	}
	return region, -1
}

func (s *tabStyle) footprint(out *geom.Region) {
	out.MakeEmpty()
	look := s.d.topLook()
	if look == LookNoBorder {
		return
	}

	out.Include(s.leftBorder)
	out.Include(s.rightBorder)
	out.Include(s.topBorder)
	out.Include(s.bottomBorder)
	if look == LookBordered {
		return
	}

	out.IncludeRegion(s.tabsRegion)

	if look == LookDocument {
		frame := s.d.frame
		knob := resizeKnobSize - s.bw
		out.Include(geom.R(frame.Right-knob, frame.Bottom-knob, frame.Right, frame.Bottom))
	}
}

func (s *tabStyle) extendDirtyRegion(r Region, dirty *geom.Region) {
	d := s.d
	switch r {
	case RegionTab:
		dirty.Include(d.titleBar)

	case RegionCloseButton:
		if !d.topFlags().Has(NotClosable) {
			for _, tab := range d.tabs {
				dirty.Include(tab.closeRect)
			}
		}

	case RegionZoomButton:
		if !d.topFlags().Has(NotZoomable) {
			for _, tab := range d.tabs {
				dirty.Include(tab.zoomRect)
			}
		}

	case RegionMinimizeButton:
		if !d.topFlags().Has(NotMinimizable) {
			for _, tab := range d.tabs {
				dirty.Include(tab.minimizeRect)
			}
		}

	case RegionLeftBorder, RegionRightBorder:
		border := s.leftBorder
		if r == RegionRightBorder {
			border = s.rightBorder
		}
		if border.IsValid() {
			// the vertical borders are drawn across the horizontal ones
			border.Top = s.topBorder.Top
			border.Bottom = s.bottomBorder.Bottom
			dirty.Include(border)
		}

	case RegionTopBorder:
		dirty.Include(s.topBorder)

	case RegionBottomBorder:
		dirty.Include(s.bottomBorder)

	case RegionRightBottomCorner:
		if !d.topFlags().Has(NotResizable) {
			dirty.Include(d.resizeRect)
		}
	}
}

func (s *tabStyle) setRegionHighlight(r Region, level uint8, tab *Tab) {
	if tab != nil {
		tab.highlighted = level != HighlightNone
	}
}

func (s *tabStyle) settings() (Settings, bool) {
	d := s.d
	if !d.titleBar.IsValid() {
		return Settings{}, false
	}
	frame := d.titleBar
	bw := s.bw
	locations := make([]float64, len(d.tabs))
	for i, tab := range d.tabs {
		locations[i] = tab.tabOffset
	}
	return Settings{TabFrame: &frame, BorderWidth: &bw, TabLocations: locations}, true
}

func (s *tabStyle) setSettings(in Settings, dirty *geom.Region) bool {
	for i, tab := range s.d.tabs {
		s.setTabLocation(tab, in.TabLocations[i], false, dirty)
	}
	return true
}

func (s *tabStyle) sizeLimits(l Limits) Limits {
	d := s.d
	if d.titleBar.IsValid() && len(d.tabs) > 0 {
		minWidth := d.tabs[0].minTabSize - 2*s.bw
		l.MinWidth = int(math.Round(math.Max(float64(l.MinWidth), minWidth)))
	}
	if d.resizeRect.IsValid() {
		minHeight := d.resizeRect.Height() - s.bw
		l.MinHeight = int(math.Round(math.Max(float64(l.MinHeight), minHeight)))
	}
	if l.MaxWidth > 0 && l.MaxWidth < l.MinWidth {
		l.MaxWidth = l.MinWidth
	}
	if l.MaxHeight > 0 && l.MaxHeight < l.MinHeight {
		l.MaxHeight = l.MinHeight
	}
	return l
}

func (s *tabStyle) borderWidth() float64 { return s.bw }

func (s *tabStyle) tabHeight() float64 {
	if s.d.titleBar.IsValid() {
		return thickness(s.d.titleBar, s.vertical())
	}
	return s.bw
}

func (s *tabStyle) componentColors(c Component, highlight uint8, tab *Tab) ComponentColors {
	if tab != nil && tab.buttonFocus {
		return s.focusColors.componentColors(c, highlight)
	}
	return s.nonFocusColors.componentColors(c, highlight)
}
