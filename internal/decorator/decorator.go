// Package decorator computes the geometry of window decorations: borders,
// the tab strip shared by stacked windows, title buttons and the resize
// handle. It answers hit-testing and footprint queries and reports the area
// each mutation invalidates.
//
// A Decorator is not safe for concurrent use. The caller owns the window the
// decoration belongs to and must serialize every call, typically by holding
// that window's lock.
package decorator

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/1broseidon/tabframe/internal/drawing"
	"github.com/1broseidon/tabframe/internal/geom"
)

var (
	// ErrAllocation is returned when no new tab record can be created.
	ErrAllocation = errors.New("decorator: cannot allocate tab")
	// ErrIndexOutOfRange is returned for a tab index outside the tab list.
	ErrIndexOutOfRange = errors.New("decorator: tab index out of range")
)

// DefaultMaxTabs is the tab capacity used when Options.MaxTabs is unset.
const DefaultMaxTabs = 32

var trace = log.New(io.Discard, "decorator: ", log.Lmicroseconds)

// SetTraceOutput enables layout tracing to w. Pass io.Discard to disable.
func SetTraceOutput(w io.Writer) {
	trace.SetOutput(w)
}

// Options configures a new Decorator.
type Options struct {
	Appearance Appearance
	// Engine measures titles. It is borrowed and must outlive the Decorator.
	Engine drawing.Engine
	// MaxTabs caps the number of stacked tabs; AddTab fails with
	// ErrAllocation beyond it.
	MaxTabs int
}

// Limits are window size constraints a decoration may tighten.
type Limits struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int
}

// Decorator is the decoration of one frame holding one or more stacked tabs.
type Decorator struct {
	style style

	engine     drawing.Engine
	appearance Appearance
	maxTabs    int

	frame      geom.Rect
	titleBar   geom.Rect
	resizeRect geom.Rect
	borderRect geom.Rect

	tabs   []*Tab
	topTab int

	footprint      geom.Region
	footprintValid bool

	highlights [regionCount - 1]uint8
}

// New creates a tab decorator around the client frame rect.
func New(frame geom.Rect, opts Options) *Decorator {
	if opts.MaxTabs <= 0 {
		opts.MaxTabs = DefaultMaxTabs
	}
	d := &Decorator{
		appearance: opts.Appearance,
		maxTabs:    opts.MaxTabs,
		frame:      frame,
		titleBar:   geom.Invalid,
		resizeRect: geom.Invalid,
		borderRect: geom.Invalid,
		topTab:     -1,
	}
	d.SetDrawingEngine(opts.Engine)
	d.style = newTabStyle(d)
	trace.Printf("new decorator, frame %v", frame)
	return d
}

// SetDrawingEngine replaces the measuring engine. A nil engine measures all
// titles as empty.
func (d *Decorator) SetDrawingEngine(e drawing.Engine) {
	if e == nil {
		e = drawing.Nop{}
	}
	d.engine = e
}

// DrawingEngine returns the engine titles are measured with.
func (d *Decorator) DrawingEngine() drawing.Engine { return d.engine }

// Appearance returns the fonts and colors in use.
func (d *Decorator) Appearance() Appearance { return d.appearance }

// AddTab inserts a tab at index, or appends it when index is -1, and lays out
// the frame again. The new title bar is added to dirty.
func (d *Decorator) AddTab(title string, look Look, flags Flags, index int, dirty *geom.Region) (*Tab, error) {
	if index == -1 {
		index = len(d.tabs)
	}
	if index < 0 || index > len(d.tabs) {
		return nil, fmt.Errorf("add tab at %d of %d: %w", index, len(d.tabs), ErrIndexOutOfRange)
	}

	tab := d.style.allocateTab()
	if tab == nil {
		return nil, fmt.Errorf("add tab %q: %w", title, ErrAllocation)
	}
	tab.title = title
	tab.look = look
	tab.flags = normalizeResizeFlags(flags)

	d.tabs = append(d.tabs, nil)
	copy(d.tabs[index+1:], d.tabs[index:])
	d.tabs[index] = tab

	switch {
	case d.topTab < 0:
		d.topTab = index
	case index <= d.topTab:
		d.topTab++
	}

	if !d.style.addTab(index, dirty) {
		d.tabs = append(d.tabs[:index], d.tabs[index+1:]...)
		if d.topTab == index && len(d.tabs) == 0 {
			d.topTab = -1
		} else if index < d.topTab {
			d.topTab--
		}
		d.style.releaseTab(tab)
		return nil, fmt.Errorf("add tab %q: %w", title, ErrAllocation)
	}

	d.invalidateFootprint()
	return tab, nil
}

// RemoveTab drops the tab at index and lays out the remaining tabs. It
// returns false when index is out of range.
func (d *Decorator) RemoveTab(index int, dirty *geom.Region) bool {
	tab := d.TabAt(index)
	if tab == nil {
		return false
	}

	d.tabs = append(d.tabs[:index], d.tabs[index+1:]...)
	switch {
	case len(d.tabs) == 0:
		d.topTab = -1
	case index < d.topTab:
		d.topTab--
	case d.topTab >= len(d.tabs):
		d.topTab = len(d.tabs) - 1
	}

	d.style.removeTab(index, dirty)
	d.style.releaseTab(tab)
	d.invalidateFootprint()
	return true
}

// MoveTab moves the tab at from to index to. An interactive move is a step
// of a live drag; otherwise the strip is laid out from scratch.
func (d *Decorator) MoveTab(from, to int, interactive bool, dirty *geom.Region) bool {
	if d.TabAt(from) == nil || d.TabAt(to) == nil {
		return false
	}
	if from == to {
		return true
	}

	tab := d.tabs[from]
	if from < to {
		copy(d.tabs[from:to], d.tabs[from+1:to+1])
	} else {
		copy(d.tabs[to+1:from+1], d.tabs[to:from])
	}
	d.tabs[to] = tab

	switch {
	case d.topTab == from:
		d.topTab = to
	case from < d.topTab && d.topTab <= to:
		d.topTab--
	case to <= d.topTab && d.topTab < from:
		d.topTab++
	}

	if !d.style.moveTab(from, to, interactive, dirty) {
		return false
	}
	d.invalidateFootprint()
	return true
}

// TabIndexAt returns the index of the tab whose strip segment contains p, or
// -1.
func (d *Decorator) TabIndexAt(p geom.Point) int {
	for i, tab := range d.tabs {
		if tab.tabRect.Contains(p) {
			return i
		}
	}
	return -1
}

// TabAt returns the tab at index, or nil.
func (d *Decorator) TabAt(index int) *Tab {
	if index < 0 || index >= len(d.tabs) {
		return nil
	}
	return d.tabs[index]
}

// CountTabs returns the number of tabs in the frame.
func (d *Decorator) CountTabs() int { return len(d.tabs) }

// IndexOf returns the index of tab, or -1 when it does not belong here.
func (d *Decorator) IndexOf(tab *Tab) int {
	for i, t := range d.tabs {
		if t == tab {
			return i
		}
	}
	return -1
}

// SetTopTab marks the tab whose look and flags govern the shared frame. The
// frame is laid out again when the governing look changes.
func (d *Decorator) SetTopTab(index int) bool {
	if d.TabAt(index) == nil {
		return false
	}
	old := d.topLook()
	d.topTab = index
	if d.topLook() != old {
		d.style.topLookChanged()
	}
	d.invalidateFootprint()
	return true
}

// TopTab returns the index of the active tab, or -1 without tabs.
func (d *Decorator) TopTab() int { return d.topTab }

func (d *Decorator) top() *Tab {
	return d.TabAt(d.topTab)
}

// topLook is the look of the active tab; a frame without tabs has no
// decoration at all.
func (d *Decorator) topLook() Look {
	if t := d.top(); t != nil {
		return t.look
	}
	return LookNoBorder
}

func (d *Decorator) topFlags() Flags {
	if t := d.top(); t != nil {
		return t.flags
	}
	return 0
}

// FontsChanged switches to new fonts and colors and lays out again.
func (d *Decorator) FontsChanged(a Appearance, dirty *geom.Region) {
	d.style.fontsChanged(a, dirty)
	d.invalidateFootprint()
}

// SetLook changes the look of a tab.
func (d *Decorator) SetLook(index int, look Look, dirty *geom.Region) bool {
	tab := d.TabAt(index)
	if tab == nil {
		return false
	}
	d.style.setLook(tab, look, dirty)
	d.invalidateFootprint()
	return true
}

// SetFlags changes the flags of a tab.
func (d *Decorator) SetFlags(index int, flags Flags, dirty *geom.Region) bool {
	tab := d.TabAt(index)
	if tab == nil {
		return false
	}
	d.style.setFlags(tab, normalizeResizeFlags(flags), dirty)
	d.invalidateFootprint()
	return true
}

// SetTitle changes the title of a tab.
func (d *Decorator) SetTitle(index int, title string, dirty *geom.Region) bool {
	tab := d.TabAt(index)
	if tab == nil {
		return false
	}
	tab.title = title
	d.style.setTitle(tab, dirty)
	d.invalidateFootprint()
	return true
}

// SetFocus marks a tab focused or unfocused.
func (d *Decorator) SetFocus(index int, focused bool) bool {
	tab := d.TabAt(index)
	if tab == nil {
		return false
	}
	tab.focused = focused
	d.style.setFocus(tab)
	return true
}

// IsFocus reports whether the tab at index is focused.
func (d *Decorator) IsFocus(index int) bool {
	tab := d.TabAt(index)
	return tab != nil && tab.focused
}

// SetTabLocation moves one tab along the strip to the given pixel offset.
// It returns false when the index is out of range or the location is out of
// bounds or unchanged.
func (d *Decorator) SetTabLocation(index int, location float64, shifting bool, dirty *geom.Region) bool {
	tab := d.TabAt(index)
	if tab == nil {
		return false
	}
	if !d.style.setTabLocation(tab, location, shifting, dirty) {
		return false
	}
	d.invalidateFootprint()
	return true
}

// TabLocation returns the pixel offset of the tab along the strip.
func (d *Decorator) TabLocation(index int) float64 {
	tab := d.TabAt(index)
	if tab == nil {
		return 0
	}
	return d.style.tabLocation(tab)
}

// RegionAt classifies p. The returned index names the tab for tab and button
// regions and is -1 otherwise.
func (d *Decorator) RegionAt(p geom.Point) (Region, int) {
	return d.style.regionAt(p)
}

// tabRegionAt hit-tests the buttons and strip segments of every tab.
func (d *Decorator) tabRegionAt(p geom.Point) (Region, int) {
	for i, tab := range d.tabs {
		if tab.closeRect.Contains(p) {
			return RegionCloseButton, i
		}
		if tab.zoomRect.Contains(p) {
			return RegionZoomButton, i
		}
		if tab.minimizeRect.Contains(p) {
			return RegionMinimizeButton, i
		}
		if tab.tabRect.Contains(p) {
			return RegionTab, i
		}
	}
	return RegionNone, -1
}

// Footprint returns the area covered by the decoration. The result is cached
// until the next geometry change.
func (d *Decorator) Footprint() geom.Region {
	if !d.footprintValid {
		d.style.footprint(&d.footprint)
		d.footprintValid = true
	}
	return d.footprint.Clone()
}

func (d *Decorator) invalidateFootprint() {
	d.footprintValid = false
}

// MoveBy translates the whole decoration.
func (d *Decorator) MoveBy(dx, dy float64) {
	if d.footprintValid {
		d.footprint.OffsetBy(dx, dy)
	}
	d.style.moveBy(dx, dy)
}

// ResizeBy grows the client frame by dx, dy (negative values shrink it) and
// recomputes every dependent rect.
func (d *Decorator) ResizeBy(dx, dy float64, dirty *geom.Region) {
	d.style.resizeBy(dx, dy, dirty)
	d.invalidateFootprint()
}

// SetRegionHighlight sets the feedback level of a region kind. tab, when
// valid, gets its highlighted flag updated as well. It returns false for
// kinds that cannot be highlighted.
func (d *Decorator) SetRegionHighlight(r Region, level uint8, dirty *geom.Region, tab int) bool {
	i, ok := highlightIndex(r)
	if !ok {
		return false
	}
	d.style.setRegionHighlight(r, level, d.TabAt(tab))

	if d.highlights[i] == level {
		return true
	}
	d.highlights[i] = level
	if dirty != nil {
		d.style.extendDirtyRegion(r, dirty)
	}
	return true
}

// RegionHighlight returns the feedback level of a region kind.
func (d *Decorator) RegionHighlight(r Region) uint8 {
	i, ok := highlightIndex(r)
	if !ok {
		return HighlightNone
	}
	return d.highlights[i]
}

// ExtendDirtyRegion adds the area that must be repainted when the look of
// region kind r changes.
func (d *Decorator) ExtendDirtyRegion(r Region, dirty *geom.Region) {
	if dirty == nil {
		return
	}
	d.style.extendDirtyRegion(r, dirty)
}

// Settings exports the tab strip geometry. It returns false when there is
// no tab strip.
func (d *Decorator) Settings() (Settings, bool) {
	return d.style.settings()
}

// SetSettings restores geometry exported by Settings. Incomplete or
// malformed settings are rejected without changing anything.
func (d *Decorator) SetSettings(s Settings, dirty *geom.Region) bool {
	if err := s.validate(len(d.tabs)); err != nil {
		trace.Printf("rejecting settings: %v", err)
		return false
	}
	if !d.style.setSettings(s, dirty) {
		return false
	}
	d.invalidateFootprint()
	return true
}

// SizeLimits tightens l so the decoration always fits.
func (d *Decorator) SizeLimits(l Limits) Limits {
	return d.style.sizeLimits(l)
}

// Frame returns the client frame rect.
func (d *Decorator) Frame() geom.Rect { return d.frame }

// BorderRect returns the outer rect of the borders.
func (d *Decorator) BorderRect() geom.Rect { return d.borderRect }

// TitleBarRect returns the union of all tab rects.
func (d *Decorator) TitleBarRect() geom.Rect { return d.titleBar }

// ResizeRect returns the rect of the resize handle.
func (d *Decorator) ResizeRect() geom.Rect { return d.resizeRect }

// TabRect returns the strip segment of the tab at index.
func (d *Decorator) TabRect(index int) geom.Rect {
	if tab := d.TabAt(index); tab != nil {
		return tab.tabRect
	}
	return geom.Invalid
}

// Look returns the look of the tab at index.
func (d *Decorator) Look(index int) Look {
	if tab := d.TabAt(index); tab != nil {
		return tab.look
	}
	return LookNoBorder
}

// Flags returns the flags of the tab at index.
func (d *Decorator) Flags(index int) Flags {
	if tab := d.TabAt(index); tab != nil {
		return tab.flags
	}
	return 0
}

// Title returns the title of the tab at index.
func (d *Decorator) Title(index int) string {
	if tab := d.TabAt(index); tab != nil {
		return tab.title
	}
	return ""
}

// BorderWidth returns the thickness of the frame border.
func (d *Decorator) BorderWidth() float64 { return d.style.borderWidth() }

// TabHeight returns the thickness of the tab strip, or the border width
// when there is none.
func (d *Decorator) TabHeight() float64 { return d.style.tabHeight() }

// ComponentColors returns the palette of a component for the tab at index.
func (d *Decorator) ComponentColors(c Component, highlight uint8, index int) ComponentColors {
	return d.style.componentColors(c, highlight, d.TabAt(index))
}

// Paint returns what has to be drawn to repaint invalid.
func (d *Decorator) Paint(invalid geom.Rect) []DrawOp {
	return d.style.paint(invalid)
}
