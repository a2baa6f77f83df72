package decorator

import "github.com/1broseidon/tabframe/internal/geom"

// style is the geometry of one decoration style. The Decorator owns the tab
// list and the shared state; a style rewrites rectangles in place and
// reports changed area into the dirty region it is handed (which may be nil).
//
// Every hook runs after the Decorator has validated indices and updated the
// tab list, so a style never sees an out-of-range tab.
type style interface {
	// allocateTab returns a fresh tab record or nil when none can be
	// allocated.
	allocateTab() *Tab
	releaseTab(t *Tab)

	layout()

	addTab(index int, dirty *geom.Region) bool
	removeTab(index int, dirty *geom.Region) bool
	// moveTab runs after the tab list was reordered.
	moveTab(from, to int, interactive bool, dirty *geom.Region) bool

	setTitle(t *Tab, dirty *geom.Region)
	setFocus(t *Tab)
	// topLookChanged runs after the top tab switched to one with another
	// look.
	topLookChanged()
	setLook(t *Tab, look Look, dirty *geom.Region)
	setFlags(t *Tab, flags Flags, dirty *geom.Region)
	fontsChanged(a Appearance, dirty *geom.Region)

	setTabLocation(t *Tab, location float64, shifting bool, dirty *geom.Region) bool
	tabLocation(t *Tab) float64

	moveBy(dx, dy float64)
	resizeBy(dx, dy float64, dirty *geom.Region)

	regionAt(p geom.Point) (Region, int)
	footprint(out *geom.Region)
	extendDirtyRegion(r Region, dirty *geom.Region)
	setRegionHighlight(r Region, level uint8, t *Tab)

	settings() (Settings, bool)
	setSettings(s Settings, dirty *geom.Region) bool
	sizeLimits(l Limits) Limits

	borderWidth() float64
	tabHeight() float64
	componentColors(c Component, highlight uint8, t *Tab) ComponentColors
	paint(invalid geom.Rect) []DrawOp
}
