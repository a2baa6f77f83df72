package decorator

import "github.com/1broseidon/tabframe/internal/geom"

var buttonRegions = [...]Region{RegionCloseButton, RegionZoomButton, RegionMinimizeButton}

func buttonEnabled(r Region, flags Flags) bool {
	switch r {
	case RegionCloseButton:
		return !flags.Has(NotClosable)
	case RegionZoomButton:
		return !flags.Has(NotZoomable)
	case RegionMinimizeButton:
		return !flags.Has(NotMinimizable)
	default:
		return false
	}
}

// Press arms the button under p. It returns the region under p and the tab
// index for tab and button regions; only enabled buttons change state, and
// nothing is armed while another button is still pressed.
func (d *Decorator) Press(p geom.Point, dirty *geom.Region) (Region, int) {
	region, index := d.RegionAt(p)
	tab := d.TabAt(index)
	if tab == nil || !buttonEnabled(region, tab.flags) {
		return region, index
	}
	if armedTab, armed := d.pressedButton(); armed != RegionNone && (armedTab != tab || armed != region) {
		return region, index
	}
	if !tab.Pressed(region) {
		tab.setPressed(region, true)
		if dirty != nil {
			dirty.Include(tab.buttonRect(region))
		}
	}
	return region, index
}

// Release disarms the pressed button, if any, and reports whether p is
// still inside it, in which case the button's action should run. Without a
// pressed button it returns RegionNone and -1.
func (d *Decorator) Release(p geom.Point, dirty *geom.Region) (Region, int, bool) {
	tab, r := d.pressedButton()
	if r == RegionNone {
		return RegionNone, -1, false
	}
	tab.setPressed(r, false)
	if dirty != nil {
		dirty.Include(tab.buttonRect(r))
	}
	i := d.IndexOf(tab)
	hit, hitIndex := d.RegionAt(p)
	return r, i, hit == r && hitIndex == i
}

// pressedButton returns the armed button and its tab, or RegionNone.
func (d *Decorator) pressedButton() (*Tab, Region) {
	for _, tab := range d.tabs {
		for _, r := range buttonRegions {
			if tab.Pressed(r) {
				return tab, r
			}
		}
	}
	return nil, RegionNone
}
