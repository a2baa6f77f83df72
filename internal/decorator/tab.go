package decorator

import "github.com/1broseidon/tabframe/internal/geom"

// Tab is the decoration state of one window in a (possibly shared) frame.
// Tabs are owned by their Decorator; the geometry is rewritten in place on
// every layout and must be treated as read-only by callers.
type Tab struct {
	title string
	look  Look
	flags Flags

	tabRect      geom.Rect
	closeRect    geom.Rect
	zoomRect     geom.Rect
	minimizeRect geom.Rect

	closePressed    bool
	zoomPressed     bool
	minimizePressed bool

	focused     bool
	buttonFocus bool
	highlighted bool

	// Pixel offset of tabRect from the strip origin and the same position
	// normalized to [0,1] over the free strip length.
	tabOffset   float64
	tabLocation float64

	textOffset float64
	minTabSize float64
	maxTabSize float64

	truncatedTitle       string
	truncatedTitleLength int
}

func newTab() *Tab {
	return &Tab{
		tabRect:      geom.Invalid,
		closeRect:    geom.Invalid,
		zoomRect:     geom.Invalid,
		minimizeRect: geom.Invalid,
	}
}

func (t *Tab) Title() string           { return t.title }
func (t *Tab) Look() Look              { return t.look }
func (t *Tab) Flags() Flags            { return t.flags }
func (t *Tab) Rect() geom.Rect         { return t.tabRect }
func (t *Tab) CloseRect() geom.Rect    { return t.closeRect }
func (t *Tab) ZoomRect() geom.Rect     { return t.zoomRect }
func (t *Tab) MinimizeRect() geom.Rect { return t.minimizeRect }
func (t *Tab) IsFocused() bool         { return t.focused }
func (t *Tab) IsHighlighted() bool     { return t.highlighted }
func (t *Tab) Offset() float64         { return t.tabOffset }
func (t *Tab) Location() float64       { return t.tabLocation }
func (t *Tab) TextOffset() float64     { return t.textOffset }
func (t *Tab) MinSize() float64        { return t.minTabSize }
func (t *Tab) MaxSize() float64        { return t.maxTabSize }

// TruncatedTitle is the title as it fits between the buttons.
func (t *Tab) TruncatedTitle() string { return t.truncatedTitle }

// TruncatedTitleLength is the glyph count of TruncatedTitle.
func (t *Tab) TruncatedTitleLength() int { return t.truncatedTitleLength }

// Pressed reports whether the button of the given region kind is held down.
func (t *Tab) Pressed(r Region) bool {
	switch r {
	case RegionCloseButton:
		return t.closePressed
	case RegionZoomButton:
		return t.zoomPressed
	case RegionMinimizeButton:
		return t.minimizePressed
	default:
		return false
	}
}

func (t *Tab) setPressed(r Region, pressed bool) {
	switch r {
	case RegionCloseButton:
		t.closePressed = pressed
	case RegionZoomButton:
		t.zoomPressed = pressed
	case RegionMinimizeButton:
		t.minimizePressed = pressed
	}
}

// buttonRect returns the rect of the button of the given region kind.
func (t *Tab) buttonRect(r Region) geom.Rect {
	switch r {
	case RegionCloseButton:
		return t.closeRect
	case RegionZoomButton:
		return t.zoomRect
	case RegionMinimizeButton:
		return t.minimizeRect
	default:
		return geom.Invalid
	}
}
