package decorator

import (
	"image/color"

	"github.com/1broseidon/tabframe/internal/drawing"
)

// UIColors are the desktop-wide window colors a decorator derives its
// palette from.
type UIColors struct {
	WindowTab      color.RGBA
	WindowText     color.RGBA
	WindowBorder   color.RGBA
	InactiveTab    color.RGBA
	InactiveText   color.RGBA
	InactiveBorder color.RGBA
}

// Appearance carries the fonts and colors a decorator lays out and paints
// with.
type Appearance struct {
	PlainFont drawing.Font
	BoldFont  drawing.Font
	Colors    UIColors
}

// DefaultAppearance returns the stock yellow-tab look.
func DefaultAppearance() Appearance {
	return Appearance{
		PlainFont: drawing.Font{Family: drawing.FamilyGo, Size: 12},
		BoldFont:  drawing.Font{Family: drawing.FamilyGo, Size: 12, Bold: true},
		Colors: UIColors{
			WindowTab:      color.RGBA{R: 255, G: 203, B: 0, A: 255},
			WindowText:     color.RGBA{A: 255},
			WindowBorder:   color.RGBA{R: 255, G: 203, B: 0, A: 255},
			InactiveTab:    color.RGBA{R: 232, G: 232, B: 232, A: 255},
			InactiveText:   color.RGBA{R: 80, G: 80, B: 80, A: 255},
			InactiveBorder: color.RGBA{R: 232, G: 232, B: 232, A: 255},
		},
	}
}

// Tint factors: below 1 lightens towards white, above 1 darkens towards
// black.
const (
	TintLightenMax = 0.0
	TintLighten2   = 0.385
	TintLighten1   = 0.590
	TintNone       = 1.0
	TintDarken1    = 1.147
	TintDarken2    = 1.295
	TintDarken3    = 1.407
	TintDarkenMax  = 2.0
)

// Tint lightens or darkens c by the given factor, keeping alpha.
func Tint(c color.RGBA, tint float64) color.RGBA {
	channel := func(v uint8) uint8 {
		if tint < 1 {
			return uint8(255 - (255-float64(v))*tint)
		}
		return uint8(float64(v) * (2 - tint))
	}
	return color.RGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: c.A}
}

// Component is a paintable part of the decoration.
type Component int

const (
	ComponentTab Component = iota
	ComponentCloseButton
	ComponentZoomButton
	ComponentLeftBorder
	ComponentRightBorder
	ComponentTopBorder
	ComponentBottomBorder
	ComponentResizeCorner
)

func (c Component) String() string {
	switch c {
	case ComponentTab:
		return "tab"
	case ComponentCloseButton:
		return "close-button"
	case ComponentZoomButton:
		return "zoom-button"
	case ComponentLeftBorder:
		return "left-border"
	case ComponentRightBorder:
		return "right-border"
	case ComponentTopBorder:
		return "top-border"
	case ComponentBottomBorder:
		return "bottom-border"
	case ComponentResizeCorner:
		return "resize-corner"
	default:
		return "?"
	}
}

// ComponentColors holds the colors of one component. The meaning of each
// slot depends on the component: tabs use the ColorTab* indices, buttons the
// ColorButton* indices and frame parts use slots 0-5 from dark outline to
// inner shadow.
type ComponentColors [7]color.RGBA

const (
	ColorTabFrameLight = iota
	ColorTabFrameDark
	ColorTab
	ColorTabLight
	ColorTabBevel
	ColorTabShadow
	ColorTabText
)

const (
	ColorButton = iota
	ColorButtonLight
)

type palette struct {
	frame     color.RGBA
	tab       color.RGBA
	tabLight  color.RGBA
	tabBevel  color.RGBA
	tabShadow color.RGBA
	text      color.RGBA
}

func newPalette(frame, tab, text color.RGBA) palette {
	return palette{
		frame:     frame,
		tab:       tab,
		tabLight:  Tint(tab, (TintLightenMax+TintLighten2)/2),
		tabBevel:  Tint(tab, TintLighten2),
		tabShadow: Tint(tab, (TintDarken1+TintNone)/2),
		text:      text,
	}
}

func (p palette) componentColors(component Component, highlight uint8) ComponentColors {
	var out ComponentColors
	switch component {
	case ComponentTab:
		out[ColorTabFrameLight] = Tint(p.frame, TintDarken2)
		out[ColorTabFrameDark] = Tint(p.frame, TintDarken3)
		out[ColorTab] = p.tab
		out[ColorTabLight] = p.tabLight
		out[ColorTabBevel] = p.tabBevel
		out[ColorTabShadow] = p.tabShadow
		out[ColorTabText] = p.text

	case ComponentCloseButton, ComponentZoomButton:
		out[ColorButton] = p.tab
		out[ColorButtonLight] = p.tabLight

	default:
		out[0] = Tint(p.frame, TintDarken2)
		out[1] = Tint(p.frame, TintLighten2)
		out[2] = p.frame
		out[3] = Tint(p.frame, (TintDarken1+TintNone)/2)
		out[4] = Tint(p.frame, TintDarken2)
		out[5] = Tint(p.frame, TintDarken3)

		// resize-border feedback dyes the frame bluish
		if highlight == HighlightResizeBorder {
			for i := 0; i < 6; i++ {
				out[i].R = uint8(max(int(out[i].R)-80, 0))
				out[i].G = uint8(max(int(out[i].G)-80, 0))
				out[i].B = 255
			}
		}
	}
	return out
}
