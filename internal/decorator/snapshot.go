package decorator

import "github.com/1broseidon/tabframe/internal/geom"

// TabLayout is the computed geometry of one tab.
type TabLayout struct {
	Index     int       `json:"index" yaml:"index"`
	Title     string    `json:"title" yaml:"title"`
	Shown     string    `json:"shown" yaml:"shown"`
	Look      string    `json:"look" yaml:"look"`
	Flags     string    `json:"flags" yaml:"flags"`
	Focused   bool      `json:"focused" yaml:"focused"`
	Rect      geom.Rect `json:"rect" yaml:"rect"`
	Close     geom.Rect `json:"close" yaml:"close"`
	Zoom      geom.Rect `json:"zoom" yaml:"zoom"`
	Location  float64   `json:"location" yaml:"location"`
	Offset    float64   `json:"offset" yaml:"offset"`
	MinSize   float64   `json:"min_size" yaml:"min_size"`
	MaxSize   float64   `json:"max_size" yaml:"max_size"`
	TextStart float64   `json:"text_offset" yaml:"text_offset"`
}

// Layout is a serializable snapshot of everything the decorator computed.
type Layout struct {
	Frame       geom.Rect   `json:"frame" yaml:"frame"`
	Look        string      `json:"look" yaml:"look"`
	TopTab      int         `json:"top_tab" yaml:"top_tab"`
	BorderWidth float64     `json:"border_width" yaml:"border_width"`
	TabHeight   float64     `json:"tab_height" yaml:"tab_height"`
	BorderRect  geom.Rect   `json:"border_rect" yaml:"border_rect"`
	TitleBar    geom.Rect   `json:"title_bar" yaml:"title_bar"`
	ResizeRect  geom.Rect   `json:"resize_rect" yaml:"resize_rect"`
	Tabs        []TabLayout `json:"tabs" yaml:"tabs"`
	Footprint   []geom.Rect `json:"footprint" yaml:"footprint"`
}

// Layout snapshots the current geometry.
func (d *Decorator) Layout() Layout {
	l := Layout{
		Frame:       d.frame,
		Look:        d.topLook().String(),
		TopTab:      d.topTab,
		BorderWidth: d.BorderWidth(),
		TabHeight:   d.TabHeight(),
		BorderRect:  d.borderRect,
		TitleBar:    d.titleBar,
		ResizeRect:  d.resizeRect,
		Tabs:        make([]TabLayout, 0, len(d.tabs)),
		Footprint:   d.Footprint().Rects(),
	}
	for i, t := range d.tabs {
		l.Tabs = append(l.Tabs, TabLayout{
			Index:     i,
			Title:     t.title,
			Shown:     t.truncatedTitle,
			Look:      t.look.String(),
			Flags:     t.flags.String(),
			Focused:   t.focused,
			Rect:      t.tabRect,
			Close:     t.closeRect,
			Zoom:      t.zoomRect,
			Location:  d.style.tabLocation(t),
			Offset:    t.tabOffset,
			MinSize:   t.minTabSize,
			MaxSize:   t.maxTabSize,
			TextStart: t.textOffset,
		})
	}
	return l
}
