package mcp

import (
	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/geom"
)

// AddTabInput is the input for the add_tab tool.
type AddTabInput struct {
	Title string   `json:"title" jsonschema:"Window title shown in the tab"`
	Look  string   `json:"look,omitempty" jsonschema:"Window look (no-border, bordered, titled, document, modal, floating, left-titled). Default: configured frame look"`
	Flags []string `json:"flags,omitempty" jsonschema:"Window flags such as not-closable or not-zoomable. Default: configured frame flags"`
	Index *int     `json:"index,omitempty" jsonschema:"Insert position; omitted or negative appends"`
}

// AddTabOutput is the output for the add_tab tool.
type AddTabOutput struct {
	Index    int         `json:"index"`
	TabCount int         `json:"tab_count"`
	Dirty    []geom.Rect `json:"dirty"`
}

// TabIndexInput addresses one tab.
type TabIndexInput struct {
	Index int `json:"index" jsonschema:"Tab index"`
}

// MoveTabInput is the input for the move_tab tool.
type MoveTabInput struct {
	From        int  `json:"from" jsonschema:"Current tab index"`
	To          int  `json:"to" jsonschema:"Target tab index"`
	Interactive bool `json:"interactive,omitempty" jsonschema:"Treat the move as one step of a live drag"`
}

// SetTitleInput is the input for the set_title tool.
type SetTitleInput struct {
	Index int    `json:"index" jsonschema:"Tab index"`
	Title string `json:"title" jsonschema:"New window title"`
}

// UpdateTabInput is the input for the update_tab tool. Omitted fields are
// left unchanged.
type UpdateTabInput struct {
	Index   int       `json:"index" jsonschema:"Tab index"`
	Look    *string   `json:"look,omitempty" jsonschema:"New window look"`
	Flags   *[]string `json:"flags,omitempty" jsonschema:"New window flags; an empty list clears all flags"`
	Focused *bool     `json:"focused,omitempty" jsonschema:"Focus state of the window"`
	Top     bool      `json:"top,omitempty" jsonschema:"Make this tab the one whose look governs the frame"`
}

// SetTabLocationInput is the input for the set_tab_location tool.
type SetTabLocationInput struct {
	Index    int     `json:"index" jsonschema:"Tab index"`
	Location float64 `json:"location" jsonschema:"Pixel offset of the tab along the strip"`
	Shifting bool    `json:"shifting,omitempty" jsonschema:"Slide only the moved tab, as during a drag. Otherwise the whole strip is laid out again"`
}

// ResizeInput is the input for the resize_frame and move_frame tools.
type ResizeInput struct {
	DX float64 `json:"dx" jsonschema:"Horizontal delta in pixels"`
	DY float64 `json:"dy" jsonschema:"Vertical delta in pixels"`
}

// MutationOutput reports the outcome of a mutating tool.
type MutationOutput struct {
	Applied  bool        `json:"applied"`
	TabCount int         `json:"tab_count"`
	Dirty    []geom.Rect `json:"dirty"`
}

// PointInput is a screen position.
type PointInput struct {
	X float64 `json:"x" jsonschema:"Horizontal screen coordinate"`
	Y float64 `json:"y" jsonschema:"Vertical screen coordinate"`
}

// RegionAtOutput is the output for the region_at tool.
type RegionAtOutput struct {
	Region string `json:"region"`
	Tab    int    `json:"tab"`
}

// ClickOutput is the output for the click tool.
type ClickOutput struct {
	Region string `json:"region"`
	Tab    int    `json:"tab"`
	// Clicked is set when the release landed on the pressed button.
	Clicked bool        `json:"clicked"`
	Dirty   []geom.Rect `json:"dirty"`
}

// EmptyInput is the input for tools without arguments.
type EmptyInput struct{}

// LayoutOutput is the output for the layout tool.
type LayoutOutput struct {
	Layout decorator.Layout `json:"layout"`
}

// SettingsOutput is the output for the export_settings tool.
type SettingsOutput struct {
	YAML string `json:"yaml"`
}

// ImportSettingsInput is the input for the import_settings tool.
type ImportSettingsInput struct {
	YAML string `json:"yaml" jsonschema:"Settings document as written by export_settings"`
}

// PreviewInput is the input for the preview tool.
type PreviewInput struct {
	Cols int `json:"cols,omitempty" jsonschema:"Width of the map in characters (default: 80)"`
	Rows int `json:"rows,omitempty" jsonschema:"Height of the map in characters (default: derived from the frame aspect)"`
}

// PreviewOutput is the output for the preview tool.
type PreviewOutput struct {
	Summary string `json:"summary"`
	Map     string `json:"map"`
}

// ResetInput is the input for the reset_frame tool.
type ResetInput struct {
	Tabs []string `json:"tabs,omitempty" jsonschema:"Tab titles to start with (default: configured frame tabs)"`
}
