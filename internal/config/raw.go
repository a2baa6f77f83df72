package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// Raw* types mirror Config with pointer fields so an unset key can be told
// apart from a zero value when files are layered.

type RawFont struct {
	Family *string  `yaml:"family"`
	Size   *float64 `yaml:"size"`
}

type RawColors struct {
	WindowTab      *string `yaml:"window_tab"`
	WindowText     *string `yaml:"window_text"`
	WindowBorder   *string `yaml:"window_border"`
	InactiveTab    *string `yaml:"inactive_tab"`
	InactiveText   *string `yaml:"inactive_text"`
	InactiveBorder *string `yaml:"inactive_border"`
}

type RawAppearance struct {
	PlainFont *RawFont   `yaml:"plain_font"`
	BoldFont  *RawFont   `yaml:"bold_font"`
	Colors    *RawColors `yaml:"colors"`
}

type RawEngine struct {
	Backend *string  `yaml:"backend"`
	DPI     *float64 `yaml:"dpi"`
	X11Font *string  `yaml:"x11_font"`
	Display *string  `yaml:"display"`
}

type RawFrame struct {
	Width  *int     `yaml:"width"`
	Height *int     `yaml:"height"`
	Look   *string  `yaml:"look"`
	Flags  []string `yaml:"flags"`
	Tabs   []string `yaml:"tabs"`
}

type RawLogging struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

type RawConfig struct {
	Include    IncludeList    `yaml:"include"`
	Appearance *RawAppearance `yaml:"appearance"`
	Engine     *RawEngine     `yaml:"engine"`
	Frame      *RawFrame      `yaml:"frame"`
	MaxTabs    *int           `yaml:"max_tabs"`
	Logging    *RawLogging    `yaml:"logging"`
}

// merge layers overlay on top of c. Lists replace rather than append.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	out.Include = nil

	if overlay.Appearance != nil {
		base := RawAppearance{}
		if out.Appearance != nil {
			base = *out.Appearance
		}
		merged := mergeRawAppearance(base, *overlay.Appearance)
		out.Appearance = &merged
	}
	if overlay.Engine != nil {
		base := RawEngine{}
		if out.Engine != nil {
			base = *out.Engine
		}
		merged := mergeRawEngine(base, *overlay.Engine)
		out.Engine = &merged
	}
	if overlay.Frame != nil {
		base := RawFrame{}
		if out.Frame != nil {
			base = *out.Frame
		}
		merged := mergeRawFrame(base, *overlay.Frame)
		out.Frame = &merged
	}
	if overlay.MaxTabs != nil {
		out.MaxTabs = overlay.MaxTabs
	}
	if overlay.Logging != nil {
		base := RawLogging{}
		if out.Logging != nil {
			base = *out.Logging
		}
		if overlay.Logging.Level != nil {
			base.Level = overlay.Logging.Level
		}
		if overlay.Logging.File != nil {
			base.File = overlay.Logging.File
		}
		out.Logging = &base
	}
	return out
}

func mergeRawFont(base *RawFont, overlay *RawFont) *RawFont {
	if overlay == nil {
		return base
	}
	out := RawFont{}
	if base != nil {
		out = *base
	}
	if overlay.Family != nil {
		out.Family = overlay.Family
	}
	if overlay.Size != nil {
		out.Size = overlay.Size
	}
	return &out
}

func mergeRawAppearance(base RawAppearance, overlay RawAppearance) RawAppearance {
	out := base
	out.PlainFont = mergeRawFont(base.PlainFont, overlay.PlainFont)
	out.BoldFont = mergeRawFont(base.BoldFont, overlay.BoldFont)
	if overlay.Colors != nil {
		colors := RawColors{}
		if base.Colors != nil {
			colors = *base.Colors
		}
		pick := func(dst **string, src *string) {
			if src != nil {
				*dst = src
			}
		}
		pick(&colors.WindowTab, overlay.Colors.WindowTab)
		pick(&colors.WindowText, overlay.Colors.WindowText)
		pick(&colors.WindowBorder, overlay.Colors.WindowBorder)
		pick(&colors.InactiveTab, overlay.Colors.InactiveTab)
		pick(&colors.InactiveText, overlay.Colors.InactiveText)
		pick(&colors.InactiveBorder, overlay.Colors.InactiveBorder)
		out.Colors = &colors
	}
	return out
}

func mergeRawEngine(base RawEngine, overlay RawEngine) RawEngine {
	out := base
	if overlay.Backend != nil {
		out.Backend = overlay.Backend
	}
	if overlay.DPI != nil {
		out.DPI = overlay.DPI
	}
	if overlay.X11Font != nil {
		out.X11Font = overlay.X11Font
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	return out
}

func mergeRawFrame(base RawFrame, overlay RawFrame) RawFrame {
	out := base
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.Look != nil {
		out.Look = overlay.Look
	}
	if overlay.Flags != nil {
		out.Flags = append([]string(nil), overlay.Flags...)
	}
	if overlay.Tabs != nil {
		out.Tabs = append([]string(nil), overlay.Tabs...)
	}
	return out
}
