package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/drawing"
	"github.com/1broseidon/tabframe/internal/geom"
)

const (
	BackendGoFont = "gofont"
	BackendX11    = "x11"
)

type FontConfig struct {
	Family string  `yaml:"family"`
	Size   float64 `yaml:"size"`
}

type ColorsConfig struct {
	WindowTab      string `yaml:"window_tab"`
	WindowText     string `yaml:"window_text"`
	WindowBorder   string `yaml:"window_border"`
	InactiveTab    string `yaml:"inactive_tab"`
	InactiveText   string `yaml:"inactive_text"`
	InactiveBorder string `yaml:"inactive_border"`
}

type AppearanceConfig struct {
	PlainFont FontConfig   `yaml:"plain_font"`
	BoldFont  FontConfig   `yaml:"bold_font"`
	Colors    ColorsConfig `yaml:"colors"`
}

type EngineConfig struct {
	// Backend selects the title measuring engine: gofont or x11.
	Backend string  `yaml:"backend"`
	DPI     float64 `yaml:"dpi"`
	// X11Font is the core font name used by the x11 backend.
	X11Font string `yaml:"x11_font"`
	Display string `yaml:"display"`
}

type FrameConfig struct {
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	Look   string   `yaml:"look"`
	Flags  []string `yaml:"flags"`
	// Tabs are the titles a frame starts with when none are given on the
	// command line.
	Tabs []string `yaml:"tabs"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	// File receives logs in addition to stderr when set.
	File string `yaml:"file"`
}

type Config struct {
	Appearance AppearanceConfig `yaml:"appearance"`
	Engine     EngineConfig     `yaml:"engine"`
	Frame      FrameConfig      `yaml:"frame"`
	MaxTabs    int              `yaml:"max_tabs"`
	Logging    LoggingConfig    `yaml:"logging"`
}

func DefaultConfig() *Config {
	return &Config{
		Appearance: AppearanceConfig{
			PlainFont: FontConfig{Family: drawing.FamilyGo, Size: 12},
			BoldFont:  FontConfig{Family: drawing.FamilyGo, Size: 12},
			Colors: ColorsConfig{
				WindowTab:      "#ffcb00",
				WindowText:     "#000000",
				WindowBorder:   "#ffcb00",
				InactiveTab:    "#e8e8e8",
				InactiveText:   "#505050",
				InactiveBorder: "#e8e8e8",
			},
		},
		Engine: EngineConfig{
			Backend: BackendGoFont,
			DPI:     72,
			X11Font: "-misc-fixed-bold-r-normal--13-*-*-*-*-*-iso8859-1",
		},
		Frame: FrameConfig{
			Width:  640,
			Height: 400,
			Look:   decorator.LookTitled.String(),
			Tabs:   []string{"Terminal"},
		},
		MaxTabs: decorator.DefaultMaxTabs,
		Logging: LoggingConfig{Level: "info"},
	}
}

func (c *Config) Validate() error {
	fonts := []struct {
		path string
		font FontConfig
	}{
		{"appearance.plain_font", c.Appearance.PlainFont},
		{"appearance.bold_font", c.Appearance.BoldFont},
	}
	for _, f := range fonts {
		if strings.TrimSpace(f.font.Family) == "" {
			return &ValidationError{Path: f.path + ".family", Err: fmt.Errorf("family is required")}
		}
		if f.font.Size <= 0 {
			return &ValidationError{Path: f.path + ".size", Err: fmt.Errorf("size must be > 0")}
		}
	}
	for _, entry := range c.Appearance.Colors.entries() {
		if _, err := ParseColor(entry.value); err != nil {
			return &ValidationError{Path: "appearance.colors." + entry.key, Err: err}
		}
	}

	switch c.Engine.Backend {
	case BackendGoFont, BackendX11:
	default:
		return &ValidationError{Path: "engine.backend", Err: fmt.Errorf("backend must be one of: %s, %s", BackendGoFont, BackendX11)}
	}
	if c.Engine.DPI < 0 {
		return &ValidationError{Path: "engine.dpi", Err: fmt.Errorf("dpi must be >= 0")}
	}
	if c.Engine.Backend == BackendX11 && strings.TrimSpace(c.Engine.X11Font) == "" {
		return &ValidationError{Path: "engine.x11_font", Err: fmt.Errorf("x11_font is required for the x11 backend")}
	}

	if c.Frame.Width <= 0 {
		return &ValidationError{Path: "frame.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Frame.Height <= 0 {
		return &ValidationError{Path: "frame.height", Err: fmt.Errorf("height must be > 0")}
	}
	if _, err := decorator.ParseLook(c.Frame.Look); err != nil {
		return &ValidationError{Path: "frame.look", Err: fmt.Errorf("look must be one of: %s", strings.Join(decorator.LookNames(), ", "))}
	}
	if _, err := decorator.ParseFlags(strings.Join(c.Frame.Flags, ",")); err != nil {
		return &ValidationError{Path: "frame.flags", Err: err}
	}

	if c.MaxTabs <= 0 {
		return &ValidationError{Path: "max_tabs", Err: fmt.Errorf("max_tabs must be > 0")}
	}
	if len(c.Frame.Tabs) > c.MaxTabs {
		return &ValidationError{Path: "frame.tabs", Err: fmt.Errorf("%d tabs exceed max_tabs %d", len(c.Frame.Tabs), c.MaxTabs)}
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "logging.level", Err: fmt.Errorf("level must be one of: debug, info, warn, error")}
	}
	return nil
}

// DecoratorAppearance converts the appearance section for the decorator.
func (c *Config) DecoratorAppearance() (decorator.Appearance, error) {
	a := decorator.Appearance{
		PlainFont: drawing.Font{Family: c.Appearance.PlainFont.Family, Size: c.Appearance.PlainFont.Size},
		BoldFont:  drawing.Font{Family: c.Appearance.BoldFont.Family, Size: c.Appearance.BoldFont.Size, Bold: true},
	}
	targets := map[string]*color.RGBA{
		"window_tab":      &a.Colors.WindowTab,
		"window_text":     &a.Colors.WindowText,
		"window_border":   &a.Colors.WindowBorder,
		"inactive_tab":    &a.Colors.InactiveTab,
		"inactive_text":   &a.Colors.InactiveText,
		"inactive_border": &a.Colors.InactiveBorder,
	}
	for _, entry := range c.Appearance.Colors.entries() {
		col, err := ParseColor(entry.value)
		if err != nil {
			return decorator.Appearance{}, &ValidationError{Path: "appearance.colors." + entry.key, Err: err}
		}
		*targets[entry.key] = col
	}
	return a, nil
}

// FrameLook returns the configured look. Validate has already checked it.
func (c *Config) FrameLook() decorator.Look {
	look, err := decorator.ParseLook(c.Frame.Look)
	if err != nil {
		return decorator.LookTitled
	}
	return look
}

// FrameFlags returns the configured window flags.
func (c *Config) FrameFlags() decorator.Flags {
	flags, _ := decorator.ParseFlags(strings.Join(c.Frame.Flags, ","))
	return flags
}

// Save writes the configuration to path, creating parent directories.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// NewDecorator builds a decorator for a Frame.Width x Frame.Height client
// area at the origin holding the configured tabs, measured with engine.
func (c *Config) NewDecorator(engine drawing.Engine) (*decorator.Decorator, error) {
	appearance, err := c.DecoratorAppearance()
	if err != nil {
		return nil, err
	}
	d := decorator.New(geom.FromXYWH(0, 0, c.Frame.Width, c.Frame.Height), decorator.Options{
		Appearance: appearance,
		Engine:     engine,
		MaxTabs:    c.MaxTabs,
	})
	look, flags := c.FrameLook(), c.FrameFlags()
	for _, title := range c.Frame.Tabs {
		if _, err := d.AddTab(title, look, flags, -1, nil); err != nil {
			return nil, fmt.Errorf("add tab %q: %w", title, err)
		}
	}
	return d, nil
}
