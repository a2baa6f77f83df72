package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies raw on top of DefaultConfig. The result is not
// validated.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if a := raw.Appearance; a != nil {
		applyFont(&cfg.Appearance.PlainFont, a.PlainFont)
		applyFont(&cfg.Appearance.BoldFont, a.BoldFont)
		if c := a.Colors; c != nil {
			setString(&cfg.Appearance.Colors.WindowTab, c.WindowTab)
			setString(&cfg.Appearance.Colors.WindowText, c.WindowText)
			setString(&cfg.Appearance.Colors.WindowBorder, c.WindowBorder)
			setString(&cfg.Appearance.Colors.InactiveTab, c.InactiveTab)
			setString(&cfg.Appearance.Colors.InactiveText, c.InactiveText)
			setString(&cfg.Appearance.Colors.InactiveBorder, c.InactiveBorder)
		}
	}

	if e := raw.Engine; e != nil {
		if e.Backend != nil {
			cfg.Engine.Backend = strings.ToLower(strings.TrimSpace(*e.Backend))
		}
		if e.DPI != nil {
			cfg.Engine.DPI = *e.DPI
		}
		setString(&cfg.Engine.X11Font, e.X11Font)
		setString(&cfg.Engine.Display, e.Display)
	}

	if f := raw.Frame; f != nil {
		cfg.Frame.Width = derefInt(f.Width, cfg.Frame.Width)
		cfg.Frame.Height = derefInt(f.Height, cfg.Frame.Height)
		if f.Look != nil {
			cfg.Frame.Look = strings.ToLower(strings.TrimSpace(*f.Look))
		}
		if f.Flags != nil {
			cfg.Frame.Flags = append([]string(nil), f.Flags...)
		}
		if f.Tabs != nil {
			cfg.Frame.Tabs = append([]string(nil), f.Tabs...)
		}
	}

	cfg.MaxTabs = derefInt(raw.MaxTabs, cfg.MaxTabs)

	if l := raw.Logging; l != nil {
		if l.Level != nil {
			cfg.Logging.Level = strings.ToLower(strings.TrimSpace(*l.Level))
		}
		setString(&cfg.Logging.File, l.File)
	}

	return cfg, nil
}

func applyFont(dst *FontConfig, raw *RawFont) {
	if raw == nil {
		return
	}
	setString(&dst.Family, raw.Family)
	if raw.Size != nil {
		dst.Size = *raw.Size
	}
}

func setString(dst *string, p *string) {
	if p != nil {
		*dst = *p
	}
}

func derefInt(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
