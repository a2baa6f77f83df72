package config

import (
	"fmt"
	"sort"
	"strings"
)

// Explain returns the effective value at a dotted YAML path together with
// where it came from.
//
// Supported paths are every leaf of Config, for example:
//
//	appearance.bold_font.size
//	appearance.colors.window_tab
//	engine.backend
//	frame.look
//	frame.tabs
//	max_tabs
//	logging.level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	values := leafValues(res.Config)
	value, ok := values[path]
	if !ok {
		return nil, Source{}, fmt.Errorf("unknown config path %q (known: %s)", path, strings.Join(KnownPaths(), ", "))
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

// KnownPaths lists every path Explain accepts, sorted.
func KnownPaths() []string {
	values := leafValues(DefaultConfig())
	paths := make([]string, 0, len(values))
	for p := range values {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func leafValues(cfg *Config) map[string]any {
	out := map[string]any{
		"appearance.plain_font.family": cfg.Appearance.PlainFont.Family,
		"appearance.plain_font.size":   cfg.Appearance.PlainFont.Size,
		"appearance.bold_font.family":  cfg.Appearance.BoldFont.Family,
		"appearance.bold_font.size":    cfg.Appearance.BoldFont.Size,
		"engine.backend":               cfg.Engine.Backend,
		"engine.dpi":                   cfg.Engine.DPI,
		"engine.x11_font":              cfg.Engine.X11Font,
		"engine.display":               cfg.Engine.Display,
		"frame.width":                  cfg.Frame.Width,
		"frame.height":                 cfg.Frame.Height,
		"frame.look":                   cfg.Frame.Look,
		"frame.flags":                  cfg.Frame.Flags,
		"frame.tabs":                   cfg.Frame.Tabs,
		"max_tabs":                     cfg.MaxTabs,
		"logging.level":                cfg.Logging.Level,
		"logging.file":                 cfg.Logging.File,
	}
	for _, entry := range cfg.Appearance.Colors.entries() {
		out["appearance.colors."+entry.key] = entry.value
	}
	return out
}
