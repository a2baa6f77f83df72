package main

import (
	"log/slog"

	"github.com/1broseidon/tabframe/internal/config"
	"github.com/1broseidon/tabframe/internal/drawing"
	"github.com/1broseidon/tabframe/internal/x11"
)

// openEngine creates the title measuring engine cfg selects. The returned
// func releases it.
func openEngine(cfg config.EngineConfig) (drawing.Engine, func(), error) {
	switch cfg.Backend {
	case config.BackendX11:
		conn, err := x11.NewConnection(cfg.Display)
		if err != nil {
			return nil, nil, err
		}
		fonts, err := x11.NewFontEngine(conn, cfg.X11Font)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		slog.Debug("measuring with core fonts", "bold", fonts.Name(true), "plain", fonts.Name(false))
		return fonts, func() {
			_ = fonts.Close()
			conn.Close()
		}, nil

	default:
		faces, err := drawing.NewFaceEngine(cfg.DPI)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("measuring with go fonts", "dpi", cfg.DPI)
		return faces, func() { _ = faces.Close() }, nil
	}
}
