// Package mcp exposes one tab decorator over the Model Context Protocol so
// agents can build up a frame, query its geometry and hit-test points.
package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tabframe/internal/config"
	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/drawing"
)

const (
	ServerName    = "tabframe"
	ServerVersion = "0.1.0"
)

// Server is the MCP server holding the shared frame.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	engine    drawing.Engine
	logger    *slog.Logger

	// mu guards d; the decorator itself does no locking.
	mu sync.Mutex
	d  *decorator.Decorator
}

// NewServer creates a server whose frame starts as configured. A nil
// logger discards all output.
func NewServer(cfg *config.Config, engine drawing.Engine, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d, err := cfg.NewDecorator(engine)
	if err != nil {
		return nil, fmt.Errorf("create frame: %w", err)
	}

	s := &Server{
		config: cfg,
		engine: engine,
		logger: logger,
		d:      d,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "tabs", s.d.CountTabs())
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "add_tab",
		Description: "Add a window tab to the frame. Returns the new tab index and the screen area that needs repainting.",
	}, s.handleAddTab)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "remove_tab",
		Description: "Remove the tab at index. The remaining tabs are laid out again.",
	}, s.handleRemoveTab)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_tab",
		Description: "Move a tab to another position in the strip.",
	}, s.handleMoveTab)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_title",
		Description: "Change the title of a tab. Titles that do not fit are truncated in the middle.",
	}, s.handleSetTitle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "update_tab",
		Description: "Change the look, flags or focus of a tab, or make it the top tab whose look governs the frame.",
	}, s.handleUpdateTab)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_tab_location",
		Description: "Slide a tab along the strip to a pixel offset. The location is clamped to the free strip length.",
	}, s.handleSetTabLocation)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_frame",
		Description: "Grow or shrink the client frame by dx/dy pixels, keeping its top-left corner.",
	}, s.handleResizeFrame)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_frame",
		Description: "Translate the frame and all of its decoration by dx/dy pixels.",
	}, s.handleMoveFrame)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "region_at",
		Description: "Hit-test a screen point: returns which part of the decoration (tab, button, border, corner or none) is under it and the tab index.",
	}, s.handleRegionAt)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "click",
		Description: "Press and release the mouse at a screen point. Reports whether a button was clicked.",
	}, s.handleClick)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "layout",
		Description: "Return the computed geometry: frame, border and title bar rects, every tab with its buttons, and the footprint.",
	}, s.handleLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "export_settings",
		Description: "Export the tab strip settings (tab frame, border width, tab locations) as YAML.",
	}, s.handleExportSettings)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "import_settings",
		Description: "Apply settings exported earlier. Nothing changes when the document is incomplete or invalid.",
	}, s.handleImportSettings)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "preview",
		Description: "Render the frame as a character map where every cell shows the region under its center.",
	}, s.handlePreview)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reset_frame",
		Description: "Discard the frame and start again from the configured size with the given tabs.",
	}, s.handleReset)
}

// withFrame runs fn under the frame lock.
func (s *Server) withFrame(fn func(d *decorator.Decorator) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.d)
}
