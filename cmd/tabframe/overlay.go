package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/geom"
	"github.com/1broseidon/tabframe/internal/preview"
	"github.com/1broseidon/tabframe/internal/x11"
)

func runOverlay(args []string) int {
	fs := flag.NewFlagSet("overlay", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageFunc(fs, "tabframe overlay [--duration D] [frame flags]",
		"Draw the decoration centered on the monitor under the pointer, using",
		"override-redirect windows. Titles are measured and drawn with the",
		"core font engine.x11_font.")
	var opts frameOptions
	opts.register(fs)
	duration := fs.Duration("duration", 0, "Close the overlay after this long (default: until interrupted)")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger := setupLogging(cfg.Logging)

	conn, err := x11.NewConnection(cfg.Engine.Display)
	if err != nil {
		logger.Error("failed to connect", "error", err)
		return 1
	}
	defer conn.Close()

	fonts, err := x11.NewFontEngine(conn, cfg.Engine.X11Font)
	if err != nil {
		logger.Error("failed to open font", "font", cfg.Engine.X11Font, "error", err)
		return 1
	}
	defer fonts.Close()

	d, err := cfg.NewDecorator(fonts)
	if err != nil {
		logger.Error("failed to build frame", "error", err)
		return 1
	}

	overlay, err := x11.NewOverlay(conn, fonts)
	if err != nil {
		logger.Error("failed to create overlay", "error", err)
		return 1
	}
	defer overlay.Cleanup()

	monitor := conn.PointerMonitor()
	bounds := overlayBounds(d)
	dx, dy := overlayOffset(monitor, bounds)
	lines := []string{
		preview.Summary(d),
		fmt.Sprintf("monitor %s %dx%d+%d+%d", monitor.Name, monitor.Width, monitor.Height, monitor.X, monitor.Y),
		"Escape or Ctrl+C closes the overlay",
	}
	if err := overlay.Render(d.Paint(bounds), dx, dy, lines); err != nil {
		logger.Error("failed to render overlay", "error", err)
		return 1
	}
	slog.Info("overlay shown", "ops", len(d.Paint(bounds)), "dx", dx, "dy", dy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := conn.BindKey("Escape", stop); err != nil {
		logger.Warn("escape will not close the overlay", "error", err)
	}
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	start := time.Now()
	conn.Run(ctx)
	slog.Debug("overlay closed", "shown", time.Since(start).Round(time.Millisecond))
	return 0
}

// overlayBounds covers the client frame and everything drawn around it.
func overlayBounds(d *decorator.Decorator) geom.Rect {
	bounds := d.Frame()
	if fp := d.Footprint(); !fp.IsEmpty() {
		bounds = bounds.Union(fp.Frame())
	}
	return bounds
}

// overlayOffset is the shift that centers bounds on m.
func overlayOffset(m x11.Monitor, bounds geom.Rect) (dx, dy int) {
	_, _, w, h := bounds.XYWH()
	x, y := x11.CenterIn(m, w, h)
	return x - int(math.Floor(bounds.Left)), y - int(math.Floor(bounds.Top))
}
