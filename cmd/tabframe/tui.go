package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/tabframe/internal/tui"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageFunc(fs, "tabframe tui [frame flags]",
		"Interactive editor for one frame. The decoration is redrawn after every",
		"change together with the area the change invalidated.",
		"",
		"Keybindings:",
		"  ↑/↓, j/k      Select a tab",
		"  ←/→           Narrow or widen the frame",
		"  PgUp/PgDn     Shorten or lengthen the frame",
		"  a / r / x     Add, rename or remove a tab",
		"  [ / ]         Move the selected tab left or right",
		"  , / .         Slide the selected tab along the strip",
		"  f             Toggle focus",
		"  Enter         Make the selected tab the top tab",
		"  e             Edit look and flags",
		"  s             Show the settings document",
		"  q, Ctrl+C     Quit")
	var opts frameOptions
	opts.register(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	cfg, err := opts.loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	// stderr shares the alternate screen
	cfg.Logging.Level = "error"
	setupLogging(cfg.Logging)

	engine, closeEngine, err := openEngine(cfg.Engine)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closeEngine()

	if err := tui.Run(tui.Options{Config: cfg, Engine: engine}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
