package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1broseidon/tabframe/internal/config"
	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/drawing"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "hit":
		os.Exit(runHit(os.Args[2:]))
	case "preview":
		os.Exit(runPreview(os.Args[2:]))
	case "settings":
		os.Exit(runSettings(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "overlay":
		os.Exit(runOverlay(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tabframe <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  layout              Print the computed frame geometry")
	fmt.Fprintln(w, "  hit X Y             Classify a point of the decoration")
	fmt.Fprintln(w, "  preview             Draw the decoration as a character map")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  settings export     Write the tab strip settings as YAML")
	fmt.Fprintln(w, "  settings import     Apply settings and print the resulting layout")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the interactive frame editor")
	fmt.Fprintln(w, "  overlay             Show the decoration on the X server")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config init         Write the default configuration")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tabframe <command> --help' for command-specific options.")
}

// frameOptions are the flags every frame-building command shares. Zero
// values keep what the config file says.
type frameOptions struct {
	path    string
	tabs    string
	width   int
	height  int
	look    string
	flags   string
	backend string
	verbose bool
}

func (o *frameOptions) register(fs *flag.FlagSet) {
	fs.StringVar(&o.path, "path", "", "Config file path (default: ~/.config/tabframe/config.yaml)")
	fs.StringVar(&o.tabs, "tabs", "", "Comma separated tab titles (default: frame.tabs from config)")
	fs.IntVar(&o.width, "width", 0, "Client frame width in pixels")
	fs.IntVar(&o.height, "height", 0, "Client frame height in pixels")
	fs.StringVar(&o.look, "look", "", "Window look: "+strings.Join(decorator.LookNames(), ", "))
	fs.StringVar(&o.flags, "flags", "", "Comma separated window flags: "+strings.Join(decorator.FlagNames(), ", "))
	fs.StringVar(&o.backend, "engine", "", "Text measuring engine: gofont or x11")
	fs.BoolVar(&o.verbose, "verbose", false, "Enable debug logging")
}

// loadConfig reads the config file and layers the flags over it.
func (o *frameOptions) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if o.path == "" {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		res, err := config.LoadFromPath(o.path)
		if err != nil {
			return nil, err
		}
		cfg = res.Config
	}
	if err := o.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (o *frameOptions) apply(cfg *config.Config) error {
	if o.tabs != "" {
		cfg.Frame.Tabs = splitList(o.tabs)
	}
	if o.width > 0 {
		cfg.Frame.Width = o.width
	}
	if o.height > 0 {
		cfg.Frame.Height = o.height
	}
	if o.look != "" {
		cfg.Frame.Look = o.look
	}
	if o.flags != "" {
		cfg.Frame.Flags = splitList(o.flags)
	}
	if o.backend != "" {
		cfg.Engine.Backend = o.backend
	}
	if o.verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg.Validate()
}

// session is a configured frame ready to be queried.
type session struct {
	cfg    *config.Config
	engine drawing.Engine
	d      *decorator.Decorator
	close  func()
}

// open loads the config, opens the measuring engine and builds the frame.
func (o *frameOptions) open() (*session, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	setupLogging(cfg.Logging)

	engine, closeEngine, err := openEngine(cfg.Engine)
	if err != nil {
		return nil, err
	}
	d, err := cfg.NewDecorator(engine)
	if err != nil {
		closeEngine()
		return nil, err
	}
	return &session{cfg: cfg, engine: engine, d: d, close: closeEngine}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parseFlags runs fs over args, returning the exit code to use when parsing
// stopped the command.
func parseFlags(fs *flag.FlagSet, args []string) (int, bool) {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, false
		}
		return 2, false
	}
	return 0, true
}

func usageFunc(fs *flag.FlagSet, usage string, about ...string) func() {
	return func() {
		fmt.Fprintln(os.Stderr, "Usage: "+usage)
		if len(about) > 0 {
			fmt.Fprintln(os.Stderr, "")
			for _, line := range about {
				fmt.Fprintln(os.Stderr, line)
			}
		}
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
}
