package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/geom"
	"github.com/1broseidon/tabframe/internal/preview"
)

const defaultPreviewCols = 80

func runLayout(args []string) int {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageFunc(fs, "tabframe layout [--format yaml|json] [frame flags]",
		"Print the frame, border and title bar rects, every tab and the footprint.")
	var opts frameOptions
	opts.register(fs)
	format := fs.String("format", "yaml", "Output format: yaml or json")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "layout takes no arguments")
		fs.Usage()
		return 2
	}

	s, err := opts.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.close()

	if err := writeLayout(os.Stdout, s.d.Layout(), *format); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func writeLayout(w io.Writer, l decorator.Layout, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(l, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal layout: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml", "":
		data, err := yaml.Marshal(l)
		if err != nil {
			return fmt.Errorf("failed to marshal layout: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func runHit(args []string) int {
	fs := flag.NewFlagSet("hit", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageFunc(fs, "tabframe hit [frame flags] X Y",
		"Print which part of the decoration is at X,Y. The client frame starts at 0,0.")
	var opts frameOptions
	opts.register(fs)
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "hit requires X and Y")
		fs.Usage()
		return 2
	}
	p, err := parsePoint(fs.Arg(0), fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	s, err := opts.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.close()

	region, tab := s.d.RegionAt(p)
	writeHit(os.Stdout, region, tab)
	return 0
}

func parsePoint(xs, ys string) (geom.Point, error) {
	x, err := strconv.ParseFloat(xs, 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid X %q: %w", xs, err)
	}
	y, err := strconv.ParseFloat(ys, 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid Y %q: %w", ys, err)
	}
	return geom.Pt(x, y), nil
}

func writeHit(w io.Writer, region decorator.Region, tab int) {
	fmt.Fprintf(w, "region: %s\n", region)
	fmt.Fprintf(w, "tab: %d\n", tab)
}

func runPreview(args []string) int {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = usageFunc(fs, "tabframe preview [--cols N] [--rows N] [--color] [frame flags]",
		"Draw the decoration as a character map. Tabs show their index, x and z",
		"mark the close and zoom buttons, and dots fill the client area.")
	var opts frameOptions
	opts.register(fs)
	cols := fs.Int("cols", 0, "Map width in characters (default: terminal width)")
	rows := fs.Int("rows", 0, "Map height in characters (default: keep the frame aspect)")
	color := fs.Bool("color", false, "Use the decoration colors")
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}

	s, err := opts.open()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer s.close()

	width := *cols
	if width <= 0 {
		width = terminalWidth()
	}
	writePreview(os.Stdout, s.d, width, *rows, *color)
	return 0
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultPreviewCols
}

func writePreview(w io.Writer, d *decorator.Decorator, cols, rows int, color bool) {
	m := preview.Sample(d, cols, rows)
	fmt.Fprintln(w, preview.Summary(d))
	if color {
		fmt.Fprintln(w, m.Styled(d))
		return
	}
	fmt.Fprintln(w, m.String())
}

func printSettingsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tabframe settings <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  export          Write the tab strip settings as YAML")
	fmt.Fprintln(w, "  import FILE     Apply settings from FILE (- for stdin) and print the layout")
}

func runSettings(args []string) int {
	if len(args) == 0 {
		printSettingsUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "export":
		fs := flag.NewFlagSet("export", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = usageFunc(fs, "tabframe settings export [frame flags]")
		var opts frameOptions
		opts.register(fs)
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}

		s, err := opts.open()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer s.close()

		if err := exportSettings(os.Stdout, s.d); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "import":
		fs := flag.NewFlagSet("import", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = usageFunc(fs, "tabframe settings import [frame flags] FILE")
		var opts frameOptions
		opts.register(fs)
		format := fs.String("format", "yaml", "Layout output format: yaml or json")
		if code, ok := parseFlags(fs, args[1:]); !ok {
			return code
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "settings import requires FILE")
			fs.Usage()
			return 2
		}

		s, err := opts.open()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer s.close()

		if err := importSettings(s.d, fs.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if err := writeLayout(os.Stdout, s.d.Layout(), *format); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "help", "-h", "--help":
		printSettingsUsage(os.Stdout)
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown settings command: %s\n\n", args[0])
		printSettingsUsage(os.Stderr)
		return 2
	}
}

func exportSettings(w io.Writer, d *decorator.Decorator) error {
	settings, ok := d.Settings()
	if !ok {
		return errors.New("the frame has no tab strip to export")
	}
	return decorator.EncodeSettings(w, settings)
}

func importSettings(d *decorator.Decorator, path string) error {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open settings: %w", err)
		}
		defer f.Close()
		r = f
	}
	settings, err := decorator.DecodeSettings(r)
	if err != nil {
		return err
	}
	if !d.SetSettings(settings, nil) {
		return fmt.Errorf("settings in %s do not fit a frame with %d tabs", path, d.CountTabs())
	}
	return nil
}
