package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/geom"
	"github.com/1broseidon/tabframe/internal/preview"
)

const defaultPreviewCols = 80

// errNotApplied is returned when the decorator rejected a mutation and left
// the frame unchanged.
var errNotApplied = errors.New("frame unchanged")

func (s *Server) handleAddTab(_ context.Context, _ *mcpsdk.CallToolRequest, args AddTabInput) (*mcpsdk.CallToolResult, AddTabOutput, error) {
	look := s.config.FrameLook()
	if args.Look != "" {
		var err error
		if look, err = decorator.ParseLook(args.Look); err != nil {
			return nil, AddTabOutput{}, err
		}
	}
	flags := s.config.FrameFlags()
	if args.Flags != nil {
		var err error
		if flags, err = decorator.ParseFlags(strings.Join(args.Flags, ",")); err != nil {
			return nil, AddTabOutput{}, err
		}
	}
	index := -1
	if args.Index != nil {
		index = *args.Index
	}

	var out AddTabOutput
	err := s.withFrame(func(d *decorator.Decorator) error {
		var dirty geom.Region
		tab, err := d.AddTab(args.Title, look, flags, index, &dirty)
		if err != nil {
			return err
		}
		out = AddTabOutput{Index: d.IndexOf(tab), TabCount: d.CountTabs(), Dirty: dirty.Rects()}
		return nil
	})
	if err != nil {
		s.logger.Warn("add_tab failed", "title", args.Title, "error", err)
		return nil, AddTabOutput{}, fmt.Errorf("add tab %q: %w", args.Title, err)
	}
	s.logger.Debug("add_tab", "title", args.Title, "index", out.Index)
	return nil, out, nil
}

func (s *Server) handleRemoveTab(_ context.Context, _ *mcpsdk.CallToolRequest, args TabIndexInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	return s.mutate("remove_tab", func(d *decorator.Decorator, dirty *geom.Region) bool {
		return d.RemoveTab(args.Index, dirty)
	})
}

func (s *Server) handleMoveTab(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveTabInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	return s.mutate("move_tab", func(d *decorator.Decorator, dirty *geom.Region) bool {
		return d.MoveTab(args.From, args.To, args.Interactive, dirty)
	})
}

func (s *Server) handleSetTitle(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTitleInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	return s.mutate("set_title", func(d *decorator.Decorator, dirty *geom.Region) bool {
		return d.SetTitle(args.Index, args.Title, dirty)
	})
}

func (s *Server) handleUpdateTab(_ context.Context, _ *mcpsdk.CallToolRequest, args UpdateTabInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	var look *decorator.Look
	if args.Look != nil {
		l, err := decorator.ParseLook(*args.Look)
		if err != nil {
			return nil, MutationOutput{}, err
		}
		look = &l
	}
	var flags *decorator.Flags
	if args.Flags != nil {
		f, err := decorator.ParseFlags(strings.Join(*args.Flags, ","))
		if err != nil {
			return nil, MutationOutput{}, err
		}
		flags = &f
	}

	return s.mutate("update_tab", func(d *decorator.Decorator, dirty *geom.Region) bool {
		if d.TabAt(args.Index) == nil {
			return false
		}
		if args.Top {
			dirty.IncludeRegion(d.Footprint())
			d.SetTopTab(args.Index)
			dirty.IncludeRegion(d.Footprint())
		}
		if look != nil {
			d.SetLook(args.Index, *look, dirty)
		}
		if flags != nil {
			d.SetFlags(args.Index, *flags, dirty)
		}
		if args.Focused != nil {
			d.SetFocus(args.Index, *args.Focused)
			d.ExtendDirtyRegion(decorator.RegionTab, dirty)
		}
		return true
	})
}

func (s *Server) handleSetTabLocation(_ context.Context, _ *mcpsdk.CallToolRequest, args SetTabLocationInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	return s.mutate("set_tab_location", func(d *decorator.Decorator, dirty *geom.Region) bool {
		return d.SetTabLocation(args.Index, args.Location, args.Shifting, dirty)
	})
}

func (s *Server) handleResizeFrame(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	return s.mutate("resize_frame", func(d *decorator.Decorator, dirty *geom.Region) bool {
		frame := d.Frame()
		if frame.Width()+args.DX < 0 || frame.Height()+args.DY < 0 {
			return false
		}
		d.ResizeBy(args.DX, args.DY, dirty)
		return true
	})
}

func (s *Server) handleMoveFrame(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizeInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	return s.mutate("move_frame", func(d *decorator.Decorator, dirty *geom.Region) bool {
		before := d.Footprint()
		d.MoveBy(args.DX, args.DY)
		dirty.IncludeRegion(before)
		dirty.IncludeRegion(d.Footprint())
		return true
	})
}

// mutate applies fn under the frame lock and reports the area it
// invalidated.
func (s *Server) mutate(tool string, fn func(d *decorator.Decorator, dirty *geom.Region) bool) (*mcpsdk.CallToolResult, MutationOutput, error) {
	var out MutationOutput
	_ = s.withFrame(func(d *decorator.Decorator) error {
		var dirty geom.Region
		out.Applied = fn(d, &dirty)
		out.TabCount = d.CountTabs()
		out.Dirty = dirty.Rects()
		return nil
	})
	if !out.Applied {
		s.logger.Debug(tool+" rejected", "tabs", out.TabCount)
		return nil, out, fmt.Errorf("%s: %w", tool, errNotApplied)
	}
	s.logger.Debug(tool, "tabs", out.TabCount, "dirty", len(out.Dirty))
	return nil, out, nil
}

func (s *Server) handleRegionAt(_ context.Context, _ *mcpsdk.CallToolRequest, args PointInput) (*mcpsdk.CallToolResult, RegionAtOutput, error) {
	var out RegionAtOutput
	_ = s.withFrame(func(d *decorator.Decorator) error {
		region, tab := d.RegionAt(geom.Pt(args.X, args.Y))
		out = RegionAtOutput{Region: region.String(), Tab: tab}
		return nil
	})
	return nil, out, nil
}

func (s *Server) handleClick(_ context.Context, _ *mcpsdk.CallToolRequest, args PointInput) (*mcpsdk.CallToolResult, ClickOutput, error) {
	var out ClickOutput
	_ = s.withFrame(func(d *decorator.Decorator) error {
		var dirty geom.Region
		p := geom.Pt(args.X, args.Y)
		d.Press(p, &dirty)
		region, tab, clicked := d.Release(p, &dirty)
		out = ClickOutput{Region: region.String(), Tab: tab, Clicked: clicked, Dirty: dirty.Rects()}
		return nil
	})
	if out.Clicked {
		s.logger.Info("button clicked", "region", out.Region, "tab", out.Tab)
	}
	return nil, out, nil
}

func (s *Server) handleLayout(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, LayoutOutput, error) {
	var out LayoutOutput
	_ = s.withFrame(func(d *decorator.Decorator) error {
		out.Layout = d.Layout()
		return nil
	})
	return nil, out, nil
}

func (s *Server) handleExportSettings(_ context.Context, _ *mcpsdk.CallToolRequest, _ EmptyInput) (*mcpsdk.CallToolResult, SettingsOutput, error) {
	var buf bytes.Buffer
	err := s.withFrame(func(d *decorator.Decorator) error {
		settings, ok := d.Settings()
		if !ok {
			return errors.New("the frame has no tab strip")
		}
		return decorator.EncodeSettings(&buf, settings)
	})
	if err != nil {
		return nil, SettingsOutput{}, fmt.Errorf("export settings: %w", err)
	}
	return nil, SettingsOutput{YAML: buf.String()}, nil
}

func (s *Server) handleImportSettings(_ context.Context, _ *mcpsdk.CallToolRequest, args ImportSettingsInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	settings, err := decorator.DecodeSettings(strings.NewReader(args.YAML))
	if err != nil {
		return nil, MutationOutput{}, err
	}
	return s.mutate("import_settings", func(d *decorator.Decorator, dirty *geom.Region) bool {
		return d.SetSettings(settings, dirty)
	})
}

func (s *Server) handlePreview(_ context.Context, _ *mcpsdk.CallToolRequest, args PreviewInput) (*mcpsdk.CallToolResult, PreviewOutput, error) {
	cols := args.Cols
	if cols <= 0 {
		cols = defaultPreviewCols
	}
	var out PreviewOutput
	_ = s.withFrame(func(d *decorator.Decorator) error {
		out.Summary = preview.Summary(d)
		out.Map = preview.Sample(d, cols, args.Rows).String()
		return nil
	})
	return nil, out, nil
}

func (s *Server) handleReset(_ context.Context, _ *mcpsdk.CallToolRequest, args ResetInput) (*mcpsdk.CallToolResult, MutationOutput, error) {
	cfg := *s.config
	if args.Tabs != nil {
		cfg.Frame.Tabs = args.Tabs
	}
	fresh, err := cfg.NewDecorator(s.engine)
	if err != nil {
		return nil, MutationOutput{}, fmt.Errorf("reset frame: %w", err)
	}

	var out MutationOutput
	_ = s.withFrame(func(d *decorator.Decorator) error {
		var dirty geom.Region
		dirty.IncludeRegion(d.Footprint())
		dirty.IncludeRegion(fresh.Footprint())
		s.d = fresh
		out = MutationOutput{Applied: true, TabCount: fresh.CountTabs(), Dirty: dirty.Rects()}
		return nil
	})
	s.logger.Info("frame reset", "tabs", out.TabCount)
	return nil, out, nil
}
