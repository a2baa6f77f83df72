package x11

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/drawing"
)

// Hint panel colors, packed 0xRRGGBB for a TrueColor visual.
const (
	ColorHintText = 0xf5f7fa
	ColorHintBg   = 0x1f2933
)

const (
	hintMargin   = 12
	hintPaddingX = 10
	hintPaddingY = 8
	hintMinWidth = 160
)

// fontPlain selects the plain core font for hint text.
var fontPlain = drawing.Font{}

// box is a pixel rectangle in root window coordinates.
type box struct {
	X, Y, Width, Height int
}

func (b box) intersects(o box) bool {
	return b.X < o.X+o.Width &&
		b.X+b.Width > o.X &&
		b.Y < o.Y+o.Height &&
		b.Y+b.Height > o.Y
}

// pane is one override-redirect window showing one draw op.
type pane struct {
	win    xproto.Window
	mapped bool
	op     decorator.DrawOp
	box    box
}

// Overlay shows the components a decorator paints as override-redirect
// windows on top of everything else, together with a small text panel.
type Overlay struct {
	conn  *Connection
	fonts *FontEngine

	mu    sync.Mutex
	gc    xproto.Gcontext
	panes []*pane
	hint  *pane
	lines []string
}

// NewOverlay prepares an overlay drawing text with fonts.
func NewOverlay(c *Connection, fonts *FontEngine) (*Overlay, error) {
	conn := c.XUtil.Conn()
	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, fmt.Errorf("allocate gc: %w", err)
	}
	err = xproto.CreateGCChecked(
		conn,
		gc,
		xproto.Drawable(c.Root),
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont|xproto.GcGraphicsExposures,
		[]uint32{ColorHintText, ColorHintBg, uint32(fonts.Font(false)), 0},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("create gc: %w", err)
	}
	return &Overlay{conn: c, fonts: fonts, gc: gc}, nil
}

// Render shows ops shifted by dx,dy together with a hint panel holding lines.
// Panes beyond len(ops) are hidden. The hint avoids the area covered by ops.
func (o *Overlay) Render(ops []decorator.DrawOp, dx, dy int, lines []string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	for len(o.panes) < len(ops) {
		p, err := o.newPane()
		if err != nil {
			return err
		}
		o.panes = append(o.panes, p)
	}
	for i := len(ops); i < len(o.panes); i++ {
		o.hidePane(o.panes[i])
	}

	var covered []box
	for i, op := range ops {
		x, y, w, h := op.Rect.OffsetBy(float64(dx), float64(dy)).XYWH()
		p := o.panes[i]
		p.op = op
		p.box = box{X: x, Y: y, Width: w, Height: h}
		o.showPane(p, fillPixel(op))
		covered = append(covered, p.box)
	}

	o.lines = lines
	return o.renderHint(covered)
}

// HideAll unmaps every overlay window without destroying it.
func (o *Overlay) HideAll() {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, p := range o.panes {
		o.hidePane(p)
	}
	if o.hint != nil {
		o.hidePane(o.hint)
	}
}

// Cleanup destroys every overlay window and the graphics context.
func (o *Overlay) Cleanup() {
	o.mu.Lock()
	defer o.mu.Unlock()

	conn := o.conn.XUtil.Conn()
	for _, p := range o.panes {
		xevent.Detach(o.conn.XUtil, p.win)
		xproto.DestroyWindow(conn, p.win)
	}
	if o.hint != nil {
		xevent.Detach(o.conn.XUtil, o.hint.win)
		xproto.DestroyWindow(conn, o.hint.win)
	}
	if o.gc != 0 {
		xproto.FreeGC(conn, o.gc)
	}
	o.panes = nil
	o.hint = nil
	o.gc = 0
}

func (o *Overlay) newPane() (*pane, error) {
	conn := o.conn.XUtil.Conn()
	screen := o.conn.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	// Value order follows the mask bits: back pixel, override redirect,
	// event mask.
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		o.conn.Root,
		0, 0,
		1, 1,
		0,
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		[]uint32{0, 1, xproto.EventMaskExposure},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("create overlay window: %w", err)
	}

	_ = ewmh.WmNameSet(o.conn.XUtil, wid, "tabframe overlay")

	p := &pane{win: wid}
	xevent.ExposeFun(func(_ *xgbutil.XUtil, ev xevent.ExposeEvent) {
		if ev.Count != 0 {
			return
		}
		o.mu.Lock()
		defer o.mu.Unlock()
		if p == o.hint {
			o.drawHintText()
			return
		}
		o.drawPaneText(p)
	}).Connect(o.conn.XUtil, wid)
	return p, nil
}

func (o *Overlay) showPane(p *pane, pixel uint32) {
	conn := o.conn.XUtil.Conn()
	w, h := max(p.box.Width, 1), max(p.box.Height, 1)

	xproto.ConfigureWindow(
		conn,
		p.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|xproto.ConfigWindowStackMode,
		[]uint32{uint32(int32(p.box.X)), uint32(int32(p.box.Y)), uint32(w), uint32(h), xproto.StackModeAbove},
	)
	xproto.ChangeWindowAttributes(conn, p.win, xproto.CwBackPixel, []uint32{pixel})
	xproto.ClearArea(conn, false, p.win, 0, 0, 0, 0)
	xproto.MapWindow(conn, p.win)
	p.mapped = true
	o.drawPaneText(p)
}

func (o *Overlay) hidePane(p *pane) {
	if !p.mapped {
		return
	}
	xproto.UnmapWindow(o.conn.XUtil.Conn(), p.win)
	p.mapped = false
}

// drawPaneText draws the title of a tab pane. Other panes are plain fills.
func (o *Overlay) drawPaneText(p *pane) {
	if !p.mapped || p.op.Component != decorator.ComponentTab || p.op.Title == "" || p.op.Font.Rotation != 0 {
		return
	}
	conn := o.conn.XUtil.Conn()
	m := o.fonts.Metrics(p.op.Font)
	baseline := textBaseline(p.box.Height, m.Ascent, m.Descent)

	xproto.ChangeGC(
		conn,
		o.gc,
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont,
		[]uint32{
			pixelOf(p.op.Colors[decorator.ColorTabText]),
			pixelOf(p.op.Colors[decorator.ColorTab]),
			uint32(o.fonts.Font(p.op.Font.Bold)),
		},
	)
	text := clipText(toLatin1(p.op.Title))
	xproto.ImageText8(conn, byte(len(text)), xproto.Drawable(p.win), o.gc, int16(p.op.TextOffset), int16(baseline), text)
}

func (o *Overlay) renderHint(avoid []box) error {
	if len(o.lines) == 0 {
		if o.hint != nil {
			o.hidePane(o.hint)
		}
		return nil
	}
	if o.hint == nil {
		p, err := o.newPane()
		if err != nil {
			return err
		}
		o.hint = p
	}

	m := o.fonts.Metrics(fontPlain)
	lineHeight := int(m.Height()) + 2
	widest := 0
	for _, line := range o.lines {
		widest = max(widest, int(o.fonts.StringWidth(line, fontPlain)))
	}
	width, height := hintDimensions(len(o.lines), widest, lineHeight)

	mon := o.conn.PointerMonitor()
	bounds := box{X: mon.X, Y: mon.Y, Width: mon.Width, Height: mon.Height}
	x, y := chooseHintPosition(bounds, avoid, width, height)

	o.hint.box = box{X: x, Y: y, Width: width, Height: height}
	o.showPane(o.hint, ColorHintBg)
	o.drawHintText()
	return nil
}

func (o *Overlay) drawHintText() {
	if o.hint == nil || !o.hint.mapped {
		return
	}
	conn := o.conn.XUtil.Conn()
	m := o.fonts.Metrics(fontPlain)
	lineHeight := int(m.Height()) + 2

	xproto.ChangeGC(
		conn,
		o.gc,
		xproto.GcForeground|xproto.GcBackground|xproto.GcFont,
		[]uint32{ColorHintText, ColorHintBg, uint32(o.fonts.Font(false))},
	)
	for i, line := range o.lines {
		if line == "" {
			continue
		}
		text := clipText(toLatin1(line))
		y := hintPaddingY + int(m.Ascent) + i*lineHeight
		xproto.ImageText8(conn, byte(len(text)), xproto.Drawable(o.hint.win), o.gc, hintPaddingX, int16(y), text)
	}
}

// fillPixel picks the background a pane is filled with.
func fillPixel(op decorator.DrawOp) uint32 {
	switch op.Component {
	case decorator.ComponentTab:
		return pixelOf(op.Colors[decorator.ColorTab])
	case decorator.ComponentCloseButton, decorator.ComponentZoomButton:
		if op.Pressed {
			return pixelOf(op.Colors[decorator.ColorButton])
		}
		return pixelOf(op.Colors[decorator.ColorButtonLight])
	default:
		// frame parts: the plain frame color sits in slot 2
		return pixelOf(op.Colors[2])
	}
}

// pixelOf packs c for a 24-bit TrueColor visual.
func pixelOf(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// textBaseline centers a line of the given ascent and descent in height.
func textBaseline(height int, ascent, descent float64) int {
	return (height+int(ascent)-int(descent))/2
}

func clipText(s string) string {
	if len(s) > 255 {
		return s[:255]
	}
	return s
}

func hintDimensions(lines, widest, lineHeight int) (width, height int) {
	width = widest + 2*hintPaddingX
	if width < hintMinWidth {
		width = hintMinWidth
	}
	height = lines*lineHeight + 2*hintPaddingY
	return width, height
}

// chooseHintPosition tries the four corners of bounds, top right first, and
// takes the first that does not overlap any avoid box.
func chooseHintPosition(bounds box, avoid []box, width, height int) (int, int) {
	width, height = max(width, 1), max(height, 1)

	left := bounds.X + hintMargin
	right := max(bounds.X+bounds.Width-hintMargin-width, left)
	top := bounds.Y + hintMargin
	bottom := max(bounds.Y+bounds.Height-hintMargin-height, top)

	candidates := []box{
		{X: right, Y: top, Width: width, Height: height},
		{X: left, Y: top, Width: width, Height: height},
		{X: right, Y: bottom, Width: width, Height: height},
		{X: left, Y: bottom, Width: width, Height: height},
	}
	for _, c := range candidates {
		clear := true
		for _, a := range avoid {
			if c.intersects(a) {
				clear = false
				break
			}
		}
		if clear {
			return clampHintOrigin(c.X, c.Y, bounds, width, height)
		}
	}
	return clampHintOrigin(candidates[0].X, candidates[0].Y, bounds, width, height)
}

func clampHintOrigin(x, y int, bounds box, width, height int) (int, int) {
	left := bounds.X + hintMargin
	right := bounds.X + bounds.Width - hintMargin - width
	if right < left {
		left = bounds.X
		right = bounds.X + bounds.Width - width
	}
	right = max(right, left)

	top := bounds.Y + hintMargin
	bottom := bounds.Y + bounds.Height - hintMargin - height
	if bottom < top {
		top = bounds.Y
		bottom = bounds.Y + bounds.Height - height
	}
	bottom = max(bottom, top)

	return min(max(x, left), right), min(max(y, top), bottom)
}
