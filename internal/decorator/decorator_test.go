package decorator

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/1broseidon/tabframe/internal/drawing"
	"github.com/1broseidon/tabframe/internal/geom"
)

// With the default 12pt bold font, a titled look and this engine:
// bw=5, tab thickness=ceil(10+3+7)=20, button offset=5, inset=2, button
// size=12, minTabSize=2*2+18+2*(5+12)=56, maxTabSize=titleWidth+18+56.
var testEngine = drawing.Fixed{CharWidth: 7, Ascent: 10, Descent: 3}

// testFrame is 400x300 pixels: R(100,100,499,399), strip span 409.
var testFrame = geom.FromXYWH(100, 100, 400, 300)

func newTestDecorator(t *testing.T, frame geom.Rect, engine drawing.Engine) *Decorator {
	t.Helper()
	return New(frame, Options{Appearance: DefaultAppearance(), Engine: engine})
}

func mustAddTab(t *testing.T, d *Decorator, title string, look Look, flags Flags) *Tab {
	t.Helper()
	tab, err := d.AddTab(title, look, flags, -1, nil)
	if err != nil {
		t.Fatalf("AddTab(%q): %v", title, err)
	}
	return tab
}

func TestNew_NoTabsHasNoDecoration(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	if d.CountTabs() != 0 || d.TopTab() != -1 {
		t.Fatalf("expected empty decorator, got %d tabs top=%d", d.CountTabs(), d.TopTab())
	}
	if d.BorderWidth() != 0 {
		t.Fatalf("expected no border, got %g", d.BorderWidth())
	}
	if d.TitleBarRect().IsValid() {
		t.Fatalf("expected invalid title bar, got %v", d.TitleBarRect())
	}
	if !d.Footprint().IsEmpty() {
		t.Fatalf("expected empty footprint")
	}
	if r, i := d.RegionAt(geom.Pt(200, 200)); r != RegionNone || i != -1 {
		t.Fatalf("expected none, got %v %d", r, i)
	}
}

func TestLayout_BorderWidthByLook(t *testing.T) {
	tests := []struct {
		look Look
		bw   float64
		tab  bool
	}{
		{LookNoBorder, 0, false},
		{LookBordered, 1, false},
		{LookTitled, 5, true},
		{LookDocument, 5, true},
		{LookModal, 5, false},
		{LookFloating, 3, true},
		{LookLeftTitled, 3, true},
	}
	for _, tt := range tests {
		t.Run(tt.look.String(), func(t *testing.T) {
			d := newTestDecorator(t, testFrame, testEngine)
			mustAddTab(t, d, "Terminal", tt.look, 0)
			if got := d.BorderWidth(); got != tt.bw {
				t.Fatalf("border width = %g, want %g", got, tt.bw)
			}
			if got := d.TitleBarRect().IsValid(); got != tt.tab {
				t.Fatalf("title bar valid = %v, want %v", got, tt.tab)
			}
			if tt.bw > 0 {
				want := testFrame.InsetBy(-tt.bw, -tt.bw)
				if d.BorderRect() != want {
					t.Fatalf("border rect = %v, want %v", d.BorderRect(), want)
				}
			} else if d.BorderRect() != testFrame {
				t.Fatalf("border rect = %v, want frame", d.BorderRect())
			}
		})
	}
}

func TestLayout_SingleTitledTab(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	tab := mustAddTab(t, d, "Terminal", LookTitled, 0)

	if tab.MinSize() != 56 {
		t.Fatalf("min size = %g, want 56", tab.MinSize())
	}
	// 8 runes * 7px + text offset 18 + min 56
	if tab.MaxSize() != 130 {
		t.Fatalf("max size = %g, want 130", tab.MaxSize())
	}
	if want := geom.R(95, 75, 225, 95); tab.Rect() != want {
		t.Fatalf("tab rect = %v, want %v", tab.Rect(), want)
	}
	if d.TitleBarRect() != tab.Rect() {
		t.Fatalf("title bar %v differs from tab %v", d.TitleBarRect(), tab.Rect())
	}
	if want := geom.R(100, 80, 112, 92); tab.CloseRect() != want {
		t.Fatalf("close rect = %v, want %v", tab.CloseRect(), want)
	}
	if want := geom.R(208, 80, 220, 92); tab.ZoomRect() != want {
		t.Fatalf("zoom rect = %v, want %v", tab.ZoomRect(), want)
	}
	if tab.MinimizeRect().IsValid() {
		t.Fatalf("minimize rect should stay invalid, got %v", tab.MinimizeRect())
	}
	if tab.TruncatedTitle() != "Terminal" || tab.TruncatedTitleLength() != 8 {
		t.Fatalf("truncated title = %q (%d)", tab.TruncatedTitle(), tab.TruncatedTitleLength())
	}
	if d.TabHeight() != 20 {
		t.Fatalf("tab height = %g, want 20", d.TabHeight())
	}
	if want := geom.R(486, 386, 504, 404); d.ResizeRect() != want {
		t.Fatalf("resize rect = %v, want %v", d.ResizeRect(), want)
	}
}

func TestLayout_LeftTitledRunsAlongY(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	tab := mustAddTab(t, d, "Tools", LookLeftTitled, 0)

	r := tab.Rect()
	if r.Right != testFrame.Left-3 || r.Top != testFrame.Top-3 {
		t.Fatalf("left tab rect = %v, expected it to hug the left border", r)
	}
	// ceil(10+3+5) wide
	if r.Width() != 18 {
		t.Fatalf("left tab width = %g, want 18", r.Width())
	}
	if r.Height() != tab.MaxSize() {
		t.Fatalf("left tab length = %g, want max %g", r.Height(), tab.MaxSize())
	}
}

func TestAddRemove_CountAndSizeBounds(t *testing.T) {
	d := newTestDecorator(t, geom.FromXYWH(0, 0, 1200, 400), testEngine)
	titles := []string{"one", "two", "three", "four", "five", "six"}
	for _, title := range titles {
		mustAddTab(t, d, title, LookTitled, 0)
	}
	if d.CountTabs() != len(titles) {
		t.Fatalf("count = %d, want %d", d.CountTabs(), len(titles))
	}

	for _, index := range []int{4, 0, 2} {
		if !d.RemoveTab(index, nil) {
			t.Fatalf("RemoveTab(%d) failed", index)
		}
	}
	if d.CountTabs() != 3 {
		t.Fatalf("count after removal = %d, want 3", d.CountTabs())
	}
	if d.TopTab() < 0 || d.TopTab() >= d.CountTabs() {
		t.Fatalf("top tab %d out of range", d.TopTab())
	}

	for i := 0; i < d.CountTabs(); i++ {
		tab := d.TabAt(i)
		w := tab.Rect().Width()
		if w < tab.MinSize() || w > tab.MaxSize() {
			t.Fatalf("tab %d width %g outside [%g,%g]", i, w, tab.MinSize(), tab.MaxSize())
		}
	}
	if got := d.Title(0) + "," + d.Title(1) + "," + d.Title(2); got != "two,three,six" {
		t.Fatalf("remaining titles = %s", got)
	}
}

func TestAddTab_Errors(t *testing.T) {
	d := New(testFrame, Options{Appearance: DefaultAppearance(), Engine: testEngine, MaxTabs: 2})

	if _, err := d.AddTab("x", LookTitled, 0, 1, nil); !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	mustAddTab(t, d, "a", LookTitled, 0)
	mustAddTab(t, d, "b", LookTitled, 0)

	before := d.TitleBarRect()
	if _, err := d.AddTab("c", LookTitled, 0, -1, nil); !errors.Is(err, ErrAllocation) {
		t.Fatalf("expected ErrAllocation, got %v", err)
	}
	if d.CountTabs() != 2 {
		t.Fatalf("count changed on failed add: %d", d.CountTabs())
	}
	if d.TitleBarRect() != before {
		t.Fatalf("title bar changed on failed add")
	}

	if !d.RemoveTab(0, nil) {
		t.Fatalf("RemoveTab failed")
	}
	if _, err := d.AddTab("c", LookTitled, 0, 0, nil); err != nil {
		t.Fatalf("AddTab after removal: %v", err)
	}
	if d.Title(0) != "c" || d.Title(1) != "b" {
		t.Fatalf("unexpected order %q %q", d.Title(0), d.Title(1))
	}
}

func TestOutOfRange_ReturnsFalse(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "a", LookTitled, 0)

	if d.RemoveTab(3, nil) || d.RemoveTab(-1, nil) {
		t.Fatalf("RemoveTab out of range should fail")
	}
	if d.MoveTab(0, 2, false, nil) {
		t.Fatalf("MoveTab out of range should fail")
	}
	if d.SetTitle(1, "x", nil) || d.SetLook(1, LookModal, nil) || d.SetFlags(1, 0, nil) {
		t.Fatalf("setters out of range should fail")
	}
	if d.SetFocus(1, true) || d.SetTopTab(1) || d.SetTabLocation(1, 10, false, nil) {
		t.Fatalf("tab operations out of range should fail")
	}
	if d.TabAt(1) != nil || d.TabRect(1).IsValid() {
		t.Fatalf("expected nil tab and invalid rect")
	}
}

func checkStripFilled(t *testing.T, d *Decorator) {
	t.Helper()
	var sum float64
	for i := 0; i < d.CountTabs(); i++ {
		r := d.TabRect(i)
		sum += r.Width()
		if i > 0 && d.TabRect(i-1).Right != r.Left {
			t.Fatalf("tab %d starts at %g, previous ends at %g", i, r.Left, d.TabRect(i-1).Right)
		}
	}
	span := d.Frame().Width() + 2*d.BorderWidth()
	if sum != span {
		t.Fatalf("tab widths sum to %g, strip is %g", sum, span)
	}
	last := d.TabRect(d.CountTabs() - 1)
	if last.Right != d.BorderRect().Right {
		t.Fatalf("last tab ends at %g, border at %g", last.Right, d.BorderRect().Right)
	}
}

func TestRedistribution_EqualTabsShareStrip(t *testing.T) {
	// span = 290 + 2*5 = 300; each title 19*4 = 76 gives max 150
	engine := drawing.Fixed{CharWidth: 4, Ascent: 10, Descent: 3}
	d := newTestDecorator(t, geom.FromXYWH(0, 0, 291, 200), engine)
	title := strings.Repeat("a", 19)
	for i := 0; i < 3; i++ {
		tab := mustAddTab(t, d, title, LookTitled, 0)
		if tab.MaxSize() != 150 {
			t.Fatalf("max size = %g, want 150", tab.MaxSize())
		}
	}

	for i := 0; i < 3; i++ {
		r := d.TabRect(i)
		if r.Width() != 100 {
			t.Fatalf("tab %d width = %g, want 100", i, r.Width())
		}
		if want := float64(i * 100); d.TabLocation(i) != want {
			t.Fatalf("tab %d offset = %g, want %g", i, d.TabLocation(i), want)
		}
	}
	checkStripFilled(t, d)
}

func TestRedistribution_WidestShrinkFirst(t *testing.T) {
	engine := drawing.Fixed{CharWidth: 1, Ascent: 10, Descent: 3}
	d := newTestDecorator(t, geom.FromXYWH(0, 0, 291, 200), engine)
	// max sizes 150, 140 and 84
	mustAddTab(t, d, strings.Repeat("a", 76), LookTitled, 0)
	mustAddTab(t, d, strings.Repeat("b", 66), LookTitled, 0)
	mustAddTab(t, d, strings.Repeat("c", 10), LookTitled, 0)

	widths := []float64{d.TabRect(0).Width(), d.TabRect(1).Width(), d.TabRect(2).Width()}
	// 374 has to become 300: 150 drops to 140, then both give up 32
	if widths[0] != 108 || widths[1] != 108 || widths[2] != 84 {
		t.Fatalf("widths = %v, want [108 108 84]", widths)
	}
	checkStripFilled(t, d)
}

func TestRegionAt_Borders(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, 0)

	tests := []struct {
		name   string
		p      geom.Point
		region Region
		tab    int
	}{
		{"outer left border pixel", geom.Pt(95, 200), RegionLeftBorder, -1},
		{"outside left border", geom.Pt(94, 200), RegionNone, -1},
		{"client area", geom.Pt(300, 200), RegionNone, -1},
		{"top border", geom.Pt(300, 97), RegionTopBorder, -1},
		{"right border", geom.Pt(502, 200), RegionRightBorder, -1},
		{"bottom border", geom.Pt(300, 402), RegionBottomBorder, -1},
		{"resize corner on right border", geom.Pt(502, 390), RegionRightBottomCorner, -1},
		{"resize corner on bottom border", geom.Pt(490, 402), RegionRightBottomCorner, -1},
		{"tab", geom.Pt(150, 85), RegionTab, 0},
		{"close button", geom.Pt(105, 85), RegionCloseButton, 0},
		{"zoom button", geom.Pt(215, 85), RegionZoomButton, 0},
		{"right of tab", geom.Pt(300, 85), RegionNone, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, tab := d.RegionAt(tt.p)
			if region != tt.region || tab != tt.tab {
				t.Fatalf("RegionAt(%v) = %v %d, want %v %d", tt.p, region, tab, tt.region, tt.tab)
			}
		})
	}
}

func TestRegionAt_NotResizableHasNoCorner(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, NotResizable)

	if region, _ := d.RegionAt(geom.Pt(502, 390)); region != RegionRightBorder {
		t.Fatalf("expected right border, got %v", region)
	}
	if !d.Flags(0).Has(NotHResizable | NotVResizable) {
		t.Fatalf("resize flags not normalized: %v", d.Flags(0))
	}
}

func TestRegionAt_DocumentKnob(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookDocument, 0)

	if region, _ := d.RegionAt(geom.Pt(495, 395)); region != RegionRightBottomCorner {
		t.Fatalf("expected knob inside frame, got %v", region)
	}
	if !d.Footprint().Contains(geom.Pt(495, 395)) {
		t.Fatalf("footprint should cover the resize knob")
	}
}

func TestFootprint_CachedAndInvalidated(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, 0)

	first := d.Footprint()
	second := d.Footprint()
	if !first.Equal(second) {
		t.Fatalf("cached footprint changed between calls")
	}
	for _, p := range []geom.Point{geom.Pt(95, 200), geom.Pt(150, 85), geom.Pt(502, 200)} {
		if !first.Contains(p) {
			t.Fatalf("footprint misses %v", p)
		}
	}
	if first.Contains(geom.Pt(300, 200)) || first.Contains(geom.Pt(300, 85)) {
		t.Fatalf("footprint covers client area or empty strip")
	}

	d.ResizeBy(50, 0, nil)
	resized := d.Footprint()
	if resized.Equal(first) {
		t.Fatalf("footprint not recomputed after resize")
	}
	if !resized.Contains(geom.Pt(552, 200)) {
		t.Fatalf("resized footprint misses new right border")
	}

	d.MoveBy(10, 20)
	moved := d.Footprint()
	if !moved.Contains(geom.Pt(105, 220)) || moved.Contains(geom.Pt(95, 200)) {
		t.Fatalf("footprint not translated")
	}
}

func TestFootprint_Bordered(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookBordered, 0)

	fp := d.Footprint()
	if !fp.Contains(geom.Pt(99, 200)) || fp.Contains(geom.Pt(98, 200)) {
		t.Fatalf("bordered footprint should be one pixel wide")
	}
}

func TestResizeBy_SingleTabGrowsWithFrame(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	tab := mustAddTab(t, d, strings.Repeat("w", 80), LookTitled, 0)

	if tab.Rect().Right != 504 {
		t.Fatalf("tab should span the strip, got %v", tab.Rect())
	}

	var dirty geom.Region
	d.ResizeBy(50, 0, &dirty)

	if want := geom.R(95, 75, 554, 95); tab.Rect() != want {
		t.Fatalf("tab rect after resize = %v, want %v", tab.Rect(), want)
	}
	if tab.Rect().Width() >= tab.MaxSize() {
		t.Fatalf("tab should stay below its max size")
	}
	if tab.Offset() != 0 {
		t.Fatalf("offset changed to %g", tab.Offset())
	}
	if !dirty.Contains(geom.Pt(550, 85)) {
		t.Fatalf("dirty region misses the grown tab")
	}
	if !dirty.Contains(geom.Pt(552, 200)) || !dirty.Contains(geom.Pt(502, 200)) {
		t.Fatalf("dirty region misses old or new right border")
	}
	if d.TitleBarRect() != tab.Rect() {
		t.Fatalf("title bar not updated")
	}
	if tab.ZoomRect().Right != 549 {
		t.Fatalf("zoom button not moved: %v", tab.ZoomRect())
	}
}

func TestSetTabLocation_SingleTab(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	tab := mustAddTab(t, d, "Terminal", LookTitled, 0)

	var dirty geom.Region
	if !d.SetTabLocation(0, 100, false, &dirty) {
		t.Fatalf("SetTabLocation failed")
	}
	if tab.Rect().Left != 195 || d.TabLocation(0) != 100 {
		t.Fatalf("tab at %v offset %g", tab.Rect(), d.TabLocation(0))
	}
	if !dirty.Contains(geom.Pt(100, 85)) || !dirty.Contains(geom.Pt(300, 85)) {
		t.Fatalf("dirty should cover old and new tab")
	}
	if d.SetTabLocation(0, 100, false, nil) {
		t.Fatalf("unchanged location should report false")
	}

	// clamped to span - width = 409 - 130
	d.SetTabLocation(0, 10000, false, nil)
	if d.TabLocation(0) != 279 || tab.Rect().Right != 504 {
		t.Fatalf("location not clamped: %g %v", d.TabLocation(0), tab.Rect())
	}

	d.ResizeBy(0, 10, nil)
	if tab.Rect().Right != 504 {
		t.Fatalf("relative location lost on resize: %v", tab.Rect())
	}
}

func TestMoveTab(t *testing.T) {
	frame := geom.FromXYWH(0, 0, 1001, 200)

	t.Run("discrete", func(t *testing.T) {
		d := newTestDecorator(t, frame, testEngine)
		for _, title := range []string{"A", "B", "C"} {
			mustAddTab(t, d, title, LookTitled, 0)
		}
		var dirty geom.Region
		if !d.MoveTab(0, 2, false, &dirty) {
			t.Fatalf("MoveTab failed")
		}
		if d.Title(0) != "B" || d.Title(1) != "C" || d.Title(2) != "A" {
			t.Fatalf("order = %s %s %s", d.Title(0), d.Title(1), d.Title(2))
		}
		if d.TopTab() != 2 {
			t.Fatalf("top tab = %d, want 2", d.TopTab())
		}
		if d.TabLocation(0) != 0 || d.TabRect(1).Left != d.TabRect(0).Right {
			t.Fatalf("strip not relaid out")
		}
		if dirty.IsEmpty() {
			t.Fatalf("expected dirty title bar")
		}
	})

	t.Run("interactive", func(t *testing.T) {
		d := newTestDecorator(t, frame, testEngine)
		for _, title := range []string{"AAAA", "BBBB", "CCCC"} {
			mustAddTab(t, d, title, LookTitled, 0)
		}
		width := d.TabRect(0).Width()
		if !d.MoveTab(0, 1, true, nil) {
			t.Fatalf("MoveTab failed")
		}
		if d.Title(0) != "BBBB" || d.Title(1) != "AAAA" {
			t.Fatalf("order = %s %s", d.Title(0), d.Title(1))
		}
		if d.TabLocation(0) != 0 || d.TabLocation(1) != width {
			t.Fatalf("offsets = %g %g, want 0 %g", d.TabLocation(0), d.TabLocation(1), width)
		}
		if d.TabRect(0).Right != d.TabRect(1).Left {
			t.Fatalf("tabs not contiguous after swap")
		}
	})
}

func TestSettings_RoundTrip(t *testing.T) {
	build := func() *Decorator {
		d := newTestDecorator(t, testFrame, testEngine)
		mustAddTab(t, d, "Terminal", LookTitled, 0)
		return d
	}

	src := build()
	src.SetTabLocation(0, 42, false, nil)
	s, ok := src.Settings()
	if !ok {
		t.Fatalf("Settings failed")
	}
	if *s.BorderWidth != 5 || len(s.TabLocations) != 1 || s.TabLocations[0] != 42 {
		t.Fatalf("unexpected settings %+v", s)
	}

	var buf strings.Builder
	if err := EncodeSettings(&buf, s); err != nil {
		t.Fatalf("EncodeSettings: %v", err)
	}
	decoded, err := DecodeSettings(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("DecodeSettings: %v\n%s", err, buf.String())
	}

	dst := build()
	if !dst.SetSettings(decoded, nil) {
		t.Fatalf("SetSettings rejected %+v", decoded)
	}
	if dst.TabRect(0) != src.TabRect(0) {
		t.Fatalf("tab rect %v, want %v", dst.TabRect(0), src.TabRect(0))
	}
}

func TestSettings_RejectsIncomplete(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "a", LookTitled, 0)
	mustAddTab(t, d, "b", LookTitled, 0)
	s, ok := d.Settings()
	if !ok {
		t.Fatalf("Settings failed")
	}

	missingBorder := s
	missingBorder.BorderWidth = nil
	shortLocations := s
	shortLocations.TabLocations = s.TabLocations[:1]
	empty := geom.Invalid
	emptyFrame := s
	emptyFrame.TabFrame = &empty

	for name, bad := range map[string]Settings{
		"missing border":  missingBorder,
		"short locations": shortLocations,
		"empty frame":     emptyFrame,
	} {
		before := d.TabRect(1)
		if d.SetSettings(bad, nil) {
			t.Fatalf("%s: expected rejection", name)
		}
		if d.TabRect(1) != before {
			t.Fatalf("%s: state changed", name)
		}
	}

	if _, err := DecodeSettings(strings.NewReader("tab_frame: {left: 0}\nbogus: 1\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}

	bare := newTestDecorator(t, testFrame, testEngine)
	if _, ok := bare.Settings(); ok {
		t.Fatalf("settings without a tab strip should fail")
	}
}

func TestSetRegionHighlight(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, 0)

	if d.SetRegionHighlight(RegionNone, HighlightResizeBorder, nil, -1) {
		t.Fatalf("none region cannot be highlighted")
	}
	if d.SetRegionHighlight(regionCount, HighlightResizeBorder, nil, -1) {
		t.Fatalf("out of range region cannot be highlighted")
	}

	var dirty geom.Region
	if !d.SetRegionHighlight(RegionLeftBorder, HighlightResizeBorder, &dirty, -1) {
		t.Fatalf("SetRegionHighlight failed")
	}
	if d.RegionHighlight(RegionLeftBorder) != HighlightResizeBorder {
		t.Fatalf("highlight not stored")
	}
	// left border dirty area extends over the top and bottom borders
	if !dirty.Contains(geom.Pt(97, 96)) || !dirty.Contains(geom.Pt(97, 403)) {
		t.Fatalf("dirty region = %v", dirty.Rects())
	}

	var again geom.Region
	if !d.SetRegionHighlight(RegionLeftBorder, HighlightResizeBorder, &again, -1) {
		t.Fatalf("repeated highlight should succeed")
	}
	if !again.IsEmpty() {
		t.Fatalf("unchanged highlight should not dirty anything")
	}

	d.SetRegionHighlight(RegionTab, HighlightUserDefined, nil, 0)
	if !d.TabAt(0).IsHighlighted() {
		t.Fatalf("tab highlight flag not set")
	}

	colors := d.ComponentColors(ComponentLeftBorder, HighlightResizeBorder, 0)
	for i := 0; i < 6; i++ {
		if colors[i].B != 255 {
			t.Fatalf("resize highlight should dye slot %d blue, got %v", i, colors[i])
		}
	}
}

func TestPressRelease(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	tab := mustAddTab(t, d, "Terminal", LookTitled, 0)
	close := geom.Pt(105, 85)

	var dirty geom.Region
	if r, i := d.Press(close, &dirty); r != RegionCloseButton || i != 0 {
		t.Fatalf("Press = %v %d", r, i)
	}
	if !tab.Pressed(RegionCloseButton) || dirty.IsEmpty() {
		t.Fatalf("close button not pressed")
	}
	if r, i, invoked := d.Release(close, nil); r != RegionCloseButton || i != 0 || !invoked {
		t.Fatalf("Release = %v %d %v", r, i, invoked)
	}
	if tab.Pressed(RegionCloseButton) {
		t.Fatalf("close button still pressed")
	}

	d.Press(close, nil)
	if _, _, invoked := d.Release(geom.Pt(300, 200), nil); invoked {
		t.Fatalf("release outside should not invoke")
	}
	if _, i, _ := d.Release(close, nil); i != -1 {
		t.Fatalf("release without press should report no tab")
	}
}

func TestPress_DisabledButton(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	tab := mustAddTab(t, d, "Terminal", LookTitled, NotClosable)

	if tab.CloseRect().IsValid() {
		t.Fatalf("disabled close button should have no area, got %v", tab.CloseRect())
	}
	if r, _ := d.Press(geom.Pt(105, 85), nil); r != RegionTab {
		t.Fatalf("expected tab region, got %v", r)
	}
	if tab.MinSize() != 39 {
		t.Fatalf("min size without close = %g, want 39", tab.MinSize())
	}
}

func TestSetFocus_StackedUnfocusedTabLosesZoom(t *testing.T) {
	d := newTestDecorator(t, geom.FromXYWH(0, 0, 1001, 200), testEngine)
	mustAddTab(t, d, "a", LookTitled, 0)
	mustAddTab(t, d, "b", LookTitled, 0)

	d.SetFocus(1, true)
	if !d.IsFocus(1) || d.IsFocus(0) {
		t.Fatalf("focus not recorded")
	}
	if !d.TabAt(1).ZoomRect().IsValid() {
		t.Fatalf("focused tab should keep its zoom button")
	}
	if d.TabAt(0).ZoomRect().IsValid() {
		t.Fatalf("unfocused stacked tab should hide its zoom button")
	}
}

func TestSetTitle_Dirty(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, 0)

	var dirty geom.Region
	if !d.SetTitle(0, "A much longer terminal title", &dirty) {
		t.Fatalf("SetTitle failed")
	}
	r := d.TabRect(0)
	if !dirty.Contains(geom.Pt(r.Right, r.Bottom+1)) {
		t.Fatalf("dirty should reach one pixel below the new tab")
	}
	if d.TabAt(0).TruncatedTitle() != "A much longer terminal title" {
		t.Fatalf("title = %q", d.TabAt(0).TruncatedTitle())
	}
}

func TestTruncation_NarrowFrame(t *testing.T) {
	const title = "An overly long window title" // 189px

	t.Run("lone tab keeps its text offset", func(t *testing.T) {
		// span 129: close ends at 12, zoom starts at 107
		d := newTestDecorator(t, geom.FromXYWH(0, 0, 120, 100), testEngine)
		tab := mustAddTab(t, d, title, LookTitled, 0)

		if tab.TextOffset() != normalTextOffset {
			t.Fatalf("text offset = %g, want %g", tab.TextOffset(), normalTextOffset)
		}
		if !strings.Contains(tab.TruncatedTitle(), drawing.Ellipsis) {
			t.Fatalf("truncated title %q has no ellipsis", tab.TruncatedTitle())
		}
		// 107 - 12 - 2*18 + 2
		if w := testEngine.StringWidth(tab.TruncatedTitle(), drawing.Font{}); w > 61 {
			t.Fatalf("truncated title %q is %gpx, room is 61", tab.TruncatedTitle(), w)
		}
	})

	t.Run("stacked tabs give up padding", func(t *testing.T) {
		// both tabs shrink to 64.5px, leaving 13.5px of room
		d := newTestDecorator(t, geom.FromXYWH(0, 0, 120, 100), testEngine)
		mustAddTab(t, d, title, LookTitled, 0)
		mustAddTab(t, d, title, LookTitled, 0)

		for i := 0; i < 2; i++ {
			tab := d.TabAt(i)
			if tab.TextOffset() != minTextOffset {
				t.Fatalf("tab %d text offset = %g, want %g", i, tab.TextOffset(), minTextOffset)
			}
			if tab.TruncatedTitle() == title {
				t.Fatalf("tab %d title should be truncated", i)
			}
		}
	})
}

func TestSizeLimits(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, 0)

	l := d.SizeLimits(Limits{MaxWidth: 10, MaxHeight: 1000})
	if l.MinWidth != 46 || l.MinHeight != 13 {
		t.Fatalf("limits = %+v, want min 46x13", l)
	}
	if l.MaxWidth != 46 {
		t.Fatalf("max width should be raised to min, got %d", l.MaxWidth)
	}
	if l.MaxHeight != 1000 {
		t.Fatalf("max height changed to %d", l.MaxHeight)
	}
}

func TestSetLook_DirtyCoversBothFootprints(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, 0)

	var dirty geom.Region
	if !d.SetLook(0, LookBordered, &dirty) {
		t.Fatalf("SetLook failed")
	}
	if !dirty.Contains(geom.Pt(150, 85)) {
		t.Fatalf("dirty should cover the removed tab")
	}
	if d.TitleBarRect().IsValid() || d.BorderWidth() != 1 {
		t.Fatalf("bordered look should drop the strip")
	}
}

func TestPaint_Ops(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, 0)

	ops := d.Paint(d.BorderRect().Union(d.TitleBarRect()))
	var tabs, buttons, borders int
	for _, op := range ops {
		switch op.Component {
		case ComponentTab:
			tabs++
			if op.Title != "Terminal" {
				t.Fatalf("tab op title = %q", op.Title)
			}
		case ComponentCloseButton, ComponentZoomButton:
			buttons++
		case ComponentLeftBorder, ComponentRightBorder, ComponentTopBorder, ComponentBottomBorder:
			borders++
		}
	}
	if tabs != 1 || buttons != 2 || borders != 4 {
		t.Fatalf("got %d tabs, %d buttons, %d borders", tabs, buttons, borders)
	}

	if ops := d.Paint(geom.R(200, 200, 300, 300)); len(ops) != 0 {
		t.Fatalf("client-only invalid rect should paint nothing, got %d ops", len(ops))
	}
}

// covered reports whether a single rect of g contains r.
func covered(g geom.Region, r geom.Rect) bool {
	for _, rect := range g.Rects() {
		if rect.ContainsRect(r) {
			return true
		}
	}
	return false
}

func TestResizeBy_DocumentDirtiesKnob(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookDocument, 0)

	old := d.ResizeRect()
	if want := geom.R(486, 386, 504, 404); old != want {
		t.Fatalf("resize rect = %v, want %v", old, want)
	}

	var dirty geom.Region
	d.ResizeBy(30, 20, &dirty)

	if want := old.OffsetBy(30, 20); d.ResizeRect() != want {
		t.Fatalf("resize rect after resize = %v, want %v", d.ResizeRect(), want)
	}
	if !covered(dirty, old) || !covered(dirty, d.ResizeRect()) {
		t.Fatalf("dirty %v misses the old or new resize knob", dirty.Rects())
	}
	// inside the old knob, clear of every border
	if !dirty.Contains(geom.Pt(490, 390)) {
		t.Fatalf("dirty misses the client part of the old knob")
	}
}

func TestResizeBy_TitledDirtiesResizeLines(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, 0)
	s := d.style.(*tabStyle)

	before := s.resizeLines()
	if want := geom.R(482, 400, 482, 403); before[0] != want {
		t.Fatalf("bottom line = %v, want %v", before[0], want)
	}
	if want := geom.R(500, 382, 503, 382); before[1] != want {
		t.Fatalf("right line = %v, want %v", before[1], want)
	}

	var dirty geom.Region
	d.ResizeBy(30, 20, &dirty)

	after := s.resizeLines()
	for i := range before {
		if after[i] != before[i].OffsetBy(30, 20) {
			t.Fatalf("line %d moved to %v, want %v", i, after[i], before[i].OffsetBy(30, 20))
		}
		if !covered(dirty, before[i]) || !covered(dirty, after[i]) {
			t.Fatalf("dirty %v misses line %d at %v or %v", dirty.Rects(), i, before[i], after[i])
		}
	}
	if dirty.Contains(geom.Pt(490, 390)) {
		t.Fatalf("titled look has no knob to redraw")
	}
}

func TestResizeBy_StackedTabsRelayout(t *testing.T) {
	// three 150px tabs share a 300px strip at 100px each
	engine := drawing.Fixed{CharWidth: 4, Ascent: 10, Descent: 3}
	d := newTestDecorator(t, geom.FromXYWH(0, 0, 291, 200), engine)
	for i := 0; i < 3; i++ {
		mustAddTab(t, d, strings.Repeat("a", 19), LookTitled, 0)
	}
	oldBar := d.TitleBarRect()

	var dirty geom.Region
	d.ResizeBy(-30, 0, &dirty)

	for i := 0; i < 3; i++ {
		if w := d.TabRect(i).Width(); w != 90 {
			t.Fatalf("tab %d width = %g, want 90", i, w)
		}
		if want := float64(i * 90); d.TabLocation(i) != want {
			t.Fatalf("tab %d offset = %g, want %g", i, d.TabLocation(i), want)
		}
	}
	checkStripFilled(t, d)
	if want := geom.R(-5, -25, 265, -5); d.TitleBarRect() != want {
		t.Fatalf("title bar = %v, want %v", d.TitleBarRect(), want)
	}
	if !covered(dirty, oldBar) || !covered(dirty, d.TitleBarRect()) {
		t.Fatalf("dirty %v misses the old or new title bar", dirty.Rects())
	}

	d.ResizeBy(30, 0, nil)
	for i := 0; i < 3; i++ {
		if w := d.TabRect(i).Width(); w != 100 {
			t.Fatalf("tab %d width after growing back = %g, want 100", i, w)
		}
	}
}

func TestSetTabLocation_StackedShifting(t *testing.T) {
	// three 81px tabs at offsets 0, 81 and 162; the bar ends at 238
	d := newTestDecorator(t, geom.FromXYWH(0, 0, 1001, 200), testEngine)
	for _, title := range []string{"A", "B", "C"} {
		mustAddTab(t, d, title, LookTitled, 0)
	}
	s := d.style.(*tabStyle)
	slot := d.TabRect(0)
	if want := geom.R(-5, -25, 76, -5); slot != want {
		t.Fatalf("tab 0 = %v, want %v", slot, want)
	}

	var dirty geom.Region
	if !d.SetTabLocation(0, 50, true, &dirty) {
		t.Fatalf("SetTabLocation failed")
	}
	if s.oldMovingTab != slot {
		t.Fatalf("drag slot = %v, want %v", s.oldMovingTab, slot)
	}
	if want := geom.R(45, -25, 126, -5); d.TabRect(0) != want || d.TabLocation(0) != 50 {
		t.Fatalf("tab 0 = %v at %g, want %v at 50", d.TabRect(0), d.TabLocation(0), want)
	}
	if want := 50.0 / 162; d.TabAt(0).Location() != want {
		t.Fatalf("relative location = %g, want %g", d.TabAt(0).Location(), want)
	}
	if !covered(dirty, growTowardClient(slot, false)) || !covered(dirty, growTowardClient(d.TabRect(0), false)) {
		t.Fatalf("dirty %v misses the old or new tab", dirty.Rects())
	}

	// clamped so the tab ends with the title bar; the slot is kept
	d.SetTabLocation(0, 1000, true, nil)
	if d.TabLocation(0) != 162 || d.TabRect(0).Right != d.TitleBarRect().Right {
		t.Fatalf("tab 0 = %v at %g, want it to end at %g", d.TabRect(0), d.TabLocation(0), d.TitleBarRect().Right)
	}
	if s.oldMovingTab != slot {
		t.Fatalf("drag slot changed to %v", s.oldMovingTab)
	}
	if d.SetTabLocation(0, 5000, true, nil) {
		t.Fatalf("a clamped location that does not move should report false")
	}

	if !d.SetTabLocation(0, 0, false, nil) {
		t.Fatalf("SetTabLocation without shifting failed")
	}
	if d.TabRect(0) != slot || s.oldMovingTab.IsValid() {
		t.Fatalf("tab 0 = %v drag slot %v, want %v and no slot", d.TabRect(0), s.oldMovingTab, slot)
	}
}

func TestRedistribution_LeftTitledAlongY(t *testing.T) {
	// span = 290 + 2*3 = 296; each tab wants 76 + 10 + 46 = 132
	engine := drawing.Fixed{CharWidth: 4, Ascent: 10, Descent: 3}
	frame := geom.FromXYWH(0, 0, 200, 291)
	d := newTestDecorator(t, frame, engine)
	for i := 0; i < 3; i++ {
		mustAddTab(t, d, strings.Repeat("a", 19), LookLeftTitled, 0)
	}

	first := d.TabRect(0)
	if first.Top != frame.Top-3 {
		t.Fatalf("first tab starts at %g, want %g", first.Top, frame.Top-3)
	}
	for i := 0; i < 3; i++ {
		r := d.TabRect(i)
		if r.Left != first.Left || r.Right != frame.Left-3 {
			t.Fatalf("tab %d = %v, expected a column left of the border", i, r)
		}
		if r.Height() >= d.TabAt(i).MaxSize() {
			t.Fatalf("tab %d should have shrunk below %g, got %g", i, d.TabAt(i).MaxSize(), r.Height())
		}
		if i > 0 && math.Abs(d.TabRect(i-1).Bottom-r.Top) > 1e-9 {
			t.Fatalf("tab %d starts at %g, previous ends at %g", i, r.Top, d.TabRect(i-1).Bottom)
		}
	}
	last := d.TabRect(2)
	if want := math.Floor(frame.Bottom + 3); last.Bottom != want {
		t.Fatalf("last tab ends at %g, want %g", last.Bottom, want)
	}
}

func TestSetTopTab_RelayoutsForNewLook(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, 0)
	mustAddTab(t, d, "Plain", LookBordered, 0)

	strip := geom.Pt(150, 85)
	if !d.Footprint().Contains(strip) {
		t.Fatalf("titled footprint misses the strip")
	}

	if !d.SetTopTab(1) {
		t.Fatalf("SetTopTab failed")
	}
	if d.BorderWidth() != 1 || d.TitleBarRect().IsValid() {
		t.Fatalf("bordered top tab: bw=%g title bar %v", d.BorderWidth(), d.TitleBarRect())
	}
	fp := d.Footprint()
	if fp.Contains(strip) || fp.Contains(geom.Pt(97, 200)) || !fp.Contains(geom.Pt(99, 200)) {
		t.Fatalf("footprint %v still shaped by the titled look", fp.Rects())
	}

	d.SetTopTab(0)
	if d.BorderWidth() != 5 || !d.Footprint().Contains(strip) {
		t.Fatalf("titled look not restored: bw=%g", d.BorderWidth())
	}
}

func TestPress_OneButtonAtATime(t *testing.T) {
	// tab 0 spans -5..76, tab 1 76..157; only the focused tab has a zoom
	d := newTestDecorator(t, geom.FromXYWH(0, 0, 1001, 200), testEngine)
	mustAddTab(t, d, "a", LookTitled, 0)
	mustAddTab(t, d, "b", LookTitled, 0)
	d.SetFocus(1, true)
	closeA := geom.Pt(5, -15)
	zoomB := geom.Pt(145, -15)

	if r, i := d.Press(closeA, nil); r != RegionCloseButton || i != 0 {
		t.Fatalf("Press(close a) = %v %d", r, i)
	}
	var dirty geom.Region
	if r, i := d.Press(zoomB, &dirty); r != RegionZoomButton || i != 1 {
		t.Fatalf("Press(zoom b) = %v %d", r, i)
	}
	if d.TabAt(1).Pressed(RegionZoomButton) || !dirty.IsEmpty() {
		t.Fatalf("second button armed while the first is held")
	}

	r, i, invoked := d.Release(zoomB, nil)
	if r != RegionCloseButton || i != 0 || invoked {
		t.Fatalf("Release = %v %d %v, want the close button of tab 0 not invoked", r, i, invoked)
	}

	d.Press(zoomB, nil)
	if r, i, invoked := d.Release(zoomB, nil); r != RegionZoomButton || i != 1 || !invoked {
		t.Fatalf("Release = %v %d %v", r, i, invoked)
	}
}
