package preview

import (
	"strings"
	"testing"

	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/drawing"
	"github.com/1broseidon/tabframe/internal/geom"
)

// Footprint of this frame with one titled tab is R(95,75,504,404), so an
// 82x66 map samples every 5 pixels starting at 97,77.
func newTitled(t *testing.T) *decorator.Decorator {
	t.Helper()
	d := decorator.New(geom.FromXYWH(100, 100, 400, 300), decorator.Options{
		Appearance: decorator.DefaultAppearance(),
		Engine:     drawing.Fixed{CharWidth: 7, Ascent: 10, Descent: 3},
	})
	if _, err := d.AddTab("Terminal", decorator.LookTitled, 0, -1, nil); err != nil {
		t.Fatalf("AddTab: %v", err)
	}
	return d
}

func TestSample_Glyphs(t *testing.T) {
	d := newTitled(t)
	m := Sample(d, 82, 66)
	if m.Bounds != geom.R(95, 75, 504, 404) {
		t.Fatalf("bounds = %v", m.Bounds)
	}

	lines := m.Lines()
	if len(lines) != 66 {
		t.Fatalf("got %d lines", len(lines))
	}

	tests := []struct {
		name     string
		row, col int
		want     rune
	}{
		{"tab", 0, 1, '0'},
		{"close button", 1, 1, 'x'},
		{"zoom button", 1, 23, 'z'},
		{"beside tab", 1, 30, ' '},
		{"top border", 4, 30, '─'},
		{"left border", 10, 0, '│'},
		{"client", 10, 10, '·'},
		{"bottom border", 65, 40, '─'},
		{"resize corner", 65, 81, '┘'},
	}
	for _, tt := range tests {
		row := []rune(lines[tt.row])
		if got := row[tt.col]; got != tt.want {
			t.Errorf("%s: cell(%d,%d) = %q, want %q", tt.name, tt.row, tt.col, got, tt.want)
		}
	}
}

func TestSample_DerivesRows(t *testing.T) {
	m := Sample(newTitled(t), 82, 0)
	// 330/410 of 82 columns, halved for the cell aspect
	if m.Rows != 33 || len(m.Cells) != 33 {
		t.Fatalf("rows = %d, want 33", m.Rows)
	}
}

func TestSample_EmptyDecorator(t *testing.T) {
	d := decorator.New(geom.FromXYWH(0, 0, 100, 50), decorator.Options{})
	m := Sample(d, 10, 5)
	for _, line := range m.Lines() {
		if line != strings.Repeat("·", 10) {
			t.Fatalf("expected only client cells, got %q", line)
		}
	}
}

func TestTabGlyph(t *testing.T) {
	tests := map[int]rune{0: '0', 9: '9', 10: 'a', 35: 'z', 36: '#', -1: '#'}
	for index, want := range tests {
		if got := tabGlyph(index); got != want {
			t.Errorf("tabGlyph(%d) = %q, want %q", index, got, want)
		}
	}
}

func TestStyled_KeepsRows(t *testing.T) {
	d := newTitled(t)
	m := Sample(d, 41, 20)
	out := m.Styled(d)
	if got := strings.Count(out, "\n") + 1; got != 20 {
		t.Fatalf("styled output has %d rows, want 20", got)
	}
}

func TestSummary(t *testing.T) {
	got := Summary(newTitled(t))
	want := "1 tab • titled • client 400×300 • border 5 • tab height 20 • footprint 410×330"
	if got != want {
		t.Fatalf("summary = %q\nwant      %q", got, want)
	}
}

func TestFit(t *testing.T) {
	d := newTitled(t)

	m := Fit(d, 82, 20)
	// 20 rows * 2 * 410/330 = 49.7 columns
	if m.Rows != 20 || m.Cols != 50 {
		t.Fatalf("fit = %dx%d, want 50x20", m.Cols, m.Rows)
	}

	m = Fit(d, 40, 100)
	if m.Cols != 40 || m.Rows != 16 {
		t.Fatalf("fit = %dx%d, want 40x16", m.Cols, m.Rows)
	}
}
