// Package preview renders a decorator as a character map: every cell is
// hit-tested at its center and drawn with the glyph of the region found
// there.
package preview

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tabframe/internal/config"
	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/geom"
)

// cellAspect is how many times taller a terminal cell is than wide.
const cellAspect = 2.0

// Cell is the hit-test result for one character cell.
type Cell struct {
	Region decorator.Region
	Tab    int
	// Client is set for cells inside the client frame.
	Client bool
}

// Map is a sampled decorator. Cells are stored row by row.
type Map struct {
	Cols, Rows int
	Bounds     geom.Rect
	Cells      [][]Cell
}

// Sample hit-tests d over its footprint and client frame. rows may be 0 to
// derive it from cols keeping the frame's aspect ratio.
func Sample(d *decorator.Decorator, cols, rows int) Map {
	bounds := sampleBounds(d)
	if cols < 1 {
		cols = 1
	}
	width := bounds.Width() + 1
	height := bounds.Height() + 1
	if rows <= 0 {
		rows = rowsFor(width, height, cols)
	}
	if rows < 1 {
		rows = 1
	}

	m := Map{Cols: cols, Rows: rows, Bounds: bounds, Cells: make([][]Cell, rows)}
	frame := d.Frame()
	for row := range m.Cells {
		m.Cells[row] = make([]Cell, cols)
		y := bounds.Top + (float64(row)+0.5)*height/float64(rows)
		for col := range m.Cells[row] {
			x := bounds.Left + (float64(col)+0.5)*width/float64(cols)
			p := geom.Pt(math.Floor(x), math.Floor(y))
			region, tab := d.RegionAt(p)
			m.Cells[row][col] = Cell{Region: region, Tab: tab, Client: frame.Contains(p)}
		}
	}
	return m
}

// Fit samples d at the largest size that fits maxCols x maxRows cells while
// keeping the aspect ratio.
func Fit(d *decorator.Decorator, maxCols, maxRows int) Map {
	bounds := sampleBounds(d)
	width := bounds.Width() + 1
	height := bounds.Height() + 1

	cols := max(maxCols, 1)
	rows := rowsFor(width, height, cols)
	if maxRows > 0 && rows > maxRows {
		rows = maxRows
		cols = int(math.Round(float64(rows) * cellAspect * width / height))
		cols = min(max(cols, 1), max(maxCols, 1))
	}
	return Sample(d, cols, rows)
}

func sampleBounds(d *decorator.Decorator) geom.Rect {
	bounds := d.Frame()
	if fp := d.Footprint(); !fp.IsEmpty() {
		bounds = bounds.Union(fp.Frame())
	}
	return bounds
}

func rowsFor(width, height float64, cols int) int {
	return max(int(math.Round(height/width*float64(cols)/cellAspect)), 1)
}

// Glyph returns the character a cell is drawn with.
func Glyph(c Cell) rune {
	switch c.Region {
	case decorator.RegionTab:
		return tabGlyph(c.Tab)
	case decorator.RegionCloseButton:
		return 'x'
	case decorator.RegionZoomButton:
		return 'z'
	case decorator.RegionMinimizeButton:
		return '_'
	case decorator.RegionLeftBorder, decorator.RegionRightBorder:
		return '│'
	case decorator.RegionTopBorder, decorator.RegionBottomBorder:
		return '─'
	case decorator.RegionLeftTopCorner:
		return '┌'
	case decorator.RegionRightTopCorner:
		return '┐'
	case decorator.RegionLeftBottomCorner:
		return '└'
	case decorator.RegionRightBottomCorner:
		return '┘'
	}
	if c.Client {
		return '·'
	}
	return ' '
}

// tabGlyph labels tabs 0-9 then a-z.
func tabGlyph(index int) rune {
	switch {
	case index >= 0 && index < 10:
		return rune('0' + index)
	case index >= 10 && index < 36:
		return rune('a' + index - 10)
	default:
		return '#'
	}
}

// Lines returns the map as plain text, one string per row.
func (m Map) Lines() []string {
	lines := make([]string, len(m.Cells))
	for i, row := range m.Cells {
		var b strings.Builder
		for _, c := range row {
			b.WriteRune(Glyph(c))
		}
		lines[i] = b.String()
	}
	return lines
}

// String joins Lines with newlines.
func (m Map) String() string {
	return strings.Join(m.Lines(), "\n")
}

// Styled renders the map with the decorator's own colors. Runs of cells
// with the same style are rendered together.
func (m Map) Styled(d *decorator.Decorator) string {
	rows := make([]string, len(m.Cells))
	for i, row := range m.Cells {
		var b strings.Builder
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && sameStyle(row[j], row[start]) {
				continue
			}
			var run strings.Builder
			for _, c := range row[start:j] {
				run.WriteRune(Glyph(c))
			}
			b.WriteString(cellStyle(d, row[start]).Render(run.String()))
			start = j
		}
		rows[i] = b.String()
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func sameStyle(a, b Cell) bool {
	return a.Region == b.Region && a.Tab == b.Tab && a.Client == b.Client
}

func cellStyle(d *decorator.Decorator, c Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	switch c.Region {
	case decorator.RegionNone:
		if c.Client {
			return style.Faint(true)
		}
		return style
	case decorator.RegionTab:
		colors := d.ComponentColors(decorator.ComponentTab, decorator.HighlightNone, c.Tab)
		return style.
			Foreground(hex(colors[decorator.ColorTabText])).
			Background(hex(colors[decorator.ColorTab])).
			Bold(d.IsFocus(c.Tab))
	case decorator.RegionCloseButton, decorator.RegionZoomButton, decorator.RegionMinimizeButton:
		colors := d.ComponentColors(decorator.ComponentCloseButton, decorator.HighlightNone, c.Tab)
		return style.
			Foreground(hex(colors[decorator.ColorButton])).
			Background(hex(colors[decorator.ColorButtonLight]))
	default:
		colors := d.ComponentColors(decorator.ComponentTopBorder, d.RegionHighlight(c.Region), -1)
		return style.Foreground(hex(colors[2]))
	}
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(config.FormatColor(c))
}

// Summary describes the frame in one line.
func Summary(d *decorator.Decorator) string {
	fp := d.Footprint().Frame()
	_, _, fw, fh := fp.XYWH()
	_, _, cw, ch := d.Frame().XYWH()
	tabs := d.CountTabs()
	noun := "tabs"
	if tabs == 1 {
		noun = "tab"
	}
	return fmt.Sprintf("%d %s • %s • client %d×%d • border %g • tab height %g • footprint %d×%d",
		tabs, noun, d.Look(d.TopTab()), cw, ch, d.BorderWidth(), d.TabHeight(), fw, fh)
}
