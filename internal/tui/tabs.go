package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tabframe/internal/decorator"
)

var (
	sidebarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color("238"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))
)

// tabItem is one row of the tab list.
type tabItem struct {
	index   int
	title   string
	look    decorator.Look
	flags   decorator.Flags
	focused bool
	top     bool
}

func (t tabItem) Title() string {
	marker := " "
	if t.top {
		marker = "▸"
	}
	return fmt.Sprintf("%s %d %s", marker, t.index, t.title)
}

func (t tabItem) Description() string {
	parts := []string{t.look.String()}
	if t.flags != 0 {
		parts = append(parts, t.flags.String())
	}
	if t.focused {
		parts = append(parts, "focused")
	}
	return strings.Join(parts, " · ")
}

func (t tabItem) FilterValue() string { return t.title }

// tabItems lists the tabs of d.
func tabItems(d *decorator.Decorator) []list.Item {
	items := make([]list.Item, 0, d.CountTabs())
	for i := 0; i < d.CountTabs(); i++ {
		items = append(items, tabItem{
			index:   i,
			title:   d.Title(i),
			look:    d.Look(i),
			flags:   d.Flags(i),
			focused: d.IsFocus(i),
			top:     i == d.TopTab(),
		})
	}
	return items
}

// renderStatusBar renders the frame summary bar.
func renderStatusBar(summary string, width int) string {
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("●")
	style := lipgloss.NewStyle().
		Width(width).
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("250")).
		Padding(0, 1)
	return style.Render(dot + " " + summary)
}

// renderHelpBar renders the bottom help/keybinding bar.
func renderHelpBar(width int, mode editMode) string {
	var help string
	switch mode {
	case modeAddTab, modeRename:
		help = "enter: apply  esc: cancel"
	case modeEditTab:
		help = "tab/shift-tab: next/prev field  enter: submit  esc: cancel"
	default:
		help = "↑/↓: select  ←/→ pgup/pgdn: resize  a: add  r: rename  x: remove  [/]: reorder  ,/.: slide  f: focus  enter: top  e: edit  s: settings  q: quit"
	}
	style := lipgloss.NewStyle().
		Width(width).
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	return style.Render(help)
}

// sidebarWidth is ~30% of width, clamped to [20, 36].
func sidebarWidth(width int) int {
	return min(max(width*30/100, 20), 36)
}
