package tui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/tabframe/internal/config"
	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/geom"
	"github.com/1broseidon/tabframe/internal/preview"
)

// Step sizes for keyboard edits, in pixels.
const (
	resizeStep = 10
	slideStep  = 10
)

type editMode int

const (
	modeBrowse editMode = iota
	modeAddTab
	modeRename
	modeEditTab
)

// model is the root bubbletea model for the editor.
type model struct {
	d   *decorator.Decorator
	cfg *config.Config

	mode  editMode
	tabs  list.Model
	input textinput.Model
	form  *tabForm

	// area touched by the last mutation
	dirty        geom.Region
	status       string
	failed       bool
	showSettings bool

	width  int
	height int
}

func newModel(opts Options) (model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	d, err := cfg.NewDecorator(opts.Engine)
	if err != nil {
		return model{}, err
	}

	tabs := list.New(tabItems(d), list.NewDefaultDelegate(), 0, 0)
	tabs.Title = "Tabs"
	tabs.SetShowStatusBar(false)
	tabs.SetShowHelp(false)
	tabs.SetFilteringEnabled(false)

	input := textinput.New()
	input.CharLimit = 120

	return model{d: d, cfg: cfg, tabs: tabs, input: input}, nil
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.tabs.SetSize(sidebarWidth(m.width)-1, max(m.contentHeight(), 1))
		return m, nil
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeAddTab, modeRename:
		return m.updateInput(msg)
	case modeEditTab:
		return m.updateForm(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	sel := m.selected()
	switch km.String() {
	case "q":
		return m, tea.Quit

	case "left":
		m.resize(-resizeStep, 0)
	case "right":
		m.resize(resizeStep, 0)
	case "pgup":
		m.resize(0, -resizeStep)
	case "pgdown":
		m.resize(0, resizeStep)

	case "a":
		m.mode = modeAddTab
		m.input.Placeholder = "title"
		m.input.SetValue("")
		return m, m.input.Focus()
	case "r":
		if sel < 0 {
			return m, nil
		}
		m.mode = modeRename
		m.input.Placeholder = ""
		m.input.SetValue(m.d.Title(sel))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "e":
		if sel < 0 {
			return m, nil
		}
		m.mode = modeEditTab
		m.form = newTabForm(m.d, sel, m.width-sidebarWidth(m.width))
		return m, m.form.form.Init()

	case "x", "delete":
		m.mutate(fmt.Sprintf("removed tab %d", sel), func(dirty *geom.Region) bool {
			return m.d.RemoveTab(sel, dirty)
		})
	case "[":
		if m.mutate(fmt.Sprintf("moved tab %d left", sel), func(dirty *geom.Region) bool {
			return m.d.MoveTab(sel, sel-1, false, dirty)
		}) {
			m.tabs.Select(sel - 1)
		}
	case "]":
		if m.mutate(fmt.Sprintf("moved tab %d right", sel), func(dirty *geom.Region) bool {
			return m.d.MoveTab(sel, sel+1, false, dirty)
		}) {
			m.tabs.Select(sel + 1)
		}
	case ",":
		m.slide(sel, -slideStep)
	case ".":
		m.slide(sel, slideStep)
	case "f":
		focused := !m.d.IsFocus(sel)
		m.mutate(fmt.Sprintf("tab %d focused=%t", sel, focused), func(*geom.Region) bool {
			return m.d.SetFocus(sel, focused)
		})
	case "enter":
		m.mutate(fmt.Sprintf("tab %d on top", sel), func(dirty *geom.Region) bool {
			dirty.IncludeRegion(m.d.Footprint())
			if !m.d.SetTopTab(sel) {
				return false
			}
			dirty.IncludeRegion(m.d.Footprint())
			return true
		})
	case "s":
		m.showSettings = !m.showSettings

	default:
		var cmd tea.Cmd
		m.tabs, cmd = m.tabs.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.mode = modeBrowse
			m.input.Blur()
			return m, nil
		case "enter":
			title := strings.TrimSpace(m.input.Value())
			if m.mode == modeAddTab {
				m.addTab(title)
			} else {
				sel := m.selected()
				m.mutate(fmt.Sprintf("renamed tab %d", sel), func(dirty *geom.Region) bool {
					return m.d.SetTitle(sel, title, dirty)
				})
			}
			m.mode = modeBrowse
			m.input.Blur()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.mode = modeBrowse
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form.form = f
	}
	if m.form.form.State == huh.StateCompleted {
		m.applyForm()
		m.mode = modeBrowse
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m *model) applyForm() {
	var dirty geom.Region
	changed, err := m.form.apply(m.d, &dirty)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.dirty = dirty
	m.refreshTabs()
	if changed {
		m.setStatus(fmt.Sprintf("updated tab %d", m.form.index), false)
	} else {
		m.setStatus("nothing changed", false)
	}
}

// addTab inserts a tab after the selection with the configured look.
func (m *model) addTab(title string) {
	if title == "" {
		m.setStatus("title is empty", true)
		return
	}
	index := m.selected() + 1
	var dirty geom.Region
	if _, err := m.d.AddTab(title, m.cfg.FrameLook(), m.cfg.FrameFlags(), index, &dirty); err != nil {
		m.setStatus(err.Error(), true)
		return
	}
	m.dirty = dirty
	m.refreshTabs()
	m.tabs.Select(index)
	m.setStatus(fmt.Sprintf("added tab %d", index), false)
}

func (m *model) resize(dx, dy float64) {
	frame := m.d.Frame()
	if frame.Width()+dx < 0 || frame.Height()+dy < 0 {
		m.setStatus("frame cannot shrink further", true)
		return
	}
	var dirty geom.Region
	m.d.ResizeBy(dx, dy, &dirty)
	m.dirty = dirty
	m.refreshTabs()
	_, _, w, h := m.d.Frame().XYWH()
	m.setStatus(fmt.Sprintf("frame %d×%d", w, h), false)
}

func (m *model) slide(index int, delta float64) {
	location := m.d.TabLocation(index) + delta
	m.mutate(fmt.Sprintf("tab %d at %g", index, location), func(dirty *geom.Region) bool {
		return m.d.SetTabLocation(index, location, true, dirty)
	})
}

// mutate runs one decorator mutation, records what it invalidated and
// refreshes the tab list. It reports whether the mutation applied.
func (m *model) mutate(what string, fn func(dirty *geom.Region) bool) bool {
	var dirty geom.Region
	if !fn(&dirty) {
		m.setStatus(what+": no change", true)
		return false
	}
	m.dirty = dirty
	m.refreshTabs()
	m.setStatus(what, false)
	return true
}

func (m *model) setStatus(text string, failed bool) {
	m.status = text
	m.failed = failed
}

func (m *model) refreshTabs() {
	sel := m.tabs.Index()
	m.tabs.SetItems(tabItems(m.d))
	if n := m.d.CountTabs(); sel >= n {
		sel = n - 1
	}
	if sel >= 0 {
		m.tabs.Select(sel)
	}
}

// selected returns the selected tab index, or -1 without tabs.
func (m model) selected() int {
	if m.d.CountTabs() == 0 {
		return -1
	}
	return min(m.tabs.Index(), m.d.CountTabs()-1)
}

// contentHeight is the height left between the status and help bars.
func (m model) contentHeight() int {
	return m.height - 2
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(preview.Summary(m.d), m.width)
	helpBar := renderHelpBar(m.width, m.mode)
	contentHeight := max(m.height-lipgloss.Height(statusBar)-lipgloss.Height(helpBar), 1)

	sideW := sidebarWidth(m.width)
	mainW := max(m.width-sideW-2, 1)
	sidebar := sidebarStyle.Height(contentHeight).Width(sideW - 1).Render(m.tabs.View())

	var main string
	switch {
	case m.mode == modeEditTab && m.form != nil:
		header := headerStyle.Render(fmt.Sprintf("Editing tab %d", m.form.index)) +
			dimStyle.Render("  (esc to cancel)")
		main = header + "\n\n" + m.form.form.View()
	case m.showSettings:
		main = m.settingsView()
	default:
		main = m.frameView(mainW, contentHeight)
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebar,
		lipgloss.NewStyle().Width(mainW).Height(contentHeight).PaddingLeft(1).Render(main),
	)

	return lipgloss.JoinVertical(lipgloss.Left, statusBar, body, helpBar)
}

// frameView draws the decoration map above the last dirty area and the
// input line.
func (m model) frameView(width, height int) string {
	footer := []string{m.dirtyLine()}
	switch m.mode {
	case modeAddTab:
		footer = append(footer, "add tab: "+m.input.View())
	case modeRename:
		footer = append(footer, "rename: "+m.input.View())
	default:
		if m.status != "" {
			style := dimStyle
			if m.failed {
				style = errorStyle
			}
			footer = append(footer, style.Render(m.status))
		}
	}

	rows := max(height-len(footer)-1, 1)
	mp := preview.Fit(m.d, width-1, rows)
	return mp.Styled(m.d) + "\n\n" + strings.Join(footer, "\n")
}

func (m model) dirtyLine() string {
	if m.dirty.IsEmpty() {
		return dimStyle.Render("dirty: none")
	}
	parts := make([]string, 0, len(m.dirty.Rects()))
	for _, r := range m.dirty.Rects() {
		x, y, w, h := r.XYWH()
		parts = append(parts, fmt.Sprintf("%d×%d+%d+%d", w, h, x, y))
	}
	return dimStyle.Render("dirty: " + strings.Join(parts, " "))
}

func (m model) settingsView() string {
	s, ok := m.d.Settings()
	if !ok {
		return dimStyle.Render("no settings: the frame has no tab strip")
	}
	var buf bytes.Buffer
	if err := decorator.EncodeSettings(&buf, s); err != nil {
		return errorStyle.Render(err.Error())
	}
	return headerStyle.Render("Settings") + "\n\n" + buf.String()
}
