package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/tabframe/internal/config"
	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/drawing"
)

func newTestModel(t *testing.T, titles ...string) model {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Frame.Tabs = titles
	m, err := newModel(Options{Config: cfg, Engine: drawing.Fixed{CharWidth: 7, Ascent: 10, Descent: 3}})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func titles(d *decorator.Decorator) []string {
	out := make([]string, d.CountTabs())
	for i := range out {
		out[i] = d.Title(i)
	}
	return out
}

func TestUpdate_RemoveTab(t *testing.T) {
	m := newTestModel(t, "one", "two")
	m = send(t, m, keys("x"))

	if got := titles(m.d); len(got) != 1 || got[0] != "two" {
		t.Fatalf("titles = %v, want [two]", got)
	}
	if m.dirty.IsEmpty() {
		t.Fatalf("expected a dirty region after removing a tab")
	}
	if len(m.tabs.Items()) != 1 {
		t.Fatalf("list has %d items, want 1", len(m.tabs.Items()))
	}
}

func TestUpdate_ResizeFrame(t *testing.T) {
	m := newTestModel(t, "one")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.d.Frame().Width(); got != 649 {
		t.Fatalf("width = %v, want 649", got)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	if got := m.d.Frame().Height(); got != 389 {
		t.Fatalf("height = %v, want 389", got)
	}
}

func TestUpdate_MoveTab(t *testing.T) {
	m := newTestModel(t, "one", "two", "three")
	m = send(t, m, keys("]"))

	want := []string{"two", "one", "three"}
	got := titles(m.d)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("titles = %v, want %v", got, want)
		}
	}
	if m.selected() != 1 {
		t.Fatalf("selection = %d, want 1", m.selected())
	}

	// already first
	m = send(t, m, keys("["))
	m = send(t, m, keys("["))
	if !m.failed {
		t.Fatalf("expected moving the first tab left to fail")
	}
}

func TestUpdate_AddTab(t *testing.T) {
	m := newTestModel(t, "one", "two")
	m = send(t, m, keys("a"))
	if m.mode != modeAddTab {
		t.Fatalf("mode = %v, want modeAddTab", m.mode)
	}
	m = send(t, m, keys("new"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != modeBrowse {
		t.Fatalf("mode = %v, want modeBrowse", m.mode)
	}
	got := titles(m.d)
	if len(got) != 3 || got[1] != "new" {
		t.Fatalf("titles = %v, want new at index 1", got)
	}
}

func TestUpdate_AddTabCancel(t *testing.T) {
	m := newTestModel(t, "one")
	m = send(t, m, keys("a"))
	m = send(t, m, keys("zzz"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeBrowse || m.d.CountTabs() != 1 {
		t.Fatalf("mode = %v, tabs = %d after cancel", m.mode, m.d.CountTabs())
	}
}

func TestUpdate_Rename(t *testing.T) {
	m := newTestModel(t, "one")
	m = send(t, m, keys("r"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = send(t, m, keys("ly"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.d.Title(0); got != "only" {
		t.Fatalf("title = %q, want %q", got, "only")
	}
}

func TestUpdate_FocusToggle(t *testing.T) {
	m := newTestModel(t, "one")
	m = send(t, m, keys("f"))
	if !m.d.IsFocus(0) {
		t.Fatalf("expected tab 0 to be focused")
	}
	m = send(t, m, keys("f"))
	if m.d.IsFocus(0) {
		t.Fatalf("expected tab 0 to be unfocused")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(t, "one", "two")
	out := m.View()
	if !strings.Contains(out, "2 tabs") {
		t.Fatalf("view lacks the frame summary:\n%s", out)
	}
	if !strings.Contains(out, "dirty: none") {
		t.Fatalf("view lacks the dirty line:\n%s", out)
	}

	m = send(t, m, keys("s"))
	if out := m.View(); !strings.Contains(out, "Settings") {
		t.Fatalf("settings view missing:\n%s", out)
	}
}

func TestView_ZeroSize(t *testing.T) {
	m, err := newModel(Options{})
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	if got := m.View(); got != "" {
		t.Fatalf("expected empty view before the first size message, got %q", got)
	}
}

func TestTabForm_Apply(t *testing.T) {
	m := newTestModel(t, "one")
	f := newTabForm(m.d, 0, 80)
	if f.fLook != "titled" {
		t.Fatalf("initial look = %q", f.fLook)
	}

	f.fLook = "floating"
	f.fFlags = []string{"not-zoomable"}
	changed, err := f.apply(m.d, &m.dirty)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !changed {
		t.Fatalf("expected a change")
	}
	if m.d.Look(0) != decorator.LookFloating {
		t.Fatalf("look = %v", m.d.Look(0))
	}
	if !m.d.Flags(0).Has(decorator.NotZoomable) {
		t.Fatalf("flags = %v", m.d.Flags(0))
	}

	changed, err = f.apply(m.d, nil)
	if err != nil || changed {
		t.Fatalf("second apply = %v, %v; want no change", changed, err)
	}
}

func TestSidebarWidth(t *testing.T) {
	tests := map[int]int{40: 20, 100: 30, 200: 36}
	for width, want := range tests {
		if got := sidebarWidth(width); got != want {
			t.Errorf("sidebarWidth(%d) = %d, want %d", width, got, want)
		}
	}
}
