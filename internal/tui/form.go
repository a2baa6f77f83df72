package tui

import (
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/1broseidon/tabframe/internal/decorator"
	"github.com/1broseidon/tabframe/internal/geom"
)

// tabForm edits the look and flags of one tab.
type tabForm struct {
	index int
	form  *huh.Form

	// form-bound values, converted on submit
	fLook  string
	fFlags []string
}

func newTabForm(d *decorator.Decorator, index, width int) *tabForm {
	f := &tabForm{
		index: index,
		fLook: d.Look(index).String(),
	}
	current := d.Flags(index)
	for _, name := range decorator.FlagNames() {
		if flag, err := decorator.ParseFlags(name); err == nil && current.Has(flag) {
			f.fFlags = append(f.fFlags, name)
		}
	}

	lookOpts := make([]huh.Option[string], 0, len(decorator.LookNames()))
	for _, name := range decorator.LookNames() {
		lookOpts = append(lookOpts, huh.NewOption(name, name))
	}
	flagOpts := make([]huh.Option[string], 0, len(decorator.FlagNames()))
	for _, name := range decorator.FlagNames() {
		flagOpts = append(flagOpts, huh.NewOption(name, name))
	}

	w := max(width-4, 40)
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("look").
				Title("Look").
				Description("Decoration style of the tab").
				Options(lookOpts...).
				Value(&f.fLook),

			huh.NewMultiSelect[string]().
				Key("flags").
				Title("Flags").
				Description("Behavior bits that shape the decoration").
				Options(flagOpts...).
				Value(&f.fFlags),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)
	return f
}

// apply writes the form values to the tab, adding the changed area to
// dirty. It reports whether anything changed.
func (f *tabForm) apply(d *decorator.Decorator, dirty *geom.Region) (bool, error) {
	look, err := decorator.ParseLook(f.fLook)
	if err != nil {
		return false, err
	}
	flags, err := decorator.ParseFlags(strings.Join(f.fFlags, ","))
	if err != nil {
		return false, err
	}

	changed := false
	if d.Look(f.index) != look {
		changed = d.SetLook(f.index, look, dirty) || changed
	}
	if d.Flags(f.index) != flags {
		changed = d.SetFlags(f.index, flags, dirty) || changed
	}
	return changed, nil
}
