package decorator

import (
	"fmt"
	"strings"
)

// Look is the decoration style of a window.
type Look int

const (
	LookNoBorder Look = iota
	LookBordered
	LookTitled
	LookDocument
	LookModal
	LookFloating
	LookLeftTitled
)

var lookNames = map[Look]string{
	LookNoBorder:   "no-border",
	LookBordered:   "bordered",
	LookTitled:     "titled",
	LookDocument:   "document",
	LookModal:      "modal",
	LookFloating:   "floating",
	LookLeftTitled: "left-titled",
}

func (l Look) String() string {
	if name, ok := lookNames[l]; ok {
		return name
	}
	return fmt.Sprintf("look(%d)", int(l))
}

// ParseLook converts a look name as used in config files.
func ParseLook(s string) (Look, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for look, n := range lookNames {
		if n == name {
			return look, nil
		}
	}
	return LookNoBorder, fmt.Errorf("unknown window look %q", s)
}

// LookNames returns every accepted look name in declaration order.
func LookNames() []string {
	names := make([]string, 0, len(lookNames))
	for l := LookNoBorder; l <= LookLeftTitled; l++ {
		names = append(names, lookNames[l])
	}
	return names
}

// Flags are per-window behavior bits that influence the decoration.
type Flags uint32

const (
	NotClosable Flags = 1 << iota
	NotZoomable
	NotMinimizable
	NotResizable
	NotHResizable
	NotVResizable
	AvoidFocus
)

func (f Flags) Has(bits Flags) bool { return f&bits == bits }

// normalizeResizeFlags keeps NotResizable and the per-axis bits in sync.
func normalizeResizeFlags(f Flags) Flags {
	if f.Has(NotHResizable | NotVResizable) {
		f |= NotResizable
	}
	if f.Has(NotResizable) {
		f |= NotHResizable | NotVResizable
	}
	return f
}

var flagNames = []struct {
	flag Flags
	name string
}{
	{NotClosable, "not-closable"},
	{NotZoomable, "not-zoomable"},
	{NotMinimizable, "not-minimizable"},
	{NotResizable, "not-resizable"},
	{NotHResizable, "not-h-resizable"},
	{NotVResizable, "not-v-resizable"},
	{AvoidFocus, "avoid-focus"},
}

func (f Flags) String() string {
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// FlagNames returns every flag name in bit order.
func FlagNames() []string {
	names := make([]string, 0, len(flagNames))
	for _, fn := range flagNames {
		names = append(names, fn.name)
	}
	return names
}

// ParseFlags parses a comma or pipe separated list of flag names.
func ParseFlags(s string) (Flags, error) {
	var f Flags
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' })
	for _, field := range fields {
		name := strings.ToLower(strings.TrimSpace(field))
		if name == "" || name == "none" {
			continue
		}
		found := false
		for _, fn := range flagNames {
			if fn.name == name {
				f |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown window flag %q", field)
		}
	}
	return f, nil
}

// Region classifies a point of the decoration.
type Region int

const (
	RegionNone Region = iota

	RegionTab

	RegionCloseButton
	RegionZoomButton
	RegionMinimizeButton

	RegionLeftBorder
	RegionRightBorder
	RegionTopBorder
	RegionBottomBorder

	RegionLeftTopCorner
	RegionLeftBottomCorner
	RegionRightTopCorner
	RegionRightBottomCorner

	regionCount
)

var regionNames = [regionCount]string{
	"none",
	"tab",
	"close-button",
	"zoom-button",
	"minimize-button",
	"left-border",
	"right-border",
	"top-border",
	"bottom-border",
	"left-top-corner",
	"left-bottom-corner",
	"right-top-corner",
	"right-bottom-corner",
}

func (r Region) String() string {
	if r >= 0 && r < regionCount {
		return regionNames[r]
	}
	return fmt.Sprintf("region(%d)", int(r))
}

// ParseRegion converts a region name back to its kind.
func ParseRegion(s string) (Region, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range regionNames {
		if n == name {
			return Region(i), nil
		}
	}
	return RegionNone, fmt.Errorf("unknown region %q", s)
}

// highlightIndex maps a region kind to its slot in the highlight array.
// The "none" kind has no slot.
func highlightIndex(r Region) (int, bool) {
	i := int(r) - 1
	return i, i >= 0 && i < int(regionCount)-1
}

// Highlight levels.
const (
	HighlightNone uint8 = iota
	HighlightResizeBorder

	HighlightUserDefined
)
