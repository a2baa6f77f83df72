package decorator

import "testing"

func TestLayout_Snapshot(t *testing.T) {
	d := newTestDecorator(t, testFrame, testEngine)
	mustAddTab(t, d, "Terminal", LookTitled, NotZoomable)
	mustAddTab(t, d, "Editor", LookTitled, 0)

	l := d.Layout()
	if l.Frame != testFrame || l.Look != "titled" || l.TopTab != 0 {
		t.Fatalf("unexpected header: %+v", l)
	}
	if l.BorderWidth != 5 || l.TabHeight != 20 {
		t.Fatalf("bw=%g tab height=%g", l.BorderWidth, l.TabHeight)
	}
	if len(l.Tabs) != 2 {
		t.Fatalf("got %d tabs", len(l.Tabs))
	}
	for i, tab := range l.Tabs {
		if tab.Index != i || tab.Rect != d.TabRect(i) || tab.Location != d.TabLocation(i) {
			t.Errorf("tab %d snapshot %+v does not match the decorator", i, tab)
		}
	}
	if l.Tabs[0].Flags != "not-zoomable" || l.Tabs[1].Flags != "none" {
		t.Fatalf("flags = %q, %q", l.Tabs[0].Flags, l.Tabs[1].Flags)
	}
	if len(l.Footprint) == 0 {
		t.Fatalf("expected footprint rects")
	}
}
