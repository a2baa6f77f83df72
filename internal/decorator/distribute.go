package decorator

import "math"

// distributeTabSize shrinks the widest tabs until the strip is delta pixels
// shorter. The widest tier is lowered to the next widest, repeatedly, so
// narrow tabs keep their size as long as possible. Afterwards the tabs are
// packed edge to edge and the last one ends exactly on the outer border.
func (s *tabStyle) distributeTabSize(delta float64) {
	tabs := s.d.tabs
	vertical := s.vertical()

	for iteration := 0; delta > 0; iteration++ {
		// every pass merges the widest tier into the next one, so there can
		// be no more passes than tabs
		if iteration >= len(tabs) {
			panic("decorator: tab size distribution did not converge")
		}

		widest := 0.0
		for _, tab := range tabs {
			widest = math.Max(widest, stripLength(tab.tabRect, vertical))
		}

		tied := 0
		next := 0.0
		for _, tab := range tabs {
			length := stripLength(tab.tabRect, vertical)
			if length >= widest-1 {
				tied++
			} else {
				next = math.Max(next, length)
			}
		}

		shrink := float64(tied) * (widest - next)
		if delta <= shrink {
			shrink = math.Ceil(delta)
		}
		if shrink <= 0 {
			break
		}
		delta -= shrink
		perTab := shrink / float64(tied)

		var prev *Tab
		for _, tab := range tabs {
			if stripLength(tab.tabRect, vertical) >= widest-1 {
				tab.tabRect = setStripEnd(tab.tabRect, stripEnd(tab.tabRect, vertical)-perTab, vertical)
			}
			if prev != nil {
				shift := stripEnd(prev.tabRect, vertical) - stripStart(tab.tabRect, vertical)
				tab.tabRect = shiftAlong(tab.tabRect, shift, vertical)
			}
			prev = tab
		}
		trace.Printf("distribute pass %d: %d tabs shrunk by %g", iteration, tied, perTab)
	}

	frame := s.d.frame
	end := frame.Right + s.bw
	if vertical {
		end = frame.Bottom + s.bw
	}
	last := tabs[len(tabs)-1]
	last.tabRect = setStripEnd(last.tabRect, math.Floor(end), vertical)

	origin := s.stripOrigin()
	for _, tab := range tabs {
		tab.tabOffset = math.Floor(stripStart(tab.tabRect, vertical) - origin)
	}
}
