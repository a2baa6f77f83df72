package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Monitor is one active CRTC.
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// Monitors lists the active monitors using XRandR.
func (c *Connection) Monitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}
		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}
	return monitors, nil
}

// PointerMonitor returns the monitor under the pointer. Without RandR it
// falls back to the whole screen.
func (c *Connection) PointerMonitor() Monitor {
	w, h := c.ScreenSize()
	screen := Monitor{Name: "screen", Width: w, Height: h}

	monitors, err := c.Monitors()
	if err != nil || len(monitors) == 0 {
		return screen
	}
	pointer, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return monitors[0]
	}
	return monitorAt(monitors, int(pointer.RootX), int(pointer.RootY))
}

// monitorAt picks the monitor containing x,y, or the first one.
func monitorAt(monitors []Monitor, x, y int) Monitor {
	for _, m := range monitors {
		if m.contains(x, y) {
			return m
		}
	}
	return monitors[0]
}

// CenterIn returns the origin that centers a width x height box on m,
// clamped to the monitor's top-left corner.
func CenterIn(m Monitor, width, height int) (x, y int) {
	x = m.X + (m.Width-width)/2
	y = m.Y + (m.Height-height)/2
	if x < m.X {
		x = m.X
	}
	if y < m.Y {
		y = m.Y
	}
	return x, y
}
