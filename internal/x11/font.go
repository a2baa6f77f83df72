package x11

import (
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/tabframe/internal/drawing"
)

// fallbackFonts are tried when the configured font is not installed.
var fallbackFonts = []string{"fixed", "9x15", "8x13", "6x13"}

// maxTextRequest bounds the characters sent in one QueryTextExtents request.
const maxTextRequest = 255

type coreFont struct {
	id      xproto.Font
	name    string
	metrics drawing.Metrics
}

// FontEngine measures text with X core fonts. Core fonts are bitmaps, so the
// requested size is ignored; the bold flag picks between the bold and plain
// variants of the configured font.
type FontEngine struct {
	conn  *xgb.Conn
	plain coreFont
	bold  coreFont

	mu     sync.Mutex
	widths map[widthKey]float64
}

type widthKey struct {
	bold bool
	text string
}

// NewFontEngine opens name (an XLFD or alias) for bold text and its medium
// weight sibling for plain text.
func NewFontEngine(c *Connection, name string) (*FontEngine, error) {
	conn := c.XUtil.Conn()

	bold, err := openCoreFont(conn, name)
	if err != nil {
		return nil, err
	}
	plain := bold
	if medium := plainVariant(name); medium != name {
		if f, err := openCoreFont(conn, medium); err == nil {
			plain = f
		}
	}

	return &FontEngine{
		conn:   conn,
		plain:  plain,
		bold:   bold,
		widths: make(map[widthKey]float64),
	}, nil
}

func openCoreFont(conn *xgb.Conn, name string) (coreFont, error) {
	id, err := xproto.NewFontId(conn)
	if err != nil {
		return coreFont{}, fmt.Errorf("allocate font id: %w", err)
	}

	candidates := append([]string{name}, fallbackFonts...)
	opened := ""
	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if err := xproto.OpenFontChecked(conn, id, uint16(len(candidate)), candidate).Check(); err == nil {
			opened = candidate
			break
		}
	}
	if opened == "" {
		return coreFont{}, fmt.Errorf("no usable core font (tried %s)", strings.Join(candidates, ", "))
	}

	reply, err := xproto.QueryFont(conn, xproto.Fontable(id)).Reply()
	if err != nil {
		xproto.CloseFont(conn, id)
		return coreFont{}, fmt.Errorf("query font %q: %w", opened, err)
	}
	return coreFont{
		id:   id,
		name: opened,
		metrics: drawing.Metrics{
			Ascent:  float64(reply.FontAscent),
			Descent: float64(reply.FontDescent),
		},
	}, nil
}

// plainVariant swaps the weight field of an XLFD name for "medium". Aliases
// without a weight field are returned unchanged.
func plainVariant(name string) string {
	fields := strings.Split(name, "-")
	if len(fields) < 4 || fields[0] != "" {
		return name
	}
	if fields[3] == "bold" || fields[3] == "demibold" {
		fields[3] = "medium"
	}
	return strings.Join(fields, "-")
}

// Name returns the core font actually opened for the given weight.
func (e *FontEngine) Name(bold bool) string {
	return e.font(bold).name
}

// Font returns the core font id for the given weight.
func (e *FontEngine) Font(bold bool) xproto.Font {
	return e.font(bold).id
}

func (e *FontEngine) font(bold bool) coreFont {
	if bold {
		return e.bold
	}
	return e.plain
}

func (e *FontEngine) Metrics(f drawing.Font) drawing.Metrics {
	return e.font(f.Bold).metrics
}

func (e *FontEngine) StringWidth(s string, f drawing.Font) float64 {
	if s == "" {
		return 0
	}
	key := widthKey{bold: f.Bold, text: s}

	e.mu.Lock()
	w, ok := e.widths[key]
	e.mu.Unlock()
	if ok {
		return w
	}

	font := e.font(f.Bold)
	total := 0.0
	chars := toChar2b(s)
	for len(chars) > 0 {
		n := len(chars)
		if n > maxTextRequest {
			n = maxTextRequest
		}
		reply, err := xproto.QueryTextExtents(e.conn, xproto.Fontable(font.id), chars[:n], uint16(n)).Reply()
		if err != nil {
			// measure as zero rather than fail layout
			return 0
		}
		total += float64(reply.OverallWidth)
		chars = chars[n:]
	}

	e.mu.Lock()
	e.widths[key] = total
	e.mu.Unlock()
	return total
}

// Close releases the server-side fonts.
func (e *FontEngine) Close() error {
	xproto.CloseFont(e.conn, e.bold.id)
	if e.plain.id != e.bold.id {
		xproto.CloseFont(e.conn, e.plain.id)
	}
	return nil
}

// toChar2b encodes s as 16-bit characters. Runes outside the basic plane are
// sent as '?'.
func toChar2b(s string) []xproto.Char2b {
	out := make([]xproto.Char2b, 0, len(s))
	for _, r := range s {
		if r > 0xFFFF {
			r = '?'
		}
		out = append(out, xproto.Char2b{Byte1: byte(r >> 8), Byte2: byte(r)})
	}
	return out
}

// toLatin1 converts s for 8-bit text requests, replacing runes a Latin-1
// font cannot show.
func toLatin1(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r > 0xFF {
			r = '?'
		}
		b.WriteByte(byte(r))
	}
	return b.String()
}
