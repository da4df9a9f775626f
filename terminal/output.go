package terminal

import (
	"bufio"
	"fmt"
)

// Mode is a display mode the terminal can be in. The values are the same
// bytes that tag graphics entries, so a parsed tag is usable directly.
type Mode byte

const (
	ModeUnset    Mode = 0 // before the first transition, actual state unknown
	ModeNormal   Mode = 'N'
	ModeGraphics Mode = 'G'
	ModeStandout Mode = 'S'
)

func (m Mode) valid() bool {
	return m == ModeNormal || m == ModeGraphics || m == ModeStandout
}

func (m Mode) String() string {
	switch m {
	case ModeUnset:
		return "unset"
	case ModeNormal:
		return "normal"
	case ModeGraphics:
		return "graphics"
	case ModeStandout:
		return "standout"
	}
	return fmt.Sprintf("mode(0x%02x)", byte(m))
}

// renderer owns the output buffer and tracks which display mode the terminal
// is in, so mode strings go out only on actual transitions.
type renderer struct {
	w     *bufio.Writer
	caps  *Caps
	graph *GraphicsTable
	mode  Mode
	diag  func(msg string)
}

func newRenderer(w *bufio.Writer, caps *Caps, graph *GraphicsTable, diag func(string)) *renderer {
	if diag == nil {
		diag = func(string) {}
	}
	return &renderer{w: w, caps: caps, graph: graph, mode: ModeUnset, diag: diag}
}

// enterMode switches the terminal to m. Entering the current mode writes
// nothing. From ModeUnset both exit strings go out first, which forces the
// terminal to a known state on the first transition.
func (r *renderer) enterMode(m Mode) {
	if m == r.mode {
		return
	}
	switch r.mode {
	case ModeNormal:
	case ModeGraphics:
		r.w.WriteString(r.caps.GraphicsOff)
	case ModeStandout:
		r.w.WriteString(r.caps.StandoutOff)
	default:
		r.w.WriteString(r.caps.StandoutOff)
		r.w.WriteString(r.caps.GraphicsOff)
	}
	r.mode = m
	switch m {
	case ModeNormal:
	case ModeGraphics:
		r.w.WriteString(r.caps.GraphicsOn)
	case ModeStandout:
		r.w.WriteString(r.caps.StandoutOn)
	default:
		r.diag(fmt.Sprintf("bad terminal mode 0x%02x", byte(m)))
	}
}

// putSymbol draws one symbol at the cursor. Literal characters force normal
// mode; pseudo-symbols carry their own mode and byte sequence in the
// graphics table.
func (r *renderer) putSymbol(s Symbol) {
	if !s.Pseudo() {
		r.enterMode(ModeNormal)
		r.w.WriteByte(byte(s))
		return
	}
	i := int(s & symbolMask)
	if i >= numSymbols {
		r.diag(fmt.Sprintf("bad symbol code 0x%04x", uint16(s)))
		return
	}
	e := &r.graph[i]
	r.enterMode(e.Mode)
	r.w.Write(e.Seq)
}

func (r *renderer) moveTo(row, col int) {
	r.w.WriteString(r.caps.Move(row, col))
}

func (r *renderer) clear() {
	r.w.WriteString(r.caps.Clear)
}

func (r *renderer) clearToEOL() {
	r.w.WriteString(r.caps.ClearEOL)
}

func (r *renderer) clearToEOS() {
	r.w.WriteString(r.caps.ClearEOS)
}

func (r *renderer) beep() {
	r.w.WriteString(r.caps.Bell)
	r.w.Flush()
}

func (r *renderer) flush() error {
	return r.w.Flush()
}
