package terminal

import (
	"fmt"
	"strings"

	tcellinfo "github.com/gdamore/tcell/v2/terminfo"
	_ "github.com/gdamore/tcell/v2/terminfo/base"
	"github.com/xo/terminfo"
)

// Caps holds the capability strings this package needs from the terminfo
// entry for a terminal. Key fields are empty when the terminal has no such
// key; everything else is checked by validate.
type Caps struct {
	Term string

	Init        string // sent once when the terminal is opened
	Clear       string
	ClearEOL    string
	ClearEOS    string
	StandoutOn  string
	StandoutOff string
	GraphicsOn  string
	GraphicsOff string
	KeypadOn    string
	KeypadOff   string
	Bell        string

	// Move renders the cursor addressing string for a 0-based position.
	Move func(row, col int) string

	KeyUp    string
	KeyDown  string
	KeyLeft  string
	KeyRight string
	KeyF1    string
	KeyF2    string
	KeyF3    string
	KeyF4    string

	Cols int
	Rows int
}

// LookupCaps resolves the capabilities for the named terminal, preferring
// the system terminfo database and falling back to the compiled-in
// descriptions when no database is installed.
func LookupCaps(term string) (*Caps, error) {
	if term == "" {
		return nil, fmt.Errorf("terminal type is not set")
	}
	c, err := capsFromSystem(term)
	if err != nil {
		var berr error
		if c, berr = capsFromBuiltin(term); berr != nil {
			return nil, fmt.Errorf("terminal %q: %w", term, err)
		}
	}
	c.applyFallbacks()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func capsFromSystem(term string) (*Caps, error) {
	ti, err := terminfo.Load(term)
	if err != nil {
		return nil, err
	}
	str := func(i int) string { return string(ti.Strings[i]) }
	c := &Caps{
		Term:        term,
		Init:        str(terminfo.Init2string),
		Clear:       str(terminfo.ClearScreen),
		ClearEOL:    str(terminfo.ClrEol),
		ClearEOS:    str(terminfo.ClrEos),
		StandoutOn:  str(terminfo.EnterStandoutMode),
		StandoutOff: str(terminfo.ExitStandoutMode),
		GraphicsOn:  str(terminfo.EnterAltCharsetMode),
		GraphicsOff: str(terminfo.ExitAltCharsetMode),
		KeypadOn:    str(terminfo.KeypadXmit),
		KeypadOff:   str(terminfo.KeypadLocal),
		Bell:        str(terminfo.Bell),
		KeyUp:       str(terminfo.KeyUp),
		KeyDown:     str(terminfo.KeyDown),
		KeyLeft:     str(terminfo.KeyLeft),
		KeyRight:    str(terminfo.KeyRight),
		KeyF1:       str(terminfo.KeyF1),
		KeyF2:       str(terminfo.KeyF2),
		KeyF3:       str(terminfo.KeyF3),
		KeyF4:       str(terminfo.KeyF4),
		Cols:        ti.Nums[terminfo.Columns],
		Rows:        ti.Nums[terminfo.Lines],
	}
	if _, ok := ti.Strings[terminfo.CursorAddress]; ok {
		c.Move = func(row, col int) string {
			return ti.Printf(terminfo.CursorAddress, row, col)
		}
	}
	return c, nil
}

func capsFromBuiltin(term string) (*Caps, error) {
	ti, err := tcellinfo.LookupTerminfo(term)
	if err != nil {
		return nil, err
	}
	c := &Caps{
		Term:  term,
		Clear: ti.Clear,
		// The compiled-in descriptions carry no el or ed strings. All of
		// them describe ANSI-family terminals, so the ANSI forms work.
		ClearEOL: "\x1b[K",
		ClearEOS: "\x1b[J",
		// No smso either; reverse video is the usual smso rendition.
		StandoutOn:  ti.Reverse,
		StandoutOff: ti.AttrOff,
		GraphicsOn:  ti.EnterAcs,
		GraphicsOff: ti.ExitAcs,
		KeypadOn:    ti.EnterKeypad,
		KeypadOff:   ti.ExitKeypad,
		// tcell v2.7 dropped the bell and key strings from Terminfo. The
		// entries here are ANSI-family terminals whose keypad transmit
		// mode sends SS3 for the arrow and PF keys; the bell comes from
		// applyFallbacks.
		KeyUp:    "\x1bOA",
		KeyDown:  "\x1bOB",
		KeyLeft:  "\x1bOD",
		KeyRight: "\x1bOC",
		KeyF1:    "\x1bOP",
		KeyF2:    "\x1bOQ",
		KeyF3:    "\x1bOR",
		KeyF4:    "\x1bOS",
		Cols:     ti.Columns,
		Rows:     ti.Lines,
	}
	if ti.SetCursor != "" {
		c.Move = func(row, col int) string {
			return ti.TGoto(col, row)
		}
	}
	return c, nil
}

// applyFallbacks fills capabilities that have a safe default. Terminals
// without an alternate character set get the VT100 pair.
func (c *Caps) applyFallbacks() {
	if c.GraphicsOn == "" || c.GraphicsOff == "" {
		c.GraphicsOn = "\x1bF"
		c.GraphicsOff = "\x1bG"
	}
	if c.Bell == "" {
		c.Bell = "\a"
	}
	if c.Cols <= 0 {
		c.Cols = 80
	}
	if c.Rows <= 0 {
		c.Rows = 24
	}
}

// validate reports the capabilities the package cannot work without, by
// their termcap names.
func (c *Caps) validate() error {
	var missing []string
	for _, s := range []struct {
		name string
		val  string
	}{
		{"ce", c.ClearEOL},
		{"cd", c.ClearEOS},
		{"cl", c.Clear},
		{"so", c.StandoutOn},
		{"se", c.StandoutOff},
		{"ks", c.KeypadOn},
		{"ke", c.KeypadOff},
	} {
		if s.val == "" {
			missing = append(missing, s.name)
		}
	}
	if c.Move == nil {
		missing = append(missing, "cm")
	}
	if len(missing) > 0 {
		return fmt.Errorf("terminal %q: missing required capabilities: %s",
			c.Term, strings.Join(missing, ", "))
	}
	return nil
}
