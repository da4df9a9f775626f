//go:build unix

package terminal

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// Environment variables consulted by Open, after TERM.
const (
	KeymapVar   = "KEYMAP"
	GraphicsVar = "GRAPHICS"
)

type options struct {
	backend     Backend
	in          *os.File
	out         *os.File
	term        string
	keymap      string
	keymapSet   bool
	graphics    string
	graphicsSet bool
	diag        func(msg string)
}

// Option adjusts how Open sets the terminal up.
type Option func(*options)

// WithBackend substitutes the platform backend, mainly for tests.
func WithBackend(b Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithInput reads keystrokes from f instead of stdin. Useful for driving
// the terminal over /dev/tty while stdin carries data.
func WithInput(f *os.File) Option {
	return func(o *options) { o.in = f }
}

// WithOutput writes to f instead of stdout.
func WithOutput(f *os.File) Option {
	return func(o *options) { o.out = f }
}

// WithTerm overrides the TERM environment variable.
func WithTerm(term string) Option {
	return func(o *options) { o.term = term }
}

// WithKeymap overrides the KEYMAP environment variable. The empty string
// means no user bindings.
func WithKeymap(src string) Option {
	return func(o *options) { o.keymap = src; o.keymapSet = true }
}

// WithGraphics overrides the GRAPHICS environment variable.
func WithGraphics(src string) Option {
	return func(o *options) { o.graphics = src; o.graphicsSet = true }
}

// WithDiagnostics registers a sink for non-fatal render complaints, such as
// a symbol with no table entry. The default discards them.
func WithDiagnostics(fn func(msg string)) Option {
	return func(o *options) { o.diag = fn }
}

// Terminal ties the package together over one tty: the capability set, the
// graphics and key tables built at open time, the display-mode renderer,
// and the key reader. The tables never change after Open returns.
//
// Methods are not safe for concurrent use, except Size and Close.
type Terminal struct {
	backend Backend
	caps    *Caps
	graph   *GraphicsTable
	keymap  Keymap
	out     *renderer
	keys    *keyReader

	mu     sync.Mutex
	opened bool
	closed bool
	cols   int
	rows   int
	onSize func(cols, rows int)
}

// Open looks up the terminal's capabilities, builds the graphics and key
// tables, puts the terminal in raw mode, and sends the initialization
// strings. On error the terminal is left as it was found.
func Open(opts ...Option) (*Terminal, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.backend == nil {
		o.backend = newBackend(o.in, o.out)
	}
	if o.term == "" {
		o.term = os.Getenv("TERM")
	}
	if !o.keymapSet {
		o.keymap = os.Getenv(KeymapVar)
	}
	if !o.graphicsSet {
		o.graphics = os.Getenv(GraphicsVar)
	}

	caps, err := LookupCaps(o.term)
	if err != nil {
		return nil, err
	}
	graph, err := NewGraphicsTable(o.graphics)
	if err != nil {
		return nil, err
	}
	km, err := NewKeymap(o.keymap, caps)
	if err != nil {
		return nil, err
	}

	if err := o.backend.Init(); err != nil {
		return nil, err
	}

	t := &Terminal{
		backend: o.backend,
		caps:    caps,
		graph:   graph,
		keymap:  km,
	}
	t.cols, t.rows = o.backend.Size()
	if t.cols <= 0 || t.rows <= 0 {
		t.cols, t.rows = caps.Cols, caps.Rows
	}
	t.out = newRenderer(bufio.NewWriterSize(o.backend, 4096), caps, graph, o.diag)
	t.keys = newKeyReader(o.backend, km, t.out.beep)

	t.out.w.WriteString(caps.Init)
	t.out.w.WriteString(caps.KeypadOn)
	t.out.enterMode(ModeNormal)
	t.out.clear()
	if err := t.out.flush(); err != nil {
		o.backend.Fini()
		return nil, err
	}

	t.backend.SetResizeHandler(t.handleResize)
	t.opened = true
	return t, nil
}

// Close returns the terminal to its state before Open: normal display mode,
// keypad off, cooked tty. Safe to call more than once.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.opened || t.closed {
		return nil
	}
	t.closed = true

	t.out.enterMode(ModeNormal)
	t.out.w.WriteString(t.caps.KeypadOff)
	flushErr := t.out.flush()
	finiErr := t.backend.Fini()
	if flushErr != nil {
		return flushErr
	}
	return finiErr
}

// ReadCommand blocks until a keystroke resolves to a command. Keystrokes
// that match nothing ring the bell and recognition starts over, so every
// return carries a real command.
func (t *Terminal) ReadCommand() (Command, error) {
	return t.keys.readCommand()
}

// PutSymbol draws one symbol at the cursor, switching display mode as the
// graphics table dictates.
func (t *Terminal) PutSymbol(s Symbol) {
	t.out.putSymbol(s)
}

// PutSymbols draws a run of symbols.
func (t *Terminal) PutSymbols(syms []Symbol) {
	for _, s := range syms {
		t.out.putSymbol(s)
	}
}

// EnterMode switches the display mode. Text written afterwards renders in
// that mode until the next switch.
func (t *Terminal) EnterMode(m Mode) {
	t.out.enterMode(m)
}

// WriteString sends s as-is in the current display mode.
func (t *Terminal) WriteString(s string) {
	t.out.w.WriteString(s)
}

// MoveTo positions the cursor, 0-based.
func (t *Terminal) MoveTo(row, col int) {
	t.out.moveTo(row, col)
}

// Clear erases the whole screen.
func (t *Terminal) Clear() {
	t.out.clear()
}

// ClearToEOL erases from the cursor to the end of the line.
func (t *Terminal) ClearToEOL() {
	t.out.clearToEOL()
}

// ClearToEOS erases from the cursor to the end of the screen.
func (t *Terminal) ClearToEOS() {
	t.out.clearToEOS()
}

// Beep rings the terminal bell immediately.
func (t *Terminal) Beep() {
	t.out.beep()
}

// Flush pushes buffered output to the terminal.
func (t *Terminal) Flush() error {
	return t.out.flush()
}

// Size returns the current terminal dimensions.
func (t *Terminal) Size() (cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols, t.rows
}

// SetResizeHandler registers a callback for window size changes. The
// callback runs on the watcher goroutine.
func (t *Terminal) SetResizeHandler(fn func(cols, rows int)) {
	t.mu.Lock()
	t.onSize = fn
	t.mu.Unlock()
}

func (t *Terminal) handleResize(cols, rows int) {
	t.mu.Lock()
	t.cols, t.rows = cols, rows
	fn := t.onSize
	t.mu.Unlock()
	if fn != nil {
		fn(cols, rows)
	}
}

// EmergencyReset writes the state-clearing strings a crashed program needs
// before its stack trace is readable, then restores cooked mode. Call from
// panic recovery when Close cannot run normally.
func EmergencyReset(w io.Writer) {
	w.Write([]byte("\x1b[0m")) // attributes off, standout included
	w.Write([]byte("\x1b(B"))  // alternate character set off
	w.Write([]byte("\x1b>"))   // keypad transmit off

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	resetCookedMode()
}

// resetCookedMode restores sane tty settings via /dev/tty, which works even
// when stdin was redirected. Best effort; errors ignored in crash context.
func resetCookedMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()
	restoreTermios(int(tty.Fd()))
}
