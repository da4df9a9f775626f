package terminal

import (
	"errors"
	"io"
)

// ErrNotTerminal is returned from Init when the input is not a tty, for
// callers that fall back to a non-interactive path.
var ErrNotTerminal = errors.New("not a terminal")

// Backend abstracts platform-specific terminal access: raw mode, blocking
// byte input, raw output, and window size.
type Backend interface {
	// Lifecycle
	Init() error
	Fini() error

	// I/O
	// ReadByte blocks until one byte of input is available.
	io.ByteReader
	// Write sends raw bytes to the terminal.
	io.Writer

	// Capabilities
	Size() (cols, rows int)

	// Callbacks
	// SetResizeHandler registers a callback for window size changes.
	SetResizeHandler(handler func(cols, rows int))
}
