//go:build unix

package terminal

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixBackend struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	resize *resizeWatcher
}

func newBackend(in, out *os.File) Backend {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	return &unixBackend{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

func (b *unixBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("%s: %w", b.in.Name(), ErrNotTerminal)
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return err
	}
	b.oldTerm = old

	// Raw mode turns the interrupt keys off wholesale. Turn them back on;
	// only flow control must stay off, so the quote character (ctrl-Q)
	// reaches the reader instead of restarting output.
	if err := enableISIG(b.inFd); err != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
		return err
	}
	return nil
}

func (b *unixBackend) Fini() error {
	if b.resize != nil {
		b.resize.stop()
		b.resize = nil
	}
	if b.oldTerm == nil {
		return nil
	}
	err := term.Restore(b.inFd, b.oldTerm)
	b.oldTerm = nil
	return err
}

// ReadByte blocks until a byte arrives. Reads interrupted by signals,
// window resizes included, are retried.
func (b *unixBackend) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(b.inFd, buf[:])
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
		return buf[0], nil
	}
}

func (b *unixBackend) Write(p []byte) (int, error) {
	return b.out.Write(p)
}

func (b *unixBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *unixBackend) SetResizeHandler(handler func(cols, rows int)) {
	if b.resize != nil {
		b.resize.stop()
	}
	b.resize = newResizeWatcher(b.outFd, handler)
	b.resize.start()
}

// enableISIG re-enables signal generation after term.MakeRaw cleared it.
func enableISIG(fd int) error {
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	tio.Lflag |= unix.ISIG
	return unix.IoctlSetTermios(fd, unix.TCSETS, tio)
}

// getTerminalSize returns the window size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

// restoreTermios turns echo and canonical input back on. Used for crash
// recovery when the saved state is out of reach; errors ignored.
func restoreTermios(fd int) {
	tio, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return
	}
	tio.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
	tio.Iflag |= unix.ICRNL
	tio.Oflag |= unix.OPOST
	unix.IoctlSetTermios(fd, unix.TCSETS, tio)
}
